package strategy

import (
	"time"

	"gitlab.com/open-soft/go-autotrade-bot/src/model"
	"gitlab.com/open-soft/go-autotrade-bot/src/utils"
)

// DipStrategy is the whole decision engine: a pure function of one market
// snapshot and the immutable settings. It never talks to the exchange, the
// store or the notifier, the trader service interprets its decisions.
//
// Position state is derived fresh on every call: the bot is "in position"
// when the holdings are worth at least MinPositionNotional in quote currency,
// anything below that is dust left by quantity rounding. While in position
// only take-profit is evaluated, a dip can only be bought once the position
// is fully closed.
type DipStrategy struct {
	Formatter *utils.Formatter
}

func (s *DipStrategy) Decide(snapshot model.MarketSnapshot, settings model.StrategySettings) model.TradeDecision {
	decision := model.TradeDecision{
		StrategyName: model.DipStrategyName,
		Symbol:       snapshot.Symbol,
		Price:        snapshot.Price,
		Timestamp:    time.Now().Unix(),
	}

	// First tick ever: calibrate the reference price, never trade.
	if snapshot.BasePrice == nil {
		decision.Operation = model.OperationInitialize
		decision.BasePrice = snapshot.Price

		return decision
	}

	basePrice := *snapshot.BasePrice
	decision.BasePrice = basePrice
	decision.ChangePercent = s.Formatter.ChangePercent(basePrice, snapshot.Price)

	if snapshot.PositionValue() >= settings.MinPositionNotional {
		return s.decideInPosition(decision, snapshot, settings, basePrice)
	}

	return s.decideFlat(decision, snapshot, settings, basePrice)
}

func (s *DipStrategy) decideInPosition(
	decision model.TradeDecision,
	snapshot model.MarketSnapshot,
	settings model.StrategySettings,
	basePrice float64,
) model.TradeDecision {
	if snapshot.Price < settings.TakeProfitLevel(basePrice) {
		decision.Operation = model.OperationWait

		return decision
	}

	quantity := s.Formatter.QuantizeQuantity(snapshot.BaseQuantity, settings.QtyStep)
	if quantity <= 0 {
		// Whole position is below one lot step, nothing sellable.
		decision.Operation = model.OperationWait

		return decision
	}

	decision.Operation = model.OperationTakeProfitSell
	decision.Quantity = quantity

	return decision
}

func (s *DipStrategy) decideFlat(
	decision model.TradeDecision,
	snapshot model.MarketSnapshot,
	settings model.StrategySettings,
	basePrice float64,
) model.TradeDecision {
	if snapshot.Price > settings.DipLevel(basePrice) {
		decision.Operation = model.OperationWait

		return decision
	}

	if snapshot.QuoteAvailable < settings.OrderNotional {
		decision.Operation = model.OperationDipBuyRejected
		decision.RejectReason = model.RejectReasonInsufficientFunds

		return decision
	}

	quantity := s.Formatter.QuantizeQuantity(settings.OrderNotional/snapshot.Price, settings.QtyStep)
	if quantity <= 0 {
		decision.Operation = model.OperationDipBuyRejected
		decision.RejectReason = model.RejectReasonInvalidQuantity

		return decision
	}

	decision.Operation = model.OperationDipBuy
	decision.Quantity = quantity

	return decision
}
