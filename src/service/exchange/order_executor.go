package exchange

import (
	"errors"
	"fmt"
	"log"

	"gitlab.com/open-soft/go-autotrade-bot/src/client"
	"gitlab.com/open-soft/go-autotrade-bot/src/model"
	"gitlab.com/open-soft/go-autotrade-bot/src/repository"
)

type OrderExecutorInterface interface {
	Execute(decision model.TradeDecision) (model.Trade, error)
}

// OrderExecutor turns a trade decision into one spot market order. All or
// nothing: a venue rejection surfaces as an error and nothing is recorded.
type OrderExecutor struct {
	ByBit           client.ExchangeAPIInterface
	TradeRepository repository.TradeStorageInterface
	BalanceService  BalanceServiceInterface
}

func (o *OrderExecutor) Execute(decision model.TradeDecision) (model.Trade, error) {
	if !decision.IsTrade() {
		return model.Trade{}, errors.New(fmt.Sprintf("[%s] decision %s is not executable", decision.Symbol, decision.Operation))
	}

	side := model.SideBuy
	if decision.Operation == model.OperationTakeProfitSell {
		side = model.SideSell
	}

	if decision.Quantity <= 0 {
		return model.Trade{}, errors.New(fmt.Sprintf("[%s] refusing zero-size %s order", decision.Symbol, side))
	}

	log.Printf("[%s] %s %f @ ~%f", decision.Symbol, side, decision.Quantity, decision.Price)

	order, err := o.ByBit.MarketOrder(decision.Symbol, side, decision.Quantity)
	if err != nil {
		return model.Trade{}, err
	}

	if order.IsRejected() {
		return model.Trade{}, errors.New(fmt.Sprintf("[%s] order %s is %s", decision.Symbol, order.OrderId, order.Status))
	}

	o.BalanceService.InvalidateBalanceCache()

	trade := model.Trade{
		Symbol:   decision.Symbol,
		Side:     side,
		Quantity: decision.Quantity,
		Price:    decision.Price,
		AvgPrice: order.AvgPrice.Value(),
		OrderId:  order.OrderId,
	}

	// History is informational, a failed insert must not undo the trade.
	_ = o.TradeRepository.Create(trade)

	return trade, nil
}
