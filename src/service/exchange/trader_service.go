package exchange

import (
	"fmt"
	"log"
	"time"

	"gitlab.com/open-soft/go-autotrade-bot/src/model"
	"gitlab.com/open-soft/go-autotrade-bot/src/repository"
	"gitlab.com/open-soft/go-autotrade-bot/src/service"
	"gitlab.com/open-soft/go-autotrade-bot/src/service/strategy"
)

// TraderService drives one symbol: read the market, ask the strategy for a
// decision, interpret it against the exchange, the base price store and the
// notifier. Ticks are strictly sequential, Run never evaluates two at once,
// so the base price read at the start of a tick stays valid through it.
type TraderService struct {
	PriceService        PriceServiceInterface
	BalanceService      BalanceServiceInterface
	BasePriceRepository repository.BasePriceStorageInterface
	OrderExecutor       OrderExecutorInterface
	Notificator         service.NotifierInterface
	Strategy            *strategy.DipStrategy
	Settings            model.StrategySettings
}

// Tick runs one complete evaluate-decide-act cycle. Market data and store
// read failures abort the tick with no mutation, the next interval retries
// the whole thing.
func (t *TraderService) Tick() error {
	symbol := t.Settings.Symbol

	price, err := t.PriceService.GetLastPrice(symbol)
	if err != nil {
		return fmt.Errorf("[%s] price fetch failed: %w", symbol, err)
	}

	// The uncached call refreshes the whole account snapshot, the second
	// read comes from that same snapshot.
	baseBalance, err := t.BalanceService.GetAssetBalance(t.Settings.BaseAsset, false)
	if err != nil {
		return fmt.Errorf("[%s] balance fetch failed: %w", symbol, err)
	}

	quoteBalance, err := t.BalanceService.GetAssetBalance(t.Settings.QuoteAsset, true)
	if err != nil {
		return fmt.Errorf("[%s] balance fetch failed: %w", symbol, err)
	}

	// A read failure here must abort: treating it as "uninitialized" would
	// re-calibrate the base price over a live position.
	basePrice, err := t.BasePriceRepository.GetBasePrice(symbol)
	if err != nil {
		return fmt.Errorf("[%s] base price read failed: %w", symbol, err)
	}

	snapshot := model.MarketSnapshot{
		Symbol:         symbol,
		Price:          price,
		BasePrice:      basePrice,
		BaseQuantity:   baseBalance.Total,
		QuoteAvailable: quoteBalance.Free,
	}

	decision := t.Strategy.Decide(snapshot, t.Settings)

	if decision.Operation != model.OperationInitialize {
		log.Printf(
			"[%s] price=%.4f base=%.4f change=%.2f%% holdings=%.5f (~%.2f %s) quote_avail=%.2f decision=%s",
			symbol,
			price,
			decision.BasePrice,
			decision.ChangePercent.Value(),
			snapshot.BaseQuantity,
			snapshot.PositionValue(),
			t.Settings.QuoteAsset,
			snapshot.QuoteAvailable,
			decision.Operation,
		)
	}

	switch decision.Operation {
	case model.OperationInitialize:
		t.initializeBasePrice(decision)
	case model.OperationTakeProfitSell, model.OperationDipBuy:
		t.executeTrade(decision)
	case model.OperationDipBuyRejected:
		t.rejectBuy(decision, snapshot)
	case model.OperationWait:
	}

	return nil
}

func (t *TraderService) initializeBasePrice(decision model.TradeDecision) {
	symbol := t.Settings.Symbol
	log.Printf("[%s] No base price in the store, setting: %.4f", symbol, decision.Price)

	err := t.BasePriceRepository.SetBasePrice(symbol, decision.Price)
	if err != nil {
		// Retried on the next tick, which will still find no base price.
		log.Printf("[%s] Base price write failed: %s", symbol, err.Error())
		return
	}

	t.Notificator.Notify(fmt.Sprintf(
		"ℹ️ *%s autotrade*: initial base price set: `%.4f` %s",
		symbol, decision.Price, t.Settings.QuoteAsset,
	))
}

func (t *TraderService) executeTrade(decision model.TradeDecision) {
	symbol := t.Settings.Symbol

	trade, err := t.OrderExecutor.Execute(decision)
	if err != nil {
		log.Printf("[%s] %s order failed: %s", symbol, decision.Operation, err.Error())
		t.Notificator.Notify(fmt.Sprintf(
			"❌ *%s %s failed*: %s", symbol, decision.Operation, err.Error(),
		))
		return
	}

	// The tick price becomes the new baseline, not the old reference and
	// not the reported fill price.
	err = t.BasePriceRepository.SetBasePrice(symbol, decision.Price)
	if err != nil {
		log.Printf("[%s] Base price update failed after %s: %s", symbol, trade.Side, err.Error())
		t.Notificator.Notify(fmt.Sprintf(
			"⚠️ *%s %s executed, but base price update failed*: %s", symbol, trade.Side, err.Error(),
		))
	}

	switch decision.Operation {
	case model.OperationTakeProfitSell:
		t.Notificator.Notify(fmt.Sprintf(
			"✅ *%s TAKE PROFIT executed*\nSold quantity: `%.5f`\nPrice (approx.): `%.4f` %s\nOld base price: `%.4f`\nChange: %+.2f%%\n\nNew base price set to the current price.",
			symbol, trade.Quantity, trade.Price, t.Settings.QuoteAsset, decision.BasePrice, decision.ChangePercent.Value(),
		))
	case model.OperationDipBuy:
		t.Notificator.Notify(fmt.Sprintf(
			"🟢 *%s DIP BUY executed*\nBought quantity: `%.5f`\nPrice (approx.): `%.4f` %s\nOld base price: `%.4f`\nChange: %.2f%%\n\nNew base price: `%.4f`",
			symbol, trade.Quantity, trade.Price, t.Settings.QuoteAsset, decision.BasePrice, decision.ChangePercent.Value(), trade.Price,
		))
	}
}

func (t *TraderService) rejectBuy(decision model.TradeDecision, snapshot model.MarketSnapshot) {
	symbol := t.Settings.Symbol

	switch decision.RejectReason {
	case model.RejectReasonInsufficientFunds:
		log.Printf(
			"[%s] BUY signal, but not enough %s. Available: %.2f, required: %.2f",
			symbol, t.Settings.QuoteAsset, snapshot.QuoteAvailable, t.Settings.OrderNotional,
		)
		t.Notificator.Notify(fmt.Sprintf(
			"⚠️ *%s BUY signal*, but not enough %s on the account.\nAvailable: `%.2f` %s\nConfigured order size: `%.2f` %s",
			symbol, t.Settings.QuoteAsset, snapshot.QuoteAvailable, t.Settings.QuoteAsset, t.Settings.OrderNotional, t.Settings.QuoteAsset,
		))
	case model.RejectReasonInvalidQuantity:
		log.Printf("[%s] BUY signal, but the quantity quantized to zero, no order is sent", symbol)
	}
}

// Run evaluates one tick per interval until stop is closed. A tick in flight
// always finishes, the stop signal is only observed between ticks. Tick
// errors are logged and retried after the same interval, the loop itself
// never terminates on its own.
func (t *TraderService) Run(stop <-chan struct{}) {
	interval := time.Duration(t.Settings.PollIntervalSeconds) * time.Second

	for {
		err := t.Tick()
		if err != nil {
			log.Println(err)
		}

		select {
		case <-stop:
			log.Printf("[%s] Trade loop is stopped", t.Settings.Symbol)
			return
		case <-time.After(interval):
		}
	}
}
