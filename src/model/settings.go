package model

// StrategySettings is built once at startup and never mutated afterwards.
// The decision engine receives it as a value, it never reads the environment.
type StrategySettings struct {
	Symbol              string  `json:"symbol"`
	BaseAsset           string  `json:"baseAsset"`
	QuoteAsset          string  `json:"quoteAsset"`
	DipPercent          float64 `json:"dipPercent"`
	TakeProfitPercent   float64 `json:"takeProfitPercent"`
	OrderNotional       float64 `json:"orderNotional"`
	MinPositionNotional float64 `json:"minPositionNotional"`
	QtyStep             float64 `json:"qtyStep"`
	PollIntervalSeconds int64   `json:"pollIntervalSeconds"`
}

func (s StrategySettings) DipLevel(basePrice float64) float64 {
	return basePrice * (1.00 - s.DipPercent/100.00)
}

func (s StrategySettings) TakeProfitLevel(basePrice float64) float64 {
	return basePrice * (1.00 + s.TakeProfitPercent/100.00)
}
