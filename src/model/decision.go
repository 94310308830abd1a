package model

const DipStrategyName = "dip_buy_strategy"

const (
	OperationInitialize     = "INITIALIZE"
	OperationWait           = "WAIT"
	OperationTakeProfitSell = "TAKE_PROFIT_SELL"
	OperationDipBuy         = "DIP_BUY"
	OperationDipBuyRejected = "DIP_BUY_REJECTED"
)

const (
	RejectReasonInsufficientFunds = "insufficient_funds"
	RejectReasonInvalidQuantity   = "invalid_quantity"
)

// MarketSnapshot is everything the decision engine is allowed to look at
// for one tick. BasePrice is nil until the very first tick has calibrated it.
type MarketSnapshot struct {
	Symbol         string   `json:"symbol"`
	Price          float64  `json:"price"`
	BasePrice      *float64 `json:"basePrice"`
	BaseQuantity   float64  `json:"baseQuantity"`
	QuoteAvailable float64  `json:"quoteAvailable"`
}

func (m MarketSnapshot) PositionValue() float64 {
	return m.BaseQuantity * m.Price
}

// TradeDecision is produced once per tick and consumed immediately,
// it is never persisted.
type TradeDecision struct {
	StrategyName  string  `json:"strategyName"`
	Operation     string  `json:"operation"`
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	BasePrice     float64 `json:"basePrice"`
	ChangePercent Percent `json:"changePercent"`
	Quantity      float64 `json:"quantity"`
	RejectReason  string  `json:"rejectReason"`
	Timestamp     int64   `json:"timestamp"`
}

func (d TradeDecision) IsTrade() bool {
	return d.Operation == OperationTakeProfitSell || d.Operation == OperationDipBuy
}
