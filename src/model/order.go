package model

const (
	SideBuy  = "Buy"
	SideSell = "Sell"
)

const (
	ExchangeOrderStatusNew             = "New"
	ExchangeOrderStatusFilled          = "Filled"
	ExchangeOrderStatusPartiallyFilled = "PartiallyFilled"
	ExchangeOrderStatusRejected        = "Rejected"
	ExchangeOrderStatusCancelled       = "Cancelled"
)

// ExchangeOrder is an order as reported back by ByBit. AvgPrice stays zero
// until the venue reports fills.
type ExchangeOrder struct {
	OrderId      string         `json:"orderId"`
	Symbol       string         `json:"symbol"`
	Side         string         `json:"side"`
	OrderType    string         `json:"orderType"`
	Status       string         `json:"orderStatus"`
	Qty          Volume         `json:"qty"`
	AvgPrice     Price          `json:"avgPrice"`
	CumExecQty   Volume         `json:"cumExecQty"`
	CumExecValue Volume         `json:"cumExecValue"`
	CreatedTime  TimestampMilli `json:"createdTime"`
}

func (o ExchangeOrder) IsFilled() bool {
	return o.Status == ExchangeOrderStatusFilled
}

func (o ExchangeOrder) IsRejected() bool {
	return o.Status == ExchangeOrderStatusRejected || o.Status == ExchangeOrderStatusCancelled
}

// Trade is one executed market order, as recorded in the trade history.
// Price is the tick price the decision was made on, AvgPrice the reported
// fill price. They legitimately differ on a market order.
type Trade struct {
	Id        int64   `json:"id"`
	BotId     int64   `json:"botId"`
	Symbol    string  `json:"symbol"`
	Side      string  `json:"side"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
	AvgPrice  float64 `json:"avgPrice"`
	OrderId   string  `json:"orderId"`
	CreatedAt string  `json:"createdAt"`
}
