package model

const ByBitAccountTypeUnified = "UNIFIED"

type ByBitTickerResponse struct {
	Code    int64           `json:"retCode"`
	Message string          `json:"retMsg"`
	Result  ByBitTickerList `json:"result"`
}

type ByBitTickerList struct {
	List []ByBitTicker `json:"list"`
}

type ByBitTicker struct {
	Symbol       string `json:"symbol"`
	Bid1Price    Price  `json:"bid1Price"`
	Ask1Price    Price  `json:"ask1Price"`
	LastPrice    Price  `json:"lastPrice"`
	PrevPrice24H Price  `json:"prevPrice24h"`
	HighPrice24H Price  `json:"highPrice24h"`
	LowPrice24H  Price  `json:"lowPrice24h"`
	Volume24H    Volume `json:"volume24h"`
}

type ByBitBalanceResponse struct {
	Code    int64            `json:"retCode"`
	Message string           `json:"retMsg"`
	Result  ByBitBalanceList `json:"result"`
}

type ByBitBalanceList struct {
	List []ByBitAccountBalance `json:"list"`
}

type ByBitAccountBalance struct {
	AccountType string      `json:"accountType"`
	TotalEquity Price       `json:"totalEquity"`
	Coin        []ByBitCoin `json:"coin"`
}

// ByBitCoin numeric fields use the coercing types on purpose: the wallet
// endpoint returns blank strings for coins without margin data.
type ByBitCoin struct {
	Coin                string `json:"coin"`
	WalletBalance       Volume `json:"walletBalance"`
	AvailableToWithdraw Volume `json:"availableToWithdraw"`
	Equity              Volume `json:"equity"`
	Locked              Volume `json:"locked"`
	UsdValue            Price  `json:"usdValue"`
}

type ByBitOrderCreateResponse struct {
	Code    int64                  `json:"retCode"`
	Message string                 `json:"retMsg"`
	Result  map[string]interface{} `json:"result"`
}

type ByBitOrderListResponse struct {
	Code    int64              `json:"retCode"`
	Message string             `json:"retMsg"`
	Result  ByBitOrderListData `json:"result"`
}

type ByBitOrderListData struct {
	List []ExchangeOrder `json:"list"`
}

type ByBitInstrumentsResponse struct {
	Code    int64                `json:"retCode"`
	Message string               `json:"retMsg"`
	Result  ByBitInstrumentsList `json:"result"`
}

type ByBitInstrumentsList struct {
	List []ByBitInstrument `json:"list"`
}

type ByBitInstrument struct {
	Symbol        string             `json:"symbol"`
	BaseCoin      string             `json:"baseCoin"`
	QuoteCoin     string             `json:"quoteCoin"`
	LotSizeFilter ByBitLotSizeFilter `json:"lotSizeFilter"`
}

type ByBitLotSizeFilter struct {
	BasePrecision  Volume `json:"basePrecision"`
	QuotePrecision Volume `json:"quotePrecision"`
	MinOrderQty    Volume `json:"minOrderQty"`
	MaxOrderQty    Volume `json:"maxOrderQty"`
	MinOrderAmt    Volume `json:"minOrderAmt"`
}

type ByBitSocketStreamsRequest struct {
	Operation string   `json:"op"`
	Arguments []string `json:"args"`
}

type ByBitWsTickerEvent struct {
	Topic string         `json:"topic"`
	Type  string         `json:"type"`
	Ts    TimestampMilli `json:"ts"`
	Data  ByBitWsTicker  `json:"data"`
}

type ByBitWsTicker struct {
	Symbol    string `json:"symbol"`
	LastPrice Price  `json:"lastPrice"`
}

type Balance struct {
	Asset string  `json:"asset"`
	Free  float64 `json:"free"`
	Total float64 `json:"total"`
}

type AccountStatus struct {
	Balances []Balance `json:"balances"`
}

// Ticker is the venue-agnostic last price the trade loop consumes.
type Ticker struct {
	Symbol    string         `json:"symbol"`
	Price     float64        `json:"price"`
	Timestamp TimestampMilli `json:"timestamp"`
}
