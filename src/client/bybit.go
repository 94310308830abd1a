package client

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"gitlab.com/open-soft/go-autotrade-bot/src/model"
)

type ExchangeAPIInterface interface {
	GetTicker(symbol string) (model.Ticker, error)
	GetAccountStatus() (*model.AccountStatus, error)
	MarketOrder(symbol string, side string, quantity float64) (model.ExchangeOrder, error)
	GetQtyStep(symbol string) (float64, error)
}

type ByBit struct {
	HttpClient HttpClientInterface
	DSN        string
	ApiKey     string
	ApiSecret  string
}

// GetTicker returns the spot last price. An empty result list is an error,
// the trade loop must not decide on a missing quote.
func (b *ByBit) GetTicker(symbol string) (model.Ticker, error) {
	queryString := fmt.Sprintf("category=spot&symbol=%s", symbol)
	result, err := b.HttpClient.Get(fmt.Sprintf("%s/v5/market/tickers?%s", b.DSN, queryString), b.GetHeaders(queryString))

	if err != nil {
		return model.Ticker{}, err
	}

	var tickerResponse model.ByBitTickerResponse
	err = json.Unmarshal(result, &tickerResponse)
	if err != nil {
		log.Printf("[%s] GetTicker: %s", symbol, err.Error())
		return model.Ticker{}, err
	}

	if tickerResponse.Message != "OK" {
		log.Printf("[%s] GetTicker: %s", symbol, tickerResponse.Message)
		return model.Ticker{}, errors.New(tickerResponse.Message)
	}

	if len(tickerResponse.Result.List) == 0 {
		return model.Ticker{}, errors.New(fmt.Sprintf("[%s] GetTicker: empty ticker list", symbol))
	}

	byBitTicker := tickerResponse.Result.List[0]

	return model.Ticker{
		Symbol:    byBitTicker.Symbol,
		Price:     byBitTicker.LastPrice.Value(),
		Timestamp: model.TimestampMilli(time.Now().UnixMilli()),
	}, nil
}

func (b *ByBit) GetAccountStatus() (*model.AccountStatus, error) {
	queryString := fmt.Sprintf("accountType=%s", model.ByBitAccountTypeUnified)
	result, err := b.HttpClient.Get(fmt.Sprintf(
		"%s/v5/account/wallet-balance?%s",
		b.DSN,
		queryString,
	), b.GetHeaders(queryString))
	if err != nil {
		return nil, err
	}

	var balanceResponse model.ByBitBalanceResponse
	err = json.Unmarshal(result, &balanceResponse)
	if err != nil {
		log.Printf("GetAccountStatus: %s", err.Error())
		return nil, err
	}

	if balanceResponse.Message != "OK" {
		log.Printf("GetAccountStatus: %s", balanceResponse.Message)
		return nil, errors.New(balanceResponse.Message)
	}

	balances := make([]model.Balance, 0)

	for _, byBitBalance := range balanceResponse.Result.List {
		if byBitBalance.AccountType != model.ByBitAccountTypeUnified {
			continue
		}

		for _, coin := range byBitBalance.Coin {
			balances = append(balances, model.Balance{
				Asset: coin.Coin,
				Free:  coin.AvailableToWithdraw.Value(),
				Total: coin.WalletBalance.Value(),
			})
		}
	}

	return &model.AccountStatus{
		Balances: balances,
	}, nil
}

func (b *ByBit) MarketOrder(symbol string, side string, quantity float64) (model.ExchangeOrder, error) {
	requestBody := map[string]any{
		"category":    "spot",
		"symbol":      symbol,
		"side":        side,
		"orderType":   "Market",
		"qty":         strconv.FormatFloat(quantity, 'f', -1, 64),
		"timeInForce": "IOC",
		"isLeverage":  0,
		"orderFilter": "Order",
	}
	encoded, err := json.Marshal(requestBody)
	if err != nil {
		return model.ExchangeOrder{}, err
	}

	result, err := b.HttpClient.Post(fmt.Sprintf("%s/v5/order/create", b.DSN), encoded, b.GetHeaders(string(encoded)))
	if err != nil {
		return model.ExchangeOrder{}, err
	}

	var createResult model.ByBitOrderCreateResponse
	err = json.Unmarshal(result, &createResult)
	if err != nil {
		log.Printf("[%s] MarketOrder: %s", symbol, err.Error())
		return model.ExchangeOrder{}, err
	}

	if createResult.Message != "OK" {
		log.Printf("[%s] MarketOrder: %s", symbol, createResult.Message)
		return model.ExchangeOrder{}, errors.New(createResult.Message)
	}

	orderIdRaw, ok := createResult.Result["orderId"]
	if !ok {
		return model.ExchangeOrder{}, errors.New("can't get orderId")
	}

	orderId, ok := orderIdRaw.(string)
	if !ok {
		return model.ExchangeOrder{}, errors.New("orderId is not string")
	}

	exchangeOrder, err := b.QueryOrder(symbol, orderId)
	if err == nil {
		return exchangeOrder, nil
	}

	// Accepted but not fetched back, recover with what we know.
	return model.ExchangeOrder{
		OrderId:     orderId,
		Symbol:      symbol,
		Side:        side,
		OrderType:   "Market",
		Status:      model.ExchangeOrderStatusNew,
		Qty:         model.Volume(quantity),
		CreatedTime: model.TimestampMilli(time.Now().UnixMilli()),
	}, nil
}

func (b *ByBit) QueryOrder(symbol string, orderId string) (model.ExchangeOrder, error) {
	var order model.ExchangeOrder
	queryString := fmt.Sprintf("category=spot&limit=1&orderId=%s&symbol=%s&openOnly=0", orderId, symbol)
	result, err := b.HttpClient.Get(fmt.Sprintf("%s/v5/order/realtime?%s", b.DSN, queryString), b.GetHeaders(queryString))

	if err != nil {
		return order, err
	}

	var orderListResponse model.ByBitOrderListResponse
	err = json.Unmarshal(result, &orderListResponse)
	if err != nil {
		log.Printf("[%s] QueryOrder: %s", symbol, err.Error())
		return order, err
	}

	if orderListResponse.Message != "OK" {
		log.Printf("[%s] QueryOrder: %s", symbol, orderListResponse.Message)
		return order, errors.New(orderListResponse.Message)
	}

	for _, byBitOrder := range orderListResponse.Result.List {
		if byBitOrder.OrderId == orderId {
			return byBitOrder, nil
		}
	}

	return order, errors.New(fmt.Sprintf("[%s] order %s is not found", symbol, orderId))
}

// GetQtyStep resolves the spot lot step from instruments-info.
func (b *ByBit) GetQtyStep(symbol string) (float64, error) {
	queryString := fmt.Sprintf("category=spot&symbol=%s", symbol)
	result, err := b.HttpClient.Get(fmt.Sprintf(
		"%s/v5/market/instruments-info?%s",
		b.DSN,
		queryString,
	), b.GetHeaders(queryString))
	if err != nil {
		return 0.00, err
	}

	var instrumentsResponse model.ByBitInstrumentsResponse
	err = json.Unmarshal(result, &instrumentsResponse)
	if err != nil {
		log.Printf("[%s] GetQtyStep: %s", symbol, err.Error())
		return 0.00, err
	}

	if instrumentsResponse.Message != "OK" {
		log.Printf("[%s] GetQtyStep: %s", symbol, instrumentsResponse.Message)
		return 0.00, errors.New(instrumentsResponse.Message)
	}

	for _, instrument := range instrumentsResponse.Result.List {
		if instrument.Symbol == symbol {
			step := instrument.LotSizeFilter.BasePrecision.Value()
			if step > 0 {
				return step, nil
			}
		}
	}

	return 0.00, errors.New(fmt.Sprintf("[%s] instrument is not found", symbol))
}

func (b *ByBit) GetHeaders(payload string) map[string]string {
	timestamp := time.Now().UnixMilli()
	val := strconv.FormatInt(timestamp, 10) + b.ApiKey
	val = val + payload
	h := hmac.New(sha256.New, []byte(b.ApiSecret))
	h.Write([]byte(val))

	return map[string]string{
		"X-BAPI-API-KEY":   b.ApiKey,
		"X-BAPI-TIMESTAMP": strconv.FormatInt(timestamp, 10),
		"X-BAPI-SIGN":      hex.EncodeToString(h.Sum(nil)),
	}
}
