package client_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gitlab.com/open-soft/go-autotrade-bot/src/client"
	"gitlab.com/open-soft/go-autotrade-bot/src/model"
)

type HttpClientMock struct {
	mock.Mock
}

func (m *HttpClientMock) Get(url string, headers map[string]string) ([]byte, error) {
	args := m.Called(url, headers)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *HttpClientMock) Post(url string, message []byte, headers map[string]string) ([]byte, error) {
	args := m.Called(url, message, headers)
	return args.Get(0).([]byte), args.Error(1)
}

func newByBit(httpClientMock *HttpClientMock) client.ByBit {
	return client.ByBit{
		HttpClient: httpClientMock,
		DSN:        "https://fake.url",
	}
}

func TestGetTickerParsesLastPrice(t *testing.T) {
	assertion := assert.New(t)

	httpClientMock := new(HttpClientMock)
	byBit := newByBit(httpClientMock)

	response := []byte(`{"retCode": 0, "retMsg": "OK", "result": {"list": [{"symbol": "SOLUSDT", "lastPrice": "140.5000"}]}}`)
	httpClientMock.On("Get", "https://fake.url/v5/market/tickers?category=spot&symbol=SOLUSDT", mock.Anything).Return(response, nil)

	ticker, err := byBit.GetTicker("SOLUSDT")
	assertion.Nil(err)
	assertion.Equal("SOLUSDT", ticker.Symbol)
	assertion.Equal(140.50, ticker.Price)
}

func TestGetTickerFailsOnEmptyList(t *testing.T) {
	assertion := assert.New(t)

	httpClientMock := new(HttpClientMock)
	byBit := newByBit(httpClientMock)

	response := []byte(`{"retCode": 0, "retMsg": "OK", "result": {"list": []}}`)
	httpClientMock.On("Get", mock.Anything, mock.Anything).Return(response, nil)

	_, err := byBit.GetTicker("SOLUSDT")
	assertion.NotNil(err)
}

func TestGetTickerFailsOnErrorMessage(t *testing.T) {
	assertion := assert.New(t)

	httpClientMock := new(HttpClientMock)
	byBit := newByBit(httpClientMock)

	response := []byte(`{"retCode": 10002, "retMsg": "invalid request", "result": {}}`)
	httpClientMock.On("Get", mock.Anything, mock.Anything).Return(response, nil)

	_, err := byBit.GetTicker("SOLUSDT")
	assertion.NotNil(err)
	assertion.Equal("invalid request", err.Error())
}

func TestGetAccountStatusCoercesBlankBalances(t *testing.T) {
	assertion := assert.New(t)

	httpClientMock := new(HttpClientMock)
	byBit := newByBit(httpClientMock)

	response := []byte(`{"retCode": 0, "retMsg": "OK", "result": {"list": [
		{"accountType": "UNIFIED", "coin": [
			{"coin": "SOL", "walletBalance": "1.25", "availableToWithdraw": ""},
			{"coin": "USDT", "walletBalance": "", "availableToWithdraw": "73.50"}
		]}
	]}}`)
	httpClientMock.On("Get", "https://fake.url/v5/account/wallet-balance?accountType=UNIFIED", mock.Anything).Return(response, nil)

	account, err := byBit.GetAccountStatus()
	assertion.Nil(err)
	assertion.Len(account.Balances, 2)
	assertion.Equal(model.Balance{Asset: "SOL", Free: 0.00, Total: 1.25}, account.Balances[0])
	assertion.Equal(model.Balance{Asset: "USDT", Free: 73.50, Total: 0.00}, account.Balances[1])
}

func TestMarketOrderRecoversWhenOrderIsNotFetched(t *testing.T) {
	assertion := assert.New(t)

	httpClientMock := new(HttpClientMock)
	byBit := newByBit(httpClientMock)

	createResponse := []byte(`{"retCode": 0, "retMsg": "OK", "result": {"orderId": "111999"}}`)
	httpClientMock.On("Post", "https://fake.url/v5/order/create", mock.Anything, mock.Anything).Return(createResponse, nil)
	httpClientMock.On("Get", "https://fake.url/v5/order/realtime?category=spot&limit=1&orderId=111999&symbol=SOLUSDT&openOnly=0", mock.Anything).Return([]byte(""), errors.New("timeout"))

	order, err := byBit.MarketOrder("SOLUSDT", model.SideBuy, 0.265)
	assertion.Nil(err)
	assertion.Equal("111999", order.OrderId)
	assertion.Equal("SOLUSDT", order.Symbol)
	assertion.Equal(model.SideBuy, order.Side)
	assertion.Equal(model.ExchangeOrderStatusNew, order.Status)
	assertion.Equal(0.265, order.Qty.Value())
}

func TestMarketOrderReturnsFilledOrder(t *testing.T) {
	assertion := assert.New(t)

	httpClientMock := new(HttpClientMock)
	byBit := newByBit(httpClientMock)

	createResponse := []byte(`{"retCode": 0, "retMsg": "OK", "result": {"orderId": "222333"}}`)
	queryResponse := []byte(`{"retCode": 0, "retMsg": "OK", "result": {"list": [
		{"orderId": "222333", "symbol": "SOLUSDT", "side": "Sell", "orderType": "Market",
		 "orderStatus": "Filled", "qty": "0.265", "avgPrice": "97.7433", "cumExecQty": "0.265"}
	]}}`)
	httpClientMock.On("Post", "https://fake.url/v5/order/create", mock.Anything, mock.Anything).Return(createResponse, nil)
	httpClientMock.On("Get", "https://fake.url/v5/order/realtime?category=spot&limit=1&orderId=222333&symbol=SOLUSDT&openOnly=0", mock.Anything).Return(queryResponse, nil)

	order, err := byBit.MarketOrder("SOLUSDT", model.SideSell, 0.265)
	assertion.Nil(err)
	assertion.True(order.IsFilled())
	assertion.Equal(97.7433, order.AvgPrice.Value())
}

func TestMarketOrderFailsOnVenueError(t *testing.T) {
	assertion := assert.New(t)

	httpClientMock := new(HttpClientMock)
	byBit := newByBit(httpClientMock)

	createResponse := []byte(`{"retCode": 170131, "retMsg": "Insufficient balance", "result": {}}`)
	httpClientMock.On("Post", "https://fake.url/v5/order/create", mock.Anything, mock.Anything).Return(createResponse, nil)

	_, err := byBit.MarketOrder("SOLUSDT", model.SideBuy, 0.265)
	assertion.NotNil(err)
	assertion.Equal("Insufficient balance", err.Error())
}

func TestGetQtyStepResolvesBasePrecision(t *testing.T) {
	assertion := assert.New(t)

	httpClientMock := new(HttpClientMock)
	byBit := newByBit(httpClientMock)

	response := []byte(`{"retCode": 0, "retMsg": "OK", "result": {"list": [
		{"symbol": "SOLUSDT", "baseCoin": "SOL", "quoteCoin": "USDT",
		 "lotSizeFilter": {"basePrecision": "0.001", "minOrderQty": "0.011", "minOrderAmt": "1"}}
	]}}`)
	httpClientMock.On("Get", "https://fake.url/v5/market/instruments-info?category=spot&symbol=SOLUSDT", mock.Anything).Return(response, nil)

	step, err := byBit.GetQtyStep("SOLUSDT")
	assertion.Nil(err)
	assertion.Equal(0.001, step)
}
