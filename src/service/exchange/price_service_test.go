package exchange_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gitlab.com/open-soft/go-autotrade-bot/src/model"
	"gitlab.com/open-soft/go-autotrade-bot/src/service/exchange"
)

type ExchangeAPIMock struct {
	mock.Mock
}

func (m *ExchangeAPIMock) GetTicker(symbol string) (model.Ticker, error) {
	args := m.Called(symbol)
	return args.Get(0).(model.Ticker), args.Error(1)
}

func (m *ExchangeAPIMock) GetAccountStatus() (*model.AccountStatus, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AccountStatus), args.Error(1)
}

func (m *ExchangeAPIMock) MarketOrder(symbol string, side string, quantity float64) (model.ExchangeOrder, error) {
	args := m.Called(symbol, side, quantity)
	return args.Get(0).(model.ExchangeOrder), args.Error(1)
}

func (m *ExchangeAPIMock) GetQtyStep(symbol string) (float64, error) {
	args := m.Called(symbol)
	return args.Get(0).(float64), args.Error(1)
}

type TickerStorageMock struct {
	mock.Mock
}

func (m *TickerStorageMock) SaveTicker(ticker model.Ticker) {
	m.Called(ticker)
}

func (m *TickerStorageMock) GetTicker(symbol string) *model.Ticker {
	args := m.Called(symbol)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*model.Ticker)
}

func TestFreshStreamTickerSkipsRest(t *testing.T) {
	assertion := assert.New(t)

	byBitMock := new(ExchangeAPIMock)
	tickerStorageMock := new(TickerStorageMock)
	tickerStorageMock.On("GetTicker", "SOLUSDT").Return(&model.Ticker{
		Symbol:    "SOLUSDT",
		Price:     140.50,
		Timestamp: model.TimestampMilli(time.Now().UnixMilli()),
	})

	priceService := exchange.PriceService{
		ByBit:            byBitMock,
		TickerRepository: tickerStorageMock,
	}

	price, err := priceService.GetLastPrice("SOLUSDT")
	assertion.Nil(err)
	assertion.Equal(140.50, price)
	byBitMock.AssertNotCalled(t, "GetTicker", mock.Anything)
}

func TestStaleStreamTickerFallsBackToRest(t *testing.T) {
	assertion := assert.New(t)

	byBitMock := new(ExchangeAPIMock)
	tickerStorageMock := new(TickerStorageMock)
	tickerStorageMock.On("GetTicker", "SOLUSDT").Return(&model.Ticker{
		Symbol:    "SOLUSDT",
		Price:     139.00,
		Timestamp: model.TimestampMilli(time.Now().UnixMilli() - 60_000),
	})
	restTicker := model.Ticker{
		Symbol:    "SOLUSDT",
		Price:     140.50,
		Timestamp: model.TimestampMilli(time.Now().UnixMilli()),
	}
	byBitMock.On("GetTicker", "SOLUSDT").Return(restTicker, nil)
	tickerStorageMock.On("SaveTicker", restTicker).Return()

	priceService := exchange.PriceService{
		ByBit:            byBitMock,
		TickerRepository: tickerStorageMock,
	}

	price, err := priceService.GetLastPrice("SOLUSDT")
	assertion.Nil(err)
	assertion.Equal(140.50, price)
	tickerStorageMock.AssertCalled(t, "SaveTicker", restTicker)
}

func TestMissingQuoteIsAnError(t *testing.T) {
	assertion := assert.New(t)

	byBitMock := new(ExchangeAPIMock)
	tickerStorageMock := new(TickerStorageMock)
	tickerStorageMock.On("GetTicker", "SOLUSDT").Return(nil)
	byBitMock.On("GetTicker", "SOLUSDT").Return(model.Ticker{}, errors.New("empty ticker list"))

	priceService := exchange.PriceService{
		ByBit:            byBitMock,
		TickerRepository: tickerStorageMock,
	}

	_, err := priceService.GetLastPrice("SOLUSDT")
	assertion.NotNil(err)
	tickerStorageMock.AssertNotCalled(t, "SaveTicker", mock.Anything)
}
