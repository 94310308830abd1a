package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"gitlab.com/open-soft/go-autotrade-bot/src/client"
	"gitlab.com/open-soft/go-autotrade-bot/src/model"
)

type BalanceServiceInterface interface {
	GetAssetBalance(asset string, cache bool) (model.Balance, error)
	InvalidateBalanceCache()
}

type BalanceService struct {
	RDB        *redis.Client
	Ctx        *context.Context
	CurrentBot *model.Bot
	ByBit      client.ExchangeAPIInterface
}

func (b *BalanceService) InvalidateBalanceCache() {
	b.RDB.Del(*b.Ctx, b.getAccountCacheKey())
}

// GetAssetBalance returns the wallet balance for one asset. With cache
// disabled it always asks the exchange, the trade loop needs live numbers.
// An asset absent from the account is a zero balance, not an error.
func (b *BalanceService) GetAssetBalance(asset string, cache bool) (model.Balance, error) {
	if cache {
		cached := b.RDB.Get(*b.Ctx, b.getAccountCacheKey()).Val()

		if len(cached) > 0 {
			var account model.AccountStatus
			err := json.Unmarshal([]byte(cached), &account)

			if err == nil {
				for _, balance := range account.Balances {
					if balance.Asset == asset {
						return balance, nil
					}
				}

				return model.Balance{Asset: asset}, nil
			}
		}
	}

	account, err := b.ByBit.GetAccountStatus()

	if err != nil {
		return model.Balance{}, err
	}

	if encoded, err := json.Marshal(account); err == nil {
		b.RDB.Set(*b.Ctx, b.getAccountCacheKey(), string(encoded), time.Minute)
	}

	for _, balance := range account.Balances {
		if balance.Asset == asset {
			log.Printf("[%s] Free balance is: %f, total is: %f", asset, balance.Free, balance.Total)
			return balance, nil
		}
	}

	return model.Balance{Asset: asset}, nil
}

func (b *BalanceService) getAccountCacheKey() string {
	return fmt.Sprintf("account-status-bot-%d", b.CurrentBot.Id)
}
