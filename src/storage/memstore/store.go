// Package memstore implements the in-process fallback stores used while the
// durable store is unreachable. Records live for the lifetime of the process
// and are never persisted; each entity type gets its own non-expiring cache
// collection keyed by id.
package memstore

import (
	"github.com/patrickmn/go-cache"
	"github.com/username/wealthfolio/backend/src/storage"
)

func New() storage.Stores {
	return storage.Stores{
		Users:        NewUserStore(),
		Portfolios:   NewPortfolioStore(),
		Transactions: NewTransactionStore(),
		Goals:        NewGoalStore(),
	}
}

func newCollection() *cache.Cache {
	return cache.New(cache.NoExpiration, 0)
}
