// Package sqlitestore implements the durable entity stores on sqlite.
// Asset lists are kept as a single JSON document column, so a portfolio row
// round-trips as one record.
package sqlitestore

import (
	"database/sql"

	"github.com/username/wealthfolio/backend/src/storage"
)

func New(db *sql.DB) storage.Stores {
	return storage.Stores{
		Users:        &UserStore{db: db},
		Portfolios:   &PortfolioStore{db: db},
		Transactions: &TransactionStore{db: db},
		Goals:        &GoalStore{db: db},
	}
}

func storeErr(op string, err error) error {
	return &storage.StoreError{Op: op, Err: err}
}
