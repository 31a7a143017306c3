package storage

import (
	"errors"
	"fmt"

	"github.com/username/wealthfolio/backend/src/models"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("user with this email already exists")
	ErrInvalidKind    = errors.New("invalid transaction type")
	ErrInvalidAsset   = errors.New("asset quantity and price must be non-negative")
)

// StoreError marks a failure inside the durable store. It is propagated to the
// caller unmodified and never triggers a fallback to the in-process store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("durable store: %s: %v", e.Op, e.Err) }
func (e *StoreError) Unwrap() error { return e.Err }

// UserStore is the per-store contract for user records. Every read strips the
// password hash; FindCredentialsByEmail is the one exception and exists solely
// for the login path.
type UserStore interface {
	Create(user *models.User) (*models.User, error)
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindCredentialsByEmail(email string) (*models.User, error)
	UpdateByID(id string, update models.UserUpdate) (*models.User, error)
	DeleteByID(id string) (*models.User, error)
}

type PortfolioStore interface {
	Create(p *models.Portfolio) (*models.Portfolio, error)
	FindByID(id string) (*models.Portfolio, error)
	FindByUser(userID string) ([]models.Portfolio, error)
	UpdateByID(id string, update models.PortfolioUpdate) (*models.Portfolio, error)
	DeleteByID(id string) (*models.Portfolio, error)
}

type TransactionStore interface {
	Create(tx *models.Transaction) (*models.Transaction, error)
	FindByID(id string) (*models.Transaction, error)
	// FindByUser returns transactions ordered by occurrence date, newest first.
	FindByUser(userID string) ([]models.Transaction, error)
	UpdateByID(id string, update models.TransactionUpdate) (*models.Transaction, error)
	DeleteByID(id string) (*models.Transaction, error)
}

type GoalStore interface {
	Create(g *models.Goal) (*models.Goal, error)
	FindByID(id string) (*models.Goal, error)
	FindByUser(userID string) ([]models.Goal, error)
	UpdateByID(id string, update models.GoalUpdate) (*models.Goal, error)
	DeleteByID(id string) (*models.Goal, error)
}

// Stores bundles one implementation of every entity store.
type Stores struct {
	Users        UserStore
	Portfolios   PortfolioStore
	Transactions TransactionStore
	Goals        GoalStore
}
