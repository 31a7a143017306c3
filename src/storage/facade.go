package storage

import (
	"time"

	"github.com/username/wealthfolio/backend/src/models"
)

// Repository dispatches every operation to the durable store when it is
// reachable at the start of the call, and to the in-process store otherwise.
// The decision is made exactly once per operation: a durable-store failure
// mid-call propagates to the caller instead of re-dispatching, so a single
// logical write can never land in both stores.
//
// Reachability can flip between calls (transient outage, late startup), which
// is why the check is per-call rather than fixed at construction.
type Repository struct {
	Users        *UserRepository
	Portfolios   *PortfolioRepository
	Transactions *TransactionRepository
	Goals        *GoalRepository
}

// NewRepository wires a facade over an injected durable and fallback store
// pair. reachable must be a cheap state read, not a connection attempt.
func NewRepository(durable, fallback Stores, reachable func() bool) *Repository {
	return &Repository{
		Users:        &UserRepository{durable: durable.Users, fallback: fallback.Users, reachable: reachable},
		Portfolios:   &PortfolioRepository{durable: durable.Portfolios, fallback: fallback.Portfolios, reachable: reachable},
		Transactions: &TransactionRepository{durable: durable.Transactions, fallback: fallback.Transactions, reachable: reachable},
		Goals:        &GoalRepository{durable: durable.Goals, fallback: fallback.Goals, reachable: reachable},
	}
}

type UserRepository struct {
	durable   UserStore
	fallback  UserStore
	reachable func() bool
}

func (r *UserRepository) store() UserStore {
	if r.reachable() {
		return r.durable
	}
	return r.fallback
}

func (r *UserRepository) Create(email, passwordHash, name string) (*models.User, error) {
	return r.store().Create(&models.User{Email: email, Password: passwordHash, Name: name})
}

func (r *UserRepository) FindByID(id string) (*models.User, error) {
	return r.store().FindByID(id)
}

func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	return r.store().FindByEmail(email)
}

// FindCredentialsByEmail returns the record including the password hash.
// Only the login handler may call it.
func (r *UserRepository) FindCredentialsByEmail(email string) (*models.User, error) {
	return r.store().FindCredentialsByEmail(email)
}

func (r *UserRepository) UpdateByID(id string, update models.UserUpdate) (*models.User, error) {
	return r.store().UpdateByID(id, update)
}

func (r *UserRepository) DeleteByID(id string) (*models.User, error) {
	return r.store().DeleteByID(id)
}

type PortfolioRepository struct {
	durable   PortfolioStore
	fallback  PortfolioStore
	reachable func() bool
}

func (r *PortfolioRepository) store() PortfolioStore {
	if r.reachable() {
		return r.durable
	}
	return r.fallback
}

func validAssets(assets []models.Asset) bool {
	for _, a := range assets {
		if a.Quantity < 0 || a.CurrentPrice < 0 {
			return false
		}
	}
	return true
}

func (r *PortfolioRepository) Create(userID, name string, assets []models.Asset) (*models.Portfolio, error) {
	if !validAssets(assets) {
		return nil, ErrInvalidAsset
	}
	if assets == nil {
		assets = []models.Asset{}
	}
	return r.store().Create(&models.Portfolio{UserID: userID, Name: name, Assets: assets})
}

func (r *PortfolioRepository) FindByID(id string) (*models.Portfolio, error) {
	return r.store().FindByID(id)
}

func (r *PortfolioRepository) FindByUser(userID string) ([]models.Portfolio, error) {
	return r.store().FindByUser(userID)
}

func (r *PortfolioRepository) UpdateByID(id string, update models.PortfolioUpdate) (*models.Portfolio, error) {
	if update.Assets != nil && !validAssets(*update.Assets) {
		return nil, ErrInvalidAsset
	}
	return r.store().UpdateByID(id, update)
}

func (r *PortfolioRepository) DeleteByID(id string) (*models.Portfolio, error) {
	return r.store().DeleteByID(id)
}

type TransactionRepository struct {
	durable   TransactionStore
	fallback  TransactionStore
	reachable func() bool
}

func (r *TransactionRepository) store() TransactionStore {
	if r.reachable() {
		return r.durable
	}
	return r.fallback
}

func (r *TransactionRepository) Create(userID, kind string, amount float64, category, description string, date time.Time) (*models.Transaction, error) {
	// Kind is validated before either store is touched.
	if !models.ValidKind(kind) {
		return nil, ErrInvalidKind
	}
	return r.store().Create(&models.Transaction{
		UserID:      userID,
		Kind:        kind,
		Amount:      amount,
		Category:    category,
		Description: description,
		Date:        date,
	})
}

func (r *TransactionRepository) FindByID(id string) (*models.Transaction, error) {
	return r.store().FindByID(id)
}

func (r *TransactionRepository) FindByUser(userID string) ([]models.Transaction, error) {
	return r.store().FindByUser(userID)
}

func (r *TransactionRepository) UpdateByID(id string, update models.TransactionUpdate) (*models.Transaction, error) {
	if update.Kind != nil && !models.ValidKind(*update.Kind) {
		return nil, ErrInvalidKind
	}
	return r.store().UpdateByID(id, update)
}

func (r *TransactionRepository) DeleteByID(id string) (*models.Transaction, error) {
	return r.store().DeleteByID(id)
}

type GoalRepository struct {
	durable   GoalStore
	fallback  GoalStore
	reachable func() bool
}

func (r *GoalRepository) store() GoalStore {
	if r.reachable() {
		return r.durable
	}
	return r.fallback
}

func (r *GoalRepository) Create(userID, name string, targetAmount, currentAmount float64, targetDate time.Time) (*models.Goal, error) {
	return r.store().Create(&models.Goal{
		UserID:        userID,
		Name:          name,
		TargetAmount:  targetAmount,
		CurrentAmount: currentAmount,
		TargetDate:    targetDate,
	})
}

func (r *GoalRepository) FindByID(id string) (*models.Goal, error) {
	return r.store().FindByID(id)
}

func (r *GoalRepository) FindByUser(userID string) ([]models.Goal, error) {
	return r.store().FindByUser(userID)
}

func (r *GoalRepository) UpdateByID(id string, update models.GoalUpdate) (*models.Goal, error) {
	return r.store().UpdateByID(id, update)
}

func (r *GoalRepository) DeleteByID(id string) (*models.Goal, error) {
	return r.store().DeleteByID(id)
}
