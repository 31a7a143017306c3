package memstore

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/username/wealthfolio/backend/src/models"
	"github.com/username/wealthfolio/backend/src/storage"
)

type TransactionStore struct {
	transactions *cache.Cache
}

func NewTransactionStore() *TransactionStore {
	return &TransactionStore{transactions: newCollection()}
}

func (s *TransactionStore) Create(tx *models.Transaction) (*models.Transaction, error) {
	created := *tx
	created.ID = uuid.NewString()
	created.CreatedAt = time.Now().UTC()
	s.transactions.Set(created.ID, created, cache.NoExpiration)
	return &created, nil
}

func (s *TransactionStore) FindByID(id string) (*models.Transaction, error) {
	v, ok := s.transactions.Get(id)
	if !ok {
		return nil, storage.ErrNotFound
	}
	tx := v.(models.Transaction)
	return &tx, nil
}

func (s *TransactionStore) FindByUser(userID string) ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	for _, item := range s.transactions.Items() {
		tx := item.Object.(models.Transaction)
		if tx.UserID == userID {
			transactions = append(transactions, tx)
		}
	}
	sort.Slice(transactions, func(i, j int) bool {
		if transactions[i].Date.Equal(transactions[j].Date) {
			return transactions[i].CreatedAt.After(transactions[j].CreatedAt)
		}
		return transactions[i].Date.After(transactions[j].Date)
	})
	return transactions, nil
}

func (s *TransactionStore) UpdateByID(id string, update models.TransactionUpdate) (*models.Transaction, error) {
	v, ok := s.transactions.Get(id)
	if !ok {
		return nil, storage.ErrNotFound
	}
	tx := v.(models.Transaction)
	if update.Kind != nil {
		tx.Kind = *update.Kind
	}
	if update.Amount != nil {
		tx.Amount = *update.Amount
	}
	if update.Category != nil {
		tx.Category = *update.Category
	}
	if update.Description != nil {
		tx.Description = *update.Description
	}
	if update.Date != nil {
		tx.Date = *update.Date
	}
	s.transactions.Set(id, tx, cache.NoExpiration)
	return &tx, nil
}

func (s *TransactionStore) DeleteByID(id string) (*models.Transaction, error) {
	tx, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	s.transactions.Delete(id)
	return tx, nil
}
