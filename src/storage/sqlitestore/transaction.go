package sqlitestore

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/username/wealthfolio/backend/src/models"
	"github.com/username/wealthfolio/backend/src/storage"
)

type TransactionStore struct {
	db *sql.DB
}

func (s *TransactionStore) Create(tx *models.Transaction) (*models.Transaction, error) {
	created := *tx
	created.ID = uuid.NewString()
	created.CreatedAt = time.Now().UTC()

	_, err := s.db.Exec(`
		INSERT INTO transactions (id, user_id, kind, amount, category, description, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		created.ID, created.UserID, created.Kind, created.Amount,
		nullable(created.Category), nullable(created.Description), created.Date, created.CreatedAt)
	if err != nil {
		return nil, storeErr("create transaction", err)
	}
	return &created, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (s *TransactionStore) FindByID(id string) (*models.Transaction, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, kind, amount, category, description, date, created_at
		FROM transactions WHERE id = ?`, id)
	return scanTransaction(row.Scan)
}

func (s *TransactionStore) FindByUser(userID string) ([]models.Transaction, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, kind, amount, category, description, date, created_at
		FROM transactions
		WHERE user_id = ?
		ORDER BY date DESC, created_at DESC`, userID)
	if err != nil {
		return nil, storeErr("find transactions", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *tx)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("find transactions", err)
	}
	return transactions, nil
}

func scanTransaction(scan func(...any) error) (*models.Transaction, error) {
	var tx models.Transaction
	var category, description sql.NullString
	err := scan(&tx.ID, &tx.UserID, &tx.Kind, &tx.Amount, &category, &description, &tx.Date, &tx.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, storeErr("scan transaction", err)
	}
	tx.Category = category.String
	tx.Description = description.String
	return &tx, nil
}

func (s *TransactionStore) UpdateByID(id string, update models.TransactionUpdate) (*models.Transaction, error) {
	sets := []string{}
	args := []any{}
	if update.Kind != nil {
		sets = append(sets, "kind = ?")
		args = append(args, *update.Kind)
	}
	if update.Amount != nil {
		sets = append(sets, "amount = ?")
		args = append(args, *update.Amount)
	}
	if update.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, nullable(*update.Category))
	}
	if update.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, nullable(*update.Description))
	}
	if update.Date != nil {
		sets = append(sets, "date = ?")
		args = append(args, *update.Date)
	}
	if len(sets) == 0 {
		return s.FindByID(id)
	}
	args = append(args, id)

	res, err := s.db.Exec(`UPDATE transactions SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, storeErr("update transaction", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, storeErr("update transaction", err)
	}
	if affected == 0 {
		return nil, storage.ErrNotFound
	}
	return s.FindByID(id)
}

func (s *TransactionStore) DeleteByID(id string) (*models.Transaction, error) {
	tx, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.db.Exec(`DELETE FROM transactions WHERE id = ?`, id); err != nil {
		return nil, storeErr("delete transaction", err)
	}
	return tx, nil
}
