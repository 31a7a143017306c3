package sqlitestore

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/username/wealthfolio/backend/src/models"
	"github.com/username/wealthfolio/backend/src/storage"
)

type PortfolioStore struct {
	db *sql.DB
}

func (s *PortfolioStore) Create(p *models.Portfolio) (*models.Portfolio, error) {
	now := time.Now().UTC()
	created := *p
	created.ID = uuid.NewString()
	created.CreatedAt = now
	created.UpdatedAt = now
	if created.Assets == nil {
		created.Assets = []models.Asset{}
	}
	// The total is always derived from the asset list, never caller-supplied.
	created.TotalValue = models.TotalAssetValue(created.Assets)

	assetsJSON, err := json.Marshal(created.Assets)
	if err != nil {
		return nil, storeErr("create portfolio", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO portfolios (id, user_id, name, assets, total_value, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		created.ID, created.UserID, created.Name, string(assetsJSON), created.TotalValue, created.CreatedAt, created.UpdatedAt)
	if err != nil {
		return nil, storeErr("create portfolio", err)
	}
	return &created, nil
}

func (s *PortfolioStore) FindByID(id string) (*models.Portfolio, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, name, assets, total_value, created_at, updated_at
		FROM portfolios WHERE id = ?`, id)
	return scanPortfolio(row.Scan)
}

func (s *PortfolioStore) FindByUser(userID string) ([]models.Portfolio, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, name, assets, total_value, created_at, updated_at
		FROM portfolios WHERE user_id = ?`, userID)
	if err != nil {
		return nil, storeErr("find portfolios", err)
	}
	defer rows.Close()

	portfolios := []models.Portfolio{}
	for rows.Next() {
		p, err := scanPortfolio(rows.Scan)
		if err != nil {
			return nil, err
		}
		portfolios = append(portfolios, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("find portfolios", err)
	}
	return portfolios, nil
}

func scanPortfolio(scan func(...any) error) (*models.Portfolio, error) {
	var p models.Portfolio
	var assetsJSON string
	err := scan(&p.ID, &p.UserID, &p.Name, &assetsJSON, &p.TotalValue, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, storeErr("scan portfolio", err)
	}
	if err := json.Unmarshal([]byte(assetsJSON), &p.Assets); err != nil {
		return nil, storeErr("scan portfolio", err)
	}
	if p.Assets == nil {
		p.Assets = []models.Asset{}
	}
	return &p, nil
}

func (s *PortfolioStore) UpdateByID(id string, update models.PortfolioUpdate) (*models.Portfolio, error) {
	sets := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}
	if update.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *update.Name)
	}
	if update.Assets != nil {
		assetsJSON, err := json.Marshal(*update.Assets)
		if err != nil {
			return nil, storeErr("update portfolio", err)
		}
		// Supplying assets re-derives the total; it cannot drift from the list.
		sets = append(sets, "assets = ?", "total_value = ?")
		args = append(args, string(assetsJSON), models.TotalAssetValue(*update.Assets))
	}
	args = append(args, id)

	res, err := s.db.Exec(`UPDATE portfolios SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, storeErr("update portfolio", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, storeErr("update portfolio", err)
	}
	if affected == 0 {
		return nil, storage.ErrNotFound
	}
	return s.FindByID(id)
}

func (s *PortfolioStore) DeleteByID(id string) (*models.Portfolio, error) {
	p, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.db.Exec(`DELETE FROM portfolios WHERE id = ?`, id); err != nil {
		return nil, storeErr("delete portfolio", err)
	}
	return p, nil
}
