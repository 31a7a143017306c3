package sqlitestore

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/username/wealthfolio/backend/src/models"
	"github.com/username/wealthfolio/backend/src/storage"
)

type GoalStore struct {
	db *sql.DB
}

func (s *GoalStore) Create(g *models.Goal) (*models.Goal, error) {
	now := time.Now().UTC()
	created := *g
	created.ID = uuid.NewString()
	created.CreatedAt = now
	created.UpdatedAt = now

	_, err := s.db.Exec(`
		INSERT INTO goals (id, user_id, name, target_amount, current_amount, target_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		created.ID, created.UserID, created.Name, created.TargetAmount,
		created.CurrentAmount, created.TargetDate, created.CreatedAt, created.UpdatedAt)
	if err != nil {
		return nil, storeErr("create goal", err)
	}
	return &created, nil
}

func (s *GoalStore) FindByID(id string) (*models.Goal, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, name, target_amount, current_amount, target_date, created_at, updated_at
		FROM goals WHERE id = ?`, id)
	return scanGoal(row.Scan)
}

func (s *GoalStore) FindByUser(userID string) ([]models.Goal, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, name, target_amount, current_amount, target_date, created_at, updated_at
		FROM goals WHERE user_id = ?`, userID)
	if err != nil {
		return nil, storeErr("find goals", err)
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows.Scan)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("find goals", err)
	}
	return goals, nil
}

func scanGoal(scan func(...any) error) (*models.Goal, error) {
	var g models.Goal
	err := scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.TargetDate, &g.CreatedAt, &g.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, storeErr("scan goal", err)
	}
	return &g, nil
}

func (s *GoalStore) UpdateByID(id string, update models.GoalUpdate) (*models.Goal, error) {
	sets := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}
	if update.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *update.Name)
	}
	if update.TargetAmount != nil {
		sets = append(sets, "target_amount = ?")
		args = append(args, *update.TargetAmount)
	}
	if update.CurrentAmount != nil {
		sets = append(sets, "current_amount = ?")
		args = append(args, *update.CurrentAmount)
	}
	if update.TargetDate != nil {
		sets = append(sets, "target_date = ?")
		args = append(args, *update.TargetDate)
	}
	args = append(args, id)

	res, err := s.db.Exec(`UPDATE goals SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, storeErr("update goal", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, storeErr("update goal", err)
	}
	if affected == 0 {
		return nil, storage.ErrNotFound
	}
	return s.FindByID(id)
}

func (s *GoalStore) DeleteByID(id string) (*models.Goal, error) {
	g, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.db.Exec(`DELETE FROM goals WHERE id = ?`, id); err != nil {
		return nil, storeErr("delete goal", err)
	}
	return g, nil
}
