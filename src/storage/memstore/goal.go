package memstore

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/username/wealthfolio/backend/src/models"
	"github.com/username/wealthfolio/backend/src/storage"
)

type GoalStore struct {
	goals *cache.Cache
}

func NewGoalStore() *GoalStore {
	return &GoalStore{goals: newCollection()}
}

func (s *GoalStore) Create(g *models.Goal) (*models.Goal, error) {
	now := time.Now().UTC()
	created := *g
	created.ID = uuid.NewString()
	created.CreatedAt = now
	created.UpdatedAt = now
	s.goals.Set(created.ID, created, cache.NoExpiration)
	return &created, nil
}

func (s *GoalStore) FindByID(id string) (*models.Goal, error) {
	v, ok := s.goals.Get(id)
	if !ok {
		return nil, storage.ErrNotFound
	}
	g := v.(models.Goal)
	return &g, nil
}

func (s *GoalStore) FindByUser(userID string) ([]models.Goal, error) {
	goals := []models.Goal{}
	for _, item := range s.goals.Items() {
		g := item.Object.(models.Goal)
		if g.UserID == userID {
			goals = append(goals, g)
		}
	}
	return goals, nil
}

func (s *GoalStore) UpdateByID(id string, update models.GoalUpdate) (*models.Goal, error) {
	v, ok := s.goals.Get(id)
	if !ok {
		return nil, storage.ErrNotFound
	}
	g := v.(models.Goal)
	if update.Name != nil {
		g.Name = *update.Name
	}
	if update.TargetAmount != nil {
		g.TargetAmount = *update.TargetAmount
	}
	if update.CurrentAmount != nil {
		g.CurrentAmount = *update.CurrentAmount
	}
	if update.TargetDate != nil {
		g.TargetDate = *update.TargetDate
	}
	g.UpdatedAt = time.Now().UTC()
	s.goals.Set(id, g, cache.NoExpiration)
	return &g, nil
}

func (s *GoalStore) DeleteByID(id string) (*models.Goal, error) {
	g, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	s.goals.Delete(id)
	return g, nil
}
