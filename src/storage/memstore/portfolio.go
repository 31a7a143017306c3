package memstore

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/username/wealthfolio/backend/src/models"
	"github.com/username/wealthfolio/backend/src/storage"
)

type PortfolioStore struct {
	portfolios *cache.Cache
}

func NewPortfolioStore() *PortfolioStore {
	return &PortfolioStore{portfolios: newCollection()}
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
	created.TotalValue = models.TotalAssetValue(created.Assets)

	s.portfolios.Set(created.ID, created, cache.NoExpiration)
	return &created, nil
}

func (s *PortfolioStore) FindByID(id string) (*models.Portfolio, error) {
	v, ok := s.portfolios.Get(id)
	if !ok {
		return nil, storage.ErrNotFound
	}
	p := v.(models.Portfolio)
	return &p, nil
}

func (s *PortfolioStore) FindByUser(userID string) ([]models.Portfolio, error) {
	portfolios := []models.Portfolio{}
	for _, item := range s.portfolios.Items() {
		p := item.Object.(models.Portfolio)
		if p.UserID == userID {
			portfolios = append(portfolios, p)
		}
	}
	return portfolios, nil
}

func (s *PortfolioStore) UpdateByID(id string, update models.PortfolioUpdate) (*models.Portfolio, error) {
	v, ok := s.portfolios.Get(id)
	if !ok {
		return nil, storage.ErrNotFound
	}
	p := v.(models.Portfolio)
	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.Assets != nil {
		p.Assets = *update.Assets
		if p.Assets == nil {
			p.Assets = []models.Asset{}
		}
		p.TotalValue = models.TotalAssetValue(p.Assets)
	}
	p.UpdatedAt = time.Now().UTC()
	s.portfolios.Set(id, p, cache.NoExpiration)
	return &p, nil
}

func (s *PortfolioStore) DeleteByID(id string) (*models.Portfolio, error) {
	p, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	s.portfolios.Delete(id)
	return p, nil
}
