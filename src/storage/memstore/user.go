package memstore

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/username/wealthfolio/backend/src/models"
	"github.com/username/wealthfolio/backend/src/storage"
)

type UserStore struct {
	users *cache.Cache
}

func NewUserStore() *UserStore {
	return &UserStore{users: newCollection()}
}

func (s *UserStore) Create(u *models.User) (*models.User, error) {
	if _, err := s.FindCredentialsByEmail(u.Email); err == nil {
		return nil, storage.ErrDuplicateEmail
	}

	now := time.Now().UTC()
	created := *u
	created.ID = uuid.NewString()
	created.CreatedAt = now
	created.UpdatedAt = now
	s.users.Set(created.ID, created, cache.NoExpiration)

	created.Password = ""
	return &created, nil
}

func (s *UserStore) FindByID(id string) (*models.User, error) {
	v, ok := s.users.Get(id)
	if !ok {
		return nil, storage.ErrNotFound
	}
	user := v.(models.User)
	user.Password = ""
	return &user, nil
}

func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	user, err := s.FindCredentialsByEmail(email)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

func (s *UserStore) FindCredentialsByEmail(email string) (*models.User, error) {
	for _, item := range s.users.Items() {
		user := item.Object.(models.User)
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *UserStore) UpdateByID(id string, update models.UserUpdate) (*models.User, error) {
	v, ok := s.users.Get(id)
	if !ok {
		return nil, storage.ErrNotFound
	}
	user := v.(models.User)
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	user.UpdatedAt = time.Now().UTC()
	s.users.Set(id, user, cache.NoExpiration)

	user.Password = ""
	return &user, nil
}

func (s *UserStore) DeleteByID(id string) (*models.User, error) {
	user, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	s.users.Delete(id)
	return user, nil
}
