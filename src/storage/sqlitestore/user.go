package sqlitestore

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/username/wealthfolio/backend/src/models"
	"github.com/username/wealthfolio/backend/src/storage"
)

type UserStore struct {
	db *sql.DB
}

func (s *UserStore) Create(u *models.User) (*models.User, error) {
	var existing string
	err := s.db.QueryRow(`SELECT id FROM users WHERE email = ?`, u.Email).Scan(&existing)
	if err == nil {
		return nil, storage.ErrDuplicateEmail
	}
	if err != sql.ErrNoRows {
		return nil, storeErr("create user", err)
	}

	now := time.Now().UTC()
	created := *u
	created.ID = uuid.NewString()
	created.CreatedAt = now
	created.UpdatedAt = now

	_, err = s.db.Exec(`
		INSERT INTO users (id, email, password, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		created.ID, created.Email, created.Password, created.Name, created.CreatedAt, created.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return nil, storage.ErrDuplicateEmail
		}
		return nil, storeErr("create user", err)
	}

	created.Password = ""
	return &created, nil
}

func (s *UserStore) FindByID(id string) (*models.User, error) {
	return s.findOne(`WHERE id = ?`, id)
}

func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	return s.findOne(`WHERE email = ?`, email)
}

// findOne never selects the password column; read results stay sanitized.
func (s *UserStore) findOne(where string, arg any) (*models.User, error) {
	row := s.db.QueryRow(`SELECT id, email, name, created_at, updated_at FROM users `+where, arg)
	var user models.User
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, storeErr("find user", err)
	}
	return &user, nil
}

func (s *UserStore) FindCredentialsByEmail(email string) (*models.User, error) {
	row := s.db.QueryRow(`SELECT id, email, password, name, created_at, updated_at FROM users WHERE email = ?`, email)
	var user models.User
	err := row.Scan(&user.ID, &user.Email, &user.Password, &user.Name, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, storeErr("find user credentials", err)
	}
	return &user, nil
}

func (s *UserStore) UpdateByID(id string, update models.UserUpdate) (*models.User, error) {
	sets := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}
	if update.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *update.Email)
	}
	if update.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *update.Name)
	}
	args = append(args, id)

	res, err := s.db.Exec(`UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return nil, storage.ErrDuplicateEmail
		}
		return nil, storeErr("update user", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, storeErr("update user", err)
	}
	if affected == 0 {
		return nil, storage.ErrNotFound
	}
	return s.FindByID(id)
}

func (s *UserStore) DeleteByID(id string) (*models.User, error) {
	user, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.db.Exec(`DELETE FROM users WHERE id = ?`, id); err != nil {
		return nil, storeErr("delete user", err)
	}
	return user, nil
}
