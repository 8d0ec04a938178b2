package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mwarren02/billdesk/internal/auth"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	query := `
		SELECT id, name, email, password
		FROM users
		WHERE email = $1
	`

	var u auth.User

	err := s.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, auth.ErrNotFound
		}

		return nil, fmt.Errorf("finding user: %w", err)
	}

	return &u, nil
}
