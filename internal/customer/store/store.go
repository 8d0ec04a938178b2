package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mwarren02/billdesk/internal/customer"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListCustomers(ctx context.Context) ([]*customer.Customer, error) {
	query := `
		SELECT id, name, email
		FROM customers
		ORDER BY name ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	var customers []*customer.Customer

	for rows.Next() {
		var c customer.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email); err != nil {
			return nil, fmt.Errorf("scanning customer: %w", err)
		}

		customers = append(customers, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customer rows: %w", err)
	}

	return customers, nil
}

// FindByName matches a customer by name, case-insensitively.
func (s *Store) FindByName(ctx context.Context, name string) (*customer.Customer, error) {
	query := `
		SELECT id, name, email
		FROM customers
		WHERE name ILIKE $1
		ORDER BY name ASC
		LIMIT 1
	`

	var c customer.Customer

	err := s.db.QueryRowContext(ctx, query, name).Scan(&c.ID, &c.Name, &c.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, customer.ErrNotFound
		}

		return nil, fmt.Errorf("finding customer: %w", err)
	}

	return &c, nil
}
