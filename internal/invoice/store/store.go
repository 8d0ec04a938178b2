package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mwarren02/billdesk/internal/invoice"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectInvoiceColumns = `
	id, customer_id, amount, status, date, created_at, updated_at
`

func scanInvoice(s scanner) (*invoice.Invoice, error) {
	var inv invoice.Invoice

	var statusStr string

	if err := s.Scan(
		&inv.ID, &inv.CustomerID, &inv.Amount, &statusStr, &inv.Date,
		&inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return nil, err
	}

	inv.Status = invoice.Status(statusStr)

	return &inv, nil
}

func (s *Store) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		INSERT INTO invoices (customer_id, amount, status, date, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		inv.CustomerID,
		inv.Amount,
		inv.Status,
		inv.Date,
	).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating invoice: %w", err)
	}

	return nil
}

func (s *Store) GetInvoice(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + `
		FROM invoices
		WHERE id = $1`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	return inv, nil
}

func (s *Store) ListInvoices(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + `
		FROM invoices
		WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY date DESC, created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var invs []*invoice.Invoice

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		invs = append(invs, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice rows: %w", err)
	}

	return invs, nil
}

// UpdateInvoice rewrites the mutable fields of an invoice. The id and issue
// date columns are deliberately absent from the SET clause. Updating an id
// that no longer exists matches zero rows and is not an error.
func (s *Store) UpdateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		UPDATE invoices
		SET customer_id = $1, amount = $2, status = $3, updated_at = NOW()
		WHERE id = $4
	`

	_, err := s.db.ExecContext(ctx, query,
		inv.CustomerID,
		inv.Amount,
		inv.Status,
		inv.ID,
	)
	if err != nil {
		return fmt.Errorf("updating invoice: %w", err)
	}

	return nil
}

func (s *Store) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM invoices
		WHERE id = $1
	`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting invoice: %w", err)
	}

	return nil
}

// CreateInvoices inserts a batch of invoices inside a single database
// transaction, so a bulk import either lands completely or not at all.
func (s *Store) CreateInvoices(ctx context.Context, invs []*invoice.Invoice) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO invoices (customer_id, amount, status, date, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	for _, inv := range invs {
		err := dbTx.QueryRowContext(ctx, query,
			inv.CustomerID,
			inv.Amount,
			inv.Status,
			inv.Date,
		).Scan(&inv.ID, &inv.CreatedAt)
		if err != nil {
			return fmt.Errorf("creating invoice: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
