package invoice

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status represents the payment state of an invoice.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// Valid reports whether s is one of the two accepted statuses.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusPaid
}

var ErrNotFound = errors.New("invoice not found")

// Invoice represents an amount owed by a customer.
// Amount is stored in cents; Date is the issue date at calendar-day
// precision and is assigned by the server, never by the submitter.
type Invoice struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	Amount     int64
	Status     Status
	Date       time.Time
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
