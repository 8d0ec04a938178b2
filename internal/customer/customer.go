package customer

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("customer not found")

// Customer is read-only from this application's point of view: invoices
// reference customers, nothing here mutates them.
type Customer struct {
	ID    uuid.UUID
	Name  string
	Email string
}

//go:generate mockgen -source=customer.go -destination=customer_mock.go -package=customer
type Repository interface {
	ListCustomers(ctx context.Context) ([]*Customer, error)
	FindByName(ctx context.Context, name string) (*Customer, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all customers ordered by name, for populating the customer
// selector on invoice forms.
func (s *Service) List(ctx context.Context) ([]*Customer, error) {
	return s.repo.ListCustomers(ctx)
}

// Resolve finds the customer whose name matches the given text, used by the
// CSV importer to turn customer names into ids.
func (s *Service) Resolve(ctx context.Context, name string) (*Customer, error) {
	return s.repo.FindByName(ctx, name)
}
