package invoice

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// ListPath is where the caller is sent after a successful mutation.
const ListPath = "/dashboard/invoices"

//go:generate mockgen -source=service.go -destination=service_mock.go -package=invoice
type Repository interface {
	CreateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	UpdateInvoice(ctx context.Context, inv *Invoice) error
	DeleteInvoice(ctx context.Context, id uuid.UUID) error

	ListInvoices(ctx context.Context, filter ListFilter) ([]*Invoice, error)
	CreateInvoices(ctx context.Context, invs []*Invoice) error
}

// ListCache invalidates any cached rendering of the invoice list.
type ListCache interface {
	Invalidate(ctx context.Context) error
}

type ListFilter struct {
	Status    *Status
	StartDate *time.Time
	EndDate   *time.Time
}

type Service struct {
	repo  Repository
	cache ListCache
}

func NewService(repo Repository, cache ListCache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Outcome is the result of a create or update mutation. Exactly one branch
// is populated: field errors with a summary message, a bare summary message
// for a persistence failure, or a navigation target on success. The caller
// performs the actual redirect; navigation is data, not control flow.
type Outcome struct {
	Errors     FieldErrors `json:"errors,omitempty"`
	Message    string      `json:"message,omitempty"`
	RedirectTo string      `json:"-"`
}

// Failed reports whether the mutation stopped short of its redirect.
func (o Outcome) Failed() bool {
	return o.RedirectTo == ""
}

// Create validates a form submission and inserts a new invoice. The issue
// date is the current calendar day and the id is assigned by the store;
// neither is read from the submission. The list cache is invalidated only
// after a successful insert.
func (s *Service) Create(ctx context.Context, form url.Values) Outcome {
	fields, errs := ParseForm(form)
	if errs != nil {
		return Outcome{Errors: errs, Message: "Missing Fields. Failed to Create Invoice."}
	}

	inv := &Invoice{
		CustomerID: fields.CustomerID,
		Amount:     fields.Amount,
		Status:     fields.Status,
		Date:       today(),
	}

	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		slog.Error("failed to create invoice", "error", err)
		return Outcome{Message: "Database Error: Failed to Create Invoice."}
	}

	s.invalidateList(ctx)

	return Outcome{RedirectTo: ListPath}
}

// Update validates a form submission and rewrites the customer, amount and
// status of the invoice identified by id. The id and issue date are never
// touched. The caller is expected to pass the id of an existing invoice; an
// unknown id makes the update a silent no-op.
func (s *Service) Update(ctx context.Context, id uuid.UUID, form url.Values) Outcome {
	fields, errs := ParseForm(form)
	if errs != nil {
		return Outcome{Errors: errs, Message: "Missing Fields. Failed to Update Invoice."}
	}

	inv := &Invoice{
		ID:         id,
		CustomerID: fields.CustomerID,
		Amount:     fields.Amount,
		Status:     fields.Status,
	}

	if err := s.repo.UpdateInvoice(ctx, inv); err != nil {
		slog.Error("failed to update invoice", "error", err, "id", id)
		return Outcome{Message: "Database Error: Failed to Update Invoice."}
	}

	s.invalidateList(ctx)

	return Outcome{RedirectTo: ListPath}
}

// Delete removes the invoice by id. A failed delete is logged and never
// surfaced to the caller, and the list cache is invalidated whether or not
// the delete succeeded.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) {
	if err := s.repo.DeleteInvoice(ctx, id); err != nil {
		slog.Error("failed to delete invoice", "error", err, "id", id)
	}

	s.invalidateList(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Invoice, error) {
	return s.repo.ListInvoices(ctx, filter)
}

// CreateBatch inserts pre-validated invoices in a single statement batch,
// used by the CSV importer. The list cache is invalidated on success.
func (s *Service) CreateBatch(ctx context.Context, invs []*Invoice) error {
	if len(invs) == 0 {
		return nil
	}

	if err := s.repo.CreateInvoices(ctx, invs); err != nil {
		return err
	}

	s.invalidateList(ctx)

	return nil
}

// invalidateList drops the cached list view. A stale cache is not worth
// failing a mutation that already persisted, so errors are only logged.
func (s *Service) invalidateList(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		slog.Error("failed to invalidate invoice list cache", "error", err)
	}
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
