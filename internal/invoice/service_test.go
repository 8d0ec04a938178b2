package invoice_test

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mwarren02/billdesk/internal/invoice"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name         string
		form         url.Values
		setupMock    func(repo *invoice.MockRepository, cache *invoice.MockListCache)
		wantRedirect string
		wantMessage  string
		wantErrField string
	}

	tests := []testCase{
		{
			name: "Success",
			form: validForm(uuid.NewString()),
			setupMock: func(repo *invoice.MockRepository, cache *invoice.MockListCache) {
				repo.EXPECT().
					CreateInvoice(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, inv *invoice.Invoice) error {
						inv.ID = uuid.New()
						return nil
					})
				cache.EXPECT().Invalidate(gomock.Any()).Return(nil)
			},
			wantRedirect: "/dashboard/invoices",
		},
		{
			name: "ValidationFailureSkipsPersistence",
			form: url.Values{
				"customerId": {""},
				"amount":     {"10"},
				"status":     {"paid"},
			},
			setupMock:    func(repo *invoice.MockRepository, cache *invoice.MockListCache) {},
			wantMessage:  "Missing Fields. Failed to Create Invoice.",
			wantErrField: "customerId",
		},
		{
			name: "PersistenceFailure",
			form: validForm(uuid.NewString()),
			setupMock: func(repo *invoice.MockRepository, cache *invoice.MockListCache) {
				repo.EXPECT().
					CreateInvoice(gomock.Any(), gomock.Any()).
					Return(errors.New("connection refused"))
			},
			wantMessage: "Database Error: Failed to Create Invoice.",
		},
		{
			name: "CacheFailureStillRedirects",
			form: validForm(uuid.NewString()),
			setupMock: func(repo *invoice.MockRepository, cache *invoice.MockListCache) {
				repo.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).Return(nil)
				cache.EXPECT().Invalidate(gomock.Any()).Return(errors.New("redis down"))
			},
			wantRedirect: "/dashboard/invoices",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := invoice.NewMockRepository(ctrl)
			cache := invoice.NewMockListCache(ctrl)
			tt.setupMock(repo, cache)

			svc := invoice.NewService(repo, cache)
			outcome := svc.Create(context.Background(), tt.form)

			assert.Equal(t, tt.wantRedirect, outcome.RedirectTo)
			assert.Equal(t, tt.wantMessage, outcome.Message)

			if tt.wantErrField != "" {
				assert.Contains(t, outcome.Errors, tt.wantErrField)
			}
		})
	}
}

func TestService_Create_AssignsServerDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	cache := invoice.NewMockListCache(ctrl)

	var persisted invoice.Invoice

	repo.EXPECT().
		CreateInvoice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv *invoice.Invoice) error {
			persisted = *inv
			return nil
		})
	cache.EXPECT().Invalidate(gomock.Any()).Return(nil)

	// A date smuggled into the submission must not end up on the invoice.
	form := validForm(uuid.NewString())
	form.Set("date", "1999-12-31")

	svc := invoice.NewService(repo, cache)
	outcome := svc.Create(context.Background(), form)
	require.False(t, outcome.Failed())

	now := time.Now().UTC()
	wantDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	assert.Equal(t, wantDate, persisted.Date)
	assert.Equal(t, int64(4500), persisted.Amount)
	assert.Equal(t, invoice.StatusPending, persisted.Status)
}

func TestService_Update(t *testing.T) {
	id := uuid.New()

	type testCase struct {
		name         string
		form         url.Values
		setupMock    func(repo *invoice.MockRepository, cache *invoice.MockListCache)
		wantRedirect string
		wantMessage  string
	}

	tests := []testCase{
		{
			name: "Success",
			form: validForm(uuid.NewString()),
			setupMock: func(repo *invoice.MockRepository, cache *invoice.MockListCache) {
				repo.EXPECT().
					UpdateInvoice(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, inv *invoice.Invoice) error {
						assert.Equal(t, id, inv.ID)
						// The issue date is immutable and never part of the update.
						assert.True(t, inv.Date.IsZero())
						return nil
					})
				cache.EXPECT().Invalidate(gomock.Any()).Return(nil)
			},
			wantRedirect: "/dashboard/invoices",
		},
		{
			name: "ValidationFailure",
			form: url.Values{
				"customerId": {uuid.NewString()},
				"amount":     {"0"},
				"status":     {"paid"},
			},
			setupMock:   func(repo *invoice.MockRepository, cache *invoice.MockListCache) {},
			wantMessage: "Missing Fields. Failed to Update Invoice.",
		},
		{
			name: "PersistenceFailure",
			form: validForm(uuid.NewString()),
			setupMock: func(repo *invoice.MockRepository, cache *invoice.MockListCache) {
				repo.EXPECT().
					UpdateInvoice(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantMessage: "Database Error: Failed to Update Invoice.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := invoice.NewMockRepository(ctrl)
			cache := invoice.NewMockListCache(ctrl)
			tt.setupMock(repo, cache)

			svc := invoice.NewService(repo, cache)
			outcome := svc.Update(context.Background(), id, tt.form)

			assert.Equal(t, tt.wantRedirect, outcome.RedirectTo)
			assert.Equal(t, tt.wantMessage, outcome.Message)
		})
	}
}

func TestService_Delete(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(repo *invoice.MockRepository, cache *invoice.MockListCache)
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(repo *invoice.MockRepository, cache *invoice.MockListCache) {
				repo.EXPECT().DeleteInvoice(gomock.Any(), gomock.Any()).Return(nil)
				cache.EXPECT().Invalidate(gomock.Any()).Return(nil)
			},
		},
		{
			// A failed delete is swallowed and the cache is still invalidated.
			name: "FailureStillInvalidatesCache",
			setupMock: func(repo *invoice.MockRepository, cache *invoice.MockListCache) {
				repo.EXPECT().DeleteInvoice(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
				cache.EXPECT().Invalidate(gomock.Any()).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := invoice.NewMockRepository(ctrl)
			cache := invoice.NewMockListCache(ctrl)
			tt.setupMock(repo, cache)

			svc := invoice.NewService(repo, cache)
			svc.Delete(context.Background(), uuid.New())
		})
	}
}

func TestService_CreateBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	cache := invoice.NewMockListCache(ctrl)

	invs := []*invoice.Invoice{
		{CustomerID: uuid.New(), Amount: 1000, Status: invoice.StatusPaid},
	}

	repo.EXPECT().CreateInvoices(gomock.Any(), invs).Return(nil)
	cache.EXPECT().Invalidate(gomock.Any()).Return(nil)

	svc := invoice.NewService(repo, cache)
	require.NoError(t, svc.CreateBatch(context.Background(), invs))

	// An empty batch never touches the repository.
	require.NoError(t, svc.CreateBatch(context.Background(), nil))
}
