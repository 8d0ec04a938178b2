package importcsv

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mwarren02/billdesk/internal/customer"
	"github.com/mwarren02/billdesk/internal/importer"
	"github.com/mwarren02/billdesk/internal/invoice"
)

type Handler struct {
	importSvc  *importer.Service
	invoiceSvc *invoice.Service
	customers  *customer.Service
}

func NewHandler(importSvc *importer.Service, invoiceSvc *invoice.Service, customers *customer.Service) *Handler {
	return &Handler{
		importSvc:  importSvc,
		invoiceSvc: invoiceSvc,
		customers:  customers,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importResponse struct {
	Imported int `json:"imported"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := h.importSvc.Parse(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	invs, err := h.resolveRows(r, rows)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if err := h.invoiceSvc.CreateBatch(r.Context(), invs); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(importResponse{Imported: len(invs)}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// resolveRows turns customer names into ids. An unknown name rejects the
// whole file; imports are all-or-nothing.
func (h *Handler) resolveRows(r *http.Request, rows []importer.Row) ([]*invoice.Invoice, error) {
	invs := make([]*invoice.Invoice, 0, len(rows))

	for _, row := range rows {
		c, err := h.customers.Resolve(r.Context(), row.Customer)
		if err != nil {
			if errors.Is(err, customer.ErrNotFound) {
				return nil, fmt.Errorf("unknown customer %q: %w", row.Customer, err)
			}

			return nil, err
		}

		invs = append(invs, &invoice.Invoice{
			CustomerID: c.ID,
			Amount:     row.Amount,
			Status:     row.Status,
			Date:       row.Date,
		})
	}

	return invs, nil
}
