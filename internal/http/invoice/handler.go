package invoice

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mwarren02/billdesk/internal/customer"
	"github.com/mwarren02/billdesk/internal/invoice"
	"github.com/mwarren02/billdesk/internal/invoice/cache"
)

type Handler struct {
	svc       *invoice.Service
	customers *customer.Service
	cache     *cache.ListCache
}

func NewHandler(svc *invoice.Service, customers *customer.Service, listCache *cache.ListCache) *Handler {
	return &Handler{svc: svc, customers: customers, cache: listCache}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}/edit", h.edit)
	r.Post("/{id}", h.update)
	r.Post("/{id}/delete", h.delete)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	h.writeOutcome(w, r, h.svc.Create(r.Context(), r.PostForm))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	h.writeOutcome(w, r, h.svc.Update(r.Context(), id, r.PostForm))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	// Delete reports nothing; the caller always ends up back on the list.
	h.svc.Delete(r.Context(), id)

	http.Redirect(w, r, invoice.ListPath, http.StatusSeeOther)
}

// writeOutcome translates a mutation outcome into HTTP: a navigation
// outcome becomes a redirect, anything else is the error payload for the
// form to re-render.
func (h *Handler) writeOutcome(w http.ResponseWriter, r *http.Request, outcome invoice.Outcome) {
	if !outcome.Failed() {
		http.Redirect(w, r, outcome.RedirectTo, http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)

	if err := json.NewEncoder(w).Encode(outcome); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, filtered := listFilterFromQuery(r)

	// Only the unfiltered dashboard view is cached.
	if !filtered {
		payload, ok, err := h.cache.Get(ctx)
		if err != nil {
			slog.Error("failed to read invoice list cache", "error", err)
		} else if ok {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(payload)

			return
		}
	}

	invs, err := h.svc.List(ctx, filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	payload, err := json.Marshal(toResponseList(invs))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if !filtered {
		if err := h.cache.Set(ctx, payload); err != nil {
			slog.Error("failed to write invoice list cache", "error", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(payload)
}

// edit returns the data the edit form needs. The invoice and the customer
// list are independent reads and are fetched concurrently; both must
// complete before anything is written.
func (h *Handler) edit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var (
		inv       *invoice.Invoice
		customers []*customer.Customer
	)

	g, ctx := errgroup.WithContext(r.Context())

	g.Go(func() error {
		var err error
		inv, err = h.svc.Get(ctx, id)
		return err
	})

	g.Go(func() error {
		var err error
		customers, err = h.customers.List(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			http.Error(w, "invoice not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	resp := editResponse{
		Invoice:   toResponse(inv),
		Customers: make([]customerResponse, 0, len(customers)),
	}

	for _, c := range customers {
		resp.Customers = append(resp.Customers, customerResponse{ID: c.ID, Name: c.Name})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func listFilterFromQuery(r *http.Request) (invoice.ListFilter, bool) {
	filter := invoice.ListFilter{}
	filtered := false

	if s := r.URL.Query().Get("status"); s != "" {
		status := invoice.Status(s)
		filter.Status = &status
		filtered = true
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = &t
			filtered = true
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = &t
			filtered = true
		}
	}

	return filter, filtered
}
