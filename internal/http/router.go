package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mwarren02/billdesk/internal/auth"
	"github.com/mwarren02/billdesk/internal/http/authn"
	"github.com/mwarren02/billdesk/internal/http/customer"
	"github.com/mwarren02/billdesk/internal/http/importcsv"
	"github.com/mwarren02/billdesk/internal/http/invoice"
)

func New(
	sessions *auth.SessionManager,
	authnH *authn.Handler,
	invoicesH *invoice.Handler,
	customersH *customer.Handler,
	importH *importcsv.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))
	router.Use(Gate(sessions))

	authnH.Routes(router)

	router.Route("/dashboard", func(r chi.Router) {
		r.Route("/invoices", invoicesH.Routes)
		r.Route("/customers", customersH.Routes)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/import", importH.Routes)
	})

	return router
}
