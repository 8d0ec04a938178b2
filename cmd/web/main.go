package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/mwarren02/billdesk/internal/auth"
	authStore "github.com/mwarren02/billdesk/internal/auth/store"
	"github.com/mwarren02/billdesk/internal/config"
	"github.com/mwarren02/billdesk/internal/customer"
	customerStore "github.com/mwarren02/billdesk/internal/customer/store"
	"github.com/mwarren02/billdesk/internal/database"
	billdeskHttp "github.com/mwarren02/billdesk/internal/http"
	authnHandler "github.com/mwarren02/billdesk/internal/http/authn"
	customerHandler "github.com/mwarren02/billdesk/internal/http/customer"
	importHandler "github.com/mwarren02/billdesk/internal/http/importcsv"
	invoiceHandler "github.com/mwarren02/billdesk/internal/http/invoice"
	"github.com/mwarren02/billdesk/internal/importer"
	"github.com/mwarren02/billdesk/internal/invoice"
	"github.com/mwarren02/billdesk/internal/invoice/cache"
	invoiceStore "github.com/mwarren02/billdesk/internal/invoice/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	redisClient, err := cache.NewClient(cfg.Redis.URL)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	var (
		listCache       = cache.NewListCache(redisClient, cfg.Redis.ListTTL)
		invoiceService  = invoice.NewService(invoiceStore.New(db), listCache)
		customerService = customer.NewService(customerStore.New(db))
		importService   = importer.NewService()
		verifier        = auth.NewVerifier(authStore.New(db))
		sessions        = auth.NewSessionManager(cfg.Session.Secret, cfg.Session.TTL)
	)

	var (
		authnH    = authnHandler.NewHandler(verifier, sessions, cfg.Session.TTL)
		invoicesH = invoiceHandler.NewHandler(invoiceService, customerService, listCache)
		customerH = customerHandler.NewHandler(customerService)
		importH   = importHandler.NewHandler(importService, invoiceService, customerService)
	)

	router := billdeskHttp.New(sessions, authnH, invoicesH, customerH, importH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
