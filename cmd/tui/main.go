package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/mwarren02/billdesk/cmd/tui/internal/view"
	"github.com/mwarren02/billdesk/internal/config"
	"github.com/mwarren02/billdesk/internal/customer"
	customerStore "github.com/mwarren02/billdesk/internal/customer/store"
	"github.com/mwarren02/billdesk/internal/database"
	"github.com/mwarren02/billdesk/internal/invoice"
	"github.com/mwarren02/billdesk/internal/invoice/cache"
	invoiceStore "github.com/mwarren02/billdesk/internal/invoice/store"
)

type model struct {
	invoiceSvc  *invoice.Service
	customerSvc *customer.Service

	currentView View

	listView   view.ListModel
	createView view.CreateModel
}

type View int

const (
	ViewMenu   View = 0
	ViewList   View = 1
	ViewCreate View = 2
)

func initialModel() model {
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

	redisClient, err := cache.NewClient(cfg.Redis.URL)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}

	listCache := cache.NewListCache(redisClient, cfg.Redis.ListTTL)
	invoiceSvc := invoice.NewService(invoiceStore.New(db), listCache)
	customerSvc := customer.NewService(customerStore.New(db))

	return model{
		invoiceSvc:  invoiceSvc,
		customerSvc: customerSvc,
		currentView: ViewMenu,
		listView:    view.NewListModel(invoiceSvc, customerSvc),
		createView:  view.NewCreateModel(invoiceSvc, customerSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewList
				m.listView = view.NewListModel(m.invoiceSvc, m.customerSvc)

				return m, m.listView.Init()
			case "2":
				m.currentView = ViewCreate
				m.createView = view.NewCreateModel(m.invoiceSvc, m.customerSvc)

				return m, m.createView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewList:
		var newModel tea.Model
		newModel, cmd = m.listView.Update(msg)
		m.listView = newModel.(view.ListModel)
	case ViewCreate:
		var newModel tea.Model
		newModel, cmd = m.createView.Update(msg)
		m.createView = newModel.(view.CreateModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Billdesk TUI\n\n" +
				"1. List Invoices\n" +
				"2. New Invoice\n\n" +
				"q. Quit",
		)
	case ViewList:
		return m.listView.View()
	case ViewCreate:
		return m.createView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
