package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/mwarren02/billdesk/internal/customer"
	"github.com/mwarren02/billdesk/internal/invoice"
)

type ListModel struct {
	CommonModel
	invoiceSvc  *invoice.Service
	customerSvc *customer.Service

	table table.Model
	invs  []*invoice.Invoice
	names map[uuid.UUID]string

	statusFilterIdx int
	filter          invoice.ListFilter

	loading bool
	err     error
	status  string
}

type loadListMsg struct {
	invs      []*invoice.Invoice
	customers []*customer.Customer
	err       error
}

type deleteDoneMsg struct{}

func NewListModel(invoiceSvc *invoice.Service, customerSvc *customer.Service) ListModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Customer", Width: 28},
		{Title: "Amount", Width: 12},
		{Title: "Status", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ListModel{
		invoiceSvc:  invoiceSvc,
		customerSvc: customerSvc,
		table:       t,
		names:       make(map[uuid.UUID]string),
	}
}

func (m ListModel) Title() string { return "Invoices" }
func (m ListModel) ShortHelp() string {
	return "Esc: back | x: delete | s: status filter | r: refresh"
}

func (m ListModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ListModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		invs, err := m.invoiceSvc.List(ctx, m.filter)
		if err != nil {
			return loadListMsg{err: err}
		}

		customers, err := m.customerSvc.List(ctx)
		if err != nil {
			return loadListMsg{err: err}
		}

		return loadListMsg{invs: invs, customers: customers}
	}
}

func (m ListModel) deleteCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		m.invoiceSvc.Delete(ctx, id)

		return deleteDoneMsg{}
	}
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadListMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.invs = msg.invs
		for _, c := range msg.customers {
			m.names[c.ID] = c.Name
		}

		m.refreshTable()

		return m, nil

	case deleteDoneMsg:
		m.status = "Invoice deleted"
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % 3
			m.applyFilter()

			return m, m.loadCmd()
		case "x":
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.invs) {
				return m, nil
			}

			return m, m.deleteCmd(m.invs[idx].ID)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *ListModel) applyFilter() {
	switch m.statusFilterIdx {
	case 1:
		status := invoice.StatusPending
		m.filter.Status = &status
	case 2:
		status := invoice.StatusPaid
		m.filter.Status = &status
	default:
		m.filter.Status = nil
	}
}

func (m *ListModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.invs))

	for _, inv := range m.invs {
		name := m.names[inv.CustomerID]
		if name == "" {
			name = inv.CustomerID.String()
		}

		rows = append(rows, table.Row{
			FormatDate(inv.Date),
			name,
			FormatAmount(inv.Amount),
			string(inv.Status),
		})
	}

	m.table.SetRows(rows)
}

func (m ListModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading invoices...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	statusLabels := []string{"All", "Pending", "Paid"}

	header := fmt.Sprintf("Filter: [s] Status: %s", statusLabels[m.statusFilterIdx])

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	parts := []string{
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	}

	if m.status != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render(m.status))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
