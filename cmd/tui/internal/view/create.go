package view

import (
	"fmt"
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwarren02/billdesk/internal/customer"
	"github.com/mwarren02/billdesk/internal/invoice"
)

type createState int

const (
	createStateLoading createState = iota
	createStateForm
	createStateDone
)

// CreateModel drives the new-invoice form. The submission goes through the
// same validation and mutation pipeline as the web form, so field errors
// come back with the same messages.
type CreateModel struct {
	CommonModel
	invoiceSvc  *invoice.Service
	customerSvc *customer.Service

	state createState
	form  *huh.Form

	err    error
	result string

	formCustomer string
	formAmount   string
	formStatus   string
}

type loadCustomersMsg struct {
	customers []*customer.Customer
	err       error
}

type createDoneMsg struct {
	outcome invoice.Outcome
}

func NewCreateModel(invoiceSvc *invoice.Service, customerSvc *customer.Service) CreateModel {
	return CreateModel{
		invoiceSvc:  invoiceSvc,
		customerSvc: customerSvc,
		state:       createStateLoading,
	}
}

func (m CreateModel) Title() string { return "New Invoice" }
func (m CreateModel) ShortHelp() string {
	if m.state == createStateForm {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back"
}

func (m CreateModel) Init() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		customers, err := m.customerSvc.List(ctx)

		return loadCustomersMsg{customers: customers, err: err}
	}
}

func (m CreateModel) submitCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		form := url.Values{
			"customerId": {m.formCustomer},
			"amount":     {m.formAmount},
			"status":     {m.formStatus},
		}

		return createDoneMsg{outcome: m.invoiceSvc.Create(ctx, form)}
	}
}

func (m CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadCustomersMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = createStateDone

			return m, nil
		}

		m.buildForm(msg.customers)
		m.state = createStateForm

		return m, m.form.Init()

	case createDoneMsg:
		m.state = createStateDone

		if msg.outcome.Failed() {
			m.result = msg.outcome.Message + "\n" + flattenErrors(msg.outcome.Errors)
		} else {
			m.result = "Invoice created"
		}

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	if m.state != createStateForm {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.submitCmd()
}

func (m *CreateModel) buildForm(customers []*customer.Customer) {
	options := make([]huh.Option[string], 0, len(customers))
	for _, c := range customers {
		options = append(options, huh.NewOption(c.Name, c.ID.String()))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("customerId").
				Title("Customer").
				Options(options...).
				Value(&m.formCustomer),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("45.00").
				Value(&m.formAmount),

			huh.NewSelect[string]().
				Key("status").
				Title("Status").
				Options(
					huh.NewOption("Pending", string(invoice.StatusPending)),
					huh.NewOption("Paid", string(invoice.StatusPaid)),
				).
				Value(&m.formStatus),
		),
	).WithWidth(45).WithShowHelp(false)
}

func flattenErrors(errs invoice.FieldErrors) string {
	var lines []string

	for field, msgs := range errs {
		lines = append(lines, fmt.Sprintf("%s: %s", field, strings.Join(msgs, " ")))
	}

	return strings.Join(lines, "\n")
}

func (m CreateModel) View() string {
	switch m.state {
	case createStateLoading:
		return lipgloss.NewStyle().Padding(2).Render("Loading customers...")
	case createStateForm:
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(50).
			Render("New Invoice\n\n" + m.form.View())

		return panel
	default:
		if m.err != nil {
			return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
		}

		return lipgloss.NewStyle().Padding(2).Render(m.result + "\n\nEsc: back")
	}
}
