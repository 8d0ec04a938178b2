package importer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwarren02/billdesk/internal/importer"
	"github.com/mwarren02/billdesk/internal/invoice"
)

func TestParse(t *testing.T) {
	input := strings.Join([]string{
		"Customer;Amount;Status;Date",
		"Acme Corp;45.00;pending;2026-08-01",
		"Séverine Müller;1,250.50;paid;2026-08-15",
		"",
	}, "\n")

	svc := importer.NewService()

	rows, err := svc.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, importer.Row{
		Customer: "Acme Corp",
		Amount:   4500,
		Status:   invoice.StatusPending,
		Date:     time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}, rows[0])

	assert.Equal(t, "Séverine Müller", rows[1].Customer)
	assert.Equal(t, int64(125050), rows[1].Amount)
	assert.Equal(t, invoice.StatusPaid, rows[1].Status)
}

func TestParse_JunkBeforeHeader(t *testing.T) {
	input := strings.Join([]string{
		"Exported 2026-08-30",
		"",
		"Customer;Amount;Status",
		"Acme Corp;10;paid",
	}, "\n")

	svc := importer.NewService()

	rows, err := svc.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1000), rows[0].Amount)
}

func TestParse_MissingDateDefaultsToToday(t *testing.T) {
	input := "Customer;Amount;Status\nAcme Corp;5.25;pending\n"

	svc := importer.NewService()

	rows, err := svc.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, time.Now().UTC().Truncate(24*time.Hour), rows[0].Date)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "NoHeader",
			input: "a;b;c\n1;2;3\n",
		},
		{
			name:  "BadAmount",
			input: "Customer;Amount;Status\nAcme;free;pending\n",
		},
		{
			name:  "NegativeAmount",
			input: "Customer;Amount;Status\nAcme;-5;pending\n",
		},
		{
			name:  "BadStatus",
			input: "Customer;Amount;Status\nAcme;10;overdue\n",
		},
		{
			name:  "BadDate",
			input: "Customer;Amount;Status;Date\nAcme;10;pending;someday\n",
		},
	}

	svc := importer.NewService()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Parse(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestParse_SkipsRowsWithoutCustomer(t *testing.T) {
	input := "Customer;Amount;Status\n;10;pending\nAcme;10;pending\n"

	svc := importer.NewService()

	rows, err := svc.Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
