package invoice

import (
	"time"

	"github.com/google/uuid"

	"github.com/mwarren02/billdesk/internal/invoice"
)

type invoiceResponse struct {
	ID         uuid.UUID      `json:"id"`
	CustomerID uuid.UUID      `json:"customer_id"`
	Amount     int64          `json:"amount"`
	Status     invoice.Status `json:"status"`
	Date       string         `json:"date"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  *time.Time     `json:"updated_at,omitempty"`
}

type customerResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type editResponse struct {
	Invoice   invoiceResponse    `json:"invoice"`
	Customers []customerResponse `json:"customers"`
}

func toResponse(inv *invoice.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:         inv.ID,
		CustomerID: inv.CustomerID,
		Amount:     inv.Amount,
		Status:     inv.Status,
		Date:       inv.Date.Format(time.DateOnly),
		CreatedAt:  inv.CreatedAt,
		UpdatedAt:  inv.UpdatedAt,
	}
}

func toResponseList(invs []*invoice.Invoice) []invoiceResponse {
	resp := make([]invoiceResponse, len(invs))
	for i, inv := range invs {
		resp[i] = toResponse(inv)
	}

	return resp
}
