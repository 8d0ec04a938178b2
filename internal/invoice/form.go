package invoice

import (
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Field-scoped messages surfaced on invalid submissions.
const (
	msgCustomerRequired = "Please select a customer."
	msgAmountPositive   = "Please enter an amount greater than $0."
	msgStatusRequired   = "Please select an invoice status."
)

// FieldErrors maps a form field name to its validation messages, in the
// order the checks ran.
type FieldErrors map[string][]string

func (fe FieldErrors) add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// Fields is a validated invoice submission. The invoice id and issue date
// are never part of it: the id is generated by the store and the date is
// assigned by the mutation service.
type Fields struct {
	CustomerID uuid.UUID
	Amount     int64 // cents
	Status     Status
}

// ParseForm validates a raw form submission and converts it into typed
// fields. A failed validation is a normal return value, never an error:
// the second result is non-nil iff at least one field is invalid.
//
// The amount is parsed as a decimal and converted to cents. A value that
// does not parse as a number yields the same message as one that is not
// greater than zero.
func ParseForm(form url.Values) (Fields, FieldErrors) {
	errs := make(FieldErrors)

	var fields Fields

	customerID, err := uuid.Parse(strings.TrimSpace(form.Get("customerId")))
	if err != nil {
		errs.add("customerId", msgCustomerRequired)
	} else {
		fields.CustomerID = customerID
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(form.Get("amount")))
	if err != nil || !amount.IsPositive() {
		errs.add("amount", msgAmountPositive)
	} else {
		fields.Amount = amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	}

	status := Status(form.Get("status"))
	if !status.Valid() {
		errs.add("status", msgStatusRequired)
	} else {
		fields.Status = status
	}

	if len(errs) > 0 {
		return Fields{}, errs
	}

	return fields, nil
}
