package validation

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Messages returned for each violated invoice form constraint. These strings
// are part of the form contract; do not translate or reword them.
const (
	MsgSelectCustomer = "must select a customer"
	MsgAmountPositive = "must enter a number greater than 0"
	MsgSelectStatus   = "must select an invoice status"
)

// invoiceFields in form order; strict parsing reports the first violation in
// this order.
var invoiceFields = []string{"customerId", "amount", "status"}

var invoiceStatuses = []string{"pending", "paid"}

// InvoiceInput is a validated invoice form submission. The server-generated
// fields (id, date) are never part of the form and are not checked here.
type InvoiceInput struct {
	CustomerID string
	Amount     float64 // major units; conversion to cents happens at persist time
	Status     string
}

// InvoiceValidator checks untrusted form input against the invoice schema.
// It carries no state; construct one and hand it to each operation that
// needs it.
type InvoiceValidator struct{}

func NewInvoiceValidator() InvoiceValidator { return InvoiceValidator{} }

// Validate is the lenient mode: it never fails outright, reporting every
// violated field instead of stopping at the first one.
func (InvoiceValidator) Validate(form url.Values) (InvoiceInput, Violations) {
	v := Violations{}
	in := InvoiceInput{
		CustomerID: strings.TrimSpace(form.Get("customerId")),
		Status:     form.Get("status"),
	}

	Required("customerId", in.CustomerID, MsgSelectCustomer, v)

	raw := strings.TrimSpace(form.Get("amount"))
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		// coercion failure reads the same as a non-positive amount
		v.Add("amount", MsgAmountPositive)
	} else {
		in.Amount = amount
		GreaterThan("amount", amount, 0, MsgAmountPositive, v)
	}

	OneOf("status", in.Status, invoiceStatuses, MsgSelectStatus, v)

	return in, v
}

// Parse is the strict mode: the first violated constraint aborts with an
// error naming the field. Callers are expected to have pre-validated the
// form, so a failure here is a fault rather than user feedback.
func (val InvoiceValidator) Parse(form url.Values) (InvoiceInput, error) {
	in, v := val.Validate(form)
	for _, field := range invoiceFields {
		if msgs := v[field]; len(msgs) > 0 {
			return InvoiceInput{}, fmt.Errorf("invalid %s: %s", field, msgs[0])
		}
	}
	return in, nil
}
