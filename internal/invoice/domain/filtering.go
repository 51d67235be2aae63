package domain

import (
	"github.com/smallbiznis/portal/internal/invoice/format"
	"github.com/smallbiznis/portal/pkg/filter"
)

// Filter field identifiers for the invoice list surface.
const (
	FieldInvoiceNumber = "invoice_number"
	FieldDescription   = "description"
	FieldAmount        = "amount"
	FieldDate          = "date"
	FieldStatus        = "status"
)

// FilterOptions describes the fields clients may build advanced filter
// conditions against.
func FilterOptions() []filter.Option {
	return []filter.Option{
		{ID: FieldInvoiceNumber, Label: "Invoice Number", Type: filter.TypeText},
		{ID: FieldDescription, Label: "Description", Type: filter.TypeText},
		{ID: FieldAmount, Label: "Amount", Type: filter.TypeNumber},
		{ID: FieldDate, Label: "Date", Type: filter.TypeDate},
		{ID: FieldStatus, Label: "Status", Type: filter.TypeSelect, Choices: []filter.Choice{
			{Value: string(InvoiceStatusPaid), Label: "Paid"},
			{Value: string(InvoiceStatusPending), Label: "Pending"},
			{Value: string(InvoiceStatusOverdue), Label: "Overdue"},
		}},
	}
}

// FilterOption looks up one option by field id.
func FilterOption(field string) (filter.Option, bool) {
	for _, opt := range FilterOptions() {
		if opt.ID == field {
			return opt, true
		}
	}
	return filter.Option{}, false
}

// FieldValue resolves an invoice's typed value for a filter field.
func FieldValue(inv Invoice, field string) (filter.Value, bool) {
	switch field {
	case FieldInvoiceNumber:
		return filter.TextValue(inv.InvoiceNumber), true
	case FieldDescription:
		return filter.TextValue(inv.Description), true
	case FieldAmount:
		return filter.NumberValue(inv.Amount), true
	case FieldDate:
		return filter.DateValue(inv.Date), true
	case FieldStatus:
		return filter.SelectValue(string(inv.Status)), true
	default:
		return filter.Value{}, false
	}
}

// SearchFields returns the strings free-text search is matched against:
// invoice number, description, and the formatted currency amount so a
// search for "1,200" finds a $1,200.00 invoice.
func SearchFields(inv Invoice) []string {
	return []string{inv.InvoiceNumber, inv.Description, format.Amount(inv.Amount)}
}
