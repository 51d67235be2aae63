package render

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/portal/internal/config"
	"github.com/smallbiznis/portal/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
)

var testCompany = config.CompanyInfo{
	Name:    "Acme Web Studio",
	Address: "100 Main St, Springfield",
	Email:   "billing@acme.example",
}

func testInvoice() domain.Invoice {
	due := time.Date(2023, 4, 11, 0, 0, 0, 0, time.UTC)
	return domain.Invoice{
		InvoiceNumber: "INV-2023-042",
		Date:          time.Date(2023, 3, 12, 0, 0, 0, 0, time.UTC),
		DueDate:       &due,
		Amount:        decimal.NewFromInt(1200),
		Status:        domain.InvoiceStatusPending,
	}
}

func TestResolve_SyntheticLine(t *testing.T) {
	inv := testInvoice()

	doc := Resolve(inv, testCompany, domain.ClientOverlay{}, decimal.Zero)

	assert.Len(t, doc.Items, 1)
	assert.Equal(t, "Services", doc.Items[0].Description)
	assert.Equal(t, int64(1), doc.Items[0].Quantity)
	assert.True(t, doc.Items[0].UnitPrice.Equal(inv.Amount))
	assert.True(t, doc.Items[0].Total.Equal(inv.Amount))
	assert.True(t, doc.Subtotal.Equal(inv.Amount))
}

func TestResolve_SubtotalFromItems(t *testing.T) {
	inv := testInvoice()
	// invoice amount disagrees with the lines; the lines win
	inv.Amount = decimal.NewFromInt(999)
	inv.Items = []domain.InvoiceLineItem{
		{Description: "Design", Quantity: 2, UnitPrice: decimal.NewFromInt(250), Total: decimal.NewFromInt(500)},
		{Description: "Development", Quantity: 1, UnitPrice: decimal.NewFromInt(700), Total: decimal.NewFromInt(700)},
	}

	doc := Resolve(inv, testCompany, domain.ClientOverlay{}, decimal.Zero)

	assert.Len(t, doc.Items, 2)
	assert.True(t, doc.Subtotal.Equal(decimal.NewFromInt(1200)))
	assert.True(t, doc.Total.Equal(doc.Subtotal))
	assert.True(t, doc.TaxAmount.IsZero())
}

func TestResolve_TaxApplied(t *testing.T) {
	inv := testInvoice()

	doc := Resolve(inv, testCompany, domain.ClientOverlay{}, decimal.RequireFromString("0.1"))

	assert.True(t, doc.TaxAmount.Equal(decimal.NewFromInt(120)), doc.TaxAmount.String())
	assert.True(t, doc.Total.Equal(decimal.NewFromInt(1320)), doc.Total.String())
}

func TestResolve_DueDateFallback(t *testing.T) {
	inv := testInvoice()
	inv.DueDate = nil

	doc := Resolve(inv, testCompany, domain.ClientOverlay{}, decimal.Zero)

	assert.True(t, doc.DueDate.Equal(inv.Date))
}

func TestResolve_Watermark(t *testing.T) {
	inv := testInvoice()
	for _, tc := range []struct {
		status domain.InvoiceStatus
		want   bool
	}{
		{domain.InvoiceStatusPaid, true},
		{domain.InvoiceStatusPending, false},
		{domain.InvoiceStatusOverdue, false},
	} {
		inv.Status = tc.status
		doc := Resolve(inv, testCompany, domain.ClientOverlay{}, decimal.Zero)
		assert.Equal(t, tc.want, doc.Watermarked, string(tc.status))
	}
}

func TestResolve_Overlay(t *testing.T) {
	inv := testInvoice()
	overlay := domain.ClientOverlay{
		ClientName:    "Northwind Traders",
		ClientAddress: "1 Harbor Way",
		ClientEmail:   "ap@northwind.example",
		PaymentTerms:  "Net 30",
		Notes:         "Thank you for the quick turnaround.",
	}

	doc := Resolve(inv, testCompany, overlay, decimal.Zero)

	assert.Equal(t, "Northwind Traders", doc.BillTo.Name)
	assert.Equal(t, "1 Harbor Way", doc.BillTo.Address)
	assert.Equal(t, "ap@northwind.example", doc.BillTo.Email)
	assert.Equal(t, "Net 30", doc.PaymentTerms)
	assert.Equal(t, "Thank you for the quick turnaround.", doc.Notes)
	assert.Equal(t, testCompany, doc.Company)
}
