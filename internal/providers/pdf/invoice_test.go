package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/portal/internal/config"
	"github.com/smallbiznis/portal/internal/invoice/render"
	"github.com/stretchr/testify/assert"
)

func TestFilename(t *testing.T) {
	assert.Equal(t, "invoice-INV-2023-042.pdf", Filename("INV-2023-042"))

	// distinct invoices get distinct names, repeated calls identical ones
	assert.NotEqual(t, Filename("INV-2023-042"), Filename("INV-2023-043"))
	assert.Equal(t, Filename("INV-2023-042"), Filename("INV-2023-042"))
}

func testDocument() render.Document {
	return render.Document{
		Company: config.CompanyInfo{
			Name:    "Acme Web Studio",
			Address: "100 Main St, Springfield",
			Email:   "billing@acme.example",
		},
		BillTo: render.BillTo{
			Name:    "Northwind Traders",
			Address: "1 Harbor Way",
			Email:   "ap@northwind.example",
		},
		Number:       "INV-2023-042",
		IssueDate:    time.Date(2023, 3, 12, 0, 0, 0, 0, time.UTC),
		DueDate:      time.Date(2023, 4, 11, 0, 0, 0, 0, time.UTC),
		PaymentTerms: "Net 30",
		Items: []render.Line{
			{Description: "App development", Quantity: 1, UnitPrice: decimal.NewFromInt(1200), Total: decimal.NewFromInt(1200)},
		},
		Subtotal: decimal.NewFromInt(1200),
		TaxRate:  decimal.RequireFromString("0.1"),
		// derived fields filled the way Resolve would
		TaxAmount: decimal.NewFromInt(120),
		Total:     decimal.NewFromInt(1320),
		Notes:     "Thank you for the quick turnaround.",
	}
}

func TestGenerateInvoice(t *testing.T) {
	gen := &Generator{now: func() time.Time {
		return time.Date(2023, 5, 1, 9, 30, 0, 0, time.UTC)
	}}

	out, err := gen.GenerateInvoice(context.Background(), testDocument())
	assert.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestGenerateInvoice_Watermarked(t *testing.T) {
	gen := &Generator{now: time.Now}

	doc := testDocument()
	doc.Watermarked = true
	doc.Notes = ""

	out, err := gen.GenerateInvoice(context.Background(), doc)
	assert.NoError(t, err)
	assert.NotEmpty(t, out)
}
