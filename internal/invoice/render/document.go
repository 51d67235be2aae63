// Package render resolves an invoice plus company and client context into
// the render-ready document consumed by the PDF provider.
package render

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/portal/internal/config"
	"github.com/smallbiznis/portal/internal/invoice/domain"
)

// Line is one printable row of the items table.
type Line struct {
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}

// BillTo is the resolved recipient block.
type BillTo struct {
	Name    string
	Address string
	Email   string
}

// Document is the fully resolved model a renderer lays out. Preview and
// download both render from the same Document so the two stay in parity.
type Document struct {
	Company config.CompanyInfo
	BillTo  BillTo

	Number       string
	IssueDate    time.Time
	DueDate      time.Time
	PaymentTerms string

	Items []Line

	Subtotal  decimal.Decimal
	TaxRate   decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal

	// Notes is omitted from the layout entirely when empty.
	Notes string

	// Watermarked gates the PAID overlay; true only for paid invoices.
	Watermarked bool
}

// syntheticDescription labels the single fallback line generated when an
// invoice carries no explicit items.
const syntheticDescription = "Services"

// Resolve builds the document for one invoice. It is pure and
// total-trusting: line totals are taken as supplied and never reconciled
// against the invoice amount.
func Resolve(inv domain.Invoice, company config.CompanyInfo, overlay domain.ClientOverlay, taxRate decimal.Decimal) Document {
	doc := Document{
		Company: company,
		BillTo: BillTo{
			Name:    overlay.ClientName,
			Address: overlay.ClientAddress,
			Email:   overlay.ClientEmail,
		},
		Number:       inv.InvoiceNumber,
		IssueDate:    inv.Date,
		DueDate:      inv.Date,
		PaymentTerms: overlay.PaymentTerms,
		Notes:        overlay.Notes,
		Watermarked:  inv.Status == domain.InvoiceStatusPaid,
	}

	// Display-only fallback; the invoice itself is not mutated.
	if inv.DueDate != nil {
		doc.DueDate = *inv.DueDate
	}

	if len(inv.Items) > 0 {
		subtotal := decimal.Zero
		doc.Items = make([]Line, 0, len(inv.Items))
		for _, item := range inv.Items {
			doc.Items = append(doc.Items, Line{
				Description: item.Description,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				Total:       item.Total,
			})
			subtotal = subtotal.Add(item.Total)
		}
		doc.Subtotal = subtotal
	} else {
		doc.Items = []Line{{
			Description: syntheticDescription,
			Quantity:    1,
			UnitPrice:   inv.Amount,
			Total:       inv.Amount,
		}}
		doc.Subtotal = inv.Amount
	}

	doc.TaxRate = taxRate
	doc.TaxAmount = doc.Subtotal.Mul(taxRate)
	doc.Total = doc.Subtotal.Add(doc.TaxAmount)

	return doc
}
