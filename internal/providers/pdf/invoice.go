package pdf

import (
	"context"
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/portal/internal/invoice/format"
	"github.com/smallbiznis/portal/internal/invoice/render"
)

const dateDisplayLayout = "Jan 2, 2006"

var hundred = decimal.NewFromInt(100)

// Generator lays out invoice documents with maroto.
type Generator struct {
	now func() time.Time
}

func New() Provider {
	return &Generator{now: time.Now}
}

// GenerateInvoice renders the resolved document into PDF bytes. The
// layout, top to bottom: company identity and title, bill-to vs invoice
// metadata, items table, right-aligned totals, optional notes, and a
// footer carrying the render timestamp.
func (g *Generator) GenerateInvoice(ctx context.Context, doc render.Document) ([]byte, error) {
	_ = ctx

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	g.addHeader(m, doc)
	g.addInfoBlock(m, doc)
	if doc.Watermarked {
		g.addPaidWatermark(m)
	}
	g.addItemsTable(m, doc)
	g.addSummary(m, doc)
	if doc.Notes != "" {
		g.addNotes(m, doc)
	}
	g.addFooter(m)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate invoice pdf: %w", err)
	}

	return out.GetBytes(), nil
}

func (g *Generator) addHeader(m core.Maroto, doc render.Document) {
	companyCol := col.New(7).Add(
		text.New(doc.Company.Name, props.Text{Size: 14, Style: fontstyle.Bold}),
		text.New(doc.Company.Address, props.Text{Top: 7, Size: 9}),
		text.New(doc.Company.Phone, props.Text{Top: 11, Size: 9}),
		text.New(doc.Company.Email, props.Text{Top: 15, Size: 9}),
		text.New(doc.Company.Website, props.Text{Top: 19, Size: 9}),
	)

	if doc.Company.LogoPath != "" {
		m.AddRow(14, image.NewFromFileCol(3, doc.Company.LogoPath, props.Rect{
			Center:  false,
			Percent: 80,
		}), col.New(9))
	}

	m.AddRow(26,
		companyCol,
		text.NewCol(5, "INVOICE", props.Text{
			Size:  24,
			Style: fontstyle.Bold,
			Align: align.Right,
		}),
	)
}

func (g *Generator) addInfoBlock(m core.Maroto, doc render.Document) {
	m.AddRow(30,
		col.New(6).Add(
			text.New("Bill To", props.Text{Style: fontstyle.Bold, Size: 10}),
			text.New(doc.BillTo.Name, props.Text{Top: 6, Size: 9}),
			text.New(doc.BillTo.Address, props.Text{Top: 10, Size: 9}),
			text.New(doc.BillTo.Email, props.Text{Top: 14, Size: 9}),
		),
		col.New(6).Add(
			text.New("Invoice Number: "+doc.Number, props.Text{Size: 9, Align: align.Right}),
			text.New("Date: "+doc.IssueDate.Format(dateDisplayLayout), props.Text{Top: 4, Size: 9, Align: align.Right}),
			text.New("Due Date: "+doc.DueDate.Format(dateDisplayLayout), props.Text{Top: 8, Size: 9, Align: align.Right}),
			text.New("Payment Terms: "+doc.PaymentTerms, props.Text{Top: 12, Size: 9, Align: align.Right}),
		),
	)
}

// addPaidWatermark approximates the low-opacity diagonal PAID overlay with
// a large light-gray banner; maroto has no text rotation.
func (g *Generator) addPaidWatermark(m core.Maroto) {
	m.AddRow(18,
		text.NewCol(12, "PAID", props.Text{
			Size:  42,
			Style: fontstyle.Bold,
			Align: align.Center,
			Color: &props.Color{Red: 220, Green: 220, Blue: 220},
		}),
	)
}

// Column spans approximate the fixed relative widths of the items table:
// description 40%, quantity 15%, unit price 20%, amount 25%.
func (g *Generator) addItemsTable(m core.Maroto, doc render.Document) {
	m.AddRow(8,
		text.NewCol(5, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit Price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(3, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	m.AddRow(2, line.NewCol(12, props.Line{Thickness: 0.4}))

	for _, item := range doc.Items {
		m.AddRow(7,
			text.NewCol(5, item.Description, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%d", item.Quantity), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, format.Amount(item.UnitPrice), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(3, format.Amount(item.Total), props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRow(2, line.NewCol(12, props.Line{Thickness: 0.2}))
}

func (g *Generator) addSummary(m core.Maroto, doc render.Document) {
	m.AddRow(6,
		col.New(7),
		text.NewCol(2, "Subtotal", props.Text{Size: 9}),
		text.NewCol(3, format.Amount(doc.Subtotal), props.Text{Size: 9, Align: align.Right}),
	)
	if doc.TaxRate.IsPositive() {
		m.AddRow(6,
			col.New(7),
			text.NewCol(2, fmt.Sprintf("Tax (%s%%)", doc.TaxRate.Mul(hundred).String()), props.Text{Size: 9}),
			text.NewCol(3, format.Amount(doc.TaxAmount), props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRow(8,
		col.New(7),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 10}),
		text.NewCol(3, format.Amount(doc.Total), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}),
	)
}

func (g *Generator) addNotes(m core.Maroto, doc render.Document) {
	m.AddRow(16,
		col.New(12).Add(
			text.New("Notes", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.New(doc.Notes, props.Text{Top: 5, Size: 9}),
		),
	)
}

func (g *Generator) addFooter(m core.Maroto) {
	m.AddRow(14,
		col.New(12).Add(
			text.New("Thank you for your business!", props.Text{Top: 4, Size: 9, Align: align.Center}),
			text.New("Generated on "+g.now().Format("Jan 2, 2006 3:04 PM"), props.Text{Top: 9, Size: 7, Align: align.Center}),
		),
	)
}
