// Package seed migrates the schema and loads the demo dataset used when
// no external invoice source is configured.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	clientdomain "github.com/smallbiznis/portal/internal/client/domain"
	"github.com/smallbiznis/portal/internal/config"
	invoicedomain "github.com/smallbiznis/portal/internal/invoice/domain"
	"github.com/smallbiznis/portal/internal/invoice/format"
	ticketdomain "github.com/smallbiznis/portal/internal/ticket/domain"
	"github.com/smallbiznis/portal/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Module migrates and seeds at startup.
var Module = fx.Module("seed", fx.Invoke(Run))

// Run migrates the schema and, when enabled and the database is empty,
// loads the demo dataset.
func Run(db *gorm.DB, cfg config.Config, log *zap.Logger) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	if err := db.AutoMigrate(
		&clientdomain.Client{},
		&invoicedomain.Invoice{},
		&invoicedomain.InvoiceLineItem{},
		&ticketdomain.Ticket{},
	); err != nil {
		return err
	}

	if !cfg.SeedDemo {
		return nil
	}

	ctx := context.Background()

	count, err := repository.ProvideStore[invoicedomain.Invoice](db).Count(ctx, &invoicedomain.Invoice{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}
	clientStore := repository.ProvideStore[clientdomain.Client](db)
	ticketStore := repository.ProvideStore[ticketdomain.Ticket](db)

	if err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		client, err := seedClient(ctx, clientStore.WithTrx(tx), node)
		if err != nil {
			return err
		}
		if err := seedInvoices(tx, node, client.ID); err != nil {
			return err
		}
		return seedTickets(ctx, ticketStore.WithTrx(tx), node)
	}); err != nil {
		return err
	}

	log.Info("demo dataset seeded")
	return nil
}

func seedClient(ctx context.Context, store repository.Repository[clientdomain.Client], node *snowflake.Node) (clientdomain.Client, error) {
	client := clientdomain.Client{
		ID:           node.Generate(),
		Name:         "Northwind Traders",
		Email:        "accounts@northwindtraders.com",
		Address:      "456 Commerce Ave, Seattle, WA 98101",
		PaymentTerms: "Net 30",
	}
	return client, store.Create(ctx, &client)
}

type invoiceSeed struct {
	seq    int64
	date   time.Time
	due    int // days after issue; 0 means no due date
	amount string
	status invoicedomain.InvoiceStatus
	desc   string
	items  []itemSeed
}

type itemSeed struct {
	desc  string
	qty   int64
	unit  string
	total string
}

func seedInvoices(tx *gorm.DB, node *snowflake.Node, clientID snowflake.ID) error {
	seeds := []invoiceSeed{
		{seq: 38, date: date(2023, 1, 15), due: 30, amount: "850.00", status: invoicedomain.InvoiceStatusPaid, desc: "Website maintenance - January"},
		{seq: 39, date: date(2023, 2, 1), due: 30, amount: "2400.00", status: invoicedomain.InvoiceStatusPaid, desc: "E-commerce redesign, phase 1", items: []itemSeed{
			{desc: "Design mockups", qty: 3, unit: "400.00", total: "1200.00"},
			{desc: "Frontend implementation", qty: 24, unit: "50.00", total: "1200.00"},
		}},
		{seq: 40, date: date(2023, 2, 20), amount: "325.00", status: invoicedomain.InvoiceStatusPending, desc: "SSL certificates renewal"},
		{seq: 41, date: date(2023, 3, 5), due: 30, amount: "1200.00", status: invoicedomain.InvoiceStatusPaid, desc: "Monthly hosting and support"},
		{seq: 42, date: date(2023, 3, 12), due: 15, amount: "780.00", status: invoicedomain.InvoiceStatusOverdue, desc: "SEO audit"},
		{seq: 43, date: date(2023, 3, 28), due: 30, amount: "1650.00", status: invoicedomain.InvoiceStatusOverdue, desc: "Performance optimization", items: []itemSeed{
			{desc: "Database tuning", qty: 10, unit: "90.00", total: "900.00"},
			{desc: "CDN configuration", qty: 5, unit: "150.00", total: "750.00"},
		}},
		{seq: 44, date: date(2023, 4, 2), due: 30, amount: "460.00", status: invoicedomain.InvoiceStatusPending, desc: "Content updates - April"},
		{seq: 45, date: date(2023, 4, 18), due: 30, amount: "2100.00", status: invoicedomain.InvoiceStatusPending, desc: "Analytics dashboard buildout"},
	}

	for _, s := range seeds {
		number, err := format.Number(format.DefaultNumberTemplate, s.date, s.seq)
		if err != nil {
			return err
		}

		inv := invoicedomain.Invoice{
			ID:            node.Generate(),
			InvoiceNumber: number,
			Date:          s.date,
			Amount:        decimal.RequireFromString(s.amount),
			Status:        s.status,
			Description:   s.desc,
			ClientID:      &clientID,
		}
		if s.due > 0 {
			due := s.date.AddDate(0, 0, s.due)
			inv.DueDate = &due
		}
		for i, item := range s.items {
			inv.Items = append(inv.Items, invoicedomain.InvoiceLineItem{
				ID:          node.Generate(),
				Description: item.desc,
				Quantity:    item.qty,
				UnitPrice:   decimal.RequireFromString(item.unit),
				Total:       decimal.RequireFromString(item.total),
				Position:    i,
			})
		}

		if err := tx.Create(&inv).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedTickets(ctx context.Context, store repository.Repository[ticketdomain.Ticket], node *snowflake.Node) error {
	now := time.Now().UTC()
	tickets := []ticketdomain.Ticket{
		{TicketID: "TKT-2023-101", Subject: "Email delivery delays", Date: date(2023, 3, 8), Status: ticketdomain.TicketStatusCompleted, Priority: ticketdomain.TicketPriorityHigh, Description: "Outbound mail queued for hours", Category: "email"},
		{TicketID: "TKT-2023-102", Subject: "Add staging environment", Date: date(2023, 3, 21), Status: ticketdomain.TicketStatusInProgress, Priority: ticketdomain.TicketPriorityMedium, Description: "Need a staging copy of the storefront", Category: "hosting"},
		{TicketID: "TKT-2023-103", Subject: "Broken contact form", Date: date(2023, 4, 3), Status: ticketdomain.TicketStatusOpen, Priority: ticketdomain.TicketPriorityHigh, Description: "Form submissions return a 500", Category: "website"},
		{TicketID: "TKT-2023-104", Subject: "Question about invoice INV-2023-042", Date: date(2023, 4, 10), Status: ticketdomain.TicketStatusWaiting, Priority: ticketdomain.TicketPriorityLow, Description: "Clarify the SEO audit line", Category: "billing"},
	}

	batch := make([]*ticketdomain.Ticket, 0, len(tickets))
	for i := range tickets {
		tickets[i].ID = node.Generate()
		tickets[i].LastUpdated = &now
		batch = append(batch, &tickets[i])
	}
	return store.BatchCreate(ctx, batch)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
