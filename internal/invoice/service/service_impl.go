package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/smallbiznis/portal/internal/client/domain"
	"github.com/smallbiznis/portal/internal/config"
	invoicedomain "github.com/smallbiznis/portal/internal/invoice/domain"
	"github.com/smallbiznis/portal/internal/invoice/render"
	"github.com/smallbiznis/portal/internal/providers/pdf"
	"github.com/smallbiznis/portal/pkg/db/pagination"
	"github.com/smallbiznis/portal/pkg/filter"
	"github.com/smallbiznis/portal/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
	Cfg config.Config
	PDF pdf.Provider
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger
	cfg config.Config
	pdf pdf.Provider

	clientrepo repository.Repository[clientdomain.Client]
}

func NewService(p ServiceParam) invoicedomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("invoice.service"),
		cfg: p.Cfg,
		pdf: p.PDF,

		clientrepo: repository.ProvideStore[clientdomain.Client](p.DB),
	}
}

// List loads the invoice collection in display order and narrows it with
// the request's constraints: status, then date range, then search, then
// advanced conditions, all ANDed. Survivor order is the source order.
func (s *Service) List(ctx context.Context, req invoicedomain.ListInvoiceRequest) (invoicedomain.ListInvoiceResponse, error) {
	invoices, err := s.loadAll(ctx)
	if err != nil {
		return invoicedomain.ListInvoiceResponse{}, err
	}

	filtered := filter.Apply(invoices,
		filter.ByStatus(req.Status, func(inv invoicedomain.Invoice) string { return string(inv.Status) }),
		filter.ByDateRange(req.DateFrom, req.DateTo, func(inv invoicedomain.Invoice) time.Time { return inv.Date }),
		filter.BySearch(req.Search, invoicedomain.SearchFields),
		filter.ByConditions(req.Conditions, invoicedomain.FieldValue),
	)

	page, info, err := pagination.Page(filtered, req.Pagination, func(inv invoicedomain.Invoice) string {
		return inv.ID.String()
	})
	if err != nil {
		return invoicedomain.ListInvoiceResponse{}, err
	}

	return invoicedomain.ListInvoiceResponse{PageInfo: info, Invoices: page}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (invoicedomain.Invoice, error) {
	parsed, err := parseID(id)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}

	var inv invoicedomain.Invoice
	err = s.db.WithContext(ctx).
		Preload("Items", itemOrder).
		First(&inv, "id = ?", parsed).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return invoicedomain.Invoice{}, invoicedomain.ErrInvoiceNotFound
		}
		return invoicedomain.Invoice{}, err
	}
	return inv, nil
}

// Export resolves the invoice into a printable document and renders it to
// PDF bytes with a deterministic filename. The operation is a pure
// function of the invoice plus shared read-only company info, so exports
// of different invoices never interfere.
func (s *Service) Export(ctx context.Context, id string, overlay invoicedomain.ClientOverlay) (invoicedomain.ExportResult, error) {
	inv, err := s.GetByID(ctx, id)
	if err != nil {
		return invoicedomain.ExportResult{}, err
	}

	overlay, err = s.mergeOverlay(ctx, inv, overlay)
	if err != nil {
		return invoicedomain.ExportResult{}, err
	}

	doc := render.Resolve(inv, s.cfg.Company, overlay, s.cfg.TaxRate)

	bytes, err := s.pdf.GenerateInvoice(ctx, doc)
	if err != nil {
		s.log.Error("invoice pdf generation failed",
			zap.String("invoice_id", inv.ID.String()),
			zap.Error(err),
		)
		return invoicedomain.ExportResult{}, fmt.Errorf("%w: %v", invoicedomain.ErrRenderFailed, err)
	}

	return invoicedomain.ExportResult{
		Filename:    pdf.Filename(inv.InvoiceNumber),
		ContentType: pdf.ContentType,
		Bytes:       bytes,
	}, nil
}

func (s *Service) loadAll(ctx context.Context) ([]invoicedomain.Invoice, error) {
	var invoices []invoicedomain.Invoice
	err := s.db.WithContext(ctx).
		Preload("Items", itemOrder).
		Order("date ASC, id ASC").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

// mergeOverlay fills bill-to fields the caller left blank from the
// invoice's client record, when one is linked. Caller-supplied fields
// always win.
func (s *Service) mergeOverlay(ctx context.Context, inv invoicedomain.Invoice, overlay invoicedomain.ClientOverlay) (invoicedomain.ClientOverlay, error) {
	if inv.ClientID == nil || *inv.ClientID == 0 {
		return overlay, nil
	}

	client, err := s.clientrepo.FindOne(ctx, &clientdomain.Client{ID: *inv.ClientID})
	if err != nil {
		return invoicedomain.ClientOverlay{}, err
	}
	if client == nil {
		return overlay, nil
	}

	if overlay.ClientName == "" {
		overlay.ClientName = client.Name
	}
	if overlay.ClientAddress == "" {
		overlay.ClientAddress = client.Address
	}
	if overlay.ClientEmail == "" {
		overlay.ClientEmail = client.Email
	}
	if overlay.PaymentTerms == "" {
		overlay.PaymentTerms = client.PaymentTerms
	}
	return overlay, nil
}

func itemOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC, id ASC")
}

func parseID(raw string) (snowflake.ID, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || parsed == 0 {
		return 0, invoicedomain.ErrInvalidInvoiceID
	}
	return parsed, nil
}
