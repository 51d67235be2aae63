package domain

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/portal/pkg/db/pagination"
	"github.com/smallbiznis/portal/pkg/filter"
)

// ListInvoiceRequest narrows the invoice collection. Status, date range,
// free-text search, and advanced conditions all AND together.
type ListInvoiceRequest struct {
	Status     string
	DateFrom   *time.Time
	DateTo     *time.Time
	Search     string
	Conditions []filter.Condition

	pagination.Pagination
}

type ListInvoiceResponse struct {
	pagination.PageInfo
	Invoices []Invoice `json:"invoices"`
}

// ExportResult is a rendered, downloadable invoice artifact.
type ExportResult struct {
	Filename    string
	ContentType string
	Bytes       []byte
}

type Service interface {
	List(context.Context, ListInvoiceRequest) (ListInvoiceResponse, error)
	GetByID(ctx context.Context, id string) (Invoice, error)
	Export(ctx context.Context, id string, overlay ClientOverlay) (ExportResult, error)
}

var (
	ErrInvoiceNotFound  = errors.New("invoice_not_found")
	ErrInvalidInvoiceID = errors.New("invalid_invoice_id")
	ErrRenderFailed     = errors.New("invoice_render_failed")
)
