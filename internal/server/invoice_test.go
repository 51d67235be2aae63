package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	invoicedomain "github.com/smallbiznis/portal/internal/invoice/domain"
	"github.com/smallbiznis/portal/pkg/filter"
	"github.com/stretchr/testify/assert"
)

type fakeInvoiceService struct {
	lastList  invoicedomain.ListInvoiceRequest
	listResp  invoicedomain.ListInvoiceResponse
	getErr    error
	exportErr error
	overlay   invoicedomain.ClientOverlay
}

func (f *fakeInvoiceService) List(ctx context.Context, req invoicedomain.ListInvoiceRequest) (invoicedomain.ListInvoiceResponse, error) {
	_ = ctx
	f.lastList = req
	return f.listResp, nil
}

func (f *fakeInvoiceService) GetByID(ctx context.Context, id string) (invoicedomain.Invoice, error) {
	_ = ctx
	if f.getErr != nil {
		return invoicedomain.Invoice{}, f.getErr
	}
	return invoicedomain.Invoice{InvoiceNumber: "INV-2023-042"}, nil
}

func (f *fakeInvoiceService) Export(ctx context.Context, id string, overlay invoicedomain.ClientOverlay) (invoicedomain.ExportResult, error) {
	_ = ctx
	_ = id
	f.overlay = overlay
	if f.exportErr != nil {
		return invoicedomain.ExportResult{}, f.exportErr
	}
	return invoicedomain.ExportResult{
		Filename:    "invoice-INV-2023-042.pdf",
		ContentType: "application/pdf",
		Bytes:       []byte("%PDF-stub"),
	}, nil
}

func newTestServer(invoiceSvc *fakeInvoiceService) (*Server, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorHandlingMiddleware())

	srv := &Server{
		engine:     router,
		invoiceSvc: invoiceSvc,
	}
	return srv, router
}

func TestListInvoicesHandler(t *testing.T) {
	svc := &fakeInvoiceService{
		listResp: invoicedomain.ListInvoiceResponse{
			Invoices: []invoicedomain.Invoice{
				{InvoiceNumber: "INV-2023-042", Amount: decimal.NewFromInt(1200)},
			},
		},
	}
	srv, router := newTestServer(svc)
	router.GET("/api/invoices", srv.ListInvoices)

	req := httptest.NewRequest(http.MethodGet, "/api/invoices?status=overdue&date_from=2023-03-01&date_to=2023-03-31&q=hosting&page_size=10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "overdue", svc.lastList.Status)
	assert.Equal(t, "hosting", svc.lastList.Search)
	assert.Equal(t, 10, svc.lastList.PageSize)
	assert.NotNil(t, svc.lastList.DateFrom)
	assert.Equal(t, time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC), svc.lastList.DateFrom.UTC())

	var body struct {
		Data []invoicedomain.Invoice `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data, 1)
	assert.Equal(t, "INV-2023-042", body.Data[0].InvoiceNumber)
}

func TestListInvoicesHandlerRejectsBadDate(t *testing.T) {
	srv, router := newTestServer(&fakeInvoiceService{})
	router.GET("/api/invoices", srv.ListInvoices)

	req := httptest.NewRequest(http.MethodGet, "/api/invoices?date_from=03/15/2023", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation_error")
	assert.Contains(t, rec.Body.String(), "date_from")
}

func TestSearchInvoicesHandler(t *testing.T) {
	svc := &fakeInvoiceService{}
	srv, router := newTestServer(svc)
	router.POST("/api/invoices/search", srv.SearchInvoices)

	payload := map[string]any{
		"status": "paid",
		"conditions": []map[string]string{
			{"field": "amount", "operator": "greater than", "value": "1000"},
			{"field": "date", "operator": "between", "value": "2023-01-01", "value2": "2023-06-30"},
		},
	}
	raw, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/api/invoices/search", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "paid", svc.lastList.Status)
	assert.Len(t, svc.lastList.Conditions, 2)
	assert.Equal(t, filter.OpGreaterThan, svc.lastList.Conditions[0].Operator)
	assert.Equal(t, "amount", svc.lastList.Conditions[0].Field)
}

func TestSearchInvoicesHandlerRejectsUnknownField(t *testing.T) {
	srv, router := newTestServer(&fakeInvoiceService{})
	router.POST("/api/invoices/search", srv.SearchInvoices)

	raw, _ := json.Marshal(map[string]any{
		"conditions": []map[string]string{
			{"field": "nope", "operator": "equals", "value": "x"},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/invoices/search", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation_error")
}

func TestGetInvoiceByIDHandlerNotFound(t *testing.T) {
	srv, router := newTestServer(&fakeInvoiceService{getErr: invoicedomain.ErrInvoiceNotFound})
	router.GET("/api/invoices/:id", srv.GetInvoiceByID)

	req := httptest.NewRequest(http.MethodGet, "/api/invoices/12345", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}

func TestExportInvoicePDFHandler(t *testing.T) {
	svc := &fakeInvoiceService{}
	srv, router := newTestServer(svc)
	router.GET("/api/invoices/:id/pdf", srv.ExportInvoicePDF)

	req := httptest.NewRequest(http.MethodGet, "/api/invoices/12345/pdf?client_name=Northwind+Traders&payment_terms=Net+30", nil)
	req.Header.Set("X-User-Email", "ap@northwind.example")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="invoice-INV-2023-042.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-stub", rec.Body.String())

	assert.Equal(t, "Northwind Traders", svc.overlay.ClientName)
	assert.Equal(t, "Net 30", svc.overlay.PaymentTerms)
	// header fills fields the query string left blank
	assert.Equal(t, "ap@northwind.example", svc.overlay.ClientEmail)
}

func TestExportInvoicePDFHandlerInline(t *testing.T) {
	srv, router := newTestServer(&fakeInvoiceService{})
	router.GET("/api/invoices/:id/pdf", srv.ExportInvoicePDF)

	req := httptest.NewRequest(http.MethodGet, "/api/invoices/12345/pdf?disposition=inline", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `inline; filename="invoice-INV-2023-042.pdf"`, rec.Header().Get("Content-Disposition"))
}

func TestExportInvoicePDFHandlerRenderFailure(t *testing.T) {
	srv, router := newTestServer(&fakeInvoiceService{exportErr: invoicedomain.ErrRenderFailed})
	router.GET("/api/invoices/:id/pdf", srv.ExportInvoicePDF)

	req := httptest.NewRequest(http.MethodGet, "/api/invoices/12345/pdf", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "render_failed")
}

func TestListInvoiceFilterOptionsHandler(t *testing.T) {
	srv, router := newTestServer(&fakeInvoiceService{})
	router.GET("/api/invoices/filter-options", srv.ListInvoiceFilterOptions)

	req := httptest.NewRequest(http.MethodGet, "/api/invoices/filter-options", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []filter.Option `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data, 5)
	assert.Equal(t, "invoice_number", body.Data[0].ID)
}
