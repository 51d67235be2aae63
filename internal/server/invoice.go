package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/smallbiznis/portal/internal/invoice/domain"
	"github.com/smallbiznis/portal/pkg/db/pagination"
)

func (s *Server) ListInvoices(c *gin.Context) {
	req, err := invoiceListRequest(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.invoiceSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp.Invoices, "page_info": resp.PageInfo})
}

type searchInvoicesPayload struct {
	Status     string             `json:"status"`
	DateFrom   string             `json:"date_from"`
	DateTo     string             `json:"date_to"`
	Search     string             `json:"search"`
	Conditions []conditionPayload `json:"conditions"`
	PageSize   int                `json:"page_size"`
	PageToken  string             `json:"page_token"`
}

// SearchInvoices accepts the advanced filter builder's committed
// conditions alongside the simple status/date/search constraints.
func (s *Server) SearchInvoices(c *gin.Context) {
	var payload searchInvoicesPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, newValidationError("request", "invalid_request", "invalid request body"))
		return
	}

	dateFrom, err := parseOptionalDate(payload.DateFrom)
	if err != nil {
		AbortWithError(c, newValidationError("date_from", "invalid_date", "invalid date"))
		return
	}
	dateTo, err := parseOptionalDate(payload.DateTo)
	if err != nil {
		AbortWithError(c, newValidationError("date_to", "invalid_date", "invalid date"))
		return
	}

	conds, err := parseConditions(payload.Conditions, invoicedomain.FilterOption)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.invoiceSvc.List(c.Request.Context(), invoicedomain.ListInvoiceRequest{
		Status:     payload.Status,
		DateFrom:   dateFrom,
		DateTo:     dateTo,
		Search:     payload.Search,
		Conditions: conds,
		Pagination: pagination.Pagination{PageSize: payload.PageSize, PageToken: payload.PageToken},
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp.Invoices, "page_info": resp.PageInfo})
}

func (s *Server) ListInvoiceFilterOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": invoicedomain.FilterOptions()})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	item, err := s.invoiceSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}

// ExportInvoicePDF streams the rendered document. The default attachment
// disposition carries the deterministic invoice filename; inline
// disposition serves the preview surface the browser's native print
// dialog operates on.
func (s *Server) ExportInvoicePDF(c *gin.Context) {
	overlay := invoicedomain.ClientOverlay{
		ClientName:    c.Query("client_name"),
		ClientAddress: c.Query("client_address"),
		ClientEmail:   c.Query("client_email"),
		PaymentTerms:  c.Query("payment_terms"),
		Notes:         c.Query("notes"),
	}

	// Authenticated user context fills the bill-to block when no client
	// record or explicit overlay exists.
	if overlay.ClientName == "" {
		overlay.ClientName = c.GetHeader("X-User-Name")
	}
	if overlay.ClientEmail == "" {
		overlay.ClientEmail = c.GetHeader("X-User-Email")
	}

	result, err := s.invoiceSvc.Export(c.Request.Context(), c.Param("id"), overlay)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	disposition := "attachment"
	if strings.EqualFold(c.Query("disposition"), "inline") {
		disposition = "inline"
	}
	c.Header("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Bytes)
}

func invoiceListRequest(c *gin.Context) (invoicedomain.ListInvoiceRequest, error) {
	dateFrom, err := parseOptionalDate(c.Query("date_from"))
	if err != nil {
		return invoicedomain.ListInvoiceRequest{}, newValidationError("date_from", "invalid_date", "invalid date")
	}
	dateTo, err := parseOptionalDate(c.Query("date_to"))
	if err != nil {
		return invoicedomain.ListInvoiceRequest{}, newValidationError("date_to", "invalid_date", "invalid date")
	}

	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		return invoicedomain.ListInvoiceRequest{}, newValidationError("page", "invalid_pagination", "invalid pagination")
	}

	return invoicedomain.ListInvoiceRequest{
		Status:     c.Query("status"),
		DateFrom:   dateFrom,
		DateTo:     dateTo,
		Search:     c.Query("q"),
		Pagination: page,
	}, nil
}
