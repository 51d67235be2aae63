package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	ticketdomain "github.com/smallbiznis/portal/internal/ticket/domain"
	"github.com/smallbiznis/portal/pkg/db/pagination"
)

func (s *Server) ListTickets(c *gin.Context) {
	dateFrom, err := parseOptionalDate(c.Query("date_from"))
	if err != nil {
		AbortWithError(c, newValidationError("date_from", "invalid_date", "invalid date"))
		return
	}
	dateTo, err := parseOptionalDate(c.Query("date_to"))
	if err != nil {
		AbortWithError(c, newValidationError("date_to", "invalid_date", "invalid date"))
		return
	}

	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, newValidationError("page", "invalid_pagination", "invalid pagination"))
		return
	}

	resp, err := s.ticketSvc.List(c.Request.Context(), ticketdomain.ListTicketRequest{
		Status:     c.Query("status"),
		Priority:   c.Query("priority"),
		DateFrom:   dateFrom,
		DateTo:     dateTo,
		Search:     c.Query("q"),
		Pagination: page,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp.Tickets, "page_info": resp.PageInfo})
}

type searchTicketsPayload struct {
	Status     string             `json:"status"`
	Priority   string             `json:"priority"`
	DateFrom   string             `json:"date_from"`
	DateTo     string             `json:"date_to"`
	Search     string             `json:"search"`
	Conditions []conditionPayload `json:"conditions"`
	PageSize   int                `json:"page_size"`
	PageToken  string             `json:"page_token"`
}

func (s *Server) SearchTickets(c *gin.Context) {
	var payload searchTicketsPayload
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

	conds, err := parseConditions(payload.Conditions, ticketdomain.FilterOption)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.ticketSvc.List(c.Request.Context(), ticketdomain.ListTicketRequest{
		Status:     payload.Status,
		Priority:   payload.Priority,
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

	c.JSON(http.StatusOK, gin.H{"data": resp.Tickets, "page_info": resp.PageInfo})
}

func (s *Server) ListTicketFilterOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": ticketdomain.FilterOptions()})
}

func (s *Server) GetTicketByID(c *gin.Context) {
	item, err := s.ticketSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}
