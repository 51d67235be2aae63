package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	clientdomain "github.com/smallbiznis/portal/internal/client/domain"
	invoicedomain "github.com/smallbiznis/portal/internal/invoice/domain"
	ticketdomain "github.com/smallbiznis/portal/internal/ticket/domain"
	"github.com/smallbiznis/portal/pkg/filter"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
	ErrInternal       = errors.New("internal_error")
)

// ErrorHandlingMiddleware maps collected handler errors to a JSON error
// envelope. Every failure is local and recoverable; nothing here is fatal
// to the process.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: "invalid value",
				},
			},
		}
	}

	switch {
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, clientdomain.ErrDuplicateEmail):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "a client with this email already exists",
		}
	case errors.Is(err, invoicedomain.ErrRenderFailed):
		return http.StatusInternalServerError, errorPayload{
			Type:    "render_failed",
			Message: "invoice export failed, please retry",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, invoicedomain.ErrInvalidInvoiceID),
		errors.Is(err, ticketdomain.ErrInvalidTicketID),
		errors.Is(err, clientdomain.ErrInvalidClientID),
		errors.Is(err, clientdomain.ErrInvalidName),
		errors.Is(err, clientdomain.ErrInvalidEmail),
		errors.Is(err, filter.ErrUnknownField),
		errors.Is(err, filter.ErrOperatorAllowed),
		errors.Is(err, filter.ErrValueType),
		errors.Is(err, filter.ErrMissingBound),
		errors.Is(err, filter.ErrEmptyValue),
		errors.Is(err, filter.ErrUnknownChoice):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, invoicedomain.ErrInvoiceNotFound),
		errors.Is(err, ticketdomain.ErrTicketNotFound),
		errors.Is(err, clientdomain.ErrClientNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	default:
		return err.Error()
	}
}

func validationErrorField(code string) string {
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}
