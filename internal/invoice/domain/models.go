// Package domain contains the invoice document model.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// InvoiceStatus is the closed set of invoice states shown in the portal.
type InvoiceStatus string

const (
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// Statuses lists every invoice status in display order.
func Statuses() []InvoiceStatus {
	return []InvoiceStatus{InvoiceStatusPaid, InvoiceStatusPending, InvoiceStatusOverdue}
}

// Invoice is one billable document shown to a portal client.
//
// Amount is the invoice total used as the fallback when no line items
// exist; when items are present their Total fields are the source of
// truth for aggregation and Amount is ignored.
type Invoice struct {
	ID            snowflake.ID      `gorm:"primaryKey" json:"id"`
	InvoiceNumber string            `gorm:"not null;uniqueIndex" json:"invoice_number"`
	Date          time.Time         `gorm:"not null;index" json:"date"`
	DueDate       *time.Time        `json:"due_date,omitempty"`
	Amount        decimal.Decimal   `gorm:"type:numeric(12,2);not null" json:"amount"`
	Status        InvoiceStatus     `gorm:"type:text;not null;default:'pending';index" json:"status"`
	Description   string            `gorm:"type:text" json:"description,omitempty"`
	ClientID      *snowflake.ID     `gorm:"index" json:"client_id,omitempty"`
	Items         []InvoiceLineItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
	Metadata      datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// InvoiceLineItem is one billable row on an invoice. Total is supplied by
// the caller and is never recomputed from Quantity * UnitPrice.
type InvoiceLineItem struct {
	ID          snowflake.ID    `gorm:"primaryKey" json:"id"`
	InvoiceID   snowflake.ID    `gorm:"not null;index" json:"invoice_id"`
	Description string          `gorm:"type:text" json:"description"`
	Quantity    int64           `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	Total       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	Position    int             `gorm:"not null;default:0" json:"position"`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (InvoiceLineItem) TableName() string { return "invoice_line_items" }

// ClientOverlay carries the render-time bill-to fields. They are supplied
// by the caller when building the printable document, not persisted with
// the invoice.
type ClientOverlay struct {
	ClientName    string `json:"client_name"`
	ClientAddress string `json:"client_address"`
	ClientEmail   string `json:"client_email"`
	PaymentTerms  string `json:"payment_terms"`
	Notes         string `json:"notes"`
}
