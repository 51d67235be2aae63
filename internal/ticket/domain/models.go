// Package domain contains the support ticket model.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/portal/pkg/db/pagination"
	"github.com/smallbiznis/portal/pkg/filter"
	"gorm.io/datatypes"
)

// TicketStatus is the closed set of support ticket states.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in-progress"
	TicketStatusCompleted  TicketStatus = "completed"
	TicketStatusWaiting    TicketStatus = "waiting"
)

// TicketPriority is the closed set of ticket priorities.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
)

// Ticket is one support request shown in the portal.
type Ticket struct {
	ID          snowflake.ID      `gorm:"primaryKey" json:"id"`
	TicketID    string            `gorm:"not null;uniqueIndex" json:"ticket_id"`
	Subject     string            `gorm:"not null" json:"subject"`
	Date        time.Time         `gorm:"not null;index" json:"date"`
	Status      TicketStatus      `gorm:"type:text;not null;default:'open';index" json:"status"`
	Priority    TicketPriority    `gorm:"type:text;not null;default:'medium'" json:"priority"`
	Description string            `gorm:"type:text" json:"description,omitempty"`
	LastUpdated *time.Time        `json:"last_updated,omitempty"`
	Category    string            `json:"category,omitempty"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Ticket) TableName() string { return "tickets" }

type ListTicketRequest struct {
	Status     string
	Priority   string
	DateFrom   *time.Time
	DateTo     *time.Time
	Search     string
	Conditions []filter.Condition

	pagination.Pagination
}

type ListTicketResponse struct {
	pagination.PageInfo
	Tickets []Ticket `json:"tickets"`
}

type Service interface {
	List(context.Context, ListTicketRequest) (ListTicketResponse, error)
	GetByID(ctx context.Context, id string) (Ticket, error)
}

var (
	ErrTicketNotFound  = errors.New("ticket_not_found")
	ErrInvalidTicketID = errors.New("invalid_ticket_id")
)
