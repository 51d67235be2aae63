package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Client is one managed portal account. The admin panel manages these;
// invoices reference them for the bill-to block.
type Client struct {
	ID           snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name         string            `gorm:"not null" json:"name"`
	Email        string            `gorm:"not null;uniqueIndex" json:"email"`
	Address      string            `gorm:"type:text" json:"address,omitempty"`
	PaymentTerms string            `gorm:"type:text" json:"payment_terms,omitempty"`
	Metadata     datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Client) TableName() string { return "clients" }

type CreateClientRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	PaymentTerms string `json:"payment_terms"`
}

// UpdateClientRequest carries partial updates; nil fields are untouched.
type UpdateClientRequest struct {
	Name         *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty"`
	Address      *string `json:"address,omitempty"`
	PaymentTerms *string `json:"payment_terms,omitempty"`
}

type Service interface {
	List(ctx context.Context) ([]Client, error)
	GetByID(ctx context.Context, id string) (Client, error)
	Create(ctx context.Context, req CreateClientRequest) (Client, error)
	Update(ctx context.Context, id string, req UpdateClientRequest) (Client, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrClientNotFound  = errors.New("client_not_found")
	ErrInvalidClientID = errors.New("invalid_client_id")
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidEmail    = errors.New("invalid_email")
	ErrDuplicateEmail  = errors.New("duplicate_email")
)
