package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	ticketdomain "github.com/smallbiznis/portal/internal/ticket/domain"
	"github.com/smallbiznis/portal/pkg/db/pagination"
	"github.com/smallbiznis/portal/pkg/filter"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(p ServiceParam) ticketdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("ticket.service"),
	}
}

// List narrows the ticket collection the same way the invoice list does:
// status, priority, date range, search, and advanced conditions ANDed in
// turn, survivor order preserved.
func (s *Service) List(ctx context.Context, req ticketdomain.ListTicketRequest) (ticketdomain.ListTicketResponse, error) {
	var tickets []ticketdomain.Ticket
	err := s.db.WithContext(ctx).
		Order("date ASC, id ASC").
		Find(&tickets).Error
	if err != nil {
		return ticketdomain.ListTicketResponse{}, err
	}

	filtered := filter.Apply(tickets,
		filter.ByStatus(req.Status, func(t ticketdomain.Ticket) string { return string(t.Status) }),
		filter.ByStatus(req.Priority, func(t ticketdomain.Ticket) string { return string(t.Priority) }),
		filter.ByDateRange(req.DateFrom, req.DateTo, func(t ticketdomain.Ticket) time.Time { return t.Date }),
		filter.BySearch(req.Search, ticketdomain.SearchFields),
		filter.ByConditions(req.Conditions, ticketdomain.FieldValue),
	)

	page, info, err := pagination.Page(filtered, req.Pagination, func(t ticketdomain.Ticket) string {
		return t.ID.String()
	})
	if err != nil {
		return ticketdomain.ListTicketResponse{}, err
	}

	return ticketdomain.ListTicketResponse{PageInfo: info, Tickets: page}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (ticketdomain.Ticket, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return ticketdomain.Ticket{}, ticketdomain.ErrInvalidTicketID
	}

	var ticket ticketdomain.Ticket
	err = s.db.WithContext(ctx).First(&ticket, "id = ?", parsed).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return ticketdomain.Ticket{}, ticketdomain.ErrTicketNotFound
		}
		return ticketdomain.Ticket{}, err
	}
	return ticket, nil
}
