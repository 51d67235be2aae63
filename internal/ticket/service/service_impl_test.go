package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	ticketdomain "github.com/smallbiznis/portal/internal/ticket/domain"
	"github.com/smallbiznis/portal/pkg/filter"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupService(t *testing.T, name string) (*Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&ticketdomain.Ticket{}))

	node, _ := snowflake.NewNode(1)

	svc := NewService(ServiceParam{
		DB:  db,
		Log: zap.NewNop(),
	}).(*Service)

	return svc, db, node
}

func seedTicket(t *testing.T, db *gorm.DB, node *snowflake.Node, ref, subject string, date time.Time, status ticketdomain.TicketStatus, priority ticketdomain.TicketPriority) ticketdomain.Ticket {
	t.Helper()
	ticket := ticketdomain.Ticket{
		ID:       node.Generate(),
		TicketID: ref,
		Subject:  subject,
		Date:     date,
		Status:   status,
		Priority: priority,
	}
	assert.NoError(t, db.Create(&ticket).Error)
	return ticket
}

func refs(tickets []ticketdomain.Ticket) []string {
	out := make([]string, 0, len(tickets))
	for _, ticket := range tickets {
		out = append(out, ticket.TicketID)
	}
	return out
}

func TestList_StatusAndPriority(t *testing.T) {
	svc, db, node := setupService(t, "tktlist1")

	seedTicket(t, db, node, "TKT-2023-101", "Login page broken", time.Date(2023, 2, 3, 0, 0, 0, 0, time.UTC), ticketdomain.TicketStatusOpen, ticketdomain.TicketPriorityHigh)
	seedTicket(t, db, node, "TKT-2023-102", "Update contact form", time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC), ticketdomain.TicketStatusOpen, ticketdomain.TicketPriorityLow)
	seedTicket(t, db, node, "TKT-2023-103", "SSL renewal", time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC), ticketdomain.TicketStatusCompleted, ticketdomain.TicketPriorityHigh)

	resp, err := svc.List(context.Background(), ticketdomain.ListTicketRequest{
		Status:   "open",
		Priority: "high",
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"TKT-2023-101"}, refs(resp.Tickets))

	// "all" is no constraint
	resp, err = svc.List(context.Background(), ticketdomain.ListTicketRequest{Status: filter.StatusAll})
	assert.NoError(t, err)
	assert.Len(t, resp.Tickets, 3)
}

func TestList_SearchAndConditions(t *testing.T) {
	svc, db, node := setupService(t, "tktlist2")

	seedTicket(t, db, node, "TKT-2023-101", "Login page broken", time.Date(2023, 2, 3, 0, 0, 0, 0, time.UTC), ticketdomain.TicketStatusOpen, ticketdomain.TicketPriorityHigh)
	seedTicket(t, db, node, "TKT-2023-102", "Update contact form", time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC), ticketdomain.TicketStatusWaiting, ticketdomain.TicketPriorityLow)
	seedTicket(t, db, node, "TKT-2023-103", "SSL renewal", time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC), ticketdomain.TicketStatusCompleted, ticketdomain.TicketPriorityHigh)

	resp, err := svc.List(context.Background(), ticketdomain.ListTicketRequest{Search: "LOGIN"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"TKT-2023-101"}, refs(resp.Tickets))

	subjectOpt, ok := ticketdomain.FilterOption(ticketdomain.FieldSubject)
	assert.True(t, ok)
	dateOpt, ok := ticketdomain.FilterOption(ticketdomain.FieldDate)
	assert.True(t, ok)

	contains, err := filter.ParseCondition(subjectOpt, filter.OpContains, "form", "")
	assert.NoError(t, err)
	after, err := filter.ParseCondition(dateOpt, filter.OpAfter, "2023-02-03", "")
	assert.NoError(t, err)

	resp, err = svc.List(context.Background(), ticketdomain.ListTicketRequest{
		Conditions: []filter.Condition{contains, after},
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"TKT-2023-102"}, refs(resp.Tickets))
}

func TestGetByID(t *testing.T) {
	svc, db, node := setupService(t, "tktget")

	ticket := seedTicket(t, db, node, "TKT-2023-104", "Invoice question", time.Date(2023, 4, 2, 0, 0, 0, 0, time.UTC), ticketdomain.TicketStatusInProgress, ticketdomain.TicketPriorityMedium)

	got, err := svc.GetByID(context.Background(), ticket.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, "TKT-2023-104", got.TicketID)

	_, err = svc.GetByID(context.Background(), node.Generate().String())
	assert.ErrorIs(t, err, ticketdomain.ErrTicketNotFound)

	_, err = svc.GetByID(context.Background(), "garbage")
	assert.ErrorIs(t, err, ticketdomain.ErrInvalidTicketID)
}
