package domain

import "github.com/smallbiznis/portal/pkg/filter"

// Filter field identifiers for the ticket list surface.
const (
	FieldSubject  = "subject"
	FieldDate     = "date"
	FieldStatus   = "status"
	FieldPriority = "priority"
	FieldCategory = "category"
)

// FilterOptions describes the fields ticket filter conditions may target.
func FilterOptions() []filter.Option {
	return []filter.Option{
		{ID: FieldSubject, Label: "Subject", Type: filter.TypeText},
		{ID: FieldCategory, Label: "Category", Type: filter.TypeText},
		{ID: FieldDate, Label: "Date", Type: filter.TypeDate},
		{ID: FieldStatus, Label: "Status", Type: filter.TypeSelect, Choices: []filter.Choice{
			{Value: string(TicketStatusOpen), Label: "Open"},
			{Value: string(TicketStatusInProgress), Label: "In Progress"},
			{Value: string(TicketStatusCompleted), Label: "Completed"},
			{Value: string(TicketStatusWaiting), Label: "Waiting"},
		}},
		{ID: FieldPriority, Label: "Priority", Type: filter.TypeSelect, Choices: []filter.Choice{
			{Value: string(TicketPriorityLow), Label: "Low"},
			{Value: string(TicketPriorityMedium), Label: "Medium"},
			{Value: string(TicketPriorityHigh), Label: "High"},
		}},
	}
}

// FilterOption looks up one option by field id.
func FilterOption(field string) (filter.Option, bool) {
	for _, opt := range FilterOptions() {
		if opt.ID == field {
			return opt, true
		}
	}
	return filter.Option{}, false
}

// FieldValue resolves a ticket's typed value for a filter field.
func FieldValue(t Ticket, field string) (filter.Value, bool) {
	switch field {
	case FieldSubject:
		return filter.TextValue(t.Subject), true
	case FieldCategory:
		return filter.TextValue(t.Category), true
	case FieldDate:
		return filter.DateValue(t.Date), true
	case FieldStatus:
		return filter.SelectValue(string(t.Status)), true
	case FieldPriority:
		return filter.SelectValue(string(t.Priority)), true
	default:
		return filter.Value{}, false
	}
}

// SearchFields returns the strings free-text search matches against:
// subject, display code, and description.
func SearchFields(t Ticket) []string {
	return []string{t.Subject, t.TicketID, t.Description}
}
