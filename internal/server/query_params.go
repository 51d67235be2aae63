package server

import (
	"errors"
	"strings"
	"time"

	"github.com/smallbiznis/portal/pkg/filter"
)

const dateOnlyLayout = "2006-01-02"

func parseOptionalDate(value string) (*time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	if parsed, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return &parsed, nil
	}
	if parsed, err := time.Parse(dateOnlyLayout, trimmed); err == nil {
		return &parsed, nil
	}
	return nil, errors.New("invalid_date")
}

// conditionPayload is the wire shape of one advanced filter condition.
// value2 carries the upper bound for the between operator.
type conditionPayload struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
	Value2   string `json:"value2,omitempty"`
}

// parseConditions validates each payload against the entity's filter
// options; an invalid value for the field's type is rejected rather than
// coerced.
func parseConditions(payloads []conditionPayload, lookup func(string) (filter.Option, bool)) ([]filter.Condition, error) {
	if len(payloads) == 0 {
		return nil, nil
	}
	conds := make([]filter.Condition, 0, len(payloads))
	for _, p := range payloads {
		opt, ok := lookup(strings.TrimSpace(p.Field))
		if !ok {
			return nil, newValidationError("field", "unknown_field", "unknown filter field")
		}
		cond, err := filter.ParseCondition(opt, filter.Operator(p.Operator), p.Value, p.Value2)
		if err != nil {
			return nil, newValidationError(opt.ID, "invalid_condition", err.Error())
		}
		conds = append(conds, cond)
	}
	return conds, nil
}
