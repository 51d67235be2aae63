// Package filter implements the in-memory filter engine used by the
// invoice and ticket list surfaces: typed field/operator/value conditions,
// status and date-range narrowing, and free-text search.
package filter

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FieldType classifies a filterable field.
type FieldType string

const (
	TypeText   FieldType = "text"
	TypeNumber FieldType = "number"
	TypeDate   FieldType = "date"
	TypeSelect FieldType = "select"
)

// Operator identifies one comparison within a condition.
type Operator string

const (
	OpContains    Operator = "contains"
	OpEquals      Operator = "equals"
	OpNotEquals   Operator = "not equals"
	OpStartsWith  Operator = "starts with"
	OpEndsWith    Operator = "ends with"
	OpGreaterThan Operator = "greater than"
	OpLessThan    Operator = "less than"
	OpBetween     Operator = "between"
	OpBefore      Operator = "before"
	OpAfter       Operator = "after"
)

var (
	ErrUnknownField    = errors.New("unknown filter field")
	ErrOperatorAllowed = errors.New("operator not allowed for field")
	ErrValueType       = errors.New("invalid value for field type")
	ErrMissingBound    = errors.New("between requires two bounds")
	ErrEmptyValue      = errors.New("filter value is required")
	ErrUnknownChoice   = errors.New("value is not a valid choice")
)

// DefaultOperators returns the operator set for a field type when the
// option carries no explicit override.
func DefaultOperators(t FieldType) []Operator {
	switch t {
	case TypeText:
		return []Operator{OpContains, OpEquals, OpStartsWith, OpEndsWith}
	case TypeNumber:
		return []Operator{OpEquals, OpGreaterThan, OpLessThan, OpBetween}
	case TypeDate:
		return []Operator{OpEquals, OpBefore, OpAfter, OpBetween}
	case TypeSelect:
		return []Operator{OpEquals, OpNotEquals}
	default:
		return nil
	}
}

// Choice is one selectable value of a select-typed option.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Option describes a filterable field. Configuration, not user data.
type Option struct {
	ID        string     `json:"id"`
	Label     string     `json:"label"`
	Type      FieldType  `json:"type"`
	Operators []Operator `json:"operators,omitempty"`
	Choices   []Choice   `json:"options,omitempty"`
}

// AllowedOperators returns the option's operator override when present,
// otherwise the defaults for its type.
func (o Option) AllowedOperators() []Operator {
	if len(o.Operators) > 0 {
		return o.Operators
	}
	return DefaultOperators(o.Type)
}

func (o Option) allows(op Operator) bool {
	for _, allowed := range o.AllowedOperators() {
		if allowed == op {
			return true
		}
	}
	return false
}

func (o Option) hasChoice(value string) bool {
	if len(o.Choices) == 0 {
		return true
	}
	for _, c := range o.Choices {
		if c.Value == value {
			return true
		}
	}
	return false
}

// Value is a tagged union over the filter field types. Constructing a
// condition through NewCondition rules out mismatched type/value pairs
// up front instead of at evaluation time.
type Value struct {
	kind   FieldType
	ranged bool

	text     string
	number   decimal.Decimal
	numberHi decimal.Decimal
	date     time.Time
	dateHi   time.Time
	option   string
}

func TextValue(s string) Value {
	return Value{kind: TypeText, text: s}
}

func NumberValue(d decimal.Decimal) Value {
	return Value{kind: TypeNumber, number: d}
}

func NumberRange(lo, hi decimal.Decimal) Value {
	return Value{kind: TypeNumber, ranged: true, number: lo, numberHi: hi}
}

func DateValue(t time.Time) Value {
	return Value{kind: TypeDate, date: day(t)}
}

func DateRange(lo, hi time.Time) Value {
	return Value{kind: TypeDate, ranged: true, date: day(lo), dateHi: day(hi)}
}

func SelectValue(s string) Value {
	return Value{kind: TypeSelect, option: s}
}

// Condition is one committed field/operator/value constraint.
type Condition struct {
	Field    string
	Operator Operator
	Value    Value
}

// NewCondition validates the operator against the option's allowed set and
// the value against the option's type before committing the condition.
func NewCondition(opt Option, op Operator, v Value) (Condition, error) {
	if !opt.allows(op) {
		return Condition{}, ErrOperatorAllowed
	}
	if v.kind != opt.Type {
		return Condition{}, ErrValueType
	}
	if op == OpBetween && !v.ranged {
		return Condition{}, ErrMissingBound
	}
	if op != OpBetween && v.ranged {
		return Condition{}, ErrValueType
	}
	if opt.Type == TypeSelect && !opt.hasChoice(v.option) {
		return Condition{}, ErrUnknownChoice
	}
	return Condition{Field: opt.ID, Operator: op, Value: v}, nil
}

const dateLayout = "2006-01-02"

// ParseCondition builds a validated condition from raw text input. raw2 is
// the upper bound and only consulted for the between operator. Invalid
// input for the field type is rejected rather than coerced.
func ParseCondition(opt Option, op Operator, raw, raw2 string) (Condition, error) {
	raw = strings.TrimSpace(raw)
	raw2 = strings.TrimSpace(raw2)
	if raw == "" {
		return Condition{}, ErrEmptyValue
	}

	var v Value
	switch opt.Type {
	case TypeText:
		v = TextValue(raw)
	case TypeNumber:
		lo, err := decimal.NewFromString(raw)
		if err != nil {
			return Condition{}, ErrValueType
		}
		if op == OpBetween {
			if raw2 == "" {
				return Condition{}, ErrMissingBound
			}
			hi, err := decimal.NewFromString(raw2)
			if err != nil {
				return Condition{}, ErrValueType
			}
			v = NumberRange(lo, hi)
		} else {
			v = NumberValue(lo)
		}
	case TypeDate:
		lo, err := time.Parse(dateLayout, raw)
		if err != nil {
			return Condition{}, ErrValueType
		}
		if op == OpBetween {
			if raw2 == "" {
				return Condition{}, ErrMissingBound
			}
			hi, err := time.Parse(dateLayout, raw2)
			if err != nil {
				return Condition{}, ErrValueType
			}
			v = DateRange(lo, hi)
		} else {
			v = DateValue(lo)
		}
	case TypeSelect:
		v = SelectValue(raw)
	default:
		return Condition{}, ErrValueType
	}

	return NewCondition(opt, op, v)
}

// Matches evaluates the condition against a record's field value. The
// field value must be a plain (non-range) value of the condition's type.
func (c Condition) Matches(v Value) bool {
	if v.kind != c.Value.kind || v.ranged {
		return false
	}

	switch v.kind {
	case TypeText:
		return matchText(c.Operator, v.text, c.Value.text)
	case TypeNumber:
		return matchNumber(c.Operator, v.number, c.Value)
	case TypeDate:
		return matchDate(c.Operator, day(v.date), c.Value)
	case TypeSelect:
		switch c.Operator {
		case OpEquals:
			return v.option == c.Value.option
		case OpNotEquals:
			return v.option != c.Value.option
		}
	}
	return false
}

func matchText(op Operator, have, want string) bool {
	have = strings.ToLower(have)
	want = strings.ToLower(want)
	switch op {
	case OpContains:
		return strings.Contains(have, want)
	case OpEquals:
		return have == want
	case OpStartsWith:
		return strings.HasPrefix(have, want)
	case OpEndsWith:
		return strings.HasSuffix(have, want)
	}
	return false
}

func matchNumber(op Operator, have decimal.Decimal, want Value) bool {
	switch op {
	case OpEquals:
		return have.Equal(want.number)
	case OpGreaterThan:
		return have.GreaterThan(want.number)
	case OpLessThan:
		return have.LessThan(want.number)
	case OpBetween:
		return have.GreaterThanOrEqual(want.number) && have.LessThanOrEqual(want.numberHi)
	}
	return false
}

func matchDate(op Operator, have time.Time, want Value) bool {
	switch op {
	case OpEquals:
		return have.Equal(want.date)
	case OpBefore:
		return have.Before(want.date)
	case OpAfter:
		return have.After(want.date)
	case OpBetween:
		return !have.Before(want.date) && !have.After(want.dateHi)
	}
	return false
}

// day truncates a timestamp to its UTC calendar date. All date filtering
// compares whole days.
func day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
