package filter

import (
	"strings"
	"time"
)

// StatusAll is the sentinel meaning "no status constraint".
const StatusAll = "all"

// Predicate reports whether a record survives one narrowing step. A nil
// predicate means no constraint.
type Predicate[T any] func(T) bool

// Getter resolves a record's typed value for a filter field. The second
// return is false when the record has no such field.
type Getter[T any] func(record T, field string) (Value, bool)

// ByStatus builds an equality predicate over a closed status enum.
func ByStatus[T any](status string, get func(T) string) Predicate[T] {
	status = strings.TrimSpace(status)
	if status == "" || status == StatusAll {
		return nil
	}
	return func(record T) bool {
		return get(record) == status
	}
}

// ByDateRange builds an inclusive date-range predicate. Either bound may
// be nil, meaning unbounded on that side.
func ByDateRange[T any](from, to *time.Time, get func(T) time.Time) Predicate[T] {
	if from == nil && to == nil {
		return nil
	}
	var lo, hi time.Time
	if from != nil {
		lo = day(*from)
	}
	if to != nil {
		hi = day(*to)
	}
	return func(record T) bool {
		d := day(get(record))
		if from != nil && d.Before(lo) {
			return false
		}
		if to != nil && d.After(hi) {
			return false
		}
		return true
	}
}

// BySearch builds a case-insensitive substring predicate over the fields
// reported by the accessor. An empty or whitespace term is no constraint.
func BySearch[T any](term string, fields func(T) []string) Predicate[T] {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	return func(record T) bool {
		for _, field := range fields(record) {
			if strings.Contains(strings.ToLower(field), term) {
				return true
			}
		}
		return false
	}
}

// ByConditions builds a predicate requiring every committed condition to
// hold. A record missing a referenced field never matches.
func ByConditions[T any](conds []Condition, get Getter[T]) Predicate[T] {
	if len(conds) == 0 {
		return nil
	}
	return func(record T) bool {
		for _, cond := range conds {
			value, ok := get(record, cond.Field)
			if !ok || !cond.Matches(value) {
				return false
			}
		}
		return true
	}
}

// Apply narrows the records through each predicate in turn with AND
// semantics. The input slice is never mutated and the relative order of
// surviving records is preserved.
func Apply[T any](records []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(records))
	for _, record := range records {
		keep := true
		for _, pred := range preds {
			if pred != nil && !pred(record) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, record)
		}
	}
	return out
}

// Set holds the ordered list of committed conditions for one viewing
// session.
type Set struct {
	conditions []Condition
}

// Add appends a committed condition. Zero-value conditions (no field or
// operator selected yet) are rejected.
func (s *Set) Add(c Condition) bool {
	if c.Field == "" || c.Operator == "" {
		return false
	}
	s.conditions = append(s.conditions, c)
	return true
}

// Remove deletes exactly one condition by position, preserving the
// relative order of the rest.
func (s *Set) Remove(index int) bool {
	if index < 0 || index >= len(s.conditions) {
		return false
	}
	s.conditions = append(s.conditions[:index], s.conditions[index+1:]...)
	return true
}

// Reset clears every committed condition.
func (s *Set) Reset() {
	s.conditions = nil
}

// Conditions returns the committed conditions in insertion order.
func (s *Set) Conditions() []Condition {
	return s.conditions
}
