// Package filter narrows an already-fetched list with a free-text query and
// categorical criteria. It never reorders records.
package filter

import "strings"

// All is the criterion value meaning "no constraint".
const All = "all"

// Field reads one string attribute of a record.
type Field[T any] func(T) string

// Criterion requires Field to equal Value, ignoring case.
// An empty Value or All disables the criterion.
type Criterion[T any] struct {
	Value string
	Field Field[T]
}

// Spec describes one filter pass.
type Spec[T any] struct {
	Query    string
	Search   []Field[T]
	Criteria []Criterion[T]
}

// Apply returns the records matching spec in their original order.
func Apply[T any](records []T, spec Spec[T]) []T {
	query := strings.ToLower(strings.TrimSpace(spec.Query))
	criteria := spec.activeCriteria()

	out := make([]T, 0, len(records))
	for _, r := range records {
		if matchesQuery(r, query, spec.Search) && matchesCriteria(r, criteria) {
			out = append(out, r)
		}
	}
	return out
}

func (s Spec[T]) activeCriteria() []Criterion[T] {
	active := make([]Criterion[T], 0, len(s.Criteria))
	for _, c := range s.Criteria {
		v := strings.TrimSpace(c.Value)
		if v == "" || strings.EqualFold(v, All) || c.Field == nil {
			continue
		}
		active = append(active, Criterion[T]{Value: v, Field: c.Field})
	}
	return active
}

func matchesQuery[T any](r T, query string, fields []Field[T]) bool {
	if query == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f(r)), query) {
			return true
		}
	}
	return false
}

func matchesCriteria[T any](r T, criteria []Criterion[T]) bool {
	for _, c := range criteria {
		if !strings.EqualFold(strings.TrimSpace(c.Field(r)), c.Value) {
			return false
		}
	}
	return true
}
