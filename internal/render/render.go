// Package render projects store snapshots into view rows and aggregate stats.
package render

import "strings"

// Filter selects records for display.
type Filter[V any] func(V) bool

// All matches every record.
func All[V any]() Filter[V] {
	return func(V) bool { return true }
}

// MatchAny is a case-insensitive substring match over the given text fields.
// An empty or blank query matches everything.
func MatchAny[V any](query string, fields ...func(V) []string) Filter[V] {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return All[V]()
	}
	return func(v V) bool {
		for _, field := range fields {
			for _, text := range field(v) {
				if strings.Contains(strings.ToLower(text), q) {
					return true
				}
			}
		}
		return false
	}
}

// Text adapts a single-string accessor for MatchAny.
func Text[V any](fn func(V) string) func(V) []string {
	return func(v V) []string { return []string{fn(v)} }
}

// Equals matches one field exactly. The empty value and "all" match everything.
func Equals[V any](value string, field func(V) string) Filter[V] {
	if value == "" || strings.EqualFold(value, "all") {
		return All[V]()
	}
	return func(v V) bool { return field(v) == value }
}

// And combines filters; every one must match.
func And[V any](filters ...Filter[V]) Filter[V] {
	return func(v V) bool {
		for _, f := range filters {
			if f != nil && !f(v) {
				return false
			}
		}
		return true
	}
}

// View is a rendered list: rows for the filtered records and stats for all of them.
type View[R any, S any] struct {
	Rows  []R  `json:"rows"`
	Stats S    `json:"stats"`
	Total int  `json:"total"`
	Shown int  `json:"shown"`
	Empty bool `json:"empty"`
}

// Project renders snapshot through filter. Stats are computed over the full
// snapshot, so filtering never changes them.
func Project[V any, R any, S any](snapshot []V, filter Filter[V], row func(V) R, stats func([]V) S) View[R, S] {
	if filter == nil {
		filter = All[V]()
	}
	rows := make([]R, 0, len(snapshot))
	for _, v := range snapshot {
		if filter(v) {
			rows = append(rows, row(v))
		}
	}

	var s S
	if stats != nil {
		s = stats(snapshot)
	}

	return View[R, S]{
		Rows:  rows,
		Stats: s,
		Total: len(snapshot),
		Shown: len(rows),
		Empty: len(rows) == 0,
	}
}
