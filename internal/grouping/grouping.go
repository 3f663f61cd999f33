// Package grouping partitions flat record lists into ordered groups and
// filters each group with a chain of predicates.
package grouping

import (
	"bytes"
	"strings"

	"github.com/goccy/go-json"
)

// DefaultBucket receives records whose key is empty.
const DefaultBucket = "Other"

type KeyFunc[T any] func(T) string

// Predicate reports whether a record stays in its group.
type Predicate[T any] func(T) bool

// WithFallback maps empty (or whitespace-only) keys to fallback.
func WithFallback[T any](key KeyFunc[T], fallback string) KeyFunc[T] {
	return func(v T) string {
		k := strings.TrimSpace(key(v))
		if k == "" {
			return fallback
		}
		return k
	}
}

// Groups is an insertion-ordered mapping from group key to records.
type Groups[T any] struct {
	keys  []string
	items map[string][]T
}

// GroupAndFilter groups records by key, then runs filters in order over each
// group. Keys keep the order in which they first appear in records, records
// keep their input order, and groups left empty by filtering are dropped.
// Empty keys land in DefaultBucket unless key already supplies a fallback.
func GroupAndFilter[T any](records []T, key KeyFunc[T], filters ...Predicate[T]) *Groups[T] {
	key = WithFallback(key, DefaultBucket)

	var order []string
	raw := make(map[string][]T)
	for _, r := range records {
		k := key(r)
		if _, seen := raw[k]; !seen {
			order = append(order, k)
		}
		raw[k] = append(raw[k], r)
	}

	g := &Groups[T]{items: make(map[string][]T, len(order))}
	for _, k := range order {
		list := raw[k]
		for _, f := range filters {
			if f == nil {
				continue
			}
			list = keep(list, f)
		}
		if len(list) == 0 {
			continue
		}
		g.keys = append(g.keys, k)
		g.items[k] = list
	}
	return g
}

func keep[T any](in []T, f Predicate[T]) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if f(v) {
			out = append(out, v)
		}
	}
	return out
}

func (g *Groups[T]) Keys() []string {
	return append([]string(nil), g.keys...)
}

func (g *Groups[T]) Get(key string) []T {
	return g.items[key]
}

func (g *Groups[T]) Len() int {
	return len(g.keys)
}

// Each calls fn for every group in key order.
func (g *Groups[T]) Each(fn func(key string, records []T)) {
	for _, k := range g.keys {
		fn(k, g.items[k])
	}
}

// Flatten returns every record across all groups in key order.
func (g *Groups[T]) Flatten() []T {
	var out []T
	for _, k := range g.keys {
		out = append(out, g.items[k]...)
	}
	return out
}

// MarshalJSON writes an object whose member order follows Keys.
func (g *Groups[T]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range g.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(g.items[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Search matches records whose field contains query, ignoring case. An empty
// query matches everything.
func Search[T any](query string, field func(T) string) Predicate[T] {
	q := strings.ToLower(strings.TrimSpace(query))
	return func(v T) bool {
		if q == "" {
			return true
		}
		return strings.Contains(strings.ToLower(field(v)), q)
	}
}

// SearchAny is Search over several fields; one hit is enough.
func SearchAny[T any](query string, fields ...func(T) string) Predicate[T] {
	q := strings.ToLower(strings.TrimSpace(query))
	return func(v T) bool {
		if q == "" {
			return true
		}
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f(v)), q) {
				return true
			}
		}
		return false
	}
}

// Match keeps records whose field equals want. "" and "all" disable it.
// Both sides are trimmed the same way WithFallback trims grouping keys.
func Match[T any](want string, field func(T) string) Predicate[T] {
	want = strings.TrimSpace(want)
	return func(v T) bool {
		if want == "" || strings.EqualFold(want, "all") {
			return true
		}
		return strings.TrimSpace(field(v)) == want
	}
}
