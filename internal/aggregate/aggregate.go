// Package aggregate merges input records into one numeric per name.
package aggregate

import (
	"strings"

	"github.com/phobologic/numgen/internal/model"
	"github.com/phobologic/numgen/internal/order"
)

// Sanitize turns a record name into a declaration name by replacing every
// space with an underscore.
func Sanitize(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}

// Table accumulates numerics keyed by sanitized name. The zero value is not
// usable; create one with New.
type Table struct {
	less    order.Less
	byName  map[string]*model.Numeric
	ordered []*model.Numeric
}

// New returns an empty Table that tracks each numeric's lowest value with less.
// A nil less means order.Lexical.
func New(less order.Less) *Table {
	if less == nil {
		less = order.Lexical
	}
	return &Table{
		less:   less,
		byName: make(map[string]*model.Numeric),
	}
}

// Build aggregates records in order into a new Table.
func Build(records []model.Record, less order.Less) *Table {
	t := New(less)
	for i := range records {
		t.Add(&records[i])
	}
	return t
}

// Add merges a single record into the table.
func (t *Table) Add(r *model.Record) {
	name := Sanitize(r.Name)

	n, ok := t.byName[name]
	if !ok {
		n = &model.Numeric{
			Name:   name,
			Values: []string{r.Numeric},
			Lowest: r.Numeric,
		}
		t.byName[name] = n
		t.ordered = append(t.ordered, n)
	} else {
		if !n.HasValue(r.Numeric) {
			n.Values = append(n.Values, r.Numeric)
		}
		if t.less(r.Numeric, n.Lowest) {
			n.Lowest = r.Numeric
		}
	}

	if r.Format != nil {
		n.Format += *r.Format + "\n"
	}
	if r.Comment != nil {
		n.Comment += *r.Comment + "\n"
	}
	// information shares the comment section
	if r.Information != nil {
		n.Comment += *r.Information + "\n"
	}
	if r.SeeAlso != nil {
		n.SeeAlso += *r.SeeAlso + "\n"
	}
}

// Len returns the number of distinct numerics.
func (t *Table) Len() int {
	return len(t.ordered)
}

// Numerics returns a fresh slice of the numerics in first-seen order.
// Sorting the returned slice does not affect the table.
func (t *Table) Numerics() []*model.Numeric {
	out := make([]*model.Numeric, len(t.ordered))
	copy(out, t.ordered)
	return out
}
