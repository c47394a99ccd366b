// Package model defines core data structures for numgen.
package model

// Record is one entry of the input's top-level values sequence.
// Optional fields are nil when absent from the source document.
type Record struct {
	Name        string
	Numeric     string
	Format      *string
	Comment     *string
	Information *string
	SeeAlso     *string

	// File and Line locate the record for diagnostics.
	File string
	Line int
}

// Numeric is the merged entity for every record sharing a sanitized name.
type Numeric struct {
	Name string

	// Values holds distinct numeric strings in first-seen order.
	Values []string

	// Lowest is the running minimum of Values under the comparator used
	// while aggregating.
	Lowest string

	Format  string
	Comment string
	SeeAlso string
}

// HasValue reports whether v is already one of n's values.
func (n *Numeric) HasValue(v string) bool {
	for _, have := range n.Values {
		if have == v {
			return true
		}
	}
	return false
}
