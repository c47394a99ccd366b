// Package order sorts and selects merged numerics for rendering.
package order

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/phobologic/numgen/internal/model"
)

// Less reports whether numeric value a sorts before b.
type Less func(a, b string) bool

const (
	ByLexical = "lexical"
	ByNumeric = "numeric"
)

// Names lists the accepted comparator names.
var Names = []string{ByLexical, ByNumeric}

// Lexical compares values as plain strings, so "100" sorts before "20".
func Lexical(a, b string) bool {
	return a < b
}

// Numeric compares values that parse as integers by magnitude. Integers sort
// before anything that does not parse; everything else falls back to Lexical.
func Numeric(a, b string) bool {
	ai, aErr := strconv.ParseInt(strings.TrimSpace(a), 10, 64)
	bi, bErr := strconv.ParseInt(strings.TrimSpace(b), 10, 64)
	switch {
	case aErr == nil && bErr == nil:
		if ai != bi {
			return ai < bi
		}
		return a < b
	case aErr == nil:
		return true
	case bErr == nil:
		return false
	}
	return a < b
}

// ForName returns the comparator registered under name.
func ForName(name string) (Less, error) {
	switch name {
	case ByLexical, "":
		return Lexical, nil
	case ByNumeric:
		return Numeric, nil
	}
	return nil, fmt.Errorf("unknown order %q (valid: %s)", name, strings.Join(Names, ", "))
}

// Sort orders numerics ascending by Lowest. The sort is stable, so numerics
// with equal Lowest keep their incoming order.
func Sort(numerics []*model.Numeric, less Less) {
	sort.SliceStable(numerics, func(i, j int) bool {
		return less(numerics[i].Lowest, numerics[j].Lowest)
	})
}

// Select returns only the numerics whose name starts with one of prefixes.
// With no prefixes the input slice is returned unchanged.
func Select(numerics []*model.Numeric, prefixes []string) []*model.Numeric {
	if len(prefixes) == 0 {
		return numerics
	}

	var selected []*model.Numeric
	for _, n := range numerics {
		for _, p := range prefixes {
			if strings.HasPrefix(n.Name, p) {
				selected = append(selected, n)
				break
			}
		}
	}
	return selected
}
