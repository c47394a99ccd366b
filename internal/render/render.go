// Package render turns merged numerics into source declarations.
package render

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/phobologic/numgen/internal/model"
)

// Options tune a single render.
type Options struct {
	// Package is the package clause for targets that need one.
	Package string

	// Normalize applies Unicode NFC to documentation text.
	Normalize bool

	// Fragment omits the target header so the result can be spliced into
	// an existing file.
	Fragment bool
}

// Target describes how one output language spells a numeric.
type Target struct {
	Name      string
	Extension string

	// Header returns text emitted once before the first block, or "".
	Header func(opts Options) string

	// Open returns the first documentation line of a block.
	Open func(n *model.Numeric) string

	// Prefix starts every documentation line between Open and Close.
	Prefix string

	// Close is the final documentation line; empty means none.
	Close string

	// Declare returns the declaration line for n.
	Declare func(n *model.Numeric) string
}

const seeAlsoLabel = "See also: "

// Targets maps target names to their configuration.
// Populated by init() functions in per-target files.
var Targets = map[string]*Target{}

// TargetNames returns the registered target names, sorted.
func TargetNames() []string {
	names := make([]string, 0, len(Targets))
	for name := range Targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the target registered under name.
func Lookup(name string) (*Target, error) {
	t, ok := Targets[name]
	if !ok {
		return nil, fmt.Errorf("unsupported target %q (valid: %s)", name, strings.Join(TargetNames(), ", "))
	}
	return t, nil
}

// Render emits one block per numeric in the given order. Every block starts
// with a blank line separator; the result ends with a single newline.
func Render(numerics []*model.Numeric, t *Target, opts Options) string {
	var b strings.Builder
	if t.Header != nil && !opts.Fragment {
		b.WriteString(t.Header(opts))
	}
	for _, n := range numerics {
		writeBlock(&b, n, t, opts)
	}
	b.WriteString("\n")
	return b.String()
}

// Block renders a single numeric without the leading separator.
func Block(n *model.Numeric, t *Target, opts Options) string {
	var b strings.Builder
	writeBlock(&b, n, t, opts)
	return strings.TrimPrefix(b.String(), "\n\n")
}

func writeBlock(b *strings.Builder, n *model.Numeric, t *Target, opts Options) {
	b.WriteString("\n\n")
	b.WriteString(t.Open(n))
	b.WriteString("\n")

	writeDoc(b, t.Prefix, "", n.Format, opts)
	writeDoc(b, t.Prefix, "", n.Comment, opts)
	writeDoc(b, t.Prefix, seeAlsoLabel, n.SeeAlso, opts)

	if t.Close != "" {
		b.WriteString(t.Close)
		b.WriteString("\n")
	}
	b.WriteString(t.Declare(n))
}

// writeDoc writes an accumulator with every line prefixed. The accumulator's
// final separator does not produce an extra empty line. label is written
// after the prefix of the first line only.
func writeDoc(b *strings.Builder, prefix, label, text string, opts Options) {
	if text == "" {
		return
	}
	if opts.Normalize {
		text = norm.NFC.String(text)
	}
	text = strings.TrimSuffix(text, "\n")
	for i, line := range strings.Split(text, "\n") {
		if i == 0 {
			line = label + line
		}
		if line == "" {
			b.WriteString(strings.TrimRight(prefix, " "))
		} else {
			b.WriteString(prefix + line)
		}
		b.WriteString("\n")
	}
}
