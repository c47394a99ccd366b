// Package lang provides a registry of tree-sitter grammars for the render
// targets, along with their embedded declaration queries.
package lang

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
)

//go:embed queries/*.scm
var queryFS embed.FS

// Language holds tree-sitter configuration for a render target.
type Language struct {
	Name string
	lang *sitter.Language

	// Prelude and Postlude wrap rendered output so that it forms a complete
	// compilation unit. Rendered C# is a list of class members, for example.
	Prelude  string
	Postlude string

	queryOnce sync.Once
	query     *sitter.Query
	queryErr  error
}

// NewParser creates a fresh tree-sitter parser for this language.
// Each goroutine must use its own parser (not thread-safe).
func (l *Language) NewParser() *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(l.lang)
	return p
}

// GetDeclQuery returns the compiled declaration query (safe to share across goroutines).
// The query captures every declared name as @name.
func (l *Language) GetDeclQuery() (*sitter.Query, error) {
	l.queryOnce.Do(func() {
		data, err := queryFS.ReadFile(fmt.Sprintf("queries/%s.scm", l.Name))
		if err != nil {
			l.queryErr = fmt.Errorf("reading query file: %w", err)
			return
		}
		q, err := sitter.NewQuery(data, l.lang)
		if err != nil {
			l.queryErr = fmt.Errorf("compiling query: %w", err)
			return
		}
		l.query = q
	})
	return l.query, l.queryErr
}

// PreludeLines is the number of lines Prelude adds before the wrapped source.
func (l *Language) PreludeLines() int {
	return strings.Count(l.Prelude, "\n")
}

// Languages maps render target names to their grammar.
// Populated by init() functions in per-language files.
var Languages = map[string]*Language{}

// ForTarget returns the grammar for a render target, or nil if none is registered.
func ForTarget(target string) *Language {
	return Languages[target]
}

// NodeText returns the source text of a tree-sitter node.
func NodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}
