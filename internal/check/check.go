// Package check verifies rendered output by parsing it with tree-sitter.
package check

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/phobologic/numgen/internal/lang"
)

// ErrUndeclared reports numerics missing from the parsed declarations.
var ErrUndeclared = errors.New("numeric not declared")

// SyntaxError locates the first parse error in rendered output. Line and
// Column are 1-based and relative to the rendered text.
type SyntaxError struct {
	Target string
	Line   int
	Column int
	Near   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s output:%d:%d: syntax error near %q", e.Target, e.Line, e.Column, e.Near)
}

// Verify parses rendered output for target and checks that every name in
// names is declared in it.
func Verify(target string, rendered []byte, names []string) error {
	l := lang.ForTarget(target)
	if l == nil {
		return fmt.Errorf("no grammar for target %q", target)
	}

	source := make([]byte, 0, len(l.Prelude)+len(rendered)+len(l.Postlude))
	source = append(source, l.Prelude...)
	source = append(source, rendered...)
	source = append(source, l.Postlude...)

	parser := l.NewParser()
	defer parser.Close()

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return fmt.Errorf("parsing %s output: %w", target, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return syntaxError(l, firstError(root), source)
	}

	query, err := l.GetDeclQuery()
	if err != nil {
		return err
	}

	declared := make(map[string]struct{})
	for _, name := range Declared(query, root, source) {
		declared[name] = struct{}{}
	}

	var missing []string
	for _, name := range names {
		if _, ok := declared[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrUndeclared, strings.Join(missing, ", "))
	}
	return nil
}

// Declared returns the text of every @name capture of query under root,
// in document order.
func Declared(query *sitter.Query, root *sitter.Node, source []byte) []string {
	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(query, root)

	var names []string
	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		match = qc.FilterPredicates(match, source)
		for _, c := range match.Captures {
			if query.CaptureNameForId(c.Index) == "name" {
				names = append(names, lang.NodeText(c.Node, source))
			}
		}
	}
	return names
}

// firstError returns the first ERROR or MISSING node in document order.
func firstError(node *sitter.Node) *sitter.Node {
	if node.Type() == "ERROR" || node.IsMissing() {
		return node
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil || (!child.HasError() && !child.IsMissing()) {
			continue
		}
		if found := firstError(child); found != nil {
			return found
		}
	}
	return nil
}

func syntaxError(l *lang.Language, node *sitter.Node, source []byte) *SyntaxError {
	e := &SyntaxError{Target: l.Name, Line: 1, Column: 1}
	if node == nil {
		return e
	}

	start := node.StartPoint()
	if line := int(start.Row) - l.PreludeLines() + 1; line > 1 {
		e.Line = line
	}
	e.Column = int(start.Column) + 1

	near := lang.NodeText(node, source)
	if i := strings.IndexByte(near, '\n'); i >= 0 {
		near = near[:i]
	}
	if len(near) > 40 {
		near = near[:40]
	}
	e.Near = near
	return e
}
