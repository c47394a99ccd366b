// Package source decodes numeric records from YAML documents.
//
// A document holds a top-level "values" sequence; each entry is a mapping
// with the required keys name and numeric and the optional keys format,
// comment, information and seealso. Other keys are ignored. Records may be
// aliases of earlier anchors and may use "<<" merge keys. Scalars are kept
// as written, so a numeric of 001 stays "001".
package source

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/phobologic/numgen/internal/model"
)

var (
	// ErrMalformedRecord reports a record that cannot be used: it is not a
	// mapping, lacks name or numeric, or carries a non-scalar field.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrNoValues reports a document without a values sequence.
	ErrNoValues = errors.New("missing values sequence")
)

type document struct {
	Values yaml.Node `yaml:"values"`
}

// ReadFile reads and decodes the records in path.
func ReadFile(path string) ([]model.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Decode(data, path)
}

// Decode parses a YAML document. file is only used in diagnostics.
func Decode(data []byte, file string) ([]model.Record, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	if doc.Values.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%s: %w", file, ErrNoValues)
	}

	records := make([]model.Record, 0, len(doc.Values.Content))
	for _, node := range doc.Values.Content {
		r, err := decodeRecord(node, file)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

// recordKeys lists the keys a record reads. Anything else is ignored.
var recordKeys = map[string]bool{
	"name":        true,
	"numeric":     true,
	"format":      true,
	"comment":     true,
	"information": true,
	"seealso":     true,
}

func decodeRecord(node *yaml.Node, file string) (model.Record, error) {
	r := model.Record{File: file, Line: node.Line}

	fields := make(map[string]*yaml.Node)
	if err := collectFields(node, fields); err != nil {
		return r, malformed(file, node.Line, err.Error())
	}

	var name, numeric *string
	for _, f := range []struct {
		key string
		dst **string
	}{
		{"name", &name},
		{"numeric", &numeric},
		{"format", &r.Format},
		{"comment", &r.Comment},
		{"information", &r.Information},
		{"seealso", &r.SeeAlso},
	} {
		key, dst := f.key, f.dst
		val, ok := fields[key]
		if !ok {
			continue
		}
		s, ok, err := scalar(val)
		if err != nil {
			return r, malformed(file, val.Line, fmt.Sprintf("field %q: %v", key, err))
		}
		if ok {
			*dst = &s
		}
	}

	if name == nil {
		return r, malformed(file, node.Line, "missing name")
	}
	if numeric == nil {
		return r, malformed(file, node.Line, fmt.Sprintf("%s: missing numeric", *name))
	}
	r.Name = *name
	r.Numeric = *numeric
	return r, nil
}

// collectFields gathers the record keys of a mapping into out, following
// aliases and "<<" merge keys. Keys already in out win, so explicit keys
// override merged ones and earlier merge sources override later ones.
func collectFields(node *yaml.Node, out map[string]*yaml.Node) error {
	node = resolve(node)
	if node.Kind != yaml.MappingNode {
		return errors.New("record is not a mapping")
	}

	var merges []*yaml.Node
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if key.Kind == yaml.ScalarNode && key.ShortTag() == "!!merge" {
			merges = append(merges, val)
			continue
		}
		if !recordKeys[key.Value] {
			continue
		}
		if _, seen := out[key.Value]; !seen {
			out[key.Value] = val
		}
	}

	for _, m := range merges {
		m = resolve(m)
		if m.Kind != yaml.SequenceNode {
			if err := collectFields(m, out); err != nil {
				return fmt.Errorf("merge key: %w", err)
			}
			continue
		}
		for _, item := range m.Content {
			if err := collectFields(item, out); err != nil {
				return fmt.Errorf("merge key: %w", err)
			}
		}
	}
	return nil
}

func resolve(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

// scalar returns the text of a scalar node. Null scalars report ok=false.
func scalar(node *yaml.Node) (string, bool, error) {
	node = resolve(node)
	if node.Kind != yaml.ScalarNode {
		return "", false, errors.New("expected a scalar value")
	}
	if node.ShortTag() == "!!null" {
		return "", false, nil
	}
	return node.Value, true, nil
}

func malformed(file string, line int, msg string) error {
	return fmt.Errorf("%s:%d: %w: %s", file, line, ErrMalformedRecord, msg)
}
