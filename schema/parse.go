package schema

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is a parsed but not yet validated taxonomy.
type Document struct {
	root *yaml.Node
}

// Parse decodes a single YAML document. It only fails on syntax errors and
// multi-document streams; structural checks belong to Validate.
func Parse(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var node yaml.Node
	if err := dec.Decode(&node); err != nil && err != io.EOF {
		return nil, syntaxError(err)
	}

	var extra yaml.Node
	switch err := dec.Decode(&extra); {
	case err == io.EOF:
	case err != nil:
		return nil, syntaxError(err)
	default:
		return nil, &ValidationError{
			Kind:    MalformedDocument,
			Message: "Schema must contain a single YAML document",
		}
	}
	return &Document{root: &node}, nil
}

func syntaxError(err error) *ValidationError {
	return &ValidationError{
		Kind:    MalformedDocument,
		Message: fmt.Sprintf("Invalid YAML syntax: %v", err),
	}
}

// top returns the document's top-level value, nil for an empty document.
func (d *Document) top() *yaml.Node {
	if d == nil || d.root == nil {
		return nil
	}
	n := d.root
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil
		}
		n = n.Content[0]
	}
	return resolve(n)
}

type pair struct {
	key   string
	value *yaml.Node
	line  int
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func isMapping(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.MappingNode
}

func isSequence(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.SequenceNode
}

func isScalar(n *yaml.Node, tag string) bool {
	return n != nil && n.Kind == yaml.ScalarNode && n.ShortTag() == tag
}

func isString(n *yaml.Node) bool {
	return isScalar(n, "!!str")
}

// pairs lists mapping entries in document order.
func pairs(m *yaml.Node) []pair {
	out := make([]pair, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		k := resolve(m.Content[i])
		out = append(out, pair{key: k.Value, value: resolve(m.Content[i+1]), line: k.Line})
	}
	return out
}

// lookup finds key in a mapping.
func lookup(m *yaml.Node, key string) (*yaml.Node, bool) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if resolve(m.Content[i]).Value == key {
			return resolve(m.Content[i+1]), true
		}
	}
	return nil, false
}

// duplicateKey returns the first key that appears twice in a mapping.
func duplicateKey(ps []pair) (string, bool) {
	seen := make(map[string]bool, len(ps))
	for _, p := range ps {
		if seen[p.key] {
			return p.key, true
		}
		seen[p.key] = true
	}
	return "", false
}

// text renders a node for messages.
func text(n *yaml.Node) string {
	if n == nil {
		return "null"
	}
	if n.Kind == yaml.ScalarNode {
		return n.Value
	}
	out, err := yaml.Marshal(n)
	if err != nil {
		return n.Value
	}
	return strings.TrimSpace(string(out))
}

// scalarText returns the value of a scalar, or "" for anything else.
func scalarText(n *yaml.Node) string {
	if n != nil && n.Kind == yaml.ScalarNode && n.ShortTag() != "!!null" {
		return n.Value
	}
	return ""
}

func decodeInt(n *yaml.Node) (int, bool) {
	if !isScalar(n, "!!int") {
		return 0, false
	}
	var v int
	if err := n.Decode(&v); err != nil {
		return 0, false
	}
	return v, true
}

// decodeBound reads an int or float scalar as a finite number.
func decodeBound(n *yaml.Node) (*Bound, bool) {
	switch {
	case isScalar(n, "!!int"):
		var v int64
		if err := n.Decode(&v); err != nil {
			return nil, false
		}
		return &Bound{Value: float64(v), Literal: strconv.FormatInt(v, 10)}, true
	case isScalar(n, "!!float"):
		var v float64
		if err := n.Decode(&v); err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, false
		}
		return &Bound{Value: v, Literal: formatFloat(v)}, true
	}
	return nil, false
}

// formatFloat spells a float the way the declared literal reads: always with
// a decimal point, switching to exponent form for very large or small values.
func formatFloat(v float64) string {
	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
