package markdown

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/taxogen/schema"
	"github.com/teranos/taxogen/typegen"
)

func render(t *testing.T, s *schema.Schema, opts typegen.Options) string {
	t.Helper()
	artifacts, err := NewGenerator().Generate(s, opts)
	require.NoError(t, err)
	require.Len(t, artifacts, 1)
	assert.Equal(t, "taxonomy.md", artifacts[0].Path)
	return string(artifacts[0].Content)
}

func TestGenerateDocs(t *testing.T) {
	s, err := schema.Load(filepath.Join("..", "..", "taxonomy", "v2", "entities.yml"))
	require.NoError(t, err)
	doc := render(t, s, typegen.Options{})

	assert.True(t, strings.HasPrefix(doc, "<!-- Code generated by taxogen from entities.yml. DO NOT EDIT. -->\n"))
	assert.Contains(t, doc, "# Taxonomy v2\n")
	assert.Contains(t, doc, "3 node types and 3 edge types.")
	assert.Contains(t, doc, "### Target\n\nA target system being assessed during penetration testing\n")
	assert.Contains(t, doc, "| `risk_score` | `float` | 0.0 ≤ x ≤ 10.0 | Calculated risk score |\n")
	assert.Contains(t, doc, "| `ip_address` | `string` | matches `^(?:[0-9]{1,3}\\.){3}[0-9]{1,3}$` | IP address of the target |\n")
	assert.Contains(t, doc, "| `protocol` | `string` | one of `tcp`, `udp` | Network protocol |\n")
	assert.Contains(t, doc, "### HAS_PORT\n")
	assert.Contains(t, doc, "| Target | Port | HAS_PORT |\n")
	assert.Contains(t, doc, "| Vulnerability | Target | AFFECTS |\n")
	assert.Less(t, strings.Index(doc, "## Nodes"), strings.Index(doc, "## Edges"))
}

func TestGenerateWithoutRelationships(t *testing.T) {
	s := &schema.Schema{Version: 1, Nodes: []schema.Entity{{
		Kind:   schema.KindNode,
		Name:   "Host",
		Fields: []schema.Field{{Name: "name", Type: "string", Description: "a | b"}},
	}}}
	doc := render(t, s, typegen.Options{Provenance: typegen.Provenance{Commit: "abcdef012345"}})

	assert.Contains(t, doc, "<!-- Source version: abcdef012345 -->\n")
	assert.Contains(t, doc, "No relationships are declared.")
	assert.Contains(t, doc, "| `name` | `string` |  | a \\| b |\n")
}

func TestGeneratorConstraints(t *testing.T) {
	regex := `^a|b$`
	tests := []struct {
		name  string
		field schema.Field
		want  string
	}{
		{"none", schema.Field{Type: "string"}, ""},
		{"min only", schema.Field{Type: "int", Min: &schema.Bound{Value: 1, Literal: "1"}}, "≥ 1"},
		{"max only", schema.Field{Type: "float", Max: &schema.Bound{Value: 1, Literal: "1.0"}}, "≤ 1.0"},
		{"regex", schema.Field{Type: "string", Regex: &regex}, "matches `^a|b$`"},
		{"array", schema.Field{Type: "string[]", Enum: []string{"x"}}, "each element one of `x`"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Constraints(tt.field))
		})
	}
	assert.Equal(t, "matches `^a\\|b$`", Cell(Constraints(tests[3].field)))
}
