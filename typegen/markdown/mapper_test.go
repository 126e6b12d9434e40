package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teranos/taxogen/schema"
)

func TestConstraints(t *testing.T) {
	regex := `^(?:[0-9]{1,3}\.){3}[0-9]{1,3}$`
	zero := &schema.Bound{Value: 0, Literal: "0.0"}
	ten := &schema.Bound{Value: 10, Literal: "10.0"}
	one := &schema.Bound{Value: 1, Literal: "1"}

	tests := []struct {
		name  string
		field schema.Field
		want  string
	}{
		{"none", schema.Field{Type: "string"}, ""},
		{"enum", schema.Field{Type: "string", Enum: []string{"active", "inactive"}}, "one of `active`, `inactive`"},
		{"regex", schema.Field{Type: "string", Regex: &regex}, "matches `" + regex + "`"},
		{"range", schema.Field{Type: "float", Min: zero, Max: ten}, "0.0 ≤ x ≤ 10.0"},
		{"min only", schema.Field{Type: "int", Min: one}, "≥ 1"},
		{"max only", schema.Field{Type: "float", Max: ten}, "≤ 10.0"},
		{"enum and regex", schema.Field{Type: "string", Enum: []string{"a"}, Regex: &regex}, "one of `a`; matches `" + regex + "`"},
		{"array", schema.Field{Type: "int[]", Min: one}, "each element ≥ 1"},
		{"plain array", schema.Field{Type: "string[]"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Constraints(tt.field))
		})
	}
}

func TestCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"active", "`active`"},
		{"a`b", "``a`b``"},
		{"x``y`", "``` x``y` ```"},
		{"`", "`` ` ``"},
		{"", "``"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, code(tt.in))
		})
	}
}

func TestConstraintsWithBackticks(t *testing.T) {
	regex := "^`[a-z]+`$"
	f := schema.Field{Type: "string", Enum: []string{"a`b", "plain"}, Regex: &regex}
	assert.Equal(t, "one of ``a`b``, `plain`; matches ``^`[a-z]+`$``", Constraints(f))
}

func TestProject(t *testing.T) {
	v := Project(schema.Field{Type: "string[]", Enum: []string{"x"}})
	assert.Equal(t, "string[]", v.Type)
	assert.Equal(t, "each element one of `x`", v.Constraints)
}

func TestCell(t *testing.T) {
	assert.Equal(t, `a \| b`, Cell("a | b"))
	assert.Equal(t, "first line second line", Cell("first line\n  second line"))
	assert.Equal(t, "", Cell("   "))
}
