package golang

import (
	"math"
	"strconv"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/teranos/taxogen/schema"
	"github.com/teranos/taxogen/typegen/util"
)

// TypeMapping defines how taxonomy primitives map to Go types.
// Every field is a pointer so absent values stay distinguishable.
var TypeMapping = map[string]string{
	schema.TypeString:    "string",
	schema.TypeInt:       "int",
	schema.TypeFloat:     "float64",
	schema.TypeBoolean:   "bool",
	schema.TypeTimestamp: "float64",
}

// ipv4Patterns are the IPv4 regexes recognized by ClassifyRegex.
var ipv4Patterns = []string{
	`^(?:[0-9]{1,3}\.){3}[0-9]{1,3}$`,
	`^(?:[0-9]+\.){3}[0-9]+$`,
}

// FieldView is the Go projection of one field.
type FieldView struct {
	GoName      string
	Type        *jen.Statement
	TypeName    string
	ValidateTag string
	// DroppedRegex is set when a regex has no validator equivalent
	DroppedRegex bool
}

// Project maps a schema field to its Go presentation.
func Project(f schema.Field) FieldView {
	return FieldView{
		GoName:       util.ToPascalCase(f.Name),
		Type:         GoType(f.Type),
		TypeName:     TypeName(f.Type),
		ValidateTag:  ValidateTag(f),
		DroppedRegex: f.Regex != nil && !f.HasEnum() && ClassifyRegex(*f.Regex) == "",
	}
}

// GoType returns the jennifer code for a field type: *string, *[]*int, ...
func GoType(t schema.FieldType) *jen.Statement {
	if t.IsArray() {
		return jen.Op("*").Index().Add(GoType(t.Elem()))
	}
	return jen.Op("*").Id(TypeMapping[string(t)])
}

// TypeName is the textual form of GoType.
func TypeName(t schema.FieldType) string {
	if t.IsArray() {
		return "*[]" + TypeName(t.Elem())
	}
	return "*" + TypeMapping[string(t)]
}

// ValidateTag builds the go-playground/validator tag for a field. It returns
// "" when the field has no constraint beyond being optional.
//
// Enum wins over regex. A regex is only kept when ClassifyRegex recognizes
// it; other patterns have no validator equivalent and are dropped. Array
// constraints apply to elements through dive.
func ValidateTag(f schema.Field) string {
	var rules []string
	if f.HasEnum() {
		rules = append(rules, "oneof="+oneOfValues(f.Enum))
	} else if f.Regex != nil {
		if kind := ClassifyRegex(*f.Regex); kind != "" {
			rules = append(rules, kind)
		}
	}
	if f.Min != nil {
		rules = append(rules, "min="+boundLiteral(f, f.Min, math.Ceil))
	}
	if f.Max != nil {
		rules = append(rules, "max="+boundLiteral(f, f.Max, math.Floor))
	}
	if len(rules) == 0 {
		return ""
	}

	prefix := []string{"omitempty"}
	if f.Type.IsArray() {
		prefix = append(prefix, "dive", "omitempty")
	}
	return strings.Join(append(prefix, rules...), ",")
}

// boundLiteral spells a bound for a validate tag. The validator parses
// min/max on int fields with strconv.ParseInt, so int bounds are always
// written as whole numbers, rounded inward.
func boundLiteral(f schema.Field, b *schema.Bound, round func(float64) float64) string {
	if f.Type.BaseType() != schema.TypeInt {
		return b.Literal
	}
	return strconv.FormatInt(int64(round(b.Value)), 10)
}

// ClassifyRegex maps well-known regexes onto validator built-ins: "ipv4",
// "email" or "url". It returns "" for anything else.
//
// The match is a heuristic: IPv4 by substring against known patterns (after
// collapsing doubled backslashes), email when the pattern mentions "email",
// URL when it starts with ^https?://.
func ClassifyRegex(pattern string) string {
	normalized := strings.ReplaceAll(pattern, `\\`, `\`)
	for _, p := range ipv4Patterns {
		if strings.Contains(normalized, p) {
			return "ipv4"
		}
	}
	if strings.Contains(strings.ToLower(pattern), "email") {
		return "email"
	}
	if strings.HasPrefix(pattern, "^https?://") {
		return "url"
	}
	return ""
}

// oneOfValues joins enum values for the oneof rule. Values with spaces are
// single-quoted; commas and pipes use the validator's hex escapes.
func oneOfValues(values []string) string {
	out := make([]string, len(values))
	for i, v := range values {
		v = strings.ReplaceAll(v, ",", "0x2C")
		v = strings.ReplaceAll(v, "|", "0x7C")
		if strings.ContainsAny(v, " \t") {
			v = "'" + v + "'"
		}
		out[i] = v
	}
	return strings.Join(out, " ")
}
