package typescript

import (
	"regexp"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/teranos/taxogen/schema"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ZodMapping defines how taxonomy primitives map to zod schemas
var ZodMapping = map[string]string{
	schema.TypeString:    "z.string()",
	schema.TypeInt:       "z.number().int()",
	schema.TypeFloat:     "z.number()",
	schema.TypeBoolean:   "z.boolean()",
	schema.TypeTimestamp: "z.number()",
}

// TypeMapping defines the TypeScript type behind each zod schema
var TypeMapping = map[string]string{
	schema.TypeString:    "string",
	schema.TypeInt:       "number",
	schema.TypeFloat:     "number",
	schema.TypeBoolean:   "boolean",
	schema.TypeTimestamp: "number",
}

var jsIdentifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// FieldView is the zod projection of one field.
type FieldView struct {
	// Key is the object key, quoted when it is not an identifier
	Key string
	// Zod is the full optional field schema
	Zod    string
	TSType string
}

// Project maps a schema field to its zod presentation.
func Project(f schema.Field) FieldView {
	zod := ZodSchema(f) + ".optional()"
	if f.Description != "" {
		zod += ".describe(" + Quote(f.Description) + ")"
	}
	return FieldView{
		Key:    Key(f.Name),
		Zod:    zod,
		TSType: TSType(f.Type),
	}
}

// ZodSchema builds the required zod schema for a field. Constraints on
// array fields apply to the elements.
func ZodSchema(f schema.Field) string {
	if f.Type.IsArray() {
		elem := f
		elem.Type = f.Type.Elem()
		return "z.array(" + ZodSchema(elem) + ")"
	}

	zod := ZodMapping[string(f.Type)]
	if f.HasEnum() {
		zod = "z.enum([" + QuoteList(f.Enum) + "])"
	} else if f.Regex != nil {
		zod += ".regex(" + RegexLiteral(*f.Regex) + ")"
	}
	if f.Min != nil {
		zod += ".min(" + f.Min.Literal + ")"
	}
	if f.Max != nil {
		zod += ".max(" + f.Max.Literal + ")"
	}
	return zod
}

// TSType returns the TypeScript type of a field type.
func TSType(t schema.FieldType) string {
	if t.IsArray() {
		return TSType(t.Elem()) + "[]"
	}
	return TypeMapping[string(t)]
}

// RegexLiteral renders pattern as a JavaScript regex literal, escaping
// bare slashes and line breaks.
func RegexLiteral(pattern string) string {
	if pattern == "" {
		return "/(?:)/"
	}
	var b strings.Builder
	b.WriteByte('/')
	escaped := false
	for _, r := range pattern {
		switch {
		case escaped:
			b.WriteRune(r)
			escaped = false
		case r == '\\':
			b.WriteRune(r)
			escaped = true
		case r == '/':
			b.WriteString(`\/`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	if escaped {
		b.WriteRune('\\')
	}
	b.WriteByte('/')
	return b.String()
}

// Quote renders s as a double-quoted string literal.
func Quote(s string) string {
	out, err := json.Marshal(s)
	if err != nil {
		// strings always marshal
		panic(err)
	}
	return string(out)
}

// QuoteList renders values as comma-separated string literals.
func QuoteList(values []string) string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = Quote(v)
	}
	return strings.Join(out, ", ")
}

// Key returns name as an object key.
func Key(name string) string {
	if jsIdentifier.MatchString(name) {
		return name
	}
	return Quote(name)
}
