package python

import (
	"fmt"
	"strings"

	"github.com/teranos/taxogen/schema"
)

// TypeMapping defines how taxonomy primitives map to Python types
var TypeMapping = map[string]string{
	schema.TypeString:    "str",
	schema.TypeInt:       "int",
	schema.TypeFloat:     "float",
	schema.TypeBoolean:   "bool",
	schema.TypeTimestamp: "float",
}

// FieldView is the pydantic projection of one field.
type FieldView struct {
	// Type is the annotation without the trailing "| None"
	Type string
	// Args are the arguments of the Field(...) call
	Args string
	// Annotated is set when Type uses typing.Annotated
	Annotated bool
}

// Project maps a schema field to its pydantic presentation. Regex
// constraints are not carried over.
func Project(f schema.Field) FieldView {
	args := []string{"None"}
	if f.Description != "" {
		args = append(args, "description="+Repr(f.Description))
	}

	if f.Type.IsArray() {
		elem := scalarType(f.Type.Elem(), f.Enum)
		bounds := boundArgs(f)
		if len(bounds) > 0 {
			elem = fmt.Sprintf("Annotated[%s, Field(%s)]", elem, strings.Join(bounds, ", "))
		}
		return FieldView{
			Type:      "list[" + elem + "]",
			Args:      strings.Join(args, ", "),
			Annotated: len(bounds) > 0,
		}
	}

	args = append(args, boundArgs(f)...)
	return FieldView{
		Type: scalarType(f.Type, f.Enum),
		Args: strings.Join(args, ", "),
	}
}

// PythonType returns the annotation of a field type, ignoring constraints.
func PythonType(t schema.FieldType) string {
	if t.IsArray() {
		return "list[" + PythonType(t.Elem()) + "]"
	}
	return TypeMapping[string(t)]
}

func scalarType(t schema.FieldType, enum []string) string {
	if len(enum) > 0 {
		return "Literal[" + ReprList(enum) + "]"
	}
	return PythonType(t)
}

func boundArgs(f schema.Field) []string {
	var args []string
	if f.Min != nil {
		args = append(args, "ge="+f.Min.Literal)
	}
	if f.Max != nil {
		args = append(args, "le="+f.Max.Literal)
	}
	return args
}

// Repr quotes s the way Python's repr() does for str.
func Repr(s string) string {
	quote := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}

	var b strings.Builder
	b.WriteRune(quote)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == quote:
			b.WriteRune('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune(quote)
	return b.String()
}

// ReprList renders values as comma-separated Python string literals.
func ReprList(values []string) string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = Repr(v)
	}
	return strings.Join(out, ", ")
}

// Docstring escapes text for a triple-quoted docstring.
func Docstring(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	if strings.Contains(s, `"""`) || strings.HasSuffix(s, `"`) {
		s = strings.ReplaceAll(s, `"`, `\"`)
	}
	return s
}
