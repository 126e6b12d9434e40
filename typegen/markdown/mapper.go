package markdown

import (
	"fmt"
	"strings"

	"github.com/teranos/taxogen/schema"
)

// FieldView is the documentation projection of one field.
type FieldView struct {
	Type        string
	Constraints string
}

// Project describes a field's type and constraints for a table row.
func Project(f schema.Field) FieldView {
	return FieldView{
		Type:        string(f.Type),
		Constraints: Constraints(f),
	}
}

// Constraints lists every declared constraint, including regexes that some
// targets cannot enforce.
func Constraints(f schema.Field) string {
	var parts []string
	if f.HasEnum() {
		values := make([]string, len(f.Enum))
		for i, v := range f.Enum {
			values[i] = code(v)
		}
		parts = append(parts, "one of "+strings.Join(values, ", "))
	}
	if f.Regex != nil {
		parts = append(parts, "matches "+code(*f.Regex))
	}
	switch {
	case f.Min != nil && f.Max != nil:
		parts = append(parts, fmt.Sprintf("%s ≤ x ≤ %s", f.Min.Literal, f.Max.Literal))
	case f.Min != nil:
		parts = append(parts, "≥ "+f.Min.Literal)
	case f.Max != nil:
		parts = append(parts, "≤ "+f.Max.Literal)
	}
	if f.Type.IsArray() && len(parts) > 0 {
		return "each element " + strings.Join(parts, "; ")
	}
	return strings.Join(parts, "; ")
}

// code wraps s in an inline code span whose fence is longer than any
// backtick run inside it. Content touching a backtick is padded with a space,
// which CommonMark strips when rendering.
func code(s string) string {
	longest, run := 0, 0
	for _, r := range s {
		if r == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	fence := strings.Repeat("`", longest+1)
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		s = " " + s + " "
	}
	return fence + s + fence
}

// Cell escapes text for a table cell.
func Cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}
