package schema

import (
	"fmt"
	"strings"

	"github.com/teranos/taxogen/errors"
)

// Kind classifies a validation failure.
type Kind int

const (
	MalformedDocument Kind = iota + 1
	SchemaNotFound
	MissingVersion
	InvalidVersionType
	InvalidNodesSection
	InvalidEdgesSection
	MissingFields
	InvalidFieldsSection
	MissingFieldType
	UnsupportedFieldType
	InvalidEnumConstraint
	InvalidRegexConstraint
	InvalidRangeConstraint
	RangeOrderViolation
	InvalidRelationshipsSection
	MissingRelationshipField
	UndefinedNodeReference
	InvalidRelationshipEdges
	UndefinedEdgeReference
)

var kindNames = map[Kind]string{
	MalformedDocument:           "MalformedDocument",
	SchemaNotFound:              "SchemaNotFound",
	MissingVersion:              "MissingVersion",
	InvalidVersionType:          "InvalidVersionType",
	InvalidNodesSection:         "InvalidNodesSection",
	InvalidEdgesSection:         "InvalidEdgesSection",
	MissingFields:               "MissingFields",
	InvalidFieldsSection:        "InvalidFieldsSection",
	MissingFieldType:            "MissingFieldType",
	UnsupportedFieldType:        "UnsupportedFieldType",
	InvalidEnumConstraint:       "InvalidEnumConstraint",
	InvalidRegexConstraint:      "InvalidRegexConstraint",
	InvalidRangeConstraint:      "InvalidRangeConstraint",
	RangeOrderViolation:         "RangeOrderViolation",
	InvalidRelationshipsSection: "InvalidRelationshipsSection",
	MissingRelationshipField:    "MissingRelationshipField",
	UndefinedNodeReference:      "UndefinedNodeReference",
	InvalidRelationshipEdges:    "InvalidRelationshipEdges",
	UndefinedEdgeReference:      "UndefinedEdgeReference",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ValidationError reports a single schema violation. Message names the
// offending entity, field or relationship and the rule that failed.
type ValidationError struct {
	Kind Kind
	// Entity is the "node 'Target'" label, empty for document-level errors.
	Entity string
	Field  string
	// Relationship is the 1-based relationship index, 0 when not applicable.
	Relationship int
	Message      string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Violations is the result of a collect-all validation.
type Violations []*ValidationError

func (v Violations) Error() string {
	switch len(v) {
	case 0:
		return "no violations"
	case 1:
		return v[0].Message
	}
	msgs := make([]string, len(v))
	for i, err := range v {
		msgs[i] = err.Message
	}
	return fmt.Sprintf("%d violations:\n  %s", len(v), strings.Join(msgs, "\n  "))
}

// IsValidationError reports whether err is or wraps a schema violation.
func IsValidationError(err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return true
	}
	var vs Violations
	return errors.As(err, &vs)
}

// KindOf returns the kind of the first violation in err, or 0.
func KindOf(err error) Kind {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Kind
	}
	var vs Violations
	if errors.As(err, &vs) && len(vs) > 0 {
		return vs[0].Kind
	}
	return 0
}
