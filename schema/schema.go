// Package schema loads and validates taxonomy documents.
//
// A taxonomy is a YAML document declaring a version, node entity types,
// edge entity types and the relationships allowed between nodes:
//
//	version: 2
//	nodes:
//	  Target:
//	    description: A target system
//	    fields:
//	      risk_score: {type: float, min: 0.0, max: 10.0}
//	edges:
//	  HAS_PORT:
//	    fields: {}
//	relationships:
//	  - {source: Target, target: Port, edges: [HAS_PORT]}
//
// Validation happens once, before any code is generated. The typed Schema
// returned by Validate preserves declaration order so generated artifacts
// are deterministic.
package schema

import "strings"

// EntityKind distinguishes node definitions from edge definitions.
type EntityKind string

const (
	KindNode EntityKind = "node"
	KindEdge EntityKind = "edge"
)

// Primitive field types.
const (
	TypeString    = "string"
	TypeInt       = "int"
	TypeFloat     = "float"
	TypeBoolean   = "boolean"
	TypeTimestamp = "timestamp"

	arraySuffix = "[]"
)

// PrimitiveTypes lists the supported primitive types in display order.
var PrimitiveTypes = []string{TypeString, TypeInt, TypeFloat, TypeBoolean, TypeTimestamp}

var primitives = map[string]bool{
	TypeString:    true,
	TypeInt:       true,
	TypeFloat:     true,
	TypeBoolean:   true,
	TypeTimestamp: true,
}

var numericTypes = map[string]bool{
	TypeInt:       true,
	TypeFloat:     true,
	TypeTimestamp: true,
}

// FieldType is a declared field type such as "float" or "string[]".
type FieldType string

// IsArray reports whether the type carries the array suffix.
func (t FieldType) IsArray() bool {
	return strings.HasSuffix(string(t), arraySuffix)
}

// Elem strips one array suffix. For non-array types it returns t.
func (t FieldType) Elem() FieldType {
	return FieldType(strings.TrimSuffix(string(t), arraySuffix))
}

// BaseType returns the primitive underneath any array suffix.
func (t FieldType) BaseType() string {
	s := string(t)
	for strings.HasSuffix(s, arraySuffix) {
		s = strings.TrimSuffix(s, arraySuffix)
	}
	return s
}

// IsNumeric reports whether min/max constraints apply to the base type.
func (t FieldType) IsNumeric() bool {
	return numericTypes[t.BaseType()]
}

// IsPrimitive reports whether name is one of the supported primitive types.
func IsPrimitive(name string) bool {
	return primitives[name]
}

// Bound is a numeric min/max constraint. Literal keeps the spelling used in
// generated code ("0.0", "65535") so integer and float bounds render the way
// they were declared.
type Bound struct {
	Value   float64
	Literal string
}

func (b Bound) String() string {
	return b.Literal
}

// Field is a single typed field of an entity.
type Field struct {
	Name        string
	Type        FieldType
	Description string
	Enum        []string
	Regex       *string
	Min         *Bound
	Max         *Bound
}

// HasEnum reports whether the field declares an enum constraint.
func (f Field) HasEnum() bool {
	return len(f.Enum) > 0
}

// Entity is a node or edge definition.
type Entity struct {
	Kind        EntityKind
	Name        string
	Description string
	Fields      []Field
}

// Label is the "node 'Target'" form used in messages.
func (e Entity) Label() string {
	return entityLabel(e.Kind, e.Name)
}

func entityLabel(kind EntityKind, name string) string {
	return string(kind) + " '" + name + "'"
}

// Relationship declares which edges may connect a source node to a target node.
// Index is 1-based and matches validation messages.
type Relationship struct {
	Index  int
	Source string
	Target string
	Edges  []string
}

// Schema is a validated taxonomy.
type Schema struct {
	Version       int
	Nodes         []Entity
	Edges         []Entity
	Relationships []Relationship
}

// Node looks up a node definition by name.
func (s *Schema) Node(name string) (Entity, bool) {
	return find(s.Nodes, name)
}

// Edge looks up an edge definition by name.
func (s *Schema) Edge(name string) (Entity, bool) {
	return find(s.Edges, name)
}

func find(entities []Entity, name string) (Entity, bool) {
	for _, e := range entities {
		if e.Name == name {
			return e, true
		}
	}
	return Entity{}, false
}

// EdgePair is one entry of the edge type map: the edges allowed between a
// source and a target node.
type EdgePair struct {
	Source string
	Target string
	Edges  []string
}

// EdgeTypeMap groups relationships by (source, target). Relationships that
// repeat a pair are merged; edge names keep first-seen order without
// duplicates. Pairs keep the order of their first relationship.
func (s *Schema) EdgeTypeMap() []EdgePair {
	var pairs []EdgePair
	index := make(map[[2]string]int)
	for _, rel := range s.Relationships {
		key := [2]string{rel.Source, rel.Target}
		i, ok := index[key]
		if !ok {
			i = len(pairs)
			index[key] = i
			pairs = append(pairs, EdgePair{Source: rel.Source, Target: rel.Target})
		}
		for _, edge := range rel.Edges {
			if !contains(pairs[i].Edges, edge) {
				pairs[i].Edges = append(pairs[i].Edges, edge)
			}
		}
	}
	return pairs
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
