package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Option configures validation.
type Option func(*options)

type options struct {
	collectAll bool
}

// WithCollectAll reports every violation as Violations instead of stopping
// at the first one. Checks that depend on a broken section are skipped.
func WithCollectAll() Option {
	return func(o *options) {
		o.collectAll = true
	}
}

// Validate checks a parsed document and returns its typed form.
//
// Checks run in a fixed order: document shape, version, nodes, edges, then
// relationships. By default the first violation in that order is returned
// as a *ValidationError. Validate has no side effects; validating the same
// document twice yields equal schemas.
func Validate(doc *Document, opts ...Option) (*Schema, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	v := &validator{failFast: !o.collectAll}
	s := v.document(doc.top())
	if len(v.errs) == 0 {
		return s, nil
	}
	if v.failFast {
		return nil, v.errs[0]
	}
	return nil, v.errs
}

type validator struct {
	failFast bool
	errs     Violations
}

// stop reports whether fail-fast validation already has its answer.
func (v *validator) stop() bool {
	return v.failFast && len(v.errs) > 0
}

func (v *validator) add(err *ValidationError) {
	v.errs = append(v.errs, err)
}

func (v *validator) docError(kind Kind, format string, args ...interface{}) {
	v.add(&ValidationError{Kind: kind, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) fieldError(kind Kind, entity, field, format string, args ...interface{}) {
	v.add(&ValidationError{Kind: kind, Entity: entity, Field: field, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) relError(kind Kind, index int, format string, args ...interface{}) {
	msg := fmt.Sprintf("Relationship #%d ", index) + fmt.Sprintf(format, args...)
	v.add(&ValidationError{Kind: kind, Relationship: index, Message: msg})
}

func (v *validator) document(top *yaml.Node) *Schema {
	if !isMapping(top) {
		v.docError(MalformedDocument, "Schema must be a dictionary")
		return nil
	}
	if key, dup := duplicateKey(pairs(top)); dup {
		v.docError(MalformedDocument, "Schema has duplicate top-level key '%s'", key)
		return nil
	}

	s := &Schema{}
	s.Version = v.version(top)
	if v.stop() {
		return nil
	}

	nodesOK, edgesOK := true, true
	if n, ok := lookup(top, "nodes"); ok {
		s.Nodes, nodesOK = v.section(n, KindNode)
		if v.stop() {
			return nil
		}
	}
	if n, ok := lookup(top, "edges"); ok {
		s.Edges, edgesOK = v.section(n, KindEdge)
		if v.stop() {
			return nil
		}
	}
	if n, ok := lookup(top, "relationships"); ok {
		s.Relationships = v.relationships(n, s, nodesOK, edgesOK)
	}
	return s
}

func (v *validator) version(top *yaml.Node) int {
	n, ok := lookup(top, "version")
	if !ok {
		v.docError(MissingVersion, "Schema must have a 'version' field")
		return 0
	}
	version, ok := decodeInt(n)
	if !ok {
		v.docError(InvalidVersionType, "Schema 'version' must be an integer")
		return 0
	}
	if version < 1 {
		v.docError(InvalidVersionType, "Schema 'version' must be a positive integer, got %d", version)
		return 0
	}
	return version
}

// section validates the nodes or edges mapping. The boolean is false when
// any entity in it failed validation.
func (v *validator) section(n *yaml.Node, kind EntityKind) ([]Entity, bool) {
	sectionKind := InvalidNodesSection
	title := "Node"
	if kind == KindEdge {
		sectionKind = InvalidEdgesSection
		title = "Edge"
	}

	if !isMapping(n) {
		v.docError(sectionKind, "'%ss' section must be a dictionary", kind)
		return nil, false
	}
	ps := pairs(n)
	if key, dup := duplicateKey(ps); dup {
		v.docError(sectionKind, "%s '%s' is defined more than once", title, key)
		return nil, false
	}

	entities := make([]Entity, 0, len(ps))
	valid := true
	for _, p := range ps {
		e, ok := v.entity(p, kind, title, sectionKind)
		if v.stop() {
			return nil, false
		}
		if !ok {
			valid = false
			continue
		}
		entities = append(entities, e)
	}
	return entities, valid
}

func (v *validator) entity(p pair, kind EntityKind, title string, sectionKind Kind) (Entity, bool) {
	label := entityLabel(kind, p.key)
	if !isMapping(p.value) {
		v.fieldError(sectionKind, label, "", "%s '%s' definition must be a dictionary", title, p.key)
		return Entity{}, false
	}

	e := Entity{Kind: kind, Name: p.key}
	if d, ok := lookup(p.value, "description"); ok {
		e.Description = scalarText(d)
	}

	fields, ok := lookup(p.value, "fields")
	if !ok {
		v.fieldError(MissingFields, label, "", "%s '%s' must have 'fields' property", title, p.key)
		return Entity{}, false
	}
	if !isMapping(fields) {
		v.fieldError(InvalidFieldsSection, label, "", "%s '%s' 'fields' must be a dictionary", title, p.key)
		return Entity{}, false
	}
	fps := pairs(fields)
	if key, dup := duplicateKey(fps); dup {
		v.fieldError(InvalidFieldsSection, label, key, "Field '%s' in %s is defined more than once", key, label)
		return Entity{}, false
	}

	valid := true
	for _, fp := range fps {
		f, ok := v.field(fp, label)
		if v.stop() {
			return Entity{}, false
		}
		if !ok {
			valid = false
			continue
		}
		e.Fields = append(e.Fields, f)
	}
	return e, valid
}

func (v *validator) field(p pair, label string) (Field, bool) {
	name := p.key
	if !isMapping(p.value) {
		v.fieldError(InvalidFieldsSection, label, name, "Field '%s' in %s must be a dictionary", name, label)
		return Field{}, false
	}

	t, ok := v.fieldType(p, label)
	if !ok {
		return Field{}, false
	}

	f := Field{Name: name, Type: t}
	if d, ok := lookup(p.value, "description"); ok {
		f.Description = scalarText(d)
	}

	before := len(v.errs)
	v.enum(&f, p.value, label)
	if v.stop() {
		return Field{}, false
	}
	v.regex(&f, p.value, label)
	if v.stop() {
		return Field{}, false
	}
	v.bounds(&f, p.value, label)
	return f, len(v.errs) == before
}

func (v *validator) fieldType(p pair, label string) (FieldType, bool) {
	n, ok := lookup(p.value, "type")
	if !ok {
		v.fieldError(MissingFieldType, label, p.key, "Field '%s' in %s must have a 'type' property", p.key, label)
		return "", false
	}
	supported := strings.Join(PrimitiveTypes, ", ")
	if !isString(n) {
		v.fieldError(UnsupportedFieldType, label, p.key,
			"Field '%s' in %s has unsupported type '%s'. Supported types: %s and arrays of these (e.g., 'string[]')",
			p.key, label, text(n), supported)
		return "", false
	}

	t := FieldType(n.Value)
	if t.IsArray() {
		if base := string(t.Elem()); !IsPrimitive(base) {
			v.fieldError(UnsupportedFieldType, label, p.key,
				"Field '%s' in %s has unsupported array base type '%s'. Supported types: %s",
				p.key, label, base, supported)
			return "", false
		}
		return t, true
	}
	if !IsPrimitive(string(t)) {
		v.fieldError(UnsupportedFieldType, label, p.key,
			"Field '%s' in %s has unsupported type '%s'. Supported types: %s and arrays of these (e.g., 'string[]')",
			p.key, label, t, supported)
		return "", false
	}
	return t, true
}

func (v *validator) enum(f *Field, def *yaml.Node, label string) {
	n, ok := lookup(def, "enum")
	if !ok {
		return
	}
	if f.Type.BaseType() != TypeString {
		v.fieldError(InvalidEnumConstraint, label, f.Name,
			"Field '%s' in %s has 'enum' constraint but type is '%s'. Enum constraints are only valid for 'string' type.",
			f.Name, label, f.Type)
		return
	}
	if !isSequence(n) || len(n.Content) == 0 {
		v.fieldError(InvalidEnumConstraint, label, f.Name,
			"Field '%s' in %s has invalid 'enum' constraint. Must be a non-empty list.", f.Name, label)
		return
	}
	values := make([]string, 0, len(n.Content))
	for _, item := range n.Content {
		item = resolve(item)
		if !isString(item) {
			v.fieldError(InvalidEnumConstraint, label, f.Name,
				"Field '%s' in %s has invalid 'enum' value '%s'. Enum values must be strings.", f.Name, label, text(item))
			return
		}
		values = append(values, item.Value)
	}
	f.Enum = values
}

func (v *validator) regex(f *Field, def *yaml.Node, label string) {
	n, ok := lookup(def, "regex")
	if !ok {
		return
	}
	if f.Type.BaseType() != TypeString {
		v.fieldError(InvalidRegexConstraint, label, f.Name,
			"Field '%s' in %s has 'regex' constraint but type is '%s'. Regex constraints are only valid for 'string' type.",
			f.Name, label, f.Type)
		return
	}
	if !isString(n) {
		v.fieldError(InvalidRegexConstraint, label, f.Name,
			"Field '%s' in %s has invalid 'regex' constraint. Must be a string pattern.", f.Name, label)
		return
	}
	pattern := n.Value
	f.Regex = &pattern
}

func (v *validator) bounds(f *Field, def *yaml.Node, label string) {
	minNode, hasMin := lookup(def, "min")
	maxNode, hasMax := lookup(def, "max")
	if !hasMin && !hasMax {
		return
	}
	if !f.Type.IsNumeric() {
		v.fieldError(InvalidRangeConstraint, label, f.Name,
			"Field '%s' in %s has min/max constraint but type is '%s'. Min/max constraints are only valid for numeric types (int, float, timestamp).",
			f.Name, label, f.Type)
		return
	}
	if hasMin {
		b, ok := decodeBound(minNode)
		if !ok {
			v.fieldError(InvalidRangeConstraint, label, f.Name,
				"Field '%s' in %s has non-numeric min '%s'", f.Name, label, text(minNode))
			return
		}
		if !v.intBound(f, b, "min", label) {
			return
		}
		f.Min = b
	}
	if hasMax {
		b, ok := decodeBound(maxNode)
		if !ok {
			v.fieldError(InvalidRangeConstraint, label, f.Name,
				"Field '%s' in %s has non-numeric max '%s'", f.Name, label, text(maxNode))
			return
		}
		if !v.intBound(f, b, "max", label) {
			return
		}
		f.Max = b
	}
	if f.Min != nil && f.Max != nil && f.Min.Value > f.Max.Value {
		v.fieldError(RangeOrderViolation, label, f.Name,
			"Field '%s' in %s has min (%s) > max (%s). Min must be less than or equal to max.",
			f.Name, label, f.Min, f.Max)
	}
}

// intBound requires bounds on int fields to be whole numbers within int64
// range and respells them as integer literals, so "min: 0.0" on an int field
// reads as "0" in every target.
func (v *validator) intBound(f *Field, b *Bound, which, label string) bool {
	if f.Type.BaseType() != TypeInt {
		return true
	}
	if b.Value != math.Trunc(b.Value) || b.Value < math.MinInt64 || b.Value >= math.MaxInt64 {
		v.fieldError(InvalidRangeConstraint, label, f.Name,
			"Field '%s' in %s has %s %s but type is '%s'. Bounds on int fields must be whole numbers.",
			f.Name, label, which, b.Literal, f.Type)
		return false
	}
	b.Literal = strconv.FormatInt(int64(b.Value), 10)
	return true
}

// relationships checks references against the declared nodes and edges.
// Reference checks against a broken section are skipped.
func (v *validator) relationships(n *yaml.Node, s *Schema, nodesOK, edgesOK bool) []Relationship {
	if !isSequence(n) {
		v.docError(InvalidRelationshipsSection, "'relationships' section must be a list")
		return nil
	}

	nodes := make(map[string]bool, len(s.Nodes))
	for _, e := range s.Nodes {
		nodes[e.Name] = true
	}
	edges := make(map[string]bool, len(s.Edges))
	for _, e := range s.Edges {
		edges[e.Name] = true
	}

	rels := make([]Relationship, 0, len(n.Content))
	for i, item := range n.Content {
		rel, ok := v.relationship(i+1, resolve(item), nodes, edges, nodesOK, edgesOK)
		if v.stop() {
			return nil
		}
		if ok {
			rels = append(rels, rel)
		}
	}
	return rels
}

func (v *validator) relationship(index int, item *yaml.Node, nodes, edges map[string]bool, nodesOK, edgesOK bool) (Relationship, bool) {
	if !isMapping(item) {
		v.relError(InvalidRelationshipsSection, index, "must be a dictionary with 'source', 'target' and 'edges'")
		return Relationship{}, false
	}

	values := make(map[string]*yaml.Node, 3)
	for _, key := range []string{"source", "target", "edges"} {
		n, ok := lookup(item, key)
		if !ok {
			v.relError(MissingRelationshipField, index, "missing '%s' field", key)
			return Relationship{}, false
		}
		values[key] = n
	}

	rel := Relationship{Index: index, Source: scalarText(values["source"]), Target: scalarText(values["target"])}
	if nodesOK {
		if !isString(values["source"]) || !nodes[rel.Source] {
			v.relError(UndefinedNodeReference, index, "references undefined source node '%s'", text(values["source"]))
			return Relationship{}, false
		}
		if !isString(values["target"]) || !nodes[rel.Target] {
			v.relError(UndefinedNodeReference, index, "references undefined target node '%s'", text(values["target"]))
			return Relationship{}, false
		}
	}

	list := values["edges"]
	if !isSequence(list) || len(list.Content) == 0 {
		v.relError(InvalidRelationshipEdges, index, "must have non-empty 'edges' list")
		return Relationship{}, false
	}
	for _, e := range list.Content {
		e = resolve(e)
		if edgesOK && (!isString(e) || !edges[e.Value]) {
			v.relError(UndefinedEdgeReference, index, "references undefined edge type '%s'", text(e))
			return Relationship{}, false
		}
		rel.Edges = append(rel.Edges, scalarText(e))
	}
	return rel, true
}
