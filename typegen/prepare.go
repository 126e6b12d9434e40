package typegen

import (
	"github.com/teranos/taxogen/schema"
	"github.com/teranos/taxogen/typegen/util"
)

// Entity is a node or edge ready for rendering. F is the target's
// per-field presentation.
type Entity[F any] struct {
	Name        string
	ClassName   string
	Description string
	Kind        schema.EntityKind
	Fields      []Field[F]
}

// Field pairs a declared field with its target-specific projection.
type Field[F any] struct {
	Name        string
	Description string
	Def         schema.Field
	View        F
}

// Prepare walks entities in declaration order and projects every field.
// This is the only traversal of the schema; targets differ only in project.
func Prepare[F any](entities []schema.Entity, project func(schema.Field) F) []Entity[F] {
	out := make([]Entity[F], 0, len(entities))
	for _, e := range entities {
		prepared := Entity[F]{
			Name:        e.Name,
			ClassName:   ClassName(e),
			Description: e.Description,
			Kind:        e.Kind,
			Fields:      make([]Field[F], 0, len(e.Fields)),
		}
		for _, f := range e.Fields {
			prepared.Fields = append(prepared.Fields, Field[F]{
				Name:        f.Name,
				Description: f.Description,
				Def:         f,
				View:        project(f),
			})
		}
		out = append(out, prepared)
	}
	return out
}

// ClassName is the generated type name. Node names are used as declared;
// SCREAMING_SNAKE edge names become PascalCase (HAS_PORT -> HasPort).
func ClassName(e schema.Entity) string {
	if e.Kind == schema.KindEdge {
		return util.ToPascalCase(e.Name)
	}
	return e.Name
}

// EdgeClassNames maps edge names to their class names.
func EdgeClassNames(s *schema.Schema) map[string]string {
	names := make(map[string]string, len(s.Edges))
	for _, e := range s.Edges {
		names[e.Name] = ClassName(e)
	}
	return names
}
