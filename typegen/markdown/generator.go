// Package markdown renders a taxonomy as reference documentation.
package markdown

import (
	"embed"
	"text/template"

	"github.com/teranos/taxogen/schema"
	"github.com/teranos/taxogen/typegen"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(typegen.ParseTemplates(templateFS, "templates/*.tmpl", template.FuncMap{
	"cell": Cell,
}))

// Generator implements typegen.Target for Markdown
type Generator struct{}

// NewGenerator creates a new Markdown generator
func NewGenerator() *Generator {
	return &Generator{}
}

// Language returns "markdown"
func (g *Generator) Language() string {
	return "markdown"
}

// Dir returns "docs"
func (g *Generator) Dir() string {
	return "docs"
}

// Generate renders taxonomy.md.
func (g *Generator) Generate(s *schema.Schema, opts typegen.Options) ([]typegen.Artifact, error) {
	content, err := typegen.Render(templates, "taxonomy.md.tmpl", typegen.NewData(s, opts, Project))
	if err != nil {
		return nil, err
	}
	return []typegen.Artifact{{Path: "taxonomy.md", Content: content}}, nil
}
