// Package python renders a taxonomy as a pydantic v2 model package.
package python

import (
	"bytes"
	"embed"
	"fmt"
	"regexp"
	"text/template"

	"github.com/BurntSushi/toml"

	"github.com/teranos/taxogen/errors"
	"github.com/teranos/taxogen/schema"
	"github.com/teranos/taxogen/typegen"
	"github.com/teranos/taxogen/typegen/util"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	DefaultPackage  = "taxonomy"
	DefaultPydantic = ">=2.0,<3"
	RequiresPython  = ">=3.10"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var templates = template.Must(typegen.ParseTemplates(templateFS, "templates/*.tmpl", template.FuncMap{
	"repr":     Repr,
	"reprList": ReprList,
	"docstring": func(e typegen.Entity[FieldView]) string {
		if e.Description == "" {
			return fmt.Sprintf("%s %s.", e.Name, e.Kind)
		}
		return Docstring(e.Description)
	},
}))

// Generator implements typegen.Target for Python
type Generator struct{}

// NewGenerator creates a new Python generator
func NewGenerator() *Generator {
	return &Generator{}
}

// Language returns "python"
func (g *Generator) Language() string {
	return "python"
}

// Dir returns "python"
func (g *Generator) Dir() string {
	return "python"
}

type pyData struct {
	typegen.Data[FieldView]
	Package     string
	NodeClasses []string
	EdgeClasses []string
}

type modelsData struct {
	Header    []string
	Title     string
	Package   string
	Entities  []typegen.Entity[FieldView]
	Annotated bool
}

// Generate renders pyproject.toml and the <package>/ modules.
func (g *Generator) Generate(s *schema.Schema, opts typegen.Options) ([]typegen.Artifact, error) {
	pkg := opts.Python.Package
	if pkg == "" {
		pkg = DefaultPackage
	}
	if !identifier.MatchString(pkg) {
		return nil, errors.WithHint(
			errors.Newf("invalid Python package name %q", pkg),
			"use a valid identifier such as pentest_taxonomy")
	}

	data := pyData{
		Data:    typegen.NewData(s, opts, Project),
		Package: pkg,
	}
	for _, n := range data.Nodes {
		data.NodeClasses = append(data.NodeClasses, n.ClassName)
	}
	for _, e := range data.Edges {
		data.EdgeClasses = append(data.EdgeClasses, e.ClassName)
	}

	pyproject, err := renderPyproject(s.Version, pkg, opts)
	if err != nil {
		return nil, err
	}
	artifacts := []typegen.Artifact{{Path: "pyproject.toml", Content: pyproject}}

	files := []struct {
		path     string
		template string
		data     any
	}{
		{"__init__.py", "__init__.py.tmpl", data},
		{"nodes.py", "models.py.tmpl", models(data, "Node", data.Nodes)},
		{"edges.py", "models.py.tmpl", models(data, "Edge", data.Edges)},
		{"entity_map.py", "entity_map.py.tmpl", data},
	}
	for _, f := range files {
		content, err := typegen.Render(templates, f.template, f.data)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, typegen.Artifact{Path: pkg + "/" + f.path, Content: content})
	}
	return artifacts, nil
}

func models(data pyData, title string, entities []typegen.Entity[FieldView]) modelsData {
	m := modelsData{
		Header:   data.Header,
		Title:    title,
		Package:  data.Package,
		Entities: entities,
	}
	for _, e := range entities {
		for _, f := range e.Fields {
			m.Annotated = m.Annotated || f.View.Annotated
		}
	}
	return m
}

type pyproject struct {
	BuildSystem buildSystem `toml:"build-system"`
	Project     project     `toml:"project"`
}

type buildSystem struct {
	Requires     []string `toml:"requires"`
	BuildBackend string   `toml:"build-backend"`
}

type project struct {
	Name           string   `toml:"name"`
	Version        string   `toml:"version"`
	Description    string   `toml:"description"`
	RequiresPython string   `toml:"requires-python"`
	Dependencies   []string `toml:"dependencies"`
}

func renderPyproject(version int, pkg string, opts typegen.Options) ([]byte, error) {
	pydantic := opts.Python.Pydantic
	if pydantic == "" {
		pydantic = DefaultPydantic
	}
	pkgVersion := opts.PackageVersion
	if pkgVersion == "" {
		pkgVersion = typegen.DefaultPackageVersion(version)
	}

	var buf bytes.Buffer
	for _, line := range opts.HeaderLines() {
		buf.WriteString("# " + line + "\n")
	}
	buf.WriteString("\n")

	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	err := enc.Encode(pyproject{
		BuildSystem: buildSystem{
			Requires:     []string{"hatchling"},
			BuildBackend: "hatchling.build",
		},
		Project: project{
			Name:           util.ToKebabCase(pkg),
			Version:        pkgVersion,
			Description:    fmt.Sprintf("Pydantic models for taxonomy version %d", version),
			RequiresPython: RequiresPython,
			Dependencies:   []string{"pydantic" + pydantic},
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode pyproject.toml")
	}
	return buf.Bytes(), nil
}
