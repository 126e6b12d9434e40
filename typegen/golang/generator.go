// Package golang renders a taxonomy as Go structs validated by
// go-playground/validator.
package golang

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"

	"github.com/teranos/taxogen/errors"
	"github.com/teranos/taxogen/logger"
	"github.com/teranos/taxogen/schema"
	"github.com/teranos/taxogen/typegen"
)

const (
	// PackageName is the generated Go package
	PackageName = "entities"

	validatorPkg = "github.com/go-playground/validator/v10"

	DefaultModule           = "github.com/yourorg/taxonomy"
	DefaultGoVersion        = "1.21"
	DefaultValidatorVersion = "v10.22.0"
)

// Generator implements typegen.Target for Go
type Generator struct{}

// NewGenerator creates a new Go generator
func NewGenerator() *Generator {
	return &Generator{}
}

// Language returns "go"
func (g *Generator) Language() string {
	return "go"
}

// Dir returns "go"
func (g *Generator) Dir() string {
	return "go"
}

// Generate renders go.mod, entities.go, validators.go and taxonomy.go.
func (g *Generator) Generate(s *schema.Schema, opts typegen.Options) ([]typegen.Artifact, error) {
	log := logger.ComponentLogger("typegen.golang")

	nodes := typegen.Prepare(s.Nodes, Project)
	edges := typegen.Prepare(s.Edges, Project)
	for _, e := range append(append([]typegen.Entity[FieldView]{}, nodes...), edges...) {
		if err := checkFieldNames(e); err != nil {
			return nil, err
		}
		for _, f := range e.Fields {
			if f.View.DroppedRegex {
				log.Debugw("Regex has no validator equivalent, dropped",
					"entity", e.Name, "field", f.Name)
			}
		}
	}

	goMod, err := renderGoMod(s.Version, opts.Go)
	if err != nil {
		return nil, err
	}

	files := []struct {
		path string
		file *jen.File
	}{
		{"entities/entities.go", entitiesFile(nodes, edges, opts)},
		{"entities/validators.go", validatorsFile(nodes, edges, opts)},
		{"entities/taxonomy.go", taxonomyFile(s, nodes, edges, opts)},
	}

	artifacts := []typegen.Artifact{{Path: "go.mod", Content: goMod}}
	for _, f := range files {
		var buf bytes.Buffer
		if err := f.file.Render(&buf); err != nil {
			return nil, errors.Wrapf(err, "failed to render %s", f.path)
		}
		artifacts = append(artifacts, typegen.Artifact{Path: f.path, Content: buf.Bytes()})
	}
	return artifacts, nil
}

// checkFieldNames rejects entities whose field names collapse onto the same
// exported Go identifier, e.g. "ip_addr" and "ip__addr".
func checkFieldNames(e typegen.Entity[FieldView]) error {
	seen := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		if prev, ok := seen[f.View.GoName]; ok {
			return errors.WithHint(
				errors.Newf("fields '%s' and '%s' of %s '%s' both map to Go field %s",
					prev, f.Name, e.Kind, e.Name, f.View.GoName),
				"rename one of the fields in the schema")
		}
		seen[f.View.GoName] = f.Name
	}
	return nil
}

func newFile(opts typegen.Options) *jen.File {
	f := jen.NewFile(PackageName)
	for _, line := range opts.HeaderLines() {
		f.HeaderComment(line)
	}
	return f
}

func entitiesFile(nodes, edges []typegen.Entity[FieldView], opts typegen.Options) *jen.File {
	f := newFile(opts)
	for _, e := range append(append([]typegen.Entity[FieldView]{}, nodes...), edges...) {
		f.Comment(docComment(e))
		f.Type().Id(e.ClassName).StructFunc(func(group *jen.Group) {
			for _, field := range e.Fields {
				tags := map[string]string{"json": field.Name + ",omitempty"}
				if field.View.ValidateTag != "" {
					tags["validate"] = field.View.ValidateTag
				}
				stmt := group.Id(field.View.GoName).Add(field.View.Type).Tag(tags)
				if field.Description != "" {
					stmt.Comment(field.Description)
				}
			}
		})
		f.Line()
	}
	return f
}

func validatorsFile(nodes, edges []typegen.Entity[FieldView], opts typegen.Options) *jen.File {
	f := newFile(opts)
	f.ImportName(validatorPkg, "validator")

	f.Comment("Validator is the shared validator instance for all entities")
	f.Var().Id("Validator").Op("*").Qual(validatorPkg, "Validate")
	f.Line()
	f.Func().Id("init").Params().Block(
		jen.Id("Validator").Op("=").Qual(validatorPkg, "New").Call(),
	)

	for _, e := range append(append([]typegen.Entity[FieldView]{}, nodes...), edges...) {
		f.Line()
		f.Commentf("Validate validates a %s %s", e.ClassName, e.Kind)
		f.Func().Params(jen.Id("e").Op("*").Id(e.ClassName)).Id("Validate").Params().Error().Block(
			jen.Return(jen.Id("Validator").Dot("Struct").Call(jen.Id("e"))),
		)
	}
	return f
}

func taxonomyFile(s *schema.Schema, nodes, edges []typegen.Entity[FieldView], opts typegen.Options) *jen.File {
	f := newFile(opts)

	f.Comment("TaxonomyVersion is the schema version these types were generated from")
	f.Const().Id("TaxonomyVersion").Op("=").Lit(s.Version)
	f.Line()

	f.Comment("EntityTypes lists node type names in declaration order")
	f.Var().Id("EntityTypes").Op("=").Index().String().ValuesFunc(func(g *jen.Group) {
		for _, n := range nodes {
			g.Line().Lit(n.Name)
		}
		if len(nodes) > 0 {
			g.Line()
		}
	})
	f.Line()

	f.Comment("EdgeTypes lists edge type names in declaration order")
	f.Var().Id("EdgeTypes").Op("=").Index().String().ValuesFunc(func(g *jen.Group) {
		for _, e := range edges {
			g.Line().Lit(e.Name)
		}
		if len(edges) > 0 {
			g.Line()
		}
	})
	f.Line()

	f.Comment("EdgeTypeMap lists the edge types allowed from a source to a target node")
	f.Var().Id("EdgeTypeMap").Op("=").Map(jen.Index(jen.Lit(2)).String()).Index().String().Values(jen.DictFunc(func(d jen.Dict) {
		for _, pair := range s.EdgeTypeMap() {
			values := make([]jen.Code, len(pair.Edges))
			for i, edge := range pair.Edges {
				values[i] = jen.Lit(edge)
			}
			d[jen.Values(jen.Lit(pair.Source), jen.Lit(pair.Target))] = jen.Values(values...)
		}
	}))
	return f
}

// docComment follows the "<Name> <description>" convention.
func docComment(e typegen.Entity[FieldView]) string {
	desc := strings.TrimSpace(e.Description)
	if desc == "" {
		return fmt.Sprintf("%s is the %s %s type", e.ClassName, e.Name, e.Kind)
	}
	return e.ClassName + " " + desc
}

// ModulePath is the generated module path for a schema version.
func ModulePath(prefix string, version int) string {
	if prefix == "" {
		prefix = DefaultModule
	}
	return fmt.Sprintf("%s/v%d/go", strings.TrimSuffix(prefix, "/"), version)
}

func renderGoMod(version int, opts typegen.GoOptions) ([]byte, error) {
	path := ModulePath(opts.Module, version)
	if err := module.CheckPath(path); err != nil {
		return nil, errors.Wrapf(err, "invalid Go module path %q", path)
	}
	goVersion := opts.GoVersion
	if goVersion == "" {
		goVersion = DefaultGoVersion
	}
	validatorVersion := opts.ValidatorVersion
	if validatorVersion == "" {
		validatorVersion = DefaultValidatorVersion
	}

	f := new(modfile.File)
	if err := f.AddModuleStmt(path); err != nil {
		return nil, errors.Wrap(err, "failed to set module")
	}
	if err := f.AddGoStmt(goVersion); err != nil {
		return nil, errors.Wrapf(err, "invalid go version %q", goVersion)
	}
	if err := f.AddRequire(validatorPkg, validatorVersion); err != nil {
		return nil, errors.Wrapf(err, "invalid validator version %q", validatorVersion)
	}
	f.Cleanup()
	out, err := f.Format()
	if err != nil {
		return nil, errors.Wrap(err, "failed to format go.mod")
	}
	return out, nil
}
