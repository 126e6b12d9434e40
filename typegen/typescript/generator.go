// Package typescript renders a taxonomy as zod schemas with inferred
// TypeScript types.
package typescript

import (
	"embed"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/teranos/taxogen/errors"
	"github.com/teranos/taxogen/schema"
	"github.com/teranos/taxogen/typegen"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	DefaultPackage    = "@yourorg/taxonomy"
	DefaultZod        = "^3.22.4"
	TypeScriptVersion = "^5.4.0"
)

var npmName = regexp.MustCompile(`^(@[a-z0-9-~][a-z0-9-._~]*/)?[a-z0-9-~][a-z0-9-._~]*$`)

var templates = template.Must(typegen.ParseTemplates(templateFS, "templates/*.tmpl", template.FuncMap{
	"quote":     Quote,
	"quoteList": QuoteList,
	"comment": func(s string) string {
		return strings.ReplaceAll(s, "*/", `*\/`)
	},
}))

// Generator implements typegen.Target for TypeScript
type Generator struct{}

// NewGenerator creates a new TypeScript generator
func NewGenerator() *Generator {
	return &Generator{}
}

// Language returns "typescript"
func (g *Generator) Language() string {
	return "typescript"
}

// Dir returns "typescript"
func (g *Generator) Dir() string {
	return "typescript"
}

// sourceEdges groups EDGE_TYPE_MAP entries by source node.
type sourceEdges struct {
	Source  string
	Targets []schema.EdgePair
}

type tsData struct {
	typegen.Data[FieldView]
	Sources []sourceEdges
}

// Generate renders package.json, tsconfig.json, src/schemas.ts and src/index.ts.
func (g *Generator) Generate(s *schema.Schema, opts typegen.Options) ([]typegen.Artifact, error) {
	pkg := opts.TypeScript.Package
	if pkg == "" {
		pkg = DefaultPackage
	}
	if !npmName.MatchString(pkg) {
		return nil, errors.WithHint(
			errors.Newf("invalid npm package name %q", pkg),
			"use a lowercase name such as @acme/taxonomy")
	}

	data := tsData{Data: typegen.NewData(s, opts, Project)}
	data.Sources = groupBySource(data.EdgeTypeMap)

	packageJSON, err := renderPackageJSON(s.Version, pkg, opts)
	if err != nil {
		return nil, err
	}
	tsconfig, err := renderTSConfig()
	if err != nil {
		return nil, err
	}
	artifacts := []typegen.Artifact{
		{Path: "package.json", Content: packageJSON},
		{Path: "tsconfig.json", Content: tsconfig},
	}

	for _, name := range []string{"schemas.ts", "index.ts"} {
		content, err := typegen.Render(templates, name+".tmpl", data)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, typegen.Artifact{Path: "src/" + name, Content: content})
	}
	return artifacts, nil
}

func groupBySource(pairs []schema.EdgePair) []sourceEdges {
	var out []sourceEdges
	index := make(map[string]int)
	for _, p := range pairs {
		i, ok := index[p.Source]
		if !ok {
			i = len(out)
			index[p.Source] = i
			out = append(out, sourceEdges{Source: p.Source})
		}
		out[i].Targets = append(out[i].Targets, p)
	}
	return out
}

type packageJSON struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Description     string            `json:"description"`
	Main            string            `json:"main"`
	Types           string            `json:"types"`
	Files           []string          `json:"files"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

type tsconfig struct {
	CompilerOptions compilerOptions `json:"compilerOptions"`
	Include         []string        `json:"include"`
}

type compilerOptions struct {
	Target          string `json:"target"`
	Module          string `json:"module"`
	Declaration     bool   `json:"declaration"`
	OutDir          string `json:"outDir"`
	RootDir         string `json:"rootDir"`
	Strict          bool   `json:"strict"`
	EsModuleInterop bool   `json:"esModuleInterop"`
	SkipLibCheck    bool   `json:"skipLibCheck"`
}

func renderPackageJSON(version int, pkg string, opts typegen.Options) ([]byte, error) {
	zod := opts.TypeScript.Zod
	if zod == "" {
		zod = DefaultZod
	}
	pkgVersion := opts.PackageVersion
	if pkgVersion == "" {
		pkgVersion = typegen.DefaultPackageVersion(version)
	}
	return marshal("package.json", packageJSON{
		Name:            pkg,
		Version:         pkgVersion,
		Description:     fmt.Sprintf("Zod schemas for taxonomy version %d", version),
		Main:            "dist/index.js",
		Types:           "dist/index.d.ts",
		Files:           []string{"dist"},
		Scripts:         map[string]string{"build": "tsc"},
		Dependencies:    map[string]string{"zod": zod},
		DevDependencies: map[string]string{"typescript": TypeScriptVersion},
	})
}

func renderTSConfig() ([]byte, error) {
	return marshal("tsconfig.json", tsconfig{
		CompilerOptions: compilerOptions{
			Target:          "ES2020",
			Module:          "commonjs",
			Declaration:     true,
			OutDir:          "dist",
			RootDir:         "src",
			Strict:          true,
			EsModuleInterop: true,
			SkipLibCheck:    true,
		},
		Include: []string{"src"},
	})
}

// marshal renders v as two-space indented JSON with a trailing newline.
func marshal(name string, v any) ([]byte, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode %s", name)
	}
	return append(out, '\n'), nil
}
