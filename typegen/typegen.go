// Package typegen projects a validated taxonomy into target-language model
// libraries.
//
// # Architecture
//
// The package uses a two-layer design:
//  1. Language-agnostic traversal (Prepare) walks entities and fields once,
//     parameterised by a per-target field projection
//  2. Language-specific targets (golang/, python/, typescript/, markdown/)
//     render the prepared data into Artifacts
//
// Build validates the schema and renders every selected target in memory;
// nothing is written until all targets succeed, so a bad schema never leaves
// partial output behind.
//
// # Implementing a New Target
//
//  1. Create package: typegen/<lang>/generator.go
//  2. Implement the Target interface
//  3. Add the language to targetFor() in cmd/taxogen/commands/targets.go
//  4. Add an up-to-date check test in typegen/<lang>/generator_test.go
package typegen

import (
	"fmt"
	"time"

	"github.com/teranos/taxogen/schema"
)

// Target renders a schema into files for one language.
type Target interface {
	// Language returns the target name (e.g., "go", "python")
	Language() string

	// Dir returns the output directory relative to the version directory
	Dir() string

	// Generate renders all artifacts for the schema. It must not touch disk.
	Generate(s *schema.Schema, opts Options) ([]Artifact, error)
}

// Artifact is one generated file. Path is relative to the target directory.
type Artifact struct {
	Path    string
	Content []byte
}

// GoOptions configures the Go target.
type GoOptions struct {
	// Module is the module path prefix; the generated module is <Module>/v<N>/go
	Module           string
	GoVersion        string
	ValidatorVersion string
}

// PythonOptions configures the Python target.
type PythonOptions struct {
	Package  string
	Pydantic string
}

// TypeScriptOptions configures the TypeScript target.
type TypeScriptOptions struct {
	Package string
	Zod     string
}

// Options carries everything targets need beyond the schema itself.
type Options struct {
	// SchemaFile is the schema base name mentioned in generated headers
	SchemaFile string
	// PackageVersion is the semver of generated packages, "<N>.0.0" by default
	PackageVersion string
	Provenance     Provenance

	Go         GoOptions
	Python     PythonOptions
	TypeScript TypeScriptOptions
}

// HeaderLines returns the uncommented lines of the generated-file header.
// Targets prefix them with their comment syntax.
func (o Options) HeaderLines() []string {
	file := o.SchemaFile
	if file == "" {
		file = schema.DefaultFile
	}
	lines := []string{fmt.Sprintf("Code generated by taxogen from %s. DO NOT EDIT.", file)}
	if o.Provenance.Commit != "" {
		lines = append(lines, ProvenanceVersionPrefix+o.Provenance.Commit)
	}
	if !o.Provenance.Modified.IsZero() {
		lines = append(lines, ProvenanceModifiedPrefix+o.Provenance.Modified.UTC().Format(time.RFC3339))
	}
	return lines
}

// DefaultPackageVersion is the package version used when none is configured.
func DefaultPackageVersion(schemaVersion int) string {
	return fmt.Sprintf("%d.0.0", schemaVersion)
}
