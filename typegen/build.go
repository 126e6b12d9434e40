package typegen

import (
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/taxogen/errors"
	"github.com/teranos/taxogen/logger"
	"github.com/teranos/taxogen/schema"
)

// BuildConfig describes one generation run.
type BuildConfig struct {
	// SchemaPath is the entities.yml to load
	SchemaPath string
	Targets    []Target
	Options    Options
	// ValidateOptions are passed to schema.Load
	ValidateOptions []schema.Option
}

// Output holds one target's rendered artifacts.
type Output struct {
	Language  string
	Dir       string
	Artifacts []Artifact
}

// Plan is a fully rendered generation run that has not touched disk.
type Plan struct {
	Schema  *schema.Schema
	Outputs []Output
}

// Build validates the schema and renders every target in memory.
// Any failure aborts the whole run before a single file is written.
func Build(cfg BuildConfig) (*Plan, error) {
	log := logger.ComponentLogger("typegen")

	s, err := schema.Load(cfg.SchemaPath, cfg.ValidateOptions...)
	if err != nil {
		return nil, err
	}
	log.Infow("Schema validated",
		logger.FieldPath, cfg.SchemaPath,
		logger.FieldVersion, s.Version,
		logger.FieldNodes, len(s.Nodes),
		logger.FieldEdges, len(s.Edges),
		logger.FieldRelationships, len(s.Relationships))
	if logger.Tracing() {
		for _, entities := range [][]schema.Entity{s.Nodes, s.Edges} {
			for _, e := range entities {
				log.Debugw("Entity", logger.FieldKind, e.Kind, "name", e.Name, "fields", len(e.Fields))
			}
		}
	}

	opts := cfg.Options
	if opts.SchemaFile == "" {
		opts.SchemaFile = filepath.Base(cfg.SchemaPath)
	}
	if opts.PackageVersion == "" {
		opts.PackageVersion = DefaultPackageVersion(s.Version)
	}
	if _, err := semver.StrictNewVersion(opts.PackageVersion); err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(err, "invalid package version %q", opts.PackageVersion),
			"package versions must be semver, e.g. 2.0.0")
	}
	if opts.Provenance.IsZero() {
		p, err := LookupProvenance(cfg.SchemaPath)
		if err != nil {
			log.Debugw("Provenance lookup failed", logger.FieldError, err)
		}
		opts.Provenance = p
		if !p.IsZero() {
			log.Debugw("Provenance resolved", logger.FieldCommit, p.Commit)
		}
	}

	plan := &Plan{Schema: s}
	for _, target := range cfg.Targets {
		artifacts, err := target.Generate(s, opts)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to generate %s code", target.Language())
		}
		log.Infow("Rendered target",
			logger.FieldTarget, target.Language(),
			logger.FieldCount, len(artifacts))
		plan.Outputs = append(plan.Outputs, Output{
			Language:  target.Language(),
			Dir:       target.Dir(),
			Artifacts: artifacts,
		})
	}
	return plan, nil
}

// Write stores every artifact below root (the version directory) and
// returns the written paths.
func (p *Plan) Write(root string) ([]string, error) {
	log := logger.ComponentLogger("typegen")

	var written []string
	for _, out := range p.Outputs {
		for _, a := range out.Artifacts {
			path := filepath.Join(root, out.Dir, filepath.FromSlash(a.Path))
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return written, errors.Wrapf(err, "failed to create %s", filepath.Dir(path))
			}
			if err := os.WriteFile(path, a.Content, 0o644); err != nil {
				return written, errors.Wrapf(err, "failed to write %s", path)
			}
			log.Debugw("Wrote artifact", logger.FieldTarget, out.Language, logger.FieldPath, path)
			written = append(written, path)
		}
	}
	return written, nil
}

// Files returns the artifact paths of one output relative to root.
func (o Output) Files(root string) []string {
	files := make([]string, len(o.Artifacts))
	for i, a := range o.Artifacts {
		files[i] = filepath.Join(root, o.Dir, filepath.FromSlash(a.Path))
	}
	return files
}
