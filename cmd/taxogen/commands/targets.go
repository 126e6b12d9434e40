package commands

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/taxogen/am"
	"github.com/teranos/taxogen/errors"
	"github.com/teranos/taxogen/schema"
	"github.com/teranos/taxogen/typegen"
	"github.com/teranos/taxogen/typegen/golang"
	"github.com/teranos/taxogen/typegen/markdown"
	"github.com/teranos/taxogen/typegen/python"
	"github.com/teranos/taxogen/typegen/typescript"
)

// targetFor returns the generator for a target name
func targetFor(name string) (typegen.Target, error) {
	switch name {
	case "go":
		return golang.NewGenerator(), nil
	case "python":
		return python.NewGenerator(), nil
	case "typescript":
		return typescript.NewGenerator(), nil
	case "markdown":
		return markdown.NewGenerator(), nil
	default:
		return nil, errors.WithHintf(
			errors.Mark(errors.Newf("unknown target %q", name), errors.ErrUnknownTarget),
			"known targets: %s", strings.Join(am.KnownTargets, ", "))
	}
}

// selectTargets resolves --lang values (or the configured targets when none
// were given) into generators. "all" selects every known target.
func selectTargets(langs []string, cfg *am.Config) ([]typegen.Target, error) {
	names := cfg.GetEnabledTargets()
	if len(langs) > 0 {
		names = nil
		for _, l := range langs {
			l = strings.TrimSpace(strings.ToLower(l))
			if l == "all" {
				names = append([]string(nil), am.KnownTargets...)
				break
			}
			if l != "" {
				names = append(names, l)
			}
		}
	}

	seen := make(map[string]bool, len(names))
	var targets []typegen.Target
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		t, err := targetFor(name)
		if err != nil {
			return nil, errors.Mark(err, errors.ErrUsage)
		}
		targets = append(targets, t)
	}
	if len(targets) == 0 {
		return nil, errors.NewUsageError("no targets selected")
	}
	return targets, nil
}

// buildOptions converts configuration into generator options
func buildOptions(cfg *am.Config) typegen.Options {
	return typegen.Options{
		SchemaFile:     cfg.GetSchemaFile(),
		PackageVersion: cfg.Targets.PackageVersion,
		Go: typegen.GoOptions{
			Module:           cfg.Targets.Go.Module,
			GoVersion:        cfg.Targets.Go.GoVersion,
			ValidatorVersion: cfg.Targets.Go.ValidatorVersion,
		},
		Python: typegen.PythonOptions{
			Package:  cfg.Targets.Python.Package,
			Pydantic: cfg.Targets.Python.Pydantic,
		},
		TypeScript: typegen.TypeScriptOptions{
			Package: cfg.Targets.TypeScript.Package,
			Zod:     cfg.Targets.TypeScript.Zod,
		},
	}
}

// buildConfig assembles one generation run for a schema version
func buildConfig(cfg *am.Config, version int, targets []typegen.Target, collectAll bool) typegen.BuildConfig {
	var validate []schema.Option
	if collectAll || cfg.Schema.CollectAll {
		validate = append(validate, schema.WithCollectAll())
	}
	return typegen.BuildConfig{
		SchemaPath:      cfg.SchemaPath(version),
		Targets:         targets,
		Options:         buildOptions(cfg),
		ValidateOptions: validate,
	}
}

// exactlyOneArg rejects any arity other than one positional argument
func exactlyOneArg(name string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errors.NewUsageError("expected exactly one argument <%s>, got %d", name, len(args))
		}
		return nil
	}
}

// noArgs rejects positional arguments
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return errors.NewUsageError("unexpected arguments: %v", args)
	}
	return nil
}

// parseVersion parses a schema version argument, which must be a positive
// integer
func parseVersion(arg string) (int, error) {
	v, err := strconv.Atoi(arg)
	if err != nil || v <= 0 {
		return 0, errors.NewUsageError("version must be a positive integer, got %q", arg)
	}
	return v, nil
}

// loadConfig loads and validates the active configuration
func loadConfig() (*am.Config, error) {
	cfg, err := am.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}
