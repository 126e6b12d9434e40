package am

import (
	"path/filepath"
	"regexp"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/mod/module"

	"github.com/teranos/taxogen/errors"
)

const validatorModule = "github.com/go-playground/validator/v10"

var pythonIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Schema.Root == "" {
		return errors.NewConfigError("schema.root cannot be empty (use \".\" for the current directory)")
	}
	if c.Schema.File != "" && filepath.Base(c.Schema.File) != c.Schema.File {
		return errors.NewConfigError("schema.file must be a file name, got %q", c.Schema.File)
	}

	// Targets: only known generators, no duplicates
	seen := make(map[string]bool)
	for _, t := range c.Targets.Enabled {
		if !isKnownTarget(t) {
			return errors.WithHintf(
				errors.Mark(errors.NewConfigError("targets.enabled contains unknown target %q", t), errors.ErrUnknownTarget),
				"known targets: %v", KnownTargets)
		}
		if seen[t] {
			return errors.NewConfigError("targets.enabled lists %q twice", t)
		}
		seen[t] = true
	}

	// Package version: empty = derived from the schema version
	if c.Targets.PackageVersion != "" {
		if _, err := semver.StrictNewVersion(c.Targets.PackageVersion); err != nil {
			return errors.NewConfigError("targets.package_version must be semver (e.g. 2.0.0), got %q", c.Targets.PackageVersion)
		}
	}

	if c.Targets.Go.Module != "" {
		if err := module.CheckPath(c.Targets.Go.Module); err != nil {
			return errors.NewConfigError("targets.go.module is not a valid module path: %v", err)
		}
	}
	if c.Targets.Go.ValidatorVersion != "" {
		if err := module.Check(validatorModule, c.Targets.Go.ValidatorVersion); err != nil {
			return errors.NewConfigError("targets.go.validator_version must be a v10 module version like v10.22.0: %v", err)
		}
	}

	if c.Targets.Python.Package != "" && !pythonIdentifier.MatchString(c.Targets.Python.Package) {
		return errors.NewConfigError("targets.python.package must be a Python identifier, got %q", c.Targets.Python.Package)
	}

	// Log rotation: 0 = lumberjack default, negative = invalid
	if c.Log.MaxSizeMB < 0 {
		return errors.NewConfigError("log.max_size_mb must be >= 0, got %d", c.Log.MaxSizeMB)
	}
	if c.Log.MaxBackups < 0 {
		return errors.NewConfigError("log.max_backups must be >= 0, got %d", c.Log.MaxBackups)
	}
	switch c.Log.Theme {
	case "", "everforest", "gruvbox":
	default:
		return errors.NewConfigError("log.theme must be everforest or gruvbox, got %q", c.Log.Theme)
	}

	return nil
}

func isKnownTarget(name string) bool {
	for _, t := range KnownTargets {
		if t == name {
			return true
		}
	}
	return false
}
