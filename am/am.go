// Package am holds taxogen configuration ("am" as in "I am configured as").
//
// Settings come from, lowest to highest precedence: built-in defaults,
// /etc/taxogen/taxogen.toml, ~/.taxogen/taxogen.toml, the nearest
// taxogen.toml found walking up from the working directory (or the file
// given with --config) and TAXOGEN_* environment variables.
package am

import "fmt"

// Config represents the taxogen configuration
type Config struct {
	Schema  SchemaConfig  `mapstructure:"schema" toml:"schema" json:"schema" yaml:"schema"`
	Targets TargetsConfig `mapstructure:"targets" toml:"targets" json:"targets" yaml:"targets"`
	Log     LogConfig     `mapstructure:"log" toml:"log" json:"log" yaml:"log"`
}

// SchemaConfig locates the taxonomy versions
type SchemaConfig struct {
	Root       string `mapstructure:"root" toml:"root" json:"root" yaml:"root"`                                // Directory holding v<N>/ (default: ".")
	File       string `mapstructure:"file" toml:"file" json:"file" yaml:"file"`                                // Schema file name inside v<N>/ (default: entities.yml)
	CollectAll bool   `mapstructure:"collect_all" toml:"collect_all" json:"collect_all" yaml:"collect_all"` // Report every violation instead of the first
}

// TargetsConfig selects and configures generators
type TargetsConfig struct {
	Enabled        []string `mapstructure:"enabled" toml:"enabled" json:"enabled" yaml:"enabled"`
	PackageVersion string   `mapstructure:"package_version" toml:"package_version" json:"package_version" yaml:"package_version"` // Semver; empty = "<N>.0.0"

	Go         GoTargetConfig         `mapstructure:"go" toml:"go" json:"go" yaml:"go"`
	Python     PythonTargetConfig     `mapstructure:"python" toml:"python" json:"python" yaml:"python"`
	TypeScript TypeScriptTargetConfig `mapstructure:"typescript" toml:"typescript" json:"typescript" yaml:"typescript"`
}

// GoTargetConfig configures the generated Go module
type GoTargetConfig struct {
	Module           string `mapstructure:"module" toml:"module" json:"module" yaml:"module"` // Prefix; the module is <module>/v<N>/go
	GoVersion        string `mapstructure:"go_version" toml:"go_version" json:"go_version" yaml:"go_version"`
	ValidatorVersion string `mapstructure:"validator_version" toml:"validator_version" json:"validator_version" yaml:"validator_version"`
}

// PythonTargetConfig configures the generated Python package
type PythonTargetConfig struct {
	Package  string `mapstructure:"package" toml:"package" json:"package" yaml:"package"`
	Pydantic string `mapstructure:"pydantic" toml:"pydantic" json:"pydantic" yaml:"pydantic"` // PEP 440 specifier, e.g. ">=2.0,<3"
}

// TypeScriptTargetConfig configures the generated npm package
type TypeScriptTargetConfig struct {
	Package string `mapstructure:"package" toml:"package" json:"package" yaml:"package"`
	Zod     string `mapstructure:"zod" toml:"zod" json:"zod" yaml:"zod"`
}

// LogConfig configures logging
type LogConfig struct {
	JSON       bool   `mapstructure:"json" toml:"json" json:"json" yaml:"json"`
	File       string `mapstructure:"file" toml:"file" json:"file" yaml:"file"` // Rotating JSON log file; empty = off
	MaxSizeMB  int    `mapstructure:"max_size_mb" toml:"max_size_mb" json:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" toml:"max_backups" json:"max_backups" yaml:"max_backups"`
	Theme      string `mapstructure:"theme" toml:"theme" json:"theme" yaml:"theme"` // Color theme: everforest, gruvbox
}

// Configuration file and environment constants
const (
	ConfigFileName = "taxogen.toml"
	EnvPrefix      = "TAXOGEN"
	UserConfigDir  = ".taxogen"
	SystemConfig   = "/etc/taxogen/" + ConfigFileName
)

// File system constants
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// KnownTargets lists the generators taxogen ships with, in generation order
var KnownTargets = []string{"go", "python", "typescript", "markdown"}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Schema: {Root: %s, File: %s}, Targets: %v, Log: {JSON: %t, Theme: %s}}",
		c.Schema.Root, c.Schema.File, c.Targets.Enabled, c.Log.JSON, c.Log.Theme)
}
