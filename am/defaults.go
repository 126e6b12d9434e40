package am

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Schema location
	v.SetDefault("schema.root", ".")
	v.SetDefault("schema.file", "entities.yml")
	v.SetDefault("schema.collect_all", false)

	// Targets
	v.SetDefault("targets.enabled", []string{"go", "python", "typescript"})
	v.SetDefault("targets.package_version", "")

	v.SetDefault("targets.go.module", "github.com/yourorg/taxonomy")
	v.SetDefault("targets.go.go_version", "1.21")
	v.SetDefault("targets.go.validator_version", "v10.22.0")

	v.SetDefault("targets.python.package", "taxonomy")
	v.SetDefault("targets.python.pydantic", ">=2.0,<3")

	v.SetDefault("targets.typescript.package", "@yourorg/taxonomy")
	v.SetDefault("targets.typescript.zod", "^3.22.4")

	// Logging
	v.SetDefault("log.json", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.theme", "everforest")
}

// BindEnvVars binds nested keys whose automatic TAXOGEN_* names would be
// ambiguous or awkward to type.
func BindEnvVars(v *viper.Viper) {
	v.BindEnv("schema.root", "TAXOGEN_SCHEMA_ROOT", "TAXOGEN_ROOT")
	v.BindEnv("targets.go.module", "TAXOGEN_TARGETS_GO_MODULE", "TAXOGEN_GO_MODULE")
	v.BindEnv("targets.python.package", "TAXOGEN_TARGETS_PYTHON_PACKAGE", "TAXOGEN_PYTHON_PACKAGE")
	v.BindEnv("targets.typescript.package", "TAXOGEN_TARGETS_TYPESCRIPT_PACKAGE", "TAXOGEN_NPM_PACKAGE")
	v.BindEnv("log.file", "TAXOGEN_LOG_FILE")
}

// GetLogTheme returns the log theme (default: everforest)
func (c *Config) GetLogTheme() string {
	if c.Log.Theme == "" {
		return "everforest"
	}
	return c.Log.Theme
}

// GetSchemaFile returns the schema file name (default: entities.yml)
func (c *Config) GetSchemaFile() string {
	if c.Schema.File == "" {
		return "entities.yml"
	}
	return c.Schema.File
}

// GetEnabledTargets returns the configured targets, or every known target
// when none are configured
func (c *Config) GetEnabledTargets() []string {
	if len(c.Targets.Enabled) == 0 {
		return append([]string(nil), KnownTargets...)
	}
	return c.Targets.Enabled
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		// Defaults are plain scalars and lists; decoding them cannot fail
		panic(err)
	}
	return cfg
}
