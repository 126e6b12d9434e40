package am

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/taxogen/errors"
	"github.com/teranos/taxogen/schema"
)

var globalConfig *Config
var viperInstance *viper.Viper

// explicitConfig replaces the project config search when set (--config)
var explicitConfig string

// SetConfigFile makes Load read path instead of searching for a project
// taxogen.toml. It resets any cached configuration.
func SetConfigFile(path string) {
	Reset()
	explicitConfig = path
}

// Load reads the taxogen configuration using Viper
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	v, err := initViper()
	if err != nil {
		return nil, err
	}

	config, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}

	globalConfig = config
	return globalConfig, nil
}

// GetViper returns the Viper instance for advanced configuration access
func GetViper() (*viper.Viper, error) {
	return initViper()
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	// Defaults only; no environment for this specific load
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	config, err := LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load config from %s", configPath)
	}
	return config, nil
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viperInstance = nil
	explicitConfig = ""
	ConfigSources = make(map[string]SourceInfo)
}

// initViper initializes Viper with configuration sources and defaults
func initViper() (*viper.Viper, error) {
	if viperInstance != nil {
		return viperInstance, nil
	}

	v := viper.New()
	v.SetConfigType("toml")

	// Set up environment variable binding
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	BindEnvVars(v)

	// Set defaults first
	SetDefaults(v)

	if err := mergeConfigFiles(v); err != nil {
		return nil, err
	}

	viperInstance = v
	return v, nil
}

// findProjectConfig searches for taxogen.toml by walking up the directory
// tree from dir. Returns the first one found, or "" if none.
func findProjectConfig(dir string) string {
	for {
		path := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return ""
		}
		dir = parent
	}
}

// configLayer is one candidate configuration file
type configLayer struct {
	path     string
	source   ConfigSource
	required bool
}

// configLayers lists configuration files from lowest to highest precedence
func configLayers() []configLayer {
	layers := []configLayer{{path: SystemConfig, source: SourceSystem}}

	if home, err := os.UserHomeDir(); err == nil {
		layers = append(layers, configLayer{
			path:   filepath.Join(home, UserConfigDir, ConfigFileName),
			source: SourceUser,
		})
	}

	if explicitConfig != "" {
		return append(layers, configLayer{path: explicitConfig, source: SourceExplicit, required: true})
	}
	if wd, err := os.Getwd(); err == nil {
		if project := findProjectConfig(wd); project != "" {
			layers = append(layers, configLayer{path: project, source: SourceProject})
		}
	}
	return layers
}

// mergeConfigFiles merges configuration files in precedence order. Files
// are merged as config (not overrides) so TAXOGEN_* variables still win.
func mergeConfigFiles(v *viper.Viper) error {
	for _, layer := range configLayers() {
		if _, err := os.Stat(layer.path); err != nil {
			if layer.required {
				return errors.WithHint(
					errors.Wrapf(err, "config file %s not found", layer.path),
					"check the --config path")
			}
			continue
		}

		tempViper := viper.New()
		tempViper.SetConfigFile(layer.path)
		tempViper.SetConfigType("toml")
		if err := tempViper.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "failed to read config file %s", layer.path)
		}

		settings := tempViper.AllSettings()
		if err := v.MergeConfigMap(settings); err != nil {
			return errors.Wrapf(err, "failed to merge config file %s", layer.path)
		}
		trackSources(settings, "", SourceInfo{Source: layer.source, Path: layer.path})
	}
	return nil
}

// Get returns a configuration value using dot notation
func Get(key string) (interface{}, error) {
	v, err := initViper()
	if err != nil {
		return nil, err
	}
	if !v.IsSet(key) {
		return nil, errors.Mark(errors.Newf("unknown configuration key %q", key), errors.ErrInvalidConfig)
	}
	return v.Get(key), nil
}

// SchemaDir returns the version directory <schema.root>/v<N>
func (c *Config) SchemaDir(version int) string {
	return schema.VersionDir(c.Schema.Root, version)
}

// SchemaPath returns <schema.root>/v<N>/<schema.file>
func (c *Config) SchemaPath(version int) string {
	return schema.Path(c.Schema.Root, c.GetSchemaFile(), version)
}
