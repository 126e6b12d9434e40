package am

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/teranos/taxogen/errors"
	"github.com/teranos/taxogen/logger"
)

// createBackup creates rotating backups (.back1, .back2, .back3) before modifying config
func createBackup(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil // No file to backup
	}

	// Rotate backups: .back3 -> delete, .back2 -> .back3, .back1 -> .back2, current -> .back1
	back3 := configPath + ".back3"
	back2 := configPath + ".back2"
	back1 := configPath + ".back1"

	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		// Deletion failures don't fail the save
		logger.ComponentLogger("am").Warnw("Failed to delete old backup", logger.FieldPath, back3, logger.FieldError, err)
	}

	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "failed to rotate .back2 to .back3")
		}
	}

	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "failed to rotate .back1 to .back2")
		}
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}
	if err := os.WriteFile(back1, content, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}
	return nil
}

// ProjectConfigPath returns the taxogen.toml that `am set` edits: the
// explicit --config file, the nearest project file, or ./taxogen.toml.
func ProjectConfigPath() (string, error) {
	if explicitConfig != "" {
		return explicitConfig, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "failed to get working directory")
	}
	if path := findProjectConfig(wd); path != "" {
		return path, nil
	}
	return filepath.Join(wd, ConfigFileName), nil
}

// loadOrInitialize reads a config file as a raw map, or returns an empty
// map if it doesn't exist
func loadOrInitialize(configPath string) (map[string]interface{}, error) {
	config := make(map[string]interface{})
	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", configPath)
	}
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", configPath)
	}
	return config, nil
}

// save writes config to configPath with backup
func save(config interface{}, configPath string) error {
	if err := createBackup(configPath); err != nil {
		return errors.Wrap(err, "failed to create backup")
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.MkdirAll(filepath.Dir(configPath), DefaultDirPermissions); err != nil {
		return errors.Wrapf(err, "failed to create %s", filepath.Dir(configPath))
	}
	if err := os.WriteFile(configPath, data, DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "failed to write %s", configPath)
	}
	return nil
}

// SetValue sets a dotted key in configPath, keeping every other setting.
// The cached configuration is dropped so the next Load sees the change.
func SetValue(configPath, key string, value interface{}) error {
	parts := strings.Split(key, ".")
	for _, p := range parts {
		if p == "" {
			return errors.Mark(errors.Newf("invalid configuration key %q", key), errors.ErrInvalidConfig)
		}
	}

	config, err := loadOrInitialize(configPath)
	if err != nil {
		return err
	}

	// Walk or create sections down to the leaf
	section := config
	for _, p := range parts[:len(parts)-1] {
		next, ok := section[p].(map[string]interface{})
		if !ok {
			if _, exists := section[p]; exists {
				return errors.Mark(errors.Newf("%q is a value, not a section", p), errors.ErrInvalidConfig)
			}
			next = make(map[string]interface{})
			section[p] = next
		}
		section = next
	}
	section[parts[len(parts)-1]] = value

	if err := save(config, configPath); err != nil {
		return err
	}

	explicit := explicitConfig
	Reset()
	explicitConfig = explicit
	return nil
}

// WriteDefaults writes a complete taxogen.toml holding the built-in
// defaults. An existing file is backed up first.
func WriteDefaults(configPath string) error {
	return save(DefaultConfig(), configPath)
}
