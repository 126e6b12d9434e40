package commands

import (
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/taxogen/am"
	"github.com/teranos/taxogen/errors"
)

func newAmCmd() *cobra.Command {
	amCmd := &cobra.Command{
		Use:   "am",
		Short: "Manage taxogen configuration",
		Long: `am - Manage taxogen configuration ("I am")

Display and manage taxogen configuration settings.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (TAXOGEN_* prefix)
3. Project config (nearest taxogen.toml, or --config)
4. User config (~/.taxogen/taxogen.toml)
5. System config (/etc/taxogen/taxogen.toml)
6. Default values

Examples:
  taxogen am show                          # Show current configuration
  taxogen am show --format json            # Show configuration as JSON
  taxogen am show --sources                # Show where each value comes from
  taxogen am get targets.go.module         # Get a specific value
  taxogen am set targets.enabled '["go"]'  # Persist a value in taxogen.toml
  taxogen am init                          # Write a taxogen.toml with defaults
  taxogen am validate                      # Validate current configuration`,
	}

	amCmd.AddCommand(newAmShowCmd())
	amCmd.AddCommand(newAmGetCmd())
	amCmd.AddCommand(newAmSetCmd())
	amCmd.AddCommand(newAmInitCmd())
	amCmd.AddCommand(newAmValidateCmd())
	return amCmd
}

func newAmShowCmd() *cobra.Command {
	var (
		format  string
		sources bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective taxogen configuration merged from all sources",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sources {
				return showSources(cmd.OutOrStdout())
			}
			cfg, err := am.Load()
			if err != nil {
				return errors.Wrap(err, "failed to load config")
			}
			return showConfig(cmd.OutOrStdout(), cfg, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "toml", "Output format: toml, json, yaml")
	cmd.Flags().BoolVar(&sources, "sources", false, "Show the source of every setting")
	return cmd
}

func showConfig(w io.Writer, cfg *am.Config, format string) error {
	switch format {
	case "json":
		data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to JSON")
		}
		fmt.Fprintln(w, string(data))

	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to YAML")
		}
		fmt.Fprintf(w, "# taxogen configuration\n%s", data)

	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to TOML")
		}
		fmt.Fprintf(w, "# taxogen configuration\n%s", data)

	default:
		return errors.NewUsageError("unsupported format: %s (supported: toml, json, yaml)", format)
	}
	return nil
}

func showSources(w io.Writer) error {
	intro, err := am.GetConfigIntrospection()
	if err != nil {
		return err
	}

	width := 0
	for _, s := range intro.Settings {
		if len(s.Key) > width {
			width = len(s.Key)
		}
	}
	for _, s := range intro.Settings {
		fmt.Fprintf(w, "%-*s = %-24v [%s]\n", width, s.Key, s.Value, sourceLabel(s))
	}
	return nil
}

// sourceLabel names the configuration layer a setting came from
func sourceLabel(info am.SettingInfo) string {
	if info.SourcePath == "" || info.Source == am.SourceDefault {
		return string(info.Source)
	}
	return fmt.Sprintf("%s: %s", info.Source, info.SourcePath)
}

func newAmGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a specific configuration value",
		Long:  "Get a specific configuration value using dot notation (e.g., targets.go.module, schema.root)",
		Args:  exactlyOneArg("key"),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := am.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func newAmSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Persist a configuration value",
		Long: `Write a value into the project taxogen.toml (or the --config file).
The value is read as a TOML value when the key is not a string setting,
so lists and booleans can be set directly:

  taxogen am set targets.enabled '["go", "typescript"]'
  taxogen am set schema.collect_all true
  taxogen am set targets.go.module github.com/acme/taxonomy`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.NewUsageError("expected <key> <value>, got %d arguments", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			key, raw := args[0], args[1]

			v, err := am.GetViper()
			if err != nil {
				return err
			}
			if !v.IsSet(key) {
				return errors.Mark(errors.Newf("unknown configuration key %q", key), errors.ErrInvalidConfig)
			}
			value := parseValue(raw, v.Get(key))

			path, err := am.ProjectConfigPath()
			if err != nil {
				return err
			}
			if err := am.SetValue(path, key, value); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s = %v (%s)\n", key, value, path)
			return nil
		},
	}
}

// parseValue decodes raw as a TOML value unless the current setting is a
// string, in which case raw is used verbatim
func parseValue(raw string, current interface{}) interface{} {
	if _, ok := current.(string); ok {
		return raw
	}
	var doc struct {
		Value interface{} `toml:"value"`
	}
	if err := toml.Unmarshal([]byte("value = "+raw), &doc); err != nil {
		return raw
	}
	return doc.Value
}

func newAmInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a taxogen.toml with the default settings",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := am.ProjectConfigPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.WithHint(
					errors.Newf("%s already exists", path),
					"use --force to overwrite it (a backup is kept)")
			}
			if err := am.WriteDefaults(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing taxogen.toml")
	return cmd
}

func newAmValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate current configuration",
		Long:  "Validate that the current taxogen configuration is valid",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration is valid")
			return nil
		},
	}
}
