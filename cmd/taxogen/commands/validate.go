package commands

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/taxogen/errors"
	"github.com/teranos/taxogen/schema"
)

func newValidateCmd() *cobra.Command {
	var collectAll bool

	cmd := &cobra.Command{
		Use:   "validate <version|path>",
		Short: "Validate a schema without generating code",
		Long: `Validate a taxonomy schema. The argument is either a schema version,
resolved to <root>/v<N>/entities.yml, or a path to a schema file.

Examples:
  taxogen validate 2                          # Validate v2
  taxogen validate ./drafts/entities.yml      # Validate a file directly
  taxogen validate 2 --all                    # Report every violation`,
		Args: exactlyOneArg("version|path"),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			path, err := resolveSchemaArg(args[0], func(v int) string { return cfg.SchemaPath(v) })
			if err != nil {
				return err
			}

			var opts []schema.Option
			if collectAll || cfg.Schema.CollectAll {
				opts = append(opts, schema.WithCollectAll())
			}
			s, err := schema.Load(path, opts...)
			if err != nil {
				return err
			}

			pterm.Success.WithWriter(cmd.OutOrStdout()).Printfln(
				"Schema v%d is valid (%d nodes, %d edges, %d relationships)",
				s.Version, len(s.Nodes), len(s.Edges), len(s.Relationships))
			return nil
		},
	}

	cmd.Flags().BoolVar(&collectAll, "all", false, "Collect every schema violation instead of stopping at the first")
	return cmd
}

// resolveSchemaArg maps a version or file argument to a schema path
func resolveSchemaArg(arg string, pathFor func(int) string) (string, error) {
	if version, err := parseVersion(arg); err == nil {
		return pathFor(version), nil
	}
	if looksLikePath(arg) {
		return arg, nil
	}
	return "", errors.NewUsageError("expected a positive schema version or a schema file path, got %q", arg)
}

func looksLikePath(arg string) bool {
	if strings.ContainsRune(arg, filepath.Separator) || strings.ContainsRune(arg, '/') {
		return true
	}
	switch filepath.Ext(arg) {
	case ".yml", ".yaml":
		return true
	}
	_, err := os.Stat(arg)
	return err == nil
}
