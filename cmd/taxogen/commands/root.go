// Package commands implements the taxogen command line.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/taxogen/am"
	"github.com/teranos/taxogen/errors"
	"github.com/teranos/taxogen/logger"
)

// NewRootCmd builds a fresh command tree. Every call returns independent
// flag state, so tests can execute commands side by side.
func NewRootCmd() *cobra.Command {
	var (
		verbosity  int
		jsonLog    bool
		configFile string
	)

	rootCmd := &cobra.Command{
		Use:   "taxogen",
		Short: "taxogen - Generate typed model libraries from a YAML taxonomy",
		Long: `taxogen - Generate typed model libraries from a YAML taxonomy.

taxogen validates <root>/v<N>/entities.yml and projects its nodes, edges and
relationships into Go (validator tags), Python (pydantic) and TypeScript (zod)
packages, plus optional markdown documentation.

Available commands:
  generate - Validate a schema version and write every enabled target
  validate - Validate a schema version without generating
  check    - Verify committed generated code matches the schema
  am       - Manage taxogen configuration ("I am")
  version  - Show version information

Examples:
  taxogen generate 2                      # Generate enabled targets for v2
  taxogen generate 2 --lang go,python     # Generate selected targets only
  taxogen generate 2 --watch              # Regenerate on every schema save
  taxogen check 2                         # Fail if v2 output is stale
  taxogen am show                         # Show current configuration`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configFile != "" {
				am.SetConfigFile(configFile)
			}

			// Logging settings come from the config; a broken config still
			// gets a logger so the failure is reported by the command itself.
			opts := logger.Options{JSON: jsonLog, Verbosity: verbosity}
			if cfg, err := am.Load(); err == nil {
				opts.JSON = opts.JSON || cfg.Log.JSON
				opts.Theme = cfg.GetLogTheme()
				opts.File = cfg.Log.File
				opts.MaxSizeMB = cfg.Log.MaxSizeMB
				opts.MaxBackups = cfg.Log.MaxBackups
			}
			if err := logger.Initialize(opts); err != nil {
				return errors.Wrap(err, "failed to initialize logger")
			}
			logger.Debugw("Logger initialized", "verbosity", logger.LevelName(verbosity), "json", opts.JSON)
			return nil
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json-log", false, "Emit logs as JSON")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Use this taxogen.toml instead of searching for one")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Mark(err, errors.ErrUsage)
	})

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newAmCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
