package commands

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/taxogen/logger"
	"github.com/teranos/taxogen/schema"
	"github.com/teranos/taxogen/typegen"
)

type generateOptions struct {
	langs      []string
	collectAll bool
	watch      bool
}

func newGenerateCmd() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate <version>",
		Short: "Generate model libraries for a schema version",
		Long: `Validate <root>/v<N>/entities.yml and write every selected target below
<root>/v<N>/. Nothing is written unless validation and rendering of all
targets succeed.

Targets:
  go          v<N>/go          entities package with validator tags
  python      v<N>/python      pydantic v2 models
  typescript  v<N>/typescript  zod schemas and inferred types
  markdown    v<N>/docs        reference documentation

Examples:
  taxogen generate 2                       # Configured targets (targets.enabled)
  taxogen generate 2 --lang all            # Every target
  taxogen generate 2 --lang typescript     # One target
  taxogen generate 2 --all                 # Report every schema violation
  taxogen generate 2 --watch               # Regenerate when the schema changes`,
		Args: exactlyOneArg("version"),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := parseVersion(args[0])
			if err != nil {
				return err
			}
			return runGenerate(cmd, version, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.langs, "lang", "l", nil, "Targets to generate: go,python,typescript,markdown or all (default: targets.enabled)")
	cmd.Flags().BoolVar(&opts.collectAll, "all", false, "Collect every schema violation instead of stopping at the first")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Regenerate whenever the schema file changes")
	return cmd
}

func runGenerate(cmd *cobra.Command, version int, opts generateOptions) error {
	log := logger.ComponentLogger("generate")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	targets, err := selectTargets(opts.langs, cfg)
	if err != nil {
		return err
	}

	bc := buildConfig(cfg, version, targets, opts.collectAll)
	outDir := cfg.SchemaDir(version)
	out := cmd.OutOrStdout()

	generate := func() error {
		plan, err := typegen.Build(bc)
		if err != nil {
			return err
		}
		written, err := plan.Write(outDir)
		if err != nil {
			return err
		}
		printGenerated(out, plan, outDir)
		log.Infow("Generation complete", logger.FieldVersion, version, logger.FieldCount, len(written))
		return nil
	}

	if !opts.watch {
		return generate()
	}

	// In watch mode a bad schema is reported and the loop keeps going.
	if err := generate(); err != nil {
		if !schema.IsValidationError(err) {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "✗ Schema validation failed: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := typegen.NewSchemaWatcher(bc.SchemaPath, typegen.DefaultDebounce, generate)
	if err != nil {
		return err
	}
	pterm.Info.WithWriter(out).Printfln("Watching %s (Ctrl+C to stop)", bc.SchemaPath)
	return watcher.Run(ctx)
}

func printGenerated(w io.Writer, plan *typegen.Plan, outDir string) {
	for _, o := range plan.Outputs {
		dir := filepath.Join(outDir, o.Dir)
		pterm.Success.WithWriter(w).Printfln("Generated %s → %s (%d files)", o.Language, dir, len(o.Artifacts))
	}
}
