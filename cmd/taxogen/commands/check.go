package commands

import (
	"fmt"
	"io"
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/taxogen/errors"
	"github.com/teranos/taxogen/typegen"
)

func newCheckCmd() *cobra.Command {
	var (
		langs []string
		quiet bool
	)

	cmd := &cobra.Command{
		Use:   "check <version>",
		Short: "Check that generated code is up to date",
		Long: `Regenerate a schema version in a temporary directory and compare it with
the files under <root>/v<N>/. Provenance header lines are ignored.

Exit codes: 0 up to date, 1 out of date, 2 error.

Examples:
  taxogen check 2                 # Check configured targets
  taxogen check 2 --lang go       # Check the Go target only
  taxogen check 2 --quiet         # List stale files without diffs`,
		Args: exactlyOneArg("version"),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := parseVersion(args[0])
			if err != nil {
				return err
			}
			if err := runCheck(cmd.OutOrStdout(), version, langs, quiet); err != nil {
				if errors.IsOutOfDateError(err) || errors.IsUsageError(err) {
					return err
				}
				return &ExitError{Code: ExitCheckError, Err: err}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&langs, "lang", "l", nil, "Targets to check (default: targets.enabled)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print diffs")
	return cmd
}

func runCheck(w io.Writer, version int, langs []string, quiet bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	targets, err := selectTargets(langs, cfg)
	if err != nil {
		return err
	}

	plan, err := typegen.Build(buildConfig(cfg, version, targets, false))
	if err != nil {
		return err
	}
	result, err := typegen.Check(plan, cfg.SchemaDir(version))
	if err != nil {
		return err
	}

	if result.UpToDate {
		pterm.Success.WithWriter(w).Printfln("Generated code for v%d is up to date", version)
		return nil
	}

	printDifferences(w, result, quiet)
	return errors.WithHintf(
		errors.Wrapf(errors.ErrOutOfDate, "v%d", version),
		"run 'taxogen generate %d' to regenerate", version)
}

func printDifferences(w io.Writer, result *typegen.CheckResult, quiet bool) {
	for _, lang := range sortedKeys(result.Differences) {
		pterm.Warning.WithWriter(w).Printfln("%s is out of date", lang)
		for _, file := range result.Differences[lang] {
			fmt.Fprintf(w, "  %s\n", file)
		}
	}
	if quiet {
		return
	}

	for _, key := range sortedKeys(result.Diffs) {
		fmt.Fprintf(w, "\n--- %s\n%s", key, result.Diffs[key])
	}
}

// sortedKeys returns the keys of m in order
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
