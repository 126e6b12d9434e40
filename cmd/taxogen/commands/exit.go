package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/taxogen/errors"
	"github.com/teranos/taxogen/schema"
)

// Process exit codes
const (
	ExitOK         = 0
	ExitFailure    = 1 // schema invalid, usage error, or check out of date
	ExitCheckError = 2 // check could not run
)

// ExitError carries an explicit exit code for err
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }
func (e *ExitError) Unwrap() error { return e.Err }

// Report prints err for the command that failed and returns the process
// exit code. Usage errors go to stdout followed by the command usage;
// everything else goes to stderr.
func Report(cmd *cobra.Command, err error) int {
	if err == nil {
		return ExitOK
	}

	code := ExitFailure
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.Code
	}

	switch {
	case errors.IsUsageError(err):
		fmt.Fprintf(cmd.OutOrStdout(), "Error: %v\n\n", err)
		fmt.Fprint(cmd.OutOrStdout(), cmd.UsageString())
	case schema.IsValidationError(err):
		fmt.Fprintf(cmd.ErrOrStderr(), "✗ Schema validation failed: %v\n", err)
	case errors.IsOutOfDateError(err):
		fmt.Fprintf(cmd.ErrOrStderr(), "✗ %v\n", err)
	default:
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}

	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Hint: %s\n", strings.TrimSpace(hint))
	}
	return code
}
