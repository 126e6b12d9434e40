// Package errors provides error handling for taxogen.
//
// It re-exports github.com/cockroachdb/errors so every package wraps,
// annotates and inspects errors the same way:
//
//	if err := os.WriteFile(path, data, 0o644); err != nil {
//	    return errors.Wrapf(err, "failed to write %s", path)
//	}
//
//	return errors.WithHint(err, "run 'taxogen validate <version>' first")
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is            = crdb.Is
	As            = crdb.As
	Unwrap        = crdb.Unwrap
	UnwrapAll     = crdb.UnwrapAll
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	FlattenHints  = crdb.FlattenHints
)

// Sentinel errors shared by the CLI and the generator.
// Use these with errors.Is(); wrap them to add context.
var (
	// ErrUsage indicates the command line was malformed (wrong arity, bad version)
	ErrUsage = New("invalid usage")

	// ErrOutOfDate indicates generated code no longer matches the schema
	ErrOutOfDate = New("generated code is out of date")

	// ErrInvalidConfig indicates taxogen.toml or TAXOGEN_* settings are invalid
	ErrInvalidConfig = New("invalid configuration")

	// ErrUnknownTarget indicates a target language that has no generator
	ErrUnknownTarget = New("unknown target")
)

// IsUsageError checks if an error is or wraps ErrUsage
func IsUsageError(err error) bool {
	return err != nil && Is(err, ErrUsage)
}

// IsOutOfDateError checks if an error is or wraps ErrOutOfDate
func IsOutOfDateError(err error) bool {
	return err != nil && Is(err, ErrOutOfDate)
}

// NewUsageError creates a usage error with a formatted message
func NewUsageError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrUsage)
}

// NewConfigError creates an invalid-config error with a formatted message
func NewConfigError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrInvalidConfig)
}
