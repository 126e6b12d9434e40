package logger

import "go.uber.org/zap/zapcore"

// -v counts accepted by the CLI.
const (
	VerbosityQuiet = 0 // warnings and errors
	VerbosityInfo  = 1 // -v: schema summary, targets rendered
	VerbosityDebug = 2 // -vv: files written, provenance, dropped constraints
	VerbosityTrace = 3 // -vvv: every entity and field as it is projected
)

// verbosity is the -v count the global logger was initialised with.
var verbosity int

// VerbosityToLevel maps a -v count to a zap level. Trace shares DebugLevel;
// callers gate trace output with Tracing.
func VerbosityToLevel(v int) zapcore.Level {
	switch {
	case v <= VerbosityQuiet:
		return zapcore.WarnLevel
	case v == VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// Tracing reports whether -vvv was given.
func Tracing() bool {
	return verbosity >= VerbosityTrace
}

// LevelName names a -v count for log output.
func LevelName(v int) string {
	switch {
	case v <= VerbosityQuiet:
		return "quiet"
	case v == VerbosityInfo:
		return "info"
	case v == VerbosityDebug:
		return "debug"
	default:
		return "trace"
	}
}
