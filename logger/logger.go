package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// Global logger instance
	Logger *zap.SugaredLogger
	// Flag to track if JSON output is enabled
	JSONOutput bool
)

func init() {
	// Safe no-op logger until Initialize runs
	Logger = zap.NewNop().Sugar()
}

// Options configures the global logger.
type Options struct {
	// JSON selects structured production output instead of the console encoder
	JSON bool
	// Verbosity is the -v count, see VerbosityToLevel
	Verbosity int
	// Theme is the console color theme ("everforest" or "gruvbox")
	Theme string
	// File, when set, receives a JSON copy of every entry with rotation
	File       string
	MaxSizeMB  int
	MaxBackups int
	// Output overrides the console destination (stderr by default)
	Output zapcore.WriteSyncer
}

// Initialize sets up the global logger. Console output goes to stderr so
// stdout stays reserved for command results.
func Initialize(opts Options) error {
	JSONOutput = opts.JSON
	verbosity = opts.Verbosity
	if opts.Theme != "" {
		SetTheme(opts.Theme)
	}

	level := zap.NewAtomicLevelAt(VerbosityToLevel(opts.Verbosity))
	out := opts.Output
	if out == nil {
		out = zapcore.Lock(os.Stderr)
	}

	var console zapcore.Core
	if opts.JSON {
		// JSON structured output for machine consumption
		console = zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), out, level)
	} else {
		// Human-readable console output with minimal, calm formatting
		console = zapcore.NewCore(newMinimalEncoder(), out, level)
	}

	cores := []zapcore.Core{console}
	if opts.File != "" {
		cores = append(cores, fileCore(opts, level))
	}

	Logger = zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zap.ErrorLevel)).Sugar()
	return nil
}

// fileCore writes JSON entries to a rotating file.
func fileCore(opts Options, level zapcore.LevelEnabler) zapcore.Core {
	maxSize := opts.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 10
	}
	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    maxSize,
		MaxBackups: opts.MaxBackups,
	})
	return zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), writer, level)
}

// Cleanup flushes any buffered log entries
func Cleanup() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

// Infow logs an info message with structured fields
func Infow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Infow(msg, keysAndValues...)
	}
}

// Warnw logs a warning message with structured fields
func Warnw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Warnw(msg, keysAndValues...)
	}
}

// Errorw logs an error message with structured fields
func Errorw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Errorw(msg, keysAndValues...)
	}
}

// Debugw logs a debug message with structured fields
func Debugw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Debugw(msg, keysAndValues...)
	}
}
