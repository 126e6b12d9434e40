package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging.
const (
	FieldComponent = "component"
	FieldTarget    = "target"
	FieldVersion   = "version"
	FieldPath      = "path"
	FieldFile      = "file"
	FieldCount     = "count"
	FieldKind      = "kind"
	FieldError     = "error"

	FieldNodes         = "nodes"
	FieldEdges         = "edges"
	FieldRelationships = "relationships"

	FieldCommit     = "commit"
	FieldDurationMS = "duration_ms"
)

// ComponentLogger returns a named logger for a specific component.
//
// Example:
//
//	log := logger.ComponentLogger("typegen.python")
//	log.Infow("Rendered artifact", logger.FieldFile, "nodes.py")
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
