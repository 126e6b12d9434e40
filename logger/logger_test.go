package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func resetLogger(t *testing.T) {
	t.Cleanup(func() {
		Logger = zap.NewNop().Sugar()
		JSONOutput = false
		currentTheme = "everforest"
	})
}

func TestInitialize(t *testing.T) {
	tests := []struct {
		name string
		json bool
	}{
		{"JSON output mode", true},
		{"Console output mode", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetLogger(t)
			var buf bytes.Buffer

			require.NoError(t, Initialize(Options{JSON: tt.json, Verbosity: VerbosityInfo, Output: zapcore.AddSync(&buf)}))
			require.NotNil(t, Logger)
			assert.Equal(t, tt.json, JSONOutput)

			Infow("Generated artifacts", FieldTarget, "python", FieldCount, 4)
			Cleanup()

			out := stripANSI(buf.String())
			assert.Contains(t, out, "Generated artifacts")
			assert.Contains(t, out, "python")
		})
	}
}

func TestInitializeJSONIsStructured(t *testing.T) {
	resetLogger(t)
	var buf bytes.Buffer
	require.NoError(t, Initialize(Options{JSON: true, Verbosity: VerbosityInfo, Output: zapcore.AddSync(&buf)}))

	Warnw("Schema version differs from directory", FieldVersion, 3)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, float64(3), entry["version"])
}

func TestVerbosityFiltersConsole(t *testing.T) {
	resetLogger(t)
	var buf bytes.Buffer
	require.NoError(t, Initialize(Options{Verbosity: VerbosityQuiet, Output: zapcore.AddSync(&buf)}))

	Infow("hidden at default verbosity")
	Debugw("hidden as well")
	Errorw("shown", FieldError, "boom")

	out := stripANSI(buf.String())
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "error=boom")
}

func TestInitializeWritesLogFile(t *testing.T) {
	resetLogger(t)
	path := filepath.Join(t.TempDir(), "taxogen.log")
	var console bytes.Buffer

	require.NoError(t, Initialize(Options{Verbosity: VerbosityInfo, File: path, Output: zapcore.AddSync(&console)}))
	Infow("Wrote file", FieldPath, "v2/go/go.mod")
	Cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "Wrote file", entry["msg"])
	assert.Equal(t, "v2/go/go.mod", entry["path"])
	assert.Contains(t, console.String(), "Wrote file")
}

func TestComponentLogger(t *testing.T) {
	resetLogger(t)
	var buf bytes.Buffer
	require.NoError(t, Initialize(Options{Verbosity: VerbosityInfo, Output: zapcore.AddSync(&buf)}))

	log := ChildLogger(ComponentLogger("typegen.golang"), FieldVersion, 2)
	log.Infow("Rendered artifact", FieldFile, "entities.go")

	out := stripANSI(buf.String())
	assert.Contains(t, out, "t.golang")
	assert.Contains(t, out, `"version":2`)
	assert.Contains(t, out, "file=entities.go")
}

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{-1, zapcore.WarnLevel},
		{VerbosityQuiet, zapcore.WarnLevel},
		{VerbosityInfo, zapcore.InfoLevel},
		{VerbosityDebug, zapcore.DebugLevel},
		{VerbosityTrace, zapcore.DebugLevel},
		{9, zapcore.DebugLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, VerbosityToLevel(tt.verbosity), "verbosity %d", tt.verbosity)
	}
	assert.Equal(t, "quiet", LevelName(-1))
	assert.Equal(t, "debug", LevelName(VerbosityDebug))
	assert.Equal(t, "trace", LevelName(5))
}

func TestTracing(t *testing.T) {
	resetLogger(t)
	t.Cleanup(func() { verbosity = 0 })

	require.NoError(t, Initialize(Options{Verbosity: VerbosityDebug, Output: zapcore.AddSync(&bytes.Buffer{})}))
	assert.False(t, Tracing())

	require.NoError(t, Initialize(Options{Verbosity: VerbosityTrace, Output: zapcore.AddSync(&bytes.Buffer{})}))
	assert.True(t, Tracing())
}
