package logger

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// stripANSI removes ANSI color codes from a string for testing
func stripANSI(str string) string {
	ansiRegex := regexp.MustCompile(`\x1b\[[0-9;]*m`)
	return ansiRegex.ReplaceAllString(str, "")
}

// The console encoder must never silently discard fields.
func TestMinimalEncoderNeverDiscardsFields(t *testing.T) {
	encoder := newMinimalEncoder()
	entry := zapcore.Entry{
		Level:      zapcore.InfoLevel,
		Time:       time.Date(2026, 1, 2, 13, 4, 35, 0, time.UTC),
		LoggerName: "typegen",
		Message:    "Rendered artifact",
	}

	testFields := []struct {
		field    zapcore.Field
		mustFind string
	}{
		{zap.String("target", "typescript"), "target=typescript"},
		{zap.String("file", "src/schemas.ts"), "file=src/schemas.ts"},
		{zap.Int("count", 6), "count=6"},
		{zap.Bool("collect_all", true), "collect_all=true"},
		{zap.Float64("ratio", 0.5), "ratio=0.5"},
		{zap.String("field.with.dots", "x"), "field.with.dots=x"},
		{zap.Strings("edges", []string{"HAS_PORT", "AFFECTS"}), "edges="},
	}

	fields := make([]zapcore.Field, len(testFields))
	for i, tf := range testFields {
		fields[i] = tf.field
	}

	buf, err := encoder.EncodeEntry(entry, fields)
	require.NoError(t, err)
	out := stripANSI(buf.String())

	assert.True(t, strings.HasPrefix(out, "13:04:35"))
	assert.Contains(t, out, "Rendered artifact")
	for _, tf := range testFields {
		assert.Contains(t, out, tf.mustFind)
	}
}

func TestMinimalEncoderLevels(t *testing.T) {
	encoder := newMinimalEncoder()
	tests := []struct {
		level zapcore.Level
		want  string
		not   string
	}{
		{zapcore.InfoLevel, "msg", "INFO"},
		{zapcore.DebugLevel, "DEBUG", ""},
		{zapcore.WarnLevel, "WARN", ""},
		{zapcore.ErrorLevel, "ERROR", ""},
	}
	for _, tt := range tests {
		buf, err := encoder.EncodeEntry(zapcore.Entry{Level: tt.level, Time: time.Now(), Message: "msg"}, nil)
		require.NoError(t, err)
		out := stripANSI(buf.String())
		assert.Contains(t, out, tt.want)
		if tt.not != "" {
			assert.NotContains(t, out, tt.not)
		}
	}
}

func TestAbbreviateName(t *testing.T) {
	assert.Equal(t, "typegen", abbreviateName("typegen"))
	assert.Equal(t, "t.golang", abbreviateName("typegen.golang"))
	assert.Equal(t, "c.watch.loop", abbreviateName("cmd.watch.loop"))
}

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { currentTheme = "everforest" })

	SetTheme("gruvbox")
	assert.Equal(t, "gruvbox", currentTheme)
	SetTheme("solarized")
	assert.Equal(t, "gruvbox", currentTheme)
	assert.Equal(t, gruvbox.time, colors().time)
}
