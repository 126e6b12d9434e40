package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

type palette struct {
	time      string
	component []string
	fg        string
	key       string
	warn      string
	warnBg    string
	err       string
	errBg     string
}

// Everforest Dark (natural forest greens)
var everforest = palette{
	time:      "\x1b[38;5;107m",
	component: []string{"\x1b[38;5;108m", "\x1b[38;5;65m", "\x1b[38;5;208m"},
	fg:        "\x1b[38;5;223m",
	key:       "\x1b[38;5;109m",
	warn:      "\x1b[38;5;179m",
	warnBg:    "\x1b[48;5;58m",
	err:       "\x1b[38;5;167m",
	errBg:     "\x1b[48;5;52m",
}

// Gruvbox Dark (warm, muted)
var gruvbox = palette{
	time:      "\x1b[38;5;108m",
	component: []string{"\x1b[38;5;208m", "\x1b[38;5;214m"},
	fg:        "\x1b[38;5;223m",
	key:       "\x1b[38;5;109m",
	warn:      "\x1b[38;5;214m",
	warnBg:    "\x1b[48;5;58m",
	err:       "\x1b[38;5;167m",
	errBg:     "\x1b[48;5;88m",
}

var themes = map[string]palette{
	"everforest": everforest,
	"gruvbox":    gruvbox,
}

// Current active theme (set by Initialize from config)
var currentTheme = "everforest"

// SetTheme configures the color scheme for console output. Unknown themes
// are ignored.
func SetTheme(theme string) {
	if _, ok := themes[theme]; ok {
		currentTheme = theme
	}
}

func colors() palette {
	return themes[currentTheme]
}

func colorComponent(name string) string {
	hash := 0
	for _, c := range name {
		hash += int(c)
	}
	p := colors().component
	return p[hash%len(p)]
}

// minimalEncoder is a compact console encoder.
// Format: "13:04:35  t.golang  Rendered artifact  file=entities/entities.go"
type minimalEncoder struct {
	zapcore.Encoder // holds context added through With()
}

func newMinimalEncoder() *minimalEncoder {
	cfg := zapcore.EncoderConfig{
		// Only context fields are serialized by the embedded encoder
		SkipLineEnding: true,
	}
	return &minimalEncoder{Encoder: zapcore.NewJSONEncoder(cfg)}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	return &minimalEncoder{Encoder: enc.Encoder.Clone()}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	c := colors()
	final := buffer.NewPool().Get()

	final.AppendString(c.time)
	final.AppendString(ent.Time.Format("15:04:05"))
	final.AppendString(colorReset)

	// Level: only shown for WARN and above
	if ent.Level >= zapcore.WarnLevel {
		final.AppendString("  ")
		final.AppendString(levelColorString(ent.Level))
	} else if ent.Level == zapcore.DebugLevel {
		final.AppendString("  DEBUG")
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(colorComponent(ent.LoggerName))
		final.AppendString(abbreviateName(ent.LoggerName))
		final.AppendString(colorReset)
	}

	final.AppendString("  ")
	final.AppendString(c.fg)
	final.AppendString(ent.Message)
	final.AppendString(colorReset)

	if ctx, err := enc.Encoder.EncodeEntry(zapcore.Entry{}, nil); err == nil {
		if s := ctx.String(); s != "{}" && s != "" {
			final.AppendString("  ")
			final.AppendString(s)
		}
		ctx.Free()
	}

	if len(fields) > 0 {
		final.AppendString("  ")
		final.AppendString(formatFields(fields))
	}

	final.AppendString("\n")
	return final, nil
}

// levelColorString returns bold + colored + background for WARN/ERROR
func levelColorString(level zapcore.Level) string {
	c := colors()
	if level == zapcore.WarnLevel {
		return colorBold + c.warnBg + c.warn + "WARN" + colorReset
	}
	return colorBold + c.errBg + c.err + level.CapitalString() + colorReset
}

// abbreviateName shortens component names: typegen.golang -> t.golang
func abbreviateName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) > 1 && parts[0] != "" {
		return string(parts[0][0]) + "." + strings.Join(parts[1:], ".")
	}
	return name
}

// formatFields renders every field as key=value in call order. Nothing is
// dropped: complex values fall back to their map encoding.
func formatFields(fields []zapcore.Field) string {
	key := colors().key
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		m := zapcore.NewMapObjectEncoder()
		f.AddTo(m)
		keys := make([]string, 0, len(m.Fields))
		for k := range m.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			parts = append(parts, key+k+colorReset+"="+fmt.Sprint(m.Fields[k]))
		}
	}
	return strings.Join(parts, " ")
}
