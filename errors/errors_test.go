package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWrapf(t *testing.T) {
	original := New("permission denied")
	wrapped := Wrapf(original, "failed to write %s", "v2/go/go.mod")

	assert.Equal(t, "failed to write v2/go/go.mod: permission denied", wrapped.Error())
}

type kindError struct {
	kind string
}

func (e *kindError) Error() string {
	return e.kind
}

func TestAs(t *testing.T) {
	original := &kindError{kind: "MissingVersion"}
	wrapped := Wrap(original, "failed to load schema")

	var target *kindError
	require.True(t, As(wrapped, &target))
	assert.Equal(t, "MissingVersion", target.kind)
}

func TestWithHint(t *testing.T) {
	err := WithHint(New("schema not found"), "create v2/entities.yml")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "create v2/entities.yml", hints[0])
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithHint(nil, "hint"))
	assert.False(t, IsUsageError(nil))
	assert.False(t, IsOutOfDateError(nil))
}

func TestSentinels(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		usage   bool
		outdate bool
		config  bool
	}{
		{"usage", NewUsageError("expected 1 argument, got %d", 3), true, false, false},
		{"wrapped usage", Wrap(NewUsageError("bad version %q", "x"), "generate"), true, false, false},
		{"out of date", Wrap(ErrOutOfDate, "go target"), false, true, false},
		{"config", NewConfigError("unknown target %q", "rust"), false, false, true},
		{"plain", New("disk full"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.usage, IsUsageError(tt.err))
			assert.Equal(t, tt.outdate, IsOutOfDateError(tt.err))
			assert.Equal(t, tt.config, Is(tt.err, ErrInvalidConfig))
		})
	}
}

func TestNewUsageErrorMessage(t *testing.T) {
	err := NewUsageError("version must be a positive integer, got %q", "abc")
	assert.Equal(t, `version must be a positive integer, got "abc"`, err.Error())
}

func TestStackTrace(t *testing.T) {
	err := New("with stack")
	assert.Contains(t, fmt.Sprintf("%+v", err), "errors_test.go")
}

func ExampleWrap() {
	baseErr := New("no such file or directory")
	err := Wrap(baseErr, "failed to read schema")
	fmt.Println(err)
	// Output: failed to read schema: no such file or directory
}
