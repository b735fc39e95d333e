package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// TestTruncateHandler_CapsLongValues tests that oversized string values
// are truncated before reaching the underlying handler.
func TestTruncateHandler_CapsLongValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		key     string
		value   string
		wantCap bool
	}{
		{
			name:    "short value passes through",
			key:     "page",
			value:   "https://example.com/about",
			wantCap: false,
		},
		{
			name:    "value at the cap passes through",
			key:     "selector",
			value:   strings.Repeat("a", DefaultMaxValueLen),
			wantCap: false,
		},
		{
			name:    "oversized value is truncated",
			key:     "css",
			value:   strings.Repeat("body { color: #000; } ", 100),
			wantCap: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := NewLogger(&buf, true)

			logger.Info("test message", tt.key, tt.value)

			output := buf.String()

			if tt.wantCap {
				if strings.Contains(output, tt.value) {
					t.Errorf("expected value to be truncated, but found whole in output: %s", output)
				}
				if !strings.Contains(output, Ellipsis) {
					t.Errorf("expected ellipsis in output, but not found: %s", output)
				}
			} else {
				if !strings.Contains(output, tt.value) {
					t.Errorf("expected value %q in output, but not found: %s", tt.value, output)
				}
			}
		})
	}
}

// TestTruncateHandler_TruncatedLength tests the exact capped length.
func TestTruncateHandler_TruncatedLength(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := NewTruncateHandlerWithLen(slog.NewTextHandler(&buf, nil), 16)
	logger := slog.New(handler)

	logger.Info("m", "v", strings.Repeat("x", 100))

	if !strings.Contains(buf.String(), strings.Repeat("x", 13)+Ellipsis) {
		t.Errorf("expected 13 runes plus ellipsis, got output: %s", buf.String())
	}
	if strings.Contains(buf.String(), strings.Repeat("x", 14)) {
		t.Errorf("value exceeds the cap: %s", buf.String())
	}
}

// TestTruncateHandler_Groups tests truncation inside attribute groups.
func TestTruncateHandler_Groups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, true)

	long := strings.Repeat("z", DefaultMaxValueLen*2)
	logger.Info("test", slog.Group("page", slog.String("html", long)))

	if strings.Contains(buf.String(), long) {
		t.Errorf("grouped value not truncated: %s", buf.String())
	}
	if !strings.Contains(buf.String(), Ellipsis) {
		t.Errorf("expected ellipsis in output: %s", buf.String())
	}
}

// TestTruncateHandler_WithAttrs tests truncation of pre-bound attributes.
func TestTruncateHandler_WithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, true)

	long := strings.Repeat("y", DefaultMaxValueLen*2)
	bound := logger.With("context", long)
	bound.Info("test")

	if strings.Contains(buf.String(), long) {
		t.Errorf("bound value not truncated: %s", buf.String())
	}
}

// TestTruncateHandler_NonStringValues tests that non-string attributes
// pass through untouched.
func TestTruncateHandler_NonStringValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, true)

	logger.Info("test", "count", 12345, "ratio", 4.5)

	output := buf.String()
	if !strings.Contains(output, "12345") || !strings.Contains(output, "4.5") {
		t.Errorf("numeric attributes altered: %s", output)
	}
}

// TestNewLogger_Levels tests the verbose flag mapping.
func TestNewLogger_Levels(t *testing.T) {
	t.Parallel()

	t.Run("verbose enables debug", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := NewLogger(&buf, true)
		logger.Debug("debug message")
		if !strings.Contains(buf.String(), "debug message") {
			t.Error("debug message suppressed in verbose mode")
		}
	})

	t.Run("quiet suppresses info", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := NewLogger(&buf, false)
		logger.Info("info message")
		if buf.Len() != 0 {
			t.Errorf("expected no output, got: %s", buf.String())
		}
	})
}

// TestNewJSONLogger tests the JSON variant.
func TestNewJSONLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, true)
	logger.Info("test", "page", "https://example.com/")

	if !strings.Contains(buf.String(), `"page":"https://example.com/"`) {
		t.Errorf("expected JSON output, got: %s", buf.String())
	}
}
