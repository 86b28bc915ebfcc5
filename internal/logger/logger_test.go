package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want *zapcore.Level
	}{
		{"debug", levelPtr(zapcore.DebugLevel)},
		{"info", levelPtr(zapcore.InfoLevel)},
		{"warn", levelPtr(zapcore.WarnLevel)},
		{"error", levelPtr(zapcore.ErrorLevel)},
		{"verbose", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := parseLevel(tt.in)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.in, *got, *tt.want)
			}
		})
	}
}

func TestNamedLogger(t *testing.T) {
	log := New("error", false).Named("navigation")
	if log == nil {
		t.Fatal("Named() returned nil")
	}
	log.Info("discarded below error level", String("k", "v"), Bool("b", true))
}

func levelPtr(l zapcore.Level) *zapcore.Level { return &l }
