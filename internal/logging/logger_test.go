package logging

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

var (
	_ Logger = (*ZerologAdapter)(nil)
	_ Logger = (*StdLoggerAdapter)(nil)
)

func TestFieldHelpers(t *testing.T) {
	t.Parallel()
	closed := errors.New("pool closed")
	tests := []struct {
		field Field
		key   string
		value any
	}{
		{String("rule", "julia"), "rule", "julia"},
		{Int("workers", 8), "workers", 8},
		{Uint64("frame", 42), "frame", uint64(42)},
		{Float64("scale", 0.85), "scale", 0.85},
		{Duration("elapsed", time.Millisecond), "elapsed", time.Millisecond},
		{Err(closed), "error", closed},
		{Err(nil), "error", nil},
	}
	for _, tt := range tests {
		if tt.field.Key != tt.key || tt.field.Value != tt.value {
			t.Errorf("field = %+v, want {%s %v}", tt.field, tt.key, tt.value)
		}
	}
}

func TestZerologAdapter(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		log  func(Logger)
		want []string
	}{
		{"component", func(l Logger) { l.Info("frame rendered", Int("bands", 8)) },
			[]string{`"component":"render"`, "frame rendered", `"bands":8`}},
		{"debug", func(l Logger) { l.Debug("band done", String("rule", "nova")) },
			[]string{`"level":"debug"`, "nova"}},
		{"warn", func(l Logger) { l.Warn("slow frame", Duration("elapsed", 40*time.Millisecond)) },
			[]string{`"level":"warn"`, "slow frame"}},
		{"error", func(l Logger) { l.Error("dispatch failed", errors.New("pool closed"), Uint64("frame", 3)) },
			[]string{`"level":"error"`, "pool closed", `"frame":3`}},
		{"int64", func(l Logger) { l.Info("x", Field{Key: "big", Value: int64(1) << 62}) },
			[]string{"4611686018427387904"}},
		{"bool", func(l Logger) { l.Info("x", Field{Key: "batched", Value: true}) },
			[]string{`"batched":true`}},
		{"struct", func(l Logger) { l.Info("x", Field{Key: "size", Value: struct{ W int }{W: 640}}) },
			[]string{"640"}},
		{"printf", func(l Logger) { l.Printf("rendered %dx%d", 640, 480) },
			[]string{"rendered 640x480"}},
		{"println", func(l Logger) { l.Println("zoom", "in") },
			[]string{"zoom in"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			zl := zerolog.New(&buf).Level(zerolog.DebugLevel).With().Str("component", "render").Logger()
			tt.log(NewZerologAdapter(zl))
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output %q should contain %q", buf.String(), want)
				}
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	NewLogger(&buf, "verify").Info("strategies done", Int("count", 4))
	for _, want := range []string{"verify", "strategies done", `"count":4`} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output %q should contain %q", buf.String(), want)
		}
	}
}

func TestNop(t *testing.T) {
	t.Parallel()
	l := Nop()
	l.Info("ignored")
	l.Error("ignored", errors.New("x"))
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		" warn ":  zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestStdLoggerAdapter(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		log  func(*StdLoggerAdapter)
		want []string
	}{
		{"info", func(l *StdLoggerAdapter) { l.Info("frame", Int("workers", 4)) }, []string{"[INFO]", "workers=4"}},
		{"debug", func(l *StdLoggerAdapter) { l.Debug("band", Int("row", 42)) }, []string{"[DEBUG]", "row=42"}},
		{"warn", func(l *StdLoggerAdapter) { l.Warn("slow") }, []string{"[WARN]", "slow"}},
		{"error", func(l *StdLoggerAdapter) { l.Error("failed", errors.New("boom"), String("rule", "nova")) }, []string{"[ERROR]", "boom", "rule=nova"}},
		{"printf", func(l *StdLoggerAdapter) { l.Printf("scale %g", 0.5) }, []string{"scale 0.5"}},
		{"println", func(l *StdLoggerAdapter) { l.Println("a", "b") }, []string{"a b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			tt.log(NewStdLoggerAdapter(log.New(&buf, "", 0)))
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output %q should contain %q", buf.String(), want)
				}
			}
		})
	}
}
