package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLogger_ComponentField(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Component: "api", Output: &buf})

	log.Info("hello")

	out := buf.String()
	if !strings.Contains(out, "component=api") {
		t.Fatalf("expected component field, got %q", out)
	}
	if !strings.Contains(out, "hello") {
		t.Fatalf("expected message, got %q", out)
	}
}

func TestLogger_WithFieldAndError(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Component: "currency", Output: &buf})

	log.WithError(errors.New("boom")).WithField("code", "XYZ").Warn("no rate")

	out := buf.String()
	for _, want := range []string{"boom", "code=XYZ", "no rate", "warn"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got %q", want, out)
		}
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Component: "test", Level: "warn", Output: &buf})

	log.Info("invisible")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn level, got %q", buf.String())
	}

	log.Warn("visible")
	if buf.Len() == 0 {
		t.Fatal("warn should be logged at warn level")
	}
}

func TestLogger_SetOutputPropagates(t *testing.T) {
	var buf bytes.Buffer
	log := NewDefault("root")
	derived := log.WithField("k", "v")
	log.SetOutput(&buf)

	derived.Info("derived line")
	if !strings.Contains(buf.String(), "derived line") {
		t.Fatalf("derived logger should share output, got %q", buf.String())
	}
}
