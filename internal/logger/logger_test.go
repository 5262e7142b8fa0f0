package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestVerboseGate(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	defer SetVerbose(false)

	SetVerbose(false)
	Debug("hidden %d", 1)
	Info("hidden")
	Warn("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected no output when verbose disabled, got %q", buf.String())
	}

	SetVerbose(true)
	Debug("shown %d", 2)
	out := buf.String()
	if !strings.Contains(out, "[DEBUG] shown 2") {
		t.Errorf("expected debug line, got %q", out)
	}
}

func TestErrorAlwaysPrints(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	SetVerbose(false)
	Error("boom: %s", "embedding")
	if !strings.Contains(buf.String(), "[ERROR] boom: embedding") {
		t.Errorf("expected error line, got %q", buf.String())
	}
}

func TestSection(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	defer SetVerbose(false)

	SetVerbose(true)
	Section("Index Build")
	if !strings.Contains(buf.String(), "=== Index Build ===") {
		t.Errorf("expected section header, got %q", buf.String())
	}
}
