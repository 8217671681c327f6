package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestInitLevels(t *testing.T) {
	t.Run("default suppresses info", func(t *testing.T) {
		var buf bytes.Buffer
		Init(Options{Stderr: &buf})
		Info("hello")
		if buf.Len() != 0 {
			t.Errorf("info logged without verbose: %q", buf.String())
		}
		Warn("careful")
		if !strings.Contains(buf.String(), "careful") {
			t.Errorf("warn not logged: %q", buf.String())
		}
	})

	t.Run("verbose enables debug", func(t *testing.T) {
		var buf bytes.Buffer
		Init(Options{Verbose: true, Stderr: &buf})
		Debug("tracing", "key", "value")
		if !strings.Contains(buf.String(), "tracing") {
			t.Errorf("debug not logged: %q", buf.String())
		}
	})
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{JSONFormat: true, Stderr: &buf})
	Error("boom", "cause", "test")
	out := buf.String()
	if !strings.Contains(out, `"msg":"boom"`) {
		t.Errorf("expected JSON output, got %q", out)
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Verbose: true, Stderr: &buf})
	With("tenant", "Apple").Info("issued")
	out := buf.String()
	if !strings.Contains(out, "tenant=Apple") {
		t.Errorf("attribute missing: %q", out)
	}
}
