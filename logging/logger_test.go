package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHelpersAreNilSafe(t *testing.T) {
	Logger = nil
	Info("ignored")
	Debug("ignored")
	Warn("ignored")
	Error("ignored")
}

func TestInitWriterAndLevel(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Options{Writer: &buf, Level: "warn"}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer func() { Logger = nil }()

	Info("hidden message")
	Warn("shown message", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Errorf("info line written at warn level: %q", out)
	}
	if !strings.Contains(out, "shown message") || !strings.Contains(out, "key=value") {
		t.Errorf("warn line missing: %q", out)
	}
}

func TestInitBadLevel(t *testing.T) {
	if err := Init(Options{Writer: &bytes.Buffer{}, Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestInitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "lumina.log")
	if err := Init(Options{Path: path, Level: "debug"}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Debug("to file")
	Close()
	Logger = nil

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file = %q, want it to contain %q", data, "to file")
	}
}
