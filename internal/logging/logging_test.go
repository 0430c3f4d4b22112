// ABOUTME: Tests for logger construction.
// ABOUTME: Checks level parsing and file output.

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New("chatty", ""); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "notes.log")

	logger, err := New("info", path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hello")
	logger.Debug("hidden")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("expected info line in %q", data)
	}
	if strings.Contains(string(data), "hidden") {
		t.Error("debug line should be filtered at info level")
	}
}

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(zapcore.WarnLevel, &buf)
	logger.Warn("careful")
	logger.Info("skip")

	if !strings.Contains(buf.String(), "careful") || strings.Contains(buf.String(), "skip") {
		t.Errorf("unexpected output %q", buf.String())
	}
}
