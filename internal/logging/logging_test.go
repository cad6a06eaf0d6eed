package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"blobterm/internal/config"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blobterm.log")
	log, err := New(config.LoggingConfig{Level: "debug", Format: "console", File: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Debug("spawned blob")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "spawned blob") {
		t.Fatalf("log file missing message: %q", data)
	}
}

func TestNewJSONRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blobterm.json")
	log, err := New(config.LoggingConfig{Level: "warn", Format: "json", File: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info("hidden")
	log.Warn("shown")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(data), "hidden") {
		t.Fatal("info line should be filtered at warn level")
	}
	if !strings.Contains(string(data), `"msg":"shown"`) {
		t.Fatalf("expected JSON warn line, got %q", data)
	}
}

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blobterm.log")
	log, err := New(config.LoggingConfig{Level: "chatty", File: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !log.Core().Enabled(0) || log.Core().Enabled(-1) {
		t.Fatal("expected info level")
	}
}
