package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestDefaultLoggerIsUsable(t *testing.T) {
	// Package-level helpers must not panic before Init.
	Debug("debug before init")
	Info("info before init", zap.Int("n", 1))
	Named("world").Warn("named before init")
}

func TestFileOutput(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "voxel.log")

	cfg := FileConfig{Path: logFile, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1}
	if err := InitWithFileConfig("debug", cfg, false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	defer func() {
		_ = InitWithFileConfig("info", FileConfig{}, false)
	}()

	Info("chunk uploaded", zap.Int("quads", 96))
	Debug("subchunk rebuilt")
	Sync()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "chunk uploaded") {
		t.Errorf("log file missing info entry: %q", content)
	}
	if !strings.Contains(content, "quads") || !strings.Contains(content, "96") {
		t.Errorf("log file missing structured field: %q", content)
	}
	if !strings.Contains(content, "subchunk rebuilt") {
		t.Errorf("log file missing debug entry: %q", content)
	}
}

func TestLevelFiltering(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "warn.log")

	if err := InitWithFileConfig("warn", FileConfig{Path: logFile, MaxSizeMB: 1}, false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	defer func() {
		_ = InitWithFileConfig("info", FileConfig{}, false)
	}()

	Info("should be dropped")
	Warn("should be kept")
	Sync()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if strings.Contains(string(data), "should be dropped") {
		t.Error("info entry written at warn level")
	}
	if !strings.Contains(string(data), "should be kept") {
		t.Error("warn entry missing")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]string{
		"debug":   "debug",
		"warn":    "warn",
		"error":   "error",
		"info":    "info",
		"":        "info",
		"verbose": "info",
	}
	for in, want := range cases {
		if got := parseLevel(in).String(); got != want {
			t.Errorf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
