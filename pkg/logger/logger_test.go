package logger

import (
	"path/filepath"
	"testing"

	"github.com/truongthuanhung/studyverse-cli/pkg/config"
)

// TestInit initializes the logger without panicking
func TestInit(t *testing.T) {
	if err := config.Init(filepath.Join(t.TempDir(), "config.toml")); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}

	Init(false)
	if GetLogger() == nil {
		t.Fatal("GetLogger returned nil after Init")
	}

	Init(true)
	if GetLogger() == nil {
		t.Fatal("GetLogger returned nil after verbose Init")
	}
}

// TestLogFunctions exercises each level
func TestLogFunctions(t *testing.T) {
	if err := config.Init(filepath.Join(t.TempDir(), "config.toml")); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}
	Init(true)

	Debug("debug message", "key", "value")
	Info("info message", "key", "value")
	Warn("warn message", "key", "value")
	Error("error message", "key", "value")
}

// TestLogBeforeInit does not panic with a nil logger
func TestLogBeforeInit(t *testing.T) {
	saved := logger
	logger = nil
	defer func() { logger = saved }()

	Debug("should not panic")
	Info("should not panic")
	Warn("should not panic")
	Error("should not panic")
}
