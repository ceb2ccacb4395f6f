package config

import (
	"path/filepath"
	"testing"
)

// TestInitWithCustomPath initializes config at an explicit location
func TestInitWithCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.toml")

	if err := Init(configPath); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if GetConfigDir() != tempDir {
		t.Errorf("Expected config dir %s, got %s", tempDir, GetConfigDir())
	}

	expected := filepath.Join(tempDir, "credentials")
	if GetCredentialsPath() != expected {
		t.Errorf("Expected credentials path %s, got %s", expected, GetCredentialsPath())
	}
}

// TestDefaults validates the built-in configuration defaults
func TestDefaults(t *testing.T) {
	if err := Init(filepath.Join(t.TempDir(), "config.toml")); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	stringCases := []struct {
		key      string
		expected string
	}{
		{"api.base_url", "http://localhost:5000"},
		{"ws.host", "localhost"},
		{"ws.path", "/socket"},
		{"output.format", "text"},
		{"log.level", "info"},
	}

	for _, tc := range stringCases {
		if got := GetString(tc.key); got != tc.expected {
			t.Errorf("Expected %s=%q, got %q", tc.key, tc.expected, got)
		}
	}

	intCases := []struct {
		key      string
		expected int
	}{
		{"api.timeout", 30},
		{"api.page_size", 10},
		{"ws.port", 5000},
		{"search.debounce_ms", 500},
	}

	for _, tc := range intCases {
		if got := GetInt(tc.key); got != tc.expected {
			t.Errorf("Expected %s=%d, got %d", tc.key, tc.expected, got)
		}
	}
}

// TestSetString persists a value and reads it back
func TestSetString(t *testing.T) {
	if err := Init(filepath.Join(t.TempDir(), "config.toml")); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if err := SetString("output.format", "json"); err != nil {
		t.Fatalf("SetString failed: %v", err)
	}

	if got := GetString("output.format"); got != "json" {
		t.Errorf("Expected output.format=json, got %q", got)
	}
}

// TestLogFileDefaultLivesInConfigDir checks the derived log path
func TestLogFileDefaultLivesInConfigDir(t *testing.T) {
	tempDir := t.TempDir()
	if err := Init(filepath.Join(tempDir, "config.toml")); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	logFile := GetString("log.file")
	if filepath.Dir(logFile) != tempDir {
		t.Errorf("Expected log file under %s, got %s", tempDir, logFile)
	}
}
