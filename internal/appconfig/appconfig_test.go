// internal/appconfig/appconfig_test.go
package appconfig

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// TestLoad verifies that a valid file loads with defaults applied for omitted
// keys, and that invalid JSON, a bad base URL, or a missing file all fail.
func TestLoad(t *testing.T) {
	dir := t.TempDir()

	valid := writeConfig(t, dir, "valid.json", `{"apiBaseURL": "http://eval.local:9000/api/v1/", "pollInterval": 30}`)
	cfg, err := Load(valid)
	if err != nil {
		t.Fatalf("Load() with valid config failed: %v", err)
	}
	if cfg.ConfigPath != valid {
		t.Fatalf("expected config path %s, got %s", valid, cfg.ConfigPath)
	}
	if cfg.BaseURL() != "http://eval.local:9000/api/v1" {
		t.Fatalf("expected trailing slash trimmed, got %s", cfg.BaseURL())
	}
	if cfg.TimeoutSeconds != 10 {
		t.Fatalf("expected default timeout of 10 seconds, got %d", cfg.TimeoutSeconds)
	}
	if cfg.RequestTimeout() != 10*time.Second {
		t.Fatalf("expected default request timeout of 10s, got %v", cfg.RequestTimeout())
	}
	if cfg.PollInterval() != 30*time.Second {
		t.Fatalf("expected poll interval of 30s, got %v", cfg.PollInterval())
	}
	if cfg.DemoRefreshDelay() != 2*time.Second {
		t.Fatalf("expected default demo refresh delay of 2s, got %v", cfg.DemoRefreshDelay())
	}
	if cfg.RecentCount() != 5 {
		t.Fatalf("expected default recent limit of 5, got %d", cfg.RecentCount())
	}

	invalidJSON := writeConfig(t, dir, "invalid.json", `{ "apiBaseURL": `)
	if _, err := Load(invalidJSON); err == nil {
		t.Fatal("Load() with invalid JSON should have failed")
	}

	badURL := writeConfig(t, dir, "badurl.json", `{ "apiBaseURL": "ftp://eval.local" }`)
	if _, err := Load(badURL); err == nil {
		t.Fatal("Load() with a non-http base URL should have failed")
	}

	if _, err := Load(filepath.Join(dir, "nonexistent.json")); err == nil {
		t.Fatal("Load() with nonexistent file should have failed")
	}
}

func TestLoadDefaultPathFallsBackToLegacy(t *testing.T) {
	tempDir := t.TempDir()
	writeConfig(t, tempDir, "config.json", `{"apiBaseURL": "https://legacy.example/api/v1"}`)

	oldCwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldCwd) })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.BaseURL() != "https://legacy.example/api/v1" {
		t.Fatalf("expected legacy config to load, got %s", cfg.BaseURL())
	}
	if cfg.ConfigPath != legacyConfigPath {
		t.Fatalf("expected legacy config path, got %s", cfg.ConfigPath)
	}
}

func TestZeroValueAccessorsUseDefaults(t *testing.T) {
	var cfg Config
	if cfg.BaseURL() != DefaultAPIBaseURL {
		t.Fatalf("expected default base URL, got %s", cfg.BaseURL())
	}
	if cfg.ListenAddress() != ":8080" {
		t.Fatalf("expected default listen address, got %s", cfg.ListenAddress())
	}
	if cfg.LogFilePath() != "evalboard.log" {
		t.Fatalf("expected default log file, got %s", cfg.LogFilePath())
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("zero config should validate against defaults: %v", err)
	}
}

func TestShowConfig(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.Debug = true
	ShowConfig(&buf, "config/config.json", &cfg, Config{})

	out := buf.String()
	for _, want := range []string{
		"Config file: config/config.json",
		"API Base URL:    " + DefaultAPIBaseURL,
		"Poll Interval:   10s",
		"Debug:           true",
		"APIBaseURL",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got %s", want, out)
		}
	}

	buf.Reset()
	ShowConfig(&buf, "", nil, Config{JSONMode: true})
	if !strings.Contains(buf.String(), "No config file loaded") || !strings.Contains(buf.String(), "JSON Mode:       true") {
		t.Fatalf("expected fallback output, got %s", buf.String())
	}
}
