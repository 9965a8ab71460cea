package evalboard

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwiater/evalboard/internal/logging"
	"github.com/spf13/viper"
)

func resetFlag(cmdFlag string) {
	flag := rootCmd.PersistentFlags().Lookup(cmdFlag)
	if flag == nil {
		return
	}
	_ = flag.Value.Set(flag.DefValue)
	flag.Changed = false
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func useConfigFile(t *testing.T, path string) {
	t.Helper()
	prevCfgFile := cfgFile
	cfgFile = path
	viper.SetConfigFile(path)
	t.Cleanup(func() {
		cfgFile = prevCfgFile
		viper.SetConfigFile(prevCfgFile)
		currentConfig = nil
	})
	t.Cleanup(func() { _ = logging.Close() })
}

func TestPersistentPreRunEUsesFlagValues(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "evalboard.log")
	configPath := writeTempConfig(t, `{"apiBaseURL": "http://file.example/api/v1", "recentLimit": 3}`)
	useConfigFile(t, configPath)

	for _, name := range []string{"debug", "jsonMode", "apiBaseURL", "timeout", "logFile"} {
		resetFlag(name)
	}
	_ = rootCmd.PersistentFlags().Set("debug", "true")
	_ = rootCmd.PersistentFlags().Set("jsonMode", "true")
	_ = rootCmd.PersistentFlags().Set("apiBaseURL", "http://flag.example:9000/api/v1")
	_ = rootCmd.PersistentFlags().Set("timeout", "25")
	_ = rootCmd.PersistentFlags().Set("logFile", logPath)

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err != nil {
		t.Fatalf("PersistentPreRunE error: %v", err)
	}

	if currentConfig == nil || currentConfig.ConfigPath != configPath {
		t.Fatalf("expected config loaded with path %s", configPath)
	}
	if !currentConfig.Debug || !currentConfig.JSONMode {
		t.Fatalf("expected flag values to flow into config: %+v", currentConfig)
	}
	if currentConfig.APIBaseURL != "http://flag.example:9000/api/v1" {
		t.Fatalf("expected flag to override file apiBaseURL, got %s", currentConfig.APIBaseURL)
	}
	if currentConfig.TimeoutSeconds != 25 {
		t.Fatalf("expected timeout 25, got %d", currentConfig.TimeoutSeconds)
	}
	if currentConfig.LogFile != logPath {
		t.Fatalf("expected logFile %s, got %s", logPath, currentConfig.LogFile)
	}
	if currentConfig.RecentLimit != 3 {
		t.Fatalf("expected recentLimit from file, got %d", currentConfig.RecentLimit)
	}
	if _, err := os.Stat(logPath); err != nil {
		t.Fatalf("expected log file created: %v", err)
	}
}

func TestPersistentPreRunEUsesFileValues(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "evalboard.log")
	configPath := writeTempConfig(t, `{"apiBaseURL": "http://file.example/api/v1", "pollInterval": 30}`)
	useConfigFile(t, configPath)

	for _, name := range []string{"debug", "jsonMode", "apiBaseURL", "timeout", "logFile"} {
		resetFlag(name)
	}
	_ = rootCmd.PersistentFlags().Set("logFile", logPath)

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err != nil {
		t.Fatalf("PersistentPreRunE error: %v", err)
	}
	if currentConfig.APIBaseURL != "http://file.example/api/v1" {
		t.Fatalf("expected file apiBaseURL, got %s", currentConfig.APIBaseURL)
	}
	if currentConfig.PollIntervalSeconds != 30 {
		t.Fatalf("expected pollInterval 30, got %d", currentConfig.PollIntervalSeconds)
	}
	if currentConfig.Debug {
		t.Fatalf("expected debug off by default")
	}
}

func TestPersistentPreRunEInvalidBaseURL(t *testing.T) {
	configPath := writeTempConfig(t, "{}")
	useConfigFile(t, configPath)

	for _, name := range []string{"apiBaseURL", "logFile"} {
		resetFlag(name)
	}
	_ = rootCmd.PersistentFlags().Set("apiBaseURL", "not a url")
	_ = rootCmd.PersistentFlags().Set("logFile", filepath.Join(t.TempDir(), "evalboard.log"))

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err == nil {
		t.Fatalf("expected error for invalid apiBaseURL")
	}
}

func TestShowConfigCommandOutput(t *testing.T) {
	configPath := writeTempConfig(t, "{}")
	useConfigFile(t, configPath)

	for _, name := range []string{"debug", "jsonMode", "apiBaseURL", "timeout", "logFile"} {
		resetFlag(name)
	}

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"--config", configPath, "--logFile", filepath.Join(t.TempDir(), "evalboard.log"), "--debug", "show", "config"})
	t.Cleanup(func() { rootCmd.SetArgs([]string{}) })
	_, err := rootCmd.ExecuteC()
	if err != nil {
		t.Fatalf("ExecuteC error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Config file: "+configPath) {
		t.Fatalf("expected config file path in output, got %s", out)
	}
	if !strings.Contains(out, "Debug:           true") {
		t.Fatalf("expected debug in output, got %s", out)
	}
	if !strings.Contains(out, "API Base URL:    http://localhost:8000/api/v1") {
		t.Fatalf("expected default base URL in output, got %s", out)
	}
}
