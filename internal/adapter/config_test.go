package adapter

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nalgeon/be"
)

func TestLoadConfigDefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadConfigFrom(t.TempDir())
	be.Err(t, err, nil)
	be.Equal(t, cfg.Server.Timeout, 30*time.Second)
	be.Equal(t, cfg.Server.MaxRetries, 3)
	be.Equal(t, cfg.Cache.SettingsTTL, 5*time.Minute)
	be.Equal(t, cfg.UI.PageSize, 20)
	be.True(t, !cfg.IsConfigured())
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Server.URL = "https://crm.example.org"
	cfg.Server.APIKey = "key_123"
	cfg.Server.Timeout = 10 * time.Second
	cfg.Cache.ListTTL = 2 * time.Minute
	cfg.Logging.Level = "DEBUG"

	be.Err(t, SaveConfigTo(cfg, dir), nil)

	info, err := os.Stat(filepath.Join(dir, "config.yaml"))
	be.Err(t, err, nil)
	be.Equal(t, info.Mode().Perm(), os.FileMode(0o600))

	got, err := LoadConfigFrom(dir)
	be.Err(t, err, nil)
	be.Equal(t, got.Server.URL, "https://crm.example.org")
	be.Equal(t, got.Server.APIKey, "key_123")
	be.Equal(t, got.Server.Timeout, 10*time.Second)
	be.Equal(t, got.Cache.ListTTL, 2*time.Minute)
	be.Equal(t, got.Logging.Level, "DEBUG")
	be.True(t, got.IsConfigured())
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "server:\n  url: https://file.example.org/\n  api_key: from-file\n"
	be.Err(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600), nil)

	t.Setenv("KINDRED_SERVER_API_KEY", "from-env")
	t.Setenv("KINDRED_UI_PAGE_SIZE", "50")

	cfg, err := LoadConfigFrom(dir)
	be.Err(t, err, nil)
	be.Equal(t, cfg.Server.URL, "https://file.example.org")
	be.Equal(t, cfg.Server.APIKey, "from-env")
	be.Equal(t, cfg.UI.PageSize, 50)
}

func TestLoadConfigRejectsBrokenFile(t *testing.T) {
	dir := t.TempDir()
	be.Err(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [unterminated"), 0o600), nil)
	_, err := LoadConfigFrom(dir)
	be.Err(t, err)
}

func TestClearCache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	be.Err(t, os.MkdirAll(filepath.Join(dir, "abc"), 0o755), nil)
	be.Err(t, ClearCache(dir), nil)
	_, err := os.Stat(dir)
	be.True(t, os.IsNotExist(err))
	be.Err(t, ClearCache(dir), nil)
}

func TestClearCacheMemoryOnlyLeavesDiskAlone(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("LOCALAPPDATA", home)
	def := defaultCachePath()
	be.Err(t, os.MkdirAll(def, 0o755), nil)

	be.Err(t, ClearCache(""), nil)
	_, err := os.Stat(def)
	be.Err(t, err, nil)
}

func TestLogging(t *testing.T) {
	be.Equal(t, parseLogLevel("debug"), slog.LevelDebug)
	be.Equal(t, parseLogLevel("WARNING"), slog.LevelWarn)
	be.Equal(t, parseLogLevel("bogus"), slog.LevelInfo)

	var buf bytes.Buffer
	logger := NewLogger(&buf, "WARN")
	logger.Info("hidden")
	logger.Warn("failed to fetch contacts", "error", "boom")
	out := buf.String()
	be.True(t, !strings.Contains(out, "hidden"))
	be.True(t, strings.Contains(out, `"msg":"failed to fetch contacts"`))
	be.True(t, strings.Contains(out, `"app":"kindred"`))

	dir := t.TempDir()
	fileLogger, closer, err := SetupLogger(&LoggingConfig{File: filepath.Join(dir, "logs", "k.log"), Level: "INFO"})
	be.Err(t, err, nil)
	fileLogger.Info("started")
	be.Err(t, closer.Close(), nil)
	data, err := os.ReadFile(filepath.Join(dir, "logs", "k.log"))
	be.Err(t, err, nil)
	be.True(t, strings.Contains(string(data), "started"))

	NullLogger().Error("discarded")
}
