package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("JWT_EXPIRY_HOURS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.JWTExpiry != 24*time.Hour {
		t.Errorf("JWTExpiry = %v, want 24h", cfg.JWTExpiry)
	}
	if cfg.AllowedOrigins != nil {
		t.Errorf("AllowedOrigins = %v, want nil", cfg.AllowedOrigins)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server_port: \"9000\"\nlog_level: debug\njwt_expiry_hours: 2\nallowed_origins:\n  - https://a.example\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SERVER_PORT", "")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("JWT_EXPIRY_HOURS", "")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerPort != "9000" {
		t.Errorf("ServerPort = %q, want 9000 from file", cfg.ServerPort)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want env override warn", cfg.LogLevel)
	}
	if cfg.JWTExpiry != 2*time.Hour {
		t.Errorf("JWTExpiry = %v, want 2h", cfg.JWTExpiry)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "https://a.example" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestParseOrigins(t *testing.T) {
	got := parseOrigins(" https://a.example , ,https://b.example")
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Errorf("parseOrigins = %v", got)
	}
}
