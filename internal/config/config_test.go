package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":3000" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.LoadTimeout != 10*time.Second {
		t.Errorf("LoadTimeout = %v", cfg.LoadTimeout)
	}
	if cfg.ShareHandle != "luis_acervantes" {
		t.Errorf("ShareHandle = %q", cfg.ShareHandle)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SITE_NAME", "Test Blog")
	t.Setenv("SITE_URL", "https://blog.test")
	t.Setenv("DATABASE_PATH", "/tmp/archive.db")
	t.Setenv("LOAD_TIMEOUT", "3")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	site := cfg.Site()
	if site.Name != "Test Blog" || site.URL != "https://blog.test" {
		t.Errorf("site = %+v", site)
	}
	if site.DatabasePath != "/tmp/archive.db" {
		t.Errorf("DatabasePath = %q", site.DatabasePath)
	}
	if site.LoadTimeout != 3*time.Second {
		t.Errorf("LoadTimeout = %v", site.LoadTimeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoadRejectsNonPositiveTimeout(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LOAD_TIMEOUT", "0")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero timeout")
	}
}
