package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Port)
	}
	if cfg.DBPath != "snapspend.db" {
		t.Errorf("db path = %q", cfg.DBPath)
	}
	if cfg.Currency != "USD" {
		t.Errorf("currency = %q", cfg.Currency)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SNAPSPEND_PORT", "9090")
	t.Setenv("SNAPSPEND_DB", "/tmp/alt.db")
	t.Setenv("SNAPSPEND_CURRENCY", "GBP")

	cfg := Load()
	if cfg.Port != 9090 || cfg.DBPath != "/tmp/alt.db" || cfg.Currency != "GBP" {
		t.Errorf("config = %+v", cfg)
	}
}

func TestLoadIgnoresBadInt(t *testing.T) {
	t.Setenv("SNAPSPEND_PORT", "not-a-port")
	if cfg := Load(); cfg.Port != 8080 {
		t.Errorf("port = %d, want fallback 8080", cfg.Port)
	}
}
