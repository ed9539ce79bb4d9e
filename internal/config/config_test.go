package config

import (
	"os"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.General.Currency != "USD" {
		t.Errorf("Currency = %q, want USD", cfg.General.Currency)
	}
	if cfg.Appearance.Theme != "flexoki-dark" {
		t.Errorf("Theme = %q, want flexoki-dark", cfg.Appearance.Theme)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.API.BaseURL = "https://finance.example.com/api"
	cfg.General.Currency = "EUR"

	if err := Save(cfg); err != nil {
		t.Fatal(err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}

	loaded, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.API.BaseURL != cfg.API.BaseURL {
		t.Errorf("BaseURL = %q, want %q", loaded.API.BaseURL, cfg.API.BaseURL)
	}
	if loaded.General.Currency != "EUR" {
		t.Errorf("Currency = %q, want EUR", loaded.General.Currency)
	}
}

func TestBaseURL_EnvOverridesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.API.BaseURL = "http://from-config:5000/api"

	if err := os.Unsetenv("MONETA_API_URL"); err != nil {
		t.Fatal(err)
	}
	if got := BaseURL(cfg); got != "http://from-config:5000/api" {
		t.Errorf("BaseURL = %q, want config value", got)
	}

	t.Setenv("MONETA_API_URL", "http://from-env:5000/api")
	if got := BaseURL(cfg); got != "http://from-env:5000/api" {
		t.Errorf("BaseURL = %q, want env value", got)
	}
}
