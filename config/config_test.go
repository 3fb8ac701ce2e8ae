package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/sathi/auth"
	"github.com/poiesic/sathi/core"
	"github.com/poiesic/sathi/locale"
	"github.com/poiesic/sathi/search"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadDefaults()
	if err != nil {
		t.Fatalf("loadDefaults: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected log_level info, got %q", cfg.LogLevel)
	}
	if cfg.Lang() != locale.English {
		t.Errorf("expected english, got %s", cfg.Lang())
	}
	if !cfg.SeedOnOpen {
		t.Error("expected seed_on_open to default to true")
	}
	if err := validate(cfg); err != nil {
		t.Errorf("embedded defaults should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	content := `language: es
log_level: debug
synonyms:
  - keyword: Leave
    phrases: [vacation, time off]
accounts:
  - username: dean
    password_digest: ` + auth.Digest("s3cret") + `
    role: admin
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Lang() != locale.Spanish {
		t.Errorf("expected spanish, got %s", cfg.Lang())
	}
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.Level())
	}
	// Keys absent from the file keep their defaults
	if !cfg.SeedOnOpen {
		t.Error("expected seed_on_open default to survive")
	}
	table := cfg.SynonymTable()
	if len(table) != 1 || table[0].Keyword != "Leave" {
		t.Errorf("unexpected synonyms: %v", table)
	}
	accounts, err := cfg.AuthAccounts()
	if err != nil {
		t.Fatalf("AuthAccounts: %v", err)
	}
	if len(accounts) != 1 || accounts[0].Role != core.RoleAdmin {
		t.Errorf("unexpected accounts: %v", accounts)
	}
}

func TestLoadNonexistentWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sub", "config.yaml")

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected defaults, got log_level %q", cfg.LogLevel)
	}
	if _, err := os.Stat(cfgPath); err != nil {
		t.Errorf("expected default config to be written: %v", err)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "language: [unterminated"},
		{"bad level", "log_level: loud"},
		{"bad language", "language: pt"},
		{"negative pool", "pool_size: -1"},
		{"empty keyword", "synonyms:\n  - keyword: \"\"\n    phrases: [x]"},
		{"bad role", "accounts:\n  - username: x\n    password_digest: " + auth.Digest("x") + "\n    role: root"},
		{"bad digest", "accounts:\n  - username: x\n    password_digest: nothex\n    role: user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfgPath := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(cfgPath, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("writing config: %v", err)
			}
			if _, err := Load(cfgPath); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDefaultsFallBack(t *testing.T) {
	cfg := &Config{}
	if got := cfg.SynonymTable(); len(got) != len(search.DefaultSynonyms()) {
		t.Errorf("expected built-in synonyms, got %d rows", len(got))
	}
	accounts, err := cfg.AuthAccounts()
	if err != nil {
		t.Fatalf("AuthAccounts: %v", err)
	}
	if len(accounts) != 2 {
		t.Errorf("expected demo accounts, got %d", len(accounts))
	}
	if cfg.DataPath() != DefaultDataPath() {
		t.Errorf("expected xdg data path, got %s", cfg.DataPath())
	}
	cfg.DataDir = "/tmp/kb"
	if cfg.DataPath() != "/tmp/kb" {
		t.Errorf("expected explicit data dir, got %s", cfg.DataPath())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
