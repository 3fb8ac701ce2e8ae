// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package config

import (
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/poiesic/sathi/auth"
	"github.com/poiesic/sathi/core"
	"github.com/poiesic/sathi/locale"
	"github.com/poiesic/sathi/search"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

const appName = "sathi"

type Synonym struct {
	Keyword string   `yaml:"keyword"`
	Phrases []string `yaml:"phrases"`
}

type Account struct {
	Id             string `yaml:"id,omitempty"`
	Username       string `yaml:"username"`
	PasswordDigest string `yaml:"password_digest"`
	Role           string `yaml:"role"`
}

type Config struct {
	DataDir    string    `yaml:"data_dir"`
	LogLevel   string    `yaml:"log_level"`
	Language   string    `yaml:"language"`
	PoolSize   int       `yaml:"pool_size"`
	SeedOnOpen bool      `yaml:"seed_on_open"`
	Synonyms   []Synonym `yaml:"synonyms,omitempty"`
	Accounts   []Account `yaml:"accounts,omitempty"`
}

// DataPath returns the knowledge base directory.
func (c *Config) DataPath() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return DefaultDataPath()
}

// Level returns the configured slog level, defaulting to info.
func (c *Config) Level() slog.Level {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// Lang returns the configured language, defaulting to English.
func (c *Config) Lang() locale.Language {
	lang, _ := locale.Parse(c.Language)
	return lang
}

// SynonymTable returns the configured synonyms, or the built-in table when none are set.
func (c *Config) SynonymTable() search.SynonymTable {
	if len(c.Synonyms) == 0 {
		return search.DefaultSynonyms()
	}
	table := make(search.SynonymTable, len(c.Synonyms))
	for i, s := range c.Synonyms {
		table[i] = search.Synonym{Keyword: s.Keyword, Phrases: s.Phrases}
	}
	return table
}

// AuthAccounts returns the configured accounts, or the demo accounts when none are set.
func (c *Config) AuthAccounts() ([]auth.Account, error) {
	if len(c.Accounts) == 0 {
		return auth.DefaultAccounts(), nil
	}
	accounts := make([]auth.Account, len(c.Accounts))
	for i, a := range c.Accounts {
		role, err := core.ParseRole(a.Role)
		if err != nil {
			return nil, fmt.Errorf("account %q: %w", a.Username, err)
		}
		accounts[i] = auth.Account{Id: a.Id, Username: a.Username, Digest: a.PasswordDigest, Role: role}
	}
	return accounts, nil
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

func DefaultDataPath() string {
	return filepath.Join(xdg.DataHome, appName, "db")
}

// ParseLevel converts debug, info, warn or error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Defaults returns the embedded default configuration.
func Defaults() (*Config, error) {
	return loadDefaults()
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the configuration at path, layered over the embedded defaults.
// An empty path uses DefaultConfigPath. A missing file is created from the
// defaults when possible.
func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Non-fatal: embedded defaults still apply
			if err := writeDefaults(path); err != nil {
				slog.Debug("could not write default config", "path", path, "err", err)
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := *defaults
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return err
	}
	if _, err := locale.Parse(cfg.Language); err != nil {
		return err
	}
	if cfg.PoolSize < 0 {
		return fmt.Errorf("pool_size must not be negative, got %d", cfg.PoolSize)
	}
	if len(cfg.Synonyms) > 0 {
		if _, err := cfg.SynonymTable().Normalize(); err != nil {
			return err
		}
	}
	accounts, err := cfg.AuthAccounts()
	if err != nil {
		return err
	}
	if _, err := auth.NewDirectory(accounts); err != nil {
		return err
	}
	return nil
}
