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


package sathi

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/poiesic/sathi/assistant"
	"github.com/poiesic/sathi/auth"
	"github.com/poiesic/sathi/config"
	"github.com/poiesic/sathi/search"
	"github.com/poiesic/sathi/seed"
	"github.com/poiesic/sathi/storage"
	"github.com/poiesic/sathi/storage/badger"
	"github.com/poiesic/sathi/transfer"
)

type Database struct {
	backend   *badger.Backend
	entryRepo storage.EntryRepository
	chatRepo  storage.ChatRepository
	directory *auth.Directory
	matcher   *search.Matcher
	config    *config.Config
	logger    *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	config   *config.Config
	inMemory bool
	logger   *slog.Logger
}

// WithConfig supplies the configuration. Default is the embedded defaults.
func WithConfig(cfg *config.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.config = cfg
	}
}

// WithInMemory keeps the knowledge base in memory. The path is ignored.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		o.logger = logger
	}
}

// NewDatabase opens the knowledge base at filePath.
// An empty filePath uses the configured data directory.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}
	if options.config == nil {
		defaults, err := config.Defaults()
		if err != nil {
			return nil, err
		}
		options.config = defaults
	}
	cfg := options.config

	// Build everything that can fail without touching disk first
	accounts, err := cfg.AuthAccounts()
	if err != nil {
		return nil, err
	}
	directory, err := auth.NewDirectory(accounts, auth.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}
	matcher, err := search.NewMatcher(search.WithSynonyms(cfg.SynonymTable()), search.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}

	if filePath == "" && !options.inMemory {
		filePath = cfg.DataPath()
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	// Create entry repository
	entryRepo, err := badger.NewEntryRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create chat repository
	chatRepo, err := badger.NewChatRepository(backend)
	if err != nil {
		entryRepo.Close()
		backend.Close()
		return nil, err
	}

	db := &Database{
		backend:   backend,
		entryRepo: entryRepo,
		chatRepo:  chatRepo,
		directory: directory,
		matcher:   matcher,
		config:    cfg,
		logger:    options.logger,
	}

	if cfg.SeedOnOpen {
		if _, err := seed.Apply(context.Background(), entryRepo, seed.WithLogger(options.logger)); err != nil {
			db.Close()
			return nil, fmt.Errorf("seeding knowledge base: %w", err)
		}
	}

	return db, nil
}

func (db *Database) Close() error {
	// Close repositories
	if err := db.chatRepo.Close(); err != nil {
		db.logger.Error("error closing chat repository", "err", err)
		return err
	}
	if err := db.entryRepo.Close(); err != nil {
		db.logger.Error("error closing entry repository", "err", err)
		return err
	}

	// Close backend
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) EntryRepository() storage.EntryRepository {
	return db.entryRepo
}

func (db *Database) ChatRepository() storage.ChatRepository {
	return db.chatRepo
}

func (db *Database) Directory() *auth.Directory {
	return db.directory
}

func (db *Database) Matcher() *search.Matcher {
	return db.matcher
}

func (db *Database) Config() *config.Config {
	return db.config
}

// NewAssistant creates an assistant using the configured matcher, language
// and pool size. opts are applied last and may override them.
func (db *Database) NewAssistant(opts ...assistant.Option) (*assistant.Assistant, error) {
	defaults := []assistant.Option{
		assistant.WithMatcher(db.matcher),
		assistant.WithLanguage(db.config.Lang()),
		assistant.WithLogger(db.logger),
	}
	if db.config.PoolSize > 0 {
		defaults = append(defaults, assistant.WithPoolSize(db.config.PoolSize))
	}
	return assistant.NewAssistant(db.entryRepo, db.chatRepo, append(defaults, opts...)...)
}

func (db *Database) NewImporter(cfg *transfer.Config, progress io.Writer) *transfer.Importer {
	return transfer.NewImporter(db.entryRepo, cfg, progress)
}

func (db *Database) NewExporter(cfg *transfer.Config, progress io.Writer) *transfer.Exporter {
	return transfer.NewExporter(db.entryRepo, cfg, progress)
}

// Seed loads the sample entries; see seed.Apply.
func (db *Database) Seed(ctx context.Context, opts ...seed.Option) (int, error) {
	return seed.Apply(ctx, db.entryRepo, append([]seed.Option{seed.WithLogger(db.logger)}, opts...)...)
}
