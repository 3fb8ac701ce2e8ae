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


package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/poiesic/sathi"
	"github.com/poiesic/sathi/config"
	"github.com/poiesic/sathi/locale"
	"github.com/urfave/cli/v2"
)

const configKey = "config"

func main() {
	// Flags read SATHI_* variables at parse time, so .env must load first
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal(err)
	}

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:     "sathi",
		Usage:    "Campus knowledge base assistant",
		Metadata: map[string]any{},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error); overrides the config file",
				EnvVars: []string{"SATHI_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML config file",
				Value:   config.DefaultConfigPath(),
				EnvVars: []string{"SATHI_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory; overrides data_dir",
				EnvVars: []string{"SATHI_DB"},
			},
			&cli.StringFlag{
				Name:    "lang",
				Usage:   "Message language (en, es, fr, de, hi, zh); overrides the config file",
				EnvVars: []string{"SATHI_LANG"},
			},
			&cli.StringFlag{
				Name:    "username",
				Aliases: []string{"u"},
				Usage:   "Account username; prompted for when needed and not set",
				EnvVars: []string{"SATHI_USERNAME"},
			},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "Account password; prompted for when needed and not set",
				EnvVars: []string{"SATHI_PASSWORD"},
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "seed",
				Usage:  "Load the sample campus entries into an empty knowledge base (admin)",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Insert the sample entries even when the knowledge base is not empty",
					},
				},
			},
			{
				Name:      "ask",
				Usage:     "Ask the assistant a question",
				ArgsUsage: "<question>",
				Action:    askCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "explain",
						Usage: "Show how every entry scored; the question is not recorded",
					},
				},
			},
			{
				Name:   "chat",
				Usage:  "Start an interactive chat session",
				Action: chatCommand,
			},
			{
				Name:      "batch",
				Usage:     "Answer one question per line from a file, or stdin when omitted",
				ArgsUsage: "[file]",
				Action:    batchCommand,
			},
			{
				Name:   "history",
				Usage:  "Show your chat transcript",
				Action: historyCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "recent",
						Usage: "Show the N most recent messages from every user instead (admin)",
					},
				},
			},
			{
				Name:  "entries",
				Usage: "Manage knowledge base entries",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List entries in collection order",
						Action: entriesListCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "category",
								Usage: "Only show circular, notice or faq entries",
							},
						},
					},
					{
						Name:   "add",
						Usage:  "Add an entry (admin)",
						Action: entriesAddCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "title", Usage: "Entry title", Required: true},
							&cli.StringFlag{Name: "content", Usage: "Entry content", Required: true},
							&cli.StringFlag{Name: "category", Usage: "circular, notice or faq", Value: "faq"},
						},
					},
					{
						Name:      "update",
						Usage:     "Change fields of an entry (admin)",
						ArgsUsage: "<id>",
						Action:    entriesUpdateCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "title", Usage: "New title"},
							&cli.StringFlag{Name: "content", Usage: "New content"},
							&cli.StringFlag{Name: "category", Usage: "New category"},
						},
					},
					{
						Name:      "delete",
						Usage:     "Delete entries (admin)",
						ArgsUsage: "<id>...",
						Action:    entriesDeleteCommand,
					},
				},
			},
			{
				Name:      "import",
				Usage:     "Import entries from a YAML document, or stdin when omitted (admin)",
				ArgsUsage: "[file]",
				Action:    importCommand,
				Flags:     transferFlags(),
			},
			{
				Name:   "export",
				Usage:  "Export entries as a YAML document",
				Action: exportCommand,
				Flags: append(transferFlags(), &cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "Write to file instead of stdout",
				}),
			},
			{
				Name:   "accounts",
				Usage:  "List the configured accounts (admin)",
				Action: accountsCommand,
			},
			{
				Name:      "digest",
				Usage:     "Print the password digest used in the accounts config",
				ArgsUsage: "[password]",
				Action:    digestCommand,
			},
		},
	}
}

func transferFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "batch-size",
			Usage: "Number of entries to process in each batch",
			Value: 100,
		},
		&cli.IntFlag{
			Name:  "report-interval",
			Usage: "Report progress every N entries",
			Value: 100,
		},
		&cli.IntFlag{
			Name:  "max-retries",
			Usage: "Maximum retry attempts for failed writes",
			Value: 3,
		},
		&cli.DurationFlag{
			Name:  "retry-delay",
			Usage: "Base delay for exponential backoff",
			Value: 100 * time.Millisecond,
		},
	}
}

// setup loads the config file, applies flag overrides and installs the logger.
func setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	if c.IsSet("log-level") {
		if _, err := config.ParseLevel(c.String("log-level")); err != nil {
			return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", c.String("log-level"))
		}
		cfg.LogLevel = c.String("log-level")
	}

	if c.IsSet("lang") {
		if _, err := locale.Parse(c.String("lang")); err != nil {
			return err
		}
		cfg.Language = c.String("lang")
	}

	if c.IsSet("db") {
		cfg.DataDir = c.String("db")
	}

	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: cfg.Level(),
	}))
	slog.SetDefault(logger)

	c.App.Metadata[configKey] = cfg
	return nil
}

func loadedConfig(c *cli.Context) *config.Config {
	return c.App.Metadata[configKey].(*config.Config)
}

func openDatabase(c *cli.Context) (*sathi.Database, error) {
	cfg := loadedConfig(c)
	db, err := sathi.NewDatabase(cfg.DataPath(), sathi.WithConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func messages(c *cli.Context) locale.Messages {
	return locale.For(loadedConfig(c).Lang())
}
