package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/poiesic/sathi/core"
	"github.com/poiesic/sathi/transfer"
	"github.com/urfave/cli/v2"
)

func transferConfig(c *cli.Context) (*transfer.Config, error) {
	cfg := &transfer.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}

	// Validate config
	if cfg.BatchSize <= 0 {
		return nil, fmt.Errorf("batch-size must be greater than 0")
	}
	if cfg.ReportInterval <= 0 {
		return nil, fmt.Errorf("report-interval must be greater than 0")
	}
	if cfg.MaxRetries <= 0 {
		return nil, fmt.Errorf("max-retries must be greater than 0")
	}
	return cfg, nil
}

func importCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := transferConfig(c)
	if err != nil {
		return err
	}

	// A document on stdin leaves nothing to prompt from, so credentials must come from flags
	var doc []byte
	prompts := bufio.NewReader(c.App.Reader)
	path := c.Args().First()
	if path == "" || path == "-" {
		doc, err = io.ReadAll(c.App.Reader)
		prompts = bufio.NewReader(bytes.NewReader(nil))
	} else {
		doc, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read import: %w", err)
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := login(c, db, prompts, core.RoleAdmin); err != nil {
		return err
	}

	n, err := db.NewImporter(cfg, c.App.ErrWriter).Run(ctx, bytes.NewReader(doc))
	if err != nil {
		return fmt.Errorf("import failed after %d entries: %w", n, err)
	}

	fmt.Fprintf(c.App.Writer, "Imported %d entries\n", n)
	return nil
}

func exportCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := transferConfig(c)
	if err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	out := c.App.Writer
	if path := c.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	if _, err := db.NewExporter(cfg, c.App.ErrWriter).Run(ctx, out); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	return nil
}
