package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/sathi"
	"github.com/poiesic/sathi/core"
	"github.com/urfave/cli/v2"
)

// adminSession opens the database and logs in an admin.
func adminSession(c *cli.Context) (*sathi.Database, *core.User, error) {
	db, err := openDatabase(c)
	if err != nil {
		return nil, nil, err
	}
	user, err := login(c, db, bufio.NewReader(c.App.Reader), core.RoleAdmin)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, user, nil
}

func entriesListCommand(c *cli.Context) error {
	ctx := context.Background()

	var filter core.Category
	if name := c.String("category"); name != "" {
		category, err := core.ParseCategory(name)
		if err != nil {
			return err
		}
		filter = category
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := db.EntryRepository().ListEntries(ctx)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if filter != 0 && entry.Category != filter {
			continue
		}
		fmt.Fprintf(c.App.Writer, "%s  [%s] %s (updated %s)\n",
			entry.Id, entry.Category.Label(), entry.Title, entry.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func entriesAddCommand(c *cli.Context) error {
	ctx := context.Background()

	category, err := core.ParseCategory(c.String("category"))
	if err != nil {
		return err
	}

	db, user, err := adminSession(c)
	if err != nil {
		return err
	}
	defer db.Close()

	added, err := db.EntryRepository().AddEntries(ctx, core.EntryDraft{
		Title:    c.String("title"),
		Content:  unescapeContent(c.String("content")),
		Category: category,
	})
	if err != nil {
		return err
	}

	slog.Info("entry added", "id", added[0].Id, "by", user.Username)
	fmt.Fprintf(c.App.Writer, "Added %s\n", added[0].Id)
	return nil
}

func entriesUpdateCommand(c *cli.Context) error {
	ctx := context.Background()

	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("an entry id is required")
	}

	var patch core.EntryPatch
	if c.IsSet("title") {
		title := c.String("title")
		patch.Title = &title
	}
	if c.IsSet("content") {
		content := unescapeContent(c.String("content"))
		patch.Content = &content
	}
	if c.IsSet("category") {
		category, err := core.ParseCategory(c.String("category"))
		if err != nil {
			return err
		}
		patch.Category = &category
	}
	if patch.IsEmpty() {
		return fmt.Errorf("nothing to update: set --title, --content or --category")
	}

	db, user, err := adminSession(c)
	if err != nil {
		return err
	}
	defer db.Close()

	updated, err := db.EntryRepository().UpdateEntry(ctx, id, patch)
	if err != nil {
		return err
	}

	slog.Info("entry updated", "id", updated.Id, "by", user.Username)
	fmt.Fprintf(c.App.Writer, "Updated %s\n", updated.Id)
	return nil
}

func entriesDeleteCommand(c *cli.Context) error {
	ctx := context.Background()

	ids := c.Args().Slice()
	if len(ids) == 0 {
		return fmt.Errorf("at least one entry id is required")
	}

	db, user, err := adminSession(c)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.EntryRepository().DeleteEntries(ctx, ids...); err != nil {
		return err
	}

	slog.Info("entries deleted", "count", len(ids), "by", user.Username)
	fmt.Fprintf(c.App.Writer, "Deleted %d entries\n", len(ids))
	return nil
}

// unescapeContent turns a literal \n typed on the command line into a newline.
func unescapeContent(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
