package main

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poiesic/sathi/auth"
	"github.com/poiesic/sathi/locale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

type testEnv struct {
	configPath string
	dbPath     string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("log_level: error\n"), 0o644))
	return testEnv{configPath: configPath, dbPath: filepath.Join(dir, "db")}
}

// run executes the CLI with stdin as input and returns what it wrote to stdout.
func (e testEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	app := newApp()
	var out, errOut bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &errOut
	app.Reader = strings.NewReader(stdin)

	full := append([]string{"sathi", "--config", e.configPath, "--db", e.dbPath}, args...)
	err := app.Run(full)
	return out.String(), err
}

func asUser(args ...string) []string {
	return append([]string{"--username", "user", "--password", "user123"}, args...)
}

func asAdmin(args ...string) []string {
	return append([]string{"--username", "admin", "--password", "admin123"}, args...)
}

func TestAskCommand(t *testing.T) {
	env := newTestEnv(t)

	t.Run("answers from seeded entries", func(t *testing.T) {
		out, err := env.run(t, "", asUser("ask", "What", "are", "the", "office", "hours?")...)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "Notice: Office Hours\n\n"), out)
	})

	t.Run("prompts for credentials", func(t *testing.T) {
		out, err := env.run(t, "user\nuser123\n", "ask", "How do I apply for leave?")
		require.NoError(t, err)
		assert.Contains(t, out, "FAQ: How to Apply for Leave")
	})

	t.Run("no match uses fallback", func(t *testing.T) {
		out, err := env.run(t, "", asUser("--lang", "es", "ask", "xyzxyz nonsense")...)
		require.NoError(t, err)
		assert.Equal(t, locale.For(locale.Spanish).NoMatch+"\n", out)
	})

	t.Run("explain prints scores", func(t *testing.T) {
		out, err := env.run(t, "", "ask", "--explain", "office hours")
		require.NoError(t, err)
		assert.Contains(t, out, "TITLE")
		assert.Contains(t, out, "Best: Office Hours")
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := env.run(t, "", "--username", "user", "--password", "nope", "ask", "office hours")
		require.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("question is required", func(t *testing.T) {
		_, err := env.run(t, "", asUser("ask")...)
		assert.Error(t, err)
	})
}

func TestEntriesCommands(t *testing.T) {
	env := newTestEnv(t)

	t.Run("users cannot add", func(t *testing.T) {
		_, err := env.run(t, "", asUser("entries", "add", "--title", "Library", "--content", "Open late")...)
		assert.ErrorIs(t, err, auth.ErrForbidden)
	})

	out, err := env.run(t, "", asAdmin("entries", "add",
		"--title", "Library Hours", "--content", `Open 8 to 8\nClosed Sundays`, "--category", "notice")...)
	require.NoError(t, err)
	id := strings.TrimPrefix(strings.TrimSpace(out), "Added ")
	require.NotEmpty(t, id)

	t.Run("list shows the new entry last", func(t *testing.T) {
		out, err := env.run(t, "", "entries", "list")
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 11)
		assert.Contains(t, lines[10], "[Notice] Library Hours")
	})

	t.Run("list filters by category", func(t *testing.T) {
		out, err := env.run(t, "", "entries", "list", "--category", "circular")
		require.NoError(t, err)
		assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)
	})

	t.Run("update", func(t *testing.T) {
		_, err := env.run(t, "", asAdmin("entries", "update", "--title", "Library Opening Hours", id)...)
		require.NoError(t, err)

		out, err := env.run(t, "", asUser("ask", "library opening hours")...)
		require.NoError(t, err)
		assert.Equal(t, "Notice: Library Opening Hours\n\nOpen 8 to 8\nClosed Sundays\n", out)
	})

	t.Run("update needs a field", func(t *testing.T) {
		_, err := env.run(t, "", asAdmin("entries", "update", id)...)
		assert.Error(t, err)
	})

	t.Run("delete", func(t *testing.T) {
		_, err := env.run(t, "", asAdmin("entries", "delete", id)...)
		require.NoError(t, err)

		out, err := env.run(t, "", "entries", "list")
		require.NoError(t, err)
		assert.NotContains(t, out, "Library")

		_, err = env.run(t, "", asAdmin("entries", "delete", id)...)
		assert.Error(t, err)
	})
}

func TestHistoryCommand(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "", asUser("ask", "I forgot my password")...)
	require.NoError(t, err)

	out, err := env.run(t, "", asUser("history")...)
	require.NoError(t, err)
	assert.Contains(t, out, "user 2: I forgot my password")
	assert.Contains(t, out, "assistant: FAQ: Password Reset")

	t.Run("other users see nothing", func(t *testing.T) {
		out, err := env.run(t, "", asAdmin("history")...)
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("recent requires admin", func(t *testing.T) {
		_, err := env.run(t, "", asUser("history", "--recent", "5")...)
		assert.ErrorIs(t, err, auth.ErrForbidden)

		out, err := env.run(t, "", asAdmin("history", "--recent", "1")...)
		require.NoError(t, err)
		assert.Contains(t, out, "assistant: FAQ: Password Reset")
	})
}

func TestBatchCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "What are the office hours?\n\nI forgot my password\n", "batch")
	require.NoError(t, err)

	blocks := strings.Split(strings.TrimSpace(out), "\n\nQ: ")
	require.Len(t, blocks, 2)
	assert.Contains(t, blocks[0], "Q: What are the office hours?\nNotice: Office Hours")
	assert.True(t, strings.HasPrefix(blocks[1], "I forgot my password\nFAQ: Password Reset"), blocks[1])
}

func TestChatCommand(t *testing.T) {
	env := newTestEnv(t)

	stdin := "user\nuser123\nWhat are the office hours?\n\n/history\nexit\n"
	out, err := env.run(t, stdin, "chat")
	require.NoError(t, err)

	msgs := locale.For(locale.English)
	assert.Contains(t, out, msgs.Title)
	assert.Contains(t, out, msgs.WelcomeFor("user"))
	assert.Contains(t, out, msgs.ChatHint)
	assert.Contains(t, out, "Notice: Office Hours")
	assert.Contains(t, out, "What are the office hours?")
	assert.True(t, strings.HasSuffix(out, msgs.Goodbye+"\n"), out)

	t.Run("ends at end of input", func(t *testing.T) {
		out, err := env.run(t, "", asUser("chat")...)
		require.NoError(t, err)
		assert.Contains(t, out, msgs.Goodbye)
	})

	t.Run("localized hint", func(t *testing.T) {
		out, err := env.run(t, "exit\n", asUser("--lang", "fr", "chat")...)
		require.NoError(t, err)
		assert.Contains(t, out, locale.For(locale.French).ChatHint)
		assert.NotContains(t, out, msgs.ChatHint)
	})

	t.Run("bad login", func(t *testing.T) {
		_, err := env.run(t, "user\nwrong\n", "chat")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestImportExportCommands(t *testing.T) {
	source := newTestEnv(t)
	exportPath := filepath.Join(t.TempDir(), "kb.yaml")

	_, err := source.run(t, "", "export", "--output", exportPath)
	require.NoError(t, err)

	doc, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "entries:")
	assert.Contains(t, string(doc), "title: Office Hours")

	target := newTestEnv(t)
	require.NoError(t, os.WriteFile(target.configPath, []byte("log_level: error\nseed_on_open: false\n"), 0o644))

	t.Run("import requires admin", func(t *testing.T) {
		_, err := target.run(t, "", asUser("import", exportPath)...)
		assert.ErrorIs(t, err, auth.ErrForbidden)
	})

	out, err := target.run(t, "", asAdmin("import", exportPath)...)
	require.NoError(t, err)
	assert.Equal(t, "Imported 10 entries\n", out)

	out, err = target.run(t, string(doc), asAdmin("import", "-")...)
	require.NoError(t, err)
	assert.Equal(t, "Imported 10 entries\n", out)

	out, err = target.run(t, "", "entries", "list")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 20)

	t.Run("export to stdout", func(t *testing.T) {
		out, err := source.run(t, "", "export")
		require.NoError(t, err)
		assert.Equal(t, string(doc), out)
	})

	t.Run("invalid batch size", func(t *testing.T) {
		_, err := source.run(t, "", "export", "--batch-size", "0")
		assert.Error(t, err)
	})
}

func TestSeedCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "", asAdmin("seed")...)
	require.NoError(t, err)
	assert.Equal(t, "Seeded 0 entries\n", out)

	out, err = env.run(t, "", asAdmin("seed", "--force")...)
	require.NoError(t, err)
	assert.Equal(t, "Seeded 10 entries\n", out)

	_, err = env.run(t, "", asUser("seed")...)
	assert.ErrorIs(t, err, auth.ErrForbidden)
}

func TestDigestCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "", "digest", "admin123")
	require.NoError(t, err)
	assert.Equal(t, auth.Digest("admin123")+"\n", out)

	out, err = env.run(t, "s3cret\n", "digest")
	require.NoError(t, err)
	assert.Equal(t, auth.Digest("s3cret")+"\n", out)
}

func TestAccountsCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "", asAdmin("accounts")...)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "USERNAME"), lines[0])
	assert.Equal(t, []string{"admin", "admin", "1"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"user", "user", "2"}, strings.Fields(lines[2]))

	_, err = env.run(t, "", asUser("accounts")...)
	assert.ErrorIs(t, err, auth.ErrForbidden)
}

func TestReadPassword_PipedInput(t *testing.T) {
	app := newApp()
	var errOut bytes.Buffer
	app.Reader = strings.NewReader("s3cret\nrest\n")
	app.ErrWriter = &errOut
	c := cli.NewContext(app, nil, nil)

	in := bufio.NewReader(app.Reader)
	assert.Equal(t, "s3cret", readPassword(c, in))
	assert.Equal(t, "rest", readLine(in))
}

func TestSetup(t *testing.T) {
	env := newTestEnv(t)

	t.Run("invalid log level", func(t *testing.T) {
		_, err := env.run(t, "", "--log-level", "loud", "entries", "list")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("log level flag overrides config", func(t *testing.T) {
		_, err := env.run(t, "", "--log-level", "debug", "entries", "list")
		require.NoError(t, err)
	})

	t.Run("invalid language", func(t *testing.T) {
		_, err := env.run(t, "", "--lang", "xx", "entries", "list")
		assert.ErrorIs(t, err, locale.ErrUnsupportedLanguage)
	})
}

func TestTransferFlags(t *testing.T) {
	app := newApp()
	var export *cli.Command
	for _, cmd := range app.Commands {
		if cmd.Name == "export" {
			export = cmd
		}
	}
	require.NotNil(t, export)

	defaults := map[string]int{"batch-size": 100, "report-interval": 100, "max-retries": 3}
	for _, flag := range export.Flags {
		if f, ok := flag.(*cli.IntFlag); ok {
			assert.Equal(t, defaults[f.Name], f.Value, f.Name)
		}
	}
}
