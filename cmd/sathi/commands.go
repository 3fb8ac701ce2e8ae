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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/poiesic/sathi"
	"github.com/poiesic/sathi/auth"
	"github.com/poiesic/sathi/core"
	"github.com/poiesic/sathi/search"
	"github.com/poiesic/sathi/seed"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

// login authenticates the --username/--password account, prompting on the
// app reader for whichever is missing, and checks it holds role.
func login(c *cli.Context, db *sathi.Database, in *bufio.Reader, role core.Role) (*core.User, error) {
	msgs := messages(c)

	username := c.String("username")
	if username == "" {
		fmt.Fprintf(c.App.ErrWriter, "%s: ", msgs.UsernamePrompt)
		username = readLine(in)
	}
	password := c.String("password")
	if password == "" {
		fmt.Fprintf(c.App.ErrWriter, "%s: ", msgs.PasswordPrompt)
		password = readPassword(c, in)
	}

	user, err := db.Directory().Authenticate(username, password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", msgs.InvalidCredentials, err)
	}
	if err := auth.Authorize(user, role); err != nil {
		return nil, fmt.Errorf("%s: %w", msgs.Forbidden, err)
	}
	return user, nil
}

func readLine(in *bufio.Reader) string {
	line, _ := in.ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}

// readPassword reads a password without echo when the app reads from a
// terminal, and falls back to a plain line read for piped input.
func readPassword(c *cli.Context, in *bufio.Reader) string {
	if f, ok := c.App.Reader.(*os.File); ok && in.Buffered() == 0 && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(c.App.ErrWriter)
		if err == nil {
			return string(secret)
		}
	}
	return readLine(in)
}

func seedCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := login(c, db, bufio.NewReader(c.App.Reader), core.RoleAdmin); err != nil {
		return err
	}

	var opts []seed.Option
	if c.Bool("force") {
		opts = append(opts, seed.Force())
	}
	n, err := db.Seed(ctx, opts...)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "Seeded %d entries\n", n)
	return nil
}

func askCommand(c *cli.Context) error {
	ctx := context.Background()

	question := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(question) == "" {
		return fmt.Errorf("a question is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	a, err := db.NewAssistant()
	if err != nil {
		return err
	}
	defer a.Release()

	if c.Bool("explain") {
		monitor := newExplainMonitor(c.App.Writer)
		reply, err := a.Lookup(ctx, question, monitor)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer)
		fmt.Fprintln(c.App.Writer, reply.Text)
		return nil
	}

	user, err := login(c, db, bufio.NewReader(c.App.Reader), core.RoleUser)
	if err != nil {
		return err
	}

	reply, err := a.Ask(ctx, user, question)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, reply.Text)
	return nil
}

func batchCommand(c *cli.Context) error {
	ctx := context.Background()

	in := c.App.Reader
	if path := c.Args().First(); path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open questions: %w", err)
		}
		defer f.Close()
		in = f
	}

	var questions []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			questions = append(questions, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read questions: %w", err)
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	a, err := db.NewAssistant()
	if err != nil {
		return err
	}
	defer a.Release()

	replies, err := a.AnswerAll(ctx, questions)
	if err != nil {
		return err
	}

	for _, reply := range replies {
		fmt.Fprintf(c.App.Writer, "Q: %s\n%s\n\n", reply.Question, reply.Text)
	}
	return nil
}

func historyCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	in := bufio.NewReader(c.App.Reader)

	var transcript []*core.ChatMessage
	if limit := c.Int("recent"); limit > 0 {
		if _, err := login(c, db, in, core.RoleAdmin); err != nil {
			return err
		}
		transcript, err = db.ChatRepository().GetRecentChatMessages(ctx, limit)
	} else {
		user, loginErr := login(c, db, in, core.RoleUser)
		if loginErr != nil {
			return loginErr
		}
		transcript, err = db.ChatRepository().GetTranscript(ctx, user.Id)
	}
	if err != nil {
		return err
	}

	for _, msg := range transcript {
		speaker := "assistant"
		if msg.IsUser() {
			speaker = "user"
			if msg.UserId != "" {
				speaker = "user " + msg.UserId
			}
		}
		fmt.Fprintf(c.App.Writer, "[%s] %s: %s\n", msg.Timestamp.Local().Format("2006-01-02 15:04"), speaker, msg.Contents)
	}
	return nil
}

func digestCommand(c *cli.Context) error {
	password := c.Args().First()
	if password == "" {
		fmt.Fprintf(c.App.ErrWriter, "%s: ", messages(c).PasswordPrompt)
		password = readPassword(c, bufio.NewReader(c.App.Reader))
	}
	if password == "" {
		return errors.New("a password is required")
	}
	fmt.Fprintln(c.App.Writer, auth.Digest(password))
	return nil
}

func accountsCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := login(c, db, bufio.NewReader(c.App.Reader), core.RoleAdmin); err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "USERNAME\tROLE\tID")
	for _, user := range db.Directory().Users() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", user.Username, user.Role, user.Id)
	}
	return w.Flush()
}

// explainMonitor prints one row per scored entry.
type explainMonitor struct {
	w *tabwriter.Writer
}

var _ search.MatchMonitor = (*explainMonitor)(nil)

func newExplainMonitor(w io.Writer) *explainMonitor {
	return &explainMonitor{w: tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)}
}

func (m *explainMonitor) Start(query string) {
	fmt.Fprintf(m.w, "Query: %q\n", query)
	fmt.Fprintln(m.w, "TITLE\tSUBSTRING\tSYNONYM\tTITLE TERMS\tCONTENT TERMS\tTOTAL\tKEYWORDS")
}

func (m *explainMonitor) Scored(entry *core.KnowledgeEntry, b search.Breakdown) {
	fmt.Fprintf(m.w, "%s\t%d\t%d\t%d\t%d\t%d\t%s\n",
		entry.Title, b.Substring, b.Synonym, b.TitleTerms, b.ContentTerms, b.Total(), strings.Join(b.Keywords, ","))
}

func (m *explainMonitor) Finish(answer search.Answer, found bool) {
	if found {
		fmt.Fprintf(m.w, "Best: %s (score %d)\n", answer.Entry.Title, answer.Score)
	} else {
		fmt.Fprintln(m.w, "Best: none")
	}
	m.w.Flush()
}
