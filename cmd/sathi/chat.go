package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/poiesic/sathi/core"
	"github.com/urfave/cli/v2"
)

func chatCommand(c *cli.Context) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	msgs := messages(c)
	out := c.App.Writer
	in := bufio.NewReader(c.App.Reader)

	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
	boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	fmt.Fprintln(out, boldGreen(msgs.Title))
	fmt.Fprintln(out, msgs.Subtitle)
	fmt.Fprintln(out)

	user, err := login(c, db, in, core.RoleUser)
	if err != nil {
		return err
	}

	a, err := db.NewAssistant()
	if err != nil {
		return err
	}
	defer a.Release()

	fmt.Fprintln(out, msgs.WelcomeFor(user.Username))
	fmt.Fprintln(out, faint(msgs.ChatHint))
	fmt.Fprintln(out)

	for {
		fmt.Fprint(out, boldGreen("You: "))
		line, readErr := in.ReadString('\n')
		input := strings.TrimSpace(line)

		switch {
		case input == "" && readErr != nil:
			fmt.Fprintln(out)
			fmt.Fprintln(out, msgs.Goodbye)
			return nil
		case input == "":
			continue
		case strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit"):
			fmt.Fprintln(out, msgs.Goodbye)
			return nil
		case input == "/history":
			transcript, err := a.Transcript(ctx, user)
			if err != nil {
				return err
			}
			for _, msg := range transcript {
				speaker := boldCyan("Assistant")
				if msg.IsUser() {
					speaker = boldGreen("You")
				}
				fmt.Fprintf(out, "%s %s: %s\n", faint(msg.Timestamp.Local().Format("15:04")), speaker, msg.Contents)
			}
			fmt.Fprintln(out)
			continue
		}

		reply, err := a.Ask(ctx, user, input)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s\n\n", boldCyan("Assistant:"), reply.Text)
	}
}
