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


package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/sathi/core"
	"github.com/poiesic/sathi/locale"
	"github.com/poiesic/sathi/search"
	"github.com/poiesic/sathi/storage"
)

// Reply is the assistant's answer to one question.
type Reply struct {
	Question string
	Answer   search.Answer
	Found    bool
	Text     string            // Answer text, or the fallback when nothing matched
	Message  *core.ChatMessage // Recorded assistant message; nil when not recorded
}

// Assistant matches questions against the knowledge base.
type Assistant struct {
	entryRepository storage.EntryRepository
	chatRepository  storage.ChatRepository
	matcher         *search.Matcher
	pool            *ants.Pool
	language        locale.Language
	logger          *slog.Logger
}

// Option configures an Assistant.
type Option func(*Assistant) error

// WithPoolSize sets the worker pool size used by AnswerAll.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(a *Assistant) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if a.pool != nil {
			a.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		a.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// WithMatcher replaces the default matcher.
func WithMatcher(matcher *search.Matcher) Option {
	return func(a *Assistant) error {
		if matcher != nil {
			a.matcher = matcher
		}
		return nil
	}
}

// WithLanguage selects the language of the no-match fallback.
// Default is locale.English.
func WithLanguage(lang locale.Language) Option {
	return func(a *Assistant) error {
		a.language = lang
		return nil
	}
}

// NewAssistant creates an assistant over the given repositories.
func NewAssistant(entryRepository storage.EntryRepository, chatRepository storage.ChatRepository, opts ...Option) (*Assistant, error) {
	if entryRepository == nil {
		return nil, ErrEntryRepositoryRequired
	}
	if chatRepository == nil {
		return nil, ErrChatRepositoryRequired
	}

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	a := &Assistant{
		entryRepository: entryRepository,
		chatRepository:  chatRepository,
		pool:            pool,
		language:        locale.Default,
		logger:          slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(a); optErr != nil {
			a.Release()
			return nil, optErr
		}
	}

	if a.matcher == nil {
		matcher, err := search.NewMatcher(search.WithLogger(a.logger))
		if err != nil {
			a.Release()
			return nil, err
		}
		a.matcher = matcher
	}

	return a, nil
}

// Ask answers a question for user and records both sides of the exchange.
func (a *Assistant) Ask(ctx context.Context, user *core.User, question string) (*Reply, error) {
	if user == nil {
		return nil, ErrUserRequired
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	asked := &core.ChatMessage{
		Speaker:  core.SpeakerTypeUser,
		Contents: question,
		UserId:   user.Id,
	}
	if _, err := a.chatRepository.AddChatMessages(ctx, asked); err != nil {
		return nil, fmt.Errorf("recording question: %w", err)
	}

	reply, err := a.Lookup(ctx, question, nil)
	if err != nil {
		return nil, err
	}

	answered := &core.ChatMessage{
		Speaker:  core.SpeakerTypeAssistant,
		Contents: reply.Text,
		UserId:   user.Id,
	}
	recorded, err := a.chatRepository.AddChatMessages(ctx, answered)
	if err != nil {
		return nil, fmt.Errorf("recording reply: %w", err)
	}
	reply.Message = recorded[0]

	a.logger.Info("answered question", "user", user.Username, "found", reply.Found, "score", reply.Answer.Score)
	return reply, nil
}

// Lookup answers a question without recording it.
// monitor may be nil; when set it observes every scored entry.
func (a *Assistant) Lookup(ctx context.Context, question string, monitor search.MatchMonitor) (*Reply, error) {
	entries, err := a.entryRepository.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading entries: %w", err)
	}
	return a.reply(question, entries, monitor), nil
}

// AnswerAll answers every question concurrently against one snapshot of the
// knowledge base. Replies are returned in the order of questions; blank
// questions get the fallback reply.
func (a *Assistant) AnswerAll(ctx context.Context, questions []string) ([]*Reply, error) {
	if len(questions) == 0 {
		return []*Reply{}, nil
	}

	entries, err := a.entryRepository.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading entries: %w", err)
	}

	replies := make([]*Reply, len(questions))
	var wg sync.WaitGroup
	for i, question := range questions {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}

		wg.Add(1)
		submitErr := a.pool.Submit(func() {
			defer wg.Done()
			replies[i] = a.reply(question, entries, nil)
		})
		if submitErr != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("submitting question %d: %w", i, submitErr)
		}
	}
	wg.Wait()

	a.logger.Debug("answered batch", "questions", len(questions), "entries", len(entries))
	return replies, nil
}

// Transcript returns the conversation visible to user, oldest first.
func (a *Assistant) Transcript(ctx context.Context, user *core.User) ([]*core.ChatMessage, error) {
	if user == nil {
		return nil, ErrUserRequired
	}
	return a.chatRepository.GetTranscript(ctx, user.Id)
}

// Release releases the worker pool.
// The assistant should not be used after calling Release.
func (a *Assistant) Release() {
	if a.pool != nil {
		a.pool.Release()
	}
}

func (a *Assistant) reply(question string, entries []*core.KnowledgeEntry, monitor search.MatchMonitor) *Reply {
	answer, found := a.matcher.MatchWithMonitor(question, entries, monitor)
	reply := &Reply{
		Question: strings.TrimSpace(question),
		Answer:   answer,
		Found:    found,
	}
	if found {
		reply.Text = answer.Text()
	} else {
		reply.Text = locale.For(a.language).NoMatch
	}
	return reply
}
