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


package search

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/sathi/core"
)

// Score weights. They are tuning constants kept for compatibility with the
// answers users already get; higher wins.
const (
	WeightSubstring   = 10
	WeightSynonym     = 8
	WeightTitleTerm   = 3
	WeightContentTerm = 1
)

// Breakdown itemizes the score of one entry for one query.
type Breakdown struct {
	Substring    int
	Synonym      int
	TitleTerms   int
	ContentTerms int
	Keywords     []string // Synonym keywords that contributed
}

// Total returns the entry's score.
func (b Breakdown) Total() int {
	return b.Substring + b.Synonym + b.TitleTerms + b.ContentTerms
}

// Answer is the winning entry of a match.
type Answer struct {
	Entry *core.KnowledgeEntry
	Score int
}

// Text renders the answer as a header line naming the category and title,
// a blank line, then the entry content unchanged.
func (a Answer) Text() string {
	if a.Entry == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s\n\n%s", a.Entry.Category.Label(), a.Entry.Title, a.Entry.Content)
}

// Matcher finds the knowledge entry that best answers a question.
// A Matcher is immutable after construction and safe for concurrent use.
type Matcher struct {
	synonyms SynonymTable
	logger   *slog.Logger
}

// Option configures a Matcher.
type Option func(*Matcher) error

// WithSynonyms replaces the default synonym table.
func WithSynonyms(table SynonymTable) Option {
	return func(m *Matcher) error {
		normalized, err := table.Normalize()
		if err != nil {
			return err
		}
		m.synonyms = normalized
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// NewMatcher creates a matcher using DefaultSynonyms unless overridden.
func NewMatcher(opts ...Option) (*Matcher, error) {
	m := &Matcher{
		synonyms: DefaultSynonyms(),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Synonyms returns a copy of the matcher's synonym table.
func (m *Matcher) Synonyms() SynonymTable {
	out := make(SynonymTable, len(m.synonyms))
	for i, row := range m.synonyms {
		out[i] = Synonym{Keyword: row.Keyword, Phrases: append([]string(nil), row.Phrases...)}
	}
	return out
}

// Match returns the best-scoring entry for query.
// The boolean is false when no entry scores above zero, including for a blank
// query or an empty entry list. Entries are never modified.
func (m *Matcher) Match(query string, entries []*core.KnowledgeEntry) (Answer, bool) {
	return m.MatchWithMonitor(query, entries, nil)
}

// MatchWithMonitor is Match with a monitor that receives every entry's breakdown.
func (m *Matcher) MatchWithMonitor(query string, entries []*core.KnowledgeEntry, monitor MatchMonitor) (Answer, bool) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	normalized := normalizeQuery(query)
	if normalized == "" {
		monitor.Finish(Answer{}, false)
		return Answer{}, false
	}

	terms := queryTerms(normalized)
	keywords := m.triggeredKeywords(normalized)

	var best Answer
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		breakdown := scoreEntry(normalized, terms, keywords, entry)
		monitor.Scored(entry, breakdown)

		// Strictly greater: the first entry seen keeps a tie
		if score := breakdown.Total(); score > best.Score {
			best = Answer{Entry: entry, Score: score}
		}
	}

	found := best.Entry != nil
	m.logger.Debug("matched query", "query", normalized, "entries", len(entries), "found", found, "score", best.Score)
	monitor.Finish(best, found)

	return best, found
}

// triggeredKeywords returns the canonical keywords whose phrases occur in the query.
func (m *Matcher) triggeredKeywords(query string) []string {
	var keywords []string
	for _, row := range m.synonyms {
		if row.triggeredBy(query) {
			keywords = append(keywords, row.Keyword)
		}
	}
	return keywords
}

// scoreEntry computes the breakdown for one entry.
// query must already be normalized; terms and keywords are derived from it.
func scoreEntry(query string, terms, keywords []string, entry *core.KnowledgeEntry) Breakdown {
	title := strings.ToLower(entry.Title)
	content := strings.ToLower(entry.Content)

	var b Breakdown
	if strings.Contains(title, query) || strings.Contains(content, query) {
		b.Substring = WeightSubstring
	}

	for _, keyword := range keywords {
		if strings.Contains(title, keyword) || strings.Contains(content, keyword) {
			b.Synonym += WeightSynonym
			b.Keywords = append(b.Keywords, keyword)
		}
	}

	for _, term := range terms {
		if strings.Contains(title, term) {
			b.TitleTerms += WeightTitleTerm
		}
		if strings.Contains(content, term) {
			b.ContentTerms += WeightContentTerm
		}
	}

	return b
}
