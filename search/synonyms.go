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
	"strings"
)

// Synonym maps a canonical keyword to the phrases that should trigger it.
type Synonym struct {
	Keyword string
	Phrases []string
}

// SynonymTable is an ordered list of synonym rows.
// Rows are evaluated independently, so order only affects monitor output.
type SynonymTable []Synonym

// DefaultSynonyms returns the built-in campus synonym table.
func DefaultSynonyms() SynonymTable {
	return SynonymTable{
		{Keyword: "leave", Phrases: []string{"leave", "vacation", "time off", "absent", "holiday"}},
		{Keyword: "password", Phrases: []string{"password", "login", "forgot", "reset", "access"}},
		{Keyword: "support", Phrases: []string{"support", "help", "contact", "assistance", "problem"}},
		{Keyword: "office", Phrases: []string{"office", "hours", "building", "location", "address"}},
		{Keyword: "training", Phrases: []string{"training", "course", "module", "certification", "learning"}},
		{Keyword: "expense", Phrases: []string{"expense", "reimbursement", "claim", "receipt", "money"}},
		{Keyword: "remote", Phrases: []string{"remote", "work from home", "wfh", "telework", "home office"}},
		{Keyword: "hr", Phrases: []string{"hr", "human resources", "payroll", "benefits", "personnel"}},
		{Keyword: "holiday", Phrases: []string{"holiday", "vacation days", "time off", "calendar"}},
		{Keyword: "security", Phrases: []string{"security", "access", "keycard", "building", "entrance"}},
	}
}

// Normalize lowercases and trims every keyword and phrase and validates each row.
// Blank phrases are dropped.
func (t SynonymTable) Normalize() (SynonymTable, error) {
	out := make(SynonymTable, 0, len(t))
	for i, row := range t {
		keyword := strings.ToLower(strings.TrimSpace(row.Keyword))
		if keyword == "" {
			return nil, fmt.Errorf("synonym row %d: %w", i, ErrEmptyKeyword)
		}
		phrases := make([]string, 0, len(row.Phrases))
		for _, phrase := range row.Phrases {
			phrase = strings.ToLower(strings.TrimSpace(phrase))
			if phrase != "" {
				phrases = append(phrases, phrase)
			}
		}
		if len(phrases) == 0 {
			return nil, fmt.Errorf("synonym row %q: %w", keyword, ErrNoPhrases)
		}
		out = append(out, Synonym{Keyword: keyword, Phrases: phrases})
	}
	return out, nil
}

// triggeredBy reports whether any phrase of the row occurs in the normalized query.
func (s Synonym) triggeredBy(query string) bool {
	for _, phrase := range s.Phrases {
		if strings.Contains(query, phrase) {
			return true
		}
	}
	return false
}
