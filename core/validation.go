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


package core

import (
	"fmt"
	"strings"
	"time"
)

// ValidateDraft validates the caller-supplied fields of a new entry.
//
// Validation rules:
//   - Title must not be blank
//   - Content must not be blank
//   - Category must be one of the known categories
func ValidateDraft(draft *EntryDraft) error {
	if draft == nil {
		return fmt.Errorf("%w: draft is nil", ErrInvalidEntry)
	}
	return validateFields(draft.Title, draft.Content, draft.Category)
}

// ValidateEntry validates a stored KnowledgeEntry.
//
// In addition to the draft rules, the Id must be set and
// UpdatedAt must not precede CreatedAt.
func ValidateEntry(entry *KnowledgeEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidEntry)
	}
	if entry.Id == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrEmptyID)
	}
	if err := validateFields(entry.Title, entry.Content, entry.Category); err != nil {
		return err
	}
	if entry.UpdatedAt.Before(entry.CreatedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrUpdatedBeforeCreated)
	}
	return nil
}

func validateFields(title, content string, category Category) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrEmptyTitle)
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrEmptyContent)
	}
	if err := ValidateCategory(category); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}
	return nil
}

// ValidateCategory validates that a Category has a known value.
func ValidateCategory(category Category) error {
	switch category {
	case CategoryCircular, CategoryNotice, CategoryFAQ:
		return nil
	}
	return fmt.Errorf("%w: value %d", ErrInvalidCategory, category)
}

// ValidateChatMessage validates a ChatMessage according to domain rules.
//
// Validation rules:
//   - Contents must not be empty
//   - SpeakerType must be valid (User or Assistant)
//   - Timestamp must not be in the future
//
// ID 0 is valid; the store assigns identifiers on insert.
func ValidateChatMessage(msg *ChatMessage) error {
	if msg == nil {
		return fmt.Errorf("%w: message is nil", ErrInvalidChatMessage)
	}

	if msg.Contents == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChatMessage, ErrEmptyContent)
	}

	if err := ValidateSpeakerType(msg.Speaker); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidChatMessage, err)
	}

	if !IsValidTimestamp(msg.Timestamp) {
		return fmt.Errorf("%w: %w", ErrInvalidChatMessage, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateSpeakerType validates that a SpeakerType has a valid value.
func ValidateSpeakerType(speaker SpeakerType) error {
	if speaker != SpeakerTypeUser && speaker != SpeakerTypeAssistant {
		return fmt.Errorf("%w: value %d", ErrInvalidSpeakerType, speaker)
	}
	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
