package storage

import (
	"context"

	"github.com/poiesic/sathi/core"
)

type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close releases resources held by the repository.
	Close() error
}

type EntryRepository interface {
	Repository
	// AddEntries validates and stores one or more new entries.
	// Identifiers, positions and timestamps are assigned by the store.
	// The batch is stored atomically.
	AddEntries(ctx context.Context, drafts ...core.EntryDraft) ([]*core.KnowledgeEntry, error)

	// UpdateEntry applies a partial update to an existing entry.
	// UpdatedAt is refreshed automatically and never precedes CreatedAt.
	// Returns ErrNotFound if the entry doesn't exist.
	UpdateEntry(ctx context.Context, id string, patch core.EntryPatch) (*core.KnowledgeEntry, error)

	// DeleteEntries hard-deletes entries by ID.
	// Returns ErrNotFound if any entry doesn't exist; nothing is deleted in that case.
	DeleteEntries(ctx context.Context, ids ...string) error

	// GetEntry retrieves a single entry by ID.
	// Returns ErrNotFound if the entry doesn't exist.
	GetEntry(ctx context.Context, id string) (*core.KnowledgeEntry, error)

	// ListEntries returns every entry in collection (insertion) order.
	// The result is a consistent snapshot read in one transaction.
	ListEntries(ctx context.Context) ([]*core.KnowledgeEntry, error)

	// CountEntries returns the number of stored entries.
	CountEntries(ctx context.Context) (int, error)
}

type ChatRepository interface {
	Repository
	// AddChatMessages appends messages to the transcript and returns stored copies.
	// IDs are always generated from a sequence; a zero Timestamp is set to now.
	// Timestamps are kept at microsecond precision.
	AddChatMessages(ctx context.Context, messages ...*core.ChatMessage) ([]*core.ChatMessage, error)

	// GetTranscript returns, oldest first, the messages addressed to userID
	// together with messages that carry no user at all.
	GetTranscript(ctx context.Context, userID string) ([]*core.ChatMessage, error)

	// GetRecentChatMessages returns up to limit messages, most recent first.
	GetRecentChatMessages(ctx context.Context, limit int) ([]*core.ChatMessage, error)
}
