package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/sathi/core"
	"github.com/poiesic/sathi/storage"
)

// ChatRepository implements storage.ChatRepository for BadgerDB.
type ChatRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ChatRepository = (*ChatRepository)(nil)

// NewChatRepository creates a new ChatRepository.
func NewChatRepository(backend *Backend) (*ChatRepository, error) {
	idSeq, err := backend.GetSequence(chatMessageIDSeq)
	if err != nil {
		return nil, err
	}

	return &ChatRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ChatRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *ChatRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddChatMessages appends messages to the transcript and returns the stored
// copies. The caller's messages are left untouched.
func (r *ChatRepository) AddChatMessages(ctx context.Context, messages ...*core.ChatMessage) ([]*core.ChatMessage, error) {
	stored := make([]*core.ChatMessage, 0, len(messages))
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, original := range messages {
			msg := *original
			if msg.Timestamp.IsZero() {
				msg.Timestamp = now()
			} else {
				msg.Timestamp = msg.Timestamp.UTC().Truncate(time.Microsecond)
			}
			if err := core.ValidateChatMessage(&msg); err != nil {
				return err
			}

			// Always generate new ID from sequence
			nextID, err := nextSequence(r.idSeq)
			if err != nil {
				return err
			}
			msg.Id = core.ID(nextID)

			key := makeChatMessageKey(nextID)
			if err := tx.Set(key, storage.MarshalChatMessage(&msg)); err != nil {
				return err
			}
			stored = append(stored, &msg)
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	return stored, nil
}

// GetTranscript returns messages for userID plus broadcast messages, oldest first.
func (r *ChatRepository) GetTranscript(ctx context.Context, userID string) ([]*core.ChatMessage, error) {
	var results []*core.ChatMessage
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chatMessagePrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			msg, err := readChatMessage(iter.Item())
			if err != nil {
				return err
			}
			if msg.UserId == userID || msg.UserId == "" {
				results = append(results, msg)
			}
		}
		return nil
	}, false)

	return results, err
}

// GetRecentChatMessages retrieves the N most recent messages, most recent first.
func (r *ChatRepository) GetRecentChatMessages(ctx context.Context, limit int) ([]*core.ChatMessage, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.ChatMessage
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Use reverse iterator to get most recent messages first
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(chatMessagePrefix)

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek past the largest possible ID under the prefix
		startKey := makeChatMessageKey(^uint64(0))

		for iter.Seek(startKey); iter.Valid() && len(results) < limit; iter.Next() {
			msg, err := readChatMessage(iter.Item())
			if err != nil {
				return err
			}
			results = append(results, msg)
		}
		return nil
	}, false)

	return results, err
}

// readChatMessage decodes the message stored in item.
func readChatMessage(item *badger.Item) (*core.ChatMessage, error) {
	var msg *core.ChatMessage
	err := item.Value(func(val []byte) error {
		var unmarshalErr error
		msg, unmarshalErr = storage.UnmarshalChatMessage(val)
		return unmarshalErr
	})
	return msg, err
}
