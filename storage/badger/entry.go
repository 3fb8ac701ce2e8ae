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


package badger

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/poiesic/sathi/core"
	"github.com/poiesic/sathi/storage"
)

// EntryRepository implements storage.EntryRepository for BadgerDB.
type EntryRepository struct {
	backend     *Backend
	positionSeq *badger.Sequence
}

var _ storage.EntryRepository = (*EntryRepository)(nil)

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(backend *Backend) (*EntryRepository, error) {
	positionSeq, err := backend.GetSequence(entryPositionSeq)
	if err != nil {
		return nil, err
	}

	return &EntryRepository{
		backend:     backend,
		positionSeq: positionSeq,
	}, nil
}

// Close releases the position sequence.
func (r *EntryRepository) Close() error {
	return r.positionSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *EntryRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddEntries validates and stores new entries in a single transaction.
func (r *EntryRepository) AddEntries(ctx context.Context, drafts ...core.EntryDraft) ([]*core.KnowledgeEntry, error) {
	for i := range drafts {
		if err := core.ValidateDraft(&drafts[i]); err != nil {
			return nil, err
		}
	}

	added := make([]*core.KnowledgeEntry, 0, len(drafts))
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, draft := range drafts {
			position, err := nextSequence(r.positionSeq)
			if err != nil {
				return err
			}

			created := now()
			entry := &core.KnowledgeEntry{
				Id:        uuid.NewString(),
				Title:     draft.Title,
				Content:   draft.Content,
				Category:  draft.Category,
				Position:  position,
				CreatedAt: created,
				UpdatedAt: created,
			}

			key := makeEntryKey(entry.Id)
			existing, err := readEntry(tx, key)
			if err != nil {
				return err
			}
			if existing != nil {
				return fmt.Errorf("%w: entry %s", storage.ErrDuplicateKey, entry.Id)
			}

			if err := tx.Set(key, storage.MarshalEntry(entry)); err != nil {
				return err
			}
			if err := tx.Set(makeEntryPositionKey(position), []byte(entry.Id)); err != nil {
				return err
			}
			added = append(added, entry)
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	r.backend.logger.Debug("added knowledge entries", "count", len(added))
	return added, nil
}

// UpdateEntry applies patch to the entry with the given ID.
func (r *EntryRepository) UpdateEntry(ctx context.Context, id string, patch core.EntryPatch) (*core.KnowledgeEntry, error) {
	var updated *core.KnowledgeEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeEntryKey(id)
		entry, err := readEntry(tx, key)
		if err != nil {
			return err
		}
		if entry == nil {
			return storage.ErrNotFound
		}

		patch.Apply(entry)
		entry.UpdatedAt = now()
		if entry.UpdatedAt.Before(entry.CreatedAt) {
			entry.UpdatedAt = entry.CreatedAt
		}
		if err := core.ValidateEntry(entry); err != nil {
			return err
		}

		if err := tx.Set(key, storage.MarshalEntry(entry)); err != nil {
			return err
		}
		updated = entry
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteEntries removes entries and their position index keys.
func (r *EntryRepository) DeleteEntries(ctx context.Context, ids ...string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeEntryKey(id)
			entry, err := readEntry(tx, key)
			if err != nil {
				return err
			}
			if entry == nil {
				return fmt.Errorf("%w: entry %s", storage.ErrNotFound, id)
			}

			if err := tx.Delete(makeEntryPositionKey(entry.Position)); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetEntry retrieves a single entry by ID.
func (r *EntryRepository) GetEntry(ctx context.Context, id string) (*core.KnowledgeEntry, error) {
	var result *core.KnowledgeEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readEntry(tx, makeEntryKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// ListEntries walks the position index and returns entries in insertion order.
func (r *EntryRepository) ListEntries(ctx context.Context) ([]*core.KnowledgeEntry, error) {
	var results []*core.KnowledgeEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(entryPositionPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var id string
			if err := iter.Item().Value(func(val []byte) error {
				id = string(val)
				return nil
			}); err != nil {
				return err
			}

			entry, err := readEntry(tx, makeEntryKey(id))
			if err != nil {
				return err
			}
			if entry != nil {
				results = append(results, entry)
			}
		}
		return nil
	}, false)

	return results, err
}

// CountEntries returns the number of stored entries.
func (r *EntryRepository) CountEntries(ctx context.Context) (int, error) {
	return r.backend.countPrefix([]byte(entryPositionPrefix))
}

// readEntry reads an entry from the transaction. Returns nil, nil if absent.
func readEntry(tx *badger.Txn, key []byte) (*core.KnowledgeEntry, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var entry *core.KnowledgeEntry
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		entry, unmarshalErr = storage.UnmarshalEntry(val)
		return unmarshalErr
	})
	return entry, err
}
