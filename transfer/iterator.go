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


package transfer

import (
	"context"
	"slices"

	"github.com/poiesic/sathi/core"
	"github.com/poiesic/sathi/storage"
)

const (
	// DefaultBatchSize is the default number of entries handled per batch
	DefaultBatchSize = 100
)

// EntryIterator walks a snapshot of every entry in collection order.
type EntryIterator struct {
	repo      storage.EntryRepository
	batchSize int
}

// NewEntryIterator creates a new entry iterator.
// batchSize: number of entries per batch; non-positive uses DefaultBatchSize
func NewEntryIterator(repo storage.EntryRepository, batchSize int) *EntryIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &EntryIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// ForEach calls fn for each batch of entries.
// Iteration stops on the first error from fn or when the context is cancelled.
func (it *EntryIterator) ForEach(ctx context.Context, fn func([]*core.KnowledgeEntry) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := it.repo.ListEntries(ctx)
	if err != nil {
		return err
	}

	for batch := range slices.Chunk(entries, it.batchSize) {
		if err := fn(batch); err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}
	}

	return nil
}
