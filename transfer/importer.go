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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/poiesic/sathi/core"
	"github.com/poiesic/sathi/storage"
	"gopkg.in/yaml.v3"
)

// Importer adds the entries of a YAML document to the store.
type Importer struct {
	repo     storage.EntryRepository
	config   *Config
	progress io.Writer
}

// NewImporter creates a new importer.
// progress: where to write progress output (typically os.Stderr); nil disables it
func NewImporter(repo storage.EntryRepository, config *Config, progress io.Writer) *Importer {
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}

	return &Importer{
		repo:     repo,
		config:   config,
		progress: progress,
	}
}

// Run reads a document from r and stores its entries in document order.
// The whole document is validated before anything is written. Each batch is
// stored atomically and retried only on transaction conflicts; if a batch
// fails, earlier batches remain and the returned count says how many were stored.
func (im *Importer) Run(ctx context.Context, r io.Reader) (int, error) {
	drafts, err := Drafts(r)
	if err != nil {
		return 0, err
	}

	total := len(drafts)
	if total == 0 {
		fmt.Fprintf(im.progress, "No entries found in document (0 entries)\n")
		return 0, nil
	}

	fmt.Fprintf(im.progress, "Importing %d entries (batch size: %d)\n", total, im.config.BatchSize)

	tracker := NewProgressTracker(im.progress, total, im.config.ReportInterval)
	tracker.Start()

	batchSize := im.config.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	attempts := max(im.config.MaxRetries, 1)

	for batch := range slices.Chunk(drafts, batchSize) {
		err := RetryWithBackoff(ctx, func() error {
			_, addErr := im.repo.AddEntries(ctx, batch...)
			return addErr
		}, IsConflict, attempts, im.config.RetryDelay)
		if err != nil {
			tracker.Finish()
			return tracker.Current(), fmt.Errorf("failed to store batch: %w", err)
		}
		tracker.Increment(len(batch))
	}
	tracker.Finish()

	slog.Info("import complete", "entries", total, "duration", tracker.Elapsed())
	return total, nil
}

// Drafts decodes and validates a document without storing it.
// An empty document yields no drafts.
func Drafts(r io.Reader) ([]core.EntryDraft, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return doc.drafts()
}
