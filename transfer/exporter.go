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
	"fmt"
	"io"
	"log/slog"

	"github.com/poiesic/sathi/core"
	"github.com/poiesic/sathi/storage"
	"gopkg.in/yaml.v3"
)

// Exporter writes every entry of the store to a YAML document.
type Exporter struct {
	repo     storage.EntryRepository
	config   *Config
	progress io.Writer
	iterator *EntryIterator
}

// NewExporter creates a new exporter.
// progress: where to write progress output (typically os.Stderr); nil disables it
func NewExporter(repo storage.EntryRepository, config *Config, progress io.Writer) *Exporter {
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}

	return &Exporter{
		repo:     repo,
		config:   config,
		progress: progress,
		iterator: NewEntryIterator(repo, config.BatchSize),
	}
}

// Run writes the export to w and returns the number of entries written.
func (e *Exporter) Run(ctx context.Context, w io.Writer) (int, error) {
	total, err := e.repo.CountEntries(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}

	fmt.Fprintf(e.progress, "Exporting %d entries (batch size: %d)\n", total, e.config.BatchSize)

	tracker := NewProgressTracker(e.progress, total, e.config.ReportInterval)
	tracker.Start()

	doc := Document{Entries: make([]Record, 0, total)}
	err = e.iterator.ForEach(ctx, func(entries []*core.KnowledgeEntry) error {
		for _, entry := range entries {
			doc.Entries = append(doc.Entries, RecordFromEntry(entry))
		}
		tracker.Increment(len(entries))
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to read entries: %w", err)
	}
	tracker.Finish()

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return 0, fmt.Errorf("failed to encode export: %w", err)
	}
	if err := enc.Close(); err != nil {
		return 0, fmt.Errorf("failed to encode export: %w", err)
	}

	slog.Info("export complete", "entries", len(doc.Entries), "duration", tracker.Elapsed())
	return len(doc.Entries), nil
}
