package transfer

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	badgerdb "github.com/dgraph-io/badger/v4"
	"github.com/poiesic/sathi/core"
	"github.com/poiesic/sathi/storage"
	"github.com/poiesic/sathi/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEntryRepo(t *testing.T) storage.EntryRepository {
	t.Helper()
	entryRepo, chatRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		chatRepo.Close()
		entryRepo.Close()
		backend.Close()
	})
	return entryRepo
}

func smallBatches() *Config {
	cfg := DefaultConfig()
	cfg.BatchSize = 3
	cfg.ReportInterval = 2
	return cfg
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	source := newTestEntryRepo(t)

	drafts := make([]core.EntryDraft, 0, 8)
	categories := core.Categories
	for i := range 8 {
		drafts = append(drafts, core.EntryDraft{
			Title:    fmt.Sprintf("Entry %d", i),
			Content:  fmt.Sprintf("Line one of %d\nLine two: with colon", i),
			Category: categories[i%len(categories)],
		})
	}
	_, err := source.AddEntries(ctx, drafts...)
	require.NoError(t, err)

	var doc bytes.Buffer
	var progress bytes.Buffer
	n, err := NewExporter(source, smallBatches(), &progress).Run(ctx, &doc)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Contains(t, progress.String(), "8/8")
	assert.Contains(t, doc.String(), "entries:")
	assert.Contains(t, doc.String(), "category: circular")

	target := newTestEntryRepo(t)
	n, err = NewImporter(target, smallBatches(), nil).Run(ctx, &doc)
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	original, err := source.ListEntries(ctx)
	require.NoError(t, err)
	imported, err := target.ListEntries(ctx)
	require.NoError(t, err)
	require.Len(t, imported, len(original))

	for i := range original {
		assert.Equal(t, original[i].Title, imported[i].Title)
		assert.Equal(t, original[i].Content, imported[i].Content)
		assert.Equal(t, original[i].Category, imported[i].Category)
		assert.NotEqual(t, original[i].Id, imported[i].Id, "import assigns fresh ids")
	}
}

func TestExport_Empty(t *testing.T) {
	var doc bytes.Buffer
	n, err := NewExporter(newTestEntryRepo(t), nil, nil).Run(context.Background(), &doc)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Contains(t, doc.String(), "entries: []")
}

func TestImport_Document(t *testing.T) {
	ctx := context.Background()

	t.Run("ignores ids and timestamps", func(t *testing.T) {
		repo := newTestEntryRepo(t)
		input := `entries:
  - id: keep-me
    title: Library
    content: Open 8 to 8
    category: Notice
    created_at: 2001-01-01T00:00:00Z
`
		n, err := NewImporter(repo, nil, nil).Run(ctx, strings.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		entries, err := repo.ListEntries(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.NotEqual(t, "keep-me", entries[0].Id)
		assert.Equal(t, core.CategoryNotice, entries[0].Category)
		assert.Greater(t, entries[0].CreatedAt.Year(), 2001)
	})

	t.Run("empty input", func(t *testing.T) {
		n, err := NewImporter(newTestEntryRepo(t), nil, nil).Run(ctx, strings.NewReader(""))
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("invalid record stores nothing", func(t *testing.T) {
		repo := newTestEntryRepo(t)
		input := `entries:
  - title: Good
    content: Fine
    category: faq
  - title: Bad
    content: Unknown category
    category: memo
`
		_, err := NewImporter(repo, nil, nil).Run(ctx, strings.NewReader(input))
		assert.ErrorIs(t, err, ErrInvalidDocument)
		assert.ErrorIs(t, err, core.ErrInvalidCategory)

		count, err := repo.CountEntries(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("blank title", func(t *testing.T) {
		input := "entries:\n  - title: \"  \"\n    content: x\n    category: faq\n"
		_, err := Drafts(strings.NewReader(input))
		assert.ErrorIs(t, err, core.ErrEmptyTitle)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Drafts(strings.NewReader("entries: [unterminated"))
		assert.ErrorIs(t, err, ErrInvalidDocument)
	})
}

// failingRepo fails the first AddEntries calls with err, then delegates.
type failingRepo struct {
	storage.EntryRepository
	err      error
	failures int
	calls    int
}

func (r *failingRepo) AddEntries(ctx context.Context, drafts ...core.EntryDraft) ([]*core.KnowledgeEntry, error) {
	r.calls++
	if r.calls <= r.failures {
		return nil, r.err
	}
	return r.EntryRepository.AddEntries(ctx, drafts...)
}

func TestImport_Retries(t *testing.T) {
	ctx := context.Background()
	input := "entries:\n  - title: Library\n    content: Open 8 to 8\n    category: notice\n"

	t.Run("conflict is retried", func(t *testing.T) {
		repo := &failingRepo{EntryRepository: newTestEntryRepo(t), err: badgerdb.ErrConflict, failures: 2}
		cfg := DefaultConfig()
		cfg.RetryDelay = time.Millisecond

		n, err := NewImporter(repo, cfg, nil).Run(ctx, strings.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, 3, repo.calls)
	})

	t.Run("permanent error fails at once", func(t *testing.T) {
		repo := &failingRepo{EntryRepository: newTestEntryRepo(t), err: storage.ErrDuplicateKey, failures: 10}
		cfg := DefaultConfig()
		cfg.MaxRetries = 5
		cfg.RetryDelay = time.Hour

		n, err := NewImporter(repo, cfg, nil).Run(ctx, strings.NewReader(input))
		assert.ErrorIs(t, err, storage.ErrDuplicateKey)
		assert.Zero(t, n)
		assert.Equal(t, 1, repo.calls)
	})
}

func TestEntryIterator(t *testing.T) {
	ctx := context.Background()
	repo := newTestEntryRepo(t)

	drafts := make([]core.EntryDraft, 7)
	for i := range drafts {
		drafts[i] = core.EntryDraft{Title: fmt.Sprintf("T%d", i), Content: "C", Category: core.CategoryFAQ}
	}
	_, err := repo.AddEntries(ctx, drafts...)
	require.NoError(t, err)

	t.Run("batches in order", func(t *testing.T) {
		var sizes []int
		var titles []string
		err := NewEntryIterator(repo, 3).ForEach(ctx, func(batch []*core.KnowledgeEntry) error {
			sizes = append(sizes, len(batch))
			for _, e := range batch {
				titles = append(titles, e.Title)
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []int{3, 3, 1}, sizes)
		assert.Equal(t, []string{"T0", "T1", "T2", "T3", "T4", "T5", "T6"}, titles)
	})

	t.Run("stops on error", func(t *testing.T) {
		calls := 0
		stop := fmt.Errorf("stop")
		err := NewEntryIterator(repo, 2).ForEach(ctx, func([]*core.KnowledgeEntry) error {
			calls++
			return stop
		})
		assert.ErrorIs(t, err, stop)
		assert.Equal(t, 1, calls)
	})

	t.Run("default batch size", func(t *testing.T) {
		it := NewEntryIterator(repo, 0)
		assert.Equal(t, DefaultBatchSize, it.batchSize)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		err := NewEntryIterator(repo, 2).ForEach(cctx, func([]*core.KnowledgeEntry) error { return nil })
		assert.ErrorIs(t, err, context.Canceled)
	})
}
