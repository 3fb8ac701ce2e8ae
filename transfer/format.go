package transfer

import (
	"fmt"
	"time"

	"github.com/poiesic/sathi/core"
)

// Document is the top-level YAML shape of an export.
type Document struct {
	Entries []Record `yaml:"entries"`
}

// Record is one entry as written to YAML.
type Record struct {
	Id        string    `yaml:"id,omitempty"`
	Title     string    `yaml:"title"`
	Content   string    `yaml:"content"`
	Category  string    `yaml:"category"`
	CreatedAt time.Time `yaml:"created_at,omitempty"`
	UpdatedAt time.Time `yaml:"updated_at,omitempty"`
}

// RecordFromEntry converts a stored entry for export.
func RecordFromEntry(entry *core.KnowledgeEntry) Record {
	return Record{
		Id:        entry.Id,
		Title:     entry.Title,
		Content:   entry.Content,
		Category:  entry.Category.String(),
		CreatedAt: entry.CreatedAt.UTC(),
		UpdatedAt: entry.UpdatedAt.UTC(),
	}
}

// Draft converts the record into a validated draft.
func (r Record) Draft() (core.EntryDraft, error) {
	category, err := core.ParseCategory(r.Category)
	if err != nil {
		return core.EntryDraft{}, err
	}
	draft := core.EntryDraft{Title: r.Title, Content: r.Content, Category: category}
	if err := core.ValidateDraft(&draft); err != nil {
		return core.EntryDraft{}, err
	}
	return draft, nil
}

// drafts converts every record, reporting the first bad one by position.
func (d Document) drafts() ([]core.EntryDraft, error) {
	drafts := make([]core.EntryDraft, len(d.Entries))
	for i, record := range d.Entries {
		draft, err := record.Draft()
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d (%q): %w", ErrInvalidDocument, i+1, record.Title, err)
		}
		drafts[i] = draft
	}
	return drafts, nil
}
