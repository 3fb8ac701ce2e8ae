package core

//go:generate go run ../cmd/musgen

import (
	"fmt"
	"strings"
	"time"
)

// ID is a sequence-assigned identifier for chat messages.
type ID uint64

// SpeakerType identifies the author of a chat message.
type SpeakerType int

const (
	// SpeakerTypeUser is a person asking questions.
	SpeakerTypeUser SpeakerType = iota + 1
	// SpeakerTypeAssistant is the knowledge-base assistant.
	SpeakerTypeAssistant
)

// Category classifies a knowledge entry. It only affects how answers are labelled.
type Category int

const (
	CategoryCircular Category = iota + 1
	CategoryNotice
	CategoryFAQ
)

// Categories lists every category in display order.
var Categories = []Category{CategoryCircular, CategoryNotice, CategoryFAQ}

// Label returns the display label used as an answer header.
func (c Category) Label() string {
	switch c {
	case CategoryCircular:
		return "Circular"
	case CategoryNotice:
		return "Notice"
	case CategoryFAQ:
		return "FAQ"
	}
	return "Unknown"
}

// String returns the lowercase name used in configuration and export files.
func (c Category) String() string {
	switch c {
	case CategoryCircular:
		return "circular"
	case CategoryNotice:
		return "notice"
	case CategoryFAQ:
		return "faq"
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// ParseCategory converts "circular", "notice" or "faq" (any case) into a Category.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "circular":
		return CategoryCircular, nil
	case "notice":
		return CategoryNotice, nil
	case "faq":
		return CategoryFAQ, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// KnowledgeEntry is one institutional document held in the searchable collection.
type KnowledgeEntry struct {
	Id        string
	Title     string
	Content   string
	Category  Category
	Position  uint64    // Insertion ordinal; defines collection order
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EntryDraft carries the caller-supplied fields of a new entry.
// Identifiers and timestamps are always assigned by the store.
type EntryDraft struct {
	Title    string
	Content  string
	Category Category
}

// EntryPatch describes a partial update. Nil fields are left unchanged.
type EntryPatch struct {
	Title    *string
	Content  *string
	Category *Category
}

// IsEmpty reports whether the patch changes nothing.
func (p EntryPatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Category == nil
}

// Apply copies the non-nil fields of the patch onto entry.
func (p EntryPatch) Apply(entry *KnowledgeEntry) {
	if p.Title != nil {
		entry.Title = *p.Title
	}
	if p.Content != nil {
		entry.Content = *p.Content
	}
	if p.Category != nil {
		entry.Category = *p.Category
	}
}

// ChatMessage is one line of a chat transcript.
type ChatMessage struct {
	Id        ID
	Speaker   SpeakerType
	Contents  string
	UserId    string    // Empty for messages visible to every user
	Timestamp time.Time
}

// IsUser reports whether the message was written by a person.
func (m *ChatMessage) IsUser() bool {
	return m.Speaker == SpeakerTypeUser
}

// Role is the access level of an account.
type Role int

const (
	RoleAdmin Role = iota + 1
	RoleUser
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleUser:
		return "user"
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// ParseRole converts "admin" or "user" into a Role.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, nil
	case "user":
		return RoleUser, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidRole, s)
}

// User is an authenticated account.
type User struct {
	Id       string
	Username string
	Role     Role
}
