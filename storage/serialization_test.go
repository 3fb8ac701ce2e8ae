package storage

import (
	"testing"
	"time"

	"github.com/poiesic/sathi/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalEntry(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	entry := &core.KnowledgeEntry{
		Id:        "6f1c2f4e-5f1a-4c1e-9d8e-2b1f4a0e7c11",
		Title:     "How to Apply for Leave",
		Content:   "To apply for leave:\n1. Fill out the form\n2. Submit to your supervisor",
		Category:  core.CategoryFAQ,
		Position:  2,
		CreatedAt: now,
		UpdatedAt: now.Add(time.Minute),
	}

	decoded, err := UnmarshalEntry(MarshalEntry(entry))
	require.NoError(t, err)
	require.NotNil(t, decoded)

	assert.Equal(t, entry.Id, decoded.Id)
	assert.Equal(t, entry.Title, decoded.Title)
	assert.Equal(t, entry.Content, decoded.Content)
	assert.Equal(t, entry.Category, decoded.Category)
	assert.Equal(t, entry.Position, decoded.Position)
	assert.True(t, entry.CreatedAt.Equal(decoded.CreatedAt))
	assert.True(t, entry.UpdatedAt.Equal(decoded.UpdatedAt))
}

func TestMarshalUnmarshalChatMessage(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	msg := &core.ChatMessage{
		Id:        core.ID(9),
		Speaker:   core.SpeakerTypeAssistant,
		Contents:  "Notice: Office Hours\n\nMonday through Friday 🕘",
		UserId:    "user",
		Timestamp: now,
	}

	decoded, err := UnmarshalChatMessage(MarshalChatMessage(msg))
	require.NoError(t, err)

	assert.Equal(t, msg.Id, decoded.Id)
	assert.Equal(t, msg.Speaker, decoded.Speaker)
	assert.Equal(t, msg.Contents, decoded.Contents)
	assert.Equal(t, msg.UserId, decoded.UserId)
	assert.True(t, msg.Timestamp.Equal(decoded.Timestamp))
}

func TestUnmarshal_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"invalid data", []byte{0xFF, 0xFF, 0xFF}},
		{"partial data", []byte{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalEntry(tt.data)
			assert.ErrorIs(t, err, ErrSerializationFailed)

			_, err = UnmarshalChatMessage(tt.data)
			assert.ErrorIs(t, err, ErrSerializationFailed)
		})
	}
}
