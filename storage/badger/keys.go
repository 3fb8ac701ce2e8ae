package badger

import (
	"encoding/binary"
)

// Key prefixes for different data types
const (
	entryPrefix         = "kb:"
	entryPositionPrefix = "kbpos:"
	entryPositionSeq    = "seq:kb"
	chatMessagePrefix   = "chat:"
	chatMessageIDSeq    = "seq:chat"
)

// makeEntryKey generates the primary key for a knowledge entry.
func makeEntryKey(id string) []byte {
	return []byte(entryPrefix + id)
}

// makeEntryPositionKey generates a key for the collection-order index.
// Format: prefix + position (BigEndian so lexicographic order is insertion order)
func makeEntryPositionKey(position uint64) []byte {
	return appendUint64([]byte(entryPositionPrefix), position)
}

// makeChatMessageKey generates the primary key for a chat message.
// Format: prefix + id (BigEndian so lexicographic order is sequence order)
func makeChatMessageKey(id uint64) []byte {
	return appendUint64([]byte(chatMessagePrefix), id)
}

func appendUint64(prefix []byte, v uint64) []byte {
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], v)
	return buf
}
