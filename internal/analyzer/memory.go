package analyzer

import (
	"sync"
	"time"

	"github.com/quillmind/tutor-api/internal/domain"
)

// MemoryCapacity bounds the per-user conversation memory. When full, the
// oldest entry is dropped on append.
const MemoryCapacity = 20

// MemoryBank stores a bounded ring of recent message analyses per user,
// plus the last-interaction timestamp used for engagement scoring.
type MemoryBank struct {
	mu      sync.RWMutex
	entries map[string][]domain.MemoryEntry
	lastAt  map[string]time.Time
}

// NewMemoryBank creates an empty memory bank.
func NewMemoryBank() *MemoryBank {
	return &MemoryBank{
		entries: make(map[string][]domain.MemoryEntry),
		lastAt:  make(map[string]time.Time),
	}
}

// Append records an entry for the user, dropping the oldest entry once
// the capacity is exceeded.
func (b *MemoryBank) Append(userID string, entry domain.MemoryEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := append(b.entries[userID], entry)
	if len(list) > MemoryCapacity {
		list = list[len(list)-MemoryCapacity:]
	}
	b.entries[userID] = list
	b.lastAt[userID] = entry.Timestamp
}

// Recent returns up to n most-recent entries for the user, oldest first.
func (b *MemoryBank) Recent(userID string, n int) []domain.MemoryEntry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	list := b.entries[userID]
	if n <= 0 || n > len(list) {
		n = len(list)
	}
	out := make([]domain.MemoryEntry, n)
	copy(out, list[len(list)-n:])
	return out
}

// Len returns the number of stored entries for the user.
func (b *MemoryBank) Len(userID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries[userID])
}

// LastInteraction returns the timestamp of the user's most recent
// analyzed message, or the zero time if none.
func (b *MemoryBank) LastInteraction(userID string) time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastAt[userID]
}
