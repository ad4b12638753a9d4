// Package respcache memoizes generated answers for cacheable intent
// classes. The cache is shared across all users: reads are concurrent,
// writes exclusive and short. Eviction is strict insertion-order FIFO,
// not LRU; reads never refresh an entry's position. That distinction is
// observable under repeated reads and must not be "upgraded".
package respcache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"github.com/quillmind/tutor-api/internal/domain"
)

// DefaultCapacity bounds the cache; inserting beyond it evicts the
// oldest-inserted entries until the cap holds.
const DefaultCapacity = 100

// maxCacheableLength is the longest answer text eligible for storage.
const maxCacheableLength = 200

// Cache is a bounded FIFO map from request keys to generated answers.
type Cache struct {
	mu       sync.RWMutex
	entries  map[string]string
	order    []string // insertion order, oldest first
	capacity int
}

// New creates a cache with the given capacity; zero or negative falls
// back to DefaultCapacity.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		entries:  make(map[string]string),
		capacity: capacity,
	}
}

// Key builds the cache key for a request:
// subject_intent_complexity_hash(normalizedMessage). Normalization
// lower-cases, trims, and collapses internal whitespace so trivial
// reformattings of the same question share an entry.
func Key(subject string, intent domain.Intent, complexity domain.Complexity, message string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(message))), " ")
	sum := sha256.Sum256([]byte(normalized))
	return fmt.Sprintf("%s_%s_%s_%s", subject, intent, complexity, hex.EncodeToString(sum[:8]))
}

// StoreEligible reports whether an answer may be written to the cache:
// only quick clarifications and validation responses, short, and with no
// second-person wording (a heuristic against caching personalized
// replies).
func StoreEligible(intent domain.Intent, answer string) bool {
	if intent != domain.IntentQuickClarification && intent != domain.IntentValidationSeeking {
		return false
	}
	if len(answer) >= maxCacheableLength {
		return false
	}
	lower := strings.ToLower(answer)
	if strings.Contains(lower, "you") {
		return false
	}
	return true
}

// ReadEligible reports whether a request may be served from the cache:
// the cacheable intent classes, plus plain simple questions.
func ReadEligible(intent domain.Intent, complexity domain.Complexity) bool {
	if intent == domain.IntentQuickClarification || intent == domain.IntentValidationSeeking {
		return true
	}
	return intent == domain.IntentQuestion && complexity == domain.ComplexitySimple
}

// Get returns the cached answer for the key, if present. Reads do not
// affect eviction order.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	answer, ok := c.entries[key]
	return answer, ok
}

// Put stores an answer under the key. Re-putting an existing key updates
// the text but keeps the original insertion position. When the cap is
// exceeded the oldest-inserted entries are evicted until it holds.
func (c *Cache) Put(key, answer string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.entries[key] = answer
		return
	}

	c.entries[key] = answer
	c.order = append(c.order, key)

	for len(c.order) > c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
