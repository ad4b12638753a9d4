package respcache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillmind/tutor-api/internal/domain"
)

func TestKeyNormalization(t *testing.T) {
	t.Parallel()

	k1 := Key("math", domain.IntentQuickClarification, domain.ComplexitySimple, "What   is a fraction? ")
	k2 := Key("math", domain.IntentQuickClarification, domain.ComplexitySimple, "what is a fraction?")
	assert.Equal(t, k1, k2)

	// Any component change produces a different key.
	assert.NotEqual(t, k1, Key("science", domain.IntentQuickClarification, domain.ComplexitySimple, "what is a fraction?"))
	assert.NotEqual(t, k1, Key("math", domain.IntentValidationSeeking, domain.ComplexitySimple, "what is a fraction?"))
	assert.NotEqual(t, k1, Key("math", domain.IntentQuickClarification, domain.ComplexityMedium, "what is a fraction?"))
	assert.NotEqual(t, k1, Key("math", domain.IntentQuickClarification, domain.ComplexitySimple, "what is a decimal?"))
}

func TestStoreEligible(t *testing.T) {
	t.Parallel()

	short := "A fraction represents part of a whole."

	assert.True(t, StoreEligible(domain.IntentQuickClarification, short))
	assert.True(t, StoreEligible(domain.IntentValidationSeeking, short))
	assert.False(t, StoreEligible(domain.IntentDeepExplanation, short))
	assert.False(t, StoreEligible(domain.IntentGeneral, short))

	// Personalized wording is never cached.
	assert.False(t, StoreEligible(domain.IntentQuickClarification, "You can think of it as a slice."))
	assert.False(t, StoreEligible(domain.IntentQuickClarification, "That matches your earlier answer."))

	// Long answers are never cached.
	long := ""
	for i := 0; i < 30; i++ {
		long += "fractions "
	}
	assert.False(t, StoreEligible(domain.IntentQuickClarification, long))
}

func TestReadEligible(t *testing.T) {
	t.Parallel()

	assert.True(t, ReadEligible(domain.IntentQuickClarification, domain.ComplexityComplex))
	assert.True(t, ReadEligible(domain.IntentValidationSeeking, domain.ComplexityMedium))
	assert.True(t, ReadEligible(domain.IntentQuestion, domain.ComplexitySimple))
	assert.False(t, ReadEligible(domain.IntentQuestion, domain.ComplexityMedium))
	assert.False(t, ReadEligible(domain.IntentDeepExplanation, domain.ComplexitySimple))
}

func TestCacheRoundTrip(t *testing.T) {
	t.Parallel()

	c := New(0)
	key := Key("math", domain.IntentQuickClarification, domain.ComplexitySimple, "what is a fraction")
	const answer = "A fraction represents part of a whole."

	_, ok := c.Get(key)
	require.False(t, ok)

	c.Put(key, answer)
	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, answer, got)
}

func TestCacheFIFOEviction(t *testing.T) {
	t.Parallel()

	c := New(3)
	c.Put("k1", "a1")
	c.Put("k2", "a2")
	c.Put("k3", "a3")

	// Reading k1 repeatedly must NOT protect it: eviction is
	// insertion-order, not recency-order.
	for i := 0; i < 5; i++ {
		_, ok := c.Get("k1")
		require.True(t, ok)
	}

	c.Put("k4", "a4")
	_, ok := c.Get("k1")
	assert.False(t, ok, "oldest-inserted entry must be evicted despite recent reads")
	for _, k := range []string{"k2", "k3", "k4"} {
		_, ok := c.Get(k)
		assert.True(t, ok, "entry %s should survive", k)
	}
	assert.Equal(t, 3, c.Len())
}

func TestCacheRePutKeepsInsertionPosition(t *testing.T) {
	t.Parallel()

	c := New(2)
	c.Put("k1", "a1")
	c.Put("k2", "a2")
	c.Put("k1", "updated")

	// k1 keeps its original (oldest) position, so the next insert
	// evicts it, not k2.
	c.Put("k3", "a3")
	_, ok := c.Get("k1")
	assert.False(t, ok)
	got, ok := c.Get("k2")
	require.True(t, ok)
	assert.Equal(t, "a2", got)
}

func TestCacheBoundedUnderChurn(t *testing.T) {
	t.Parallel()

	c := New(DefaultCapacity)
	for i := 0; i < DefaultCapacity+50; i++ {
		c.Put(fmt.Sprintf("k%d", i), "answer")
	}
	assert.Equal(t, DefaultCapacity, c.Len())

	// The survivors are exactly the most recent 100 inserts.
	_, ok := c.Get("k49")
	assert.False(t, ok)
	_, ok = c.Get("k50")
	assert.True(t, ok)
}
