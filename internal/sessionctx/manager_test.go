package sessionctx

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGet(t *testing.T) {
	t.Parallel()

	m := NewManager()
	id := uuid.New()
	m.Create(id, "math", "medium")

	ctx, err := m.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "math", ctx.Subject)
	assert.Equal(t, "medium", ctx.Difficulty)
	assert.Empty(t, ctx.Topics)
	assert.Zero(t, ctx.Progress)
}

func TestGetUnknownSession(t *testing.T) {
	t.Parallel()

	m := NewManager()
	_, err := m.Get(uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, m.Apply(uuid.New(), Update{NewTopic: "x"}), ErrSessionNotFound)
}

func TestApplyTopicAndConceptSetSemantics(t *testing.T) {
	t.Parallel()

	m := NewManager()
	id := uuid.New()
	m.Create(id, "math", "medium")

	require.NoError(t, m.Apply(id, Update{NewTopic: "fractions", NewConcept: "math.fractions"}))
	require.NoError(t, m.Apply(id, Update{NewTopic: "decimals"}))
	// Duplicates are ignored; insertion order is preserved.
	require.NoError(t, m.Apply(id, Update{NewTopic: "fractions", NewConcept: "math.fractions"}))

	ctx, err := m.Get(id)
	require.NoError(t, err)
	assert.Equal(t, []string{"fractions", "decimals"}, ctx.Topics)
	assert.Equal(t, []string{"math.fractions"}, ctx.Concepts)
}

func TestApplyDifficultyTraceOnlyRecordsChanges(t *testing.T) {
	t.Parallel()

	m := NewManager()
	id := uuid.New()
	m.Create(id, "math", "medium")

	require.NoError(t, m.Apply(id, Update{DifficultyChange: "easy"}))
	require.NoError(t, m.Apply(id, Update{DifficultyChange: "easy"}))
	require.NoError(t, m.Apply(id, Update{DifficultyChange: "hard"}))

	ctx, err := m.Get(id)
	require.NoError(t, err)
	assert.Equal(t, []string{"easy", "hard"}, ctx.DifficultyTrace)
	assert.Equal(t, "hard", ctx.Difficulty)
}

func TestApplyProgressClamped(t *testing.T) {
	t.Parallel()

	m := NewManager()
	id := uuid.New()
	m.Create(id, "math", "medium")

	require.NoError(t, m.Apply(id, Update{ProgressDelta: 60}))
	require.NoError(t, m.Apply(id, Update{ProgressDelta: 70}))
	ctx, _ := m.Get(id)
	assert.Equal(t, 100.0, ctx.Progress)

	require.NoError(t, m.Apply(id, Update{ProgressDelta: -250}))
	ctx, _ = m.Get(id)
	assert.Equal(t, 0.0, ctx.Progress)
}

func TestApplyAdjustmentCounter(t *testing.T) {
	t.Parallel()

	m := NewManager()
	id := uuid.New()
	m.Create(id, "math", "medium")

	for i := 0; i < 3; i++ {
		require.NoError(t, m.Apply(id, Update{AdaptiveAdjustment: true}))
	}
	require.NoError(t, m.Apply(id, Update{NewTopic: "x"})) // flag unset, no increment

	ctx, _ := m.Get(id)
	assert.Equal(t, 3, ctx.Adjustments)
}

func TestComplexityScore(t *testing.T) {
	t.Parallel()

	m := NewManager()
	id := uuid.New()
	m.Create(id, "math", "medium")

	require.NoError(t, m.Apply(id, Update{NewTopic: "a", NewConcept: "c1"}))
	require.NoError(t, m.Apply(id, Update{NewTopic: "b", DifficultyChange: "hard", AdaptiveAdjustment: true}))

	// 0.5*2 + 0.3*1 + 0.2*1 + 0.1*1 = 1.6
	score, err := m.ComplexityScore(id)
	require.NoError(t, err)
	assert.InDelta(t, 1.6, score, 1e-9)
}

func TestComplexityScoreClampedAtTen(t *testing.T) {
	t.Parallel()

	m := NewManager()
	id := uuid.New()
	m.Create(id, "math", "medium")

	for i := 0; i < 30; i++ {
		require.NoError(t, m.Apply(id, Update{NewTopic: string(rune('a' + i))}))
	}
	score, err := m.ComplexityScore(id)
	require.NoError(t, err)
	assert.Equal(t, 10.0, score)
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	m := NewManager()
	id := uuid.New()
	m.Create(id, "math", "medium")
	m.Discard(id)

	_, err := m.Get(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	// Discarding again is harmless.
	m.Discard(id)
}
