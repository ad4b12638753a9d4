package tutor_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillmind/tutor-api/internal/adaptation"
	"github.com/quillmind/tutor-api/internal/analyzer"
	"github.com/quillmind/tutor-api/internal/domain"
	"github.com/quillmind/tutor-api/internal/events"
	"github.com/quillmind/tutor-api/internal/generation"
	"github.com/quillmind/tutor-api/internal/knowledge"
	"github.com/quillmind/tutor-api/internal/profile"
	"github.com/quillmind/tutor-api/internal/respcache"
	"github.com/quillmind/tutor-api/internal/sessionctx"
	"github.com/quillmind/tutor-api/internal/service/tutor"
	"github.com/quillmind/tutor-api/internal/store"
)

type fixture struct {
	service   *tutor.Service
	generator *generation.MockGenerator
	sessions  *store.MemorySessionStore
}

func newFixture(t *testing.T, gen *generation.MockGenerator) *fixture {
	t.Helper()

	if gen == nil {
		gen = &generation.MockGenerator{Responses: []string{"A fraction is part of a whole."}}
	}
	logger := slog.Default()
	sessions := store.NewMemorySessionStore()

	svc := tutor.NewService(
		logger,
		analyzer.New(),
		knowledge.Default(),
		profile.NewStore(nil, logger),
		sessionctx.NewManager(),
		adaptation.NewEngine(),
		respcache.New(respcache.DefaultCapacity),
		gen,
		events.NewInMemoryEventEmitter(logger),
		sessions,
	)
	return &fixture{service: svc, generator: gen, sessions: sessions}
}

func TestStartSessionValidation(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.service.StartSession(ctx, "", "math", "medium")
	assert.ErrorIs(t, err, tutor.ErrUserIDEmpty)

	_, err = f.service.StartSession(ctx, "user-1", "", "medium")
	assert.ErrorIs(t, err, tutor.ErrSubjectEmpty)

	id, err := f.service.StartSession(ctx, "user-1", "math", "")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
}

func TestSendMessageUnknownSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	_, err := f.service.SendMessage(context.Background(), uuid.New(), "hello")
	assert.ErrorIs(t, err, tutor.ErrSessionNotFound)
}

func TestSendMessageRejectsEmptyText(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	ctx := context.Background()
	id, err := f.service.StartSession(ctx, "user-1", "math", "medium")
	require.NoError(t, err)

	_, err = f.service.SendMessage(ctx, id, "   ")
	assert.ErrorIs(t, err, tutor.ErrMessageEmpty)
}

func TestSendMessageClassifiesAndAwardsXP(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	ctx := context.Background()
	id, err := f.service.StartSession(ctx, "user-1", "math", "medium")
	require.NoError(t, err)

	reply, err := f.service.SendMessage(ctx, id, "What is a fraction?")
	require.NoError(t, err)

	assert.Equal(t, domain.IntentQuickClarification, reply.Intent)
	assert.Equal(t, domain.EmotionNeutral, reply.Emotion)
	assert.Equal(t, "A fraction is part of a whole.", reply.Text)
	assert.False(t, reply.FromCache)
	assert.Equal(t, 5, reply.XPAwarded)
	// First message of the first ever session unlocks first_session.
	assert.Contains(t, reply.NewBadges, domain.BadgeFirstSession)

	second, err := f.service.SendMessage(ctx, id, "Thanks, that helps")
	require.NoError(t, err)
	assert.NotContains(t, second.NewBadges, domain.BadgeFirstSession)
}

func TestSendMessageCacheRoundTrip(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	ctx := context.Background()
	id, err := f.service.StartSession(ctx, "user-1", "math", "medium")
	require.NoError(t, err)

	const question = "What is a fraction?"

	first, err := f.service.SendMessage(ctx, id, question)
	require.NoError(t, err)
	assert.False(t, first.FromCache)

	second, err := f.service.SendMessage(ctx, id, question)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, 1, f.generator.Calls())
}

func TestSendMessageApologyOnGenerationFailure(t *testing.T) {
	t.Parallel()

	gen := &generation.MockGenerator{Errs: []error{generation.ErrGenerationFailed}}
	f := newFixture(t, gen)
	ctx := context.Background()
	id, err := f.service.StartSession(ctx, "user-1", "math", "medium")
	require.NoError(t, err)

	reply, err := f.service.SendMessage(ctx, id, "What is a fraction?")
	require.NoError(t, err)
	assert.Equal(t, generation.ApologyText, reply.Text)

	// The apology must not be cached: a retry generates again.
	_, err = f.service.SendMessage(ctx, id, "What is a fraction?")
	require.NoError(t, err)
	assert.Equal(t, 2, gen.Calls())
}

func TestProgressReportIsLocal(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	ctx := context.Background()
	id, err := f.service.StartSession(ctx, "user-1", "math", "medium")
	require.NoError(t, err)

	reply, err := f.service.SendMessage(ctx, id, "show me my progress")
	require.NoError(t, err)
	assert.Equal(t, domain.IntentProgressCheck, reply.Intent)
	assert.Contains(t, reply.Text, "level 1")
	assert.Zero(t, f.generator.Calls())
}

func TestQuizResponseUsesCatalogItem(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	ctx := context.Background()
	id, err := f.service.StartSession(ctx, "user-1", "math", "medium")
	require.NoError(t, err)

	reply, err := f.service.SendMessage(ctx, id, "give me a quiz")
	require.NoError(t, err)
	assert.Equal(t, domain.IntentQuizRequest, reply.Intent)
	assert.Contains(t, reply.Text, "A)")
}

func TestSubmitQuizAnswer(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	ctx := context.Background()
	id, err := f.service.StartSession(ctx, "user-1", "math", "medium")
	require.NoError(t, err)

	t.Run("correct answer", func(t *testing.T) {
		reply, err := f.service.SubmitQuizAnswer(ctx, id, "math.counting", "b", 1)
		require.NoError(t, err)
		assert.Equal(t, 10, reply.XPAwarded)
		assert.Contains(t, reply.Text, "Correct")
	})

	t.Run("wrong answer", func(t *testing.T) {
		reply, err := f.service.SubmitQuizAnswer(ctx, id, "math.counting", "A", 1)
		require.NoError(t, err)
		assert.Equal(t, 2, reply.XPAwarded)
		assert.Contains(t, reply.Text, "B")
	})

	t.Run("invalid letter", func(t *testing.T) {
		_, err := f.service.SubmitQuizAnswer(ctx, id, "math.counting", "!?", 1)
		assert.ErrorIs(t, err, tutor.ErrInvalidAnswer)
	})

	t.Run("unknown session", func(t *testing.T) {
		_, err := f.service.SubmitQuizAnswer(ctx, uuid.New(), "math.counting", "A", 0)
		assert.ErrorIs(t, err, tutor.ErrSessionNotFound)
	})
}

func TestQuizAnswersRaiseSubjectMastery(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	ctx := context.Background()
	id, err := f.service.StartSession(ctx, "user-1", "math", "medium")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := f.service.SubmitQuizAnswer(ctx, id, "math.counting", "B", 1)
		require.NoError(t, err)
	}

	// Subject mastery is now visible in the progress report.
	reply, err := f.service.SendMessage(ctx, id, "how am I doing so far")
	require.NoError(t, err)
	assert.Contains(t, reply.Text, "math mastery")

	summary, err := f.service.EndSession(ctx, id)
	require.NoError(t, err)
	// Five correct answers plus one productive message.
	assert.InDelta(t, 0.26, summary.MasteryGain, 1e-9)
}

func TestEndSessionDuringConcurrentMessages(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	ctx := context.Background()
	id, err := f.service.StartSession(ctx, "user-1", "math", "medium")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				_, err := f.service.SendMessage(ctx, id, "tell me more")
				if err != nil {
					assert.ErrorIs(t, err, tutor.ErrSessionNotFound)
					return
				}
			}
		}()
	}

	summary, err := f.service.EndSession(ctx, id)
	wg.Wait()
	require.NoError(t, err)

	// Each exchange adds two messages under the session lock, so a
	// summary captured mid-flight still shows a whole number of them.
	assert.Zero(t, summary.MessageCount%2)
	assert.LessOrEqual(t, summary.MessageCount, 40)
}

func TestEndSessionSummaryAndIdempotency(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	ctx := context.Background()
	id, err := f.service.StartSession(ctx, "user-1", "math", "medium")
	require.NoError(t, err)

	_, err = f.service.SendMessage(ctx, id, "Tell me about fractions.")
	require.NoError(t, err)

	summary, err := f.service.EndSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, summary.SessionID)
	assert.Equal(t, "user-1", summary.UserID)
	assert.Equal(t, "math", summary.Subject)
	assert.Equal(t, 2, summary.MessageCount)
	assert.Contains(t, summary.Topics, "fractions")
	assert.GreaterOrEqual(t, summary.EngagementScore, 0.0)
	assert.LessOrEqual(t, summary.EngagementScore, 100.0)

	// The session is gone: ending again or messaging it fails.
	_, err = f.service.EndSession(ctx, id)
	assert.ErrorIs(t, err, tutor.ErrSessionNotFound)

	_, err = f.service.SendMessage(ctx, id, "hello again")
	assert.ErrorIs(t, err, tutor.ErrSessionNotFound)
}

func TestGetNextConceptRespectsPrerequisites(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)

	node, ok := f.service.GetNextConcept("fresh-user", "math")
	require.True(t, ok)
	// A fresh profile has completed nothing, so only the root concept
	// is unlocked.
	assert.Equal(t, "math.counting", node.ID)
}

func TestGetRecommendedDifficultyDefault(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	assert.Equal(t, adaptation.TierMedium, f.service.GetRecommendedDifficulty("fresh-user"))
}
