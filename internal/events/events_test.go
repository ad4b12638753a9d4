package events_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillmind/tutor-api/internal/events"
)

type recordingHandler struct {
	seen []*events.PersistRequestEvent
	err  error
}

func (h *recordingHandler) HandleEvent(_ context.Context, event *events.PersistRequestEvent) error {
	h.seen = append(h.seen, event)
	return h.err
}

func TestNewPersistRequestEventRoundTrip(t *testing.T) {
	t.Parallel()

	type payload struct {
		UserID string `json:"user_id"`
		XP     int    `json:"xp"`
	}

	event, err := events.NewPersistRequestEvent(events.PersistProfile, payload{UserID: "user-1", XP: 40})
	require.NoError(t, err)
	assert.Equal(t, events.PersistProfile, event.Type)
	assert.NotZero(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())

	var got payload
	require.NoError(t, event.UnmarshalPayload(&got))
	assert.Equal(t, payload{UserID: "user-1", XP: 40}, got)
}

func TestEmitEventReachesAllHandlers(t *testing.T) {
	t.Parallel()

	emitter := events.NewInMemoryEventEmitter(slog.Default())
	failing := &recordingHandler{err: errors.New("write failed")}
	succeeding := &recordingHandler{}
	emitter.RegisterHandler(failing)
	emitter.RegisterHandler(succeeding)

	event, err := events.NewPersistRequestEvent(events.PersistMessage, map[string]string{"text": "hi"})
	require.NoError(t, err)

	err = emitter.EmitEvent(context.Background(), event)
	assert.ErrorIs(t, err, failing.err)
	// The failing handler must not block delivery to the next one.
	assert.Len(t, succeeding.seen, 1)
}

func TestEmitEventWithoutHandlers(t *testing.T) {
	t.Parallel()

	emitter := events.NewInMemoryEventEmitter(slog.Default())
	event, err := events.NewPersistRequestEvent(events.PersistSession, map[string]int{"count": 1})
	require.NoError(t, err)

	assert.NoError(t, emitter.EmitEvent(context.Background(), event))
}
