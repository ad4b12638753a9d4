package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quillmind/tutor-api/internal/domain"
	"github.com/quillmind/tutor-api/internal/events"
	"github.com/quillmind/tutor-api/internal/store"
)

// PersistEventHandler turns persist events into background store
// writes. It implements events.EventHandler: decoding happens inline so
// malformed payloads surface to the emitter, while the store write runs
// on the runner's workers.
type PersistEventHandler struct {
	runner   *Runner
	profiles store.ProfileStore
	messages store.MessageStore
	sessions store.SessionStore
	logger   *slog.Logger
}

// NewPersistEventHandler wires the handler to its runner and stores.
func NewPersistEventHandler(
	runner *Runner,
	profiles store.ProfileStore,
	messages store.MessageStore,
	sessions store.SessionStore,
	logger *slog.Logger,
) *PersistEventHandler {
	return &PersistEventHandler{
		runner:   runner,
		profiles: profiles,
		messages: messages,
		sessions: sessions,
		logger:   logger.With(slog.String("component", "persist_event_handler")),
	}
}

var _ events.EventHandler = (*PersistEventHandler)(nil)

// HandleEvent implements events.EventHandler. Unknown event types are
// ignored so additional handlers can share the emitter.
func (h *PersistEventHandler) HandleEvent(_ context.Context, event *events.PersistRequestEvent) error {
	var job Job

	switch event.Type {
	case events.PersistProfile:
		var profile domain.LearningProfile
		if err := event.UnmarshalPayload(&profile); err != nil {
			return fmt.Errorf("decode profile payload: %w", err)
		}
		job = func(ctx context.Context) error {
			return h.profiles.Save(ctx, &profile)
		}
	case events.PersistMessage:
		var message domain.Message
		if err := event.UnmarshalPayload(&message); err != nil {
			return fmt.Errorf("decode message payload: %w", err)
		}
		job = func(ctx context.Context) error {
			return h.messages.Save(ctx, &message)
		}
	case events.PersistSession:
		var summary domain.SessionSummary
		if err := event.UnmarshalPayload(&summary); err != nil {
			return fmt.Errorf("decode session payload: %w", err)
		}
		job = func(ctx context.Context) error {
			return h.sessions.Save(ctx, &summary)
		}
	default:
		h.logger.Debug("ignoring event with unsupported type",
			"event_type", event.Type,
			"event_id", event.ID)
		return nil
	}

	if err := h.runner.Submit(event.Type, job); err != nil {
		return fmt.Errorf("submit %s job: %w", event.Type, err)
	}
	return nil
}
