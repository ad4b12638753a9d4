package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/quillmind/tutor-api/internal/domain"
)

// ProfileStore persists learning profiles keyed by user ID.
type ProfileStore interface {
	// GetByUserID retrieves the profile for userID. Returns
	// ErrProfileNotFound if none exists.
	GetByUserID(ctx context.Context, userID string) (*domain.LearningProfile, error)

	// Save inserts or updates the profile. The whole profile is written;
	// callers pass a snapshot they own.
	Save(ctx context.Context, profile *domain.LearningProfile) error
}

// MessageStore persists conversation turns.
type MessageStore interface {
	// Save appends one message. Returns ErrInvalidEntity if the message
	// fails validation.
	Save(ctx context.Context, message *domain.Message) error

	// ListBySession returns all messages of a session in creation order.
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.Message, error)
}

// SessionStore persists completed session summaries.
type SessionStore interface {
	// Save records the summary of an ended session.
	Save(ctx context.Context, summary *domain.SessionSummary) error

	// ListRecentByUser returns the user's most recent summaries, newest
	// first, at most limit entries.
	ListRecentByUser(ctx context.Context, userID string, limit int) ([]*domain.SessionSummary, error)
}
