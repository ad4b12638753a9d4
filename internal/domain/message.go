package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Message-specific validation errors
var (
	// ErrMessageIDEmpty is returned when a message ID is nil.
	ErrMessageIDEmpty = errors.New("message ID cannot be empty")

	// ErrMessageSessionIDEmpty is returned when a message's session ID is nil.
	ErrMessageSessionIDEmpty = errors.New("message session ID cannot be empty")

	// ErrMessageUserIDEmpty is returned when a message's user ID is empty.
	ErrMessageUserIDEmpty = errors.New("message user ID cannot be empty")

	// ErrMessageTextEmpty is returned when a message's text is empty.
	ErrMessageTextEmpty = errors.New("message text cannot be empty")
)

// MessageRole distinguishes learner messages from tutor replies.
type MessageRole string

const (
	RoleLearner MessageRole = "learner"
	RoleTutor   MessageRole = "tutor"
)

// Message is one turn of a tutoring conversation, persisted best-effort
// through the gateway.
type Message struct {
	ID        uuid.UUID   `json:"id"`
	SessionID uuid.UUID   `json:"session_id"`
	UserID    string      `json:"user_id"`
	Role      MessageRole `json:"role"`
	Text      string      `json:"text"`
	Intent    Intent      `json:"intent,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewMessage creates a validated message with a fresh ID.
func NewMessage(sessionID uuid.UUID, userID string, role MessageRole, text string, intent Intent) (*Message, error) {
	m := &Message{
		ID:        uuid.New(),
		SessionID: sessionID,
		UserID:    userID,
		Role:      role,
		Text:      text,
		Intent:    intent,
		CreatedAt: time.Now().UTC(),
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks the message fields.
func (m *Message) Validate() error {
	if m.ID == uuid.Nil {
		return ErrMessageIDEmpty
	}
	if m.SessionID == uuid.Nil {
		return ErrMessageSessionIDEmpty
	}
	if m.UserID == "" {
		return ErrMessageUserIDEmpty
	}
	if m.Text == "" {
		return ErrMessageTextEmpty
	}
	return nil
}

// Reply is the orchestrator's answer to a single learner message.
type Reply struct {
	SessionID  uuid.UUID  `json:"session_id"`
	Text       string     `json:"text"`
	Intent     Intent     `json:"intent"`
	Emotion    Emotion    `json:"emotion"`
	Complexity Complexity `json:"complexity"`
	FromCache  bool       `json:"from_cache"`
	XPAwarded  int        `json:"xp_awarded"`
	NewBadges  []string   `json:"new_badges,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// SessionSummary is the final record computed when a session ends.
type SessionSummary struct {
	SessionID       uuid.UUID     `json:"session_id"`
	UserID          string        `json:"user_id"`
	Subject         string        `json:"subject"`
	StartedAt       time.Time     `json:"started_at"`
	EndedAt         time.Time     `json:"ended_at"`
	Duration        time.Duration `json:"duration"`
	MessageCount    int           `json:"message_count"`
	Topics          []string      `json:"topics"`
	Concepts        []string      `json:"concepts"`
	MasteryGain     float64       `json:"mastery_gain"`
	EngagementScore float64       `json:"engagement_score"`
	ComplexityScore float64       `json:"complexity_score"`
}
