// Package sessionctx manages the ephemeral per-session learning context:
// topics and concepts explored, the difficulty trace, learning-path
// progress, and the adaptive-adjustment counter. A context lives exactly
// as long as its session and is discarded on session end.
package sessionctx

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when no context exists for a session ID,
// typically because the session already ended.
var ErrSessionNotFound = errors.New("session context not found")

// Context is the session-scoped accumulator. Topics and concepts are
// ordered, duplicate-free lists; the difficulty trace only records
// changes; progress is clamped to [0,100].
type Context struct {
	SessionID       uuid.UUID `json:"session_id"`
	Subject         string    `json:"subject"`
	Difficulty      string    `json:"difficulty"`
	CreatedAt       time.Time `json:"created_at"`
	Topics          []string  `json:"topics"`
	Concepts        []string  `json:"concepts"`
	DifficultyTrace []string  `json:"difficulty_trace"`
	Progress        float64   `json:"progress"`
	Adjustments     int       `json:"adjustments"`
}

// Update carries the optional per-message changes to a context. Each
// field, when set, is applied idempotently.
type Update struct {
	NewTopic           string
	NewConcept         string
	DifficultyChange   string
	ProgressDelta      float64
	AdaptiveAdjustment bool
}

// Manager owns the live contexts, keyed by session ID.
type Manager struct {
	mu       sync.RWMutex
	contexts map[uuid.UUID]*Context
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{contexts: make(map[uuid.UUID]*Context)}
}

// Create initializes a context for a new session with empty collections
// and zero progress.
func (m *Manager) Create(sessionID uuid.UUID, subject, difficulty string) *Context {
	ctx := &Context{
		SessionID:  sessionID,
		Subject:    subject,
		Difficulty: difficulty,
		CreatedAt:  time.Now().UTC(),
	}
	m.mu.Lock()
	m.contexts[sessionID] = ctx
	m.mu.Unlock()
	return ctx
}

// Apply applies an update to the session's context.
func (m *Manager) Apply(sessionID uuid.UUID, u Update) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctx, ok := m.contexts[sessionID]
	if !ok {
		return ErrSessionNotFound
	}

	if u.NewTopic != "" && !contains(ctx.Topics, u.NewTopic) {
		ctx.Topics = append(ctx.Topics, u.NewTopic)
	}
	if u.NewConcept != "" && !contains(ctx.Concepts, u.NewConcept) {
		ctx.Concepts = append(ctx.Concepts, u.NewConcept)
	}
	if u.DifficultyChange != "" {
		// Append only when the value actually changes.
		if len(ctx.DifficultyTrace) == 0 || ctx.DifficultyTrace[len(ctx.DifficultyTrace)-1] != u.DifficultyChange {
			ctx.DifficultyTrace = append(ctx.DifficultyTrace, u.DifficultyChange)
		}
		ctx.Difficulty = u.DifficultyChange
	}
	if u.ProgressDelta != 0 {
		ctx.Progress += u.ProgressDelta
		if ctx.Progress < 0 {
			ctx.Progress = 0
		}
		if ctx.Progress > 100 {
			ctx.Progress = 100
		}
	}
	if u.AdaptiveAdjustment {
		ctx.Adjustments++
	}
	return nil
}

// Get returns a copy of the session's context.
func (m *Manager) Get(sessionID uuid.UUID) (Context, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ctx, ok := m.contexts[sessionID]
	if !ok {
		return Context{}, ErrSessionNotFound
	}
	cp := *ctx
	cp.Topics = append([]string(nil), ctx.Topics...)
	cp.Concepts = append([]string(nil), ctx.Concepts...)
	cp.DifficultyTrace = append([]string(nil), ctx.DifficultyTrace...)
	return cp, nil
}

// ComplexityScore reports how involved the session has become, on a
// [0,10] scale. Used for reporting only, never for control flow.
func (m *Manager) ComplexityScore(sessionID uuid.UUID) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ctx, ok := m.contexts[sessionID]
	if !ok {
		return 0, ErrSessionNotFound
	}
	score := 0.5*float64(len(ctx.Topics)) +
		0.3*float64(len(ctx.Concepts)) +
		0.2*float64(len(ctx.DifficultyTrace)) +
		0.1*float64(ctx.Adjustments)
	if score > 10 {
		score = 10
	}
	if score < 0 {
		score = 0
	}
	return score, nil
}

// Discard removes the session's context. Discarding an unknown session
// is a no-op.
func (m *Manager) Discard(sessionID uuid.UUID) {
	m.mu.Lock()
	delete(m.contexts, sessionID)
	m.mu.Unlock()
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
