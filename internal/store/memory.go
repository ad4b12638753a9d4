package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/quillmind/tutor-api/internal/domain"
)

// In-memory gateway implementations. They back tests and let the
// server run without a database configured.

// MemoryProfileStore is an in-memory ProfileStore.
type MemoryProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]*domain.LearningProfile
}

var _ ProfileStore = (*MemoryProfileStore)(nil)

// NewMemoryProfileStore creates an empty in-memory profile store.
func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{profiles: make(map[string]*domain.LearningProfile)}
}

// GetByUserID implements ProfileStore.
func (s *MemoryProfileStore) GetByUserID(_ context.Context, userID string) (*domain.LearningProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return p.Clone(), nil
}

// Save implements ProfileStore.
func (s *MemoryProfileStore) Save(_ context.Context, profile *domain.LearningProfile) error {
	if err := profile.Validate(); err != nil {
		return NewStoreError("profile.save", ErrInvalidEntity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles[profile.UserID] = profile.Clone()
	return nil
}

// MemoryMessageStore is an in-memory MessageStore.
type MemoryMessageStore struct {
	mu       sync.RWMutex
	messages map[uuid.UUID][]*domain.Message
}

var _ MessageStore = (*MemoryMessageStore)(nil)

// NewMemoryMessageStore creates an empty in-memory message store.
func NewMemoryMessageStore() *MemoryMessageStore {
	return &MemoryMessageStore{messages: make(map[uuid.UUID][]*domain.Message)}
}

// Save implements MessageStore.
func (s *MemoryMessageStore) Save(_ context.Context, message *domain.Message) error {
	if err := message.Validate(); err != nil {
		return NewStoreError("message.save", ErrInvalidEntity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *message
	s.messages[message.SessionID] = append(s.messages[message.SessionID], &copied)
	return nil
}

// ListBySession implements MessageStore.
func (s *MemoryMessageStore) ListBySession(_ context.Context, sessionID uuid.UUID) ([]*domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.messages[sessionID]
	out := make([]*domain.Message, len(stored))
	for i, m := range stored {
		copied := *m
		out[i] = &copied
	}
	return out, nil
}

// MemorySessionStore is an in-memory SessionStore.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string][]*domain.SessionSummary
}

var _ SessionStore = (*MemorySessionStore)(nil)

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string][]*domain.SessionSummary)}
}

// Save implements SessionStore.
func (s *MemorySessionStore) Save(_ context.Context, summary *domain.SessionSummary) error {
	if summary.SessionID == uuid.Nil || summary.UserID == "" {
		return NewStoreError("session.save", ErrInvalidEntity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *summary
	// Newest first.
	s.sessions[summary.UserID] = append([]*domain.SessionSummary{&copied}, s.sessions[summary.UserID]...)
	return nil
}

// ListRecentByUser implements SessionStore.
func (s *MemorySessionStore) ListRecentByUser(_ context.Context, userID string, limit int) ([]*domain.SessionSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.sessions[userID]
	if limit > 0 && len(stored) > limit {
		stored = stored[:limit]
	}
	out := make([]*domain.SessionSummary, len(stored))
	for i, sum := range stored {
		copied := *sum
		out[i] = &copied
	}
	return out, nil
}
