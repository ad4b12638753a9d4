// Package profile owns the in-memory learning profiles. Each user has
// exactly one entry guarded by its own mutex, so concurrent sessions for
// the same user serialize their profile mutations while different users
// never contend. In-memory state is authoritative; persistence happens
// asynchronously elsewhere.
package profile

import (
	"log/slog"
	"sync"

	"github.com/quillmind/tutor-api/internal/domain"
)

// Loader resurrects a profile from the persistence gateway on first
// access. A nil profile with a nil error means no stored profile exists
// and a default one is created.
type Loader func(userID string) (*domain.LearningProfile, error)

type entry struct {
	mu      sync.Mutex
	profile *domain.LearningProfile
}

// Store is the registry of per-user profiles.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	loader  Loader
	logger  *slog.Logger
}

// NewStore creates a Store. loader may be nil, in which case every first
// access creates a default profile.
func NewStore(loader Loader, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		entries: make(map[string]*entry),
		loader:  loader,
		logger:  logger.With(slog.String("component", "profile_store")),
	}
}

// entryFor returns the user's entry, creating and seeding it on first
// access. Seeding failures fall back to a default profile; a missing
// stored profile is not an error.
func (s *Store) entryFor(userID string) *entry {
	s.mu.Lock()
	e, ok := s.entries[userID]
	if !ok {
		e = &entry{}
		s.entries[userID] = e
	}
	s.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.profile == nil {
		e.profile = s.seed(userID)
	}
	return e
}

func (s *Store) seed(userID string) *domain.LearningProfile {
	if s.loader != nil {
		p, err := s.loader(userID)
		if err != nil {
			s.logger.Warn("profile load failed, creating default",
				slog.String("user_id", userID),
				slog.String("error", err.Error()))
		} else if p != nil {
			return p
		}
	}
	p, err := domain.NewLearningProfile(userID)
	if err != nil {
		// ALLOW-PANIC: userID was already validated by the caller.
		panic(err)
	}
	return p
}

// With runs fn with exclusive access to the user's profile. All profile
// mutations go through here so the profile invariants (clamping,
// monotonic badges, bounded collections) hold under concurrent access.
func (s *Store) With(userID string, fn func(p *domain.LearningProfile)) {
	e := s.entryFor(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.profile)
}

// Snapshot returns a deep copy of the user's profile, safe to read
// without holding the entry lock.
func (s *Store) Snapshot(userID string) *domain.LearningProfile {
	e := s.entryFor(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.profile.Clone()
}
