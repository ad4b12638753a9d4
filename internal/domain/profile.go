package domain

import (
	"errors"
	"time"
)

// Profile-specific validation errors
var (
	// ErrProfileUserIDEmpty is returned when a profile's user ID is empty.
	ErrProfileUserIDEmpty = errors.New("profile user ID cannot be empty")

	// ErrProfileXPNegative is returned when a profile carries negative XP.
	ErrProfileXPNegative = errors.New("profile XP cannot be negative")

	// ErrProfileStreakNegative is returned when a profile carries a negative streak.
	ErrProfileStreakNegative = errors.New("profile streak cannot be negative")
)

// MasteryCompletionThreshold is the concept mastery at which a concept
// counts as completed.
const MasteryCompletionThreshold = 0.8

// StrugglingThreshold is the concept mastery below which a concept is
// flagged as struggling once it has been attempted.
const StrugglingThreshold = 0.3

// LearningProfile is the per-user mutable learning state. It is owned by
// exactly one user and mutated by every tutoring interaction. In-memory
// state is authoritative for the running process; persistence is
// best-effort and asynchronous.
type LearningProfile struct {
	UserID             string             `json:"user_id"`
	SubjectMastery     map[string]float64 `json:"subject_mastery"`
	ConceptAttempts    map[string]int     `json:"concept_attempts"`
	ConceptMastery     map[string]float64 `json:"concept_mastery"`
	CompletedConcepts  []string           `json:"completed_concepts"`
	StrugglingConcepts []string           `json:"struggling_concepts"`
	XP                 int                `json:"xp"`
	Streak             int                `json:"streak"`
	LastActivityAt     time.Time          `json:"last_activity_at"`
	Badges             []string           `json:"badges"`
	Preferences        map[string]string  `json:"preferences"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// NewLearningProfile creates a default profile for a user on first access:
// level 1, "Beginner" title, zero XP, empty collections.
func NewLearningProfile(userID string) (*LearningProfile, error) {
	if userID == "" {
		return nil, ErrProfileUserIDEmpty
	}
	now := time.Now().UTC()
	return &LearningProfile{
		UserID:          userID,
		SubjectMastery:  make(map[string]float64),
		ConceptAttempts: make(map[string]int),
		ConceptMastery:  make(map[string]float64),
		Preferences:     make(map[string]string),
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Validate checks the profile invariants: non-empty owner, non-negative
// XP and streak, mastery values clamped to [0,1].
func (p *LearningProfile) Validate() error {
	if p.UserID == "" {
		return ErrProfileUserIDEmpty
	}
	if p.XP < 0 {
		return ErrProfileXPNegative
	}
	if p.Streak < 0 {
		return ErrProfileStreakNegative
	}
	return nil
}

// Level derives the numeric level from total XP (100 XP per level,
// starting at level 1).
func (p *LearningProfile) Level() int {
	return p.XP/100 + 1
}

// LevelTitle maps the numeric level to a display title band.
func (p *LearningProfile) LevelTitle() string {
	switch l := p.Level(); {
	case l >= 20:
		return "Master"
	case l >= 10:
		return "Expert"
	case l >= 5:
		return "Scholar"
	case l >= 2:
		return "Learner"
	default:
		return "Beginner"
	}
}

// AddXP adds a non-negative XP amount and refreshes the update timestamp.
// Negative amounts are ignored; XP never decreases.
func (p *LearningProfile) AddXP(amount int) {
	if amount <= 0 {
		return
	}
	p.XP += amount
	p.UpdatedAt = time.Now().UTC()
}

// AdjustSubjectMastery applies a delta to the subject mastery, clamping
// the result to [0,1] regardless of the delta's magnitude or sign.
func (p *LearningProfile) AdjustSubjectMastery(subject string, delta float64) {
	p.SubjectMastery[subject] = clamp01(p.SubjectMastery[subject] + delta)
	p.UpdatedAt = time.Now().UTC()
}

// AdjustConceptMastery applies a delta to a concept's mastery, clamped to
// [0,1], records the attempt, and maintains the completed / struggling
// sets. Completion is one-way: a concept that reached the completion
// threshold stays completed even if mastery later decays.
func (p *LearningProfile) AdjustConceptMastery(conceptID string, delta float64) {
	p.ConceptAttempts[conceptID]++
	m := clamp01(p.ConceptMastery[conceptID] + delta)
	p.ConceptMastery[conceptID] = m

	if m >= MasteryCompletionThreshold {
		p.markCompleted(conceptID)
		p.StrugglingConcepts = removeString(p.StrugglingConcepts, conceptID)
	} else if m < StrugglingThreshold && p.ConceptAttempts[conceptID] >= 2 {
		if !containsString(p.StrugglingConcepts, conceptID) {
			p.StrugglingConcepts = append(p.StrugglingConcepts, conceptID)
		}
	} else if m >= StrugglingThreshold {
		p.StrugglingConcepts = removeString(p.StrugglingConcepts, conceptID)
	}
	p.UpdatedAt = time.Now().UTC()
}

// HasCompleted reports whether the concept is in the completed set.
func (p *LearningProfile) HasCompleted(conceptID string) bool {
	return containsString(p.CompletedConcepts, conceptID)
}

// CompletedSet returns the completed concepts as a lookup set.
func (p *LearningProfile) CompletedSet() map[string]bool {
	set := make(map[string]bool, len(p.CompletedConcepts))
	for _, id := range p.CompletedConcepts {
		set[id] = true
	}
	return set
}

// HasBadge reports whether the badge has been unlocked.
func (p *LearningProfile) HasBadge(id string) bool {
	return containsString(p.Badges, id)
}

// UnlockBadge adds a badge if not already present and reports whether it
// was newly unlocked. Badges are monotonic; there is no removal path.
func (p *LearningProfile) UnlockBadge(id string) bool {
	if p.HasBadge(id) {
		return false
	}
	p.Badges = append(p.Badges, id)
	p.UpdatedAt = time.Now().UTC()
	return true
}

// TouchActivity rolls the daily streak based on the previous activity
// date: same day keeps the streak, the next calendar day increments it,
// any longer gap resets it to 1.
func (p *LearningProfile) TouchActivity(now time.Time) {
	now = now.UTC()
	switch {
	case p.LastActivityAt.IsZero():
		p.Streak = 1
	case sameDay(p.LastActivityAt, now):
		// Already counted today.
	case sameDay(p.LastActivityAt.AddDate(0, 0, 1), now):
		p.Streak++
	default:
		p.Streak = 1
	}
	p.LastActivityAt = now
	p.UpdatedAt = now
}

// Clone returns a deep copy of the profile, safe to hand outside the
// owning lock.
func (p *LearningProfile) Clone() *LearningProfile {
	cp := *p
	cp.SubjectMastery = copyFloatMap(p.SubjectMastery)
	cp.ConceptAttempts = copyIntMap(p.ConceptAttempts)
	cp.ConceptMastery = copyFloatMap(p.ConceptMastery)
	cp.CompletedConcepts = append([]string(nil), p.CompletedConcepts...)
	cp.StrugglingConcepts = append([]string(nil), p.StrugglingConcepts...)
	cp.Badges = append([]string(nil), p.Badges...)
	cp.Preferences = copyStringMap(p.Preferences)
	return &cp
}

func (p *LearningProfile) markCompleted(conceptID string) {
	if !containsString(p.CompletedConcepts, conceptID) {
		p.CompletedConcepts = append(p.CompletedConcepts, conceptID)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func removeString(list []string, s string) []string {
	for i, v := range list {
		if v == s {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

func copyFloatMap(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyIntMap(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyStringMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
