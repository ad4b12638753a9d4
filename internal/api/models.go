// Package api implements the HTTP transport over the tutoring service.
// It adds no semantics of its own: requests are validated, handed to
// the service, and the results serialized back out.
package api

import (
	"time"

	"github.com/quillmind/tutor-api/internal/domain"
)

// StartSessionRequest is the body of POST /sessions.
type StartSessionRequest struct {
	UserID     string `json:"user_id"     validate:"required"`
	Subject    string `json:"subject"     validate:"required"`
	Difficulty string `json:"difficulty"  validate:"omitempty,oneof=beginner easy medium hard"`
}

// StartSessionResponse is the body returned by POST /sessions.
type StartSessionResponse struct {
	SessionID string `json:"session_id"`
}

// SendMessageRequest is the body of POST /sessions/{id}/messages.
type SendMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

// QuizAnswerRequest is the body of POST /sessions/{id}/quiz-answers.
type QuizAnswerRequest struct {
	ConceptID    string `json:"concept_id"    validate:"required"`
	Answer       string `json:"answer"        validate:"required,len=1,alpha"`
	CorrectIndex int    `json:"correct_index" validate:"gte=0"`
}

// ReplyResponse mirrors domain.Reply for the wire.
type ReplyResponse struct {
	SessionID  string    `json:"session_id"`
	Text       string    `json:"text"`
	Intent     string    `json:"intent"`
	Emotion    string    `json:"emotion"`
	Complexity string    `json:"complexity"`
	FromCache  bool      `json:"from_cache"`
	XPAwarded  int       `json:"xp_awarded"`
	NewBadges  []string  `json:"new_badges,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// DifficultyResponse is the body of GET /users/{id}/difficulty.
type DifficultyResponse struct {
	UserID     string `json:"user_id"`
	Difficulty string `json:"difficulty"`
}

// NextConceptResponse is the body of GET /users/{id}/next-concept.
type NextConceptResponse struct {
	ConceptID  string `json:"concept_id"`
	Name       string `json:"name"`
	Subject    string `json:"subject"`
	Difficulty int    `json:"difficulty"`
}

// SessionSummaryResponse is the body of DELETE /sessions/{id}. Duration
// goes over the wire in seconds rather than as a raw time.Duration.
type SessionSummaryResponse struct {
	SessionID       string    `json:"session_id"`
	UserID          string    `json:"user_id"`
	Subject         string    `json:"subject"`
	StartedAt       time.Time `json:"started_at"`
	EndedAt         time.Time `json:"ended_at"`
	DurationSeconds float64   `json:"duration_seconds"`
	MessageCount    int       `json:"message_count"`
	Topics          []string  `json:"topics,omitempty"`
	Concepts        []string  `json:"concepts,omitempty"`
	MasteryGain     float64   `json:"mastery_gain"`
	EngagementScore float64   `json:"engagement_score"`
	ComplexityScore float64   `json:"complexity_score"`
}

func toReplyResponse(reply *domain.Reply) ReplyResponse {
	return ReplyResponse{
		SessionID:  reply.SessionID.String(),
		Text:       reply.Text,
		Intent:     string(reply.Intent),
		Emotion:    string(reply.Emotion),
		Complexity: string(reply.Complexity),
		FromCache:  reply.FromCache,
		XPAwarded:  reply.XPAwarded,
		NewBadges:  reply.NewBadges,
		CreatedAt:  reply.CreatedAt,
	}
}

func toSessionSummaryResponse(summary *domain.SessionSummary) SessionSummaryResponse {
	return SessionSummaryResponse{
		SessionID:       summary.SessionID.String(),
		UserID:          summary.UserID,
		Subject:         summary.Subject,
		StartedAt:       summary.StartedAt,
		EndedAt:         summary.EndedAt,
		DurationSeconds: summary.Duration.Seconds(),
		MessageCount:    summary.MessageCount,
		Topics:          summary.Topics,
		Concepts:        summary.Concepts,
		MasteryGain:     summary.MasteryGain,
		EngagementScore: summary.EngagementScore,
		ComplexityScore: summary.ComplexityScore,
	}
}
