package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/quillmind/tutor-api/internal/domain"
	"github.com/quillmind/tutor-api/internal/platform/logger"
	"github.com/quillmind/tutor-api/internal/store"
)

// PostgresSessionStore implements store.SessionStore over PostgreSQL.
// Topic and concept lists ride along as a JSONB payload next to the
// queryable columns.
type PostgresSessionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSessionStore creates a PostgreSQL-backed session store.
// If logger is nil, slog.Default() is used.
func NewPostgresSessionStore(db store.DBTX, logger *slog.Logger) *PostgresSessionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresSessionStore{
		db:     db,
		logger: logger.With(slog.String("component", "session_store")),
	}
}

var _ store.SessionStore = (*PostgresSessionStore)(nil)

// sessionPayload holds the summary fields without dedicated columns.
type sessionPayload struct {
	Topics          []string `json:"topics"`
	Concepts        []string `json:"concepts"`
	MasteryGain     float64  `json:"mastery_gain"`
	EngagementScore float64  `json:"engagement_score"`
	ComplexityScore float64  `json:"complexity_score"`
}

// Save implements store.SessionStore.Save.
func (s *PostgresSessionStore) Save(ctx context.Context, summary *domain.SessionSummary) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	payload, err := json.Marshal(sessionPayload{
		Topics:          summary.Topics,
		Concepts:        summary.Concepts,
		MasteryGain:     summary.MasteryGain,
		EngagementScore: summary.EngagementScore,
		ComplexityScore: summary.ComplexityScore,
	})
	if err != nil {
		return store.NewStoreError("session.save", fmt.Errorf("encode payload: %w", err))
	}

	query := `
		INSERT INTO sessions (id, user_id, subject, started_at, ended_at, message_count, payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		summary.SessionID,
		summary.UserID,
		summary.Subject,
		summary.StartedAt,
		summary.EndedAt,
		summary.MessageCount,
		payload,
	)
	if err != nil {
		log.Error("failed to save session summary",
			slog.String("error", err.Error()),
			slog.String("session_id", summary.SessionID.String()))
		return store.NewStoreError("session.save", MapError(err))
	}
	return nil
}

// ListRecentByUser implements store.SessionStore.ListRecentByUser,
// newest sessions first.
func (s *PostgresSessionStore) ListRecentByUser(ctx context.Context, userID string, limit int) ([]*domain.SessionSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, subject, started_at, ended_at, message_count, payload
		FROM sessions
		WHERE user_id = $1
		ORDER BY ended_at DESC
		LIMIT $2
	`
	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		log.Error("failed to list sessions",
			slog.String("error", err.Error()),
			slog.String("user_id", userID))
		return nil, store.NewStoreError("session.list", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	var summaries []*domain.SessionSummary
	for rows.Next() {
		var (
			sum     domain.SessionSummary
			encoded []byte
		)
		if err := rows.Scan(&sum.SessionID, &sum.UserID, &sum.Subject, &sum.StartedAt, &sum.EndedAt, &sum.MessageCount, &encoded); err != nil {
			return nil, store.NewStoreError("session.list", MapError(err))
		}
		var payload sessionPayload
		if err := json.Unmarshal(encoded, &payload); err != nil {
			return nil, store.NewStoreError("session.list", fmt.Errorf("decode payload: %w", err))
		}
		sum.Topics = payload.Topics
		sum.Concepts = payload.Concepts
		sum.MasteryGain = payload.MasteryGain
		sum.EngagementScore = payload.EngagementScore
		sum.ComplexityScore = payload.ComplexityScore
		sum.Duration = sum.EndedAt.Sub(sum.StartedAt)
		summaries = append(summaries, &sum)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("session.list", MapError(err))
	}
	return summaries, nil
}
