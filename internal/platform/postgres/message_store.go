package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/quillmind/tutor-api/internal/domain"
	"github.com/quillmind/tutor-api/internal/platform/logger"
	"github.com/quillmind/tutor-api/internal/store"
)

// PostgresMessageStore implements store.MessageStore over PostgreSQL.
type PostgresMessageStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresMessageStore creates a PostgreSQL-backed message store.
// If logger is nil, slog.Default() is used.
func NewPostgresMessageStore(db store.DBTX, logger *slog.Logger) *PostgresMessageStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresMessageStore{
		db:     db,
		logger: logger.With(slog.String("component", "message_store")),
	}
}

var _ store.MessageStore = (*PostgresMessageStore)(nil)

// Save implements store.MessageStore.Save.
func (s *PostgresMessageStore) Save(ctx context.Context, message *domain.Message) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := message.Validate(); err != nil {
		log.Warn("message validation failed during save",
			slog.String("error", err.Error()),
			slog.String("message_id", message.ID.String()))
		return store.NewStoreError("message.save", fmt.Errorf("%w: %v", store.ErrInvalidEntity, err))
	}

	query := `
		INSERT INTO messages (id, session_id, user_id, role, text, intent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		message.ID,
		message.SessionID,
		message.UserID,
		message.Role,
		message.Text,
		message.Intent,
		message.CreatedAt,
	)
	if err != nil {
		log.Error("failed to save message",
			slog.String("error", err.Error()),
			slog.String("message_id", message.ID.String()),
			slog.String("session_id", message.SessionID.String()))
		return store.NewStoreError("message.save", MapError(err))
	}
	return nil
}

// ListBySession implements store.MessageStore.ListBySession, returning
// messages in creation order.
func (s *PostgresMessageStore) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.Message, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, session_id, user_id, role, text, intent, created_at
		FROM messages
		WHERE session_id = $1
		ORDER BY created_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		log.Error("failed to list messages",
			slog.String("error", err.Error()),
			slog.String("session_id", sessionID.String()))
		return nil, store.NewStoreError("message.list", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	var messages []*domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.SessionID, &m.UserID, &m.Role, &m.Text, &m.Intent, &m.CreatedAt); err != nil {
			return nil, store.NewStoreError("message.list", MapError(err))
		}
		messages = append(messages, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("message.list", MapError(err))
	}
	return messages, nil
}
