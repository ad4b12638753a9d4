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

// PostgresProfileStore implements store.ProfileStore over PostgreSQL.
// The profile is stored as a single JSONB payload per user: profiles are
// always read and written whole, so a column-per-field layout would only
// add migration churn.
type PostgresProfileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProfileStore creates a PostgreSQL-backed profile store.
// The database handle is initialized and managed by the caller. If
// logger is nil, slog.Default() is used.
func NewPostgresProfileStore(db store.DBTX, logger *slog.Logger) *PostgresProfileStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresProfileStore{
		db:     db,
		logger: logger.With(slog.String("component", "profile_store")),
	}
}

var _ store.ProfileStore = (*PostgresProfileStore)(nil)

// GetByUserID implements store.ProfileStore.GetByUserID.
// Returns store.ErrProfileNotFound when no row exists for the user.
func (s *PostgresProfileStore) GetByUserID(ctx context.Context, userID string) (*domain.LearningProfile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT payload FROM learning_profiles WHERE user_id = $1`

	var payload []byte
	if err := s.db.QueryRowContext(ctx, query, userID).Scan(&payload); err != nil {
		mapped := MapError(err)
		if store.IsNotFoundError(mapped) {
			return nil, store.ErrProfileNotFound
		}
		log.Error("failed to load learning profile",
			slog.String("error", err.Error()),
			slog.String("user_id", userID))
		return nil, store.NewStoreError("profile.get", mapped)
	}

	var profile domain.LearningProfile
	if err := json.Unmarshal(payload, &profile); err != nil {
		log.Error("failed to decode learning profile payload",
			slog.String("error", err.Error()),
			slog.String("user_id", userID))
		return nil, store.NewStoreError("profile.get", fmt.Errorf("decode payload: %w", err))
	}
	return &profile, nil
}

// Save implements store.ProfileStore.Save with an upsert keyed on user_id.
func (s *PostgresProfileStore) Save(ctx context.Context, profile *domain.LearningProfile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := profile.Validate(); err != nil {
		log.Warn("profile validation failed during save",
			slog.String("error", err.Error()),
			slog.String("user_id", profile.UserID))
		return store.NewStoreError("profile.save", fmt.Errorf("%w: %v", store.ErrInvalidEntity, err))
	}

	payload, err := json.Marshal(profile)
	if err != nil {
		return store.NewStoreError("profile.save", fmt.Errorf("encode payload: %w", err))
	}

	query := `
		INSERT INTO learning_profiles (user_id, payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, profile.UserID, payload, profile.CreatedAt, profile.UpdatedAt); err != nil {
		log.Error("failed to save learning profile",
			slog.String("error", err.Error()),
			slog.String("user_id", profile.UserID))
		return store.NewStoreError("profile.save", MapError(err))
	}
	return nil
}
