package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/quillmind/tutor-api/internal/store"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   error
		want error
	}{
		{
			name: "nil passes through",
			in:   nil,
			want: nil,
		},
		{
			name: "no rows becomes not found",
			in:   sql.ErrNoRows,
			want: store.ErrNotFound,
		},
		{
			name: "wrapped no rows becomes not found",
			in:   fmt.Errorf("query: %w", sql.ErrNoRows),
			want: store.ErrNotFound,
		},
		{
			name: "unique violation becomes duplicate",
			in:   &pgconn.PgError{Code: uniqueViolationCode},
			want: store.ErrDuplicate,
		},
		{
			name: "foreign key violation becomes invalid entity",
			in:   &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "messages_session_fk"},
			want: store.ErrInvalidEntity,
		},
		{
			name: "check violation becomes invalid entity",
			in:   &pgconn.PgError{Code: checkViolationCode},
			want: store.ErrInvalidEntity,
		},
		{
			name: "not null violation becomes invalid entity",
			in:   &pgconn.PgError{Code: notNullViolationCode, ColumnName: "user_id"},
			want: store.ErrInvalidEntity,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := MapError(tc.in)
			if tc.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.want)
		})
	}
}

func TestMapErrorPreservesUnknownErrors(t *testing.T) {
	t.Parallel()

	base := errors.New("connection refused")
	assert.Equal(t, base, MapError(base))
}
