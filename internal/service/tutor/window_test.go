package tutor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestActiveWindow(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)

	tests := []struct {
		name string
		last time.Time
		want time.Duration
	}{
		{"last message mid-session", start.Add(10 * time.Minute), 10 * time.Minute},
		{"last message at session end", end, 30 * time.Minute},
		{"no messages", time.Time{}, 30 * time.Minute},
		{"stale timestamp before start", start.Add(-time.Hour), 30 * time.Minute},
		{"timestamp from a later session", end.Add(time.Hour), 30 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, activeWindow(start, tt.last, end))
		})
	}
}
