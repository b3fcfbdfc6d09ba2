package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeginningOfDay(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)

	in := time.Date(2026, time.August, 28, 18, 45, 12, 999, loc)
	got := BeginningOfDay(in)

	assert.Equal(t, time.Date(2026, time.August, 28, 0, 0, 0, 0, loc), got)
	assert.Equal(t, loc, got.Location())
}

func TestTomorrow(t *testing.T) {
	rome, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)

	tests := []struct {
		name     string
		now      time.Time
		loc      *time.Location
		expected time.Time
	}{
		{
			name:     "midday",
			now:      time.Date(2026, time.August, 28, 12, 0, 0, 0, rome),
			loc:      rome,
			expected: time.Date(2026, time.August, 29, 0, 0, 0, 0, rome),
		},
		{
			// 22:30 UTC is already past midnight in Rome (UTC+2 in
			// summer), so the boundary must move one day further.
			name:     "salon day ahead of UTC day",
			now:      time.Date(2026, time.August, 28, 22, 30, 0, 0, time.UTC),
			loc:      rome,
			expected: time.Date(2026, time.August, 30, 0, 0, 0, 0, rome),
		},
		{
			name:     "utc policy",
			now:      time.Date(2026, time.August, 28, 22, 30, 0, 0, time.UTC),
			loc:      time.UTC,
			expected: time.Date(2026, time.August, 29, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, Tomorrow(tt.now, tt.loc).Equal(tt.expected))
		})
	}
}
