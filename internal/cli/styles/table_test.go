package styles

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/flexpane/internal/domain/entity"
)

func TestSizeHintRows(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	hints := []*entity.SizeHint{
		{ContainerName: "sidebar", Grow: 0.5, UpdatedAt: now.Add(-10 * time.Second)},
		{ContainerName: "editor", Grow: 1.25, UpdatedAt: now.Add(-5 * time.Minute)},
		{ContainerName: "dock", Grow: 0, UpdatedAt: now.Add(-3 * time.Hour)},
	}

	rows := SizeHintRows(hints, now)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"sidebar", "0.500", "just now"}, []string(rows[0]))
	assert.Equal(t, []string{"editor", "1.250", "5m ago"}, []string(rows[1]))
	assert.Equal(t, "3h ago", rows[2][2])
}

func TestRelativeTimeFallsBackToDate(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-02-20 08:30", relativeTime(time.Date(2025, 2, 20, 8, 30, 0, 0, time.UTC), now))
}
