package job

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosting_Transition(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := Posting{Status: StatusActive}

	require.NoError(t, p.Transition(StatusInactive, now))
	assert.Equal(t, StatusInactive, p.Status)
	require.NotNil(t, p.StatusChangedAt)
	assert.True(t, p.StatusChangedAt.Equal(now))

	later := now.Add(3 * time.Hour)
	require.NoError(t, p.Transition(StatusInactive, later))
	assert.True(t, p.StatusChangedAt.Equal(now), "same-status transition must not restart the window")

	assert.ErrorIs(t, p.Transition(Status("archived"), later), ErrUnknownStatus)
	assert.Equal(t, StatusInactive, p.Status)
}
