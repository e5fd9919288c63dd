package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationStatusTransitionTable(t *testing.T) {
	t.Parallel()

	statuses := []ApplicationStatus{
		ApplicationApplied,
		ApplicationShortlisted,
		ApplicationRejected,
		ApplicationInterviewed,
		ApplicationHired,
	}

	allowed := map[ApplicationStatus][]ApplicationStatus{
		ApplicationApplied:     {ApplicationShortlisted, ApplicationRejected},
		ApplicationShortlisted: {ApplicationRejected, ApplicationHired, ApplicationInterviewed},
		ApplicationInterviewed: {ApplicationHired, ApplicationRejected},
		ApplicationRejected:    {},
		ApplicationHired:       {},
	}

	for _, from := range statuses {
		for _, to := range statuses {
			want := false
			for _, ok := range allowed[from] {
				if ok == to {
					want = true
				}
			}
			assert.Equalf(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestApplicationStatusTerminal(t *testing.T) {
	t.Parallel()

	assert.True(t, ApplicationHired.Terminal())
	assert.True(t, ApplicationRejected.Terminal())
	assert.False(t, ApplicationApplied.Terminal())
	assert.False(t, ApplicationShortlisted.Terminal())
	assert.False(t, ApplicationInterviewed.Terminal())
}

func TestParseApplicationStatus(t *testing.T) {
	t.Parallel()

	status, ok := ParseApplicationStatus("  Shortlisted ")
	require.True(t, ok)
	assert.Equal(t, ApplicationShortlisted, status)

	_, ok = ParseApplicationStatus("archived")
	assert.False(t, ok)

	_, ok = ParseApplicationStatus("")
	assert.False(t, ok)
}
