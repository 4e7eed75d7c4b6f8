package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIsPastDueEqualityCountsAsPast(t *testing.T) {
	due := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)
	assignment := Assignment{DueDate: due}

	require.False(t, assignment.IsPastDue(due.Add(-time.Second)))
	require.True(t, assignment.IsPastDue(due))
	require.True(t, assignment.IsPastDue(due.Add(time.Second)))
}

func TestCanTransitionTo(t *testing.T) {
	draft := Assignment{Status: AssignmentStatusDraft}
	require.True(t, draft.CanTransitionTo(AssignmentStatusPublished))
	require.True(t, draft.CanTransitionTo(AssignmentStatusCancelled))
	require.False(t, draft.CanTransitionTo(AssignmentStatusClosed))

	published := Assignment{Status: AssignmentStatusPublished}
	require.True(t, published.CanTransitionTo(AssignmentStatusClosed))
	require.True(t, published.CanTransitionTo(AssignmentStatusCancelled))
	require.False(t, published.CanTransitionTo(AssignmentStatusDraft))

	closed := Assignment{Status: AssignmentStatusClosed}
	require.False(t, closed.CanTransitionTo(AssignmentStatusPublished))

	cancelled := Assignment{Status: AssignmentStatusCancelled}
	require.False(t, cancelled.CanTransitionTo(AssignmentStatusDraft))
	require.True(t, cancelled.IsTerminal())
}

func TestCountsTowardQuota(t *testing.T) {
	require.True(t, Assignment{Status: AssignmentStatusDraft}.CountsTowardQuota())
	require.True(t, Assignment{Status: AssignmentStatusPublished}.CountsTowardQuota())
	require.True(t, Assignment{Status: AssignmentStatusClosed}.CountsTowardQuota())
	require.False(t, Assignment{Status: AssignmentStatusCancelled}.CountsTowardQuota())
}
