package delivery_test

import (
	"errors"
	"testing"
	"time"

	"settlement/internal/core/domain/model/delivery"
	"settlement/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// restore builds a delivery forced into an arbitrary state pair.
func restore(t *testing.T, status delivery.Status, confirmation delivery.ConfirmationStatus) *delivery.Delivery {
	t.Helper()

	d, err := delivery.RestoreDelivery(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		status, confirmation,
		nil, kernel.ZeroWeight(),
		nil, nil, nil, nil, nil,
		time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), false,
	)
	require.NoError(t, err)
	return d
}

// TestTransitionTotality exercises every operation against every reachable
// (status, confirmation) pair: each call either succeeds and lands on exactly
// the documented next state, or fails with the invalid-transition sentinel.
func TestTransitionTotality(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	// reachable state pairs: confirmation only leaves Pending from Completed,
	// and cancellation freezes confirmation at Pending.
	pairs := []struct {
		status       delivery.Status
		confirmation delivery.ConfirmationStatus
	}{
		{delivery.StatusAssigned, delivery.ConfirmationPending},
		{delivery.StatusInProgress, delivery.ConfirmationPending},
		{delivery.StatusCompleted, delivery.ConfirmationPending},
		{delivery.StatusCompleted, delivery.ConfirmationConfirmed},
		{delivery.StatusCompleted, delivery.ConfirmationDenied},
		{delivery.StatusCancelled, delivery.ConfirmationPending},
	}

	type operation struct {
		name  string
		apply func(d *delivery.Delivery) error
		// allowed lists the state pairs the operation must succeed from
		allowed func(s delivery.Status, c delivery.ConfirmationStatus) bool
		// expected status/confirmation after a successful call
		wantStatus       func(s delivery.Status) delivery.Status
		wantConfirmation func(c delivery.ConfirmationStatus) delivery.ConfirmationStatus
	}

	same := func(c delivery.ConfirmationStatus) delivery.ConfirmationStatus { return c }

	operations := []operation{
		{
			name:  "start",
			apply: func(d *delivery.Delivery) error { return d.MarkInProgress() },
			allowed: func(s delivery.Status, _ delivery.ConfirmationStatus) bool {
				return s == delivery.StatusAssigned
			},
			wantStatus:       func(delivery.Status) delivery.Status { return delivery.StatusInProgress },
			wantConfirmation: same,
		},
		{
			name:  "complete",
			apply: func(d *delivery.Delivery) error { return d.MarkCompleted("12A345") },
			allowed: func(s delivery.Status, _ delivery.ConfirmationStatus) bool {
				return s == delivery.StatusAssigned || s == delivery.StatusInProgress
			},
			wantStatus:       func(delivery.Status) delivery.Status { return delivery.StatusCompleted },
			wantConfirmation: same,
		},
		{
			name:  "confirm",
			apply: func(d *delivery.Delivery) error { return d.Confirm(now) },
			allowed: func(s delivery.Status, c delivery.ConfirmationStatus) bool {
				return s == delivery.StatusCompleted && c == delivery.ConfirmationPending
			},
			wantStatus: func(s delivery.Status) delivery.Status { return s },
			wantConfirmation: func(delivery.ConfirmationStatus) delivery.ConfirmationStatus {
				return delivery.ConfirmationConfirmed
			},
		},
		{
			name:  "deny",
			apply: func(d *delivery.Delivery) error { return d.Deny("wrong weights") },
			allowed: func(s delivery.Status, c delivery.ConfirmationStatus) bool {
				return s == delivery.StatusCompleted && c == delivery.ConfirmationPending
			},
			wantStatus: func(s delivery.Status) delivery.Status { return s },
			wantConfirmation: func(delivery.ConfirmationStatus) delivery.ConfirmationStatus {
				return delivery.ConfirmationDenied
			},
		},
		{
			name:  "cancel",
			apply: func(d *delivery.Delivery) error { return d.Cancel("moved away") },
			allowed: func(s delivery.Status, c delivery.ConfirmationStatus) bool {
				return (s == delivery.StatusAssigned || s == delivery.StatusInProgress) &&
					c == delivery.ConfirmationPending
			},
			wantStatus:       func(delivery.Status) delivery.Status { return delivery.StatusCancelled },
			wantConfirmation: same,
		},
		{
			name:  "record non-delivery",
			apply: func(d *delivery.Delivery) error { return d.RecordNonDelivery("nobody home") },
			allowed: func(s delivery.Status, c delivery.ConfirmationStatus) bool {
				return (s == delivery.StatusAssigned || s == delivery.StatusInProgress) &&
					c == delivery.ConfirmationPending
			},
			wantStatus:       func(delivery.Status) delivery.Status { return delivery.StatusCancelled },
			wantConfirmation: same,
		},
	}

	for _, op := range operations {
		for _, pair := range pairs {
			name := op.name + " from " + pair.status.String() + "/" + pair.confirmation.String()
			t.Run(name, func(t *testing.T) {
				d := restore(t, pair.status, pair.confirmation)

				err := op.apply(d)

				if op.allowed(pair.status, pair.confirmation) {
					require.NoError(t, err)
					assert.Equal(t, op.wantStatus(pair.status), d.Status())
					assert.Equal(t, op.wantConfirmation(pair.confirmation), d.ConfirmationStatus())
				} else {
					require.Error(t, err)
					require.ErrorIs(t, err, delivery.ErrInvalidStateTransition)
					// rejected calls never mutate state
					assert.Equal(t, pair.status, d.Status())
					assert.Equal(t, pair.confirmation, d.ConfirmationStatus())
				}
			})
		}
	}
}

func TestInvalidStateTransitionError_Message(t *testing.T) {
	d := restore(t, delivery.StatusInProgress, delivery.ConfirmationPending)

	err := d.Confirm(time.Now())

	require.Error(t, err)

	var transitionErr *delivery.InvalidStateTransitionError
	require.True(t, errors.As(err, &transitionErr))
	assert.Equal(t, delivery.StatusInProgress, transitionErr.Status)
	assert.Contains(t, err.Error(), "confirm")
	assert.Contains(t, err.Error(), "InProgress")
	assert.Contains(t, err.Error(), "Completed")
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Assigned", delivery.StatusAssigned.String())
	assert.Equal(t, "InProgress", delivery.StatusInProgress.String())
	assert.Equal(t, "Completed", delivery.StatusCompleted.String())
	assert.Equal(t, "Cancelled", delivery.StatusCancelled.String())
	assert.Equal(t, "Unknown", delivery.Status(42).String())
}

func TestStatus_Validate(t *testing.T) {
	require.NoError(t, delivery.StatusAssigned.Validate())
	require.NoError(t, delivery.StatusCancelled.Validate())
	require.Error(t, delivery.StatusUnknown.Validate())
	require.Error(t, delivery.Status(99).Validate())
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, delivery.StatusAssigned.IsTerminal())
	assert.False(t, delivery.StatusInProgress.IsTerminal())
	assert.True(t, delivery.StatusCompleted.IsTerminal())
	assert.True(t, delivery.StatusCancelled.IsTerminal())
}

func TestConfirmationStatus_String(t *testing.T) {
	assert.Equal(t, "Pending", delivery.ConfirmationPending.String())
	assert.Equal(t, "Confirmed", delivery.ConfirmationConfirmed.String())
	assert.Equal(t, "Denied", delivery.ConfirmationDenied.String())
	assert.Equal(t, "Unknown", delivery.ConfirmationUnknown.String())
}
