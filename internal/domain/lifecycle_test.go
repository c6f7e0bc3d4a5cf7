package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition_AllowedEdges(t *testing.T) {
	allowed := []struct {
		from, to BookingStatus
	}{
		{StatusPending, StatusPendingPayment},
		{StatusPending, StatusConfirmed},
		{StatusPendingPayment, StatusConfirmed},
		{StatusConfirmed, StatusInProgress},
		{StatusInProgress, StatusCompleted},
		{StatusPending, StatusCancelled},
		{StatusPendingPayment, StatusCancelled},
		{StatusConfirmed, StatusCancelled},
		{StatusCompleted, StatusRefunded},
		{StatusConfirmed, StatusRefunded},
	}

	for _, tc := range allowed {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			assert.NoError(t, Transition(tc.from, tc.to))
		})
	}
}

func TestTransition_MatchesGraphForEveryPair(t *testing.T) {
	legal := map[[2]BookingStatus]bool{
		{StatusPending, StatusPendingPayment}:   true,
		{StatusPending, StatusConfirmed}:        true,
		{StatusPendingPayment, StatusConfirmed}: true,
		{StatusConfirmed, StatusInProgress}:     true,
		{StatusInProgress, StatusCompleted}:     true,
		{StatusPending, StatusCancelled}:        true,
		{StatusPendingPayment, StatusCancelled}: true,
		{StatusConfirmed, StatusCancelled}:      true,
		{StatusCompleted, StatusRefunded}:       true,
		{StatusConfirmed, StatusRefunded}:       true,
	}

	for _, from := range AllStatuses {
		for _, to := range AllStatuses {
			err := Transition(from, to)
			if legal[[2]BookingStatus{from, to}] {
				assert.NoError(t, err, "%s -> %s", from, to)
				continue
			}
			require.Error(t, err, "%s -> %s", from, to)

			var trErr *TransitionError
			require.True(t, errors.As(err, &trErr))
			assert.Equal(t, from, trErr.Current)
			assert.Equal(t, to, trErr.Requested)
			assert.ErrorIs(t, err, ErrInvalidTransition)
		}
	}
}

func TestTransition_TerminalStatusesHaveNoExit(t *testing.T) {
	for _, from := range []BookingStatus{StatusCancelled, StatusRefunded} {
		for _, to := range AllStatuses {
			assert.False(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}

	// COMPLETED допускает только возврат средств
	for _, to := range AllStatuses {
		if to == StatusRefunded {
			continue
		}
		assert.False(t, CanTransition(StatusCompleted, to), "COMPLETED -> %s", to)
	}
}

func TestTransition_CancelCompletedIsRejected(t *testing.T) {
	err := Transition(StatusCompleted, StatusCancelled)

	var trErr *TransitionError
	require.ErrorAs(t, err, &trErr)
	assert.Equal(t, StatusCompleted, trErr.Current)
	assert.Equal(t, StatusCancelled, trErr.Requested)
}

func TestTransition_InProgressCannotBeCancelled(t *testing.T) {
	assert.Error(t, Transition(StatusInProgress, StatusCancelled))
}

func TestTransition_UnknownStatus(t *testing.T) {
	assert.Error(t, Transition("ARCHIVED", StatusCancelled))
	assert.Error(t, Transition(StatusPending, "ARCHIVED"))
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusPending, InitialStatus(false))
	assert.Equal(t, StatusPendingPayment, InitialStatus(true))
}

func TestCanReschedule(t *testing.T) {
	assert.True(t, CanReschedule(StatusPending))
	assert.True(t, CanReschedule(StatusPendingPayment))
	assert.True(t, CanReschedule(StatusConfirmed))
	assert.True(t, CanReschedule(StatusInProgress))
	assert.False(t, CanReschedule(StatusCompleted))
	assert.False(t, CanReschedule(StatusCancelled))
	assert.False(t, CanReschedule(StatusRefunded))
	assert.False(t, CanReschedule("UNKNOWN"))
}

func TestTransitionError_Message(t *testing.T) {
	err := &TransitionError{Current: StatusCompleted, Requested: StatusCancelled}
	assert.Contains(t, err.Error(), "COMPLETED -> CANCELLED")

	err = &TransitionError{Operation: "reschedule", Current: StatusCancelled, Requested: StatusCancelled}
	assert.Contains(t, err.Error(), "does not allow reschedule")
}

func TestBookingsFilter_Offset(t *testing.T) {
	assert.Equal(t, 0, BookingsFilter{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, BookingsFilter{Page: 3, Limit: 20}.Offset())
	assert.Equal(t, 0, BookingsFilter{Page: 0, Limit: 20}.Offset())
}
