package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBookingStatusValid(t *testing.T) {
	for _, s := range []BookingStatus{
		BookingPending, BookingConfirmed, BookingActive,
		BookingInProgress, BookingCompleted, BookingCancelled,
	} {
		require.True(t, s.Valid(), "status %s should be valid", s)
	}
	require.False(t, BookingStatus("archived").Valid())
	require.False(t, BookingStatus("").Valid())
}

func TestBookingStatusTransitions(t *testing.T) {
	allowed := []struct {
		from, to BookingStatus
	}{
		{BookingPending, BookingConfirmed},
		{BookingPending, BookingCancelled},
		{BookingConfirmed, BookingActive},
		{BookingConfirmed, BookingInProgress},
		{BookingConfirmed, BookingCancelled},
		{BookingActive, BookingCompleted},
		{BookingInProgress, BookingCompleted},
	}
	for _, tc := range allowed {
		require.True(t, tc.from.CanTransition(tc.to), "%s -> %s should be legal", tc.from, tc.to)
	}

	denied := []struct {
		from, to BookingStatus
	}{
		// A walk cannot start before the walker has confirmed.
		{BookingPending, BookingActive},
		{BookingPending, BookingInProgress},
		{BookingPending, BookingCompleted},
		// Once underway, cancellation is no longer possible.
		{BookingActive, BookingCancelled},
		{BookingInProgress, BookingCancelled},
		// Terminal states go nowhere.
		{BookingCompleted, BookingActive},
		{BookingCompleted, BookingCancelled},
		{BookingCancelled, BookingConfirmed},
		{BookingCancelled, BookingPending},
		// No sideways moves between the two walking states.
		{BookingActive, BookingInProgress},
		{BookingInProgress, BookingActive},
	}
	for _, tc := range denied {
		require.False(t, tc.from.CanTransition(tc.to), "%s -> %s should be illegal", tc.from, tc.to)
	}
}

func TestBookingStatusIsWalking(t *testing.T) {
	require.True(t, BookingActive.IsWalking())
	require.True(t, BookingInProgress.IsWalking())
	require.False(t, BookingPending.IsWalking())
	require.False(t, BookingConfirmed.IsWalking())
	require.False(t, BookingCompleted.IsWalking())
	require.False(t, BookingCancelled.IsWalking())
}

func TestBookingStatusTerminal(t *testing.T) {
	require.True(t, BookingCompleted.Terminal())
	require.True(t, BookingCancelled.Terminal())
	require.False(t, BookingPending.Terminal())
	require.False(t, BookingActive.Terminal())
}

func TestWalkSessionID(t *testing.T) {
	solo := Booking{ID: "b1"}
	require.Equal(t, "b1", solo.WalkSessionID(), "solo walk tracks on the booking's own id")

	pack := Booking{ID: "b2", SessionID: "s9"}
	require.Equal(t, "s9", pack.WalkSessionID())
}
