package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    ReservationStatus
		to      ReservationStatus
		allowed bool
	}{
		{"pending to confirmed", Pending, Confirmed, true},
		{"pending to canceled", Pending, Canceled, true},
		{"pending to rejected", Pending, Rejected, true},
		{"pending to completed", Pending, Completed, false},
		{"confirmed to canceled", Confirmed, Canceled, true},
		{"confirmed to completed", Confirmed, Completed, true},
		{"confirmed to rejected", Confirmed, Rejected, false},
		{"confirmed to pending", Confirmed, Pending, false},
		{"canceled is terminal", Canceled, Confirmed, false},
		{"rejected is terminal", Rejected, Pending, false},
		{"completed is terminal", Completed, Canceled, false},
		{"same status is a no-op", Confirmed, Confirmed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatusIsValid(t *testing.T) {
	for _, status := range []ReservationStatus{Pending, Confirmed, Canceled, Rejected, Completed} {
		assert.True(t, status.IsValid())
	}
	assert.False(t, ReservationStatus("ARCHIVED").IsValid())
	assert.False(t, ReservationStatus("").IsValid())
}

func TestNights(t *testing.T) {
	checkIn := time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)

	reservation := &Reservation{CheckIn: checkIn, CheckOut: checkIn.AddDate(0, 0, 3)}
	assert.Equal(t, 3, reservation.Nights())

	oneNight := &Reservation{CheckIn: checkIn, CheckOut: checkIn.AddDate(0, 0, 1)}
	assert.Equal(t, 1, oneNight.Nights())

	missing := &Reservation{CheckIn: checkIn}
	assert.Equal(t, 0, missing.Nights())
}

func TestConfirmStampsConfirmedAtOnce(t *testing.T) {
	reservation := &Reservation{Status: Pending}

	first := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	reservation.Confirm(first)

	require.NotNil(t, reservation.ConfirmedAt)
	assert.Equal(t, first, *reservation.ConfirmedAt)
	assert.Equal(t, Confirmed, reservation.Status)
	assert.Equal(t, first, reservation.UpdatedAt)

	second := first.Add(2 * time.Hour)
	reservation.Confirm(second)

	assert.Equal(t, first, *reservation.ConfirmedAt, "confirmed_at must not move on repeat confirmation")
	assert.Equal(t, second, reservation.UpdatedAt)
}

func TestCancelStampsCanceledAtAndReason(t *testing.T) {
	reservation := &Reservation{Status: Confirmed}

	now := time.Date(2026, 7, 2, 9, 30, 0, 0, time.UTC)
	reservation.Cancel("change of plans", now)

	require.NotNil(t, reservation.CanceledAt)
	assert.Equal(t, now, *reservation.CanceledAt)
	assert.Equal(t, Canceled, reservation.Status)
	assert.Equal(t, "change of plans", reservation.CancellationReason)
	assert.Nil(t, reservation.ConfirmedAt)
}

func TestRejectKeepsReason(t *testing.T) {
	reservation := &Reservation{Status: Pending}

	now := time.Now().UTC()
	reservation.Reject("dates blocked for maintenance", now)

	assert.Equal(t, Rejected, reservation.Status)
	assert.Equal(t, "dates blocked for maintenance", reservation.CancellationReason)
	assert.Nil(t, reservation.CanceledAt)
}

func TestNewReservationResponseIncludesNights(t *testing.T) {
	checkIn := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	reservation := &Reservation{
		CheckIn:  checkIn,
		CheckOut: checkIn.AddDate(0, 0, 4),
		Status:   Pending,
	}

	response := NewReservationResponse(reservation)

	assert.Equal(t, 4, response.Nights)
	assert.Equal(t, "2026-08-01", response.CheckIn)
	assert.Equal(t, "2026-08-05", response.CheckOut)
}

func TestDecimalRoundTrip(t *testing.T) {
	rate, _, err := ParsePriceString("$50")
	require.NoError(t, err)

	stored := DecimalToPrimitive(rate)
	back, err := PrimitiveToDecimal(stored)
	require.NoError(t, err)

	assert.True(t, rate.Equal(back))
}
