package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundhaus/booking-api/internal/model"
)

func uid(v uint64) *uint64 { return &v }

func TestDecodeSeatNumbers(t *testing.T) {
	assert.Nil(t, model.DecodeSeatNumbers(nil))
	assert.Equal(t, []string{"a", "b"}, model.DecodeSeatNumbers([]byte(`["a"," b "]`)))
	// legacy rows stored a JSON-quoted CSV string
	assert.Equal(t, []string{"a", "b"}, model.DecodeSeatNumbers([]byte(`"a, b"`)))
	// oldest rows stored a bare CSV string
	assert.Equal(t, []string{"a", "b"}, model.DecodeSeatNumbers([]byte(`a,b`)))
	assert.Equal(t, []string{}, model.DecodeSeatNumbers([]byte(`[]`)))
}

func TestEncodeSeatNumbers(t *testing.T) {
	raw, err := model.EncodeSeatNumbers(nil)
	require.NoError(t, err)
	assert.Nil(t, raw, "unset seats must store NULL, not an empty list")

	raw, err = model.EncodeSeatNumbers([]string{"vip-1-01"})
	require.NoError(t, err)
	assert.JSONEq(t, `["vip-1-01"]`, string(raw))
}

func TestFlattenBookedSeats(t *testing.T) {
	bookings := []model.EventBooking{
		{ID: 1, Status: model.StatusConfirmed, SeatNumbers: []string{"a1", "a2"}},
		{ID: 2, Status: model.StatusConfirmed, SeatNumbers: nil},
		{ID: 3, Status: model.StatusCancelled, SeatNumbers: []string{"b1"}},
	}
	// cancelled rows still block their seats
	assert.Equal(t, []string{"a1", "a2", "b1"}, model.FlattenBookedSeats(bookings))
	assert.Equal(t, []string{}, model.FlattenBookedSeats(nil))
}

func TestBookedSeatsIncludeCancelled(t *testing.T) {
	bookings := []model.EventBooking{
		{ID: 1, Status: model.StatusCancelled, SeatNumbers: []string{"vip-1-01"}},
	}
	assert.Contains(t, model.FlattenBookedSeats(bookings), "vip-1-01")
}

func TestSeatsForUser(t *testing.T) {
	bookings := []model.EventBooking{
		{ID: 1, UserID: uid(7), SeatNumbers: []string{"a1"}},
		{ID: 2, UserID: nil, SeatNumbers: []string{"g1"}}, // guest booking
		{ID: 3, UserID: uid(8), SeatNumbers: []string{"b1"}},
		{ID: 4, UserID: uid(7), SeatNumbers: []string{"a2"}},
	}
	assert.Equal(t, []string{"a1", "a2"}, model.SeatsForUser(bookings, 7))
	assert.Equal(t, []string{}, model.SeatsForUser(bookings, 99))
}
