package handler

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundhaus/booking-api/internal/model"
)

func TestBuildEventView(t *testing.T) {
	basic := uint32(40)
	price := func(s string) decimal.NullDecimal {
		d, err := decimal.NewFromString(s)
		require.NoError(t, err)
		return decimal.NullDecimal{Decimal: d, Valid: true}
	}
	event := model.Event{
		ID:          1,
		Title:       "Karaoke Night",
		TotalSeats:  100,
		AvailSeats:  100,
		BasicSeats:  &basic,
		TicketPrice: price("150.00"),
		BasicPrice:  price("99.00"),
	}
	seven := uint64(7)
	bookings := []model.EventBooking{
		{ID: 1, UserID: &seven, Status: model.StatusConfirmed, SeatNumbers: []string{"a1"}},
		{ID: 2, UserID: nil, Status: model.StatusCancelled, SeatNumbers: []string{"b1"}},
	}

	t.Run("guest", func(t *testing.T) {
		v := buildEventView(&event, bookings, nil)
		// headline price is the basic price, not the legacy column
		assert.True(t, v.TicketPrice.Equal(event.BasicPrice.Decimal))
		// cancelled booking's seat still shows as occupied
		assert.Equal(t, []string{"a1", "b1"}, v.BookedSeats)
		assert.Equal(t, []string{}, v.UserBookedSeat)
		// available_seats is reported as stored, never derived
		assert.Equal(t, uint32(100), v.AvailableSeats)
	})

	t.Run("authenticated", func(t *testing.T) {
		v := buildEventView(&event, bookings, &seven)
		assert.Equal(t, []string{"a1"}, v.UserBookedSeat)
	})

	t.Run("no bookings", func(t *testing.T) {
		v := buildEventView(&event, nil, nil)
		assert.NotNil(t, v.BookedSeats)
		assert.Empty(t, v.BookedSeats)
	})

	t.Run("display price falls back to legacy", func(t *testing.T) {
		e := event
		e.BasicPrice = decimal.NullDecimal{}
		v := buildEventView(&e, nil, nil)
		assert.True(t, v.TicketPrice.Equal(e.TicketPrice.Decimal))
	})
}
