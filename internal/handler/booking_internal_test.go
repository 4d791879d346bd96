package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundhaus/booking-api/internal/model"
)

func TestParseSeatNumbers(t *testing.T) {
	seats, ferr := parseSeatNumbers(nil)
	require.Nil(t, ferr)
	assert.Nil(t, seats)

	seats, ferr = parseSeatNumbers(json.RawMessage(`null`))
	require.Nil(t, ferr)
	assert.Nil(t, seats)

	seats, ferr = parseSeatNumbers(json.RawMessage(`[" a1 ","","b2"]`))
	require.Nil(t, ferr)
	assert.Equal(t, []string{"a1", "b2"}, seats)

	seats, ferr = parseSeatNumbers(json.RawMessage(`"a1, b2"`))
	require.Nil(t, ferr)
	assert.Equal(t, []string{"a1", "b2"}, seats)

	_, ferr = parseSeatNumbers(json.RawMessage(`{"seat":"a1"}`))
	require.NotNil(t, ferr)
	assert.Equal(t, "seat_numbers", ferr.Field)
}

func TestResolveTicketCount(t *testing.T) {
	i64 := func(n int64) *int64 { return &n }

	count, ferr := resolveTicketCount(nil, 100, "general")
	require.Nil(t, ferr)
	assert.Equal(t, uint32(1), count)

	count, ferr = resolveTicketCount(i64(3), 100, "general")
	require.Nil(t, ferr)
	assert.Equal(t, uint32(3), count)

	_, ferr = resolveTicketCount(i64(0), 100, "general")
	require.NotNil(t, ferr)
	assert.Equal(t, "number_of_tickets", ferr.Field)
	assert.Equal(t, "must be at least 1", ferr.Message)

	_, ferr = resolveTicketCount(i64(101), 100, "basic")
	require.NotNil(t, ferr)
	assert.Equal(t, "Maximum 100 ticket(s) available for basic tier.", ferr.Message)

	// 2^32+1 would narrow to 1 if converted before the comparison.
	_, ferr = resolveTicketCount(i64(1<<32+1), 100, "basic")
	require.NotNil(t, ferr)
	assert.Equal(t, "Maximum 100 ticket(s) available for basic tier.", ferr.Message)

	_, ferr = resolveTicketCount(i64(1<<32+1), 0, "premium")
	require.NotNil(t, ferr)
	assert.Equal(t, "number_of_tickets", ferr.Field)
}

func TestToBookingViewSeatsNeverNull(t *testing.T) {
	v := toBookingView(&model.EventBooking{ID: 1})
	assert.NotNil(t, v.SeatNumbers)
	assert.Empty(t, v.SeatNumbers)
}

func TestGetUserID(t *testing.T) {
	e := echo.New()
	ctx := func(v any) echo.Context {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		if v != nil {
			c.Set("user_id", v)
		}
		return c
	}

	// JWT claims decode numbers as float64
	id, err := getUserID(ctx(float64(12)))
	require.NoError(t, err)
	assert.Equal(t, uint64(12), id)

	id, err = getUserID(ctx("34"))
	require.NoError(t, err)
	assert.Equal(t, uint64(34), id)

	_, err = getUserID(ctx(nil))
	assert.Error(t, err)
	assert.Nil(t, optionalUserID(ctx(nil)))

	got := optionalUserID(ctx(float64(5)))
	require.NotNil(t, got)
	assert.Equal(t, uint64(5), *got)
}
