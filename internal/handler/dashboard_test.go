package handler_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundhaus/booking-api/internal/handler"
	"github.com/soundhaus/booking-api/internal/model"
)

type fakeBookingLister struct {
	bookings []model.EventBooking
	gotLimit int
}

func (f *fakeBookingLister) ListRecent(_ context.Context, limit int) ([]model.EventBooking, error) {
	f.gotLimit = limit
	return f.bookings, nil
}

type fakePaymentLister struct {
	payments []model.Payment
}

func (f *fakePaymentLister) ListRecent(_ context.Context, _ int) ([]model.Payment, error) {
	return f.payments, nil
}

func TestBookingSourceRecent(t *testing.T) {
	lister := &fakeBookingLister{bookings: []model.EventBooking{
		{
			ID:           3,
			CustomerName: "Asha",
			EventName:    "Friday Live",
			TotalAmount:  decimal.NewFromInt(600),
			CreatedAt:    "2026-08-29 18:00:00",
		},
	}}
	src := handler.BookingSource{Bookings: lister}
	assert.Equal(t, "bookings", src.Name())

	items, err := src.Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, lister.gotLimit)
	require.Len(t, items, 1)
	assert.Equal(t, "event_booking", items[0].Kind)
	assert.Equal(t, uint64(3), items[0].ID)
	assert.Equal(t, "Asha / Friday Live", items[0].Label)
	require.NotNil(t, items[0].Amount)
	assert.True(t, items[0].Amount.Equal(decimal.NewFromInt(600)))
	assert.Equal(t, "2026-08-29 18:00:00", items[0].CreatedAt)
}

func TestPaymentSourceRecent(t *testing.T) {
	src := handler.PaymentSource{Payments: &fakePaymentLister{payments: []model.Payment{
		{ID: 9, Customer: "Ravi", Amount: decimal.NewFromInt(1200), CreatedAt: "2026-08-28 10:00:00"},
	}}}
	assert.Equal(t, "payments", src.Name())

	items, err := src.Recent(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "payment", items[0].Kind)
	assert.Equal(t, "Ravi", items[0].Label)
	require.NotNil(t, items[0].Amount)
	assert.True(t, items[0].Amount.Equal(decimal.NewFromInt(1200)))
}

func TestRecentSourcesReturnEmptyNotNil(t *testing.T) {
	items, err := handler.BookingSource{Bookings: &fakeBookingLister{}}.Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
