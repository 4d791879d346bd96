package model_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundhaus/booking-api/internal/model"
)

func u32(v uint32) *uint32 { return &v }

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func nd(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: dec(s), Valid: true}
}

func TestNormalizeTier(t *testing.T) {
	assert.Equal(t, "vip", model.NormalizeTier(" VIP "))
	assert.Equal(t, "basic", model.NormalizeTier("Basic"))
	assert.Equal(t, "general", model.NormalizeTier(""))
	assert.Equal(t, "general", model.NormalizeTier("  "))
	assert.Equal(t, "balcony", model.NormalizeTier("Balcony"))
}

func TestTierCapacity(t *testing.T) {
	e := model.Event{
		TotalSeats: 100,
		BasicSeats: u32(40),
		VIPSeats:   u32(10),
	}
	assert.Equal(t, uint32(40), e.TierCapacity("basic"))
	assert.Equal(t, uint32(10), e.TierCapacity("VIP"))
	// premium is unconfigured, so its capacity is zero, not total_seats
	assert.Equal(t, uint32(0), e.TierCapacity("premium"))
	// general and unknown tiers fall back to total_seats
	assert.Equal(t, uint32(100), e.TierCapacity("general"))
	assert.Equal(t, uint32(100), e.TierCapacity(""))
	assert.Equal(t, uint32(100), e.TierCapacity("balcony"))
}

func TestCapacityIsStatic(t *testing.T) {
	// The tier capacity is the configured count, not seats remaining. A
	// second large booking against the same tier still passes the check.
	e := model.Event{TotalSeats: 50, VIPSeats: u32(10)}
	for range 3 {
		assert.Equal(t, uint32(10), e.TierCapacity("vip"))
	}
}

func TestUnitPriceTierThenLegacyThenZero(t *testing.T) {
	e := model.Event{
		TicketPrice: nd("150.00"),
		VIPPrice:    nd("200.00"),
	}
	// vip: tier price wins
	assert.True(t, e.UnitPrice("vip").Equal(dec("200.00")))
	// premium has no tier price: legacy ticket_price
	assert.True(t, e.UnitPrice("premium").Equal(dec("150.00")))
	// general always uses the legacy price
	assert.True(t, e.UnitPrice("general").Equal(dec("150.00")))

	bare := model.Event{}
	assert.True(t, bare.UnitPrice("vip").IsZero())
}

func TestPricingScenarios(t *testing.T) {
	t.Run("tier price", func(t *testing.T) {
		e := model.Event{TotalSeats: 100, BasicSeats: u32(50), BasicPrice: nd("200.00")}
		total := model.ComputeTotal(e.UnitPrice("basic"), 3)
		assert.True(t, total.Equal(dec("600.00")), "3 basic tickets at 200 = 600, got %s", total)
	})

	t.Run("legacy fallback", func(t *testing.T) {
		e := model.Event{TicketPrice: nd("150.00")}
		total := model.ComputeTotal(e.UnitPrice("basic"), 2)
		assert.True(t, total.Equal(dec("300.00")), "2 basic tickets fall back to 150 each, got %s", total)
	})
}

func TestOverbookingAcceptedAcrossBookings(t *testing.T) {
	// The capacity check compares the requested count against the static
	// basic_seats field only. After a booking takes both basic seats, a
	// further single-ticket booking still passes because 1 <= 2.
	e := model.Event{TotalSeats: 10, BasicSeats: u32(2)}
	capacity := e.TierCapacity("basic")

	firstTickets := uint32(2)
	assert.False(t, capacity > 0 && firstTickets > capacity)

	// nothing records the sold seats against the capacity
	secondTickets := uint32(1)
	assert.False(t, capacity > 0 && secondTickets > capacity)

	// a request above the configured capacity is still rejected
	thirdTickets := uint32(3)
	assert.True(t, capacity > 0 && thirdTickets > capacity)
}

func TestDisplayPrice(t *testing.T) {
	e := model.Event{BasicPrice: nd("99.50"), TicketPrice: nd("150.00")}
	assert.True(t, e.DisplayPrice().Equal(dec("99.50")))

	e = model.Event{TicketPrice: nd("150.00")}
	assert.True(t, e.DisplayPrice().Equal(dec("150.00")))

	assert.True(t, (&model.Event{}).DisplayPrice().IsZero())
}

func TestEventPatchApply(t *testing.T) {
	e := model.Event{
		Title:      "Friday Live",
		TotalSeats: 100,
		AvailSeats: 100,
		BasicPrice: nd("80.00"),
	}
	title := "Friday Live Session"
	vipPrice := dec("250.00")
	patch := model.EventPatch{Title: &title, VIPPrice: &vipPrice}
	patch.Apply(&e)

	assert.Equal(t, "Friday Live Session", e.Title)
	require.True(t, e.VIPPrice.Valid)
	assert.True(t, e.VIPPrice.Decimal.Equal(dec("250.00")))
	// untouched fields survive the patch
	assert.Equal(t, uint32(100), e.TotalSeats)
	require.True(t, e.BasicPrice.Valid)
	assert.True(t, e.BasicPrice.Decimal.Equal(dec("80.00")))
}

func TestValidateEvent(t *testing.T) {
	valid := model.Event{
		EventType:    model.EventTypeLive,
		TotalSeats:   100,
		AvailSeats:   100,
		BasicSeats:   u32(50),
		PremiumSeats: u32(30),
		VIPSeats:     u32(20),
	}
	assert.NoError(t, model.ValidateEvent(&valid))

	t.Run("negative price", func(t *testing.T) {
		e := valid
		e.VIPPrice = nd("-1.00")
		err := model.ValidateEvent(&e)
		require.Error(t, err)
		assert.Equal(t, "vip_price", err.(*model.FieldError).Field)
	})

	t.Run("available exceeds total", func(t *testing.T) {
		e := valid
		e.AvailSeats = 101
		err := model.ValidateEvent(&e)
		require.Error(t, err)
		assert.Equal(t, "available_seats", err.(*model.FieldError).Field)
	})

	t.Run("tier sum exceeds total", func(t *testing.T) {
		e := valid
		e.VIPSeats = u32(21)
		err := model.ValidateEvent(&e)
		require.Error(t, err)
		assert.Equal(t, "basic_seats", err.(*model.FieldError).Field)
	})

	t.Run("unknown event type", func(t *testing.T) {
		e := valid
		e.EventType = "festival"
		err := model.ValidateEvent(&e)
		require.Error(t, err)
		assert.Equal(t, "event_type", err.(*model.FieldError).Field)
	})

	t.Run("partial tier config is fine", func(t *testing.T) {
		e := model.Event{TotalSeats: 10, AvailSeats: 10, BasicSeats: u32(10)}
		assert.NoError(t, model.ValidateEvent(&e))
	})
}

func TestValidateEventOnMergedView(t *testing.T) {
	// A patch that only shrinks total_seats must still trip the tier-sum
	// check against the existing tier counts.
	e := model.Event{
		TotalSeats:   100,
		AvailSeats:   50,
		BasicSeats:   u32(60),
		PremiumSeats: u32(40),
	}
	total := uint32(80)
	model.EventPatch{TotalSeats: &total}.Apply(&e)
	err := model.ValidateEvent(&e)
	require.Error(t, err)
	assert.Equal(t, "basic_seats", err.(*model.FieldError).Field)
}
