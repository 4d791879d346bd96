package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soundhaus/booking-api/internal/model"
)

func TestNormalizeSeatList(t *testing.T) {
	assert.Nil(t, model.NormalizeSeatList(nil))
	assert.Equal(t, []string{}, model.NormalizeSeatList([]string{}))
	assert.Equal(t,
		[]string{"vip-1-01", "vip-1-02"},
		model.NormalizeSeatList([]string{" vip-1-01 ", "", "vip-1-02", "  "}))
}

func TestSplitSeatCSV(t *testing.T) {
	assert.Equal(t,
		[]string{"basic-2-05", "basic-2-06"},
		model.SplitSeatCSV("basic-2-05, basic-2-06"))
	assert.Equal(t, []string{"a"}, model.SplitSeatCSV(",a,,"))
	assert.Equal(t, []string{}, model.SplitSeatCSV(""))
}

func TestComputeTotal(t *testing.T) {
	total := model.ComputeTotal(dec("12.34"), 3)
	assert.True(t, total.Equal(dec("37.02")), "got %s", total)
	assert.True(t, model.ComputeTotal(dec("99.99"), 0).IsZero())
}

func TestValidStatus(t *testing.T) {
	assert.True(t, model.ValidStatus("pending"))
	assert.True(t, model.ValidStatus("confirmed"))
	assert.True(t, model.ValidStatus("cancelled"))
	assert.False(t, model.ValidStatus("Confirmed"))
	assert.False(t, model.ValidStatus("done"))
	assert.False(t, model.ValidStatus(""))
}

func TestValidPaymentMethod(t *testing.T) {
	for _, m := range []string{"UPI", "Card", "Cash"} {
		assert.True(t, model.ValidPaymentMethod(m), m)
	}
	// NetBanking is only valid on standalone payment records
	assert.False(t, model.ValidPaymentMethod("NetBanking"))
	assert.True(t, model.ValidPaymentRecordMethod("NetBanking"))
	assert.False(t, model.ValidPaymentMethod("upi"))
}
