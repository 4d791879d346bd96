package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Event types supported by the catalog.
const (
	EventTypeLive    = "live"
	EventTypeKaraoke = "karaoke"
)

// Ticket tiers accepted on bookings. "general" is the fallback tier and is
// priced/capacity-checked against the event-level legacy fields.
const (
	TierBasic   = "basic"
	TierPremium = "premium"
	TierVIP     = "vip"
	TierGeneral = "general"
)

// Event is a catalog entry for a ticketed event. It corresponds to a row in
// the `events` table.
//
// Seat accounting is intentionally loose: AvailableSeats is a write-once
// default (total_seats at creation when unset) and is never recomputed after
// bookings are made. Actual occupancy is derived at read time by flattening
// seat ids across the event's bookings. Tier seat counts and tier prices are
// all optional; nil means "not configured".
type Event struct {
	ID           uint64              // events.id
	Title        string              // events.title
	Location     string              // events.location
	Date         string              // events.date ("2006-01-02", UTC)
	TimeSlot     string              // events.time_slot (free text, e.g. "18:00 - 20:00")
	EventType    string              // events.event_type (live | karaoke)
	TotalSeats   uint32              // events.total_seats
	AvailSeats   uint32              // events.available_seats (legacy, not authoritative)
	BasicSeats   *uint32             // events.basic_seats (nullable)
	PremiumSeats *uint32             // events.premium_seats (nullable)
	VIPSeats     *uint32             // events.vip_seats (nullable)
	TicketPrice  decimal.NullDecimal // events.ticket_price (legacy general price)
	BasicPrice   decimal.NullDecimal // events.basic_price
	PremiumPrice decimal.NullDecimal // events.premium_price
	VIPPrice     decimal.NullDecimal // events.vip_price
	Description  string              // events.description
	CreatedAt    string              // events.created_at (DB timestamp string)
}

// TierCapacity resolves the configured seat capacity for a ticket tier.
// basic/premium/vip map to their tier seat fields (0 when unconfigured);
// everything else, including "general", falls back to total_seats. The value
// is the static configured capacity, not seats remaining.
func (e *Event) TierCapacity(ticketType string) uint32 {
	switch NormalizeTier(ticketType) {
	case TierBasic:
		if e.BasicSeats != nil {
			return *e.BasicSeats
		}
		return 0
	case TierPremium:
		if e.PremiumSeats != nil {
			return *e.PremiumSeats
		}
		return 0
	case TierVIP:
		if e.VIPSeats != nil {
			return *e.VIPSeats
		}
		return 0
	}
	return e.TotalSeats
}

// UnitPrice resolves the per-ticket price for a tier. The fallback chain is:
// tier-specific price when set, else the legacy ticket_price, else zero.
// First non-null wins; this is not an average.
func (e *Event) UnitPrice(ticketType string) decimal.Decimal {
	switch NormalizeTier(ticketType) {
	case TierBasic:
		if e.BasicPrice.Valid {
			return e.BasicPrice.Decimal
		}
	case TierPremium:
		if e.PremiumPrice.Valid {
			return e.PremiumPrice.Decimal
		}
	case TierVIP:
		if e.VIPPrice.Valid {
			return e.VIPPrice.Decimal
		}
	}
	if e.TicketPrice.Valid {
		return e.TicketPrice.Decimal
	}
	return decimal.Zero
}

// DisplayPrice is the headline price shown on event cards: basic_price when
// set, else the legacy ticket_price, else zero.
func (e *Event) DisplayPrice() decimal.Decimal {
	if e.BasicPrice.Valid {
		return e.BasicPrice.Decimal
	}
	if e.TicketPrice.Valid {
		return e.TicketPrice.Decimal
	}
	return decimal.Zero
}

// NormalizeTier lowercases and trims a ticket type and maps empty input to
// "general".
func NormalizeTier(ticketType string) string {
	t := strings.ToLower(strings.TrimSpace(ticketType))
	if t == "" {
		return TierGeneral
	}
	return t
}

// EventPatch carries incoming create/update values for an event. nil fields
// were not supplied by the caller; validation runs against the merged view of
// the patch and the existing row.
type EventPatch struct {
	Title        *string
	Location     *string
	Date         *string
	TimeSlot     *string
	EventType    *string
	TotalSeats   *uint32
	AvailSeats   *uint32
	BasicSeats   *uint32
	PremiumSeats *uint32
	VIPSeats     *uint32
	TicketPrice  *decimal.Decimal
	BasicPrice   *decimal.Decimal
	PremiumPrice *decimal.Decimal
	VIPPrice     *decimal.Decimal
	Description  *string
}

// Apply merges the patch onto an event. Price patches become valid
// NullDecimals; there is no way to null-out a price through a patch, matching
// the write API (omitting a field leaves it unchanged).
func (p EventPatch) Apply(e *Event) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.TimeSlot != nil {
		e.TimeSlot = *p.TimeSlot
	}
	if p.EventType != nil {
		e.EventType = *p.EventType
	}
	if p.TotalSeats != nil {
		e.TotalSeats = *p.TotalSeats
	}
	if p.AvailSeats != nil {
		e.AvailSeats = *p.AvailSeats
	}
	if p.BasicSeats != nil {
		e.BasicSeats = p.BasicSeats
	}
	if p.PremiumSeats != nil {
		e.PremiumSeats = p.PremiumSeats
	}
	if p.VIPSeats != nil {
		e.VIPSeats = p.VIPSeats
	}
	if p.TicketPrice != nil {
		e.TicketPrice = decimal.NullDecimal{Decimal: *p.TicketPrice, Valid: true}
	}
	if p.BasicPrice != nil {
		e.BasicPrice = decimal.NullDecimal{Decimal: *p.BasicPrice, Valid: true}
	}
	if p.PremiumPrice != nil {
		e.PremiumPrice = decimal.NullDecimal{Decimal: *p.PremiumPrice, Valid: true}
	}
	if p.VIPPrice != nil {
		e.VIPPrice = decimal.NullDecimal{Decimal: *p.VIPPrice, Valid: true}
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
}

// ValidateEvent checks cross-field consistency on the merged view of an
// event. It returns the first violation as a *FieldError so the handler can
// report which field is at fault.
//
// Rules: all prices, when set, must be >= 0; all seat counts must be >= 0
// (guaranteed by the unsigned types, kept here for the price fields);
// available_seats must not exceed total_seats; the sum of the three tier seat
// counts must not exceed total_seats.
func ValidateEvent(e *Event) error {
	prices := []struct {
		field string
		val   decimal.NullDecimal
	}{
		{"ticket_price", e.TicketPrice},
		{"basic_price", e.BasicPrice},
		{"premium_price", e.PremiumPrice},
		{"vip_price", e.VIPPrice},
	}
	for _, p := range prices {
		if p.val.Valid && p.val.Decimal.IsNegative() {
			return &FieldError{Field: p.field, Message: "must be >= 0"}
		}
	}
	if e.AvailSeats > e.TotalSeats {
		return &FieldError{Field: "available_seats", Message: "available seats cannot be more than total seats"}
	}
	var tierSum uint64
	for _, s := range []*uint32{e.BasicSeats, e.PremiumSeats, e.VIPSeats} {
		if s != nil {
			tierSum += uint64(*s)
		}
	}
	if tierSum > uint64(e.TotalSeats) {
		return &FieldError{Field: "basic_seats", Message: "sum of tier seats cannot exceed total seats"}
	}
	if e.EventType != "" && e.EventType != EventTypeLive && e.EventType != EventTypeKaraoke {
		return &FieldError{Field: "event_type", Message: fmt.Sprintf("must be %q or %q", EventTypeLive, EventTypeKaraoke)}
	}
	return nil
}
