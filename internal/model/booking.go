package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Booking statuses. New bookings are stored as "confirmed"; "pending" is the
// schema default and only appears when a status is set manually.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Accepted payment methods for event bookings.
const (
	PaymentUPI  = "UPI"
	PaymentCard = "Card"
	PaymentCash = "Cash"
)

// EventBooking is a ledger entry recording a ticket purchase against an
// event. It corresponds to a row in the `event_bookings` table.
//
// EventName is a snapshot of the event title at booking time and does not
// follow later renames. SeatNumbers holds opaque seat-id strings like
// "premium-1-02"; uniqueness across bookings is not enforced, and the read
// model treats cancelled bookings' seats as occupied.
type EventBooking struct {
	ID            uint64          // event_bookings.id
	UserID        *uint64         // event_bookings.user_id (nullable, guest bookings allowed)
	EventID       uint64          // event_bookings.event_id
	EventName     string          // event_bookings.event_name (title snapshot)
	CustomerName  string          // event_bookings.customer_name
	ContactNumber string          // event_bookings.contact_number
	Email         string          // event_bookings.email
	TicketType    string          // event_bookings.ticket_type (basic|premium|vip|general)
	NumTickets    uint32          // event_bookings.number_of_tickets
	SeatNumbers   []string        // event_bookings.seat_numbers (JSON list; legacy rows hold CSV)
	TotalAmount   decimal.Decimal // event_bookings.total_amount
	PaymentMethod string          // event_bookings.payment_method (UPI|Card|Cash)
	Status        string          // event_bookings.status
	CreatedAt     string          // event_bookings.created_at (DB timestamp string)
}

// ValidStatus reports whether s is one of the booking status values.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether m is an accepted payment method.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentUPI, PaymentCard, PaymentCash:
		return true
	}
	return false
}

// NormalizeSeatList trims each entry and drops empties, preserving order.
// A nil input stays nil (seat numbers were not supplied).
func NormalizeSeatList(seats []string) []string {
	if seats == nil {
		return nil
	}
	out := make([]string, 0, len(seats))
	for _, s := range seats {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// SplitSeatCSV normalizes the legacy comma-separated seat representation into
// a list of trimmed, non-empty seat ids.
func SplitSeatCSV(csv string) []string {
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ComputeTotal multiplies a unit price by a ticket count without losing
// decimal precision.
func ComputeTotal(unit decimal.Decimal, tickets uint32) decimal.Decimal {
	return unit.Mul(decimal.NewFromInt(int64(tickets)))
}
