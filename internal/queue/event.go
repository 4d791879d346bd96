// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when an event booking is recorded. It
// carries enough for downstream consumers to log or notify without querying
// the primary database. UserID is 0 for guest bookings.
type BookingConfirmedEvent struct {
	BookingID    uint64   `json:"booking_id"`
	UserID       uint64   `json:"user_id"`
	EventID      uint64   `json:"event_id"`
	EventName    string   `json:"event_name"`
	CustomerName string   `json:"customer_name"`
	TicketType   string   `json:"ticket_type"`
	NumTickets   uint32   `json:"number_of_tickets"`
	SeatNumbers  []string `json:"seat_numbers"`
	TotalAmount  string   `json:"total_amount"`
	ConfirmedAt  string   `json:"confirmed_at"`
}
