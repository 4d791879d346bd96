package model

import "encoding/json"

// DecodeSeatNumbers turns a raw seat_numbers column value into a seat list.
// Current rows store a JSON array of strings; legacy rows hold either a JSON
// string or a bare CSV string. nil input decodes to nil.
func DecodeSeatNumbers(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return NormalizeSeatList(list)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return SplitSeatCSV(s)
	}
	return SplitSeatCSV(string(raw))
}

// EncodeSeatNumbers serializes a seat list for storage. nil encodes to nil so
// the column stays NULL when seats were never supplied.
func EncodeSeatNumbers(seats []string) ([]byte, error) {
	if seats == nil {
		return nil, nil
	}
	return json.Marshal(seats)
}

// FlattenBookedSeats collects every seat id booked against an event, in
// booking order. Cancelled bookings are included: a seat stays blocked until
// the row is deleted, not merely cancelled.
func FlattenBookedSeats(bookings []EventBooking) []string {
	out := []string{}
	for _, b := range bookings {
		out = append(out, b.SeatNumbers...)
	}
	return out
}

// SeatsForUser collects the seat ids booked by one user across an event's
// bookings. Guest bookings (nil UserID) never match.
func SeatsForUser(bookings []EventBooking, userID uint64) []string {
	out := []string{}
	for _, b := range bookings {
		if b.UserID != nil && *b.UserID == userID {
			out = append(out, b.SeatNumbers...)
		}
	}
	return out
}
