package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/soundhaus/booking-api/internal/model"
)

// EventBookingRepo provides CRUD operations for the booking ledger. Bookings
// are append-mostly: after creation only the status column changes.
type EventBookingRepo struct {
	db *sql.DB
}

// NewEventBookingRepo returns a repo bound to the given database.
func NewEventBookingRepo(db *sql.DB) *EventBookingRepo { return &EventBookingRepo{db: db} }

// DB exposes the underlying sql.DB for cross-repository transactions.
func (r *EventBookingRepo) DB() *sql.DB { return r.db }

const bookingCols = `id, user_id, event_id, event_name, customer_name, contact_number,
       email, ticket_type, number_of_tickets, seat_numbers, total_amount,
       payment_method, status, created_at`

func scanBooking(row interface{ Scan(...any) error }) (model.EventBooking, error) {
	var (
		b      model.EventBooking
		userID sql.NullInt64
		seats  []byte
	)
	err := row.Scan(&b.ID, &userID, &b.EventID, &b.EventName, &b.CustomerName,
		&b.ContactNumber, &b.Email, &b.TicketType, &b.NumTickets, &seats,
		&b.TotalAmount, &b.PaymentMethod, &b.Status, &b.CreatedAt)
	if err != nil {
		return model.EventBooking{}, err
	}
	if userID.Valid {
		v := uint64(userID.Int64)
		b.UserID = &v
	}
	b.SeatNumbers = model.DecodeSeatNumbers(seats)
	return b, nil
}

func userArg(p *uint64) any {
	if p == nil {
		return nil
	}
	return *p
}

// Create inserts a booking and reads the row back so created_at is populated.
// SeatNumbers are stored as a JSON array; a nil slice stores NULL.
func (r *EventBookingRepo) Create(ctx context.Context, b *model.EventBooking) error {
	seats, err := model.EncodeSeatNumbers(b.SeatNumbers)
	if err != nil {
		return err
	}
	const q = `INSERT INTO event_bookings
       (user_id, event_id, event_name, customer_name, contact_number, email,
        ticket_type, number_of_tickets, seat_numbers, total_amount, payment_method, status)
       VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		userArg(b.UserID), b.EventID, b.EventName, b.CustomerName, b.ContactNumber, b.Email,
		b.TicketType, b.NumTickets, seats, b.TotalAmount, b.PaymentMethod, b.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	const sel = `SELECT ` + bookingCols + ` FROM event_bookings WHERE id = ?`
	got, err := scanBooking(r.db.QueryRowContext(ctx, sel, id))
	if err != nil {
		return err
	}
	*b = got
	return nil
}

// GetByID retrieves a booking by id, or ErrBookingNotFound.
func (r *EventBookingRepo) GetByID(ctx context.Context, id uint64) (*model.EventBooking, error) {
	const q = `SELECT ` + bookingCols + ` FROM event_bookings WHERE id = ?`
	b, err := scanBooking(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// BookingDetail is a booking joined with a summary of its event, as returned
// to customers listing their own bookings.
type BookingDetail struct {
	Booking       model.EventBooking
	EventTitle    string
	EventLocation string
	EventDate     string
	EventTimeSlot string
}

// ListByUser returns a user's bookings, newest first, each joined with the
// current event summary. The event_name snapshot on the booking may differ
// from EventTitle when the event was renamed after booking.
func (r *EventBookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	const q = `SELECT b.id, b.user_id, b.event_id, b.event_name, b.customer_name,
              b.contact_number, b.email, b.ticket_type, b.number_of_tickets,
              b.seat_numbers, b.total_amount, b.payment_method, b.status, b.created_at,
              e.title, e.location, e.date, e.time_slot
       FROM event_bookings b
       JOIN events e ON e.id = b.event_id
       WHERE b.user_id = ?
       ORDER BY b.created_at DESC, b.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := []BookingDetail{}
	for rows.Next() {
		var (
			d     BookingDetail
			uid   sql.NullInt64
			seats []byte
		)
		if err := rows.Scan(&d.Booking.ID, &uid, &d.Booking.EventID, &d.Booking.EventName,
			&d.Booking.CustomerName, &d.Booking.ContactNumber, &d.Booking.Email,
			&d.Booking.TicketType, &d.Booking.NumTickets, &seats, &d.Booking.TotalAmount,
			&d.Booking.PaymentMethod, &d.Booking.Status, &d.Booking.CreatedAt,
			&d.EventTitle, &d.EventLocation, &d.EventDate, &d.EventTimeSlot); err != nil {
			return nil, err
		}
		if uid.Valid {
			v := uint64(uid.Int64)
			d.Booking.UserID = &v
		}
		d.Booking.SeatNumbers = model.DecodeSeatNumbers(seats)
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListByEvent returns all bookings against an event in creation order,
// oldest first, including cancelled rows. The catalog read model flattens
// these into the occupied-seat list.
func (r *EventBookingRepo) ListByEvent(ctx context.Context, eventID uint64) ([]model.EventBooking, error) {
	const q = `SELECT ` + bookingCols + ` FROM event_bookings
       WHERE event_id = ?
       ORDER BY created_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := []model.EventBooking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListRecent returns the most recent bookings across all events, for the
// dashboard.
func (r *EventBookingRepo) ListRecent(ctx context.Context, limit int) ([]model.EventBooking, error) {
	const q = `SELECT ` + bookingCols + ` FROM event_bookings
       ORDER BY created_at DESC, id DESC
       LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := []model.EventBooking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateStatus sets the status column. ErrBookingNotFound when the id does
// not exist; setting the same status again is not an error.
func (r *EventBookingRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE event_bookings SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var one int
	err = r.db.QueryRowContext(ctx,
		`SELECT 1 FROM event_bookings WHERE id = ? LIMIT 1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBookingNotFound
	}
	return err
}

// Count returns the total number of bookings.
func (r *EventBookingRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM event_bookings`).Scan(&n)
	return n, err
}

// Revenue sums total_amount across confirmed bookings.
func (r *EventBookingRepo) Revenue(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.QueryRowContext(ctx,
		`SELECT SUM(total_amount) FROM event_bookings WHERE status = ?`,
		model.StatusConfirmed).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}
