// Package repository: data access for the event catalog. An Event is a
// scheduled live-music or karaoke session with tiered seat counts and
// prices. Date strings are stored in DB format ("2006-01-02", UTC).
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/soundhaus/booking-api/internal/model"
)

// EventRepo manages persistence for catalog events.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo constructs an EventRepo with the given DB handle.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// DB exposes the underlying sql.DB so callers can begin transactions
// spanning multiple repositories.
func (r *EventRepo) DB() *sql.DB { return r.db }

const eventCols = `id, title, location, date, time_slot, event_type,
       total_seats, available_seats, basic_seats, premium_seats, vip_seats,
       ticket_price, basic_price, premium_price, vip_price, description, created_at`

func scanEvent(row interface{ Scan(...any) error }) (model.Event, error) {
	var (
		e            model.Event
		basicSeats   sql.NullInt64
		premiumSeats sql.NullInt64
		vipSeats     sql.NullInt64
	)
	err := row.Scan(&e.ID, &e.Title, &e.Location, &e.Date, &e.TimeSlot, &e.EventType,
		&e.TotalSeats, &e.AvailSeats, &basicSeats, &premiumSeats, &vipSeats,
		&e.TicketPrice, &e.BasicPrice, &e.PremiumPrice, &e.VIPPrice,
		&e.Description, &e.CreatedAt)
	if err != nil {
		return model.Event{}, err
	}
	if basicSeats.Valid {
		v := uint32(basicSeats.Int64)
		e.BasicSeats = &v
	}
	if premiumSeats.Valid {
		v := uint32(premiumSeats.Int64)
		e.PremiumSeats = &v
	}
	if vipSeats.Valid {
		v := uint32(vipSeats.Int64)
		e.VIPSeats = &v
	}
	return e, nil
}

func seatArg(p *uint32) any {
	if p == nil {
		return nil
	}
	return *p
}

// Create inserts a new event and reads the row back so DB defaults
// (created_at) are populated on the struct. The caller is responsible for
// defaulting available_seats before calling.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	const q = `INSERT INTO events
       (title, location, date, time_slot, event_type, total_seats, available_seats,
        basic_seats, premium_seats, vip_seats,
        ticket_price, basic_price, premium_price, vip_price, description)
       VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		e.Title, e.Location, e.Date, e.TimeSlot, e.EventType, e.TotalSeats, e.AvailSeats,
		seatArg(e.BasicSeats), seatArg(e.PremiumSeats), seatArg(e.VIPSeats),
		e.TicketPrice, e.BasicPrice, e.PremiumPrice, e.VIPPrice, e.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	const sel = `SELECT ` + eventCols + ` FROM events WHERE id = ?`
	got, err := scanEvent(r.db.QueryRowContext(ctx, sel, id))
	if err != nil {
		return err
	}
	*e = got
	return nil
}

// GetByID retrieves an event by id, or ErrEventNotFound.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	const q = `SELECT ` + eventCols + ` FROM events WHERE id = ?`
	e, err := scanEvent(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &e, nil
}

// List returns the whole catalog, newest event date first. Returns an empty
// slice when the catalog is empty.
func (r *EventRepo) List(ctx context.Context) ([]model.Event, error) {
	const q = `SELECT ` + eventCols + ` FROM events ORDER BY date DESC, time_slot ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := []model.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update writes the full merged row back. The caller loads the row, applies
// the patch and validates before calling. ErrEventNotFound when the id does
// not exist.
func (r *EventRepo) Update(ctx context.Context, e *model.Event) error {
	const q = `UPDATE events SET
       title = ?, location = ?, date = ?, time_slot = ?, event_type = ?,
       total_seats = ?, available_seats = ?,
       basic_seats = ?, premium_seats = ?, vip_seats = ?,
       ticket_price = ?, basic_price = ?, premium_price = ?, vip_price = ?,
       description = ?
       WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		e.Title, e.Location, e.Date, e.TimeSlot, e.EventType,
		e.TotalSeats, e.AvailSeats,
		seatArg(e.BasicSeats), seatArg(e.PremiumSeats), seatArg(e.VIPSeats),
		e.TicketPrice, e.BasicPrice, e.PremiumPrice, e.VIPPrice,
		e.Description, e.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	// Zero rows affected is either "missing" or "no change".
	var one int
	err = r.db.QueryRowContext(ctx, `SELECT 1 FROM events WHERE id = ? LIMIT 1`, e.ID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrEventNotFound
	}
	return err
}

// Delete removes an event together with its bookings, in one transaction.
// Booking rows cascade: a deleted event takes its ledger entries with it.
func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	var one int
	if err := tx.QueryRowContext(ctx, `SELECT 1 FROM events WHERE id = ? LIMIT 1`, id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEventNotFound
		}
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM event_bookings WHERE event_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Count returns the number of catalog events, for the dashboard summary.
func (r *EventRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n)
	return n, err
}
