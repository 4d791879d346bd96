package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/soundhaus/booking-api/internal/model"
)

// PaymentRepo provides CRUD operations for standalone payment records.
type PaymentRepo struct {
	db *sql.DB
}

// NewPaymentRepo returns a repo bound to the given database.
func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

const paymentCols = `id, customer, amount, method, date, created_at, updated_at`

func scanPayment(row interface{ Scan(...any) error }) (model.Payment, error) {
	var p model.Payment
	err := row.Scan(&p.ID, &p.Customer, &p.Amount, &p.Method, &p.Date,
		&p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// Create inserts a payment and reads the row back to pick up timestamps.
func (r *PaymentRepo) Create(ctx context.Context, p *model.Payment) error {
	const q = `INSERT INTO payments (customer, amount, method, date) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, p.Customer, p.Amount, p.Method, p.Date)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	const sel = `SELECT ` + paymentCols + ` FROM payments WHERE id = ?`
	got, err := scanPayment(r.db.QueryRowContext(ctx, sel, id))
	if err != nil {
		return err
	}
	*p = got
	return nil
}

// GetByID retrieves a payment by id, or ErrPaymentNotFound.
func (r *PaymentRepo) GetByID(ctx context.Context, id uint64) (*model.Payment, error) {
	const q = `SELECT ` + paymentCols + ` FROM payments WHERE id = ?`
	p, err := scanPayment(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns all payments, newest payment date first.
func (r *PaymentRepo) List(ctx context.Context) ([]model.Payment, error) {
	const q = `SELECT ` + paymentCols + ` FROM payments ORDER BY date DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := []model.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update writes the full row back. ErrPaymentNotFound when the id does not
// exist.
func (r *PaymentRepo) Update(ctx context.Context, p *model.Payment) error {
	const q = `UPDATE payments SET customer = ?, amount = ?, method = ?, date = ?,
       updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, p.Customer, p.Amount, p.Method, p.Date, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var one int
	err = r.db.QueryRowContext(ctx, `SELECT 1 FROM payments WHERE id = ? LIMIT 1`, p.ID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrPaymentNotFound
	}
	return err
}

// Delete removes a payment record. ErrPaymentNotFound when the id does not
// exist.
func (r *PaymentRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

// Total sums the amount column across all payments.
func (r *PaymentRepo) Total(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.QueryRowContext(ctx, `SELECT SUM(amount) FROM payments`).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

// ListRecent returns the most recently created payments, for the dashboard.
func (r *PaymentRepo) ListRecent(ctx context.Context, limit int) ([]model.Payment, error) {
	const q = `SELECT ` + paymentCols + ` FROM payments ORDER BY created_at DESC, id DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := []model.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
