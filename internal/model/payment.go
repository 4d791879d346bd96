package model

import "github.com/shopspring/decimal"

// Payment methods accepted on standalone payment records. This list is wider
// than the event-booking one because payments also cover non-ticket services.
const (
	PaymentNetBanking = "NetBanking"
)

// Payment records money collected from a customer. It corresponds to a row in
// the `payments` table.
type Payment struct {
	ID        uint64          // payments.id
	Customer  string          // payments.customer
	Amount    decimal.Decimal // payments.amount (must be > 0)
	Method    string          // payments.method (Card|UPI|NetBanking|Cash)
	Date      string          // payments.date ("2006-01-02")
	CreatedAt string          // payments.created_at
	UpdatedAt string          // payments.updated_at
}

// ValidPaymentRecordMethod reports whether m is accepted on a payment record.
func ValidPaymentRecordMethod(m string) bool {
	switch m {
	case PaymentCard, PaymentUPI, PaymentNetBanking, PaymentCash:
		return true
	}
	return false
}
