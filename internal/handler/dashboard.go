package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/soundhaus/booking-api/internal/model"
	"github.com/soundhaus/booking-api/internal/repository"
)

// RecentItem is one row in the dashboard's recent-activity feed, regardless
// of which table it came from.
type RecentItem struct {
	Kind      string           `json:"kind"`
	ID        uint64           `json:"id"`
	Label     string           `json:"label"`
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	CreatedAt string           `json:"created_at"`
}

// RecentSource adapts one table into the recent-activity feed. Each source
// names itself and returns its newest items; the dashboard only ever talks
// to this interface, so adding a feed means adding an adapter, not touching
// the handler.
type RecentSource interface {
	Name() string
	Recent(ctx context.Context, limit int) ([]RecentItem, error)
}

type recentBookingLister interface {
	ListRecent(ctx context.Context, limit int) ([]model.EventBooking, error)
}

type recentPaymentLister interface {
	ListRecent(ctx context.Context, limit int) ([]model.Payment, error)
}

// BookingSource feeds recent ledger entries into the dashboard.
type BookingSource struct{ Bookings recentBookingLister }

func (s BookingSource) Name() string { return "bookings" }

func (s BookingSource) Recent(ctx context.Context, limit int) ([]RecentItem, error) {
	bookings, err := s.Bookings.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	items := []RecentItem{}
	for i := range bookings {
		b := &bookings[i]
		amount := b.TotalAmount
		items = append(items, RecentItem{
			Kind:      "event_booking",
			ID:        b.ID,
			Label:     b.CustomerName + " / " + b.EventName,
			Amount:    &amount,
			CreatedAt: b.CreatedAt,
		})
	}
	return items, nil
}

// PaymentSource feeds recent payment records into the dashboard.
type PaymentSource struct{ Payments recentPaymentLister }

func (s PaymentSource) Name() string { return "payments" }

func (s PaymentSource) Recent(ctx context.Context, limit int) ([]RecentItem, error) {
	payments, err := s.Payments.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	items := []RecentItem{}
	for i := range payments {
		p := &payments[i]
		amount := p.Amount
		items = append(items, RecentItem{
			Kind:      "payment",
			ID:        p.ID,
			Label:     p.Customer,
			Amount:    &amount,
			CreatedAt: p.CreatedAt,
		})
	}
	return items, nil
}

// DashboardHandler serves the staff summary view: headline totals plus a
// recent-activity feed per source.
type DashboardHandler struct {
	Users    *repository.UserRepo
	Events   *repository.EventRepo
	Bookings *repository.EventBookingRepo
	Payments *repository.PaymentRepo
	Sources  []RecentSource
	Limit    int
}

func NewDashboardHandler(u *repository.UserRepo, e *repository.EventRepo, b *repository.EventBookingRepo, p *repository.PaymentRepo) *DashboardHandler {
	return &DashboardHandler{
		Users:    u,
		Events:   e,
		Bookings: b,
		Payments: p,
		Sources: []RecentSource{
			BookingSource{Bookings: b},
			PaymentSource{Payments: p},
		},
		Limit: 5,
	}
}

// Summary handles GET /v1/dashboard/summary.
func (h *DashboardHandler) Summary(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	customerCount, err := h.Users.CountActiveCustomers(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	eventCount, err := h.Events.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	bookingCount, err := h.Bookings.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	revenue, err := h.Bookings.Revenue(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	paymentsTotal, err := h.Payments.Total(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	recent := map[string][]RecentItem{}
	for _, src := range h.Sources {
		items, err := src.Recent(ctx, h.Limit)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		recent[src.Name()] = items
	}

	return c.JSON(http.StatusOK, echo.Map{
		"totals": echo.Map{
			"customers":       customerCount,
			"events":          eventCount,
			"bookings":        bookingCount,
			"booking_revenue": revenue,
			"payments":        paymentsTotal,
		},
		"recent": recent,
	})
}
