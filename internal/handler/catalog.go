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

// CatalogHandler serves the public event catalog. Routes sit behind
// OptionalAuth: guests see the full seat map, authenticated users
// additionally see which of the occupied seats are their own.
type CatalogHandler struct {
	Events   *repository.EventRepo
	Bookings *repository.EventBookingRepo
}

func NewCatalogHandler(e *repository.EventRepo, b *repository.EventBookingRepo) *CatalogHandler {
	return &CatalogHandler{Events: e, Bookings: b}
}

// eventView is the catalog representation of an event. TicketPrice carries
// the headline display price (basic price, else the legacy ticket price,
// else zero), not the raw column. BookedSeats flattens seat ids across all
// bookings including cancelled ones; UserBookedSeats is always empty for
// guests.
type eventView struct {
	ID             uint64           `json:"id"`
	Title          string           `json:"title"`
	Location       string           `json:"location"`
	Date           string           `json:"date"`
	TimeSlot       string           `json:"time_slot"`
	EventType      string           `json:"event_type"`
	TotalSeats     uint32           `json:"total_seats"`
	AvailableSeats uint32           `json:"available_seats"`
	BasicSeats     *uint32          `json:"basic_seats"`
	PremiumSeats   *uint32          `json:"premium_seats"`
	VIPSeats       *uint32          `json:"vip_seats"`
	TicketPrice    decimal.Decimal  `json:"ticket_price"`
	BasicPrice     *decimal.Decimal `json:"basic_price"`
	PremiumPrice   *decimal.Decimal `json:"premium_price"`
	VIPPrice       *decimal.Decimal `json:"vip_price"`
	Description    string           `json:"description"`
	CreatedAt      string           `json:"created_at"`
	BookedSeats    []string         `json:"booked_seats"`
	UserBookedSeat []string         `json:"user_booked_seats"`
}

func nullPrice(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

func buildEventView(e *model.Event, bookings []model.EventBooking, userID *uint64) eventView {
	userSeats := []string{}
	if userID != nil {
		userSeats = model.SeatsForUser(bookings, *userID)
	}
	return eventView{
		ID:             e.ID,
		Title:          e.Title,
		Location:       e.Location,
		Date:           e.Date,
		TimeSlot:       e.TimeSlot,
		EventType:      e.EventType,
		TotalSeats:     e.TotalSeats,
		AvailableSeats: e.AvailSeats,
		BasicSeats:     e.BasicSeats,
		PremiumSeats:   e.PremiumSeats,
		VIPSeats:       e.VIPSeats,
		TicketPrice:    e.DisplayPrice(),
		BasicPrice:     nullPrice(e.BasicPrice),
		PremiumPrice:   nullPrice(e.PremiumPrice),
		VIPPrice:       nullPrice(e.VIPPrice),
		Description:    e.Description,
		CreatedAt:      e.CreatedAt,
		BookedSeats:    model.FlattenBookedSeats(bookings),
		UserBookedSeat: userSeats,
	}
}

// List handles GET /v1/events. Each event carries its full derived seat map,
// so the response is always current and never served from cache.
func (h *CatalogHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	events, err := h.Events.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	userID := optionalUserID(c)
	views := []eventView{}
	for i := range events {
		bookings, err := h.Bookings.ListByEvent(ctx, events[i].ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		views = append(views, buildEventView(&events[i], bookings, userID))
	}
	return c.JSON(http.StatusOK, views)
}

// Get handles GET /v1/events/:id.
func (h *CatalogHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrEventNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	bookings, err := h.Bookings.ListByEvent(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	view := buildEventView(e, bookings, optionalUserID(c))
	return c.JSON(http.StatusOK, view)
}
