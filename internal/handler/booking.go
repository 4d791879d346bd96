package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/soundhaus/booking-api/internal/model"
	"github.com/soundhaus/booking-api/internal/queue"
	"github.com/soundhaus/booking-api/internal/repository"
	queue_publisher "github.com/soundhaus/booking-api/internal/service"
)

// BookingHandler records ticket purchases into the ledger and lets
// customers list their own bookings.
type BookingHandler struct {
	Events   *repository.EventRepo
	Bookings *repository.EventBookingRepo
}

func NewBookingHandler(e *repository.EventRepo, b *repository.EventBookingRepo) *BookingHandler {
	return &BookingHandler{Events: e, Bookings: b}
}

// createBookingReq accepts seat_numbers as either a JSON array of strings or
// a single CSV string, so older clients keep working.
type createBookingReq struct {
	EventID       uint64           `json:"event_id"`
	CustomerName  string           `json:"customer_name"`
	ContactNumber string           `json:"contact_number"`
	Email         string           `json:"email"`
	TicketType    string           `json:"ticket_type"`
	NumTickets    *int64           `json:"number_of_tickets"`
	SeatNumbers   json.RawMessage  `json:"seat_numbers"`
	TotalAmount   *decimal.Decimal `json:"total_amount"`
	PaymentMethod string           `json:"payment_method"`
	Status        string           `json:"status"`
}

type bookingView struct {
	ID            uint64          `json:"id"`
	UserID        *uint64         `json:"user_id"`
	EventID       uint64          `json:"event_id"`
	EventName     string          `json:"event_name"`
	CustomerName  string          `json:"customer_name"`
	ContactNumber string          `json:"contact_number"`
	Email         string          `json:"email"`
	TicketType    string          `json:"ticket_type"`
	NumTickets    uint32          `json:"number_of_tickets"`
	SeatNumbers   []string        `json:"seat_numbers"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
	CreatedAt     string          `json:"created_at"`
}

func toBookingView(b *model.EventBooking) bookingView {
	seats := b.SeatNumbers
	if seats == nil {
		seats = []string{}
	}
	return bookingView{
		ID:            b.ID,
		UserID:        b.UserID,
		EventID:       b.EventID,
		EventName:     b.EventName,
		CustomerName:  b.CustomerName,
		ContactNumber: b.ContactNumber,
		Email:         b.Email,
		TicketType:    b.TicketType,
		NumTickets:    b.NumTickets,
		SeatNumbers:   seats,
		TotalAmount:   b.TotalAmount,
		PaymentMethod: b.PaymentMethod,
		Status:        b.Status,
		CreatedAt:     b.CreatedAt,
	}
}

// parseSeatNumbers handles the two accepted wire forms. A nil RawMessage or
// JSON null means seats were not supplied and stays nil.
func parseSeatNumbers(raw json.RawMessage) ([]string, *model.FieldError) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return model.NormalizeSeatList(list), nil
	}
	var csv string
	if err := json.Unmarshal(raw, &csv); err == nil {
		return model.SplitSeatCSV(csv), nil
	}
	return nil, &model.FieldError{Field: "seat_numbers", Message: "must be a list of seat ids or a comma-separated string"}
}

// resolveTicketCount applies the single-ticket default and checks the
// requested count against the tier's static capacity. The comparison runs
// at the wire width; narrowing to uint32 happens only after both checks,
// so oversized values cannot wrap into a small count.
func resolveTicketCount(requested *int64, capacity uint32, tier string) (uint32, *model.FieldError) {
	n := int64(1)
	if requested != nil {
		n = *requested
		if n < 1 {
			return 0, &model.FieldError{Field: "number_of_tickets", Message: "must be at least 1"}
		}
	}
	if capacity > 0 && n > int64(capacity) {
		return 0, &model.FieldError{
			Field:   "number_of_tickets",
			Message: fmt.Sprintf("Maximum %d ticket(s) available for %s tier.", capacity, tier),
		}
	}
	if n > math.MaxUint32 {
		return 0, &model.FieldError{Field: "number_of_tickets", Message: "too large"}
	}
	return uint32(n), nil
}

// Create handles POST /v1/event-bookings. The request is validated against
// the event's static tier capacity; the booking never decrements any seat
// counter. The event title is snapshotted into the row so later renames do
// not rewrite history.
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if req.EventID == 0 {
		return fieldErrors(c, &model.FieldError{Field: "event_id", Message: "required"})
	}
	event, err := h.Events.GetByID(ctx, req.EventID)
	if err != nil {
		if err == repository.ErrEventNotFound {
			return fieldErrors(c, &model.FieldError{Field: "event_id", Message: "Event not found."})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		return fieldErrors(c, &model.FieldError{Field: "customer_name", Message: "required"})
	}

	tier := model.NormalizeTier(req.TicketType)
	tickets, ferr := resolveTicketCount(req.NumTickets, event.TierCapacity(tier), tier)
	if ferr != nil {
		return fieldErrors(c, ferr)
	}

	method := strings.TrimSpace(req.PaymentMethod)
	if method == "" {
		method = model.PaymentUPI
	}
	if !model.ValidPaymentMethod(method) {
		return fieldErrors(c, &model.FieldError{Field: "payment_method", Message: "invalid payment method"})
	}

	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status == "" {
		status = model.StatusConfirmed
	}
	if !model.ValidStatus(status) {
		return fieldErrors(c, &model.FieldError{Field: "status", Message: "invalid status"})
	}

	seats, ferr := parseSeatNumbers(req.SeatNumbers)
	if ferr != nil {
		return fieldErrors(c, ferr)
	}

	// Trust a caller-supplied positive total; otherwise derive it from the
	// tier price chain.
	total := model.ComputeTotal(event.UnitPrice(tier), tickets)
	if req.TotalAmount != nil && req.TotalAmount.IsPositive() {
		total = *req.TotalAmount
	}

	b := model.EventBooking{
		UserID:        optionalUserID(c),
		EventID:       event.ID,
		EventName:     event.Title,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		ContactNumber: strings.TrimSpace(req.ContactNumber),
		Email:         strings.TrimSpace(req.Email),
		TicketType:    tier,
		NumTickets:    tickets,
		SeatNumbers:   seats,
		TotalAmount:   total,
		PaymentMethod: method,
		Status:        status,
	}
	if err := h.Bookings.Create(ctx, &b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}

	if b.Status == model.StatusConfirmed {
		go publishConfirmed(&b)
	}
	return c.JSON(http.StatusCreated, toBookingView(&b))
}

// publishConfirmed fires the booking.confirmed message. Broker failures are
// logged inside the publisher and never affect the request.
func publishConfirmed(b *model.EventBooking) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	var uid uint64
	if b.UserID != nil {
		uid = *b.UserID
	}
	_ = queue_publisher.PublishBookingConfirmed(ctx, queue.BookingConfirmedEvent{
		BookingID:    b.ID,
		UserID:       uid,
		EventID:      b.EventID,
		EventName:    b.EventName,
		CustomerName: b.CustomerName,
		TicketType:   b.TicketType,
		NumTickets:   b.NumTickets,
		SeatNumbers:  b.SeatNumbers,
		TotalAmount:  b.TotalAmount.String(),
		ConfirmedAt:  time.Now().UTC().Format("2006-01-02 15:04:05"),
	})
}

type bookingDetailView struct {
	bookingView
	Event struct {
		Title    string `json:"title"`
		Location string `json:"location"`
		Date     string `json:"date"`
		TimeSlot string `json:"time_slot"`
	} `json:"event"`
}

// ListMine handles GET /v1/event-bookings: the caller's bookings, newest
// first, each with a summary of the event as it stands today.
func (h *BookingHandler) ListMine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	details, err := h.Bookings.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := []bookingDetailView{}
	for i := range details {
		var v bookingDetailView
		v.bookingView = toBookingView(&details[i].Booking)
		v.Event.Title = details[i].EventTitle
		v.Event.Location = details[i].EventLocation
		v.Event.Date = details[i].EventDate
		v.Event.TimeSlot = details[i].EventTimeSlot
		out = append(out, v)
	}
	return c.JSON(http.StatusOK, out)
}

type statusReq struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /v1/event-bookings/:id/status. Owners can edit
// their own bookings; staff and admins can edit any. Flipping a booking to
// cancelled has no seat-availability side effect: the row still blocks its
// seats until deleted.
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if !model.ValidStatus(status) {
		return fieldErrors(c, &model.FieldError{Field: "status", Message: "invalid status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	role, _ := c.Get("role").(string)
	isStaff := role == model.RoleStaff || role == model.RoleAdmin
	if !isStaff && (b.UserID == nil || *b.UserID != uid) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	if err := h.Bookings.UpdateStatus(ctx, id, status); err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	b.Status = status
	return c.JSON(http.StatusOK, toBookingView(b))
}
