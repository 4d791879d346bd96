package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/soundhaus/booking-api/internal/model"
	"github.com/soundhaus/booking-api/internal/repository"
)

// AdminEventHandler covers staff-facing catalog writes. Validation always
// runs against the merged view of the existing row and the incoming patch,
// so a partial update cannot sneak an inconsistent combination past the
// checks.
type AdminEventHandler struct {
	Events *repository.EventRepo
}

func NewAdminEventHandler(e *repository.EventRepo) *AdminEventHandler {
	return &AdminEventHandler{Events: e}
}

// eventPatchReq mirrors model.EventPatch on the wire. Absent fields stay nil
// and leave the current value untouched on update.
type eventPatchReq struct {
	Title        *string          `json:"title"`
	Location     *string          `json:"location"`
	Date         *string          `json:"date"`
	TimeSlot     *string          `json:"time_slot"`
	EventType    *string          `json:"event_type"`
	TotalSeats   *uint32          `json:"total_seats"`
	AvailSeats   *uint32          `json:"available_seats"`
	BasicSeats   *uint32          `json:"basic_seats"`
	PremiumSeats *uint32          `json:"premium_seats"`
	VIPSeats     *uint32          `json:"vip_seats"`
	TicketPrice  *decimal.Decimal `json:"ticket_price"`
	BasicPrice   *decimal.Decimal `json:"basic_price"`
	PremiumPrice *decimal.Decimal `json:"premium_price"`
	VIPPrice     *decimal.Decimal `json:"vip_price"`
	Description  *string          `json:"description"`
}

func (r *eventPatchReq) toPatch() model.EventPatch {
	if r.EventType != nil {
		t := strings.ToLower(strings.TrimSpace(*r.EventType))
		r.EventType = &t
	}
	return model.EventPatch{
		Title:        r.Title,
		Location:     r.Location,
		Date:         r.Date,
		TimeSlot:     r.TimeSlot,
		EventType:    r.EventType,
		TotalSeats:   r.TotalSeats,
		AvailSeats:   r.AvailSeats,
		BasicSeats:   r.BasicSeats,
		PremiumSeats: r.PremiumSeats,
		VIPSeats:     r.VIPSeats,
		TicketPrice:  r.TicketPrice,
		BasicPrice:   r.BasicPrice,
		PremiumPrice: r.PremiumPrice,
		VIPPrice:     r.VIPPrice,
		Description:  r.Description,
	}
}

// Create handles POST /v1/admin/events. available_seats defaults to
// total_seats when not supplied; this is the only moment the two are tied
// together, later bookings never touch the column.
func (h *AdminEventHandler) Create(c echo.Context) error {
	var req eventPatchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		return fieldErrors(c, &model.FieldError{Field: "title", Message: "required"})
	}
	if req.Date == nil || strings.TrimSpace(*req.Date) == "" {
		return fieldErrors(c, &model.FieldError{Field: "date", Message: "required"})
	}
	if req.TotalSeats == nil {
		return fieldErrors(c, &model.FieldError{Field: "total_seats", Message: "required"})
	}

	var e model.Event
	req.toPatch().Apply(&e)
	if e.EventType == "" {
		e.EventType = model.EventTypeLive
	}
	if req.AvailSeats == nil {
		e.AvailSeats = e.TotalSeats
	}
	if err := model.ValidateEvent(&e); err != nil {
		return fieldErrors(c, err.(*model.FieldError))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Events.Create(ctx, &e); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create event failed"})
	}
	return c.JSON(http.StatusCreated, buildEventView(&e, nil, nil))
}

// Update handles PUT/PATCH /v1/admin/events/:id. available_seats is never
// recomputed here: it changes only when the caller sends it explicitly.
func (h *AdminEventHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var req eventPatchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
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

	req.toPatch().Apply(e)
	if verr := model.ValidateEvent(e); verr != nil {
		return fieldErrors(c, verr.(*model.FieldError))
	}
	if err := h.Events.Update(ctx, e); err != nil {
		if err == repository.ErrEventNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update event failed"})
	}
	return c.JSON(http.StatusOK, buildEventView(e, nil, nil))
}

// Delete handles DELETE /v1/admin/events/:id. Bookings cascade with the
// event.
func (h *AdminEventHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Events.Delete(ctx, id); err != nil {
		if err == repository.ErrEventNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete event failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
