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

// PaymentHandler covers the staff-facing payment book.
type PaymentHandler struct {
	Payments *repository.PaymentRepo
}

func NewPaymentHandler(p *repository.PaymentRepo) *PaymentHandler {
	return &PaymentHandler{Payments: p}
}

type paymentReq struct {
	Customer string           `json:"customer"`
	Amount   *decimal.Decimal `json:"amount"`
	Method   string           `json:"method"`
	Date     string           `json:"date"`
}

type paymentView struct {
	ID        uint64          `json:"id"`
	Customer  string          `json:"customer"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Date      string          `json:"date"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

func toPaymentView(p *model.Payment) paymentView {
	return paymentView{
		ID: p.ID, Customer: p.Customer, Amount: p.Amount, Method: p.Method,
		Date: p.Date, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

func (r *paymentReq) validate() *model.FieldError {
	if strings.TrimSpace(r.Customer) == "" {
		return &model.FieldError{Field: "customer", Message: "required"}
	}
	if r.Amount == nil || !r.Amount.IsPositive() {
		return &model.FieldError{Field: "amount", Message: "must be > 0"}
	}
	if !model.ValidPaymentRecordMethod(r.Method) {
		return &model.FieldError{Field: "method", Message: "invalid payment method"}
	}
	if strings.TrimSpace(r.Date) == "" {
		return &model.FieldError{Field: "date", Message: "required"}
	}
	return nil
}

// Create handles POST /v1/admin/payments.
func (h *PaymentHandler) Create(c echo.Context) error {
	var req paymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if ferr := req.validate(); ferr != nil {
		return fieldErrors(c, ferr)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p := model.Payment{
		Customer: strings.TrimSpace(req.Customer),
		Amount:   *req.Amount,
		Method:   req.Method,
		Date:     strings.TrimSpace(req.Date),
	}
	if err := h.Payments.Create(ctx, &p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create payment failed"})
	}
	return c.JSON(http.StatusCreated, toPaymentView(&p))
}

// List handles GET /v1/admin/payments.
func (h *PaymentHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	payments, err := h.Payments.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := []paymentView{}
	for i := range payments {
		out = append(out, toPaymentView(&payments[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/admin/payments/:id.
func (h *PaymentHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Payments.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrPaymentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "payment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toPaymentView(p))
}

// Update handles PUT /v1/admin/payments/:id.
func (h *PaymentHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment id"})
	}
	var req paymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if ferr := req.validate(); ferr != nil {
		return fieldErrors(c, ferr)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p := model.Payment{
		ID:       id,
		Customer: strings.TrimSpace(req.Customer),
		Amount:   *req.Amount,
		Method:   req.Method,
		Date:     strings.TrimSpace(req.Date),
	}
	if err := h.Payments.Update(ctx, &p); err != nil {
		if err == repository.ErrPaymentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "payment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update payment failed"})
	}
	got, err := h.Payments.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toPaymentView(got))
}

// Delete handles DELETE /v1/admin/payments/:id.
func (h *PaymentHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Payments.Delete(ctx, id); err != nil {
		if err == repository.ErrPaymentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "payment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete payment failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Total handles GET /v1/admin/payments/total.
func (h *PaymentHandler) Total(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sum, err := h.Payments.Total(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"total": sum})
}
