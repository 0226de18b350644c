package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Confecciones-api/internal/application/analytics"
	"github.com/jhoicas/Confecciones-api/internal/application/orders"
	"github.com/jhoicas/Confecciones-api/internal/domain"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc       *appanalytics.DashboardUseCase
	ordersUC *orders.OrderUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, ordersUC *orders.OrderUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc, ordersUC: ordersUC}
}

// GetSummary devuelve el tablero completo del taller.
// GET /api/dashboard?year=2026
//
// Respuesta: DashboardSummaryDTO (next_order, next_order_progress, pending_orders[10],
// orders_by_semester, overdue_orders, average_completion, alerts).
// Sin year se usa el año en curso.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	year, err := yearParam(c)
	if err != nil {
		return respondError(c, err)
	}
	summary, err := h.uc.GetSummary(c.Context(), year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// NextOrder GET /api/dashboard/next-order
func (h *DashboardHandler) NextOrder(c *fiber.Ctx) error {
	out, err := h.uc.NextOrder(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// OrderProgress GET /api/dashboard/progress/:orderId
func (h *DashboardHandler) OrderProgress(c *fiber.Ctx) error {
	out, err := h.ordersUC.Progress(c.Context(), c.Params("orderId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PendingOrders GET /api/dashboard/pending
func (h *DashboardHandler) PendingOrders(c *fiber.Ctx) error {
	out, err := h.uc.PendingOrders(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Semesters GET /api/dashboard/semesters?year=2026
func (h *DashboardHandler) Semesters(c *fiber.Ctx) error {
	year, err := yearParam(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Semesters(c.Context(), year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Alerts GET /api/dashboard/alerts
func (h *DashboardHandler) Alerts(c *fiber.Ctx) error {
	out, err := h.uc.Alerts(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// yearParam 0 significa "año en curso".
func yearParam(c *fiber.Ctx) (int, error) {
	year := c.QueryInt("year", 0)
	if year < 0 || year > 9999 {
		return 0, fmt.Errorf("%w: año %d fuera de rango", domain.ErrInvalidInput, year)
	}
	return year, nil
}
