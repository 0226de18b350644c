package dto

import "github.com/shopspring/decimal"

// PendingOrderDTO pedido activo con su porcentaje de avance.
type PendingOrderDTO struct {
	Order           OrderResponse   `json:"order"`
	PercentComplete decimal.Decimal `json:"percent_complete"`
}

// NextOrderDTO pedido con la entrega más próxima y su avance.
type NextOrderDTO struct {
	Order    *OrderResponse         `json:"order"`
	Progress *OrderProgressResponse `json:"progress"`
}

// PendingOrdersDTO pedidos activos (primeros 10) y promedio de avance sobre todos.
type PendingOrdersDTO struct {
	Orders            []PendingOrderDTO `json:"orders"`
	AverageCompletion decimal.Decimal   `json:"average_completion"`
}

// AlertDTO alerta del tablero.
type AlertDTO struct {
	Severity      string `json:"severity"` // "Alta" | "Media"
	Message       string `json:"message"`
	ReferenceID   string `json:"reference_id"`
	ReferenceType string `json:"reference_type"` // "pedido" | "asignacion"
}

// DashboardSummaryDTO respuesta de GET /api/dashboard.
type DashboardSummaryDTO struct {
	NextOrder         *OrderResponse         `json:"next_order"`
	NextOrderProgress *OrderProgressResponse `json:"next_order_progress"`
	PendingOrders     []PendingOrderDTO      `json:"pending_orders"`
	OrdersBySemester  map[string]int         `json:"orders_by_semester"`
	OverdueOrders     int                    `json:"overdue_orders"`
	AverageCompletion decimal.Decimal        `json:"average_completion"`
	Alerts            []AlertDTO             `json:"alerts"`
}
