package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea de pedido. UnitPrice cero toma el precio base del producto.
type OrderItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderRequest entrada para crear o actualizar un pedido con sus líneas.
type OrderRequest struct {
	CustomerID string             `json:"customer_id" validate:"required,uuid"`
	DueDate    time.Time          `json:"due_date" validate:"required"`
	Notes      string             `json:"notes"`
	Items      []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ChangeOrderStatusRequest cambio de estado genérico.
type ChangeOrderStatusRequest struct {
	Status int `json:"status" validate:"required,min=1,max=6"`
}

// OrderItemResponse línea de pedido.
type OrderItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderResponse proyección de un pedido con sus derivados.
type OrderResponse struct {
	ID           string              `json:"id"`
	CustomerID   string              `json:"customer_id"`
	CustomerName string              `json:"customer_name,omitempty"`
	RegisteredAt time.Time           `json:"registered_at"`
	DueDate      time.Time           `json:"due_date"`
	Status       int                 `json:"status"`
	StatusLabel  string              `json:"status_label"`
	Notes        string              `json:"notes"`
	Items        []OrderItemResponse `json:"items"`
	Total        decimal.Decimal     `json:"total"`
	ItemCount    int                 `json:"item_count"`
	IsOverdue    bool                `json:"is_overdue"`
	NextStatuses []int               `json:"next_statuses"`
}

// TimeRemainingDTO tiempo restante hasta la entrega.
type TimeRemainingDTO struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// OrderProgressResponse avance de producción de un pedido.
type OrderProgressResponse struct {
	OrderID               string           `json:"order_id"`
	TotalAssignments      int              `json:"total_assignments"`
	CompletedAssignments  int              `json:"completed_assignments"`
	InProgressAssignments int              `json:"in_progress_assignments"`
	PendingAssignments    int              `json:"pending_assignments"`
	PercentComplete       decimal.Decimal  `json:"percent_complete"`
	TimeRemaining         TimeRemainingDTO `json:"time_remaining"`
	IsOverdue             bool             `json:"is_overdue"`
}

// OrderListResponse lista paginada de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
