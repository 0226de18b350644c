package orders

import (
	"time"

	"github.com/jhoicas/Confecciones-api/internal/application/dto"
	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
	"github.com/jhoicas/Confecciones-api/internal/domain/production"
)

// ToOrderResponse proyecta el pedido con sus derivados calculados en now.
func ToOrderResponse(o *entity.Order, now time.Time) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal(),
		})
	}
	next := make([]int, 0, 2)
	for _, s := range entity.AllowedOrderTransitions(o.Status) {
		next = append(next, int(s))
	}
	return &dto.OrderResponse{
		ID:           o.ID,
		CustomerID:   o.CustomerID,
		CustomerName: o.CustomerName,
		RegisteredAt: o.RegisteredAt,
		DueDate:      o.DueDate,
		Status:       int(o.Status),
		StatusLabel:  o.Status.Label(),
		Notes:        o.Notes,
		Items:        items,
		Total:        o.Total(),
		ItemCount:    o.ItemCount(),
		IsOverdue:    o.IsOverdue(now),
		NextStatuses: next,
	}
}

// ToProgressResponse proyecta el avance calculado.
func ToProgressResponse(p production.Progress) *dto.OrderProgressResponse {
	return &dto.OrderProgressResponse{
		OrderID:               p.OrderID,
		TotalAssignments:      p.Total,
		CompletedAssignments:  p.Completed,
		InProgressAssignments: p.InProgress,
		PendingAssignments:    p.Pending,
		PercentComplete:       p.PercentComplete,
		TimeRemaining: dto.TimeRemainingDTO{
			Days:    p.Remaining.Days,
			Hours:   p.Remaining.Hours,
			Minutes: p.Remaining.Minutes,
		},
		IsOverdue: p.Overdue,
	}
}
