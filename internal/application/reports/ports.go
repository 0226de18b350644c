package reports

import (
	"context"
	"time"

	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
	"github.com/jhoicas/Confecciones-api/internal/domain/production"
)

// OrderSheet datos de la hoja de producción de un pedido.
type OrderSheet struct {
	Order       *entity.Order
	Customer    *entity.Customer
	Progress    production.Progress
	GeneratedAt time.Time
}

// OrderRow una fila del export de pedidos.
type OrderRow struct {
	Order    *entity.Order
	Progress production.Progress
}

// OrderSheetPDFGenerator genera la hoja de producción en PDF.
type OrderSheetPDFGenerator interface {
	GenerateOrderSheet(ctx context.Context, sheet OrderSheet) ([]byte, error)
}

// OrdersExcelExporter genera el libro Excel con el listado de pedidos.
type OrdersExcelExporter interface {
	ExportOrders(ctx context.Context, rows []OrderRow, generatedAt time.Time) ([]byte, error)
}
