// Package reports genera los documentos descargables del taller: hoja de producción
// de un pedido (PDF) y listado de pedidos (Excel).
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Confecciones-api/internal/domain"
	"github.com/jhoicas/Confecciones-api/internal/domain/production"
	"github.com/jhoicas/Confecciones-api/internal/domain/repository"
)

// maxExportRows tope de pedidos en un export.
const maxExportRows = 5000

// ReportUseCase reúne los datos y delega el formato a los generadores.
type ReportUseCase struct {
	orderRepo      repository.OrderRepository
	customerRepo   repository.CustomerRepository
	assignmentRepo repository.TaskAssignmentRepository
	pdf            OrderSheetPDFGenerator
	excel          OrdersExcelExporter
	now            func() time.Time
}

// NewReportUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReportUseCase(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	assignmentRepo repository.TaskAssignmentRepository,
	pdf OrderSheetPDFGenerator,
	excel OrdersExcelExporter,
) *ReportUseCase {
	return &ReportUseCase{
		orderRepo:      orderRepo,
		customerRepo:   customerRepo,
		assignmentRepo: assignmentRepo,
		pdf:            pdf,
		excel:          excel,
		now:            time.Now,
	}
}

// OrderSheetPDF genera la hoja de producción del pedido.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si el pedido no existe.
func (uc *ReportUseCase) OrderSheetPDF(ctx context.Context, orderID string) (pdfBytes []byte, filename string, err error) {
	// ── 1. Cargar pedido ──────────────────────────────────────────────────────
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener pedido: %w", err)
	}
	if order == nil {
		return nil, "", domain.ErrNotFound
	}

	// ── 2. Cargar cliente ─────────────────────────────────────────────────────
	customer, err := uc.customerRepo.GetByID(ctx, order.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, "", fmt.Errorf("pdf: el cliente %s del pedido no existe", order.CustomerID)
	}

	// ── 3. Avance de producción ───────────────────────────────────────────────
	now := uc.now()
	counts, err := uc.assignmentRepo.CountsByProduct(ctx, order.ProductIDs())
	if err != nil {
		return nil, "", fmt.Errorf("pdf: conteo de asignaciones: %w", err)
	}

	// ── 4. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err = uc.pdf.GenerateOrderSheet(ctx, OrderSheet{
		Order:       order,
		Customer:    customer,
		Progress:    production.Calculate(order, counts, now),
		GeneratedAt: now,
	})
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("pedido_%s.pdf", shortID(order.ID)), nil
}

// OrdersExcel exporta los pedidos que cumplen el filtro con su porcentaje de avance.
func (uc *ReportUseCase) OrdersExcel(ctx context.Context, f repository.OrderFilter) (xlsx []byte, filename string, err error) {
	f.Limit, f.Offset = maxExportRows, 0
	list, err := uc.orderRepo.List(ctx, f)
	if err != nil {
		return nil, "", fmt.Errorf("excel: listar pedidos: %w", err)
	}
	var productIDs []string
	for _, o := range list {
		productIDs = append(productIDs, o.ProductIDs()...)
	}
	counts, err := uc.assignmentRepo.CountsByProduct(ctx, productIDs)
	if err != nil {
		return nil, "", fmt.Errorf("excel: conteo de asignaciones: %w", err)
	}
	now := uc.now()
	rows := make([]OrderRow, 0, len(list))
	for _, o := range list {
		rows = append(rows, OrderRow{Order: o, Progress: production.Calculate(o, counts, now)})
	}
	xlsx, err = uc.excel.ExportOrders(ctx, rows, now)
	if err != nil {
		return nil, "", fmt.Errorf("excel: generación fallida: %w", err)
	}
	return xlsx, fmt.Sprintf("pedidos_%s.xlsx", now.Format("20060102")), nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
