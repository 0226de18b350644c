// Package analytics contiene los casos de uso del tablero de producción: pedido más
// próximo, pedidos pendientes con su avance, volumen por semestre y alertas.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Confecciones-api/internal/application/dto"
	"github.com/jhoicas/Confecciones-api/internal/application/orders"
	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
	"github.com/jhoicas/Confecciones-api/internal/domain/production"
	"github.com/jhoicas/Confecciones-api/internal/domain/repository"
)

const (
	dashboardPendingLimit = 10 // pedidos pendientes listados en el tablero
	dashboardAlertsLimit  = 5  // alertas por tipo

	SeverityHigh   = "Alta"
	SeverityMedium = "Media"

	ReferenceOrder      = "pedido"
	ReferenceAssignment = "asignacion"
)

var (
	nextOrderStatuses = []entity.OrderStatus{entity.OrderInProgress, entity.OrderInProduction}
	pendingStatuses   = []entity.OrderStatus{entity.OrderPending, entity.OrderInProgress, entity.OrderInProduction}
)

// DashboardUseCase compone el tablero de producción.
//
// Fuente de datos: AnalyticsRepository (consultas read-only). El avance se recalcula
// en cada lectura; nada de lo que devuelve se persiste.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, now: time.Now}
}

// GetSummary construye el tablero completo. year 0 toma el año en curso.
//
// Cinco lecturas independientes en paralelo:
//  1. NextOrder      → pedido más próximo + avance
//  2. PendingOrders  → primeros 10 pendientes + promedio de avance
//  3. Semesters      → pedidos registrados por semestre (6 buckets)
//  4. CountOverdue   → pedidos vencidos
//  5. Alerts         → pedidos y tareas vencidas
func (uc *DashboardUseCase) GetSummary(ctx context.Context, year int) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	if year == 0 {
		year = now.Year()
	}

	var (
		next      *dto.NextOrderDTO
		pending   *dto.PendingOrdersDTO
		semesters map[string]int
		overdue   int
		alerts    []dto.AlertDTO
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		next, err = uc.nextOrder(gctx, now)
		return err
	})
	g.Go(func() (err error) {
		pending, err = uc.pendingOrders(gctx, now)
		return err
	})
	g.Go(func() (err error) {
		semesters, err = uc.semesters(gctx, year, now.Location())
		return err
	})
	g.Go(func() (err error) {
		overdue, err = uc.analyticsRepo.CountOverdueOrders(gctx, now)
		if err != nil {
			return fmt.Errorf("dashboard: pedidos vencidos: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		alerts, err = uc.alerts(gctx, now)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.DashboardSummaryDTO{
		NextOrder:         next.Order,
		NextOrderProgress: next.Progress,
		PendingOrders:     pending.Orders,
		OrdersBySemester:  semesters,
		OverdueOrders:     overdue,
		AverageCompletion: pending.AverageCompletion,
		Alerts:            alerts,
	}, nil
}

// NextOrder pedido En proceso o En producción con la entrega más próxima.
func (uc *DashboardUseCase) NextOrder(ctx context.Context) (*dto.NextOrderDTO, error) {
	return uc.nextOrder(ctx, uc.now())
}

// PendingOrders pedidos Pendientes, En proceso o En producción por entrega ascendente.
func (uc *DashboardUseCase) PendingOrders(ctx context.Context) (*dto.PendingOrdersDTO, error) {
	return uc.pendingOrders(ctx, uc.now())
}

// Semesters pedidos registrados por semestre del año dado y los dos anteriores.
func (uc *DashboardUseCase) Semesters(ctx context.Context, year int) (map[string]int, error) {
	now := uc.now()
	if year == 0 {
		year = now.Year()
	}
	return uc.semesters(ctx, year, now.Location())
}

// Alerts los 5 pedidos y las 5 tareas más atrasados.
func (uc *DashboardUseCase) Alerts(ctx context.Context) ([]dto.AlertDTO, error) {
	return uc.alerts(ctx, uc.now())
}

func (uc *DashboardUseCase) nextOrder(ctx context.Context, now time.Time) (*dto.NextOrderDTO, error) {
	order, err := uc.analyticsRepo.NextDueOrder(ctx, nextOrderStatuses)
	if err != nil {
		return nil, fmt.Errorf("dashboard: próximo pedido: %w", err)
	}
	if order == nil {
		return &dto.NextOrderDTO{}, nil
	}
	counts, err := uc.analyticsRepo.AssignmentCountsByProduct(ctx, order.ProductIDs())
	if err != nil {
		return nil, fmt.Errorf("dashboard: avance del próximo pedido: %w", err)
	}
	return &dto.NextOrderDTO{
		Order:    orders.ToOrderResponse(order, now),
		Progress: orders.ToProgressResponse(production.Calculate(order, counts, now)),
	}, nil
}

func (uc *DashboardUseCase) pendingOrders(ctx context.Context, now time.Time) (*dto.PendingOrdersDTO, error) {
	list, err := uc.analyticsRepo.OrdersByStatus(ctx, pendingStatuses, 0)
	if err != nil {
		return nil, fmt.Errorf("dashboard: pedidos pendientes: %w", err)
	}
	// Una sola consulta de conteos para todos los productos involucrados.
	var productIDs []string
	for _, o := range list {
		productIDs = append(productIDs, o.ProductIDs()...)
	}
	counts, err := uc.analyticsRepo.AssignmentCountsByProduct(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("dashboard: avance de pendientes: %w", err)
	}

	percents := make([]decimal.Decimal, 0, len(list))
	out := make([]dto.PendingOrderDTO, 0, dashboardPendingLimit)
	for i, o := range list {
		pct := production.Calculate(o, counts, now).PercentComplete
		percents = append(percents, pct)
		if i < dashboardPendingLimit {
			out = append(out, dto.PendingOrderDTO{
				Order:           *orders.ToOrderResponse(o, now),
				PercentComplete: pct,
			})
		}
	}
	return &dto.PendingOrdersDTO{
		Orders:            out,
		AverageCompletion: production.Average(percents),
	}, nil
}

func (uc *DashboardUseCase) semesters(ctx context.Context, year int, loc *time.Location) (map[string]int, error) {
	out := make(map[string]int, 6)
	for _, s := range production.SemestersFor(year) {
		from, to := s.Range(loc)
		n, err := uc.analyticsRepo.CountRegisteredBetween(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("dashboard: semestre %s: %w", s.Label(), err)
		}
		out[s.Label()] = n
	}
	return out, nil
}

func (uc *DashboardUseCase) alerts(ctx context.Context, now time.Time) ([]dto.AlertDTO, error) {
	overdueOrders, err := uc.analyticsRepo.OverdueOrders(ctx, now, dashboardAlertsLimit)
	if err != nil {
		return nil, fmt.Errorf("dashboard: alertas de pedidos: %w", err)
	}
	overdueTasks, err := uc.analyticsRepo.OverdueAssignments(ctx, now, dashboardAlertsLimit)
	if err != nil {
		return nil, fmt.Errorf("dashboard: alertas de tareas: %w", err)
	}

	out := make([]dto.AlertDTO, 0, len(overdueOrders)+len(overdueTasks))
	for _, o := range overdueOrders {
		out = append(out, dto.AlertDTO{
			Severity:      SeverityHigh,
			Message:       orderAlertMessage(o, now),
			ReferenceID:   o.ID,
			ReferenceType: ReferenceOrder,
		})
	}
	for _, a := range overdueTasks {
		out = append(out, dto.AlertDTO{
			Severity:      SeverityMedium,
			Message:       assignmentAlertMessage(a),
			ReferenceID:   a.ID,
			ReferenceType: ReferenceAssignment,
		})
	}
	return out, nil
}

func orderAlertMessage(o *entity.Order, now time.Time) string {
	days := int(now.Sub(o.DueDate) / (24 * time.Hour))
	who := o.CustomerName
	if who == "" {
		who = o.CustomerID
	}
	if days < 1 {
		return fmt.Sprintf("El pedido de %s venció hoy (%s)", who, o.Status.Label())
	}
	return fmt.Sprintf("El pedido de %s está vencido hace %d días (%s)", who, days, o.Status.Label())
}

func assignmentAlertMessage(a *entity.TaskAssignment) string {
	task := a.TaskName
	if task == "" {
		task = a.TaskID
	}
	user := a.UserName
	if user == "" {
		user = a.UserID
	}
	return fmt.Sprintf("La tarea %s asignada a %s superó su fecha de fin (%s)", task, user, a.Status.Label())
}
