package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Confecciones-api/internal/application/analytics"
	"github.com/jhoicas/Confecciones-api/internal/application/assignments"
	"github.com/jhoicas/Confecciones-api/internal/application/auth"
	"github.com/jhoicas/Confecciones-api/internal/application/orders"
	"github.com/jhoicas/Confecciones-api/internal/application/reports"
	"github.com/jhoicas/Confecciones-api/internal/application/usecase"
	"github.com/jhoicas/Confecciones-api/internal/domain"
	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	CustomerUC   *usecase.CustomerUseCase
	CatalogUC    *usecase.CatalogUseCase
	MaterialUC   *usecase.MaterialUseCase
	ProductUC    *usecase.ProductUseCase
	TaskUC       *usecase.TaskUseCase
	OrderUC      *orders.OrderUseCase
	AssignmentUC *assignments.AssignmentUseCase
	DashboardUC  *appanalytics.DashboardUseCase
	ReportUC     *reports.ReportUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	supervisor := RequireRole(domain.RoleAdmin, domain.RoleManager)

	protected.Get("/auth/me", authHandler.Me)

	// Users (solo Admin)
	users := protected.Group("/users", RequireRole(domain.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Put("/:id/roles", userHandler.SetRoles)
	users.Post("/:id/unlock", userHandler.Unlock)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/by-email/:email", customerHandler.GetByEmail)
	customers.Get("/by-document/:document", customerHandler.GetByDocument)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Catálogos (colores, tallas, categorias, familias, lineas, tipos-material)
	catalogs := protected.Group("/catalogs/:kind")
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	catalogs.Post("/", catalogHandler.Create)
	catalogs.Get("/", catalogHandler.List)
	catalogs.Put("/:id", catalogHandler.Update)
	catalogs.Delete("/:id", catalogHandler.Delete)

	// Insumos
	materials := protected.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials.Post("/", materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Put("/:id", materialHandler.Update)
	materials.Delete("/:id", materialHandler.Delete)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Definiciones de tarea
	tasks := protected.Group("/tasks")
	taskHandler := NewTaskHandler(deps.TaskUC)
	tasks.Post("/", taskHandler.Create)
	tasks.Get("/", taskHandler.List)
	tasks.Get("/:id", taskHandler.GetByID)
	tasks.Put("/:id", taskHandler.Update)
	tasks.Delete("/:id", taskHandler.Delete)

	// Pedidos
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.ReportUC)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/export.xlsx", orderHandler.ExportExcel)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Put("/:id", orderHandler.Update)
	ordersGroup.Delete("/:id", orderHandler.Delete)
	ordersGroup.Patch("/:id/start", orderHandler.Transition(entity.OrderInProgress))
	ordersGroup.Patch("/:id/produce", orderHandler.Transition(entity.OrderInProduction))
	ordersGroup.Patch("/:id/complete", orderHandler.Transition(entity.OrderCompleted))
	ordersGroup.Patch("/:id/deliver", orderHandler.Transition(entity.OrderDelivered))
	ordersGroup.Patch("/:id/cancel", orderHandler.Transition(entity.OrderCancelled))
	ordersGroup.Patch("/:id/status", orderHandler.ChangeStatus)
	ordersGroup.Get("/:id/progress", orderHandler.Progress)
	ordersGroup.Get("/:id/pdf", orderHandler.SheetPDF)

	// Asignaciones de tareas. Start/complete/pause los autoriza el caso de uso
	// (usuario asignado o supervisor).
	assignmentsGroup := protected.Group("/assignments")
	assignmentHandler := NewAssignmentHandler(deps.AssignmentUC)
	assignmentsGroup.Post("/", supervisor, assignmentHandler.Create)
	assignmentsGroup.Post("/bulk", supervisor, assignmentHandler.BulkAssign)
	assignmentsGroup.Get("/", assignmentHandler.List)
	assignmentsGroup.Get("/:id", assignmentHandler.GetByID)
	assignmentsGroup.Patch("/:id/start", assignmentHandler.Start)
	assignmentsGroup.Patch("/:id/complete", assignmentHandler.Complete)
	assignmentsGroup.Patch("/:id/pause", assignmentHandler.Pause)
	assignmentsGroup.Patch("/:id/status", supervisor, assignmentHandler.ChangeStatus)
	assignmentsGroup.Delete("/:id", supervisor, assignmentHandler.Delete)

	// Dashboard
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.OrderUC)
	dashboard.Get("/", dashboardHandler.GetSummary)
	dashboard.Get("/next-order", dashboardHandler.NextOrder)
	dashboard.Get("/progress/:orderId", dashboardHandler.OrderProgress)
	dashboard.Get("/pending", dashboardHandler.PendingOrders)
	dashboard.Get("/semesters", dashboardHandler.Semesters)
	dashboard.Get("/alerts", dashboardHandler.Alerts)
}
