package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appanalytics "github.com/jhoicas/Confecciones-api/internal/application/analytics"
	"github.com/jhoicas/Confecciones-api/internal/application/assignments"
	"github.com/jhoicas/Confecciones-api/internal/application/auth"
	"github.com/jhoicas/Confecciones-api/internal/application/orders"
	"github.com/jhoicas/Confecciones-api/internal/application/reports"
	"github.com/jhoicas/Confecciones-api/internal/application/usecase"
	infraexcel "github.com/jhoicas/Confecciones-api/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/Confecciones-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Confecciones-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Confecciones-api/internal/interfaces/http"
	"github.com/jhoicas/Confecciones-api/pkg/config"
	"github.com/jhoicas/Confecciones-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	assignmentRepo := postgres.NewTaskAssignmentRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	orderUC := orders.NewOrderUseCase(orderRepo, customerRepo, productRepo, assignmentRepo, txRunner)
	assignmentUC := assignments.NewAssignmentUseCase(assignmentRepo, userRepo, productRepo, taskRepo, txRunner)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)

	// Documentos: hoja de producción (PDF) y exportación de pedidos (Excel)
	reportUC := reports.NewReportUseCase(
		orderRepo, customerRepo, assignmentRepo,
		infrapdf.NewMarotoOrderSheetGenerator(cfg.App.Name),
		infraexcel.NewOrdersExporter(),
	)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, auth.LockoutPolicy{
		MaxFailedAttempts: cfg.Auth.MaxFailedAttempts,
		Lockout:           time.Duration(cfg.Auth.LockoutMinutes) * time.Minute,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: cfg.Swagger.FilePath,
		Path:     "docs",
		Title:    "Confecciones API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		UserUC:       usecase.NewUserUseCase(userRepo),
		CustomerUC:   usecase.NewCustomerUseCase(customerRepo),
		CatalogUC:    usecase.NewCatalogUseCase(catalogRepo),
		MaterialUC:   usecase.NewMaterialUseCase(materialRepo, catalogRepo),
		ProductUC:    usecase.NewProductUseCase(productRepo, catalogRepo, materialRepo),
		TaskUC:       usecase.NewTaskUseCase(taskRepo, assignmentRepo),
		OrderUC:      orderUC,
		AssignmentUC: assignmentUC,
		DashboardUC:  dashboardUC,
		ReportUC:     reportUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
