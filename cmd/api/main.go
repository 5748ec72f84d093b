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

	"github.com/bountygroup/drinks-inventory-api/internal/application/audit"
	"github.com/bountygroup/drinks-inventory-api/internal/application/auth"
	"github.com/bountygroup/drinks-inventory-api/internal/application/movement"
	"github.com/bountygroup/drinks-inventory-api/internal/application/usecase"
	"github.com/bountygroup/drinks-inventory-api/internal/infrastructure/postgres"
	httpRouter "github.com/bountygroup/drinks-inventory-api/internal/interfaces/http"
	"github.com/bountygroup/drinks-inventory-api/pkg/config"
	"github.com/bountygroup/drinks-inventory-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Strs("warehouses", cfg.Inventory.Warehouses).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewStockItemRepository(pool)
	checkoutRepo := postgres.NewCheckoutBatchRepository(pool)
	transferRepo := postgres.NewTransferBatchRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	recorder := audit.NewRecorder(auditRepo, log)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	inventoryUC := usecase.NewInventoryUseCase(itemRepo, cfg.Inventory, recorder)
	checkoutUC := movement.NewCheckoutUseCase(txRunner, checkoutRepo, cfg.Inventory, recorder)
	transferUC := movement.NewTransferUseCase(txRunner, transferRepo, cfg.Inventory, recorder)
	userUC := usecase.NewUserUseCase(userRepo, recorder)
	dashboardUC := usecase.NewDashboardUseCase(dashboardRepo, checkoutRepo, transferRepo, cfg.Inventory)
	logsUC := usecase.NewLogsUseCase(auditRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		InventoryUC: inventoryUC,
		CheckoutUC:  checkoutUC,
		TransferUC:  transferUC,
		UserUC:      userUC,
		DashboardUC: dashboardUC,
		LogsUC:      logsUC,
		JWTSecret:   cfg.JWT.Secret,
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
