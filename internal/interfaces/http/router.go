package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bountygroup/drinks-inventory-api/internal/application/auth"
	"github.com/bountygroup/drinks-inventory-api/internal/application/movement"
	"github.com/bountygroup/drinks-inventory-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	InventoryUC *usecase.InventoryUseCase
	CheckoutUC  *movement.CheckoutUseCase
	TransferUC  *movement.TransferUseCase
	UserUC      *usecase.UserUseCase
	DashboardUC *usecase.DashboardUseCase
	LogsUC      *usecase.LogsUseCase
	JWTSecret   string
}

// Router registra las rutas de la API. Solo el login es público; el resto exige
// Bearer Token. La autorización fina (roles) vive en los casos de uso.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público, /me protegido)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Inventario
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inv := protected.Group("/inventory")
	inv.Get("/", inventoryHandler.List)
	inv.Post("/", inventoryHandler.Create)
	inv.Get("/:id", inventoryHandler.GetByID)
	inv.Put("/:id", inventoryHandler.Update)
	inv.Delete("/:id", inventoryHandler.Delete)

	// Checkouts
	checkoutHandler := NewCheckoutHandler(deps.CheckoutUC)
	checkout := protected.Group("/checkout")
	checkout.Post("/", checkoutHandler.Create)
	checkout.Get("/history", checkoutHandler.History)
	checkout.Delete("/:id", checkoutHandler.Delete)

	// Traslados entre bodegas
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfer := protected.Group("/transfer")
	transfer.Post("/", transferHandler.Create)
	transfer.Get("/history", transferHandler.History)
	transfer.Delete("/:id", transferHandler.Delete)

	// Usuarios
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users")
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Dashboard y auditoría
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/stats", dashboardHandler.Stats)

	logsHandler := NewLogsHandler(deps.LogsUC)
	protected.Get("/logs", logsHandler.List)
}
