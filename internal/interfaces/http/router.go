package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wms-stock-engine/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RegisterMovement *inventory.RegisterMovementUseCase
	Allocate         *inventory.AllocateUseCase
	ConfirmPick      *inventory.ConfirmPickUseCase
	Replenishment    *inventory.ReplenishmentUseCase
	Queries          *inventory.StockQueryUseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	inv := api.Group("/inventory", AuthMiddleware(deps.JWTSecret))

	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.Queries)
	inv.Post("/movements", inventoryHandler.RegisterMovement)
	inv.Post("/counts", inventoryHandler.CycleCount)
	inv.Get("/products/:id/available", inventoryHandler.ListAvailable)
	inv.Get("/products/:id/on-hand", inventoryHandler.TotalOnHand)
	inv.Get("/products/:id/movements", inventoryHandler.ListMovements)

	taskHandler := NewTaskHandler(deps.Allocate, deps.ConfirmPick, deps.Replenishment, deps.Queries)
	inv.Post("/allocations", taskHandler.Allocate)
	inv.Get("/tasks", taskHandler.ListTasks)
	inv.Get("/tasks/:id", taskHandler.GetTask)
	inv.Post("/tasks/:id/confirm", taskHandler.ConfirmPick)
	inv.Post("/replenishment/scan", taskHandler.RunReplenishment)
}
