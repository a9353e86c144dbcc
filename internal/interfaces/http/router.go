package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/resto-inventario/internal/application/inventory"
	"github.com/tu-usuario/resto-inventario/internal/application/menu"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RecordMovement *inventory.RecordMovementUseCase
	SeedStock      *inventory.SeedStockUseCase
	LedgerQuery    *inventory.LedgerQueryUseCase
	Fulfillment    *inventory.FulfillmentUseCase
	Availability   *menu.AvailabilityUseCase
	Sweep          *menu.SweepScheduler
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas: requieren Bearer Token con identidad del actor
	protected := api.Group("/", ActorMiddleware(deps.JWTSecret))

	// Libro de stock
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RecordMovement, deps.SeedStock, deps.LedgerQuery)
	invGroup.Post("/movements", inventoryHandler.RecordMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Post("/seed", inventoryHandler.SeedStock)
	invGroup.Get("/below-min", inventoryHandler.ListBelowMin)
	invGroup.Get("/stock/:productID/:warehouseID", inventoryHandler.GetStockRecord)
	invGroup.Get("/stock/:productID/:warehouseID/verify", inventoryHandler.VerifyRecord)

	// Cumplimiento de requisiciones
	fulfillmentHandler := NewFulfillmentHandler(deps.Fulfillment)
	protected.Post("/requisitions/:id/fulfillment", fulfillmentHandler.Execute)

	// Stock derivado de menú
	menuGroup := protected.Group("/menu-stock")
	menuHandler := NewMenuHandler(deps.Availability, deps.Sweep)
	menuGroup.Post("/sweep", menuHandler.TriggerSweep)
	menuGroup.Get("/:itemID/:warehouseID", menuHandler.GetMenuStock)
	menuGroup.Post("/:itemID/:warehouseID/recalculate", menuHandler.Recalculate)
	menuGroup.Put("/:itemID/:warehouseID/manual", menuHandler.SetManualStock)
	menuGroup.Delete("/:itemID/:warehouseID/manual", menuHandler.ClearManualStock)
}
