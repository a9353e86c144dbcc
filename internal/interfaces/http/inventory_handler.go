package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/resto-inventario/internal/application/dto"
	"github.com/tu-usuario/resto-inventario/internal/application/inventory"
	"github.com/tu-usuario/resto-inventario/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP del libro de stock (protegido).
type InventoryHandler struct {
	record *inventory.RecordMovementUseCase
	seed   *inventory.SeedStockUseCase
	query  *inventory.LedgerQueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	record *inventory.RecordMovementUseCase,
	seed *inventory.SeedStockUseCase,
	query *inventory.LedgerQueryUseCase,
) *InventoryHandler {
	return &InventoryHandler{record: record, seed: seed, query: query}
}

// RecordMovement registra un movimiento (in/out/adjustment/transfer).
// POST /api/inventory/movements
func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.record.RecordMovement(c.Context(), inventory.MovementInput{
		ProductID:              in.ProductID,
		Type:                   entity.MovementType(in.Type),
		Quantity:               in.Quantity,
		SourceWarehouseID:      in.SourceWarehouseID,
		DestinationWarehouseID: in.DestinationWarehouseID,
		ReferenceID:            in.ReferenceID,
		HandledBy:              actorLabel(c),
		Notes:                  in.Notes,
		AllowNegative:          in.AllowNegative,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "movimiento registrado"})
}

// SeedStock carga el stock inicial por lote.
// POST /api/inventory/seed
func (h *InventoryHandler) SeedStock(c *fiber.Ctx) error {
	var in dto.SeedStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	items := make([]inventory.SeedItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, inventory.SeedItemInput{
			ProductID:   it.ProductID,
			WarehouseID: it.WarehouseID,
			Quantity:    it.Quantity,
			MinStock:    it.MinStock,
		})
	}
	report, err := h.seed.SeedInitialStock(c.Context(), actorLabel(c), items)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SeedReportDTO{Succeeded: report.Succeeded, Failed: report.Failed})
}

// GetStockRecord devuelve el contador de un (producto, bodega).
// GET /api/inventory/stock/:productID/:warehouseID
func (h *InventoryHandler) GetStockRecord(c *fiber.Ctx) error {
	record, err := h.query.GetRecord(c.Context(), c.Params("productID"), c.Params("warehouseID"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StockRecordToDTO(record))
}

// ListMovements historial por producto o por bodega en un rango de fechas.
// GET /api/inventory/movements?product_id=...&warehouse_id=...&from=...&to=...
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	from := parseDate(c.Query("from"))
	to := parseDate(c.Query("to"))

	var (
		list []*entity.MovementEntry
		err  error
	)
	if productID := c.Query("product_id"); productID != "" {
		list, err = h.query.ListMovementsByProduct(c.Context(), productID, from, to, page.Limit, page.Offset)
	} else {
		list, err = h.query.ListMovementsByWarehouse(c.Context(), c.Query("warehouse_id"), from, to, page.Limit, page.Offset)
	}
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.MovementEntryDTO, 0, len(list))
	for _, m := range list {
		out = append(out, dto.MovementEntryToDTO(m))
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

// ListBelowMin registros bajo su umbral de reorden.
// GET /api/inventory/below-min
func (h *InventoryHandler) ListBelowMin(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.query.ListBelowMin(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.StockRecordDTO, 0, len(list))
	for _, r := range list {
		out = append(out, dto.StockRecordToDTO(r))
	}
	return c.JSON(fiber.Map{"total": len(out), "records": out})
}

// VerifyRecord verifica el invariante contador == suma del libro.
// GET /api/inventory/stock/:productID/:warehouseID/verify
func (h *InventoryHandler) VerifyRecord(c *fiber.Ctx) error {
	ok, err := h.query.VerifyRecord(c.Context(), c.Params("productID"), c.Params("warehouseID"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"consistent": ok})
}

// parseDate fecha RFC3339 opcional en query params.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}
