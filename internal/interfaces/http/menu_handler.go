package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/resto-inventario/internal/application/dto"
	"github.com/tu-usuario/resto-inventario/internal/application/menu"
)

// MenuHandler maneja el stock derivado de menú (protegido).
type MenuHandler struct {
	availability *menu.AvailabilityUseCase
	sweep        *menu.SweepScheduler
}

// NewMenuHandler construye el handler.
func NewMenuHandler(availability *menu.AvailabilityUseCase, sweep *menu.SweepScheduler) *MenuHandler {
	return &MenuHandler{availability: availability, sweep: sweep}
}

// GetMenuStock devuelve el stock derivado de un (ítem, bodega).
// GET /api/menu-stock/:itemID/:warehouseID
func (h *MenuHandler) GetMenuStock(c *fiber.Ctx) error {
	stock, err := h.availability.GetMenuStock(c.Context(), c.Params("itemID"), c.Params("warehouseID"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MenuStockToDTO(stock))
}

// Recalculate recalcula el stock derivado de un ítem en una bodega.
// POST /api/menu-stock/:itemID/:warehouseID/recalculate
func (h *MenuHandler) Recalculate(c *fiber.Ctx) error {
	stock, err := h.availability.RecalculateForItem(c.Context(), c.Params("itemID"), c.Params("warehouseID"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MenuStockToDTO(stock))
}

// SetManualStock fija el override del operador.
// PUT /api/menu-stock/:itemID/:warehouseID/manual
func (h *MenuHandler) SetManualStock(c *fiber.Ctx) error {
	var in dto.SetManualStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	stock, err := h.availability.SetManualStock(c.Context(), c.Params("itemID"), c.Params("warehouseID"), in.ManualStock)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MenuStockToDTO(stock))
}

// ClearManualStock limpia el override; vuelve a regir el valor calculado.
// DELETE /api/menu-stock/:itemID/:warehouseID/manual
func (h *MenuHandler) ClearManualStock(c *fiber.Ctx) error {
	stock, err := h.availability.ClearManualStock(c.Context(), c.Params("itemID"), c.Params("warehouseID"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MenuStockToDTO(stock))
}

// TriggerSweep dispara un barrido completo de recálculo. Si hay uno en curso
// responde 409 (el CAS del scheduler rechaza el solapamiento).
// POST /api/menu-stock/sweep
func (h *MenuHandler) TriggerSweep(c *fiber.Ctx) error {
	report, err := h.sweep.Sweep(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SweepReportDTO{
		Processed:  report.Processed,
		Failed:     report.Failed,
		DurationMs: report.Duration.Milliseconds(),
	})
}
