package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/resto-inventario/internal/application/dto"
	"github.com/tu-usuario/resto-inventario/internal/application/inventory"
)

// FulfillmentHandler maneja el cumplimiento de requisiciones (protegido).
type FulfillmentHandler struct {
	fulfillment *inventory.FulfillmentUseCase
}

// NewFulfillmentHandler construye el handler.
func NewFulfillmentHandler(fulfillment *inventory.FulfillmentUseCase) *FulfillmentHandler {
	return &FulfillmentHandler{fulfillment: fulfillment}
}

// Execute planifica y ejecuta el cumplimiento de una requisición aprobada.
// POST /api/requisitions/:id/fulfillment
func (h *FulfillmentHandler) Execute(c *fiber.Ctx) error {
	var in dto.FulfillmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	items := make([]inventory.FulfillmentItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, inventory.FulfillmentItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	result, err := h.fulfillment.PlanAndExecuteFulfillment(
		c.Context(), c.Params("id"), in.DestinationWarehouseID, actorLabel(c), items,
	)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(result)
}
