package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/resto-inventario/internal/application/dto"
	"github.com/tu-usuario/resto-inventario/internal/domain"
	"github.com/tu-usuario/resto-inventario/pkg/retry"
)

// writeError mapea errores de dominio a respuestas HTTP con código estable.
// Todo fallo visible lleva mensaje legible y, cuando existe, la causa subyacente.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrRecipeNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto con el estado actual"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrSweepRunning):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SWEEP_RUNNING", Message: "ya hay un recálculo en curso"})
	case errors.Is(err, retry.ErrExhausted):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "RETRY_EXHAUSTED", Message: "conflicto de escritura persistente", Cause: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno", Cause: err.Error()})
	}
}
