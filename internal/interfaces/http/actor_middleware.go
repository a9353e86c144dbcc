package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/resto-inventario/internal/application/dto"
	"github.com/tu-usuario/resto-inventario/pkg/jwt"
)

// Locals keys para la identidad del actor en Fiber.
const (
	LocalActorID   = "actor_id"
	LocalActorName = "actor_name"
)

// ActorMiddleware valida el Bearer Token JWT y extrae la identidad del actor a
// c.Locals. Toda operación que muta el libro la adjunta como HandledBy.
func ActorMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		actorID, actorName, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalActorID, actorID)
		c.Locals(LocalActorName, actorName)
		return c.Next()
	}
}

// GetActorID devuelve el ID del actor del contexto (después del middleware).
func GetActorID(c *fiber.Ctx) string {
	v := c.Locals(LocalActorID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetActorName devuelve el nombre del actor del contexto.
func GetActorName(c *fiber.Ctx) string {
	v := c.Locals(LocalActorName)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// actorLabel identidad a adjuntar en HandledBy: nombre si existe, si no el ID.
func actorLabel(c *fiber.Ctx) string {
	if name := GetActorName(c); name != "" {
		return name
	}
	return GetActorID(c)
}
