package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/gestion-centros/internal/application/dto"
	"github.com/jhoicas/gestion-centros/pkg/jwt"
)

// Locals keys para la identidad del token en Fiber.
const (
	LocalCedula   = "cedula"
	LocalCentroID = "centro_id"
	LocalRole     = "role"
)

// AuthMiddleware valida el Bearer Token JWT y carga cédula, centro y rol en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
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
		id, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalCedula, id.Cedula)
		c.Locals(LocalCentroID, id.CentroID)
		c.Locals(LocalRole, id.Role)
		return c.Next()
	}
}

// GetCedula devuelve la cédula del usuario autenticado (0 si no hay).
func GetCedula(c *fiber.Ctx) int64 {
	v, _ := c.Locals(LocalCedula).(int64)
	return v
}

// GetCentroID devuelve el centro del usuario autenticado.
func GetCentroID(c *fiber.Ctx) int {
	v, _ := c.Locals(LocalCentroID).(int)
	return v
}

// GetRole devuelve el tipo de usuario del token.
func GetRole(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalRole).(string)
	return v
}
