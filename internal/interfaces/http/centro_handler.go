package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/gestion-centros/internal/application/dto"
	"github.com/jhoicas/gestion-centros/internal/application/usecase"
)

// CentroHandler expone el catálogo de centros de formación.
type CentroHandler struct {
	uc *usecase.CentroUseCase
}

// NewCentroHandler construye el handler.
func NewCentroHandler(uc *usecase.CentroUseCase) *CentroHandler {
	return &CentroHandler{uc: uc}
}

// List godoc
// @Summary      Listar centros de formación
// @Tags         centros
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CentroListResponse
// @Router       /api/centros [get]
func (h *CentroHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
