package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/gestion-centros/internal/application/dto"
	"github.com/jhoicas/gestion-centros/internal/application/usecase"
	"github.com/jhoicas/gestion-centros/internal/domain"
	"github.com/rs/zerolog"
)

// UserHandler maneja la administración de usuarios (solo Administrador).
type UserHandler struct {
	uc  *usecase.UserUseCase
	log zerolog.Logger
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase, log zerolog.Logger) *UserHandler {
	return &UserHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UserBackend
// @Router       /api/usuarios [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return h.internal(c, err, "listar usuarios")
	}
	return c.JSON(out)
}

// GetByCedula godoc
// @Summary      Obtener usuario por cédula
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Param        cedula  path  int  true  "Cédula"
// @Success      200  {object}  dto.UserBackend
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{cedula} [get]
func (h *UserHandler) GetByCedula(c *fiber.Ctx) error {
	cedula, ok := parseCedula(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "cédula inválida"})
	}
	out, err := h.uc.GetByCedula(c.UserContext(), cedula)
	if err != nil {
		return h.internal(c, err, "obtener usuario")
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar usuario
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        cedula  path  int                    true  "Cédula"
// @Param        body    body  dto.UpdateUserRequest  true  "Campos a modificar"
// @Success      200  {object}  dto.UserBackend
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{cedula} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	cedula, ok := parseCedula(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "cédula inválida"})
	}
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), cedula, in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos de usuario inválidos"})
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el correo ya está registrado"})
		}
		return h.internal(c, err, "actualizar usuario")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar usuario
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Param        cedula  path  int  true  "Cédula"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{cedula} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	cedula, ok := parseCedula(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "cédula inválida"})
	}
	if err := h.uc.Delete(c.UserContext(), GetCedula(c), cedula); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SELF_DELETE", Message: "no puede eliminar su propio usuario"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
		}
		return h.internal(c, err, "eliminar usuario")
	}
	return c.JSON(dto.MessageResponse{Message: "usuario eliminado"})
}

// Report godoc
// @Summary      Reporte PDF de usuarios
// @Tags         usuarios
// @Security     Bearer
// @Produce      application/pdf
// @Success      200
// @Router       /api/usuarios/reporte [get]
func (h *UserHandler) Report(c *fiber.Ctx) error {
	pdf, err := h.uc.Report(c.UserContext())
	if err != nil {
		return h.internal(c, err, "reporte de usuarios")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="usuarios.pdf"`)
	return c.Send(pdf)
}

func (h *UserHandler) internal(c *fiber.Ctx, err error, op string) error {
	h.log.Error().Err(err).Str("op", op).Msg("usuarios")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func parseCedula(c *fiber.Ctx) (int64, bool) {
	cedula, err := strconv.ParseInt(c.Params("cedula"), 10, 64)
	if err != nil || cedula <= 0 {
		return 0, false
	}
	return cedula, true
}
