package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/onedelivery/onedelivery-api/internal/application/dto"
	"github.com/onedelivery/onedelivery-api/internal/application/usecase"
	"github.com/onedelivery/onedelivery-api/internal/domain"
)

// OilTypeHandler maneja los tipos de aceite (datos de referencia).
type OilTypeHandler struct {
	uc *usecase.OilTypeUseCase
}

// NewOilTypeHandler construye el handler.
func NewOilTypeHandler(uc *usecase.OilTypeUseCase) *OilTypeHandler {
	return &OilTypeHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tipo de aceite
// @Tags         oil-types
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OilTypeRequest  true  "name"
// @Success      201   {object}  entity.OilType
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/oil-types [post]
func (h *OilTypeHandler) Create(c *fiber.Ctx) error {
	var in dto.OilTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	o, err := h.uc.Create(in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
		}
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el tipo de aceite ya existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(o)
}

// List godoc
// @Summary      Listar tipos de aceite
// @Tags         oil-types
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.OilType
// @Router       /api/oil-types [get]
func (h *OilTypeHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}
