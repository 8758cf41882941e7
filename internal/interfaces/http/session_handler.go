package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/onedelivery/onedelivery-api/internal/application/dto"
	appledger "github.com/onedelivery/onedelivery-api/internal/application/ledger"
	"github.com/onedelivery/onedelivery-api/internal/domain/entity"
)

// SessionHandler maneja consultas de sesiones de carga (protegido).
type SessionHandler struct {
	query *appledger.QueryUseCase
}

// NewSessionHandler construye el handler.
func NewSessionHandler(query *appledger.QueryUseCase) *SessionHandler {
	return &SessionHandler{query: query}
}

// ListActive godoc
// @Summary      Sesiones de carga activas
// @Description  Los conductores ven solo sus propias sesiones; admin ve todas
//
//	(o filtra con driver_uid).
//
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        driver_uid  query  string  false  "Filtrar por conductor (solo admin)"
// @Success      200  {array}   dto.LoadSessionResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/sessions/active [get]
func (h *SessionHandler) ListActive(c *fiber.Ctx) error {
	driverUID := c.Query("driver_uid")
	if GetRole(c) == entity.RoleDriver {
		driverUID = GetUserID(c)
	}
	sessions, err := h.query.ActiveSessions(driverUID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.LoadSessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, dto.ToLoadSessionResponse(s))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de una sesión de carga
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.LoadSessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id} [get]
func (h *SessionHandler) GetByID(c *fiber.Ctx) error {
	sess, err := h.query.SessionByID(c.Params("id"))
	if err != nil {
		return mapLedgerError(c, err)
	}
	return c.JSON(dto.ToLoadSessionResponse(sess))
}
