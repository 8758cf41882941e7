package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/onedelivery/onedelivery-api/internal/application/dto"
	appledger "github.com/onedelivery/onedelivery-api/internal/application/ledger"
	"github.com/onedelivery/onedelivery-api/internal/domain"
	"github.com/onedelivery/onedelivery-api/internal/domain/repository"
)

// TransactionHandler maneja el registro, listado, edición, historial e
// impacto de transacciones (protegido).
type TransactionHandler struct {
	register *appledger.RegisterTransactionUseCase
	edit     *appledger.EditTransactionUseCase
	impact   *appledger.InventoryImpactUseCase
	query    *appledger.QueryUseCase
	users    repository.UserRepository
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(
	register *appledger.RegisterTransactionUseCase,
	edit *appledger.EditTransactionUseCase,
	impact *appledger.InventoryImpactUseCase,
	query *appledger.QueryUseCase,
	users repository.UserRepository,
) *TransactionHandler {
	return &TransactionHandler{register: register, edit: edit, impact: impact, query: query, users: users}
}

// Register godoc
// @Summary      Registrar transacción (carga, suministro o entrega)
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterTransactionRequest  true  "type, branch_id, oil_type_id, quantity"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *TransactionHandler) Register(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	tx, err := h.register.Register(c.Context(), userID, in)
	if err != nil {
		return mapLedgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToTransactionResponse(tx))
}

// List godoc
// @Summary      Listar transacciones
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        driver_uid   query  string  false  "Filtrar por conductor"
// @Param        branch_id    query  string  false  "Filtrar por sucursal"
// @Param        oil_type_id  query  string  false  "Filtrar por tipo de aceite"
// @Param        type         query  string  false  "loading | supply | delivery"
// @Param        from         query  string  false  "Fecha inicial (RFC3339)"
// @Param        to           query  string  false  "Fecha final (RFC3339)"
// @Success      200  {array}   dto.TransactionResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	filter, err := parseTransactionFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fechas inválidas; usar RFC3339"})
	}
	txs, err := h.query.Transactions(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.TransactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, dto.ToTransactionResponse(t))
	}
	return c.JSON(out)
}

// Edit godoc
// @Summary      Editar transacción con auditoría
// @Description  Aplica una edición con diff por campo, motivo obligatorio y
//
//	estrategia de ajuste de inventario (automatic | manual | none).
//	Las advertencias de impacto son consultivas: nunca bloquean el commit.
//
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID de la transacción"
// @Param        body  body  dto.EditTransactionRequest  true  "campos a editar + reason"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [put]
func (h *TransactionHandler) Edit(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.EditTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.edit.Edit(c.Context(), c.Params("id"), userID, h.editorName(userID), in)
	if err != nil {
		return mapLedgerError(c, err)
	}
	resp := fiber.Map{
		"transaction": dto.ToTransactionResponse(result.Transaction),
		"audit_entry": dto.ToEditHistoryResponse(result.Entry),
	}
	if result.Impact != nil {
		resp["impact"] = result.Impact
	}
	return c.JSON(resp)
}

// History godoc
// @Summary      Historial de ediciones de una transacción
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la transacción"
// @Success      200  {array}   dto.EditHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/history [get]
func (h *TransactionHandler) History(c *fiber.Ctx) error {
	entries, err := h.query.TransactionHistory(c.Params("id"))
	if err != nil {
		return mapLedgerError(c, err)
	}
	out := make([]dto.EditHistoryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.ToEditHistoryResponse(e))
	}
	return c.JSON(out)
}

// Impact godoc
// @Summary      Evaluar impacto en inventario de un cambio de cantidad
// @Description  Solo lectura: proyecta el saldo de la sesión de carga con la
//
//	nueva cantidad y devuelve advertencias consultivas.
//
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImpactRequest  true  "transaction_id, original_quantity, new_quantity"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/transactions/impact [post]
func (h *TransactionHandler) Impact(c *fiber.Ctx) error {
	var in dto.ImpactRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	impact, err := h.impact.Calculate(in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(impact)
}

// editorName resuelve el nombre del editor para la auditoría; si el usuario
// no se encuentra, la entrada queda con el UID solamente.
func (h *TransactionHandler) editorName(userID string) string {
	u, err := h.users.GetByID(userID)
	if err != nil || u == nil {
		return ""
	}
	return u.Name
}

// parseTransactionFilter arma el filtro desde los query params.
func parseTransactionFilter(c *fiber.Ctx) (repository.TransactionFilter, error) {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()

	f := repository.TransactionFilter{
		DriverUID: c.Query("driver_uid"),
		BranchID:  c.Query("branch_id"),
		OilTypeID: c.Query("oil_type_id"),
		Type:      c.Query("type"),
		Limit:     page.Limit,
		Offset:    page.Offset,
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, err
		}
		f.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, err
		}
		f.To = &t
	}
	return f, nil
}

// mapLedgerError traduce errores de dominio del libro mayor a HTTP.
func mapLedgerError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrNoChanges:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_CHANGES", Message: "la edición no contiene cambios"})
	case domain.ErrReasonRequired:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "REASON_REQUIRED", Message: "la edición requiere un motivo"})
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case domain.ErrConflict:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "la transacción fue editada por otro usuario; recargue y reintente"})
	case domain.ErrSessionNotActive:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SESSION_NOT_ACTIVE", Message: "la sesión de carga no está activa"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
