package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/onedelivery/onedelivery-api/internal/application/dto"
	"github.com/onedelivery/onedelivery-api/internal/application/report"
	"github.com/onedelivery/onedelivery-api/internal/domain"
)

// ReportHandler maneja las descargas: libro de transacciones XLSX y estado de
// cuenta PDF por sesión (protegido).
type ReportHandler struct {
	export    *report.ExportUseCase
	statement *report.StatementUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(export *report.ExportUseCase, statement *report.StatementUseCase) *ReportHandler {
	return &ReportHandler{export: export, statement: statement}
}

// ExportTransactions godoc
// @Summary      Exportar libro de transacciones (XLSX)
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        driver_uid   query  string  false  "Filtrar por conductor"
// @Param        branch_id    query  string  false  "Filtrar por sucursal"
// @Param        oil_type_id  query  string  false  "Filtrar por tipo de aceite"
// @Param        from         query  string  false  "Fecha inicial (RFC3339)"
// @Param        to           query  string  false  "Fecha final (RFC3339)"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/transactions.xlsx [get]
func (h *ReportHandler) ExportTransactions(c *fiber.Ctx) error {
	filter, err := parseTransactionFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fechas inválidas; usar RFC3339"})
	}
	// Exportación completa dentro del rango: sin paginación.
	filter.Limit = 10000
	filter.Offset = 0

	data, err := h.export.TransactionsXLSX(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	filename := fmt.Sprintf("transacciones_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	return c.Send(data)
}

// SessionStatement godoc
// @Summary      Estado de cuenta PDF de una sesión de carga
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la sesión"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/sessions/{id}.pdf [get]
func (h *ReportHandler) SessionStatement(c *fiber.Ctx) error {
	data, err := h.statement.SessionStatementPDF(c.Context(), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sesión no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	filename := fmt.Sprintf("estado_sesion_%s.pdf", c.Params("id"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	return c.Send(data)
}
