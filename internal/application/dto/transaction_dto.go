package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/onedelivery/onedelivery-api/internal/domain/entity"
)

// RegisterTransactionRequest body para POST /api/transactions.
// Quantity se interpreta según Type: litros cargados (loading), suministrados
// (supply) o entregados (delivery).
type RegisterTransactionRequest struct {
	Type              string           `json:"type"`
	TransactionNo     string           `json:"transaction_no,omitempty"`
	DriverName        string           `json:"driver_name,omitempty"`
	BranchID          string           `json:"branch_id"`
	OilTypeID         string           `json:"oil_type_id"`
	LoadSessionID     string           `json:"load_session_id,omitempty"` // vacío: se resuelve por conductor+tipo de aceite
	Quantity          decimal.Decimal  `json:"quantity"`
	StartMeterReading *decimal.Decimal `json:"start_meter_reading,omitempty"`
	EndMeterReading   *decimal.Decimal `json:"end_meter_reading,omitempty"`
}

// EditTransactionRequest body para PUT /api/transactions/:id.
// Solo los campos presentes (punteros no nulos) participan del diff.
type EditTransactionRequest struct {
	Reason                 string           `json:"reason"`
	InventoryAdjustment    string           `json:"inventory_adjustment,omitempty"` // automatic | manual | none (default automatic)
	ManualAdjustmentLiters *decimal.Decimal `json:"manual_adjustment_liters,omitempty"`
	// ExpectedLastEditedAt instantánea del editor para el CAS optimista;
	// nil = usar la leída en el servidor.
	ExpectedLastEditedAt *time.Time `json:"expected_last_edited_at,omitempty"`

	TransactionNo     *string          `json:"transaction_no,omitempty"`
	BranchID          *string          `json:"branch_id,omitempty"`
	OilTypeID         *string          `json:"oil_type_id,omitempty"`
	Quantity          *decimal.Decimal `json:"quantity,omitempty"`
	StartMeterReading *decimal.Decimal `json:"start_meter_reading,omitempty"`
	EndMeterReading   *decimal.Decimal `json:"end_meter_reading,omitempty"`
	Status            *string          `json:"status,omitempty"`
}

// ImpactRequest body para POST /api/transactions/impact (evaluación de solo lectura).
// BranchID/OilTypeID solo se usan para la heurística legada cuando la
// transacción no tiene vínculo directo a una sesión.
type ImpactRequest struct {
	TransactionID    string          `json:"transaction_id"`
	OriginalQuantity decimal.Decimal `json:"original_quantity"`
	NewQuantity      decimal.Decimal `json:"new_quantity"`
	BranchID         string          `json:"branch_id,omitempty"`
	OilTypeID        string          `json:"oil_type_id,omitempty"`
	TransactionType  string          `json:"transaction_type,omitempty"`
}

// TransactionResponse representación HTTP de una transacción.
type TransactionResponse struct {
	ID                string          `json:"id"`
	TransactionNo     string          `json:"transaction_no,omitempty"`
	Type              string          `json:"type"`
	DriverUID         string          `json:"driver_uid"`
	DriverName        string          `json:"driver_name"`
	BranchID          string          `json:"branch_id"`
	BranchName        string          `json:"branch_name"`
	OilTypeID         string          `json:"oil_type_id"`
	OilTypeName       string          `json:"oil_type_name"`
	LoadSessionID     string          `json:"load_session_id,omitempty"`
	Quantity          decimal.Decimal `json:"quantity"`
	StartMeterReading decimal.Decimal `json:"start_meter_reading"`
	EndMeterReading   decimal.Decimal `json:"end_meter_reading"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	LastEditedAt      *time.Time      `json:"last_edited_at,omitempty"`
}

// ToTransactionResponse mapea la entidad a la respuesta HTTP.
func ToTransactionResponse(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                t.ID,
		TransactionNo:     t.TransactionNo,
		Type:              t.Type,
		DriverUID:         t.DriverUID,
		DriverName:        t.DriverName,
		BranchID:          t.BranchID,
		BranchName:        t.BranchName,
		OilTypeID:         t.OilTypeID,
		OilTypeName:       t.OilTypeName,
		LoadSessionID:     t.LoadSessionID,
		Quantity:          t.Quantity(),
		StartMeterReading: t.StartMeterReading,
		EndMeterReading:   t.EndMeterReading,
		Status:            t.Status,
		CreatedAt:         t.CreatedAt,
		LastEditedAt:      t.LastEditedAt,
	}
}

// EditHistoryResponse entrada de auditoría de una edición.
type EditHistoryResponse struct {
	ID                     string               `json:"id"`
	TransactionID          string               `json:"transaction_id"`
	EditedBy               string               `json:"edited_by"`
	EditedByName           string               `json:"edited_by_name"`
	EditedAt               time.Time            `json:"edited_at"`
	Reason                 string               `json:"reason"`
	Changes                []entity.FieldChange `json:"changes"`
	InventoryAdjustment    string               `json:"inventory_adjustment"`
	ManualAdjustmentLiters *decimal.Decimal     `json:"manual_adjustment_liters,omitempty"`
}

// ToEditHistoryResponse mapea la entidad a la respuesta HTTP.
func ToEditHistoryResponse(e *entity.EditHistoryEntry) EditHistoryResponse {
	return EditHistoryResponse{
		ID:                     e.ID,
		TransactionID:          e.TransactionID,
		EditedBy:               e.EditedBy,
		EditedByName:           e.EditedByName,
		EditedAt:               e.EditedAt,
		Reason:                 e.Reason,
		Changes:                e.Changes,
		InventoryAdjustment:    e.InventoryAdjustment,
		ManualAdjustmentLiters: e.ManualAdjustmentLiters,
	}
}
