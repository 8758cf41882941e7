package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estrategias de ajuste de inventario para una edición que toca cantidades.
const (
	AdjustmentAutomatic = "automatic" // re-derivar el saldo de la sesión tras el commit
	AdjustmentManual    = "manual"    // el operador aporta un delta en litros (mermas, derrames)
	AdjustmentNone      = "none"      // solo auditoría; el saldo de la sesión no se toca
)

// ValidAdjustment indica si la estrategia es automatic, manual o none.
func ValidAdjustment(a string) bool {
	return a == AdjustmentAutomatic || a == AdjustmentManual || a == AdjustmentNone
}

// FieldChange es un diff a nivel de campo: etiqueta legible + valor anterior y nuevo.
type FieldChange struct {
	Field    string `json:"field"`
	OldValue string `json:"oldValue"`
	NewValue string `json:"newValue"`
}

// EditHistoryEntry es el registro inmutable de una edición sobre una Transaction.
// Solo se crea si al menos un campo cambió realmente y hay un motivo no vacío;
// nunca se muta ni se elimina (append-only), y se persiste en la misma
// transacción de BD que el update de la Transaction.
type EditHistoryEntry struct {
	ID            string
	TransactionID string
	EditedBy      string
	EditedByName  string
	EditedAt      time.Time
	Reason        string        // obligatorio, no vacío
	Changes       []FieldChange // ordenado, una entrada por campo cambiado
	// InventoryAdjustment: automatic | manual | none.
	InventoryAdjustment string
	// ManualAdjustmentLiters delta con signo; obligatorio sii InventoryAdjustment == manual.
	ManualAdjustmentLiters *decimal.Decimal
}
