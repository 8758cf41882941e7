package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción. Una unión etiquetada: cada variante declara
// exactamente el campo de cantidad que le corresponde.
const (
	TxTypeLoading  = "loading"  // el conductor carga aceite (abre o pliega una sesión)
	TxTypeSupply   = "supply"   // suministro a un almacén contra la sesión
	TxTypeDelivery = "delivery" // entrega a una sucursal contra la sesión
)

// ValidTxType indica si el tipo es loading, supply o delivery.
func ValidTxType(t string) bool {
	return t == TxTypeLoading || t == TxTypeSupply || t == TxTypeDelivery
}

// Transaction representa un evento registrado de carga, suministro o entrega.
// supply/delivery referencian exactamente una LoadSession vía LoadSessionID;
// en registros legados ese vínculo puede faltar y se resuelve por heurística
// (ver ledger.SessionResolver en la capa de aplicación).
//
// Según Type, solo uno de los tres campos de cantidad es legítimo:
//
//	loading  -> TotalLoadedLiters
//	supply   -> OilSuppliedLiters
//	delivery -> ActualDeliveredLiters
//
// El acceso siempre debe pasar por Quantity(); no repetir cadenas a||b||c.
type Transaction struct {
	ID            string
	TransactionNo string // número legible (ej. orden de entrega)
	Type          string
	DriverUID     string
	DriverName    string
	BranchID      string
	BranchName    string
	OilTypeID     string
	OilTypeName   string
	LoadSessionID string // vacío en registros legados

	TotalLoadedLiters     decimal.Decimal
	OilSuppliedLiters     decimal.Decimal
	ActualDeliveredLiters decimal.Decimal

	StartMeterReading decimal.Decimal
	EndMeterReading   decimal.Decimal

	Status       string
	CreatedAt    time.Time
	LastEditedAt *time.Time // nil si nunca fue editada; clave del CAS optimista
}

// Quantity devuelve la cantidad en litros según la variante del tipo.
func (t *Transaction) Quantity() decimal.Decimal {
	switch t.Type {
	case TxTypeLoading:
		return t.TotalLoadedLiters
	case TxTypeSupply:
		return t.OilSuppliedLiters
	case TxTypeDelivery:
		return t.ActualDeliveredLiters
	}
	return decimal.Zero
}

// SetQuantity escribe la cantidad en el campo que corresponde a la variante.
func (t *Transaction) SetQuantity(q decimal.Decimal) {
	switch t.Type {
	case TxTypeLoading:
		t.TotalLoadedLiters = q
	case TxTypeSupply:
		t.OilSuppliedLiters = q
	case TxTypeDelivery:
		t.ActualDeliveredLiters = q
	}
}

// Consumes indica si la transacción descuenta saldo de la sesión (supply/delivery).
func (t *Transaction) Consumes() bool {
	return t.Type == TxTypeSupply || t.Type == TxTypeDelivery
}
