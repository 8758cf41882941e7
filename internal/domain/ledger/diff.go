// Package ledger contiene los algoritmos puros del libro mayor de cargas:
// re-derivación de saldos, evaluación de impacto en inventario y diff de
// campos para la auditoría de ediciones. Sin dependencias de infraestructura.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/onedelivery/onedelivery-api/internal/domain/entity"
)

// Etiquetas legibles de los campos editables. Son contrato de datos: viajan
// en las entradas de auditoría y en las respuestas del API.
const (
	FieldTransactionNo   = "Transaction No"
	FieldBranch          = "Branch"
	FieldOilType         = "Oil Type"
	FieldTotalLoaded     = "Total Loaded Liters"
	FieldOilSupplied     = "Oil Supplied Liters"
	FieldActualDelivered = "Actual Delivered Liters"
	FieldStartMeter      = "Start Meter Reading"
	FieldEndMeter        = "End Meter Reading"
	FieldStatus          = "Status"
)

// QuantityField devuelve la etiqueta del campo de cantidad según la variante.
func QuantityField(txType string) string {
	switch txType {
	case entity.TxTypeLoading:
		return FieldTotalLoaded
	case entity.TxTypeSupply:
		return FieldOilSupplied
	case entity.TxTypeDelivery:
		return FieldActualDelivered
	}
	return ""
}

// IsQuantityField indica si la etiqueta corresponde a litros que mueven el saldo.
func IsQuantityField(field string) bool {
	return field == FieldTotalLoaded || field == FieldOilSupplied || field == FieldActualDelivered
}

// Diff compara la instantánea original de una transacción contra la versión
// editada y devuelve la lista ordenada de cambios campo a campo. Una lista
// vacía significa edición sin cambios (debe rechazarse antes del commit).
func Diff(original, edited *entity.Transaction) []entity.FieldChange {
	var changes []entity.FieldChange

	if original.TransactionNo != edited.TransactionNo {
		changes = append(changes, entity.FieldChange{
			Field: FieldTransactionNo, OldValue: original.TransactionNo, NewValue: edited.TransactionNo,
		})
	}
	if original.BranchID != edited.BranchID {
		changes = append(changes, entity.FieldChange{
			Field: FieldBranch, OldValue: original.BranchName, NewValue: edited.BranchName,
		})
	}
	if original.OilTypeID != edited.OilTypeID {
		changes = append(changes, entity.FieldChange{
			Field: FieldOilType, OldValue: original.OilTypeName, NewValue: edited.OilTypeName,
		})
	}
	if !original.Quantity().Equal(edited.Quantity()) {
		changes = append(changes, entity.FieldChange{
			Field:    QuantityField(original.Type),
			OldValue: original.Quantity().String(),
			NewValue: edited.Quantity().String(),
		})
	}
	if !original.StartMeterReading.Equal(edited.StartMeterReading) {
		changes = append(changes, entity.FieldChange{
			Field:    FieldStartMeter,
			OldValue: original.StartMeterReading.String(),
			NewValue: edited.StartMeterReading.String(),
		})
	}
	if !original.EndMeterReading.Equal(edited.EndMeterReading) {
		changes = append(changes, entity.FieldChange{
			Field:    FieldEndMeter,
			OldValue: original.EndMeterReading.String(),
			NewValue: edited.EndMeterReading.String(),
		})
	}
	if original.Status != edited.Status {
		changes = append(changes, entity.FieldChange{
			Field: FieldStatus, OldValue: original.Status, NewValue: edited.Status,
		})
	}

	return changes
}

// HasQuantityChange indica si el diff toca algún campo de litros.
func HasQuantityChange(changes []entity.FieldChange) bool {
	for _, c := range changes {
		if IsQuantityField(c.Field) {
			return true
		}
	}
	return false
}

// QuantityDelta extrae el delta en litros (nuevo − anterior) de una entrada de
// auditoría, junto con la etiqueta del campo afectado. ok=false si la entrada
// no tocó cantidades o los valores no son numéricos.
func QuantityDelta(e *entity.EditHistoryEntry) (delta decimal.Decimal, field string, ok bool) {
	for _, c := range e.Changes {
		if !IsQuantityField(c.Field) {
			continue
		}
		oldV, err1 := decimal.NewFromString(c.OldValue)
		newV, err2 := decimal.NewFromString(c.NewValue)
		if err1 != nil || err2 != nil {
			return decimal.Zero, "", false
		}
		return newV.Sub(oldV), c.Field, true
	}
	return decimal.Zero, "", false
}
