package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onedelivery/onedelivery-api/internal/domain/entity"
	"github.com/onedelivery/onedelivery-api/internal/domain/ledger"
)

func baseDelivery() *entity.Transaction {
	return &entity.Transaction{
		ID:                    "tx-1",
		TransactionNo:         "DEL-001",
		Type:                  entity.TxTypeDelivery,
		BranchID:              "b-1",
		BranchName:            "Sucursal Centro",
		OilTypeID:             "o-1",
		OilTypeName:           "Aceite 15W40",
		ActualDeliveredLiters: d("500"),
		StartMeterReading:     d("100"),
		EndMeterReading:       d("600"),
		Status:                "completed",
	}
}

// Misma instantánea: diff vacío (la edición debe rechazarse antes del commit).
func TestDiff_SinCambiosDevuelveVacio(t *testing.T) {
	original := baseDelivery()
	edited := *original

	assert.Empty(t, ledger.Diff(original, &edited))
}

// Cada campo editado produce exactamente una entrada con etiqueta legible
// y valores anterior/nuevo.
func TestDiff_RegistraCadaCampoCambiado(t *testing.T) {
	original := baseDelivery()
	edited := *original
	edited.TransactionNo = "DEL-002"
	edited.ActualDeliveredLiters = d("800")
	edited.Status = "cancelled"

	changes := ledger.Diff(original, &edited)

	require.Len(t, changes, 3)
	assert.Equal(t, entity.FieldChange{
		Field: ledger.FieldTransactionNo, OldValue: "DEL-001", NewValue: "DEL-002",
	}, changes[0])
	assert.Equal(t, entity.FieldChange{
		Field: ledger.FieldActualDelivered, OldValue: "500", NewValue: "800",
	}, changes[1])
	assert.Equal(t, entity.FieldChange{
		Field: ledger.FieldStatus, OldValue: "completed", NewValue: "cancelled",
	}, changes[2])
}

// El cambio de sucursal registra los NOMBRES, no los IDs.
func TestDiff_SucursalUsaNombres(t *testing.T) {
	original := baseDelivery()
	edited := *original
	edited.BranchID = "b-2"
	edited.BranchName = "Sucursal Norte"

	changes := ledger.Diff(original, &edited)

	require.Len(t, changes, 1)
	assert.Equal(t, ledger.FieldBranch, changes[0].Field)
	assert.Equal(t, "Sucursal Centro", changes[0].OldValue)
	assert.Equal(t, "Sucursal Norte", changes[0].NewValue)
}

// La etiqueta del campo de litros depende de la variante de la transacción.
func TestQuantityField_PorVariante(t *testing.T) {
	assert.Equal(t, ledger.FieldTotalLoaded, ledger.QuantityField(entity.TxTypeLoading))
	assert.Equal(t, ledger.FieldOilSupplied, ledger.QuantityField(entity.TxTypeSupply))
	assert.Equal(t, ledger.FieldActualDelivered, ledger.QuantityField(entity.TxTypeDelivery))
	assert.Equal(t, "", ledger.QuantityField("otro"))
}

func TestHasQuantityChange(t *testing.T) {
	soloNo := []entity.FieldChange{{Field: ledger.FieldTransactionNo, OldValue: "a", NewValue: "b"}}
	assert.False(t, ledger.HasQuantityChange(soloNo))

	conLitros := append(soloNo, entity.FieldChange{Field: ledger.FieldOilSupplied, OldValue: "100", NewValue: "150"})
	assert.True(t, ledger.HasQuantityChange(conLitros))
}

// QuantityDelta extrae nuevo − anterior de la entrada de auditoría.
func TestQuantityDelta(t *testing.T) {
	e := &entity.EditHistoryEntry{
		Changes: []entity.FieldChange{
			{Field: ledger.FieldTransactionNo, OldValue: "a", NewValue: "b"},
			{Field: ledger.FieldActualDelivered, OldValue: "300", NewValue: "450"},
		},
	}

	delta, field, ok := ledger.QuantityDelta(e)

	require.True(t, ok)
	assert.Equal(t, ledger.FieldActualDelivered, field)
	assert.True(t, d("150").Equal(delta))
}

func TestQuantityDelta_SinCamposDeLitros(t *testing.T) {
	e := &entity.EditHistoryEntry{
		Changes: []entity.FieldChange{
			{Field: ledger.FieldStatus, OldValue: "completed", NewValue: "cancelled"},
		},
	}

	_, _, ok := ledger.QuantityDelta(e)
	assert.False(t, ok)
}

func TestQuantityDelta_ValoresNoNumericos(t *testing.T) {
	e := &entity.EditHistoryEntry{
		Changes: []entity.FieldChange{
			{Field: ledger.FieldActualDelivered, OldValue: "n/a", NewValue: "450"},
		},
	}

	_, _, ok := ledger.QuantityDelta(e)
	assert.False(t, ok)
}
