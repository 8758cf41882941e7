package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onedelivery/onedelivery-api/internal/domain/entity"
	"github.com/onedelivery/onedelivery-api/internal/domain/ledger"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func loading(liters string) *entity.Transaction {
	return &entity.Transaction{Type: entity.TxTypeLoading, TotalLoadedLiters: d(liters)}
}

func delivery(liters string) *entity.Transaction {
	return &entity.Transaction{Type: entity.TxTypeDelivery, ActualDeliveredLiters: d(liters)}
}

func supply(liters string) *entity.Transaction {
	return &entity.Transaction{Type: entity.TxTypeSupply, OilSuppliedLiters: d(liters)}
}

// El saldo siempre es cargado − entregado, re-sumado desde cero.
func TestComputeBalance_Conservacion(t *testing.T) {
	txs := []*entity.Transaction{
		loading("2000"),
		delivery("500"),
		supply("300"),
	}

	b := ledger.ComputeBalance(entity.SessionStatusActive, txs, nil)

	assert.True(t, d("2000").Equal(b.TotalLoadedLiters))
	assert.True(t, d("1200").Equal(b.RemainingLiters), "2000 − 500 − 300 = 1200")
	assert.Equal(t, 1, b.LoadCount)
	assert.Equal(t, entity.SessionStatusActive, b.Status)
	assert.False(t, b.Overdrawn())
}

// Varias cargas se pliegan: el total es la suma y LoadCount las cuenta.
func TestComputeBalance_CargasPlegadas(t *testing.T) {
	txs := []*entity.Transaction{
		loading("1000"),
		delivery("400"),
		loading("500"),
	}

	b := ledger.ComputeBalance(entity.SessionStatusActive, txs, nil)

	assert.True(t, d("1500").Equal(b.TotalLoadedLiters))
	assert.True(t, d("1100").Equal(b.RemainingLiters))
	assert.Equal(t, 2, b.LoadCount)
}

// Entregar más de lo cargado deja saldo negativo: estado válido, no error.
func TestComputeBalance_SobregiroEsEstadoValido(t *testing.T) {
	txs := []*entity.Transaction{
		loading("1000"),
		delivery("1100"),
	}

	b := ledger.ComputeBalance(entity.SessionStatusActive, txs, nil)

	assert.True(t, d("-100").Equal(b.RemainingLiters))
	assert.True(t, b.Overdrawn())
	assert.Equal(t, entity.SessionStatusActive, b.Status, "sobregirada sigue activa, no completada")
}

// Saldo exactamente cero => sesión completada.
func TestComputeBalance_SaldoCeroCompletaLaSesion(t *testing.T) {
	txs := []*entity.Transaction{
		loading("1000"),
		delivery("1000"),
	}

	b := ledger.ComputeBalance(entity.SessionStatusActive, txs, nil)

	assert.True(t, b.RemainingLiters.IsZero())
	assert.Equal(t, entity.SessionStatusCompleted, b.Status)
}

// Una sesión cancelada jamás se reactiva por re-derivar el saldo.
func TestComputeBalance_CanceladaSeConserva(t *testing.T) {
	txs := []*entity.Transaction{loading("1000")}

	b := ledger.ComputeBalance(entity.SessionStatusCancelled, txs, nil)

	assert.Equal(t, entity.SessionStatusCancelled, b.Status)
}

// Ajuste manual: el delta del operador entra como offset permanente
// (pérdidas fuera de registro, ej. un derrame de 50 litros).
func TestComputeBalance_OffsetManual(t *testing.T) {
	txs := []*entity.Transaction{
		loading("1000"),
		delivery("300"),
	}
	spill := d("-50")
	history := []*entity.EditHistoryEntry{
		{InventoryAdjustment: entity.AdjustmentManual, ManualAdjustmentLiters: &spill},
	}

	b := ledger.ComputeBalance(entity.SessionStatusActive, txs, history)

	assert.True(t, d("650").Equal(b.RemainingLiters), "1000 − 300 − 50 = 650")
}

// Estrategia none sobre una entrega: la cantidad registrada cambió pero el
// saldo queda intacto incluso al re-derivarlo después.
func TestComputeBalance_OffsetNonePreservaSaldo(t *testing.T) {
	// La entrega fue editada de 300 a 400 con estrategia none.
	txs := []*entity.Transaction{
		loading("1000"),
		delivery("400"),
	}
	history := []*entity.EditHistoryEntry{
		{
			InventoryAdjustment: entity.AdjustmentNone,
			Changes: []entity.FieldChange{
				{Field: ledger.FieldActualDelivered, OldValue: "300", NewValue: "400"},
			},
		},
	}

	b := ledger.ComputeBalance(entity.SessionStatusActive, txs, history)

	assert.True(t, d("700").Equal(b.RemainingLiters),
		"el saldo debe quedar como si la entrega siguiera en 300")
}

// Estrategia none sobre una carga: el offset invierte el signo porque editar
// el total cargado mueve el saldo hacia arriba.
func TestComputeBalance_OffsetNoneSobreCarga(t *testing.T) {
	// La carga fue editada de 1000 a 1200 con estrategia none.
	txs := []*entity.Transaction{
		loading("1200"),
		delivery("300"),
	}
	history := []*entity.EditHistoryEntry{
		{
			InventoryAdjustment: entity.AdjustmentNone,
			Changes: []entity.FieldChange{
				{Field: ledger.FieldTotalLoaded, OldValue: "1000", NewValue: "1200"},
			},
		},
	}

	b := ledger.ComputeBalance(entity.SessionStatusActive, txs, history)

	assert.True(t, d("700").Equal(b.RemainingLiters),
		"el saldo debe quedar como si la carga siguiera en 1000")
}

// Estrategia automatic no deja offset: la re-suma de transacciones ya refleja la edición.
func TestBalanceOffset_AutomaticEsCero(t *testing.T) {
	e := &entity.EditHistoryEntry{
		InventoryAdjustment: entity.AdjustmentAutomatic,
		Changes: []entity.FieldChange{
			{Field: ledger.FieldActualDelivered, OldValue: "300", NewValue: "400"},
		},
	}
	assert.True(t, ledger.BalanceOffset(e).IsZero())
}

// Entrada none que no tocó litros (edición cosmética) no aporta offset.
func TestBalanceOffset_NoneSinCambioDeLitros(t *testing.T) {
	e := &entity.EditHistoryEntry{
		InventoryAdjustment: entity.AdjustmentNone,
		Changes: []entity.FieldChange{
			{Field: ledger.FieldTransactionNo, OldValue: "A-1", NewValue: "A-2"},
		},
	}
	assert.True(t, ledger.BalanceOffset(e).IsZero())
}

func TestApply_EscribeElBalanceSobreLaSesion(t *testing.T) {
	s := &entity.LoadSession{Status: entity.SessionStatusActive}
	now := time.Now()

	ledger.Apply(s, ledger.Balance{
		TotalLoadedLiters: d("1000"),
		RemainingLiters:   d("-100"),
		LoadCount:         2,
		Status:            entity.SessionStatusActive,
	}, now)

	require.True(t, d("-100").Equal(s.RemainingLiters))
	assert.True(t, s.Overdrawn())
	assert.Equal(t, 2, s.LoadCount)
	assert.Equal(t, now, s.UpdatedAt)
}
