package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/onedelivery/onedelivery-api/internal/domain/entity"
)

// Balance es el estado re-derivado de una sesión de carga.
//
// Invariante de conservación:
//
//	RemainingLiters = TotalLoadedLiters − Σ litros entregados/suministrados + Σ offsets de auditoría
//
// Los offsets salen del historial de ediciones (ver BalanceOffset): las
// estrategias manual y none dejan huella permanente para que re-derivar el
// saldo nunca aplique retroactivamente una edición que el operador decidió
// excluir del inventario.
type Balance struct {
	TotalLoadedLiters decimal.Decimal
	RemainingLiters   decimal.Decimal
	LoadCount         int
	Status            string
}

// Overdrawn indica saldo negativo: se entregó más de lo cargado. Estado
// válido pero marcado, nunca un error.
func (b Balance) Overdrawn() bool {
	return b.RemainingLiters.IsNegative()
}

// ComputeBalance re-deriva el saldo de una sesión desde el conjunto COMPLETO
// de transacciones que la referencian y el historial de ediciones de esas
// transacciones. Nunca se parchea un saldo de forma incremental: después de
// cualquier mutación se vuelve a sumar todo.
//
// prevStatus conserva cancelled; en los demás casos el estado se deriva:
// completed cuando el saldo queda exactamente en 0, active en caso contrario.
func ComputeBalance(prevStatus string, txs []*entity.Transaction, history []*entity.EditHistoryEntry) Balance {
	total := decimal.Zero
	consumed := decimal.Zero
	loadCount := 0

	for _, tx := range txs {
		switch tx.Type {
		case entity.TxTypeLoading:
			total = total.Add(tx.TotalLoadedLiters)
			loadCount++
		case entity.TxTypeSupply:
			consumed = consumed.Add(tx.OilSuppliedLiters)
		case entity.TxTypeDelivery:
			consumed = consumed.Add(tx.ActualDeliveredLiters)
		}
	}

	offset := decimal.Zero
	for _, e := range history {
		offset = offset.Add(BalanceOffset(e))
	}

	remaining := total.Sub(consumed).Add(offset)

	status := entity.SessionStatusActive
	switch {
	case prevStatus == entity.SessionStatusCancelled:
		status = entity.SessionStatusCancelled
	case remaining.IsZero():
		status = entity.SessionStatusCompleted
	}

	return Balance{
		TotalLoadedLiters: total,
		RemainingLiters:   remaining,
		LoadCount:         loadCount,
		Status:            status,
	}
}

// BalanceOffset devuelve la corrección permanente que una entrada de
// auditoría aporta a la re-derivación del saldo:
//
//   - automatic: 0 — la re-suma de transacciones ya refleja la edición.
//   - manual: el delta aportado por el operador (pérdidas fuera de registro,
//     ej. derrames, no representadas por ninguna transacción).
//   - none: el inverso del efecto de la edición sobre el saldo, de modo que la
//     cantidad registrada cambia pero el saldo de la sesión queda intacto
//     para siempre (correcciones cosméticas).
func BalanceOffset(e *entity.EditHistoryEntry) decimal.Decimal {
	switch e.InventoryAdjustment {
	case entity.AdjustmentManual:
		if e.ManualAdjustmentLiters == nil {
			return decimal.Zero
		}
		return *e.ManualAdjustmentLiters
	case entity.AdjustmentNone:
		delta, field, ok := QuantityDelta(e)
		if !ok {
			return decimal.Zero
		}
		// Una edición de carga sube el total (saldo +delta); una de
		// entrega/suministro baja el saldo (−delta). El offset cancela ambas.
		if field == FieldTotalLoaded {
			return delta.Neg()
		}
		return delta
	}
	return decimal.Zero
}

// Apply escribe el balance re-derivado sobre la sesión.
func Apply(s *entity.LoadSession, b Balance, now time.Time) {
	s.TotalLoadedLiters = b.TotalLoadedLiters
	s.RemainingLiters = b.RemainingLiters
	s.LoadCount = b.LoadCount
	s.Status = b.Status
	s.UpdatedAt = now
}
