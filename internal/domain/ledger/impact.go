package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/onedelivery/onedelivery-api/internal/domain/entity"
)

// Impact es el resultado de evaluar una edición de cantidad ANTES del commit.
// Evaluación de solo lectura: las advertencias son consultivas, la UI las
// muestra antes de confirmar pero nunca bloquean el commit (siempre se permite
// el override manual).
type Impact struct {
	Delta              decimal.Decimal `json:"delta"`
	ProjectedRemaining decimal.Decimal `json:"projectedRemaining"`
	HasWarnings        bool            `json:"hasWarnings"`
	Warnings           []string        `json:"warnings"`
	SessionResolved    bool            `json:"sessionResolved"`
}

// Assess proyecta el efecto de cambiar la cantidad de una transacción sobre el
// saldo actual de su sesión de carga y clasifica el riesgo:
//
//   - proyección >= 0: seguro, sin advertencias.
//   - proyección < 0: advertencia de sobregiro por |proyección| litros.
//
// Para supply/delivery, subir la cantidad entregada reduce el saldo restante;
// bajarla devuelve litros. Para loading el signo se invierte: cargar más
// litros aumenta el saldo.
func Assess(currentRemaining, originalQty, newQty decimal.Decimal, txType string) Impact {
	delta := newQty.Sub(originalQty)

	var projected decimal.Decimal
	if txType == entity.TxTypeLoading {
		projected = currentRemaining.Add(delta)
	} else {
		projected = currentRemaining.Sub(delta)
	}

	impact := Impact{
		Delta:              delta,
		ProjectedRemaining: projected,
		SessionResolved:    true,
		Warnings:           []string{},
	}
	if projected.IsNegative() {
		impact.HasWarnings = true
		impact.Warnings = append(impact.Warnings, fmt.Sprintf(
			"Esta edición sobregirará la sesión de carga en %s litros.", projected.Neg().String(),
		))
	}
	return impact
}

// Unverifiable es el resultado degradado cuando no se pudo resolver ninguna
// sesión de carga (registro legado sin vínculo, o sin datos de sucursal/tipo
// de aceite para la heurística). Nunca se lanza error: se advierte y se deja
// proceder con ajuste manual.
func Unverifiable(originalQty, newQty decimal.Decimal) Impact {
	return Impact{
		Delta:              newQty.Sub(originalQty),
		ProjectedRemaining: decimal.Zero,
		HasWarnings:        true,
		SessionResolved:    false,
		Warnings: []string{
			"No fue posible verificar el impacto en inventario; proceda con un ajuste manual.",
		},
	}
}
