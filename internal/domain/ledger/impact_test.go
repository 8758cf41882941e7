package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/onedelivery/onedelivery-api/internal/domain/entity"
	"github.com/onedelivery/onedelivery-api/internal/domain/ledger"
)

// Subir una entrega de 500 a 800 contra una sesión con 2000 litros restantes:
// delta 300, proyección 1700, sin advertencias.
func TestAssess_AumentoDeEntregaSeguro(t *testing.T) {
	i := ledger.Assess(d("2000"), d("500"), d("800"), entity.TxTypeDelivery)

	assert.True(t, d("300").Equal(i.Delta))
	assert.True(t, d("1700").Equal(i.ProjectedRemaining))
	assert.False(t, i.HasWarnings)
	assert.Empty(t, i.Warnings)
	assert.True(t, i.SessionResolved)
}

// Bajar la cantidad entregada devuelve litros a la sesión.
func TestAssess_ReduccionDevuelveLitros(t *testing.T) {
	i := ledger.Assess(d("100"), d("500"), d("400"), entity.TxTypeDelivery)

	assert.True(t, d("-100").Equal(i.Delta))
	assert.True(t, d("200").Equal(i.ProjectedRemaining))
	assert.False(t, i.HasWarnings)
}

// Proyección negativa: advertencia de sobregiro con los litros exactos.
func TestAssess_AdvierteSobregiro(t *testing.T) {
	i := ledger.Assess(d("100"), d("500"), d("700"), entity.TxTypeDelivery)

	assert.True(t, d("-100").Equal(i.ProjectedRemaining))
	assert.True(t, i.HasWarnings)
	assert.Contains(t, i.Warnings[0], "100", "la advertencia debe citar los litros de sobregiro")
}

// Para loading el signo se invierte: cargar más litros sube el saldo.
func TestAssess_CargaInvierteElSigno(t *testing.T) {
	i := ledger.Assess(d("200"), d("1000"), d("1500"), entity.TxTypeLoading)

	assert.True(t, d("500").Equal(i.Delta))
	assert.True(t, d("700").Equal(i.ProjectedRemaining))
	assert.False(t, i.HasWarnings)
}

// Reducir una carga puede sobregirar la sesión.
func TestAssess_ReduccionDeCargaPuedeSobregirar(t *testing.T) {
	i := ledger.Assess(d("200"), d("1000"), d("500"), entity.TxTypeLoading)

	assert.True(t, d("-300").Equal(i.ProjectedRemaining))
	assert.True(t, i.HasWarnings)
}

// Proyección exactamente en cero es segura: sin advertencias.
func TestAssess_ProyeccionCeroEsSegura(t *testing.T) {
	i := ledger.Assess(d("200"), d("500"), d("700"), entity.TxTypeDelivery)

	assert.True(t, i.ProjectedRemaining.IsZero())
	assert.False(t, i.HasWarnings)
}

// Sin sesión resoluble: degradación consultiva, nunca error.
func TestUnverifiable_DegradaConAdvertencia(t *testing.T) {
	i := ledger.Unverifiable(d("500"), d("800"))

	assert.True(t, d("300").Equal(i.Delta))
	assert.False(t, i.SessionResolved)
	assert.True(t, i.HasWarnings)
	assert.Contains(t, i.Warnings[0], "ajuste manual")
}
