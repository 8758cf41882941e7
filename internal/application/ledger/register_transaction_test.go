package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onedelivery/onedelivery-api/internal/application/dto"
	appledger "github.com/onedelivery/onedelivery-api/internal/application/ledger"
	"github.com/onedelivery/onedelivery-api/internal/domain"
	"github.com/onedelivery/onedelivery-api/internal/domain/entity"
	"github.com/onedelivery/onedelivery-api/pkg/logger"
)

type registerFixture struct {
	uc       *appledger.RegisterTransactionUseCase
	txs      *fakeTxRepo
	sessions *fakeSessionRepo
}

func newRegisterFixture(sessions ...*entity.LoadSession) *registerFixture {
	txs := newFakeTxRepo()
	sessionRepo := newFakeSessionRepo(sessions...)
	history := &fakeHistoryRepo{txs: txs}
	runner := &fakeTxRunner{txs: txs, sessions: sessionRepo, history: history}
	branches := &fakeBranchRepo{byID: map[string]*entity.Branch{
		"b-1": {ID: "b-1", Name: "Sucursal Centro"},
	}}
	oilTypes := &fakeOilTypeRepo{byID: map[string]*entity.OilType{
		"o-1": {ID: "o-1", Name: "Aceite 15W40"},
	}}

	uc := appledger.NewRegisterTransactionUseCase(runner, branches, oilTypes, logger.Nop())
	return &registerFixture{uc: uc, txs: txs, sessions: sessionRepo}
}

// Una carga sin sesión previa abre una sesión nueva con el saldo completo.
func TestRegister_CargaAbreSesion(t *testing.T) {
	f := newRegisterFixture()

	tx, err := f.uc.Register(context.Background(), "driver-1", dto.RegisterTransactionRequest{
		Type:      entity.TxTypeLoading,
		BranchID:  "b-1",
		OilTypeID: "o-1",
		Quantity:  d("2000"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, tx.LoadSessionID)

	sess, _ := f.sessions.GetByID(tx.LoadSessionID)
	require.NotNil(t, sess)
	assert.True(t, d("2000").Equal(sess.TotalLoadedLiters))
	assert.True(t, d("2000").Equal(sess.RemainingLiters))
	assert.Equal(t, 1, sess.LoadCount)
	assert.Equal(t, entity.SessionStatusActive, sess.Status)
}

// Una segunda carga del mismo conductor y aceite se pliega en la sesión activa.
func TestRegister_CargaSePliegaEnSesionActiva(t *testing.T) {
	f := newRegisterFixture()

	first, err := f.uc.Register(context.Background(), "driver-1", dto.RegisterTransactionRequest{
		Type: entity.TxTypeLoading, BranchID: "b-1", OilTypeID: "o-1", Quantity: d("1000"),
	})
	require.NoError(t, err)

	second, err := f.uc.Register(context.Background(), "driver-1", dto.RegisterTransactionRequest{
		Type: entity.TxTypeLoading, BranchID: "b-1", OilTypeID: "o-1", Quantity: d("500"),
	})
	require.NoError(t, err)

	assert.Equal(t, first.LoadSessionID, second.LoadSessionID)
	sess, _ := f.sessions.GetByID(first.LoadSessionID)
	assert.True(t, d("1500").Equal(sess.TotalLoadedLiters))
	assert.Equal(t, 2, sess.LoadCount)
}

// Una entrega descuenta del saldo de la sesión del conductor.
func TestRegister_EntregaDescuentaSaldo(t *testing.T) {
	f := newRegisterFixture()

	load, err := f.uc.Register(context.Background(), "driver-1", dto.RegisterTransactionRequest{
		Type: entity.TxTypeLoading, BranchID: "b-1", OilTypeID: "o-1", Quantity: d("2000"),
	})
	require.NoError(t, err)

	_, err = f.uc.Register(context.Background(), "driver-1", dto.RegisterTransactionRequest{
		Type: entity.TxTypeDelivery, BranchID: "b-1", OilTypeID: "o-1", Quantity: d("500"),
	})
	require.NoError(t, err)

	sess, _ := f.sessions.GetByID(load.LoadSessionID)
	assert.True(t, d("1500").Equal(sess.RemainingLiters))
}

// Entregar más de lo cargado procede y deja la sesión sobregirada.
func TestRegister_SobregiroProcedeYMarca(t *testing.T) {
	f := newRegisterFixture()

	load, err := f.uc.Register(context.Background(), "driver-1", dto.RegisterTransactionRequest{
		Type: entity.TxTypeLoading, BranchID: "b-1", OilTypeID: "o-1", Quantity: d("1000"),
	})
	require.NoError(t, err)

	_, err = f.uc.Register(context.Background(), "driver-1", dto.RegisterTransactionRequest{
		Type: entity.TxTypeDelivery, BranchID: "b-1", OilTypeID: "o-1", Quantity: d("1100"),
	})
	require.NoError(t, err, "el sobregiro no es un error")

	sess, _ := f.sessions.GetByID(load.LoadSessionID)
	assert.True(t, sess.Overdrawn())
	assert.True(t, d("-100").Equal(sess.RemainingLiters))
}

// Entregar exactamente el saldo completa la sesión.
func TestRegister_SaldoCeroCompletaSesion(t *testing.T) {
	f := newRegisterFixture()

	load, err := f.uc.Register(context.Background(), "driver-1", dto.RegisterTransactionRequest{
		Type: entity.TxTypeLoading, BranchID: "b-1", OilTypeID: "o-1", Quantity: d("1000"),
	})
	require.NoError(t, err)

	_, err = f.uc.Register(context.Background(), "driver-1", dto.RegisterTransactionRequest{
		Type: entity.TxTypeSupply, BranchID: "b-1", OilTypeID: "o-1", Quantity: d("1000"),
	})
	require.NoError(t, err)

	sess, _ := f.sessions.GetByID(load.LoadSessionID)
	assert.Equal(t, entity.SessionStatusCompleted, sess.Status)
}

// Entrega sin sesión activa del conductor: no hay contra qué descontar.
func TestRegister_EntregaSinSesionActiva(t *testing.T) {
	f := newRegisterFixture()

	_, err := f.uc.Register(context.Background(), "driver-1", dto.RegisterTransactionRequest{
		Type: entity.TxTypeDelivery, BranchID: "b-1", OilTypeID: "o-1", Quantity: d("500"),
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// No se registra contra una sesión cancelada.
func TestRegister_SesionCanceladaRechazada(t *testing.T) {
	f := newRegisterFixture(&entity.LoadSession{
		ID: "s-cancelled", DriverUID: "driver-1", OilTypeID: "o-1",
		Status: entity.SessionStatusCancelled,
	})

	_, err := f.uc.Register(context.Background(), "driver-1", dto.RegisterTransactionRequest{
		Type: entity.TxTypeDelivery, BranchID: "b-1", OilTypeID: "o-1",
		LoadSessionID: "s-cancelled", Quantity: d("100"),
	})

	assert.ErrorIs(t, err, domain.ErrSessionNotActive)
}

func TestRegister_ValidaTipoYCantidad(t *testing.T) {
	f := newRegisterFixture()

	_, err := f.uc.Register(context.Background(), "driver-1", dto.RegisterTransactionRequest{
		Type: "otro", BranchID: "b-1", OilTypeID: "o-1", Quantity: d("100"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Register(context.Background(), "driver-1", dto.RegisterTransactionRequest{
		Type: entity.TxTypeLoading, BranchID: "b-1", OilTypeID: "o-1", Quantity: d("0"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_SucursalInexistente(t *testing.T) {
	f := newRegisterFixture()

	_, err := f.uc.Register(context.Background(), "driver-1", dto.RegisterTransactionRequest{
		Type: entity.TxTypeLoading, BranchID: "b-nope", OilTypeID: "o-1", Quantity: d("100"),
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
