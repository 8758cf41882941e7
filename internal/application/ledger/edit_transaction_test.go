package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onedelivery/onedelivery-api/internal/application/dto"
	appledger "github.com/onedelivery/onedelivery-api/internal/application/ledger"
	"github.com/onedelivery/onedelivery-api/internal/domain"
	"github.com/onedelivery/onedelivery-api/internal/domain/entity"
	"github.com/onedelivery/onedelivery-api/internal/domain/repository"
	"github.com/onedelivery/onedelivery-api/pkg/logger"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func ptr[T any](v T) *T { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria (sin BD)
// ──────────────────────────────────────────────────────────────────────────────

type fakeTxRepo struct {
	byID map[string]*entity.Transaction
}

func newFakeTxRepo(txs ...*entity.Transaction) *fakeTxRepo {
	r := &fakeTxRepo{byID: map[string]*entity.Transaction{}}
	for _, t := range txs {
		r.byID[t.ID] = t
	}
	return r
}

func (r *fakeTxRepo) Create(t *entity.Transaction) error { r.byID[t.ID] = t; return nil }

func (r *fakeTxRepo) GetByID(id string) (*entity.Transaction, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTxRepo) List(repository.TransactionFilter) ([]*entity.Transaction, error) {
	return nil, nil
}

func (r *fakeTxRepo) ListBySession(sessionID string) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, t := range r.byID {
		if t.LoadSessionID == sessionID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTxRepo) UpdateEdited(t *entity.Transaction, expected *time.Time) error {
	stored, ok := r.byID[t.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if !equalTimePtr(stored.LastEditedAt, expected) {
		return domain.ErrConflict
	}
	cp := *t
	r.byID[t.ID] = &cp
	return nil
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

type fakeSessionRepo struct {
	byID map[string]*entity.LoadSession
}

func newFakeSessionRepo(sessions ...*entity.LoadSession) *fakeSessionRepo {
	r := &fakeSessionRepo{byID: map[string]*entity.LoadSession{}}
	for _, s := range sessions {
		r.byID[s.ID] = s
	}
	return r
}

func (r *fakeSessionRepo) Create(s *entity.LoadSession) error { r.byID[s.ID] = s; return nil }

func (r *fakeSessionRepo) GetByID(id string) (*entity.LoadSession, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSessionRepo) GetForUpdate(id string) (*entity.LoadSession, error) {
	return r.GetByID(id)
}

func (r *fakeSessionRepo) Update(s *entity.LoadSession) error {
	cp := *s
	r.byID[s.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) ListActive(string) ([]*entity.LoadSession, error) { return nil, nil }

func (r *fakeSessionRepo) FindActiveByDriverAndOilType(driverUID, oilTypeID string) (*entity.LoadSession, error) {
	for _, s := range r.byID {
		if s.DriverUID == driverUID && s.OilTypeID == oilTypeID && s.Status == entity.SessionStatusActive {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) FindActiveByBranchAndOilType(branchID, oilTypeID string) (*entity.LoadSession, error) {
	for _, s := range r.byID {
		if s.BranchID == branchID && s.OilTypeID == oilTypeID && s.Status == entity.SessionStatusActive {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeHistoryRepo struct {
	txs     *fakeTxRepo
	entries []*entity.EditHistoryEntry
}

func (r *fakeHistoryRepo) Create(e *entity.EditHistoryEntry) error {
	r.entries = append(r.entries, e)
	return nil
}

func (r *fakeHistoryRepo) ListByTransaction(txID string) ([]*entity.EditHistoryEntry, error) {
	var out []*entity.EditHistoryEntry
	for _, e := range r.entries {
		if e.TransactionID == txID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeHistoryRepo) ListBySession(sessionID string) ([]*entity.EditHistoryEntry, error) {
	var out []*entity.EditHistoryEntry
	for _, e := range r.entries {
		if t, ok := r.txs.byID[e.TransactionID]; ok && t.LoadSessionID == sessionID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeBranchRepo struct{ byID map[string]*entity.Branch }

func (r *fakeBranchRepo) Create(*entity.Branch) error { return nil }
func (r *fakeBranchRepo) GetByID(id string) (*entity.Branch, error) {
	return r.byID[id], nil
}
func (r *fakeBranchRepo) List() ([]*entity.Branch, error) { return nil, nil }

type fakeOilTypeRepo struct{ byID map[string]*entity.OilType }

func (r *fakeOilTypeRepo) Create(*entity.OilType) error { return nil }
func (r *fakeOilTypeRepo) GetByID(id string) (*entity.OilType, error) {
	return r.byID[id], nil
}
func (r *fakeOilTypeRepo) List() ([]*entity.OilType, error) { return nil, nil }

// fakeTxRunner ejecuta el callback directamente sobre los fakes (sin BD).
type fakeTxRunner struct {
	txs      *fakeTxRepo
	sessions *fakeSessionRepo
	history  *fakeHistoryRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	repository.TransactionRepository,
	repository.LoadSessionRepository,
	repository.EditHistoryRepository,
) error) error {
	return fn(r.txs, r.sessions, r.history)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario base: sesión con 2000 L cargados y una entrega de 500 L
// ──────────────────────────────────────────────────────────────────────────────

type editFixture struct {
	uc       *appledger.EditTransactionUseCase
	txs      *fakeTxRepo
	sessions *fakeSessionRepo
	history  *fakeHistoryRepo
}

func newEditFixture() *editFixture {
	sess := &entity.LoadSession{
		ID:                "s-1",
		DriverUID:         "driver-1",
		BranchID:          "b-1",
		OilTypeID:         "o-1",
		OilTypeName:       "Aceite 15W40",
		TotalLoadedLiters: d("2000"),
		RemainingLiters:   d("1500"),
		LoadCount:         1,
		Status:            entity.SessionStatusActive,
	}
	loadTx := &entity.Transaction{
		ID: "tx-load", Type: entity.TxTypeLoading, LoadSessionID: "s-1",
		DriverUID: "driver-1", BranchID: "b-1", OilTypeID: "o-1",
		TotalLoadedLiters: d("2000"),
	}
	delTx := &entity.Transaction{
		ID: "tx-del", TransactionNo: "DEL-001", Type: entity.TxTypeDelivery,
		LoadSessionID: "s-1", DriverUID: "driver-1",
		BranchID: "b-1", BranchName: "Sucursal Centro",
		OilTypeID: "o-1", OilTypeName: "Aceite 15W40",
		ActualDeliveredLiters: d("500"), Status: "completed",
	}

	txs := newFakeTxRepo(loadTx, delTx)
	sessions := newFakeSessionRepo(sess)
	history := &fakeHistoryRepo{txs: txs}
	runner := &fakeTxRunner{txs: txs, sessions: sessions, history: history}
	branches := &fakeBranchRepo{byID: map[string]*entity.Branch{
		"b-1": {ID: "b-1", Name: "Sucursal Centro"},
		"b-2": {ID: "b-2", Name: "Sucursal Norte"},
	}}
	oilTypes := &fakeOilTypeRepo{byID: map[string]*entity.OilType{
		"o-1": {ID: "o-1", Name: "Aceite 15W40"},
	}}

	uc := appledger.NewEditTransactionUseCase(
		runner, txs, branches, oilTypes,
		appledger.NewDefaultResolver(sessions), logger.Nop(),
	)
	return &editFixture{uc: uc, txs: txs, sessions: sessions, history: history}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Una edición sin cambios reales se rechaza y no escribe nada.
func TestEdit_SinCambiosRechazada(t *testing.T) {
	f := newEditFixture()

	_, err := f.uc.Edit(context.Background(), "tx-del", "admin-1", "Admin", dto.EditTransactionRequest{
		Reason:   "motivo válido",
		Quantity: ptr(d("500")), // mismo valor registrado
	})

	assert.ErrorIs(t, err, domain.ErrNoChanges)
	assert.Empty(t, f.history.entries, "no debe crearse entrada de auditoría")
}

// El motivo es obligatorio: sin él la edición retorna al formulario.
func TestEdit_MotivoObligatorio(t *testing.T) {
	f := newEditFixture()

	_, err := f.uc.Edit(context.Background(), "tx-del", "admin-1", "Admin", dto.EditTransactionRequest{
		Reason:   "   ",
		Quantity: ptr(d("800")),
	})

	assert.ErrorIs(t, err, domain.ErrReasonRequired)
	assert.Empty(t, f.history.entries)
}

func TestEdit_TransaccionInexistente(t *testing.T) {
	f := newEditFixture()

	_, err := f.uc.Edit(context.Background(), "tx-nope", "admin-1", "Admin", dto.EditTransactionRequest{
		Reason:   "motivo",
		Quantity: ptr(d("800")),
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Edición automática de cantidad: update + auditoría + saldo re-derivado,
// todo dentro del mismo commit.
func TestEdit_AutomaticaRecalculaElSaldo(t *testing.T) {
	f := newEditFixture()

	result, err := f.uc.Edit(context.Background(), "tx-del", "admin-1", "Admin", dto.EditTransactionRequest{
		Reason:   "el conductor reportó 800 litros reales",
		Quantity: ptr(d("800")),
	})
	require.NoError(t, err)

	// Transacción actualizada con marca de edición.
	stored, _ := f.txs.GetByID("tx-del")
	assert.True(t, d("800").Equal(stored.ActualDeliveredLiters))
	require.NotNil(t, stored.LastEditedAt)

	// Saldo re-derivado: 2000 − 800 = 1200.
	sess, _ := f.sessions.GetByID("s-1")
	assert.True(t, d("1200").Equal(sess.RemainingLiters))

	// Entrada de auditoría completa.
	require.Len(t, f.history.entries, 1)
	entry := f.history.entries[0]
	assert.Equal(t, "tx-del", entry.TransactionID)
	assert.Equal(t, "admin-1", entry.EditedBy)
	assert.Equal(t, "el conductor reportó 800 litros reales", entry.Reason)
	assert.Equal(t, entity.AdjustmentAutomatic, entry.InventoryAdjustment)
	require.Len(t, entry.Changes, 1)
	assert.Equal(t, "Actual Delivered Liters", entry.Changes[0].Field)
	assert.Equal(t, "500", entry.Changes[0].OldValue)
	assert.Equal(t, "800", entry.Changes[0].NewValue)

	// Impacto consultivo evaluado contra el saldo previo (1500 − 300 = 1200).
	require.NotNil(t, result.Impact)
	assert.True(t, d("1200").Equal(result.Impact.ProjectedRemaining))
	assert.False(t, result.Impact.HasWarnings)
}

// Un sobregiro advertido NUNCA bloquea el commit.
func TestEdit_SobregiroAdvierteYConfirma(t *testing.T) {
	f := newEditFixture()

	result, err := f.uc.Edit(context.Background(), "tx-del", "admin-1", "Admin", dto.EditTransactionRequest{
		Reason:   "corrección de litros",
		Quantity: ptr(d("2100")),
	})
	require.NoError(t, err, "la advertencia es consultiva, el commit procede")

	require.NotNil(t, result.Impact)
	assert.True(t, result.Impact.HasWarnings)

	sess, _ := f.sessions.GetByID("s-1")
	assert.True(t, sess.Overdrawn())
	assert.True(t, d("-100").Equal(sess.RemainingLiters), "2000 − 2100 = −100")
}

// Estrategia manual sin litros es inconsistente.
func TestEdit_ManualSinLitrosRechazada(t *testing.T) {
	f := newEditFixture()

	_, err := f.uc.Edit(context.Background(), "tx-del", "admin-1", "Admin", dto.EditTransactionRequest{
		Reason:              "ajuste por derrame",
		InventoryAdjustment: entity.AdjustmentManual,
		Quantity:            ptr(d("800")),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Estrategia manual: el delta del operador gobierna el saldo, no la resta automática.
func TestEdit_ManualAplicaElDeltaDelOperador(t *testing.T) {
	f := newEditFixture()

	_, err := f.uc.Edit(context.Background(), "tx-del", "admin-1", "Admin", dto.EditTransactionRequest{
		Reason:                 "450 entregados y 50 derramados",
		InventoryAdjustment:    entity.AdjustmentManual,
		Quantity:               ptr(d("450")),
		ManualAdjustmentLiters: ptr(d("-50")),
	})
	require.NoError(t, err)

	// Re-suma: 2000 − 450 + (−50) = 1500.
	sess, _ := f.sessions.GetByID("s-1")
	assert.True(t, d("1500").Equal(sess.RemainingLiters))

	require.Len(t, f.history.entries, 1)
	require.NotNil(t, f.history.entries[0].ManualAdjustmentLiters)
	assert.True(t, d("-50").Equal(*f.history.entries[0].ManualAdjustmentLiters))
}

// Estrategia none: la cantidad registrada cambia pero el saldo queda intacto.
func TestEdit_NoneNoTocaElSaldo(t *testing.T) {
	f := newEditFixture()

	_, err := f.uc.Edit(context.Background(), "tx-del", "admin-1", "Admin", dto.EditTransactionRequest{
		Reason:              "corrección de digitación, ya conciliado",
		InventoryAdjustment: entity.AdjustmentNone,
		Quantity:            ptr(d("800")),
	})
	require.NoError(t, err)

	stored, _ := f.txs.GetByID("tx-del")
	assert.True(t, d("800").Equal(stored.ActualDeliveredLiters), "la cantidad sí se actualiza")

	sess, _ := f.sessions.GetByID("s-1")
	assert.True(t, d("1500").Equal(sess.RemainingLiters), "el saldo no se toca")
	assert.Equal(t, entity.AdjustmentNone, f.history.entries[0].InventoryAdjustment)
}

// Edición que no toca litros: auditoría con estrategia none y sin impacto.
func TestEdit_SinLitrosNoEvaluaImpacto(t *testing.T) {
	f := newEditFixture()

	result, err := f.uc.Edit(context.Background(), "tx-del", "admin-1", "Admin", dto.EditTransactionRequest{
		Reason:        "número de orden corregido",
		TransactionNo: ptr("DEL-002"),
	})
	require.NoError(t, err)

	assert.Nil(t, result.Impact)
	require.Len(t, f.history.entries, 1)
	assert.Equal(t, entity.AdjustmentNone, f.history.entries[0].InventoryAdjustment)
}

// Instantánea obsoleta: otro editor confirmó primero → conflicto, nada se escribe.
func TestEdit_ConflictoOptimista(t *testing.T) {
	f := newEditFixture()

	// Simular que la transacción ya fue editada después de que este editor
	// cargó su formulario.
	stale := time.Now().Add(-time.Hour)

	_, err := f.uc.Edit(context.Background(), "tx-del", "admin-1", "Admin", dto.EditTransactionRequest{
		Reason:               "corrección",
		Quantity:             ptr(d("800")),
		ExpectedLastEditedAt: &stale,
	})

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, f.history.entries, "el conflicto no debe dejar auditoría")

	stored, _ := f.txs.GetByID("tx-del")
	assert.True(t, d("500").Equal(stored.ActualDeliveredLiters), "la cantidad no debe cambiar")
}

// Cambio de sucursal: el diff usa nombres resueltos contra los datos de referencia.
func TestEdit_CambioDeSucursalResuelveNombres(t *testing.T) {
	f := newEditFixture()

	result, err := f.uc.Edit(context.Background(), "tx-del", "admin-1", "Admin", dto.EditTransactionRequest{
		Reason:   "entregado en otra sucursal",
		BranchID: ptr("b-2"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Sucursal Norte", result.Transaction.BranchName)
	require.Len(t, result.Entry.Changes, 1)
	assert.Equal(t, "Branch", result.Entry.Changes[0].Field)
	assert.Equal(t, "Sucursal Centro", result.Entry.Changes[0].OldValue)
	assert.Equal(t, "Sucursal Norte", result.Entry.Changes[0].NewValue)
}
