package ledger

import (
	"github.com/onedelivery/onedelivery-api/internal/domain/entity"
	"github.com/onedelivery/onedelivery-api/internal/domain/repository"
)

// SessionResolver resuelve la sesión de carga asociada a una transacción.
// Devuelve (nil, nil) cuando no hay sesión resoluble: el caller degrada a
// "no fue posible verificar", nunca lanza error por eso.
type SessionResolver interface {
	Resolve(tx *entity.Transaction) (*entity.LoadSession, error)
}

// ByIDResolver variante byId: sigue el vínculo directo LoadSessionID.
type ByIDResolver struct {
	sessions repository.LoadSessionRepository
}

// NewByIDResolver construye la variante byId.
func NewByIDResolver(sessions repository.LoadSessionRepository) *ByIDResolver {
	return &ByIDResolver{sessions: sessions}
}

// Resolve busca la sesión por su ID; nil si la transacción no tiene vínculo.
func (r *ByIDResolver) Resolve(tx *entity.Transaction) (*entity.LoadSession, error) {
	if tx.LoadSessionID == "" {
		return nil, nil
	}
	return r.sessions.GetByID(tx.LoadSessionID)
}

// BranchOilTypeResolver variante byBranchAndOilTypeHeuristic para registros
// legados sin LoadSessionID: empareja la sesión activa más reciente con la
// misma sucursal y tipo de aceite. Es best-effort y puede equivocarse; por
// eso vive aislada detrás de la interfaz en vez de mezclada con el camino
// normal.
type BranchOilTypeResolver struct {
	sessions repository.LoadSessionRepository
}

// NewBranchOilTypeResolver construye la variante heurística.
func NewBranchOilTypeResolver(sessions repository.LoadSessionRepository) *BranchOilTypeResolver {
	return &BranchOilTypeResolver{sessions: sessions}
}

// Resolve aplica la heurística; nil si faltan sucursal o tipo de aceite.
func (r *BranchOilTypeResolver) Resolve(tx *entity.Transaction) (*entity.LoadSession, error) {
	if tx.BranchID == "" || tx.OilTypeID == "" {
		return nil, nil
	}
	return r.sessions.FindActiveByBranchAndOilType(tx.BranchID, tx.OilTypeID)
}

// ChainResolver prueba las variantes en orden y se queda con la primera que resuelve.
type ChainResolver []SessionResolver

// Resolve recorre la cadena.
func (c ChainResolver) Resolve(tx *entity.Transaction) (*entity.LoadSession, error) {
	for _, r := range c {
		sess, err := r.Resolve(tx)
		if err != nil {
			return nil, err
		}
		if sess != nil {
			return sess, nil
		}
	}
	return nil, nil
}

// NewDefaultResolver cadena estándar: primero byId, luego la heurística legada.
func NewDefaultResolver(sessions repository.LoadSessionRepository) SessionResolver {
	return ChainResolver{
		NewByIDResolver(sessions),
		NewBranchOilTypeResolver(sessions),
	}
}
