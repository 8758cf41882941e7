package ledger

import (
	"github.com/onedelivery/onedelivery-api/internal/application/dto"
	"github.com/onedelivery/onedelivery-api/internal/domain/entity"
	domledger "github.com/onedelivery/onedelivery-api/internal/domain/ledger"
)

// InventoryImpactUseCase evalúa el impacto de un cambio de cantidad ANTES del
// commit. Solo lectura, sin efectos: la UI usa el resultado para avisar en la
// confirmación, no para bloquearla.
type InventoryImpactUseCase struct {
	transactions transactionReader
	resolver     SessionResolver
}

// transactionReader es lo mínimo que necesita la evaluación (evita arrastrar
// el puerto completo en los tests).
type transactionReader interface {
	GetByID(id string) (*entity.Transaction, error)
}

// NewInventoryImpactUseCase construye el caso de uso.
func NewInventoryImpactUseCase(transactions transactionReader, resolver SessionResolver) *InventoryImpactUseCase {
	return &InventoryImpactUseCase{transactions: transactions, resolver: resolver}
}

// Calculate resuelve la sesión de carga de la transacción (byId o heurística
// legada) y proyecta el saldo. Si faltan datos para resolver, degrada a
// "no fue posible verificar" en lugar de fallar.
func (uc *InventoryImpactUseCase) Calculate(in dto.ImpactRequest) (*domledger.Impact, error) {
	// Sonda con los datos del request; si la transacción existe, sus datos
	// reales (vínculo a sesión incluido) tienen prioridad.
	probe := &entity.Transaction{
		ID:        in.TransactionID,
		Type:      in.TransactionType,
		BranchID:  in.BranchID,
		OilTypeID: in.OilTypeID,
	}
	if in.TransactionID != "" {
		tx, err := uc.transactions.GetByID(in.TransactionID)
		if err != nil {
			return nil, err
		}
		if tx != nil {
			probe = tx
		}
	}

	sess, err := uc.resolver.Resolve(probe)
	if err != nil || sess == nil {
		i := domledger.Unverifiable(in.OriginalQuantity, in.NewQuantity)
		return &i, nil
	}

	txType := probe.Type
	if txType == "" {
		txType = in.TransactionType
	}
	i := domledger.Assess(sess.RemainingLiters, in.OriginalQuantity, in.NewQuantity, txType)
	return &i, nil
}
