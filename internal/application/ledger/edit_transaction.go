package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/onedelivery/onedelivery-api/internal/application/dto"
	"github.com/onedelivery/onedelivery-api/internal/domain"
	"github.com/onedelivery/onedelivery-api/internal/domain/entity"
	domledger "github.com/onedelivery/onedelivery-api/internal/domain/ledger"
	"github.com/onedelivery/onedelivery-api/internal/domain/repository"
	"github.com/onedelivery/onedelivery-api/pkg/logger"
)

// EditTransactionUseCase implementa el flujo de edición con auditoría:
// diff contra la instantánea original, motivo obligatorio, evaluación de
// impacto (consultiva) y commit atómico de (update + entrada de auditoría +
// recálculo del saldo) en UNA transacción de BD con CAS optimista sobre
// last_edited_at.
type EditTransactionUseCase struct {
	txRunner     TxRunner
	transactions repository.TransactionRepository
	branches     repository.BranchRepository
	oilTypes     repository.OilTypeRepository
	resolver     SessionResolver
	log          *logger.Logger
}

// NewEditTransactionUseCase construye el caso de uso.
func NewEditTransactionUseCase(
	txRunner TxRunner,
	transactions repository.TransactionRepository,
	branches repository.BranchRepository,
	oilTypes repository.OilTypeRepository,
	resolver SessionResolver,
	log *logger.Logger,
) *EditTransactionUseCase {
	return &EditTransactionUseCase{
		txRunner:     txRunner,
		transactions: transactions,
		branches:     branches,
		oilTypes:     oilTypes,
		resolver:     resolver,
		log:          log,
	}
}

// EditResult es la salida del commit: la transacción actualizada, la entrada
// de auditoría creada y el impacto evaluado (nil si la edición no tocó litros).
type EditResult struct {
	Transaction *entity.Transaction
	Entry       *entity.EditHistoryEntry
	Impact      *domledger.Impact
}

// Edit aplica la edición. Errores de validación (retornan al formulario, nunca
// escriben nada): ErrNoChanges si ningún campo cambió, ErrReasonRequired si el
// motivo está vacío, ErrInvalidInput si la estrategia es inconsistente.
// ErrConflict si otro editor confirmó primero (instantánea obsoleta).
//
// Las advertencias de impacto son consultivas: se devuelven en el resultado
// pero jamás bloquean el commit.
func (uc *EditTransactionUseCase) Edit(ctx context.Context, transactionID string, editorUID, editorName string, in dto.EditTransactionRequest) (*EditResult, error) {
	original, err := uc.transactions.GetByID(transactionID)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, domain.ErrNotFound
	}

	edited, err := uc.applyEdits(original, in)
	if err != nil {
		return nil, err
	}

	changes := domledger.Diff(original, edited)
	if len(changes) == 0 {
		return nil, domain.ErrNoChanges
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, domain.ErrReasonRequired
	}

	// La estrategia de ajuste solo aplica cuando el diff toca litros; en los
	// demás casos la entrada de auditoría queda con "none".
	adjustment := entity.AdjustmentNone
	var impact *domledger.Impact
	var sessionID string

	if domledger.HasQuantityChange(changes) {
		adjustment = in.InventoryAdjustment
		if adjustment == "" {
			adjustment = entity.AdjustmentAutomatic
		}
		if !entity.ValidAdjustment(adjustment) {
			return nil, domain.ErrInvalidInput
		}
		if adjustment == entity.AdjustmentManual && in.ManualAdjustmentLiters == nil {
			return nil, domain.ErrInvalidInput
		}

		sess, rerr := uc.resolver.Resolve(original)
		if rerr != nil {
			// Fallo de infraestructura al resolver: degradar a "no verificable",
			// el commit sigue siendo posible con ajuste manual.
			uc.log.Warn().Err(rerr).Str("transaction_id", original.ID).
				Msg("no se pudo resolver la sesión de carga para evaluar impacto")
			sess = nil
		}
		if sess != nil {
			i := domledger.Assess(sess.RemainingLiters, original.Quantity(), edited.Quantity(), original.Type)
			impact = &i
			sessionID = sess.ID
		} else {
			i := domledger.Unverifiable(original.Quantity(), edited.Quantity())
			impact = &i
		}
	}

	now := time.Now()
	edited.LastEditedAt = &now

	// CAS: por defecto se compara contra la instantánea leída aquí; si el
	// cliente envió la suya (la del formulario), esa manda.
	expected := original.LastEditedAt
	if in.ExpectedLastEditedAt != nil {
		expected = in.ExpectedLastEditedAt
	}

	entry := &entity.EditHistoryEntry{
		ID:                  uuid.New().String(),
		TransactionID:       original.ID,
		EditedBy:            editorUID,
		EditedByName:        editorName,
		EditedAt:            now,
		Reason:              reason,
		Changes:             changes,
		InventoryAdjustment: adjustment,
	}
	if adjustment == entity.AdjustmentManual {
		entry.ManualAdjustmentLiters = in.ManualAdjustmentLiters
	}

	err = uc.txRunner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		sessionRepo repository.LoadSessionRepository,
		historyRepo repository.EditHistoryRepository,
	) error {
		if err := txRepo.UpdateEdited(edited, expected); err != nil {
			return err
		}
		if err := historyRepo.Create(entry); err != nil {
			return err
		}
		// none: el saldo de la sesión no se toca aunque la cantidad registrada
		// haya cambiado (el offset de auditoría lo preserva a futuro).
		if adjustment == entity.AdjustmentNone || sessionID == "" {
			return nil
		}
		sess, err := rebalanceSession(txRepo, sessionRepo, historyRepo, sessionID, now)
		if err != nil {
			return err
		}
		if sess != nil && sess.Overdrawn() {
			uc.log.Warn().
				Str("load_session_id", sess.ID).
				Str("remaining_liters", sess.RemainingLiters.String()).
				Msg("la edición dejó la sesión de carga sobregirada")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &EditResult{Transaction: edited, Entry: entry, Impact: impact}, nil
}

// applyEdits construye la versión editada a partir de la original y los campos
// presentes en el request. Si cambian sucursal o tipo de aceite, los nombres
// denormalizados se resuelven contra los datos de referencia.
func (uc *EditTransactionUseCase) applyEdits(original *entity.Transaction, in dto.EditTransactionRequest) (*entity.Transaction, error) {
	edited := *original

	if in.TransactionNo != nil {
		edited.TransactionNo = *in.TransactionNo
	}
	if in.BranchID != nil && *in.BranchID != original.BranchID {
		branch, err := uc.branches.GetByID(*in.BranchID)
		if err != nil || branch == nil {
			return nil, domain.ErrNotFound
		}
		edited.BranchID = branch.ID
		edited.BranchName = branch.Name
	}
	if in.OilTypeID != nil && *in.OilTypeID != original.OilTypeID {
		oilType, err := uc.oilTypes.GetByID(*in.OilTypeID)
		if err != nil || oilType == nil {
			return nil, domain.ErrNotFound
		}
		edited.OilTypeID = oilType.ID
		edited.OilTypeName = oilType.Name
	}
	if in.Quantity != nil {
		edited.SetQuantity(*in.Quantity)
	}
	if in.StartMeterReading != nil {
		edited.StartMeterReading = *in.StartMeterReading
	}
	if in.EndMeterReading != nil {
		edited.EndMeterReading = *in.EndMeterReading
	}
	if in.Status != nil {
		edited.Status = *in.Status
	}

	return &edited, nil
}
