package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/onedelivery/onedelivery-api/internal/application/dto"
	"github.com/onedelivery/onedelivery-api/internal/domain"
	"github.com/onedelivery/onedelivery-api/internal/domain/entity"
	"github.com/onedelivery/onedelivery-api/internal/domain/repository"
	"github.com/onedelivery/onedelivery-api/pkg/logger"
)

// RegisterTransactionUseCase registra transacciones de forma transaccional:
// loading abre (o pliega en) una sesión de carga; supply/delivery descuentan
// saldo de la sesión bajo bloqueo de fila y Commit/Rollback.
type RegisterTransactionUseCase struct {
	txRunner TxRunner
	branches repository.BranchRepository
	oilTypes repository.OilTypeRepository
	log      *logger.Logger
}

// NewRegisterTransactionUseCase construye el caso de uso.
func NewRegisterTransactionUseCase(
	txRunner TxRunner,
	branches repository.BranchRepository,
	oilTypes repository.OilTypeRepository,
	log *logger.Logger,
) *RegisterTransactionUseCase {
	return &RegisterTransactionUseCase{txRunner: txRunner, branches: branches, oilTypes: oilTypes, log: log}
}

// Register valida los datos de referencia, crea la transacción y re-deriva el
// saldo de la sesión afectada dentro de UNA transacción de BD.
//
// Un sobregiro (saldo negativo tras una entrega) NO es un error: se registra
// y se deja la sesión marcada; solo queda constancia en el log.
func (uc *RegisterTransactionUseCase) Register(ctx context.Context, driverUID string, in dto.RegisterTransactionRequest) (*entity.Transaction, error) {
	if !entity.ValidTxType(in.Type) || !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	branch, err := uc.branches.GetByID(in.BranchID)
	if err != nil || branch == nil {
		return nil, domain.ErrNotFound
	}
	oilType, err := uc.oilTypes.GetByID(in.OilTypeID)
	if err != nil || oilType == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	tx := &entity.Transaction{
		ID:            uuid.New().String(),
		TransactionNo: in.TransactionNo,
		Type:          in.Type,
		DriverUID:     driverUID,
		DriverName:    in.DriverName,
		BranchID:      branch.ID,
		BranchName:    branch.Name,
		OilTypeID:     oilType.ID,
		OilTypeName:   oilType.Name,
		LoadSessionID: in.LoadSessionID,
		Status:        "completed",
		CreatedAt:     now,
	}
	tx.SetQuantity(in.Quantity)
	if in.StartMeterReading != nil {
		tx.StartMeterReading = *in.StartMeterReading
	}
	if in.EndMeterReading != nil {
		tx.EndMeterReading = *in.EndMeterReading
	}

	err = uc.txRunner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		sessionRepo repository.LoadSessionRepository,
		historyRepo repository.EditHistoryRepository,
	) error {
		if tx.Type == entity.TxTypeLoading {
			return uc.doLoading(txRepo, sessionRepo, historyRepo, tx, oilType, now)
		}
		return uc.doConsume(txRepo, sessionRepo, historyRepo, tx, now)
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// doLoading pliega la carga en la sesión activa del conductor para ese tipo de
// aceite (loadCount++) o abre una sesión nueva, y re-deriva el saldo.
func (uc *RegisterTransactionUseCase) doLoading(
	txRepo repository.TransactionRepository,
	sessionRepo repository.LoadSessionRepository,
	historyRepo repository.EditHistoryRepository,
	tx *entity.Transaction,
	oilType *entity.OilType,
	now time.Time,
) error {
	sess, err := sessionRepo.FindActiveByDriverAndOilType(tx.DriverUID, tx.OilTypeID)
	if err != nil {
		return err
	}
	if sess == nil {
		sess = &entity.LoadSession{
			ID:          uuid.New().String(),
			DriverUID:   tx.DriverUID,
			DriverName:  tx.DriverName,
			BranchID:    tx.BranchID,
			OilTypeID:   oilType.ID,
			OilTypeName: oilType.Name,
			Status:      entity.SessionStatusActive,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := sessionRepo.Create(sess); err != nil {
			return err
		}
	}
	tx.LoadSessionID = sess.ID
	if err := txRepo.Create(tx); err != nil {
		return err
	}
	_, err = rebalanceSession(txRepo, sessionRepo, historyRepo, sess.ID, now)
	return err
}

// doConsume descuenta una entrega/suministro de la sesión referenciada.
func (uc *RegisterTransactionUseCase) doConsume(
	txRepo repository.TransactionRepository,
	sessionRepo repository.LoadSessionRepository,
	historyRepo repository.EditHistoryRepository,
	tx *entity.Transaction,
	now time.Time,
) error {
	if tx.LoadSessionID == "" {
		// El conductor opera contra su propia sesión activa del mismo aceite.
		sess, err := sessionRepo.FindActiveByDriverAndOilType(tx.DriverUID, tx.OilTypeID)
		if err != nil {
			return err
		}
		if sess == nil {
			return domain.ErrNotFound
		}
		tx.LoadSessionID = sess.ID
	}

	sess, err := sessionRepo.GetForUpdate(tx.LoadSessionID)
	if err != nil {
		return err
	}
	if sess == nil {
		return domain.ErrNotFound
	}
	if sess.Status == entity.SessionStatusCancelled {
		return domain.ErrSessionNotActive
	}

	if err := txRepo.Create(tx); err != nil {
		return err
	}
	updated, err := rebalanceSession(txRepo, sessionRepo, historyRepo, sess.ID, now)
	if err != nil {
		return err
	}
	if updated != nil && updated.Overdrawn() {
		uc.log.Warn().
			Str("load_session_id", updated.ID).
			Str("remaining_liters", updated.RemainingLiters.String()).
			Msg("sesión de carga sobregirada")
	}
	return nil
}
