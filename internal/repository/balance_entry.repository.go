package repository

import (
	"context"

	"github.com/bdauda29-ux/bdj-ledger/internal/model"
	"github.com/bdauda29-ux/bdj-ledger/pkg/pg"
)

type BalanceEntryRepository struct {
	*pg.DB
}

func NewBalanceEntryRepository(db *pg.DB) *BalanceEntryRepository {
	return &BalanceEntryRepository{
		db,
	}
}

func (r *BalanceEntryRepository) Insert(ctx context.Context, entry *model.BalanceEntry) (*model.BalanceEntry, error) {
	entity := toBalanceEntryEntity(entry)
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, translate(err)
	}
	return toBalanceEntryModel(entity), nil
}

func (r *BalanceEntryRepository) ListByClient(ctx context.Context, tenantID, clientID int64) ([]*model.BalanceEntry, error) {
	var entities []*BalanceEntryEntity
	err := r.Read(ctx).
		Where("client_id = ? AND model_id = ?", clientID, tenantID).
		Order("timestamp DESC").
		Find(&entities).Error
	if err != nil {
		return nil, translate(err)
	}
	return toBalanceEntryModels(entities), nil
}

// DeleteByTransaction wipes every history row referencing a transaction.
// Used by undo-pay and delete, which keep the ledger as a net-effect log.
func (r *BalanceEntryRepository) DeleteByTransaction(ctx context.Context, transactionID int64) error {
	return translate(r.Write(ctx).
		Where("transaction_id = ?", transactionID).
		Delete(&BalanceEntryEntity{}).Error)
}

// SignedSum returns the sum of credit minus debit amounts for a client.
func (r *BalanceEntryRepository) SignedSum(ctx context.Context, tenantID, clientID int64) (float64, error) {
	var sum *float64
	err := r.Read(ctx).
		Model(&BalanceEntryEntity{}).
		Select("SUM(CASE WHEN type = 'credit' THEN amount ELSE -amount END)").
		Where("client_id = ? AND model_id = ?", clientID, tenantID).
		Scan(&sum).Error
	if err != nil {
		return 0, translate(err)
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}
