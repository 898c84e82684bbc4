package repository

import (
	"context"

	"github.com/bdauda29-ux/bdj-ledger/internal/model"
	"github.com/bdauda29-ux/bdj-ledger/pkg/pg"
)

// BinRepository stores deleted-transaction snapshots. Pure storage; the
// lifecycle service owns every balance decision around stash and restore.
type BinRepository struct {
	*pg.DB
}

func NewBinRepository(db *pg.DB) *BinRepository {
	return &BinRepository{
		db,
	}
}

func (r *BinRepository) Stash(ctx context.Context, snapshot *model.DeletedTransaction) (*model.DeletedTransaction, error) {
	entity := toDeletedTransactionEntity(snapshot)
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, translate(err)
	}
	return toDeletedTransactionModel(entity), nil
}

func (r *BinRepository) Get(ctx context.Context, tenantID, id int64) (*model.DeletedTransaction, error) {
	var entity DeletedTransactionEntity
	err := r.Read(ctx).
		Where("id = ? AND model_id = ?", id, tenantID).
		First(&entity).Error
	if err != nil {
		return nil, translate(err)
	}
	return toDeletedTransactionModel(&entity), nil
}

func (r *BinRepository) List(ctx context.Context, tenantID int64) ([]*model.DeletedTransaction, error) {
	var entities []*DeletedTransactionEntity
	err := r.Read(ctx).
		Where("model_id = ?", tenantID).
		Order("deleted_at DESC").
		Find(&entities).Error
	if err != nil {
		return nil, translate(err)
	}
	return toDeletedTransactionModels(entities), nil
}

func (r *BinRepository) Purge(ctx context.Context, tenantID, id int64) error {
	return translate(r.Write(ctx).
		Where("id = ? AND model_id = ?", id, tenantID).
		Delete(&DeletedTransactionEntity{}).Error)
}
