package repository

import (
	"context"

	"github.com/bdauda29-ux/bdj-ledger/internal/model"
	"github.com/bdauda29-ux/bdj-ledger/pkg/pg"
)

type TenantRepository struct {
	*pg.DB
}

func NewTenantRepository(db *pg.DB) *TenantRepository {
	return &TenantRepository{
		db,
	}
}

func (r *TenantRepository) Create(ctx context.Context, name string) (*model.Tenant, error) {
	entity := &TenantEntity{Name: name}
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, translate(err)
	}
	return toTenantModel(entity), nil
}

func (r *TenantRepository) GetByID(ctx context.Context, id int64) (*model.Tenant, error) {
	var entity TenantEntity
	if err := r.Read(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, translate(err)
	}
	return toTenantModel(&entity), nil
}

func (r *TenantRepository) List(ctx context.Context) ([]*model.Tenant, error) {
	var entities []*TenantEntity
	err := r.Read(ctx).Order("created_at DESC").Find(&entities).Error
	if err != nil {
		return nil, translate(err)
	}
	return toTenantModels(entities), nil
}

func (r *TenantRepository) Rename(ctx context.Context, id int64, name string) error {
	result := r.Write(ctx).
		Model(&TenantEntity{}).
		Where("id = ?", id).
		Update("name", name)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear removes every row belonging to the tenant but keeps the tenant
// itself. Countries are reference data and survive, matching the legacy
// clear operation.
func (r *TenantRepository) Clear(ctx context.Context, id int64) error {
	for _, m := range []any{
		&BalanceEntryEntity{},
		&DeletedTransactionEntity{},
		&TransactionEntity{},
		&ClientEntity{},
	} {
		if err := r.Write(ctx).Where("model_id = ?", id).Delete(m).Error; err != nil {
			return translate(err)
		}
	}
	return nil
}

// Delete cascades to everything the tenant owns, then removes the tenant.
func (r *TenantRepository) Delete(ctx context.Context, id int64) error {
	if err := r.Clear(ctx, id); err != nil {
		return err
	}
	if err := r.Write(ctx).Where("model_id = ?", id).Delete(&CountryEntity{}).Error; err != nil {
		return translate(err)
	}
	return translate(r.Write(ctx).Where("id = ?", id).Delete(&TenantEntity{}).Error)
}
