package repository

import (
	"context"

	"github.com/bdauda29-ux/bdj-ledger/internal/model"
	"github.com/bdauda29-ux/bdj-ledger/pkg/pg"
)

type CountryRepository struct {
	*pg.DB
}

func NewCountryRepository(db *pg.DB) *CountryRepository {
	return &CountryRepository{
		db,
	}
}

func (r *CountryRepository) Create(ctx context.Context, c *model.Country) (*model.Country, error) {
	entity := toCountryEntity(c)
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, translate(err)
	}
	return toCountryModel(entity), nil
}

func (r *CountryRepository) Update(ctx context.Context, c *model.Country) error {
	result := r.Write(ctx).
		Model(&CountryEntity{}).
		Where("id = ? AND model_id = ?", c.ID, c.TenantID).
		Updates(map[string]any{"name": c.Name, "price": c.Price, "continent": c.Continent})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CountryRepository) Delete(ctx context.Context, tenantID, id int64) error {
	return translate(r.Write(ctx).
		Where("id = ? AND model_id = ?", id, tenantID).
		Delete(&CountryEntity{}).Error)
}

func (r *CountryRepository) GetByName(ctx context.Context, tenantID int64, name string) (*model.Country, error) {
	var entity CountryEntity
	err := r.Read(ctx).
		Where("name = ? AND model_id = ?", name, tenantID).
		First(&entity).Error
	if err != nil {
		return nil, translate(err)
	}
	return toCountryModel(&entity), nil
}

func (r *CountryRepository) List(ctx context.Context, tenantID int64) ([]*model.Country, error) {
	var entities []*CountryEntity
	err := r.Read(ctx).
		Where("model_id = ?", tenantID).
		Order("name").
		Find(&entities).Error
	if err != nil {
		return nil, translate(err)
	}
	return toCountryModels(entities), nil
}
