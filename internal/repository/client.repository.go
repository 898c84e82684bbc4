package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bdauda29-ux/bdj-ledger/internal/model"
	"github.com/bdauda29-ux/bdj-ledger/pkg/pg"
)

type ClientRepository struct {
	*pg.DB
}

func NewClientRepository(db *pg.DB) *ClientRepository {
	return &ClientRepository{
		db,
	}
}

func (r *ClientRepository) Create(ctx context.Context, c *model.Client) (*model.Client, error) {
	entity := toClientEntity(c)
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, translate(err)
	}
	return toClientModel(entity), nil
}

// Update renames a client; the balance column is owned by the ledger and is
// deliberately not written here.
func (r *ClientRepository) Update(ctx context.Context, c *model.Client) error {
	result := r.Write(ctx).
		Model(&ClientEntity{}).
		Where("id = ? AND model_id = ?", c.ID, c.TenantID).
		Updates(map[string]any{"client_name": c.Name, "phone_number": c.Phone})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ClientRepository) Delete(ctx context.Context, tenantID, id int64) error {
	return translate(r.Write(ctx).
		Where("id = ? AND model_id = ?", id, tenantID).
		Delete(&ClientEntity{}).Error)
}

func (r *ClientRepository) GetByID(ctx context.Context, tenantID, id int64) (*model.Client, error) {
	var entity ClientEntity
	err := r.Read(ctx).
		Where("id = ? AND model_id = ?", id, tenantID).
		First(&entity).Error
	if err != nil {
		return nil, translate(err)
	}
	return toClientModel(&entity), nil
}

func (r *ClientRepository) GetByName(ctx context.Context, tenantID int64, name string) (*model.Client, error) {
	var entity ClientEntity
	err := r.Read(ctx).
		Where("client_name = ? AND model_id = ?", name, tenantID).
		First(&entity).Error
	if err != nil {
		return nil, translate(err)
	}
	return toClientModel(&entity), nil
}

// GetByNameForUpdate acquires a row lock so a concurrent mutation of the
// same client balance serializes on the database.
func (r *ClientRepository) GetByNameForUpdate(ctx context.Context, tenantID int64, name string) (*model.Client, error) {
	var entity ClientEntity
	err := r.Write(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("client_name = ? AND model_id = ?", name, tenantID).
		First(&entity).Error
	if err != nil {
		return nil, translate(err)
	}
	return toClientModel(&entity), nil
}

func (r *ClientRepository) GetForUpdate(ctx context.Context, tenantID, id int64) (*model.Client, error) {
	var entity ClientEntity
	err := r.Write(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND model_id = ?", id, tenantID).
		First(&entity).Error
	if err != nil {
		return nil, translate(err)
	}
	return toClientModel(&entity), nil
}

func (r *ClientRepository) List(ctx context.Context, tenantID int64) ([]*model.Client, error) {
	var entities []*ClientEntity
	err := r.Read(ctx).
		Where("model_id = ?", tenantID).
		Order("client_name").
		Find(&entities).Error
	if err != nil {
		return nil, translate(err)
	}
	return toClientModels(entities), nil
}

// SetBalance writes an absolute balance. Only the ledger service calls this.
func (r *ClientRepository) SetBalance(ctx context.Context, id int64, balance float64) error {
	result := r.Write(ctx).
		Model(&ClientEntity{}).
		Where("id = ?", id).
		Update("balance", balance)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddBalance applies a relative delta in one statement. Used for the
// unrecorded credit in the delete flow.
func (r *ClientRepository) AddBalance(ctx context.Context, id int64, delta float64) error {
	result := r.Write(ctx).
		Model(&ClientEntity{}).
		Where("id = ?", id).
		Update("balance", gorm.Expr("balance + ?", delta))
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
