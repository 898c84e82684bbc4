package repository

import (
	"context"

	"github.com/bdauda29-ux/bdj-ledger/internal/model"
	"github.com/bdauda29-ux/bdj-ledger/pkg/pg"
)

type UserRepository struct {
	*pg.DB
}

func NewUserRepository(db *pg.DB) *UserRepository {
	return &UserRepository{
		db,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	entity := toUserEntity(u)
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, translate(err)
	}
	return toUserModel(entity), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var entity UserEntity
	if err := r.Read(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, translate(err)
	}
	return toUserModel(&entity), nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var entity UserEntity
	if err := r.Read(ctx).Where("username = ?", username).First(&entity).Error; err != nil {
		return nil, translate(err)
	}
	return toUserModel(&entity), nil
}

func (r *UserRepository) List(ctx context.Context) ([]*model.User, error) {
	var entities []*UserEntity
	if err := r.Read(ctx).Order("username").Find(&entities).Error; err != nil {
		return nil, translate(err)
	}
	return toUserModels(entities), nil
}

func (r *UserRepository) UpdatePerms(ctx context.Context, id int64, perms model.Permission) error {
	entity := toUserEntity(&model.User{Perms: perms})
	result := r.Write(ctx).
		Model(&UserEntity{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"can_edit_client":        entity.CanEditClient,
			"can_delete_client":      entity.CanDeleteClient,
			"can_add_transaction":    entity.CanAddTransaction,
			"can_edit_transaction":   entity.CanEditTransaction,
			"can_delete_transaction": entity.CanDeleteTransaction,
			"is_admin":               entity.IsAdmin,
		})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	result := r.Write(ctx).
		Model(&UserEntity{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return translate(r.Write(ctx).Where("id = ?", id).Delete(&UserEntity{}).Error)
}

func (r *UserRepository) CountAdmins(ctx context.Context) (int64, error) {
	var count int64
	err := r.Read(ctx).
		Model(&UserEntity{}).
		Where("is_admin = ?", true).
		Count(&count).Error
	if err != nil {
		return 0, translate(err)
	}
	return count, nil
}
