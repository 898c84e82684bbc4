package repository

import (
	"github.com/bdauda29-ux/bdj-ledger/internal/model"
)

// UserEntity keeps the legacy one-column-per-flag layout; the domain side
// collapses the flags into a model.Permission bit-set.
type UserEntity struct {
	ID                   int64  `db:"id"                     gorm:"primaryKey;autoIncrement;column:id"`
	Username             string `db:"username"               gorm:"column:username;not null;unique"`
	PasswordHash         string `db:"password_hash"          gorm:"column:password_hash;not null"`
	Email                string `db:"email"                  gorm:"column:email"`
	CanEditClient        bool   `db:"can_edit_client"        gorm:"column:can_edit_client;default:true"`
	CanDeleteClient      bool   `db:"can_delete_client"      gorm:"column:can_delete_client;default:true"`
	CanAddTransaction    bool   `db:"can_add_transaction"    gorm:"column:can_add_transaction;default:true"`
	CanEditTransaction   bool   `db:"can_edit_transaction"   gorm:"column:can_edit_transaction;default:true"`
	CanDeleteTransaction bool   `db:"can_delete_transaction" gorm:"column:can_delete_transaction;default:true"`
	IsAdmin              bool   `db:"is_admin"               gorm:"column:is_admin;default:false"`
}

func (UserEntity) TableName() string {
	return "users"
}

func toUserEntity(m *model.User) *UserEntity {
	if m == nil {
		return nil
	}
	return &UserEntity{
		ID:                   m.ID,
		Username:             m.Username,
		PasswordHash:         m.PasswordHash,
		Email:                m.Email,
		CanEditClient:        m.Perms&model.PermEditClient != 0,
		CanDeleteClient:      m.Perms&model.PermDeleteClient != 0,
		CanAddTransaction:    m.Perms&model.PermAddTransaction != 0,
		CanEditTransaction:   m.Perms&model.PermEditTransaction != 0,
		CanDeleteTransaction: m.Perms&model.PermDeleteTransaction != 0,
		IsAdmin:              m.Perms&model.PermAdmin != 0,
	}
}

func toUserModel(e *UserEntity) *model.User {
	if e == nil {
		return nil
	}
	var perms model.Permission
	if e.CanEditClient {
		perms |= model.PermEditClient
	}
	if e.CanDeleteClient {
		perms |= model.PermDeleteClient
	}
	if e.CanAddTransaction {
		perms |= model.PermAddTransaction
	}
	if e.CanEditTransaction {
		perms |= model.PermEditTransaction
	}
	if e.CanDeleteTransaction {
		perms |= model.PermDeleteTransaction
	}
	if e.IsAdmin {
		perms |= model.PermAdmin
	}
	return &model.User{
		ID:           e.ID,
		Username:     e.Username,
		PasswordHash: e.PasswordHash,
		Email:        e.Email,
		Perms:        perms,
	}
}

func toUserModels(entities []*UserEntity) []*model.User {
	if entities == nil {
		return nil
	}
	models := make([]*model.User, len(entities))
	for i, e := range entities {
		models[i] = toUserModel(e)
	}
	return models
}
