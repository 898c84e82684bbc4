package repository

import (
	"time"

	"github.com/bdauda29-ux/bdj-ledger/internal/model"
)

type TenantEntity struct {
	ID        int64      `db:"id"         gorm:"primaryKey;autoIncrement;column:id"`
	Name      string     `db:"name"       gorm:"column:name;not null;unique"`
	CreatedAt *time.Time `db:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (TenantEntity) TableName() string {
	return "models"
}

func toTenantModel(e *TenantEntity) *model.Tenant {
	if e == nil {
		return nil
	}
	m := &model.Tenant{
		ID:   e.ID,
		Name: e.Name,
	}
	if e.CreatedAt != nil {
		m.CreatedAt = *e.CreatedAt
	}
	return m
}

func toTenantModels(entities []*TenantEntity) []*model.Tenant {
	if entities == nil {
		return nil
	}
	models := make([]*model.Tenant, len(entities))
	for i, e := range entities {
		models[i] = toTenantModel(e)
	}
	return models
}
