package repository

import (
	"github.com/bdauda29-ux/bdj-ledger/internal/model"
)

type ClientEntity struct {
	ID       int64   `db:"id"           gorm:"primaryKey;autoIncrement;column:id"`
	Name     string  `db:"client_name"  gorm:"column:client_name;not null;uniqueIndex:idx_clients_unique"`
	Phone    string  `db:"phone_number" gorm:"column:phone_number;not null"`
	Balance  float64 `db:"balance"      gorm:"column:balance;not null;default:0"`
	TenantID int64   `db:"model_id"     gorm:"column:model_id;not null;uniqueIndex:idx_clients_unique;index"`
}

func (ClientEntity) TableName() string {
	return "clients"
}

func toClientEntity(m *model.Client) *ClientEntity {
	if m == nil {
		return nil
	}
	return &ClientEntity{
		ID:       m.ID,
		Name:     m.Name,
		Phone:    m.Phone,
		Balance:  m.Balance,
		TenantID: m.TenantID,
	}
}

func toClientModel(e *ClientEntity) *model.Client {
	if e == nil {
		return nil
	}
	return &model.Client{
		ID:       e.ID,
		Name:     e.Name,
		Phone:    e.Phone,
		Balance:  e.Balance,
		TenantID: e.TenantID,
	}
}

func toClientModels(entities []*ClientEntity) []*model.Client {
	if entities == nil {
		return nil
	}
	models := make([]*model.Client, len(entities))
	for i, e := range entities {
		models[i] = toClientModel(e)
	}
	return models
}
