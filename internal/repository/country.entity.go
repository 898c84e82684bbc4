package repository

import (
	"github.com/bdauda29-ux/bdj-ledger/internal/model"
)

type CountryEntity struct {
	ID        int64   `db:"id"        gorm:"primaryKey;autoIncrement;column:id"`
	Name      string  `db:"name"      gorm:"column:name;not null;uniqueIndex:idx_countries_unique"`
	Price     float64 `db:"price"     gorm:"column:price;not null;default:0"`
	Continent string  `db:"continent" gorm:"column:continent"`
	TenantID  int64   `db:"model_id"  gorm:"column:model_id;not null;uniqueIndex:idx_countries_unique;index"`
}

func (CountryEntity) TableName() string {
	return "countries"
}

func toCountryEntity(m *model.Country) *CountryEntity {
	if m == nil {
		return nil
	}
	return &CountryEntity{
		ID:        m.ID,
		Name:      m.Name,
		Price:     m.Price,
		Continent: m.Continent,
		TenantID:  m.TenantID,
	}
}

func toCountryModel(e *CountryEntity) *model.Country {
	if e == nil {
		return nil
	}
	return &model.Country{
		ID:        e.ID,
		Name:      e.Name,
		Price:     e.Price,
		Continent: e.Continent,
		TenantID:  e.TenantID,
	}
}

func toCountryModels(entities []*CountryEntity) []*model.Country {
	if entities == nil {
		return nil
	}
	models := make([]*model.Country, len(entities))
	for i, e := range entities {
		models[i] = toCountryModel(e)
	}
	return models
}
