package repository

import (
	"time"

	"github.com/bdauda29-ux/bdj-ledger/internal/model"
)

type DeletedTransactionEntity struct {
	ID              int64      `db:"id"               gorm:"primaryKey;autoIncrement;column:id"`
	OriginalID      int64      `db:"original_id"      gorm:"column:original_id"`
	ClientName      string     `db:"client_name"      gorm:"column:client_name"`
	ApplicantName   string     `db:"applicant_name"   gorm:"column:applicant_name"`
	Email           string     `db:"email"            gorm:"column:email"`
	EmailLink       string     `db:"email_link"       gorm:"column:email_link"`
	ServiceType     string     `db:"service_type"     gorm:"column:service_type"`
	AppID           int64      `db:"app_id"           gorm:"column:app_id"`
	CountryName     string     `db:"country_name"     gorm:"column:country_name"`
	CountryPrice    float64    `db:"country_price"    gorm:"column:country_price"`
	Rate            float64    `db:"rate"             gorm:"column:rate"`
	Addition        float64    `db:"addition"         gorm:"column:addition"`
	Amount          float64    `db:"amount"           gorm:"column:amount"`
	AmountN         float64    `db:"amount_n"         gorm:"column:amount_n"`
	IsPaid          bool       `db:"is_paid"          gorm:"column:is_paid;not null;default:false"`
	TransactionDate *time.Time `db:"transaction_date" gorm:"column:transaction_date"`
	DeletedAt       *time.Time `db:"deleted_at"       gorm:"column:deleted_at;autoCreateTime"`
	TenantID        int64      `db:"model_id"         gorm:"column:model_id;not null;index"`
}

func (DeletedTransactionEntity) TableName() string {
	return "deleted_transactions"
}

func toDeletedTransactionEntity(m *model.DeletedTransaction) *DeletedTransactionEntity {
	if m == nil {
		return nil
	}
	e := &DeletedTransactionEntity{
		ID:              m.ID,
		OriginalID:      m.OriginalID,
		ClientName:      m.ClientName,
		ApplicantName:   m.ApplicantName,
		Email:           m.Email,
		EmailLink:       m.EmailLink,
		ServiceType:     m.ServiceType,
		AppID:           m.AppID,
		CountryName:     m.CountryName,
		CountryPrice:    m.CountryPrice,
		Rate:            m.Rate,
		Addition:        m.Addition,
		Amount:          m.Amount,
		AmountN:         m.AmountN,
		IsPaid:          m.IsPaid,
		TransactionDate: m.TransactionDate,
		TenantID:        m.TenantID,
	}
	if !m.DeletedAt.IsZero() {
		ts := m.DeletedAt
		e.DeletedAt = &ts
	}
	return e
}

func toDeletedTransactionModel(e *DeletedTransactionEntity) *model.DeletedTransaction {
	if e == nil {
		return nil
	}
	m := &model.DeletedTransaction{
		ID:              e.ID,
		OriginalID:      e.OriginalID,
		ClientName:      e.ClientName,
		ApplicantName:   e.ApplicantName,
		Email:           e.Email,
		EmailLink:       e.EmailLink,
		ServiceType:     e.ServiceType,
		AppID:           e.AppID,
		CountryName:     e.CountryName,
		CountryPrice:    e.CountryPrice,
		Rate:            e.Rate,
		Addition:        e.Addition,
		Amount:          e.Amount,
		AmountN:         e.AmountN,
		IsPaid:          e.IsPaid,
		TransactionDate: e.TransactionDate,
		TenantID:        e.TenantID,
	}
	if e.DeletedAt != nil {
		m.DeletedAt = *e.DeletedAt
	}
	return m
}

func toDeletedTransactionModels(entities []*DeletedTransactionEntity) []*model.DeletedTransaction {
	if entities == nil {
		return nil
	}
	models := make([]*model.DeletedTransaction, len(entities))
	for i, e := range entities {
		models[i] = toDeletedTransactionModel(e)
	}
	return models
}
