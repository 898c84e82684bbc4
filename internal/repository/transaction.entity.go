package repository

import (
	"time"

	"github.com/bdauda29-ux/bdj-ledger/internal/model"
)

type TransactionEntity struct {
	ID              int64      `db:"id"               gorm:"primaryKey;autoIncrement;column:id"`
	ClientName      string     `db:"client_name"      gorm:"column:client_name;not null;index"`
	ApplicantName   string     `db:"applicant_name"   gorm:"column:applicant_name"`
	Email           string     `db:"email"            gorm:"column:email"`
	EmailLink       string     `db:"email_link"       gorm:"column:email_link"`
	ServiceType     string     `db:"service_type"     gorm:"column:service_type;default:eVisa"`
	AppID           int64      `db:"app_id"           gorm:"column:app_id;not null;uniqueIndex:idx_transactions_app_unique"`
	CountryName     string     `db:"country_name"     gorm:"column:country_name;not null"`
	CountryPrice    float64    `db:"country_price"    gorm:"column:country_price"`
	Rate            float64    `db:"rate"             gorm:"column:rate"`
	Addition        float64    `db:"addition"         gorm:"column:addition"`
	Amount          float64    `db:"amount"           gorm:"column:amount;not null"`
	AmountN         float64    `db:"amount_n"         gorm:"column:amount_n"`
	TransactionDate *time.Time `db:"transaction_date" gorm:"column:transaction_date;autoCreateTime"`
	IsPaid          bool       `db:"is_paid"          gorm:"column:is_paid;not null;default:false"`
	TenantID        int64      `db:"model_id"         gorm:"column:model_id;not null;uniqueIndex:idx_transactions_app_unique;index"`
}

func (TransactionEntity) TableName() string {
	return "transactions"
}

func toTransactionEntity(m *model.Transaction) *TransactionEntity {
	if m == nil {
		return nil
	}
	return &TransactionEntity{
		ID:              m.ID,
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
		TransactionDate: m.TransactionDate,
		IsPaid:          m.IsPaid,
		TenantID:        m.TenantID,
	}
}

func toTransactionModel(e *TransactionEntity) *model.Transaction {
	if e == nil {
		return nil
	}
	return &model.Transaction{
		ID:              e.ID,
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
		TransactionDate: e.TransactionDate,
		IsPaid:          e.IsPaid,
		TenantID:        e.TenantID,
	}
}

func toTransactionModels(entities []*TransactionEntity) []*model.Transaction {
	if entities == nil {
		return nil
	}
	models := make([]*model.Transaction, len(entities))
	for i, e := range entities {
		models[i] = toTransactionModel(e)
	}
	return models
}
