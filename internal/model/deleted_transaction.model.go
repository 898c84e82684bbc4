package model

import "time"

// DeletedTransaction is a full snapshot of a transaction at deletion time,
// kept in the recoverable bin until restore or permanent purge.
type DeletedTransaction struct {
	ID              int64      `json:"id"`
	OriginalID      int64      `json:"original_id"`
	ClientName      string     `json:"client_name"`
	ApplicantName   string     `json:"applicant_name"`
	Email           string     `json:"email"`
	EmailLink       string     `json:"email_link"`
	ServiceType     string     `json:"service_type"`
	AppID           int64      `json:"app_id"`
	CountryName     string     `json:"country_name"`
	CountryPrice    float64    `json:"country_price"`
	Rate            float64    `json:"rate"`
	Addition        float64    `json:"addition"`
	Amount          float64    `json:"amount"`
	AmountN         float64    `json:"amount_n"`
	IsPaid          bool       `json:"is_paid"`
	TransactionDate *time.Time `json:"transaction_date"`
	DeletedAt       time.Time  `json:"deleted_at"`
	TenantID        int64      `json:"model_id"`
}

// Snapshot copies a live transaction into a bin entry.
func Snapshot(t *Transaction) *DeletedTransaction {
	return &DeletedTransaction{
		OriginalID:      t.ID,
		ClientName:      t.ClientName,
		ApplicantName:   t.ApplicantName,
		Email:           t.Email,
		EmailLink:       t.EmailLink,
		ServiceType:     t.ServiceType,
		AppID:           t.AppID,
		CountryName:     t.CountryName,
		CountryPrice:    t.CountryPrice,
		Rate:            t.Rate,
		Addition:        t.Addition,
		Amount:          t.Amount,
		AmountN:         t.AmountN,
		IsPaid:          t.IsPaid,
		TransactionDate: t.TransactionDate,
		TenantID:        t.TenantID,
	}
}

// Revive turns a bin entry back into a live transaction (without an ID).
func (d *DeletedTransaction) Revive() *Transaction {
	return &Transaction{
		ClientName:      d.ClientName,
		ApplicantName:   d.ApplicantName,
		Email:           d.Email,
		EmailLink:       d.EmailLink,
		ServiceType:     d.ServiceType,
		AppID:           d.AppID,
		CountryName:     d.CountryName,
		CountryPrice:    d.CountryPrice,
		Rate:            d.Rate,
		Addition:        d.Addition,
		Amount:          d.Amount,
		AmountN:         d.AmountN,
		IsPaid:          d.IsPaid,
		TransactionDate: d.TransactionDate,
		TenantID:        d.TenantID,
	}
}
