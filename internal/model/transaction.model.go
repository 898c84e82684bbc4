package model

import (
	"errors"
	"fmt"
	"time"
)

const DefaultServiceType = "eVisa"

// Transaction is a visa-application service charge. Amount fields are
// snapshots computed when the row is written; later price changes do not
// touch existing rows.
type Transaction struct {
	ID              int64      `json:"id"`
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
	TransactionDate *time.Time `json:"transaction_date"`
	IsPaid          bool       `json:"is_paid"`
	TenantID        int64      `json:"model_id"`
}

func errRequired(field string) error {
	return fmt.Errorf("%s is required", field)
}

// TransactionRequest is the input for creating or editing a transaction.
// Rate and Addition arrive already coerced (absent or malformed input falls
// back to 1.0 / 0.0 at the parsing boundary).
type TransactionRequest struct {
	ClientName      string
	ApplicantName   string
	Email           string
	EmailLink       string
	ServiceType     string
	AppID           int64
	CountryName     string
	Rate            float64
	Addition        float64
	TransactionDate *time.Time
}

func (p TransactionRequest) Validate() error {
	if p.ClientName == "" {
		return errRequired("client_name")
	}
	if p.CountryName == "" {
		return errRequired("country_name")
	}
	if p.AppID == 0 {
		return errors.New("app_id must be a positive integer")
	}
	return nil
}

// TransactionFilter controls List queries.
type TransactionFilter struct {
	ClientName  *string
	CountryName *string
	DateFrom    *time.Time
	DateTo      *time.Time
	Paid        *bool
	Limit       int
	Offset      int
}

// TransactionSums are the aggregates shown next to a filtered listing.
type TransactionSums struct {
	SumAmount  float64 `json:"sum_amount"`
	SumAmountN float64 `json:"sum_amount_n"`
}
