package model

import "time"

type EntryType string

const (
	EntryCredit EntryType = "credit"
	EntryDebit  EntryType = "debit"
)

// BalanceEntry is one row of the append-only balance_history audit log.
// balance_after always equals balance_before +amount for credits and
// -amount for debits.
type BalanceEntry struct {
	ID            int64     `json:"id"`
	ClientID      int64     `json:"client_id"`
	TransactionID *int64    `json:"transaction_id"`
	Amount        float64   `json:"amount"`
	Type          EntryType `json:"type"`
	BalanceBefore float64   `json:"balance_before"`
	BalanceAfter  float64   `json:"balance_after"`
	Description   string    `json:"description"`
	Timestamp     time.Time `json:"timestamp"`
	TenantID      int64     `json:"model_id"`
}

// Signed returns the entry's contribution to the running balance.
func (e BalanceEntry) Signed() float64 {
	if e.Type == EntryDebit {
		return -e.Amount
	}
	return e.Amount
}
