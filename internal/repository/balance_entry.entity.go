package repository

import (
	"time"

	"github.com/bdauda29-ux/bdj-ledger/internal/model"
)

type BalanceEntryEntity struct {
	ID            int64      `db:"id"             gorm:"primaryKey;autoIncrement;column:id"`
	ClientID      int64      `db:"client_id"      gorm:"column:client_id;not null;index"`
	TransactionID *int64     `db:"transaction_id" gorm:"column:transaction_id;index"`
	Amount        float64    `db:"amount"         gorm:"column:amount;not null"`
	Type          string     `db:"type"           gorm:"column:type;not null"`
	BalanceBefore float64    `db:"balance_before" gorm:"column:balance_before;not null"`
	BalanceAfter  float64    `db:"balance_after"  gorm:"column:balance_after;not null"`
	Description   string     `db:"description"    gorm:"column:description"`
	Timestamp     *time.Time `db:"timestamp"      gorm:"column:timestamp;autoCreateTime"`
	TenantID      int64      `db:"model_id"       gorm:"column:model_id;not null;index"`
}

func (BalanceEntryEntity) TableName() string {
	return "balance_history"
}

func toBalanceEntryEntity(m *model.BalanceEntry) *BalanceEntryEntity {
	if m == nil {
		return nil
	}
	e := &BalanceEntryEntity{
		ID:            m.ID,
		ClientID:      m.ClientID,
		TransactionID: m.TransactionID,
		Amount:        m.Amount,
		Type:          string(m.Type),
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		Description:   m.Description,
		TenantID:      m.TenantID,
	}
	if !m.Timestamp.IsZero() {
		ts := m.Timestamp
		e.Timestamp = &ts
	}
	return e
}

func toBalanceEntryModel(e *BalanceEntryEntity) *model.BalanceEntry {
	if e == nil {
		return nil
	}
	m := &model.BalanceEntry{
		ID:            e.ID,
		ClientID:      e.ClientID,
		TransactionID: e.TransactionID,
		Amount:        e.Amount,
		Type:          model.EntryType(e.Type),
		BalanceBefore: e.BalanceBefore,
		BalanceAfter:  e.BalanceAfter,
		Description:   e.Description,
		TenantID:      e.TenantID,
	}
	if e.Timestamp != nil {
		m.Timestamp = *e.Timestamp
	}
	return m
}

func toBalanceEntryModels(entities []*BalanceEntryEntity) []*model.BalanceEntry {
	if entities == nil {
		return nil
	}
	models := make([]*model.BalanceEntry, len(entities))
	for i, e := range entities {
		models[i] = toBalanceEntryModel(e)
	}
	return models
}
