package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bdauda29-ux/bdj-ledger/internal/model"
	"github.com/bdauda29-ux/bdj-ledger/internal/repository"
	"github.com/bdauda29-ux/bdj-ledger/pkg/prom"
)

type LedgerClientRepository interface {
	GetForUpdate(ctx context.Context, tenantID, id int64) (*model.Client, error)
	SetBalance(ctx context.Context, id int64, balance float64) error
	AddBalance(ctx context.Context, id int64, delta float64) error
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type LedgerEntryRepository interface {
	Insert(ctx context.Context, entry *model.BalanceEntry) (*model.BalanceEntry, error)
	ListByClient(ctx context.Context, tenantID, clientID int64) ([]*model.BalanceEntry, error)
	DeleteByTransaction(ctx context.Context, transactionID int64) error
}

// Ledger is the only code path that mutates client balances. Every mutation
// goes through Apply and leaves a history row, except the two legacy escape
// hatches CreditUnrecorded and DeleteEntries used by the delete and undo-pay
// flows.
type Ledger struct {
	clientRepo LedgerClientRepository
	entryRepo  LedgerEntryRepository
}

func NewLedger(clientRepo LedgerClientRepository, entryRepo LedgerEntryRepository) *Ledger {
	return &Ledger{
		clientRepo: clientRepo,
		entryRepo:  entryRepo,
	}
}

// Apply moves a client balance and appends the matching history row. The
// caller must already hold the ambient DB transaction. Overdraw is allowed:
// the only insufficient-balance check lives in the pay flow.
func (l *Ledger) Apply(ctx context.Context, tenantID, clientID int64, amount float64, kind model.EntryType, transactionID *int64, description string) (*model.BalanceEntry, error) {
	client, err := l.clientRepo.GetForUpdate(ctx, tenantID, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("lock client: %w", err)
	}

	before := client.Balance
	after := before + amount
	if kind == model.EntryDebit {
		after = before - amount
	}

	if err := l.clientRepo.SetBalance(ctx, client.ID, after); err != nil {
		return nil, fmt.Errorf("write balance: %w", err)
	}

	entry, err := l.entryRepo.Insert(ctx, &model.BalanceEntry{
		ClientID:      client.ID,
		TransactionID: transactionID,
		Amount:        amount,
		Type:          kind,
		BalanceBefore: before,
		BalanceAfter:  after,
		Description:   description,
		TenantID:      tenantID,
	})
	if err != nil {
		return nil, fmt.Errorf("append history: %w", err)
	}

	prom.IncCounterVec(prom.SystemLedger, prom.MetricBalanceEntries, string(kind))
	return entry, nil
}

// CreditUnrecorded raises a balance without a history row. The delete flow
// refunds paid transactions this way; the audit trail for the transaction is
// wiped in the same operation.
func (l *Ledger) CreditUnrecorded(ctx context.Context, tenantID, clientID int64, amount float64) error {
	if _, err := l.clientRepo.GetForUpdate(ctx, tenantID, clientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("lock client: %w", err)
	}
	if err := l.clientRepo.AddBalance(ctx, clientID, amount); err != nil {
		return fmt.Errorf("credit balance: %w", err)
	}
	return nil
}

// DeleteEntries wipes every history row referencing a transaction.
func (l *Ledger) DeleteEntries(ctx context.Context, transactionID int64) error {
	return l.entryRepo.DeleteByTransaction(ctx, transactionID)
}

// Adjust is the manual credit/debit endpoint. Unlike Apply it validates the
// amount, because it is driven directly by operator input.
func (l *Ledger) Adjust(ctx context.Context, tenantID, clientID int64, amount float64, kind model.EntryType, description string) (*model.BalanceEntry, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	var entry *model.BalanceEntry
	err := l.clientRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		entry, err = l.Apply(ctx, tenantID, clientID, amount, kind, nil, description)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// History returns a client's balance entries, newest first.
func (l *Ledger) History(ctx context.Context, tenantID, clientID int64) ([]*model.BalanceEntry, error) {
	return l.entryRepo.ListByClient(ctx, tenantID, clientID)
}
