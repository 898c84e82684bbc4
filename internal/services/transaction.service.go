package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bdauda29-ux/bdj-ledger/internal/model"
	"github.com/bdauda29-ux/bdj-ledger/internal/repository"
	"github.com/bdauda29-ux/bdj-ledger/pkg/prom"
)

func trackOp(op string) func() {
	start := time.Now()
	return func() {
		prom.ObserveHistogramVec(prom.SystemLedger, prom.MetricOperationDuration, time.Since(start).Seconds(), op)
	}
}

type TransactionRepository interface {
	Create(ctx context.Context, txn *model.Transaction) (*model.Transaction, error)
	Update(ctx context.Context, txn *model.Transaction) error
	Delete(ctx context.Context, tenantID, id int64) error
	GetByID(ctx context.Context, tenantID, id int64) (*model.Transaction, error)
	AppIDExists(ctx context.Context, tenantID, appID, excludeID int64) (bool, error)
	SetPaid(ctx context.Context, id int64, paid bool) error
	List(ctx context.Context, tenantID int64, f model.TransactionFilter) ([]*model.Transaction, *model.TransactionSums, error)
	ListByClient(ctx context.Context, tenantID int64, clientName string) ([]*model.Transaction, error)
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type TransactionClientRepository interface {
	GetByNameForUpdate(ctx context.Context, tenantID int64, name string) (*model.Client, error)
}

type BinRepository interface {
	Stash(ctx context.Context, snapshot *model.DeletedTransaction) (*model.DeletedTransaction, error)
	Get(ctx context.Context, tenantID, id int64) (*model.DeletedTransaction, error)
	List(ctx context.Context, tenantID int64) ([]*model.DeletedTransaction, error)
	Purge(ctx context.Context, tenantID, id int64) error
}

type PriceResolver interface {
	ResolvePrice(ctx context.Context, tenantID int64, countryName string) (float64, error)
}

// Policy carries behavior switches kept for compatibility with the system
// this service replaced.
type Policy struct {
	// MutateBalanceOnEditRegardlessOfPaid makes Edit reverse and reapply
	// balance effects even for unpaid transactions. The replaced system
	// behaved this way, so it defaults to on.
	MutateBalanceOnEditRegardlessOfPaid bool
}

type TransactionService struct {
	txnRepo    TransactionRepository
	clientRepo TransactionClientRepository
	binRepo    BinRepository
	pricing    PriceResolver
	ledger     *Ledger
	policy     Policy
}

func NewTransactionService(txnRepo TransactionRepository, clientRepo TransactionClientRepository, binRepo BinRepository, pricing PriceResolver, ledger *Ledger, policy Policy) *TransactionService {
	return &TransactionService{
		txnRepo:    txnRepo,
		clientRepo: clientRepo,
		binRepo:    binRepo,
		pricing:    pricing,
		ledger:     ledger,
		policy:     policy,
	}
}

// Create inserts an unpaid transaction. The client balance is untouched
// until Pay.
func (s *TransactionService) Create(ctx context.Context, tenantID int64, p model.TransactionRequest) (*model.Transaction, error) {
	defer trackOp("create")()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var created *model.Transaction
	err := s.txnRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		price, err := s.pricing.ResolvePrice(ctx, tenantID, p.CountryName)
		if err != nil {
			return err
		}

		exists, err := s.txnRepo.AppIDExists(ctx, tenantID, p.AppID, 0)
		if err != nil {
			return fmt.Errorf("check app id: %w", err)
		}
		if exists {
			return ErrDuplicateAppID
		}

		amount, amountN := ComputeAmounts(price, p.Addition, p.Rate)

		serviceType := p.ServiceType
		if serviceType == "" {
			serviceType = model.DefaultServiceType
		}

		created, err = s.txnRepo.Create(ctx, &model.Transaction{
			ClientName:      p.ClientName,
			ApplicantName:   p.ApplicantName,
			Email:           p.Email,
			EmailLink:       p.EmailLink,
			ServiceType:     serviceType,
			AppID:           p.AppID,
			CountryName:     p.CountryName,
			CountryPrice:    price,
			Rate:            p.Rate,
			Addition:        p.Addition,
			Amount:          amount,
			AmountN:         amountN,
			TransactionDate: p.TransactionDate,
			TenantID:        tenantID,
		})
		if errors.Is(err, repository.ErrDuplicateKey) {
			return ErrDuplicateAppID
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	prom.IncCounter(prom.SystemLedger, prom.MetricTransactionsCreated)
	return created, nil
}

// Pay debits amount_n from the client and marks the transaction paid. This
// is the single place an insufficient balance is rejected.
func (s *TransactionService) Pay(ctx context.Context, tenantID, id int64) error {
	defer trackOp("pay")()
	err := s.txnRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		txn, err := s.getTxn(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if txn.IsPaid {
			return ErrAlreadyPaid
		}

		client, err := s.clientRepo.GetByNameForUpdate(ctx, tenantID, txn.ClientName)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrClientNotFound
			}
			return fmt.Errorf("lock client: %w", err)
		}
		if txn.AmountN > client.Balance {
			return ErrInsufficientBalance
		}

		desc := fmt.Sprintf("Payment for application #%d (%s)", txn.AppID, txn.CountryName)
		if _, err := s.ledger.Apply(ctx, tenantID, client.ID, txn.AmountN, model.EntryDebit, &txn.ID, desc); err != nil {
			return err
		}
		return s.txnRepo.SetPaid(ctx, txn.ID, true)
	})
	if err != nil {
		return err
	}

	prom.IncCounter(prom.SystemLedger, prom.MetricTransactionsPaid)
	return nil
}

// UndoPay refunds the payment and removes its history rows, so the ledger
// keeps only the net effect of the transaction.
func (s *TransactionService) UndoPay(ctx context.Context, tenantID, id int64) error {
	defer trackOp("undo_pay")()
	return s.txnRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		txn, err := s.getTxn(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if !txn.IsPaid {
			return ErrNotPaid
		}

		client, err := s.clientRepo.GetByNameForUpdate(ctx, tenantID, txn.ClientName)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrClientNotFound
			}
			return fmt.Errorf("lock client: %w", err)
		}

		desc := fmt.Sprintf("Payment undone for application #%d", txn.AppID)
		if _, err := s.ledger.Apply(ctx, tenantID, client.ID, txn.AmountN, model.EntryCredit, &txn.ID, desc); err != nil {
			return err
		}
		if err := s.txnRepo.SetPaid(ctx, txn.ID, false); err != nil {
			return err
		}
		return s.ledger.DeleteEntries(ctx, txn.ID)
	})
}

// Edit recomputes amounts from the new inputs and rebalances: the old
// amount_n is credited back to the original client and the new amount_n is
// debited from the (possibly different) client named in the request. The
// original client having vanished is tolerated; the new one is required.
func (s *TransactionService) Edit(ctx context.Context, tenantID, id int64, p model.TransactionRequest) (*model.Transaction, error) {
	defer trackOp("edit")()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var updated *model.Transaction
	err := s.txnRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		txn, err := s.getTxn(ctx, tenantID, id)
		if err != nil {
			return err
		}

		price, err := s.pricing.ResolvePrice(ctx, tenantID, p.CountryName)
		if err != nil {
			return err
		}

		exists, err := s.txnRepo.AppIDExists(ctx, tenantID, p.AppID, txn.ID)
		if err != nil {
			return fmt.Errorf("check app id: %w", err)
		}
		if exists {
			return ErrDuplicateAppID
		}

		amount, amountN := ComputeAmounts(price, p.Addition, p.Rate)

		mutateBalance := s.policy.MutateBalanceOnEditRegardlessOfPaid || txn.IsPaid

		if mutateBalance {
			oldClient, err := s.clientRepo.GetByNameForUpdate(ctx, tenantID, txn.ClientName)
			switch {
			case err == nil:
				desc := fmt.Sprintf("Reversal for edited application #%d", txn.AppID)
				if _, err := s.ledger.Apply(ctx, tenantID, oldClient.ID, txn.AmountN, model.EntryCredit, &txn.ID, desc); err != nil {
					return err
				}
			case errors.Is(err, repository.ErrNotFound):
				// original client is gone; nothing to reverse
			default:
				return fmt.Errorf("lock client: %w", err)
			}
		}

		serviceType := p.ServiceType
		if serviceType == "" {
			serviceType = txn.ServiceType
		}

		updated = &model.Transaction{
			ID:              txn.ID,
			ClientName:      p.ClientName,
			ApplicantName:   p.ApplicantName,
			Email:           p.Email,
			EmailLink:       p.EmailLink,
			ServiceType:     serviceType,
			AppID:           p.AppID,
			CountryName:     p.CountryName,
			CountryPrice:    price,
			Rate:            p.Rate,
			Addition:        p.Addition,
			Amount:          amount,
			AmountN:         amountN,
			TransactionDate: p.TransactionDate,
			IsPaid:          txn.IsPaid,
			TenantID:        tenantID,
		}
		if updated.TransactionDate == nil {
			updated.TransactionDate = txn.TransactionDate
		}
		if err := s.txnRepo.Update(ctx, updated); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return ErrDuplicateAppID
			}
			return err
		}

		if mutateBalance {
			newClient, err := s.clientRepo.GetByNameForUpdate(ctx, tenantID, p.ClientName)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return ErrClientNotFound
				}
				return fmt.Errorf("lock client: %w", err)
			}
			desc := fmt.Sprintf("Charge for edited application #%d (%s)", p.AppID, p.CountryName)
			if _, err := s.ledger.Apply(ctx, tenantID, newClient.ID, amountN, model.EntryDebit, &txn.ID, desc); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	prom.IncCounter(prom.SystemLedger, prom.MetricTransactionsEdited)
	return updated, nil
}

// Delete refunds a paid transaction without writing a history row, then
// moves the row into the recoverable bin and wipes its audit trail.
func (s *TransactionService) Delete(ctx context.Context, tenantID, id int64) (*model.DeletedTransaction, error) {
	defer trackOp("delete")()
	var stashed *model.DeletedTransaction
	err := s.txnRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		txn, err := s.getTxn(ctx, tenantID, id)
		if err != nil {
			return err
		}

		if txn.IsPaid {
			client, err := s.clientRepo.GetByNameForUpdate(ctx, tenantID, txn.ClientName)
			switch {
			case err == nil:
				if err := s.ledger.CreditUnrecorded(ctx, tenantID, client.ID, txn.AmountN); err != nil {
					return err
				}
			case errors.Is(err, repository.ErrNotFound):
				// client already deleted; the refund has nowhere to go
			default:
				return fmt.Errorf("lock client: %w", err)
			}
		}

		stashed, err = s.binRepo.Stash(ctx, model.Snapshot(txn))
		if err != nil {
			return fmt.Errorf("stash snapshot: %w", err)
		}
		if err := s.ledger.DeleteEntries(ctx, txn.ID); err != nil {
			return err
		}
		return s.txnRepo.Delete(ctx, tenantID, txn.ID)
	})
	if err != nil {
		return nil, err
	}

	prom.IncCounter(prom.SystemLedger, prom.MetricTransactionsDeleted)
	return stashed, nil
}

// Restore reinserts a binned transaction, re-debiting the client when the
// snapshot was paid. The payment state survives the round trip.
func (s *TransactionService) Restore(ctx context.Context, tenantID, binID int64) (*model.Transaction, error) {
	defer trackOp("restore")()
	var restored *model.Transaction
	err := s.txnRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		snapshot, err := s.binRepo.Get(ctx, tenantID, binID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrBinEntryNotFound
			}
			return fmt.Errorf("read bin: %w", err)
		}

		restored, err = s.txnRepo.Create(ctx, snapshot.Revive())
		if err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return ErrDuplicateAppID
			}
			return fmt.Errorf("revive transaction: %w", err)
		}
		if restored.IsPaid {
			client, err := s.clientRepo.GetByNameForUpdate(ctx, tenantID, restored.ClientName)
			switch {
			case err == nil:
				desc := fmt.Sprintf("Restored application #%d from bin", restored.AppID)
				if _, err := s.ledger.Apply(ctx, tenantID, client.ID, restored.AmountN, model.EntryDebit, &restored.ID, desc); err != nil {
					return err
				}
			case errors.Is(err, repository.ErrNotFound):
				// client gone; restore the row without the charge
			default:
				return fmt.Errorf("lock client: %w", err)
			}
		}
		return s.binRepo.Purge(ctx, tenantID, binID)
	})
	if err != nil {
		return nil, err
	}

	prom.IncCounter(prom.SystemLedger, prom.MetricTransactionsRestored)
	return restored, nil
}

// Purge removes a bin entry permanently. No balance effects.
func (s *TransactionService) Purge(ctx context.Context, tenantID, binID int64) error {
	if _, err := s.binRepo.Get(ctx, tenantID, binID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBinEntryNotFound
		}
		return err
	}
	return s.binRepo.Purge(ctx, tenantID, binID)
}

func (s *TransactionService) Get(ctx context.Context, tenantID, id int64) (*model.Transaction, error) {
	return s.getTxn(ctx, tenantID, id)
}

func (s *TransactionService) List(ctx context.Context, tenantID int64, f model.TransactionFilter) ([]*model.Transaction, *model.TransactionSums, error) {
	return s.txnRepo.List(ctx, tenantID, f)
}

func (s *TransactionService) ListByClient(ctx context.Context, tenantID int64, clientName string) ([]*model.Transaction, error) {
	return s.txnRepo.ListByClient(ctx, tenantID, clientName)
}

func (s *TransactionService) ListBin(ctx context.Context, tenantID int64) ([]*model.DeletedTransaction, error) {
	return s.binRepo.List(ctx, tenantID)
}

func (s *TransactionService) getTxn(ctx context.Context, tenantID, id int64) (*model.Transaction, error) {
	txn, err := s.txnRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return txn, nil
}
