package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bdauda29-ux/bdj-ledger/internal/model"
	"github.com/bdauda29-ux/bdj-ledger/internal/repository"
)

type ClientRepository interface {
	Create(ctx context.Context, c *model.Client) (*model.Client, error)
	Update(ctx context.Context, c *model.Client) error
	Delete(ctx context.Context, tenantID, id int64) error
	GetByID(ctx context.Context, tenantID, id int64) (*model.Client, error)
	GetByName(ctx context.Context, tenantID int64, name string) (*model.Client, error)
	List(ctx context.Context, tenantID int64) ([]*model.Client, error)
}

type ClientService struct {
	clientRepo ClientRepository
	ledger     *Ledger
}

func NewClientService(clientRepo ClientRepository, ledger *Ledger) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		ledger:     ledger,
	}
}

func (s *ClientService) Create(ctx context.Context, tenantID int64, p model.ClientCreateRequest) (*model.Client, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	client, err := s.clientRepo.Create(ctx, &model.Client{
		Name:     p.Name,
		Phone:    p.Phone,
		TenantID: tenantID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrNameExists
		}
		return nil, fmt.Errorf("create client: %w", err)
	}
	return client, nil
}

func (s *ClientService) Update(ctx context.Context, tenantID, id int64, p model.ClientCreateRequest) error {
	if err := p.Validate(); err != nil {
		return err
	}
	err := s.clientRepo.Update(ctx, &model.Client{
		ID:       id,
		Name:     p.Name,
		Phone:    p.Phone,
		TenantID: tenantID,
	})
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrClientNotFound
	case errors.Is(err, repository.ErrDuplicateKey):
		return ErrNameExists
	}
	return err
}

// Delete removes the client row only. Transactions and history rows keep
// referencing the old name; the lifecycle flows tolerate the dangling
// reference.
func (s *ClientService) Delete(ctx context.Context, tenantID, id int64) error {
	return s.clientRepo.Delete(ctx, tenantID, id)
}

func (s *ClientService) Get(ctx context.Context, tenantID, id int64) (*model.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return client, nil
}

func (s *ClientService) List(ctx context.Context, tenantID int64) ([]*model.Client, error) {
	return s.clientRepo.List(ctx, tenantID)
}

// AdjustBalance credits or debits a client by hand, with a history row.
func (s *ClientService) AdjustBalance(ctx context.Context, tenantID, id int64, amount float64, kind model.EntryType, description string) (*model.BalanceEntry, error) {
	return s.ledger.Adjust(ctx, tenantID, id, amount, kind, description)
}

// History returns the client's balance entries, newest first.
func (s *ClientService) History(ctx context.Context, tenantID, id int64) ([]*model.BalanceEntry, error) {
	if _, err := s.Get(ctx, tenantID, id); err != nil {
		return nil, err
	}
	return s.ledger.History(ctx, tenantID, id)
}
