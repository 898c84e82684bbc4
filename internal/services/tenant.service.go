package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bdauda29-ux/bdj-ledger/internal/model"
	"github.com/bdauda29-ux/bdj-ledger/internal/repository"
)

type TenantRepository interface {
	Create(ctx context.Context, name string) (*model.Tenant, error)
	GetByID(ctx context.Context, id int64) (*model.Tenant, error)
	List(ctx context.Context) ([]*model.Tenant, error)
	Rename(ctx context.Context, id int64, name string) error
	Clear(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type TenantService struct {
	tenantRepo TenantRepository
}

func NewTenantService(tenantRepo TenantRepository) *TenantService {
	return &TenantService{
		tenantRepo: tenantRepo,
	}
}

func (s *TenantService) Create(ctx context.Context, name string) (*model.Tenant, error) {
	if name == "" {
		return nil, errors.New("name is required")
	}
	tenant, err := s.tenantRepo.Create(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrNameExists
		}
		return nil, fmt.Errorf("create tenant: %w", err)
	}
	return tenant, nil
}

func (s *TenantService) Get(ctx context.Context, id int64) (*model.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return tenant, nil
}

func (s *TenantService) List(ctx context.Context) ([]*model.Tenant, error) {
	return s.tenantRepo.List(ctx)
}

func (s *TenantService) Rename(ctx context.Context, id int64, name string) error {
	if name == "" {
		return errors.New("name is required")
	}
	err := s.tenantRepo.Rename(ctx, id, name)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrTenantNotFound
	case errors.Is(err, repository.ErrDuplicateKey):
		return ErrNameExists
	}
	return err
}

// Clear wipes the tenant's clients, transactions, history and bin in one
// transaction. Countries stay.
func (s *TenantService) Clear(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.tenantRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.tenantRepo.Clear(ctx, id)
	})
}

// Delete removes the tenant and everything it owns.
func (s *TenantService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.tenantRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.tenantRepo.Delete(ctx, id)
	})
}
