package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bdauda29-ux/bdj-ledger/internal/model"
	"github.com/bdauda29-ux/bdj-ledger/internal/repository"
)

type CountryRepository interface {
	Create(ctx context.Context, c *model.Country) (*model.Country, error)
	Update(ctx context.Context, c *model.Country) error
	Delete(ctx context.Context, tenantID, id int64) error
	GetByName(ctx context.Context, tenantID int64, name string) (*model.Country, error)
	List(ctx context.Context, tenantID int64) ([]*model.Country, error)
}

type CountryService struct {
	countryRepo CountryRepository
}

func NewCountryService(countryRepo CountryRepository) *CountryService {
	return &CountryService{
		countryRepo: countryRepo,
	}
}

// ResolvePrice looks up the current visa price for a country. Create and
// edit snapshot this value into the transaction row; later price changes do
// not touch existing rows.
func (s *CountryService) ResolvePrice(ctx context.Context, tenantID int64, countryName string) (float64, error) {
	country, err := s.countryRepo.GetByName(ctx, tenantID, countryName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrCountryNotFound
		}
		return 0, fmt.Errorf("resolve price: %w", err)
	}
	return country.Price, nil
}

func (s *CountryService) Create(ctx context.Context, tenantID int64, p model.CountryCreateRequest) (*model.Country, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	country, err := s.countryRepo.Create(ctx, &model.Country{
		Name:      p.Name,
		Price:     p.Price,
		Continent: p.Continent,
		TenantID:  tenantID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrNameExists
		}
		return nil, fmt.Errorf("create country: %w", err)
	}
	return country, nil
}

func (s *CountryService) Update(ctx context.Context, tenantID, id int64, p model.CountryCreateRequest) error {
	if err := p.Validate(); err != nil {
		return err
	}
	err := s.countryRepo.Update(ctx, &model.Country{
		ID:        id,
		Name:      p.Name,
		Price:     p.Price,
		Continent: p.Continent,
		TenantID:  tenantID,
	})
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrCountryNotFound
	case errors.Is(err, repository.ErrDuplicateKey):
		return ErrNameExists
	}
	return err
}

func (s *CountryService) Delete(ctx context.Context, tenantID, id int64) error {
	return s.countryRepo.Delete(ctx, tenantID, id)
}

func (s *CountryService) List(ctx context.Context, tenantID int64) ([]*model.Country, error) {
	return s.countryRepo.List(ctx, tenantID)
}
