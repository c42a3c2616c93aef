package services

import (
	"context"
	"fmt"

	"workledger/internal/models"
	"workledger/internal/repositories"
)

type CompanyService interface {
	Create(ctx context.Context, company *models.Company) (*models.Company, error)
	GetByID(ctx context.Context, id int64) (*models.Company, error)
	ListByOwner(ctx context.Context, ownerEmail string, page, pageSize int) ([]models.Company, int64, error)
	Update(ctx context.Context, id int64, company *models.Company) (*models.Company, error)
	Delete(ctx context.Context, id int64) error
}

type companyService struct {
	companies repositories.CompanyRepository
}

func NewCompanyService(companies repositories.CompanyRepository) CompanyService {
	return &companyService{companies: companies}
}

func (s *companyService) checkUniqueness(ctx context.Context, company *models.Company, current *models.Company) error {
	if company.Name != "" && (current == nil || company.Name != current.Name) {
		taken, err := s.companies.ExistsByName(ctx, company.Name)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: company name %q already exists", models.ErrConflict, company.Name)
		}
	}
	if company.Email != "" && (current == nil || company.Email != current.Email) {
		taken, err := s.companies.ExistsByEmail(ctx, company.Email)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: company email %q already exists", models.ErrConflict, company.Email)
		}
	}
	if company.TaxID != "" && (current == nil || company.TaxID != current.TaxID) {
		taken, err := s.companies.ExistsByTaxID(ctx, company.TaxID)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: company tax id %q already exists", models.ErrConflict, company.TaxID)
		}
	}
	return nil
}

func (s *companyService) Create(ctx context.Context, company *models.Company) (*models.Company, error) {
	if company.Name == "" {
		return nil, fmt.Errorf("%w: company name is required", models.ErrValidation)
	}
	if err := s.checkUniqueness(ctx, company, nil); err != nil {
		return nil, err
	}
	company.Status = models.CompanyActive
	if err := s.companies.Store(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *companyService) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	return s.companies.FindByID(ctx, id)
}

func (s *companyService) ListByOwner(ctx context.Context, ownerEmail string, page, pageSize int) ([]models.Company, int64, error) {
	page, pageSize = normalizePage(page, pageSize)
	return s.companies.FindByOwner(ctx, ownerEmail, pageSize, page*pageSize)
}

func (s *companyService) Update(ctx context.Context, id int64, company *models.Company) (*models.Company, error) {
	existing, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkUniqueness(ctx, company, existing); err != nil {
		return nil, err
	}

	if company.Name != "" {
		existing.Name = company.Name
	}
	existing.Email = company.Email
	existing.TaxID = company.TaxID
	existing.Address = company.Address
	if company.Status != "" {
		existing.Status = company.Status
	}

	if err := s.companies.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *companyService) Delete(ctx context.Context, id int64) error {
	exists, err := s.companies.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: id=%d", models.ErrCompanyNotFound, id)
	}
	return s.companies.Delete(ctx, id)
}
