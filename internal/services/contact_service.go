package services

import (
	"context"
	"fmt"

	"workledger/internal/models"
	"workledger/internal/repositories"
)

// ContactService manages the people attached to a company. The primary
// flag is exclusive: a company carries at most one primary contact.
type ContactService interface {
	Create(ctx context.Context, companyID int64, contact *models.CompanyContact) (*models.CompanyContact, error)
	GetByID(ctx context.Context, companyID, id int64) (*models.CompanyContact, error)
	ListByCompany(ctx context.Context, companyID int64, page, pageSize int) ([]models.CompanyContact, int64, error)
	Search(ctx context.Context, companyID int64, term string, page, pageSize int) ([]models.CompanyContact, int64, error)
	Update(ctx context.Context, companyID, id int64, contact *models.CompanyContact) (*models.CompanyContact, error)
	Delete(ctx context.Context, companyID, id int64) error
	PrimaryContact(ctx context.Context, companyID int64) (*models.CompanyContact, error)
	HasPrimaryContact(ctx context.Context, companyID int64) (bool, error)
}

type contactService struct {
	contacts  repositories.ContactRepository
	companies repositories.CompanyRepository
}

func NewContactService(contacts repositories.ContactRepository, companies repositories.CompanyRepository) ContactService {
	return &contactService{contacts: contacts, companies: companies}
}

func (s *contactService) requireCompany(ctx context.Context, companyID int64) error {
	exists, err := s.companies.ExistsByID(ctx, companyID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: id=%d", models.ErrCompanyNotFound, companyID)
	}
	return nil
}

func (s *contactService) Create(ctx context.Context, companyID int64, contact *models.CompanyContact) (*models.CompanyContact, error) {
	if err := s.requireCompany(ctx, companyID); err != nil {
		return nil, err
	}
	if contact.Name == "" {
		return nil, fmt.Errorf("%w: contact name is required", models.ErrValidation)
	}
	if contact.IsPrimary {
		taken, err := s.contacts.ExistsPrimary(ctx, companyID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: company %d already has a primary contact", models.ErrConflict, companyID)
		}
	}

	contact.CompanyID = companyID
	if err := s.contacts.Store(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *contactService) GetByID(ctx context.Context, companyID, id int64) (*models.CompanyContact, error) {
	if err := s.requireCompany(ctx, companyID); err != nil {
		return nil, err
	}
	return s.contacts.FindByCompanyAndID(ctx, companyID, id)
}

func (s *contactService) ListByCompany(ctx context.Context, companyID int64, page, pageSize int) ([]models.CompanyContact, int64, error) {
	if err := s.requireCompany(ctx, companyID); err != nil {
		return nil, 0, err
	}
	page, pageSize = normalizePage(page, pageSize)
	return s.contacts.FindByCompany(ctx, companyID, pageSize, page*pageSize)
}

func (s *contactService) Search(ctx context.Context, companyID int64, term string, page, pageSize int) ([]models.CompanyContact, int64, error) {
	if err := s.requireCompany(ctx, companyID); err != nil {
		return nil, 0, err
	}
	page, pageSize = normalizePage(page, pageSize)
	return s.contacts.Search(ctx, companyID, term, pageSize, page*pageSize)
}

func (s *contactService) Update(ctx context.Context, companyID, id int64, contact *models.CompanyContact) (*models.CompanyContact, error) {
	if err := s.requireCompany(ctx, companyID); err != nil {
		return nil, err
	}
	existing, err := s.contacts.FindByCompanyAndID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if contact.Name == "" {
		return nil, fmt.Errorf("%w: contact name is required", models.ErrValidation)
	}

	// Promoting to primary only conflicts when another contact already
	// holds the flag; keeping an existing primary primary is fine.
	if contact.IsPrimary && !existing.IsPrimary {
		taken, err := s.contacts.ExistsPrimary(ctx, companyID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: company %d already has a primary contact", models.ErrConflict, companyID)
		}
	}

	existing.Name = contact.Name
	existing.Email = contact.Email
	existing.Phone = contact.Phone
	existing.Role = contact.Role
	existing.IsPrimary = contact.IsPrimary

	if err := s.contacts.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *contactService) Delete(ctx context.Context, companyID, id int64) error {
	if err := s.requireCompany(ctx, companyID); err != nil {
		return err
	}
	if _, err := s.contacts.FindByCompanyAndID(ctx, companyID, id); err != nil {
		return err
	}
	return s.contacts.Delete(ctx, id)
}

func (s *contactService) PrimaryContact(ctx context.Context, companyID int64) (*models.CompanyContact, error) {
	if err := s.requireCompany(ctx, companyID); err != nil {
		return nil, err
	}
	return s.contacts.FindPrimary(ctx, companyID)
}

func (s *contactService) HasPrimaryContact(ctx context.Context, companyID int64) (bool, error) {
	if err := s.requireCompany(ctx, companyID); err != nil {
		return false, err
	}
	return s.contacts.ExistsPrimary(ctx, companyID)
}
