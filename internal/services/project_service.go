package services

import (
	"context"
	"fmt"

	"workledger/internal/models"
	"workledger/internal/repositories"
)

type ProjectService interface {
	Create(ctx context.Context, companyID int64, project *models.Project) (*models.Project, error)
	GetByID(ctx context.Context, companyID, id int64) (*models.Project, error)
	ListByCompany(ctx context.Context, companyID int64, page, pageSize int) ([]models.Project, int64, error)
	ListByOwner(ctx context.Context, ownerEmail string, page, pageSize int) ([]models.Project, int64, error)
	Update(ctx context.Context, companyID, id int64, project *models.Project) (*models.Project, error)
	Delete(ctx context.Context, companyID, id int64) error
}

type projectService struct {
	projects  repositories.ProjectRepository
	companies repositories.CompanyRepository
}

func NewProjectService(projects repositories.ProjectRepository, companies repositories.CompanyRepository) ProjectService {
	return &projectService{projects: projects, companies: companies}
}

func (s *projectService) Create(ctx context.Context, companyID int64, project *models.Project) (*models.Project, error) {
	company, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if project.Name == "" {
		return nil, fmt.Errorf("%w: project name is required", models.ErrValidation)
	}

	taken, err := s.projects.ExistsByCompanyAndName(ctx, companyID, project.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: project %q already exists for company %d", models.ErrConflict, project.Name, companyID)
	}

	project.CompanyID = company.ID
	project.CompanyName = company.Name
	if project.Status == "" {
		project.Status = models.ProjectActive
	}
	if err := s.projects.Store(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) GetByID(ctx context.Context, companyID, id int64) (*models.Project, error) {
	return s.projects.FindByCompanyAndID(ctx, companyID, id)
}

func (s *projectService) ListByCompany(ctx context.Context, companyID int64, page, pageSize int) ([]models.Project, int64, error) {
	exists, err := s.companies.ExistsByID(ctx, companyID)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, fmt.Errorf("%w: id=%d", models.ErrCompanyNotFound, companyID)
	}
	page, pageSize = normalizePage(page, pageSize)
	return s.projects.FindByCompany(ctx, companyID, pageSize, page*pageSize)
}

func (s *projectService) ListByOwner(ctx context.Context, ownerEmail string, page, pageSize int) ([]models.Project, int64, error) {
	page, pageSize = normalizePage(page, pageSize)
	return s.projects.FindByOwner(ctx, ownerEmail, pageSize, page*pageSize)
}

func (s *projectService) Update(ctx context.Context, companyID, id int64, project *models.Project) (*models.Project, error) {
	existing, err := s.projects.FindByCompanyAndID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if project.Name != "" && project.Name != existing.Name {
		taken, err := s.projects.ExistsByCompanyAndName(ctx, companyID, project.Name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: project %q already exists for company %d", models.ErrConflict, project.Name, companyID)
		}
		existing.Name = project.Name
	}
	existing.Description = project.Description
	existing.DailyRate = project.DailyRate
	existing.HourlyRate = project.HourlyRate
	existing.Currency = project.Currency
	existing.StartDate = project.StartDate
	existing.EndDate = project.EndDate
	existing.EstimatedHours = project.EstimatedHours
	if project.Status != "" {
		existing.Status = project.Status
	}

	if err := s.projects.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *projectService) Delete(ctx context.Context, companyID, id int64) error {
	if _, err := s.projects.FindByCompanyAndID(ctx, companyID, id); err != nil {
		return err
	}
	return s.projects.Delete(ctx, id)
}
