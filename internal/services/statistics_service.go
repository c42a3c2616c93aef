package services

import (
	"context"

	"workledger/internal/models"
	"workledger/internal/repositories"
)

// StatisticsService aggregates a user's recorded work per company and
// per project.
type StatisticsService interface {
	CompanyStats(ctx context.Context, ownerEmail string) ([]models.CompanyTaskStats, error)
	ProjectCostsByMonth(ctx context.Context, ownerEmail string) ([]models.ProjectMonthlyCost, error)
}

type statisticsService struct {
	companies repositories.CompanyRepository
	projects  repositories.ProjectRepository
	tasks     repositories.TaskRepository
}

func NewStatisticsService(companies repositories.CompanyRepository, projects repositories.ProjectRepository, tasks repositories.TaskRepository) StatisticsService {
	return &statisticsService{companies: companies, projects: projects, tasks: tasks}
}

// statsCompanyLimit caps the company scan per owner; well above the
// cardinality a single freelancer realistically tracks.
const statsCompanyLimit = 500

func (s *statisticsService) CompanyStats(ctx context.Context, ownerEmail string) ([]models.CompanyTaskStats, error) {
	companies, _, err := s.companies.FindByOwner(ctx, ownerEmail, statsCompanyLimit, 0)
	if err != nil {
		return nil, err
	}

	stats := make([]models.CompanyTaskStats, 0, len(companies))
	for _, company := range companies {
		projectCount, err := s.projects.CountByCompany(ctx, company.ID)
		if err != nil {
			return nil, err
		}
		count, hours, amount, err := s.tasks.CompanyTotals(ctx, company.ID)
		if err != nil {
			return nil, err
		}
		stats = append(stats, models.CompanyTaskStats{
			CompanyID:    company.ID,
			CompanyName:  company.Name,
			ProjectCount: projectCount,
			TaskCount:    count,
			TotalHours:   hours,
			TotalAmount:  amount,
		})
	}
	return stats, nil
}

// ProjectCostsByMonth reports hours*rate per project per calendar
// month, the feed for the cost chart.
func (s *statisticsService) ProjectCostsByMonth(ctx context.Context, ownerEmail string) ([]models.ProjectMonthlyCost, error) {
	return s.tasks.MonthlyCostsByOwner(ctx, ownerEmail)
}
