package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"workledger/internal/models"
)

func TestCompanyServiceCreate_SetsActiveStatus(t *testing.T) {
	t.Parallel()

	svc := NewCompanyService(newFakeCompanyRepo())

	created, err := svc.Create(context.Background(), &models.Company{Name: "Acme", OwnerEmail: "dev@example.com"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Status != models.CompanyActive {
		t.Fatalf("expected ACTIVE status, got %q", created.Status)
	}
}

func TestCompanyServiceCreate_RejectsDuplicates(t *testing.T) {
	t.Parallel()

	repo := newFakeCompanyRepo()
	svc := NewCompanyService(repo)

	if _, err := svc.Create(context.Background(), &models.Company{
		Name: "Acme", Email: "billing@acme.test", TaxID: "IT123", OwnerEmail: "dev@example.com",
	}); err != nil {
		t.Fatalf("failed to prepare company: %v", err)
	}

	cases := []models.Company{
		{Name: "Acme"},
		{Name: "Other", Email: "billing@acme.test"},
		{Name: "Other", TaxID: "IT123"},
	}
	for _, c := range cases {
		c.OwnerEmail = "dev@example.com"
		if _, err := svc.Create(context.Background(), &c); !errors.Is(err, models.ErrConflict) {
			t.Fatalf("expected ErrConflict for %+v, got %v", c, err)
		}
	}
}

func TestCompanyServiceUpdate_SelfMatchIsNotAConflict(t *testing.T) {
	t.Parallel()

	repo := newFakeCompanyRepo()
	svc := NewCompanyService(repo)

	created, err := svc.Create(context.Background(), &models.Company{
		Name: "Acme", Email: "billing@acme.test", OwnerEmail: "dev@example.com",
	})
	if err != nil {
		t.Fatalf("failed to prepare company: %v", err)
	}

	// Same name and email, new address: must go through.
	updated, err := svc.Update(context.Background(), created.ID, &models.Company{
		Name: "Acme", Email: "billing@acme.test", Address: "Via Roma 1",
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Address != "Via Roma 1" {
		t.Fatalf("expected address to be updated, got %q", updated.Address)
	}
}

func TestCompanyServiceDelete_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewCompanyService(newFakeCompanyRepo())
	if err := svc.Delete(context.Background(), 99); !errors.Is(err, models.ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound, got %v", err)
	}
}

func TestProjectServiceCreate_UniquePerCompany(t *testing.T) {
	t.Parallel()

	companies := newFakeCompanyRepo()
	projects := newFakeProjectRepo()
	svc := NewProjectService(projects, companies)

	company := &models.Company{Name: "Acme", OwnerEmail: "dev@example.com"}
	if err := companies.Store(context.Background(), company); err != nil {
		t.Fatalf("failed to prepare company: %v", err)
	}

	created, err := svc.Create(context.Background(), company.ID, &models.Project{Name: "Portal", OwnerEmail: "dev@example.com"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Status != models.ProjectActive {
		t.Fatalf("expected ACTIVE status, got %q", created.Status)
	}
	if created.CompanyName != "Acme" {
		t.Fatalf("expected company name to be filled, got %q", created.CompanyName)
	}

	if _, err := svc.Create(context.Background(), company.ID, &models.Project{Name: "Portal"}); !errors.Is(err, models.ErrConflict) {
		t.Fatalf("expected ErrConflict on duplicate name, got %v", err)
	}
}

func TestProjectServiceCreate_CompanyNotFound(t *testing.T) {
	t.Parallel()

	svc := NewProjectService(newFakeProjectRepo(), newFakeCompanyRepo())
	_, err := svc.Create(context.Background(), 42, &models.Project{Name: "Portal"})
	if !errors.Is(err, models.ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound, got %v", err)
	}
}

func TestStatisticsService_CompanyStats(t *testing.T) {
	t.Parallel()

	companies := newFakeCompanyRepo()
	projects := newFakeProjectRepo()
	tasks := newFakeTaskRepo()
	svc := NewStatisticsService(companies, projects, tasks)

	acme := &models.Company{Name: "Acme", OwnerEmail: "dev@example.com"}
	globex := &models.Company{Name: "Globex", OwnerEmail: "dev@example.com"}
	other := &models.Company{Name: "Initech", OwnerEmail: "someone@example.com"}
	for _, c := range []*models.Company{acme, globex, other} {
		if err := companies.Store(context.Background(), c); err != nil {
			t.Fatalf("failed to prepare company: %v", err)
		}
	}
	for _, name := range []string{"Portal", "Backoffice"} {
		p := &models.Project{CompanyID: acme.ID, Name: name, OwnerEmail: "dev@example.com"}
		if err := projects.Store(context.Background(), p); err != nil {
			t.Fatalf("failed to prepare project: %v", err)
		}
	}
	tasks.totals[acme.ID] = companyTotals{count: 3, hours: 12, amount: 600}
	tasks.totals[globex.ID] = companyTotals{count: 1, hours: 2, amount: 100}

	stats, err := svc.CompanyStats(context.Background(), "dev@example.com")
	if err != nil {
		t.Fatalf("CompanyStats returned error: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected stats for the owner's 2 companies, got %d", len(stats))
	}
	if stats[0].CompanyName != "Acme" || stats[0].TaskCount != 3 || stats[0].TotalAmount != 600 {
		t.Fatalf("unexpected first entry: %+v", stats[0])
	}
	if stats[0].ProjectCount != 2 {
		t.Fatalf("expected 2 projects for Acme, got %d", stats[0].ProjectCount)
	}
	if stats[1].CompanyName != "Globex" || stats[1].TotalHours != 2 || stats[1].ProjectCount != 0 {
		t.Fatalf("unexpected second entry: %+v", stats[1])
	}
}

func TestStatisticsService_ProjectCostsByMonth(t *testing.T) {
	t.Parallel()

	tasks := newFakeTaskRepo()
	svc := NewStatisticsService(newFakeCompanyRepo(), newFakeProjectRepo(), tasks)

	seed := []models.Task{
		{ProjectName: "Portal", StartDate: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), HoursWorked: 4, RateUsed: 50, OwnerEmail: "dev@example.com"},
		{ProjectName: "Portal", StartDate: time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC), HoursWorked: 2, RateUsed: 50, OwnerEmail: "dev@example.com"},
		{ProjectName: "Portal", StartDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), HoursWorked: 8, RateUsed: 50, OwnerEmail: "dev@example.com"},
		{ProjectName: "Backoffice", StartDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), HoursWorked: 3, RateUsed: 60, OwnerEmail: "dev@example.com"},
		{ProjectName: "Portal", StartDate: time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), HoursWorked: 5, RateUsed: 50, OwnerEmail: "someone@example.com"},
	}
	for i := range seed {
		if err := tasks.Store(context.Background(), &seed[i]); err != nil {
			t.Fatalf("failed to prepare task: %v", err)
		}
	}

	costs, err := svc.ProjectCostsByMonth(context.Background(), "dev@example.com")
	if err != nil {
		t.Fatalf("ProjectCostsByMonth returned error: %v", err)
	}

	want := []models.ProjectMonthlyCost{
		{ProjectName: "Backoffice", Month: "2025-03", TotalCost: 180},
		{ProjectName: "Portal", Month: "2025-03", TotalCost: 300},
		{ProjectName: "Portal", Month: "2025-04", TotalCost: 400},
	}
	if len(costs) != len(want) {
		t.Fatalf("expected %d buckets, got %d: %+v", len(want), len(costs), costs)
	}
	for i, w := range want {
		if costs[i] != w {
			t.Fatalf("bucket %d: expected %+v, got %+v", i, w, costs[i])
		}
	}
}
