package services

import (
	"context"
	"fmt"
	"time"

	"workledger/internal/models"
	"workledger/internal/repositories"
)

// MirrorNotifier receives ledger mutations destined for the external
// mirror. Implementations must never block the caller and never report
// failure back; mirror.Syncer is the production implementation.
type MirrorNotifier interface {
	TaskCreated(task models.Task)
	TaskUpdated(task models.Task)
	TaskDeleted(ticketID string)
}

// TaskDefaults are applied to fields left blank at creation.
type TaskDefaults struct {
	Type     string
	Currency string
}

// TaskService is the ledger engine: task lifecycle, filtered listing and
// the billing/payment state machine.
type TaskService interface {
	Create(ctx context.Context, projectID int64, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	Update(ctx context.Context, id int64, task *models.Task) (*models.Task, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, ownerEmail string, query models.TaskQuery, page, pageSize int) ([]models.Task, int64, error)
	ListByProjectAndDateRange(ctx context.Context, projectID int64, from, to time.Time, page, pageSize int) ([]models.Task, int64, error)
	UpdateBillingStatus(ctx context.Context, updates []models.BillingStatusUpdate) ([]models.Task, error)
	UpdatePaymentStatus(ctx context.Context, updates []models.PaymentStatusUpdate) ([]models.Task, error)
}

type taskService struct {
	tasks    repositories.TaskRepository
	projects repositories.ProjectRepository
	mirror   MirrorNotifier
	tickets  *TicketGenerator
	defaults TaskDefaults
}

func NewTaskService(
	tasks repositories.TaskRepository,
	projects repositories.ProjectRepository,
	mirror MirrorNotifier,
	tickets *TicketGenerator,
	defaults TaskDefaults,
) TaskService {
	return &taskService{
		tasks:    tasks,
		projects: projects,
		mirror:   mirror,
		tickets:  tickets,
		defaults: defaults,
	}
}

func validateTask(task *models.Task) error {
	if task.Title == "" {
		return fmt.Errorf("%w: title is required", models.ErrValidation)
	}
	if task.StartDate.IsZero() {
		return fmt.Errorf("%w: start date is required", models.ErrValidation)
	}
	if task.EndDate != nil && task.EndDate.Before(task.StartDate) {
		return fmt.Errorf("%w: end date before start date", models.ErrValidation)
	}
	if task.HoursWorked <= 0 {
		return fmt.Errorf("%w: hours worked must be positive", models.ErrValidation)
	}
	if task.RateUsed <= 0 {
		return fmt.Errorf("%w: rate must be positive", models.ErrValidation)
	}
	// Empty means "use the configured default"; listing filters on type
	// deliberately skip this check.
	switch task.Type {
	case "", models.TaskTypeCorrective, models.TaskTypeEvolutive:
	default:
		return fmt.Errorf("%w: unknown task type %q", models.ErrValidation, task.Type)
	}
	return nil
}

// scrubDerived clears the billing/payment companion fields whenever the
// corresponding flag is off. Holds the ledger invariant regardless of
// what the caller supplied.
func scrubDerived(task *models.Task) {
	if !task.IsBilled {
		task.BillingDate = nil
		task.InvoiceID = nil
	}
	if !task.IsPaid {
		task.PaymentDate = nil
	}
}

func (s *taskService) Create(ctx context.Context, projectID int64, task *models.Task) (*models.Task, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := validateTask(task); err != nil {
		return nil, err
	}

	task.ProjectID = project.ID
	task.ProjectName = project.Name
	if task.TicketID == "" {
		ticketID, err := s.tickets.Generate(ctx)
		if err != nil {
			return nil, err
		}
		task.TicketID = ticketID
	}
	if task.Type == "" {
		task.Type = s.defaults.Type
	}
	if task.Currency == "" {
		task.Currency = s.defaults.Currency
	}
	scrubDerived(task)

	if err := s.tasks.Store(ctx, task); err != nil {
		return nil, err
	}
	s.mirror.TaskCreated(*task)
	return task, nil
}

func (s *taskService) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	return s.tasks.FindByID(ctx, id)
}

func (s *taskService) Update(ctx context.Context, id int64, task *models.Task) (*models.Task, error) {
	current, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	project, err := s.projects.FindByID(ctx, task.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := validateTask(task); err != nil {
		return nil, err
	}

	task.ID = current.ID
	task.OwnerEmail = current.OwnerEmail
	task.ProjectName = project.Name
	task.CreatedAt = current.CreatedAt
	if task.TicketID == "" {
		task.TicketID = current.TicketID
	}
	scrubDerived(task)

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	task.UpdatedAt = time.Now()
	s.mirror.TaskUpdated(*task)
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, id int64) error {
	current, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}
	if current.TicketID != "" {
		s.mirror.TaskDeleted(current.TicketID)
	}
	return nil
}

func (s *taskService) ListByProjectAndDateRange(ctx context.Context, projectID int64, from, to time.Time, page, pageSize int) ([]models.Task, int64, error) {
	exists, err := s.projects.ExistsByID(ctx, projectID)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, fmt.Errorf("%w: id=%d", models.ErrProjectNotFound, projectID)
	}
	page, pageSize = normalizePage(page, pageSize)
	return s.tasks.FindByProjectAndDateRange(ctx, projectID, from, to, pageSize, page*pageSize)
}

// UpdateBillingStatus applies each transition as an independent unit:
// the first failure aborts the remaining items, already committed items
// stay committed. Reversals scrub billing date and invoice id no matter
// what the caller passed.
func (s *taskService) UpdateBillingStatus(ctx context.Context, updates []models.BillingStatusUpdate) ([]models.Task, error) {
	updated := make([]models.Task, 0, len(updates))
	for _, u := range updates {
		if u.IsBilled && u.BillingDate == nil {
			return updated, fmt.Errorf("%w: billing date required for task %d", models.ErrValidation, u.TaskID)
		}
		task, err := s.tasks.FindByID(ctx, u.TaskID)
		if err != nil {
			return updated, err
		}

		billingDate, invoiceID := u.BillingDate, u.InvoiceID
		if !u.IsBilled {
			billingDate, invoiceID = nil, nil
		}
		if err := s.tasks.UpdateBilling(ctx, u.TaskID, u.IsBilled, billingDate, invoiceID); err != nil {
			return updated, err
		}

		task.IsBilled = u.IsBilled
		task.BillingDate = billingDate
		task.InvoiceID = invoiceID
		task.UpdatedAt = time.Now()
		updated = append(updated, *task)
		s.mirror.TaskUpdated(*task)
	}
	return updated, nil
}

func (s *taskService) UpdatePaymentStatus(ctx context.Context, updates []models.PaymentStatusUpdate) ([]models.Task, error) {
	updated := make([]models.Task, 0, len(updates))
	for _, u := range updates {
		if u.IsPaid && u.PaymentDate == nil {
			return updated, fmt.Errorf("%w: payment date required for task %d", models.ErrValidation, u.TaskID)
		}
		task, err := s.tasks.FindByID(ctx, u.TaskID)
		if err != nil {
			return updated, err
		}

		paymentDate := u.PaymentDate
		if !u.IsPaid {
			paymentDate = nil
		}
		if err := s.tasks.UpdatePayment(ctx, u.TaskID, u.IsPaid, paymentDate); err != nil {
			return updated, err
		}

		task.IsPaid = u.IsPaid
		task.PaymentDate = paymentDate
		task.UpdatedAt = time.Now()
		updated = append(updated, *task)
		s.mirror.TaskUpdated(*task)
	}
	return updated, nil
}
