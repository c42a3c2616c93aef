package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"workledger/internal/models"
)

type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id int64) (*models.Task, error)
	// FindByOwner applies the store-native predicates (owner, optional
	// project, optional free-text search) with created_at DESC ordering.
	// limit <= 0 fetches the whole result set.
	FindByOwner(ctx context.Context, ownerEmail string, projectID *int64, search string, limit, offset int) ([]models.Task, int64, error)
	FindByProjectAndDateRange(ctx context.Context, projectID int64, from, to time.Time, limit, offset int) ([]models.Task, int64, error)
	TicketIDExists(ctx context.Context, ticketID string) (bool, error)
	Update(ctx context.Context, task *models.Task) error
	UpdateBilling(ctx context.Context, id int64, isBilled bool, billingDate *time.Time, invoiceID *string) error
	UpdatePayment(ctx context.Context, id int64, isPaid bool, paymentDate *time.Time) error
	Delete(ctx context.Context, id int64) error
	CompanyTotals(ctx context.Context, companyID int64) (count int64, hours float64, amount float64, err error)
	// MonthlyCostsByOwner sums hours*rate per project per calendar month
	// of the start date, across all of the owner's projects.
	MonthlyCostsByOwner(ctx context.Context, ownerEmail string) ([]models.ProjectMonthlyCost, error)
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `t.id, t.project_id, p.name, t.ticket_id, t.title, t.description,
       t.start_date, t.end_date, t.hours_worked, t.rate_used, t.type, t.currency,
       t.is_billed, t.is_paid, t.billing_date, t.payment_date, t.invoice_id,
       t.referenced_task_id, t.notes, t.owner_email, t.created_at, t.updated_at`

func scanTask(row interface{ Scan(dest ...interface{}) error }, t *models.Task) error {
	return row.Scan(
		&t.ID, &t.ProjectID, &t.ProjectName, &t.TicketID, &t.Title, &t.Description,
		&t.StartDate, &t.EndDate, &t.HoursWorked, &t.RateUsed, &t.Type, &t.Currency,
		&t.IsBilled, &t.IsPaid, &t.BillingDate, &t.PaymentDate, &t.InvoiceID,
		&t.ReferencedTaskID, &t.Notes, &t.OwnerEmail, &t.CreatedAt, &t.UpdatedAt,
	)
}

func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (
			project_id, ticket_id, title, description, start_date, end_date,
			hours_worked, rate_used, type, currency, is_billed, is_paid,
			billing_date, payment_date, invoice_id, referenced_task_id, notes,
			owner_email, created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,NOW(),NOW())
		RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query,
		task.ProjectID, task.TicketID, task.Title, task.Description, task.StartDate, task.EndDate,
		task.HoursWorked, task.RateUsed, task.Type, task.Currency, task.IsBilled, task.IsPaid,
		task.BillingDate, task.PaymentDate, task.InvoiceID, task.ReferencedTaskID, task.Notes,
		task.OwnerEmail,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

func (r *taskRepository) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	query := `SELECT ` + taskColumns + `
	FROM tasks t JOIN projects p ON p.id = t.project_id
	WHERE t.id = $1`
	task := &models.Task{}
	err := scanTask(r.db.QueryRowContext(ctx, query, id), task)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: id=%d", models.ErrTaskNotFound, id)
		}
		return nil, err
	}
	return task, nil
}

// nativeConditions builds the WHERE clause shared by FindByOwner and its
// COUNT. The search term is a case-insensitive substring match across
// title, description, ticket id and the start date rendered dd/MM/yyyy.
func nativeConditions(ownerEmail string, projectID *int64, search string) ([]string, []interface{}) {
	conditions := []string{"t.owner_email = $1"}
	args := []interface{}{ownerEmail}

	if projectID != nil {
		args = append(args, *projectID)
		conditions = append(conditions, fmt.Sprintf("t.project_id = $%d", len(args)))
	}
	if search != "" {
		args = append(args, "%"+strings.ToLower(search)+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			`(LOWER(t.title) LIKE $%d OR LOWER(t.description) LIKE $%d OR LOWER(t.ticket_id) LIKE $%d OR to_char(t.start_date, 'DD/MM/YYYY') LIKE $%d)`,
			n, n, n, n))
	}
	return conditions, args
}

func (r *taskRepository) FindByOwner(ctx context.Context, ownerEmail string, projectID *int64, search string, limit, offset int) ([]models.Task, int64, error) {
	conditions, args := nativeConditions(ownerEmail, projectID, search)
	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM tasks t` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + taskColumns + `
	FROM tasks t JOIN projects p ON p.id = t.project_id` + where +
		` ORDER BY t.created_at DESC, t.id DESC`
	if limit > 0 {
		args = append(args, limit, offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := scanTask(rows, &t); err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, t)
	}
	return tasks, total, rows.Err()
}

func (r *taskRepository) FindByProjectAndDateRange(ctx context.Context, projectID int64, from, to time.Time, limit, offset int) ([]models.Task, int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks t WHERE t.project_id = $1 AND t.start_date BETWEEN $2 AND $3`,
		projectID, from, to).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + taskColumns + `
	FROM tasks t JOIN projects p ON p.id = t.project_id
	WHERE t.project_id = $1 AND t.start_date BETWEEN $2 AND $3
	ORDER BY t.start_date ASC, t.id ASC`
	args := []interface{}{projectID, from, to}
	if limit > 0 {
		args = append(args, limit, offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := scanTask(rows, &t); err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, t)
	}
	return tasks, total, rows.Err()
}

func (r *taskRepository) TicketIDExists(ctx context.Context, ticketID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM tasks WHERE ticket_id = $1)`, ticketID).Scan(&exists)
	return exists, err
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks SET
			project_id=$1, ticket_id=$2, title=$3, description=$4, start_date=$5,
			end_date=$6, hours_worked=$7, rate_used=$8, type=$9, currency=$10,
			is_billed=$11, is_paid=$12, billing_date=$13, payment_date=$14,
			invoice_id=$15, referenced_task_id=$16, notes=$17, updated_at=NOW()
		WHERE id=$18`
	res, err := r.db.ExecContext(ctx, query,
		task.ProjectID, task.TicketID, task.Title, task.Description, task.StartDate,
		task.EndDate, task.HoursWorked, task.RateUsed, task.Type, task.Currency,
		task.IsBilled, task.IsPaid, task.BillingDate, task.PaymentDate,
		task.InvoiceID, task.ReferencedTaskID, task.Notes, task.ID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: id=%d", models.ErrTaskNotFound, task.ID)
	}
	return nil
}

func (r *taskRepository) UpdateBilling(ctx context.Context, id int64, isBilled bool, billingDate *time.Time, invoiceID *string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET is_billed=$1, billing_date=$2, invoice_id=$3, updated_at=NOW() WHERE id=$4`,
		isBilled, billingDate, invoiceID, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: id=%d", models.ErrTaskNotFound, id)
	}
	return nil
}

func (r *taskRepository) UpdatePayment(ctx context.Context, id int64, isPaid bool, paymentDate *time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET is_paid=$1, payment_date=$2, updated_at=NOW() WHERE id=$3`,
		isPaid, paymentDate, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: id=%d", models.ErrTaskNotFound, id)
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: id=%d", models.ErrTaskNotFound, id)
	}
	return nil
}

func (r *taskRepository) MonthlyCostsByOwner(ctx context.Context, ownerEmail string) ([]models.ProjectMonthlyCost, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.name,
		       to_char(t.start_date, 'YYYY-MM') AS month,
		       SUM(t.hours_worked * t.rate_used)
		FROM tasks t
		JOIN projects p ON p.id = t.project_id
		WHERE p.owner_email = $1
		GROUP BY p.name, month
		ORDER BY p.name ASC, month ASC`, ownerEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var costs []models.ProjectMonthlyCost
	for rows.Next() {
		var c models.ProjectMonthlyCost
		if err := rows.Scan(&c.ProjectName, &c.Month, &c.TotalCost); err != nil {
			return nil, err
		}
		costs = append(costs, c)
	}
	return costs, rows.Err()
}

func (r *taskRepository) CompanyTotals(ctx context.Context, companyID int64) (int64, float64, float64, error) {
	var (
		count  int64
		hours  float64
		amount float64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(t.id),
		       COALESCE(SUM(t.hours_worked), 0),
		       COALESCE(SUM(t.hours_worked * t.rate_used), 0)
		FROM tasks t
		JOIN projects p ON p.id = t.project_id
		WHERE p.company_id = $1`, companyID).Scan(&count, &hours, &amount)
	return count, hours, amount, err
}
