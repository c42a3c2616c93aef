package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"workledger/internal/models"
)

type ProjectRepository interface {
	Store(ctx context.Context, project *models.Project) error
	FindByID(ctx context.Context, id int64) (*models.Project, error)
	FindByCompanyAndID(ctx context.Context, companyID, id int64) (*models.Project, error)
	FindByCompany(ctx context.Context, companyID int64, limit, offset int) ([]models.Project, int64, error)
	FindByOwner(ctx context.Context, ownerEmail string, limit, offset int) ([]models.Project, int64, error)
	ExistsByCompanyAndName(ctx context.Context, companyID int64, name string) (bool, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	CountByCompany(ctx context.Context, companyID int64) (int64, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id int64) error
}

type projectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) ProjectRepository {
	return &projectRepository{db: db}
}

const projectColumns = `p.id, p.company_id, c.name, p.name, p.description, p.daily_rate,
       p.hourly_rate, p.currency, p.start_date, p.end_date, p.estimated_hours,
       p.status, p.owner_email, p.created_at, p.updated_at`

func scanProject(row interface{ Scan(dest ...interface{}) error }, p *models.Project) error {
	return row.Scan(
		&p.ID, &p.CompanyID, &p.CompanyName, &p.Name, &p.Description, &p.DailyRate,
		&p.HourlyRate, &p.Currency, &p.StartDate, &p.EndDate, &p.EstimatedHours,
		&p.Status, &p.OwnerEmail, &p.CreatedAt, &p.UpdatedAt,
	)
}

func (r *projectRepository) Store(ctx context.Context, project *models.Project) error {
	query := `
		INSERT INTO projects (
			company_id, name, description, daily_rate, hourly_rate, currency,
			start_date, end_date, estimated_hours, status, owner_email,
			created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,NOW(),NOW())
		RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query,
		project.CompanyID, project.Name, project.Description, project.DailyRate,
		project.HourlyRate, project.Currency, project.StartDate, project.EndDate,
		project.EstimatedHours, project.Status, project.OwnerEmail,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
}

func (r *projectRepository) FindByID(ctx context.Context, id int64) (*models.Project, error) {
	query := `SELECT ` + projectColumns + `
	FROM projects p JOIN companies c ON c.id = p.company_id
	WHERE p.id = $1`
	project := &models.Project{}
	err := scanProject(r.db.QueryRowContext(ctx, query, id), project)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: id=%d", models.ErrProjectNotFound, id)
		}
		return nil, err
	}
	return project, nil
}

func (r *projectRepository) FindByCompanyAndID(ctx context.Context, companyID, id int64) (*models.Project, error) {
	query := `SELECT ` + projectColumns + `
	FROM projects p JOIN companies c ON c.id = p.company_id
	WHERE p.company_id = $1 AND p.id = $2`
	project := &models.Project{}
	err := scanProject(r.db.QueryRowContext(ctx, query, companyID, id), project)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: id=%d company=%d", models.ErrProjectNotFound, id, companyID)
		}
		return nil, err
	}
	return project, nil
}

func (r *projectRepository) FindByCompany(ctx context.Context, companyID int64, limit, offset int) ([]models.Project, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM projects WHERE company_id = $1`, companyID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + projectColumns + `
	FROM projects p JOIN companies c ON c.id = p.company_id
	WHERE p.company_id = $1
	ORDER BY p.created_at DESC
	LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := scanProject(rows, &p); err != nil {
			return nil, 0, err
		}
		projects = append(projects, p)
	}
	return projects, total, rows.Err()
}

func (r *projectRepository) FindByOwner(ctx context.Context, ownerEmail string, limit, offset int) ([]models.Project, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM projects WHERE owner_email = $1`, ownerEmail).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + projectColumns + `
	FROM projects p JOIN companies c ON c.id = p.company_id
	WHERE p.owner_email = $1
	ORDER BY p.created_at DESC
	LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, ownerEmail, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := scanProject(rows, &p); err != nil {
			return nil, 0, err
		}
		projects = append(projects, p)
	}
	return projects, total, rows.Err()
}

func (r *projectRepository) ExistsByCompanyAndName(ctx context.Context, companyID int64, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM projects WHERE company_id = $1 AND name = $2)`,
		companyID, name).Scan(&exists)
	return exists, err
}

func (r *projectRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM projects WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *projectRepository) CountByCompany(ctx context.Context, companyID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM projects WHERE company_id = $1`, companyID).Scan(&count)
	return count, err
}

func (r *projectRepository) Update(ctx context.Context, project *models.Project) error {
	query := `
		UPDATE projects SET
			name=$1, description=$2, daily_rate=$3, hourly_rate=$4, currency=$5,
			start_date=$6, end_date=$7, estimated_hours=$8, status=$9, updated_at=NOW()
		WHERE id=$10`
	res, err := r.db.ExecContext(ctx, query,
		project.Name, project.Description, project.DailyRate, project.HourlyRate,
		project.Currency, project.StartDate, project.EndDate, project.EstimatedHours,
		project.Status, project.ID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: id=%d", models.ErrProjectNotFound, project.ID)
	}
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: id=%d", models.ErrProjectNotFound, id)
	}
	return nil
}
