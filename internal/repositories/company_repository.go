package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"workledger/internal/models"
)

type CompanyRepository interface {
	Store(ctx context.Context, company *models.Company) error
	FindByID(ctx context.Context, id int64) (*models.Company, error)
	FindByOwner(ctx context.Context, ownerEmail string, limit, offset int) ([]models.Company, int64, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByTaxID(ctx context.Context, taxID string) (bool, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, company *models.Company) error
	Delete(ctx context.Context, id int64) error
}

type companyRepository struct {
	db *sql.DB
}

func NewCompanyRepository(db *sql.DB) CompanyRepository {
	return &companyRepository{db: db}
}

const companyColumns = `id, name, email, tax_id, address, status, owner_email, created_at, updated_at`

func scanCompany(row interface{ Scan(dest ...interface{}) error }, c *models.Company) error {
	return row.Scan(&c.ID, &c.Name, &c.Email, &c.TaxID, &c.Address, &c.Status,
		&c.OwnerEmail, &c.CreatedAt, &c.UpdatedAt)
}

func (r *companyRepository) Store(ctx context.Context, company *models.Company) error {
	query := `
		INSERT INTO companies (name, email, tax_id, address, status, owner_email, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,NOW(),NOW())
		RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query,
		company.Name, company.Email, company.TaxID, company.Address, company.Status, company.OwnerEmail,
	).Scan(&company.ID, &company.CreatedAt, &company.UpdatedAt)
}

func (r *companyRepository) FindByID(ctx context.Context, id int64) (*models.Company, error) {
	company := &models.Company{}
	err := scanCompany(r.db.QueryRowContext(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE id = $1`, id), company)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: id=%d", models.ErrCompanyNotFound, id)
		}
		return nil, err
	}
	return company, nil
}

func (r *companyRepository) FindByOwner(ctx context.Context, ownerEmail string, limit, offset int) ([]models.Company, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM companies WHERE owner_email = $1`, ownerEmail).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+companyColumns+` FROM companies
		 WHERE owner_email = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		ownerEmail, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var companies []models.Company
	for rows.Next() {
		var c models.Company
		if err := scanCompany(rows, &c); err != nil {
			return nil, 0, err
		}
		companies = append(companies, c)
	}
	return companies, total, rows.Err()
}

func (r *companyRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM companies WHERE name = $1)`, name).Scan(&exists)
	return exists, err
}

func (r *companyRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM companies WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

func (r *companyRepository) ExistsByTaxID(ctx context.Context, taxID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM companies WHERE tax_id = $1)`, taxID).Scan(&exists)
	return exists, err
}

func (r *companyRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM companies WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *companyRepository) Update(ctx context.Context, company *models.Company) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE companies SET name=$1, email=$2, tax_id=$3, address=$4, status=$5, updated_at=NOW()
		WHERE id=$6`,
		company.Name, company.Email, company.TaxID, company.Address, company.Status, company.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: id=%d", models.ErrCompanyNotFound, company.ID)
	}
	return nil
}

func (r *companyRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: id=%d", models.ErrCompanyNotFound, id)
	}
	return nil
}
