package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"workledger/internal/models"
)

type ContactRepository interface {
	Store(ctx context.Context, contact *models.CompanyContact) error
	FindByCompanyAndID(ctx context.Context, companyID, id int64) (*models.CompanyContact, error)
	FindByCompany(ctx context.Context, companyID int64, limit, offset int) ([]models.CompanyContact, int64, error)
	// Search matches name or email, case-insensitive substring.
	Search(ctx context.Context, companyID int64, term string, limit, offset int) ([]models.CompanyContact, int64, error)
	FindPrimary(ctx context.Context, companyID int64) (*models.CompanyContact, error)
	ExistsPrimary(ctx context.Context, companyID int64) (bool, error)
	Update(ctx context.Context, contact *models.CompanyContact) error
	Delete(ctx context.Context, id int64) error
}

type contactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) ContactRepository {
	return &contactRepository{db: db}
}

const contactColumns = `id, company_id, name, email, phone, role, is_primary, created_at, updated_at`

func scanContact(row interface{ Scan(dest ...interface{}) error }, c *models.CompanyContact) error {
	return row.Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.Email, &c.Phone, &c.Role, &c.IsPrimary,
		&c.CreatedAt, &c.UpdatedAt,
	)
}

func (r *contactRepository) Store(ctx context.Context, contact *models.CompanyContact) error {
	query := `
		INSERT INTO company_contacts (company_id, name, email, phone, role, is_primary, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,NOW(),NOW())
		RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query,
		contact.CompanyID, contact.Name, contact.Email, contact.Phone,
		contact.Role, contact.IsPrimary,
	).Scan(&contact.ID, &contact.CreatedAt, &contact.UpdatedAt)
}

func (r *contactRepository) FindByCompanyAndID(ctx context.Context, companyID, id int64) (*models.CompanyContact, error) {
	query := `SELECT ` + contactColumns + ` FROM company_contacts WHERE company_id = $1 AND id = $2`
	contact := &models.CompanyContact{}
	err := scanContact(r.db.QueryRowContext(ctx, query, companyID, id), contact)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: id=%d company=%d", models.ErrContactNotFound, id, companyID)
		}
		return nil, err
	}
	return contact, nil
}

func (r *contactRepository) FindByCompany(ctx context.Context, companyID int64, limit, offset int) ([]models.CompanyContact, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM company_contacts WHERE company_id = $1`, companyID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + contactColumns + `
	FROM company_contacts
	WHERE company_id = $1
	ORDER BY is_primary DESC, name ASC
	LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var contacts []models.CompanyContact
	for rows.Next() {
		var c models.CompanyContact
		if err := scanContact(rows, &c); err != nil {
			return nil, 0, err
		}
		contacts = append(contacts, c)
	}
	return contacts, total, rows.Err()
}

func (r *contactRepository) Search(ctx context.Context, companyID int64, term string, limit, offset int) ([]models.CompanyContact, int64, error) {
	pattern := "%" + term + "%"
	where := `WHERE company_id = $1 AND (LOWER(name) LIKE LOWER($2) OR LOWER(email) LIKE LOWER($2))`

	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM company_contacts `+where, companyID, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + contactColumns + `
	FROM company_contacts ` + where + `
	ORDER BY is_primary DESC, name ASC
	LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, query, companyID, pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var contacts []models.CompanyContact
	for rows.Next() {
		var c models.CompanyContact
		if err := scanContact(rows, &c); err != nil {
			return nil, 0, err
		}
		contacts = append(contacts, c)
	}
	return contacts, total, rows.Err()
}

func (r *contactRepository) FindPrimary(ctx context.Context, companyID int64) (*models.CompanyContact, error) {
	query := `SELECT ` + contactColumns + ` FROM company_contacts WHERE company_id = $1 AND is_primary = TRUE`
	contact := &models.CompanyContact{}
	err := scanContact(r.db.QueryRowContext(ctx, query, companyID), contact)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: no primary contact for company=%d", models.ErrContactNotFound, companyID)
		}
		return nil, err
	}
	return contact, nil
}

func (r *contactRepository) ExistsPrimary(ctx context.Context, companyID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM company_contacts WHERE company_id = $1 AND is_primary = TRUE)`,
		companyID).Scan(&exists)
	return exists, err
}

func (r *contactRepository) Update(ctx context.Context, contact *models.CompanyContact) error {
	query := `
		UPDATE company_contacts SET
			name=$1, email=$2, phone=$3, role=$4, is_primary=$5, updated_at=NOW()
		WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query,
		contact.Name, contact.Email, contact.Phone, contact.Role, contact.IsPrimary, contact.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: id=%d", models.ErrContactNotFound, contact.ID)
	}
	return nil
}

func (r *contactRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM company_contacts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: id=%d", models.ErrContactNotFound, id)
	}
	return nil
}
