package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"workledger/internal/models"
)

type fakeTaskRepo struct {
	tasks  map[int64]*models.Task
	nextID int64
	totals map[int64]companyTotals

	failBillingFor int64
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[int64]*models.Task{}, totals: map[int64]companyTotals{}}
}

func (r *fakeTaskRepo) Store(ctx context.Context, task *models.Task) error {
	r.nextID++
	task.ID = r.nextID
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	cp := *task
	r.tasks[task.ID] = &cp
	return nil
}

func (r *fakeTaskRepo) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, fmt.Errorf("%w: id=%d", models.ErrTaskNotFound, id)
	}
	cp := *t
	return &cp, nil
}

// ordered returns tasks in descending id order, the fake's stand-in for
// created_at DESC.
func (r *fakeTaskRepo) ordered() []models.Task {
	out := make([]models.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

// matchesSearch mimics the store predicate: case-insensitive substring
// over title, description, ticket id and the start date rendered
// dd/MM/yyyy.
func matchesSearch(t models.Task, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	for _, hay := range []string{
		strings.ToLower(t.Title),
		strings.ToLower(t.Description),
		strings.ToLower(t.TicketID),
		t.StartDate.Format("02/01/2006"),
	} {
		if strings.Contains(hay, needle) {
			return true
		}
	}
	return false
}

func (r *fakeTaskRepo) FindByOwner(ctx context.Context, ownerEmail string, projectID *int64, search string, limit, offset int) ([]models.Task, int64, error) {
	matched := make([]models.Task, 0)
	for _, t := range r.ordered() {
		if t.OwnerEmail != ownerEmail {
			continue
		}
		if projectID != nil && t.ProjectID != *projectID {
			continue
		}
		if !matchesSearch(t, search) {
			continue
		}
		matched = append(matched, t)
	}
	total := int64(len(matched))
	if limit <= 0 {
		return matched, total, nil
	}
	if offset >= len(matched) {
		return []models.Task{}, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeTaskRepo) FindByProjectAndDateRange(ctx context.Context, projectID int64, from, to time.Time, limit, offset int) ([]models.Task, int64, error) {
	matched := make([]models.Task, 0)
	for _, t := range r.ordered() {
		if t.ProjectID != projectID {
			continue
		}
		if t.StartDate.Before(from) || t.StartDate.After(to) {
			continue
		}
		matched = append(matched, t)
	}
	return matched, int64(len(matched)), nil
}

func (r *fakeTaskRepo) TicketIDExists(ctx context.Context, ticketID string) (bool, error) {
	for _, t := range r.tasks {
		if t.TicketID == ticketID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTaskRepo) Update(ctx context.Context, task *models.Task) error {
	if _, ok := r.tasks[task.ID]; !ok {
		return fmt.Errorf("%w: id=%d", models.ErrTaskNotFound, task.ID)
	}
	cp := *task
	r.tasks[task.ID] = &cp
	return nil
}

func (r *fakeTaskRepo) UpdateBilling(ctx context.Context, id int64, isBilled bool, billingDate *time.Time, invoiceID *string) error {
	if r.failBillingFor == id {
		return fmt.Errorf("store rejected billing update for id=%d", id)
	}
	t, ok := r.tasks[id]
	if !ok {
		return fmt.Errorf("%w: id=%d", models.ErrTaskNotFound, id)
	}
	t.IsBilled = isBilled
	t.BillingDate = billingDate
	t.InvoiceID = invoiceID
	return nil
}

func (r *fakeTaskRepo) UpdatePayment(ctx context.Context, id int64, isPaid bool, paymentDate *time.Time) error {
	t, ok := r.tasks[id]
	if !ok {
		return fmt.Errorf("%w: id=%d", models.ErrTaskNotFound, id)
	}
	t.IsPaid = isPaid
	t.PaymentDate = paymentDate
	return nil
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.tasks[id]; !ok {
		return fmt.Errorf("%w: id=%d", models.ErrTaskNotFound, id)
	}
	delete(r.tasks, id)
	return nil
}

type companyTotals struct {
	count  int64
	hours  float64
	amount float64
}

func (r *fakeTaskRepo) CompanyTotals(ctx context.Context, companyID int64) (int64, float64, float64, error) {
	t := r.totals[companyID]
	return t.count, t.hours, t.amount, nil
}

func (r *fakeTaskRepo) MonthlyCostsByOwner(ctx context.Context, ownerEmail string) ([]models.ProjectMonthlyCost, error) {
	sums := map[string]*models.ProjectMonthlyCost{}
	for _, t := range r.tasks {
		if t.OwnerEmail != ownerEmail {
			continue
		}
		month := t.StartDate.Format("2006-01")
		key := t.ProjectName + "|" + month
		if _, ok := sums[key]; !ok {
			sums[key] = &models.ProjectMonthlyCost{ProjectName: t.ProjectName, Month: month}
		}
		sums[key].TotalCost += t.HoursWorked * t.RateUsed
	}
	out := make([]models.ProjectMonthlyCost, 0, len(sums))
	for _, c := range sums {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProjectName != out[j].ProjectName {
			return out[i].ProjectName < out[j].ProjectName
		}
		return out[i].Month < out[j].Month
	})
	return out, nil
}

type fakeProjectRepo struct {
	projects map[int64]*models.Project
	nextID   int64
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: map[int64]*models.Project{}}
}

func (r *fakeProjectRepo) Store(ctx context.Context, project *models.Project) error {
	r.nextID++
	project.ID = r.nextID
	cp := *project
	r.projects[project.ID] = &cp
	return nil
}

func (r *fakeProjectRepo) FindByID(ctx context.Context, id int64) (*models.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, fmt.Errorf("%w: id=%d", models.ErrProjectNotFound, id)
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProjectRepo) FindByCompanyAndID(ctx context.Context, companyID, id int64) (*models.Project, error) {
	p, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.CompanyID != companyID {
		return nil, fmt.Errorf("%w: id=%d", models.ErrProjectNotFound, id)
	}
	return p, nil
}

func (r *fakeProjectRepo) FindByCompany(ctx context.Context, companyID int64, limit, offset int) ([]models.Project, int64, error) {
	out := make([]models.Project, 0)
	for _, p := range r.projects {
		if p.CompanyID == companyID {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeProjectRepo) FindByOwner(ctx context.Context, ownerEmail string, limit, offset int) ([]models.Project, int64, error) {
	out := make([]models.Project, 0)
	for _, p := range r.projects {
		if p.OwnerEmail == ownerEmail {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeProjectRepo) ExistsByCompanyAndName(ctx context.Context, companyID int64, name string) (bool, error) {
	for _, p := range r.projects {
		if p.CompanyID == companyID && p.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProjectRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	_, ok := r.projects[id]
	return ok, nil
}

func (r *fakeProjectRepo) CountByCompany(ctx context.Context, companyID int64) (int64, error) {
	var count int64
	for _, p := range r.projects {
		if p.CompanyID == companyID {
			count++
		}
	}
	return count, nil
}

func (r *fakeProjectRepo) Update(ctx context.Context, project *models.Project) error {
	if _, ok := r.projects[project.ID]; !ok {
		return fmt.Errorf("%w: id=%d", models.ErrProjectNotFound, project.ID)
	}
	cp := *project
	r.projects[project.ID] = &cp
	return nil
}

func (r *fakeProjectRepo) Delete(ctx context.Context, id int64) error {
	delete(r.projects, id)
	return nil
}

type fakeCompanyRepo struct {
	companies map[int64]*models.Company
	nextID    int64
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: map[int64]*models.Company{}}
}

func (r *fakeCompanyRepo) Store(ctx context.Context, company *models.Company) error {
	r.nextID++
	company.ID = r.nextID
	cp := *company
	r.companies[company.ID] = &cp
	return nil
}

func (r *fakeCompanyRepo) FindByID(ctx context.Context, id int64) (*models.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, fmt.Errorf("%w: id=%d", models.ErrCompanyNotFound, id)
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCompanyRepo) FindByOwner(ctx context.Context, ownerEmail string, limit, offset int) ([]models.Company, int64, error) {
	out := make([]models.Company, 0)
	for id := int64(1); id <= r.nextID; id++ {
		if c, ok := r.companies[id]; ok && c.OwnerEmail == ownerEmail {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeCompanyRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	for _, c := range r.companies {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCompanyRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, c := range r.companies {
		if c.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCompanyRepo) ExistsByTaxID(ctx context.Context, taxID string) (bool, error) {
	for _, c := range r.companies {
		if c.TaxID == taxID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCompanyRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	_, ok := r.companies[id]
	return ok, nil
}

func (r *fakeCompanyRepo) Update(ctx context.Context, company *models.Company) error {
	if _, ok := r.companies[company.ID]; !ok {
		return fmt.Errorf("%w: id=%d", models.ErrCompanyNotFound, company.ID)
	}
	cp := *company
	r.companies[company.ID] = &cp
	return nil
}

func (r *fakeCompanyRepo) Delete(ctx context.Context, id int64) error {
	delete(r.companies, id)
	return nil
}

type fakeContactRepo struct {
	contacts map[int64]*models.CompanyContact
	nextID   int64
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{contacts: map[int64]*models.CompanyContact{}}
}

func (r *fakeContactRepo) Store(ctx context.Context, contact *models.CompanyContact) error {
	r.nextID++
	contact.ID = r.nextID
	contact.CreatedAt = time.Now()
	contact.UpdatedAt = contact.CreatedAt
	cp := *contact
	r.contacts[contact.ID] = &cp
	return nil
}

func (r *fakeContactRepo) FindByCompanyAndID(ctx context.Context, companyID, id int64) (*models.CompanyContact, error) {
	c, ok := r.contacts[id]
	if !ok || c.CompanyID != companyID {
		return nil, fmt.Errorf("%w: id=%d company=%d", models.ErrContactNotFound, id, companyID)
	}
	cp := *c
	return &cp, nil
}

// byCompany returns a company's contacts ordered primary-first then by
// name, the store's list order.
func (r *fakeContactRepo) byCompany(companyID int64) []models.CompanyContact {
	out := make([]models.CompanyContact, 0)
	for _, c := range r.contacts {
		if c.CompanyID == companyID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsPrimary != out[j].IsPrimary {
			return out[i].IsPrimary
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (r *fakeContactRepo) FindByCompany(ctx context.Context, companyID int64, limit, offset int) ([]models.CompanyContact, int64, error) {
	out := r.byCompany(companyID)
	return out, int64(len(out)), nil
}

func (r *fakeContactRepo) Search(ctx context.Context, companyID int64, term string, limit, offset int) ([]models.CompanyContact, int64, error) {
	needle := strings.ToLower(term)
	out := make([]models.CompanyContact, 0)
	for _, c := range r.byCompany(companyID) {
		if strings.Contains(strings.ToLower(c.Name), needle) ||
			strings.Contains(strings.ToLower(c.Email), needle) {
			out = append(out, c)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeContactRepo) FindPrimary(ctx context.Context, companyID int64) (*models.CompanyContact, error) {
	for _, c := range r.contacts {
		if c.CompanyID == companyID && c.IsPrimary {
			cp := *c
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%w: no primary contact for company=%d", models.ErrContactNotFound, companyID)
}

func (r *fakeContactRepo) ExistsPrimary(ctx context.Context, companyID int64) (bool, error) {
	for _, c := range r.contacts {
		if c.CompanyID == companyID && c.IsPrimary {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeContactRepo) Update(ctx context.Context, contact *models.CompanyContact) error {
	if _, ok := r.contacts[contact.ID]; !ok {
		return fmt.Errorf("%w: id=%d", models.ErrContactNotFound, contact.ID)
	}
	cp := *contact
	r.contacts[contact.ID] = &cp
	return nil
}

func (r *fakeContactRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.contacts[id]; !ok {
		return fmt.Errorf("%w: id=%d", models.ErrContactNotFound, id)
	}
	delete(r.contacts, id)
	return nil
}

// recordingMirror captures notifications for assertions.
type recordingMirror struct {
	created []models.Task
	updated []models.Task
	deleted []string
}

func (m *recordingMirror) TaskCreated(t models.Task) { m.created = append(m.created, t) }
func (m *recordingMirror) TaskUpdated(t models.Task) { m.updated = append(m.updated, t) }
func (m *recordingMirror) TaskDeleted(ticket string) { m.deleted = append(m.deleted, ticket) }
