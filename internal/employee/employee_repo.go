package employee

import (
	"context"
	"database/sql"

	"go-hrms/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Employee, error)
	FindOptionsByCompany(ctx context.Context, companyID string) ([]Employee, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Employee, error)
	FindByIDsAndCompany(ctx context.Context, companyID string, ids []string) ([]Employee, error)
	DepartmentExists(ctx context.Context, companyID string, departmentID string) (bool, error)
	AssignDepartment(ctx context.Context, companyID string, ids []string, departmentID *uuid.UUID) error
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, companyID string, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx binds the repository to an open transaction. The session keeps the
// pooled handle's dialect and config but issues every statement on the tx
// connection, so validation reads and the bulk write commit or roll back as
// one unit.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	session := r.db.Session(&gorm.Session{NewDB: true})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindOptionsByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Select("id", "company_id", "department_id", "employee_number", "full_name", "email", "employment_status").
		Scopes(tenant.Scope(companyID)).
		Order("full_name ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindByIDsAndCompany(ctx context.Context, companyID string, ids []string) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id IN ?", ids).
		Find(&empls).Error
	return empls, err
}

// DepartmentExists resolves the transfer target inside the tenant. A
// department belonging to another company is treated the same as a missing one.
func (r *repository) DepartmentExists(ctx context.Context, companyID string, departmentID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("departments").
		Scopes(tenant.ScopeTable("departments", companyID)).
		Where("id = ?", departmentID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

// AssignDepartment is the single bulk write of a transfer: one UPDATE over the
// whole id set, tenant-scoped, replacing whatever membership each employee had.
func (r *repository) AssignDepartment(ctx context.Context, companyID string, ids []string, departmentID *uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(tenant.Scope(companyID)).
		Where("id IN ?", ids).
		Update("department_id", departmentID).Error
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Employee{}, "id = ?", id).Error
}
