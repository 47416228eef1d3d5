package department

import (
	"context"
	"database/sql"

	"go-hrms/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, dept *Department) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Department, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Department, error)
	CountEmployees(ctx context.Context, companyID string, id string) (int64, error)
	CountChildren(ctx context.Context, companyID string, id string) (int64, error)
	ManagerExists(ctx context.Context, companyID string, managerID string) (bool, error)
	Update(ctx context.Context, dept *Department) error
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
// connection, so the dependency re-check and the delete commit or roll back
// as one unit.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	session := r.db.Session(&gorm.Session{NewDB: true})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

func (r *repository) Create(ctx context.Context, dept *Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Department, error) {
	var depts []Department
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Find(&depts).Error
	return depts, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Department, error) {
	var dept Department
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&dept, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

// CountEmployees counts direct members only; descendants do not block a
// delete of their grandparent, only of their own parent.
func (r *repository) CountEmployees(ctx context.Context, companyID string, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Scopes(tenant.ScopeTable("employees", companyID)).
		Where("department_id = ?", id).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count, err
}

func (r *repository) CountChildren(ctx context.Context, companyID string, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Department{}).
		Scopes(tenant.Scope(companyID)).
		Where("parent_id = ?", id).
		Count(&count).Error
	return count, err
}

func (r *repository) ManagerExists(ctx context.Context, companyID string, managerID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("users").
		Scopes(tenant.ScopeTable("users", companyID)).
		Where("id = ?", managerID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, dept *Department) error {
	return r.db.WithContext(ctx).Save(dept).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Department{}, "id = ?", id).Error
}
