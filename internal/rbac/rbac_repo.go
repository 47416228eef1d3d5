package rbac

import "gorm.io/gorm"

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetEmployeeRoles(companyID string) ([]EmployeeRoleRow, error)
	GetRolePermissions(companyID string) ([]RolePermissionRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type EmployeeRoleRow struct {
	EmployeeID string
	RoleID     string
}

type RolePermissionRow struct {
	RoleID   string
	Resource string
	Action   string
}

func (r *repository) GetEmployeeRoles(companyID string) ([]EmployeeRoleRow, error) {
	var result []EmployeeRoleRow
	err := r.db.
		Table("employee_roles er").
		Select("er.employee_id::text AS employee_id, er.role_id::text AS role_id").
		Joins("JOIN roles ro ON ro.id = er.role_id").
		Where("ro.company_id = ?", companyID).
		Scan(&result).Error
	return result, err
}

func (r *repository) GetRolePermissions(companyID string) ([]RolePermissionRow, error) {
	var result []RolePermissionRow
	err := r.db.
		Table("role_permissions rp").
		Select("rp.role_id::text AS role_id, pe.resource, pe.action").
		Joins("JOIN permissions pe ON pe.id = rp.permission_id").
		Joins("JOIN roles ro ON ro.id = rp.role_id").
		Where("ro.company_id = ?", companyID).
		Scan(&result).Error
	return result, err
}
