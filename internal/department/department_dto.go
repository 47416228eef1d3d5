package department

import "go-hrms/internal/user"

type CreateDepartmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ParentID    string `json:"parent_id" binding:"omitempty,uuid"`
	ManagerID   string `json:"manager_id" binding:"omitempty,uuid"`
}

type UpdateDepartmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ParentID    string `json:"parent_id" binding:"omitempty,uuid"`
	ManagerID   string `json:"manager_id" binding:"omitempty,uuid"`
}

type DepartmentResponse struct {
	ID          string `json:"id"`
	CompanyID   string `json:"company_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ParentID    string `json:"parent_id,omitempty"`
	ManagerID   string `json:"manager_id,omitempty"`
}

// TreeNode is a projection built fresh on every read, never persisted.
// EmployeeCount is direct membership only, not a recursive rollup.
type TreeNode struct {
	Department    DepartmentResponse `json:"department"`
	Manager       *user.UserResponse `json:"manager,omitempty"`
	Level         int                `json:"level"`
	EmployeeCount int                `json:"employee_count"`
	Orphaned      bool               `json:"orphaned"`
	Children      []*TreeNode        `json:"children"`
}

// DeletionCheckResponse tells the caller what still blocks a delete, so the
// UI can point at the exact employees/children to move first.
type DeletionCheckResponse struct {
	Allowed               bool  `json:"allowed"`
	BlockingEmployeeCount int64 `json:"blocking_employee_count"`
	BlockingChildCount    int64 `json:"blocking_child_count"`
}
