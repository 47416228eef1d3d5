package employee

type CreateEmployeeRequest struct {
	FullName         string `json:"full_name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Phone            string `json:"phone"`
	Position         string `json:"position"`
	DepartmentID     string `json:"department_id" binding:"omitempty,uuid"`
	EmployeeNumber   string `json:"employee_number"`
	HireDate         string `json:"hire_date" binding:"required"`
	EmploymentStatus string `json:"employment_status"`
}

type UpdateEmployeeRequest struct {
	FullName         string `json:"full_name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Phone            string `json:"phone"`
	Position         string `json:"position"`
	DepartmentID     string `json:"department_id" binding:"omitempty,uuid"`
	EmployeeNumber   string `json:"employee_number"`
	HireDate         string `json:"hire_date" binding:"required"`
	EmploymentStatus string `json:"employment_status"`
}

// TransferRequest moves a set of employees to one target department in a
// single commit. A nil target means "remove from department" (unassigned).
type TransferRequest struct {
	EmployeeIDs        []string `json:"employee_ids" binding:"required,min=1,dive,uuid"`
	TargetDepartmentID *string  `json:"target_department_id" binding:"omitempty,uuid"`
}

type EmployeeResponse struct {
	ID               string `json:"id"`
	CompanyID        string `json:"company_id"`
	DepartmentID     string `json:"department_id,omitempty"`
	EmployeeNumber   string `json:"employee_number"`
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone,omitempty"`
	Position         string `json:"position,omitempty"`
	HireDate         string `json:"hire_date,omitempty"`
	EmploymentStatus string `json:"employment_status"`
}
