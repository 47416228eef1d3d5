package events

import "time"

const EmployeeTransferredTopic = "hr.employee.transfer.v1"

// EmployeeTransferredEvent is emitted once per committed bulk reassignment.
// TargetDepartmentID is nil when the employees were moved to "unassigned".
type EmployeeTransferredEvent struct {
	EventType          string    `json:"event_type"`
	RequestID          string    `json:"request_id,omitempty"`
	CompanyID          string    `json:"company_id"`
	EmployeeIDs        []string  `json:"employee_ids"`
	TargetDepartmentID *string   `json:"target_department_id"`
	OccurredAt         time.Time `json:"occurred_at"`
}
