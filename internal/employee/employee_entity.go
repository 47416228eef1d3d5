package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee carries exactly one optional department membership. DepartmentID
// is a scalar, not a set: assigning a new department replaces the old one.
type Employee struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CompanyID        uuid.UUID      `gorm:"type:uuid;not null;index"`
	DepartmentID     *uuid.UUID     `gorm:"type:uuid;index"`
	EmployeeNumber   string         `gorm:"size:50;not null"`
	FullName         string         `gorm:"size:255;not null"`
	Email            string         `gorm:"type:text;not null"`
	Phone            string         `gorm:"size:50"`
	Position         string         `gorm:"size:255"`
	HireDate         time.Time      `gorm:"type:date"`
	EmploymentStatus string         `gorm:"size:50;default:ACTIVE"`
	CreatedAt        time.Time      `gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime"`
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}
