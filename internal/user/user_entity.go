package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a login-capable principal. Departments reference users as managers;
// credential handling lives in the external auth service, so no password
// material is carried here.
type User struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID      `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeID uuid.UUID      `gorm:"column:employee_id;type:uuid;not null"`
	Name       string         `gorm:"column:name;type:varchar(255)"`
	Role       string         `gorm:"column:role;type:varchar(50);default:EMPLOYEE"`
	Email      string         `gorm:"column:email;type:text;not null;uniqueIndex"`
	IsActive   bool           `gorm:"column:is_active;default:true"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_at;index"`
}
