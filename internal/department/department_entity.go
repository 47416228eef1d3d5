package department

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Department is a node in the tenant's org hierarchy. ParentID and ManagerID
// are foreign-key-shaped but not DB-enforced, so the service layer validates
// both and the tree builder tolerates whatever slips through.
type Department struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name        string         `gorm:"size:255;not null"`
	Description string         `gorm:"type:text"`
	ParentID    *uuid.UUID     `gorm:"type:uuid;index"`
	ManagerID   *uuid.UUID     `gorm:"type:uuid"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
