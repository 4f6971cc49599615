package models

import (
	"time"

	"github.com/google/uuid"
)

// Vendor is a supplier purchase orders are raised against.
type Vendor struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrganizationID uuid.UUID `gorm:"column:organization_id;type:uuid;not null;index"`
	Name           string    `gorm:"column:name;not null"`
	Email          *string   `gorm:"column:email"`
	Phone          *string   `gorm:"column:phone"`
	IsActive       bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
