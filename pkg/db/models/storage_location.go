package models

import (
	"time"

	"github.com/google/uuid"
)

// StorageLocation is a physical place stock can be received into.
type StorageLocation struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrganizationID uuid.UUID `gorm:"column:organization_id;type:uuid;not null;uniqueIndex:idx_locations_org_code"`
	Code           string    `gorm:"column:code;not null;uniqueIndex:idx_locations_org_code"`
	Name           string    `gorm:"column:name;not null"`
	IsActive       bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
