package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/harborview/procurestock-backend/pkg/enums"
)

// Notification stores in-app notification payloads scoped to organizations.
type Notification struct {
	ID             uuid.UUID                  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrganizationID uuid.UUID                  `gorm:"column:organization_id;type:uuid;not null;index"`
	UserID         *uuid.UUID                 `gorm:"column:user_id;type:uuid"`
	Severity       enums.NotificationSeverity `gorm:"column:severity;type:text;not null"`
	Title          string                     `gorm:"column:title;type:text;not null"`
	Message        string                     `gorm:"column:message;type:text;not null"`
	Link           *string                    `gorm:"column:link;type:text"`
	ReadAt         *time.Time                 `gorm:"column:read_at"`
	CreatedAt      time.Time                  `gorm:"column:created_at;autoCreateTime"`
}
