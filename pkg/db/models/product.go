package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the purchasable/stockable item catalog entry.
type Product struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrganizationID uuid.UUID       `gorm:"column:organization_id;type:uuid;not null;uniqueIndex:idx_products_org_sku"`
	SKU            string          `gorm:"column:sku;not null;uniqueIndex:idx_products_org_sku"`
	Name           string          `gorm:"column:name;not null"`
	Description    *string         `gorm:"column:description"`
	UnitPrice      decimal.Decimal `gorm:"column:unit_price;type:numeric(20,4);not null;default:0"`
	IsActive       bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
