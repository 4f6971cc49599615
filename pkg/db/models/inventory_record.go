package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryRecord tracks on-hand stock per (product, location).
// Exactly one row exists per pair within an organization; it is created
// lazily on the first receipt into a location and incremented thereafter.
type InventoryRecord struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrganizationID uuid.UUID `gorm:"column:organization_id;type:uuid;not null;uniqueIndex:idx_inventory_records_org_product_location"`
	ProductID      uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_inventory_records_org_product_location"`
	LocationID     uuid.UUID `gorm:"column:location_id;type:uuid;not null;uniqueIndex:idx_inventory_records_org_product_location"`
	CurrentStock   int       `gorm:"column:current_stock;not null;default:0"`
	CommittedStock int       `gorm:"column:committed_stock;not null;default:0"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
