package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harborview/procurestock-backend/pkg/enums"
)

// InventoryTransaction is one append-only ledger entry for a stock-affecting
// event. Rows are never updated or deleted; corrections are compensating
// entries.
type InventoryTransaction struct {
	ID             uuid.UUID                      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrganizationID uuid.UUID                      `gorm:"column:organization_id;type:uuid;not null;index"`
	ProductID      uuid.UUID                      `gorm:"column:product_id;type:uuid;not null;index"`
	LocationID     uuid.UUID                      `gorm:"column:location_id;type:uuid;not null"`
	Type           enums.InventoryTransactionType `gorm:"column:type;type:text;not null"`
	Quantity       int                            `gorm:"column:quantity;not null"`
	UnitCost       decimal.Decimal                `gorm:"column:unit_cost;type:numeric(20,4);not null;default:0"`
	TotalCost      decimal.Decimal                `gorm:"column:total_cost;type:numeric(20,4);not null;default:0"`
	GoodsReceiptID *uuid.UUID                     `gorm:"column:goods_receipt_id;type:uuid;index"`
	CreatedBy      uuid.UUID                      `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt      time.Time                      `gorm:"column:created_at;autoCreateTime"`
}
