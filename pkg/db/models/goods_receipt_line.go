package models

import (
	"time"

	"github.com/google/uuid"
)

// GoodsReceiptLine carries the quantity received for one purchase order line
// in a single delivery event and the location it was placed into.
type GoodsReceiptLine struct {
	ID                  uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	GoodsReceiptID      uuid.UUID `gorm:"column:goods_receipt_id;type:uuid;not null;index"`
	PurchaseOrderLineID uuid.UUID `gorm:"column:purchase_order_line_id;type:uuid;not null;index"`
	ProductID           uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	LocationID          uuid.UUID `gorm:"column:location_id;type:uuid;not null"`
	Quantity            int       `gorm:"column:quantity;not null"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime"`
}
