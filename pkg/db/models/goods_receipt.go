package models

import (
	"time"

	"github.com/google/uuid"
)

// GoodsReceipt records one delivery event against a purchase order,
// possibly covering only part of the ordered quantities.
type GoodsReceipt struct {
	ID              uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrganizationID  uuid.UUID          `gorm:"column:organization_id;type:uuid;not null;uniqueIndex:idx_goods_receipts_org_number"`
	ReceiptNumber   string             `gorm:"column:receipt_number;not null;uniqueIndex:idx_goods_receipts_org_number"`
	PurchaseOrderID uuid.UUID          `gorm:"column:purchase_order_id;type:uuid;not null;index"`
	ReceiptDate     time.Time          `gorm:"column:receipt_date;not null"`
	Notes           *string            `gorm:"column:notes"`
	ReceivedBy      uuid.UUID          `gorm:"column:received_by;type:uuid;not null"`
	Lines           []GoodsReceiptLine `gorm:"foreignKey:GoodsReceiptID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
