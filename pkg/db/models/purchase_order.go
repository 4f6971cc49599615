package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harborview/procurestock-backend/pkg/enums"
)

// PurchaseOrder is a commitment to buy specified quantities from a vendor.
// Monetary totals are derived from the lines and never hand-edited.
type PurchaseOrder struct {
	ID             uuid.UUID                 `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrganizationID uuid.UUID                 `gorm:"column:organization_id;type:uuid;not null;uniqueIndex:idx_purchase_orders_org_number"`
	OrderNumber    string                    `gorm:"column:order_number;not null;uniqueIndex:idx_purchase_orders_org_number"`
	VendorID       uuid.UUID                 `gorm:"column:vendor_id;type:uuid;not null"`
	OrderDate      time.Time                 `gorm:"column:order_date;not null"`
	ExpectedDate   *time.Time                `gorm:"column:expected_date"`
	Status         enums.PurchaseOrderStatus `gorm:"column:status;type:text;not null;default:'draft'"`
	Currency       enums.Currency            `gorm:"column:currency;type:text;not null;default:'USD'"`
	Subtotal       decimal.Decimal           `gorm:"column:subtotal;type:numeric(20,4);not null;default:0"`
	TaxTotal       decimal.Decimal           `gorm:"column:tax_total;type:numeric(20,4);not null;default:0"`
	ShippingCost   decimal.Decimal           `gorm:"column:shipping_cost;type:numeric(20,4);not null;default:0"`
	DiscountTotal  decimal.Decimal           `gorm:"column:discount_total;type:numeric(20,4);not null;default:0"`
	GrandTotal     decimal.Decimal           `gorm:"column:grand_total;type:numeric(20,4);not null;default:0"`
	Notes          *string                   `gorm:"column:notes"`
	CreatedBy      uuid.UUID                 `gorm:"column:created_by;type:uuid;not null"`
	UpdatedBy      *uuid.UUID                `gorm:"column:updated_by;type:uuid"`
	Lines          []PurchaseOrderLine       `gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:CASCADE"`
	Receipts       []GoodsReceipt            `gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time                 `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time                 `gorm:"column:updated_at;autoUpdateTime"`
}
