package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderLine is one ordered product on a purchase order.
// LineTotal = Quantity x UnitPrice - DiscountAmount; tax is applied separately
// using the flat per-line TaxRate percentage.
type PurchaseOrderLine struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PurchaseOrderID uuid.UUID       `gorm:"column:purchase_order_id;type:uuid;not null;index"`
	ProductID       uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	Quantity        int             `gorm:"column:quantity;not null"`
	UnitPrice       decimal.Decimal `gorm:"column:unit_price;type:numeric(20,4);not null;default:0"`
	TaxRate         decimal.Decimal `gorm:"column:tax_rate;type:numeric(7,4);not null;default:0"`
	DiscountAmount  decimal.Decimal `gorm:"column:discount_amount;type:numeric(20,4);not null;default:0"`
	LineTotal       decimal.Decimal `gorm:"column:line_total;type:numeric(20,4);not null;default:0"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
