package purchasing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harborview/procurestock-backend/pkg/db/models"
	"github.com/harborview/procurestock-backend/pkg/enums"
)

// OrderFilters describe the inputs supported by the purchase order list.
type OrderFilters struct {
	Status   *enums.PurchaseOrderStatus
	VendorID *uuid.UUID
	DateFrom *time.Time
	DateTo   *time.Time
}

// OrderSummary exposes the aggregated fields returned in the order list.
type OrderSummary struct {
	ID           uuid.UUID                 `json:"id"`
	OrderNumber  string                    `json:"order_number"`
	VendorID     uuid.UUID                 `json:"vendor_id"`
	OrderDate    time.Time                 `json:"order_date"`
	ExpectedDate *time.Time                `json:"expected_date,omitempty"`
	Status       enums.PurchaseOrderStatus `json:"status"`
	Currency     enums.Currency            `json:"currency"`
	GrandTotal   decimal.Decimal           `json:"grand_total"`
	LineCount    int                       `json:"line_count"`
	CreatedAt    time.Time                 `json:"created_at"`
}

// OrderList wraps the paginated orders plus the next page cursor.
type OrderList struct {
	Orders     []OrderSummary `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// OrderLineDetail is one order line with its reconciliation progress.
type OrderLineDetail struct {
	ID             uuid.UUID       `json:"id"`
	ProductID      uuid.UUID       `json:"product_id"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	TaxRate        decimal.Decimal `json:"tax_rate"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	LineTotal      decimal.Decimal `json:"line_total"`
	Received       int             `json:"received"`
	Remaining      int             `json:"remaining"`
}

// OrderDetail is the full purchase order view with lines and derived totals.
type OrderDetail struct {
	ID           uuid.UUID                 `json:"id"`
	OrderNumber  string                    `json:"order_number"`
	VendorID     uuid.UUID                 `json:"vendor_id"`
	OrderDate    time.Time                 `json:"order_date"`
	ExpectedDate *time.Time                `json:"expected_date,omitempty"`
	Status       enums.PurchaseOrderStatus `json:"status"`
	Currency     enums.Currency            `json:"currency"`
	Totals       OrderTotals               `json:"totals"`
	Notes        *string                   `json:"notes,omitempty"`
	Lines        []OrderLineDetail         `json:"lines"`
	CreatedAt    time.Time                 `json:"created_at"`
	UpdatedAt    time.Time                 `json:"updated_at"`
}

// ReconciliationReport is the read-only per-line fulfillment view of an order.
type ReconciliationReport struct {
	OrderID     uuid.UUID                 `json:"order_id"`
	OrderNumber string                    `json:"order_number"`
	Status      enums.PurchaseOrderStatus `json:"status"`
	Lines       []LineProgress            `json:"lines"`
}

func toOrderSummary(order models.PurchaseOrder) OrderSummary {
	return OrderSummary{
		ID:           order.ID,
		OrderNumber:  order.OrderNumber,
		VendorID:     order.VendorID,
		OrderDate:    order.OrderDate,
		ExpectedDate: order.ExpectedDate,
		Status:       order.Status,
		Currency:     order.Currency,
		GrandTotal:   order.GrandTotal,
		LineCount:    len(order.Lines),
		CreatedAt:    order.CreatedAt,
	}
}
