package receiving

import (
	"time"

	"github.com/google/uuid"

	"github.com/harborview/procurestock-backend/pkg/db/models"
)

// LineInput is one requested receipt line against a purchase order line.
type LineInput struct {
	PurchaseOrderLineID uuid.UUID  `json:"purchase_order_line_id"`
	Quantity            int        `json:"quantity"`
	LocationID          *uuid.UUID `json:"location_id"`
}

// ReceiveGoodsInput carries everything needed to record one goods receipt.
type ReceiveGoodsInput struct {
	OrganizationID uuid.UUID
	OrderID        uuid.UUID
	ReceivedBy     uuid.UUID
	ReceiptDate    time.Time
	Notes          *string
	Lines          []LineInput
}

// FieldError is a form-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// LineError is a validation failure tied to one input line by index.
type LineError struct {
	Index      int    `json:"index"`
	Field      string `json:"field"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	MaxAllowed *int   `json:"max_allowed,omitempty"`
}

// ValidationDetails is the structured payload attached to a rejected receipt.
type ValidationDetails struct {
	FormErrors []FieldError `json:"form_errors,omitempty"`
	LineErrors []LineError  `json:"line_errors,omitempty"`
}

// ReceiptLineDetail is one persisted receipt line in API form.
type ReceiptLineDetail struct {
	ID                  uuid.UUID `json:"id"`
	PurchaseOrderLineID uuid.UUID `json:"purchase_order_line_id"`
	ProductID           uuid.UUID `json:"product_id"`
	LocationID          uuid.UUID `json:"location_id"`
	Quantity            int       `json:"quantity"`
}

// ReceiptDetail is the persisted goods receipt in API form.
type ReceiptDetail struct {
	ID              uuid.UUID           `json:"id"`
	ReceiptNumber   string              `json:"receipt_number"`
	PurchaseOrderID uuid.UUID           `json:"purchase_order_id"`
	ReceiptDate     time.Time           `json:"receipt_date"`
	Notes           *string             `json:"notes,omitempty"`
	ReceivedBy      uuid.UUID           `json:"received_by"`
	Lines           []ReceiptLineDetail `json:"lines"`
	CreatedAt       time.Time           `json:"created_at"`
}

// ReceiptSummary is the list view of a goods receipt.
type ReceiptSummary struct {
	ID              uuid.UUID `json:"id"`
	ReceiptNumber   string    `json:"receipt_number"`
	PurchaseOrderID uuid.UUID `json:"purchase_order_id"`
	ReceiptDate     time.Time `json:"receipt_date"`
	LineCount       int       `json:"line_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// ReceiptList wraps the paginated receipts plus the next page cursor.
type ReceiptList struct {
	Receipts   []ReceiptSummary `json:"receipts"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

// ReceiptFilters describe the inputs supported by the receipt list.
type ReceiptFilters struct {
	PurchaseOrderID *uuid.UUID
}

func toReceiptDetail(receipt *models.GoodsReceipt) *ReceiptDetail {
	detail := &ReceiptDetail{
		ID:              receipt.ID,
		ReceiptNumber:   receipt.ReceiptNumber,
		PurchaseOrderID: receipt.PurchaseOrderID,
		ReceiptDate:     receipt.ReceiptDate,
		Notes:           receipt.Notes,
		ReceivedBy:      receipt.ReceivedBy,
		CreatedAt:       receipt.CreatedAt,
	}
	detail.Lines = make([]ReceiptLineDetail, 0, len(receipt.Lines))
	for _, line := range receipt.Lines {
		detail.Lines = append(detail.Lines, ReceiptLineDetail{
			ID:                  line.ID,
			PurchaseOrderLineID: line.PurchaseOrderLineID,
			ProductID:           line.ProductID,
			LocationID:          line.LocationID,
			Quantity:            line.Quantity,
		})
	}
	return detail
}

func toReceiptSummary(receipt models.GoodsReceipt) ReceiptSummary {
	return ReceiptSummary{
		ID:              receipt.ID,
		ReceiptNumber:   receipt.ReceiptNumber,
		PurchaseOrderID: receipt.PurchaseOrderID,
		ReceiptDate:     receipt.ReceiptDate,
		LineCount:       len(receipt.Lines),
		CreatedAt:       receipt.CreatedAt,
	}
}
