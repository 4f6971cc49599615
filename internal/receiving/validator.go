package receiving

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/harborview/procurestock-backend/internal/purchasing"
	"github.com/harborview/procurestock-backend/pkg/db/models"
	pkgerrors "github.com/harborview/procurestock-backend/pkg/errors"
)

// Validation rule codes carried in structured error details.
const (
	ruleInvalidState     = "invalid_state"
	ruleRequired         = "required"
	ruleFutureDate       = "future_date"
	ruleNothingToReceive = "nothing_to_receive"
	ruleOverReceipt      = "over_receipt"
	ruleLocationRequired = "location_required"
	ruleUnknownLine      = "unknown_line"
	ruleDuplicateLine    = "duplicate_line"
	ruleNegativeQuantity = "negative_quantity"
)

// receiptDateSkew is how far ahead of the server clock a receipt date may sit
// before it is rejected as a future date.
const receiptDateSkew = 24 * time.Hour

// ValidateReceipt checks a receipt request against the order and its current
// reconciliation state. Every rule is evaluated; nothing short-circuits, so a
// rejected request reports all problems at once. A nil return means the
// request is accepted exactly as submitted.
//
// A non-receivable order status is a state conflict rather than an input
// problem and is reported with that code; all other failures come back as one
// validation error carrying form-level and per-line-index details.
func ValidateReceipt(order *models.PurchaseOrder, progress map[uuid.UUID]purchasing.LineProgress, input ReceiveGoodsInput, now time.Time) error {
	var formErrors []FieldError
	var lineErrors []LineError

	statusConflict := !order.Status.IsReceivable()
	if statusConflict {
		formErrors = append(formErrors, FieldError{
			Field:   "status",
			Code:    ruleInvalidState,
			Message: fmt.Sprintf("order in status %q cannot receive goods", order.Status),
		})
	}

	if input.ReceiptDate.IsZero() {
		formErrors = append(formErrors, FieldError{
			Field:   "receipt_date",
			Code:    ruleRequired,
			Message: "receipt date is required",
		})
	} else if input.ReceiptDate.After(now.Add(receiptDateSkew)) {
		formErrors = append(formErrors, FieldError{
			Field:   "receipt_date",
			Code:    ruleFutureDate,
			Message: "receipt date may not be in the future",
		})
	}

	// Each order line may appear at most once per receipt; allowing repeats
	// would let their summed quantity slip past the per-line remaining check.
	seen := make(map[uuid.UUID]struct{}, len(input.Lines))

	positiveLines := 0
	for idx, line := range input.Lines {
		if _, dup := seen[line.PurchaseOrderLineID]; dup {
			lineErrors = append(lineErrors, LineError{
				Index:   idx,
				Field:   "purchase_order_line_id",
				Code:    ruleDuplicateLine,
				Message: "order line referenced more than once",
			})
			continue
		}
		seen[line.PurchaseOrderLineID] = struct{}{}

		lineProgress, known := progress[line.PurchaseOrderLineID]
		if !known {
			lineErrors = append(lineErrors, LineError{
				Index:   idx,
				Field:   "purchase_order_line_id",
				Code:    ruleUnknownLine,
				Message: "line does not belong to the order",
			})
			continue
		}

		if line.Quantity < 0 {
			lineErrors = append(lineErrors, LineError{
				Index:   idx,
				Field:   "quantity",
				Code:    ruleNegativeQuantity,
				Message: "quantity must not be negative",
			})
			continue
		}
		if line.Quantity == 0 {
			continue
		}
		positiveLines++

		if line.Quantity > lineProgress.Remaining {
			remaining := lineProgress.Remaining
			lineErrors = append(lineErrors, LineError{
				Index:      idx,
				Field:      "quantity",
				Code:       ruleOverReceipt,
				Message:    fmt.Sprintf("quantity %d exceeds remaining %d", line.Quantity, remaining),
				MaxAllowed: &remaining,
			})
		}

		if line.LocationID == nil || *line.LocationID == uuid.Nil {
			lineErrors = append(lineErrors, LineError{
				Index:   idx,
				Field:   "location_id",
				Code:    ruleLocationRequired,
				Message: "storage location is required",
			})
		}
	}

	if positiveLines == 0 {
		formErrors = append(formErrors, FieldError{
			Field:   "lines",
			Code:    ruleNothingToReceive,
			Message: "at least one line with a positive quantity is required",
		})
	}

	if len(formErrors) == 0 && len(lineErrors) == 0 {
		return nil
	}

	details := ValidationDetails{FormErrors: formErrors, LineErrors: lineErrors}
	if statusConflict {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "order cannot receive goods in its current status").
			WithDetails(details)
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "receipt request failed validation").
		WithDetails(details)
}
