package purchasing

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/harborview/procurestock-backend/pkg/db/models"
	pkgerrors "github.com/harborview/procurestock-backend/pkg/errors"
)

// LineProgress is the fulfillment state of one purchase order line.
type LineProgress struct {
	LineID    uuid.UUID `json:"line_id"`
	ProductID uuid.UUID `json:"product_id"`
	Ordered   int       `json:"ordered"`
	Received  int       `json:"received"`
	Remaining int       `json:"remaining"`
}

// ReconcileLine sums every receipt line recorded against the purchase order
// line and returns ordered/received/remaining. Received quantities exceeding
// the ordered quantity mean the stored data is corrupt; the negative remainder
// is reported as-is, never clamped.
func ReconcileLine(line models.PurchaseOrderLine, receiptLines []models.GoodsReceiptLine) (LineProgress, error) {
	received := 0
	for _, rl := range receiptLines {
		if rl.PurchaseOrderLineID == line.ID {
			received += rl.Quantity
		}
	}

	progress := LineProgress{
		LineID:    line.ID,
		ProductID: line.ProductID,
		Ordered:   line.Quantity,
		Received:  received,
		Remaining: line.Quantity - received,
	}

	if progress.Remaining < 0 {
		return progress, pkgerrors.New(pkgerrors.CodeInconsistency,
			fmt.Sprintf("received quantity %d exceeds ordered quantity %d", received, line.Quantity)).
			WithDetails(map[string]any{
				"line_id":   line.ID,
				"ordered":   line.Quantity,
				"received":  received,
				"remaining": progress.Remaining,
			})
	}
	return progress, nil
}

// ReconcileOrder reconciles every line of an order against the full set of
// receipt lines recorded for it. The first inconsistent line aborts the
// report; a corrupted order must not be silently partially reconciled.
func ReconcileOrder(lines []models.PurchaseOrderLine, receiptLines []models.GoodsReceiptLine) ([]LineProgress, error) {
	report := make([]LineProgress, 0, len(lines))
	for _, line := range lines {
		progress, err := ReconcileLine(line, receiptLines)
		if err != nil {
			return nil, err
		}
		report = append(report, progress)
	}
	return report, nil
}
