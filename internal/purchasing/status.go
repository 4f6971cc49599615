package purchasing

import (
	"github.com/harborview/procurestock-backend/pkg/enums"
)

// DeriveStatus recomputes the receiving status of an order from the full
// per-line progress report. The derivation never looks at the previous
// receiving state, so replaying it against the same rows always yields the
// same answer: every line fully received means fully_received, anything
// received at all means partially_received, otherwise the current status
// stands (draft/approved/cancelled transitions are owned elsewhere).
func DeriveStatus(current enums.PurchaseOrderStatus, report []LineProgress) enums.PurchaseOrderStatus {
	if len(report) == 0 {
		return current
	}

	allReceived := true
	anyReceived := false
	for _, p := range report {
		if p.Remaining > 0 {
			allReceived = false
		}
		if p.Received > 0 {
			anyReceived = true
		}
	}

	switch {
	case allReceived:
		return enums.PurchaseOrderStatusFullyReceived
	case anyReceived:
		return enums.PurchaseOrderStatusPartiallyReceived
	default:
		return current
	}
}
