package enums

import "fmt"

// PurchaseOrderStatus tracks the lifecycle of a purchase order.
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft             PurchaseOrderStatus = "draft"
	PurchaseOrderStatusSubmitted         PurchaseOrderStatus = "submitted"
	PurchaseOrderStatusApproved          PurchaseOrderStatus = "approved"
	PurchaseOrderStatusPartiallyReceived PurchaseOrderStatus = "partially_received"
	PurchaseOrderStatusFullyReceived     PurchaseOrderStatus = "fully_received"
	PurchaseOrderStatusCancelled         PurchaseOrderStatus = "cancelled"
)

var validPurchaseOrderStatuses = []PurchaseOrderStatus{
	PurchaseOrderStatusDraft,
	PurchaseOrderStatusSubmitted,
	PurchaseOrderStatusApproved,
	PurchaseOrderStatusPartiallyReceived,
	PurchaseOrderStatusFullyReceived,
	PurchaseOrderStatusCancelled,
}

// String implements fmt.Stringer.
func (p PurchaseOrderStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PurchaseOrderStatus.
func (p PurchaseOrderStatus) IsValid() bool {
	for _, candidate := range validPurchaseOrderStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// IsReceivable reports whether goods may still be received against the order.
func (p PurchaseOrderStatus) IsReceivable() bool {
	return p == PurchaseOrderStatusApproved || p == PurchaseOrderStatusPartiallyReceived
}

// IsTerminal reports whether the order accepts no further receiving activity.
func (p PurchaseOrderStatus) IsTerminal() bool {
	return p == PurchaseOrderStatusFullyReceived || p == PurchaseOrderStatusCancelled
}

// ParsePurchaseOrderStatus converts raw input into a PurchaseOrderStatus.
func ParsePurchaseOrderStatus(value string) (PurchaseOrderStatus, error) {
	for _, candidate := range validPurchaseOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid purchase order status %q", value)
}
