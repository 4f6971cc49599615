package purchasing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harborview/procurestock-backend/pkg/enums"
)

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		name    string
		current enums.PurchaseOrderStatus
		report  []LineProgress
		want    enums.PurchaseOrderStatus
	}{
		{
			name:    "nothing received keeps current status",
			current: enums.PurchaseOrderStatusApproved,
			report: []LineProgress{
				{Ordered: 5, Received: 0, Remaining: 5},
				{Ordered: 2, Received: 0, Remaining: 2},
			},
			want: enums.PurchaseOrderStatusApproved,
		},
		{
			name:    "partial receipt on one line",
			current: enums.PurchaseOrderStatusApproved,
			report: []LineProgress{
				{Ordered: 5, Received: 3, Remaining: 2},
				{Ordered: 2, Received: 0, Remaining: 2},
			},
			want: enums.PurchaseOrderStatusPartiallyReceived,
		},
		{
			name:    "every line fully received",
			current: enums.PurchaseOrderStatusPartiallyReceived,
			report: []LineProgress{
				{Ordered: 5, Received: 5, Remaining: 0},
				{Ordered: 2, Received: 2, Remaining: 0},
			},
			want: enums.PurchaseOrderStatusFullyReceived,
		},
		{
			name:    "over-received line still counts as fully received",
			current: enums.PurchaseOrderStatusPartiallyReceived,
			report: []LineProgress{
				{Ordered: 5, Received: 6, Remaining: -1},
			},
			want: enums.PurchaseOrderStatusFullyReceived,
		},
		{
			name:    "empty report keeps current status",
			current: enums.PurchaseOrderStatusDraft,
			report:  nil,
			want:    enums.PurchaseOrderStatusDraft,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DeriveStatus(tc.current, tc.report))
		})
	}
}

func TestDeriveStatusIsIdempotent(t *testing.T) {
	report := []LineProgress{
		{Ordered: 4, Received: 4, Remaining: 0},
		{Ordered: 3, Received: 3, Remaining: 0},
	}

	first := DeriveStatus(enums.PurchaseOrderStatusApproved, report)
	second := DeriveStatus(first, report)
	assert.Equal(t, first, second)
	assert.Equal(t, enums.PurchaseOrderStatusFullyReceived, second)
}
