package receiving

import (
	"fmt"
	"time"
)

// GenerateReceiptNumber builds a time-derived receipt number like
// GR-20260301-123456. The token is only a readable first guess at
// uniqueness; the per-tenant unique index on (organization_id,
// receipt_number) is the authoritative guard, and a collision there surfaces
// as retryable contention.
func GenerateReceiptNumber(prefix string, now time.Time) string {
	if prefix == "" {
		prefix = "GR"
	}
	utc := now.UTC()
	token := utc.UnixNano() / int64(time.Microsecond) % 1_000_000
	return fmt.Sprintf("%s-%s-%06d", prefix, utc.Format("20060102"), token)
}
