package purchasing

import (
	"github.com/shopspring/decimal"

	"github.com/harborview/procurestock-backend/pkg/db/models"
)

var percentDivisor = decimal.NewFromInt(100)

// OrderTotals holds the monetary aggregates derived from the order lines.
type OrderTotals struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	DiscountTotal decimal.Decimal `json:"discount_total"`
	TaxTotal      decimal.Decimal `json:"tax_total"`
	ShippingCost  decimal.Decimal `json:"shipping_cost"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

// LineNet returns the taxable amount of a line: quantity x unit price minus
// the per-line discount.
func LineNet(line models.PurchaseOrderLine) decimal.Decimal {
	gross := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
	return gross.Sub(line.DiscountAmount)
}

// ComputeTotals derives the order aggregates from its lines plus the
// order-level shipping cost. Stored totals are a cache of this derivation and
// are never edited by hand; tax applies the flat per-line rate to the net
// line amount.
func ComputeTotals(lines []models.PurchaseOrderLine, shippingCost decimal.Decimal) OrderTotals {
	totals := OrderTotals{
		Subtotal:      decimal.Zero,
		DiscountTotal: decimal.Zero,
		TaxTotal:      decimal.Zero,
		ShippingCost:  shippingCost,
		GrandTotal:    decimal.Zero,
	}

	for _, line := range lines {
		gross := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		totals.Subtotal = totals.Subtotal.Add(gross)
		totals.DiscountTotal = totals.DiscountTotal.Add(line.DiscountAmount)

		net := gross.Sub(line.DiscountAmount)
		tax := net.Mul(line.TaxRate).Div(percentDivisor)
		totals.TaxTotal = totals.TaxTotal.Add(tax)
	}

	totals.GrandTotal = totals.Subtotal.
		Sub(totals.DiscountTotal).
		Add(totals.TaxTotal).
		Add(totals.ShippingCost)
	return totals
}
