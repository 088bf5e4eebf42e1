package cart

import "strings"

const (
	DiscountPercent = 8
	TaxPercent      = 12
)

// Totals are integer minor units.
type Totals struct {
	Subtotal int64 `json:"subtotal"`
	Discount int64 `json:"discount"`
	Tax      int64 `json:"tax"`
	Shipping int64 `json:"shipping"`
	Total    int64 `json:"total"`
}

// ComputeTotals applies the pricing rules: an 8% discount when code matches
// literal (trimmed, case-insensitive), 12% tax on the discounted subtotal, no
// shipping, and a total floored at zero.
func ComputeTotals(items []Item, code, literal string) Totals {
	var t Totals
	for _, it := range items {
		t.Subtotal += it.PriceCents * int64(it.Quantity)
	}
	if DiscountApplies(code, literal) {
		t.Discount = percentOf(t.Subtotal, DiscountPercent)
	}
	t.Tax = percentOf(t.Subtotal-t.Discount, TaxPercent)
	t.Total = max(0, t.Subtotal-t.Discount+t.Tax+t.Shipping)
	return t
}

// DiscountApplies reports whether code unlocks the discount.
func DiscountApplies(code, literal string) bool {
	code = strings.TrimSpace(code)
	literal = strings.TrimSpace(literal)
	return code != "" && strings.EqualFold(code, literal)
}

// percentOf rounds half up.
func percentOf(amount int64, pct int64) int64 {
	if amount <= 0 {
		return 0
	}
	return (amount*pct + 50) / 100
}
