package pricing

import "github.com/shopspring/decimal"

// CapDiscounts enforces sum(amounts) <= cap by reducing amounts in place,
// walking the list in reverse evaluation order so later-applied discounts
// absorb the cut before earlier, more structural ones. Entries may be
// reduced to exactly zero but are never removed. Returns whether any
// amount changed.
func CapDiscounts(discounts []DiscountApplied, cap decimal.Decimal) bool {
	if cap.LessThanOrEqual(decimal.Zero) {
		changed := false
		for i := range discounts {
			if !discounts[i].Amount.IsZero() {
				changed = true
			}
			discounts[i].Amount = decimal.Zero
		}
		return changed
	}

	over := sumAmounts(discounts).Sub(cap)
	if over.LessThanOrEqual(decimal.Zero) {
		return false
	}

	for i := len(discounts) - 1; i >= 0 && over.GreaterThan(decimal.Zero); i-- {
		reducible := decimal.Min(discounts[i].Amount, over)
		discounts[i].Amount = discounts[i].Amount.Sub(reducible)
		over = over.Sub(reducible)
	}
	return true
}

func sumAmounts(discounts []DiscountApplied) decimal.Decimal {
	total := decimal.Zero
	for _, d := range discounts {
		total = total.Add(d.Amount)
	}
	return total
}
