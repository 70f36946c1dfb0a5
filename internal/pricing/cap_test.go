package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/order-totals/internal/pricing"
)

func discount(code string, kind pricing.Kind, amount string) pricing.DiscountApplied {
	return pricing.DiscountApplied{Code: code, Kind: kind, Amount: decimal.RequireFromString(amount)}
}

func TestCapReducesLastAppliedFirst(t *testing.T) {
	discounts := []pricing.DiscountApplied{
		discount(pricing.CodeBulk, pricing.KindLine, "10.00"),
		discount(pricing.CodeOrder, pricing.KindOrder, "5.00"),
		discount(pricing.CodeCoupon, pricing.KindCoupon, "20.00"),
	}

	changed := pricing.CapDiscounts(discounts, decimal.RequireFromString("30.00"))

	require.True(t, changed)
	require.Equal(t, []string{"10", "5", "15"}, amounts(discounts))
}

func TestCapWithinLimitIsNoop(t *testing.T) {
	discounts := []pricing.DiscountApplied{
		discount(pricing.CodeBulk, pricing.KindLine, "3.50"),
		discount(pricing.CodeOrder, pricing.KindOrder, "5.00"),
	}

	changed := pricing.CapDiscounts(discounts, decimal.RequireFromString("40.50"))

	require.False(t, changed)
	require.Equal(t, []string{"3.5", "5"}, amounts(discounts))
}

func TestCapZeroesEntriesButKeepsThem(t *testing.T) {
	discounts := []pricing.DiscountApplied{
		discount(pricing.CodeBulk, pricing.KindLine, "10.00"),
		discount(pricing.CodeBulk, pricing.KindLine, "8.00"),
		discount(pricing.CodeOrder, pricing.KindOrder, "5.00"),
		discount(pricing.CodeCoupon, pricing.KindCoupon, "20.00"),
	}

	// over = 43 - 12 = 31: coupon (20) and order (5) go to zero, then the
	// reduction continues backwards through the bulk entries.
	changed := pricing.CapDiscounts(discounts, decimal.RequireFromString("12.00"))

	require.True(t, changed)
	require.Len(t, discounts, 4)
	require.Equal(t, []string{"10", "2", "0", "0"}, amounts(discounts))
	require.Equal(t, []string{pricing.CodeBulk, pricing.CodeBulk, pricing.CodeOrder, pricing.CodeCoupon}, codes(discounts))
}

func TestNonPositiveCapNullsEverything(t *testing.T) {
	discounts := []pricing.DiscountApplied{
		discount(pricing.CodeBulk, pricing.KindLine, "10.00"),
		discount(pricing.CodeCoupon, pricing.KindCoupon, "20.00"),
	}

	changed := pricing.CapDiscounts(discounts, decimal.RequireFromString("-1"))

	require.True(t, changed)
	require.Equal(t, []string{"0", "0"}, amounts(discounts))
}

func TestCapOnEmptyList(t *testing.T) {
	require.False(t, pricing.CapDiscounts(nil, decimal.Zero))
	require.False(t, pricing.CapDiscounts(nil, decimal.RequireFromString("10")))
}
