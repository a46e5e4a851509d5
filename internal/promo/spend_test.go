package promo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-promo/internal/cart"
	"github.com/noah-isme/toko-promo/internal/pricing"
)

func newGiftWithPurchase(t *testing.T, quantity int, whitelist *DiscountCodeSelector) *SpendXGetYCampaign {
	t.Helper()
	selector, err := NewProductSelector(MatchInclude, AttrTag, []string{"GWP-FREE"})
	require.NoError(t, err)
	campaign, err := NewSpendXGetYCampaign(SpendXGetYConfig{
		Name:                 "gwp",
		Threshold:            pricing.FromInt(200),
		Selector:             selector,
		QuantityToDiscount:   quantity,
		Discount:             percentOff(t, 100, "Free with purchase of $200+"),
		CouponPreventMessage: "Discount codes cannot be combined with free item promotions.",
		Whitelist:            whitelist,
	})
	require.NoError(t, err)
	return campaign
}

func TestSpendThresholdBoundaryIsInclusive(t *testing.T) {
	base := newLine(t, 1, "200", 1)
	gift := newLine(t, 2, "50", 1, withTags("GWP-FREE"))
	c := cart.New([]*cart.LineItem{base, gift}, "")

	require.NoError(t, newGiftWithPurchase(t, 1, nil).Run(ctx, c))
	requirePrice(t, "0", gift)
	requirePrice(t, "200", base)
}

func TestSpendRewardCannotQualifyItself(t *testing.T) {
	base := newLine(t, 1, "170", 1)
	gift := newLine(t, 2, "50", 1, withTags("GWP-FREE"))
	c := cart.New([]*cart.LineItem{base, gift}, "SUMMER")

	require.NoError(t, newGiftWithPurchase(t, 1, nil).Run(ctx, c))
	require.False(t, gift.PriceChanged())
	require.False(t, c.DiscountCode().Rejected())
}

func TestSpendBelowThresholdSkips(t *testing.T) {
	gift := newLine(t, 2, "50", 1, withTags("GWP-FREE"))
	c := cart.New([]*cart.LineItem{newLine(t, 1, "100", 1), gift}, "")

	require.NoError(t, newGiftWithPurchase(t, 1, nil).Run(ctx, c))
	require.False(t, gift.PriceChanged())
}

func TestSpendSplitsCheapestEligibleLine(t *testing.T) {
	base := newLine(t, 1, "300", 1)
	pricey := newLine(t, 2, "40", 1, withTags("gwp-free"))
	cheap := newLine(t, 3, "25", 3, withTags("GWP-FREE"))
	c := cart.New([]*cart.LineItem{base, pricey, cheap}, "")

	require.NoError(t, newGiftWithPurchase(t, 2, nil).Run(ctx, c))

	lines := c.LineItems()
	require.Len(t, lines, 4)
	require.Same(t, cheap, lines[2])
	require.Equal(t, 1, cheap.Quantity)
	requirePrice(t, "25", cheap)
	require.Equal(t, 2, lines[3].Quantity)
	requirePrice(t, "0", lines[3])
	require.False(t, pricey.PriceChanged())
}

func TestSpendDiscountCodeWhitelist(t *testing.T) {
	whitelist, err := NewDiscountCodeSelector(CodeMatchPartial, []string{"PAIGE-"})
	require.NoError(t, err)

	t.Run("whitelisted code survives", func(t *testing.T) {
		c := cart.New([]*cart.LineItem{newLine(t, 1, "250", 1), newLine(t, 2, "10", 1, withTags("GWP-FREE"))}, "paige-15")
		require.NoError(t, newGiftWithPurchase(t, 1, whitelist).Run(ctx, c))
		require.False(t, c.DiscountCode().Rejected())
	})

	t.Run("other code rejected", func(t *testing.T) {
		gift := newLine(t, 2, "10", 1, withTags("GWP-FREE"))
		c := cart.New([]*cart.LineItem{newLine(t, 1, "250", 1), gift}, "SUMMER")
		require.NoError(t, newGiftWithPurchase(t, 1, whitelist).Run(ctx, c))
		require.True(t, c.DiscountCode().Rejected())
		require.Equal(t, "Discount codes cannot be combined with free item promotions.", c.DiscountCode().RejectionMessage())
		requirePrice(t, "0", gift)
	})
}

func TestSpendIgnoresAlreadyDiscountedLines(t *testing.T) {
	gift := newLine(t, 2, "50", 1, withTags("GWP-FREE"))
	require.NoError(t, gift.ChangeLinePrice(pricing.FromInt(45), "earlier"))
	c := cart.New([]*cart.LineItem{newLine(t, 1, "400", 1), gift}, "")

	require.NoError(t, newGiftWithPurchase(t, 1, nil).Run(ctx, c))
	requirePrice(t, "45", gift)
}

func TestNewSpendXGetYCampaignValidates(t *testing.T) {
	_, err := NewSpendXGetYCampaign(SpendXGetYConfig{Name: "x", Selector: NewIDSelector(nil), Discount: percentOff(t, 10, "x")})
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}
