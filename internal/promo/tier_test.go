package promo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-promo/internal/cart"
)

const tierMessage = "Discount codes cannot be combined with tier rewards."

func newTierReward(t *testing.T) *TierRewardCampaign {
	t.Helper()
	selector, err := NewProductSelector(MatchInclude, AttrTag, []string{"tier-reward"})
	require.NoError(t, err)
	campaign, err := NewTierRewardCampaign(TierRewardConfig{
		Name:                 "tier",
		Selector:             selector,
		QuantityToDiscount:   1,
		Discount:             percentOff(t, 100, "Free tier reward"),
		CouponPreventMessage: tierMessage,
	})
	require.NoError(t, err)
	return campaign
}

func TestTierRewardEvaluatesSubtotalSequentially(t *testing.T) {
	base := newLine(t, 1, "100", 1)
	small := newLine(t, 2, "20", 1, withTags("tier-reward"), withProps("_threshold", "100"))
	large := newLine(t, 3, "30", 1, withTags("tier-reward"), withProps("_threshold", "110"))
	c := cart.New([]*cart.LineItem{base, large, small}, "")

	require.NoError(t, newTierReward(t).Run(ctx, c))

	requirePrice(t, "0", small)
	// 150 - 30 clears 110, but the first reward already lowered the subtotal to 130.
	require.False(t, large.PriceChanged())
	requirePrice(t, "100", base)
}

func TestTierRewardRejectsCodeWithoutGrantingDiscount(t *testing.T) {
	reward := newLine(t, 2, "20", 1, withTags("tier-reward"), withProps("_threshold", "100"))
	c := cart.New([]*cart.LineItem{newLine(t, 1, "50", 1), reward}, "WELCOME10")

	require.NoError(t, newTierReward(t).Run(ctx, c))

	require.False(t, reward.PriceChanged())
	require.True(t, c.DiscountCode().Rejected())
	require.Equal(t, tierMessage, c.DiscountCode().RejectionMessage())
}

func TestTierRewardRejectsCodeForAlreadyDiscountedItem(t *testing.T) {
	reward := newLine(t, 2, "20", 1, withTags("tier-reward"), withProps("_threshold", "10"))
	require.NoError(t, reward.ChangeLinePrice(money(t, "15"), "earlier campaign"))
	c := cart.New([]*cart.LineItem{newLine(t, 1, "50", 1), reward}, "WELCOME10")

	require.NoError(t, newTierReward(t).Run(ctx, c))

	requirePrice(t, "15", reward)
	require.Len(t, reward.Changes(), 1)
	require.True(t, c.DiscountCode().Rejected())
	require.Equal(t, tierMessage, c.DiscountCode().RejectionMessage())
}

func TestTierRewardKeepsCodeWithoutEligibleItems(t *testing.T) {
	c := cart.New([]*cart.LineItem{newLine(t, 1, "500", 1)}, "WELCOME10")

	require.NoError(t, newTierReward(t).Run(ctx, c))
	require.False(t, c.DiscountCode().Rejected())
}

func TestTierRewardSkipsUnusableThresholds(t *testing.T) {
	missing := newLine(t, 2, "10", 1, withTags("tier-reward"))
	garbled := newLine(t, 3, "15", 1, withTags("tier-reward"), withProps("_threshold", "lots"))
	valid := newLine(t, 4, "25", 1, withTags("tier-reward"), withProps("_threshold", "50"))
	c := cart.New([]*cart.LineItem{newLine(t, 1, "200", 1), missing, garbled, valid}, "")

	require.NoError(t, newTierReward(t).Run(ctx, c))

	require.False(t, missing.PriceChanged())
	require.False(t, garbled.PriceChanged())
	requirePrice(t, "0", valid)
}

func TestNewTierRewardCampaignDefaultsThresholdProperty(t *testing.T) {
	campaign, err := NewTierRewardCampaign(TierRewardConfig{
		Name:               "tier",
		Selector:           NewIDSelector([]int64{1}),
		QuantityToDiscount: 1,
		Discount:           percentOff(t, 50, "half"),
	})
	require.NoError(t, err)
	require.Equal(t, DefaultThresholdProperty, campaign.cfg.ThresholdProperty)

	_, err = NewTierRewardCampaign(TierRewardConfig{Name: "tier", Selector: NewIDSelector(nil), Discount: percentOff(t, 50, "half")})
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}
