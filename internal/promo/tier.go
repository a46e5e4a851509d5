package promo

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/noah-isme/toko-promo/internal/cart"
	"github.com/noah-isme/toko-promo/internal/obs"
	"github.com/noah-isme/toko-promo/internal/pricing"
)

// TierRewardConfig parameterises a TierRewardCampaign.
type TierRewardConfig struct {
	Name                 string
	Selector             Selector
	QuantityToDiscount   int
	Discount             Discount
	CouponPreventMessage string
	// ThresholdProperty is the line property holding the item's own spend threshold.
	ThresholdProperty string
}

// DefaultThresholdProperty is the line property read when none is configured.
const DefaultThresholdProperty = "_threshold"

// TierRewardCampaign discounts reward items whose own threshold the cart still
// meets after paying for the reward.
type TierRewardCampaign struct {
	cfg TierRewardConfig
}

// NewTierRewardCampaign validates cfg.
func NewTierRewardCampaign(cfg TierRewardConfig) (*TierRewardCampaign, error) {
	if cfg.Selector == nil || cfg.Discount == nil {
		return nil, invalidConfig("tier campaign %q needs a selector and discount", cfg.Name)
	}
	if cfg.QuantityToDiscount < 1 {
		return nil, invalidConfig("tier campaign %q quantity %d must be positive", cfg.Name, cfg.QuantityToDiscount)
	}
	if strings.TrimSpace(cfg.ThresholdProperty) == "" {
		cfg.ThresholdProperty = DefaultThresholdProperty
	}
	return &TierRewardCampaign{cfg: cfg}, nil
}

func (t *TierRewardCampaign) Name() string { return t.cfg.Name }

func (t *TierRewardCampaign) Kind() Kind { return KindTierReward }

// Run implements Campaign. Every eligible item is judged against the subtotal
// at that moment, so an earlier reward reduces the room left for later ones.
// A discount code is rejected whenever a selected item exists, even one an
// earlier campaign already discounted.
func (t *TierRewardCampaign) Run(ctx context.Context, c *cart.Cart) error {
	tagged := filterItems(c.LineItems(), t.cfg.Selector.Match)
	if len(tagged) == 0 {
		return nil
	}
	untouched := filterItems(tagged, func(it *cart.LineItem) bool { return !it.PriceChanged() })
	applied := 0
	for _, it := range sortByUnitPrice(untouched) {
		raw, ok := it.Properties[t.cfg.ThresholdProperty]
		if !ok {
			continue
		}
		threshold, err := pricing.Parse(raw)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("line_item", it.ID.String()).Msg("tier_threshold_invalid")
			continue
		}
		adjusted := c.Subtotal().Sub(it.Variant.Price.MulInt(t.cfg.QuantityToDiscount))
		if adjusted.LessThan(threshold) {
			continue
		}
		if err := t.cfg.Discount.Apply(ctx, it); err != nil {
			return err
		}
		applied++
	}
	obs.AddDiscountedItems(t.cfg.Name, applied)

	rejectCode(ctx, t.cfg.Name, c.DiscountCode(), t.cfg.CouponPreventMessage)
	return nil
}
