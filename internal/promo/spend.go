package promo

import (
	"context"

	"github.com/noah-isme/toko-promo/internal/cart"
	"github.com/noah-isme/toko-promo/internal/obs"
	"github.com/noah-isme/toko-promo/internal/pricing"
)

// SpendXGetYConfig parameterises a SpendXGetYCampaign.
type SpendXGetYConfig struct {
	Name                 string
	Threshold            pricing.Money
	Selector             Selector
	QuantityToDiscount   int
	Discount             Discount
	CouponPreventMessage string
	// Whitelist lists codes that may be combined with the reward. Nil rejects every code.
	Whitelist *DiscountCodeSelector
}

// SpendXGetYCampaign discounts up to QuantityToDiscount of the cheapest
// eligible units once the cart spends Threshold, as long as the cart still
// clears Threshold without the rewarded units.
type SpendXGetYCampaign struct {
	cfg  SpendXGetYConfig
	loop DiscountLoop
}

// NewSpendXGetYCampaign validates cfg.
func NewSpendXGetYCampaign(cfg SpendXGetYConfig) (*SpendXGetYCampaign, error) {
	switch {
	case cfg.Selector == nil || cfg.Discount == nil:
		return nil, invalidConfig("spend campaign %q needs a selector and discount", cfg.Name)
	case cfg.QuantityToDiscount < 1:
		return nil, invalidConfig("spend campaign %q quantity %d must be positive", cfg.Name, cfg.QuantityToDiscount)
	case cfg.Threshold.IsNegative():
		return nil, invalidConfig("spend campaign %q threshold %s is negative", cfg.Name, cfg.Threshold)
	}
	return &SpendXGetYCampaign{cfg: cfg, loop: DiscountLoop{Discount: cfg.Discount}}, nil
}

func (s *SpendXGetYCampaign) Name() string { return s.cfg.Name }

func (s *SpendXGetYCampaign) Kind() Kind { return KindSpendXGetY }

// Run implements Campaign.
func (s *SpendXGetYCampaign) Run(ctx context.Context, c *cart.Cart) error {
	threshold := s.cfg.Threshold
	subtotal := c.Subtotal()
	if subtotal.LessThan(threshold) {
		return nil
	}
	eligible := filterItems(c.LineItems(), func(it *cart.LineItem) bool {
		return !it.PriceChanged() && s.cfg.Selector.Match(it)
	})
	if len(eligible) == 0 {
		return nil
	}
	eligible = sortByUnitPrice(eligible)
	if remainingTotal(subtotal, eligible, s.cfg.QuantityToDiscount).LessThan(threshold) {
		return nil
	}

	if code := c.DiscountCode(); code != nil && !s.cfg.Whitelist.Match(code.Code) {
		rejectCode(ctx, s.cfg.Name, code, s.cfg.CouponPreventMessage)
	}

	applied, err := s.loop.Run(ctx, c, eligible, s.cfg.QuantityToDiscount)
	obs.AddDiscountedItems(s.cfg.Name, applied)
	return err
}

// remainingTotal simulates removing the first n rewarded units from subtotal.
func remainingTotal(subtotal pricing.Money, sorted []*cart.LineItem, n int) pricing.Money {
	total := subtotal
	for _, it := range sorted {
		if n <= 0 {
			break
		}
		if it.Quantity > n {
			total = total.Sub(it.Variant.Price.MulInt(n))
			break
		}
		total = total.Sub(it.LinePrice())
		n -= it.Quantity
	}
	return total
}
