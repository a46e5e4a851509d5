package campaigns

import (
	"fmt"

	"github.com/noah-isme/toko-promo/internal/promo"
)

// Build turns a validated document into campaigns in document order.
func Build(doc Document) ([]promo.Campaign, error) {
	if err := Validate(doc); err != nil {
		return nil, err
	}
	out := make([]promo.Campaign, 0, len(doc.Campaigns))
	for i, d := range doc.Campaigns {
		campaign, err := build(d)
		if err != nil {
			return nil, fmt.Errorf("campaign %d %q: %w", i, d.Name, err)
		}
		out = append(out, campaign)
	}
	return out, nil
}

// Runner builds doc and wraps the campaigns in a promo.Runner.
func Runner(doc Document) (*promo.Runner, error) {
	built, err := Build(doc)
	if err != nil {
		return nil, err
	}
	return promo.NewRunner(built...), nil
}

func build(d Descriptor) (promo.Campaign, error) {
	switch d.Kind {
	case promo.KindBogo:
		return buildBogo(d.Name, d.Bogo)
	case promo.KindSpendXGetY:
		return buildSpend(d.Name, d.SpendXGetY)
	case promo.KindTierReward:
		return buildTier(d.Name, d.TierReward)
	case promo.KindBundle:
		return buildBundle(d.Name, d.Bundle)
	}
	return nil, fmt.Errorf("unknown campaign kind %q: %w", d.Kind, promo.ErrInvalidConfiguration)
}

func buildBogo(name string, spec *BogoSpec) (promo.Campaign, error) {
	discount, err := buildDiscount(spec.Discount)
	if err != nil {
		return nil, err
	}
	partitioner, err := promo.NewEveryXPartitioner(spec.PaidItemCount)
	if err != nil {
		return nil, err
	}
	selector := promo.AllOf(
		promo.NewIDSelector(spec.ProductIDs),
		promo.PropertySelector{Key: spec.Property.Key, Value: spec.Property.Value},
	)
	return promo.NewBogoCampaign(name, selector, discount, partitioner)
}

func buildSpend(name string, spec *SpendSpec) (promo.Campaign, error) {
	discount, err := buildDiscount(spec.Discount)
	if err != nil {
		return nil, err
	}
	selector, err := buildSelector(spec.Selector)
	if err != nil {
		return nil, err
	}
	var whitelist *promo.DiscountCodeSelector
	if spec.Whitelist != nil {
		matchType, err := promo.ParseCodeMatchType(spec.Whitelist.Match)
		if err != nil {
			return nil, err
		}
		if whitelist, err = promo.NewDiscountCodeSelector(matchType, spec.Whitelist.Codes); err != nil {
			return nil, err
		}
	}
	return promo.NewSpendXGetYCampaign(promo.SpendXGetYConfig{
		Name:                 name,
		Threshold:            spec.Threshold,
		Selector:             selector,
		QuantityToDiscount:   spec.QuantityToDiscount,
		Discount:             discount,
		CouponPreventMessage: spec.CouponPreventMessage,
		Whitelist:            whitelist,
	})
}

func buildTier(name string, spec *TierSpec) (promo.Campaign, error) {
	discount, err := buildDiscount(spec.Discount)
	if err != nil {
		return nil, err
	}
	selector, err := buildSelector(spec.Selector)
	if err != nil {
		return nil, err
	}
	return promo.NewTierRewardCampaign(promo.TierRewardConfig{
		Name:                 name,
		Selector:             selector,
		QuantityToDiscount:   spec.QuantityToDiscount,
		Discount:             discount,
		CouponPreventMessage: spec.CouponPreventMessage,
		ThresholdProperty:    spec.ThresholdProperty,
	})
}

func buildBundle(name string, spec *BundleSpec) (promo.Campaign, error) {
	discount, err := buildDiscount(spec.Discount)
	if err != nil {
		return nil, err
	}
	items := make([]promo.BundleItem, 0, len(spec.Items))
	for _, it := range spec.Items {
		items = append(items, promo.BundleItem{ProductID: it.ProductID, QuantityNeeded: it.QuantityNeeded})
	}
	return promo.NewBundleCampaign(promo.BundleConfig{
		Name:          name,
		Items:         items,
		Property:      spec.Property,
		PropertyValue: spec.PropertyValue,
		Discount:      discount,
	})
}

func buildDiscount(spec DiscountSpec) (promo.Discount, error) {
	kind, err := promo.ParseDiscountKind(spec.Type)
	if err != nil {
		return nil, err
	}
	return promo.NewDiscount(kind, spec.Amount, spec.Message)
}

func buildSelector(spec SelectorSpec) (promo.Selector, error) {
	matchType, err := promo.ParseMatchType(spec.Match)
	if err != nil {
		return nil, err
	}
	attribute, err := promo.ParseAttribute(spec.Attribute)
	if err != nil {
		return nil, err
	}
	return promo.NewProductSelector(matchType, attribute, spec.Values)
}

// Describe lists name and kind of each campaign, used by the campaigns listing.
func Describe(campaigns []promo.Campaign) []Summary {
	out := make([]Summary, 0, len(campaigns))
	for _, c := range campaigns {
		out = append(out, Summary{Name: c.Name(), Kind: c.Kind()})
	}
	return out
}

// Summary is the public view of a configured campaign.
type Summary struct {
	Name string     `json:"name"`
	Kind promo.Kind `json:"kind"`
}
