package promo

import (
	"context"

	"github.com/noah-isme/toko-promo/internal/cart"
	"github.com/noah-isme/toko-promo/internal/obs"
)

// DefaultOptInValue is the property value the storefront sets on bundle lines.
const DefaultOptInValue = "Yes"

// BundleItem is one required product of a bundle.
type BundleItem struct {
	ProductID      int64
	QuantityNeeded int
}

// BundleConfig parameterises a BundleCampaign.
type BundleConfig struct {
	Name          string
	Items         []BundleItem
	Property      string
	PropertyValue string
	Discount      Discount
}

// BundleCampaign discounts complete bundles of distinct products. Surplus
// units beyond the last complete bundle stay at full price.
type BundleCampaign struct {
	cfg  BundleConfig
	loop DiscountLoop
}

// NewBundleCampaign validates cfg.
func NewBundleCampaign(cfg BundleConfig) (*BundleCampaign, error) {
	if cfg.Discount == nil {
		return nil, invalidConfig("bundle campaign %q needs a discount", cfg.Name)
	}
	if len(cfg.Items) == 0 {
		return nil, invalidConfig("bundle campaign %q has no items", cfg.Name)
	}
	if cfg.Property == "" {
		return nil, invalidConfig("bundle campaign %q needs an opt-in property", cfg.Name)
	}
	if cfg.PropertyValue == "" {
		cfg.PropertyValue = DefaultOptInValue
	}
	seen := make(map[int64]struct{}, len(cfg.Items))
	for _, item := range cfg.Items {
		if item.QuantityNeeded < 1 {
			return nil, invalidConfig("bundle campaign %q product %d quantity %d must be positive", cfg.Name, item.ProductID, item.QuantityNeeded)
		}
		if _, dup := seen[item.ProductID]; dup {
			return nil, invalidConfig("bundle campaign %q lists product %d twice", cfg.Name, item.ProductID)
		}
		seen[item.ProductID] = struct{}{}
	}
	return &BundleCampaign{cfg: cfg, loop: DiscountLoop{Discount: cfg.Discount}}, nil
}

func (b *BundleCampaign) Name() string { return b.cfg.Name }

func (b *BundleCampaign) Kind() Kind { return KindBundle }

type bundleSlot struct {
	productID int64
	needed    int
	total     int
	items     []*cart.LineItem
}

// slots collects opted-in, untouched lines per required product in
// configuration order.
func (b *BundleCampaign) slots(c *cart.Cart) []*bundleSlot {
	slots := make([]*bundleSlot, 0, len(b.cfg.Items))
	byProduct := make(map[int64]*bundleSlot, len(b.cfg.Items))
	for _, item := range b.cfg.Items {
		s := &bundleSlot{productID: item.ProductID, needed: item.QuantityNeeded}
		slots = append(slots, s)
		byProduct[item.ProductID] = s
	}
	for _, it := range c.LineItems() {
		if it.PriceChanged() {
			continue
		}
		s, ok := byProduct[it.Variant.Product.ID]
		if !ok {
			continue
		}
		if v, ok := it.Properties[b.cfg.Property]; !ok || v != b.cfg.PropertyValue {
			continue
		}
		s.items = append(s.items, it)
		s.total += it.Quantity
	}
	return slots
}

// bundleCount is the number of complete bundles the slots can form.
func bundleCount(slots []*bundleSlot) int {
	count := -1
	for _, s := range slots {
		n := s.total / s.needed
		if count < 0 || n < count {
			count = n
		}
	}
	if count < 0 {
		return 0
	}
	return count
}

// Run implements Campaign.
func (b *BundleCampaign) Run(ctx context.Context, c *cart.Cart) error {
	slots := b.slots(c)
	bundles := bundleCount(slots)
	if bundles == 0 {
		return nil
	}
	for _, s := range slots {
		applied, err := b.loop.Run(ctx, c, s.items, s.needed*bundles)
		obs.AddDiscountedItems(b.cfg.Name, applied)
		if err != nil {
			return err
		}
	}
	return nil
}
