package promo

import (
	"context"

	"github.com/noah-isme/toko-promo/internal/cart"
	"github.com/noah-isme/toko-promo/internal/obs"
)

// BogoCampaign discounts groups of identical products, each product partitioned
// on its own.
type BogoCampaign struct {
	name        string
	selector    Selector
	discount    Discount
	partitioner Partitioner
}

// NewBogoCampaign builds a BOGO campaign. The selector usually combines an
// IDSelector and a PropertySelector with AllOf.
func NewBogoCampaign(name string, selector Selector, discount Discount, partitioner Partitioner) (*BogoCampaign, error) {
	if selector == nil || discount == nil || partitioner == nil {
		return nil, invalidConfig("bogo campaign %q needs a selector, discount and partitioner", name)
	}
	return &BogoCampaign{name: name, selector: selector, discount: discount, partitioner: partitioner}, nil
}

func (b *BogoCampaign) Name() string { return b.name }

func (b *BogoCampaign) Kind() Kind { return KindBogo }

// Run implements Campaign.
func (b *BogoCampaign) Run(ctx context.Context, c *cart.Cart) error {
	eligible := filterItems(c.LineItems(), func(it *cart.LineItem) bool {
		return !it.PriceChanged() && b.selector.Match(it)
	})
	groups := groupByProduct(eligible)
	for _, g := range groups {
		selected, err := b.partitioner.Partition(ctx, c, g.items)
		if err != nil {
			return err
		}
		for _, it := range selected {
			if err := b.discount.Apply(ctx, it); err != nil {
				return err
			}
		}
		obs.AddDiscountedItems(b.name, len(selected))
	}
	return nil
}

type productGroup struct {
	productID int64
	items     []*cart.LineItem
}

// groupByProduct groups items by product id in one pass. Groups follow the
// first appearance of each product and keep cart order inside a group.
func groupByProduct(items []*cart.LineItem) []productGroup {
	index := make(map[int64]int)
	var groups []productGroup
	for _, it := range items {
		id := it.Variant.Product.ID
		pos, ok := index[id]
		if !ok {
			pos = len(groups)
			index[id] = pos
			groups = append(groups, productGroup{productID: id})
		}
		groups[pos].items = append(groups[pos].items, it)
	}
	return groups
}
