package promo

import (
	"context"
	"slices"

	"github.com/noah-isme/toko-promo/internal/cart"
)

// Partitioner picks which units of a group of line items receive a discount,
// splitting lines in the cart when only part of one qualifies.
type Partitioner interface {
	Partition(ctx context.Context, c *cart.Cart, items []*cart.LineItem) ([]*cart.LineItem, error)
}

// EveryXPartitioner discounts whole multiples of PaidItemCount units,
// cheapest units first.
type EveryXPartitioner struct {
	PaidItemCount int
}

// NewEveryXPartitioner requires a positive group size.
func NewEveryXPartitioner(paidItemCount int) (EveryXPartitioner, error) {
	if paidItemCount < 1 {
		return EveryXPartitioner{}, invalidConfig("paid item count %d must be positive", paidItemCount)
	}
	return EveryXPartitioner{PaidItemCount: paidItemCount}, nil
}

// Partition implements Partitioner. Fewer than PaidItemCount units yields no items.
func (p EveryXPartitioner) Partition(_ context.Context, c *cart.Cart, items []*cart.LineItem) ([]*cart.LineItem, error) {
	if p.PaidItemCount < 1 {
		return nil, invalidConfig("paid item count %d must be positive", p.PaidItemCount)
	}
	sorted := sortByUnitPrice(items)
	total := 0
	for _, it := range sorted {
		total += it.Quantity
	}
	remaining := total - total%p.PaidItemCount

	var discounted []*cart.LineItem
	for _, it := range sorted {
		if remaining == 0 {
			break
		}
		selected := it
		if it.Quantity > remaining {
			sibling, err := splitOff(c, it, remaining)
			if err != nil {
				return nil, err
			}
			selected = sibling
		}
		remaining -= selected.Quantity
		discounted = append(discounted, selected)
	}
	return discounted, nil
}

// sortByUnitPrice returns a copy ordered by ascending unit price, keeping cart
// order between equal prices.
func sortByUnitPrice(items []*cart.LineItem) []*cart.LineItem {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b *cart.LineItem) int {
		return a.Variant.Price.Cmp(b.Variant.Price)
	})
	return sorted
}

// splitOff splits take units off item and inserts them right after it.
func splitOff(c *cart.Cart, item *cart.LineItem, take int) (*cart.LineItem, error) {
	sibling, err := item.Split(take)
	if err != nil {
		return nil, err
	}
	if err := c.InsertAfter(item, sibling); err != nil {
		return nil, err
	}
	return sibling, nil
}
