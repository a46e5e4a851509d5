package promo

import (
	"context"

	"github.com/noah-isme/toko-promo/internal/cart"
)

// DiscountLoop applies a discount to the first n units of a list of items.
type DiscountLoop struct {
	Discount Discount
}

// Run walks items in order and discounts units until n is exhausted. The item
// straddling the boundary is split and only its split-off part is discounted.
// It returns the number of lines discounted.
func (l DiscountLoop) Run(ctx context.Context, c *cart.Cart, items []*cart.LineItem, n int) (int, error) {
	applied := 0
	for _, it := range items {
		if n <= 0 {
			break
		}
		if it.Quantity > n {
			sibling, err := splitOff(c, it, n)
			if err != nil {
				return applied, err
			}
			if err := l.Discount.Apply(ctx, sibling); err != nil {
				return applied, err
			}
			return applied + 1, nil
		}
		if err := l.Discount.Apply(ctx, it); err != nil {
			return applied, err
		}
		applied++
		n -= it.Quantity
	}
	return applied, nil
}
