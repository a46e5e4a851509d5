package promo

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-promo/internal/cart"
	"github.com/noah-isme/toko-promo/internal/pricing"
)

type lineOpt func(*cart.LineItem)

func withProps(kv ...string) lineOpt {
	return func(li *cart.LineItem) {
		for i := 0; i+1 < len(kv); i += 2 {
			li.Properties[kv[i]] = kv[i+1]
		}
	}
}

func withTags(tags ...string) lineOpt {
	return func(li *cart.LineItem) { li.Variant.Product.Tags = tags }
}

func newLine(t *testing.T, productID int64, price string, qty int, opts ...lineOpt) *cart.LineItem {
	t.Helper()
	variant := cart.Variant{
		ID:      productID*100 + 1,
		Price:   pricing.MustParse(price),
		Product: cart.Product{ID: productID, Title: "product", Type: "Shirt", Vendor: "BYLT"},
	}
	li, err := cart.NewLineItem(variant, qty, nil)
	require.NoError(t, err)
	for _, opt := range opts {
		opt(li)
	}
	return li
}

func money(t *testing.T, value string) pricing.Money {
	t.Helper()
	m, err := pricing.Parse(value)
	require.NoError(t, err)
	return m
}

func requirePrice(t *testing.T, want string, li *cart.LineItem) {
	t.Helper()
	require.True(t, li.LinePrice().Equal(money(t, want)), "want line price %s, got %s", want, li.LinePrice())
}

func percentOff(t *testing.T, percent int64, message string) Discount {
	t.Helper()
	d, err := NewPercentageDiscount(decimal.NewFromInt(percent), message)
	require.NoError(t, err)
	return d
}

func totalQuantity(items []*cart.LineItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

var ctx = context.Background()
