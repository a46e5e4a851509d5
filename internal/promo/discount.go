package promo

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/toko-promo/internal/cart"
	"github.com/noah-isme/toko-promo/internal/pricing"
)

// Discount rewrites the line price of one item. Calling Apply twice on the
// same item compounds the discount; campaigns apply at most once per item.
type Discount interface {
	Apply(ctx context.Context, item *cart.LineItem) error
}

// DiscountKind selects the discount arithmetic.
type DiscountKind int

const (
	DiscountPercent DiscountKind = iota + 1
	DiscountFixed
)

var discountKindNames = map[DiscountKind]string{
	DiscountPercent: "percent",
	DiscountFixed:   "fixed",
}

func (k DiscountKind) String() string { return discountKindNames[k] }

// ParseDiscountKind resolves "percent" or "fixed".
func ParseDiscountKind(value string) (DiscountKind, error) {
	normalized := normalize(value)
	for k, name := range discountKindNames {
		if name == normalized {
			return k, nil
		}
	}
	return 0, invalidConfig("unknown discount type %q", value)
}

// NewDiscount builds the applier for kind. For DiscountPercent amount is the
// percentage off; for DiscountFixed it is the amount off per unit.
func NewDiscount(kind DiscountKind, amount decimal.Decimal, message string) (Discount, error) {
	switch kind {
	case DiscountPercent:
		return NewPercentageDiscount(amount, message)
	case DiscountFixed:
		return NewAmountDiscount(pricing.FromUnits(amount), message)
	default:
		return nil, invalidConfig("unknown discount type %d", int(kind))
	}
}

var hundred = decimal.NewFromInt(100)

// PercentageDiscount takes a percentage off the current line price.
type PercentageDiscount struct {
	factor  decimal.Decimal
	message string
}

// NewPercentageDiscount requires 0 <= percent <= 100.
func NewPercentageDiscount(percent decimal.Decimal, message string) (*PercentageDiscount, error) {
	if percent.IsNegative() || percent.GreaterThan(hundred) {
		return nil, invalidConfig("percentage %s outside 0..100", percent)
	}
	return &PercentageDiscount{
		factor:  decimal.NewFromInt(1).Sub(percent.Shift(-2)),
		message: message,
	}, nil
}

// Apply implements Discount.
func (d *PercentageDiscount) Apply(ctx context.Context, item *cart.LineItem) error {
	before := item.LinePrice()
	if err := item.ChangeLinePrice(before.MulDecimal(d.factor), d.message); err != nil {
		return err
	}
	logDiscount(ctx, item, before)
	return nil
}

// AmountDiscount takes a fixed amount off every unit, never going below zero.
type AmountDiscount struct {
	perUnit pricing.Money
	message string
}

// NewAmountDiscount requires a non-negative amount.
func NewAmountDiscount(perUnit pricing.Money, message string) (*AmountDiscount, error) {
	if perUnit.IsNegative() {
		return nil, invalidConfig("fixed discount %s is negative", perUnit)
	}
	return &AmountDiscount{perUnit: perUnit, message: message}, nil
}

// Apply implements Discount.
func (d *AmountDiscount) Apply(ctx context.Context, item *cart.LineItem) error {
	before := item.LinePrice()
	price := pricing.Max(before.Sub(d.perUnit.MulInt(item.Quantity)), pricing.Zero)
	if err := item.ChangeLinePrice(price, d.message); err != nil {
		return err
	}
	logDiscount(ctx, item, before)
	return nil
}

func logDiscount(ctx context.Context, item *cart.LineItem, before pricing.Money) {
	zerolog.Ctx(ctx).Debug().
		Int64("variant_id", item.Variant.ID).
		Int("quantity", item.Quantity).
		Str("discount", before.Sub(item.LinePrice()).String()).
		Str("line_price", item.LinePrice().String()).
		Msg("line_item_discounted")
}
