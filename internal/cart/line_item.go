package cart

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/noah-isme/toko-promo/internal/pricing"
)

// ErrInvalidOperation indicates a facade call that violates the cart invariants,
// such as a negative line price or a split outside (0, quantity).
var ErrInvalidOperation = errors.New("invalid cart operation")

// Product carries the catalog attributes selectors match on.
type Product struct {
	ID     int64
	Title  string
	Tags   []string
	Type   string
	Vendor string
}

// Variant is the purchasable unit of a product.
type Variant struct {
	ID      int64
	Price   pricing.Money
	Product Product
}

// PriceChange records one line price mutation and the customer-facing reason.
type PriceChange struct {
	From    pricing.Money
	To      pricing.Money
	Message string
}

// LineItem is one cart row.
type LineItem struct {
	ID            uuid.UUID
	Variant       Variant
	Quantity      int
	Properties    map[string]string
	SellingPlanID *int64

	linePrice     pricing.Money
	originalPrice pricing.Money
	changes       []PriceChange
}

// NewLineItem creates an undiscounted line whose line price is unit price times quantity.
func NewLineItem(variant Variant, quantity int, properties map[string]string) (*LineItem, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity %d must be positive: %w", quantity, ErrInvalidOperation)
	}
	if variant.Price.IsNegative() {
		return nil, fmt.Errorf("variant %d has negative price: %w", variant.ID, ErrInvalidOperation)
	}
	if properties == nil {
		properties = map[string]string{}
	}
	price := variant.Price.MulInt(quantity)
	return &LineItem{
		ID:            uuid.New(),
		Variant:       variant,
		Quantity:      quantity,
		Properties:    properties,
		linePrice:     price,
		originalPrice: price,
	}, nil
}

// LinePrice returns the current, possibly discounted, price of the whole line.
func (li *LineItem) LinePrice() pricing.Money { return li.linePrice }

// OriginalLinePrice returns unit price times quantity.
func (li *LineItem) OriginalLinePrice() pricing.Money { return li.originalPrice }

// PriceChanged reports whether any campaign has already changed the line price.
func (li *LineItem) PriceChanged() bool { return len(li.changes) > 0 }

// Changes returns the price change history in application order.
func (li *LineItem) Changes() []PriceChange { return slices.Clone(li.changes) }

// ChangeLinePrice sets a new line price and records the message.
func (li *LineItem) ChangeLinePrice(price pricing.Money, message string) error {
	if price.IsNegative() {
		return fmt.Errorf("line item %s: price %s is negative: %w", li.ID, price, ErrInvalidOperation)
	}
	li.changes = append(li.changes, PriceChange{From: li.linePrice, To: price, Message: message})
	li.linePrice = price
	return nil
}

// Split moves take units into a new sibling line and returns it. The sibling's
// line price is the proportional share rounded to cents; the receiver keeps the
// unrounded remainder so the pair always sums exactly to the pre-split price,
// even when that price carries sub-cent digits from a percentage discount. The
// caller is responsible for inserting the sibling into the cart.
func (li *LineItem) Split(take int) (*LineItem, error) {
	if take <= 0 || take >= li.Quantity {
		return nil, fmt.Errorf("split %d of %d: %w", take, li.Quantity, ErrInvalidOperation)
	}
	share := li.linePrice.MulInt(take).DivInt(li.Quantity).Round(2)
	sibling := &LineItem{
		ID:            uuid.New(),
		Variant:       li.Variant,
		Quantity:      take,
		Properties:    maps.Clone(li.Properties),
		SellingPlanID: li.SellingPlanID,
		linePrice:     share,
		originalPrice: li.Variant.Price.MulInt(take),
		changes:       slices.Clone(li.changes),
	}
	li.Quantity -= take
	li.linePrice = li.linePrice.Sub(share)
	li.originalPrice = li.Variant.Price.MulInt(li.Quantity)
	return sibling, nil
}
