package cart

import (
	"fmt"
	"slices"
	"strings"

	"github.com/noah-isme/toko-promo/internal/pricing"
)

// DiscountCode is a manually entered code attached to the cart.
type DiscountCode struct {
	Code string

	rejected bool
	message  string
}

// Reject marks the code as not applicable. The first message wins.
func (d *DiscountCode) Reject(message string) {
	if d == nil || d.rejected {
		return
	}
	d.rejected = true
	d.message = message
}

// Rejected reports whether a campaign rejected the code.
func (d *DiscountCode) Rejected() bool { return d != nil && d.rejected }

// RejectionMessage returns the message supplied to Reject.
func (d *DiscountCode) RejectionMessage() string {
	if d == nil {
		return ""
	}
	return d.message
}

// Cart is the ordered set of line items evaluated by the campaigns.
type Cart struct {
	items []*LineItem
	code  *DiscountCode
}

// New builds a cart. A blank code is treated as absent.
func New(items []*LineItem, code string) *Cart {
	c := &Cart{items: slices.Clone(items)}
	if trimmed := strings.TrimSpace(code); trimmed != "" {
		c.code = &DiscountCode{Code: trimmed}
	}
	return c
}

// LineItems returns a snapshot of the current line order. Inserting into the
// cart does not affect a snapshot already taken.
func (c *Cart) LineItems() []*LineItem { return slices.Clone(c.items) }

// Len returns the number of lines.
func (c *Cart) Len() int { return len(c.items) }

// DiscountCode returns the applied code or nil.
func (c *Cart) DiscountCode() *DiscountCode { return c.code }

// IndexOf returns the position of item or -1.
func (c *Cart) IndexOf(item *LineItem) int {
	return slices.Index(c.items, item)
}

// Insert places item at pos, shifting later lines.
func (c *Cart) Insert(pos int, item *LineItem) error {
	if item == nil {
		return fmt.Errorf("insert nil line item: %w", ErrInvalidOperation)
	}
	if pos < 0 || pos > len(c.items) {
		return fmt.Errorf("insert at %d of %d: %w", pos, len(c.items), ErrInvalidOperation)
	}
	c.items = slices.Insert(c.items, pos, item)
	return nil
}

// InsertAfter places item immediately after anchor.
func (c *Cart) InsertAfter(anchor, item *LineItem) error {
	idx := c.IndexOf(anchor)
	if idx < 0 {
		return fmt.Errorf("anchor line item not in cart: %w", ErrInvalidOperation)
	}
	return c.Insert(idx+1, item)
}

// Subtotal sums the current line prices.
func (c *Cart) Subtotal() pricing.Money {
	var total pricing.Money
	for _, it := range c.items {
		total = total.Add(it.linePrice)
	}
	return total
}

// Summary reports undiscounted subtotal, discount and total.
func (c *Cart) Summary() pricing.Summary {
	items := make([]pricing.Item, 0, len(c.items))
	for _, it := range c.items {
		items = append(items, pricing.Item{Qty: it.Quantity, UnitPrice: it.Variant.Price, LinePrice: it.linePrice})
	}
	return pricing.Compute(items)
}
