package pricing

// Item describes a line item used for summary calculation.
type Item struct {
	Qty       int
	UnitPrice Money
	LinePrice Money
}

// Summary aggregates computed pricing components.
type Summary struct {
	Subtotal Money `json:"subtotal"`
	Discount Money `json:"discount"`
	Total    Money `json:"total"`
}

// Compute totals the undiscounted subtotal against the current line prices.
func Compute(items []Item) Summary {
	var subtotal, total Money
	for _, it := range items {
		if it.Qty <= 0 {
			continue
		}
		subtotal = subtotal.Add(it.UnitPrice.MulInt(it.Qty))
		total = total.Add(it.LinePrice)
	}
	discount := subtotal.Sub(total)
	if discount.IsNegative() {
		discount = Zero
	}
	return Summary{
		Subtotal: subtotal,
		Discount: discount,
		Total:    total,
	}
}
