package cart

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-promo/internal/pricing"
)

func newItem(t *testing.T, productID int64, price string, qty int) *LineItem {
	t.Helper()
	item, err := NewLineItem(Variant{ID: productID * 10, Price: pricing.MustParse(price), Product: Product{ID: productID}}, qty, map[string]string{"k": "v"})
	require.NoError(t, err)
	return item
}

func TestSplitPreservesQuantityAndPrice(t *testing.T) {
	for _, tc := range []struct {
		name  string
		price string
		qty   int
		take  int
	}{
		{"even", "10", 7, 6},
		{"single", "10", 2, 1},
		{"repeating fraction", "3.33", 3, 1},
		{"odd cents", "0.99", 9, 4},
	} {
		t.Run(tc.name, func(t *testing.T) {
			item := newItem(t, 1, tc.price, tc.qty)
			require.NoError(t, item.ChangeLinePrice(item.LinePrice().Sub(pricing.FromCents(1)), "nudge"))
			before := item.LinePrice()

			sibling, err := item.Split(tc.take)
			require.NoError(t, err)
			require.Equal(t, tc.qty, item.Quantity+sibling.Quantity)
			require.Equal(t, tc.take, sibling.Quantity)
			require.True(t, item.LinePrice().Add(sibling.LinePrice()).Equal(before))
			require.True(t, sibling.PriceChanged())
			require.Equal(t, item.Properties, sibling.Properties)
			require.NotEqual(t, item.ID, sibling.ID)
		})
	}
}

func TestSplitOfUntouchedLineKeepsUnitPricing(t *testing.T) {
	item := newItem(t, 1, "10", 7)
	sibling, err := item.Split(6)
	require.NoError(t, err)
	require.True(t, sibling.LinePrice().Equal(pricing.FromInt(60)))
	require.True(t, item.LinePrice().Equal(pricing.FromInt(10)))
	require.False(t, sibling.PriceChanged())

	sibling.Properties["k"] = "changed"
	require.Equal(t, "v", item.Properties["k"])
}

func TestSplitOfUnroundedLineKeepsExactSum(t *testing.T) {
	item := newItem(t, 1, "11.11", 3)
	// 10% off 33.33 leaves a sub-cent line price.
	require.NoError(t, item.ChangeLinePrice(pricing.MustParse("29.997"), "10% off"))

	sibling, err := item.Split(1)
	require.NoError(t, err)
	require.True(t, sibling.LinePrice().Equal(pricing.FromInt(10)))
	require.True(t, item.LinePrice().Equal(pricing.MustParse("19.997")))
	require.True(t, item.LinePrice().Add(sibling.LinePrice()).Equal(pricing.MustParse("29.997")))
}

func TestSplitOutOfRange(t *testing.T) {
	item := newItem(t, 1, "10", 3)
	for _, take := range []int{-1, 0, 3, 4} {
		_, err := item.Split(take)
		require.True(t, errors.Is(err, ErrInvalidOperation), "take %d", take)
	}
	require.Equal(t, 3, item.Quantity)
}

func TestChangeLinePriceRejectsNegative(t *testing.T) {
	item := newItem(t, 1, "10", 1)
	err := item.ChangeLinePrice(pricing.FromInt(-1), "oops")
	require.ErrorIs(t, err, ErrInvalidOperation)
	require.False(t, item.PriceChanged())

	require.NoError(t, item.ChangeLinePrice(pricing.Zero, "free"))
	require.True(t, item.PriceChanged())
	changes := item.Changes()
	require.Len(t, changes, 1)
	require.Equal(t, "free", changes[0].Message)
	require.True(t, changes[0].From.Equal(pricing.FromInt(10)))
}

func TestInsertAfterKeepsSiblingAdjacent(t *testing.T) {
	a := newItem(t, 1, "10", 3)
	b := newItem(t, 2, "5", 1)
	c := New([]*LineItem{a, b}, "")

	snapshot := c.LineItems()
	sibling, err := a.Split(1)
	require.NoError(t, err)
	require.NoError(t, c.InsertAfter(a, sibling))

	require.Equal(t, []*LineItem{a, sibling, b}, c.LineItems())
	require.Len(t, snapshot, 2)
	require.Equal(t, 1, c.IndexOf(sibling))

	require.ErrorIs(t, c.InsertAfter(newItem(t, 3, "1", 1), sibling), ErrInvalidOperation)
	require.ErrorIs(t, c.Insert(9, sibling), ErrInvalidOperation)
}

func TestSubtotalTracksLinePrices(t *testing.T) {
	a := newItem(t, 1, "10", 3)
	b := newItem(t, 2, "5", 2)
	c := New([]*LineItem{a, b}, "  ")
	require.Nil(t, c.DiscountCode())
	require.True(t, c.Subtotal().Equal(pricing.FromInt(40)))

	require.NoError(t, b.ChangeLinePrice(pricing.Zero, "free"))
	require.True(t, c.Subtotal().Equal(pricing.FromInt(30)))

	summary := c.Summary()
	require.True(t, summary.Subtotal.Equal(pricing.FromInt(40)))
	require.True(t, summary.Discount.Equal(pricing.FromInt(10)))
}

func TestDiscountCodeRejectKeepsFirstMessage(t *testing.T) {
	c := New(nil, "PAIGE-10")
	code := c.DiscountCode()
	require.NotNil(t, code)
	code.Reject("first")
	code.Reject("second")
	require.True(t, code.Rejected())
	require.Equal(t, "first", code.RejectionMessage())

	var absent *DiscountCode
	require.False(t, absent.Rejected())
}
