package promo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIDSelector(t *testing.T) {
	s := NewIDSelector([]int64{1, 2, 2})
	require.True(t, s.Match(newLine(t, 2, "1", 1)))
	require.False(t, s.Match(newLine(t, 3, "1", 1)))
}

func TestPropertySelectorRequiresKeyAndValue(t *testing.T) {
	s := PropertySelector{Key: "Shirt Bundle", Value: "Yes"}
	require.True(t, s.Match(newLine(t, 1, "1", 1, withProps("Shirt Bundle", "Yes"))))
	require.False(t, s.Match(newLine(t, 1, "1", 1, withProps("Shirt Bundle", "No"))))
	require.False(t, s.Match(newLine(t, 1, "1", 1, withProps("Other", "Yes"))))
}

func TestProductSelector(t *testing.T) {
	plan := int64(77)
	subscribed := newLine(t, 5, "1", 1, withTags(" GWP-Free ", "sale"))
	subscribed.SellingPlanID = &plan
	plain := newLine(t, 6, "1", 1, withTags("core"))

	cases := []struct {
		name      string
		match     MatchType
		attr      Attribute
		values    []string
		wantSub   bool
		wantPlain bool
	}{
		{"tag include is case insensitive", MatchInclude, AttrTag, []string{"gwp-free"}, true, false},
		{"tag exclude", MatchExclude, AttrTag, []string{"GWP-FREE"}, false, true},
		{"type include", MatchInclude, AttrType, []string{" shirt"}, true, true},
		{"vendor exclude", MatchExclude, AttrVendor, []string{"bylt"}, false, false},
		{"product id", MatchInclude, AttrProductID, []string{"6"}, false, true},
		{"variant id exclude", MatchExclude, AttrVariantID, []string{"501"}, false, true},
		{"subscription ignores values", MatchExclude, AttrSubscription, []string{"x"}, true, false},
		{"all", MatchInclude, AttrAll, nil, true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewProductSelector(tc.match, tc.attr, tc.values)
			require.NoError(t, err)
			require.Equal(t, tc.wantSub, s.Match(subscribed))
			require.Equal(t, tc.wantPlain, s.Match(plain))
		})
	}
}

func TestSelectorConfigurationErrors(t *testing.T) {
	_, err := ParseAttribute("colour")
	require.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = ParseMatchType("maybe")
	require.ErrorIs(t, err, ErrInvalidConfiguration)

	attr, err := ParseAttribute(" Variant_ID ")
	require.NoError(t, err)
	require.Equal(t, AttrVariantID, attr)

	_, err = NewProductSelector(MatchInclude, AttrProductID, []string{"abc"})
	require.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = NewProductSelector(MatchInclude, Attribute(42), nil)
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestAllOf(t *testing.T) {
	s := AllOf(NewIDSelector([]int64{1}), PropertySelector{Key: "k", Value: "v"})
	require.True(t, s.Match(newLine(t, 1, "1", 1, withProps("k", "v"))))
	require.False(t, s.Match(newLine(t, 1, "1", 1)))
	require.False(t, s.Match(newLine(t, 2, "1", 1, withProps("k", "v"))))
}

func TestDiscountCodeSelector(t *testing.T) {
	partial, err := NewDiscountCodeSelector(CodeMatchPartial, []string{" paige-"})
	require.NoError(t, err)
	require.True(t, partial.Match("paige-20"))
	require.True(t, partial.Match("VIP-PAIGE-5"))
	require.False(t, partial.Match("SUMMER"))

	exact, err := NewDiscountCodeSelector(CodeMatchExact, []string{"VIP"})
	require.NoError(t, err)
	require.True(t, exact.Match(" vip "))
	require.False(t, exact.Match("VIP2"))

	var none *DiscountCodeSelector
	require.False(t, none.Match("VIP"))

	_, err = ParseCodeMatchType("fuzzy")
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}
