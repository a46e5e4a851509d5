package promo

import (
	"slices"
	"strconv"
	"strings"

	"github.com/noah-isme/toko-promo/internal/cart"
)

// Selector decides whether a line item is eligible for a campaign.
type Selector interface {
	Match(item *cart.LineItem) bool
}

// SelectorFunc adapts a plain function to Selector.
type SelectorFunc func(item *cart.LineItem) bool

// Match implements Selector.
func (f SelectorFunc) Match(item *cart.LineItem) bool { return f(item) }

// AllOf matches when every selector matches.
func AllOf(selectors ...Selector) Selector {
	return SelectorFunc(func(item *cart.LineItem) bool {
		for _, s := range selectors {
			if !s.Match(item) {
				return false
			}
		}
		return true
	})
}

// IDSelector matches line items whose product id is in a fixed set.
type IDSelector struct {
	ids map[int64]struct{}
}

// NewIDSelector builds an IDSelector. Duplicate ids are harmless.
func NewIDSelector(productIDs []int64) IDSelector {
	ids := make(map[int64]struct{}, len(productIDs))
	for _, id := range productIDs {
		ids[id] = struct{}{}
	}
	return IDSelector{ids: ids}
}

// Match implements Selector.
func (s IDSelector) Match(item *cart.LineItem) bool {
	_, ok := s.ids[item.Variant.Product.ID]
	return ok
}

// PropertySelector matches line items carrying Key with exactly Value.
type PropertySelector struct {
	Key   string
	Value string
}

// Match implements Selector.
func (s PropertySelector) Match(item *cart.LineItem) bool {
	v, ok := item.Properties[s.Key]
	return ok && v == s.Value
}

// MatchType controls whether a ProductSelector keeps or drops matching values.
type MatchType int

const (
	MatchInclude MatchType = iota + 1
	MatchExclude
)

var matchTypeNames = map[MatchType]string{
	MatchInclude: "include",
	MatchExclude: "exclude",
}

func (m MatchType) String() string { return matchTypeNames[m] }

// ParseMatchType resolves "include" or "exclude".
func ParseMatchType(value string) (MatchType, error) {
	normalized := normalize(value)
	for m, name := range matchTypeNames {
		if name == normalized {
			return m, nil
		}
	}
	return 0, invalidConfig("unknown selector match type %q", value)
}

// Attribute is the product attribute a ProductSelector compares.
type Attribute int

const (
	AttrTag Attribute = iota + 1
	AttrType
	AttrVendor
	AttrProductID
	AttrVariantID
	AttrSubscription
	AttrAll
)

var attributeNames = map[Attribute]string{
	AttrTag:          "tag",
	AttrType:         "type",
	AttrVendor:       "vendor",
	AttrProductID:    "product_id",
	AttrVariantID:    "variant_id",
	AttrSubscription: "subscription",
	AttrAll:          "all",
}

func (a Attribute) String() string { return attributeNames[a] }

// ParseAttribute resolves an attribute name such as "tag" or "variant_id".
func ParseAttribute(value string) (Attribute, error) {
	normalized := normalize(value)
	for a, name := range attributeNames {
		if name == normalized {
			return a, nil
		}
	}
	return 0, invalidConfig("unknown product selector type %q", value)
}

// ProductSelector matches line items on one product attribute.
type ProductSelector struct {
	matchType MatchType
	attribute Attribute
	values    []string
	ids       map[int64]struct{}
}

// NewProductSelector validates the attribute and values up front so Match
// cannot fail. Id attributes require numeric values.
func NewProductSelector(matchType MatchType, attribute Attribute, values []string) (*ProductSelector, error) {
	if _, ok := matchTypeNames[matchType]; !ok {
		return nil, invalidConfig("unknown selector match type %d", int(matchType))
	}
	if _, ok := attributeNames[attribute]; !ok {
		return nil, invalidConfig("unknown product selector type %d", int(attribute))
	}
	s := &ProductSelector{matchType: matchType, attribute: attribute}
	switch attribute {
	case AttrProductID, AttrVariantID:
		s.ids = make(map[int64]struct{}, len(values))
		for _, v := range values {
			id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				return nil, invalidConfig("%s selector value %q is not an id", attribute, v)
			}
			s.ids[id] = struct{}{}
		}
	default:
		s.values = make([]string, 0, len(values))
		for _, v := range values {
			s.values = append(s.values, normalize(v))
		}
	}
	return s, nil
}

// Match implements Selector.
func (s *ProductSelector) Match(item *cart.LineItem) bool {
	product := item.Variant.Product
	switch s.attribute {
	case AttrTag:
		return s.keep(slices.ContainsFunc(product.Tags, func(tag string) bool {
			return slices.Contains(s.values, normalize(tag))
		}))
	case AttrType:
		return s.keep(slices.Contains(s.values, normalize(product.Type)))
	case AttrVendor:
		return s.keep(slices.Contains(s.values, normalize(product.Vendor)))
	case AttrProductID:
		_, ok := s.ids[product.ID]
		return s.keep(ok)
	case AttrVariantID:
		_, ok := s.ids[item.Variant.ID]
		return s.keep(ok)
	case AttrSubscription:
		return item.SellingPlanID != nil
	case AttrAll:
		return true
	}
	return false
}

func (s *ProductSelector) keep(found bool) bool {
	return found == (s.matchType == MatchInclude)
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
