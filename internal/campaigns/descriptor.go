// Package campaigns loads the campaign configuration tables and turns them
// into promo campaigns.
package campaigns

import (
	"github.com/shopspring/decimal"

	"github.com/noah-isme/toko-promo/internal/pricing"
	"github.com/noah-isme/toko-promo/internal/promo"
)

// Document is the root of a campaigns file. Campaigns run in listed order.
type Document struct {
	Campaigns []Descriptor `json:"campaigns" validate:"required,min=1,dive"`
}

// Descriptor is one campaign. Exactly the sub-object named by Kind is set.
type Descriptor struct {
	Name       string      `json:"name" validate:"required"`
	Kind       promo.Kind  `json:"kind" validate:"required,oneof=bogo spend_x_get_y tier_reward bundle"`
	Bogo       *BogoSpec   `json:"bogo,omitempty"`
	SpendXGetY *SpendSpec  `json:"spendXGetY,omitempty"`
	TierReward *TierSpec   `json:"tierReward,omitempty"`
	Bundle     *BundleSpec `json:"bundle,omitempty"`
}

type PropertySpec struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value" validate:"required"`
}

type DiscountSpec struct {
	Type    string          `json:"type" validate:"required"`
	Amount  decimal.Decimal `json:"amount"`
	Message string          `json:"message"`
}

type SelectorSpec struct {
	Match     string   `json:"match" validate:"required"`
	Attribute string   `json:"attribute" validate:"required"`
	Values    []string `json:"values"`
}

type WhitelistSpec struct {
	Match string   `json:"match" validate:"required"`
	Codes []string `json:"codes" validate:"required,min=1"`
}

type BogoSpec struct {
	ProductIDs    []int64      `json:"productIds" validate:"required,min=1,dive,gt=0"`
	Property      PropertySpec `json:"property"`
	Discount      DiscountSpec `json:"discount"`
	PaidItemCount int          `json:"paidItemCount" validate:"min=1"`
}

type SpendSpec struct {
	Threshold            pricing.Money  `json:"threshold"`
	Selector             SelectorSpec   `json:"selector"`
	QuantityToDiscount   int            `json:"quantityToDiscount" validate:"min=1"`
	Discount             DiscountSpec   `json:"discount"`
	CouponPreventMessage string         `json:"couponPreventMessage"`
	Whitelist            *WhitelistSpec `json:"whitelist,omitempty"`
}

type TierSpec struct {
	Selector             SelectorSpec `json:"selector"`
	QuantityToDiscount   int          `json:"quantityToDiscount" validate:"min=1"`
	Discount             DiscountSpec `json:"discount"`
	CouponPreventMessage string       `json:"couponPreventMessage"`
	ThresholdProperty    string       `json:"thresholdProperty,omitempty"`
}

type BundleItemSpec struct {
	ProductID      int64 `json:"productId" validate:"gt=0"`
	QuantityNeeded int   `json:"quantityNeeded" validate:"min=1"`
}

type BundleSpec struct {
	Items         []BundleItemSpec `json:"items" validate:"required,min=1,dive"`
	Property      string           `json:"property" validate:"required"`
	PropertyValue string           `json:"propertyValue,omitempty"`
	Discount      DiscountSpec     `json:"discount"`
}

// variants counts the sub-objects set on d.
func (d Descriptor) variants() int {
	n := 0
	for _, set := range []bool{d.Bogo != nil, d.SpendXGetY != nil, d.TierReward != nil, d.Bundle != nil} {
		if set {
			n++
		}
	}
	return n
}
