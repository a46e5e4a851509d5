package quote

import (
	"github.com/noah-isme/toko-promo/internal/campaigns"
	"github.com/noah-isme/toko-promo/internal/cart"
	"github.com/noah-isme/toko-promo/internal/pricing"
)

// CartRequest is the cart submitted for evaluation.
type CartRequest struct {
	LineItems    []LineItemRequest `json:"lineItems" validate:"required,min=1,max=250,dive"`
	DiscountCode string            `json:"discountCode,omitempty" validate:"max=255"`
}

// LineItemRequest describes one cart row.
type LineItemRequest struct {
	VariantID     int64             `json:"variantId" validate:"gt=0"`
	ProductID     int64             `json:"productId" validate:"gt=0"`
	Title         string            `json:"title,omitempty"`
	Tags          []string          `json:"tags,omitempty"`
	ProductType   string            `json:"productType,omitempty"`
	Vendor        string            `json:"vendor,omitempty"`
	Price         pricing.Money     `json:"price"`
	Quantity      int               `json:"quantity" validate:"min=1"`
	Properties    map[string]string `json:"properties,omitempty"`
	SellingPlanID *int64            `json:"sellingPlanId,omitempty"`
}

// CartResponse is the evaluated cart.
type CartResponse struct {
	LineItems    []LineItemResponse    `json:"lineItems"`
	DiscountCode *DiscountCodeResponse `json:"discountCode,omitempty"`
	Summary      pricing.Summary       `json:"summary"`
}

// LineItemResponse is one evaluated row. Split lines appear as separate rows.
type LineItemResponse struct {
	ID                string            `json:"id"`
	VariantID         int64             `json:"variantId"`
	ProductID         int64             `json:"productId"`
	Title             string            `json:"title,omitempty"`
	Quantity          int               `json:"quantity"`
	UnitPrice         pricing.Money     `json:"unitPrice"`
	OriginalLinePrice pricing.Money     `json:"originalLinePrice"`
	LinePrice         pricing.Money     `json:"linePrice"`
	Properties        map[string]string `json:"properties,omitempty"`
	Messages          []string          `json:"messages,omitempty"`
}

// DiscountCodeResponse reports what happened to the submitted code.
type DiscountCodeResponse struct {
	Code     string `json:"code"`
	Rejected bool   `json:"rejected"`
	Message  string `json:"message,omitempty"`
}

// CampaignsResponse lists the configured campaigns in run order.
type CampaignsResponse struct {
	Campaigns []campaigns.Summary `json:"campaigns"`
}

func (r CartRequest) toCart() (*cart.Cart, error) {
	items := make([]*cart.LineItem, 0, len(r.LineItems))
	for _, in := range r.LineItems {
		li, err := cart.NewLineItem(cart.Variant{
			ID:    in.VariantID,
			Price: in.Price,
			Product: cart.Product{
				ID:     in.ProductID,
				Title:  in.Title,
				Tags:   in.Tags,
				Type:   in.ProductType,
				Vendor: in.Vendor,
			},
		}, in.Quantity, in.Properties)
		if err != nil {
			return nil, err
		}
		li.SellingPlanID = in.SellingPlanID
		items = append(items, li)
	}
	return cart.New(items, r.DiscountCode), nil
}

func fromCart(c *cart.Cart) CartResponse {
	lines := c.LineItems()
	resp := CartResponse{
		LineItems: make([]LineItemResponse, 0, len(lines)),
		Summary:   c.Summary(),
	}
	for _, li := range lines {
		out := LineItemResponse{
			ID:                li.ID.String(),
			VariantID:         li.Variant.ID,
			ProductID:         li.Variant.Product.ID,
			Title:             li.Variant.Product.Title,
			Quantity:          li.Quantity,
			UnitPrice:         li.Variant.Price,
			OriginalLinePrice: li.OriginalLinePrice(),
			LinePrice:         li.LinePrice(),
			Properties:        li.Properties,
		}
		for _, change := range li.Changes() {
			out.Messages = append(out.Messages, change.Message)
		}
		resp.LineItems = append(resp.LineItems, out)
	}
	if code := c.DiscountCode(); code != nil {
		resp.DiscountCode = &DiscountCodeResponse{
			Code:     code.Code,
			Rejected: code.Rejected(),
			Message:  code.RejectionMessage(),
		}
	}
	return resp
}
