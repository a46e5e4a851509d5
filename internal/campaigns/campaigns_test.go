package campaigns

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-promo/internal/cart"
	"github.com/noah-isme/toko-promo/internal/pricing"
	"github.com/noah-isme/toko-promo/internal/promo"
)

func TestDefaultTables(t *testing.T) {
	doc, err := Default()
	require.NoError(t, err)
	built, err := Build(doc)
	require.NoError(t, err)
	require.Len(t, built, 17)

	kinds := map[promo.Kind]int{}
	for _, c := range built {
		kinds[c.Kind()]++
	}
	require.Equal(t, map[promo.Kind]int{
		promo.KindBogo:       10,
		promo.KindSpendXGetY: 1,
		promo.KindTierReward: 1,
		promo.KindBundle:     5,
	}, kinds)
	require.Equal(t, promo.KindBogo, built[0].Kind())
	require.Equal(t, promo.KindBundle, built[len(built)-1].Kind())

	summaries := Describe(built)
	require.Equal(t, "shirt-bundle-every-3", summaries[0].Name)
}

func TestDefaultRunnerPricesTankBundle(t *testing.T) {
	doc, err := Default()
	require.NoError(t, err)
	runner, err := Runner(doc)
	require.NoError(t, err)

	li, err := cart.NewLineItem(cart.Variant{
		ID:      1,
		Price:   pricing.MustParse("17.54"),
		Product: cart.Product{ID: 6757518704742, Title: "5-Item Tank Bundle"},
	}, 5, map[string]string{"5 Tanks Bundle": "Yes"})
	require.NoError(t, err)
	c := cart.New([]*cart.LineItem{li}, "")

	require.NoError(t, runner.Run(context.Background(), c))
	require.True(t, li.LinePrice().Equal(pricing.FromInt(75)), "got %s", li.LinePrice())
}

func TestLoadRejectsBadDocuments(t *testing.T) {
	cases := map[string]string{
		"unknown field":    `{"campaigns":[{"name":"a","kind":"bogo","color":"red"}]}`,
		"empty":            `{"campaigns":[]}`,
		"unknown kind":     `{"campaigns":[{"name":"a","kind":"flash_sale"}]}`,
		"missing settings": `{"campaigns":[{"name":"a","kind":"bundle"}]}`,
		"wrong settings": `{"campaigns":[{"name":"a","kind":"bundle","bogo":{"productIds":[1],
			"property":{"key":"k","value":"v"},"discount":{"type":"percent","amount":10},"paidItemCount":2}}]}`,
		"zero paid count": `{"campaigns":[{"name":"a","kind":"bogo","bogo":{"productIds":[1],
			"property":{"key":"k","value":"v"},"discount":{"type":"percent","amount":10},"paidItemCount":0}}]}`,
		"bundle zero quantity": `{"campaigns":[{"name":"a","kind":"bundle","bundle":{"items":[{"productId":1,"quantityNeeded":0}],
			"property":"Kit","discount":{"type":"percent","amount":10}}}]}`,
		"not json": `campaigns`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(strings.NewReader(body))
			require.ErrorIs(t, err, promo.ErrInvalidConfiguration)
		})
	}
}

func TestBuildRejectsUnknownEnums(t *testing.T) {
	cases := map[string]string{
		"attribute": `{"campaigns":[{"name":"a","kind":"tier_reward","tierReward":{
			"selector":{"match":"include","attribute":"colour","values":["red"]},
			"quantityToDiscount":1,"discount":{"type":"percent","amount":100}}}]}`,
		"match type": `{"campaigns":[{"name":"a","kind":"tier_reward","tierReward":{
			"selector":{"match":"maybe","attribute":"tag","values":["x"]},
			"quantityToDiscount":1,"discount":{"type":"percent","amount":100}}}]}`,
		"discount type": `{"campaigns":[{"name":"a","kind":"bundle","bundle":{"items":[{"productId":1,"quantityNeeded":1}],
			"property":"Kit","discount":{"type":"bogus","amount":10}}}]}`,
		"percent range": `{"campaigns":[{"name":"a","kind":"bundle","bundle":{"items":[{"productId":1,"quantityNeeded":1}],
			"property":"Kit","discount":{"type":"percent","amount":150}}}]}`,
		"whitelist match": `{"campaigns":[{"name":"a","kind":"spend_x_get_y","spendXGetY":{"threshold":"50",
			"selector":{"match":"include","attribute":"all"},"quantityToDiscount":1,
			"discount":{"type":"fixed","amount":5},"whitelist":{"match":"fuzzy","codes":["X"]}}}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			doc, err := Load(strings.NewReader(body))
			require.NoError(t, err)
			_, err = Build(doc)
			require.ErrorIs(t, err, promo.ErrInvalidConfiguration)
			require.ErrorContains(t, err, `campaign 0 "a"`)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campaigns.json")
	require.NoError(t, os.WriteFile(path, defaultsJSON, 0o600))
	doc, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, doc.Campaigns, 17)

	spend := doc.Campaigns[10].SpendXGetY
	require.NotNil(t, spend)
	require.True(t, spend.Threshold.Equal(pricing.FromInt(200)))
	require.Equal(t, []string{"PAIGE-"}, spend.Whitelist.Codes)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
