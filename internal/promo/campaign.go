package promo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/toko-promo/internal/cart"
	"github.com/noah-isme/toko-promo/internal/obs"
)

// Kind names a campaign variant.
type Kind string

const (
	KindBogo       Kind = "bogo"
	KindSpendXGetY Kind = "spend_x_get_y"
	KindTierReward Kind = "tier_reward"
	KindBundle     Kind = "bundle"
)

// Campaign mutates line prices of one cart. Campaigns hold no per-run state
// and may be shared across evaluations.
type Campaign interface {
	Name() string
	Kind() Kind
	Run(ctx context.Context, c *cart.Cart) error
}

// Runner applies campaigns to a cart in order. Later campaigns see the splits
// and price changes made by earlier ones.
type Runner struct {
	Campaigns []Campaign
}

// NewRunner builds a runner over campaigns in the given order.
func NewRunner(campaigns ...Campaign) *Runner {
	return &Runner{Campaigns: campaigns}
}

// Run stops at the first failing campaign. Price changes made before the
// failure stay on the cart.
func (r *Runner) Run(ctx context.Context, c *cart.Cart) error {
	if r == nil {
		return nil
	}
	tracer := obs.Tracer("promo")
	for _, campaign := range r.Campaigns {
		name := campaign.Name()
		logger := zerolog.Ctx(ctx).With().Str("campaign", name).Str("kind", string(campaign.Kind())).Logger()
		runCtx, span := tracer.Start(logger.WithContext(ctx), "promo.campaign",
			trace.WithAttributes(
				attribute.String("promo.campaign", name),
				attribute.String("promo.kind", string(campaign.Kind())),
			))
		start := time.Now()
		err := campaign.Run(runCtx, c)
		obs.ObserveCampaign(name, err, time.Since(start))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.End()
			logger.Error().Err(err).Msg("campaign_run")
			return fmt.Errorf("campaign %s: %w", name, err)
		}
		span.SetAttributes(attribute.Int("promo.line_items", c.Len()))
		span.End()
		logger.Debug().Int("line_items", c.Len()).Msg("campaign_run")
	}
	return nil
}

func rejectCode(ctx context.Context, campaign string, code *cart.DiscountCode, message string) {
	if code == nil {
		return
	}
	code.Reject(message)
	obs.IncDiscountCodeRejection(campaign)
	zerolog.Ctx(ctx).Info().Str("code", code.Code).Msg("discount_code_rejected")
}

func filterItems(items []*cart.LineItem, keep func(*cart.LineItem) bool) []*cart.LineItem {
	var out []*cart.LineItem
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
