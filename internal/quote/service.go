package quote

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	validator "github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/toko-promo/internal/campaigns"
	"github.com/noah-isme/toko-promo/internal/cart"
	"github.com/noah-isme/toko-promo/internal/common"
	"github.com/noah-isme/toko-promo/internal/obs"
	"github.com/noah-isme/toko-promo/internal/promo"
	"github.com/noah-isme/toko-promo/internal/resilience"
)

// Service evaluates carts against the configured campaigns.
type Service struct {
	runner    *promo.Runner
	campaigns []campaigns.Summary
	cache     *Cache
	validate  *validator.Validate
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Campaigns []promo.Campaign
	Cache     *Cache
	Validator *validator.Validate
}

// NewService builds a Service running cfg.Campaigns in order.
func NewService(cfg ServiceConfig) (*Service, error) {
	if len(cfg.Campaigns) == 0 {
		return nil, fmt.Errorf("quote service needs at least one campaign: %w", promo.ErrInvalidConfiguration)
	}
	v := cfg.Validator
	if v == nil {
		v = validator.New(validator.WithRequiredStructEnabled())
	}
	return &Service{
		runner:    promo.NewRunner(cfg.Campaigns...),
		campaigns: campaigns.Describe(cfg.Campaigns),
		cache:     cfg.Cache,
		validate:  v,
	}, nil
}

// Campaigns lists the configured campaigns in run order.
func (s *Service) Campaigns() []campaigns.Summary {
	return s.campaigns
}

// Evaluate runs every campaign over the cart described by req. Identical
// requests are answered from the cache when one is configured.
func (s *Service) Evaluate(ctx context.Context, req CartRequest) (CartResponse, error) {
	ctx, span := obs.Tracer("quote").Start(ctx, "quote.evaluate",
		trace.WithAttributes(attribute.Int("quote.line_items", len(req.LineItems))))
	defer span.End()
	logger := zerolog.Ctx(ctx)
	if err := s.validate.Struct(req); err != nil {
		obs.IncCartEvaluation("invalid")
		return CartResponse{}, common.BadRequest("invalid cart", err)
	}
	for i, li := range req.LineItems {
		if li.Price.IsNegative() {
			obs.IncCartEvaluation("invalid")
			return CartResponse{}, common.BadRequest(fmt.Sprintf("line item %d has a negative price", i), nil)
		}
	}

	key, err := Key(req)
	if err != nil {
		return CartResponse{}, common.NewAppError(common.CodeInternal, "unable to hash cart", http.StatusInternalServerError, err)
	}
	var cached CartResponse
	if hit, err := s.cache.GetJSON(ctx, key, &cached); errors.Is(err, resilience.ErrOpenCircuit) {
		obs.IncQuoteCache("bypass")
	} else if err != nil {
		obs.IncQuoteCache("error")
		logger.Warn().Err(err).Msg("quote_cache_get")
	} else if hit {
		obs.IncQuoteCache("hit")
		span.SetAttributes(attribute.Bool("quote.cache_hit", true))
		obs.IncCartEvaluation("ok")
		return cached, nil
	} else if s.cache.enabled() {
		obs.IncQuoteCache("miss")
	}

	c, err := req.toCart()
	if err != nil {
		obs.IncCartEvaluation("invalid")
		return CartResponse{}, common.BadRequest("invalid cart", err)
	}
	if err := s.runner.Run(ctx, c); err != nil {
		obs.IncCartEvaluation("error")
		return CartResponse{}, mapRunError(err)
	}
	resp := fromCart(c)
	obs.IncCartEvaluation("ok")
	logger.Debug().
		Int("line_items", len(resp.LineItems)).
		Str("discount", resp.Summary.Discount.String()).
		Msg("cart_evaluated")

	if err := s.cache.SetJSON(ctx, key, resp); err != nil && !errors.Is(err, resilience.ErrOpenCircuit) {
		obs.IncQuoteCache("error")
		logger.Warn().Err(err).Msg("quote_cache_set")
	}
	return resp, nil
}

func mapRunError(err error) error {
	switch {
	case errors.Is(err, promo.ErrInvalidConfiguration):
		return common.NewAppError(common.CodeInvalidConfiguration, "campaign configuration is invalid", http.StatusInternalServerError, err)
	case errors.Is(err, cart.ErrInvalidOperation):
		return common.NewAppError(common.CodeInvalidOperation, "campaign produced an invalid cart operation", http.StatusInternalServerError, err)
	default:
		return common.NewAppError(common.CodeInternal, "unable to evaluate cart", http.StatusInternalServerError, err)
	}
}
