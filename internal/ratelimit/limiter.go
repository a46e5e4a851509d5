package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	limiter "github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	limiterredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// Decision is the outcome of one rate limit check.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Limiter counts one request against key.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// Ulule adapts a ulule/limiter instance.
type Ulule struct {
	L *limiter.Limiter
}

// New parses a formatted rate such as "100-M" and stores counters in Redis
// when client is set, in process memory otherwise.
func New(rate string, client *redis.Client, prefix string) (Ulule, error) {
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return Ulule{}, fmt.Errorf("parse rate limit %q: %w", rate, err)
	}
	opts := limiter.StoreOptions{Prefix: prefix}
	var store limiter.Store
	if client != nil {
		store, err = limiterredis.NewStoreWithOptions(client, opts)
		if err != nil {
			return Ulule{}, fmt.Errorf("rate limit store: %w", err)
		}
	} else {
		store = memory.NewStoreWithOptions(opts)
	}
	return Ulule{L: limiter.New(store, parsed)}, nil
}

// Allow implements Limiter.
func (u Ulule) Allow(ctx context.Context, key string) (Decision, error) {
	if u.L == nil {
		return Decision{Allowed: true}, nil
	}
	lc, err := u.L.Get(ctx, key)
	if err != nil {
		return Decision{}, err
	}
	return Decision{
		Allowed:   !lc.Reached,
		Limit:     int(lc.Limit),
		Remaining: int(lc.Remaining),
		ResetAt:   time.Unix(lc.Reset, 0),
	}, nil
}
