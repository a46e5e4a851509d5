package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-promo/internal/obs"
)

func TestMain(m *testing.M) {
	obs.MustRegisterPromoMetrics("test", prometheus.NewRegistry())
	m.Run()
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestBreaker(target string) (*Breaker, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	b := NewBreaker(target, 2, 0.5, time.Minute)
	b.now = clock.now
	return b, clock
}

func TestBreakerTransitions(t *testing.T) {
	ctx := context.Background()
	b, clock := newTestBreaker("transitions")

	require.True(t, b.Allow(ctx))
	b.Report(ctx, true)
	require.True(t, b.Allow(ctx))
	b.Report(ctx, false)
	require.Equal(t, Open, b.State())
	require.False(t, b.Allow(ctx))

	clock.t = clock.t.Add(time.Minute)
	require.True(t, b.Allow(ctx))
	require.Equal(t, HalfOpen, b.State())

	b.Report(ctx, false)
	require.Equal(t, Open, b.State())

	clock.t = clock.t.Add(time.Minute)
	require.True(t, b.Allow(ctx))
	b.Report(ctx, true)
	require.Equal(t, Closed, b.State())

	require.Equal(t, 1.0, testutil.ToFloat64(obs.BreakerTransitionsTotal.WithLabelValues("transitions", "closed", "open")))
	require.Equal(t, 1.0, testutil.ToFloat64(obs.BreakerTransitionsTotal.WithLabelValues("transitions", "half_open", "open")))
}

func TestBreakerMetrics(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBreaker("metrics")
	require.Equal(t, 0.0, testutil.ToFloat64(obs.BreakerState.WithLabelValues("metrics")))

	b.Report(ctx, false)
	b.Report(ctx, false)
	require.Equal(t, 1.0, testutil.ToFloat64(obs.BreakerState.WithLabelValues("metrics")))
	require.Equal(t, 1.0, testutil.ToFloat64(obs.BreakerTransitionsTotal.WithLabelValues("metrics", "closed", "open")))
}

func TestBreakerDo(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBreaker("do")
	boom := errors.New("boom")

	calls := 0
	fn := func(context.Context) error {
		calls++
		return boom
	}
	require.ErrorIs(t, b.Do(ctx, fn), boom)
	require.ErrorIs(t, b.Do(ctx, fn), boom)
	require.ErrorIs(t, b.Do(ctx, fn), ErrOpenCircuit)
	require.Equal(t, 2, calls)
}

func TestNilBreakerAllowsEverything(t *testing.T) {
	var b *Breaker
	require.True(t, b.Allow(context.Background()))
	require.Equal(t, Closed, b.State())
	require.NoError(t, b.Do(context.Background(), func(context.Context) error { return nil }))
}
