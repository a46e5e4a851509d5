package health

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/noah-isme/toko-promo/internal/common"
)

// Check probes one dependency within timeout.
type Check func(ctx context.Context, timeout time.Duration) error

// Report is the readiness response body.
type Report struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

var ready atomic.Bool

func init() { ready.Store(true) }

// SetReady toggles readiness. The server flips it off while draining.
func SetReady(v bool) { ready.Store(v) }

// Handler exposes HTTP handlers for health endpoints.
type Handler struct {
	Checks  map[string]Check
	Timeout time.Duration
}

// Live reports liveness status.
func (h Handler) Live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready runs every check concurrently and answers 503 when any fails or the
// server is draining.
func (h Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !ready.Load() {
		common.JSON(w, http.StatusServiceUnavailable, Report{Status: "shutting_down"})
		return
	}

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		report = Report{Status: "ok", Checks: make(map[string]string, len(h.Checks))}
	)
	for name, check := range h.Checks {
		name, check := name, check
		wg.Add(1)
		go func() {
			defer wg.Done()
			result := "ok"
			if err := check(r.Context(), h.timeout()); err != nil {
				result = err.Error()
			}
			mu.Lock()
			defer mu.Unlock()
			report.Checks[name] = result
			if result != "ok" {
				report.Status = "degraded"
			}
		}()
	}
	wg.Wait()

	code := http.StatusOK
	if report.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	common.JSON(w, code, report)
}

func (h Handler) timeout() time.Duration {
	if h.Timeout <= 0 {
		return 300 * time.Millisecond
	}
	return h.Timeout
}
