package chaos

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/getmockd/mockd-openai/pkg/httputil"
)

// Injector counts invocations of one route and decides which ones fail.
type Injector struct {
	mu      sync.Mutex
	effects SideEffects
	calls   int
	stats   Stats
}

// NewInjector creates an injector with the given side effects.
func NewInjector(effects SideEffects) *Injector {
	return &Injector{effects: effects}
}

// Next registers a new invocation and sleeps the configured latency.
// The invocation number is assigned before sleeping, so numbering follows
// arrival order. Returns ctx.Err() if the context ends during the delay.
func (i *Injector) Next(ctx context.Context) (Invocation, error) {
	i.mu.Lock()
	i.calls++
	inv := Invocation{
		Call:     i.calls,
		Failures: i.effects.Failures,
		Injected: i.calls <= i.effects.Failures,
	}
	latency := i.effects.Latency
	i.stats.TotalCalls++
	if inv.Injected {
		i.stats.InjectedFailures++
	}
	i.stats.LatencyInjected += latency
	i.mu.Unlock()

	if err := InjectLatency(ctx, latency); err != nil {
		return inv, err
	}
	return inv, nil
}

// InjectLatency sleeps for d or until ctx is done.
func InjectLatency(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// InjectError writes the transient failure response for inv.
func (i *Injector) InjectError(w http.ResponseWriter, inv Invocation) {
	i.mu.Lock()
	status := i.effects.Status()
	i.mu.Unlock()

	httputil.WriteAPIError(w, status, httputil.ErrTypeServer, InjectedFailureCode,
		fmt.Sprintf("injected failure %d of %d", inv.Call, inv.Failures))
}

// CallCount returns the number of invocations so far.
func (i *Injector) CallCount() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.calls
}

// SideEffects returns the current configuration.
func (i *Injector) SideEffects() SideEffects {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.effects
}

// UpdateSideEffects replaces the configuration without resetting the counter.
func (i *Injector) UpdateSideEffects(effects SideEffects) error {
	if err := effects.Validate(); err != nil {
		return err
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.effects = effects
	return nil
}

// GetStats returns a copy of the injection statistics.
func (i *Injector) GetStats() Stats {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.stats
}

// Reset zeroes the invocation counter and statistics.
func (i *Injector) Reset() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.calls = 0
	i.stats = Stats{}
}
