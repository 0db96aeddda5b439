// Package ratelimit provides a token-bucket limiter registry keyed by
// collaborator name. The registry is constructed once and injected into
// each collaborator wrapper so tests can substitute a no-op.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Waiter is the limiter surface collaborators depend on.
type Waiter interface {
	// Wait blocks until one token is available for the named collaborator.
	Wait(name string)
	// Allow reports whether a token was immediately available and consumes
	// it when so.
	Allow(name string) bool
}

// Registry maps collaborator names to token-bucket limiters. Unknown
// names are not limited.
type Registry struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{limiters: make(map[string]*rate.Limiter)}
}

// DefaultRegistry returns a registry with the per-collaborator limits the
// CLI ships with.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Add("youtube", 1, 5)      // 1/sec, burst of 5
	r.Add("trends", 0.5, 3)     // 1 per 2 sec
	r.Add("autocomplete", 5, 5) // public endpoint, be polite anyway
	return r
}

// Add registers a limiter for a collaborator name: perSecond steady rate
// with the given burst.
func (r *Registry) Add(name string, perSecond float64, burst int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.limiters[name] = rate.NewLimiter(rate.Limit(perSecond), burst)
}

func (r *Registry) limiter(name string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.limiters[name]
}

// Wait blocks until a token for the named collaborator is available.
func (r *Registry) Wait(name string) {
	if l := r.limiter(name); l != nil {
		_ = l.Wait(context.Background())
	}
}

// Allow consumes a token for the named collaborator without blocking.
func (r *Registry) Allow(name string) bool {
	if l := r.limiter(name); l != nil {
		return l.Allow()
	}
	return true
}

// Nop is a limiter that never blocks, for tests.
type Nop struct{}

func (Nop) Wait(string) {}

func (Nop) Allow(string) bool { return true }
