// Package observability provides hooks for metrics and tracing.
//
// The package uses a simple hooks pattern: hook interfaces for each event
// category, no-op default implementations, and a registry populated once at
// application startup. Libraries emit events through the registry without
// depending on any observability backend; main wires a concrete backend
// (Prometheus, OpenTelemetry, ...) if one is wanted.
//
//	func main() {
//	    observability.SetSolveHooks(&mySolveHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
package observability

import (
	"context"
	"sync"
	"time"
)

// SolveHooks receives events from the solve pipeline.
type SolveHooks interface {
	// OnSolveStart records the beginning of a mechanism run.
	OnSolveStart(ctx context.Context, mechanism string, agents, objects int)

	// OnSolveComplete records the end of a mechanism run with its pairing
	// count and duration.
	OnSolveComplete(ctx context.Context, mechanism string, pairings int, duration time.Duration, err error)

	// OnRenderStart records the beginning of artifact rendering.
	OnRenderStart(ctx context.Context, formats []string)

	// OnRenderComplete records the end of artifact rendering.
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopSolveHooks is a no-op implementation of SolveHooks.
type NoopSolveHooks struct{}

func (NoopSolveHooks) OnSolveStart(context.Context, string, int, int)                          {}
func (NoopSolveHooks) OnSolveComplete(context.Context, string, int, time.Duration, error)      {}
func (NoopSolveHooks) OnRenderStart(context.Context, []string)                                 {}
func (NoopSolveHooks) OnRenderComplete(context.Context, []string, time.Duration, error)        {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	solveHooks SolveHooks = NoopSolveHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	hooksMu    sync.RWMutex
)

// SetSolveHooks registers custom solve hooks. Call once at application
// startup before any pipeline runs.
func SetSolveHooks(h SolveHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		solveHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. Call once at application
// startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Solve returns the registered solve hooks.
func Solve() SolveHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return solveHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores the no-op defaults. Intended for tests.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	solveHooks = NoopSolveHooks{}
	cacheHooks = NoopCacheHooks{}
}
