// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about plugin discovery, pipeline execution,
// and cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, which keeps the core
// packages free of observability-framework imports and avoids import cycles.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetDiscoveryHooks(&myDiscoveryHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Discovery().OnScanStart(scanID, root)
//	// ... scan ...
//	observability.Discovery().OnScanComplete(scanID, sources, visualizers, duration)
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Discovery Hooks
// =============================================================================

// DiscoveryHooks receives events from the plugin registry's discovery scan.
type DiscoveryHooks interface {
	// OnScanStart records the beginning of the one-time discovery scan.
	OnScanStart(scanID, root string)

	// OnPackageImported records a successfully imported plugin package.
	OnPackageImported(scanID, module string)

	// OnPackageError records an isolated per-package import failure.
	OnPackageError(scanID, module string, err error)

	// OnScanComplete records the end of discovery with registry sizes.
	OnScanComplete(scanID string, dataSources, visualizers int, duration time.Duration)
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the parse/render pipeline.
type PipelineHooks interface {
	// Parse events
	OnParseStart(runID, sourceKey string)
	OnParseComplete(runID, sourceKey string, nodeCount int, duration time.Duration, err error)

	// Render events
	OnRenderStart(runID, visualizerKey string)
	OnRenderComplete(runID, visualizerKey string, size int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopDiscoveryHooks is a no-op implementation of DiscoveryHooks.
type NoopDiscoveryHooks struct{}

func (NoopDiscoveryHooks) OnScanStart(string, string)                     {}
func (NoopDiscoveryHooks) OnPackageImported(string, string)               {}
func (NoopDiscoveryHooks) OnPackageError(string, string, error)           {}
func (NoopDiscoveryHooks) OnScanComplete(string, int, int, time.Duration) {}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnParseStart(string, string)                                {}
func (NoopPipelineHooks) OnParseComplete(string, string, int, time.Duration, error)  {}
func (NoopPipelineHooks) OnRenderStart(string, string)                               {}
func (NoopPipelineHooks) OnRenderComplete(string, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(string)      {}
func (NoopCacheHooks) OnCacheMiss(string)     {}
func (NoopCacheHooks) OnCacheSet(string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	discoveryHooks DiscoveryHooks = NoopDiscoveryHooks{}
	pipelineHooks  PipelineHooks  = NoopPipelineHooks{}
	cacheHooks     CacheHooks     = NoopCacheHooks{}
	hooksMu        sync.RWMutex
)

// SetDiscoveryHooks registers custom discovery hooks.
// This should be called once at application startup before the registry scans.
func SetDiscoveryHooks(h DiscoveryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		discoveryHooks = h
	}
}

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before pipeline runs.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Discovery returns the registered discovery hooks.
func Discovery() DiscoveryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return discoveryHooks
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	discoveryHooks = NoopDiscoveryHooks{}
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
}
