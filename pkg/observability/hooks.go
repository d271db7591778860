// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about view derivation, exports, and text-service calls.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the libraries never
// import an observability backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetTextHooks(&myTextHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnBuildStart(ctx, len(members))
//	// ... build the hierarchy ...
//	observability.Pipeline().OnBuildComplete(ctx, nodeCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from view derivation and rendering.
type PipelineHooks interface {
	// Hierarchy build events
	OnBuildStart(ctx context.Context, memberCount int)
	OnBuildComplete(ctx context.Context, nodeCount int, duration time.Duration, err error)

	// Layout events
	OnLayoutStart(ctx context.Context, nodeCount int)
	OnLayoutComplete(ctx context.Context, duration time.Duration)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Export Hooks
// =============================================================================

// ExportHooks receives events from the export adapter.
type ExportHooks interface {
	// OnExport records a written export file.
	OnExport(ctx context.Context, format string, size int, duration time.Duration)

	// OnExportSkipped records an export request with nothing to export.
	OnExportSkipped(ctx context.Context, format string)
}

// =============================================================================
// Text Service Hooks
// =============================================================================

// TextHooks receives events from generative-text service calls.
type TextHooks interface {
	// OnRequest records an outgoing request. Operation is "translate" or
	// "narrate".
	OnRequest(ctx context.Context, operation, language string)

	// OnResponse records a completed request. A non-nil err means the
	// caller fell back to its default value.
	OnResponse(ctx context.Context, operation, language string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnBuildStart(context.Context, int)                                {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, int, time.Duration, error)       {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                               {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, time.Duration)                  {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopExportHooks is a no-op implementation of ExportHooks.
type NoopExportHooks struct{}

func (NoopExportHooks) OnExport(context.Context, string, int, time.Duration) {}
func (NoopExportHooks) OnExportSkipped(context.Context, string)              {}

// NoopTextHooks is a no-op implementation of TextHooks.
type NoopTextHooks struct{}

func (NoopTextHooks) OnRequest(context.Context, string, string)                        {}
func (NoopTextHooks) OnResponse(context.Context, string, string, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	exportHooks   ExportHooks   = NoopExportHooks{}
	textHooks     TextHooks     = NoopTextHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetExportHooks registers custom export hooks.
func SetExportHooks(h ExportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		exportHooks = h
	}
}

// SetTextHooks registers custom text-service hooks.
func SetTextHooks(h TextHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		textHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Export returns the registered export hooks.
func Export() ExportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return exportHooks
}

// Text returns the registered text-service hooks.
func Text() TextHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return textHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	exportHooks = NoopExportHooks{}
	textHooks = NoopTextHooks{}
}
