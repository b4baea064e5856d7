// Package observability lets riskflow's libraries report what they do
// without importing a metrics backend.
//
// Four hook interfaces cover the pipeline, the cache, interactive sessions
// and the HTTP API. Every hook starts out as a no-op. A binary swaps in real
// implementations once at startup, usually via [Install]:
//
//	m := prom.New()
//	observability.Install(m) // m implements all four
//
// Library code fetches the current hook at the call site:
//
//	start := time.Now()
//	observability.Pipeline().OnLayoutStart(ctx, ds.NodeCount())
//	// ...
//	observability.Pipeline().OnLayoutComplete(ctx, nodes, links, time.Since(start), err)
//
// The prom subpackage is the Prometheus implementation.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks follows a dataset from load through layout to render.
// source is a file path or "sample".
type PipelineHooks interface {
	OnLoadStart(ctx context.Context, source string)
	OnLoadComplete(ctx context.Context, source string, nodeCount int, duration time.Duration, err error)
	OnLayoutStart(ctx context.Context, nodeCount int)
	OnLayoutComplete(ctx context.Context, nodeCount, linkCount int, duration time.Duration, err error)
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks counts lookups and writes per key type ("layout", "scene").
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// InteractionHooks observes the hover and selection state machine in HTTP
// sessions and the terminal explorer.
type InteractionHooks interface {
	// OnEvent is called per dispatched event; err is set if it was rejected.
	OnEvent(ctx context.Context, eventType string, err error)
	OnSelect(ctx context.Context, selected bool)
	OnSessionOpen(ctx context.Context)
	OnSessionClose(ctx context.Context)
}

// HTTPHooks observes the API. route is the matched pattern, not the raw
// path, to keep label cardinality bounded.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                                {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, int, time.Duration, error)  {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                           {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error)  {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopInteractionHooks struct{}

func (NoopInteractionHooks) OnEvent(context.Context, string, error) {}
func (NoopInteractionHooks) OnSelect(context.Context, bool)         {}
func (NoopInteractionHooks) OnSessionOpen(context.Context)          {}
func (NoopInteractionHooks) OnSessionClose(context.Context)         {}

type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// registry is replaced wholesale on every change, so readers never lock.
type registry struct {
	pipeline    PipelineHooks
	cache       CacheHooks
	interaction InteractionHooks
	http        HTTPHooks
}

var noop = registry{
	pipeline:    NoopPipelineHooks{},
	cache:       NoopCacheHooks{},
	interaction: NoopInteractionHooks{},
	http:        NoopHTTPHooks{},
}

var current atomic.Pointer[registry]

func init() { Reset() }

func load() *registry { return current.Load() }

// update applies fn to a copy of the registry and publishes it.
func update(fn func(*registry)) {
	for {
		old := current.Load()
		next := *old
		fn(&next)
		if current.CompareAndSwap(old, &next) {
			return
		}
	}
}

// Install registers h for every hook interface it implements and reports
// how many it matched.
func Install(h any) int {
	n := 0
	update(func(r *registry) {
		if p, ok := h.(PipelineHooks); ok {
			r.pipeline, n = p, n+1
		}
		if c, ok := h.(CacheHooks); ok {
			r.cache, n = c, n+1
		}
		if i, ok := h.(InteractionHooks); ok {
			r.interaction, n = i, n+1
		}
		if x, ok := h.(HTTPHooks); ok {
			r.http, n = x, n+1
		}
	})
	return n
}

// SetPipelineHooks replaces the pipeline hooks. nil is ignored, as for the
// other setters.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(r *registry) { r.pipeline = h })
	}
}

func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(r *registry) { r.cache = h })
	}
}

func SetInteractionHooks(h InteractionHooks) {
	if h != nil {
		update(func(r *registry) { r.interaction = h })
	}
}

func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(r *registry) { r.http = h })
	}
}

func Pipeline() PipelineHooks       { return load().pipeline }
func Cache() CacheHooks             { return load().cache }
func Interaction() InteractionHooks { return load().interaction }
func HTTP() HTTPHooks               { return load().http }

// Reset puts the no-op hooks back.
func Reset() {
	r := noop
	current.Store(&r)
}
