package minivue

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"

	"github.com/sunnyxujian/minivue/pkg/backend"
	"github.com/sunnyxujian/minivue/pkg/metrics"
	"github.com/sunnyxujian/minivue/pkg/reactive"
	"github.com/sunnyxujian/minivue/pkg/render"
)

// Runtime ties a reactive Store and a Renderer to one Tracker, so state
// wrapped through the runtime re-renders the components that read it.
//
// Create a Runtime with minivue.New():
//
//	doc := memdom.NewDocument()
//	rt := minivue.New(doc, minivue.DefaultConfig())
//	state := rt.Wrap(map[string]any{"count": 0})
//	err := rt.Render(vdom.Component(NewCounter(state), nil), doc.AddContainer("app"))
//
// A Runtime is not safe for concurrent use; drive it from one goroutine.
type Runtime struct {
	tracker  *reactive.Tracker
	store    *reactive.Store
	renderer *render.Renderer
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// New creates a Runtime rendering into b.
func New(b backend.Backend, cfg Config) *Runtime {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tracerName := cfg.TracerName
	if tracerName == "" {
		tracerName = render.DefaultTracerName
	}

	var m *metrics.Metrics
	if cfg.Metrics != nil {
		m = metrics.NewWithConfig(*cfg.Metrics)
	}

	tracker := reactive.NewTracker(
		reactive.WithReentrancy(cfg.Reentrancy),
		reactive.WithStrictWrites(cfg.DevMode),
		reactive.WithTrackerLogger(logger),
		reactive.WithTrackerMetrics(m),
	)
	store := reactive.NewStore(
		reactive.WithTracker(tracker),
		reactive.WithLogger(logger),
		reactive.WithMetrics(m),
	)
	renderer := render.New(b,
		render.WithTracker(tracker),
		render.WithLogger(logger),
		render.WithMetrics(m),
		render.WithTracer(otel.Tracer(tracerName)),
	)

	logger.Debug("runtime created",
		"devMode", cfg.DevMode,
		"reentrancy", cfg.Reentrancy.String(),
		"metrics", m != nil,
	)

	return &Runtime{
		tracker:  tracker,
		store:    store,
		renderer: renderer,
		metrics:  m,
		logger:   logger,
	}
}

// Store returns the runtime's reactive store.
func (rt *Runtime) Store() *reactive.Store {
	return rt.store
}

// Renderer returns the runtime's renderer.
func (rt *Runtime) Renderer() *render.Renderer {
	return rt.renderer
}

// Tracker returns the Tracker shared by the store and the renderer.
func (rt *Runtime) Tracker() *reactive.Tracker {
	return rt.tracker
}

// Metrics returns the metrics sink, or nil when metrics are disabled.
func (rt *Runtime) Metrics() *metrics.Metrics {
	return rt.metrics
}

// Wrap makes value observable. See reactive.Store.Wrap.
func (rt *Runtime) Wrap(value any) *Observer {
	return rt.store.Wrap(value)
}

// Render renders node into container. See render.Renderer.RenderContext.
func (rt *Runtime) Render(node *VNode, container backend.Node) error {
	return rt.renderer.Render(node, container)
}

// RenderContext renders node into container, tracing under ctx.
func (rt *Runtime) RenderContext(ctx context.Context, node *VNode, container backend.Node) error {
	return rt.renderer.RenderContext(ctx, node, container)
}

// Watch evaluates getter now and calls callback whenever a later
// re-evaluation yields a different value. Stop the returned watcher to
// release it.
//
// Example:
//
//	w := rt.Watch(func() any { return state.Get("count") }, func(n, old any) {
//	    log.Printf("count %v -> %v", old, n)
//	})
//	defer w.Stop()
func (rt *Runtime) Watch(getter func() any, callback func(newValue, oldValue any)) *Watcher {
	return reactive.NewWatcher(rt.tracker, getter, reactive.WithCallback(callback))
}

// Computed returns a lazy watcher whose Value re-evaluates getter only
// after something it read changed.
func (rt *Runtime) Computed(getter func() any) *Watcher {
	return reactive.NewWatcher(rt.tracker, getter, reactive.WithLazy())
}

// Batch runs fn and delivers the notifications it caused once, when the
// outermost batch completes.
func (rt *Runtime) Batch(fn func()) {
	rt.tracker.Batch(fn)
}

// Untracked runs fn without recording dependencies.
func (rt *Runtime) Untracked(fn func()) {
	rt.tracker.Untracked(fn)
}

// Tree returns the tree currently rendered into container, or nil.
func (rt *Runtime) Tree(container backend.Node) *VNode {
	return rt.renderer.Tree(container)
}
