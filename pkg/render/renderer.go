package render

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/sunnyxujian/minivue/internal/errors"
	"github.com/sunnyxujian/minivue/pkg/backend"
	"github.com/sunnyxujian/minivue/pkg/metrics"
	"github.com/sunnyxujian/minivue/pkg/reactive"
	"github.com/sunnyxujian/minivue/pkg/vdom"
)

// DefaultTracerName is the OpenTelemetry tracer name used when none is given.
const DefaultTracerName = "minivue"

// Render actions reported in logs, metrics and spans.
const (
	ActionMount   = "mount"
	ActionPatch   = "patch"
	ActionUnmount = "unmount"
	ActionNoop    = "noop"
)

// Renderer mounts and reconciles VNode trees into backend containers.
//
// The renderer remembers the last tree rendered into each container, so
// calling Render again patches instead of mounting. Component subscribers
// share the renderer's Tracker with the Store whose state they read.
type Renderer struct {
	backend backend.Backend
	tracker *reactive.Tracker
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer

	// mu serializes Render calls and guards containers.
	mu         sync.Mutex
	containers map[backend.Node]*vdom.VNode
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics sets the metrics sink. Nil disables metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Renderer) {
		r.metrics = m
	}
}

// WithTracer sets the tracer. Defaults to the global provider's
// DefaultTracerName tracer.
func WithTracer(t trace.Tracer) Option {
	return func(r *Renderer) {
		if t != nil {
			r.tracer = t
		}
	}
}

// WithTracker sets the Tracker component subscribers run on. It must be the
// Tracker of the Store the components read from.
func WithTracker(t *reactive.Tracker) Option {
	return func(r *Renderer) {
		if t != nil {
			r.tracker = t
		}
	}
}

// New creates a Renderer over b.
func New(b backend.Backend, opts ...Option) *Renderer {
	r := &Renderer{
		backend:    b,
		logger:     slog.Default(),
		containers: make(map[backend.Node]*vdom.VNode),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.tracker == nil {
		r.tracker = reactive.NewTracker(reactive.WithTrackerLogger(r.logger))
	}
	if r.tracer == nil {
		r.tracer = otel.Tracer(DefaultTracerName)
	}
	return r
}

// Backend returns the backend the renderer drives.
func (r *Renderer) Backend() backend.Backend {
	return r.backend
}

// Tracker returns the Tracker component subscribers run on.
func (r *Renderer) Tracker() *reactive.Tracker {
	return r.tracker
}

// Render renders node into container. See RenderContext.
func (r *Renderer) Render(node *vdom.VNode, container backend.Node) error {
	return r.RenderContext(context.Background(), node, container)
}

// RenderContext renders node into container:
//
//   - nothing mounted, node given: mount node
//   - tree mounted, node given: reconcile the tree into node
//   - tree mounted, node nil: unmount the tree
//   - nothing mounted, node nil: nothing
//
// Component updates triggered while rendering run once the render
// completes. A failed render leaves the remembered tree unchanged.
// RenderContext must not be called from a component's Render.
func (r *Renderer) RenderContext(ctx context.Context, node *vdom.VNode, container backend.Node) (err error) {
	if container == nil {
		return errors.New("E105")
	}

	_, span := r.tracer.Start(ctx, "minivue.render")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	prev := r.containers[container]

	action := ActionNoop
	switch {
	case prev == nil && node != nil:
		action = ActionMount
	case prev != nil && node != nil:
		action = ActionPatch
	case prev != nil && node == nil:
		action = ActionUnmount
	}
	span.SetAttributes(attribute.String("render.action", action))

	err = r.guard(func() error {
		var err error
		r.tracker.Batch(func() {
			switch action {
			case ActionMount:
				err = r.mount(node, container, nil, false)
			case ActionPatch:
				err = r.patch(prev, node, container, false)
			case ActionUnmount:
				r.unmount(prev)
			}
		})
		return err
	})

	r.metrics.RecordRender(action, time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.metrics.RecordRenderError(errors.Code(err))
		r.logger.Debug("render failed", "action", action, "error", err)
		return err
	}
	span.SetStatus(codes.Ok, "")

	switch action {
	case ActionMount, ActionPatch:
		r.containers[container] = node
	case ActionUnmount:
		delete(r.containers, container)
	}
	r.logger.Debug("render", "action", action, "duration", time.Since(start))
	return nil
}

// Tree returns the tree currently rendered into container, or nil.
func (r *Renderer) Tree(container backend.Node) *vdom.VNode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.containers[container]
}

// guard runs fn and converts a panic into an error. Structured errors keep
// their code; anything else becomes E104.
func (r *Renderer) guard(fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = panicError(p, "")
		}
	}()
	return fn()
}

func panicError(p any, component string) error {
	if e, ok := p.(*errors.Error); ok {
		return e
	}
	e := errors.New("E104")
	if component != "" {
		e = e.WithDetailf("%s panicked", component)
	} else {
		e = e.WithDetail("render panicked")
	}
	if perr, ok := p.(error); ok {
		return e.Wrap(perr)
	}
	return e.Wrap(fmt.Errorf("%v", p))
}
