package vtest

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/sunnyxujian/minivue/pkg/backend/memdom"
	"github.com/sunnyxujian/minivue/pkg/reactive"
	"github.com/sunnyxujian/minivue/pkg/render"
	"github.com/sunnyxujian/minivue/pkg/scenario"
	"github.com/sunnyxujian/minivue/pkg/vdom"
)

// AppID is the id of the container every Harness renders into.
const AppID = scenario.AppID

// Harness renders trees into an in-memory document for assertions.
type Harness struct {
	t testing.TB

	Doc      *memdom.Document
	App      *memdom.Node
	Store    *reactive.Store
	Renderer *render.Renderer
}

type options struct {
	logger        *slog.Logger
	renderOptions []render.Option
	trackerOpts   []reactive.TrackerOption
}

// Option configures a Harness.
type Option func(*options)

// WithLogger sets the logger shared by the store and the renderer.
// Defaults to a logger that discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithRenderOptions passes extra options to render.New.
func WithRenderOptions(opts ...render.Option) Option {
	return func(o *options) {
		o.renderOptions = append(o.renderOptions, opts...)
	}
}

// WithTrackerOptions passes extra options to the shared Tracker.
//
// Example:
//
//	h := vtest.New(t, vtest.WithTrackerOptions(reactive.WithReentrancy(reactive.ReentrancyPanic)))
func WithTrackerOptions(opts ...reactive.TrackerOption) Option {
	return func(o *options) {
		o.trackerOpts = append(o.trackerOpts, opts...)
	}
}

// New creates a Harness with a fresh document, store and renderer sharing
// one Tracker.
//
// Example:
//
//	h := vtest.New(t)
//	state := h.Store.Wrap(map[string]any{"n": 1})
//	h.Render(vdom.Component(NewCounter(state), nil))
//	h.ExpectHTML("<span>1</span>")
func New(t testing.TB, opts ...Option) *Harness {
	t.Helper()
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	tracker := reactive.NewTracker(append([]reactive.TrackerOption{
		reactive.WithTrackerLogger(o.logger),
	}, o.trackerOpts...)...)
	store := reactive.NewStore(reactive.WithTracker(tracker), reactive.WithLogger(o.logger))

	doc := memdom.NewDocument()
	return &Harness{
		t:     t,
		Doc:   doc,
		App:   doc.AddContainer(AppID),
		Store: store,
		Renderer: render.New(doc, append([]render.Option{
			render.WithTracker(tracker),
			render.WithLogger(o.logger),
		}, o.renderOptions...)...),
	}
}

// Render renders node into the app container and fails the test on error.
func (h *Harness) Render(node *vdom.VNode) {
	h.t.Helper()
	if err := h.Renderer.Render(node, h.App); err != nil {
		h.t.Fatalf("Render() error = %v", err)
	}
}

// TryRender renders node into the app container and returns the error.
func (h *Harness) TryRender(node *vdom.VNode) error {
	return h.Renderer.Render(node, h.App)
}

// Container adds another top-level container, for portals.
func (h *Harness) Container(id string) *memdom.Node {
	return h.Doc.AddContainer(id)
}

// HTML returns the compact inner HTML of the app container.
func (h *Harness) HTML() string {
	return h.App.HTML()
}

// Pretty returns the indented HTML of the whole document body.
func (h *Harness) Pretty() string {
	return h.Doc.Body().HTMLWith(memdom.HTMLOptions{Pretty: true})
}

// Query returns the first node matching selector, failing the test if none
// does.
func (h *Harness) Query(selector string) *memdom.Node {
	h.t.Helper()
	n := h.Doc.QueryNode(selector)
	if n == nil {
		h.t.Fatalf("no node matches %q in:\n%s", selector, truncate(h.Pretty(), 500))
	}
	return n
}

// Click dispatches a click on the node matching selector.
func (h *Harness) Click(selector string) {
	h.t.Helper()
	if h.Doc.Dispatch(h.Query(selector), "click") == 0 {
		h.t.Errorf("%q has no click listener", selector)
	}
}

// Input sets the value of the node matching selector and dispatches an
// input event.
func (h *Harness) Input(selector, value string) {
	h.t.Helper()
	h.Doc.Input(h.Query(selector), value)
}

// ExpectHTML asserts the app container's inner HTML.
func (h *Harness) ExpectHTML(want string) {
	h.t.Helper()
	if got := h.HTML(); got != want {
		h.t.Errorf("HTML() =\n%s\nwant\n%s", got, want)
	}
}

// RenderToString renders node into a throwaway document and returns the
// HTML. Render errors yield an empty string.
//
// Example:
//
//	html := vtest.RenderToString(vdom.P(nil, "hi"))
func RenderToString(node *vdom.VNode) string {
	doc := memdom.NewDocument()
	app := doc.AddContainer(AppID)
	r := render.New(doc, render.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err := r.Render(node, app); err != nil {
		return ""
	}
	return app.HTML()
}

// ExpectContains asserts that rendered output contains expected substring.
//
// Example:
//
//	vtest.ExpectContains(t, view, "Welcome")
func ExpectContains(t *testing.T, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t *testing.T, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains a specific tag.
func ExpectElement(t *testing.T, node *vdom.VNode, tag string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, "<"+tag) {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
//
// Example:
//
//	vtest.ExpectAttribute(t, view, "class", "btn primary")
func ExpectAttribute(t *testing.T, node *vdom.VNode, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
