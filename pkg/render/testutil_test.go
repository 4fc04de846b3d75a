package render

import (
	"io"
	"log/slog"
	"testing"

	"github.com/sunnyxujian/minivue/internal/errors"
	"github.com/sunnyxujian/minivue/pkg/backend/memdom"
	"github.com/sunnyxujian/minivue/pkg/reactive"
	"github.com/sunnyxujian/minivue/pkg/vdom"
)

type fixture struct {
	doc   *memdom.Document
	app   *memdom.Node
	store *reactive.Store
	r     *Renderer
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := reactive.NewStore(reactive.WithLogger(logger))
	doc := memdom.NewDocument()
	opts = append([]Option{WithTracker(store.Tracker()), WithLogger(logger)}, opts...)
	return &fixture{
		doc:   doc,
		app:   doc.AddContainer("app"),
		store: store,
		r:     New(doc, opts...),
	}
}

func (f *fixture) render(t *testing.T, node *vdom.VNode) {
	t.Helper()
	if err := f.r.Render(node, f.app); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
}

func (f *fixture) html() string {
	return f.app.HTML()
}

func wantCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %s, got nil", code)
	}
	if got := errors.Code(err); got != code {
		t.Fatalf("error code = %q, want %q (err: %v)", got, code, err)
	}
}

// assertMounted checks that every node reachable from v, including component
// output, carries a backend handle.
func assertMounted(t *testing.T, v *vdom.VNode) {
	t.Helper()
	if v.Handle == nil {
		t.Errorf("%s node %q has no handle", v.Kind, v.Tag)
	}
	if v.Kind.IsComponent() {
		if v.Component == nil || v.Component.Tree == nil {
			t.Errorf("%s node has no mounted tree", v.Kind)
			return
		}
		assertMounted(t, v.Component.Tree)
		return
	}
	for _, c := range v.Children {
		assertMounted(t, c)
	}
}

func keyedList(keys ...string) *vdom.VNode {
	items := make([]*vdom.VNode, len(keys))
	for i, k := range keys {
		items[i] = vdom.Li(vdom.Data{"key": k}, k)
	}
	return vdom.Ul(nil, items)
}
