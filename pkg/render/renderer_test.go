package render

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/sunnyxujian/minivue/pkg/metrics"
	"github.com/sunnyxujian/minivue/pkg/vdom"
)

type recordingTracer struct {
	noop.Tracer
	spans []*recordingSpan
}

func (t *recordingTracer) Start(ctx context.Context, name string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
	s := &recordingSpan{name: name}
	t.spans = append(t.spans, s)
	return trace.ContextWithSpan(ctx, s), s
}

type recordingSpan struct {
	noop.Span
	name   string
	attrs  []attribute.KeyValue
	status codes.Code
	errs   []error
	ended  bool
}

func (s *recordingSpan) SetAttributes(kv ...attribute.KeyValue) {
	s.attrs = append(s.attrs, kv...)
}

func (s *recordingSpan) SetStatus(code codes.Code, _ string) {
	s.status = code
}

func (s *recordingSpan) RecordError(err error, _ ...trace.EventOption) {
	s.errs = append(s.errs, err)
}

func (s *recordingSpan) End(...trace.SpanEndOption) {
	s.ended = true
}

func (s *recordingSpan) attr(key string) string {
	for _, kv := range s.attrs {
		if string(kv.Key) == key {
			return kv.Value.AsString()
		}
	}
	return ""
}

func TestRenderSpans(t *testing.T) {
	tracer := &recordingTracer{}
	f := newFixture(t, WithTracer(tracer))

	f.render(t, vdom.Text("a"))
	f.render(t, vdom.Text("b"))
	f.render(t, nil)
	f.render(t, nil)
	_ = f.r.Render(vdom.Portal("#missing", nil), f.app)

	want := []struct {
		action string
		status codes.Code
	}{
		{ActionMount, codes.Ok},
		{ActionPatch, codes.Ok},
		{ActionUnmount, codes.Ok},
		{ActionNoop, codes.Ok},
		{ActionMount, codes.Error},
	}
	if len(tracer.spans) != len(want) {
		t.Fatalf("spans = %d, want %d", len(tracer.spans), len(want))
	}
	for i, w := range want {
		s := tracer.spans[i]
		if s.name != "minivue.render" {
			t.Errorf("span[%d] name = %q", i, s.name)
		}
		if got := s.attr("render.action"); got != w.action {
			t.Errorf("span[%d] render.action = %q, want %q", i, got, w.action)
		}
		if s.status != w.status {
			t.Errorf("span[%d] status = %v, want %v", i, s.status, w.status)
		}
		if !s.ended {
			t.Errorf("span[%d] not ended", i)
		}
	}
	if errs := tracer.spans[4].errs; len(errs) != 1 {
		t.Errorf("failed render recorded %d errors, want 1", len(errs))
	}
}

// counterValue returns the value of the counter series name{label=value}.
func counterValue(t *testing.T, reg *prometheus.Registry, name, label, value string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == label && lp.GetValue() == value {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestRenderMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	f := newFixture(t, WithMetrics(metrics.New(metrics.WithRegistry(reg))))

	f.render(t, keyedList("a", "b"))
	f.render(t, keyedList("b", "a", "c"))
	_ = f.r.Render(keyedList("x", "x"), f.app)

	tests := []struct {
		name, label, value string
		want               float64
	}{
		{"minivue_renders_total", "action", "mount", 1},
		{"minivue_renders_total", "action", "patch", 2},
		{"minivue_render_errors_total", "code", "E102", 1},
		{"minivue_mounts_total", "kind", "Element", 4},
		{"minivue_mounts_total", "kind", "Text", 3},
		{"minivue_patches_total", "op", "move", 1},
		{"minivue_patches_total", "op", "insert", 1},
	}
	for _, tt := range tests {
		if got := counterValue(t, reg, tt.name, tt.label, tt.value); got != tt.want {
			t.Errorf("%s{%s=%q} = %v, want %v", tt.name, tt.label, tt.value, got, tt.want)
		}
	}
}

func TestRenderContainersAreIndependent(t *testing.T) {
	f := newFixture(t)
	other := f.doc.AddContainer("other")

	f.render(t, vdom.Text("app"))
	if err := f.r.Render(vdom.Text("other"), other); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	f.render(t, nil)

	if got := other.HTML(); got != "other" {
		t.Errorf("other HTML() = %q", got)
	}
	if f.r.Tree(other) == nil {
		t.Error("other container should keep its tree")
	}
}

func TestLongestIncreasing(t *testing.T) {
	tests := []struct {
		seq  []int
		want int
	}{
		{nil, 0},
		{[]int{-1, -1}, 0},
		{[]int{0, 1, 2}, 3},
		{[]int{2, 1, 0}, 1},
		{[]int{4, -1, 2, 3, 0, 1}, 2},
		{[]int{1, 3, 0, 2, 4}, 3},
	}
	for _, tt := range tests {
		got := longestIncreasing(tt.seq)
		if len(got) != tt.want {
			t.Errorf("longestIncreasing(%v) = %v, want length %d", tt.seq, got, tt.want)
			continue
		}
		for i := 1; i < len(got); i++ {
			if got[i] <= got[i-1] || tt.seq[got[i]] <= tt.seq[got[i-1]] {
				t.Errorf("longestIncreasing(%v) = %v is not increasing", tt.seq, got)
			}
		}
	}
}
