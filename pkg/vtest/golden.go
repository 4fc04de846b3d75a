package vtest

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/sunnyxujian/minivue/pkg/scenario"
)

// Run plays a scenario in a new Harness and reports every mismatch with
// t.Errorf. It returns the Harness for further assertions.
func Run(t *testing.T, sc *scenario.Scenario, opts ...Option) *Harness {
	t.Helper()
	h := New(t, opts...)
	p := &scenario.Player{Doc: h.Doc, App: h.App, Renderer: h.Renderer}
	for _, err := range p.Verify(sc) {
		t.Errorf("%s: %v", sc.Name, err)
	}
	return h
}

// RunWithGolden plays a scenario and compares the final document against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./pkg/vtest -update
func RunWithGolden(t *testing.T, sc *scenario.Scenario, opts ...Option) *Harness {
	t.Helper()
	h := Run(t, sc, opts...)
	AssertGolden(t, sc.Name, h.Pretty())
	return h
}

// AssertGolden compares got with testdata/golden/{name}.golden.
func AssertGolden(t *testing.T, name, got string) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(got))
}
