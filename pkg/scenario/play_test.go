package scenario

import (
	"errors"
	"strings"
	"testing"

	mverrors "github.com/sunnyxujian/minivue/internal/errors"
)

func ptr[T any](v T) *T { return &v }

func TestPlay(t *testing.T) {
	sc := &Scenario{
		Name:       "portal",
		Containers: []string{"modal"},
		Steps: []Step{
			{Tree: &NodeSpec{Tag: "div", Children: []NodeSpec{
				{Text: "body"},
				{Portal: "#modal", Text: "hi"},
			}}},
			{Tree: &NodeSpec{Portal: "#nowhere"}},
			{Unmount: true},
		},
	}

	p := NewPlayer()
	results := p.Play(sc)
	if len(results) != 3 {
		t.Fatalf("Play() = %d results, want 3", len(results))
	}

	if results[0].Err != nil {
		t.Fatalf("step 0 error = %v", results[0].Err)
	}
	if got := p.Doc.QueryNode("#modal").HTML(); got != "" {
		t.Errorf("modal after unmount = %q, want empty", got)
	}
	if code := mverrors.Code(results[1].Err); code != "E101" {
		t.Errorf("step 1 code = %q, want E101", code)
	}
	if results[1].HTML != results[0].HTML {
		t.Errorf("failed step changed HTML: %q -> %q", results[0].HTML, results[1].HTML)
	}
	if results[2].HTML != "" {
		t.Errorf("step 2 HTML = %q, want empty", results[2].HTML)
	}
	if !strings.Contains(p.Pretty(), `<div id="modal"></div>`) {
		t.Errorf("Pretty() = %q, want an empty modal container", p.Pretty())
	}
}

func TestStepCheck(t *testing.T) {
	failed := mverrors.New("E102")

	tests := []struct {
		name string
		step Step
		res  StepResult
		want []string
	}{
		{
			name: "match",
			step: Step{Expect: ptr("<p>a</p>"), Moves: ptr(1)},
			res:  StepResult{HTML: "<p>a</p>", Moved: 1},
		},
		{
			name: "html and moves",
			step: Step{Expect: ptr("<p>a</p>"), Moves: ptr(0)},
			res:  StepResult{HTML: "<p>b</p>", Moved: 2},
			want: []string{"HTML()", "moves = 2, want 0"},
		},
		{
			name: "missing error",
			step: Step{Error: "E102"},
			want: []string{"expected error E102"},
		},
		{
			name: "wrong code",
			step: Step{Error: "E101"},
			res:  StepResult{Err: failed},
			want: []string{`error code = "E102", want "E101"`},
		},
		{
			name: "unexpected error",
			res:  StepResult{Err: errors.New("boom")},
			want: []string{"render failed: boom"},
		},
		{
			name: "expected error",
			step: Step{Error: "E102"},
			res:  StepResult{Err: failed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.step.Check(tt.res)
			if len(got) != len(tt.want) {
				t.Fatalf("Check() = %v, want %d errors", got, len(tt.want))
			}
			for i, w := range tt.want {
				if !strings.Contains(got[i].Error(), w) {
					t.Errorf("Check()[%d] = %v, want it to contain %q", i, got[i], w)
				}
			}
		})
	}
}

func TestVerifyPrefixesStep(t *testing.T) {
	sc := &Scenario{
		Name: "text",
		Steps: []Step{
			{Tree: &NodeSpec{Text: "a"}, Expect: ptr("a")},
			{Tree: &NodeSpec{Text: "b"}, Expect: ptr("c")},
		},
	}
	errs := NewPlayer().Verify(sc)
	if len(errs) != 1 {
		t.Fatalf("Verify() = %v, want 1 error", errs)
	}
	if !strings.HasPrefix(errs[0].Error(), "step 1: ") {
		t.Errorf("Verify() error = %q, want step 1 prefix", errs[0])
	}
}
