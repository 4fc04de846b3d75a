package scenario

import (
	"fmt"

	"github.com/sunnyxujian/minivue/internal/errors"
	"github.com/sunnyxujian/minivue/pkg/backend/memdom"
	"github.com/sunnyxujian/minivue/pkg/render"
	"github.com/sunnyxujian/minivue/pkg/vdom"
)

// AppID is the id of the container scenarios render into.
const AppID = "app"

// Player renders scenarios into an in-memory document.
type Player struct {
	Doc      *memdom.Document
	App      *memdom.Node
	Renderer *render.Renderer
}

// NewPlayer creates a Player with a fresh document and renderer.
func NewPlayer(opts ...render.Option) *Player {
	doc := memdom.NewDocument()
	return &Player{
		Doc:      doc,
		App:      doc.AddContainer(AppID),
		Renderer: render.New(doc, opts...),
	}
}

// StepResult is the observed outcome of one step.
type StepResult struct {
	// HTML is the app container's compact inner HTML after the step.
	HTML string

	// Moved is the number of node moves the step performed.
	Moved int

	// Err is the render error, if any.
	Err error
}

// Play creates sc's extra containers and runs its steps in order. A step
// whose tree fails to build is reported through its Err.
func (p *Player) Play(sc *Scenario) []StepResult {
	for _, id := range sc.Containers {
		p.Doc.AddContainer(id)
	}

	results := make([]StepResult, len(sc.Steps))
	for i, st := range sc.Steps {
		var node *vdom.VNode
		if st.Tree != nil {
			n, err := st.Tree.Build()
			if err != nil {
				results[i] = StepResult{HTML: p.App.HTML(), Err: err}
				continue
			}
			node = n
		}

		p.Doc.ResetStats()
		err := p.Renderer.Render(node, p.App)
		results[i] = StepResult{
			HTML:  p.App.HTML(),
			Moved: p.Doc.Stats().Moved,
			Err:   err,
		}
	}
	return results
}

// Pretty returns the indented HTML of the whole document body.
func (p *Player) Pretty() string {
	return p.Doc.Body().HTMLWith(memdom.HTMLOptions{Pretty: true})
}

// Check compares a step's result with its expectations and returns one
// error per mismatch.
func (st Step) Check(res StepResult) []error {
	var out []error
	switch {
	case st.Error != "" && res.Err == nil:
		out = append(out, fmt.Errorf("expected error %s, got nil", st.Error))
	case st.Error != "" && errors.Code(res.Err) != st.Error:
		out = append(out, fmt.Errorf("error code = %q, want %q (err: %v)", errors.Code(res.Err), st.Error, res.Err))
	case st.Error == "" && res.Err != nil:
		out = append(out, fmt.Errorf("render failed: %w", res.Err))
	}
	if st.Expect != nil && res.HTML != *st.Expect {
		out = append(out, fmt.Errorf("HTML() =\n%s\nwant\n%s", res.HTML, *st.Expect))
	}
	if st.Moves != nil && res.Moved != *st.Moves {
		out = append(out, fmt.Errorf("moves = %d, want %d", res.Moved, *st.Moves))
	}
	return out
}

// Verify plays sc and checks every step. Mismatches are prefixed with
// their step index.
func (p *Player) Verify(sc *Scenario) []error {
	var out []error
	for i, res := range p.Play(sc) {
		for _, err := range sc.Steps[i].Check(res) {
			out = append(out, fmt.Errorf("step %d: %w", i, err))
		}
	}
	return out
}
