package render

import (
	"reflect"
	"runtime"
	"strings"

	"github.com/sunnyxujian/minivue/internal/errors"
	"github.com/sunnyxujian/minivue/pkg/backend"
	"github.com/sunnyxujian/minivue/pkg/reactive"
	"github.com/sunnyxujian/minivue/pkg/vdom"
)

// renderRun is the result of one component evaluation. A fresh value per
// run makes the render watcher's callback fire on every re-evaluation.
type renderRun struct {
	tree *vdom.VNode
	err  error
}

// evaluate calls fn, converting a panic or a nil tree into an error.
func (r *Renderer) evaluate(name string, fn func() *vdom.VNode) (run *renderRun) {
	run = &renderRun{}
	defer func() {
		if p := recover(); p != nil {
			run.tree = nil
			run.err = panicError(p, name)
		}
	}()

	run.tree = fn()
	if run.tree == nil {
		run.err = errors.New("E104").WithDetailf("%s rendered nil", name)
	}
	return run
}

// construct creates the instance of a stateful component node.
func (r *Renderer) construct(v *vdom.VNode, name string) (inst vdom.Instance, err error) {
	if v.Ctor == nil {
		return nil, errors.New("E104").WithDetail("stateful component has no constructor")
	}
	defer func() {
		if p := recover(); p != nil {
			err = panicError(p, name)
		}
	}()

	r.tracker.Untracked(func() {
		inst = v.Ctor(v.Data)
	})
	if inst == nil {
		return nil, errors.New("E104").WithDetailf("%s returned a nil instance", name)
	}
	return inst, nil
}

// mountStateful instantiates the component and mounts its tree. The
// instance's Render runs inside a watcher, so state it reads re-renders the
// component when written.
func (r *Renderer) mountStateful(v *vdom.VNode, container, ref backend.Node, svg bool) error {
	name := componentName(v)
	inst, err := r.construct(v, name)
	if err != nil {
		return err
	}

	state := &vdom.ComponentState{Instance: inst, Owner: v, SVG: svg}
	w := reactive.NewWatcher(r.tracker, func() any {
		return r.evaluate(name, inst.Render)
	}, reactive.WithCallback(func(newValue, _ any) {
		if err := r.apply(state, newValue.(*renderRun)); err != nil {
			r.logger.Error("component update failed", "component", name, "error", err)
			r.metrics.RecordRenderError(errors.Code(err))
		}
	}))

	run := w.Peek().(*renderRun)
	if run.err != nil {
		w.Stop()
		return run.err
	}
	if err := r.mount(run.tree, container, ref, svg); err != nil {
		w.Stop()
		return err
	}

	state.Tree = run.tree
	state.Teardown = w.Stop
	state.Update = func() error {
		if w.Stopped() {
			return nil
		}
		return r.apply(state, w.Run().(*renderRun))
	}
	v.Component = state
	v.Handle = firstHandle(run.tree)
	return nil
}

// apply patches a component's mounted tree to the result of a new
// evaluation.
func (r *Renderer) apply(state *vdom.ComponentState, run *renderRun) error {
	if run.err != nil {
		return run.err
	}
	prev := state.Tree
	if prev == nil || prev == run.tree {
		return nil
	}
	container := r.backend.Parent(firstHandle(prev))
	if container == nil {
		return nil
	}

	var err error
	r.tracker.Batch(func() {
		err = r.patch(prev, run.tree, container, state.SVG)
	})
	if err != nil {
		return err
	}
	state.Tree = run.tree
	if state.Owner != nil {
		state.Owner.Handle = firstHandle(run.tree)
	}
	r.metrics.RecordPatch("component")
	return nil
}

func (r *Renderer) mountFunctional(v *vdom.VNode, container, ref backend.Node, svg bool) error {
	if v.Fn == nil {
		return errors.New("E104").WithDetail("functional component has no function")
	}
	name := componentName(v)
	run := r.evaluate(name, func() *vdom.VNode { return v.Fn(v.Data) })
	if run.err != nil {
		return run.err
	}
	if err := r.mount(run.tree, container, ref, svg); err != nil {
		return err
	}
	v.Component = &vdom.ComponentState{Tree: run.tree, Owner: v, SVG: svg}
	v.Handle = firstHandle(run.tree)
	return nil
}

// componentName returns the short name of a component's function.
func componentName(v *vdom.VNode) string {
	var fn any
	switch v.Kind {
	case vdom.KindStatefulComponent:
		fn = v.Ctor
	case vdom.KindFunctionalComponent:
		fn = v.Fn
	}
	rv := reflect.ValueOf(fn)
	if !rv.IsValid() || rv.Kind() != reflect.Func || rv.IsNil() {
		return "component"
	}
	f := runtime.FuncForPC(rv.Pointer())
	if f == nil {
		return "component"
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
