package render

import (
	"github.com/sunnyxujian/minivue/internal/errors"
	"github.com/sunnyxujian/minivue/pkg/backend"
	"github.com/sunnyxujian/minivue/pkg/vdom"
)

// patch reconciles the mounted tree prev into next. container is the
// logical container prev's nodes live in.
func (r *Renderer) patch(prev, next *vdom.VNode, container backend.Node, svg bool) error {
	if prev == next {
		return nil
	}
	if err := next.ValidateArity(); err != nil {
		return errors.New("E103").WithDetail(err.Error())
	}
	if !vdom.SameType(prev, next) {
		return r.replace(prev, next, container, svg)
	}

	switch next.Kind {
	case vdom.KindElement:
		return r.patchElement(prev, next, svg)
	case vdom.KindText:
		next.Handle = prev.Handle
		if prev.Text != next.Text {
			r.backend.SetText(next.Handle, next.Text)
			r.metrics.RecordPatch("text")
		}
		return nil
	case vdom.KindFragment:
		return r.patchFragment(prev, next, container, svg)
	case vdom.KindPortal:
		return r.patchPortal(prev, next, svg)
	case vdom.KindStatefulComponent:
		return r.patchStateful(prev, next)
	case vdom.KindFunctionalComponent:
		return r.patchFunctional(prev, next, container, svg)
	default:
		return errors.New("E100").WithDetailf("kind %d", uint8(next.Kind))
	}
}

// replace mounts next where prev is and unmounts prev.
func (r *Renderer) replace(prev, next *vdom.VNode, container backend.Node, svg bool) error {
	r.logger.Debug("replacing node", "from", prev.Kind.String(), "to", next.Kind.String(), "tag", next.Tag)
	ref := r.nextAnchor(prev)
	if err := r.mount(next, container, ref, svg); err != nil {
		return err
	}
	r.unmount(prev)
	r.metrics.RecordPatch("replace")
	return nil
}

func (r *Renderer) patchElement(prev, next *vdom.VNode, svg bool) error {
	el := prev.Handle
	next.Handle = el
	next.Listeners = prev.Listeners
	prev.Listeners = nil

	r.patchData(next, el, prev.Data, next.Data)
	return r.patchChildren(prev, next, el, nil, svg || next.SVG)
}

// patchFragment reconciles fragment children in place. The placeholder of an
// empty fragment is swapped for real children and back as needed.
func (r *Renderer) patchFragment(prev, next *vdom.VNode, container backend.Node, svg bool) error {
	anchor := r.nextAnchor(prev)

	switch {
	case prev.Arity == vdom.NoChildren && next.Arity == vdom.NoChildren:
		next.Handle = prev.Handle
		return nil
	case prev.Arity == vdom.NoChildren:
		if err := r.mountChildren(next, container, prev.Handle, svg); err != nil {
			return err
		}
		r.removeNode(prev.Handle)
	case next.Arity == vdom.NoChildren:
		placeholder := r.backend.CreateText("")
		r.backend.InsertBefore(container, placeholder, firstHandle(prev))
		next.Handle = placeholder
		for _, c := range prev.Children {
			r.unmount(c)
		}
		return nil
	default:
		if err := r.patchChildren(prev, next, container, anchor, svg); err != nil {
			return err
		}
	}
	next.Handle = firstHandle(next)
	return nil
}

// patchPortal reconciles portal children in the target. When the target
// changed, the mounted children move to the new target first.
func (r *Renderer) patchPortal(prev, next *vdom.VNode, svg bool) error {
	target, err := r.resolveTarget(next)
	if err != nil {
		return err
	}
	next.Handle = prev.Handle
	next.Resolved = target

	if target != prev.Resolved {
		r.logger.Debug("moving portal children", "selector", next.Tag)
		for _, c := range prev.Children {
			r.move(c, target, nil)
		}
	}
	return r.patchChildren(prev, next, target, nil, svg)
}

func (r *Renderer) patchStateful(prev, next *vdom.VNode) error {
	state := prev.Component
	if state == nil {
		return errors.New("E104").WithDetail("component node was never mounted")
	}
	next.Component = state
	state.Owner = next

	if pr, ok := state.Instance.(vdom.PropsReceiver); ok {
		pr.SetProps(next.Data)
	}
	if err := state.Update(); err != nil {
		return err
	}
	next.Handle = firstHandle(next)
	return nil
}

func (r *Renderer) patchFunctional(prev, next *vdom.VNode, container backend.Node, svg bool) error {
	if prev.Component == nil {
		return errors.New("E104").WithDetail("component node was never mounted")
	}
	name := componentName(next)
	run := r.evaluate(name, func() *vdom.VNode { return next.Fn(next.Data) })
	if run.err != nil {
		return run.err
	}
	if err := r.patch(prev.Component.Tree, run.tree, container, svg); err != nil {
		return err
	}
	next.Component = &vdom.ComponentState{Tree: run.tree, Owner: next, SVG: svg}
	next.Handle = firstHandle(run.tree)
	return nil
}
