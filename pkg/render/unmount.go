package render

import (
	"github.com/sunnyxujian/minivue/pkg/backend"
	"github.com/sunnyxujian/minivue/pkg/vdom"
)

// unmount tears down v and removes every backend node it added.
func (r *Renderer) unmount(v *vdom.VNode) {
	r.teardown(v)
	for _, h := range handles(v) {
		r.removeNode(h)
	}
	r.metrics.RecordPatch("remove")
}

// teardown stops component subscribers, runs Unmount hooks, detaches
// listeners and removes portal children from their targets. It leaves v's
// own nodes in place.
func (r *Renderer) teardown(v *vdom.VNode) {
	switch v.Kind {
	case vdom.KindElement:
		if len(v.Listeners) > 0 {
			r.removeListeners(v)
		}
		for _, c := range v.Children {
			r.teardown(c)
		}
	case vdom.KindFragment:
		for _, c := range v.Children {
			r.teardown(c)
		}
	case vdom.KindPortal:
		for _, c := range v.Children {
			r.unmount(c)
		}
	case vdom.KindStatefulComponent:
		state := v.Component
		if state == nil {
			return
		}
		if state.Teardown != nil {
			state.Teardown()
		}
		if state.Tree != nil {
			r.teardown(state.Tree)
		}
		if u, ok := state.Instance.(vdom.Unmounter); ok {
			r.tracker.Untracked(u.Unmount)
		}
	case vdom.KindFunctionalComponent:
		if v.Component != nil && v.Component.Tree != nil {
			r.teardown(v.Component.Tree)
		}
	}
}

// removeNode detaches h from its parent, if any.
func (r *Renderer) removeNode(h backend.Node) {
	if h == nil {
		return
	}
	if parent := r.backend.Parent(h); parent != nil {
		r.backend.RemoveChild(parent, h)
	}
}
