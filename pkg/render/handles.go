package render

import (
	"github.com/sunnyxujian/minivue/pkg/backend"
	"github.com/sunnyxujian/minivue/pkg/vdom"
)

// handles returns the backend nodes v occupies in its logical container, in
// order. Portal children live in the target and are not included.
func handles(v *vdom.VNode) []backend.Node {
	var out []backend.Node
	collectHandles(v, &out)
	return out
}

func collectHandles(v *vdom.VNode, out *[]backend.Node) {
	switch v.Kind {
	case vdom.KindFragment:
		if v.Arity == vdom.NoChildren {
			*out = append(*out, v.Handle)
			return
		}
		for _, c := range v.Children {
			collectHandles(c, out)
		}
	case vdom.KindStatefulComponent, vdom.KindFunctionalComponent:
		if v.Component != nil && v.Component.Tree != nil {
			collectHandles(v.Component.Tree, out)
		}
	default:
		if v.Handle != nil {
			*out = append(*out, v.Handle)
		}
	}
}

// firstHandle returns the first backend node of v, used as an insertion
// reference.
func firstHandle(v *vdom.VNode) backend.Node {
	switch v.Kind {
	case vdom.KindFragment:
		if v.Arity == vdom.NoChildren {
			return v.Handle
		}
		return firstHandle(v.Children[0])
	case vdom.KindStatefulComponent, vdom.KindFunctionalComponent:
		if v.Component == nil || v.Component.Tree == nil {
			return nil
		}
		return firstHandle(v.Component.Tree)
	default:
		return v.Handle
	}
}

// lastHandle returns the last backend node of v.
func lastHandle(v *vdom.VNode) backend.Node {
	switch v.Kind {
	case vdom.KindFragment:
		if v.Arity == vdom.NoChildren {
			return v.Handle
		}
		return lastHandle(v.Children[len(v.Children)-1])
	case vdom.KindStatefulComponent, vdom.KindFunctionalComponent:
		if v.Component == nil || v.Component.Tree == nil {
			return nil
		}
		return lastHandle(v.Component.Tree)
	default:
		return v.Handle
	}
}

// nextAnchor returns the backend node following v, or nil if v is last.
func (r *Renderer) nextAnchor(v *vdom.VNode) backend.Node {
	last := lastHandle(v)
	if last == nil {
		return nil
	}
	return r.backend.NextSibling(last)
}

// move re-inserts every node of v before ref.
func (r *Renderer) move(v *vdom.VNode, container, ref backend.Node) {
	for _, h := range handles(v) {
		r.backend.InsertBefore(container, h, ref)
	}
	r.metrics.RecordPatch("move")
}
