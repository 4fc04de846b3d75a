package render

import (
	"github.com/sunnyxujian/minivue/internal/errors"
	"github.com/sunnyxujian/minivue/pkg/backend"
	"github.com/sunnyxujian/minivue/pkg/vdom"
)

// mount creates the backend nodes for v and inserts them into container
// before ref (nil ref appends). svg is true inside an SVG subtree.
func (r *Renderer) mount(v *vdom.VNode, container, ref backend.Node, svg bool) error {
	if err := v.ValidateArity(); err != nil {
		return errors.New("E103").WithDetail(err.Error())
	}

	var err error
	switch v.Kind {
	case vdom.KindElement:
		err = r.mountElement(v, container, ref, svg)
	case vdom.KindText:
		r.mountText(v, container, ref)
	case vdom.KindFragment:
		err = r.mountFragment(v, container, ref, svg)
	case vdom.KindPortal:
		err = r.mountPortal(v, container, ref, svg)
	case vdom.KindStatefulComponent:
		err = r.mountStateful(v, container, ref, svg)
	case vdom.KindFunctionalComponent:
		err = r.mountFunctional(v, container, ref, svg)
	default:
		return errors.New("E100").WithDetailf("kind %d", uint8(v.Kind))
	}
	if err != nil {
		return err
	}
	r.metrics.RecordMount(v.Kind.String())
	return nil
}

func (r *Renderer) mountElement(v *vdom.VNode, container, ref backend.Node, svg bool) error {
	svg = svg || v.SVG
	el := r.backend.CreateElement(v.Tag, svg)
	v.Handle = el

	r.patchData(v, el, nil, v.Data)

	if err := r.mountChildren(v, el, nil, svg); err != nil {
		return err
	}
	r.backend.InsertBefore(container, el, ref)
	return nil
}

func (r *Renderer) mountText(v *vdom.VNode, container, ref backend.Node) {
	t := r.backend.CreateText(v.Text)
	v.Handle = t
	r.backend.InsertBefore(container, t, ref)
}

// mountFragment mounts the children in place. An empty fragment is held by
// an empty text node so it keeps a position in the container.
func (r *Renderer) mountFragment(v *vdom.VNode, container, ref backend.Node, svg bool) error {
	if v.Arity == vdom.NoChildren {
		placeholder := r.backend.CreateText("")
		v.Handle = placeholder
		r.backend.InsertBefore(container, placeholder, ref)
		return nil
	}
	if err := r.mountChildren(v, container, ref, svg); err != nil {
		return err
	}
	v.Handle = firstHandle(v)
	return nil
}

// mountPortal mounts the children into the resolved target and leaves an
// empty text node at the portal's position in container.
func (r *Renderer) mountPortal(v *vdom.VNode, container, ref backend.Node, svg bool) error {
	target, err := r.resolveTarget(v)
	if err != nil {
		return err
	}
	v.Resolved = target

	if err := r.mountChildren(v, target, nil, svg); err != nil {
		return err
	}

	placeholder := r.backend.CreateText("")
	v.Handle = placeholder
	r.backend.InsertBefore(container, placeholder, ref)
	return nil
}

func (r *Renderer) resolveTarget(v *vdom.VNode) (backend.Node, error) {
	if v.Target != nil {
		return v.Target, nil
	}
	if v.Tag == "" {
		return nil, errors.New("E101").WithDetail("portal has no selector or target")
	}
	target := r.backend.Query(v.Tag)
	if target == nil {
		return nil, errors.New("E101").WithDetailf("selector %q matched nothing", v.Tag)
	}
	return target, nil
}

// mountChildren mounts v's children, per arity, into container before ref.
func (r *Renderer) mountChildren(v *vdom.VNode, container, ref backend.Node, svg bool) error {
	switch v.Arity {
	case vdom.SingleChild:
		return r.mount(v.Children[0], container, ref, svg)
	case vdom.MultipleChildren:
		if err := checkKeys(v.Children); err != nil {
			return err
		}
		for _, c := range v.Children {
			if err := r.mount(c, container, ref, svg); err != nil {
				return err
			}
		}
	}
	return nil
}
