package render

import (
	"reflect"
	"sort"

	"github.com/sunnyxujian/minivue/pkg/backend"
	"github.com/sunnyxujian/minivue/pkg/vdom"
)

// patchData applies the difference between old and next element data to el.
// Mounting is patching against nil.
func (r *Renderer) patchData(v *vdom.VNode, el backend.Node, old, next vdom.Data) {
	for _, key := range unionKeys(old, next) {
		oldVal, hadOld := old[key]
		newVal, hasNew := next[key]

		switch vdom.Classify(key) {
		case vdom.DataIgnored:
		case vdom.DataStyle:
			r.patchStyle(el, vdom.StyleEntries(oldVal), vdom.StyleEntries(newVal))
		case vdom.DataClass:
			oldClass := vdom.NormalizeClass(oldVal)
			newClass := vdom.NormalizeClass(newVal)
			switch {
			case oldClass == newClass:
			case newClass == "":
				r.backend.RemoveAttribute(el, "class")
			default:
				r.backend.SetAttribute(el, "class", newClass)
			}
		case vdom.DataEvent:
			r.patchListener(v, el, key, newVal)
		case vdom.DataProperty:
			switch {
			case hasNew && newVal != nil:
				if !hadOld || !sameValue(oldVal, newVal) {
					r.backend.SetProperty(el, key, newVal)
				}
			case hadOld && oldVal != nil:
				r.backend.SetProperty(el, key, nil)
			}
		default:
			newSet := hasNew && attrPresent(newVal)
			oldSet := hadOld && attrPresent(oldVal)
			switch {
			case newSet:
				s := vdom.AttrString(newVal)
				if !oldSet || vdom.AttrString(oldVal) != s {
					r.backend.SetAttribute(el, key, s)
				}
			case oldSet:
				r.backend.RemoveAttribute(el, key)
			}
		}
	}
}

func (r *Renderer) patchStyle(el backend.Node, old, next map[string]string) {
	for _, name := range sortedKeys(next) {
		if prev, ok := old[name]; !ok || prev != next[name] {
			r.backend.SetStyle(el, name, next[name])
		}
	}
	for _, name := range sortedKeys(old) {
		if _, ok := next[name]; !ok {
			r.backend.RemoveStyle(el, name)
		}
	}
}

// patchListener keeps one Listener per Data key. A changed handler is swapped
// in place; the backend is only touched when the binding appears or goes away.
func (r *Renderer) patchListener(v *vdom.VNode, el backend.Node, key string, handler any) {
	l := v.Listeners[key]
	switch {
	case handler != nil && l != nil:
		l.Handler = handler
	case handler != nil:
		if v.Listeners == nil {
			v.Listeners = make(map[string]*vdom.Listener)
		}
		l = vdom.NewListener(vdom.EventName(key), handler)
		v.Listeners[key] = l
		r.backend.AddEventListener(el, l.Event, l)
	case l != nil:
		r.backend.RemoveEventListener(el, l.Event, l)
		delete(v.Listeners, key)
	}
}

// removeListeners detaches every listener of v.
func (r *Renderer) removeListeners(v *vdom.VNode) {
	for key, l := range v.Listeners {
		r.backend.RemoveEventListener(v.Handle, l.Event, l)
		delete(v.Listeners, key)
	}
}

// attrPresent reports whether an attribute value should be set. Nil and
// false remove the attribute.
func attrPresent(v any) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// sameValue compares property values. Values of non-comparable types are
// never considered equal.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || !va.Comparable() {
		return false
	}
	return va.Equal(vb)
}

func unionKeys(a, b vdom.Data) []string {
	seen := make(map[string]bool, len(a)+len(b))
	for k := range a {
		seen[k] = true
	}
	for k := range b {
		seen[k] = true
	}
	return sortedKeys(seen)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
