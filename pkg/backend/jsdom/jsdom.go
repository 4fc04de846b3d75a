//go:build js && wasm

// Package jsdom is the browser DOM backend, driven through syscall/js.
//
// JS values are not comparable in Go, so every DOM node the backend hands
// out is wrapped in a *Node. The wrapper is cached on the DOM object under
// an expando property, which keeps handles stable across Parent,
// NextSibling and Query. Removing a node forgets the wrappers and releases
// the listener funcs of its whole subtree.
package jsdom

import (
	"sync"
	"syscall/js"

	"github.com/sunnyxujian/minivue/pkg/backend"
	"github.com/sunnyxujian/minivue/pkg/vdom"
)

const (
	svgNS     = "http://www.w3.org/2000/svg"
	handleKey = "__minivueHandle"
)

// Node wraps a DOM node.
type Node struct {
	id    int
	Value js.Value
}

type listenerKey struct {
	event string
	l     *vdom.Listener
}

// DOM implements backend.Backend over a browser document.
type DOM struct {
	mu        sync.Mutex
	doc       js.Value
	nodes     map[int]*Node
	nextID    int
	listeners map[int]map[listenerKey]js.Func
}

var _ backend.Backend = (*DOM)(nil)

// New creates a backend for the global document.
func New() *DOM {
	return NewWithDocument(js.Global().Get("document"))
}

// NewWithDocument creates a backend for doc.
func NewWithDocument(doc js.Value) *DOM {
	return &DOM{
		doc:       doc,
		nodes:     make(map[int]*Node),
		listeners: make(map[int]map[listenerKey]js.Func),
	}
}

// Wrap returns the handle for a DOM value, or nil for null/undefined.
func (d *DOM) Wrap(v js.Value) *Node {
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if id := v.Get(handleKey); id.Type() == js.TypeNumber {
		if n, ok := d.nodes[id.Int()]; ok {
			return n
		}
	}
	d.nextID++
	n := &Node{id: d.nextID, Value: v}
	d.nodes[n.id] = n
	v.Set(handleKey, n.id)
	return n
}

// ByID returns the element with the given id attribute.
func (d *DOM) ByID(id string) *Node {
	return d.Wrap(d.doc.Call("getElementById", id))
}

func (d *DOM) val(h backend.Node) js.Value {
	return h.(*Node).Value
}

func (d *DOM) handle(n *Node) backend.Node {
	if n == nil {
		return nil
	}
	return n
}

// CreateElement implements backend.Backend.
func (d *DOM) CreateElement(tag string, svg bool) backend.Node {
	if svg {
		return d.Wrap(d.doc.Call("createElementNS", svgNS, tag))
	}
	return d.Wrap(d.doc.Call("createElement", tag))
}

// CreateText implements backend.Backend.
func (d *DOM) CreateText(text string) backend.Node {
	return d.Wrap(d.doc.Call("createTextNode", text))
}

// SetText implements backend.Backend.
func (d *DOM) SetText(h backend.Node, text string) {
	d.val(h).Set("nodeValue", text)
}

// SetAttribute implements backend.Backend.
func (d *DOM) SetAttribute(h backend.Node, name, value string) {
	d.val(h).Call("setAttribute", name, value)
}

// RemoveAttribute implements backend.Backend.
func (d *DOM) RemoveAttribute(h backend.Node, name string) {
	d.val(h).Call("removeAttribute", name)
}

// SetProperty implements backend.Backend.
func (d *DOM) SetProperty(h backend.Node, name string, value any) {
	if value == nil {
		d.val(h).Set(name, js.Null())
		return
	}
	d.val(h).Set(name, js.ValueOf(value))
}

// SetStyle implements backend.Backend.
func (d *DOM) SetStyle(h backend.Node, name, value string) {
	d.val(h).Get("style").Call("setProperty", name, value)
}

// RemoveStyle implements backend.Backend.
func (d *DOM) RemoveStyle(h backend.Node, name string) {
	d.val(h).Get("style").Call("removeProperty", name)
}

// AddEventListener implements backend.Backend.
func (d *DOM) AddEventListener(h backend.Node, event string, l *vdom.Listener) {
	n := h.(*Node)
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		ev := vdom.Event{Type: event}
		if len(args) > 0 {
			target := args[0].Get("target")
			ev.Target = d.Wrap(target)
			if v := target.Get("value"); v.Type() == js.TypeString {
				ev.Value = v.String()
			}
		}
		l.Invoke(ev)
		return nil
	})

	d.mu.Lock()
	byNode := d.listeners[n.id]
	if byNode == nil {
		byNode = make(map[listenerKey]js.Func)
		d.listeners[n.id] = byNode
	}
	byNode[listenerKey{event, l}] = fn
	d.mu.Unlock()

	n.Value.Call("addEventListener", event, fn)
}

// RemoveEventListener implements backend.Backend.
func (d *DOM) RemoveEventListener(h backend.Node, event string, l *vdom.Listener) {
	n := h.(*Node)
	key := listenerKey{event, l}

	d.mu.Lock()
	fn, ok := d.listeners[n.id][key]
	if ok {
		delete(d.listeners[n.id], key)
		if len(d.listeners[n.id]) == 0 {
			delete(d.listeners, n.id)
		}
	}
	d.mu.Unlock()

	if ok {
		n.Value.Call("removeEventListener", event, fn)
		fn.Release()
	}
}

// AppendChild implements backend.Backend.
func (d *DOM) AppendChild(parent, child backend.Node) {
	d.val(parent).Call("appendChild", d.val(child))
}

// InsertBefore implements backend.Backend.
func (d *DOM) InsertBefore(parent, child, ref backend.Node) {
	if ref == nil {
		d.AppendChild(parent, child)
		return
	}
	d.val(parent).Call("insertBefore", d.val(child), d.val(ref))
}

// RemoveChild implements backend.Backend.
func (d *DOM) RemoveChild(parent, child backend.Node) {
	n := child.(*Node)
	d.val(parent).Call("removeChild", n.Value)
	d.forget(n.Value)
}

// forget drops the wrappers cached on v and its descendants and releases
// their listener funcs.
func (d *DOM) forget(v js.Value) {
	if id := v.Get(handleKey); id.Type() == js.TypeNumber {
		d.mu.Lock()
		delete(d.nodes, id.Int())
		fns := d.listeners[id.Int()]
		delete(d.listeners, id.Int())
		d.mu.Unlock()

		for key, fn := range fns {
			v.Call("removeEventListener", key.event, fn)
			fn.Release()
		}
		v.Delete(handleKey)
	}
	for c := v.Get("firstChild"); !c.IsNull() && !c.IsUndefined(); c = c.Get("nextSibling") {
		d.forget(c)
	}
}

// NextSibling implements backend.Backend.
func (d *DOM) NextSibling(h backend.Node) backend.Node {
	return d.handle(d.Wrap(d.val(h).Get("nextSibling")))
}

// Parent implements backend.Backend.
func (d *DOM) Parent(h backend.Node) backend.Node {
	return d.handle(d.Wrap(d.val(h).Get("parentNode")))
}

// Query implements backend.Backend.
func (d *DOM) Query(selector string) backend.Node {
	return d.handle(d.Wrap(d.doc.Call("querySelector", selector)))
}
