package memdom

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/sunnyxujian/minivue/pkg/backend"
	"github.com/sunnyxujian/minivue/pkg/vdom"
)

// Stats counts the mutations a Document has performed.
type Stats struct {
	Created         int // elements and text nodes created
	Inserted        int // detached nodes attached to a parent
	Moved           int // attached nodes repositioned
	Removed         int // nodes removed from a parent
	TextUpdates     int
	AttrUpdates     int // attribute sets and removals
	PropUpdates     int
	StyleUpdates    int
	ListenerUpdates int // listener additions and removals
}

// Mutations returns the total number of tree mutations (insert, move,
// remove).
func (s Stats) Mutations() int {
	return s.Inserted + s.Moved + s.Removed
}

// Document is an in-memory node tree implementing backend.Backend.
type Document struct {
	id    uuid.UUID
	body  *Node
	stats Stats
}

var _ backend.Backend = (*Document)(nil)

// NewDocument creates an empty document with a <body> root.
func NewDocument() *Document {
	d := &Document{id: uuid.New()}
	d.body = newNode(d, ElementNode)
	d.body.Tag = "body"
	return d
}

// ID returns the document's unique ID.
func (d *Document) ID() string {
	return d.id.String()
}

// Body returns the root element.
func (d *Document) Body() *Node {
	return d.body
}

// AddContainer appends a <div id="id"> to the body and returns it.
func (d *Document) AddContainer(id string) *Node {
	el := d.CreateElement("div", false).(*Node)
	d.SetAttribute(el, "id", id)
	d.AppendChild(d.body, el)
	return el
}

// Stats returns the mutation counters.
func (d *Document) Stats() Stats {
	return d.stats
}

// ResetStats zeroes the mutation counters.
func (d *Document) ResetStats() {
	d.stats = Stats{}
}

// node converts a handle to a *Node owned by d. Foreign handles panic.
func (d *Document) node(h backend.Node) *Node {
	n, ok := h.(*Node)
	if !ok || n == nil {
		panic(fmt.Sprintf("memdom: %T is not a memdom node", h))
	}
	if n.doc != d {
		panic(fmt.Sprintf("memdom: node belongs to document %s, not %s", n.doc.ID(), d.ID()))
	}
	return n
}

// CreateElement implements backend.Backend.
func (d *Document) CreateElement(tag string, svg bool) backend.Node {
	n := newNode(d, ElementNode)
	n.Tag = tag
	n.SVG = svg
	d.stats.Created++
	return n
}

// CreateText implements backend.Backend.
func (d *Document) CreateText(text string) backend.Node {
	n := newNode(d, TextNode)
	n.text = text
	d.stats.Created++
	return n
}

// SetText implements backend.Backend.
func (d *Document) SetText(h backend.Node, text string) {
	n := d.node(h)
	n.text = text
	d.stats.TextUpdates++
}

// SetAttribute implements backend.Backend.
func (d *Document) SetAttribute(h backend.Node, name, value string) {
	n := d.node(h)
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
	d.stats.AttrUpdates++
}

// RemoveAttribute implements backend.Backend.
func (d *Document) RemoveAttribute(h backend.Node, name string) {
	n := d.node(h)
	delete(n.attrs, name)
	d.stats.AttrUpdates++
}

// SetProperty implements backend.Backend.
func (d *Document) SetProperty(h backend.Node, name string, value any) {
	n := d.node(h)
	if value == nil {
		delete(n.props, name)
	} else {
		if n.props == nil {
			n.props = make(map[string]any)
		}
		n.props[name] = value
	}
	d.stats.PropUpdates++
}

// SetStyle implements backend.Backend.
func (d *Document) SetStyle(h backend.Node, name, value string) {
	n := d.node(h)
	if n.styles == nil {
		n.styles = make(map[string]string)
	}
	n.styles[name] = value
	d.stats.StyleUpdates++
}

// RemoveStyle implements backend.Backend.
func (d *Document) RemoveStyle(h backend.Node, name string) {
	n := d.node(h)
	delete(n.styles, name)
	d.stats.StyleUpdates++
}

// AddEventListener implements backend.Backend.
func (d *Document) AddEventListener(h backend.Node, event string, l *vdom.Listener) {
	n := d.node(h)
	if n.listeners == nil {
		n.listeners = make(map[string][]*vdom.Listener)
	}
	n.listeners[event] = append(n.listeners[event], l)
	d.stats.ListenerUpdates++
}

// RemoveEventListener implements backend.Backend.
func (d *Document) RemoveEventListener(h backend.Node, event string, l *vdom.Listener) {
	n := d.node(h)
	list := n.listeners[event]
	for i, existing := range list {
		if existing == l {
			n.listeners[event] = append(list[:i], list[i+1:]...)
			d.stats.ListenerUpdates++
			break
		}
	}
	if len(n.listeners[event]) == 0 {
		delete(n.listeners, event)
	}
}

// AppendChild implements backend.Backend.
func (d *Document) AppendChild(parent, child backend.Node) {
	d.InsertBefore(parent, child, nil)
}

// InsertBefore implements backend.Backend. Inserting a node that already
// has a parent moves it.
func (d *Document) InsertBefore(parent, child, ref backend.Node) {
	p := d.node(parent)
	c := d.node(child)
	if c.Contains(p) {
		panic("memdom: cannot insert a node into its own subtree")
	}

	if c.parent != nil {
		d.stats.Moved++
		c.detach()
	} else {
		d.stats.Inserted++
	}

	idx := len(p.children)
	if ref != nil {
		r := d.node(ref)
		if r.parent != p {
			panic("memdom: reference node is not a child of parent")
		}
		idx = p.indexOf(r)
	}

	p.children = append(p.children, nil)
	copy(p.children[idx+1:], p.children[idx:])
	p.children[idx] = c
	c.parent = p
}

// RemoveChild implements backend.Backend.
func (d *Document) RemoveChild(parent, child backend.Node) {
	p := d.node(parent)
	c := d.node(child)
	if c.parent != p {
		panic("memdom: node is not a child of parent")
	}
	c.detach()
	d.stats.Removed++
}

// NextSibling implements backend.Backend.
func (d *Document) NextSibling(h backend.Node) backend.Node {
	n := d.node(h)
	if n.parent == nil {
		return nil
	}
	i := n.parent.indexOf(n)
	if i < 0 || i+1 >= len(n.parent.children) {
		return nil
	}
	return n.parent.children[i+1]
}

// Parent implements backend.Backend.
func (d *Document) Parent(h backend.Node) backend.Node {
	n := d.node(h)
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// Query implements backend.Backend. Only nodes attached to the body are
// searched.
func (d *Document) Query(selector string) backend.Node {
	if n := d.QueryNode(selector); n != nil {
		return n
	}
	return nil
}

// QueryNode is Query returning a *Node.
func (d *Document) QueryNode(selector string) *Node {
	sel, ok := parseSelector(selector)
	if !ok {
		return nil
	}
	return find(d.body, sel)
}

// Dispatch invokes every listener for event on n and returns how many ran.
// The event's Value is the node's "value" property.
func (d *Document) Dispatch(n *Node, event string) int {
	d.node(n)
	ev := vdom.Event{Type: event, Target: n, Value: vdom.AttrString(n.props["value"])}
	list := append([]*vdom.Listener(nil), n.listeners[event]...)
	for _, l := range list {
		l.Invoke(ev)
	}
	return len(list)
}

// Input sets n's value property and dispatches an "input" event.
func (d *Document) Input(n *Node, value string) int {
	d.SetProperty(n, "value", value)
	return d.Dispatch(n, "input")
}
