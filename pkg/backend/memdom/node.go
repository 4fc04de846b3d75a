package memdom

import (
	"sort"
	"strings"

	"github.com/sunnyxujian/minivue/pkg/vdom"
)

// NodeType distinguishes elements from text nodes.
type NodeType uint8

const (
	ElementNode NodeType = iota
	TextNode
)

// Node is an in-memory element or text node.
type Node struct {
	doc  *Document
	Type NodeType

	// Tag is the lower-case tag name of an element.
	Tag string

	// SVG marks elements created in the SVG namespace.
	SVG bool

	text      string
	attrs     map[string]string
	props     map[string]any
	styles    map[string]string
	listeners map[string][]*vdom.Listener

	parent   *Node
	children []*Node
}

func newNode(doc *Document, typ NodeType) *Node {
	return &Node{doc: doc, Type: typ}
}

// Document returns the owning document.
func (n *Node) Document() *Document {
	return n.doc
}

// Parent returns the parent node, or nil.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// Child returns the i-th child, or nil when out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Text returns the content of a text node.
func (n *Node) Text() string {
	return n.text
}

// TextContent returns the concatenated text of n and its descendants.
func (n *Node) TextContent() string {
	if n.Type == TextNode {
		return n.text
	}
	var sb strings.Builder
	for _, c := range n.children {
		sb.WriteString(c.TextContent())
	}
	return sb.String()
}

// Attr returns an attribute value.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// Attrs returns the attribute names in sorted order.
func (n *Node) Attrs() []string {
	return sortedKeys(n.attrs)
}

// Property returns a property value, or nil.
func (n *Node) Property(name string) any {
	return n.props[name]
}

// Style returns one style declaration.
func (n *Node) Style(name string) (string, bool) {
	v, ok := n.styles[name]
	return v, ok
}

// Listeners returns the number of listeners attached for event.
func (n *Node) Listeners(event string) int {
	return len(n.listeners[event])
}

// Contains reports whether other is n or a descendant of n.
func (n *Node) Contains(other *Node) bool {
	for p := other; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

func (n *Node) detach() {
	if n.parent == nil {
		return
	}
	p := n.parent
	if i := p.indexOf(n); i >= 0 {
		p.children = append(p.children[:i], p.children[i+1:]...)
	}
	n.parent = nil
}

// classList returns the element's class names.
func (n *Node) classList() []string {
	return strings.Fields(n.attrs["class"])
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
