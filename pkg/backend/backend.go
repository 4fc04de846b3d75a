// Package backend defines the host node API the renderer drives.
//
// A Backend creates and mutates concrete nodes: a browser DOM (package
// jsdom), an in-memory tree (package memdom), or anything else that can
// model an ordered tree of elements and text. Nodes are opaque values; the
// renderer only stores them and passes them back.
package backend

import "github.com/sunnyxujian/minivue/pkg/vdom"

// Node is an opaque backend node handle.
type Node = any

// Backend is the set of primitive node operations used by the renderer.
//
// Implementations are not required to be safe for concurrent use; the
// renderer serializes calls per container.
type Backend interface {
	// CreateElement creates an element. svg selects the SVG namespace.
	CreateElement(tag string, svg bool) Node

	// CreateText creates a text node.
	CreateText(text string) Node

	// SetText replaces the content of a text node.
	SetText(node Node, text string)

	SetAttribute(el Node, name, value string)
	RemoveAttribute(el Node, name string)

	// SetProperty assigns a host property (value, checked, ...). A nil
	// value clears it.
	SetProperty(el Node, name string, value any)

	SetStyle(el Node, name, value string)
	RemoveStyle(el Node, name string)

	// AddEventListener attaches l for event. The same listener is passed
	// back to RemoveEventListener.
	AddEventListener(el Node, event string, l *vdom.Listener)
	RemoveEventListener(el Node, event string, l *vdom.Listener)

	AppendChild(parent, child Node)

	// InsertBefore inserts child before ref. A nil ref appends.
	InsertBefore(parent, child, ref Node)

	RemoveChild(parent, child Node)

	// NextSibling returns the node after n in its parent, or nil.
	NextSibling(n Node) Node

	// Parent returns the parent of n, or nil when detached.
	Parent(n Node) Node

	// Query returns the first node matching selector, or nil.
	Query(selector string) Node
}
