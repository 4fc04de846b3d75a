// Package vdom provides the virtual tree node model for minivue.
//
// A VNode describes one piece of UI: an element, a text node, a fragment, a
// portal, or a stateful or functional component. The renderer turns VNodes
// into backend nodes and later reconciles them against new trees.
//
// # Constructors
//
// Nodes are built with H and friends, which fix each node's ChildArity from
// the shape of the children argument:
//
//	H("ul", Data{"class": []any{"list", map[string]any{"empty": n == 0}}}, []*VNode{
//	    Li(Data{"key": "a"}, "first"),
//	    Li(Data{"key": "b"}, "second"),
//	})
//
// The renderer trusts Arity; hand-built nodes can be checked with Validate.
//
// # Data
//
// Element data is split by Classify: "style" is applied key by key, "class"
// is flattened by NormalizeClass, "on"-prefixed keys are event listeners,
// value/checked/selected/muted and camel-cased keys are properties, and
// everything else is a stringified attribute. "key" is never forwarded.
//
// # Components
//
// Component(ctor, props) mounts an Instance created by ctor and re-renders
// it whenever the reactive state it read changes. Func(fn, props) calls fn
// on every render and keeps no instance.
package vdom
