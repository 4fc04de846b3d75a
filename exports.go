package minivue

import (
	"github.com/sunnyxujian/minivue/pkg/reactive"
	"github.com/sunnyxujian/minivue/pkg/vdom"
)

// =============================================================================
// Node model (re-export from pkg/vdom)
// =============================================================================

// VNode is a node of a virtual tree.
type VNode = vdom.VNode

// Data is the attribute, property, style, class and event bag of an element,
// or the props of a component.
type Data = vdom.Data

// Instance is a stateful component instance.
type Instance = vdom.Instance

// Event is passed to event handlers.
type Event = vdom.Event

// H creates an element node.
var H = vdom.H

// Text creates a text node.
var Text = vdom.Text

// Fragment creates a fragment node.
var Fragment = vdom.Fragment

// Portal creates a portal rendering its children into the container
// matching selector.
var Portal = vdom.Portal

// Component creates a stateful component node.
var Component = vdom.Component

// Func creates a functional component node.
var Func = vdom.Func

// =============================================================================
// Reactive primitives (re-export from pkg/reactive)
// =============================================================================

// Observer is the reactive view of a wrapped map or slice.
type Observer = reactive.Observer

// Watcher is a reactive computation.
type Watcher = reactive.Watcher

// Reentrancy policies.
const (
	ReentrancyDefer = reactive.ReentrancyDefer
	ReentrancyPanic = reactive.ReentrancyPanic
)
