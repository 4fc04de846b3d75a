package vdom

import (
	"fmt"
	"reflect"
)

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement             Kind = iota // <div>, <circle>, etc.
	KindStatefulComponent               // Instance-backed component
	KindFunctionalComponent             // Function-backed component
	KindText                            // Plain text node
	KindFragment                        // Grouping without wrapper
	KindPortal                          // Children rendered into another container
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindStatefulComponent:
		return "StatefulComponent"
	case KindFunctionalComponent:
		return "FunctionalComponent"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindPortal:
		return "Portal"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// IsComponent reports whether the kind is a stateful or functional component.
func (k Kind) IsComponent() bool {
	return k == KindStatefulComponent || k == KindFunctionalComponent
}

// ChildArity tags the shape of a node's children.
type ChildArity uint8

const (
	NoChildren       ChildArity = iota // Children is empty
	SingleChild                        // Children holds exactly one node
	MultipleChildren                   // Children is an ordered list
)

// String returns the string representation of the ChildArity.
func (a ChildArity) String() string {
	switch a {
	case NoChildren:
		return "None"
	case SingleChild:
		return "Single"
	case MultipleChildren:
		return "Multiple"
	default:
		return fmt.Sprintf("ChildArity(%d)", uint8(a))
	}
}

// Data holds attributes, properties, styles, classes and event handlers for
// elements, and props for components.
type Data map[string]any

// Instance is a stateful component: anything that can render to a VNode.
type Instance interface {
	Render() *VNode
}

// Constructor creates a stateful component instance from its props.
type Constructor func(props Data) Instance

// FunctionalComponent renders props directly to a VNode.
type FunctionalComponent func(props Data) *VNode

// PropsReceiver is implemented by instances that accept new props when their
// node is patched.
type PropsReceiver interface {
	SetProps(props Data)
}

// Unmounter is implemented by instances that release resources on teardown.
type Unmounter interface {
	Unmount()
}

// ComponentState is the renderer-owned state of a mounted component node.
// It is shared by every VNode that patches the same mounted component.
type ComponentState struct {
	// Instance is the stateful component instance (nil for functional).
	Instance Instance

	// Tree is the inner tree produced by the last evaluation.
	Tree *VNode

	// Owner is the latest VNode the component is mounted as.
	Owner *VNode

	// SVG records whether the component was mounted in the SVG namespace.
	SVG bool

	// Update re-evaluates the component and patches its tree.
	Update func() error

	// Teardown stops the component's subscriber.
	Teardown func()
}

// VNode is the virtual tree node.
type VNode struct {
	Kind     Kind       // Node type
	Tag      string     // Element tag, or portal target selector
	SVG      bool       // Element lives in the SVG namespace
	Data     Data       // Attributes and event handlers, or component props
	Children []*VNode   // Child nodes, shaped according to Arity
	Arity    ChildArity // Shape of Children, fixed at construction
	Key      string     // Reconciliation key
	Text     string     // For KindText

	Ctor   Constructor         // For KindStatefulComponent
	Fn     FunctionalComponent // For KindFunctionalComponent
	Target any                 // For KindPortal: direct backend container

	// Handle is the backend node, set once mounted. For components it aliases
	// the inner tree's root; for portals it is the placeholder.
	Handle any

	// Resolved is a mounted portal's target container.
	Resolved any

	// Listeners holds the element's attached event listeners by Data key.
	Listeners map[string]*Listener

	// Component is set on mounted component nodes.
	Component *ComponentState
}

// WithKey sets the reconciliation key and returns the node.
func (v *VNode) WithKey(key string) *VNode {
	v.Key = key
	return v
}

// Child returns the only child of a SingleChild node, or nil.
func (v *VNode) Child() *VNode {
	if v.Arity != SingleChild || len(v.Children) == 0 {
		return nil
	}
	return v.Children[0]
}

// Validate checks that Arity matches the shape of Children and that
// component and portal nodes carry what they need.
func (v *VNode) Validate() error {
	if err := v.ValidateArity(); err != nil {
		return err
	}
	switch v.Kind {
	case KindStatefulComponent:
		if v.Ctor == nil {
			return fmt.Errorf("stateful component node has no constructor")
		}
	case KindFunctionalComponent:
		if v.Fn == nil {
			return fmt.Errorf("functional component node has no function")
		}
	case KindPortal:
		if v.Tag == "" && v.Target == nil {
			return fmt.Errorf("portal node has neither a selector nor a target")
		}
	}
	return nil
}

// ValidateArity checks that Arity matches the shape of Children.
func (v *VNode) ValidateArity() error {
	switch v.Arity {
	case NoChildren:
		if len(v.Children) != 0 {
			return fmt.Errorf("%s node declares no children but has %d", v.Kind, len(v.Children))
		}
	case SingleChild:
		if len(v.Children) != 1 || v.Children[0] == nil {
			return fmt.Errorf("%s node declares a single child but has %d", v.Kind, len(v.Children))
		}
	case MultipleChildren:
		for i, c := range v.Children {
			if c == nil {
				return fmt.Errorf("%s node has nil child at %d", v.Kind, i)
			}
		}
	default:
		return fmt.Errorf("%s node has unknown arity %d", v.Kind, v.Arity)
	}
	return nil
}

// SameType reports whether prev and next can be patched in place: same kind
// and same tag identity.
func SameType(prev, next *VNode) bool {
	if prev == nil || next == nil || prev.Kind != next.Kind {
		return false
	}
	switch prev.Kind {
	case KindElement:
		return prev.Tag == next.Tag && prev.SVG == next.SVG
	case KindStatefulComponent:
		return funcIdentity(prev.Ctor) == funcIdentity(next.Ctor)
	case KindFunctionalComponent:
		return funcIdentity(prev.Fn) == funcIdentity(next.Fn)
	}
	return true
}

// funcIdentity returns the code pointer of a func value.
func funcIdentity(fn any) uintptr {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return 0
	}
	return rv.Pointer()
}

// Count returns the number of nodes in the tree rooted at v, not descending
// into component output.
func (v *VNode) Count() int {
	if v == nil {
		return 0
	}
	n := 1
	for _, c := range v.Children {
		n += c.Count()
	}
	return n
}
