package vdom

import "fmt"

// H creates an HTML element node.
//
// children may be nil, a *VNode, a string, a []*VNode, or a []any mixing
// nodes and strings. A "key" entry in data becomes the node's Key.
func H(tag string, data Data, children any) *VNode {
	node := &VNode{
		Kind: KindElement,
		Tag:  tag,
		Data: data,
	}
	node.Children, node.Arity = normalizeChildren(children)
	if k, ok := data["key"]; ok && k != nil {
		node.Key = AttrString(k)
	}
	return node
}

// SVG creates an element node in the SVG namespace.
func SVG(tag string, data Data, children any) *VNode {
	node := H(tag, data, children)
	node.SVG = true
	return node
}

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Fragment groups children without a wrapper element.
func Fragment(children any) *VNode {
	node := &VNode{Kind: KindFragment}
	node.Children, node.Arity = normalizeChildren(children)
	return node
}

// Portal renders children into the container matched by selector.
func Portal(selector string, children any) *VNode {
	node := &VNode{
		Kind: KindPortal,
		Tag:  selector,
	}
	node.Children, node.Arity = normalizeChildren(children)
	return node
}

// PortalTo renders children into a backend container directly.
func PortalTo(target any, children any) *VNode {
	node := &VNode{
		Kind:   KindPortal,
		Target: target,
	}
	node.Children, node.Arity = normalizeChildren(children)
	return node
}

// Component creates a stateful component node.
func Component(ctor Constructor, props Data) *VNode {
	node := &VNode{
		Kind: KindStatefulComponent,
		Ctor: ctor,
		Data: props,
	}
	if k, ok := props["key"]; ok && k != nil {
		node.Key = AttrString(k)
	}
	return node
}

// Func creates a functional component node.
func Func(fn FunctionalComponent, props Data) *VNode {
	node := &VNode{
		Kind: KindFunctionalComponent,
		Fn:   fn,
		Data: props,
	}
	if k, ok := props["key"]; ok && k != nil {
		node.Key = AttrString(k)
	}
	return node
}

// If returns the node if condition is true, nil otherwise.
func If(condition bool, node *VNode) *VNode {
	if condition {
		return node
	}
	return nil
}

// Range maps items to nodes. Nil results are skipped.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	nodes := make([]*VNode, 0, len(items))
	for i, item := range items {
		if n := fn(item, i); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// normalizeChildren fixes the arity of a node from the children argument.
func normalizeChildren(children any) ([]*VNode, ChildArity) {
	switch v := children.(type) {
	case nil:
		return nil, NoChildren
	case *VNode:
		if v == nil {
			return nil, NoChildren
		}
		return []*VNode{v}, SingleChild
	case string:
		return []*VNode{Text(v)}, SingleChild
	case []*VNode:
		out := make([]*VNode, 0, len(v))
		for _, c := range v {
			if c != nil {
				out = append(out, c)
			}
		}
		if len(out) == 0 {
			return nil, NoChildren
		}
		return out, MultipleChildren
	case []any:
		out := make([]*VNode, 0, len(v))
		for _, c := range v {
			switch cv := c.(type) {
			case *VNode:
				if cv != nil {
					out = append(out, cv)
				}
			case string:
				out = append(out, Text(cv))
			case []*VNode:
				for _, n := range cv {
					if n != nil {
						out = append(out, n)
					}
				}
			case nil:
			default:
				out = append(out, Text(fmt.Sprint(cv)))
			}
		}
		if len(out) == 0 {
			return nil, NoChildren
		}
		return out, MultipleChildren
	default:
		return []*VNode{Text(fmt.Sprint(v))}, SingleChild
	}
}
