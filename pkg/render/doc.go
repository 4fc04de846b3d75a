// Package render mounts VNode trees into a backend and keeps them in sync.
//
// A Renderer remembers the tree last rendered into each container. Render
// mounts a new tree, reconciles it against the remembered one, or unmounts
// it when given nil:
//
//	doc := memdom.NewDocument()
//	app := doc.AddContainer("app")
//	r := render.New(doc, render.WithTracker(store.Tracker()))
//	if err := r.Render(vdom.H("p", nil, "hi"), app); err != nil {
//	    return err
//	}
//
// # Reconciliation
//
// Nodes of the same kind and tag are patched in place: element data is
// diffed key by key, text is updated only when it changed, and children
// are reconciled by arity. Sibling lists where every child has a key are
// matched by key and only nodes outside the longest increasing subsequence
// of old positions are moved. Other lists are matched by position.
//
// # Components
//
// A stateful component's Render runs inside a reactive.Watcher on the
// renderer's Tracker. Writing any state it read re-renders the component
// and patches its subtree. Updates triggered while a render is in progress
// are deferred until it completes.
//
// # Errors
//
// Fatal conditions are returned as *errors.Error values with a code:
// E100 unknown node kind, E101 portal target not found, E102 duplicate
// sibling key, E103 arity mismatch, E104 component failure (including
// recovered panics), E105 nil container.
package render
