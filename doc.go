// Package minivue is a small reactive UI runtime.
//
// Plain data wrapped by a Store becomes observable: reads made while a
// component renders are recorded, and a later write re-renders exactly the
// components that read the written property. Rendering goes through a
// pluggable backend; pkg/backend/memdom is an in-memory document and
// pkg/backend/jsdom drives the browser DOM under js/wasm.
//
// Usage:
//
//	type counter struct{ state *minivue.Observer }
//
//	func (c *counter) Render() *minivue.VNode {
//	    n := c.state.Get("count").(int)
//	    return minivue.H("button", minivue.Data{
//	        "onClick": func() { c.state.Set("count", n+1) },
//	    }, fmt.Sprint(n))
//	}
//
//	doc := memdom.NewDocument()
//	rt := minivue.New(doc, minivue.DefaultConfig())
//	state := rt.Wrap(map[string]any{"count": 0})
//	err := rt.Render(minivue.Component(func(minivue.Data) minivue.Instance {
//	    return &counter{state: state}
//	}, nil), doc.AddContainer("app"))
//
// # Configuration
//
// Config can be built in code or loaded from minivue.yaml with
// ConfigFromFile or LoadConfig.
package minivue
