// Package memdom is an in-memory backend for the renderer.
//
// A Document holds a tree of element and text nodes rooted at <body>. It
// implements backend.Backend, counts every mutation in Stats, serializes
// to HTML for snapshots, and can dispatch events to attached listeners:
//
//	doc := memdom.NewDocument()
//	app := doc.AddContainer("app")
//	r := render.New(doc)
//	r.Render(vdom.Text("hi"), app)
//	app.HTML() // "hi"
//
// Each Document carries a random ID; handing a node from one document to
// another panics.
package memdom
