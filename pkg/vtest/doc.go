// Package vtest provides testing helpers for minivue trees and components.
//
// A Harness wires an in-memory document, a Store and a Renderer around one
// shared Tracker, so component state written in a test re-renders the
// document synchronously:
//
//	func TestCounter(t *testing.T) {
//	    h := vtest.New(t)
//	    state := h.Store.Wrap(map[string]any{"n": 0})
//	    h.Render(vdom.Component(NewCounter(state), nil))
//	    h.Click("button")
//	    h.ExpectHTML(`<button data-on-click="true">1</button>`)
//	}
//
// # Scenarios
//
// Render sequences written as YAML files (see package scenario) are checked
// step by step. RunWithGolden also snapshots the final document against a
// golden file:
//
//	scenarios, err := scenario.LoadDir("testdata/fixtures")
//	if err != nil {
//	    t.Fatal(err)
//	}
//	for _, sc := range scenarios {
//	    t.Run(sc.Name, func(t *testing.T) {
//	        vtest.RunWithGolden(t, sc)
//	    })
//	}
//
// # Render Assertions
//
// For one-off trees, assert on rendered HTML directly:
//
//	vtest.ExpectContains(t, view, "Welcome")
//	vtest.ExpectAttribute(t, view, "class", "btn primary")
package vtest
