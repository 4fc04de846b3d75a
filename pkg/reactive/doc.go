// Package reactive turns plain data into observable state and tracks which
// computations depend on which properties.
//
// # Core Types
//
// Store wraps maps and slices. Reads through an Observer record a dependency
// on the active subscriber; writes notify every subscriber that read the
// property:
//
//	store := reactive.NewStore()
//	state := store.Wrap(map[string]any{"count": 0, "todos": []any{"a"}})
//
//	w := reactive.NewWatcher(store.Tracker(), func() any {
//	    return state.Get("count")
//	}, reactive.WithCallback(func(newV, oldV any) {
//	    fmt.Println(oldV, "->", newV)
//	}))
//	defer w.Stop()
//
//	state.Set("count", 1)               // prints "0 -> 1"
//	state.Child("todos").Push("b")      // structural change, one notification
//
// # Subscriber Stack
//
// A Tracker holds the stack of currently evaluating subscribers. Track pushes
// a subscriber for the duration of a function and always restores the
// previous one, even if the function panics. Nested Track calls follow the
// call nesting of component renders.
//
// # Batching and Reentrancy
//
// Notifications raised inside Batch are queued, deduplicated by subscriber
// and delivered when the outermost batch returns. A subscriber notified while
// it is itself evaluating is either deferred until the stack unwinds
// (ReentrancyDefer) or rejected with error E006 (ReentrancyPanic).
//
// # Thread Safety
//
// A Store and its Tracker are single-threaded: all reads, writes and renders
// that share a Tracker must run on one goroutine.
package reactive
