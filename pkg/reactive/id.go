package reactive

import "sync/atomic"

var idCounter atomic.Uint64

// nextID returns a process-unique identifier for deps and subscribers.
func nextID() uint64 {
	return idCounter.Add(1)
}

// NextID returns a fresh subscriber identifier for Subscriber
// implementations outside this package.
func NextID() uint64 {
	return nextID()
}
