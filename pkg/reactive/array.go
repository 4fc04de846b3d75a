package reactive

import (
	"sort"

	"github.com/sunnyxujian/minivue/internal/errors"
)

// Array reads and structural operations. Every structural operation performs
// the mutation, wraps the inserted elements and notifies the array's dep
// exactly once.

// Len returns the number of elements and depends on the array.
func (o *Observer) Len() int {
	o.mustArray("Len")
	o.dep.Depend()
	return len(*o.arr)
}

// Index returns element i and depends on the array.
func (o *Observer) Index(i int) any {
	o.mustArray("Index")
	o.dep.Depend()
	items := *o.arr
	if i < 0 || i >= len(items) {
		panic(errors.New("E007").WithDetailf("index %d with length %d", i, len(items)))
	}
	value := items[i]
	o.dependChild(value)
	return value
}

// At returns the observer of element i if it is an object or array.
func (o *Observer) At(i int) *Observer {
	return o.store.lookup(o.Index(i))
}

// Items returns a copy of the elements and depends on the array.
func (o *Observer) Items() []any {
	o.mustArray("Items")
	o.dep.Depend()
	out := make([]any, len(*o.arr))
	copy(out, *o.arr)
	for _, v := range out {
		o.dependChild(v)
	}
	return out
}

// SetIndex replaces element i.
func (o *Observer) SetIndex(i int, value any) {
	o.mustArray("SetIndex")
	items := *o.arr
	if i < 0 || i >= len(items) {
		panic(errors.New("E007").WithDetailf("index %d with length %d", i, len(items)))
	}
	value = unwrapObserver(value)
	if same(items[i], value) {
		return
	}
	items[i] = value
	o.observeItems(i, i+1)
	o.dep.Notify()
}

// Push appends values and returns the new length.
func (o *Observer) Push(values ...any) int {
	o.mustArray("Push")
	start := len(*o.arr)
	*o.arr = append(*o.arr, values...)
	o.observeItems(start, len(*o.arr))
	o.dep.Notify()
	return len(*o.arr)
}

// Pop removes and returns the last element, or nil if the array is empty.
func (o *Observer) Pop() any {
	o.mustArray("Pop")
	items := *o.arr
	var last any
	if n := len(items); n > 0 {
		last = items[n-1]
		items[n-1] = nil
		*o.arr = items[:n-1]
	}
	o.dep.Notify()
	return last
}

// Shift removes and returns the first element, or nil if the array is empty.
func (o *Observer) Shift() any {
	o.mustArray("Shift")
	items := *o.arr
	var first any
	if n := len(items); n > 0 {
		first = items[0]
		copy(items, items[1:])
		items[n-1] = nil
		*o.arr = items[:n-1]
	}
	o.dep.Notify()
	return first
}

// Unshift prepends values and returns the new length.
func (o *Observer) Unshift(values ...any) int {
	o.mustArray("Unshift")
	items := make([]any, 0, len(*o.arr)+len(values))
	items = append(items, values...)
	items = append(items, *o.arr...)
	*o.arr = items
	o.observeItems(0, len(values))
	o.dep.Notify()
	return len(*o.arr)
}

// Splice removes deleteCount elements at start, inserts values there and
// returns the removed elements. A negative start counts from the end; start
// and deleteCount are clamped to the array bounds.
func (o *Observer) Splice(start, deleteCount int, values ...any) []any {
	o.mustArray("Splice")
	items := *o.arr
	n := len(items)

	if start < 0 {
		start += n
		if start < 0 {
			start = 0
		}
	}
	if start > n {
		start = n
	}
	if deleteCount < 0 {
		deleteCount = 0
	}
	if deleteCount > n-start {
		deleteCount = n - start
	}

	removed := make([]any, deleteCount)
	copy(removed, items[start:start+deleteCount])

	next := make([]any, 0, n-deleteCount+len(values))
	next = append(next, items[:start]...)
	next = append(next, values...)
	next = append(next, items[start+deleteCount:]...)
	*o.arr = next

	o.observeItems(start, start+len(values))
	o.dep.Notify()
	return removed
}

// Reverse reverses the array in place.
func (o *Observer) Reverse() {
	o.mustArray("Reverse")
	items := *o.arr
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	o.dep.Notify()
}

// Sort sorts the array in place with a stable sort.
func (o *Observer) Sort(less func(a, b any) bool) {
	o.mustArray("Sort")
	items := *o.arr
	sort.SliceStable(items, func(i, j int) bool {
		return less(items[i], items[j])
	})
	o.dep.Notify()
}
