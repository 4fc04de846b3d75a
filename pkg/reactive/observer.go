package reactive

import "sort"

// Observer establishes reactive interception over one map[string]any or one
// *[]any. Reads and writes must go through the Observer to be tracked; direct
// mutation of the underlying data is invisible to subscribers.
type Observer struct {
	store *Store

	// obj is set for object observers.
	obj map[string]any

	// props holds one Dep per object property.
	props map[string]*Dep

	// arr is set for array observers.
	arr *[]any

	// dep is the collection-level dep: notified on array structural changes
	// and on object key additions and deletions.
	dep *Dep
}

// IsArray reports whether the observer wraps a slice.
func (o *Observer) IsArray() bool {
	return o.arr != nil
}

// Raw returns the wrapped value: a map[string]any or a *[]any.
func (o *Observer) Raw() any {
	if o.arr != nil {
		return o.arr
	}
	return o.obj
}

// Dep returns the collection-level dep.
func (o *Observer) Dep() *Dep {
	return o.dep
}

// walk defines every property of an object observer reactively.
func (o *Observer) walk() {
	for _, key := range sortedKeys(o.obj) {
		o.defineReactive(key, o.obj[key])
	}
}

func (o *Observer) defineReactive(key string, value any) {
	value = o.store.box(unwrapObserver(value))
	o.obj[key] = value
	o.props[key] = NewDep(o.store.tracker)
	o.store.wrap(value)
}

// observeItems boxes and wraps the elements in [from, to).
func (o *Observer) observeItems(from, to int) {
	items := *o.arr
	for i := from; i < to; i++ {
		items[i] = o.store.box(unwrapObserver(items[i]))
		o.store.wrap(items[i])
	}
}

// dependChild subscribes the active subscriber to the collection dep of an
// observed value, so structural changes inside it are seen by readers of the
// slot that holds it.
func (o *Observer) dependChild(value any) {
	if child := o.store.lookup(value); child != nil {
		child.dep.Depend()
	}
}

// Get returns the value of a property and records a dependency on it.
// Reading a missing key depends on the key set, so a later Set of that key
// notifies the reader.
func (o *Observer) Get(key string) any {
	o.mustObject("Get")
	dep, ok := o.props[key]
	if !ok {
		o.dep.Depend()
		return nil
	}
	dep.Depend()
	value := o.obj[key]
	o.dependChild(value)
	return value
}

// Has reports whether the object has the key. It depends on the key set.
func (o *Observer) Has(key string) bool {
	o.mustObject("Has")
	o.dep.Depend()
	_, ok := o.props[key]
	return ok
}

// Child returns the observer of a nested object or array property, or nil.
func (o *Observer) Child(key string) *Observer {
	return o.store.lookup(o.Get(key))
}

// Set writes a property. Writing a value identical to the current one does
// nothing. New object or slice values are wrapped before subscribers run.
func (o *Observer) Set(key string, value any) {
	o.mustObject("Set")
	value = unwrapObserver(value)

	old, exists := o.obj[key]
	if exists && same(old, value) {
		return
	}
	o.store.tracker.warnWrite(key)

	if !exists {
		o.defineReactive(key, value)
		o.dep.Notify()
		return
	}

	value = o.store.box(value)
	o.obj[key] = value
	o.store.wrap(value)
	o.props[key].Notify()
}

// Delete removes a property and notifies readers of the key set.
func (o *Observer) Delete(key string) {
	o.mustObject("Delete")
	dep, ok := o.props[key]
	if !ok {
		return
	}
	o.store.tracker.warnWrite(key)
	delete(o.obj, key)
	delete(o.props, key)
	o.store.tracker.Batch(func() {
		dep.Notify()
		o.dep.Notify()
	})
}

// Keys returns the sorted property names and depends on the key set.
func (o *Observer) Keys() []string {
	o.mustObject("Keys")
	o.dep.Depend()
	return sortedKeys(o.obj)
}

// PropertyDep returns the dep of one property.
func (o *Observer) PropertyDep(key string) (*Dep, bool) {
	d, ok := o.props[key]
	return d, ok
}

func (o *Observer) mustObject(op string) {
	if o.obj == nil {
		panic("reactive: " + op + " called on an array observer")
	}
}

func (o *Observer) mustArray(op string) {
	if o.arr == nil {
		panic("reactive: " + op + " called on an object observer")
	}
}

func unwrapObserver(value any) any {
	if ob, ok := value.(*Observer); ok && ob != nil {
		return ob.Raw()
	}
	return value
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
