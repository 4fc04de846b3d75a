package reactive

// Watcher is a Subscriber that evaluates a getter under dependency tracking
// and re-evaluates it whenever one of the properties it read changes.
//
// Each run drops the dependencies collected by the previous run before
// tracking again, so a watcher is only notified by what its latest
// evaluation read.
type Watcher struct {
	id      uint64
	tracker *Tracker
	getter  func() any

	// callback runs after a re-evaluation produced a different value.
	callback func(newValue, oldValue any)

	value any
	deps  []*Dep

	lazy    bool
	dirty   bool
	stopped bool
	runs    int
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithCallback sets the change callback. It runs outside dependency
// tracking, so reads inside it do not subscribe the watcher.
func WithCallback(fn func(newValue, oldValue any)) WatcherOption {
	return func(w *Watcher) {
		w.callback = fn
	}
}

// WithLazy defers evaluation until Value is called, and turns updates into a
// dirty flag instead of an immediate re-run.
func WithLazy() WatcherOption {
	return func(w *Watcher) {
		w.lazy = true
	}
}

// NewWatcher creates a watcher. Unless WithLazy is given, the getter is
// evaluated immediately.
func NewWatcher(t *Tracker, getter func() any, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		id:      nextID(),
		tracker: t,
		getter:  getter,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.lazy {
		w.dirty = true
	} else {
		w.Run()
	}
	return w
}

// ID implements Subscriber.
func (w *Watcher) ID() uint64 {
	return w.id
}

// AddDep implements DepRecorder.
func (w *Watcher) AddDep(d *Dep) {
	w.deps = append(w.deps, d)
}

// Run evaluates the getter with the watcher active, stores the result and
// flushes updates queued during the evaluation.
func (w *Watcher) Run() any {
	value := w.run()
	w.tracker.Flush()
	return value
}

func (w *Watcher) run() any {
	if w.stopped {
		return w.value
	}
	w.cleanupDeps()

	var value any
	w.tracker.Track(w, func() {
		value = w.getter()
	})
	w.value = value
	w.dirty = false
	w.runs++
	return value
}

// Update implements Subscriber.
func (w *Watcher) Update() {
	if w.stopped {
		return
	}
	if w.lazy {
		w.dirty = true
		return
	}
	old := w.value
	value := w.run()
	if w.callback != nil && (!same(value, old) || isCollection(value)) {
		w.tracker.Untracked(func() {
			w.callback(value, old)
		})
	}
	w.tracker.Flush()
}

// Value returns the current value, re-evaluating a dirty lazy watcher.
// When called while another subscriber is evaluating, that subscriber is
// also subscribed to everything this watcher depends on.
func (w *Watcher) Value() any {
	if w.dirty && !w.stopped {
		w.run()
	}
	if w.tracker.Current() != nil {
		for _, d := range w.deps {
			d.Depend()
		}
	}
	return w.value
}

// Peek returns the last evaluated value without re-evaluating or creating
// dependencies.
func (w *Watcher) Peek() any {
	return w.value
}

// Dirty reports whether a lazy watcher needs re-evaluation.
func (w *Watcher) Dirty() bool {
	return w.dirty
}

// Runs returns how many times the getter has been evaluated.
func (w *Watcher) Runs() int {
	return w.runs
}

// Deps returns the number of deps the watcher currently subscribes to.
func (w *Watcher) Deps() int {
	return len(w.deps)
}

// Stop detaches the watcher from every dep. Stopped watchers ignore updates.
func (w *Watcher) Stop() {
	if w.stopped {
		return
	}
	w.stopped = true
	w.cleanupDeps()
}

// Stopped reports whether Stop was called.
func (w *Watcher) Stopped() bool {
	return w.stopped
}

func (w *Watcher) cleanupDeps() {
	for _, d := range w.deps {
		d.RemoveSub(w)
	}
	w.deps = w.deps[:0]
}

func isCollection(v any) bool {
	switch v.(type) {
	case map[string]any, *[]any, []any, *Observer:
		return true
	}
	return false
}
