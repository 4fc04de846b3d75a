package reactive

import (
	"log/slog"
	"reflect"

	"github.com/sunnyxujian/minivue/pkg/metrics"
)

// Store owns the observers created for a tree of plain data.
//
// Observer identity is kept in side tables keyed by the address of the
// wrapped map or slice, so the data itself is never tagged. Observers live
// as long as the Store.
type Store struct {
	tracker *Tracker
	logger  *slog.Logger
	metrics *metrics.Metrics

	// byRef maps the address of a map[string]any or *[]any to its observer.
	byRef map[uintptr]*Observer

	// bySlice maps a bare []any header to the observer of its boxed copy.
	bySlice map[sliceKey]*Observer

	// boxes maps a bare []any header to its box, so a slice reached through
	// several properties is boxed once.
	boxes map[sliceKey]*[]any
}

type sliceKey struct {
	data     uintptr
	len, cap int
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithTracker shares an existing tracker with the store.
func WithTracker(t *Tracker) StoreOption {
	return func(s *Store) {
		if t != nil {
			s.tracker = t
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) StoreOption {
	return func(s *Store) {
		s.metrics = m
	}
}

// NewStore creates a Store. Without WithTracker it creates its own Tracker.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		logger:  slog.Default(),
		byRef:   make(map[uintptr]*Observer),
		bySlice: make(map[sliceKey]*Observer),
		boxes:   make(map[sliceKey]*[]any),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tracker == nil {
		s.tracker = NewTracker(WithTrackerLogger(s.logger), WithTrackerMetrics(s.metrics))
	}
	return s
}

// Tracker returns the tracker used for dependency collection.
func (s *Store) Tracker() *Tracker {
	return s.tracker
}

// Wrap makes value observable and returns its Observer.
//
// Accepted values are map[string]any, *[]any, []any and *Observer. Anything
// else (primitives, nil, structs) is ignored and Wrap returns nil. Wrapping an
// already wrapped value returns the existing Observer. A bare []any is boxed
// into a *[]any owned by the Observer; pass a *[]any to keep control of the
// backing slice.
func (s *Store) Wrap(value any) *Observer {
	return s.wrap(value)
}

// Lookup returns the observer for an already wrapped value without wrapping.
func (s *Store) Lookup(value any) (*Observer, bool) {
	o := s.lookup(value)
	return o, o != nil
}

func (s *Store) lookup(value any) *Observer {
	switch v := value.(type) {
	case *Observer:
		if v != nil && v.store == s {
			return v
		}
	case map[string]any:
		if v != nil {
			return s.byRef[reflect.ValueOf(v).Pointer()]
		}
	case *[]any:
		if v != nil {
			return s.byRef[reflect.ValueOf(v).Pointer()]
		}
	case []any:
		if key, ok := keyOfSlice(v); ok {
			return s.bySlice[key]
		}
	}
	return nil
}

func (s *Store) wrap(value any) *Observer {
	if o := s.lookup(value); o != nil {
		return o
	}

	switch v := value.(type) {
	case map[string]any:
		if v == nil {
			return nil
		}
		o := s.newObserver()
		o.obj = v
		o.props = make(map[string]*Dep, len(v))
		s.byRef[reflect.ValueOf(v).Pointer()] = o
		o.walk()
		return o

	case *[]any:
		if v == nil {
			return nil
		}
		o := s.newObserver()
		o.arr = v
		s.byRef[reflect.ValueOf(v).Pointer()] = o
		o.observeItems(0, len(*v))
		return o

	case []any:
		boxed := s.box(v).(*[]any)
		o := s.wrap(boxed)
		if key, ok := keyOfSlice(v); ok {
			s.bySlice[key] = o
		}
		return o
	}
	return nil
}

func (s *Store) newObserver() *Observer {
	s.metrics.RecordObserver()
	return &Observer{
		store: s,
		dep:   NewDep(s.tracker),
	}
}

// box converts a bare []any into a *[]any so that structural operations on
// it keep a stable identity. Other values are returned unchanged.
func (s *Store) box(value any) any {
	v, ok := value.([]any)
	if !ok {
		return value
	}
	if o := s.lookup(v); o != nil {
		return o.arr
	}
	key, ok := keyOfSlice(v)
	if !ok {
		return &v
	}
	if b, hit := s.boxes[key]; hit {
		return b
	}
	b := &v
	s.boxes[key] = b
	return b
}

func keyOfSlice(v []any) (sliceKey, bool) {
	if cap(v) == 0 {
		return sliceKey{}, false
	}
	return sliceKey{
		data: reflect.ValueOf(v).Pointer(),
		len:  len(v),
		cap:  cap(v),
	}, true
}

// same reports whether a write of b over a is a no-op: identity for maps,
// slices, pointers and funcs, == for other comparable values.
func same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}
	switch ra.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return ra.Pointer() == rb.Pointer()
	case reflect.Slice:
		return ra.Pointer() == rb.Pointer() && ra.Len() == rb.Len()
	case reflect.Float32, reflect.Float64:
		fa, fb := ra.Float(), rb.Float()
		return fa == fb || (fa != fa && fb != fb)
	}
	if ra.Type().Comparable() {
		return a == b
	}
	return false
}
