package vdom

// Event is the payload passed to event handlers by a backend.
type Event struct {
	// Type is the event name without the "on" prefix ("click", "input").
	Type string

	// Target is the backend node the event was dispatched on.
	Target any

	// Value is the target's current value, for form elements.
	Value string
}

// Listener is attached to a backend node once per element and event name.
// Patching an element swaps Handler in place, so the backend never sees a
// listener churn for a changed callback.
type Listener struct {
	Event   string
	Handler any
}

// NewListener creates a listener for event invoking handler.
func NewListener(event string, handler any) *Listener {
	return &Listener{Event: event, Handler: handler}
}

// Invoke calls the current handler. Supported handler forms are func(),
// func(Event), func(*Event) and func(string) (receives Event.Value).
// Other values are ignored.
func (l *Listener) Invoke(ev Event) {
	if l == nil {
		return
	}
	switch h := l.Handler.(type) {
	case func():
		h()
	case func(Event):
		h(ev)
	case func(*Event):
		h(&ev)
	case func(string):
		h(ev.Value)
	}
}

// IsHandler reports whether v is a supported event handler.
func IsHandler(v any) bool {
	switch v.(type) {
	case func(), func(Event), func(*Event), func(string):
		return true
	}
	return false
}
