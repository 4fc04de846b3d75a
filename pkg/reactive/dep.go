package reactive

// Dep is the subscriber registry of one reactive property.
// Membership is a set; Notify visits subscribers in subscription order.
type Dep struct {
	id      uint64
	tracker *Tracker
	subs    []Subscriber
	index   map[uint64]struct{}
}

// NewDep creates a Dep bound to a tracker.
func NewDep(t *Tracker) *Dep {
	return &Dep{
		id:      nextID(),
		tracker: t,
	}
}

// ID returns the unique identifier for this dep.
func (d *Dep) ID() uint64 {
	return d.id
}

// Depend subscribes the tracker's active subscriber, if any.
func (d *Dep) Depend() {
	sub := d.tracker.Current()
	if sub == nil {
		return
	}
	if d.AddSub(sub) {
		if r, ok := sub.(DepRecorder); ok {
			r.AddDep(d)
		}
	}
}

// AddSub adds a subscriber. It reports whether the subscriber was new.
func (d *Dep) AddSub(sub Subscriber) bool {
	if sub == nil {
		return false
	}
	id := sub.ID()
	if _, ok := d.index[id]; ok {
		return false
	}
	if d.index == nil {
		d.index = make(map[uint64]struct{})
	}
	d.index[id] = struct{}{}
	d.subs = append(d.subs, sub)
	return true
}

// RemoveSub removes a subscriber, keeping the order of the others.
func (d *Dep) RemoveSub(sub Subscriber) {
	if sub == nil {
		return
	}
	id := sub.ID()
	if _, ok := d.index[id]; !ok {
		return
	}
	delete(d.index, id)
	for i, s := range d.subs {
		if s.ID() == id {
			copy(d.subs[i:], d.subs[i+1:])
			d.subs[len(d.subs)-1] = nil
			d.subs = d.subs[:len(d.subs)-1]
			return
		}
	}
}

// Len returns the number of subscribers.
func (d *Dep) Len() int {
	return len(d.subs)
}

// Notify updates every subscriber synchronously, in subscription order.
// Subscribers added or removed during notification take effect next time.
func (d *Dep) Notify() {
	if len(d.subs) == 0 {
		return
	}
	d.tracker.metrics.RecordNotify()

	subs := make([]Subscriber, len(d.subs))
	copy(subs, d.subs)

	for _, sub := range subs {
		d.tracker.dispatch(sub)
	}
}
