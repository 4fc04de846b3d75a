package reactive

import (
	stderrors "errors"
	"testing"

	"github.com/sunnyxujian/minivue/internal/errors"
)

// testSubscriber is a simple Subscriber implementation for testing.
type testSubscriber struct {
	id       uint64
	updates  int
	onUpdate func()
}

func newTestSubscriber() *testSubscriber {
	return &testSubscriber{id: nextID()}
}

func (s *testSubscriber) ID() uint64 {
	return s.id
}

func (s *testSubscriber) Update() {
	s.updates++
	if s.onUpdate != nil {
		s.onUpdate()
	}
}

func TestTrackNesting(t *testing.T) {
	tr := NewTracker()
	outer := newTestSubscriber()
	inner := newTestSubscriber()

	if tr.Current() != nil {
		t.Fatal("Current() should be nil before tracking")
	}

	tr.Track(outer, func() {
		if tr.Current() != outer {
			t.Error("Current() should be outer")
		}
		tr.Track(inner, func() {
			if tr.Current() != inner {
				t.Error("Current() should be inner")
			}
			if tr.Depth() != 2 {
				t.Errorf("Depth() = %d, want 2", tr.Depth())
			}
		})
		if tr.Current() != outer {
			t.Error("Current() should be restored to outer")
		}
	})

	if tr.Current() != nil {
		t.Error("Current() should be nil after tracking")
	}
}

func TestTrackRestoresOnPanic(t *testing.T) {
	tr := NewTracker()
	outer := newTestSubscriber()
	inner := newTestSubscriber()

	tr.Track(outer, func() {
		func() {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tr.Track(inner, func() {
				panic("render failed")
			})
		}()
		if tr.Current() != outer {
			t.Error("Current() should be restored to outer after panic")
		}
	})

	if tr.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", tr.Depth())
	}
}

func TestUntracked(t *testing.T) {
	tr := NewTracker()
	sub := newTestSubscriber()
	dep := NewDep(tr)

	tr.Track(sub, func() {
		tr.Untracked(func() {
			dep.Depend()
		})
	})

	if dep.Len() != 0 {
		t.Errorf("Len() = %d, want 0 for untracked read", dep.Len())
	}
}

func TestBatchDedupes(t *testing.T) {
	tr := NewTracker()
	sub := newTestSubscriber()
	a := NewDep(tr)
	b := NewDep(tr)
	a.AddSub(sub)
	b.AddSub(sub)

	tr.Batch(func() {
		a.Notify()
		b.Notify()
		tr.Batch(func() {
			a.Notify()
		})
		if sub.updates != 0 {
			t.Errorf("updates = %d inside batch, want 0", sub.updates)
		}
	})

	if sub.updates != 1 {
		t.Errorf("updates = %d, want 1", sub.updates)
	}
}

func TestReentrantUpdateDeferred(t *testing.T) {
	tr := NewTracker()
	dep := NewDep(tr)
	sub := newTestSubscriber()
	dep.AddSub(sub)

	tr.Track(sub, func() {
		dep.Notify()
		if sub.updates != 0 {
			t.Errorf("updates = %d during evaluation, want 0", sub.updates)
		}
	})

	if tr.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", tr.Pending())
	}
	tr.Flush()
	if sub.updates != 1 {
		t.Errorf("updates = %d after unwind, want 1", sub.updates)
	}
}

func TestReentrantUpdatePanics(t *testing.T) {
	tr := NewTracker(WithReentrancy(ReentrancyPanic))
	dep := NewDep(tr)
	sub := newTestSubscriber()
	dep.AddSub(sub)

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		tr.Track(sub, func() {
			dep.Notify()
		})
	}()

	err, ok := recovered.(error)
	if !ok {
		t.Fatalf("recovered %v, want error", recovered)
	}
	if !stderrors.Is(err, errors.New("E006")) {
		t.Errorf("err = %v, want E006", err)
	}
	if tr.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", tr.Depth())
	}
	if sub.updates != 0 {
		t.Errorf("updates = %d, want 0", sub.updates)
	}
}

func TestUpdateStormIsBounded(t *testing.T) {
	tr := NewTracker()
	dep := NewDep(tr)
	sub := newTestSubscriber()
	sub.onUpdate = func() {
		tr.Track(sub, func() {
			dep.Notify()
		})
	}
	dep.AddSub(sub)

	tr.Track(sub, func() {
		dep.Notify()
	})
	tr.Flush()

	if sub.updates != maxFlushRounds {
		t.Errorf("updates = %d, want %d", sub.updates, maxFlushRounds)
	}
}

func TestParseReentrancyPolicy(t *testing.T) {
	tests := []struct {
		in     string
		want   ReentrancyPolicy
		wantOK bool
	}{
		{"", ReentrancyDefer, true},
		{"defer", ReentrancyDefer, true},
		{"panic", ReentrancyPanic, true},
		{"crash", ReentrancyDefer, false},
	}
	for _, tt := range tests {
		got, ok := ParseReentrancyPolicy(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseReentrancyPolicy(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
		if ok && got.String() == "unknown" {
			t.Errorf("String() for %q should be known", tt.in)
		}
	}
}
