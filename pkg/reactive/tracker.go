package reactive

import (
	"log/slog"

	"github.com/sunnyxujian/minivue/internal/errors"
	"github.com/sunnyxujian/minivue/pkg/metrics"
)

// Subscriber is a re-evaluable computation that depends on the reactive reads
// made during its last evaluation.
type Subscriber interface {
	// ID uniquely identifies the subscriber. Deps use it for set membership.
	ID() uint64

	// Update is called when a dependency changed.
	Update()
}

// DepRecorder is implemented by subscribers that remember their sources so
// they can detach from them when re-run or stopped.
type DepRecorder interface {
	AddDep(d *Dep)
}

// ReentrancyPolicy decides what happens when a subscriber is notified while
// it is still evaluating.
type ReentrancyPolicy uint8

const (
	// ReentrancyDefer queues the update until the subscriber stack unwinds.
	ReentrancyDefer ReentrancyPolicy = iota

	// ReentrancyPanic panics with error E006.
	ReentrancyPanic
)

// String returns the string representation of the policy.
func (p ReentrancyPolicy) String() string {
	switch p {
	case ReentrancyDefer:
		return "defer"
	case ReentrancyPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// ParseReentrancyPolicy parses "defer" or "panic".
func ParseReentrancyPolicy(s string) (ReentrancyPolicy, bool) {
	switch s {
	case "", "defer":
		return ReentrancyDefer, true
	case "panic":
		return ReentrancyPanic, true
	default:
		return ReentrancyDefer, false
	}
}

// maxFlushRounds bounds how many times queued updates may re-queue each
// other before the flush gives up.
const maxFlushRounds = 100

// Tracker holds the reactive evaluation state shared by a Store and the
// renderers that read from it.
type Tracker struct {
	// stack is the subscriber stack; the last element is the active one.
	stack []Subscriber

	// batchDepth tracks nested Batch() calls.
	batchDepth int

	// pending accumulates subscribers to update once the stack is empty and
	// no batch is open. Deduplicated by ID before delivery.
	pending []Subscriber

	flushing bool

	policy       ReentrancyPolicy
	strictWrites bool
	logger       *slog.Logger
	metrics      *metrics.Metrics
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithReentrancy sets the reentrancy policy.
func WithReentrancy(p ReentrancyPolicy) TrackerOption {
	return func(t *Tracker) {
		t.policy = p
	}
}

// WithStrictWrites makes the store warn (E001) about writes performed while a
// subscriber is evaluating.
func WithStrictWrites(strict bool) TrackerOption {
	return func(t *Tracker) {
		t.strictWrites = strict
	}
}

// WithTrackerLogger sets the logger.
func WithTrackerLogger(l *slog.Logger) TrackerOption {
	return func(t *Tracker) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithTrackerMetrics sets the metrics sink.
func WithTrackerMetrics(m *metrics.Metrics) TrackerOption {
	return func(t *Tracker) {
		t.metrics = m
	}
}

// NewTracker creates a Tracker.
func NewTracker(opts ...TrackerOption) *Tracker {
	t := &Tracker{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Policy returns the reentrancy policy.
func (t *Tracker) Policy() ReentrancyPolicy {
	return t.policy
}

// Current returns the active subscriber, or nil if nothing is tracking.
func (t *Tracker) Current() Subscriber {
	if len(t.stack) == 0 {
		return nil
	}
	return t.stack[len(t.stack)-1]
}

// Depth returns the number of subscribers on the stack.
func (t *Tracker) Depth() int {
	return len(t.stack)
}

// Evaluating reports whether sub is anywhere on the subscriber stack.
func (t *Tracker) Evaluating(sub Subscriber) bool {
	id := sub.ID()
	for _, s := range t.stack {
		if s != nil && s.ID() == id {
			return true
		}
	}
	return false
}

// Track runs fn with sub as the active subscriber. The previous subscriber is
// restored when fn returns or panics. Track never delivers queued updates;
// callers flush once they have finished with the evaluation result.
func (t *Tracker) Track(sub Subscriber, fn func()) {
	t.stack = append(t.stack, sub)
	defer func() {
		t.stack[len(t.stack)-1] = nil
		t.stack = t.stack[:len(t.stack)-1]
	}()
	fn()
}

// Untracked runs fn without an active subscriber, so reads inside it create
// no dependencies.
func (t *Tracker) Untracked(fn func()) {
	t.Track(nil, fn)
}

// Batch groups notifications. Subscribers notified inside fn are updated
// once, in first-notified order, when the outermost batch completes.
func (t *Tracker) Batch(fn func()) {
	t.batchDepth++
	completed := false
	defer func() {
		t.batchDepth--
		if completed {
			t.maybeFlush()
		}
	}()
	fn()
	completed = true
}

// dispatch delivers a notification to one subscriber.
func (t *Tracker) dispatch(sub Subscriber) {
	if t.Evaluating(sub) {
		if t.policy == ReentrancyPanic {
			panic(errors.New("E006").WithDetailf("subscriber %d", sub.ID()))
		}
		t.logger.Debug("deferring reentrant subscriber update", "subscriber", sub.ID())
		t.enqueue(sub)
		return
	}
	if t.batchDepth > 0 {
		t.enqueue(sub)
		return
	}
	t.metrics.RecordUpdate()
	sub.Update()
}

func (t *Tracker) enqueue(sub Subscriber) {
	t.metrics.RecordDeferred()
	t.pending = append(t.pending, sub)
}

// Flush delivers queued updates if nothing is evaluating and no batch is
// open; otherwise it does nothing and the updates stay queued.
func (t *Tracker) Flush() {
	t.maybeFlush()
}

// Pending returns the number of queued updates.
func (t *Tracker) Pending() int {
	return len(t.pending)
}

func (t *Tracker) maybeFlush() {
	if t.flushing || t.batchDepth > 0 || len(t.stack) > 0 || len(t.pending) == 0 {
		return
	}
	t.flushing = true
	defer func() { t.flushing = false }()

	for round := 0; len(t.pending) > 0; round++ {
		if round >= maxFlushRounds {
			t.logger.Error("reactive update storm: dropping queued updates",
				"rounds", round, "dropped", len(t.pending))
			t.pending = nil
			return
		}

		updates := t.pending
		t.pending = nil

		seen := make(map[uint64]bool, len(updates))
		for _, sub := range updates {
			id := sub.ID()
			if seen[id] {
				continue
			}
			seen[id] = true
			t.metrics.RecordUpdate()
			sub.Update()
		}
	}
}

// warnWrite reports a write made while a subscriber is evaluating.
func (t *Tracker) warnWrite(key string) {
	if !t.strictWrites || t.Current() == nil {
		return
	}
	err := errors.New("E001").WithDetailf("property %q", key)
	t.logger.Warn(err.Message, "code", err.Code, "property", key, "subscriber", t.Current().ID())
}
