// Package debounce coalesces bursts of triggers into a single delayed call.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is used when a debouncer is created with a non-positive delay.
const DefaultDelay = time.Second

// Stopper is the part of *time.Timer the debouncer needs.
type Stopper interface {
	Stop() bool
}

// AfterFunc schedules f to run after d, like time.AfterFunc.
type AfterFunc func(d time.Duration, f func()) Stopper

// Option configures a Debouncer
type Option func(*options)

type options struct {
	afterFunc AfterFunc
}

// WithAfterFunc replaces time.AfterFunc as the timer source.
func WithAfterFunc(fn AfterFunc) Option {
	return func(o *options) {
		o.afterFunc = fn
	}
}

// Debouncer delays invoking its action until delay has elapsed since the
// last Trigger. Only the argument of the last Trigger in a burst is passed on.
//
// Trigger, Stop and Pending are safe for concurrent use. The action runs on
// the timer goroutine and is not recovered if it panics.
type Debouncer[T any] struct {
	mu        sync.Mutex
	action    func(T)
	delay     time.Duration
	afterFunc AfterFunc

	timer Stopper
	gen   uint64
	last  T
}

// New wraps action so that it fires once per quiet period of delay.
func New[T any](action func(T), delay time.Duration, opts ...Option) *Debouncer[T] {
	o := options{
		afterFunc: func(d time.Duration, f func()) Stopper {
			return time.AfterFunc(d, f)
		},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if delay <= 0 {
		delay = DefaultDelay
	}

	return &Debouncer[T]{
		action:    action,
		delay:     delay,
		afterFunc: o.afterFunc,
	}
}

// Delay returns the quiet period.
func (d *Debouncer[T]) Delay() time.Duration {
	return d.delay
}

// Trigger records arg and restarts the quiet period, replacing any pending timer.
func (d *Debouncer[T]) Trigger(arg T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	d.last = arg

	gen := d.gen
	d.timer = d.afterFunc(d.delay, func() { d.fire(gen) })
}

// fire runs the action unless a newer Trigger or Stop superseded gen.
// A timer that already started when Stop was called lands here and is dropped.
func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.timer == nil {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	arg := d.last
	d.mu.Unlock()

	d.action(arg)
}

// Stop cancels the pending call. It reports whether one was pending.
func (d *Debouncer[T]) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer == nil {
		return false
	}
	d.timer.Stop()
	d.timer = nil
	d.gen++
	return true
}

// Pending reports whether a call is scheduled.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
