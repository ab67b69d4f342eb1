// Package sched provides a cancellable scheduler abstraction and a
// debouncer built on it.
//
// The engine's persistence is write-debounced: every mutation
// (re)schedules a deferred save, and a new mutation within the
// quiescence window cancels the pending one. Expressing that through an
// explicit Scheduler interface keeps timer mechanics out of the store
// and lets tests drive time by hand with a Manual scheduler.
package sched

import (
	"sync"
	"time"
)

// Token identifies a scheduled call for cancellation.
type Token uint64

// Scheduler runs a function after a delay and allows cancelling it
// before it fires.
type Scheduler interface {
	// Schedule runs fn after delay and returns a token for Cancel.
	Schedule(fn func(), delay time.Duration) Token

	// Cancel stops a pending call. Cancelling a token that already
	// fired or was cancelled is a no-op.
	Cancel(token Token)
}

// =============================================================================
// Timer scheduler
// =============================================================================

// Timer is the production Scheduler backed by time.AfterFunc.
type Timer struct {
	mu     sync.Mutex
	next   Token
	timers map[Token]*time.Timer
}

// NewTimer creates a timer-backed scheduler.
func NewTimer() *Timer {
	return &Timer{timers: make(map[Token]*time.Timer)}
}

// Schedule implements Scheduler.
func (t *Timer) Schedule(fn func(), delay time.Duration) Token {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	token := t.next
	t.timers[token] = time.AfterFunc(delay, func() {
		t.mu.Lock()
		delete(t.timers, token)
		t.mu.Unlock()
		fn()
	})
	return token
}

// Cancel implements Scheduler.
func (t *Timer) Cancel(token Token) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if timer, ok := t.timers[token]; ok {
		timer.Stop()
		delete(t.timers, token)
	}
}

var _ Scheduler = (*Timer)(nil)

// =============================================================================
// Manual scheduler (tests)
// =============================================================================

// Manual is a Scheduler for tests: scheduled calls fire only when the
// test advances time explicitly with Advance.
type Manual struct {
	next    Token
	now     time.Duration
	pending map[Token]manualEntry
}

type manualEntry struct {
	fn  func()
	due time.Duration
}

// NewManual creates a manual scheduler at time zero.
func NewManual() *Manual {
	return &Manual{pending: make(map[Token]manualEntry)}
}

// Schedule implements Scheduler.
func (m *Manual) Schedule(fn func(), delay time.Duration) Token {
	m.next++
	m.pending[m.next] = manualEntry{fn: fn, due: m.now + delay}
	return m.next
}

// Cancel implements Scheduler.
func (m *Manual) Cancel(token Token) { delete(m.pending, token) }

// Advance moves the clock forward and fires every call due by then, in
// due order.
func (m *Manual) Advance(d time.Duration) {
	m.now += d
	for {
		fired := false
		var bestToken Token
		var best manualEntry
		for tok, e := range m.pending {
			if e.due <= m.now && (!fired || e.due < best.due) {
				fired = true
				bestToken, best = tok, e
			}
		}
		if !fired {
			return
		}
		delete(m.pending, bestToken)
		best.fn()
	}
}

// Pending returns the number of not-yet-fired calls.
func (m *Manual) Pending() int { return len(m.pending) }

var _ Scheduler = (*Manual)(nil)

// =============================================================================
// Debouncer
// =============================================================================

// Debouncer coalesces bursts of triggers into one deferred call: each
// Trigger cancels any pending call and schedules a new one, so only the
// last trigger within a quiet window fires. There is no flush-on-exit
// guarantee; callers needing one must call Flush themselves.
type Debouncer struct {
	sched   Scheduler
	delay   time.Duration
	mu      sync.Mutex
	pending bool
	token   Token
	fn      func()
}

// NewDebouncer creates a debouncer invoking fn after delay of quiet.
func NewDebouncer(s Scheduler, delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{sched: s, delay: delay, fn: fn}
}

// Trigger (re)schedules the deferred call.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending {
		d.sched.Cancel(d.token)
	}
	d.pending = true
	d.token = d.sched.Schedule(func() {
		d.mu.Lock()
		d.pending = false
		d.mu.Unlock()
		d.fn()
	}, d.delay)
}

// Flush cancels any pending call and invokes fn immediately if one was
// pending.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	wasPending := d.pending
	if wasPending {
		d.sched.Cancel(d.token)
		d.pending = false
	}
	d.mu.Unlock()
	if wasPending {
		d.fn()
	}
}

// Stop cancels any pending call without invoking fn.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending {
		d.sched.Cancel(d.token)
		d.pending = false
	}
}
