package sched

import (
	"testing"
	"time"
)

func TestManualFiresInDueOrder(t *testing.T) {
	m := NewManual()

	var order []string
	m.Schedule(func() { order = append(order, "late") }, 30*time.Millisecond)
	m.Schedule(func() { order = append(order, "early") }, 10*time.Millisecond)

	m.Advance(50 * time.Millisecond)

	if len(order) != 2 || order[0] != "early" || order[1] != "late" {
		t.Errorf("order = %v, want [early late]", order)
	}
	if m.Pending() != 0 {
		t.Errorf("pending = %d, want 0", m.Pending())
	}
}

func TestManualCancel(t *testing.T) {
	m := NewManual()

	fired := false
	tok := m.Schedule(func() { fired = true }, 10*time.Millisecond)
	m.Cancel(tok)
	m.Advance(time.Second)

	if fired {
		t.Error("cancelled call must not fire")
	}
	m.Cancel(tok) // double cancel is a no-op
}

func TestManualPartialAdvance(t *testing.T) {
	m := NewManual()

	fired := false
	m.Schedule(func() { fired = true }, 100*time.Millisecond)

	m.Advance(60 * time.Millisecond)
	if fired {
		t.Fatal("fired before due")
	}
	m.Advance(40 * time.Millisecond)
	if !fired {
		t.Fatal("did not fire at due time")
	}
}

func TestDebouncerCoalescesBurst(t *testing.T) {
	m := NewManual()
	var calls int
	d := NewDebouncer(m, 100*time.Millisecond, func() { calls++ })

	// Three triggers within the window collapse into one deferred call.
	d.Trigger()
	m.Advance(50 * time.Millisecond)
	d.Trigger()
	m.Advance(50 * time.Millisecond)
	d.Trigger()

	if m.Pending() != 1 {
		t.Fatalf("pending = %d, want 1", m.Pending())
	}
	m.Advance(100 * time.Millisecond)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}

	// A later trigger starts a fresh window.
	d.Trigger()
	m.Advance(100 * time.Millisecond)
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestDebouncerFlush(t *testing.T) {
	m := NewManual()
	var calls int
	d := NewDebouncer(m, 100*time.Millisecond, func() { calls++ })

	d.Trigger()
	d.Flush()
	if calls != 1 {
		t.Fatalf("calls = %d after flush, want 1", calls)
	}
	if m.Pending() != 0 {
		t.Errorf("pending = %d, want 0", m.Pending())
	}

	// Flush with nothing pending does not invoke fn.
	d.Flush()
	if calls != 1 {
		t.Errorf("calls = %d after idle flush, want 1", calls)
	}
}

func TestDebouncerStop(t *testing.T) {
	m := NewManual()
	var calls int
	d := NewDebouncer(m, 100*time.Millisecond, func() { calls++ })

	d.Trigger()
	d.Stop()
	m.Advance(time.Second)

	if calls != 0 {
		t.Errorf("calls = %d after stop, want 0", calls)
	}
}

func TestTimerFiresAndCancels(t *testing.T) {
	tm := NewTimer()

	fired := make(chan struct{})
	tm.Schedule(func() { close(fired) }, time.Millisecond)
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("scheduled call never fired")
	}

	cancelled := false
	tok := tm.Schedule(func() { cancelled = true }, 50*time.Millisecond)
	tm.Cancel(tok)
	time.Sleep(80 * time.Millisecond)
	if cancelled {
		t.Error("cancelled call fired")
	}
}
