package insights

import (
	"sync"
	"testing"
	"time"
)

func TestCurrentPairWraps(t *testing.T) {
	r := NewRotation()
	all := Messages()

	first, second := r.Current()
	if first != all[0] || second != all[1] {
		t.Fatalf("unexpected initial pair: %q, %q", first, second)
	}

	for i := 0; i < 3; i++ {
		r.Advance()
	}
	first, second = r.Current()
	if first != all[3] || second != all[0] {
		t.Fatalf("expected wrap to start, got %q, %q", first, second)
	}
}

func TestPeekNextDoesNotAdvance(t *testing.T) {
	r := NewRotation()
	all := Messages()

	if got := r.PeekNext(); got != all[1] {
		t.Fatalf("expected peek of second message, got %q", got)
	}
	if got := r.PeekNext(); got != all[1] {
		t.Fatalf("expected peek to be stable, got %q", got)
	}
}

func TestStartTicksAndAdvances(t *testing.T) {
	r := NewRotation()
	r.SetInterval(10 * time.Millisecond)
	all := Messages()

	var mu sync.Mutex
	var pairs [][2]string
	done := make(chan struct{})

	r.Start(func(first, second string) {
		mu.Lock()
		pairs = append(pairs, [2]string{first, second})
		if len(pairs) == 3 {
			close(done)
		}
		mu.Unlock()
	})
	defer r.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("expected three ticks")
	}

	mu.Lock()
	defer mu.Unlock()
	if pairs[0] != [2]string{all[0], all[1]} {
		t.Fatalf("unexpected first tick pair: %v", pairs[0])
	}
	if pairs[1] != [2]string{all[1], all[2]} {
		t.Fatalf("unexpected second tick pair: %v", pairs[1])
	}
	if pairs[2] != [2]string{all[2], all[3]} {
		t.Fatalf("unexpected third tick pair: %v", pairs[2])
	}
}

func TestStartCancelsPriorRun(t *testing.T) {
	r := NewRotation()
	r.SetInterval(5 * time.Millisecond)

	var mu sync.Mutex
	var ticks int

	r.Start(func(first, second string) {
		mu.Lock()
		ticks++
		mu.Unlock()
	})
	// Restarting must leave only one outstanding timer.
	r.Start(func(first, second string) {
		mu.Lock()
		ticks++
		mu.Unlock()
	})
	time.Sleep(40 * time.Millisecond)
	r.Stop()

	mu.Lock()
	got := ticks
	mu.Unlock()

	// With ~5ms ticks over ~40ms a duplicated rotation would roughly double
	// the count; allow generous slack either side.
	if got > 12 {
		t.Fatalf("expected single rotation, got %d ticks", got)
	}
	if got < 2 {
		t.Fatalf("expected rotation to keep ticking, got %d ticks", got)
	}
}

func TestStopHaltsRotation(t *testing.T) {
	r := NewRotation()
	r.SetInterval(5 * time.Millisecond)

	var mu sync.Mutex
	var ticks int
	r.Start(func(first, second string) {
		mu.Lock()
		ticks++
		mu.Unlock()
	})
	r.Stop()

	mu.Lock()
	before := ticks
	mu.Unlock()
	time.Sleep(30 * time.Millisecond)
	mu.Lock()
	after := ticks
	mu.Unlock()

	if after != before {
		t.Fatalf("expected no ticks after Stop, got %d -> %d", before, after)
	}
}
