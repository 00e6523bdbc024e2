// Package insights owns the rotating hydration-tip state and its scheduler.
package insights

import (
	"sync"
	"time"
)

// DefaultInterval is how long each insight pair stays on screen.
const DefaultInterval = 8 * time.Second

var messages = [4]string{
	"Tip: Pair each caffeinated drink with 8 fl oz of water.",
	"High-output training days call for an extra 12-16 fl oz.",
	"Produce and soups can contribute 18-24 fl oz toward your target.",
	"Yesterday's intake tapered after 6 PM; schedule a 10 fl oz top-off.",
}

// Messages returns the fixed insight list in rotation order.
func Messages() []string {
	out := make([]string, len(messages))
	copy(out, messages[:])
	return out
}

// Rotation is the shared insight pointer plus its cooperative scheduler. At
// most one timer is outstanding: Start cancels any pending tick before arming
// a new one.
type Rotation struct {
	mu       sync.Mutex
	index    int
	gen      int
	timer    *time.Timer
	interval time.Duration
}

// NewRotation constructs a rotation with the default interval.
func NewRotation() *Rotation {
	return &Rotation{interval: DefaultInterval}
}

// SetInterval overrides the tick interval. Intended for tests.
func (r *Rotation) SetInterval(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d > 0 {
		r.interval = d
	}
}

// Current returns the pair shown for the current pointer: the current message
// and the one after it, wrapped.
func (r *Rotation) Current() (string, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return messages[r.index%len(messages)], messages[(r.index+1)%len(messages)]
}

// PeekNext returns the message after the current pointer, wrapped. The
// progress aggregator reads this for its tip line without advancing anything.
func (r *Rotation) PeekNext() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return messages[(r.index+1)%len(messages)]
}

// Advance moves the pointer forward by one, wrapped.
func (r *Rotation) Advance() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.index = (r.index + 1) % len(messages)
}

// Start begins the self-rescheduling rotation, cancelling any previous run.
// On each tick onTick receives the displayed pair, then the pointer advances
// and the next tick is armed.
func (r *Rotation) Start(onTick func(first, second string)) {
	r.mu.Lock()
	r.gen++
	gen := r.gen
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.mu.Unlock()

	r.tick(gen, onTick)
}

// Stop cancels any pending tick.
func (r *Rotation) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

func (r *Rotation) tick(gen int, onTick func(first, second string)) {
	r.mu.Lock()
	if gen != r.gen {
		r.mu.Unlock()
		return
	}
	first := messages[r.index%len(messages)]
	second := messages[(r.index+1)%len(messages)]
	r.index = (r.index + 1) % len(messages)
	r.timer = time.AfterFunc(r.interval, func() {
		r.tick(gen, onTick)
	})
	r.mu.Unlock()

	if onTick != nil {
		onTick(first, second)
	}
}
