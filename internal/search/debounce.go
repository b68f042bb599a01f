package search

import "time"

// DefaultWindow is the debounce window for search-as-you-type.
const DefaultWindow = 300 * time.Millisecond

// Debouncer coalesces rapid triggers into a single delayed execution. It is
// sequence-based rather than timer-based because Bubble Tea delivers timers
// as messages: every trigger takes a fresh sequence number, the caller
// schedules a tick carrying that number, and only the tick whose number is
// still current fires. Superseded ticks still arrive, but they compare
// stale and are dropped.
type Debouncer struct {
	window time.Duration
	seq    int
}

func NewDebouncer(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Debouncer{window: window}
}

func (d *Debouncer) Window() time.Duration {
	return d.window
}

// Trigger registers a new pending execution and returns its sequence number.
// Any previously pending execution is superseded.
func (d *Debouncer) Trigger() int {
	d.seq++
	return d.seq
}

// Fire reports whether the tick with the given sequence number should run,
// i.e. no newer trigger or flush superseded it.
func (d *Debouncer) Fire(seq int) bool {
	return seq == d.seq
}

// Flush invalidates every pending tick. The immediate search path calls
// this before filtering directly, bypassing the window.
func (d *Debouncer) Flush() {
	d.seq++
}
