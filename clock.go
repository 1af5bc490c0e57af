package pagesim

// Clock is the coordinator's virtual clock: a monotonically non-decreasing
// (seconds, nanoseconds) pair. It is the Go-side view of the two 32-bit
// words of the shared clock region described in spec.md §6; the coordinator
// is its sole writer.
//
// All time composition is done in 64-bit arithmetic, per the design note
// resolving the "currTimeNs truncates through 32-bit intermediates" open
// question: NowNS never overflows the way a naive secs*1e9+nanos computed
// in 32-bit arithmetic would.
type Clock struct {
	Secs  uint32
	Nanos uint32
}

const nanosPerSec = uint32(1_000_000_000)

// Tick advances the clock by one simulation quantum (10ms).
func (c *Clock) Tick() {
	c.Add(uint64(TickQuantum.Nanoseconds()))
}

// Overhead advances the clock by the bookkeeping cost (1us).
func (c *Clock) Overhead() {
	c.Add(uint64(Overhead.Nanoseconds()))
}

// Add advances the clock by an explicit number of nanoseconds, normalizing
// afterwards so that Nanos < 1e9.
func (c *Clock) Add(ns uint64) {
	total := uint64(c.Nanos) + ns
	c.Secs += uint32(total / uint64(nanosPerSec))
	c.Nanos = uint32(total % uint64(nanosPerSec))
}

// NowNS returns the clock's value as a single nanosecond count, composed in
// 64-bit arithmetic.
func (c Clock) NowNS() uint64 {
	return uint64(c.Secs)*uint64(nanosPerSec) + uint64(c.Nanos)
}

// Sub returns c-other in nanoseconds. The clock is monotonically
// non-decreasing so this is never expected to be negative for c >= other;
// callers that pass an earlier `c` get a negative result.
func (c Clock) Sub(other Clock) int64 {
	return int64(c.NowNS()) - int64(other.NowNS())
}

// After reports whether c is strictly later than other.
func (c Clock) After(other Clock) bool {
	return c.NowNS() > other.NowNS()
}
