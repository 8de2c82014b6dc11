// Package delta turns cumulative OS counters into per-interval changes.
package delta

// Metric names shared by the tracker keys and the encoders.
const (
	SwapIn     = "swap-in"
	SwapOut    = "swap-out"
	PacketsIn  = "pkts-in"
	PacketsOut = "pkts-out"
	BytesIn    = "bytes-in"
	BytesOut   = "bytes-out"
)

// Key identifies one tracked counter. Scope is empty for host-wide metrics and
// holds the interface name for per-interface metrics.
type Key struct {
	Scope  string
	Metric string
}

// Global returns the key of a host-wide counter such as swap-in.
func Global(metric string) Key {
	return Key{Metric: metric}
}

// ForInterface returns the key of a per-interface counter.
func ForInterface(name, metric string) Key {
	return Key{Scope: name, Metric: metric}
}

// Tracker remembers the last cumulative reading per key.
// It is not safe for concurrent use; the sampling loop owns it.
type Tracker struct {
	prev        map[Key]uint64
	zeroIsUnset bool
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithZeroAsUnset makes a stored reading of zero behave as if nothing had been
// observed, matching files produced by earlier mosp releases.
func WithZeroAsUnset() Option {
	return func(t *Tracker) { t.zeroIsUnset = true }
}

// NewTracker returns a Tracker with no observations.
func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{prev: make(map[Key]uint64)}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Observe records value for key and returns the change since the previous
// observation. The first observation of a key always returns 0. Counter resets
// show up as negative deltas.
func (t *Tracker) Observe(key Key, value uint64) int64 {
	prev, ok := t.prev[key]
	t.prev[key] = value
	if !ok || (t.zeroIsUnset && prev == 0) {
		return 0
	}
	return int64(value - prev)
}
