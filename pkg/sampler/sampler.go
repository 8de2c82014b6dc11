package sampler

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/srodi/mosp/pkg/delta"
	"github.com/srodi/mosp/pkg/types"
)

// Sampler pulls counters, runs them through the tracker and emits Samples.
// Like the tracker it belongs to a single sampling loop.
type Sampler struct {
	src     CounterSource
	reg     *Registry
	tracker *delta.Tracker
	now     func() time.Time
	log     zerolog.Logger

	lastCPU   float64
	lastSwap  [2]int64
	lastIface map[string]types.InterfaceDelta
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithClock overrides the time source used for sample timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Sampler) { s.now = now }
}

// WithLogger sets the logger used for counter source warnings.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Sampler) { s.log = log }
}

// New wires a sampler around an existing registry and tracker.
func New(src CounterSource, reg *Registry, tracker *delta.Tracker, opts ...Option) *Sampler {
	s := &Sampler{
		src:       src,
		reg:       reg,
		tracker:   tracker,
		now:       time.Now,
		log:       zerolog.Nop(),
		lastIface: make(map[string]types.InterfaceDelta, reg.Len()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry returns the interface registry the sampler emits columns for.
func (s *Sampler) Registry() *Registry {
	return s.reg
}

// Tick produces one fully populated Sample. A metric the source cannot supply
// keeps the value it had on the previous tick.
func (s *Sampler) Tick(ctx context.Context) types.Sample {
	sample := types.Sample{
		Timestamp:  s.now().Truncate(time.Millisecond),
		Interfaces: make([]types.InterfaceDelta, 0, s.reg.Len()),
	}

	if pct, err := s.src.CPUPercent(ctx); err != nil {
		s.log.Warn().Err(err).Msg("cpu percent unavailable, reusing last value")
	} else {
		s.lastCPU = pct
	}
	sample.CPUPercent = s.lastCPU

	if swap, err := s.src.SwapCounters(ctx); err != nil {
		s.log.Warn().Err(err).Msg("swap counters unavailable, reusing last deltas")
	} else {
		s.lastSwap[0] = s.tracker.Observe(delta.Global(delta.SwapIn), swap.In)
		s.lastSwap[1] = s.tracker.Observe(delta.Global(delta.SwapOut), swap.Out)
	}
	sample.SwapInDelta = s.lastSwap[0]
	sample.SwapOutDelta = s.lastSwap[1]

	current := s.netCounters(ctx)
	for _, name := range s.reg.names {
		c, ok := current[name]
		if !ok {
			if current != nil {
				s.log.Debug().Str("interface", name).Msg("interface missing from counter source, reusing last deltas")
			}
			last := s.lastIface[name]
			last.Name = name
			sample.Interfaces = append(sample.Interfaces, last)
			continue
		}
		d := types.InterfaceDelta{
			Name:       name,
			PacketsIn:  s.tracker.Observe(delta.ForInterface(name, delta.PacketsIn), c.PacketsIn),
			PacketsOut: s.tracker.Observe(delta.ForInterface(name, delta.PacketsOut), c.PacketsOut),
			BytesIn:    s.tracker.Observe(delta.ForInterface(name, delta.BytesIn), c.BytesIn),
			BytesOut:   s.tracker.Observe(delta.ForInterface(name, delta.BytesOut), c.BytesOut),
		}
		s.lastIface[name] = d
		sample.Interfaces = append(sample.Interfaces, d)
	}

	return sample
}

// netCounters indexes the current readings by name. It returns nil when the
// source failed as a whole.
func (s *Sampler) netCounters(ctx context.Context) map[string]types.NetCounters {
	counters, err := s.src.NetCounters(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("network counters unavailable, reusing last deltas")
		return nil
	}
	index := make(map[string]types.NetCounters, len(counters))
	for _, c := range counters {
		if _, dup := index[c.Name]; dup {
			continue
		}
		index[c.Name] = c
	}
	return index
}
