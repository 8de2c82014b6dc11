// Package runner drives the sampling loop: sample, encode, print, append,
// then sleep until the next tick.
package runner

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/srodi/mosp/pkg/report"
	"github.com/srodi/mosp/pkg/types"
)

// Ticker produces one Sample per call.
type Ticker interface {
	Tick(ctx context.Context) types.Sample
}

// LineWriter appends one line to the results file.
type LineWriter interface {
	AppendLine(line string) error
}

// Observer receives every Sample after it has been written.
type Observer interface {
	Observe(sample types.Sample)
}

// Config controls one run of the loop.
type Config struct {
	Interval   time.Duration
	MaxRunTime time.Duration // zero runs until the context is canceled
	// Header is written once before the first row when non-empty and a
	// results file is configured.
	Header string
}

// Runner owns the loop. It is not safe for concurrent use.
type Runner struct {
	cfg      Config
	sampler  Ticker
	console  io.Writer
	file     LineWriter
	observer Observer
	log      zerolog.Logger

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// Option configures a Runner.
type Option func(*Runner)

// WithFile appends CSV rows through w.
func WithFile(w LineWriter) Option {
	return func(r *Runner) { r.file = w }
}

// WithObserver forwards every sample to o.
func WithObserver(o Observer) Option {
	return func(r *Runner) { r.observer = o }
}

// WithLogger sets the diagnostics logger.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Runner) { r.log = log }
}

// WithClock replaces the wall clock and the inter-tick sleep.
func WithClock(now func() time.Time, sleep func(context.Context, time.Duration) error) Option {
	return func(r *Runner) {
		r.now = now
		r.sleep = sleep
	}
}

// New returns a Runner printing KVP lines to console.
func New(cfg Config, sampler Ticker, console io.Writer, opts ...Option) *Runner {
	r := &Runner{
		cfg:     cfg,
		sampler: sampler,
		console: console,
		log:     zerolog.Nop(),
		now:     time.Now,
		sleep:   sleepContext,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run loops until the max run time is exceeded, ctx is canceled or a write
// fails. The elapsed time is checked at the start of each tick, so the loop
// may overrun the ceiling by up to one interval. It returns the number of
// ticks completed.
func (r *Runner) Run(ctx context.Context) (int, error) {
	start := r.now()
	ticks := 0
	for {
		if r.cfg.MaxRunTime > 0 && r.now().Sub(start) > r.cfg.MaxRunTime {
			r.log.Debug().Int("ticks", ticks).Msg("max run time reached")
			return ticks, nil
		}

		sample := r.sampler.Tick(ctx)
		if _, err := fmt.Fprintln(r.console, report.KVPRow(sample)); err != nil {
			return ticks, fmt.Errorf("writing console feed: %w", err)
		}
		if r.file != nil {
			if ticks == 0 && r.cfg.Header != "" {
				if err := r.file.AppendLine(r.cfg.Header); err != nil {
					return ticks, err
				}
			}
			if err := r.file.AppendLine(report.CSVRow(sample)); err != nil {
				return ticks, err
			}
		}
		if r.observer != nil {
			r.observer.Observe(sample)
		}
		ticks++

		if err := r.sleep(ctx, r.cfg.Interval); err != nil {
			r.log.Debug().Int("ticks", ticks).Msg("sampling canceled")
			return ticks, nil
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

