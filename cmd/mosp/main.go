package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/srodi/mosp/pkg/apperrors"
	"github.com/srodi/mosp/pkg/collector"
	"github.com/srodi/mosp/pkg/config"
	"github.com/srodi/mosp/pkg/delta"
	"github.com/srodi/mosp/pkg/exporter"
	"github.com/srodi/mosp/pkg/host"
	"github.com/srodi/mosp/pkg/logging"
	"github.com/srodi/mosp/pkg/output"
	"github.com/srodi/mosp/pkg/report"
	"github.com/srodi/mosp/pkg/runner"
	"github.com/srodi/mosp/pkg/sampler"
	"github.com/srodi/mosp/pkg/ui"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "0.2.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load(args, config.DefaultEnvironment())
	switch {
	case errors.Is(err, config.ErrHelp):
		config.Usage(stdout)
		return apperrors.ExitSuccess
	case errors.Is(err, config.ErrVersion):
		fmt.Fprintf(stdout, "mosp version %s\n", version)
		return apperrors.ExitSuccess
	case err != nil:
		fmt.Fprintf(stderr, "mosp: Error with options: %v\n", err)
		config.Usage(stderr)
		return apperrors.ExitCode(err)
	}

	log, err := logging.New(stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(stderr, "mosp: %v\n", err)
		return apperrors.ExitErrorUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := measure(ctx, cfg, stdout, log); err != nil {
		log.Error().Err(err).Msg("mosp stopped")
		return apperrors.ExitCode(err)
	}
	return apperrors.ExitSuccess
}

func measure(ctx context.Context, cfg *config.Config, stdout io.Writer, log zerolog.Logger) error {
	hostname := host.Hostname()
	fmt.Fprint(stdout, ui.Banner(version, isTerminal(stdout)))
	log.Debug().Str("host", hostname).Stringer("config", cfg).Msg("starting")

	source := collector.NewSource(ctx)
	registry, err := sampler.NewRegistry(ctx, source)
	if err != nil {
		log.Warn().Err(err).Msg("no network interfaces registered")
	}
	log.Info().Strs("interfaces", registry.Names()).Msg("interfaces registered")

	smp := sampler.New(source, registry, delta.NewTracker(trackerOptions(cfg)...),
		sampler.WithLogger(logging.Component(log, "sampler")))

	runCfg, opts := runnerSetup(cfg, hostname, smp, time.Now())
	opts = append(opts, runner.WithLogger(logging.Component(log, "runner")))
	if runCfg.file != nil {
		log.Info().Str("file", runCfg.file.Path()).Msg("results filename")
		if runCfg.Header == "" {
			log.Info().Msg("not writing a header row to CSV")
		}
	} else {
		log.Info().Msg("not writing results to file, as option not selected")
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	if cfg.MetricsAddr != "" {
		exp := exporter.New(hostname)
		opts = append(opts, runner.WithObserver(exp))
		g.Go(func() error {
			log.Info().Str("addr", cfg.MetricsAddr).Msg("serving prometheus metrics")
			return exp.Serve(gctx, cfg.MetricsAddr)
		})
	}

	r := runner.New(runCfg.Config, smp, stdout, opts...)
	g.Go(func() error {
		defer cancel()
		ticks, err := r.Run(gctx)
		log.Debug().Int("ticks", ticks).Msg("sampling finished")
		return err
	})
	return g.Wait()
}

func trackerOptions(cfg *config.Config) []delta.Option {
	if cfg.LegacyDeltas {
		return []delta.Option{delta.WithZeroAsUnset()}
	}
	return nil
}

// loopSetup is the runner configuration plus the results file, if any.
type loopSetup struct {
	runner.Config
	file *output.Appender
}

// runnerSetup derives the loop settings: the results file, and the CSV header
// built from the sampler's interface registry.
func runnerSetup(cfg *config.Config, hostname string, smp *sampler.Sampler, now time.Time) (loopSetup, []runner.Option) {
	setup := loopSetup{Config: runner.Config{Interval: cfg.Interval, MaxRunTime: cfg.MaxRunTime}}
	var opts []runner.Option
	if path := cfg.OutputTarget(hostname, now); path != "" {
		setup.file = output.NewAppender(path)
		opts = append(opts, runner.WithFile(setup.file))
		if cfg.WriteHeader() {
			setup.Header = report.CSVHeader(hostname, smp.Registry().Names())
		}
	}
	return setup, opts
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
