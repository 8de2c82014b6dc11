// Package exporter publishes the latest Sample as Prometheus gauges.
package exporter

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/srodi/mosp/pkg/types"
)

const namespace = "mosp"

// Exporter holds a private registry so several instances can coexist in tests.
type Exporter struct {
	registry *prometheus.Registry

	ticks      prometheus.Counter
	cpu        prometheus.Gauge
	swapIn     prometheus.Gauge
	swapOut    prometheus.Gauge
	packetsIn  *prometheus.GaugeVec
	packetsOut *prometheus.GaugeVec
	bytesIn    *prometheus.GaugeVec
	bytesOut   *prometheus.GaugeVec
}

// New registers the mosp metrics on a fresh registry. hostname is attached
// as a constant label.
func New(hostname string) *Exporter {
	labels := prometheus.Labels{"host": hostname}
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: name, Help: help, ConstLabels: labels,
		})
	}
	ifaceGauge := func(name, help string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: name, Help: help, ConstLabels: labels,
		}, []string{"interface"})
	}

	e := &Exporter{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "ticks_total", Help: "Samples taken since start.", ConstLabels: labels,
		}),
		cpu:        gauge("cpu_percent", "CPU utilization during the last interval."),
		swapIn:     gauge("swap_in_bytes", "Bytes swapped in during the last interval."),
		swapOut:    gauge("swap_out_bytes", "Bytes swapped out during the last interval."),
		packetsIn:  ifaceGauge("interface_packets_in", "Packets received during the last interval."),
		packetsOut: ifaceGauge("interface_packets_out", "Packets sent during the last interval."),
		bytesIn:    ifaceGauge("interface_bytes_in", "Bytes received during the last interval."),
		bytesOut:   ifaceGauge("interface_bytes_out", "Bytes sent during the last interval."),
	}
	e.registry.MustRegister(e.ticks, e.cpu, e.swapIn, e.swapOut, e.packetsIn, e.packetsOut, e.bytesIn, e.bytesOut)
	return e
}

// Observe updates every gauge from sample.
func (e *Exporter) Observe(sample types.Sample) {
	e.ticks.Inc()
	e.cpu.Set(sample.CPUPercent)
	e.swapIn.Set(float64(sample.SwapInDelta))
	e.swapOut.Set(float64(sample.SwapOutDelta))
	for _, d := range sample.Interfaces {
		e.packetsIn.WithLabelValues(d.Name).Set(float64(d.PacketsIn))
		e.packetsOut.WithLabelValues(d.Name).Set(float64(d.PacketsOut))
		e.bytesIn.WithLabelValues(d.Name).Set(float64(d.BytesIn))
		e.bytesOut.WithLabelValues(d.Name).Set(float64(d.BytesOut))
	}
}

// Handler serves the registry in the Prometheus text format.
func (e *Exporter) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{}))
	return mux
}

// Serve listens on addr until ctx is done.
func (e *Exporter) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           e.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
