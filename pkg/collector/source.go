// Package collector combines the per-metric collectors into the counter
// source consumed by the sampler.
package collector

import (
	"context"

	"github.com/srodi/mosp/pkg/collector/cpu"
	"github.com/srodi/mosp/pkg/collector/memory"
	"github.com/srodi/mosp/pkg/collector/network"
	"github.com/srodi/mosp/pkg/sampler"
	"github.com/srodi/mosp/pkg/types"
)

var _ sampler.CounterSource = (*Source)(nil)

// Source reads live counters from the local host.
type Source struct {
	cpu *cpu.Collector
	mem *memory.Collector
	net *network.Collector
}

// NewSource builds a Source with all collectors initialized.
func NewSource(ctx context.Context) *Source {
	return &Source{
		cpu: cpu.NewCollector(ctx),
		mem: memory.NewCollector(),
		net: network.NewCollector(),
	}
}

// CPUPercent returns instantaneous CPU utilization.
func (s *Source) CPUPercent(ctx context.Context) (float64, error) {
	return s.cpu.Percent(ctx)
}

// SwapCounters returns cumulative swap traffic.
func (s *Source) SwapCounters(ctx context.Context) (types.SwapCounters, error) {
	return s.mem.Swap(ctx)
}

// NetCounters returns cumulative per-interface counters.
func (s *Source) NetCounters(ctx context.Context) ([]types.NetCounters, error) {
	return s.net.PerInterface(ctx)
}
