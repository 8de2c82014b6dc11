// Package network reads per-interface packet and byte counters.
package network

import (
	"context"
	"fmt"

	psnet "github.com/shirou/gopsutil/v4/net"
	"github.com/srodi/mosp/pkg/types"
)

// ioCountersFunc allows tests to stub the gopsutil call.
var ioCountersFunc = psnet.IOCountersWithContext

// Collector reads cumulative counters for every interface the OS reports.
type Collector struct{}

// NewCollector returns a network collector.
func NewCollector() *Collector {
	return &Collector{}
}

// PerInterface returns counters for each interface in the order the OS
// enumerates them.
func (c *Collector) PerInterface(ctx context.Context) ([]types.NetCounters, error) {
	stats, err := ioCountersFunc(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("reading network counters: %w", err)
	}
	out := make([]types.NetCounters, 0, len(stats))
	for _, s := range stats {
		out = append(out, types.NetCounters{
			Name:       s.Name,
			PacketsIn:  s.PacketsRecv,
			PacketsOut: s.PacketsSent,
			BytesIn:    s.BytesRecv,
			BytesOut:   s.BytesSent,
		})
	}
	return out, nil
}
