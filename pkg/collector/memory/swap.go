// Package memory reads swap activity counters.
package memory

import (
	"context"
	"fmt"

	psmem "github.com/shirou/gopsutil/v4/mem"
	"github.com/srodi/mosp/pkg/types"
)

// swapFunc allows tests to stub the gopsutil call.
var swapFunc = psmem.SwapMemoryWithContext

// Collector reads cumulative swap-in/swap-out byte counters.
type Collector struct{}

// NewCollector returns a swap collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Swap returns bytes swapped in and out since boot.
func (c *Collector) Swap(ctx context.Context) (types.SwapCounters, error) {
	stat, err := swapFunc(ctx)
	if err != nil {
		return types.SwapCounters{}, fmt.Errorf("reading swap counters: %w", err)
	}
	if stat == nil {
		return types.SwapCounters{}, fmt.Errorf("reading swap counters: empty result")
	}
	return types.SwapCounters{In: stat.Sin, Out: stat.Sout}, nil
}
