// Package sampler assembles one Sample per tick from a CounterSource.
package sampler

//go:generate mockgen -destination=mocks/mock_source.go -package=mocks github.com/srodi/mosp/pkg/sampler CounterSource

import (
	"context"

	"github.com/srodi/mosp/pkg/types"
)

// CounterSource supplies raw OS counters on demand.
type CounterSource interface {
	// CPUPercent returns instantaneous utilization in the range 0-100.
	CPUPercent(ctx context.Context) (float64, error)
	// SwapCounters returns cumulative swap traffic since boot.
	SwapCounters(ctx context.Context) (types.SwapCounters, error)
	// NetCounters returns cumulative counters for every interface, in
	// enumeration order.
	NetCounters(ctx context.Context) ([]types.NetCounters, error)
}
