// Package cpu reads host-wide CPU utilization.
package cpu

import (
	"context"
	"errors"
	"fmt"
	"math"

	pscpu "github.com/shirou/gopsutil/v4/cpu"
)

// percentFunc allows tests to stub the gopsutil call.
var percentFunc = pscpu.PercentWithContext

// Collector reports utilization since its previous call, the same way a
// repeated top(1) refresh does.
type Collector struct{}

// NewCollector primes the utilization baseline so the first real reading
// covers the interval since startup.
func NewCollector(ctx context.Context) *Collector {
	_, _ = percentFunc(ctx, 0, false)
	return &Collector{}
}

// Percent returns overall CPU utilization in the range 0-100, rounded to
// one decimal place.
func (c *Collector) Percent(ctx context.Context) (float64, error) {
	pcts, err := percentFunc(ctx, 0, false)
	if err != nil {
		return 0, fmt.Errorf("reading cpu percent: %w", err)
	}
	if len(pcts) == 0 {
		return 0, errors.New("reading cpu percent: no values returned")
	}
	return math.Round(pcts[0]*10) / 10, nil
}
