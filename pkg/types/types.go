package types

import "time"

// DefaultInterval is the pause between two ticks when none is configured.
const DefaultInterval = time.Second

// TimestampLayout renders sample timestamps with millisecond precision.
const TimestampLayout = "2006-01-02 15:04:05.000"

// SwapCounters holds cumulative swap traffic since boot, in bytes.
type SwapCounters struct {
	In  uint64
	Out uint64
}

// NetCounters holds cumulative packet and byte counters for one interface.
type NetCounters struct {
	Name       string
	PacketsIn  uint64
	PacketsOut uint64
	BytesIn    uint64
	BytesOut   uint64
}

// InterfaceDelta is the activity of one interface during a single tick.
type InterfaceDelta struct {
	Name       string
	PacketsIn  int64
	PacketsOut int64
	BytesIn    int64
	BytesOut   int64
}

// Sample is everything emitted for one tick. Interfaces follow registry order.
type Sample struct {
	Timestamp    time.Time
	CPUPercent   float64
	SwapInDelta  int64
	SwapOutDelta int64
	Interfaces   []InterfaceDelta
}
