package sampler

import (
	"context"
	"errors"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/srodi/mosp/pkg/delta"
	"github.com/srodi/mosp/pkg/sampler/mocks"
	"github.com/srodi/mosp/pkg/types"
)

var errUnavailable = errors.New("counter source unavailable")

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func TestTickFirstAndSecondObservation(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockCounterSource(ctrl)
	ctx := context.Background()

	gomock.InOrder(
		src.EXPECT().CPUPercent(gomock.Any()).Return(12.5, nil),
		src.EXPECT().SwapCounters(gomock.Any()).Return(types.SwapCounters{In: 1000, Out: 0}, nil),
		src.EXPECT().NetCounters(gomock.Any()).Return([]types.NetCounters{
			{Name: "eth0", PacketsIn: 50, PacketsOut: 30, BytesIn: 6000, BytesOut: 4000},
		}, nil),
		src.EXPECT().CPUPercent(gomock.Any()).Return(20.0, nil),
		src.EXPECT().SwapCounters(gomock.Any()).Return(types.SwapCounters{In: 1500, Out: 0}, nil),
		src.EXPECT().NetCounters(gomock.Any()).Return([]types.NetCounters{
			{Name: "eth0", PacketsIn: 80, PacketsOut: 45, BytesIn: 9000, BytesOut: 5000},
		}, nil),
	)

	s := New(src, RegistryOf("eth0"), delta.NewTracker())

	first := s.Tick(ctx)
	if first.CPUPercent != 12.5 {
		t.Fatalf("unexpected cpu: %v", first.CPUPercent)
	}
	if first.SwapInDelta != 0 || first.SwapOutDelta != 0 {
		t.Fatalf("first tick swap deltas should be zero, got %+v", first)
	}
	want := []types.InterfaceDelta{{Name: "eth0"}}
	if !reflect.DeepEqual(first.Interfaces, want) {
		t.Fatalf("first tick interfaces: got %+v want %+v", first.Interfaces, want)
	}

	second := s.Tick(ctx)
	if second.SwapInDelta != 500 || second.SwapOutDelta != 0 {
		t.Fatalf("unexpected swap deltas: in=%d out=%d", second.SwapInDelta, second.SwapOutDelta)
	}
	want = []types.InterfaceDelta{{Name: "eth0", PacketsIn: 30, PacketsOut: 15, BytesIn: 3000, BytesOut: 1000}}
	if !reflect.DeepEqual(second.Interfaces, want) {
		t.Fatalf("second tick interfaces: got %+v want %+v", second.Interfaces, want)
	}
}

func TestTickTimestampTakenBeforeCounters(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockCounterSource(ctrl)

	start := time.Date(2024, 3, 1, 10, 0, 0, 123456789, time.UTC)
	now := start
	clock := func() time.Time { return now }

	src.EXPECT().CPUPercent(gomock.Any()).DoAndReturn(func(context.Context) (float64, error) {
		now = now.Add(750 * time.Millisecond)
		return 1.0, nil
	})
	src.EXPECT().SwapCounters(gomock.Any()).Return(types.SwapCounters{}, nil)
	src.EXPECT().NetCounters(gomock.Any()).Return(nil, nil)

	sample := New(src, RegistryOf(), delta.NewTracker(), WithClock(clock)).Tick(context.Background())
	want := time.Date(2024, 3, 1, 10, 0, 0, 123000000, time.UTC)
	if !sample.Timestamp.Equal(want) {
		t.Fatalf("expected timestamp %v, got %v", want, sample.Timestamp)
	}
}

func TestTickVanishedInterfaceKeepsLastDeltas(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockCounterSource(ctrl)
	src.EXPECT().CPUPercent(gomock.Any()).Return(5.0, nil).AnyTimes()
	src.EXPECT().SwapCounters(gomock.Any()).Return(types.SwapCounters{}, nil).AnyTimes()
	gomock.InOrder(
		src.EXPECT().NetCounters(gomock.Any()).Return([]types.NetCounters{
			{Name: "eth0", PacketsIn: 10}, {Name: "wlan0", PacketsIn: 100},
		}, nil),
		src.EXPECT().NetCounters(gomock.Any()).Return([]types.NetCounters{
			{Name: "eth0", PacketsIn: 12}, {Name: "wlan0", PacketsIn: 107},
		}, nil),
		src.EXPECT().NetCounters(gomock.Any()).Return([]types.NetCounters{
			{Name: "eth0", PacketsIn: 20},
		}, nil),
	)

	s := New(src, RegistryOf("eth0", "wlan0"), delta.NewTracker())
	s.Tick(context.Background())
	s.Tick(context.Background())
	third := s.Tick(context.Background())

	if len(third.Interfaces) != 2 {
		t.Fatalf("expected both registered interfaces, got %+v", third.Interfaces)
	}
	if third.Interfaces[0].Name != "eth0" || third.Interfaces[0].PacketsIn != 8 {
		t.Fatalf("unexpected eth0 delta: %+v", third.Interfaces[0])
	}
	if third.Interfaces[1].Name != "wlan0" || third.Interfaces[1].PacketsIn != 7 {
		t.Fatalf("wlan0 should keep its last delta, got %+v", third.Interfaces[1])
	}
}

func TestTickIgnoresUnregisteredInterfaces(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockCounterSource(ctrl)
	src.EXPECT().CPUPercent(gomock.Any()).Return(0.0, nil)
	src.EXPECT().SwapCounters(gomock.Any()).Return(types.SwapCounters{}, nil)
	src.EXPECT().NetCounters(gomock.Any()).Return([]types.NetCounters{
		{Name: "docker0"}, {Name: "eth0"}, {Name: "veth12"},
	}, nil)

	sample := New(src, RegistryOf("eth0"), delta.NewTracker()).Tick(context.Background())
	if len(sample.Interfaces) != 1 || sample.Interfaces[0].Name != "eth0" {
		t.Fatalf("expected only eth0, got %+v", sample.Interfaces)
	}
}

func TestTickSourceFailuresAreNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockCounterSource(ctrl)
	gomock.InOrder(
		src.EXPECT().CPUPercent(gomock.Any()).Return(40.0, nil),
		src.EXPECT().SwapCounters(gomock.Any()).Return(types.SwapCounters{In: 100, Out: 100}, nil),
		src.EXPECT().NetCounters(gomock.Any()).Return([]types.NetCounters{{Name: "eth0", BytesIn: 10}}, nil),

		src.EXPECT().CPUPercent(gomock.Any()).Return(50.0, nil),
		src.EXPECT().SwapCounters(gomock.Any()).Return(types.SwapCounters{In: 300, Out: 150}, nil),
		src.EXPECT().NetCounters(gomock.Any()).Return([]types.NetCounters{{Name: "eth0", BytesIn: 60}}, nil),

		src.EXPECT().CPUPercent(gomock.Any()).Return(0.0, errUnavailable),
		src.EXPECT().SwapCounters(gomock.Any()).Return(types.SwapCounters{}, errUnavailable),
		src.EXPECT().NetCounters(gomock.Any()).Return(nil, errUnavailable),
	)

	s := New(src, RegistryOf("eth0"), delta.NewTracker())
	s.Tick(context.Background())
	s.Tick(context.Background())
	frozen := s.Tick(context.Background())

	if frozen.CPUPercent != 50.0 {
		t.Fatalf("expected cpu to stay at 50, got %v", frozen.CPUPercent)
	}
	if frozen.SwapInDelta != 200 || frozen.SwapOutDelta != 50 {
		t.Fatalf("expected frozen swap deltas 200/50, got %d/%d", frozen.SwapInDelta, frozen.SwapOutDelta)
	}
	if len(frozen.Interfaces) != 1 || frozen.Interfaces[0].BytesIn != 50 {
		t.Fatalf("expected frozen eth0 bytes-in 50, got %+v", frozen.Interfaces)
	}
}

// shuffledSource reports growing counters for a fixed set of interfaces in a
// different order on every call.
type shuffledSource struct {
	names []string
	rng   *rand.Rand
	calls uint64
}

func (s *shuffledSource) CPUPercent(context.Context) (float64, error) { return 1, nil }

func (s *shuffledSource) SwapCounters(context.Context) (types.SwapCounters, error) {
	return types.SwapCounters{}, nil
}

func (s *shuffledSource) NetCounters(context.Context) ([]types.NetCounters, error) {
	s.calls++
	out := make([]types.NetCounters, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, types.NetCounters{Name: name, PacketsIn: s.calls * 10})
	}
	s.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out, nil
}

func TestRegistryOrderStableAcrossTicks(t *testing.T) {
	src := &shuffledSource{names: []string{"lo", "eth0", "wlan0", "docker0"}, rng: rand.New(rand.NewSource(7))}
	order := []string{"wlan0", "lo", "docker0", "eth0"}
	s := New(src, RegistryOf(order...), delta.NewTracker(), WithClock(fixedClock(time.Unix(0, 0))))

	for i := 0; i < 300; i++ {
		sample := s.Tick(context.Background())
		if len(sample.Interfaces) != len(order) {
			t.Fatalf("tick %d: expected %d interfaces, got %d", i, len(order), len(sample.Interfaces))
		}
		for j, d := range sample.Interfaces {
			if d.Name != order[j] {
				t.Fatalf("tick %d: column %d is %q, want %q", i, j, d.Name, order[j])
			}
			if i > 0 && d.PacketsIn != 10 {
				t.Fatalf("tick %d: expected delta 10 for %s, got %d", i, d.Name, d.PacketsIn)
			}
		}
	}
}

func TestNewRegistry(t *testing.T) {
	t.Run("keepsSourceOrder", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		src := mocks.NewMockCounterSource(ctrl)
		src.EXPECT().NetCounters(gomock.Any()).Return([]types.NetCounters{
			{Name: "wlan0"}, {Name: "eth0"}, {Name: "lo"}, {Name: "eth0"},
		}, nil)
		reg, err := NewRegistry(context.Background(), src)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := reg.Names(); !reflect.DeepEqual(got, []string{"wlan0", "eth0", "lo"}) {
			t.Fatalf("unexpected order: %v", got)
		}
	})

	t.Run("emptyOnFailure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		src := mocks.NewMockCounterSource(ctrl)
		src.EXPECT().NetCounters(gomock.Any()).Return(nil, errUnavailable)
		reg, err := NewRegistry(context.Background(), src)
		if !errors.Is(err, errUnavailable) {
			t.Fatalf("expected wrapped errUnavailable, got %v", err)
		}
		if reg == nil || reg.Len() != 0 {
			t.Fatalf("expected empty registry, got %+v", reg)
		}
	})

	t.Run("namesReturnsCopy", func(t *testing.T) {
		reg := RegistryOf("eth0", "eth1")
		names := reg.Names()
		names[0] = "mutated"
		if reg.Names()[0] != "eth0" {
			t.Fatalf("registry was mutated through Names()")
		}
	})
}
