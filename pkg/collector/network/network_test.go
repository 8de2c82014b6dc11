package network

import (
	"context"
	"errors"
	"reflect"
	"testing"

	psnet "github.com/shirou/gopsutil/v4/net"
	"github.com/srodi/mosp/pkg/types"
)

func TestPerInterfaceKeepsOrderAndMapsFields(t *testing.T) {
	t.Cleanup(func() { ioCountersFunc = psnet.IOCountersWithContext })
	ioCountersFunc = func(_ context.Context, pernic bool) ([]psnet.IOCountersStat, error) {
		if !pernic {
			t.Fatalf("expected per-NIC counters")
		}
		return []psnet.IOCountersStat{
			{Name: "wlan0", PacketsRecv: 1, PacketsSent: 2, BytesRecv: 3, BytesSent: 4},
			{Name: "eth0", PacketsRecv: 5, PacketsSent: 6, BytesRecv: 7, BytesSent: 8},
		}, nil
	}

	got, err := NewCollector().PerInterface(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []types.NetCounters{
		{Name: "wlan0", PacketsIn: 1, PacketsOut: 2, BytesIn: 3, BytesOut: 4},
		{Name: "eth0", PacketsIn: 5, PacketsOut: 6, BytesIn: 7, BytesOut: 8},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestPerInterfaceError(t *testing.T) {
	t.Cleanup(func() { ioCountersFunc = psnet.IOCountersWithContext })
	boom := errors.New("boom")
	ioCountersFunc = func(context.Context, bool) ([]psnet.IOCountersStat, error) { return nil, boom }

	if _, err := NewCollector().PerInterface(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
