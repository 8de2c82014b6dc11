package report

import (
	"strconv"
	"strings"

	"github.com/srodi/mosp/pkg/delta"
	"github.com/srodi/mosp/pkg/types"
)

// KVPRow renders sample as space separated key=value pairs prefixed by the
// timestamp, for the console feed and line-oriented log shippers.
func KVPRow(sample types.Sample) string {
	var b strings.Builder
	b.WriteString(formatTimestamp(sample))
	writePair(&b, "cpu", FormatPercent(sample.CPUPercent))
	writePair(&b, delta.SwapIn, strconv.FormatInt(sample.SwapInDelta, 10))
	writePair(&b, delta.SwapOut, strconv.FormatInt(sample.SwapOutDelta, 10))
	for _, d := range sample.Interfaces {
		vals := interfaceValues(d)
		for i, metric := range interfaceMetrics {
			writePair(&b, interfaceLabel(metric, d.Name), strconv.FormatInt(vals[i], 10))
		}
	}
	return b.String()
}

func writePair(b *strings.Builder, key, value string) {
	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(value)
}
