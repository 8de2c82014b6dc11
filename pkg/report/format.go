// Package report encodes Samples as CSV rows for files and key=value lines
// for the console.
package report

import (
	"strconv"
	"strings"

	"github.com/srodi/mosp/pkg/delta"
	"github.com/srodi/mosp/pkg/types"
)

// interfaceMetrics is the fixed per-interface column order.
var interfaceMetrics = []string{delta.PacketsIn, delta.PacketsOut, delta.BytesIn, delta.BytesOut}

// FixedColumns is the number of columns that precede the per-interface ones.
const FixedColumns = 4

// ColumnsPerInterface is the number of columns each interface contributes.
const ColumnsPerInterface = 4

// ColumnCount returns the number of CSV columns for n interfaces.
func ColumnCount(n int) int {
	return FixedColumns + ColumnsPerInterface*n
}

// FormatPercent renders a float so it always carries a fractional part,
// e.g. 12.5 and 0.0.
func FormatPercent(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

func formatTimestamp(s types.Sample) string {
	return s.Timestamp.Format(types.TimestampLayout)
}

func interfaceValues(d types.InterfaceDelta) [ColumnsPerInterface]int64 {
	return [ColumnsPerInterface]int64{d.PacketsIn, d.PacketsOut, d.BytesIn, d.BytesOut}
}

func interfaceLabel(metric, name string) string {
	return metric + "[" + name + "]"
}
