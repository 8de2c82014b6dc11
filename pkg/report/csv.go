package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/srodi/mosp/pkg/delta"
	"github.com/srodi/mosp/pkg/types"
)

// Separator splits CSV columns. No field can contain it, so nothing is quoted.
const Separator = ","

// CSVHeader returns the header row for hostname and the registered
// interfaces, without a trailing newline.
func CSVHeader(hostname string, interfaces []string) string {
	cols := make([]string, 0, ColumnCount(len(interfaces)))
	cols = append(cols,
		"time",
		hostname+"-cpu",
		hostname+"-"+delta.SwapIn,
		hostname+"-"+delta.SwapOut,
	)
	for _, name := range interfaces {
		for _, metric := range interfaceMetrics {
			cols = append(cols, hostname+"-"+interfaceLabel(metric, name))
		}
	}
	return strings.Join(cols, Separator)
}

// CSVRow returns the data row for sample, in the same column order as
// CSVHeader, without a trailing newline.
func CSVRow(sample types.Sample) string {
	cols := make([]string, 0, ColumnCount(len(sample.Interfaces)))
	cols = append(cols,
		formatTimestamp(sample),
		FormatPercent(sample.CPUPercent),
		strconv.FormatInt(sample.SwapInDelta, 10),
		strconv.FormatInt(sample.SwapOutDelta, 10),
	)
	for _, d := range sample.Interfaces {
		for _, v := range interfaceValues(d) {
			cols = append(cols, strconv.FormatInt(v, 10))
		}
	}
	return strings.Join(cols, Separator)
}

// ParseCSVRow splits a data row into its fields and checks the shape.
func ParseCSVRow(line string) ([]string, error) {
	line = strings.TrimRight(line, "\r\n")
	fields := strings.Split(line, Separator)
	if len(fields) < FixedColumns || (len(fields)-FixedColumns)%ColumnsPerInterface != 0 {
		return nil, fmt.Errorf("malformed row: %d columns", len(fields))
	}
	return fields, nil
}
