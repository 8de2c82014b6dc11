package config

import (
	"fmt"
	"io"
)

const usageText = `
Measure Operating System Performance (mosp)
-------------------------------------------

Samples CPU utilization, swap activity and per-interface network
I/O, prints one key=value line per interval and optionally appends
CSV rows to a file for later analysis.

Usage:
  mosp [options]

Example usage:
  mosp -W -i 2

Options:
 -h  --help            Display this help and exit
 -m  --max-run-time    Maximum time to run for before exiting
                         (default is infinite)
 -i  --interval        Interval between samples in seconds
                         (default is 1)
 -w  --output-file     Specify an output filename
 -W                    Output results to default filename
                         default format is:
                         mosp-HOSTNAME-YYYYMMDD-HHMMSS.csv
                         (-w takes precedence when both are given)
 -b  --output-path     Specify path to output file directory
 -j  --no-header-row   Suppress writing header row into CSV
 -v  --version         Output version information and exit

     --config          YAML configuration file (env MOSP_CONFIG)
     --legacy-deltas   Treat a stored zero counter as unset, like
                         mosp 0.1 did
     --metrics-addr    Serve Prometheus metrics on host:port
     --log-level       debug, info, warn or error (default info)
     --log-format      console or json (default console)

Short options may be bundled, e.g. -Wj or -i2.
Durations accept seconds (2.5) or Go durations (2500ms). Every option
can also be set with a MOSP_ environment variable, e.g. MOSP_INTERVAL,
read from the environment or a .env file in the working directory.

Results are written in the following CSV format:
 time,HOST-cpu,HOST-swap-in,HOST-swap-out,
   HOST-pkts-in[IF],HOST-pkts-out[IF],HOST-bytes-in[IF],HOST-bytes-out[IF],...
`

// Usage writes the help text to w.
func Usage(w io.Writer) {
	fmt.Fprint(w, usageText)
}
