package ui

import (
	"fmt"
	"strings"
)

const (
	reset       = "\033[0m"
	bold        = "\033[1m"
	beeYellow   = "\033[38;5;226m"
	honeyOrange = "\033[38;5;214m"
	mint        = "\033[38;5;121m"
	cobalt      = "\033[38;5;33m"
	flame       = "\033[38;5;208m"
)

// Title is the one-line program name used when colour is off.
const Title = "Measure Operating System Performance (mosp)"

// Banner renders the mosp wordmark and version. With color false it returns
// only the plain title line, suitable for pipes and log files.
func Banner(version string, color bool) string {
	if !color {
		return fmt.Sprintf("%s version %s\n", Title, version)
	}

	var b strings.Builder
	letters := [][]string{
		{"███╗   ███╗", "████╗ ████║", "██╔████╔██║", "██║╚██╔╝██║", "██║ ╚═╝ ██║", "╚═╝     ╚═╝"},
		{" ██████╗ ", "██╔═══██╗", "██║   ██║", "██║   ██║", "╚██████╔╝", " ╚═════╝ "},
		{" ██████╗ ", "██╔════╝ ", "╚█████╗  ", " ╚═══██╗ ", "██████╔╝ ", "╚═════╝  "},
		{"██████╗  ", "██╔══██╗ ", "██████╔╝ ", "██╔═══╝  ", "██║      ", "╚═╝      "},
	}
	gradient := []string{flame, honeyOrange, beeYellow, mint}
	rows := make([]string, len(letters[0]))
	for i, letter := range letters {
		color := gradient[i%len(gradient)]
		for row := 0; row < len(letter); row++ {
			rows[row] += color + letter[row] + "  "
		}
	}
	for _, line := range rows {
		b.WriteString(bold + line + reset + "\n")
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%s%s%s  •  version %s%s\n\n", bold, cobalt, Title, version, reset)
	return b.String()
}
