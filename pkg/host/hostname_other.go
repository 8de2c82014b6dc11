//go:build !linux

package host

import "os"

// Hostname returns the host name reported by the OS.
func Hostname() string {
	return fallbackHostname(os.Hostname)
}
