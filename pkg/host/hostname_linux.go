//go:build linux

package host

import (
	"os"

	"golang.org/x/sys/unix"
)

// Hostname returns the uname nodename, falling back to os.Hostname.
func Hostname() string {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err == nil {
		if name := unix.ByteSliceToString(uts.Nodename[:]); name != "" {
			return name
		}
	}
	return fallbackHostname(os.Hostname)
}
