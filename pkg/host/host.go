// Package host identifies the machine being measured.
package host

// unknownHost labels columns when the OS will not tell us its name.
const unknownHost = "localhost"

func fallbackHostname(lookup func() (string, error)) string {
	name, err := lookup()
	if err != nil || name == "" {
		return unknownHost
	}
	return name
}
