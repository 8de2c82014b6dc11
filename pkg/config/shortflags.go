package config

import (
	"flag"
	"strings"
)

// expandShortFlags rewrites getopt-style bundles so the flag package can
// parse them: "-Wj" becomes "-W -j" and "-i2" becomes "-i=2". Arguments that
// name a defined flag are passed through unchanged, as is everything after
// "--". A bundle containing an unknown letter is left alone so the parser
// reports it.
func expandShortFlags(fs *flag.FlagSet, args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return append(out, args[i:]...)
		}
		if len(arg) < 2 || arg[0] != '-' {
			out = append(out, arg)
			continue
		}

		name := strings.TrimLeft(arg, "-")
		name, _, hasValue := strings.Cut(name, "=")
		if f := fs.Lookup(name); f != nil || strings.HasPrefix(arg, "--") {
			out = append(out, arg)
			// The value of a non-boolean flag is never a flag itself.
			if f != nil && !hasValue && !isBoolFlag(f) && i+1 < len(args) {
				i++
				out = append(out, args[i])
			}
			continue
		}

		expanded, consumedNext, ok := expandBundle(fs, arg[1:], args[i+1:])
		if !ok {
			out = append(out, arg)
			continue
		}
		out = append(out, expanded...)
		if consumedNext {
			i++
		}
	}
	return out
}

// expandBundle splits the letters of one bundle. A value flag ends the
// bundle and takes the rest of it, or the next argument when nothing is left.
func expandBundle(fs *flag.FlagSet, bundle string, rest []string) (expanded []string, consumedNext, ok bool) {
	for j := 0; j < len(bundle); j++ {
		letter := bundle[j : j+1]
		f := fs.Lookup(letter)
		if f == nil {
			return nil, false, false
		}
		if isBoolFlag(f) {
			expanded = append(expanded, "-"+letter)
			continue
		}
		value := strings.TrimPrefix(bundle[j+1:], "=")
		if j+1 < len(bundle) {
			return append(expanded, "-"+letter+"="+value), false, true
		}
		expanded = append(expanded, "-"+letter)
		if len(rest) > 0 {
			return append(expanded, rest[0]), true, true
		}
		return expanded, false, true
	}
	return expanded, false, true
}

func isBoolFlag(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}
