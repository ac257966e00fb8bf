// Package options provides shared utilities for option validation across packages.
package options

import "fmt"

// ValidateSingleInputSource ensures exactly one input source is specified.
// sources is a variadic list of booleans indicating whether each source is set.
// noSourceMsg is the error message when no source is specified.
// multiSourceMsg is the error message when multiple sources are specified.
// Returns an error if zero or more than one input source is specified.
func ValidateSingleInputSource(noSourceMsg, multiSourceMsg string, sources ...bool) error {
	switch CountSet(sources...) {
	case 0:
		return fmt.Errorf("%s", noSourceMsg)
	case 1:
		return nil
	default:
		return fmt.Errorf("%s", multiSourceMsg)
	}
}

// CountSet returns how many of the given flags are true.
func CountSet(flags ...bool) int {
	n := 0
	for _, set := range flags {
		if set {
			n++
		}
	}
	return n
}
