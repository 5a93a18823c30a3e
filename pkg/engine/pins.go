package engine

import (
	"strconv"
	"strings"
)

// PinNumber resolves a GPIO snapshot pin number from a pin name.
//
// Names prefixed GPIO or D map to their trailing integer. Analog pins
// (prefix A) map to the trailing integer plus 100, which keeps them out
// of the digital pin numeric range. Anything else is parsed as a bare
// integer, defaulting to 0 on failure.
func PinNumber(name string) int {
	switch {
	case strings.HasPrefix(name, "GPIO"):
		return trailingInt(name[len("GPIO"):])
	case strings.HasPrefix(name, "D"):
		return trailingInt(name[1:])
	case strings.HasPrefix(name, "A"):
		return trailingInt(name[1:]) + 100
	default:
		return trailingInt(name)
	}
}

func trailingInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
