// Package debug contains assertions for internal invariants.
package debug

import "fmt"

func Assert(b bool) {
	if !b {
		panic("assertion failed")
	}
}

func Assertf(b bool, format string, args ...any) {
	if !b {
		panic("assertion failed: " + fmt.Sprintf(format, args...))
	}
}
