// Package fatal centralizes the "runtime invariant violation" error path
// described in spec.md §7: any detected violation of a §3 invariant is a
// bug, not a recoverable condition, so the process aborts with a
// diagnostic naming the offending node/edge index rather than attempting
// recovery or a retry.
package fatal

import "fmt"

// Invariant panics with a diagnostic identifying the violated invariant and
// the offending index. Callers never recover from this; it exists only to
// produce a consistent, greppable message instead of an ad-hoc panic string
// at each call site.
func Invariant(what string, index int, detail string) {
	panic(fmt.Sprintf("fusionmatch: invariant violated: %s (index=%d): %s", what, index, detail))
}

// Invariantf is Invariant with a formatted detail message.
func Invariantf(what string, index int, format string, args ...interface{}) {
	Invariant(what, index, fmt.Sprintf(format, args...))
}
