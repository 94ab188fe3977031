//go:build !vgprobdebug

package qerrors

// invariantHook is a no-op in release builds; Invariant's caller logs and
// returns an error instead of crashing the process.
func invariantHook(msg string) {}
