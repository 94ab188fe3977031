//go:build vgprobdebug

package qerrors

// invariantHook panics in debug builds so invariant violations are caught
// at the point of failure instead of degrading silently into a bad
// estimate.
func invariantHook(msg string) {
	panic("vgprob: invariant violated: " + msg)
}
