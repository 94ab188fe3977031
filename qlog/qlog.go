// Package qlog centralizes vgprob's logging conventions on top of
// github.com/grailbio/base/log. It exists so that every package in this
// module logs through one set of helpers instead of reaching for fmt or the
// standard library log package directly.
package qlog

import (
	"github.com/grailbio/base/log"
)

// Debugf logs a per-read/per-cluster diagnostic that is useful when tracing
// a single cluster's estimation but too noisy for normal runs (extension
// branch pruning, filter rejections, EM iteration traces).
func Debugf(format string, args ...interface{}) {
	if log.At(log.Debug) {
		log.Debug.Printf(format, args...)
	}
}

// Infof logs a normal, low-volume progress message (clusters completed,
// writer flushed).
func Infof(format string, args ...interface{}) {
	log.Info.Printf(format, args...)
}

// Recoverablef logs a condition that causes one read, alignment, or cluster
// to be skipped without aborting the run, per the "Input validation" and
// "Numerical fallback" categories in the error handling design.
func Recoverablef(format string, args ...interface{}) {
	log.Error.Printf(format, args...)
}

// Fatalf logs an invariant violation and terminates the process. Reserved
// for conditions that indicate a bug rather than bad input, per the
// "Invariant violations" category.
func Fatalf(format string, args ...interface{}) {
	log.Fatalf(format, args...)
}
