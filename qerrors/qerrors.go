// Package qerrors implements the error taxonomy described in the error
// handling design: input validation, numerical fallback, invariant
// violation, and IO. Validation and fallback conditions are ordinary
// errors meant to be logged and skipped; invariant violations are fatal
// except in release builds, where they degrade to a logged error so a
// single malformed cluster cannot take down the whole run.
package qerrors

import (
	"fmt"

	"github.com/grailbio/base/errors"
	pkgerrors "github.com/pkg/errors"

	"github.com/jonassibbesen/vgprob/qlog"
)

// Sentinel validation errors, returned by align/pathfinder when an
// alignment or ASP cannot be used. Callers skip the offending read/cluster
// rather than abort.
var (
	ErrEmptyAlignment  = errors.New("alignment has no mappings")
	ErrStartNodeAbsent = errors.New("alignment start node absent from index")
	ErrNonPositiveLen  = errors.New("sequence_length must be > 0")
)

// Wrap annotates err with a message, preserving the chain for fatal IO/config
// failures (matching encoding/fasta's and encoding/pam's use of pkg/errors).
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return pkgerrors.Wrap(err, msg)
}

// Wrapf is the formatted form of Wrap.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return pkgerrors.Wrapf(err, format, args...)
}

// E builds a grailbio/base/errors-style error, chaining an optional
// underlying error with context arguments.
func E(args ...interface{}) error {
	return errors.E(args...)
}

// Collector accumulates the first non-nil error seen across a set of
// concurrent operations (one per cluster, one per writer flush), matching
// markduplicates' use of errors.Once.
type Collector struct {
	once errors.Once
}

// Set records err if no error has been recorded yet.
func (c *Collector) Set(err error) {
	c.once.Set(err)
}

// Err returns the first error recorded, or nil.
func (c *Collector) Err() error {
	return c.once.Err()
}

// Invariant reports a condition that should be impossible if every upstream
// component honored its contract (an ASP whose last node disagrees with its
// search state, a negative mapping quality, an offset beyond a node's
// length). Built with the vgprobdebug tag, it panics immediately so tests
// catch the bug at the source; without the tag it logs at error level and
// returns a descriptive error so one bad cluster does not abort the whole
// run (see invariant_debug.go / invariant_release.go).
func Invariant(format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	invariantHook(msg)
	qlog.Recoverablef("invariant violated: %s", msg)
	return errors.New("invariant violated: " + msg)
}
