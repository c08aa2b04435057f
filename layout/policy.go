// SPDX-License-Identifier: MIT
package layout

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ActionLevel selects what happens when an operation would traverse a
// matrix's minor axis — an access pattern that is always correct but can
// be orders of magnitude slower than a major-axis traversal.
type ActionLevel uint8

const (
	// Ignore proceeds silently.
	Ignore ActionLevel = iota
	// Warn proceeds but emits one structured log line per violation.
	Warn
	// Error fails the operation instead of proceeding.
	Error
)

// String renders the ActionLevel's canonical name.
func (l ActionLevel) String() string {
	switch l {
	case Ignore:
		return "Ignore"
	case Warn:
		return "Warn"
	case Error:
		return "Error"
	default:
		return "ActionLevel(invalid)"
	}
}

// ErrInefficientAction is returned by CheckAccess when the current policy
// is Error and the requested traversal runs against a matrix's minor axis.
var ErrInefficientAction = fmt.Errorf("layout: inefficient minor-axis traversal")

// policyState is the process-wide inefficient-action policy. Like the
// teacher's registries, it is a singleton guarded by its own lock — tests
// must snapshot and restore it (see SnapshotPolicy/RestorePolicy) the same
// way builder tests isolate global RNG/ID state per-case.
var (
	policyMu    sync.RWMutex
	policyLevel = Warn
)

// SetPolicy sets the process-wide inefficient-action policy level.
func SetPolicy(level ActionLevel) {
	policyMu.Lock()
	defer policyMu.Unlock()
	policyLevel = level
}

// GetPolicy returns the current process-wide inefficient-action policy level.
func GetPolicy() ActionLevel {
	policyMu.RLock()
	defer policyMu.RUnlock()

	return policyLevel
}

// SnapshotPolicy returns the current policy level so a test can restore it
// with RestorePolicy in a defer, isolating global state across test cases.
func SnapshotPolicy() ActionLevel { return GetPolicy() }

// RestorePolicy resets the policy level to a value previously obtained from
// SnapshotPolicy.
func RestorePolicy(level ActionLevel) { SetPolicy(level) }

// CheckAccess consults the current policy for an access to form f along
// traversal, where traversal is the axis actually being iterated. context
// is a short human-readable description of the calling operation (e.g. a
// query string or matrix property name) used in the Warn log line and the
// Error message.
//
// Returns ErrInefficientAction only when the policy is Error and traversal
// differs from MajorAxis(f); otherwise returns nil (after logging under Warn).
func CheckAccess(f Form, traversal Axis, context string) error {
	if traversal == MajorAxis(f) {
		return nil // traveling with the grain is always efficient
	}

	switch GetPolicy() {
	case Ignore:
		return nil
	case Warn:
		log.Warn().
			Str("form", f.String()).
			Str("traversal", traversal.String()).
			Str("major_axis", MajorAxis(f).String()).
			Str("context", context).
			Msg("daf: inefficient minor-axis traversal")

		return nil
	default: // Error
		return fmt.Errorf("layout.CheckAccess: %s traversal of %s matrix for %s: %w",
			traversal, f, context, ErrInefficientAction)
	}
}

// init keeps zerolog's default writer quiet-but-present; concrete programs
// (see cmd/dafcli) are free to reconfigure log.Logger to taste.
func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}
