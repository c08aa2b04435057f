// Package format declares the Backend contract: the minimal, "unsafe"
// primitive operations a storage adapter must implement (spec §4.E). A
// Backend assumes every input it receives is already validated — existence
// checks, shape checks, and the read-only/frozen guard all live one layer
// up, in the repo package's Repository facade.
//
// memdb implements this contract for an in-process backend; concrete
// persistent adapters (HDF5-backed, directory-backed, tabular-data
// bridges) are out of scope for this module and implement the same
// interface independently.
package format

import "errors"

// Sentinel errors a Backend returns for primitive-level failures. The
// Repository facade wraps these with naming.WithContext as it climbs back
// out to the caller, the same "sentinel, never formatted at the
// definition site" discipline as storage and ops.
var (
	// ErrNotFound indicates a scalar, axis, vector, matrix, or axis entry
	// was absent on a read or delete.
	ErrNotFound = errors.New("format: not found")

	// ErrAlreadyExists indicates an add attempted to create a name that
	// already exists.
	ErrAlreadyExists = errors.New("format: already exists")

	// ErrShapeMismatch indicates a vector/matrix's length/shape does not
	// match its indexing axis/axes.
	ErrShapeMismatch = errors.New("format: shape mismatch")
)
