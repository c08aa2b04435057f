// Package ops implements the extensible, process-wide registry of named,
// parameterizable element-wise and reduction operations used to
// post-process query results (spec §4.D).
//
// Grounded on the teacher's table-driven dispatch idiom (builder/api.go's
// Constructor factories, tsp/solve.go's algorithm dispatch): a registration
// helper installs a factory, a parameter schema, and (implicitly, via the
// schema) a parser atomically, and the registry itself is a process-wide
// singleton guarded by its own lock, like builder's and core's globals.
package ops

import "errors"

// Sentinel errors for the ops package.
var (
	// ErrUnknownOperation indicates a name with no registered factory.
	ErrUnknownOperation = errors.New("ops: unknown operation")

	// ErrAlreadyRegistered indicates RegisterElementWise/RegisterReduction
	// was called twice for the same name (the registry is append-only
	// within a process; re-registration is refused rather than silently
	// overwriting, per spec §8 scenario 6).
	ErrAlreadyRegistered = errors.New("ops: operation already registered")

	// ErrMissingParameter indicates a required parameter was not supplied.
	ErrMissingParameter = errors.New("ops: missing required parameter")

	// ErrUnknownParameter indicates a supplied parameter name is not in the
	// operation's schema.
	ErrUnknownParameter = errors.New("ops: unknown parameter")

	// ErrParameterType indicates a supplied parameter's value could not be
	// parsed as its schema-declared type.
	ErrParameterType = errors.New("ops: bad parameter type")

	// ErrShapeMismatch indicates an element-wise operation's output shape
	// would not match its input shape (should never happen for a
	// conforming implementation; guarded defensively).
	ErrShapeMismatch = errors.New("ops: shape mismatch")

	// ErrUnsupportedKind indicates an operation was asked to run over a
	// storage.Kind it has no monomorphization for.
	ErrUnsupportedKind = errors.New("ops: unsupported element kind")
)
