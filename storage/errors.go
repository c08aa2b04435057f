// SPDX-License-Identifier: MIT
package storage

import "errors"

// Sentinel errors for the storage package. Callers MUST use errors.Is to
// branch on these; they are never wrapped with formatted text at the
// definition site (context is added by callers via fmt.Errorf("%w", ...)).
var (
	// ErrKindMismatch indicates an operation requested a Kind different from
	// the one a Scalar or Array actually holds.
	ErrKindMismatch = errors.New("storage: kind mismatch")

	// ErrInvalidKind indicates a Kind value outside the closed set of
	// declared constants was used to construct a Scalar or Array.
	ErrInvalidKind = errors.New("storage: invalid kind")

	// ErrIndexOutOfRange indicates an Array index was negative or >= Len().
	ErrIndexOutOfRange = errors.New("storage: index out of range")

	// ErrLengthMismatch indicates two arrays expected to share a length do not.
	ErrLengthMismatch = errors.New("storage: length mismatch")
)
