// Package repo implements the Repository Facade (spec §4.F): the safe,
// validated public API layered over one format.Backend. It performs every
// existence/shape/kind check the Format Contract assumes is already done,
// manages the derived-data cache, and enforces freezing.
//
// Grounded on the teacher's core.Graph, which plays the analogous role of
// "safe facade over raw adjacency storage": core.Graph validates vertex
// and edge arguments before ever touching its maps, and guards every
// mutation with a sync.RWMutex pair the same way Repository splits its
// lock between metadata (scalars/axes) and data (vectors/matrices/cache).
package repo

import "errors"

// Sentinel errors raised by the Repository facade. format.ErrNotFound,
// format.ErrAlreadyExists, and format.ErrShapeMismatch are also surfaced
// directly (wrapped with naming.WithContext) when a Backend reports them;
// the additional sentinels below cover checks the facade itself performs
// before ever calling into the Backend.
var (
	// ErrFrozen indicates a mutating call was attempted on a frozen
	// Repository (spec §3 invariant 5).
	ErrFrozen = errors.New("repo: repository is frozen")

	// ErrReservedName indicates a write to the reserved scalar name "name"
	// (spec §3 invariant 4).
	ErrReservedName = errors.New("repo: \"name\" is reserved")

	// ErrTypeMismatch indicates a broadcast or write value's Kind or Go
	// type does not match what the target vector/matrix requires; AddAxis
	// also returns it for an entry list with a duplicate entry.
	ErrTypeMismatch = errors.New("repo: type mismatch")
)

// reservedScalarName is the one scalar name a Repository manages itself;
// it is never stored in the backend's scalar map.
const reservedScalarName = "name"
