package repo

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/daf-project/daf/format"
	"github.com/daf-project/daf/layout"
	"github.com/daf-project/daf/memdb"
	"github.com/daf-project/daf/naming"
	"github.com/daf-project/daf/storage"
)

// relayoutKey caches one major-axis relayout of one matrix property.
type relayoutKey struct {
	rows, cols, property string
	axis                 layout.Axis
}

// Repository is the safe public API over one format.Backend (spec §4.F).
// The zero value is not usable; construct with New or Open.
//
// Two locks guard the Repository, split the way the teacher's core.Graph
// splits muVert/muEdgeAdj: muMeta serializes scalar and axis operations,
// muData serializes vector/matrix operations and the derived-data cache.
// Both are reader/writer locks, giving the multi-reader/single-writer
// access spec §5 requires.
type Repository struct {
	muMeta sync.RWMutex
	muData sync.RWMutex

	frozen atomic.Bool

	backend format.Backend
	cache   map[relayoutKey]*storage.Matrix
}

// New creates an empty in-process Repository named name, backed by memdb.
func New(name string) *Repository {
	return Open(memdb.New(name))
}

// Open wraps an existing format.Backend in a Repository facade.
func Open(backend format.Backend) *Repository {
	return &Repository{backend: backend, cache: map[relayoutKey]*storage.Matrix{}}
}

// Name returns the repository's name, the value also readable as the
// reserved "name" scalar.
func (r *Repository) Name() string { return r.backend.Name() }

// checkFrozen returns ErrFrozen if the repository is frozen; every
// mutating entry point calls this first, before acquiring any lock.
func (r *Repository) checkFrozen(op string) error {
	if r.frozen.Load() {
		return fmt.Errorf("repo.%s: %w", op, ErrFrozen)
	}

	return nil
}

// Freeze makes every mutating operation return ErrFrozen until Unfreeze is
// called. Borrowed vector/matrix views remain valid for as long as the
// repository stays frozen (spec §3 Ownership).
func (r *Repository) Freeze() { r.frozen.Store(true) }

// Unfreeze reverses Freeze.
func (r *Repository) Unfreeze() { r.frozen.Store(false) }

// IsFrozen reports whether the repository currently rejects mutations.
func (r *Repository) IsFrozen() bool { return r.frozen.Load() }

// ReadOnly returns a wrapper exposing only the read API and forbidding
// mutation at the type level (spec §4.F.4). Mutating the original
// Repository concurrently is still permitted unless it is also frozen;
// ReadOnly is a view, not a second freeze.
func (r *Repository) ReadOnly() *ReadOnly { return &ReadOnly{r: r} }

// --- Scalars -----------------------------------------------------------

// HasScalar reports whether name is a stored scalar or the reserved "name".
func (r *Repository) HasScalar(name string) bool {
	if name == reservedScalarName {
		return true
	}
	r.muMeta.RLock()
	defer r.muMeta.RUnlock()

	return r.backend.HasScalar(name)
}

// GetScalar returns the scalar stored under name, or the repository's own
// name if name == "name".
func (r *Repository) GetScalar(name string) (storage.Scalar, error) {
	if name == reservedScalarName {
		return storage.NewString(r.Name()), nil
	}
	r.muMeta.RLock()
	defer r.muMeta.RUnlock()
	v, err := r.backend.GetScalar(name)
	if err != nil {
		return storage.Scalar{}, naming.WithContext("scalar", name, err)
	}

	return v, nil
}

// SetScalar writes a scalar value. Writing to the reserved name "name"
// fails with ErrReservedName (spec §3 invariant 4).
func (r *Repository) SetScalar(name string, value storage.Scalar) error {
	if err := r.checkFrozen("SetScalar"); err != nil {
		return err
	}
	if name == reservedScalarName {
		return fmt.Errorf("repo.SetScalar(%q): %w", name, ErrReservedName)
	}
	r.muMeta.Lock()
	defer r.muMeta.Unlock()

	return r.backend.SetScalar(name, value)
}

// DeleteScalar removes a scalar. Deleting "name" fails with ErrReservedName.
func (r *Repository) DeleteScalar(name string) error {
	if err := r.checkFrozen("DeleteScalar"); err != nil {
		return err
	}
	if name == reservedScalarName {
		return fmt.Errorf("repo.DeleteScalar(%q): %w", name, ErrReservedName)
	}
	r.muMeta.Lock()
	defer r.muMeta.Unlock()
	if err := r.backend.DeleteScalar(name); err != nil {
		return naming.WithContext("scalar", name, err)
	}

	return nil
}

// ScalarNames returns every stored scalar name plus the reserved "name".
func (r *Repository) ScalarNames() []string {
	r.muMeta.RLock()
	defer r.muMeta.RUnlock()

	return append([]string{reservedScalarName}, r.backend.ScalarNames()...)
}

// --- Axes ----------------------------------------------------------------

// HasAxis reports whether axis exists.
func (r *Repository) HasAxis(axis string) bool {
	r.muMeta.RLock()
	defer r.muMeta.RUnlock()

	return r.backend.HasAxis(axis)
}

// AddAxis creates a new axis with the given ordered, distinct entries.
// Fails with format.ErrAlreadyExists if axis already exists, or
// ErrTypeMismatch if entries contains a duplicate (spec §3 invariant 3).
func (r *Repository) AddAxis(axis string, entries []string) error {
	if err := r.checkFrozen("AddAxis"); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, dup := seen[e]; dup {
			return fmt.Errorf("repo.AddAxis(%q): duplicate entry %q: %w", axis, e, ErrTypeMismatch)
		}
		seen[e] = struct{}{}
	}

	r.muMeta.Lock()
	defer r.muMeta.Unlock()
	if err := r.backend.AddAxis(axis, entries); err != nil {
		return naming.WithContext("axis", axis, err)
	}

	return nil
}

// DeleteAxis removes axis, cascading to every vector and matrix indexed by
// it (spec §3 invariant 1), and clears every derived-cache entry that
// referenced it.
func (r *Repository) DeleteAxis(axis string) error {
	if err := r.checkFrozen("DeleteAxis"); err != nil {
		return err
	}
	r.muMeta.Lock()
	defer r.muMeta.Unlock()
	r.muData.Lock()
	defer r.muData.Unlock()

	if err := r.backend.DeleteAxis(axis); err != nil {
		return naming.WithContext("axis", axis, err)
	}
	for k := range r.cache {
		if k.rows == axis || k.cols == axis {
			delete(r.cache, k)
		}
	}

	return nil
}

// AxisNames returns every axis name.
func (r *Repository) AxisNames() []string {
	r.muMeta.RLock()
	defer r.muMeta.RUnlock()

	return r.backend.AxisNames()
}

// GetAxis returns axis's ordered entry names.
func (r *Repository) GetAxis(axis string) ([]string, error) {
	r.muMeta.RLock()
	defer r.muMeta.RUnlock()
	entries, err := r.backend.GetAxis(axis)
	if err != nil {
		return nil, naming.WithContext("axis", axis, err)
	}

	return entries, nil
}

// AxisLength returns |axis|.
func (r *Repository) AxisLength(axis string) (int, error) {
	r.muMeta.RLock()
	defer r.muMeta.RUnlock()
	n, err := r.backend.AxisLength(axis)
	if err != nil {
		return 0, naming.WithContext("axis", axis, err)
	}

	return n, nil
}

// EntryIndex returns the position of entry within axis. It is used by the
// query evaluator for chained lookups and fixed-axis matrix slices (spec
// §4.J.5/6), which need the index rather than just a length/membership
// check.
func (r *Repository) EntryIndex(axis, entry string) (int, error) {
	r.muMeta.RLock()
	defer r.muMeta.RUnlock()
	entries, err := r.backend.GetAxis(axis)
	if err != nil {
		return 0, naming.WithContext("axis", axis, err)
	}
	for i, e := range entries {
		if e == entry {
			return i, nil
		}
	}

	return 0, naming.WithContext("axis", axis, fmt.Errorf("entry %q: %w", entry, format.ErrNotFound))
}
