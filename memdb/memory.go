// Package memdb is the reference in-process implementation of the Format
// Contract (spec §4.G): a Backend backed entirely by Go maps, with no
// persistence. It is grounded on the teacher's core.Graph adjacency
// model — core.Graph keys a nested
// map[string]map[string]map[string]struct{} by (vertex, vertex, edge id);
// memdb keys its vector/matrix maps the same nested-map way, just with
// string/axis-pair keys instead of vertex pairs.
package memdb

import (
	"fmt"
	"sort"
	"sync"

	"github.com/daf-project/daf/format"
	"github.com/daf-project/daf/storage"
)

// Memory is a Backend holding every scalar, axis, vector, and matrix in
// process memory. It is not safe for concurrent use without an external
// lock; the repo.Repository facade provides that lock.
type Memory struct {
	mu sync.Mutex // guards the maps below for memdb-internal bookkeeping only

	name    string
	scalars map[string]storage.Scalar
	axes    map[string][]string
	axisPos map[string]map[string]int // axis -> entry name -> index, for O(1) lookup

	// vectors[axis][property] = data
	vectors map[string]map[string]*storage.Array

	// matrices[rows][columns][property] = data
	matrices map[string]map[string]map[string]*storage.Matrix
}

// New returns an empty Memory backend named name.
func New(name string) *Memory {
	return &Memory{
		name:     name,
		scalars:  map[string]storage.Scalar{},
		axes:     map[string][]string{},
		axisPos:  map[string]map[string]int{},
		vectors:  map[string]map[string]*storage.Array{},
		matrices: map[string]map[string]map[string]*storage.Matrix{},
	}
}

// Name returns the backend's repository name.
func (m *Memory) Name() string { return m.name }

// --- Scalars ---------------------------------------------------------------

func (m *Memory) HasScalar(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.scalars[name]

	return ok
}

func (m *Memory) SetScalar(name string, value storage.Scalar) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scalars[name] = value

	return nil
}

func (m *Memory) DeleteScalar(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.scalars[name]; !ok {
		return fmt.Errorf("memdb.DeleteScalar(%q): %w", name, format.ErrNotFound)
	}
	delete(m.scalars, name)

	return nil
}

func (m *Memory) GetScalar(name string) (storage.Scalar, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.scalars[name]
	if !ok {
		return storage.Scalar{}, fmt.Errorf("memdb.GetScalar(%q): %w", name, format.ErrNotFound)
	}

	return v, nil
}

func (m *Memory) ScalarNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return sortedKeysScalar(m.scalars)
}

// --- Axes --------------------------------------------------------------

func (m *Memory) HasAxis(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.axes[name]

	return ok
}

// AddAxis creates axis name with the given ordered, distinct entries. Per
// spec §4.G, it also pre-creates empty matrix-property mappings under
// (name, A) and (A, name) for every already-existing axis A, and under
// (name, name), so a matrix keyed through either axis order, or over the
// new axis on both sides, always has a (possibly empty) map to look into.
func (m *Memory) AddAxis(name string, entries []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.axes[name]; ok {
		return fmt.Errorf("memdb.AddAxis(%q): %w", name, format.ErrAlreadyExists)
	}

	stored := append([]string(nil), entries...)
	pos := make(map[string]int, len(stored))
	for i, e := range stored {
		pos[e] = i
	}
	m.axes[name] = stored
	m.axisPos[name] = pos
	m.vectors[name] = map[string]*storage.Array{}

	if _, ok := m.matrices[name]; !ok {
		m.matrices[name] = map[string]map[string]*storage.Matrix{}
	}
	for other := range m.axes {
		if _, ok := m.matrices[name][other]; !ok {
			m.matrices[name][other] = map[string]*storage.Matrix{}
		}
		if _, ok := m.matrices[other]; !ok {
			m.matrices[other] = map[string]map[string]*storage.Matrix{}
		}
		if _, ok := m.matrices[other][name]; !ok {
			m.matrices[other][name] = map[string]*storage.Matrix{}
		}
	}

	return nil
}

// DeleteAxis removes axis name along with every vector indexed by it and
// every matrix keyed by it on either side (spec §3 invariant 1).
func (m *Memory) DeleteAxis(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.axes[name]; !ok {
		return fmt.Errorf("memdb.DeleteAxis(%q): %w", name, format.ErrNotFound)
	}
	delete(m.axes, name)
	delete(m.axisPos, name)
	delete(m.vectors, name)
	delete(m.matrices, name)
	for other := range m.matrices {
		delete(m.matrices[other], name)
	}

	return nil
}

func (m *Memory) AxisNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.axes))
	for k := range m.axes {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

func (m *Memory) GetAxis(name string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries, ok := m.axes[name]
	if !ok {
		return nil, fmt.Errorf("memdb.GetAxis(%q): %w", name, format.ErrNotFound)
	}

	return append([]string(nil), entries...), nil
}

func (m *Memory) AxisLength(name string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries, ok := m.axes[name]
	if !ok {
		return 0, fmt.Errorf("memdb.AxisLength(%q): %w", name, format.ErrNotFound)
	}

	return len(entries), nil
}

// EntryIndex returns the position of entry within axis, for callers (the
// query evaluator) that need it without a second AxisLength round trip.
func (m *Memory) EntryIndex(axis, entry string) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pos, ok := m.axisPos[axis]
	if !ok {
		return 0, false
	}
	idx, ok := pos[entry]

	return idx, ok
}

// --- Vectors -----------------------------------------------------------

func (m *Memory) HasVector(key format.VectorKey) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	props, ok := m.vectors[key.Axis]
	if !ok {
		return false
	}
	_, ok = props[key.Property]

	return ok
}

func (m *Memory) SetVector(key format.VectorKey, data *storage.Array) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	props, ok := m.vectors[key.Axis]
	if !ok {
		return fmt.Errorf("memdb.SetVector(%s): %w", key.Axis, format.ErrNotFound)
	}
	props[key.Property] = data

	return nil
}

// EmptyDenseVector allocates an uninitialized dense vector the caller must
// fully populate before SetVector is called with the same data (spec
// §4.E's empty_dense_vector contract).
func (m *Memory) EmptyDenseVector(_ format.VectorKey, n int, kind storage.Kind) (*storage.Array, error) {
	return storage.NewArray(kind, n)
}

// EmptySparseVector allocates an Array meant to back the value half of a
// sparse representation; memdb has no dedicated sparse vector type, so
// this returns a dense Array of length nnz (the caller populates the
// nonzero payload directly; index bookkeeping is the caller's concern).
func (m *Memory) EmptySparseVector(_ format.VectorKey, _ int, nnz int, kind, _ storage.Kind) (*storage.Array, error) {
	return storage.NewArray(kind, nnz)
}

func (m *Memory) DeleteVector(key format.VectorKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	props, ok := m.vectors[key.Axis]
	if !ok {
		return fmt.Errorf("memdb.DeleteVector(%s): %w", key.Axis, format.ErrNotFound)
	}
	if _, ok := props[key.Property]; !ok {
		return fmt.Errorf("memdb.DeleteVector(%s,%s): %w", key.Axis, key.Property, format.ErrNotFound)
	}
	delete(props, key.Property)

	return nil
}

func (m *Memory) VectorNames(axis string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	props, ok := m.vectors[axis]
	if !ok {
		return nil
	}

	return sortedKeysArray(props)
}

func (m *Memory) GetVector(key format.VectorKey) (*storage.Array, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	props, ok := m.vectors[key.Axis]
	if !ok {
		return nil, fmt.Errorf("memdb.GetVector(%s): %w", key.Axis, format.ErrNotFound)
	}
	data, ok := props[key.Property]
	if !ok {
		return nil, fmt.Errorf("memdb.GetVector(%s,%s): %w", key.Axis, key.Property, format.ErrNotFound)
	}

	return data, nil
}

// --- Matrices ------------------------------------------------------------

func (m *Memory) HasMatrix(key format.MatrixKey) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	cols, ok := m.matrices[key.Rows]
	if !ok {
		return false
	}
	props, ok := cols[key.Columns]
	if !ok {
		return false
	}
	_, ok = props[key.Property]

	return ok
}

func (m *Memory) SetMatrix(key format.MatrixKey, data *storage.Matrix) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cols, ok := m.matrices[key.Rows]
	if !ok {
		return fmt.Errorf("memdb.SetMatrix(%s,%s): %w", key.Rows, key.Columns, format.ErrNotFound)
	}
	props, ok := cols[key.Columns]
	if !ok {
		return fmt.Errorf("memdb.SetMatrix(%s,%s): %w", key.Rows, key.Columns, format.ErrNotFound)
	}
	props[key.Property] = data

	return nil
}

func (m *Memory) EmptyDenseMatrix(_ format.MatrixKey, rows, cols int, kind storage.Kind, form storage.Form) (*storage.Matrix, error) {
	return storage.NewDenseMatrix(form, rows, cols, kind)
}

// EmptySparseMatrix allocates the value Array meant to back a sparse
// matrix's nnz payload; the caller assembles the full Matrix (with its
// index arrays) via storage.NewSparseCSC and then calls SetMatrix.
func (m *Memory) EmptySparseMatrix(_ format.MatrixKey, _, _, nnz int, kind, _ storage.Kind) (*storage.Matrix, error) {
	empty, err := storage.NewArray(kind, nnz)
	if err != nil {
		return nil, err
	}

	return storage.NewSparseCSC(0, 0, nil, nil, empty, storage.KindInt32)
}

func (m *Memory) DeleteMatrix(key format.MatrixKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cols, ok := m.matrices[key.Rows]
	if !ok {
		return fmt.Errorf("memdb.DeleteMatrix(%s,%s): %w", key.Rows, key.Columns, format.ErrNotFound)
	}
	props, ok := cols[key.Columns]
	if !ok {
		return fmt.Errorf("memdb.DeleteMatrix(%s,%s): %w", key.Rows, key.Columns, format.ErrNotFound)
	}
	if _, ok := props[key.Property]; !ok {
		return fmt.Errorf("memdb.DeleteMatrix(%s,%s,%s): %w", key.Rows, key.Columns, key.Property, format.ErrNotFound)
	}
	delete(props, key.Property)

	return nil
}

func (m *Memory) MatrixNames(rows, cols string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	colMap, ok := m.matrices[rows]
	if !ok {
		return nil
	}
	props, ok := colMap[cols]
	if !ok {
		return nil
	}

	return sortedKeysMatrix(props)
}

func (m *Memory) GetMatrix(key format.MatrixKey) (*storage.Matrix, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cols, ok := m.matrices[key.Rows]
	if !ok {
		return nil, fmt.Errorf("memdb.GetMatrix(%s,%s): %w", key.Rows, key.Columns, format.ErrNotFound)
	}
	props, ok := cols[key.Columns]
	if !ok {
		return nil, fmt.Errorf("memdb.GetMatrix(%s,%s): %w", key.Rows, key.Columns, format.ErrNotFound)
	}
	data, ok := props[key.Property]
	if !ok {
		return nil, fmt.Errorf("memdb.GetMatrix(%s,%s,%s): %w", key.Rows, key.Columns, key.Property, format.ErrNotFound)
	}

	return data, nil
}

func sortedKeysScalar(m map[string]storage.Scalar) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

func sortedKeysArray(m map[string]*storage.Array) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

func sortedKeysMatrix(m map[string]*storage.Matrix) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

var _ format.Backend = (*Memory)(nil)
