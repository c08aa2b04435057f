package format

import "github.com/daf-project/daf/storage"

// VectorKey names a vector by the axis indexing it and the property name.
type VectorKey struct {
	Axis     string
	Property string
}

// MatrixKey names a matrix by its row axis, column axis, and property
// name. (Rows, Columns, p) and (Columns, Rows, p) are distinct keys in the
// Backend even though the Repository facade may present them as two
// layouts of the same logical matrix (spec §3 invariant 6).
type MatrixKey struct {
	Rows     string
	Columns  string
	Property string
}

// Backend is the Format Contract (spec §4.E): the complete set of
// primitive storage operations a concrete adapter must implement. Every
// method assumes its arguments are already validated by the caller — the
// Repository facade (package repo) is the only sanctioned caller and
// performs all existence/shape/type checks before delegating here.
//
// Backend implementations are not required to be safe for concurrent use
// by multiple goroutines without external synchronization; the Repository
// facade serializes access with its own reader/writer lock (spec §5).
type Backend interface {
	// Name returns the backend's repository name, readable as the
	// reserved "name" scalar (spec §3 invariant 4).
	Name() string

	// Scalars.
	HasScalar(name string) bool
	SetScalar(name string, value storage.Scalar) error
	DeleteScalar(name string) error
	GetScalar(name string) (storage.Scalar, error)
	ScalarNames() []string

	// Axes.
	HasAxis(name string) bool
	AddAxis(name string, entries []string) error
	DeleteAxis(name string) error
	AxisNames() []string
	GetAxis(name string) ([]string, error)
	AxisLength(name string) (int, error)

	// Vectors.
	HasVector(key VectorKey) bool
	SetVector(key VectorKey, data *storage.Array) error
	EmptyDenseVector(key VectorKey, n int, kind storage.Kind) (*storage.Array, error)
	EmptySparseVector(key VectorKey, n, nnz int, kind, indexKind storage.Kind) (*storage.Array, error)
	DeleteVector(key VectorKey) error
	VectorNames(axis string) []string
	GetVector(key VectorKey) (*storage.Array, error)

	// Matrices.
	HasMatrix(key MatrixKey) bool
	SetMatrix(key MatrixKey, data *storage.Matrix) error
	EmptyDenseMatrix(key MatrixKey, rows, cols int, kind storage.Kind, form storage.Form) (*storage.Matrix, error)
	EmptySparseMatrix(key MatrixKey, rows, cols, nnz int, kind, indexKind storage.Kind) (*storage.Matrix, error)
	DeleteMatrix(key MatrixKey) error
	MatrixNames(rows, cols string) []string
	GetMatrix(key MatrixKey) (*storage.Matrix, error)
}
