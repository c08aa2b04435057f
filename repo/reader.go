package repo

import (
	"github.com/daf-project/daf/layout"
	"github.com/daf-project/daf/storage"
)

// Reader is the read-only subset of the Repository API the query
// evaluator needs. Both *Repository and *ReadOnly satisfy it, so a query
// can run against either a live, mutable repository or a read-only view.
type Reader interface {
	Name() string

	HasScalar(name string) bool
	GetScalar(name string) (storage.Scalar, error)
	ScalarNames() []string

	HasAxis(axis string) bool
	AxisNames() []string
	GetAxis(axis string) ([]string, error)
	AxisLength(axis string) (int, error)
	EntryIndex(axis, entry string) (int, error)

	HasVector(axis, property string) bool
	GetVector(axis, property string) (*storage.Array, error)
	VectorNames(axis string) []string

	HasMatrix(rows, cols, property string) bool
	GetMatrix(rows, cols, property string) (*storage.Matrix, error)
	GetMatrixLayout(rows, cols, property string, axis layout.Axis) (*storage.Matrix, error)
	MatrixNames(rows, cols string) []string
}

var (
	_ Reader = (*Repository)(nil)
	_ Reader = (*ReadOnly)(nil)
)
