package repo

import (
	"github.com/daf-project/daf/layout"
	"github.com/daf-project/daf/storage"
)

// ReadOnly wraps a Repository and exposes only its read API; the mutating
// methods simply don't exist on this type, so attempting to mutate through
// a ReadOnly value is a compile error rather than a runtime check (spec
// §4.F.4). Mutating the underlying Repository directly is still possible
// unless it is also frozen — ReadOnly restricts the handle, not the data.
type ReadOnly struct {
	r *Repository
}

// Name returns the repository's name.
func (ro *ReadOnly) Name() string { return ro.r.Name() }

// IsFrozen reports whether the underlying repository is frozen.
func (ro *ReadOnly) IsFrozen() bool { return ro.r.IsFrozen() }

// HasScalar, GetScalar, ScalarNames mirror Repository's read methods.
func (ro *ReadOnly) HasScalar(name string) bool { return ro.r.HasScalar(name) }
func (ro *ReadOnly) GetScalar(name string) (storage.Scalar, error) { return ro.r.GetScalar(name) }
func (ro *ReadOnly) ScalarNames() []string { return ro.r.ScalarNames() }

// HasAxis, AxisNames, GetAxis, AxisLength, EntryIndex mirror Repository's
// read methods.
func (ro *ReadOnly) HasAxis(axis string) bool       { return ro.r.HasAxis(axis) }
func (ro *ReadOnly) AxisNames() []string            { return ro.r.AxisNames() }
func (ro *ReadOnly) GetAxis(axis string) ([]string, error) { return ro.r.GetAxis(axis) }
func (ro *ReadOnly) AxisLength(axis string) (int, error)   { return ro.r.AxisLength(axis) }
func (ro *ReadOnly) EntryIndex(axis, entry string) (int, error) {
	return ro.r.EntryIndex(axis, entry)
}

// HasVector, GetVector, VectorNames mirror Repository's read methods.
func (ro *ReadOnly) HasVector(axis, property string) bool { return ro.r.HasVector(axis, property) }
func (ro *ReadOnly) GetVector(axis, property string) (*storage.Array, error) {
	return ro.r.GetVector(axis, property)
}
func (ro *ReadOnly) VectorNames(axis string) []string { return ro.r.VectorNames(axis) }

// HasMatrix, GetMatrix, GetMatrixLayout, MatrixNames mirror Repository's
// read methods.
func (ro *ReadOnly) HasMatrix(rows, cols, property string) bool {
	return ro.r.HasMatrix(rows, cols, property)
}
func (ro *ReadOnly) GetMatrix(rows, cols, property string) (*storage.Matrix, error) {
	return ro.r.GetMatrix(rows, cols, property)
}
func (ro *ReadOnly) GetMatrixLayout(rows, cols, property string, axis layout.Axis) (*storage.Matrix, error) {
	return ro.r.GetMatrixLayout(rows, cols, property, axis)
}
func (ro *ReadOnly) MatrixNames(rows, cols string) []string { return ro.r.MatrixNames(rows, cols) }

// Describe returns the repository's deterministic shape dump.
func (ro *ReadOnly) Describe() string { return ro.r.Describe() }
