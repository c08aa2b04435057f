package eval

import (
	"github.com/daf-project/daf/naming"
	"github.com/daf-project/daf/query/ast"
	"github.com/daf-project/daf/repo"
)

// evalLookup dispatches one of the six Lookup shapes to a Result, per spec
// §4.J's numbered contract.
func evalLookup(r repo.Reader, l ast.Lookup) (Result, error) {
	switch v := l.(type) {
	case *ast.MatrixPropertyLookup:
		return evalMatrixProperty(r, v)
	case *ast.VectorPropertyLookup:
		return evalVectorProperty(r, v)
	case *ast.MatrixSliceLookup:
		return evalMatrixSlice(r, v)
	case *ast.ScalarPropertyLookup:
		return evalScalarProperty(r, v)
	case *ast.VectorEntryLookup:
		return evalVectorEntry(r, v)
	case *ast.MatrixEntryLookup:
		return evalMatrixEntry(r, v)
	default:
		return Result{}, naming.WithContext("lookup", l, ErrNotFound)
	}
}

// evalMatrixProperty implements spec §4.J.1: compute the row/column masks,
// return Absent if either is empty, else subset and return the Matrix.
func evalMatrixProperty(r repo.Reader, v *ast.MatrixPropertyLookup) (Result, error) {
	rowIdx, err := filteredIndices(r, v.Rows)
	if err != nil {
		return Result{}, naming.WithContext("matrix", v.Property, err)
	}
	colIdx, err := filteredIndices(r, v.Cols)
	if err != nil {
		return Result{}, naming.WithContext("matrix", v.Property, err)
	}
	if len(rowIdx) == 0 || len(colIdx) == 0 {
		return absentResult(ast.KindMatrix), nil
	}

	m, err := r.GetMatrix(v.Rows.Axis, v.Cols.Axis, v.Property)
	if err != nil {
		return Result{}, err
	}

	rowParam, colParam := rowIdx, colIdx
	if v.Rows.Filter == nil {
		rowParam = nil
	}
	if v.Cols.Filter == nil {
		colParam = nil
	}
	sub, err := subsetMatrix(m, rowParam, colParam)
	if err != nil {
		return Result{}, naming.WithContext("matrix", v.Property, err)
	}

	return matrixResult(sub), nil
}

// evalVectorProperty implements spec §4.J's VectorQuery analog of
// MatrixQuery: compute the axis mask, return Absent if empty, else resolve
// the (possibly chained) property over the surviving entries.
func evalVectorProperty(r repo.Reader, v *ast.VectorPropertyLookup) (Result, error) {
	idx, err := filteredIndices(r, v.Axis)
	if err != nil {
		return Result{}, naming.WithContext("axis", v.Axis.Axis, err)
	}
	if len(idx) == 0 {
		return absentResult(ast.KindVector), nil
	}

	arr, err := resolveChain(r, v.Axis.Axis, v.Path, idx)
	if err != nil {
		return Result{}, err
	}

	return vectorResult(arr), nil
}

// evalMatrixSlice implements spec §4.J.6: locate the fixed-axis entry
// (error if absent — a direct index, not a filter), mask the free
// dimension, and return Absent if that mask is empty.
func evalMatrixSlice(r repo.Reader, v *ast.MatrixSliceLookup) (Result, error) {
	idx, err := filteredIndices(r, v.Filtered)
	if err != nil {
		return Result{}, naming.WithContext("matrix", v.Property, err)
	}
	if len(idx) == 0 {
		return absentResult(ast.KindVector), nil
	}

	rows, cols, err := resolveSliceAxes(r, v.Property, v.Filtered.Axis, v.FilteredIsRows, v.FixedEntry)
	if err != nil {
		return Result{}, naming.WithContext("matrix", v.Property, err)
	}
	m, err := r.GetMatrix(rows, cols, v.Property)
	if err != nil {
		return Result{}, err
	}

	if v.FilteredIsRows {
		fixedCol, err := r.EntryIndex(cols, v.FixedEntry)
		if err != nil {
			return Result{}, naming.WithContext("axis", cols, err)
		}
		arr, err := sliceMatrixFixedCol(m, idx, fixedCol, v.Property)
		if err != nil {
			return Result{}, naming.WithContext("matrix", v.Property, err)
		}

		return vectorResult(arr), nil
	}

	fixedRow, err := r.EntryIndex(rows, v.FixedEntry)
	if err != nil {
		return Result{}, naming.WithContext("axis", rows, err)
	}
	arr, err := sliceMatrixFixedRow(m, fixedRow, idx, v.Property)
	if err != nil {
		return Result{}, naming.WithContext("matrix", v.Property, err)
	}

	return vectorResult(arr), nil
}

// evalScalarProperty reads a repository scalar directly; a missing name
// raises rather than yielding Absent (spec §7's contract: only empty
// subsetting is Absent).
func evalScalarProperty(r repo.Reader, v *ast.ScalarPropertyLookup) (Result, error) {
	s, err := r.GetScalar(v.Name)
	if err != nil {
		return Result{}, err
	}

	return scalarResult(s), nil
}

// evalVectorEntry reads one entry of a chained-property vector: Entry
// indexes the same base axis the chain starts from.
func evalVectorEntry(r repo.Reader, v *ast.VectorEntryLookup) (Result, error) {
	idx, err := r.EntryIndex(v.Axis, v.Entry)
	if err != nil {
		return Result{}, naming.WithContext("axis", v.Axis, err)
	}
	s, err := resolveChainOne(r, v.Axis, v.Path, idx)
	if err != nil {
		return Result{}, err
	}

	return scalarResult(s), nil
}

// evalMatrixEntry reads one (row, col) entry of a named matrix directly.
func evalMatrixEntry(r repo.Reader, v *ast.MatrixEntryLookup) (Result, error) {
	rows, cols, err := resolveEntryAxes(r, v.Property, v.RowEntry, v.ColEntry)
	if err != nil {
		return Result{}, naming.WithContext("matrix", v.Property, err)
	}
	m, err := r.GetMatrix(rows, cols, v.Property)
	if err != nil {
		return Result{}, err
	}
	ri, err := r.EntryIndex(rows, v.RowEntry)
	if err != nil {
		return Result{}, naming.WithContext("axis", rows, err)
	}
	ci, err := r.EntryIndex(cols, v.ColEntry)
	if err != nil {
		return Result{}, naming.WithContext("axis", cols, err)
	}
	s, err := m.At(ri, ci)
	if err != nil {
		return Result{}, naming.WithContext("matrix", v.Property, err)
	}

	return scalarResult(s), nil
}
