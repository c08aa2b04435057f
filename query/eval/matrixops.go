package eval

import (
	"github.com/daf-project/daf/layout"
	"github.com/daf-project/daf/storage"
)

// subsetMatrix builds a fresh dense row-major matrix holding m's values at
// the cartesian product of rowIdx x colIdx, in that order — the
// materialization step behind MatrixQuery's row/column subsetting (spec
// §4.J.1). A nil rowIdx/colIdx means "every index of that dimension".
func subsetMatrix(m *storage.Matrix, rowIdx, colIdx []int) (*storage.Matrix, error) {
	if rowIdx == nil {
		rowIdx = allIndices(m.Rows())
	}
	if colIdx == nil {
		colIdx = allIndices(m.Cols())
	}

	out, err := storage.NewDenseMatrix(layout.DenseRowMajor, len(rowIdx), len(colIdx), m.Kind())
	if err != nil {
		return nil, err
	}
	for i, r := range rowIdx {
		for j, c := range colIdx {
			v, err := m.At(r, c)
			if err != nil {
				return nil, err
			}
			if err := out.Set(i, j, v); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// sliceMatrixFixedCol reads column fixedCol at every row in rowIdx, in
// order, consulting the inefficient-action policy since this traversal
// moves down the Rows axis regardless of m's physical major form.
func sliceMatrixFixedCol(m *storage.Matrix, rowIdx []int, fixedCol int, context string) (*storage.Array, error) {
	if err := layout.CheckAccess(m.Form(), layout.Rows, context); err != nil {
		return nil, err
	}
	out, err := storage.NewArray(m.Kind(), len(rowIdx))
	if err != nil {
		return nil, err
	}
	for i, r := range rowIdx {
		v, err := m.At(r, fixedCol)
		if err != nil {
			return nil, err
		}
		if err := out.Set(i, v); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// sliceMatrixFixedRow reads row fixedRow at every column in colIdx, in
// order, consulting the inefficient-action policy for the Columns traversal.
func sliceMatrixFixedRow(m *storage.Matrix, fixedRow int, colIdx []int, context string) (*storage.Array, error) {
	if err := layout.CheckAccess(m.Form(), layout.Columns, context); err != nil {
		return nil, err
	}
	out, err := storage.NewArray(m.Kind(), len(colIdx))
	if err != nil {
		return nil, err
	}
	for i, c := range colIdx {
		v, err := m.At(fixedRow, c)
		if err != nil {
			return nil, err
		}
		if err := out.Set(i, v); err != nil {
			return nil, err
		}
	}

	return out, nil
}
