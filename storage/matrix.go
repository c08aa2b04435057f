// SPDX-License-Identifier: MIT
package storage

import (
	"fmt"
	"sort"

	"github.com/daf-project/daf/layout"
)

// Matrix is a 2-D container in one of three physical forms: dense
// row-major, dense column-major, or sparse compressed-by-column (and,
// transiently, compressed-by-row as the result of a re-layout — see
// Relayout). IsStorageMatrix reports true for all of them.
//
// A Dense Matrix stores its Kind-typed elements in a single flat Array of
// length Rows*Cols, the same "one allocation, flat buffer" discipline as
// the teacher's Dense type. A Sparse Matrix stores only non-zero elements
// as parallel (index, value) arrays plus a major-pointer array, grounded
// on the pack's compressedSparse (indptr/ind/data) layout.
type Matrix struct {
	form Form
	rows int
	cols int
	kind Kind

	// dense holds Rows*Cols elements in the order dictated by form when
	// form.IsDense(): row-major iterates column-fastest, column-major
	// iterates row-fastest.
	dense *Array

	// Sparse fields, populated when form.IsSparse().
	//   - ptr has length (major dimension)+1: ptr[k]..ptr[k+1] bounds the
	//     non-zero run for major-index k (a column for SparseCSC, a row
	//     for SparseCSR).
	//   - minorIndex has length nnz: for each non-zero, its minor-axis
	//     coordinate (row for CSC, column for CSR).
	//   - values has length nnz.
	ptr        []int
	minorIndex *Array // integer Kind chosen by the caller
	values     *Array
}

// Form re-exports layout.Form so callers of this package don't need a
// second import for the common case of reading m.Form().
type Form = layout.Form

// IsStorageMatrix reports whether m is a non-nil, well-formed Matrix of one
// of the supported physical forms. It is the Go rendering of the spec's
// is_storage_matrix(x) type predicate.
func IsStorageMatrix(m *Matrix) bool {
	if m == nil {
		return false
	}

	switch m.form {
	case layout.DenseRowMajor, layout.DenseColMajor, layout.SparseCSC, layout.SparseCSR:
		return true
	default:
		return false
	}
}

// Rows returns the matrix's row count.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the matrix's column count.
func (m *Matrix) Cols() int { return m.cols }

// Kind returns the element Kind.
func (m *Matrix) Kind() Kind { return m.kind }

// Form returns the matrix's physical form.
func (m *Matrix) Form() layout.Form { return m.form }

// MajorAxis returns layout.MajorAxis(m.Form()).
func (m *Matrix) MajorAxis() layout.Axis { return layout.MajorAxis(m.form) }

// NewDenseMatrix allocates a zero-valued dense matrix of the given Kind,
// shape, and major form (DenseRowMajor or DenseColMajor). This is the
// in-process analog of the Format Contract's empty_dense_matrix.
//
// Complexity: O(rows*cols).
func NewDenseMatrix(form layout.Form, rows, cols int, kind Kind) (*Matrix, error) {
	if !form.IsDense() {
		return nil, fmt.Errorf("storage.NewDenseMatrix: form %s is not dense", form)
	}
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("storage.NewDenseMatrix: negative shape (%d,%d): %w", rows, cols, ErrIndexOutOfRange)
	}
	data, err := NewArray(kind, rows*cols)
	if err != nil {
		return nil, fmt.Errorf("storage.NewDenseMatrix: %w", err)
	}

	return &Matrix{form: form, rows: rows, cols: cols, kind: kind, dense: data}, nil
}

// denseOffset returns the flat index for (r,c) honoring the matrix's
// major form.
func (m *Matrix) denseOffset(r, c int) int {
	if m.form == layout.DenseRowMajor {
		return r*m.cols + c
	}

	return c*m.rows + r
}

// At returns the element at (r, c). Dense matrices are O(1); sparse
// matrices scan their major run, O(nnz-per-major-slot).
//
// At performs no layout-efficiency check: it never consults
// layout.CheckAccess, so repeatedly calling it down a matrix's minor axis
// is silently slow rather than warned-or-rejected. Callers that need the
// inefficient-action policy enforced around a bulk traversal must call
// layout.CheckAccess themselves before the loop, the way query/eval and
// ops already do around their own matrix walks.
func (m *Matrix) At(r, c int) (Scalar, error) {
	if r < 0 || r >= m.rows || c < 0 || c >= m.cols {
		return Scalar{}, fmt.Errorf("storage.Matrix.At(%d,%d): %w", r, c, ErrIndexOutOfRange)
	}

	switch {
	case m.form.IsDense():
		return m.dense.At(m.denseOffset(r, c))
	case m.form == layout.SparseCSC:
		return m.sparseAt(c, r)
	default: // SparseCSR
		return m.sparseAt(r, c)
	}
}

// sparseAt looks up the value at (majorIdx, minorIdx) by scanning the
// major-run of ptr/minorIndex; returns the zero value of Kind if absent.
func (m *Matrix) sparseAt(majorIdx, minorIdx int) (Scalar, error) {
	lo, hi := m.ptr[majorIdx], m.ptr[majorIdx+1]
	for k := lo; k < hi; k++ {
		mv, err := m.minorIndex.At(k)
		if err != nil {
			return Scalar{}, err
		}
		idx, _ := mv.Int64()
		if idx64, ok := mv.Uint64(); ok {
			idx = int64(idx64)
		}
		if int(idx) == minorIdx {
			return m.values.At(k)
		}
	}

	return zeroOf(m.kind), nil
}

// zeroOf returns the additive-identity Scalar for a numeric/bool Kind.
func zeroOf(kind Kind) Scalar {
	switch {
	case kind.IsSignedInt():
		v, _ := NewInt(widthOf(kind), 0)
		return v
	case kind.IsUnsignedInt():
		v, _ := NewUint(widthOf(kind), 0)
		return v
	case kind == KindFloat32:
		return NewFloat32(0)
	case kind == KindFloat64:
		return NewFloat64(0)
	case kind == KindBool:
		return NewBool(false)
	default:
		return NewString("")
	}
}

func widthOf(kind Kind) int {
	switch kind {
	case KindInt8, KindUint8:
		return 8
	case KindInt16, KindUint16:
		return 16
	case KindInt32, KindUint32:
		return 32
	default:
		return 64
	}
}

// Set assigns the element at (r, c) of a dense matrix. Sparse matrices are
// immutable once built by NewSparseCSC; mutate them by rebuilding.
func (m *Matrix) Set(r, c int, v Scalar) error {
	if !m.form.IsDense() {
		return fmt.Errorf("storage.Matrix.Set: matrix form %s is not mutable in place", m.form)
	}
	if r < 0 || r >= m.rows || c < 0 || c >= m.cols {
		return fmt.Errorf("storage.Matrix.Set(%d,%d): %w", r, c, ErrIndexOutOfRange)
	}

	return m.dense.Set(m.denseOffset(r, c), v)
}

// NewSparseCSC builds a compressed-by-column sparse matrix from coordinate
// triplets (rowIdx[k], colIdx[k], values.At(k)). Triplets need not be
// sorted. Duplicate coordinates are not merged or summed: each is stored
// as its own entry, and At returns the value of the one given first.
//
// indexKind selects the storage width of the internal row-index array
// (the spec's "index-type" parameter to empty_sparse_vector/matrix).
//
// Complexity: O(nnz log nnz) for the column bucketing sort.
func NewSparseCSC(rows, cols int, rowIdx, colIdx []int, values *Array, indexKind Kind) (*Matrix, error) {
	if !indexKind.IsInteger() {
		return nil, fmt.Errorf("storage.NewSparseCSC: index kind %s is not integer: %w", indexKind, ErrInvalidKind)
	}
	nnz := values.Len()
	if len(rowIdx) != nnz || len(colIdx) != nnz {
		return nil, fmt.Errorf("storage.NewSparseCSC: %w", ErrLengthMismatch)
	}
	for k := 0; k < nnz; k++ {
		if rowIdx[k] < 0 || rowIdx[k] >= rows || colIdx[k] < 0 || colIdx[k] >= cols {
			return nil, fmt.Errorf("storage.NewSparseCSC: coordinate (%d,%d) out of (%d,%d): %w",
				rowIdx[k], colIdx[k], rows, cols, ErrIndexOutOfRange)
		}
	}

	order := make([]int, nnz)
	for k := range order {
		order[k] = k
	}
	sort.SliceStable(order, func(i, j int) bool { return colIdx[order[i]] < colIdx[order[j]] })

	ptr := make([]int, cols+1)
	minorIdx, err := NewArray(indexKind, nnz)
	if err != nil {
		return nil, err
	}
	vals, err := NewArray(values.Kind(), nnz)
	if err != nil {
		return nil, err
	}
	for dst, src := range order {
		ptr[colIdx[src]+1]++
		rv, verr := castIndex(indexKind, rowIdx[src])
		if verr != nil {
			return nil, verr
		}
		if err := minorIdx.Set(dst, rv); err != nil {
			return nil, err
		}
		srcVal, verr := values.At(src)
		if verr != nil {
			return nil, verr
		}
		if err := vals.Set(dst, srcVal); err != nil {
			return nil, err
		}
	}
	for c := 0; c < cols; c++ {
		ptr[c+1] += ptr[c]
	}

	return &Matrix{
		form:       layout.SparseCSC,
		rows:       rows,
		cols:       cols,
		kind:       values.Kind(),
		ptr:        ptr,
		minorIndex: minorIdx,
		values:     vals,
	}, nil
}

// castIndex builds an integer Scalar of indexKind holding value, used to
// populate sparse index arrays.
func castIndex(indexKind Kind, value int) (Scalar, error) {
	if indexKind.IsSignedInt() {
		return NewInt(widthOf(indexKind), int64(value))
	}

	return NewUint(widthOf(indexKind), uint64(value))
}

// NNZ returns the number of stored (non-zero) entries; for dense matrices
// this is simply Rows()*Cols().
func (m *Matrix) NNZ() int {
	if m.form.IsDense() {
		return m.rows * m.cols
	}

	return m.values.Len()
}

// Relayout returns a new matrix equivalent to m but whose MajorAxis is
// target. It never mutates m. Sparsity class is preserved: a dense input
// stays dense (row-major <-> column-major), a sparse input stays sparse
// (SparseCSC <-> SparseCSR) — see SPEC_FULL.md's resolution of the
// corresponding Open Question.
//
// Complexity: O(rows*cols) for dense, O(nnz) for sparse.
func (m *Matrix) Relayout(target layout.Axis) (*Matrix, error) {
	switch {
	case m.form.IsDense():
		return m.relayoutDense(target)
	default:
		return m.relayoutSparse(target)
	}
}

func (m *Matrix) relayoutDense(target layout.Axis) (*Matrix, error) {
	wantForm := layout.DenseColMajor
	if target == layout.Rows {
		wantForm = layout.DenseRowMajor
	}
	if wantForm == m.form {
		return m.Clone(), nil
	}
	out, err := NewDenseMatrix(wantForm, m.rows, m.cols, m.kind)
	if err != nil {
		return nil, err
	}
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			v, err := m.dense.At(m.denseOffset(r, c))
			if err != nil {
				return nil, err
			}
			if err := out.dense.Set(out.denseOffset(r, c), v); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// relayoutSparse converts between SparseCSC and SparseCSR using the
// classic bucket-sort transpose algorithm: count entries per destination
// major slot, prefix-sum into a pointer array, then scatter.
func (m *Matrix) relayoutSparse(target layout.Axis) (*Matrix, error) {
	wantForm := layout.SparseCSC
	if target == layout.Rows {
		wantForm = layout.SparseCSR
	}
	if wantForm == m.form {
		return m.Clone(), nil
	}

	// srcMajorDim/srcMinorDim describe m's current layout; dstMajorDim is
	// the new major dimension's size (rows for CSR, cols for CSC).
	var srcMajorDim, dstMajorDim int
	if m.form == layout.SparseCSC {
		srcMajorDim, dstMajorDim = m.cols, m.rows
	} else {
		srcMajorDim, dstMajorDim = m.rows, m.cols
	}
	nnz := m.NNZ()

	dstPtr := make([]int, dstMajorDim+1)
	srcMinor := make([]int, nnz) // the coordinate that becomes the new major index
	for k := 0; k < nnz; k++ {
		v, err := m.minorIndex.At(k)
		if err != nil {
			return nil, err
		}
		idx := scalarAsInt(v)
		srcMinor[k] = idx
		dstPtr[idx+1]++
	}
	for i := 0; i < dstMajorDim; i++ {
		dstPtr[i+1] += dstPtr[i]
	}

	dstMinor, err := NewArray(m.minorIndex.Kind(), nnz)
	if err != nil {
		return nil, err
	}
	dstVals, err := NewArray(m.kind, nnz)
	if err != nil {
		return nil, err
	}
	cursor := append([]int(nil), dstPtr[:dstMajorDim]...)
	for srcMajor := 0; srcMajor < srcMajorDim; srcMajor++ {
		for k := m.ptr[srcMajor]; k < m.ptr[srcMajor+1]; k++ {
			newMajor := srcMinor[k]
			dst := cursor[newMajor]
			cursor[newMajor]++
			idxVal, err := castIndex(m.minorIndex.Kind(), srcMajor)
			if err != nil {
				return nil, err
			}
			if err := dstMinor.Set(dst, idxVal); err != nil {
				return nil, err
			}
			v, err := m.values.At(k)
			if err != nil {
				return nil, err
			}
			if err := dstVals.Set(dst, v); err != nil {
				return nil, err
			}
		}
	}

	return &Matrix{
		form:       wantForm,
		rows:       m.rows,
		cols:       m.cols,
		kind:       m.kind,
		ptr:        dstPtr,
		minorIndex: dstMinor,
		values:     dstVals,
	}, nil
}

func scalarAsInt(v Scalar) int {
	if i, ok := v.Int64(); ok {
		return int(i)
	}
	u, _ := v.Uint64()

	return int(u)
}

// Clone returns a deep, independent copy of m.
//
// Complexity: O(rows*cols) for dense, O(nnz) for sparse.
func (m *Matrix) Clone() *Matrix {
	out := &Matrix{form: m.form, rows: m.rows, cols: m.cols, kind: m.kind}
	if m.dense != nil {
		out.dense = m.dense.Clone()
	}
	if m.ptr != nil {
		out.ptr = append([]int(nil), m.ptr...)
	}
	if m.minorIndex != nil {
		out.minorIndex = m.minorIndex.Clone()
	}
	if m.values != nil {
		out.values = m.values.Clone()
	}

	return out
}
