package repo

import (
	"fmt"

	"github.com/daf-project/daf/format"
	"github.com/daf-project/daf/layout"
	"github.com/daf-project/daf/naming"
	"github.com/daf-project/daf/storage"
)

// HasMatrix reports whether property is stored under the (rows, cols) axis
// pair, exactly as keyed (it does not check the transposed key).
func (r *Repository) HasMatrix(rows, cols, property string) bool {
	r.muData.RLock()
	defer r.muData.RUnlock()

	return r.backend.HasMatrix(format.MatrixKey{Rows: rows, Columns: cols, Property: property})
}

// GetMatrix returns the borrowed *storage.Matrix stored under (rows, cols,
// property).
func (r *Repository) GetMatrix(rows, cols, property string) (*storage.Matrix, error) {
	r.muMeta.RLock()
	rOK, cOK := r.backend.HasAxis(rows), r.backend.HasAxis(cols)
	r.muMeta.RUnlock()
	if !rOK {
		return nil, naming.WithContext("axis", rows, format.ErrNotFound)
	}
	if !cOK {
		return nil, naming.WithContext("axis", cols, format.ErrNotFound)
	}

	r.muData.RLock()
	defer r.muData.RUnlock()
	m, err := r.backend.GetMatrix(format.MatrixKey{Rows: rows, Columns: cols, Property: property})
	if err != nil {
		return nil, naming.WithContext("matrix", property, err)
	}

	return m, nil
}

// GetMatrixLayout returns the matrix at (rows, cols, property) re-laid-out
// so MajorAxis() == axis, consulting and populating the derived-data cache
// (spec §4.F.3). The source matrix itself is never mutated.
func (r *Repository) GetMatrixLayout(rows, cols, property string, axis layout.Axis) (*storage.Matrix, error) {
	m, err := r.GetMatrix(rows, cols, property)
	if err != nil {
		return nil, err
	}
	if m.MajorAxis() == axis {
		return m, nil
	}

	key := relayoutKey{rows: rows, cols: cols, property: property, axis: axis}

	r.muData.RLock()
	cached, ok := r.cache[key]
	r.muData.RUnlock()
	if ok {
		return cached, nil
	}

	relaid, err := m.Relayout(axis)
	if err != nil {
		return nil, naming.WithContext("matrix", property, err)
	}

	r.muData.Lock()
	r.cache[key] = relaid
	r.muData.Unlock()

	return relaid, nil
}

// SetMatrix writes property under the (rows, cols) axis pair. data must be
// either a *storage.Matrix of shape (AxisLength(rows), AxisLength(cols)),
// or a storage.Scalar broadcast to a uniform dense row-major matrix of
// that shape (spec §4.F.2).
func (r *Repository) SetMatrix(rows, cols, property string, data interface{}) error {
	if err := r.checkFrozen("SetMatrix"); err != nil {
		return err
	}

	r.muMeta.RLock()
	nr, rErr := r.backend.AxisLength(rows)
	nc, cErr := r.backend.AxisLength(cols)
	r.muMeta.RUnlock()
	if rErr != nil {
		return naming.WithContext("axis", rows, format.ErrNotFound)
	}
	if cErr != nil {
		return naming.WithContext("axis", cols, format.ErrNotFound)
	}

	mat, err := resolveMatrixData(nr, nc, data)
	if err != nil {
		return naming.WithContext("matrix", property, err)
	}

	r.muData.Lock()
	defer r.muData.Unlock()
	if err := r.backend.SetMatrix(format.MatrixKey{Rows: rows, Columns: cols, Property: property}, mat); err != nil {
		return naming.WithContext("matrix", property, err)
	}
	r.clearCacheFor(rows, cols, property)

	return nil
}

// resolveMatrixData materializes data into a (rows x cols) Matrix,
// broadcasting a bare Scalar to a uniform dense row-major matrix.
func resolveMatrixData(rows, cols int, data interface{}) (*storage.Matrix, error) {
	switch v := data.(type) {
	case *storage.Matrix:
		if v.Rows() != rows || v.Cols() != cols {
			return nil, fmt.Errorf("shape (%d,%d) != axis shape (%d,%d): %w",
				v.Rows(), v.Cols(), rows, cols, format.ErrShapeMismatch)
		}

		return v, nil
	case storage.Scalar:
		m, err := storage.NewDenseMatrix(layout.DenseRowMajor, rows, cols, v.Kind())
		if err != nil {
			return nil, err
		}
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				if err := m.Set(i, j, v); err != nil {
					return nil, err
				}
			}
		}

		return m, nil
	default:
		return nil, fmt.Errorf("unsupported matrix value type %T: %w", data, ErrTypeMismatch)
	}
}

// DeleteMatrix removes property under (rows, cols) and clears any cached
// relayout derived from it.
func (r *Repository) DeleteMatrix(rows, cols, property string) error {
	if err := r.checkFrozen("DeleteMatrix"); err != nil {
		return err
	}
	r.muData.Lock()
	defer r.muData.Unlock()
	if err := r.backend.DeleteMatrix(format.MatrixKey{Rows: rows, Columns: cols, Property: property}); err != nil {
		return naming.WithContext("matrix", property, err)
	}
	r.clearCacheFor(rows, cols, property)

	return nil
}

// MatrixNames returns every property name stored under the (rows, cols)
// axis pair, exactly as keyed.
func (r *Repository) MatrixNames(rows, cols string) []string {
	r.muData.RLock()
	defer r.muData.RUnlock()

	return r.backend.MatrixNames(rows, cols)
}

// clearCacheFor removes every relayout cache entry for (rows, cols,
// property); callers must hold muData.
func (r *Repository) clearCacheFor(rows, cols, property string) {
	for k := range r.cache {
		if k.rows == rows && k.cols == cols && k.property == property {
			delete(r.cache, k)
		}
	}
}
