package repo

import (
	"fmt"

	"github.com/daf-project/daf/format"
	"github.com/daf-project/daf/naming"
	"github.com/daf-project/daf/storage"
)

// HasVector reports whether property is stored under axis.
func (r *Repository) HasVector(axis, property string) bool {
	r.muData.RLock()
	defer r.muData.RUnlock()

	return r.backend.HasVector(format.VectorKey{Axis: axis, Property: property})
}

// GetVector returns the borrowed *storage.Array stored under (axis,
// property). The caller must not mutate it; it remains valid only while no
// conflicting mutation runs, unless the repository is frozen (spec §3
// Ownership).
func (r *Repository) GetVector(axis, property string) (*storage.Array, error) {
	r.muMeta.RLock()
	exists := r.backend.HasAxis(axis)
	r.muMeta.RUnlock()
	if !exists {
		return nil, naming.WithContext("axis", axis, format.ErrNotFound)
	}

	r.muData.RLock()
	defer r.muData.RUnlock()
	data, err := r.backend.GetVector(format.VectorKey{Axis: axis, Property: property})
	if err != nil {
		return nil, naming.WithContext("vector", property, naming.WithContext("axis", axis, err))
	}

	return data, nil
}

// SetVector writes property under axis. data must be either a
// *storage.Array of length AxisLength(axis), or a storage.Scalar, which is
// broadcast to a uniform array of that length (spec §4.F.2). axis must
// already exist.
func (r *Repository) SetVector(axis, property string, data interface{}) error {
	if err := r.checkFrozen("SetVector"); err != nil {
		return err
	}

	r.muMeta.RLock()
	n, err := r.backend.AxisLength(axis)
	axisExists := err == nil
	r.muMeta.RUnlock()
	if !axisExists {
		return naming.WithContext("axis", axis, format.ErrNotFound)
	}

	arr, err := resolveVectorData(n, data)
	if err != nil {
		return naming.WithContext("vector", property, naming.WithContext("axis", axis, err))
	}

	r.muData.Lock()
	defer r.muData.Unlock()
	if err := r.backend.SetVector(format.VectorKey{Axis: axis, Property: property}, arr); err != nil {
		return naming.WithContext("vector", property, naming.WithContext("axis", axis, err))
	}
	for k := range r.cache {
		if k.rows == axis || k.cols == axis {
			delete(r.cache, k)
		}
	}

	return nil
}

// resolveVectorData materializes data into a length-n Array, broadcasting
// a bare Scalar to a uniform array (spec §4.F.2) and validating an
// explicit Array's length.
func resolveVectorData(n int, data interface{}) (*storage.Array, error) {
	switch v := data.(type) {
	case *storage.Array:
		if v.Len() != n {
			return nil, fmt.Errorf("length %d != axis length %d: %w", v.Len(), n, format.ErrShapeMismatch)
		}

		return v, nil
	case storage.Scalar:
		return storage.Fill(v.Kind(), n, v)
	default:
		return nil, fmt.Errorf("unsupported vector value type %T: %w", data, ErrTypeMismatch)
	}
}

// DeleteVector removes property under axis. It leaves the relayout cache
// untouched: cache entries are keyed by matrix property, so no cached
// relayout derives from a vector.
func (r *Repository) DeleteVector(axis, property string) error {
	if err := r.checkFrozen("DeleteVector"); err != nil {
		return err
	}
	r.muData.Lock()
	defer r.muData.Unlock()
	if err := r.backend.DeleteVector(format.VectorKey{Axis: axis, Property: property}); err != nil {
		return naming.WithContext("vector", property, naming.WithContext("axis", axis, err))
	}

	return nil
}

// VectorNames returns every property name stored under axis.
func (r *Repository) VectorNames(axis string) []string {
	r.muData.RLock()
	defer r.muData.RUnlock()

	return r.backend.VectorNames(axis)
}
