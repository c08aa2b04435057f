// SPDX-License-Identifier: MIT
package ops

import (
	"fmt"

	"github.com/daf-project/daf/layout"
	"github.com/daf-project/daf/storage"
)

// Reduction maps a vector to a scalar, or (applied along a named axis) a
// matrix to a vector — the reduction half of spec §4.D.
type Reduction interface {
	// ApplyVector reduces in to a single Scalar.
	ApplyVector(in *storage.Array) (storage.Scalar, error)

	// ApplyMatrix reduces m along axis, returning one Scalar per slot of
	// the opposite axis (reducing along Rows yields one value per column
	// and vice versa). Grounded on matrix/impl_statistics.go's row/column
	// reduction helpers, generalized across storage.Kind.
	ApplyMatrix(m *storage.Matrix, axis layout.Axis) (*storage.Array, error)
}

// ReductionFactory builds a configured Reduction from resolved Params.
type ReductionFactory func(p Params) (Reduction, error)

type reduceFunc struct {
	name   string
	vecFn  func(in *storage.Array) (storage.Scalar, error)
	outKnd storage.Kind
}

func (r reduceFunc) ApplyVector(in *storage.Array) (storage.Scalar, error) {
	v, err := r.vecFn(in)
	if err != nil {
		return storage.Scalar{}, fmt.Errorf("ops.%s: %w", r.name, err)
	}

	return v, nil
}

func (r reduceFunc) ApplyMatrix(m *storage.Matrix, axis layout.Axis) (*storage.Array, error) {
	if err := layout.CheckAccess(m.Form(), axis, "ops."+r.name); err != nil {
		return nil, err
	}

	var outLen int
	if axis == layout.Rows {
		outLen = m.Cols() // reducing rows collapses to one value per column
	} else {
		outLen = m.Rows()
	}

	kind := r.outKnd
	if kind == 0 && m.Kind() != storage.KindInt8 {
		kind = m.Kind()
	}
	out, err := storage.NewArray(kind, outLen)
	if err != nil {
		return nil, err
	}

	for i := 0; i < outLen; i++ {
		line, err := extractLine(m, axis, i)
		if err != nil {
			return nil, err
		}
		v, err := r.ApplyVector(line)
		if err != nil {
			return nil, err
		}
		if err := out.Set(i, v); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// extractLine gathers the i-th line that a reduction along axis collapses;
// axis names the dimension being collapsed. For axis == Rows it walks every
// row of column i (the result has one entry per column); for axis ==
// Columns it walks every column of row i (one entry per row).
func extractLine(m *storage.Matrix, axis layout.Axis, i int) (*storage.Array, error) {
	var n int
	if axis == layout.Rows {
		n = m.Rows()
	} else {
		n = m.Cols()
	}
	out, err := storage.NewArray(m.Kind(), n)
	if err != nil {
		return nil, err
	}
	for k := 0; k < n; k++ {
		var v storage.Scalar
		var err error
		if axis == layout.Rows {
			v, err = m.At(k, i)
		} else {
			v, err = m.At(i, k)
		}
		if err != nil {
			return nil, err
		}
		if err := out.Set(k, v); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// axisSchema is shared by every built-in reduction: an optional "axis"
// parameter naming which matrix axis to collapse when the reduction is
// applied to a MatrixQuery (ReduceMatrixQuery, spec §4.J.7). It is ignored
// when the reduction is applied to a plain vector.
var axisSchema = ParamSpec{
	Name: "axis", Kind: ParamEnum, Required: false,
	Enum: []string{"Rows", "Columns"}, Default: Value{Enum: "Rows"},
}

// AxisParam resolves the "axis" parameter of a reduction's Params to a
// layout.Axis, for evaluators that dispatch ApplyMatrix.
func AxisParam(p Params) layout.Axis {
	if p["axis"].Enum == "Columns" {
		return layout.Columns
	}

	return layout.Rows
}

func init() {
	RegisterReduction("Sum", Schema{axisSchema}, func(p Params) (Reduction, error) {
		return reduceFunc{name: "Sum", vecFn: sumVec}, nil
	})
	RegisterReduction("Mean", Schema{axisSchema}, func(p Params) (Reduction, error) {
		return reduceFunc{name: "Mean", outKnd: storage.KindFloat64, vecFn: meanVec}, nil
	})
	RegisterReduction("Max", Schema{axisSchema}, func(p Params) (Reduction, error) {
		return reduceFunc{name: "Max", vecFn: maxVec}, nil
	})
	RegisterReduction("Min", Schema{axisSchema}, func(p Params) (Reduction, error) {
		return reduceFunc{name: "Min", vecFn: minVec}, nil
	})
	RegisterReduction("Count", Schema{axisSchema}, func(p Params) (Reduction, error) {
		return reduceFunc{name: "Count", outKnd: storage.KindUint64, vecFn: countVec}, nil
	})
}

func sumVec(in *storage.Array) (storage.Scalar, error) {
	vals, ok := in.AsFloat64Slice()
	if !ok {
		return storage.Scalar{}, fmt.Errorf("kind %s: %w", in.Kind(), ErrUnsupportedKind)
	}
	var total float64
	for _, v := range vals {
		total += v
	}

	return scalarFromFloat(in.Kind(), total)
}

func meanVec(in *storage.Array) (storage.Scalar, error) {
	vals, ok := in.AsFloat64Slice()
	if !ok {
		return storage.Scalar{}, fmt.Errorf("kind %s: %w", in.Kind(), ErrUnsupportedKind)
	}
	if len(vals) == 0 {
		return storage.NewFloat64(0), nil
	}
	var total float64
	for _, v := range vals {
		total += v
	}

	return storage.NewFloat64(total / float64(len(vals))), nil
}

func maxVec(in *storage.Array) (storage.Scalar, error) {
	vals, ok := in.AsFloat64Slice()
	if !ok || len(vals) == 0 {
		return storage.Scalar{}, fmt.Errorf("kind %s, len %d: %w", in.Kind(), in.Len(), ErrUnsupportedKind)
	}
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}

	return scalarFromFloat(in.Kind(), m)
}

func minVec(in *storage.Array) (storage.Scalar, error) {
	vals, ok := in.AsFloat64Slice()
	if !ok || len(vals) == 0 {
		return storage.Scalar{}, fmt.Errorf("kind %s, len %d: %w", in.Kind(), in.Len(), ErrUnsupportedKind)
	}
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}

	return scalarFromFloat(in.Kind(), m)
}

func countVec(in *storage.Array) (storage.Scalar, error) {
	return storage.NewUint(64, uint64(in.Len()))
}
