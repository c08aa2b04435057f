package eval

import (
	"fmt"

	"github.com/daf-project/daf/layout"
	"github.com/daf-project/daf/naming"
	"github.com/daf-project/daf/ops"
	"github.com/daf-project/daf/query/ast"
	"github.com/daf-project/daf/repo"
	"github.com/daf-project/daf/storage"
)

// Query evaluates q against r: the Base Lookup resolves to a Result, then
// each OpCall in q.Ops folds left-to-right, narrowing the result's Kind
// whenever a reduction runs (Matrix->Vector or Vector->Scalar) and
// preserving it for element-wise operations — the unified-AST design's
// evaluation half (see query/ast's package doc).
//
// A ReduceMatrixQuery/ReduceVectorQuery that encounters an Absent base
// short-circuits: the operation chain never runs and Absent propagates
// (spec §4.J.7).
func Query(r repo.Reader, q *ast.Query) (Result, error) {
	res, err := evalLookup(r, q.Base)
	if err != nil {
		return Result{}, naming.WithContext("query", q.Text, err)
	}

	for _, call := range q.Ops {
		if res.Absent {
			break
		}
		res, err = applyOp(res, call)
		if err != nil {
			return Result{}, naming.WithContext("query", q.Text, naming.WithContext("operation", call.Name, err))
		}
	}

	return res, nil
}

// applyOp resolves one OpCall against the current Result's Kind and
// invokes it, dispatching between the element-wise and reduction
// registries by trying element-wise first.
func applyOp(res Result, call ast.OpCall) (Result, error) {
	if _, err := ops.ElementWiseSchema(call.Name); err == nil {
		return applyElementWise(res, call)
	}
	if _, err := ops.ReductionSchema(call.Name); err == nil {
		return applyReduction(res, call)
	}

	return Result{}, fmt.Errorf("%q: %w", call.Name, ops.ErrUnknownOperation)
}

func applyElementWise(res Result, call ast.OpCall) (Result, error) {
	ew, err := ops.ElementWiseFromText(call.Name, call.ParamText)
	if err != nil {
		return Result{}, err
	}

	switch res.Kind {
	case ast.KindVector:
		out, err := ew.Apply(res.Vector)
		if err != nil {
			return Result{}, err
		}

		return vectorResult(out), nil
	case ast.KindScalar:
		in, err := storage.NewArray(res.Scalar.Kind(), 1)
		if err != nil {
			return Result{}, err
		}
		if err := in.Set(0, res.Scalar); err != nil {
			return Result{}, err
		}
		out, err := ew.Apply(in)
		if err != nil {
			return Result{}, err
		}
		v, err := out.At(0)
		if err != nil {
			return Result{}, err
		}

		return scalarResult(v), nil
	case ast.KindMatrix:
		out, err := applyElementWiseMatrix(ew, res.Matrix)
		if err != nil {
			return Result{}, err
		}

		return matrixResult(out), nil
	default:
		return Result{}, fmt.Errorf("%q: %w", call.Name, ErrKindMismatch)
	}
}

// applyElementWiseMatrix densifies m into one row-major Array, applies ew,
// and rebuilds a dense row-major Matrix of the (possibly Cast-changed)
// output kind. Densifying is a simplification for sparse inputs — an
// element-wise operation that does not fix zero (e.g. Clamp with a
// positive minimum) would otherwise change the matrix's sparsity pattern
// anyway, so there is no representation that stays sparse in general.
func applyElementWiseMatrix(ew ops.ElementWise, m *storage.Matrix) (*storage.Matrix, error) {
	flat, err := storage.NewArray(m.Kind(), m.Rows()*m.Cols())
	if err != nil {
		return nil, err
	}
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, err
			}
			if err := flat.Set(i*m.Cols()+j, v); err != nil {
				return nil, err
			}
		}
	}

	out, err := ew.Apply(flat)
	if err != nil {
		return nil, err
	}

	result, err := storage.NewDenseMatrix(layout.DenseRowMajor, m.Rows(), m.Cols(), out.Kind())
	if err != nil {
		return nil, err
	}
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			v, err := out.At(i*m.Cols() + j)
			if err != nil {
				return nil, err
			}
			if err := result.Set(i, j, v); err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}

func applyReduction(res Result, call ast.OpCall) (Result, error) {
	schema, err := ops.ReductionSchema(call.Name)
	if err != nil {
		return Result{}, err
	}
	params, err := ops.ParseParams(schema, call.ParamText)
	if err != nil {
		return Result{}, err
	}
	red, err := ops.BuildReduction(call.Name, params)
	if err != nil {
		return Result{}, err
	}

	switch res.Kind {
	case ast.KindVector:
		v, err := red.ApplyVector(res.Vector)
		if err != nil {
			return Result{}, err
		}

		return scalarResult(v), nil
	case ast.KindMatrix:
		out, err := red.ApplyMatrix(res.Matrix, ops.AxisParam(params))
		if err != nil {
			return Result{}, err
		}

		return vectorResult(out), nil
	default:
		return Result{}, fmt.Errorf("%q: %w", call.Name, ErrKindMismatch)
	}
}
