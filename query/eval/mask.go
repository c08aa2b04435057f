package eval

import (
	"fmt"

	"github.com/daf-project/daf/naming"
	"github.com/daf-project/daf/query/ast"
	"github.com/daf-project/daf/repo"
)

// filteredIndices resolves a FilteredAxis to the ordered set of entry
// indices it selects. A nil Filter is the "no mask" sentinel and selects
// every index (spec §4.J.2); otherwise every AxisFilter leaf is evaluated
// and folded with its combinator.
func filteredIndices(r repo.Reader, fa ast.FilteredAxis) ([]int, error) {
	n, err := r.AxisLength(fa.Axis)
	if err != nil {
		return nil, naming.WithContext("axis", fa.Axis, err)
	}
	if fa.Filter == nil {
		return allIndices(n), nil
	}

	mask, err := evalFilterExpr(r, fa.Axis, n, fa.Filter)
	if err != nil {
		return nil, naming.WithContext("axis", fa.Axis, err)
	}

	out := make([]int, 0, n)
	for i, keep := range mask {
		if keep {
			out = append(out, i)
		}
	}

	return out, nil
}

// evalFilterExpr evaluates a boolean combinator tree over axis's n entries
// to a per-entry boolean mask.
func evalFilterExpr(r repo.Reader, axis string, n int, f ast.FilterExpr) ([]bool, error) {
	switch v := f.(type) {
	case *ast.FilterLeaf:
		return evalAxisLookup(r, axis, n, v.Lookup)
	case *ast.FilterCombine:
		left, err := evalFilterExpr(r, axis, n, v.Left)
		if err != nil {
			return nil, err
		}
		right, err := evalFilterExpr(r, axis, n, v.Right)
		if err != nil {
			return nil, err
		}

		return combineMasks(v.Op, left, right), nil
	default:
		return nil, fmt.Errorf("eval.evalFilterExpr: unsupported filter node %T", f)
	}
}

func combineMasks(op ast.FilterOp, left, right []bool) []bool {
	out := make([]bool, len(left))
	for i := range out {
		switch op {
		case ast.And:
			out[i] = left[i] && right[i]
		case ast.Or:
			out[i] = left[i] || right[i]
		default: // Xor
			out[i] = left[i] != right[i]
		}
	}

	return out
}

// evalAxisLookup evaluates one AxisFilter leaf over all of axis's entries:
// resolves the leaf's property chain, then either compares each value
// against a Literal or, absent a comparison, takes a Bool vector's values
// directly as the mask. Invert negates the result (spec §4.I AxisLookup).
func evalAxisLookup(r repo.Reader, axis string, n int, l ast.AxisLookup) ([]bool, error) {
	vec, err := resolveChain(r, axis, l.Path, allIndices(n))
	if err != nil {
		return nil, err
	}

	out := make([]bool, n)
	for i := 0; i < n; i++ {
		v, err := vec.At(i)
		if err != nil {
			return nil, err
		}
		var keep bool
		if l.Comparison != nil {
			keep, err = compareScalar(l.Comparison.Op, v, l.Comparison.Literal)
			if err != nil {
				return nil, naming.WithContext("property", l.Path.String(), err)
			}
		} else {
			var ok bool
			keep, ok = v.Bool()
			if !ok {
				return nil, naming.WithContext("property", l.Path.String(),
					fmt.Errorf("uncompared filter term must be Bool, got %s: %w", v.Kind(), ErrKindMismatch))
			}
		}
		if l.Invert {
			keep = !keep
		}
		out[i] = keep
	}

	return out, nil
}
