package eval

import (
	"fmt"

	"github.com/daf-project/daf/naming"
	"github.com/daf-project/daf/query/ast"
	"github.com/daf-project/daf/repo"
	"github.com/daf-project/daf/storage"
)

// resolveChain walks a dotted property Path starting at baseAxis, for each
// of a set of entry indices into baseAxis. Every hop but the last is a
// cross-axis traversal: the vector stored under (currentAxis, path[i])
// must hold, at each surviving index, the name of one entry of the axis
// named path[i] itself — that axis becomes currentAxis for the next hop
// (spec §4.I PropertyLookup's "chains through arbitrarily many axes", the
// Open Question SPEC_FULL.md resolves as uncapped). The last hop's vector
// is the one actually returned, sliced down to the surviving indices, in
// their original order.
func resolveChain(r repo.Reader, baseAxis string, path ast.Path, indices []int) (*storage.Array, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("eval.resolveChain: empty property path: %w", ErrNotFound)
	}

	axis := baseAxis
	idx := indices
	for i, prop := range path {
		vec, err := r.GetVector(axis, prop)
		if err != nil {
			return nil, naming.WithContext("property", prop, naming.WithContext("axis", axis, err))
		}
		if i == len(path)-1 {
			out, err := vec.Slice(idx)
			if err != nil {
				return nil, naming.WithContext("property", prop, naming.WithContext("axis", axis, err))
			}

			return out, nil
		}

		nextAxis := prop
		if !r.HasAxis(nextAxis) {
			return nil, naming.WithContext("axis", nextAxis, fmt.Errorf("chained through property %q: %w", prop, ErrNotFound))
		}
		nextIdx := make([]int, len(idx))
		for k, srcIdx := range idx {
			v, err := vec.At(srcIdx)
			if err != nil {
				return nil, err
			}
			entry, ok := v.String()
			if !ok {
				return nil, naming.WithContext("property", prop, naming.WithContext("axis", axis,
					fmt.Errorf("chained value is not a string entry name: %w", ErrKindMismatch)))
			}
			n, err := r.EntryIndex(nextAxis, entry)
			if err != nil {
				return nil, naming.WithContext("axis", nextAxis, err)
			}
			nextIdx[k] = n
		}

		axis = nextAxis
		idx = nextIdx
	}

	// unreachable: the loop above always returns on its last iteration.
	return nil, fmt.Errorf("eval.resolveChain: %w", ErrNotFound)
}

// resolveChainOne is resolveChain specialized to a single starting index,
// returning the one resulting Scalar (for VectorEntryLookup).
func resolveChainOne(r repo.Reader, baseAxis string, path ast.Path, index int) (storage.Scalar, error) {
	arr, err := resolveChain(r, baseAxis, path, []int{index})
	if err != nil {
		return storage.Scalar{}, err
	}

	return arr.At(0)
}

// allIndices returns [0, n).
func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}

	return out
}
