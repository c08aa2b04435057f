package eval_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daf-project/daf"
	"github.com/daf-project/daf/layout"
	"github.com/daf-project/daf/ops"
	"github.com/daf-project/daf/query/ast"
	"github.com/daf-project/daf/repo"
	"github.com/daf-project/daf/storage"
)

// demoRepository builds the small repository spec.md §8 walks through its
// end-to-end scenarios against: three cells with ages and a type, a type
// axis with a color, and a dense cell-by-cell umi count matrix.
func demoRepository(t *testing.T) *repo.Repository {
	t.Helper()

	r := daf.New("pbmc3k")
	require.NoError(t, r.AddAxis("cell", []string{"c1", "c2", "c3"}))
	require.NoError(t, r.SetVector("cell", "age", intArray(t, 10, 20, 30)))

	require.NoError(t, r.AddAxis("type", []string{"T", "B"}))
	require.NoError(t, r.SetVector("cell", "type", stringArray(t, "T", "B", "T")))
	require.NoError(t, r.SetVector("type", "color", stringArray(t, "red", "blue")))

	umi, err := storage.NewDenseMatrix(layout.DenseRowMajor, 3, 3, storage.KindInt64)
	require.NoError(t, err)
	rows := [][]int64{{0, 1, 2}, {3, 4, 5}, {6, 7, 8}}
	for i := range rows {
		for j, v := range rows[i] {
			sc, err := storage.NewInt(64, v)
			require.NoError(t, err)
			require.NoError(t, umi.Set(i, j, sc))
		}
	}
	require.NoError(t, r.SetMatrix("cell", "cell", "umi", umi))

	return r
}

func intArray(t *testing.T, values ...int64) *storage.Array {
	t.Helper()
	a, err := storage.NewArray(storage.KindInt64, len(values))
	require.NoError(t, err)
	for i, v := range values {
		sc, err := storage.NewInt(64, v)
		require.NoError(t, err)
		require.NoError(t, a.Set(i, sc))
	}

	return a
}

func stringArray(t *testing.T, values ...string) *storage.Array {
	t.Helper()
	a, err := storage.NewArray(storage.KindString, len(values))
	require.NoError(t, err)
	for i, v := range values {
		require.NoError(t, a.Set(i, storage.NewString(v)))
	}

	return a
}

// Scenario 1: a filtered vector lookup returns the matching entries' values
// in axis order, spanning only the entries the filter keeps.
func TestQueryFilteredVectorLookup(t *testing.T) {
	r := demoRepository(t)

	result, err := daf.Query(r, "age @ cell & age > 15")
	require.NoError(t, err)
	require.Equal(t, ast.KindVector, result.Kind)
	require.False(t, result.Absent)
	require.Equal(t, 2, result.Vector.Len())

	vals, ok := result.Vector.AsFloat64Slice()
	require.True(t, ok)
	assert.Equal(t, []float64{20, 30}, vals)
}

// Scenario 2: a chained property lookup follows cell.type into the type
// axis's color vector, one hop per entry.
func TestQueryChainedPropertyLookup(t *testing.T) {
	r := demoRepository(t)

	result, err := daf.Query(r, "type.color @ cell")
	require.NoError(t, err)
	require.Equal(t, ast.KindVector, result.Kind)
	require.False(t, result.Absent)
	require.Equal(t, 3, result.Vector.Len())

	for i, want := range []string{"red", "blue", "red"} {
		sc, err := result.Vector.At(i)
		require.NoError(t, err)
		got, ok := sc.String()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

// Scenario 3: a matrix-pair lookup piped through a reduction collapses the
// umi matrix's Columns axis to one sum per cell.
func TestQueryMatrixReduction(t *testing.T) {
	r := demoRepository(t)

	result, err := daf.Query(r, "umi @ (cell, cell) %> Sum(axis=Columns)")
	require.NoError(t, err)
	require.Equal(t, ast.KindVector, result.Kind)
	require.False(t, result.Absent)

	vals, ok := result.Vector.AsFloat64Slice()
	require.True(t, ok)
	assert.Equal(t, []float64{3, 12, 21}, vals)
}

// Scenario 4: a filter matching nothing yields the Absent sentinel rather
// than an error or an empty-but-present vector.
func TestQueryEmptyFilterIsAbsent(t *testing.T) {
	r := demoRepository(t)

	result, err := daf.Query(r, "age @ cell & age > 1000")
	require.NoError(t, err)
	require.Equal(t, ast.KindVector, result.Kind)
	assert.True(t, result.Absent)
}

// Scenario 5: freezing a repository rejects mutation until explicitly
// unfrozen; queries are unaffected either way.
func TestFreezeRejectsMutation(t *testing.T) {
	r := demoRepository(t)

	r.Freeze()
	err := r.SetScalar("note", storage.NewString("frozen"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, repo.ErrFrozen))

	result, err := daf.Query(r, "age @ cell & age > 15")
	require.NoError(t, err)
	assert.False(t, result.Absent)

	r.Unfreeze()
	require.NoError(t, r.SetScalar("note", storage.NewString("thawed")))
}

// Scenario 6: element-wise operations are queried by name through the
// same %> pipe syntax as reductions, and the operation registry is
// append-only — re-registering an existing name fails rather than
// replacing it.
func TestQueryElementWiseAndRegistryIsAppendOnly(t *testing.T) {
	r := demoRepository(t)

	result, err := daf.Query(r, "age @ cell %> Square")
	require.NoError(t, err)
	require.Equal(t, ast.KindVector, result.Kind)
	require.False(t, result.Absent)

	vals, ok := result.Vector.AsFloat64Slice()
	require.True(t, ok)
	assert.Equal(t, []float64{100, 400, 900}, vals)

	err = ops.RegisterElementWise("Square", ops.Schema{}, func(ops.Params) (ops.ElementWise, error) {
		return nil, nil
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ops.ErrAlreadyRegistered))
}

// Looking up a name that does not exist at all is always an error, never
// Absent — Absent is reserved for an empty filter mask.
func TestQueryMissingPropertyIsError(t *testing.T) {
	r := demoRepository(t)

	_, err := daf.Query(r, "bogus @ cell")
	require.Error(t, err)
}
