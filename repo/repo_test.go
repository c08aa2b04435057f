package repo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daf-project/daf/layout"
	"github.com/daf-project/daf/repo"
	"github.com/daf-project/daf/storage"
)

func newFixture(t *testing.T) *repo.Repository {
	t.Helper()
	r := repo.New("demo")
	require.NoError(t, r.AddAxis("cell", []string{"c1", "c2", "c3"}))
	require.NoError(t, r.AddAxis("gene", []string{"g1", "g2"}))

	return r
}

func TestReservedNameScalar(t *testing.T) {
	r := newFixture(t)
	assert.True(t, r.HasScalar("name"))
	v, err := r.GetScalar("name")
	require.NoError(t, err)
	s, _ := v.String()
	assert.Equal(t, "demo", s)

	err = r.SetScalar("name", storage.NewString("other"))
	assert.ErrorIs(t, err, repo.ErrReservedName)
}

func TestAxisInvariants(t *testing.T) {
	r := newFixture(t)
	err := r.AddAxis("cell", []string{"x"})
	require.Error(t, err)

	err = r.AddAxis("dup", []string{"a", "a"})
	assert.ErrorIs(t, err, repo.ErrTypeMismatch)

	idx, err := r.EntryIndex("cell", "c2")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestVectorBroadcastAndLength(t *testing.T) {
	r := newFixture(t)
	require.NoError(t, r.SetVector("cell", "age", storage.NewFloat64(1)))
	arr, err := r.GetVector("cell", "age")
	require.NoError(t, err)
	vals, _ := arr.AsFloat64Slice()
	assert.Equal(t, []float64{1, 1, 1}, vals)

	bad, _ := storage.NewArray(storage.KindFloat64, 2)
	err = r.SetVector("cell", "age", bad)
	assert.Error(t, err)
}

func TestFreezeBlocksMutation(t *testing.T) {
	r := newFixture(t)
	r.Freeze()
	assert.True(t, r.IsFrozen())
	err := r.SetVector("cell", "age", storage.NewFloat64(2))
	assert.ErrorIs(t, err, repo.ErrFrozen)

	r.Unfreeze()
	assert.NoError(t, r.SetVector("cell", "age", storage.NewFloat64(2)))
}

func TestReadOnlyExposesOnlyReads(t *testing.T) {
	r := newFixture(t)
	require.NoError(t, r.SetVector("cell", "age", storage.NewFloat64(9)))
	ro := r.ReadOnly()
	assert.True(t, ro.HasVector("cell", "age"))
	_, err := ro.GetVector("cell", "age")
	require.NoError(t, err)
}

func TestMatrixRelayoutCached(t *testing.T) {
	r := newFixture(t)
	dense, err := storage.NewDenseMatrix(layout.DenseRowMajor, 3, 2, storage.KindFloat64)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			require.NoError(t, dense.Set(i, j, storage.NewFloat64(float64(i*2+j))))
		}
	}
	require.NoError(t, r.SetMatrix("cell", "gene", "umis", dense))

	colMajor, err := r.GetMatrixLayout("cell", "gene", "umis", layout.Columns)
	require.NoError(t, err)
	assert.Equal(t, layout.Columns, colMajor.MajorAxis())

	again, err := r.GetMatrixLayout("cell", "gene", "umis", layout.Columns)
	require.NoError(t, err)
	assert.Same(t, colMajor, again)

	// overwriting the matrix must invalidate the cached relayout.
	require.NoError(t, r.SetMatrix("cell", "gene", "umis", storage.NewFloat64(0)))
	fresh, err := r.GetMatrixLayout("cell", "gene", "umis", layout.Columns)
	require.NoError(t, err)
	assert.NotSame(t, colMajor, fresh)
}

func TestDeleteAxisCascades(t *testing.T) {
	r := newFixture(t)
	require.NoError(t, r.SetVector("cell", "age", storage.NewFloat64(1)))
	require.NoError(t, r.DeleteAxis("cell"))
	assert.False(t, r.HasAxis("cell"))
	_, err := r.GetVector("cell", "age")
	assert.Error(t, err)
}
