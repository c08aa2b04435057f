package memdb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daf-project/daf/format"
	"github.com/daf-project/daf/layout"
	"github.com/daf-project/daf/memdb"
	"github.com/daf-project/daf/storage"
)

func TestScalarRoundTrip(t *testing.T) {
	m := memdb.New("demo")
	assert.False(t, m.HasScalar("version"))

	v3, err := storage.NewInt(64, 3)
	require.NoError(t, err)
	require.NoError(t, m.SetScalar("version", v3))
	assert.True(t, m.HasScalar("version"))
	got, err := m.GetScalar("version")
	require.NoError(t, err)
	v, _ := got.Int64()
	assert.Equal(t, int64(3), v)

	require.NoError(t, m.DeleteScalar("version"))
	assert.False(t, m.HasScalar("version"))

	_, err = m.GetScalar("version")
	assert.ErrorIs(t, err, format.ErrNotFound)
}

func TestAxisAddDeleteCascades(t *testing.T) {
	m := memdb.New("demo")
	require.NoError(t, m.AddAxis("cell", []string{"c1", "c2"}))
	n, err := m.AxisLength("cell")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	arr, _ := storage.NewArray(storage.KindFloat64, 2)
	require.NoError(t, m.SetVector(format.VectorKey{Axis: "cell", Property: "age"}, arr))
	assert.True(t, m.HasVector(format.VectorKey{Axis: "cell", Property: "age"}))

	require.NoError(t, m.DeleteAxis("cell"))
	assert.False(t, m.HasAxis("cell"))
	assert.False(t, m.HasVector(format.VectorKey{Axis: "cell", Property: "age"}))
}

func TestAddAxisDuplicateName(t *testing.T) {
	m := memdb.New("demo")
	require.NoError(t, m.AddAxis("cell", []string{"c1"}))
	err := m.AddAxis("cell", []string{"c2"})
	assert.ErrorIs(t, err, format.ErrAlreadyExists)
}

func TestMatrixRoundTrip(t *testing.T) {
	m := memdb.New("demo")
	require.NoError(t, m.AddAxis("cell", []string{"c1", "c2"}))
	require.NoError(t, m.AddAxis("gene", []string{"g1", "g2", "g3"}))

	dense, err := storage.NewDenseMatrix(layout.DenseRowMajor, 2, 3, storage.KindFloat64)
	require.NoError(t, err)
	require.NoError(t, m.SetMatrix(format.MatrixKey{Rows: "cell", Columns: "gene", Property: "umis"}, dense))

	assert.Contains(t, m.MatrixNames("cell", "gene"), "umis")
	got, err := m.GetMatrix(format.MatrixKey{Rows: "cell", Columns: "gene", Property: "umis"})
	require.NoError(t, err)
	assert.Equal(t, 2, got.Rows())
	assert.Equal(t, 3, got.Cols())
}
