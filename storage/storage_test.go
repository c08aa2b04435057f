package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daf-project/daf/layout"
	"github.com/daf-project/daf/storage"
)

func TestScalarPresent(t *testing.T) {
	s := storage.NewString(`hi`)
	assert.Equal(t, `"hi"`, s.Present())

	b := storage.NewBool(true)
	assert.Equal(t, "true", b.Present())

	i, err := storage.NewInt(32, -7)
	require.NoError(t, err)
	assert.Equal(t, "-7", i.Present())
}

func TestArraySetAtRoundTrip(t *testing.T) {
	a, err := storage.NewArray(storage.KindFloat64, 3)
	require.NoError(t, err)
	for i, v := range []float64{1.5, 2.5, 3.5} {
		require.NoError(t, a.Set(i, storage.NewFloat64(v)))
	}
	got, err := a.At(1)
	require.NoError(t, err)
	f, ok := got.Float64()
	require.True(t, ok)
	assert.Equal(t, 2.5, f)

	_, err = a.At(99)
	assert.ErrorIs(t, err, storage.ErrIndexOutOfRange)
}

func TestArrayKindMismatch(t *testing.T) {
	a, err := storage.NewArray(storage.KindInt32, 2)
	require.NoError(t, err)
	err = a.Set(0, storage.NewString("nope"))
	assert.ErrorIs(t, err, storage.ErrKindMismatch)
}

func TestDenseMatrixRelayoutRoundTrip(t *testing.T) {
	m, err := storage.NewDenseMatrix(layout.DenseRowMajor, 2, 3, storage.KindFloat64)
	require.NoError(t, err)
	want := [][]float64{{1, 2, 3}, {4, 5, 6}}
	for r := 0; r < 2; r++ {
		for c := 0; c < 3; c++ {
			require.NoError(t, m.Set(r, c, storage.NewFloat64(want[r][c])))
		}
	}

	colMajor, err := m.Relayout(layout.Columns)
	require.NoError(t, err)
	assert.Equal(t, layout.DenseColMajor, colMajor.Form())

	back, err := colMajor.Relayout(layout.Rows)
	require.NoError(t, err)
	for r := 0; r < 2; r++ {
		for c := 0; c < 3; c++ {
			v, err := back.At(r, c)
			require.NoError(t, err)
			f, _ := v.Float64()
			assert.Equal(t, want[r][c], f)
		}
	}
}

func TestSparseCSCRelayoutRoundTrip(t *testing.T) {
	// 3x3 matrix with non-zeros at (0,0)=1, (2,1)=2, (1,2)=3.
	vals, err := storage.NewArray(storage.KindFloat64, 3)
	require.NoError(t, err)
	require.NoError(t, vals.Set(0, storage.NewFloat64(1)))
	require.NoError(t, vals.Set(1, storage.NewFloat64(2)))
	require.NoError(t, vals.Set(2, storage.NewFloat64(3)))

	m, err := storage.NewSparseCSC(3, 3, []int{0, 2, 1}, []int{0, 1, 2}, vals, storage.KindInt32)
	require.NoError(t, err)
	assert.Equal(t, layout.SparseCSC, m.Form())
	assert.Equal(t, layout.Columns, m.MajorAxis())

	csr, err := m.Relayout(layout.Rows)
	require.NoError(t, err)
	assert.Equal(t, layout.SparseCSR, csr.Form())

	for _, tc := range []struct{ r, c int; want float64 }{
		{0, 0, 1}, {2, 1, 2}, {1, 2, 3}, {0, 1, 0},
	} {
		v, err := csr.At(tc.r, tc.c)
		require.NoError(t, err)
		f, _ := v.Float64()
		assert.Equal(t, tc.want, f, "at (%d,%d)", tc.r, tc.c)
	}

	back, err := csr.Relayout(layout.Columns)
	require.NoError(t, err)
	assert.Equal(t, layout.SparseCSC, back.Form())
	for _, tc := range []struct{ r, c int; want float64 }{
		{0, 0, 1}, {2, 1, 2}, {1, 2, 3},
	} {
		v, err := back.At(tc.r, tc.c)
		require.NoError(t, err)
		f, _ := v.Float64()
		assert.Equal(t, tc.want, f)
	}
}

func TestIsStorageMatrix(t *testing.T) {
	assert.False(t, storage.IsStorageMatrix(nil))
	m, err := storage.NewDenseMatrix(layout.DenseRowMajor, 1, 1, storage.KindBool)
	require.NoError(t, err)
	assert.True(t, storage.IsStorageMatrix(m))
}
