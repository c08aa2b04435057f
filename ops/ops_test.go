package ops_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daf-project/daf/layout"
	"github.com/daf-project/daf/ops"
	"github.com/daf-project/daf/storage"
)

func floatArray(vals ...float64) *storage.Array {
	a, _ := storage.NewArray(storage.KindFloat64, len(vals))
	for i, v := range vals {
		_ = a.Set(i, storage.NewFloat64(v))
	}

	return a
}

func TestAbsAndSquare(t *testing.T) {
	abs, err := ops.ElementWiseFromText("Abs", "")
	require.NoError(t, err)
	out, err := abs.Apply(floatArray(-1, 2, -3))
	require.NoError(t, err)
	vals, _ := out.AsFloat64Slice()
	assert.Equal(t, []float64{1, 2, 3}, vals)

	sq, err := ops.ElementWiseFromText("Square", "")
	require.NoError(t, err)
	out, err = sq.Apply(floatArray(10, 20, 30))
	require.NoError(t, err)
	vals, _ = out.AsFloat64Slice()
	assert.Equal(t, []float64{100, 400, 900}, vals)
}

func TestClampRequiresParams(t *testing.T) {
	_, err := ops.ElementWiseFromText("Clamp", "min=0")
	assert.ErrorIs(t, err, ops.ErrMissingParameter)

	clamp, err := ops.ElementWiseFromText("Clamp", "min=0, max=10")
	require.NoError(t, err)
	out, err := clamp.Apply(floatArray(-5, 5, 50))
	require.NoError(t, err)
	vals, _ := out.AsFloat64Slice()
	assert.Equal(t, []float64{0, 5, 10}, vals)
}

func TestUnknownParameterRejected(t *testing.T) {
	_, err := ops.ElementWiseFromText("Abs", "bogus=1")
	assert.ErrorIs(t, err, ops.ErrUnknownParameter)
}

func TestUnknownOperation(t *testing.T) {
	_, err := ops.ElementWiseFromText("DoesNotExist", "")
	assert.ErrorIs(t, err, ops.ErrUnknownOperation)
}

func TestDoubleRegistrationRejected(t *testing.T) {
	err := ops.RegisterElementWise("Abs", ops.Schema{}, func(p ops.Params) (ops.ElementWise, error) { return nil, nil })
	assert.ErrorIs(t, err, ops.ErrAlreadyRegistered)
}

func TestSumReductionVector(t *testing.T) {
	sum, err := ops.ReductionFromText("Sum", "")
	require.NoError(t, err)
	v, err := sum.ApplyVector(floatArray(10, 20, 30))
	require.NoError(t, err)
	f, _ := v.Float64()
	assert.Equal(t, 60.0, f)
}

func TestSumReductionMatrixAlongColumns(t *testing.T) {
	m, err := storage.NewDenseMatrix(layout.DenseRowMajor, 3, 3, storage.KindFloat64)
	require.NoError(t, err)
	grid := [][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			require.NoError(t, m.Set(r, c, storage.NewFloat64(grid[r][c])))
		}
	}
	sum, err := ops.ReductionFromText("Sum", "axis=Columns")
	require.NoError(t, err)
	out, err := sum.ApplyMatrix(m, ops.AxisParam(mustParams(t, "Sum", "axis=Columns")))
	require.NoError(t, err)
	vals, _ := out.AsFloat64Slice()
	assert.Equal(t, []float64{6, 15, 24}, vals)
}

func mustParams(t *testing.T, name, text string) ops.Params {
	t.Helper()
	schema, err := ops.ReductionSchema(name)
	require.NoError(t, err)
	p, err := ops.ParseParams(schema, text)
	require.NoError(t, err)

	return p
}
