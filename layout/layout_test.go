package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/daf-project/daf/layout"
)

func TestMajorMinorAxis(t *testing.T) {
	assert.Equal(t, layout.Rows, layout.MajorAxis(layout.DenseRowMajor))
	assert.Equal(t, layout.Columns, layout.MajorAxis(layout.DenseColMajor))
	assert.Equal(t, layout.Columns, layout.MajorAxis(layout.SparseCSC))
	assert.Equal(t, layout.Rows, layout.MajorAxis(layout.SparseCSR))

	assert.Equal(t, layout.Columns, layout.MinorAxis(layout.DenseRowMajor))
	assert.Equal(t, layout.Rows, layout.OtherAxis(layout.Columns))
}

func TestPolicyCheckAccess(t *testing.T) {
	saved := layout.SnapshotPolicy()
	defer layout.RestorePolicy(saved)

	layout.SetPolicy(layout.Ignore)
	assert.NoError(t, layout.CheckAccess(layout.DenseColMajor, layout.Rows, "test"))

	layout.SetPolicy(layout.Warn)
	assert.NoError(t, layout.CheckAccess(layout.DenseColMajor, layout.Rows, "test"))

	layout.SetPolicy(layout.Error)
	err := layout.CheckAccess(layout.DenseColMajor, layout.Rows, "test")
	assert.ErrorIs(t, err, layout.ErrInefficientAction)

	// Major-axis traversal never triggers the policy, even under Error.
	assert.NoError(t, layout.CheckAccess(layout.DenseColMajor, layout.Columns, "test"))
}
