package naming_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/daf-project/daf/naming"
)

func TestUniqueName(t *testing.T) {
	snap := naming.SnapshotCounters()
	defer naming.RestoreCounters(snap)

	a := naming.UniqueName("cell")
	b := naming.UniqueName("cell")
	c := naming.UniqueName("cell")
	assert.Equal(t, "cell", a)
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, b, c)
}

func TestWithContext(t *testing.T) {
	base := errors.New("boom")
	err := naming.WithContext("axis", "cell", base)
	assert.ErrorIs(t, err, base)
	assert.Contains(t, err.Error(), `for the axis "cell"`)

	stacked := naming.WithContext("property", "age", err)
	assert.ErrorIs(t, stacked, base)
	assert.Contains(t, stacked.Error(), `for the property "age"`)
	assert.Contains(t, stacked.Error(), `for the axis "cell"`)
}
