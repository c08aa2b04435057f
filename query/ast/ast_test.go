package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daf-project/daf/query/ast"
)

func TestParseScalarPropertyLookup(t *testing.T) {
	q, err := ast.Parse(`dataset_version`)
	require.NoError(t, err)
	lk, ok := q.Base.(*ast.ScalarPropertyLookup)
	require.True(t, ok)
	assert.Equal(t, "dataset_version", lk.Name)
	assert.Equal(t, ast.KindScalar, q.Base.ResultKind())
}

func TestParseVectorPropertyLookup(t *testing.T) {
	q, err := ast.Parse(`type.color @ cell`)
	require.NoError(t, err)
	lk, ok := q.Base.(*ast.VectorPropertyLookup)
	require.True(t, ok)
	assert.Equal(t, ast.Path{"type", "color"}, lk.Path)
	assert.Equal(t, "cell", lk.Axis.Axis)
	assert.Nil(t, lk.Axis.Filter)
}

func TestParseVectorPropertyLookupWithFilter(t *testing.T) {
	q, err := ast.Parse(`age @ cell & tissue = "lung"`)
	require.NoError(t, err)
	lk, ok := q.Base.(*ast.VectorPropertyLookup)
	require.True(t, ok)
	require.NotNil(t, lk.Axis.Filter)
	leaf, ok := lk.Axis.Filter.(*ast.FilterLeaf)
	require.True(t, ok)
	assert.Equal(t, ast.Path{"tissue"}, leaf.Lookup.Path)
	require.NotNil(t, leaf.Lookup.Comparison)
	assert.Equal(t, ast.Eq, leaf.Lookup.Comparison.Op)
	assert.Equal(t, "lung", leaf.Lookup.Comparison.Literal.Str)
}

func TestParseVectorEntryLookup(t *testing.T) {
	q, err := ast.Parse(`type @ "c1"`)
	require.NoError(t, err)
	lk, ok := q.Base.(*ast.VectorEntryLookup)
	require.True(t, ok)
	assert.Equal(t, "type", lk.Axis)
	assert.Equal(t, "c1", lk.Entry)
	assert.Equal(t, ast.KindScalar, lk.ResultKind())
}

func TestParseMatrixPropertyLookup(t *testing.T) {
	q, err := ast.Parse(`umis @ (cell, gene)`)
	require.NoError(t, err)
	lk, ok := q.Base.(*ast.MatrixPropertyLookup)
	require.True(t, ok)
	assert.Equal(t, "umis", lk.Property)
	assert.Equal(t, "cell", lk.Rows.Axis)
	assert.Equal(t, "gene", lk.Cols.Axis)
}

func TestParseMatrixSliceLookupFixedCol(t *testing.T) {
	q, err := ast.Parse(`umis @ (cell, "g1")`)
	require.NoError(t, err)
	lk, ok := q.Base.(*ast.MatrixSliceLookup)
	require.True(t, ok)
	assert.True(t, lk.FilteredIsRows)
	assert.Equal(t, "g1", lk.FixedEntry)
	assert.Equal(t, "cell", lk.Filtered.Axis)
}

func TestParseMatrixSliceLookupFixedRow(t *testing.T) {
	q, err := ast.Parse(`umis @ ("c1", gene)`)
	require.NoError(t, err)
	lk, ok := q.Base.(*ast.MatrixSliceLookup)
	require.True(t, ok)
	assert.False(t, lk.FilteredIsRows)
	assert.Equal(t, "c1", lk.FixedEntry)
	assert.Equal(t, "gene", lk.Filtered.Axis)
}

func TestParseMatrixEntryLookup(t *testing.T) {
	q, err := ast.Parse(`umis @ ("c1", "g1")`)
	require.NoError(t, err)
	lk, ok := q.Base.(*ast.MatrixEntryLookup)
	require.True(t, ok)
	assert.Equal(t, "c1", lk.RowEntry)
	assert.Equal(t, "g1", lk.ColEntry)
}

func TestParseOpChain(t *testing.T) {
	q, err := ast.Parse(`umis @ (cell, gene) %> Sum(axis=Columns) %> Abs`)
	require.NoError(t, err)
	require.Len(t, q.Ops, 2)
	assert.Equal(t, "Sum", q.Ops[0].Name)
	assert.Equal(t, "axis=Columns", q.Ops[0].ParamText)
	assert.Equal(t, "Abs", q.Ops[1].Name)
	assert.Equal(t, "", q.Ops[1].ParamText)
}

func TestParseCombinedFilter(t *testing.T) {
	q, err := ast.Parse(`age @ cell & (tissue = "lung" and not dead)`)
	require.NoError(t, err)
	lk := q.Base.(*ast.VectorPropertyLookup)
	combine, ok := lk.Axis.Filter.(*ast.FilterCombine)
	require.True(t, ok)
	assert.Equal(t, ast.And, combine.Op)
	right := combine.Right.(*ast.FilterLeaf)
	assert.True(t, right.Lookup.Invert)
}

func TestCanonicalSliceVsEntryDoNotCollapse(t *testing.T) {
	slice, err := ast.Parse(`umis @ (cell, "g1")`)
	require.NoError(t, err)
	canon := ast.Canonical(slice)

	reparsed, err := ast.Parse(canon)
	require.NoError(t, err)
	_, ok := reparsed.Base.(*ast.MatrixSliceLookup)
	assert.True(t, ok, "canonical form of a MatrixSliceLookup must re-parse as a MatrixSliceLookup, got %T", reparsed.Base)

	entry, err := ast.Parse(`umis @ ("c1", "g1")`)
	require.NoError(t, err)
	canonEntry := ast.Canonical(entry)
	reparsedEntry, err := ast.Parse(canonEntry)
	require.NoError(t, err)
	_, ok = reparsedEntry.Base.(*ast.MatrixEntryLookup)
	assert.True(t, ok, "canonical form of a MatrixEntryLookup must re-parse as a MatrixEntryLookup, got %T", reparsedEntry.Base)
}

func TestCanonicalIdentUnquotedWhenSafe(t *testing.T) {
	q, err := ast.Parse(`dataset_version`)
	require.NoError(t, err)
	assert.Equal(t, "dataset_version", ast.Canonical(q))
}

func TestParseBadQueryErrors(t *testing.T) {
	_, err := ast.Parse(`umis @ (cell, gene, extra)`)
	require.Error(t, err)
}
