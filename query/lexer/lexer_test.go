package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daf-project/daf/query/lexer"
)

func TestLexBasicTokens(t *testing.T) {
	toks, err := lexer.Lex(`cell.age > 15 and tissue = "lung"`)
	require.NoError(t, err)

	var kinds []lexer.Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []lexer.Kind{
		lexer.Ident, lexer.Op, lexer.Ident, lexer.Op, lexer.Number,
		lexer.Op, lexer.Ident, lexer.Op, lexer.String, lexer.EOF,
	}, kinds)
}

func TestLexCallCapturesRawArgs(t *testing.T) {
	toks, err := lexer.Lex(`Sum(axis=Columns)`)
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, lexer.Call, toks[0].Kind)
	assert.Equal(t, "Sum", toks[0].Text)
	assert.Equal(t, "axis=Columns", toks[0].Arg)
}

func TestLexOperators(t *testing.T) {
	toks, err := lexer.Lex(`!= <= >= != !match match %>`)
	require.NoError(t, err)
	var texts []string
	for _, tok := range toks {
		if tok.Kind == lexer.Op {
			texts = append(texts, tok.Text)
		}
	}
	assert.Equal(t, []string{"!=", "<=", ">=", "!=", "!match", "match", "%>"}, texts)
}

func TestLexNegativeNumberVsMinusOperator(t *testing.T) {
	toks, err := lexer.Lex(`age > -5`)
	require.NoError(t, err)
	require.Len(t, toks, 4)
	assert.Equal(t, lexer.Number, toks[2].Kind)
	assert.Equal(t, float64(-5), toks[2].Number)
}

func TestLexQuotedEscapeRoundTrip(t *testing.T) {
	raw := `gene name/weird`
	escaped := lexer.EscapeQuery(raw)
	assert.NotEqual(t, raw, escaped)

	back, err := lexer.UnescapeQuery(escaped)
	require.NoError(t, err)
	assert.Equal(t, raw, back)
}

func TestEscapeQueryIdempotentOnSafeString(t *testing.T) {
	assert.Equal(t, "plainident", lexer.EscapeQuery("plainident"))
}

func TestLexUnterminatedQuoteErrors(t *testing.T) {
	_, err := lexer.Lex(`"unterminated`)
	assert.ErrorIs(t, err, lexer.ErrParse)
}

func TestParseBinaryPrecedence(t *testing.T) {
	expr, err := lexer.Parse(`a and b or c`)
	require.NoError(t, err)
	top, ok := expr.(*lexer.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "or", top.Op)

	left, ok := top.Left.(*lexer.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "and", left.Op)
}

func TestParseTuple(t *testing.T) {
	expr, err := lexer.Parse(`(cell, gene)`)
	require.NoError(t, err)
	tup, ok := expr.(*lexer.TupleExpr)
	require.True(t, ok)
	assert.Len(t, tup.Items, 2)
}

func TestParseUnexpectedTrailingErrors(t *testing.T) {
	_, err := lexer.Parse(`a b`)
	assert.ErrorIs(t, err, lexer.ErrParse)
}

func TestParseCallExpr(t *testing.T) {
	expr, err := lexer.Parse(`Clamp(min=0, max=10)`)
	require.NoError(t, err)
	call, ok := expr.(*lexer.CallExpr)
	require.True(t, ok)
	assert.Equal(t, "Clamp", call.Name)
	assert.Equal(t, "min=0, max=10", call.Args)
}
