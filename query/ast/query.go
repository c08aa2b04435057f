package ast

import (
	"fmt"

	"github.com/daf-project/daf/query/lexer"
)

// Query is the unified query AST: a base Lookup plus zero or more chained
// operations (spec §4.I's "%> eltwise_operation*" tail, generalized to
// also carry reductions — see the package doc for why MatrixQuery,
// VectorQuery, and ScalarQuery share one Go type).
type Query struct {
	Base Lookup
	Ops  []OpCall
	Text string // the original query string, for error context and Canonical
}

// Parse lexes and parses query into a Query AST. It accepts any of the
// three query kinds (Matrix/Vector/Scalar); the evaluator discovers the
// actual kind by inspecting Base.ResultKind() and the effect of each OpCall.
func Parse(query string) (*Query, error) {
	root, err := lexer.Parse(query)
	if err != nil {
		return nil, err
	}

	base, ops, err := flattenPipe(root)
	if err != nil {
		return nil, err
	}
	lookup, err := parseLookup(base)
	if err != nil {
		return nil, err
	}

	return &Query{Base: lookup, Ops: ops, Text: query}, nil
}

// flattenPipe unwinds a left-associative chain of "%>" BinaryExprs into
// (innermost base expression, ordered operation calls).
func flattenPipe(e lexer.Expression) (lexer.Expression, []OpCall, error) {
	bin, ok := e.(*lexer.BinaryExpr)
	if !ok || bin.Op != "%>" {
		return e, nil, nil
	}

	base, ops, err := flattenPipe(bin.Left)
	if err != nil {
		return nil, nil, err
	}
	call, err := parseOpCall(bin.Right)
	if err != nil {
		return nil, nil, err
	}

	return base, append(ops, call), nil
}

// parseLookup dispatches the base expression (with "%>" already stripped)
// to one of the six Lookup shapes.
func parseLookup(e lexer.Expression) (Lookup, error) {
	bin, ok := e.(*lexer.BinaryExpr)
	if !ok || bin.Op != "@" {
		name, err := identName(e)
		if err != nil {
			return nil, newError(e.Position(), "expected a scalar name or a '@' lookup")
		}

		return &ScalarPropertyLookup{Name: name}, nil
	}

	left, right := bin.Left, bin.Right

	if tuple, ok := right.(*lexer.TupleExpr); ok {
		if len(tuple.Items) != 2 {
			return nil, newError(tuple.Pos, fmt.Sprintf("expected 2 items in axis pair, got %d", len(tuple.Items)))
		}
		property, err := identName(left)
		if err != nil {
			return nil, err
		}

		return parseMatrixLookup(property, tuple.Items[0], tuple.Items[1])
	}

	// Non-tuple right side: either a VectorPropertyLookup (axis-like right)
	// or a VectorEntryLookup (literal-entry right).
	path, err := parsePath(left)
	if err != nil {
		return nil, err
	}
	if entry, ok := fixedEntry(right); ok {
		if len(path) < 1 {
			return nil, newError(right.Position(), "expected a property path")
		}

		return &VectorEntryLookup{Path: path[1:], Axis: path[0], Entry: entry}, nil
	}
	axis, err := parseFilteredAxis(right)
	if err != nil {
		return nil, err
	}

	return &VectorPropertyLookup{Path: path, Axis: axis}, nil
}

// parseMatrixLookup handles the three shapes sharing "property @ (X, Y)":
// MatrixPropertyLookup (both sides axis-like), MatrixSliceLookup (one side
// a literal entry), MatrixEntryLookup (both sides literal entries).
func parseMatrixLookup(property string, left, right lexer.Expression) (Lookup, error) {
	leftEntry, leftIsEntry := fixedEntry(left)
	rightEntry, rightIsEntry := fixedEntry(right)

	switch {
	case leftIsEntry && rightIsEntry:
		return &MatrixEntryLookup{Property: property, RowEntry: leftEntry, ColEntry: rightEntry}, nil
	case rightIsEntry:
		filtered, err := parseFilteredAxis(left)
		if err != nil {
			return nil, err
		}

		return &MatrixSliceLookup{Property: property, Filtered: filtered, FilteredIsRows: true, FixedEntry: rightEntry}, nil
	case leftIsEntry:
		filtered, err := parseFilteredAxis(right)
		if err != nil {
			return nil, err
		}

		return &MatrixSliceLookup{Property: property, Filtered: filtered, FilteredIsRows: false, FixedEntry: leftEntry}, nil
	default:
		rows, err := parseFilteredAxis(left)
		if err != nil {
			return nil, err
		}
		cols, err := parseFilteredAxis(right)
		if err != nil {
			return nil, err
		}

		return &MatrixPropertyLookup{Property: property, Rows: rows, Cols: cols}, nil
	}
}
