package ast

import (
	"fmt"

	"github.com/daf-project/daf/query/lexer"
)

// ResultKind is the static shape a Lookup naturally produces, before any
// trailing operation chain narrows it (spec §4.I: Matrix/Vector/Scalar
// query kinds).
type ResultKind uint8

const (
	KindMatrix ResultKind = iota
	KindVector
	KindScalar
)

func (k ResultKind) String() string {
	switch k {
	case KindMatrix:
		return "Matrix"
	case KindVector:
		return "Vector"
	default:
		return "Scalar"
	}
}

// Lookup is the base (innermost) node of a Query: one of the six
// data-lookup shapes spec §4.I enumerates.
type Lookup interface {
	ResultKind() ResultKind
}

// MatrixPropertyLookup fetches a named matrix filtered by a (rows, cols)
// FilteredAxis pair (spec: "property_name @ (FilteredAxis, FilteredAxis)").
type MatrixPropertyLookup struct {
	Property   string
	Rows, Cols FilteredAxis
}

func (*MatrixPropertyLookup) ResultKind() ResultKind { return KindMatrix }

// VectorPropertyLookup fetches a chained-property vector over a
// FilteredAxis (spec: "AxisLookup @ FilteredAxis").
type VectorPropertyLookup struct {
	Path Path
	Axis FilteredAxis
}

func (*VectorPropertyLookup) ResultKind() ResultKind { return KindVector }

// MatrixSliceLookup fetches one row or column of a matrix, filtered along
// the free dimension (spec: "property_name @ (FilteredAxis, AxisEntry)").
// FilteredIsRows selects whether Filtered names the row or column axis;
// the other axis is fixed at FixedEntry.
type MatrixSliceLookup struct {
	Property       string
	Filtered       FilteredAxis
	FilteredIsRows bool
	FixedEntry     string
}

func (*MatrixSliceLookup) ResultKind() ResultKind { return KindVector }

// ScalarPropertyLookup reads a named repository scalar directly.
type ScalarPropertyLookup struct {
	Name string
}

func (*ScalarPropertyLookup) ResultKind() ResultKind { return KindScalar }

// VectorEntryLookup reads one entry of a chained-property vector.
type VectorEntryLookup struct {
	Path  Path
	Axis  string
	Entry string
}

func (*VectorEntryLookup) ResultKind() ResultKind { return KindScalar }

// MatrixEntryLookup reads one (row, col) entry of a named matrix directly.
type MatrixEntryLookup struct {
	Property           string
	RowEntry, ColEntry string
}

func (*MatrixEntryLookup) ResultKind() ResultKind { return KindScalar }

// OpCall is one link of a query's trailing "%>" operation chain: an
// element-wise or reduction operation name plus its raw, un-lexed
// parameter text (handed to the ops package's ParseParams).
type OpCall struct {
	Name      string
	ParamText string
	Pos       int
}

// parseOpCall accepts either a Call ("Sum(axis=Columns)") or a bare Ident
// ("Abs", equivalent to "Abs()") as one pipeline stage.
func parseOpCall(e lexer.Expression) (OpCall, error) {
	switch v := e.(type) {
	case *lexer.CallExpr:
		return OpCall{Name: v.Name, ParamText: v.Args, Pos: v.Pos}, nil
	case *lexer.IdentExpr:
		return OpCall{Name: v.Name, Pos: v.Pos}, nil
	default:
		return OpCall{}, newError(e.Position(), fmt.Sprintf("expected an operation name, got %T", e))
	}
}

// fixedEntry reports whether e is a literal axis-entry name (a quoted
// string or bare ident used as a literal, not as an axis name). The
// grammar tells the two apart by tuple position, not by token shape, so
// callers pass this only where a literal is structurally expected.
func fixedEntry(e lexer.Expression) (string, bool) {
	switch v := e.(type) {
	case *lexer.StringExpr:
		return v.Value, true
	default:
		return "", false
	}
}
