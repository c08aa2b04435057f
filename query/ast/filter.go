package ast

import (
	"fmt"

	"github.com/daf-project/daf/query/lexer"
)

// FilterOp combines two AxisFilter results (spec §4.I AxisFilter).
type FilterOp uint8

const (
	// And is logical conjunction.
	And FilterOp = iota
	// Or is logical disjunction.
	Or
	// Xor is exclusive-or.
	Xor
)

func filterOpFromToken(text string) (FilterOp, bool) {
	switch text {
	case "and":
		return And, true
	case "or":
		return Or, true
	case "xor":
		return Xor, true
	default:
		return 0, false
	}
}

// CmpOp is a PropertyComparison's operator (spec §4.I).
type CmpOp uint8

const (
	Eq CmpOp = iota
	Ne
	Lt
	Le
	Gt
	Ge
	Match
	NotMatch
)

func cmpOpFromToken(text string) (CmpOp, bool) {
	switch text {
	case "=":
		return Eq, true
	case "!=":
		return Ne, true
	case "<":
		return Lt, true
	case "<=":
		return Le, true
	case ">":
		return Gt, true
	case ">=":
		return Ge, true
	case "match":
		return Match, true
	case "!match":
		return NotMatch, true
	default:
		return 0, false
	}
}

// LiteralKind selects which field of Literal is meaningful.
type LiteralKind uint8

const (
	LiteralString LiteralKind = iota
	LiteralNumber
)

// Literal is the right-hand side of a PropertyComparison, still in
// surface-text form; the evaluator parses it into the compared vector's
// element Kind (spec §4.J.4: "parse the literal into the element type").
type Literal struct {
	Kind LiteralKind
	Str  string
	Num  float64
}

// PropertyComparison is a comparison against a Literal (spec §4.I).
type PropertyComparison struct {
	Op      CmpOp
	Literal Literal
}

// AxisLookup evaluates a Path to a vector, optionally inverted, optionally
// compared against a Literal (spec §4.I).
type AxisLookup struct {
	Path       Path
	Invert     bool
	Comparison *PropertyComparison
}

// FilterExpr is a boolean combinator tree over AxisLookup leaves, used to
// build a FilteredAxis's mask. A nil FilterExpr means "no filter": keep
// every entry (spec §4.J.2's "absent filter list yields no mask").
type FilterExpr interface {
	isFilterExpr()
}

// FilterLeaf is one AxisFilter: an AxisLookup, possibly inverted.
type FilterLeaf struct {
	Lookup AxisLookup
}

func (*FilterLeaf) isFilterExpr() {}

// FilterCombine combines two FilterExprs with And/Or/Xor.
type FilterCombine struct {
	Op          FilterOp
	Left, Right FilterExpr
}

func (*FilterCombine) isFilterExpr() {}

// FilteredAxis names an axis and an optional filter over it (spec §4.I).
type FilteredAxis struct {
	Axis   string
	Filter FilterExpr
}

// parseFilteredAxis parses an "axis-like" expression: a bare axis name, or
// axis_name "&" filterExpr.
func parseFilteredAxis(e lexer.Expression) (FilteredAxis, error) {
	if bin, ok := e.(*lexer.BinaryExpr); ok && bin.Op == "&" {
		axisName, err := identName(bin.Left)
		if err != nil {
			return FilteredAxis{}, err
		}
		filter, err := parseFilterExpr(bin.Right)
		if err != nil {
			return FilteredAxis{}, err
		}

		return FilteredAxis{Axis: axisName, Filter: filter}, nil
	}

	axisName, err := identName(e)
	if err != nil {
		return FilteredAxis{}, err
	}

	return FilteredAxis{Axis: axisName}, nil
}

func identName(e lexer.Expression) (string, error) {
	switch v := e.(type) {
	case *lexer.IdentExpr:
		return v.Name, nil
	case *lexer.StringExpr:
		return v.Value, nil
	default:
		return "", newError(e.Position(), "expected an axis name")
	}
}

// parseFilterExpr parses the boolean-combinator tree to the right of '&':
// a chain of AxisFilter terms joined by and/or/xor (spec §4.I AxisFilter).
func parseFilterExpr(e lexer.Expression) (FilterExpr, error) {
	if bin, ok := e.(*lexer.BinaryExpr); ok {
		if op, isFilterOp := filterOpFromToken(bin.Op); isFilterOp {
			left, err := parseFilterExpr(bin.Left)
			if err != nil {
				return nil, err
			}
			right, err := parseFilterExpr(bin.Right)
			if err != nil {
				return nil, err
			}

			return &FilterCombine{Op: op, Left: left, Right: right}, nil
		}
	}

	leaf, err := parseAxisLookup(e)
	if err != nil {
		return nil, err
	}

	return &FilterLeaf{Lookup: leaf}, nil
}

// parseAxisLookup parses one AxisFilter leaf: an optional leading "not",
// a Path, and an optional trailing comparison (spec §4.I AxisLookup).
func parseAxisLookup(e lexer.Expression) (AxisLookup, error) {
	if un, ok := e.(*lexer.UnaryExpr); ok && un.Op == "not" {
		inner, err := parseAxisLookup(un.Operand)
		if err != nil {
			return AxisLookup{}, err
		}
		inner.Invert = !inner.Invert

		return inner, nil
	}

	if bin, ok := e.(*lexer.BinaryExpr); ok {
		if cmp, isCmp := cmpOpFromToken(bin.Op); isCmp {
			path, err := parsePath(bin.Left)
			if err != nil {
				return AxisLookup{}, err
			}
			lit, err := parseLiteral(bin.Right)
			if err != nil {
				return AxisLookup{}, err
			}

			return AxisLookup{Path: path, Comparison: &PropertyComparison{Op: cmp, Literal: lit}}, nil
		}
	}

	path, err := parsePath(e)
	if err != nil {
		return AxisLookup{}, err
	}

	return AxisLookup{Path: path}, nil
}

func parseLiteral(e lexer.Expression) (Literal, error) {
	switch v := e.(type) {
	case *lexer.StringExpr:
		return Literal{Kind: LiteralString, Str: v.Value}, nil
	case *lexer.IdentExpr:
		return Literal{Kind: LiteralString, Str: v.Name}, nil
	case *lexer.NumberExpr:
		return Literal{Kind: LiteralNumber, Num: v.Value}, nil
	default:
		return Literal{}, newError(e.Position(), fmt.Sprintf("expected a literal value, got %T", e))
	}
}
