package eval

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/daf-project/daf/query/ast"
	"github.com/daf-project/daf/storage"
)

// compareScalar evaluates one PropertyComparison against a single stored
// value, parsing lit into v's Kind first (spec §4.J.4). match/!match
// always anchor the pattern as a whole-string match (SPEC_FULL.md's
// resolution of the corresponding Open Question).
func compareScalar(op ast.CmpOp, v storage.Scalar, lit ast.Literal) (bool, error) {
	if op == ast.Match || op == ast.NotMatch {
		return compareMatch(op, v, lit)
	}

	switch {
	case v.Kind() == storage.KindBool:
		return compareBool(op, v, lit)
	case v.Kind() == storage.KindString:
		return compareString(op, v, lit)
	case v.Kind().IsNumeric():
		return compareNumeric(op, v, lit)
	default:
		return false, fmt.Errorf("eval.compareScalar: kind %s: %w", v.Kind(), ErrKindMismatch)
	}
}

func compareMatch(op ast.CmpOp, v storage.Scalar, lit ast.Literal) (bool, error) {
	s, ok := v.String()
	if !ok {
		return false, fmt.Errorf("eval.compareMatch: kind %s is not a string: %w", v.Kind(), ErrKindMismatch)
	}
	if lit.Kind != ast.LiteralString {
		return false, fmt.Errorf("eval.compareMatch: pattern must be a string literal: %w", ErrKindMismatch)
	}
	re, err := regexp.Compile("^(?:" + lit.Str + ")$")
	if err != nil {
		return false, fmt.Errorf("eval.compareMatch: %q: %w: %v", lit.Str, ErrBadPattern, err)
	}
	matched := re.MatchString(s)
	if op == ast.NotMatch {
		return !matched, nil
	}

	return matched, nil
}

func compareBool(op ast.CmpOp, v storage.Scalar, lit ast.Literal) (bool, error) {
	b, _ := v.Bool()
	var want bool
	switch {
	case lit.Kind == ast.LiteralString && lit.Str == "true":
		want = true
	case lit.Kind == ast.LiteralString && lit.Str == "false":
		want = false
	default:
		return false, fmt.Errorf("eval.compareBool: literal %v is not true/false: %w", lit, ErrKindMismatch)
	}
	switch op {
	case ast.Eq:
		return b == want, nil
	case ast.Ne:
		return b != want, nil
	default:
		return false, fmt.Errorf("eval.compareBool: operator not valid for Bool: %w", ErrKindMismatch)
	}
}

func compareString(op ast.CmpOp, v storage.Scalar, lit ast.Literal) (bool, error) {
	if lit.Kind != ast.LiteralString {
		return false, fmt.Errorf("eval.compareString: literal must be a string: %w", ErrKindMismatch)
	}
	s, _ := v.String()
	switch op {
	case ast.Eq:
		return s == lit.Str, nil
	case ast.Ne:
		return s != lit.Str, nil
	case ast.Lt:
		return s < lit.Str, nil
	case ast.Le:
		return s <= lit.Str, nil
	case ast.Gt:
		return s > lit.Str, nil
	case ast.Ge:
		return s >= lit.Str, nil
	default:
		return false, fmt.Errorf("eval.compareString: unsupported operator: %w", ErrKindMismatch)
	}
}

func compareNumeric(op ast.CmpOp, v storage.Scalar, lit ast.Literal) (bool, error) {
	x, _ := v.AsFloat64()
	y, err := literalAsFloat(lit)
	if err != nil {
		return false, err
	}
	switch op {
	case ast.Eq:
		return x == y, nil
	case ast.Ne:
		return x != y, nil
	case ast.Lt:
		return x < y, nil
	case ast.Le:
		return x <= y, nil
	case ast.Gt:
		return x > y, nil
	case ast.Ge:
		return x >= y, nil
	default:
		return false, fmt.Errorf("eval.compareNumeric: unsupported operator: %w", ErrKindMismatch)
	}
}

func literalAsFloat(lit ast.Literal) (float64, error) {
	if lit.Kind == ast.LiteralNumber {
		return lit.Num, nil
	}
	f, err := strconv.ParseFloat(lit.Str, 64)
	if err != nil {
		return 0, fmt.Errorf("eval.literalAsFloat: %q is not numeric: %w", lit.Str, ErrKindMismatch)
	}

	return f, nil
}
