package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/daf-project/daf/query/lexer"
)

// Canonical renders q as a normalized query string: re-serializing the AST
// with a single fixed formatting (no extraneous whitespace, entry literals
// always quoted) rather than echoing q.Text verbatim. Two syntactically
// different but semantically equal inputs (e.g. differing only in
// whitespace or quoting style) produce the same Canonical string, which is
// what makes it suitable as a cache key and equality witness (spec §4.I);
// re-lexing a Canonical string is guaranteed safe because quoting always
// uses lexer.EscapeQuery.
func Canonical(q *Query) string {
	var b strings.Builder
	b.WriteString(canonicalLookup(q.Base))
	for _, op := range q.Ops {
		b.WriteString(" %> ")
		b.WriteString(canonicalOpCall(op))
	}

	return b.String()
}

func canonicalOpCall(op OpCall) string {
	if op.ParamText == "" {
		return op.Name
	}

	return fmt.Sprintf("%s(%s)", op.Name, op.ParamText)
}

// quoteLiteral always quotes: used wherever the grammar tells an entry
// literal apart from an axis/property identifier purely by quoting (the
// tuple positions in MatrixSliceLookup/MatrixEntryLookup and the
// non-tuple right side of a VectorEntryLookup) — rendering those bare
// would make the canonical form re-parse as a different Lookup shape.
func quoteLiteral(s string) string {
	return `"` + lexer.EscapeQuery(s) + `"`
}

// canonicalIdent renders an axis/property/path identifier bare, with every
// character EscapeQuery would touch written as a `\xx` escape; the lexer
// decodes such escapes in bare tokens. Identifiers are never quoted: a
// quoted axis name in a tuple position or on the right of '@' would
// re-parse as an entry literal.
func canonicalIdent(s string) string {
	return lexer.EscapeQuery(s)
}

func canonicalLookup(l Lookup) string {
	switch v := l.(type) {
	case *ScalarPropertyLookup:
		return canonicalIdent(v.Name)
	case *VectorPropertyLookup:
		return fmt.Sprintf("%s @ %s", canonicalPath(v.Path), canonicalFilteredAxis(v.Axis))
	case *VectorEntryLookup:
		full := append(Path{v.Axis}, v.Path...)
		return fmt.Sprintf("%s @ %s", canonicalPath(full), quoteLiteral(v.Entry))
	case *MatrixPropertyLookup:
		return fmt.Sprintf("%s @ (%s, %s)", canonicalIdent(v.Property), canonicalFilteredAxis(v.Rows), canonicalFilteredAxis(v.Cols))
	case *MatrixSliceLookup:
		if v.FilteredIsRows {
			return fmt.Sprintf("%s @ (%s, %s)", canonicalIdent(v.Property), canonicalFilteredAxis(v.Filtered), quoteLiteral(v.FixedEntry))
		}

		return fmt.Sprintf("%s @ (%s, %s)", canonicalIdent(v.Property), quoteLiteral(v.FixedEntry), canonicalFilteredAxis(v.Filtered))
	case *MatrixEntryLookup:
		return fmt.Sprintf("%s @ (%s, %s)", canonicalIdent(v.Property), quoteLiteral(v.RowEntry), quoteLiteral(v.ColEntry))
	default:
		return fmt.Sprintf("<invalid:%T>", l)
	}
}

func canonicalPath(p Path) string {
	parts := make([]string, len(p))
	for i, part := range p {
		parts[i] = canonicalIdent(part)
	}

	return strings.Join(parts, ".")
}

func canonicalFilteredAxis(a FilteredAxis) string {
	if a.Filter == nil {
		return canonicalIdent(a.Axis)
	}

	return fmt.Sprintf("%s & %s", canonicalIdent(a.Axis), canonicalFilter(a.Filter))
}

func canonicalFilter(f FilterExpr) string {
	switch v := f.(type) {
	case *FilterLeaf:
		return canonicalAxisLookup(v.Lookup)
	case *FilterCombine:
		return fmt.Sprintf("(%s %s %s)", canonicalFilter(v.Left), canonicalFilterOp(v.Op), canonicalFilter(v.Right))
	default:
		return fmt.Sprintf("<invalid:%T>", f)
	}
}

func canonicalFilterOp(op FilterOp) string {
	switch op {
	case And:
		return "and"
	case Or:
		return "or"
	default:
		return "xor"
	}
}

func canonicalAxisLookup(l AxisLookup) string {
	s := canonicalPath(l.Path)
	if l.Comparison != nil {
		s = fmt.Sprintf("%s %s %s", s, canonicalCmpOp(l.Comparison.Op), canonicalLiteral(l.Comparison.Literal))
	}
	if l.Invert {
		s = "not " + s
	}

	return s
}

func canonicalCmpOp(op CmpOp) string {
	switch op {
	case Eq:
		return "="
	case Ne:
		return "!="
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	case Match:
		return "match"
	default:
		return "!match"
	}
}

func canonicalLiteral(l Literal) string {
	if l.Kind == LiteralNumber {
		return strconv.FormatFloat(l.Num, 'g', -1, 64)
	}

	return quoteLiteral(l.Str)
}
