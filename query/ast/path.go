// Package ast defines the typed query AST (spec §4.I): MatrixQuery,
// VectorQuery, and ScalarQuery trees, each built by a recursive-descent
// pass over the generic Expression tree produced by query/lexer
// (component H). Query is a single unified node type: the result kind
// (scalar/vector/matrix) is determined by its Base lookup's natural kind
// and narrowed as the trailing operation chain is evaluated (a reduction
// collapses Matrix->Vector or Vector->Scalar) — this flattens the spec's
// three parallel grammars into one tree shape without changing what each
// query kind can express.
package ast

import (
	"fmt"

	"github.com/daf-project/daf/query/lexer"
)

// Path is a chained property lookup: property_name ("." property_name)*
// (spec §4.I PropertyLookup). The first hop's axis is either explicit
// (when the name itself names an axis) or supplied by grammar context
// (e.g. the VectorPropertyLookup's own axis); the evaluator resolves it.
type Path []string

// String renders the path in dotted form, e.g. "type.color".
func (p Path) String() string {
	s := ""
	for i, part := range p {
		if i > 0 {
			s += "."
		}
		s += part
	}

	return s
}

// parsePath flattens a left-associative chain of '.' BinaryExprs (or a
// single Ident/String leaf) into a Path.
func parsePath(e lexer.Expression) (Path, error) {
	switch v := e.(type) {
	case *lexer.IdentExpr:
		return Path{v.Name}, nil
	case *lexer.StringExpr:
		return Path{v.Value}, nil
	case *lexer.BinaryExpr:
		if v.Op != "." {
			return nil, newError(e.Position(), fmt.Sprintf("expected a property path, got operator %q", v.Op))
		}
		left, err := parsePath(v.Left)
		if err != nil {
			return nil, err
		}
		right, err := parsePath(v.Right)
		if err != nil {
			return nil, err
		}

		return append(left, right...), nil
	default:
		return nil, newError(e.Position(), "expected a property name")
	}
}
