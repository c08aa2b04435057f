package eval

import (
	"github.com/daf-project/daf/query/ast"
	"github.com/daf-project/daf/storage"
)

// Result is a query's outcome: exactly one of Scalar/Vector/Matrix is
// meaningful, selected by Kind, unless Absent is set — the Go rendering of
// spec §4.I's "sum type Present(T) | Absent" (spec §8's "Absent results").
// Absent is reserved for an empty filter mask (spec §7); it is never used
// for a missing name, which raises an error instead.
type Result struct {
	Kind   ast.ResultKind
	Scalar storage.Scalar
	Vector *storage.Array
	Matrix *storage.Matrix
	Absent bool
}

// absentResult builds the Absent sentinel for the given kind.
func absentResult(kind ast.ResultKind) Result {
	return Result{Kind: kind, Absent: true}
}

func scalarResult(v storage.Scalar) Result {
	return Result{Kind: ast.KindScalar, Scalar: v}
}

func vectorResult(v *storage.Array) Result {
	return Result{Kind: ast.KindVector, Vector: v}
}

func matrixResult(m *storage.Matrix) Result {
	return Result{Kind: ast.KindMatrix, Matrix: m}
}
