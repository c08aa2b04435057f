// Package eval executes a query/ast.Query against a repo.Reader (spec
// §4.J): it walks the Base Lookup to a Result, then folds the trailing
// operation chain left-to-right through the ops registry. It is the last
// stage of the H (lexer) -> I (ast) -> J (eval) pipeline.
package eval

import "errors"

// ErrNotFound indicates a direct single-value lookup (scalar, vector
// entry, or matrix entry) named something that does not exist; per spec
// §4's failure model this always raises rather than yielding Absent.
var ErrNotFound = errors.New("eval: not found")

// ErrKindMismatch indicates a comparison or filter used a literal that
// does not fit the compared vector's storage.Kind, or compared kinds that
// cannot be ordered against each other.
var ErrKindMismatch = errors.New("eval: kind mismatch")

// ErrAmbiguousMatrix indicates a MatrixSliceLookup/MatrixEntryLookup's
// fixed-entry form matched more than one axis pair storing the named
// property. Axis pairs are resolved by searching because that grammar
// position names an entry but not the axis that owns it.
var ErrAmbiguousMatrix = errors.New("eval: ambiguous matrix axis pair")

// ErrBadPattern indicates a match/!match comparison's literal did not
// compile as a regular expression.
var ErrBadPattern = errors.New("eval: bad match pattern")
