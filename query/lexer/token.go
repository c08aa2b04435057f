// Package lexer implements the query language's tokenizer and the
// operator-precedence pass that turns a token stream into a generic
// Expression tree (spec §4.H). The Expression tree is untyped with
// respect to query kind — the query/ast package's recursive-descent
// parsers walk it to build the typed MatrixQuery/VectorQuery/ScalarQuery
// AST (spec §4.I).
//
// Grounded on the pack's ha1tch/tsqlparser token-kind table: a small
// closed set of token kinds, each carrying its source position for
// contextualized errors, consumed by a classic operator-precedence
// (precedence-climbing) expression builder.
package lexer

import "fmt"

// Kind enumerates the token kinds the lexer produces.
type Kind uint8

const (
	// EOF marks the end of input.
	EOF Kind = iota
	// Ident is a bare name: an axis, property, or operation name. A quoted
	// span lexes as String instead.
	Ident
	// String is a double-quoted literal value (spec §4.I PropertyComparison).
	String
	// Number is an integer or floating-point literal.
	Number
	// Op is one of the fixed operator symbols: the binary operators of the
	// opPrec table in parse.go, plus the prefix operator "not".
	Op
	// LParen is '('.
	LParen
	// RParen is ')'.
	RParen
	// Comma is ','.
	Comma
	// Call is an identifier immediately followed by '(' ... ')': the
	// identifier plus the raw, un-lexed text between the parens, handed
	// to the ops package's own "name = value" parameter grammar untouched.
	Call
)

// String renders the Kind's name, for error messages.
func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Ident:
		return "identifier"
	case String:
		return "string"
	case Number:
		return "number"
	case Op:
		return "operator"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case Comma:
		return "','"
	case Call:
		return "call"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Token is one lexeme plus its source position (a byte offset into the
// original query string, used to build positioned errors).
type Token struct {
	Kind   Kind
	Text   string // the operator symbol, identifier name, or raw literal text
	Arg    string // for Call tokens: the raw, un-lexed parameter text
	Number float64
	Pos    int
}

// String renders t for error messages and debugging.
func (t Token) String() string {
	switch t.Kind {
	case Call:
		return fmt.Sprintf("%s(%s)", t.Text, t.Arg)
	case String:
		return fmt.Sprintf("%q", t.Text)
	default:
		return t.Text
	}
}
