// Package storage defines the closed set of storable scalar kinds and the
// dense/sparse array containers used throughout daf to hold vector and
// matrix elements.
//
// Design:
//   - Kind is a closed tagged-union discriminator, never extended outside
//     this package. Algorithms generic over Kind are expressed as a table
//     of per-kind monomorphizations selected at dispatch time (see Array's
//     At/Set family), not as runtime duck-typed interfaces.
//   - Scalar and Array never panic on a Kind mismatch; every accessor
//     returns an (value, ok) pair or an error, mirroring how the teacher's
//     Dense.At/Set report failures instead of panicking.
package storage

import "fmt"

// Kind enumerates every storable scalar kind supported by daf. Vector and
// matrix elements share this same closed set; sparsity and layout are
// orthogonal tags applied on top (see the layout package).
type Kind uint8

const (
	// KindInt8 is a signed 8-bit integer.
	KindInt8 Kind = iota
	// KindInt16 is a signed 16-bit integer.
	KindInt16
	// KindInt32 is a signed 32-bit integer.
	KindInt32
	// KindInt64 is a signed 64-bit integer.
	KindInt64
	// KindUint8 is an unsigned 8-bit integer.
	KindUint8
	// KindUint16 is an unsigned 16-bit integer.
	KindUint16
	// KindUint32 is an unsigned 32-bit integer.
	KindUint32
	// KindUint64 is an unsigned 64-bit integer.
	KindUint64
	// KindFloat32 is an IEEE-754 single-precision float.
	KindFloat32
	// KindFloat64 is an IEEE-754 double-precision float.
	KindFloat64
	// KindBool is a boolean.
	KindBool
	// KindString is a UTF-8 string.
	KindString
)

// kindNames backs Kind.String(); index matches the Kind constant value.
var kindNames = [...]string{
	"Int8", "Int16", "Int32", "Int64",
	"Uint8", "Uint16", "Uint32", "Uint64",
	"Float32", "Float64", "Bool", "String",
}

// String renders the Kind's canonical name, e.g. "Int64" or "Float32".
func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}

	return kindNames[k]
}

// IsSignedInt reports whether k is one of the signed integer widths.
func (k Kind) IsSignedInt() bool {
	switch k {
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	default:
		return false
	}
}

// IsUnsignedInt reports whether k is one of the unsigned integer widths.
func (k Kind) IsUnsignedInt() bool {
	switch k {
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	default:
		return false
	}
}

// IsInteger reports whether k is any signed or unsigned integer width.
func (k Kind) IsInteger() bool {
	return k.IsSignedInt() || k.IsUnsignedInt()
}

// IsFloat reports whether k is one of the floating-point widths.
func (k Kind) IsFloat() bool {
	return k == KindFloat32 || k == KindFloat64
}

// IsNumeric reports whether k participates in arithmetic (integer or float).
func (k Kind) IsNumeric() bool {
	return k.IsInteger() || k.IsFloat()
}

// Valid reports whether k is one of the closed set of declared constants.
func (k Kind) Valid() bool {
	return k <= KindString
}
