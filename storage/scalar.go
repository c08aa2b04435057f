// SPDX-License-Identifier: MIT
package storage

import (
	"fmt"
	"strconv"
)

// Scalar is a single value of any Kind. It is the element type shared by
// repository scalars, vector entries, and matrix entries.
//
// Internally a Scalar stores its payload in one of three machine words
// (signed integer, unsigned integer, float) plus a bool and a string field;
// exactly one field is meaningful, selected by Kind. This mirrors the
// per-kind monomorphization table design noted in the spec: callers never
// type-assert against an interface{}, they ask for the Kind they expect.
type Scalar struct {
	kind Kind
	i    int64
	u    uint64
	f    float64
	b    bool
	s    string
}

// Kind returns the Scalar's storage kind.
func (v Scalar) Kind() Kind { return v.kind }

// NewInt builds a signed-integer Scalar of the given width (8/16/32/64).
// Width values other than those four return ErrInvalidKind via the returned
// error; on success the Scalar's Kind is the matching KindIntNN.
func NewInt(width int, value int64) (Scalar, error) {
	var k Kind
	switch width {
	case 8:
		k = KindInt8
	case 16:
		k = KindInt16
	case 32:
		k = KindInt32
	case 64:
		k = KindInt64
	default:
		return Scalar{}, fmt.Errorf("storage.NewInt: width %d: %w", width, ErrInvalidKind)
	}

	return Scalar{kind: k, i: value}, nil
}

// NewUint builds an unsigned-integer Scalar of the given width (8/16/32/64).
func NewUint(width int, value uint64) (Scalar, error) {
	var k Kind
	switch width {
	case 8:
		k = KindUint8
	case 16:
		k = KindUint16
	case 32:
		k = KindUint32
	case 64:
		k = KindUint64
	default:
		return Scalar{}, fmt.Errorf("storage.NewUint: width %d: %w", width, ErrInvalidKind)
	}

	return Scalar{kind: k, u: value}, nil
}

// NewFloat32 builds a KindFloat32 Scalar.
func NewFloat32(value float32) Scalar { return Scalar{kind: KindFloat32, f: float64(value)} }

// NewFloat64 builds a KindFloat64 Scalar.
func NewFloat64(value float64) Scalar { return Scalar{kind: KindFloat64, f: value} }

// NewBool builds a KindBool Scalar.
func NewBool(value bool) Scalar { return Scalar{kind: KindBool, b: value} }

// NewString builds a KindString Scalar.
func NewString(value string) Scalar { return Scalar{kind: KindString, s: value} }

// Int64 returns the Scalar as a signed 64-bit integer and ok=true if Kind
// is any signed integer width; it does not convert across kinds.
func (v Scalar) Int64() (int64, bool) {
	if !v.kind.IsSignedInt() {
		return 0, false
	}

	return v.i, true
}

// Uint64 returns the Scalar as an unsigned 64-bit integer and ok=true if
// Kind is any unsigned integer width.
func (v Scalar) Uint64() (uint64, bool) {
	if !v.kind.IsUnsignedInt() {
		return 0, false
	}

	return v.u, true
}

// Float64 returns the Scalar as a float64 and ok=true if Kind is Float32 or
// Float64 (Float32 values are widened, not reinterpreted).
func (v Scalar) Float64() (float64, bool) {
	if !v.kind.IsFloat() {
		return 0, false
	}

	return v.f, true
}

// Bool returns the Scalar's boolean payload and ok=true if Kind is KindBool.
func (v Scalar) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}

	return v.b, true
}

// String returns the Scalar's string payload and ok=true if Kind is
// KindString.
func (v Scalar) String() (string, bool) {
	if v.kind != KindString {
		return "", false
	}

	return v.s, true
}

// AsFloat64 widens any numeric Scalar (integer or float) to a float64,
// regardless of exact width or signedness. It returns ok=false for
// KindBool and KindString, which are not numeric.
func (v Scalar) AsFloat64() (float64, bool) {
	switch {
	case v.kind.IsSignedInt():
		return float64(v.i), true
	case v.kind.IsUnsignedInt():
		return float64(v.u), true
	case v.kind.IsFloat():
		return v.f, true
	default:
		return 0, false
	}
}

// Present renders the Scalar for human display: strings are quoted, floats
// use a fixed significant-digit count, everything else uses its natural
// decimal form. This is the Scalar half of the naming package's present();
// it lives here (rather than in naming) so storage has no import cycle on
// naming, and naming.Present delegates to it for Scalar values.
func (v Scalar) Present() string {
	switch {
	case v.kind == KindString:
		return strconv.Quote(v.s)
	case v.kind == KindBool:
		return strconv.FormatBool(v.b)
	case v.kind.IsSignedInt():
		return strconv.FormatInt(v.i, 10)
	case v.kind.IsUnsignedInt():
		return strconv.FormatUint(v.u, 10)
	case v.kind == KindFloat32:
		return strconv.FormatFloat(v.f, 'g', 7, 32)
	case v.kind == KindFloat64:
		return strconv.FormatFloat(v.f, 'g', 15, 64)
	default:
		return "<invalid>"
	}
}

// Equal reports whether two Scalars have the same Kind and payload.
func (v Scalar) Equal(other Scalar) bool {
	if v.kind != other.kind {
		return false
	}
	switch {
	case v.kind == KindString:
		return v.s == other.s
	case v.kind == KindBool:
		return v.b == other.b
	case v.kind.IsSignedInt():
		return v.i == other.i
	case v.kind.IsUnsignedInt():
		return v.u == other.u
	default:
		return v.f == other.f
	}
}
