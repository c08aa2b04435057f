// SPDX-License-Identifier: MIT
package storage

import "fmt"

// Array is a dense, homogeneously-typed 1-D container: the element storage
// shared by repository vectors and, flattened, by dense matrices. Exactly
// one of the typed slices below is non-nil, selected by Kind — the same
// per-kind monomorphization discipline as Scalar, generalized to bulk
// storage the way the teacher's Dense generalizes a single float64 cell to
// a flat row-major buffer.
type Array struct {
	kind Kind

	i8  []int8
	i16 []int16
	i32 []int32
	i64 []int64
	u8  []uint8
	u16 []uint16
	u32 []uint32
	u64 []uint64
	f32 []float32
	f64 []float64
	b   []bool
	s   []string
}

// Kind returns the Array's element kind.
func (a *Array) Kind() Kind { return a.kind }

// Len returns the number of elements, dispatching on Kind.
//
// Complexity: O(1).
func (a *Array) Len() int {
	switch a.kind {
	case KindInt8:
		return len(a.i8)
	case KindInt16:
		return len(a.i16)
	case KindInt32:
		return len(a.i32)
	case KindInt64:
		return len(a.i64)
	case KindUint8:
		return len(a.u8)
	case KindUint16:
		return len(a.u16)
	case KindUint32:
		return len(a.u32)
	case KindUint64:
		return len(a.u64)
	case KindFloat32:
		return len(a.f32)
	case KindFloat64:
		return len(a.f64)
	case KindBool:
		return len(a.b)
	case KindString:
		return len(a.s)
	default:
		return 0
	}
}

// NewArray allocates a zero-valued dense Array of the given Kind and
// length. This is the in-process analog of the Format Contract's
// empty_dense_vector: storage is allocated uninitialized-but-zeroed and the
// caller is expected to populate it before any reader observes it.
//
// Complexity: O(n) time and space.
func NewArray(kind Kind, n int) (*Array, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("storage.NewArray: %w", ErrInvalidKind)
	}
	if n < 0 {
		return nil, fmt.Errorf("storage.NewArray: negative length %d: %w", n, ErrIndexOutOfRange)
	}

	a := &Array{kind: kind}
	switch kind {
	case KindInt8:
		a.i8 = make([]int8, n)
	case KindInt16:
		a.i16 = make([]int16, n)
	case KindInt32:
		a.i32 = make([]int32, n)
	case KindInt64:
		a.i64 = make([]int64, n)
	case KindUint8:
		a.u8 = make([]uint8, n)
	case KindUint16:
		a.u16 = make([]uint16, n)
	case KindUint32:
		a.u32 = make([]uint32, n)
	case KindUint64:
		a.u64 = make([]uint64, n)
	case KindFloat32:
		a.f32 = make([]float32, n)
	case KindFloat64:
		a.f64 = make([]float64, n)
	case KindBool:
		a.b = make([]bool, n)
	case KindString:
		a.s = make([]string, n)
	}

	return a, nil
}

// Fill allocates a dense Array of length n whose every element equals
// value; it is the materialization step behind the Repository Facade's
// scalar-broadcast writes (§4.F.2). value.Kind() must equal kind.
func Fill(kind Kind, n int, value Scalar) (*Array, error) {
	a, err := NewArray(kind, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		if err := a.Set(i, value); err != nil {
			return nil, fmt.Errorf("storage.Fill: %w", err)
		}
	}

	return a, nil
}

// At returns the element at index i as a Scalar.
//
// Complexity: O(1).
func (a *Array) At(i int) (Scalar, error) {
	if i < 0 || i >= a.Len() {
		return Scalar{}, fmt.Errorf("storage.Array.At(%d): %w", i, ErrIndexOutOfRange)
	}
	switch a.kind {
	case KindInt8:
		return Scalar{kind: a.kind, i: int64(a.i8[i])}, nil
	case KindInt16:
		return Scalar{kind: a.kind, i: int64(a.i16[i])}, nil
	case KindInt32:
		return Scalar{kind: a.kind, i: int64(a.i32[i])}, nil
	case KindInt64:
		return Scalar{kind: a.kind, i: a.i64[i]}, nil
	case KindUint8:
		return Scalar{kind: a.kind, u: uint64(a.u8[i])}, nil
	case KindUint16:
		return Scalar{kind: a.kind, u: uint64(a.u16[i])}, nil
	case KindUint32:
		return Scalar{kind: a.kind, u: uint64(a.u32[i])}, nil
	case KindUint64:
		return Scalar{kind: a.kind, u: a.u64[i]}, nil
	case KindFloat32:
		return Scalar{kind: a.kind, f: float64(a.f32[i])}, nil
	case KindFloat64:
		return Scalar{kind: a.kind, f: a.f64[i]}, nil
	case KindBool:
		return Scalar{kind: a.kind, b: a.b[i]}, nil
	case KindString:
		return Scalar{kind: a.kind, s: a.s[i]}, nil
	default:
		return Scalar{}, fmt.Errorf("storage.Array.At(%d): %w", i, ErrInvalidKind)
	}
}

// Set writes value at index i. value.Kind() must equal the Array's Kind.
//
// Complexity: O(1).
func (a *Array) Set(i int, value Scalar) error {
	if i < 0 || i >= a.Len() {
		return fmt.Errorf("storage.Array.Set(%d): %w", i, ErrIndexOutOfRange)
	}
	if value.Kind() != a.kind {
		return fmt.Errorf("storage.Array.Set(%d): want %s, got %s: %w", i, a.kind, value.Kind(), ErrKindMismatch)
	}
	switch a.kind {
	case KindInt8:
		a.i8[i] = int8(value.i)
	case KindInt16:
		a.i16[i] = int16(value.i)
	case KindInt32:
		a.i32[i] = int32(value.i)
	case KindInt64:
		a.i64[i] = value.i
	case KindUint8:
		a.u8[i] = uint8(value.u)
	case KindUint16:
		a.u16[i] = uint16(value.u)
	case KindUint32:
		a.u32[i] = uint32(value.u)
	case KindUint64:
		a.u64[i] = value.u
	case KindFloat32:
		a.f32[i] = float32(value.f)
	case KindFloat64:
		a.f64[i] = value.f
	case KindBool:
		a.b[i] = value.b
	case KindString:
		a.s[i] = value.s
	}

	return nil
}

// Slice returns a new Array holding the elements at the given zero-based
// indices, in order. Used by the query evaluator to materialize masked
// subsets and chained-lookup results.
//
// Complexity: O(len(indices)).
func (a *Array) Slice(indices []int) (*Array, error) {
	out, err := NewArray(a.kind, len(indices))
	if err != nil {
		return nil, err
	}
	for dst, src := range indices {
		v, err := a.At(src)
		if err != nil {
			return nil, fmt.Errorf("storage.Array.Slice: %w", err)
		}
		if err := out.Set(dst, v); err != nil {
			return nil, fmt.Errorf("storage.Array.Slice: %w", err)
		}
	}

	return out, nil
}

// Clone returns a deep copy of a.
//
// Complexity: O(n).
func (a *Array) Clone() *Array {
	out := &Array{kind: a.kind}
	out.i8 = append([]int8(nil), a.i8...)
	out.i16 = append([]int16(nil), a.i16...)
	out.i32 = append([]int32(nil), a.i32...)
	out.i64 = append([]int64(nil), a.i64...)
	out.u8 = append([]uint8(nil), a.u8...)
	out.u16 = append([]uint16(nil), a.u16...)
	out.u32 = append([]uint32(nil), a.u32...)
	out.u64 = append([]uint64(nil), a.u64...)
	out.f32 = append([]float32(nil), a.f32...)
	out.f64 = append([]float64(nil), a.f64...)
	out.b = append([]bool(nil), a.b...)
	out.s = append([]string(nil), a.s...)

	return out
}

// AsFloat64Slice widens every element to float64; ok is false if Kind is
// not numeric. Used by reduction operations that want a uniform view.
//
// Complexity: O(n).
func (a *Array) AsFloat64Slice() (out []float64, ok bool) {
	n := a.Len()
	if !a.kind.IsNumeric() {
		return nil, false
	}
	out = make([]float64, n)
	for i := 0; i < n; i++ {
		v, _ := a.At(i)
		out[i], _ = v.AsFloat64()
	}

	return out, true
}
