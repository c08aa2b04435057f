// SPDX-License-Identifier: MIT
package ops

import (
	"fmt"
	"math"

	"github.com/daf-project/daf/storage"
)

// ElementWise maps an input Array to an output Array of the same length,
// one element at a time and independent of order — the element-wise half
// of spec §4.D. Implementations MUST be pure functions of their input and
// Params: calling Apply twice with equal arguments must produce equal
// results (spec §8's referential-transparency property).
type ElementWise interface {
	// Apply transforms in into a freshly allocated Array of the same
	// length. Apply never mutates in.
	Apply(in *storage.Array) (*storage.Array, error)
}

// ElementWiseFactory builds a configured ElementWise from resolved Params.
type ElementWiseFactory func(p Params) (ElementWise, error)

type ewFunc struct {
	name string
	fn   func(in *storage.Array, p Params) (*storage.Array, error)
	p    Params
}

func (e ewFunc) Apply(in *storage.Array) (*storage.Array, error) {
	out, err := e.fn(in, e.p)
	if err != nil {
		return nil, fmt.Errorf("ops.%s: %w", e.name, err)
	}
	if out.Len() != in.Len() {
		return nil, fmt.Errorf("ops.%s: %w", e.name, ErrShapeMismatch)
	}

	return out, nil
}

func init() {
	RegisterElementWise("Abs", Schema{}, func(p Params) (ElementWise, error) {
		return ewFunc{name: "Abs", p: p, fn: absKernel}, nil
	})
	RegisterElementWise("Square", Schema{}, func(p Params) (ElementWise, error) {
		return ewFunc{name: "Square", p: p, fn: squareKernel}, nil
	})
	RegisterElementWise("Log", Schema{
		{Name: "base", Kind: ParamFloat, Required: false, Default: Value{Float: math.E}},
		{Name: "eps", Kind: ParamFloat, Required: false, Default: Value{Float: 0}},
	}, func(p Params) (ElementWise, error) {
		return ewFunc{name: "Log", p: p, fn: logKernel}, nil
	})
	RegisterElementWise("Clamp", Schema{
		{Name: "min", Kind: ParamFloat, Required: true},
		{Name: "max", Kind: ParamFloat, Required: true},
	}, func(p Params) (ElementWise, error) {
		return ewFunc{name: "Clamp", p: p, fn: clampKernel}, nil
	})
	RegisterElementWise("Cast", Schema{
		{Name: "dtype", Kind: ParamDType, Required: true},
	}, func(p Params) (ElementWise, error) {
		return ewFunc{name: "Cast", p: p, fn: castKernel}, nil
	})
}

// mapNumeric applies f to every element's float64 widening and writes the
// result back through a per-Kind monomorphization selected by in.Kind(),
// the table-driven dispatch the spec's design notes call for in place of
// runtime duck typing. Non-numeric kinds (Bool, String) return
// ErrUnsupportedKind.
func mapNumeric(in *storage.Array, f func(float64) float64) (*storage.Array, error) {
	if !in.Kind().IsNumeric() {
		return nil, fmt.Errorf("kind %s: %w", in.Kind(), ErrUnsupportedKind)
	}
	out, err := storage.NewArray(in.Kind(), in.Len())
	if err != nil {
		return nil, err
	}
	for i := 0; i < in.Len(); i++ {
		v, err := in.At(i)
		if err != nil {
			return nil, err
		}
		x, _ := v.AsFloat64()
		y := f(x)
		sv, err := scalarFromFloat(in.Kind(), y)
		if err != nil {
			return nil, err
		}
		if err := out.Set(i, sv); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// scalarFromFloat builds a Scalar of kind holding the (possibly truncated,
// for integer kinds) value v.
func scalarFromFloat(kind storage.Kind, v float64) (storage.Scalar, error) {
	switch {
	case kind.IsSignedInt():
		return storage.NewInt(widthOfKind(kind), int64(v))
	case kind.IsUnsignedInt():
		return storage.NewUint(widthOfKind(kind), uint64(v))
	case kind == storage.KindFloat32:
		return storage.NewFloat32(float32(v)), nil
	default:
		return storage.NewFloat64(v), nil
	}
}

func widthOfKind(kind storage.Kind) int {
	switch kind {
	case storage.KindInt8, storage.KindUint8:
		return 8
	case storage.KindInt16, storage.KindUint16:
		return 16
	case storage.KindInt32, storage.KindUint32:
		return 32
	default:
		return 64
	}
}

func absKernel(in *storage.Array, _ Params) (*storage.Array, error) {
	return mapNumeric(in, math.Abs)
}

func squareKernel(in *storage.Array, _ Params) (*storage.Array, error) {
	return mapNumeric(in, func(x float64) float64 { return x * x })
}

func logKernel(in *storage.Array, p Params) (*storage.Array, error) {
	base := p["base"].Float
	eps := p["eps"].Float

	return mapNumeric(in, func(x float64) float64 {
		return math.Log(x+eps) / math.Log(base)
	})
}

func clampKernel(in *storage.Array, p Params) (*storage.Array, error) {
	lo, hi := p["min"].Float, p["max"].Float

	return mapNumeric(in, func(x float64) float64 {
		if x < lo {
			return lo
		}
		if x > hi {
			return hi
		}

		return x
	})
}

func castKernel(in *storage.Array, p Params) (*storage.Array, error) {
	target := p["dtype"].DType
	out, err := storage.NewArray(target, in.Len())
	if err != nil {
		return nil, err
	}
	for i := 0; i < in.Len(); i++ {
		v, err := in.At(i)
		if err != nil {
			return nil, err
		}
		f, ok := v.AsFloat64()
		if !ok {
			return nil, fmt.Errorf("element %d kind %s: %w", i, in.Kind(), ErrUnsupportedKind)
		}
		sv, err := scalarFromFloat(target, f)
		if err != nil {
			return nil, err
		}
		if err := out.Set(i, sv); err != nil {
			return nil, err
		}
	}

	return out, nil
}
