// SPDX-License-Identifier: MIT
package ops

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/daf-project/daf/storage"
)

// ParamKind enumerates the types a named operation parameter may take.
type ParamKind uint8

const (
	// ParamInt is a signed 64-bit integer parameter.
	ParamInt ParamKind = iota
	// ParamFloat is a float64 parameter.
	ParamFloat
	// ParamDType is a storage.Kind parameter (e.g. Cast's target kind).
	ParamDType
	// ParamEnum is a string parameter restricted to a fixed value set
	// (e.g. a reduction's target axis).
	ParamEnum
)

// ParamSpec declares one named parameter accepted by an operation.
type ParamSpec struct {
	// Name is the parameter's key, as written in "name = value" text.
	Name string
	// Kind selects how the value text is parsed.
	Kind ParamKind
	// Required, if true, makes ParseParams fail when the parameter is absent.
	Required bool
	// Enum lists the only values accepted when Kind == ParamEnum.
	Enum []string
	// Default is used when the parameter is absent and not Required.
	Default Value
}

// Schema is the ordered set of parameters an operation accepts. Order is
// insignificant for parsing (parameters are named, not positional) but is
// preserved for documentation and error messages ("recognized: a, b, c").
type Schema []ParamSpec

// names returns the schema's parameter names, for "unknown parameter"
// error messages.
func (s Schema) names() []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = p.Name
	}

	return out
}

func (s Schema) find(name string) (ParamSpec, bool) {
	for _, p := range s {
		if p.Name == name {
			return p, true
		}
	}

	return ParamSpec{}, false
}

// Value is a parsed parameter value; exactly one field is meaningful,
// selected by the owning ParamSpec.Kind.
type Value struct {
	Int   int64
	Float float64
	DType storage.Kind
	Enum  string
}

// Params is a resolved, fully-validated set of parameter values keyed by
// name, produced by ParseParams or built directly by Go callers via
// NewParams for programmatic (non-textual) invocation.
type Params map[string]Value

// NewParams builds a Params set from already-typed values, validating them
// against schema the same way ParseParams does. Useful for callers that
// construct operations from Go code rather than query text.
func NewParams(schema Schema, values map[string]Value) (Params, error) {
	out := make(Params, len(schema))
	seen := make(map[string]bool, len(values))
	for name, v := range values {
		spec, ok := schema.find(name)
		if !ok {
			return nil, fmt.Errorf("ops.NewParams: %q not in %v: %w", name, schema.names(), ErrUnknownParameter)
		}
		if spec.Kind == ParamEnum && !containsStr(spec.Enum, v.Enum) {
			return nil, fmt.Errorf("ops.NewParams: %q: %q not in %v: %w", name, v.Enum, spec.Enum, ErrParameterType)
		}
		out[name] = v
		seen[name] = true
	}
	for _, spec := range schema {
		if seen[spec.Name] {
			continue
		}
		if spec.Required {
			return nil, fmt.Errorf("ops.NewParams: %q: %w", spec.Name, ErrMissingParameter)
		}
		out[spec.Name] = spec.Default
	}

	return out, nil
}

// ParseParams tokenizes text as a whitespace/comma-separated sequence of
// "name = value" assignments and resolves each against schema, per spec
// §4.D: missing required parameters fail; unknown parameters fail with the
// list of recognized names.
//
// Grammar (informal): text := (assignment (("," | WS+) assignment)*)? ;
// assignment := ident WS* "=" WS* value .
func ParseParams(schema Schema, text string) (Params, error) {
	values := make(map[string]Value)
	for _, raw := range splitAssignments(text) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		eq := strings.IndexByte(raw, '=')
		if eq < 0 {
			return nil, fmt.Errorf("ops.ParseParams: %q: missing '=': %w", raw, ErrParameterType)
		}
		name := strings.TrimSpace(raw[:eq])
		valText := strings.TrimSpace(raw[eq+1:])

		spec, ok := schema.find(name)
		if !ok {
			return nil, fmt.Errorf("ops.ParseParams: %q not in %v: %w", name, schema.names(), ErrUnknownParameter)
		}

		v, err := parseValue(spec, valText)
		if err != nil {
			return nil, fmt.Errorf("ops.ParseParams: %q: %w", name, err)
		}
		values[name] = v
	}

	return NewParams(schema, values)
}

func splitAssignments(text string) []string {
	// Commas and runs of whitespace both separate assignments; either
	// style reads naturally in a query string ("base=2, eps=1e-9" or
	// "base=2 eps=1e-9"). Words around an '=' are glued back together so
	// "min = 0" stays one assignment.
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\t'
	})
	var out []string
	for _, f := range fields {
		var words []string
		for _, w := range strings.Fields(f) {
			if k := len(words); k > 0 && (strings.HasPrefix(w, "=") || strings.HasSuffix(words[k-1], "=")) {
				words[k-1] += w
				continue
			}
			words = append(words, w)
		}
		out = append(out, words...)
	}

	return out
}

func parseValue(spec ParamSpec, text string) (Value, error) {
	switch spec.Kind {
	case ParamInt:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%q is not an integer: %w", text, ErrParameterType)
		}
		return Value{Int: n}, nil
	case ParamFloat:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%q is not a float: %w", text, ErrParameterType)
		}
		return Value{Float: f}, nil
	case ParamDType:
		k, ok := parseKindName(text)
		if !ok {
			return Value{}, fmt.Errorf("%q is not a dtype: %w", text, ErrParameterType)
		}
		return Value{DType: k}, nil
	case ParamEnum:
		if !containsStr(spec.Enum, text) {
			return Value{}, fmt.Errorf("%q not in %v: %w", text, spec.Enum, ErrParameterType)
		}
		return Value{Enum: text}, nil
	default:
		return Value{}, fmt.Errorf("unrecognized parameter kind: %w", ErrParameterType)
	}
}

func parseKindName(text string) (storage.Kind, bool) {
	for k := storage.KindInt8; k <= storage.KindString; k++ {
		if strings.EqualFold(k.String(), text) {
			return k, true
		}
	}

	return 0, false
}

func containsStr(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}

	return false
}
