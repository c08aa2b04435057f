// SPDX-License-Identifier: MIT
package ops

import (
	"fmt"
	"sort"
	"sync"
)

// ewEntry bundles an element-wise factory with its parameter schema —
// RegisterElementWise installs both atomically, per spec §4.D's
// "registration macro/helper installs three things atomically: the
// factory, a parameter schema, and a parser" (the parser is ParseParams,
// shared and driven by the schema, so there is nothing extra to install).
type ewEntry struct {
	schema  Schema
	factory ElementWiseFactory
}

type reduceEntry struct {
	schema  Schema
	factory ReductionFactory
}

// registry is the process-wide operation registry: two maps, one per
// operation family, guarded by one lock — the same "one singleton, one
// lock" shape as layout's policy and naming's unique-name counters.
var (
	registryMu   sync.RWMutex
	elementWises = map[string]ewEntry{}
	reductions   = map[string]reduceEntry{}
)

// RegisterElementWise adds name to the element-wise registry. Operation
// names are global; re-registering an existing name returns
// ErrAlreadyRegistered (the registry is append-only within a process, per
// spec §8 scenario 6 — "unregistering is not supported").
func RegisterElementWise(name string, schema Schema, factory ElementWiseFactory) error {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := elementWises[name]; exists {
		return fmt.Errorf("ops.RegisterElementWise(%q): %w", name, ErrAlreadyRegistered)
	}
	elementWises[name] = ewEntry{schema: schema, factory: factory}

	return nil
}

// RegisterReduction adds name to the reduction registry. See
// RegisterElementWise for the append-only contract.
func RegisterReduction(name string, schema Schema, factory ReductionFactory) error {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := reductions[name]; exists {
		return fmt.Errorf("ops.RegisterReduction(%q): %w", name, ErrAlreadyRegistered)
	}
	reductions[name] = reduceEntry{schema: schema, factory: factory}

	return nil
}

// ElementWiseSchema returns the registered schema for name, or
// ErrUnknownOperation.
func ElementWiseSchema(name string) (Schema, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	e, ok := elementWises[name]
	if !ok {
		return nil, fmt.Errorf("ops.ElementWiseSchema(%q): %w", name, ErrUnknownOperation)
	}

	return e.schema, nil
}

// ReductionSchema returns the registered schema for name, or
// ErrUnknownOperation.
func ReductionSchema(name string) (Schema, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	e, ok := reductions[name]
	if !ok {
		return nil, fmt.Errorf("ops.ReductionSchema(%q): %w", name, ErrUnknownOperation)
	}

	return e.schema, nil
}

// BuildElementWise resolves name's factory and invokes it with the
// already-parsed params (see ParseParams/ElementWiseFromText).
func BuildElementWise(name string, params Params) (ElementWise, error) {
	registryMu.RLock()
	e, ok := elementWises[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("ops.BuildElementWise(%q): %w", name, ErrUnknownOperation)
	}

	return e.factory(params)
}

// BuildReduction resolves name's factory and invokes it with the
// already-parsed params.
func BuildReduction(name string, params Params) (Reduction, error) {
	registryMu.RLock()
	e, ok := reductions[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("ops.BuildReduction(%q): %w", name, ErrUnknownOperation)
	}

	return e.factory(params)
}

// ElementWiseFromText parses paramText against name's registered element-wise
// schema and builds the operation in one step — the common case for the
// query evaluator, which only ever has operation name + raw parameter text.
func ElementWiseFromText(name, paramText string) (ElementWise, error) {
	schema, err := ElementWiseSchema(name)
	if err != nil {
		return nil, err
	}
	params, err := ParseParams(schema, paramText)
	if err != nil {
		return nil, fmt.Errorf("ops.ElementWiseFromText(%q): %w", name, err)
	}

	return BuildElementWise(name, params)
}

// ReductionFromText parses paramText against name's registered reduction
// schema and builds the operation in one step.
func ReductionFromText(name, paramText string) (Reduction, error) {
	schema, err := ReductionSchema(name)
	if err != nil {
		return nil, err
	}
	params, err := ParseParams(schema, paramText)
	if err != nil {
		return nil, fmt.Errorf("ops.ReductionFromText(%q): %w", name, err)
	}

	return BuildReduction(name, params)
}

// ElementWiseNames returns the sorted list of currently registered
// element-wise operation names, for diagnostics and tests.
func ElementWiseNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(elementWises))
	for n := range elementWises {
		names = append(names, n)
	}
	sort.Strings(names)

	return names
}

// ReductionNames returns the sorted list of currently registered reduction
// operation names, for diagnostics and tests.
func ReductionNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(reductions))
	for n := range reductions {
		names = append(names, n)
	}
	sort.Strings(names)

	return names
}
