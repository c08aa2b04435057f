package eval

import (
	"fmt"

	"github.com/daf-project/daf/repo"
)

// resolveSliceAxes finds the (rows, cols) axis-name pair for a
// MatrixSliceLookup, given the axis named by its FilteredAxis and whether
// that axis is the rows or the columns side. The grammar's fixed-entry
// tuple position names an entry but not its owning axis, so the other axis is found by searching every axis pair that stores
// property and keeps it unique by also requiring fixedEntry to be a member
// of the candidate axis.
func resolveSliceAxes(r repo.Reader, property, knownAxis string, knownIsRows bool, fixedEntry string) (rows, cols string, err error) {
	var candidates []string
	for _, other := range r.AxisNames() {
		var rr, cc string
		if knownIsRows {
			rr, cc = knownAxis, other
		} else {
			rr, cc = other, knownAxis
		}
		if !r.HasMatrix(rr, cc, property) {
			continue
		}
		if _, idxErr := r.EntryIndex(other, fixedEntry); idxErr != nil {
			continue
		}
		candidates = append(candidates, other)
	}

	switch len(candidates) {
	case 0:
		return "", "", fmt.Errorf("eval.resolveSliceAxes: no axis pairs with property %q and entry %q: %w", property, fixedEntry, ErrNotFound)
	case 1:
		if knownIsRows {
			return knownAxis, candidates[0], nil
		}

		return candidates[0], knownAxis, nil
	default:
		return "", "", fmt.Errorf("eval.resolveSliceAxes: property %q and entry %q: %w", property, fixedEntry, ErrAmbiguousMatrix)
	}
}

// resolveEntryAxes finds the (rows, cols) axis-name pair for a
// MatrixEntryLookup, whose two tuple positions name entries but not their
// owning axes: every axis pair storing property is a candidate, narrowed
// to those where rowEntry is a member of the rows axis and colEntry a
// member of the cols axis.
func resolveEntryAxes(r repo.Reader, property, rowEntry, colEntry string) (rows, cols string, err error) {
	axes := r.AxisNames()
	var rowsOut, colsOut string
	count := 0
	for _, rr := range axes {
		for _, cc := range axes {
			if !r.HasMatrix(rr, cc, property) {
				continue
			}
			if _, idxErr := r.EntryIndex(rr, rowEntry); idxErr != nil {
				continue
			}
			if _, idxErr := r.EntryIndex(cc, colEntry); idxErr != nil {
				continue
			}
			rowsOut, colsOut = rr, cc
			count++
		}
	}

	switch count {
	case 0:
		return "", "", fmt.Errorf("eval.resolveEntryAxes: no axis pair with property %q, entries %q/%q: %w",
			property, rowEntry, colEntry, ErrNotFound)
	case 1:
		return rowsOut, colsOut, nil
	default:
		return "", "", fmt.Errorf("eval.resolveEntryAxes: property %q, entries %q/%q: %w", property, rowEntry, colEntry, ErrAmbiguousMatrix)
	}
}
