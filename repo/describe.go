package repo

import (
	"fmt"
	"sort"
	"strings"
)

// Describe returns a deterministic textual dump of the repository's shape:
// its name, axes and their sizes, scalar names, per-axis vector names, and
// per-axis-pair matrix names — used in logs and tests (spec §4.F.5).
// Every collection is sorted before printing so the output is byte-stable
// across runs, the way a test fixture needs it to be.
func (r *Repository) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Repository %q\n", r.Name())

	axes := r.AxisNames()
	sort.Strings(axes)
	fmt.Fprintf(&b, "Axes:\n")
	for _, a := range axes {
		n, _ := r.AxisLength(a)
		fmt.Fprintf(&b, "  %s (%d)\n", a, n)
	}

	fmt.Fprintf(&b, "Scalars:\n")
	scalars := r.ScalarNames()
	sort.Strings(scalars)
	for _, s := range scalars {
		fmt.Fprintf(&b, "  %s\n", s)
	}

	fmt.Fprintf(&b, "Vectors:\n")
	for _, a := range axes {
		props := r.VectorNames(a)
		sort.Strings(props)
		for _, p := range props {
			fmt.Fprintf(&b, "  %s.%s\n", a, p)
		}
	}

	fmt.Fprintf(&b, "Matrices:\n")
	for _, rr := range axes {
		for _, cc := range axes {
			props := r.MatrixNames(rr, cc)
			sort.Strings(props)
			for _, p := range props {
				fmt.Fprintf(&b, "  (%s, %s).%s\n", rr, cc, p)
			}
		}
	}

	return b.String()
}
