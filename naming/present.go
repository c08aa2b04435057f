// SPDX-License-Identifier: MIT
package naming

import (
	"fmt"

	"github.com/daf-project/daf/storage"
)

// Present formats a value for human display, per spec §4.C: strings are
// quoted, floats use a fixed significant-digit count, arrays and matrices
// summarize shape and element kind rather than dumping every element.
//
// Present accepts storage.Scalar, *storage.Array, and *storage.Matrix; any
// other type falls back to fmt.Sprintf("%v", v).
func Present(v interface{}) string {
	switch x := v.(type) {
	case storage.Scalar:
		return x.Present()
	case *storage.Array:
		return fmt.Sprintf("Array[%s](len=%d)", x.Kind(), x.Len())
	case *storage.Matrix:
		return fmt.Sprintf("Matrix[%s](%dx%d, %s)", x.Kind(), x.Rows(), x.Cols(), x.Form())
	default:
		return fmt.Sprintf("%v", v)
	}
}
