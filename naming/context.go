// SPDX-License-Identifier: MIT
package naming

import "fmt"

// WithContext prepends one `for the X "v": ` prefix to err, the way
// every layer of daf composes its domain context before passing an error
// up to its caller. Repeated application reads as a stack of contexts,
// outermost first, all on one line: contexts are joined with ": ", not
// with newlines.
//
//	WithContext("vertex", "cell", WithContext("property", "age", err))
//	// => `for the vertex "cell": for the property "age": <err>`
//
// subject and value together name what was being processed; value is
// rendered with Present when it is not already a string.
func WithContext(subject string, value interface{}, err error) error {
	if err == nil {
		return nil
	}

	rendered, ok := value.(string)
	if !ok {
		rendered = Present(value)
	} else {
		rendered = fmt.Sprintf("%q", rendered)
	}

	return fmt.Errorf("for the %s %s: %w", subject, rendered, err)
}
