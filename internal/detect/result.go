package detect

import (
	"slices"
	"strings"
)

// Result is the outcome of checking one application.
// The zero value is NotFound.
type Result struct {
	packages []string
}

// NotFound is the result of a check that matched no package.
var NotFound = Result{}

// NewResult returns a result holding the matched packages in the given order.
// An empty list yields NotFound.
func NewResult(packages []string) Result {
	if len(packages) == 0 {
		return NotFound
	}
	return Result{packages: slices.Clone(packages)}
}

// Found reports whether at least one package matched.
func (r Result) Found() bool {
	return len(r.packages) > 0
}

// Packages returns the matched packages in catalog order, or nil.
func (r Result) Packages() []string {
	return slices.Clone(r.packages)
}

// String renders the matches joined by ", ", or "not found".
func (r Result) String() string {
	if !r.Found() {
		return "not found"
	}
	return strings.Join(r.packages, ", ")
}
