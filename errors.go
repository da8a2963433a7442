package derivex

import (
	"fmt"
)

// ParseError reports that the underlying regexp/syntax parser rejected a
// pattern outright, mirroring nfa.CompileError / meta.CompileError's shape
// one for one: a pattern string plus the wrapped parser error.
type ParseError struct {
	Pattern string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("derivex: Compile(%q): %v", e.Pattern, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// UnsupportedSyntaxError reports that the parser accepted a construct the
// lowering layer has no canonical translation for: a misplaced or
// disallowed named/numbered group, a zero-width assertion, or a character
// class too large to expand. It always wraps a *lower.UnsupportedSyntaxError.
type UnsupportedSyntaxError struct {
	Pattern string
	Err     error
}

func (e *UnsupportedSyntaxError) Error() string {
	return fmt.Sprintf("derivex: Compile(%q): %v", e.Pattern, e.Err)
}

func (e *UnsupportedSyntaxError) Unwrap() error {
	return e.Err
}

// OverflowError reports that the hash-cons table's id space was exhausted
// while compiling a pattern. This is practically unreachable: a node count
// above 2^32 is not achievable by any pattern the lowering layer can
// produce without first hitting a far smaller practical limit, so its
// presence here is a signal that something upstream is corrupted, not a
// condition normal patterns trigger.
type OverflowError struct {
	Pattern string
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("derivex: Compile(%q): node id space exhausted", e.Pattern)
}

// wrapLowerErr classifies an error from lower.Lower as an
// UnsupportedSyntaxError, the only kind lower.Lower ever returns, while
// keeping the public surface independent of package lower's concrete
// error type.
func wrapLowerErr(pattern string, err error) error {
	return &UnsupportedSyntaxError{Pattern: pattern, Err: err}
}
