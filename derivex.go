// Package derivex compiles a regular expression into a hash-consed
// derivative representation and drives it lazily as a DFA: whole-input
// anchored matching, plus a single trailing named-group lookahead length
// query, with none of the unanchored search/replace/submatch machinery
// the teacher's public API carries.
//
// Basic usage:
//
//	re, err := derivex.Compile(`[ab]c`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	re.IsMatch([]byte("ac")) // true
//
// A pattern may end in a single named group `(?P<stop>...)`, whose match
// length is recoverable without a second compile:
//
//	re := derivex.MustCompile(`[abx]*(?P<stop>[xq]*y)`)
//	n, ok := re.LookaheadLen([]byte("axxxxxqqqy")) // 4, true
package derivex

import (
	"regexp/syntax"

	"github.com/coregx/derivex/dfa"
	"github.com/coregx/derivex/lower"
	"github.com/coregx/derivex/prefilter"
	"github.com/coregx/derivex/rx"
)

// Regex is a compiled pattern. It owns its node table and DFA cache
// outright and, per spec.md §5, is thread-compatible but not thread-safe:
// concurrent IsMatch/LookaheadLen calls on the same Regex race on the
// lazy DFA cache. Give each goroutine its own compiled Regex, or guard a
// shared one with an external mutex.
type Regex struct {
	pattern string
	store   *rx.Store
	dfa     *dfa.DFA
	gate    *prefilter.Gate
}

// Compile parses and lowers pattern, returning a Regex ready for IsMatch
// and LookaheadLen. Syntax is whatever regexp/syntax.Parse(pattern,
// syntax.Perl) accepts, minus the constructs lowering has no canonical
// translation for (see package lower): backreferences and other
// constructs regexp/syntax itself doesn't accept are ParseErrors;
// zero-width assertions, non-trailing or non-"stop" named groups, and
// numbered capture groups are UnsupportedSyntaxErrors.
func Compile(pattern string) (*Regex, error) {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil, &ParseError{Pattern: pattern, Err: err}
	}

	store := rx.NewStore()
	root, err := lower.Lower(store, pattern, re)
	if err != nil {
		return nil, wrapLowerErr(pattern, err)
	}

	return &Regex{
		pattern: pattern,
		store:   store,
		dfa:     dfa.Compile(store, root),
		gate:    prefilter.Build(store, root),
	}, nil
}

// MustCompile is Compile, panicking instead of returning an error. For
// patterns that are constants known valid at compile time.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("derivex: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// IsMatch reports whether input, taken as a whole, is in the pattern's
// language: whole-input anchored match, not substring or prefix search
// (spec.md §6). It is total: a non-matching input yields false, never an
// error or a panic.
//
// The prefilter gate runs first: if a literal the pattern requires is
// provably absent, IsMatch returns false without ever entering the
// derivative walk.
func (r *Regex) IsMatch(input []byte) bool {
	if !r.gate.Admits(input) {
		return false
	}
	return r.dfa.IsMatch(input)
}

// MatchString is IsMatch for a string argument.
func (r *Regex) MatchString(s string) bool {
	return r.IsMatch([]byte(s))
}

// LookaheadLen reports the byte length of the trailing `(?P<stop>...)`
// group's match when input, as a whole, matches the pattern. Only
// meaningful for patterns compiled with a trailing stop group; for any
// other pattern it always returns (0, false), per spec.md §6.
func (r *Regex) LookaheadLen(input []byte) (int, bool) {
	if !r.gate.Admits(input) {
		return 0, false
	}
	return r.dfa.LookaheadLen(input)
}

// HasLookahead reports whether this Regex was compiled from a pattern
// ending in a trailing `(?P<stop>...)` group, i.e. whether LookaheadLen
// can ever return true.
func (r *Regex) HasLookahead() bool {
	return r.dfa.HasLookahead()
}

// String returns the source pattern Compile was called with.
func (r *Regex) String() string {
	return r.pattern
}
