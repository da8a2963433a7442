// Package prefilter builds a required-literal fast-reject gate ahead of the
// byte-at-a-time derivative walk.
//
// The teacher's prefilter package answers "where might a match start" for
// unanchored search (Teddy, memchr/memmem, digit scanning), questions that
// don't arise for derivex, whose matches are always whole-input anchored.
// What does carry over is the teacher's other use of
// github.com/coregx/ahocorasick: meta.buildStrategyEngines builds one
// Automaton from a set of literal byte runs via NewBuilder/AddPattern/Build
// and asks it IsMatch before running the full engine. Gate does exactly
// that, sourcing its literals from literal.RequiredLiterals instead of a
// syntax-tree walk.
package prefilter

import (
	"bytes"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/derivex/literal"
	"github.com/coregx/derivex/rx"
)

// Gate reports whether an input can be quickly ruled out as a non-match
// before the full derivative walk runs, by checking that every literal
// run required by the compiled pattern is present.
//
// A nil or empty Gate admits everything, a correct, cheap default for
// patterns (most of them) with no extractable required literal.
type Gate struct {
	literals [][]byte
	auto     *ahocorasick.Automaton
}

// Build constructs a Gate for the compiled expression rooted at root.
func Build(store *rx.Store, root rx.ID) *Gate {
	lits := literal.RequiredLiterals(store, root)
	if len(lits) == 0 {
		return &Gate{}
	}

	builder := ahocorasick.NewBuilder()
	for _, lit := range lits {
		builder.AddPattern(lit)
	}
	auto, err := builder.Build()
	if err != nil {
		// Fall back to the AND-scan below; the gate is still correct,
		// just without the automaton's throughput.
		auto = nil
	}
	return &Gate{literals: lits, auto: auto}
}

// Admits reports whether input could possibly be accepted by the pattern
// Build was called with. false is a proof of non-match; true means the
// caller must still run the full derivative walk to know for sure.
//
// A single required literal is checked with one Automaton.IsMatch call,
// mirroring meta.Engine's findAhoCorasick gate exactly. More than one
// required literal means every run must independently appear. IsMatch
// alone would only prove "at least one of them appears", which is OR, not
// the AND the multiple runs actually require, so that case is confirmed
// with a per-literal bytes.Contains scan instead of the automaton.
func (g *Gate) Admits(input []byte) bool {
	if g == nil || len(g.literals) == 0 {
		return true
	}
	if len(g.literals) == 1 {
		if g.auto != nil {
			return g.auto.IsMatch(input)
		}
		return bytes.Contains(input, g.literals[0])
	}
	for _, lit := range g.literals {
		if !bytes.Contains(input, lit) {
			return false
		}
	}
	return true
}
