// Package dfa implements the lazy DFA driver: it memoizes the
// (state, class) -> state transition table as derivatives are discovered
// and answers is_match / lookahead_len queries over that table.
//
// Unlike dfa/lazy.DFA in the teacher repo, a state here needs no separate
// StateKey/StateID machinery: a compiled rx.Store already hash-conses
// every node, so the canonical node id IS the state identity. Two
// different derivative paths that land on the same id are, by
// construction, the same DFA state: "intern the result and cache the
// transition" is the entire determinization step.
package dfa

import (
	"github.com/coregx/derivex/charclass"
	"github.com/coregx/derivex/deriv"
	"github.com/coregx/derivex/internal/asciiscan"
	"github.com/coregx/derivex/rx"
)

// state is a single row of the lazily-filled transition table: the node
// id that names this state, its cached nullability, and the transitions
// discovered for it so far, keyed by class index rather than raw byte
// (the whole point of package charclass: bytes sharing a class share one
// cache entry here instead of 256 independent ones).
type state struct {
	id          rx.ID
	nullable    bool
	filled      bool
	transitions map[byte]rx.ID

	// asciiNext/asciiFilled cache the byte-indexed (not class-indexed)
	// transition for bytes 0x00-0x7F, skipping the class lookup entirely
	// on the ASCII fast path IsMatch takes once asciiscan.IsASCII has
	// confirmed the whole input needs no 0x80-0xFF handling at all.
	asciiNext   [128]rx.ID
	asciiFilled [128]bool
}

// DFA drives byte input through a compiled rx expression, discovering and
// caching transitions on demand.
//
// A DFA is not safe for concurrent use, matching rx.Store's own
// concurrency contract: a compiled Regex owns exactly one DFA driving
// exactly one Store.
type DFA struct {
	store   *rx.Store
	classes charclass.Classes
	states  map[rx.ID]*state

	// root is the node IsMatch/getState actually drive. For a pattern
	// ending in a trailing lookahead, this is Concat(prefix, stop) with
	// the Lookahead wrapper stripped, never the raw compiled root: per
	// spec.md, Lookahead(x) and x always have the same language (nullable
	// and the derivative rule both pass straight through to stop), so
	// unwrapping it here costs nothing and keeps every state this DFA
	// discovers a plain Concat/Or/And/Not/Star tree, exactly the shape
	// rx.Or's placement invariant expects. The Lookahead wrapper itself
	// only ever mattered for locating prefix/stop in the first place,
	// which detectLookahead has already done by the time root is set.
	root rx.ID

	hasLookahead bool
	prefixID     rx.ID
	stopID       rx.ID
}

// Compile builds a DFA driver for root, partitioning its alphabet once up
// front via package charclass. No states are determinized yet beyond the
// start state; every other transition is filled in on first use.
func Compile(store *rx.Store, root rx.ID) *DFA {
	d := &DFA{
		store:  store,
		states: make(map[rx.ID]*state),
	}
	d.detectLookahead(root)
	if d.hasLookahead {
		d.root = store.Concat(d.prefixID, d.stopID)
	} else {
		d.root = root
	}
	d.classes = charclass.Partition(store, d.root)
	d.getState(d.root)
	return d
}

// detectLookahead recognizes the two canonical shapes a compiled root can
// take when the pattern ends in a trailing (?P<stop>...) group: a bare
// Lookahead (the whole pattern is the stop group) or a right-associated
// Concat spine whose last tail is Lookahead(stop), the heads before it
// forming the prefix. Any other shape means LookaheadLen is never
// meaningful for this DFA, per spec.md §6.
func (d *DFA) detectLookahead(root rx.ID) {
	switch d.store.Kind(root) {
	case rx.KindLookahead:
		d.hasLookahead = true
		d.prefixID = d.store.EpsilonID()
		d.stopID = d.store.LookaheadStop(root)
	case rx.KindConcat:
		var heads []rx.ID
		cur := root
		for d.store.Kind(cur) == rx.KindConcat {
			head, tail := d.store.ConcatParts(cur)
			heads = append(heads, head)
			cur = tail
		}
		if d.store.Kind(cur) == rx.KindLookahead {
			prefix := d.store.EpsilonID()
			for i := len(heads) - 1; i >= 0; i-- {
				prefix = d.store.Concat(heads[i], prefix)
			}
			d.hasLookahead = true
			d.prefixID = prefix
			d.stopID = d.store.LookaheadStop(cur)
		}
	}
}

func (d *DFA) getState(id rx.ID) *state {
	if st, ok := d.states[id]; ok {
		return st
	}
	st := &state{
		id:          id,
		nullable:    d.store.Nullable(id),
		transitions: make(map[byte]rx.ID, 8),
	}
	d.states[id] = st
	return st
}

// step determinizes (or reuses a cached) transition from st on byte b.
// The cache key is b's class, so every other byte sharing that class
// reuses this same lookup without ever calling deriv.Deriv again.
func (d *DFA) step(st *state, b byte) *state {
	class := d.classes.Get(b)
	if nextID, ok := st.transitions[class]; ok {
		return d.getState(nextID)
	}
	d.fillRow(st)
	return d.getState(st.transitions[class])
}

// fillRow expands st's entire transition row in one pass over
// classes.Representatives rather than one class at a time: a state, once
// visited by any byte, is cheap to finish determinizing completely (one
// deriv.DerivClass call per equivalence class, not per byte value), and
// doing so up front means every later step against this same state is a
// plain map lookup regardless of which classes the rest of the input
// happens to touch.
func (d *DFA) fillRow(st *state) {
	if st.filled {
		return
	}
	for _, rep := range d.classes.Representatives() {
		class := d.classes.Get(rep)
		if _, ok := st.transitions[class]; ok {
			continue
		}
		st.transitions[class] = deriv.DerivClass(d.store, st.id, rep)
	}
	st.filled = true
}

// stepASCII is step's counterpart for the ASCII fast path: it caches the
// resolved next state directly by byte value on st, bypassing the
// class-index lookup step goes through. The class map is still the
// source of truth, stepASCII just remembers what step already computed.
func (d *DFA) stepASCII(st *state, b byte) *state {
	if st.asciiFilled[b] {
		return d.getState(st.asciiNext[b])
	}
	next := d.step(st, b)
	st.asciiFilled[b] = true
	st.asciiNext[b] = next.id
	return next
}

// IsMatch reports whether input, taken as a whole, is in the compiled
// expression's language: whole-input anchored match, not substring or
// prefix search (spec.md §6). Once a state's id is Empty the DFA can
// never accept again (Empty is an absorbing state under every further
// derivative), so the scan exits early rather than continuing to churn
// through dead transitions.
func (d *DFA) IsMatch(input []byte) bool {
	st := d.getState(d.root)
	ascii := asciiscan.IsASCII(input)
	for _, b := range input {
		if d.store.IsEmpty(st.id) {
			return false
		}
		if ascii {
			st = d.stepASCII(st, b)
		} else {
			st = d.step(st, b)
		}
	}
	return st.nullable
}

// LookaheadLen reports the byte length of the trailing stop group's match
// when input, as a whole, matches the compiled expression. It is only
// meaningful when the compiled root ends in a single trailing lookahead;
// for any other compiled shape it always returns (0, false).
//
// The split point is not recoverable from the fused root DFA alone: once
// two different candidate split positions' residual stop expressions
// collapse to the same hash-consed id, the DFA state can no longer tell
// which position produced it. So LookaheadLen re-derives prefix and stop
// independently: it finds every position j where input[0:j] fully
// matches the prefix, then, starting from the largest such j, checks
// whether input[j:] fully matches stop on its own, returning the first
// (largest) j that does. This is exactly spec.md §4.4's definition of
// last_accept_prefix: "the largest prefix length at which (a) the prefix
// part was fully matched and (b) continuing from that point up to
// end-of-input matches stop."
func (d *DFA) LookaheadLen(input []byte) (int, bool) {
	if !d.hasLookahead {
		return 0, false
	}
	if !d.IsMatch(input) {
		return 0, false
	}

	n := len(input)
	prefixNullableAt := make([]bool, n+1)
	cur := d.prefixID
	prefixNullableAt[0] = d.store.Nullable(cur)
	for i := 0; i < n; i++ {
		cur = deriv.Deriv(d.store, cur, input[i])
		prefixNullableAt[i+1] = d.store.Nullable(cur)
	}

	for j := n; j >= 0; j-- {
		if !prefixNullableAt[j] {
			continue
		}
		stopCur := d.stopID
		for i := j; i < n; i++ {
			stopCur = deriv.Deriv(d.store, stopCur, input[i])
		}
		if d.store.Nullable(stopCur) {
			return n - j, true
		}
	}
	return 0, false
}

// HasLookahead reports whether this DFA's compiled root ends in a
// trailing lookahead, i.e. whether LookaheadLen can ever return true.
func (d *DFA) HasLookahead() bool {
	return d.hasLookahead
}

// StateCount returns the number of distinct states discovered so far.
// Exposed for diagnostics and tests, mirroring dfa/lazy.Cache.Size in the
// teacher repo.
func (d *DFA) StateCount() int {
	return len(d.states)
}
