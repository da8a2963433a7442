package rx

import "sort"

// Byte constructs a node matching exactly one byte drawn from ranges
// (mk_byte). An empty or fully-empty range set collapses to Empty.
func (s *Store) Byte(ranges []ByteRange) ID {
	norm := normalizeRanges(ranges)
	if len(norm) == 0 {
		return s.emptyID
	}
	return s.intern(node{kind: KindByte, nullable: false, ranges: norm})
}

// Concat constructs the right-associated concatenation of a and b
// (mk_concat), collapsing Empty/Epsilon operands and re-associating so the
// result's head is never itself a Concat (Store invariant #3).
//
// Rebuilding is iterative over a's right-spine rather than recursive, so
// concatenating onto an already-long chain (e.g. a long literal string
// assembled one byte at a time) cannot overflow the call stack.
func (s *Store) Concat(a, b ID) ID {
	if a == s.emptyID || b == s.emptyID {
		return s.emptyID
	}
	if a == s.epsilonID {
		return b
	}
	if b == s.epsilonID {
		return a
	}
	if s.Kind(s.rightmost(a)) == KindLookahead {
		panic("rx: cannot concatenate after a trailing Lookahead")
	}

	var heads []ID
	cur := a
	for s.nodes[cur].kind == KindConcat {
		heads = append(heads, s.nodes[cur].head)
		cur = s.nodes[cur].tail
	}
	heads = append(heads, cur)

	result := b
	for i := len(heads) - 1; i >= 0; i-- {
		result = s.concatBase(heads[i], result)
	}
	return result
}

// concatBase interns a single Concat(head, tail) cell. head is guaranteed
// by callers (Concat's spine walk) to be neither Empty, Epsilon, nor
// itself a Concat.
func (s *Store) concatBase(head, tail ID) ID {
	return s.intern(node{
		kind:     KindConcat,
		nullable: s.Nullable(head) && s.Nullable(tail),
		head:     head,
		tail:     tail,
	})
}

func (s *Store) rightmost(id ID) ID {
	cur := id
	for s.nodes[cur].kind == KindConcat {
		cur = s.nodes[cur].tail
	}
	return cur
}

// Star constructs the Kleene closure of r (mk_star).
func (s *Store) Star(r ID) ID {
	s.rejectLookahead(r)
	if r == s.emptyID || r == s.epsilonID {
		return s.epsilonID
	}
	if s.nodes[r].kind == KindStar {
		return r // Star(Star(x)) = Star(x)
	}
	return s.intern(node{kind: KindStar, nullable: true, sub: r})
}

// Not constructs the complement of r over Σ* (mk_not): the language of
// every string r does not accept, not a per-byte class negation. That
// distinction matters for nullability: Not(Byte(x)) must stay nullable
// (the empty string isn't a one-byte match, so it IS in the complement)
// even though Byte itself is never nullable, so Not cannot fold down to
// a plain byte-class complement the way a negated character class like
// [^a-z] does; that negation happens at parse/lower time over rune
// ranges, before a Byte node is ever built, and never reaches here.
func (s *Store) Not(r ID) ID {
	s.rejectLookahead(r)
	if r == s.emptyID {
		return s.sigmaID
	}
	if r == s.sigmaID {
		return s.emptyID
	}
	if s.nodes[r].kind == KindNot {
		return s.nodes[r].sub // Not(Not(x)) = x
	}
	return s.intern(node{kind: KindNot, nullable: !s.Nullable(r), sub: r})
}

// Or constructs the n-ary alternation of children (mk_or): nested Or
// children are flattened, Empty operands are dropped, any Not(Empty) (Σ*)
// operand makes the whole expression Σ*, and the remainder is sorted,
// deduplicated, and collapsed to Empty/the sole child when possible.
func (s *Store) Or(children []ID) ID {
	for _, c := range children {
		s.rejectLookahead(c)
	}

	flat := make([]ID, 0, len(children))
	for _, c := range children {
		if s.nodes[c].kind == KindOr {
			flat = append(flat, s.nodes[c].children...)
		} else {
			flat = append(flat, c)
		}
	}

	filtered := make([]ID, 0, len(flat))
	for _, c := range flat {
		if c == s.emptyID {
			continue
		}
		if c == s.sigmaID {
			return s.sigmaID
		}
		filtered = append(filtered, c)
	}

	filtered = sortDedupeIDs(filtered)
	switch len(filtered) {
	case 0:
		return s.emptyID
	case 1:
		return filtered[0]
	}

	nullable := false
	for _, c := range filtered {
		if s.Nullable(c) {
			nullable = true
			break
		}
	}

	vecID := s.internVec(filtered)
	return s.intern(node{kind: KindOr, nullable: nullable, vecID: vecID, children: s.vecByID[vecID]})
}

// And constructs the n-ary intersection of children (mk_and): nested And
// children are flattened, any Empty operand makes the whole expression
// Empty, Σ* (the universal set, the And identity) is dropped, and the
// remainder is sorted, deduplicated, and collapsed to Σ*/the sole child
// when possible.
func (s *Store) And(children []ID) ID {
	for _, c := range children {
		s.rejectLookahead(c)
	}

	flat := make([]ID, 0, len(children))
	for _, c := range children {
		if s.nodes[c].kind == KindAnd {
			flat = append(flat, s.nodes[c].children...)
		} else {
			flat = append(flat, c)
		}
	}

	for _, c := range flat {
		if c == s.emptyID {
			return s.emptyID
		}
	}

	filtered := make([]ID, 0, len(flat))
	for _, c := range flat {
		if c == s.sigmaID {
			continue
		}
		filtered = append(filtered, c)
	}

	filtered = sortDedupeIDs(filtered)
	switch len(filtered) {
	case 0:
		return s.sigmaID
	case 1:
		return filtered[0]
	}

	nullable := true
	for _, c := range filtered {
		if !s.Nullable(c) {
			nullable = false
			break
		}
	}

	vecID := s.internVec(filtered)
	return s.intern(node{kind: KindAnd, nullable: nullable, vecID: vecID, children: s.vecByID[vecID]})
}

// Lookahead constructs a trailing lookahead marker carrying stop. Callers
// (package lower and package deriv) must only ever use the result as the
// tail of a Concat or as a compiled root; rejectLookahead enforces that no
// other constructor can absorb one, per spec.md §3's placement rule.
func (s *Store) Lookahead(stop ID) ID {
	if s.nodes[stop].kind == KindLookahead {
		panic("rx: Lookahead cannot nest another Lookahead")
	}
	return s.intern(node{kind: KindLookahead, nullable: s.Nullable(stop), sub: stop})
}

// rejectLookahead panics if id names a Lookahead node. Or/And/Not/Star
// must never absorb one (spec.md §3); reaching this panic means a caller
// violated the placement invariant, which spec.md §7 classifies as a bug,
// not a normal error.
func (s *Store) rejectLookahead(id ID) {
	if s.nodes[id].kind == KindLookahead {
		panic("rx: Lookahead may only appear as the tail of a Concat or as a compiled root")
	}
}

func sortDedupeIDs(ids []ID) []ID {
	if len(ids) < 2 {
		return ids
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := ids[:1]
	for _, id := range ids[1:] {
		if id != out[len(out)-1] {
			out = append(out, id)
		}
	}
	return out
}
