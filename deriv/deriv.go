// Package deriv computes Brzozowski/Antimirov-style derivatives of
// canonical rx nodes.
//
// Deriv(r, a) returns the node whose language is { w : a·w ∈ L(r) }. Every
// result is built through rx's smart constructors, so two derivatives that
// are semantically equal are very often identical by id, which is what
// lets package dfa memoize (state, class) -> state as a plain map lookup.
package deriv

import "github.com/coregx/derivex/rx"

// Deriv computes the derivative of the node named by root with respect to
// byte b.
//
// Derivative computation over Or/And/Concat chains of unbounded width does
// not recurse: it walks an explicit worklist of frames, the same shape as
// the generic AST-mapping routine in the Rust sources this algorithm is
// drawn from (a trampoline that pushes each child's frame and only
// combines a node once every child's result is ready). This keeps stack
// depth bounded by the nesting depth of Star/Not/Lookahead wrappers, never
// by the arity of an Or/And or the length of a Concat chain.
func Deriv(store *rx.Store, root rx.ID, b byte) rx.ID {
	memo := make(map[rx.ID]rx.ID)
	return derivMemo(store, root, b, memo)
}

// DerivClass computes the derivative with respect to any representative
// byte of a byte class produced by package charclass. It is defined in
// terms of Deriv: charclass guarantees every byte within one class yields
// the same derivative for the node in question, so there is nothing
// class-specific to do beyond picking a representative.
func DerivClass(store *rx.Store, root rx.ID, representative byte) rx.ID {
	return Deriv(store, root, representative)
}

// frame is one pending node in the iterative worklist: the node whose
// derivative we want (id), the list of child ids whose derivatives must be
// computed first (needed, decided once and never recomputed), and the
// derivatives collected so far for those children (args, built up one at a
// time, in order).
type frame struct {
	id     rx.ID
	needed []rx.ID
	args   []rx.ID
}

func derivMemo(store *rx.Store, root rx.ID, b byte, memo map[rx.ID]rx.ID) rx.ID {
	if res, ok := memo[root]; ok {
		return res
	}

	stack := []*frame{{id: root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.needed == nil {
			top.needed = childrenFor(store, top.id)
		}

		if len(top.args) < len(top.needed) {
			child := top.needed[len(top.args)]
			if res, ok := memo[child]; ok {
				top.args = append(top.args, res)
				continue
			}
			stack = append(stack, &frame{id: child})
			continue
		}

		result := combine(store, top.id, b, top.args)
		memo[top.id] = result
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			return result
		}
		parent := stack[len(stack)-1]
		parent.args = append(parent.args, result)
	}

	panic("deriv: worklist exhausted without producing a result")
}

// childrenFor returns the child ids whose derivative must be known before
// id's own derivative can be combined. Whether Concat needs its tail's
// derivative is decided from the already-cached Nullable attribute, never
// from a derivative computation, so the needed list is fully static.
func childrenFor(store *rx.Store, id rx.ID) []rx.ID {
	switch store.Kind(id) {
	case rx.KindEmpty, rx.KindEpsilon, rx.KindByte:
		return nil
	case rx.KindConcat:
		head, tail := store.ConcatParts(id)
		if store.Nullable(head) {
			return []rx.ID{head, tail}
		}
		return []rx.ID{head}
	case rx.KindStar:
		return []rx.ID{store.StarSub(id)}
	case rx.KindOr, rx.KindAnd:
		children := store.Children(id)
		out := make([]rx.ID, len(children))
		copy(out, children)
		return out
	case rx.KindNot:
		return []rx.ID{store.NotSub(id)}
	case rx.KindLookahead:
		return []rx.ID{store.LookaheadStop(id)}
	default:
		panic("deriv: unknown node kind")
	}
}

// combine builds d(id) from id's kind and the already-computed derivatives
// of its needed children (args, in the same order childrenFor returned
// them).
func combine(store *rx.Store, id rx.ID, b byte, args []rx.ID) rx.ID {
	switch store.Kind(id) {
	case rx.KindEmpty, rx.KindEpsilon:
		return store.Empty()
	case rx.KindByte:
		for _, r := range store.ByteRanges(id) {
			if b >= r.Lo && b <= r.Hi {
				return store.EpsilonID()
			}
		}
		return store.Empty()
	case rx.KindConcat:
		_, tail := store.ConcatParts(id)
		dHead := args[0]
		if len(args) == 2 {
			alts := []rx.ID{store.Concat(dHead, tail), args[1]}
			for i, alt := range alts {
				// Or may not hold a Lookahead operand; Lookahead(x) has
				// x's language, so the wrapper is dropped here.
				if store.Kind(alt) == rx.KindLookahead {
					alts[i] = store.LookaheadStop(alt)
				}
			}
			return store.Or(alts)
		}
		return store.Concat(dHead, tail)
	case rx.KindStar:
		dSub := args[0]
		return store.Concat(dSub, id) // id is already Star(x); no need to rebuild it
	case rx.KindOr:
		alts := make([]rx.ID, len(args))
		for i, alt := range args {
			if store.Kind(alt) == rx.KindLookahead {
				alt = store.LookaheadStop(alt)
			}
			alts[i] = alt
		}
		return store.Or(alts)
	case rx.KindAnd:
		return store.And(args)
	case rx.KindNot:
		return store.Not(args[0])
	case rx.KindLookahead:
		return store.Lookahead(args[0])
	default:
		panic("deriv: unknown node kind")
	}
}
