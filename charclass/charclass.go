// Package charclass compresses the byte alphabet used by a compiled rx
// expression into a small set of equivalence classes, so the lazy DFA in
// package dfa keys transitions on class index rather than on all 256 byte
// values.
//
// The approach is the same boundary-bitset technique the teacher's NFA
// compiler uses for its own alphabet reduction (see nfa.ByteClassSet):
// every Byte node's range contributes two boundary marks, the classes fall
// out of walking 0..255 once and bumping the class counter at each mark.
// The one difference from the NFA version is where the ranges come from:
// here they are read directly off every KindByte node reachable from a
// compiled rx root, not accumulated while compiling NFA transitions.
package charclass

import "github.com/coregx/derivex/rx"

// Classes maps each byte value to its equivalence class.
//
// Two bytes sharing a class are guaranteed to take every compiled
// expression down the same derivative for any input, so the DFA driver can
// pick either one as a representative when it needs to call deriv.Deriv.
type Classes struct {
	classes [256]byte
}

// Get returns the equivalence class of b. O(1).
func (c *Classes) Get(b byte) byte {
	return c.classes[b]
}

// Len returns the number of distinct classes.
func (c *Classes) Len() int {
	maxClass := byte(0)
	for _, v := range c.classes {
		if v > maxClass {
			maxClass = v
		}
	}
	return int(maxClass) + 1
}

// IsSingleton reports whether every byte is its own class: no alphabet
// reduction was possible (the expression distinguishes every byte value).
func (c *Classes) IsSingleton() bool {
	return c.Len() == 256
}

// Representatives returns one byte per class, in class order. dfa.fillRow
// calls deriv.DerivClass once per representative rather than once per
// byte value when expanding a state's transition row.
func (c *Classes) Representatives() []byte {
	seen := make([]bool, 256)
	var reps []byte
	for b := 0; b < 256; b++ {
		class := c.classes[b]
		if !seen[class] {
			seen[class] = true
			reps = append(reps, byte(b))
		}
	}
	return reps
}

// boundarySet accumulates boundary marks: bit i set means a new class
// starts the byte after i.
type boundarySet struct {
	bits [4]uint64
}

func (b *boundarySet) setBit(i byte) {
	b.bits[i/64] |= 1 << (i % 64)
}

func (b *boundarySet) getBit(i byte) bool {
	return b.bits[i/64]&(1<<(i%64)) != 0
}

func (b *boundarySet) setRange(lo, hi byte) {
	if lo > 0 {
		b.setBit(lo - 1)
	}
	b.setBit(hi)
}

func (b *boundarySet) classes() Classes {
	var c Classes
	class := byte(0)
	for i := 0; i < 256; i++ {
		c.classes[i] = class
		if b.getBit(byte(i)) {
			class++
		}
	}
	return c
}

// Partition computes the coarsest byte-class partition that every KindByte
// node reachable from root respects. It visits each reachable node at most
// once via an explicit worklist (the rx Store is a DAG, and patterns like
// deeply nested Star wrappers or wide Or/And alternations must not recurse
// the call stack to be walked).
func Partition(store *rx.Store, root rx.ID) Classes {
	var bounds boundarySet
	seen := make(map[rx.ID]bool)
	stack := []rx.ID{root}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id] {
			continue
		}
		seen[id] = true

		switch store.Kind(id) {
		case rx.KindEmpty, rx.KindEpsilon:
		case rx.KindByte:
			for _, r := range store.ByteRanges(id) {
				bounds.setRange(r.Lo, r.Hi)
			}
		case rx.KindConcat:
			head, tail := store.ConcatParts(id)
			stack = append(stack, head, tail)
		case rx.KindStar:
			stack = append(stack, store.StarSub(id))
		case rx.KindOr, rx.KindAnd:
			stack = append(stack, store.Children(id)...)
		case rx.KindNot:
			stack = append(stack, store.NotSub(id))
		case rx.KindLookahead:
			stack = append(stack, store.LookaheadStop(id))
		}
	}

	return bounds.classes()
}
