// Package rx implements the canonical regex node representation: a
// hash-consed, immutable tree whose smart constructors enforce a canonical
// form strong enough that semantic equivalence between two nodes produced by
// derivation usually reduces to pointer (id) equality.
//
// Every node lives in a Store. A Store is the single owner of its nodes;
// nodes are referred to everywhere else by their dense, small integer ID,
// the way dfa/lazy.State refers to nfa.StateID rather than embedding NFA
// state pointers.
package rx

import "github.com/coregx/derivex/cons"

// ID identifies a canonically-constructed node within a Store.
//
// Two ids are equal if and only if the nodes they name are structurally
// equal (Store invariant #1: no two live nodes have equal structure but
// different ids). ID 0 is always Empty; ID 1 is always Epsilon. Every
// Store allocates them first.
type ID uint32

// Kind tags the variant of a node.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindEpsilon
	KindByte
	KindConcat
	KindStar
	KindOr
	KindAnd
	KindNot
	KindLookahead
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindEpsilon:
		return "Epsilon"
	case KindByte:
		return "Byte"
	case KindConcat:
		return "Concat"
	case KindStar:
		return "Star"
	case KindOr:
		return "Or"
	case KindAnd:
		return "And"
	case KindNot:
		return "Not"
	case KindLookahead:
		return "Lookahead"
	default:
		return "Unknown"
	}
}

// ByteRange is an inclusive range of byte values.
type ByteRange struct {
	Lo, Hi byte
}

// node is the internal, immutable representation of a single regex node.
// Only the fields relevant to its Kind are populated; the rest are zero.
type node struct {
	kind     Kind
	nullable bool

	ranges []ByteRange // KindByte

	head, tail ID // KindConcat

	sub ID // KindStar, KindNot, KindLookahead

	vecID    uint32 // KindOr, KindAnd: id of the hash-consed children vector
	children []ID   // KindOr, KindAnd: resolved children, for convenience
}

// Store owns every node interned through it. It is the arena+index pattern:
// structural equality checks become id comparisons, and dropping the Store
// frees every node it owns in one step.
//
// Store is not safe for concurrent use. A compiled Regex owns exactly one
// Store and is responsible for serializing access to it, matching the
// single-threaded, synchronous concurrency model of the matcher as a whole.
type Store struct {
	nodes   []node
	buckets map[uint64][]ID // structural-hash -> candidate ids, for dedup
	vecs    *cons.Table     // hash-cons table for Or/And children vectors
	vecByID map[uint32][]ID // vecID -> resolved children (cons.Table stores []uint32)

	emptyID   ID
	epsilonID ID
	anyByteID ID // Byte(0x00-0xFF)
	sigmaID   ID // Not(Empty) == Star(Byte(0x00-0xFF))
}

// NewStore creates an empty Store with Empty and Epsilon pre-interned at
// ids 0 and 1.
func NewStore() *Store {
	s := &Store{
		buckets: make(map[uint64][]ID),
		vecs:    cons.New(),
		vecByID: make(map[uint32][]ID),
	}
	s.emptyID = s.intern(node{kind: KindEmpty, nullable: false})
	s.epsilonID = s.intern(node{kind: KindEpsilon, nullable: true})
	s.anyByteID = s.intern(node{kind: KindByte, nullable: false, ranges: []ByteRange{{Lo: 0x00, Hi: 0xFF}}})
	s.sigmaID = s.intern(node{kind: KindStar, nullable: true, sub: s.anyByteID})
	return s
}

// Len returns the number of distinct nodes interned in this Store.
func (s *Store) Len() int {
	return len(s.nodes)
}

// Kind returns the kind of the node named by id.
func (s *Store) Kind(id ID) Kind {
	return s.nodes[id].kind
}

// Nullable returns whether the node named by id matches the empty string.
func (s *Store) Nullable(id ID) bool {
	return s.nodes[id].nullable
}

// ByteRanges returns the sorted, non-overlapping ranges of a KindByte node.
// Panics if id does not name a KindByte node.
func (s *Store) ByteRanges(id ID) []ByteRange {
	n := &s.nodes[id]
	if n.kind != KindByte {
		panic("rx: ByteRanges called on non-Byte node")
	}
	return n.ranges
}

// ConcatParts returns the (head, tail) of a KindConcat node.
// Panics if id does not name a KindConcat node.
func (s *Store) ConcatParts(id ID) (head, tail ID) {
	n := &s.nodes[id]
	if n.kind != KindConcat {
		panic("rx: ConcatParts called on non-Concat node")
	}
	return n.head, n.tail
}

// StarSub returns the operand of a KindStar node.
// Panics if id does not name a KindStar node.
func (s *Store) StarSub(id ID) ID {
	n := &s.nodes[id]
	if n.kind != KindStar {
		panic("rx: StarSub called on non-Star node")
	}
	return n.sub
}

// NotSub returns the operand of a KindNot node.
// Panics if id does not name a KindNot node.
func (s *Store) NotSub(id ID) ID {
	n := &s.nodes[id]
	if n.kind != KindNot {
		panic("rx: NotSub called on non-Not node")
	}
	return n.sub
}

// LookaheadStop returns the "stop" operand of a KindLookahead node.
// Panics if id does not name a KindLookahead node.
func (s *Store) LookaheadStop(id ID) ID {
	n := &s.nodes[id]
	if n.kind != KindLookahead {
		panic("rx: LookaheadStop called on non-Lookahead node")
	}
	return n.sub
}

// Children returns the sorted, deduplicated children of an Or/And node.
// Panics if id does not name a KindOr or KindAnd node.
func (s *Store) Children(id ID) []ID {
	n := &s.nodes[id]
	if n.kind != KindOr && n.kind != KindAnd {
		panic("rx: Children called on non-Or/And node")
	}
	return n.children
}

// Empty returns the id of the Empty node (the language ∅).
func (s *Store) Empty() ID { return s.emptyID }

// EpsilonID returns the id of the Epsilon node (matches only "").
func (s *Store) EpsilonID() ID { return s.epsilonID }

// AnyByte returns the id of Byte(0x00-0xFF), matching exactly one byte.
func (s *Store) AnyByte() ID { return s.anyByteID }

// Sigma returns the id of Σ* (Not(Empty), equivalently Star(AnyByte)),
// the language of all byte strings.
func (s *Store) Sigma() ID { return s.sigmaID }

// IsEmpty reports whether id names the Empty node.
func (s *Store) IsEmpty(id ID) bool { return id == s.emptyID }

// intern assigns n a dense id, or returns the id of a structurally equal
// node already present. n must have every field populated except nullable
// derived fields that intern itself does not compute (callers, the smart
// constructors, are responsible for setting `nullable` before calling
// intern, since nullability depends on already-interned children).
func (s *Store) intern(n node) ID {
	key := structuralHash(n)
	for _, candidate := range s.buckets[key] {
		if structuralEqual(&s.nodes[candidate], &n) {
			return candidate
		}
	}

	id := ID(len(s.nodes))
	s.nodes = append(s.nodes, n)
	s.buckets[key] = append(s.buckets[key], id)
	return id
}

// internVec hash-cons the children of an Or/And node via the shared
// cons.Table, so identical argument lists (e.g. ones rebuilt independently
// by two different derivative steps) share one backing slice (spec.md
// §4: "Child-id vectors for Or/And are hash-consed by C1").
func (s *Store) internVec(children []ID) uint32 {
	raw := make([]uint32, len(children))
	for i, c := range children {
		raw[i] = uint32(c)
	}
	vecID := s.vecs.Intern(raw)
	if _, ok := s.vecByID[vecID]; !ok {
		stored := make([]ID, len(children))
		copy(stored, children)
		s.vecByID[vecID] = stored
	}
	return vecID
}
