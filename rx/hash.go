package rx

import "hash/fnv"

// structuralHash hashes the fields relevant to n's Kind. Two nodes with
// equal structuralHash are merely dedup candidates; structuralEqual decides
// true equality, the same two-step scheme dfa/lazy.Cache uses for its
// StateKey/State pairs.
func structuralHash(n node) uint64 {
	h := fnv.New64a()
	writeByte(h, byte(n.kind))

	switch n.kind {
	case KindByte:
		for _, r := range n.ranges {
			writeByte(h, r.Lo)
			writeByte(h, r.Hi)
		}
	case KindConcat:
		writeUint32(h, uint32(n.head))
		writeUint32(h, uint32(n.tail))
	case KindStar, KindNot, KindLookahead:
		writeUint32(h, uint32(n.sub))
	case KindOr, KindAnd:
		writeUint32(h, n.vecID)
	}

	return h.Sum64()
}

func structuralEqual(a, b *node) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindEmpty, KindEpsilon:
		return true
	case KindByte:
		return rangesEqual(a.ranges, b.ranges)
	case KindConcat:
		return a.head == b.head && a.tail == b.tail
	case KindStar, KindNot, KindLookahead:
		return a.sub == b.sub
	case KindOr, KindAnd:
		return a.vecID == b.vecID
	default:
		return false
	}
}

func rangesEqual(a, b []ByteRange) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func writeByte(h interface{ Write([]byte) (int, error) }, b byte) {
	_, _ = h.Write([]byte{b})
}

func writeUint32(h interface{ Write([]byte) (int, error) }, v uint32) {
	_, _ = h.Write([]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
}
