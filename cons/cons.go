// Package cons provides a hash-cons table for deduplicating variable-length
// id vectors.
//
// It backs the n-ary nodes of package rx (Or, And): the sorted, deduplicated
// list of child ids for an alternation or intersection is itself interned so
// that two nodes built from the same argument list share one allocation and
// compare by id instead of by slice contents.
package cons

import "hash/fnv"

// Key is a content hash of an id vector, used for cache lookups.
//
// Collisions are expected and resolved by full content comparison in Table;
// Key alone never decides equality.
type Key uint64

// HashIDs computes a content hash for a vector of ids.
//
// The hash is order-sensitive: callers that need set semantics (Or/And
// children) must sort and dedupe before calling HashIDs, the way
// dfa/lazy.ComputeStateKey sorts NFA state sets before hashing them.
func HashIDs(ids []uint32) Key {
	h := fnv.New64a()
	var buf [4]byte
	for _, id := range ids {
		buf[0] = byte(id)
		buf[1] = byte(id >> 8)
		buf[2] = byte(id >> 16)
		buf[3] = byte(id >> 24)
		_, _ = h.Write(buf[:])
	}
	return Key(h.Sum64())
}

// entry is one hash bucket: a content hash may be shared by several
// distinct vectors, so each bucket holds every vector seen for that hash
// along with the id it was assigned.
type entry struct {
	ids []uint32
	id  uint32
}

// Table deduplicates id vectors by content, assigning each distinct vector
// a dense, small integer id on first sight.
//
// Table is not safe for concurrent use; callers that share a Table across
// goroutines must serialize access externally, matching the rest of a
// compiled regex's single-owner-arena discipline.
type Table struct {
	buckets map[Key][]entry
	nextID  uint32
}

// New creates an empty hash-cons table.
func New() *Table {
	return &Table{buckets: make(map[Key][]entry)}
}

// Intern returns the id previously assigned to ids, or allocates and
// returns a new one.
//
// The returned id is stable for the lifetime of the Table: repeated calls
// with an equal (by content) vector always return the same id.
func (t *Table) Intern(ids []uint32) uint32 {
	key := HashIDs(ids)
	bucket := t.buckets[key]
	for _, e := range bucket {
		if idsEqual(e.ids, ids) {
			return e.id
		}
	}

	stored := make([]uint32, len(ids))
	copy(stored, ids)

	id := t.nextID
	t.nextID++
	t.buckets[key] = append(bucket, entry{ids: stored, id: id})
	return id
}

// Len returns the number of distinct vectors interned so far.
func (t *Table) Len() int {
	n := 0
	for _, bucket := range t.buckets {
		n += len(bucket)
	}
	return n
}

func idsEqual(a, b []uint32) bool {
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
