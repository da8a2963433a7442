// Package literal extracts literal byte runs that every string accepted by
// a canonical rx expression must contain.
//
// This supersedes the teacher's regexp/syntax-based Extractor: derivex's
// literal requirement only matters after lowering, once stop groups,
// repeats, and case folding have already been folded into the canonical
// rx AST, so the walk below is keyed on rx.Kind rather than syntax.Op. The
// teacher's Literal/Seq container types (completeness flag, Minimize,
// LongestCommonPrefix/Suffix) existed to support its multi-strategy
// prefilter selection; the only thing ever asked of the result here is
// "give me the required byte runs", so RequiredLiterals returns that
// directly as [][]byte rather than carrying the unused machinery along.
package literal

import (
	"github.com/coregx/derivex/rx"
)

// RequiredLiterals returns byte runs that must appear, in order, somewhere
// in any string the expression rooted at root accepts. The result is
// conservative: it may return fewer runs than the true maximal set (for
// example it never looks inside Or/And/Not/Star), but every run it does
// return is genuinely mandatory, so callers may use it as a fast-reject
// gate ahead of the derivative walk.
func RequiredLiterals(store *rx.Store, root rx.ID) [][]byte {
	return extractRequired(store, root)
}

// extractRequired walks root's Concat spine iteratively (never recursing
// into the spine itself, since lowered literals produce chains thousands
// of bytes long) collecting maximal runs of singleton Byte nodes. Any
// other node shape interrupts the current run without contributing a
// literal of its own.
func extractRequired(store *rx.Store, root rx.ID) [][]byte {
	var runs [][]byte
	var run []byte

	flush := func() {
		if len(run) > 0 {
			runs = append(runs, run)
			run = nil
		}
	}

	// Explicit stack standing in for the recursion `walk(head); walk(tail)`
	// would otherwise perform: pushing tail before head means head always
	// pops first, so a Concat spine of any length is walked in order while
	// the stack itself never grows past the pattern's actual branching
	// (Or/And children, not spine length).
	stack := []rx.ID{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch store.Kind(id) {
		case rx.KindByte:
			ranges := store.ByteRanges(id)
			if len(ranges) == 1 && ranges[0].Lo == ranges[0].Hi {
				run = append(run, ranges[0].Lo)
				continue
			}
			flush()
		case rx.KindConcat:
			head, tail := store.ConcatParts(id)
			stack = append(stack, tail, head)
		case rx.KindEpsilon:
			// contributes nothing, but doesn't interrupt a run either
		default:
			flush()
		}
	}
	flush()
	return runs
}
