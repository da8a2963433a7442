// Package lower turns a parsed regexp/syntax.Regexp concrete AST into a
// canonical rx node, the lowering step C5 delegates surface-syntax parsing
// to regexp/syntax (spec.md's "off-the-shelf regex-syntax parser") and
// owns everything from there on: repetition expansion, +/? desugaring,
// and recognizing the single trailing `(?P<stop>...)` group.
//
// The switch over re.Op mirrors nfa.Compiler.compileRegexp's shape, but
// builds rx.ID values through the smart constructors instead of NFA
// states, and has no recursion-depth counter: rx's constructors are
// already stack-safe for unbounded width/depth, and this walk never
// visits a node more than once.
package lower

import (
	"fmt"
	"regexp/syntax"

	"github.com/coregx/derivex/rx"
)

// UnsupportedSyntaxError reports a syntax.Regexp construct that lowering
// has no canonical translation for: a named or numbered group other than
// a single trailing "stop", or a lookahead occurring anywhere but the
// tail of the pattern.
type UnsupportedSyntaxError struct {
	Pattern string
	Reason  string
}

func (e *UnsupportedSyntaxError) Error() string {
	return fmt.Sprintf("derivex: unsupported syntax in pattern %q: %s", e.Pattern, e.Reason)
}

// stopGroupName is the only named capture lowering accepts, and only as
// the last element of a top-level concatenation or as the entire pattern.
const stopGroupName = "stop"

// Lower compiles a parsed pattern into a canonical rx node rooted in
// store. pattern is carried through only for error messages.
func Lower(store *rx.Store, pattern string, re *syntax.Regexp) (rx.ID, error) {
	l := &lowerer{store: store, pattern: pattern}
	return l.lowerTop(re)
}

type lowerer struct {
	store   *rx.Store
	pattern string
}

func (l *lowerer) errf(format string, args ...interface{}) error {
	return &UnsupportedSyntaxError{Pattern: l.pattern, Reason: fmt.Sprintf(format, args...)}
}

// lowerTop lowers the root of the pattern, which is the only place a
// trailing stop group is permitted to appear (as the last element of a
// top-level OpConcat, or as the entire pattern).
func (l *lowerer) lowerTop(re *syntax.Regexp) (rx.ID, error) {
	if re.Op == syntax.OpConcat && len(re.Sub) > 0 {
		last := re.Sub[len(re.Sub)-1]
		if stop, ok := stopGroup(last); ok {
			prefixParts := re.Sub[:len(re.Sub)-1]
			prefix, err := l.lowerConcatParts(prefixParts)
			if err != nil {
				return 0, err
			}
			stopID, err := l.lower(stop)
			if err != nil {
				return 0, err
			}
			return l.store.Concat(prefix, l.store.Lookahead(stopID)), nil
		}
	}
	if stop, ok := stopGroup(re); ok {
		stopID, err := l.lower(stop)
		if err != nil {
			return 0, err
		}
		return l.store.Lookahead(stopID), nil
	}
	return l.lower(re)
}

// stopGroup reports whether re is exactly the named capture (?P<stop>...).
func stopGroup(re *syntax.Regexp) (*syntax.Regexp, bool) {
	if re.Op == syntax.OpCapture && re.Name == stopGroupName {
		return re.Sub[0], true
	}
	return nil, false
}

func (l *lowerer) lower(re *syntax.Regexp) (rx.ID, error) {
	switch re.Op {
	case syntax.OpNoMatch:
		return l.store.Empty(), nil
	case syntax.OpEmptyMatch:
		return l.store.EpsilonID(), nil
	case syntax.OpLiteral:
		return l.lowerLiteral(re.Rune, re.Flags&syntax.FoldCase != 0)
	case syntax.OpCharClass:
		return l.lowerCharClass(re.Rune)
	case syntax.OpAnyCharNotNL:
		return l.store.Byte([]rx.ByteRange{{Lo: 0x00, Hi: 0x09}, {Lo: 0x0B, Hi: 0xFF}}), nil
	case syntax.OpAnyChar:
		return l.store.AnyByte(), nil
	case syntax.OpBeginLine, syntax.OpBeginText, syntax.OpEndLine, syntax.OpEndText,
		syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return 0, l.errf("zero-width assertions are not representable as byte-derivative regexes")
	case syntax.OpConcat:
		return l.lowerConcatParts(re.Sub)
	case syntax.OpAlternate:
		return l.lowerAlternate(re.Sub)
	case syntax.OpStar:
		sub, err := l.lower(re.Sub[0])
		if err != nil {
			return 0, err
		}
		return l.store.Star(sub), nil
	case syntax.OpPlus:
		sub, err := l.lower(re.Sub[0])
		if err != nil {
			return 0, err
		}
		// x+ = x . x*
		return l.store.Concat(sub, l.store.Star(sub)), nil
	case syntax.OpQuest:
		sub, err := l.lower(re.Sub[0])
		if err != nil {
			return 0, err
		}
		// x? = Epsilon | x
		return l.store.Or([]rx.ID{l.store.EpsilonID(), sub}), nil
	case syntax.OpRepeat:
		return l.lowerRepeat(re.Sub[0], re.Min, re.Max)
	case syntax.OpCapture:
		if re.Name != "" {
			return 0, l.errf("named group %q may only appear as a single trailing lookahead", re.Name)
		}
		return 0, l.errf("numbered capture groups are not supported; spec carries no capture semantics beyond the trailing lookahead")
	default:
		return 0, l.errf("unsupported regex operation %v", re.Op)
	}
}

// lowerLiteral lowers a run of literal runes into a right-associated
// Concat of single-byte (or case-folded two-byte) matchers.
func (l *lowerer) lowerLiteral(runes []rune, foldCase bool) (rx.ID, error) {
	if len(runes) == 0 {
		return l.store.EpsilonID(), nil
	}

	id := l.store.EpsilonID()
	// Build right to left so the iterative Concat never has to re-walk a
	// growing right-spine more than once per byte appended.
	for i := len(runes) - 1; i >= 0; i-- {
		r := runes[i]
		runeNode, err := l.lowerRune(r, foldCase)
		if err != nil {
			return 0, err
		}
		id = l.store.Concat(runeNode, id)
	}
	return id, nil
}

func (l *lowerer) lowerRune(r rune, foldCase bool) (rx.ID, error) {
	buf := make([]byte, 4)
	n := encodeRune(buf, r)
	bytesID, err := l.bytesLiteral(buf[:n])
	if err != nil {
		return 0, err
	}
	if !foldCase {
		return bytesID, nil
	}

	lo, hi := unicodeFoldPair(r)
	if lo == hi {
		return bytesID, nil
	}
	bufOther := make([]byte, 4)
	other := lo
	if r == lo {
		other = hi
	}
	m := encodeRune(bufOther, other)
	otherID, err := l.bytesLiteral(bufOther[:m])
	if err != nil {
		return 0, err
	}
	return l.store.Or([]rx.ID{bytesID, otherID}), nil
}

func (l *lowerer) bytesLiteral(bs []byte) (rx.ID, error) {
	id := l.store.EpsilonID()
	for i := len(bs) - 1; i >= 0; i-- {
		b := bs[i]
		id = l.store.Concat(l.store.Byte([]rx.ByteRange{{Lo: b, Hi: b}}), id)
	}
	return id, nil
}

// unicodeFoldPair returns the ASCII case-fold partner of r, or (r, r) if
// none applies. The spec explicitly does not mandate Unicode semantics
// beyond the byte ranges the parser yields (spec.md §9), so fold support
// is limited to ASCII, matching what regexp/syntax itself folds for the
// common case this lowering is exercised against.
func unicodeFoldPair(r rune) (lo, hi rune) {
	switch {
	case r >= 'a' && r <= 'z':
		return r, r-'a'+'A'
	case r >= 'A' && r <= 'Z':
		return r-'A'+'a', r
	default:
		return r, r
	}
}

// lowerCharClass lowers regexp/syntax's [lo,hi,lo,hi,...] rune-range
// encoding. ASCII-only ranges become a single Byte node directly; ranges
// reaching beyond ASCII are expanded per-codepoint into a UTF-8-literal
// alternation, the same fallback nfa.Compiler.compileUnicodeClass uses,
// bounded the same way to avoid state explosion on huge Unicode classes.
func (l *lowerer) lowerCharClass(ranges []rune) (rx.ID, error) {
	if len(ranges) == 0 {
		return l.store.Empty(), nil
	}

	allASCII := true
	for _, r := range ranges {
		if r > 0x7F {
			allASCII = false
			break
		}
	}
	if allASCII {
		byteRanges := make([]rx.ByteRange, 0, len(ranges)/2)
		for i := 0; i < len(ranges); i += 2 {
			byteRanges = append(byteRanges, rx.ByteRange{Lo: byte(ranges[i]), Hi: byte(ranges[i+1])})
		}
		return l.store.Byte(byteRanges), nil
	}

	const maxExpanded = 4096
	var alts []rx.ID
	for i := 0; i < len(ranges); i += 2 {
		lo, hi := ranges[i], ranges[i+1]
		for r := lo; r <= hi; r++ {
			if len(alts) >= maxExpanded {
				return 0, l.errf("character class too large to lower (>%d codepoints)", maxExpanded)
			}
			buf := make([]byte, 4)
			n := encodeRune(buf, r)
			id, err := l.bytesLiteral(buf[:n])
			if err != nil {
				return 0, err
			}
			alts = append(alts, id)
		}
	}
	return l.store.Or(alts), nil
}

func (l *lowerer) lowerConcatParts(subs []*syntax.Regexp) (rx.ID, error) {
	if len(subs) == 0 {
		return l.store.EpsilonID(), nil
	}
	id, err := l.lower(subs[0])
	if err != nil {
		return 0, err
	}
	for _, sub := range subs[1:] {
		next, err := l.lower(sub)
		if err != nil {
			return 0, err
		}
		id = l.store.Concat(id, next)
	}
	return id, nil
}

func (l *lowerer) lowerAlternate(subs []*syntax.Regexp) (rx.ID, error) {
	ids := make([]rx.ID, 0, len(subs))
	for _, sub := range subs {
		id, err := l.lower(sub)
		if err != nil {
			return 0, err
		}
		ids = append(ids, id)
	}
	return l.store.Or(ids), nil
}

// lowerRepeat expands {m,n} per spec.md §5: min copies concatenated, then
// either a trailing Star (n == -1, unbounded) or up to n-m optional
// copies (mk_concat/mk_or of Epsilon-or-x), never more than n total.
func (l *lowerer) lowerRepeat(sub *syntax.Regexp, min, max int) (rx.ID, error) {
	subID, err := l.lower(sub)
	if err != nil {
		return 0, err
	}

	id := l.store.EpsilonID()
	for i := 0; i < min; i++ {
		id = l.store.Concat(id, subID)
	}

	if max == -1 {
		return l.store.Concat(id, l.store.Star(subID)), nil
	}

	optional := l.store.Or([]rx.ID{l.store.EpsilonID(), subID})
	for i := 0; i < max-min; i++ {
		id = l.store.Concat(id, optional)
	}
	return id, nil
}

func encodeRune(buf []byte, r rune) int {
	switch {
	case r < 0x80:
		buf[0] = byte(r)
		return 1
	case r < 0x800:
		buf[0] = byte(0xC0 | (r >> 6))
		buf[1] = byte(0x80 | (r & 0x3F))
		return 2
	case r < 0x10000:
		buf[0] = byte(0xE0 | (r >> 12))
		buf[1] = byte(0x80 | ((r >> 6) & 0x3F))
		buf[2] = byte(0x80 | (r & 0x3F))
		return 3
	default:
		buf[0] = byte(0xF0 | (r >> 18))
		buf[1] = byte(0x80 | ((r >> 12) & 0x3F))
		buf[2] = byte(0x80 | ((r >> 6) & 0x3F))
		buf[3] = byte(0x80 | (r & 0x3F))
		return 4
	}
}
