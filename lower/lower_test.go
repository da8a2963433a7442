package lower

import (
	"regexp/syntax"
	"testing"

	"github.com/coregx/derivex/deriv"
	"github.com/coregx/derivex/rx"
)

func parse(t *testing.T, pattern string) *syntax.Regexp {
	t.Helper()
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		t.Fatalf("syntax.Parse(%q): %v", pattern, err)
	}
	return re
}

// runMatch drives a compiled node through Deriv byte by byte and reports
// whether the final state is nullable, without involving package dfa.
// This package's tests only need to confirm lowering produced the right
// canonical tree, not exercise the driver.
func runMatch(s *rx.Store, root rx.ID, input string) bool {
	cur := root
	for i := 0; i < len(input); i++ {
		cur = deriv.Deriv(s, cur, input[i])
	}
	return s.Nullable(cur)
}

func TestLowerLiteral(t *testing.T) {
	s := rx.NewStore()
	id, err := Lower(s, "abc", parse(t, "abc"))
	if err != nil {
		t.Fatal(err)
	}
	if !runMatch(s, id, "abc") {
		t.Error("abc should match \"abc\"")
	}
	if runMatch(s, id, "abx") {
		t.Error("abc should not match \"abx\"")
	}
}

func TestLowerCharClass(t *testing.T) {
	s := rx.NewStore()
	id, err := Lower(s, "[ab]c", parse(t, "[ab]c"))
	if err != nil {
		t.Fatal(err)
	}
	if !runMatch(s, id, "ac") || !runMatch(s, id, "bc") {
		t.Error("[ab]c should match ac and bc")
	}
	if runMatch(s, id, "acxx") {
		t.Error("[ab]c should not match \"acxx\" (whole-input anchored)")
	}
}

func TestLowerAlternate(t *testing.T) {
	s := rx.NewStore()
	id, err := Lower(s, "a|b", parse(t, "a|b"))
	if err != nil {
		t.Fatal(err)
	}
	if !runMatch(s, id, "a") || !runMatch(s, id, "b") {
		t.Error("a|b should match a and b")
	}
	if runMatch(s, id, "c") {
		t.Error("a|b should not match c")
	}
}

func TestLowerStar(t *testing.T) {
	s := rx.NewStore()
	id, err := Lower(s, "a*", parse(t, "a*"))
	if err != nil {
		t.Fatal(err)
	}
	if !runMatch(s, id, "") || !runMatch(s, id, "aaaa") {
		t.Error("a* should match empty and aaaa")
	}
	if runMatch(s, id, "aaab") {
		t.Error("a* should not match aaab")
	}
}

func TestLowerPlusAndQuest(t *testing.T) {
	s := rx.NewStore()
	plus, err := Lower(s, "a+", parse(t, "a+"))
	if err != nil {
		t.Fatal(err)
	}
	if runMatch(s, plus, "") {
		t.Error("a+ should not match empty")
	}
	if !runMatch(s, plus, "aaa") {
		t.Error("a+ should match aaa")
	}

	quest, err := Lower(s, "a?", parse(t, "a?"))
	if err != nil {
		t.Fatal(err)
	}
	if !runMatch(s, quest, "") || !runMatch(s, quest, "a") {
		t.Error("a? should match \"\" and \"a\"")
	}
	if runMatch(s, quest, "aa") {
		t.Error("a? should not match aa")
	}
}

func TestLowerRepeatExact(t *testing.T) {
	s := rx.NewStore()
	id, err := Lower(s, "a{3}", parse(t, "a{3}"))
	if err != nil {
		t.Fatal(err)
	}
	if runMatch(s, id, "aa") || runMatch(s, id, "aaaa") {
		t.Error("a{3} should match exactly 3 a's")
	}
	if !runMatch(s, id, "aaa") {
		t.Error("a{3} should match aaa")
	}
}

func TestLowerRepeatRange(t *testing.T) {
	s := rx.NewStore()
	id, err := Lower(s, "a{1,3}", parse(t, "a{1,3}"))
	if err != nil {
		t.Fatal(err)
	}
	if runMatch(s, id, "") {
		t.Error("a{1,3} should not match empty")
	}
	for _, n := range []string{"a", "aa", "aaa"} {
		if !runMatch(s, id, n) {
			t.Errorf("a{1,3} should match %q", n)
		}
	}
	if runMatch(s, id, "aaaa") {
		t.Error("a{1,3} should not match aaaa")
	}
}

func TestLowerRepeatMin(t *testing.T) {
	s := rx.NewStore()
	id, err := Lower(s, "a{2,}", parse(t, "a{2,}"))
	if err != nil {
		t.Fatal(err)
	}
	if runMatch(s, id, "a") {
		t.Error("a{2,} should not match single a")
	}
	if !runMatch(s, id, "aa") || !runMatch(s, id, "aaaaaa") {
		t.Error("a{2,} should match 2 or more a's")
	}
}

func TestLowerTrailingStopGroup(t *testing.T) {
	s := rx.NewStore()
	id, err := Lower(s, "a(?P<stop>b+)", parse(t, "a(?P<stop>b+)"))
	if err != nil {
		t.Fatal(err)
	}
	if s.Kind(id) != rx.KindConcat {
		t.Fatalf("expected Concat root, got %v", s.Kind(id))
	}
	_, tail := s.ConcatParts(id)
	if s.Kind(tail) != rx.KindLookahead {
		t.Fatalf("expected Lookahead tail, got %v", s.Kind(tail))
	}
}

func TestLowerStopGroupAloneIsLookahead(t *testing.T) {
	s := rx.NewStore()
	id, err := Lower(s, "(?P<stop>a+)", parse(t, "(?P<stop>a+)"))
	if err != nil {
		t.Fatal(err)
	}
	if s.Kind(id) != rx.KindLookahead {
		t.Fatalf("expected Lookahead root, got %v", s.Kind(id))
	}
}

func TestLowerMidPatternNamedGroupRejected(t *testing.T) {
	s := rx.NewStore()
	_, err := Lower(s, "(?P<stop>a)b", parse(t, "(?P<stop>a)b"))
	if err == nil {
		t.Fatal("expected lowering error for non-trailing stop group")
	}
	if _, ok := err.(*UnsupportedSyntaxError); !ok {
		t.Fatalf("expected *UnsupportedSyntaxError, got %T", err)
	}
}

func TestLowerOtherNamedGroupRejected(t *testing.T) {
	s := rx.NewStore()
	_, err := Lower(s, "(?P<foo>a)", parse(t, "(?P<foo>a)"))
	if err == nil {
		t.Fatal("expected lowering error for non-stop named group")
	}
}

func TestLowerNumberedGroupRejected(t *testing.T) {
	s := rx.NewStore()
	_, err := Lower(s, "(a)", parse(t, "(a)"))
	if err == nil {
		t.Fatal("expected lowering error for numbered capture group")
	}
}

func TestLowerDeeplyNestedStarIsStackSafe(t *testing.T) {
	s := rx.NewStore()
	pattern := "(?:(?:(?:(?:(?:(?:(?:(?:(?:(?:a*)*)*)*)*)*)*)*)*)*)*"
	id, err := Lower(s, pattern, parse(t, pattern))
	if err != nil {
		t.Fatal(err)
	}
	if !runMatch(s, id, "") {
		t.Error("nested star should match empty")
	}
}

func TestLowerLookaheadLengthExample(t *testing.T) {
	s := rx.NewStore()
	pattern := "[abx]*(?P<stop>[xq]*y)"
	id, err := Lower(s, pattern, parse(t, pattern))
	if err != nil {
		t.Fatal(err)
	}
	if !runMatch(s, id, "axxxxxy") {
		t.Error("pattern should match axxxxxy")
	}
	if runMatch(s, id, "ccqy") {
		t.Error("pattern should not match ccqy ('c' is outside [abx]*)")
	}
}
