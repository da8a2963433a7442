package rx

import "testing"

func byteLit(s *Store, b byte) ID {
	return s.Byte([]ByteRange{{Lo: b, Hi: b}})
}

func literal(s *Store, str string) ID {
	id := s.EpsilonID()
	for i := len(str) - 1; i >= 0; i-- {
		id = s.Concat(byteLit(s, str[i]), id)
	}
	return id
}

func TestCanonicalUniqueness(t *testing.T) {
	t.Run("a|a = a", func(t *testing.T) {
		s := NewStore()
		a := byteLit(s, 'a')
		got := s.Or([]ID{a, a})
		if got != a {
			t.Errorf("Or([a,a]) = %d, want %d", got, a)
		}
	})

	t.Run("a|empty = a", func(t *testing.T) {
		s := NewStore()
		a := byteLit(s, 'a')
		got := s.Or([]ID{a, s.Empty()})
		if got != a {
			t.Errorf("Or([a,Empty]) = %d, want %d", got, a)
		}
	})

	t.Run("a.epsilon = a", func(t *testing.T) {
		s := NewStore()
		a := byteLit(s, 'a')
		got := s.Concat(a, s.EpsilonID())
		if got != a {
			t.Errorf("Concat(a,Epsilon) = %d, want %d", got, a)
		}
		got2 := s.Concat(s.EpsilonID(), a)
		if got2 != a {
			t.Errorf("Concat(Epsilon,a) = %d, want %d", got2, a)
		}
	})

	t.Run("(a.b).c = a.(b.c)", func(t *testing.T) {
		s := NewStore()
		a, b, c := byteLit(s, 'a'), byteLit(s, 'b'), byteLit(s, 'c')
		left := s.Concat(s.Concat(a, b), c)
		right := s.Concat(a, s.Concat(b, c))
		if left != right {
			t.Errorf("(a.b).c = %d, a.(b.c) = %d; want equal", left, right)
		}
	})

	t.Run("a** = a*", func(t *testing.T) {
		s := NewStore()
		a := byteLit(s, 'a')
		once := s.Star(a)
		twice := s.Star(once)
		if once != twice {
			t.Errorf("Star(Star(a)) = %d, want Star(a) = %d", twice, once)
		}
	})

	t.Run("not(not(a)) = a", func(t *testing.T) {
		s := NewStore()
		a := byteLit(s, 'a')
		got := s.Not(s.Not(a))
		if got != a {
			t.Errorf("Not(Not(a)) = %d, want %d", got, a)
		}
	})

	t.Run("not(empty) = sigma and vice versa", func(t *testing.T) {
		s := NewStore()
		if got := s.Not(s.Empty()); got != s.Sigma() {
			t.Errorf("Not(Empty) = %d, want Sigma = %d", got, s.Sigma())
		}
		if got := s.Not(s.Sigma()); got != s.Empty() {
			t.Errorf("Not(Sigma) = %d, want Empty = %d", got, s.Empty())
		}
	})
}

func TestByteEmptySetCollapses(t *testing.T) {
	s := NewStore()
	if got := s.Byte(nil); got != s.Empty() {
		t.Errorf("Byte(nil) = %d, want Empty = %d", got, s.Empty())
	}
}

func TestConcatEmptyAbsorbs(t *testing.T) {
	s := NewStore()
	a := byteLit(s, 'a')
	if got := s.Concat(a, s.Empty()); got != s.Empty() {
		t.Errorf("Concat(a,Empty) = %d, want Empty", got)
	}
	if got := s.Concat(s.Empty(), a); got != s.Empty() {
		t.Errorf("Concat(Empty,a) = %d, want Empty", got)
	}
}

func TestOrSortsAndDedupes(t *testing.T) {
	s := NewStore()
	a, b := byteLit(s, 'a'), byteLit(s, 'b')
	got1 := s.Or([]ID{b, a})
	got2 := s.Or([]ID{a, b})
	if got1 != got2 {
		t.Errorf("Or is order-sensitive: Or([b,a])=%d != Or([a,b])=%d", got1, got2)
	}
}

func TestOrFlattensNested(t *testing.T) {
	s := NewStore()
	a, b, c := byteLit(s, 'a'), byteLit(s, 'b'), byteLit(s, 'c')
	inner := s.Or([]ID{a, b})
	flat := s.Or([]ID{inner, c})
	direct := s.Or([]ID{a, b, c})
	if flat != direct {
		t.Errorf("Or flattening failed: Or([Or(a,b),c]) = %d, want %d", flat, direct)
	}
}

func TestAndEmptyDominates(t *testing.T) {
	s := NewStore()
	a := byteLit(s, 'a')
	if got := s.And([]ID{a, s.Empty()}); got != s.Empty() {
		t.Errorf("And([a,Empty]) = %d, want Empty", got)
	}
}

func TestAndSigmaIsIdentity(t *testing.T) {
	s := NewStore()
	a := byteLit(s, 'a')
	if got := s.And([]ID{a, s.Sigma()}); got != a {
		t.Errorf("And([a,Sigma]) = %d, want %d", got, a)
	}
}

func TestAndEmptyListIsSigma(t *testing.T) {
	s := NewStore()
	if got := s.And(nil); got != s.Sigma() {
		t.Errorf("And(nil) = %d, want Sigma = %d", got, s.Sigma())
	}
}

func TestNullability(t *testing.T) {
	s := NewStore()
	a := byteLit(s, 'a')

	if s.Nullable(s.Empty()) {
		t.Error("Empty should not be nullable")
	}
	if !s.Nullable(s.EpsilonID()) {
		t.Error("Epsilon should be nullable")
	}
	if s.Nullable(a) {
		t.Error("Byte should not be nullable")
	}
	if !s.Nullable(s.Star(a)) {
		t.Error("Star should always be nullable")
	}
	if s.Nullable(s.Concat(a, a)) {
		t.Error("Concat(a,a) should not be nullable")
	}
	if !s.Nullable(s.Concat(s.Star(a), s.Star(a))) {
		t.Error("Concat(a*,a*) should be nullable")
	}
}

func TestLookaheadPlacementRejected(t *testing.T) {
	s := NewStore()
	stop := byteLit(s, 'x')
	la := s.Lookahead(stop)

	assertPanics(t, "Star(Lookahead)", func() { s.Star(la) })
	assertPanics(t, "Not(Lookahead)", func() { s.Not(la) })
	assertPanics(t, "Or([Lookahead])", func() { s.Or([]ID{la}) })
	assertPanics(t, "And([Lookahead])", func() { s.And([]ID{la}) })
	assertPanics(t, "Lookahead(Lookahead)", func() { s.Lookahead(la) })
}

func TestConcatAfterLookaheadRejected(t *testing.T) {
	s := NewStore()
	stop := byteLit(s, 'x')
	prefix := byteLit(s, 'a')
	withLookahead := s.Concat(prefix, s.Lookahead(stop))

	assertPanics(t, "Concat after trailing Lookahead", func() {
		s.Concat(withLookahead, byteLit(s, 'b'))
	})
}

func assertPanics(t *testing.T, name string, f func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("%s: expected panic, got none", name)
		}
	}()
	f()
}

func TestLiteralHelperBuildsConcatChain(t *testing.T) {
	s := NewStore()
	id := literal(s, "abc")
	if s.Kind(id) != KindConcat {
		t.Fatalf("expected Concat root, got %v", s.Kind(id))
	}
	if s.Nullable(id) {
		t.Error("non-empty literal should not be nullable")
	}
}
