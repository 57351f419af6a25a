package bitset

import "testing"

func TestAddInRemove(t *testing.T) {
	s := New(70)
	s.Add(0)
	s.Add(63)
	s.Add(64)
	s.Add(69)
	for _, i := range []int{0, 63, 64, 69} {
		if !s.In(i) {
			t.Fatalf("expected bit %d set", i)
		}
	}
	if s.In(1) || s.In(65) {
		t.Fatalf("unexpected bit set")
	}
	s.Remove(64)
	if s.In(64) {
		t.Fatalf("bit 64 should have been cleared")
	}
}

func TestSubsetUnion(t *testing.T) {
	a := New(8)
	b := New(8)
	a.Add(1)
	a.Add(2)
	b.Add(1)
	b.Add(2)
	b.Add(3)
	if !Subset(a, b) {
		t.Fatalf("a should be a subset of b")
	}
	if Subset(b, a) {
		t.Fatalf("b should not be a subset of a")
	}
	u := UnionOf(a, b)
	if !Same(u, b) {
		t.Fatalf("union of a,b should equal b since a subset b")
	}
}

func TestDisjoint(t *testing.T) {
	a := New(4)
	b := New(4)
	a.Add(0)
	b.Add(1)
	if !Disjoint(a, b) {
		t.Fatalf("expected disjoint sets")
	}
	b.Add(0)
	if Disjoint(a, b) {
		t.Fatalf("expected overlapping sets")
	}
}

func TestEnumerateCount(t *testing.T) {
	s := New(130)
	bits := []int{0, 5, 64, 65, 129}
	for _, b := range bits {
		s.Add(b)
	}
	if s.Count() != len(bits) {
		t.Fatalf("count = %d, want %d", s.Count(), len(bits))
	}
	got := s.Enumerate()
	if len(got) != len(bits) {
		t.Fatalf("enumerate len = %d, want %d", len(got), len(bits))
	}
	for i, b := range bits {
		if got[i] != b {
			t.Fatalf("enumerate[%d] = %d, want %d", i, got[i], b)
		}
	}
}

func TestDup(t *testing.T) {
	a := New(8)
	a.Add(3)
	d := a.Dup()
	d.Add(4)
	if a.In(4) {
		t.Fatalf("Dup must be independent of source")
	}
	if !Same(d.Dup(), d) {
		t.Fatalf("Dup of d must equal d")
	}
}
