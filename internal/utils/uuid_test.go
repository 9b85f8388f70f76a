package utils

import "testing"

func TestUUIDGenerator_Generate(t *testing.T) {
	g := NewUUIDGenerator()

	first := g.Generate()
	second := g.Generate()

	if first == "" || second == "" {
		t.Fatal("expected non-empty ids")
	}
	if first == second {
		t.Errorf("expected unique ids, got %s twice", first)
	}
	if len(first) != 36 {
		t.Errorf("expected canonical uuid length 36, got %d (%s)", len(first), first)
	}
}
