package id

import (
	"strings"
	"testing"
)

func TestDeterministic_Stable(t *testing.T) {
	parts := map[string]any{"key": "alpha", "n": 7}

	a := Deterministic("entry", parts)
	b := Deterministic("entry", parts)
	if a != b {
		t.Errorf("expected identical IDs for identical parts, got %q and %q", a, b)
	}
	if !strings.HasPrefix(a, "entry:") {
		t.Errorf("expected prefix 'entry:', got %q", a)
	}
}

func TestDeterministic_PartOrderIrrelevant(t *testing.T) {
	a := Deterministic("x", map[string]any{"a": 1, "b": 2})
	b := Deterministic("x", map[string]any{"b": 2, "a": 1})
	if a != b {
		t.Error("expected part insertion order to be irrelevant")
	}
}

func TestDeterministic_Distinguishes(t *testing.T) {
	base := Deterministic("entry", map[string]any{"key": "a"})

	for name, other := range map[string]string{
		"different value":  Deterministic("entry", map[string]any{"key": "b"}),
		"different prefix": Deterministic("node", map[string]any{"key": "a"}),
		"different case":   Deterministic("entry", map[string]any{"key": "A"}),
	} {
		if other == base {
			t.Errorf("%s: expected a distinct ID, got %q twice", name, base)
		}
	}
}

func TestDeterministic_ValueNormalization(t *testing.T) {
	// Integer widths normalize to the same decimal form.
	a := Deterministic("x", map[string]any{"n": 7})
	b := Deterministic("x", map[string]any{"n": int64(7)})
	if a != b {
		t.Error("expected integer widths to normalize identically")
	}

	// Strings are byte-exact: whitespace is significant.
	c := Deterministic("x", map[string]any{"s": "v"})
	d := Deterministic("x", map[string]any{"s": " v"})
	if c == d {
		t.Error("expected leading whitespace to produce a distinct ID")
	}
}

func TestRandom(t *testing.T) {
	a := Random("el")
	b := Random("el")

	if a == b {
		t.Error("expected distinct random IDs")
	}
	if !strings.HasPrefix(a, "el:") {
		t.Errorf("expected prefix 'el:', got %q", a)
	}
}
