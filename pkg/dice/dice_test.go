package dice

import (
	"testing"

	"github.com/ESikich/TopDownRPG/pkg/rng"
)

func TestRoll_Range(t *testing.T) {
	roller := NewRoller(rng.New(42))

	for i := 0; i < 500; i++ {
		total, bd := roller.Roll("2d6+3", nil)
		if total < 5 || total > 15 {
			t.Fatalf("2d6+3 out of range: got %d (breakdown %+v)", total, bd)
		}
		if len(bd.Rolls) != 2 {
			t.Fatalf("Expected 2 die rolls, got %d", len(bd.Rolls))
		}
		if bd.ModTotal != 3 {
			t.Fatalf("Expected mod total 3, got %d", bd.ModTotal)
		}
	}
}

func TestRoll_OneSidedDie(t *testing.T) {
	roller := NewRoller(rng.New(1))

	for i := 0; i < 100; i++ {
		total, _ := roller.Roll("1d1", nil)
		if total != 1 {
			t.Fatalf("1d1 must always be 1, got %d", total)
		}
	}
}

func TestRoll_NegativeClampsToZero(t *testing.T) {
	roller := NewRoller(rng.New(1))

	total, bd := roller.Roll("-5", nil)
	if total != 0 {
		t.Errorf("Expected clamped total 0, got %d", total)
	}
	if bd.ModTotal != -5 {
		t.Errorf("Expected mod total -5, got %d", bd.ModTotal)
	}
}

func TestRoll_Attributes(t *testing.T) {
	roller := NewRoller(rng.New(7))
	attrs := map[string]int{"STR": 12, "INT": 7}

	total, bd := roller.Roll("1d4+STR", attrs)
	if bd.ModTotal != 12 {
		t.Errorf("Expected STR mod 12, got %d", bd.ModTotal)
	}
	if total != bd.DiceTotal+12 {
		t.Errorf("Total %d does not match breakdown %+v", total, bd)
	}

	// Floor division, and unknown attributes resolve to 0.
	_, bd = roller.Roll("1d8+INT/2", attrs)
	if bd.ModTotal != 3 {
		t.Errorf("Expected INT/2 = 3, got %d", bd.ModTotal)
	}
	_, bd = roller.Roll("1d8+AGI", attrs)
	if bd.ModTotal != 0 {
		t.Errorf("Unknown attribute should be 0, got %d", bd.ModTotal)
	}
}

func TestRoll_FloorDivisionNegative(t *testing.T) {
	roller := NewRoller(rng.New(7))

	// -7/2 floors to -4, not -3.
	_, bd := roller.Roll("+INT/2", map[string]int{"INT": -7})
	if bd.ModTotal != -4 {
		t.Errorf("Expected floor(-7/2) = -4, got %d", bd.ModTotal)
	}
}

func TestRoll_DegenerateDiceIgnored(t *testing.T) {
	roller := NewRoller(rng.New(3))

	for _, expr := range []string{"0d6", "3d0", "-2d6", ""} {
		_, bd := roller.Roll(expr, nil)
		if bd.DiceTotal != 0 || len(bd.Rolls) != 0 {
			t.Errorf("%q: expected no dice contribution, got %+v", expr, bd)
		}
	}

	// The sign in front of a degenerate dice term must not leak into the
	// flat modifiers.
	total, bd := roller.Roll("-2d6", nil)
	if total != 0 || bd.ModTotal != 0 {
		t.Errorf("-2d6: expected 0 total with no mods, got %d (%+v)", total, bd)
	}
}
