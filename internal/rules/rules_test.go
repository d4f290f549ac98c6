package rules

import (
	"testing"

	"github.com/ESikich/TopDownRPG/internal/domain"
)

// scriptedSource replays fixed roll values so combat outcomes are exact.
type scriptedSource struct {
	rolls  []int
	floats []float64
	ri, fi int
}

func (s *scriptedSource) RollRange(a, b int) int {
	if s.ri >= len(s.rolls) {
		return a
	}
	v := s.rolls[s.ri]
	s.ri++
	return v
}

func (s *scriptedSource) Intn(n int) int { return 0 }

func (s *scriptedSource) Float64() float64 {
	if s.fi >= len(s.floats) {
		return 1.0
	}
	v := s.floats[s.fi]
	s.fi++
	return v
}

func (s *scriptedSource) Perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

func TestToHitNaturalOne(t *testing.T) {
	src := &scriptedSource{rolls: []int{1}, floats: []float64{0.0}}
	attacker := domain.Stats{Accuracy: 100, CritChance: 100}

	res := ToHit(attacker, domain.Stats{}, Context{}, src)
	if res.Hit {
		t.Error("natural 1 must miss regardless of accuracy")
	}
	if res.Crit {
		t.Error("natural 1 must never crit")
	}
}

func TestToHitNaturalTwenty(t *testing.T) {
	src := &scriptedSource{rolls: []int{20}, floats: []float64{0.99}}
	defender := domain.Stats{Evasion: 100}

	res := ToHit(domain.Stats{}, defender, Context{Cover: 50}, src)
	if !res.Hit {
		t.Error("natural 20 must hit regardless of defenses")
	}
}

func TestToHitThreshold(t *testing.T) {
	attacker := domain.Stats{Accuracy: 3}
	defender := domain.Stats{Evasion: 2}
	ctx := Context{WeaponBonus: 1, Cover: 1}
	// target = 10 + 2 + 1 = 13; attack total = roll + 3 + 1

	src := &scriptedSource{rolls: []int{9}, floats: []float64{0.99}}
	if res := ToHit(attacker, defender, ctx, src); !res.Hit {
		t.Errorf("roll 9 total 13 vs target %d should hit", res.Target)
	}

	src = &scriptedSource{rolls: []int{8}, floats: []float64{0.99}}
	if res := ToHit(attacker, defender, ctx, src); res.Hit {
		t.Errorf("roll 8 total 12 vs target %d should miss", res.Target)
	}
}

func TestToHitCritChanceClamped(t *testing.T) {
	src := &scriptedSource{rolls: []int{10}, floats: []float64{0.999}}
	attacker := domain.Stats{Accuracy: 10, CritChance: 250}

	res := ToHit(attacker, domain.Stats{}, Context{}, src)
	if !res.Hit {
		t.Fatal("expected hit")
	}
	if !res.Crit {
		t.Error("crit chance above 100 clamps to 100, so any hit crits")
	}

	src = &scriptedSource{rolls: []int{10}, floats: []float64{0.0}}
	attacker.CritChance = -5
	res = ToHit(attacker, domain.Stats{}, Context{}, src)
	if res.Crit {
		t.Error("negative crit chance clamps to 0, so no hit crits")
	}
}

func TestApplyWeaponDamageCritDoublesDiceOnly(t *testing.T) {
	// 1d4+3: scripted die rolls 4, so dice=4 mod=3.
	weapon := domain.Weapon{DamageDice: "1d4+3", DamageType: domain.DamagePhysical}
	src := &scriptedSource{rolls: []int{4}}

	res := ApplyWeaponDamage(weapon, true, domain.Stats{}, nil, src)
	if res.Base != 11 {
		t.Errorf("crit base = %d, want 11 (2*4 + 3, modifiers not doubled)", res.Base)
	}
	if res.Final != 11 {
		t.Errorf("final = %d, want 11 with no armor", res.Final)
	}
}

func TestApplyWeaponDamageSoakAndResist(t *testing.T) {
	weapon := domain.Weapon{DamageDice: "1d8", DamageType: domain.DamagePhysical}
	armor := &domain.Armor{
		SoakDice: "1d2",
		Resist:   map[string]float64{domain.DamagePhysical: 0.5},
	}
	// Attack die 8, soak die 2: (8-2) * 0.5 = 3.
	src := &scriptedSource{rolls: []int{8, 2}}

	res := ApplyWeaponDamage(weapon, false, domain.Stats{}, armor, src)
	if res.Soak != 2 {
		t.Errorf("soak = %d, want 2", res.Soak)
	}
	if res.ResistMult != 0.5 {
		t.Errorf("resist mult = %v, want 0.5", res.ResistMult)
	}
	if res.Final != 3 {
		t.Errorf("final = %d, want 3", res.Final)
	}
}

func TestApplyWeaponDamageNoArmorFullMultiplier(t *testing.T) {
	weapon := domain.Weapon{DamageDice: "1d8", DamageType: domain.DamagePhysical}
	src := &scriptedSource{rolls: []int{8}}

	res := ApplyWeaponDamage(weapon, false, domain.Stats{}, nil, src)
	if res.ResistMult != 1 {
		t.Errorf("resist mult = %v, want 1 without armor", res.ResistMult)
	}
	if res.Base != 8 || res.Soak != 0 || res.Final != 8 {
		t.Errorf("result = %+v, want base 8, soak 0, final 8", res)
	}
}

func TestApplyWeaponDamageNonPhysicalSkipsSoak(t *testing.T) {
	weapon := domain.Weapon{DamageDice: "1d6", DamageType: domain.DamageFire}
	armor := &domain.Armor{SoakDice: "5d10"}
	src := &scriptedSource{rolls: []int{6}}

	res := ApplyWeaponDamage(weapon, false, domain.Stats{}, armor, src)
	if res.Soak != 0 {
		t.Errorf("soak = %d, want 0 for non-physical damage", res.Soak)
	}
	if res.Final != 6 {
		t.Errorf("final = %d, want 6", res.Final)
	}
}

func TestApplyWeaponDamageSoakCannotHeal(t *testing.T) {
	weapon := domain.Weapon{DamageDice: "1d2", DamageType: domain.DamagePhysical}
	armor := &domain.Armor{SoakDice: "1d10"}
	src := &scriptedSource{rolls: []int{1, 10}}

	res := ApplyWeaponDamage(weapon, false, domain.Stats{}, armor, src)
	if res.Final != 0 {
		t.Errorf("final = %d, want 0 when soak exceeds base", res.Final)
	}
}

func TestApplyWeaponDamageAttrModifier(t *testing.T) {
	weapon := domain.Weapon{DamageDice: "1d4+STR", DamageType: domain.DamagePhysical}
	src := &scriptedSource{rolls: []int{3}}

	res := ApplyWeaponDamage(weapon, false, domain.Stats{Strength: 5}, nil, src)
	if res.Base != 8 {
		t.Errorf("base = %d, want 8 (3 + STR 5)", res.Base)
	}
}

func TestApplySpellDamageResistPrecedence(t *testing.T) {
	armor := &domain.Armor{
		Resist:      map[string]float64{domain.DamageFire: 0.75},
		SpellResist: map[string]float64{domain.DamageFire: 0.5},
	}
	src := &scriptedSource{rolls: []int{8}}

	res := ApplySpellDamage("1d8", domain.DamageFire, domain.Stats{}, armor, src)
	if res.ResistMult != 0.5 {
		t.Errorf("resist mult = %v, want 0.5", res.ResistMult)
	}
	if res.Final != 4 {
		t.Errorf("final = %d, want 4 (spell resist 0.5 wins over resist 0.75)", res.Final)
	}

	// Without a spell resist entry the ordinary table applies.
	armor.SpellResist = nil
	src = &scriptedSource{rolls: []int{8}}
	res = ApplySpellDamage("1d8", domain.DamageFire, domain.Stats{}, armor, src)
	if res.Final != 2 {
		t.Errorf("final = %d, want 2 via resist table", res.Final)
	}
}

func TestApplySpellDamageIgnoresSoak(t *testing.T) {
	armor := &domain.Armor{SoakDice: "10d10"}
	src := &scriptedSource{rolls: []int{5}}

	res := ApplySpellDamage("1d6", domain.DamageArcane, domain.Stats{}, armor, src)
	if res.Final != 5 {
		t.Errorf("final = %d, want 5; spells never soak", res.Final)
	}
}
