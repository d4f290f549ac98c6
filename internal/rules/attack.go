// Package rules holds the combat math: to-hit resolution and damage
// application. Systems call into it; it never touches the world directly.
package rules

import (
	"github.com/ESikich/TopDownRPG/internal/domain"
	"github.com/ESikich/TopDownRPG/pkg/rng"
)

// Context carries situational to-hit modifiers supplied by the caller.
type Context struct {
	WeaponBonus int
	Cover       int
}

// Result is the outcome of a single to-hit roll.
type Result struct {
	Hit    bool
	Crit   bool
	Roll   int // the raw d20
	Target int // the number the attack total had to reach
}

const baseDefense = 10

// ToHit resolves one attack roll. A natural 1 always misses and never
// crits; a natural 20 always hits. Otherwise the attack lands when
// roll + accuracy + weapon bonus meets 10 + evasion + cover. Crit chance
// is rolled independently on every non-fumble hit.
func ToHit(attacker, defender domain.Stats, ctx Context, src rng.Source) Result {
	roll := src.RollRange(1, 20)
	target := baseDefense + defender.Evasion + ctx.Cover

	res := Result{Roll: roll, Target: target}

	switch {
	case roll == 1:
		return res
	case roll == 20:
		res.Hit = true
	default:
		res.Hit = roll+attacker.Accuracy+ctx.WeaponBonus >= target
	}

	if res.Hit {
		chance := attacker.CritChance
		if chance < 0 {
			chance = 0
		} else if chance > 100 {
			chance = 100
		}
		res.Crit = src.Float64()*100 < chance
	}
	return res
}
