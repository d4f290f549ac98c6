package rules

import (
	"github.com/ESikich/TopDownRPG/internal/domain"
	"github.com/ESikich/TopDownRPG/pkg/dice"
	"github.com/ESikich/TopDownRPG/pkg/logger"
	"github.com/ESikich/TopDownRPG/pkg/rng"

	"github.com/sirupsen/logrus"
)

// DamageResult records how a hit turned into a final HP loss. Base is the
// pre-mitigation damage and ResistMult the multiplier that was applied
// after soak, so the presentation layer can show the whole breakdown.
type DamageResult struct {
	Base       int
	Soak       int
	ResistMult float64
	Final      int
	Type       string
}

// AttrsOf maps stats onto the attribute names the dice grammar accepts.
func AttrsOf(s domain.Stats) map[string]int {
	return map[string]int{
		"STR": s.Strength,
		"AGI": s.Agility,
		"INT": s.Intellect,
	}
}

// ApplyWeaponDamage rolls weapon damage against the target's armor. On a
// crit only the dice total doubles; flat and attribute modifiers do not.
// Physical damage is reduced by the armor's soak roll before resistance,
// other types skip soak entirely.
func ApplyWeaponDamage(weapon domain.Weapon, crit bool, attackerStats domain.Stats, armor *domain.Armor, src rng.Source) DamageResult {
	roller := dice.NewRoller(src)
	_, bd := roller.Roll(weapon.DamageDice, AttrsOf(attackerStats))

	diceTotal := bd.DiceTotal
	if crit {
		diceTotal *= 2
	}
	base := diceTotal + bd.ModTotal
	if base < 0 {
		base = 0
	}

	res := DamageResult{Base: base, Type: weapon.DamageType}

	if armor != nil && weapon.DamageType == domain.DamagePhysical && armor.SoakDice != "" {
		soak, _ := roller.Roll(armor.SoakDice, nil)
		res.Soak = soak
	}

	afterSoak := base - res.Soak
	if afterSoak < 0 {
		afterSoak = 0
	}

	resist := 0.0
	if armor != nil {
		resist = armor.Resist[weapon.DamageType]
	}
	res.ResistMult = 1 - resist
	res.Final = int(float64(afterSoak) * res.ResistMult)

	logger.Log.WithFields(logrus.Fields{
		"component":   "damage_rules",
		"damage_dice": weapon.DamageDice,
		"damage_type": weapon.DamageType,
		"crit":        crit,
		"base":        res.Base,
		"soak":        res.Soak,
		"resist_mult": res.ResistMult,
		"final":       res.Final,
	}).Debug("Weapon damage resolved.")

	return res
}

// ApplySpellDamage rolls spell damage. Spells ignore armor soak; spell
// resistance for the damage type applies first, falling back to the
// ordinary resistance table.
func ApplySpellDamage(damageDice, damageType string, casterStats domain.Stats, armor *domain.Armor, src rng.Source) DamageResult {
	roller := dice.NewRoller(src)
	base, _ := roller.Roll(damageDice, AttrsOf(casterStats))

	res := DamageResult{Base: base, Type: damageType}

	resist := 0.0
	if armor != nil {
		if r, ok := armor.SpellResist[damageType]; ok {
			resist = r
		} else {
			resist = armor.Resist[damageType]
		}
	}
	res.ResistMult = 1 - resist
	res.Final = int(float64(base) * res.ResistMult)

	logger.Log.WithFields(logrus.Fields{
		"component":   "damage_rules",
		"damage_dice": damageDice,
		"damage_type": damageType,
		"base":        res.Base,
		"resist_mult": res.ResistMult,
		"final":       res.Final,
	}).Debug("Spell damage resolved.")

	return res
}
