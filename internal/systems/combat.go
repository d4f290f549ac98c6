package systems

import (
	"fmt"

	"github.com/ESikich/TopDownRPG/internal/content"
	"github.com/ESikich/TopDownRPG/internal/domain"
	"github.com/ESikich/TopDownRPG/internal/rules"
	"github.com/ESikich/TopDownRPG/pkg/logger"
	"github.com/ESikich/TopDownRPG/pkg/rng"

	"github.com/sirupsen/logrus"
)

// CombatSystem resolves attack and spell cast requests. A missing component
// on either side silently drops the single request; the pipeline never
// aborts over one malformed event.
type CombatSystem struct {
	world   *domain.World
	catalog *content.Catalog
	src     rng.Source
}

func NewCombatSystem(w *domain.World, catalog *content.Catalog, src rng.Source) *CombatSystem {
	return &CombatSystem{world: w, catalog: catalog, src: src}
}

func (s *CombatSystem) Consumes(k domain.EventKind) bool {
	return k == domain.EvAttackRequested || k == domain.EvSpellCastRequested
}

func (s *CombatSystem) Process(events []domain.Event) {
	for _, ev := range events {
		switch e := ev.(type) {
		case domain.AttackRequested:
			s.handleAttack(e)
		case domain.SpellCastRequested:
			s.handleSpellCast(e)
		}
	}
}

func (s *CombatSystem) handleAttack(ev domain.AttackRequested) {
	attackerStats, ok := s.world.StatsOf(ev.AttackerID)
	if !ok {
		return
	}
	targetHealth, ok := s.world.HealthOf(ev.TargetID)
	if !ok {
		return
	}
	targetStats, ok := s.world.StatsOf(ev.TargetID)
	if !ok {
		return
	}
	if targetHealth.IsDead {
		return
	}

	weapon := s.attackWeapon(ev.AttackerID)
	armor := s.defenseArmor(ev.TargetID)

	hitLogger := logger.Log.WithFields(logrus.Fields{
		"component": "combat_system",
		"attacker":  s.world.NameOf(ev.AttackerID),
		"target":    s.world.NameOf(ev.TargetID),
	})

	res := rules.ToHit(*attackerStats, *targetStats, rules.Context{}, s.src)
	if !res.Hit {
		hitLogger.WithField("roll", res.Roll).Debug("Attack missed.")
		s.world.Post(domain.Msg(fmt.Sprintf("%s misses %s.", s.world.NameOf(ev.AttackerID), s.world.NameOf(ev.TargetID))))
		return
	}

	dmg := rules.ApplyWeaponDamage(weapon, res.Crit, *attackerStats, armor, s.src)
	s.applyDamage(ev.TargetID, ev.AttackerID, targetHealth, dmg.Final, dmg.Type)

	critText := ""
	if res.Crit {
		critText = " (Critical Hit!)"
	}
	s.world.Post(domain.Msg(fmt.Sprintf("%s hits %s for %d damage%s",
		s.world.NameOf(ev.AttackerID), s.world.NameOf(ev.TargetID), dmg.Final, critText)))

	hitLogger.WithFields(logrus.Fields{
		"roll":   res.Roll,
		"crit":   res.Crit,
		"damage": dmg.Final,
	}).Info("Attack resolved.")
}

func (s *CombatSystem) handleSpellCast(ev domain.SpellCastRequested) {
	spell, ok := s.catalog.Spells[ev.SpellID]
	if !ok {
		logger.Log.WithFields(logrus.Fields{
			"component": "combat_system",
			"spell_id":  ev.SpellID,
		}).Warn("Cast request for unknown spell.")
		s.world.Post(domain.Msg("You don't know that spell!"))
		return
	}

	book, ok := s.world.SpellbookOf(ev.CasterID)
	if !ok || !knowsSpell(book, ev.SpellID) {
		s.world.Post(domain.Msg("You don't know that spell!"))
		return
	}
	if book.MP < spell.MPCost {
		s.world.Post(domain.Msg("Not enough mana!"))
		return
	}

	casterStats, ok := s.world.StatsOf(ev.CasterID)
	if !ok {
		return
	}
	targetHealth, ok := s.world.HealthOf(ev.TargetID)
	if !ok || targetHealth.IsDead {
		return
	}

	book.MP -= spell.MPCost

	armor := s.defenseArmor(ev.TargetID)
	dmg := rules.ApplySpellDamage(spell.DamageDice, spell.DamageType, *casterStats, armor, s.src)
	s.applyDamage(ev.TargetID, ev.CasterID, targetHealth, dmg.Final, dmg.Type)

	s.world.Post(domain.Msg(fmt.Sprintf("%s casts %s at %s for %d damage",
		s.world.NameOf(ev.CasterID), spell.Name, s.world.NameOf(ev.TargetID), dmg.Final)))
}

func (s *CombatSystem) applyDamage(targetID, sourceID domain.EntityID, hp *domain.Health, amount int, damageType string) {
	hp.HP -= amount
	if hp.HP < 0 {
		hp.HP = 0
	}
	s.world.Post(domain.DamageApplied{
		TargetID:   targetID,
		Amount:     amount,
		DamageType: damageType,
		SourceID:   sourceID,
	})

	// Death is marked exactly once. A second lethal hit on a corpse must
	// not re-post EntityDied.
	if hp.HP <= 0 && !hp.IsDead {
		hp.IsDead = true
		s.world.Post(domain.EntityDied{EID: targetID, KillerID: sourceID})
		s.world.Post(domain.Msg(fmt.Sprintf("%s dies!", s.world.NameOf(targetID))))
	}
}

// attackWeapon picks the attacker's weapon: an equipped weapon entity wins,
// then an innate Weapon component, then bare fists.
func (s *CombatSystem) attackWeapon(id domain.EntityID) domain.Weapon {
	if eq, ok := s.world.EquipmentOf(id); ok {
		if itemID, ok := eq.Slots[domain.SlotWeapon]; ok {
			if w, ok := s.world.WeaponOf(itemID); ok {
				return *w
			}
		}
	}
	if w, ok := s.world.WeaponOf(id); ok {
		return *w
	}
	return domain.Weapon{
		DamageDice: domain.UnarmedDice,
		DamageType: domain.DamagePhysical,
		Reach:      domain.UnarmedReach,
	}
}

// defenseArmor picks the defender's armor: an innate Armor component wins,
// then an equipped armor entity. Nil means unarmored.
func (s *CombatSystem) defenseArmor(id domain.EntityID) *domain.Armor {
	if a, ok := s.world.ArmorOf(id); ok {
		return a
	}
	if eq, ok := s.world.EquipmentOf(id); ok {
		if itemID, ok := eq.Slots[domain.SlotArmor]; ok {
			if a, ok := s.world.ArmorOf(itemID); ok {
				return a
			}
		}
	}
	return nil
}

func knowsSpell(book *domain.Spellbook, spellID string) bool {
	for _, known := range book.Known {
		if known == spellID {
			return true
		}
	}
	return false
}
