package systems

import (
	"sort"

	"github.com/ESikich/TopDownRPG/internal/domain"
	"github.com/ESikich/TopDownRPG/pkg/logger"

	"github.com/sirupsen/logrus"
)

// CombatState tracks the active engagement and enforces the flee lock. It
// observes every drained batch but never consumes events; the engine calls
// Observe on each batch before routing it. The participant set is the only
// system state that survives across turns.
type CombatState struct {
	world        *domain.World
	active       bool
	participants map[domain.EntityID]struct{}
}

func NewCombatState(w *domain.World) *CombatState {
	return &CombatState{
		world:        w,
		participants: make(map[domain.EntityID]struct{}),
	}
}

// Observe updates engagement state from a drained batch. It never posts the
// batch back; routing is the engine's job.
func (s *CombatState) Observe(events []domain.Event) {
	for _, ev := range events {
		switch e := ev.(type) {
		case domain.AttackRequested:
			s.engage(e.AttackerID, e.TargetID)
		case domain.EntityDied:
			s.dismiss(e.EID)
		}
	}
}

func (s *CombatState) engage(attacker, target domain.EntityID) {
	if !s.active {
		s.active = true
		s.participants[attacker] = struct{}{}
		s.participants[target] = struct{}{}
		logger.Log.WithFields(logrus.Fields{
			"component": "combat_state",
			"attacker":  attacker,
			"target":    target,
		}).Info("Combat started.")
		s.world.Post(domain.CombatStarted{Participants: s.participantList()})
		return
	}
	s.participants[attacker] = struct{}{}
	s.participants[target] = struct{}{}
}

func (s *CombatState) dismiss(id domain.EntityID) {
	if _, ok := s.participants[id]; !ok {
		return
	}
	delete(s.participants, id)
	if s.shouldEnd() {
		s.end()
	}
}

// shouldEnd reports whether the engagement has collapsed: fewer than two
// living positioned participants, or no two of them within melee reach.
func (s *CombatState) shouldEnd() bool {
	if len(s.participants) < 2 {
		return true
	}

	var points []domain.Point
	for id := range s.participants {
		pos, ok := s.world.PositionOf(id)
		if !ok {
			continue
		}
		hp, ok := s.world.HealthOf(id)
		if !ok || hp.IsDead {
			continue
		}
		points = append(points, pos.Point())
	}
	if len(points) < 2 {
		return true
	}

	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if domain.Chebyshev(points[i], points[j]) <= 1 {
				return false
			}
		}
	}
	return true
}

func (s *CombatState) end() {
	ended := s.participantList()
	s.active = false
	s.participants = make(map[domain.EntityID]struct{})
	logger.Log.WithField("component", "combat_state").Info("Combat ended.")
	s.world.Post(domain.CombatEnded{Participants: ended})
}

func (s *CombatState) participantList() []domain.EntityID {
	out := make([]domain.EntityID, 0, len(s.participants))
	for id := range s.participants {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// InCombat reports whether the entity is part of the active engagement.
func (s *CombatState) InCombat(id domain.EntityID) bool {
	_, ok := s.participants[id]
	return ok
}

// CanMoveFreely is the flee lock: entities outside combat move anywhere,
// combatants may only reposition within melee reach of where they stand.
func (s *CombatState) CanMoveFreely(id domain.EntityID, from, to domain.Point) bool {
	if !s.InCombat(id) {
		return true
	}
	return domain.Chebyshev(from, to) <= 1
}
