package systems

import (
	"github.com/ESikich/TopDownRPG/internal/domain"
	"github.com/ESikich/TopDownRPG/pkg/dungeon"
	"github.com/ESikich/TopDownRPG/pkg/logger"

	"github.com/sirupsen/logrus"
)

// MovementSystem resolves MoveRequested events against the flee lock, the
// grid and tile occupancy. Walking into a living entity converts the move
// into an attack.
type MovementSystem struct {
	world       *domain.World
	grid        dungeon.Grid
	combatState *CombatState
	playerID    domain.EntityID
}

func NewMovementSystem(w *domain.World, grid dungeon.Grid, cs *CombatState, playerID domain.EntityID) *MovementSystem {
	return &MovementSystem{world: w, grid: grid, combatState: cs, playerID: playerID}
}

func (s *MovementSystem) Consumes(k domain.EventKind) bool {
	return k == domain.EvMoveRequested
}

func (s *MovementSystem) Process(events []domain.Event) {
	for _, ev := range events {
		if mv, ok := ev.(domain.MoveRequested); ok {
			s.handleMove(mv)
		}
	}
}

func (s *MovementSystem) handleMove(ev domain.MoveRequested) {
	pos, ok := s.world.PositionOf(ev.EID)
	if !ok {
		return
	}
	from := pos.Point()
	to := ev.To

	if s.combatState != nil && !s.combatState.CanMoveFreely(ev.EID, from, to) {
		s.world.Post(domain.Msg("Cannot flee from combat!"))
		return
	}

	if !dungeon.InBounds(s.grid, to.X, to.Y) {
		s.world.Post(domain.Msg("Can't go that way!"))
		return
	}
	if !s.grid[to.Y][to.X].Walkable {
		return
	}

	for _, targetID := range s.world.EntitiesAt(to.X, to.Y) {
		if targetID == ev.EID {
			continue
		}
		if hp, ok := s.world.HealthOf(targetID); ok && !hp.IsDead {
			s.world.Post(domain.Bump{EID: ev.EID, TargetID: targetID})
			s.world.Post(domain.AttackRequested{AttackerID: ev.EID, TargetID: targetID})
			return
		}
		if b, ok := s.world.BlockerOf(targetID); ok && b.BlocksMovement {
			return
		}
	}

	pos.X = to.X
	pos.Y = to.Y
	s.world.Post(domain.MoveResolved{EID: ev.EID, From: from, To: to})

	logger.Log.WithFields(logrus.Fields{
		"component": "movement_system",
		"entity_id": ev.EID,
		"from":      from,
		"to":        to,
	}).Debug("Move resolved.")

	// A monster that steps into melee range attacks the same turn, without
	// waiting for its next AI decision.
	if ev.EID != s.playerID {
		if playerPos, ok := s.world.PositionOf(s.playerID); ok && pos.ManhattanTo(*playerPos) == 1 {
			s.world.Post(domain.AttackRequested{AttackerID: ev.EID, TargetID: s.playerID})
		}
	}
}
