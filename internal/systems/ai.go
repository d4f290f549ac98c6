package systems

import (
	"github.com/ESikich/TopDownRPG/internal/domain"
	"github.com/ESikich/TopDownRPG/pkg/dungeon"
	"github.com/ESikich/TopDownRPG/pkg/logger"
	"github.com/ESikich/TopDownRPG/pkg/pathfind"
	"github.com/ESikich/TopDownRPG/pkg/rng"

	"github.com/sirupsen/logrus"
)

var wanderDirections = [8]domain.Point{
	{X: 0, Y: 1}, {X: 0, Y: -1}, {X: 1, Y: 0}, {X: -1, Y: 0},
	{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1},
}

// AISystem decides one action per living AI entity during the monster
// phase. It only posts requests; movement and combat validate them.
type AISystem struct {
	world    *domain.World
	grid     dungeon.Grid
	playerID domain.EntityID
	src      rng.Source
}

func NewAISystem(w *domain.World, grid dungeon.Grid, playerID domain.EntityID, src rng.Source) *AISystem {
	return &AISystem{world: w, grid: grid, playerID: playerID, src: src}
}

func (s *AISystem) Process() {
	playerPos, ok := s.world.PositionOf(s.playerID)
	if !ok {
		return
	}

	for _, id := range s.world.Query(domain.KindAI, domain.KindPosition, domain.KindHealth) {
		hp, _ := s.world.HealthOf(id)
		if hp.IsDead {
			continue
		}
		ai, _ := s.world.AIOf(id)

		switch ai.Behavior {
		case domain.BehaviorChase:
			s.chase(id, *playerPos)
		case domain.BehaviorWander:
			s.wander(id, *playerPos)
		default:
			logger.Log.WithFields(logrus.Fields{
				"component": "ai_system",
				"entity_id": id,
				"behavior":  ai.Behavior,
			}).Warn("Unknown AI behavior, skipping.")
		}
	}
}

func (s *AISystem) chase(id domain.EntityID, playerPos domain.Position) {
	pos, ok := s.world.PositionOf(id)
	if !ok {
		return
	}

	switch manhattan := pos.ManhattanTo(playerPos); {
	case manhattan == 1:
		s.world.Post(domain.AttackRequested{AttackerID: id, TargetID: s.playerID})

	case manhattan <= domain.ChaseRange:
		goal := playerPos.Point()
		path, found := pathfind.FindPath(pos.Point(), goal, s.grid, s.blockedExcept(id, goal))
		if found && len(path) > 1 {
			step := path[1]
			if step == goal {
				s.world.Post(domain.AttackRequested{AttackerID: id, TargetID: s.playerID})
				return
			}
			s.world.Post(domain.MoveRequested{EID: id, To: step})
			return
		}
		s.approachDirect(id, *pos, playerPos)

	default:
		s.wander(id, playerPos)
	}
}

// approachDirect is the fallback when no path exists: one greedy step along
// each axis with a sign, attacking if that step lands on the player.
func (s *AISystem) approachDirect(id domain.EntityID, pos, playerPos domain.Position) {
	step := domain.Point{
		X: pos.X + sign(playerPos.X-pos.X),
		Y: pos.Y + sign(playerPos.Y-pos.Y),
	}
	if step == playerPos.Point() {
		s.world.Post(domain.AttackRequested{AttackerID: id, TargetID: s.playerID})
		return
	}
	s.world.Post(domain.MoveRequested{EID: id, To: step})
}

func (s *AISystem) wander(id domain.EntityID, playerPos domain.Position) {
	pos, ok := s.world.PositionOf(id)
	if !ok {
		return
	}
	dir := wanderDirections[s.src.Intn(len(wanderDirections))]
	step := domain.Point{X: pos.X + dir.X, Y: pos.Y + dir.Y}

	if step == playerPos.Point() {
		s.world.Post(domain.AttackRequested{AttackerID: id, TargetID: s.playerID})
		return
	}
	s.world.Post(domain.MoveRequested{EID: id, To: step})
}

// blockedExcept builds the pathfinding occupancy predicate. The goal cell is
// exempt: the player blocks movement, and treating their tile as blocked
// would make every chase path unreachable.
func (s *AISystem) blockedExcept(selfID domain.EntityID, goal domain.Point) pathfind.BlockCheck {
	return func(x, y int) bool {
		if (domain.Point{X: x, Y: y}) == goal {
			return false
		}
		for _, id := range s.world.EntitiesAt(x, y, domain.KindBlocker) {
			if id == selfID {
				continue
			}
			if b, _ := s.world.BlockerOf(id); b.BlocksMovement {
				return true
			}
		}
		return false
	}
}
