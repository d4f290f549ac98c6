package systems

import (
	"testing"

	"github.com/ESikich/TopDownRPG/internal/domain"
	"github.com/ESikich/TopDownRPG/pkg/dungeon"
	"github.com/ESikich/TopDownRPG/pkg/rng"
)

func spawnChaser(w *domain.World, x, y int) domain.EntityID {
	id := spawnFighter(w, x, y, 10)
	w.Add(id, &domain.AI{Behavior: domain.BehaviorChase})
	return id
}

func TestChaseAttacksWhenAdjacent(t *testing.T) {
	w := domain.NewWorld()
	grid := floorGrid(10, 10)
	player := spawnFighter(w, 2, 2, 100)
	monster := spawnChaser(w, 2, 3)

	NewAISystem(w, grid, player, rng.New(1)).Process()

	var attacked bool
	for _, ev := range w.DrainEvents() {
		if a, ok := ev.(domain.AttackRequested); ok && a.AttackerID == monster && a.TargetID == player {
			attacked = true
		}
	}
	if !attacked {
		t.Error("adjacent chaser must attack, not move")
	}
}

func TestChaseMovesTowardPlayer(t *testing.T) {
	w := domain.NewWorld()
	grid := floorGrid(10, 10)
	player := spawnFighter(w, 2, 2, 100)
	monster := spawnChaser(w, 2, 5)

	NewAISystem(w, grid, player, rng.New(1)).Process()

	var move domain.MoveRequested
	var moved bool
	for _, ev := range w.DrainEvents() {
		if mv, ok := ev.(domain.MoveRequested); ok && mv.EID == monster {
			move = mv
			moved = true
		}
	}
	if !moved {
		t.Fatal("chaser within range must request a move")
	}
	before := domain.Position{X: 2, Y: 5}.ManhattanTo(domain.Position{X: 2, Y: 2})
	after := domain.Position{X: move.To.X, Y: move.To.Y}.ManhattanTo(domain.Position{X: 2, Y: 2})
	if after >= before {
		t.Errorf("chase step %v does not close distance (%d -> %d)", move.To, before, after)
	}
}

func TestChasePathsAroundWalls(t *testing.T) {
	w := domain.NewWorld()
	grid := floorGrid(10, 10)
	// Wall segment between monster and player with a gap to the east.
	grid[3][1] = dungeon.Wall()
	grid[3][2] = dungeon.Wall()
	grid[3][3] = dungeon.Wall()

	player := spawnFighter(w, 2, 2, 100)
	monster := spawnChaser(w, 2, 4)

	NewAISystem(w, grid, player, rng.New(1)).Process()

	for _, ev := range w.DrainEvents() {
		if mv, ok := ev.(domain.MoveRequested); ok && mv.EID == monster {
			if !grid[mv.To.Y][mv.To.X].Walkable {
				t.Errorf("chase step %v lands on a wall", mv.To)
			}
			return
		}
	}
	t.Error("expected a move request around the wall")
}

func TestChaseFallsBackToWanderBeyondRange(t *testing.T) {
	w := domain.NewWorld()
	grid := floorGrid(30, 30)
	player := spawnFighter(w, 2, 2, 100)
	monster := spawnChaser(w, 20, 20)

	NewAISystem(w, grid, player, rng.New(1)).Process()

	for _, ev := range w.DrainEvents() {
		if mv, ok := ev.(domain.MoveRequested); ok && mv.EID == monster {
			if domain.Chebyshev(mv.To, domain.Point{X: 20, Y: 20}) != 1 {
				t.Errorf("wander step %v is not a neighboring cell", mv.To)
			}
			return
		}
	}
	t.Error("out-of-range chaser should wander")
}

func TestWanderIntoPlayerAttacks(t *testing.T) {
	w := domain.NewWorld()
	grid := floorGrid(10, 10)
	player := spawnFighter(w, 2, 2, 100)

	monster := spawnFighter(w, 2, 3, 10)
	w.Add(monster, &domain.AI{Behavior: domain.BehaviorWander})

	// Direction index 1 is (0,-1): straight into the player.
	NewAISystem(w, grid, player, pickSource{index: 1}).Process()

	var attacked bool
	for _, ev := range w.DrainEvents() {
		if a, ok := ev.(domain.AttackRequested); ok && a.AttackerID == monster {
			attacked = true
		}
	}
	if !attacked {
		t.Error("wandering into the player converts to an attack")
	}
}

func TestDeadAIDoesNothing(t *testing.T) {
	w := domain.NewWorld()
	grid := floorGrid(10, 10)
	player := spawnFighter(w, 2, 2, 100)
	monster := spawnChaser(w, 2, 3)
	hp, _ := w.HealthOf(monster)
	hp.IsDead = true

	NewAISystem(w, grid, player, rng.New(1)).Process()

	if len(w.DrainEvents()) != 0 {
		t.Error("dead entities must not act")
	}
}

// pickSource returns a fixed Intn result to force a wander direction.
type pickSource struct{ index int }

func (p pickSource) RollRange(a, b int) int { return a }
func (p pickSource) Intn(n int) int         { return p.index }
func (p pickSource) Float64() float64       { return 1.0 }

func (p pickSource) Perm(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
