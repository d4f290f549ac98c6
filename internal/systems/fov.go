// Package systems holds the turn pipeline's systems. Each system either
// consumes a kind-filtered batch of events (see EventProcessor) or exposes
// a Process method the engine calls at a fixed pipeline stage.
package systems

import (
	"github.com/ESikich/TopDownRPG/internal/domain"
	"github.com/ESikich/TopDownRPG/pkg/dungeon"
)

// EventProcessor is a system driven by the event queue. The engine drains
// each batch, hands a system the kinds it consumes and re-posts the rest.
type EventProcessor interface {
	Consumes(k domain.EventKind) bool
	Process(events []domain.Event)
}

// ComputeVisible returns the tiles visible from the origin within the given
// radius. Rays are traced with an 8-connected integer line; walls are
// revealed but stop the ray, and diagonal steps cannot cut through corners.
// Out-of-bounds counts as opaque. The origin is always visible.
func ComputeVisible(grid dungeon.Grid, ox, oy, radius int) map[domain.Point]bool {
	visible := map[domain.Point]bool{{X: ox, Y: oy}: true}
	r2 := radius * radius

	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if dx*dx+dy*dy > r2 {
				continue
			}
			cx, cy := ox+dx, oy+dy

			// A diagonal floor candidate is unreachable when both of the
			// origin's orthogonal step neighbors are walls; allowing it
			// would let vision squeeze through the corner.
			if dx != 0 && dy != 0 && !dungeon.Opaque(grid, cx, cy) {
				if dungeon.Opaque(grid, ox+sign(dx), oy) || dungeon.Opaque(grid, ox, oy+sign(dy)) {
					continue
				}
			}

			traceRay(grid, ox, oy, cx, cy, visible)
		}
	}

	revealCorridorWalls(grid, visible)
	return visible
}

// traceRay marks every tile along the line from (x0,y0) to (x1,y1) visible,
// stopping at the first opaque tile (which is still revealed). A diagonal
// step blocked by either orthogonal neighbor stops the ray, except that a
// terminal wall candidate is revealed before stopping.
func traceRay(grid dungeon.Grid, x0, y0, x1, y1 int, visible map[domain.Point]bool) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx := sign(x1 - x0)
	sy := sign(y1 - y0)
	err := dx + dy

	x, y := x0, y0
	for {
		if !dungeon.InBounds(grid, x, y) {
			return
		}
		visible[domain.Point{X: x, Y: y}] = true
		if dungeon.Opaque(grid, x, y) && !(x == x0 && y == y0) {
			return
		}
		if x == x1 && y == y1 {
			return
		}

		px, py := x, y
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}

		if x != px && y != py {
			if dungeon.Opaque(grid, px, y) || dungeon.Opaque(grid, x, py) {
				// A terminal wall candidate is still revealed before the
				// corner stops the ray.
				if x == x1 && y == y1 && dungeon.InBounds(grid, x, y) && grid[y][x].Opaque {
					visible[domain.Point{X: x, Y: y}] = true
				}
				return
			}
		}
	}
}

// revealCorridorWalls adds the orthogonal wall neighbors of every visible
// floor tile, regardless of radius. Without this a corridor's flanking
// walls drop out whenever the radius clips them.
func revealCorridorWalls(grid dungeon.Grid, visible map[domain.Point]bool) {
	floors := make([]domain.Point, 0, len(visible))
	for p := range visible {
		if !dungeon.Opaque(grid, p.X, p.Y) {
			floors = append(floors, p)
		}
	}
	for _, p := range floors {
		for _, n := range [4]domain.Point{
			{X: p.X + 1, Y: p.Y},
			{X: p.X - 1, Y: p.Y},
			{X: p.X, Y: p.Y + 1},
			{X: p.X, Y: p.Y - 1},
		} {
			if dungeon.InBounds(grid, n.X, n.Y) && grid[n.Y][n.X].Opaque {
				visible[n] = true
			}
		}
	}
}

// FOVSystem recomputes visibility for every sighted entity once per turn,
// after all movement has settled.
type FOVSystem struct {
	world *domain.World
	grid  dungeon.Grid
}

func NewFOVSystem(w *domain.World, grid dungeon.Grid) *FOVSystem {
	return &FOVSystem{world: w, grid: grid}
}

func (s *FOVSystem) Process() {
	for _, id := range s.world.Query(domain.KindVision, domain.KindPosition) {
		pos, _ := s.world.PositionOf(id)
		vision, _ := s.world.VisionOf(id)

		tiles := ComputeVisible(s.grid, pos.X, pos.Y, vision.Radius)

		vis, ok := s.world.VisibleOf(id)
		if !ok {
			vis = domain.NewVisible()
			s.world.Add(id, vis)
		}
		vis.VisibleTiles = tiles
		for p := range tiles {
			vis.SeenTiles[p] = true
		}
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
