package dungeon

import (
	"github.com/ESikich/TopDownRPG/internal/domain"
	"github.com/ESikich/TopDownRPG/pkg/rng"
)

// Params tunes room placement.
type Params struct {
	MaxRoomAttempts int
	MinRoomSize     int
	MaxRoomSize     int
	MaxRooms        int
}

func DefaultParams() Params {
	return Params{
		MaxRoomAttempts: 50,
		MinRoomSize:     4,
		MaxRoomSize:     8,
		MaxRooms:        8,
	}
}

// Rect is an axis-aligned room rectangle. Rooms exist only as generation
// metadata; the simulation works off the carved grid.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Intersects reports overlap with a 1-tile buffer, so accepted rooms never
// share a wall.
func (r Rect) Intersects(other Rect) bool {
	return !(r.X+r.W+1 < other.X ||
		other.X+other.W+1 < r.X ||
		r.Y+r.H+1 < other.Y ||
		other.Y+other.H+1 < r.Y)
}

// Placements are feature coordinates the caller turns into entities or
// spawn points. The generator deals in coordinates only and never touches
// the World.
type Placements struct {
	StairsDown []domain.Point
	Treasures  []domain.Point
}

// Layout is one generated floor.
type Layout struct {
	Grid       Grid
	Rooms      []Rect
	Placements Placements
}

// Generate produces a room-and-corridor floor. With a hostile parameter set
// zero rooms may be accepted; the result is then an all-wall grid with empty
// placements and the caller must pick a fallback spawn.
func Generate(width, height int, p Params, src rng.Source) Layout {
	grid := make(Grid, height)
	for y := 0; y < height; y++ {
		row := make([]Tile, width)
		for x := 0; x < width; x++ {
			row[x] = Wall()
		}
		grid[y] = row
	}

	rooms := placeRooms(width, height, p, src)

	for _, room := range rooms {
		carveRoom(grid, room)
	}

	connectRooms(grid, rooms, src)

	return Layout{
		Grid:       grid,
		Rooms:      rooms,
		Placements: placeFeatures(grid, rooms, src),
	}
}

func placeRooms(width, height int, p Params, src rng.Source) []Rect {
	var rooms []Rect

	for attempt := 0; attempt < p.MaxRoomAttempts; attempt++ {
		if len(rooms) >= p.MaxRooms {
			break
		}

		w := src.RollRange(p.MinRoomSize, p.MaxRoomSize)
		h := src.RollRange(p.MinRoomSize, p.MaxRoomSize)

		// Keep a one-tile border so carving never reaches the map edge.
		if w >= width-2 || h >= height-2 {
			continue
		}

		x := src.RollRange(1, maxInt(1, width-w-1))
		y := src.RollRange(1, maxInt(1, height-h-1))

		candidate := Rect{X: x, Y: y, W: w, H: h}
		overlaps := false
		for _, other := range rooms {
			if candidate.Intersects(other) {
				overlaps = true
				break
			}
		}
		if !overlaps {
			rooms = append(rooms, candidate)
		}
	}
	return rooms
}

func carveRoom(grid Grid, room Rect) {
	for y := room.Y; y < room.Y+room.H; y++ {
		for x := room.X; x < room.X+room.W; x++ {
			if InBounds(grid, x, y) {
				grid[y][x] = Floor()
			}
		}
	}
}

func connectRooms(grid Grid, rooms []Rect, src rng.Source) {
	if len(rooms) < 2 {
		return
	}

	for i := 0; i < len(rooms)-1; i++ {
		carveCorridor(grid, rooms[i], rooms[i+1], src)
	}

	// Close the loop for variety.
	if len(rooms) > 2 {
		carveCorridor(grid, rooms[len(rooms)-1], rooms[0], src)
	}

	// Extra connections: one per three rooms.
	for n := 0; n < len(rooms)/3; n++ {
		i := src.Intn(len(rooms))
		j := src.Intn(len(rooms))
		if i != j {
			carveCorridor(grid, rooms[i], rooms[j], src)
		}
	}
}

// carveCorridor digs an L between room centers, randomly corner-first or
// corner-last.
func carveCorridor(grid Grid, a, b Rect, src rng.Source) {
	x1, y1 := a.Center()
	x2, y2 := b.Center()

	if src.Intn(2) == 0 {
		carveHorizontal(grid, x1, x2, y1)
		carveVertical(grid, y1, y2, x2)
	} else {
		carveVertical(grid, y1, y2, x1)
		carveHorizontal(grid, x1, x2, y2)
	}
}

func carveHorizontal(grid Grid, x1, x2, y int) {
	for x := minInt(x1, x2); x <= maxInt(x1, x2); x++ {
		if InBounds(grid, x, y) {
			grid[y][x] = Floor()
		}
	}
}

func carveVertical(grid Grid, y1, y2, x int) {
	for y := minInt(y1, y2); y <= maxInt(y1, y2); y++ {
		if InBounds(grid, x, y) {
			grid[y][x] = Floor()
		}
	}
}

func placeFeatures(grid Grid, rooms []Rect, src rng.Source) Placements {
	var placements Placements
	if len(rooms) == 0 {
		return placements
	}

	// Stairs down live somewhere in the last accepted room.
	last := rooms[len(rooms)-1]
	sx := src.RollRange(last.X, last.X+last.W-1)
	sy := src.RollRange(last.Y, last.Y+last.H-1)
	grid[sy][sx] = StairsDown()
	placements.StairsDown = append(placements.StairsDown, domain.Point{X: sx, Y: sy})

	// Treasure markers in up to 3 distinct rooms.
	count := minInt(3, len(rooms))
	for _, idx := range src.Perm(len(rooms))[:count] {
		room := rooms[idx]
		tx := src.RollRange(room.X, room.X+room.W-1)
		ty := src.RollRange(room.Y, room.Y+room.H-1)
		placements.Treasures = append(placements.Treasures, domain.Point{X: tx, Y: ty})
	}

	return placements
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
