package dungeon

// TileType classifies a map cell.
type TileType uint8

const (
	TileWall TileType = iota
	TileFloor
	TileDoor
	TileStairsDown
	TileWater
	TileSand
	TileGrass
)

// Tile is immutable once placed on the grid.
type Tile struct {
	Type     TileType
	Walkable bool
	Opaque   bool
	Glyph    string
	Color    string
}

func Wall() Tile {
	return Tile{Type: TileWall, Walkable: false, Opaque: true, Glyph: "#", Color: "#808080"}
}

func Floor() Tile {
	return Tile{Type: TileFloor, Walkable: true, Opaque: false, Glyph: ".", Color: "#FFFFFF"}
}

func Door() Tile {
	return Tile{Type: TileDoor, Walkable: false, Opaque: true, Glyph: "+", Color: "#8B4513"}
}

func StairsDown() Tile {
	return Tile{Type: TileStairsDown, Walkable: true, Opaque: false, Glyph: ">", Color: "#FFFFFF"}
}

func Water() Tile {
	return Tile{Type: TileWater, Walkable: true, Opaque: false, Glyph: "~", Color: "#00FFFF"}
}

func Sand() Tile {
	return Tile{Type: TileSand, Walkable: true, Opaque: false, Glyph: ",", Color: "#C2B280"}
}

func Grass() Tile {
	return Tile{Type: TileGrass, Walkable: true, Opaque: false, Glyph: "\"", Color: "#228B22"}
}

// Grid is indexed [row][col], i.e. [y][x]. Fixed size per floor.
type Grid [][]Tile

// InBounds reports whether (x, y) lies on the grid.
func InBounds(grid Grid, x, y int) bool {
	return y >= 0 && y < len(grid) && len(grid) > 0 && x >= 0 && x < len(grid[0])
}

// Opaque reports whether (x, y) blocks sight. Out-of-bounds counts as
// opaque.
func Opaque(grid Grid, x, y int) bool {
	if !InBounds(grid, x, y) {
		return true
	}
	return grid[y][x].Opaque
}

// Walkable reports whether (x, y) can be entered. Out-of-bounds counts as
// not walkable.
func Walkable(grid Grid, x, y int) bool {
	if !InBounds(grid, x, y) {
		return false
	}
	return grid[y][x].Walkable
}
