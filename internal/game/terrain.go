package game

const (
	// NoMoveAllowed is the impassable movement-cost sentinel: any cell whose
	// cost meets or exceeds it is never entered by the pathfinder.
	NoMoveAllowed = 1000

	// MaxSight is the sight budget in cells before vision blockers apply.
	MaxSight = 10
)

// TerrainKind is the closed set of terrain types a grid cell can hold.
type TerrainKind uint8

const (
	TerrainRoad TerrainKind = iota
	TerrainPlain
	TerrainForest
	TerrainMountain
)

// terrainAttrs holds the per-kind movement and vision properties. Cells are
// immutable after grid creation, so a shared lookup table is all we need.
type terrainAttrs struct {
	moveCost    float64
	visionBlock int
}

var terrainTable = [...]terrainAttrs{
	TerrainRoad:     {moveCost: 1, visionBlock: 0},
	TerrainPlain:    {moveCost: 1.2, visionBlock: 0},
	TerrainForest:   {moveCost: 2, visionBlock: 0},
	TerrainMountain: {moveCost: 5, visionBlock: MaxSight},
}

// MoveCost returns the movement cost of entering a cell of this kind.
func (k TerrainKind) MoveCost() float64 { return terrainTable[k].moveCost }

// VisionBlock returns the sight deduction applied when a line of sight
// crosses a cell of this kind.
func (k TerrainKind) VisionBlock() int { return terrainTable[k].visionBlock }

func (k TerrainKind) String() string {
	switch k {
	case TerrainRoad:
		return "road"
	case TerrainPlain:
		return "plain"
	case TerrainForest:
		return "forest"
	case TerrainMountain:
		return "mountain"
	default:
		return "unknown"
	}
}

// TerrainKindFromString parses the terrain vocabulary used by order
// constraints. Unknown names report ok=false.
func TerrainKindFromString(s string) (TerrainKind, bool) {
	switch s {
	case "road":
		return TerrainRoad, true
	case "plain":
		return TerrainPlain, true
	case "forest":
		return TerrainForest, true
	case "mountain":
		return TerrainMountain, true
	default:
		return TerrainPlain, false
	}
}
