package game

import (
	"fmt"
	"math"
	"math/rand"
	"regexp"
)

// commandGridSize is the fixed number of macro command-cell columns and rows,
// independent of the underlying map dimensions.
const commandGridSize = 10

// Coord is an integer grid cell coordinate.
type Coord struct {
	X int
	Y int
}

// Grid is a 2D terrain grid. Cells are immutable after construction.
type Grid struct {
	width  int
	height int
	cells  []TerrainKind
}

// NewGrid generates a terrain grid from a seed: a plains base crossed by road
// spines with partial branches, clustered forests, and sparse mountains.
// The same seed always yields the same grid.
func NewGrid(width, height int, seed int64) *Grid {
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- deterministic terrain layout

	g := NewUniformGrid(width, height, TerrainPlain)

	// Road spines: one horizontal, one vertical.
	hrow := rng.Intn(height)
	for x := 0; x < width; x++ {
		g.cells[hrow*width+x] = TerrainRoad
	}
	vcol := rng.Intn(width)
	for y := 0; y < height; y++ {
		g.cells[y*width+vcol] = TerrainRoad
	}

	// Partial road branches.
	for i := 0; i < max(1, (width+height)/6); i++ {
		y := rng.Intn(height)
		limit := rng.Intn(width)
		for x := 0; x < limit; x++ {
			if rng.Float64() < 0.2 {
				g.cells[y*width+x] = TerrainRoad
			}
		}
	}

	// Forest clusters. Cluster count scales with the map perimeter, not area,
	// so very large maps stay cheap to generate.
	numClusters := min(max(1, (width+height)/2), 2000)
	maxRadius := max(2, min(25, min(width, height)/20))
	for i := 0; i < numClusters; i++ {
		cx := rng.Intn(width)
		cy := rng.Intn(height)
		radius := 1 + rng.Intn(maxRadius-1)
		r2 := radius * radius
		for y := max(0, cy-radius); y <= min(height-1, cy+radius); y++ {
			dy := y - cy
			span2 := r2 - dy*dy
			if span2 < 0 {
				continue
			}
			span := int(math.Sqrt(float64(span2)))
			for x := max(0, cx-span); x <= min(width-1, cx+span); x++ {
				if g.cells[y*width+x] != TerrainRoad {
					g.cells[y*width+x] = TerrainForest
				}
			}
		}
	}

	// Sparse mountains; roads stay clear.
	for i := 0; i < max(1, (width+height)/8); i++ {
		nx := rng.Intn(width)
		ny := rng.Intn(height)
		if g.cells[ny*width+nx] != TerrainRoad {
			g.cells[ny*width+nx] = TerrainMountain
		}
	}

	return g
}

// NewUniformGrid builds a grid filled with a single terrain kind.
func NewUniformGrid(width, height int, kind TerrainKind) *Grid {
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]TerrainKind, width*height),
	}
	if kind != 0 {
		for i := range g.cells {
			g.cells[i] = kind
		}
	}
	return g
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x,y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// CellAt returns the terrain kind at (x,y), bounds-checked.
func (g *Grid) CellAt(x, y int) (TerrainKind, bool) {
	if !g.InBounds(x, y) {
		return TerrainPlain, false
	}
	return g.cells[y*g.width+x], true
}

// kindAt is the unchecked lookup for hot paths; callers guarantee bounds.
func (g *Grid) kindAt(x, y int) TerrainKind {
	return g.cells[y*g.width+x]
}

// lineWalker lazily steps the Bresenham line between two cells, inclusive of
// both endpoints. Restartable via Reset; no per-call allocation.
type lineWalker struct {
	x, y   int
	x2, y2 int
	sx, sy int
	dx, dy int
	err    int
	done   bool

	startX, startY, startErr int
}

func newLineWalker(x1, y1, x2, y2 int) lineWalker {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx := 1
	if x1 >= x2 {
		sx = -1
	}
	sy := 1
	if y1 >= y2 {
		sy = -1
	}
	return lineWalker{
		x: x1, y: y1, x2: x2, y2: y2,
		sx: sx, sy: sy, dx: dx, dy: dy,
		err:    dx - dy,
		startX: x1, startY: y1, startErr: dx - dy,
	}
}

// Next yields the next cell on the line, ending after the far endpoint.
func (lw *lineWalker) Next() (Coord, bool) {
	if lw.done {
		return Coord{}, false
	}
	c := Coord{X: lw.x, Y: lw.y}
	if lw.x == lw.x2 && lw.y == lw.y2 {
		lw.done = true
		return c, true
	}
	e2 := 2 * lw.err
	if e2 > -lw.dy {
		lw.err -= lw.dy
		lw.x += lw.sx
	}
	if e2 < lw.dx {
		lw.err += lw.dx
		lw.y += lw.sy
	}
	return c, true
}

// Reset rewinds the walker to the first cell.
func (lw *lineWalker) Reset() {
	lw.x = lw.startX
	lw.y = lw.startY
	lw.err = lw.startErr
	lw.done = false
}

// LineCells returns the ordered cells on the line from (x1,y1) to (x2,y2),
// inclusive of both endpoints.
func (g *Grid) LineCells(x1, y1, x2, y2 int) []Coord {
	var out []Coord
	lw := newLineWalker(x1, y1, x2, y2)
	for {
		c, ok := lw.Next()
		if !ok {
			return out
		}
		out = append(out, c)
	}
}

// SightBudget walks the line from src to dst subtracting the vision block of
// every intervening cell (the endpoints are excluded). The moment the budget
// reaches zero the sightline is blocked and 0 is returned.
func (g *Grid) SightBudget(src, dst Coord) int {
	budget := MaxSight
	lw := newLineWalker(src.X, src.Y, dst.X, dst.Y)
	for {
		c, ok := lw.Next()
		if !ok {
			return budget
		}
		if c == src || c == dst {
			continue
		}
		budget -= g.kindAt(c.X, c.Y).VisionBlock()
		if budget <= 0 {
			return 0
		}
	}
}

var commandCellRe = regexp.MustCompile(`^[A-J][0-9]$`)

// CommandCellBounds resolves a macro command-cell label such as "D3" to the
// inclusive cell bounds it covers. The letter selects the column, the digit
// the row; macro-cell size is the integer division of the grid dimensions by
// the fixed 10x10 command grid.
func (g *Grid) CommandCellBounds(label string) (x0, y0, x1, y1 int, err error) {
	if !commandCellRe.MatchString(label) {
		return 0, 0, 0, 0, fmt.Errorf("invalid command cell %q", label)
	}
	col := int(label[0] - 'A')
	row := int(label[1] - '0')
	cw := g.width / commandGridSize
	ch := g.height / commandGridSize
	if cw < 1 || ch < 1 {
		return 0, 0, 0, 0, fmt.Errorf("grid %dx%d too small for a command grid", g.width, g.height)
	}
	x0 = col * cw
	y0 = row * ch
	x1 = x0 + cw - 1
	y1 = y0 + ch - 1
	if !g.InBounds(x0, y0) || !g.InBounds(x1, y1) {
		return 0, 0, 0, 0, fmt.Errorf("command cell %q outside grid", label)
	}
	return x0, y0, x1, y1, nil
}

// ChooseStation picks a station point inside macro-cell bounds, preferring
// cells of a requested terrain kind. The scan is row-major and takes the
// first match, so selection is deterministic; with no match the geometric
// center of the macro-cell is used.
func (g *Grid) ChooseStation(x0, y0, x1, y1 int, prefer []TerrainKind) (float64, float64) {
	for _, want := range prefer {
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				if g.kindAt(x, y) == want {
					return float64(x) + 0.5, float64(y) + 0.5
				}
			}
		}
	}
	return (float64(x0) + float64(x1) + 1) / 2, (float64(y0) + float64(y1) + 1) / 2
}

// SubcellPoint interpolates a fractional (0..100, 0..100) coordinate inside
// macro-cell bounds to a world position.
func (g *Grid) SubcellPoint(x0, y0, x1, y1 int, sx, sy float64) (float64, float64) {
	wx := float64(x0) + (sx/100.0)*float64(x1-x0)
	wy := float64(y0) + (sy/100.0)*float64(y1-y0)
	return wx, wy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
