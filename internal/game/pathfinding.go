package game

import (
	"container/heap"
	"math"
)

type pathNode struct {
	cell   Coord
	g, h   float64
	parent *pathNode
	index  int // heap index
}

type openList []*pathNode

func (ol openList) Len() int { return len(ol) }

// Less orders by f-score with coordinate tie-breaking so that expansion order
// is fully deterministic.
func (ol openList) Less(i, j int) bool {
	fi := ol[i].g + ol[i].h
	fj := ol[j].g + ol[j].h
	if fi != fj {
		return fi < fj
	}
	if ol[i].cell.X != ol[j].cell.X {
		return ol[i].cell.X < ol[j].cell.X
	}
	return ol[i].cell.Y < ol[j].cell.Y
}

func (ol openList) Swap(i, j int) {
	ol[i], ol[j] = ol[j], ol[i]
	ol[i].index = i
	ol[j].index = j
}

func (ol *openList) Push(x interface{}) {
	n := x.(*pathNode)
	n.index = len(*ol)
	*ol = append(*ol, n)
}

func (ol *openList) Pop() interface{} {
	old := *ol
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*ol = old[:len(old)-1]
	return n
}

var orthoDirs = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
var diagDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// neighborsNoCornerCut appends the in-bounds neighbors of (x,y) to buf.
// Diagonals are only proposed when both orthogonal side cells of the diagonal
// are in bounds; the side cells are not required to be passable.
func neighborsNoCornerCut(g *Grid, x, y int, buf []Coord) []Coord {
	for _, d := range orthoDirs {
		nx, ny := x+d[0], y+d[1]
		if g.InBounds(nx, ny) {
			buf = append(buf, Coord{X: nx, Y: ny})
		}
	}
	for _, d := range diagDirs {
		nx, ny := x+d[0], y+d[1]
		if !g.InBounds(nx, ny) {
			continue
		}
		if !g.InBounds(x+d[0], y) || !g.InBounds(x, y+d[1]) {
			continue
		}
		buf = append(buf, Coord{X: nx, Y: ny})
	}
	return buf
}

// octile is the 8-directional distance heuristic with unit orthogonal cost.
func octile(a, b Coord) float64 {
	dx := math.Abs(float64(a.X - b.X))
	dy := math.Abs(float64(a.Y - b.Y))
	return dx + dy + (math.Sqrt2-2)*math.Min(dx, dy)
}

// FindPath runs A* from start to goal over the terrain grid. Entering a cell
// costs that cell's move cost; cells at or above the impassable sentinel are
// never expanded into. The returned path includes both endpoints, ordered
// start to goal. Nil when either endpoint is out of bounds or no path exists.
func FindPath(g *Grid, start, goal Coord) []Coord {
	if start == goal {
		return []Coord{start}
	}
	if !g.InBounds(start.X, start.Y) || !g.InBounds(goal.X, goal.Y) {
		return nil
	}

	startNode := &pathNode{cell: start, g: 0, h: octile(start, goal)}
	ol := &openList{startNode}
	heap.Init(ol)

	best := map[Coord]float64{start: 0}
	scratch := make([]Coord, 0, 8)

	for ol.Len() > 0 {
		cur := heap.Pop(ol).(*pathNode)
		if cur.cell == goal {
			return buildPath(cur)
		}
		// Stale heap entry superseded by a cheaper route.
		if cur.g > best[cur.cell] {
			continue
		}

		scratch = neighborsNoCornerCut(g, cur.cell.X, cur.cell.Y, scratch[:0])
		for _, next := range scratch {
			cost := g.kindAt(next.X, next.Y).MoveCost()
			if cost >= NoMoveAllowed {
				continue
			}
			tentative := cur.g + cost
			if prev, ok := best[next]; ok && tentative >= prev {
				continue
			}
			best[next] = tentative
			heap.Push(ol, &pathNode{
				cell:   next,
				g:      tentative,
				h:      octile(next, goal),
				parent: cur,
			})
		}
	}
	return nil
}

func buildPath(end *pathNode) []Coord {
	var cells []Coord
	for n := end; n != nil; n = n.parent {
		cells = append(cells, n.cell)
	}
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
	return cells
}
