package game

import (
	"math"
	"testing"
)

func TestLineCellsInclusive(t *testing.T) {
	g := NewUniformGrid(10, 10, TerrainPlain)
	cells := g.LineCells(0, 0, 3, 3)
	if len(cells) != 4 {
		t.Fatalf("expected 4 cells on the diagonal, got %v", cells)
	}
	if cells[0] != (Coord{0, 0}) || cells[3] != (Coord{3, 3}) {
		t.Fatalf("line must include both endpoints: %v", cells)
	}
}

func TestSightBudgetOpenTerrain(t *testing.T) {
	g := NewUniformGrid(20, 20, TerrainPlain)
	if b := g.SightBudget(Coord{0, 0}, Coord{9, 0}); b != MaxSight {
		t.Fatalf("open terrain should keep the full budget, got %d", b)
	}
}

func TestSightBudgetBlockedByMountain(t *testing.T) {
	g := NewUniformGrid(10, 10, TerrainPlain)
	g.cells[5*g.width+5] = TerrainMountain

	if b := g.SightBudget(Coord{2, 5}, Coord{8, 5}); b != 0 {
		t.Fatalf("mountain on the line should zero the budget, got %d", b)
	}
	// Endpoints are excluded from the deduction.
	if b := g.SightBudget(Coord{5, 5}, Coord{8, 5}); b != MaxSight {
		t.Fatalf("mountain endpoint must not block, got %d", b)
	}
	if b := g.SightBudget(Coord{2, 5}, Coord{5, 5}); b != MaxSight {
		t.Fatalf("mountain endpoint must not block, got %d", b)
	}
}

func TestCommandCellBounds(t *testing.T) {
	g := NewUniformGrid(100, 100, TerrainPlain)

	x0, y0, x1, y1, err := g.CommandCellBounds("D3")
	if err != nil {
		t.Fatalf("D3: %v", err)
	}
	if x0 != 30 || y0 != 30 || x1 != 39 || y1 != 39 {
		t.Fatalf("D3 bounds wrong: (%d,%d)-(%d,%d)", x0, y0, x1, y1)
	}

	x0, y0, x1, y1, err = g.CommandCellBounds("A0")
	if err != nil {
		t.Fatalf("A0: %v", err)
	}
	if x0 != 0 || y0 != 0 || x1 != 9 || y1 != 9 {
		t.Fatalf("A0 bounds wrong: (%d,%d)-(%d,%d)", x0, y0, x1, y1)
	}

	for _, bad := range []string{"K3", "D", "d3", "D33", ""} {
		if _, _, _, _, err := g.CommandCellBounds(bad); err == nil {
			t.Fatalf("label %q should be rejected", bad)
		}
	}
}

func TestChooseStationPrefersTerrain(t *testing.T) {
	g := NewUniformGrid(100, 100, TerrainPlain)
	g.cells[35*g.width+32] = TerrainForest

	x, y := g.ChooseStation(30, 30, 39, 39, []TerrainKind{TerrainForest})
	if x != 32.5 || y != 35.5 {
		t.Fatalf("expected forest station (32.5,35.5), got (%.1f,%.1f)", x, y)
	}

	// No preferred terrain present falls back to the macro-cell center.
	x, y = g.ChooseStation(30, 30, 39, 39, []TerrainKind{TerrainMountain})
	if x != 35 || y != 35 {
		t.Fatalf("expected center fallback (35,35), got (%.1f,%.1f)", x, y)
	}
}

func TestSubcellPoint(t *testing.T) {
	g := NewUniformGrid(100, 100, TerrainPlain)
	x, y := g.SubcellPoint(30, 30, 39, 39, 50, 50)
	if math.Abs(x-34.5) > 1e-9 || math.Abs(y-34.5) > 1e-9 {
		t.Fatalf("expected (34.5,34.5), got (%.2f,%.2f)", x, y)
	}
	x, y = g.SubcellPoint(30, 30, 39, 39, 0, 100)
	if x != 30 || y != 39 {
		t.Fatalf("expected corner (30,39), got (%.2f,%.2f)", x, y)
	}
}

func TestGridGeneratorDeterministic(t *testing.T) {
	a := NewGrid(60, 60, 7)
	b := NewGrid(60, 60, 7)
	for i := range a.cells {
		if a.cells[i] != b.cells[i] {
			t.Fatalf("same seed produced different terrain at index %d", i)
		}
	}

	c := NewGrid(60, 60, 8)
	same := true
	for i := range a.cells {
		if a.cells[i] != c.cells[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical terrain")
	}
}

func TestGridGeneratorHasAllKinds(t *testing.T) {
	g := NewGrid(100, 100, 1)
	seen := map[TerrainKind]bool{}
	for _, k := range g.cells {
		seen[k] = true
	}
	for _, want := range []TerrainKind{TerrainRoad, TerrainPlain, TerrainForest, TerrainMountain} {
		if !seen[want] {
			t.Fatalf("generated map missing %s", want)
		}
	}
}
