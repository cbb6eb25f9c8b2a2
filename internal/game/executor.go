package game

import "fmt"

// OrderExecutor validates structured orders and applies them to the unit
// registry: ROE/posture updates, path assignment through the pathfinder, and
// acknowledgment traffic on the radio bus.
type OrderExecutor struct {
	grid  *Grid
	units map[string]*Unit
	radio *RadioBus
}

// NewOrderExecutor shares the grid, unit registry, and radio bus with the
// owning game.
func NewOrderExecutor(grid *Grid, units map[string]*Unit, radio *RadioBus) *OrderExecutor {
	return &OrderExecutor{grid: grid, units: units, radio: radio}
}

// ApplyOrder applies one order atomically at validation time: a document
// failing validation is rejected wholesale with no side effects. The return
// value reports intent recognition, not per-unit pathing success — a unit
// whose goal is unreachable simply gets no acknowledgment.
func (e *OrderExecutor) ApplyOrder(clock *SimClock, order *Order) bool {
	if err := ValidateOrder(order); err != nil {
		return false
	}

	prefer := make([]TerrainKind, 0, len(order.Constraints.PreferTerrain)+1)
	for _, name := range order.Constraints.PreferTerrain {
		if kind, ok := TerrainKindFromString(name); ok {
			prefer = append(prefer, kind)
		}
	}
	if order.Constraints.StayConcealed && !containsKind(prefer, TerrainForest) {
		prefer = append(prefer, TerrainForest)
	}

	// ROE and posture apply immediately to every named unit that exists.
	// Unknown ids are skipped; unparseable enum values are ignored per-field.
	for _, name := range order.Units {
		u := e.units[name]
		if u == nil {
			continue
		}
		if order.ROE != "" {
			if roe, ok := ROEFromString(order.ROE); ok {
				u.ROE = roe
			}
		}
		if order.Posture != "" {
			if posture, ok := PostureFromString(order.Posture); ok {
				u.Posture = posture
			}
		}
	}

	if order.Intent == IntentMove {
		if len(order.Waypoints) == 0 {
			return true
		}
		// Only the last waypoint determines the destination; earlier ones
		// are accepted but produce no multi-leg routing.
		last := order.Waypoints[len(order.Waypoints)-1]
		label := last.CellLabel()
		x0, y0, x1, y1, err := e.grid.CommandCellBounds(label)
		if err != nil {
			return true
		}

		var stationX, stationY float64
		if last.Subcell != nil {
			stationX, stationY = e.grid.SubcellPoint(x0, y0, x1, y1, last.Subcell.X, last.Subcell.Y)
		} else {
			stationX, stationY = e.grid.ChooseStation(x0, y0, x1, y1, prefer)
		}
		goal := Coord{X: int(stationX), Y: int(stationY)}

		for _, name := range order.Units {
			u := e.units[name]
			if u == nil {
				continue
			}
			if u.SetMoveTarget(e.grid, goal) {
				ack := fmt.Sprintf("Acknowledged. Moving to %s. ROE=%s, Posture=%s", label, u.ROE, u.Posture)
				e.radio.Send(clock, name, ack)
			}
		}
		return true
	}

	// Non-movement intents acknowledge only; no other state is mutated.
	for _, name := range order.Units {
		e.radio.Send(clock, name, fmt.Sprintf("Acknowledged. Intent %s.", order.Intent))
	}
	return true
}

func containsKind(kinds []TerrainKind, want TerrainKind) bool {
	for _, k := range kinds {
		if k == want {
			return true
		}
	}
	return false
}
