package game

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// GameConfig captures everything needed to reconstruct a run bit-for-bit:
// grid dimensions and seed, radio timing, and the weapon profile.
type GameConfig struct {
	Width               int
	Height              int
	Seed                int64
	RadioLatencyTicks   int
	SuppressWindowTicks int
	Weapon              WeaponProfile
}

// DefaultGameConfig returns the baseline configuration.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Width:               100,
		Height:              100,
		Seed:                1,
		RadioLatencyTicks:   3,
		SuppressWindowTicks: 5,
		Weapon:              DefaultRiflemanProfile(),
	}
}

// Game owns the grid, unit registry, radio bus, and order executor, and runs
// the fixed-order tick pipeline. Everything is single-threaded: a tick runs
// to completion before control returns.
type Game struct {
	cfg  GameConfig
	grid *Grid

	units     map[string]*Unit
	unitOrder []string // registry iteration always follows insertion order
	fireteams map[string]*Fireteam

	radio    *RadioBus
	sim      *Simulation
	executor *OrderExecutor

	radioLog []RadioEvent
	log      zerolog.Logger
}

// NewGame builds a game on a freshly generated terrain grid.
func NewGame(cfg GameConfig) *Game {
	return NewGameOnGrid(cfg, NewGrid(cfg.Width, cfg.Height, cfg.Seed))
}

// NewGameOnGrid builds a game on a caller-supplied grid; scenario harnesses
// use this to run on uniform terrain.
func NewGameOnGrid(cfg GameConfig, grid *Grid) *Game {
	g := &Game{
		cfg:       cfg,
		grid:      grid,
		units:     make(map[string]*Unit),
		fireteams: make(map[string]*Fireteam),
		radio:     NewRadioBus(cfg.RadioLatencyTicks, cfg.SuppressWindowTicks),
		sim:       NewSimulation(cfg.Seed),
		log:       zerolog.Nop(),
	}
	g.executor = NewOrderExecutor(grid, g.units, g.radio)
	return g
}

// SetLogger attaches a diagnostics logger. Logging never feeds back into
// simulation state.
func (g *Game) SetLogger(l zerolog.Logger) { g.log = l }

// Grid returns the terrain grid.
func (g *Game) Grid() *Grid { return g.grid }

// Clock returns the simulation clock.
func (g *Game) Clock() *SimClock { return &g.sim.Clock }

// AddUnit registers a unit. Units are never removed; a KIA unit persists.
func (g *Game) AddUnit(u *Unit) {
	if _, exists := g.units[u.ID]; !exists {
		g.unitOrder = append(g.unitOrder, u.ID)
	}
	g.units[u.ID] = u
}

// Unit looks up a unit by id.
func (g *Game) Unit(id string) *Unit { return g.units[id] }

// Units returns all units in registration order.
func (g *Game) Units() []*Unit {
	out := make([]*Unit, 0, len(g.unitOrder))
	for _, id := range g.unitOrder {
		out = append(out, g.units[id])
	}
	return out
}

// RegisterFireteam records a fireteam and marks its members on the units.
func (g *Game) RegisterFireteam(ft Fireteam) {
	g.fireteams[ft.Name] = &ft
	for _, id := range ft.MemberIDs {
		if u := g.units[id]; u != nil {
			u.FireteamName = ft.Name
			u.IsLeader = id == ft.LeaderID
		}
	}
}

// Fireteam looks up a registered fireteam by name.
func (g *Game) Fireteam(name string) *Fireteam { return g.fireteams[name] }

// EnforceFireteamCohesion snaps every follower toward its leader where the
// cohesion rule demands it. Scenario-level corrective pass; not part of the
// tick pipeline.
func (g *Game) EnforceFireteamCohesion() {
	for _, id := range g.unitOrder {
		u := g.units[id]
		if u.FireteamName == "" || u.IsLeader {
			continue
		}
		ft := g.fireteams[u.FireteamName]
		if ft == nil {
			continue
		}
		if leader := g.units[ft.LeaderID]; leader != nil {
			EnforceCohesion(leader, u)
		}
	}
}

// EnqueueOrder validates and applies one order. A rejected order has no
// side effects; an accepted order never aborts the surrounding tick.
func (g *Game) EnqueueOrder(order *Order) bool {
	ok := g.executor.ApplyOrder(&g.sim.Clock, order)
	evt := g.log.Debug().Bool("accepted", ok)
	if order != nil {
		evt = evt.Str("intent", order.Intent).Strs("units", order.Units)
	}
	evt.Msg("order")
	return ok
}

// RadioLog returns the delivered radio events so far, in delivery order.
func (g *Game) RadioLog() []RadioEvent {
	out := make([]RadioEvent, len(g.radioLog))
	copy(out, g.radioLog)
	return out
}

// Tick advances the simulation numTicks steps. Each step runs the fixed
// pipeline: clock, movement, combat, contact reports, casualty reports,
// radio delivery. Determinism depends on this exact ordering.
func (g *Game) Tick(numTicks int) {
	for i := 0; i < numTicks; i++ {
		g.sim.Step()

		for _, id := range g.unitOrder {
			u := g.units[id]
			u.TickMove(TickDT)
			if u.State == UnitIdle && u.Target == nil {
				g.radio.Send(&g.sim.Clock, u.ID, "At waypoint.")
			}
		}

		g.combatPass()
		g.contactPass()
		g.casualtyPass()

		g.radio.Deliver(&g.sim.Clock, g.handleRadio)
	}
}

// combatPass lets every living unit whose ROE is not hold attempt one shot
// against every living opposing unit. Return-fire is treated as
// unconditionally permitted: there is no per-unit fired-upon tracking.
func (g *Game) combatPass() {
	for _, sid := range g.unitOrder {
		shooter := g.units[sid]
		if shooter.Health == HealthKIA || shooter.ROE == ROEHold {
			continue
		}
		for _, tid := range g.unitOrder {
			if tid == sid {
				continue
			}
			target := g.units[tid]
			if target.Side == shooter.Side || target.Health == HealthKIA {
				continue
			}
			if newState, hit := ResolveShot(g.grid, shooter, target, g.cfg.Weapon, g.sim.RNG); hit {
				g.radio.Send(&g.sim.Clock, shooter.ID,
					fmt.Sprintf("Engaging enemy at (%d,%d).", int(target.X), int(target.Y)))
				g.log.Debug().
					Str("shooter", shooter.ID).
					Str("target", target.ID).
					Stringer("result", newState).
					Msg("shot")
			}
		}
	}
}

// contactPass reports every detection between opposing units, in both
// directions, every tick it holds. The suppression window keeps repeats off
// the air.
func (g *Game) contactPass() {
	for i := 0; i < len(g.unitOrder); i++ {
		a := g.units[g.unitOrder[i]]
		for j := i + 1; j < len(g.unitOrder); j++ {
			b := g.units[g.unitOrder[j]]
			if a.Side == b.Side {
				continue
			}
			if DetectEnemy(g.grid, a, b) {
				g.radio.Send(&g.sim.Clock, a.ID,
					fmt.Sprintf("Contact, enemy spotted near (%d,%d).", int(b.X), int(b.Y)))
			}
			if DetectEnemy(g.grid, b, a) {
				g.radio.Send(&g.sim.Clock, b.ID,
					fmt.Sprintf("Contact, enemy spotted near (%d,%d).", int(a.X), int(a.Y)))
			}
		}
	}
}

// casualtyPass reports wounded and KIA units every tick the condition holds,
// not only on the transition edge.
func (g *Game) casualtyPass() {
	for _, id := range g.unitOrder {
		u := g.units[id]
		if u.Health == HealthWounded || u.Health == HealthKIA {
			g.radio.Send(&g.sim.Clock, u.ID, strings.ToUpper(u.Health.String())+".")
		}
	}
}

func (g *Game) handleRadio(evt RadioEvent) {
	g.radioLog = append(g.radioLog, evt)
}
