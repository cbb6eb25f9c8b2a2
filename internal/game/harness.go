package game

// Scenario is a headless game builder used by tests and the CLI runner. It
// wraps a Game with deterministic seeding and convenient unit placement.
type Scenario struct {
	Game *Game

	cfg     GameConfig
	uniform bool
	kind    TerrainKind
}

// scenarioOptionKind controls the pass in which an option is applied.
type scenarioOptionKind int

const (
	scenarioOptInfra    scenarioOptionKind = iota // grid size, seed, radio timing — applied first
	scenarioOptUnit                               // add units — applied after the game is built
	scenarioOptFireteam                           // form fireteams — applied after units exist
)

// ScenarioOption is a builder function applied to a Scenario during
// construction.
type ScenarioOption struct {
	kind scenarioOptionKind
	fn   func(*Scenario)
}

// WithGridSize sets the terrain grid dimensions.
func WithGridSize(w, h int) ScenarioOption {
	return ScenarioOption{scenarioOptInfra, func(sc *Scenario) {
		sc.cfg.Width = w
		sc.cfg.Height = h
	}}
}

// WithSeed sets the seed used for both terrain generation and the combat rng.
func WithSeed(seed int64) ScenarioOption {
	return ScenarioOption{scenarioOptInfra, func(sc *Scenario) {
		sc.cfg.Seed = seed
	}}
}

// WithLatency sets the radio delivery latency in ticks.
func WithLatency(ticks int) ScenarioOption {
	return ScenarioOption{scenarioOptInfra, func(sc *Scenario) {
		sc.cfg.RadioLatencyTicks = ticks
	}}
}

// WithSuppressWindow sets the radio spam suppression window in ticks.
func WithSuppressWindow(ticks int) ScenarioOption {
	return ScenarioOption{scenarioOptInfra, func(sc *Scenario) {
		sc.cfg.SuppressWindowTicks = ticks
	}}
}

// WithWeapon overrides the weapon profile used for every shot.
func WithWeapon(profile WeaponProfile) ScenarioOption {
	return ScenarioOption{scenarioOptInfra, func(sc *Scenario) {
		sc.cfg.Weapon = profile
	}}
}

// WithUniformTerrain replaces the generated map with a single-kind grid.
// Tests use this to keep movement and sight independent of the generator.
func WithUniformTerrain(kind TerrainKind) ScenarioOption {
	return ScenarioOption{scenarioOptInfra, func(sc *Scenario) {
		sc.uniform = true
		sc.kind = kind
	}}
}

// WithUnit adds a unit at cell-centered position (x+0.5, y+0.5).
func WithUnit(id, side string, speed float64, x, y int) ScenarioOption {
	return ScenarioOption{scenarioOptUnit, func(sc *Scenario) {
		sc.Game.AddUnit(NewUnit(id, speed, float64(x)+0.5, float64(y)+0.5, side))
	}}
}

// WithFireteam groups existing units (by id) under a leader.
func WithFireteam(name, leaderID string, memberIDs ...string) ScenarioOption {
	return ScenarioOption{scenarioOptFireteam, func(sc *Scenario) {
		members := append([]string{leaderID}, memberIDs...)
		sc.Game.RegisterFireteam(Fireteam{Name: name, LeaderID: leaderID, MemberIDs: members})
	}}
}

// NewScenario constructs a Scenario from the given options in three ordered
// passes:
//  1. Infrastructure (grid size, seed, radio timing, weapon, terrain mode)
//  2. Units
//  3. Fireteams
func NewScenario(opts ...ScenarioOption) *Scenario {
	sc := &Scenario{cfg: DefaultGameConfig()}
	for _, o := range opts {
		if o.kind == scenarioOptInfra {
			o.fn(sc)
		}
	}
	if sc.uniform {
		sc.Game = NewGameOnGrid(sc.cfg, NewUniformGrid(sc.cfg.Width, sc.cfg.Height, sc.kind))
	} else {
		sc.Game = NewGame(sc.cfg)
	}
	for _, o := range opts {
		if o.kind == scenarioOptUnit {
			o.fn(sc)
		}
	}
	for _, o := range opts {
		if o.kind == scenarioOptFireteam {
			o.fn(sc)
		}
	}
	return sc
}

// RunTicks advances the game n ticks.
func (sc *Scenario) RunTicks(n int) {
	sc.Game.Tick(n)
}

// RunUntil advances the game up to maxTicks, stopping early once predicate
// returns true. Returns the tick at which it was satisfied, or -1.
func (sc *Scenario) RunUntil(predicate func(*Game) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		sc.Game.Tick(1)
		if predicate(sc.Game) {
			return sc.Game.Clock().Tick
		}
	}
	return -1
}

// UnitSnapshot is a lightweight copy of a unit's state at a tick.
type UnitSnapshot struct {
	ID     string
	Side   string
	X, Y   float64
	State  UnitState
	Health HealthState
}

// Snapshot captures every unit's position and health in registration order.
func (sc *Scenario) Snapshot() []UnitSnapshot {
	units := sc.Game.Units()
	out := make([]UnitSnapshot, 0, len(units))
	for _, u := range units {
		out = append(out, UnitSnapshot{
			ID:     u.ID,
			Side:   u.Side,
			X:      u.X,
			Y:      u.Y,
			State:  u.State,
			Health: u.Health,
		})
	}
	return out
}
