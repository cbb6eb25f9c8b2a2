package game

import "math"

// movementEpsilon stops the movement loop once the remaining budget is
// too small to matter.
const movementEpsilon = 1e-6

// UnitState is the high-level movement state of a unit.
type UnitState uint8

const (
	UnitIdle   UnitState = iota // no path
	UnitMoving                  // consuming a path
	UnitDowned                  // reserved, unused by current rules
)

func (s UnitState) String() string {
	switch s {
	case UnitIdle:
		return "idle"
	case UnitMoving:
		return "moving"
	case UnitDowned:
		return "downed"
	default:
		return "unknown"
	}
}

// HealthState only ever moves forward in severity.
type HealthState uint8

const (
	HealthHealthy HealthState = iota
	HealthWounded
	HealthKIA
)

func (h HealthState) String() string {
	switch h {
	case HealthHealthy:
		return "Healthy"
	case HealthWounded:
		return "Wounded"
	case HealthKIA:
		return "KIA"
	default:
		return "unknown"
	}
}

// Posture is the unit's body position; it feeds order acknowledgments and is
// reserved for detection/accuracy modifiers.
type Posture uint8

const (
	PostureStand Posture = iota
	PostureCrouch
	PostureProne
)

func (p Posture) String() string {
	switch p {
	case PostureStand:
		return "stand"
	case PostureCrouch:
		return "crouch"
	case PostureProne:
		return "prone"
	default:
		return "unknown"
	}
}

// PostureFromString parses the order-document posture vocabulary.
func PostureFromString(s string) (Posture, bool) {
	switch s {
	case "stand":
		return PostureStand, true
	case "crouch":
		return PostureCrouch, true
	case "prone":
		return PostureProne, true
	default:
		return PostureStand, false
	}
}

// ROE gates whether a unit may fire.
type ROE uint8

const (
	ROEHold ROE = iota
	ROEReturnFire
	ROEFree
)

func (r ROE) String() string {
	switch r {
	case ROEHold:
		return "hold"
	case ROEReturnFire:
		return "return_fire"
	case ROEFree:
		return "free"
	default:
		return "unknown"
	}
}

// ROEFromString parses the order-document ROE vocabulary.
func ROEFromString(s string) (ROE, bool) {
	switch s {
	case "hold":
		return ROEHold, true
	case "return_fire":
		return ROEReturnFire, true
	case "free":
		return ROEFree, true
	default:
		return ROEHold, false
	}
}

// Unit is a single maneuver element. Units are created at setup, mutated
// every tick by movement and combat, and persist after KIA.
type Unit struct {
	ID    string
	X, Y  float64
	Speed float64 // cells per second

	State  UnitState
	Path   []Coord // remaining goal-ward cells, current cell excluded
	Target *Coord

	FireteamName string
	IsLeader     bool

	Health  HealthState
	Posture Posture
	ROE     ROE
	Side    string
}

// NewUnit creates a healthy, standing, return-fire unit at (x,y).
func NewUnit(id string, speed, x, y float64, side string) *Unit {
	return &Unit{
		ID:      id,
		X:       x,
		Y:       y,
		Speed:   speed,
		State:   UnitIdle,
		Health:  HealthHealthy,
		Posture: PostureStand,
		ROE:     ROEReturnFire,
		Side:    side,
	}
}

// Cell returns the integer grid cell the unit currently occupies.
func (u *Unit) Cell() Coord {
	return Coord{X: int(u.X), Y: int(u.Y)}
}

func cellCenter(c Coord) (float64, float64) {
	return float64(c.X) + 0.5, float64(c.Y) + 0.5
}

// SetMoveTarget plans a path from the unit's current cell to goal. When no
// path exists or the path is trivial it returns false and leaves the unit
// untouched; otherwise it stores the goal-ward tail of the path and
// transitions to moving.
func (u *Unit) SetMoveTarget(g *Grid, goal Coord) bool {
	p := FindPath(g, u.Cell(), goal)
	if len(p) <= 1 {
		return false
	}
	u.Path = p[1:]
	u.Target = &goal
	u.State = UnitMoving
	return true
}

// TickMove integrates movement for one tick. The budget speed*dt is consumed
// across as many path cells as it covers, so fast units can pass through
// several cells in a single call. When the path empties the unit goes idle
// and the target is cleared.
func (u *Unit) TickMove(dt float64) {
	if u.State != UnitMoving || len(u.Path) == 0 {
		return
	}
	remaining := u.Speed * dt
	for remaining > movementEpsilon && len(u.Path) > 0 {
		tx, ty := cellCenter(u.Path[0])
		dx := tx - u.X
		dy := ty - u.Y
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist <= remaining {
			// Snap exactly to the cell center and carry the leftover budget
			// into the next cell.
			u.X = tx
			u.Y = ty
			u.Path = u.Path[1:]
			remaining -= dist
		} else {
			if dist > 0 {
				u.X += (dx / dist) * remaining
				u.Y += (dy / dist) * remaining
			}
			remaining = 0
		}
	}
	if len(u.Path) == 0 {
		u.State = UnitIdle
		u.Target = nil
	}
}

// Fireteam groups units under a leader for cohesion enforcement.
type Fireteam struct {
	Name           string
	MemberIDs      []string
	LeaderID       string
	CohesionRadius int // in cells
}

// EnforceCohesion nudges a follower one cell toward its leader along each
// axis independently once their Chebyshev separation reaches two cells. It is
// a corrective snap, not a path-planned move.
func EnforceCohesion(leader, follower *Unit) {
	if leader.FireteamName == "" || leader.FireteamName != follower.FireteamName {
		return
	}
	dx := math.Abs(leader.X - follower.X)
	dy := math.Abs(leader.Y - follower.Y)
	if math.Max(dx, dy) < 2 {
		return
	}
	follower.X += stepToward(leader.X, follower.X)
	follower.Y += stepToward(leader.Y, follower.Y)
}

func stepToward(lead, follow float64) float64 {
	switch {
	case lead > follow:
		return 1
	case lead < follow:
		return -1
	default:
		return 0
	}
}
