package game

import (
	"math"
	"math/rand"
)

// coverAccuracyMultiplier approximates the target being in cover when its
// occupied cell blocks vision.
const coverAccuracyMultiplier = 0.7

// WeaponProfile holds hit chances by range band.
type WeaponProfile struct {
	Near   float64 // Chebyshev distance <= 2
	Medium float64 // <= 4
	Far    float64 // beyond
}

// DefaultRiflemanProfile is the baseline small-arms profile.
func DefaultRiflemanProfile() WeaponProfile {
	return WeaponProfile{Near: 0.35, Medium: 0.2, Far: 0.05}
}

// DistanceCells is the Chebyshev distance between two world positions.
func DistanceCells(ax, ay, bx, by float64) float64 {
	return math.Max(math.Abs(ax-bx), math.Abs(ay-by))
}

// HasLOS reports whether any sight budget survives the line between the
// cells occupied by the two positions.
func HasLOS(g *Grid, ax, ay, bx, by float64) bool {
	src := Coord{X: int(ax), Y: int(ay)}
	dst := Coord{X: int(bx), Y: int(by)}
	return g.SightBudget(src, dst) > 0
}

// DetectEnemy reports whether the observer currently sees the target: a live
// sightline and a Chebyshev separation within MaxSight.
func DetectEnemy(g *Grid, observer, target *Unit) bool {
	if !HasLOS(g, observer.X, observer.Y, target.X, target.Y) {
		return false
	}
	return DistanceCells(observer.X, observer.Y, target.X, target.Y) <= MaxSight
}

// AccuracyForRange selects the weapon's hit chance band for a distance.
func AccuracyForRange(profile WeaponProfile, d float64) float64 {
	if d <= 2.0 {
		return profile.Near
	}
	if d <= 4.0 {
		return profile.Medium
	}
	return profile.Far
}

// ResolveShot resolves one shot from shooter to target. It returns the
// target's new health state and true when the shot connects; otherwise
// ok=false and the target is untouched.
//
// The rng draw order is fixed: one uniform draw for the hit roll, then, only
// on a hit, one draw for the wound-to-kill roll. Callers must preserve this
// order for replay determinism.
func ResolveShot(g *Grid, shooter, target *Unit, profile WeaponProfile, rng *rand.Rand) (HealthState, bool) {
	if target.Health == HealthKIA {
		return target.Health, false
	}
	if !DetectEnemy(g, shooter, target) {
		return target.Health, false
	}

	d := DistanceCells(shooter.X, shooter.Y, target.X, target.Y)
	pHit := AccuracyForRange(profile, d)

	if kind, ok := g.CellAt(int(target.X), int(target.Y)); ok && kind.VisionBlock() > 0 {
		pHit *= coverAccuracyMultiplier
	}

	if rng.Float64() > pHit {
		return target.Health, false
	}

	kiaProb := 0.3
	if target.Health == HealthWounded {
		kiaProb = 0.6
	}
	if rng.Float64() < kiaProb {
		target.Health = HealthKIA
	} else {
		target.Health = HealthWounded
	}
	return target.Health, true
}
