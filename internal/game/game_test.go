package game

import (
	"strings"
	"testing"
)

func meetingEngagement(seed int64) *Scenario {
	return NewScenario(
		WithSeed(seed),
		WithUniformTerrain(TerrainPlain),
		WithGridSize(100, 100),
		WithUnit("a1", "blue", 2, 10, 10),
		WithUnit("a2", "blue", 2, 10, 12),
		WithUnit("r1", "red", 2, 14, 10),
		WithUnit("r2", "red", 2, 14, 12),
	)
}

func TestDeterministicReplay(t *testing.T) {
	run := func() ([]UnitSnapshot, []RadioEvent) {
		sc := meetingEngagement(11)
		order := &Order{
			Units:     []string{"a1", "a2"},
			Intent:    IntentMove,
			Waypoints: []Waypoint{{Label: "D3"}},
			ROE:       "free",
		}
		if !sc.Game.EnqueueOrder(order) {
			t.Fatal("order should be accepted")
		}
		sc.RunTicks(200)
		return sc.Snapshot(), sc.Game.RadioLog()
	}

	snapA, logA := run()
	snapB, logB := run()

	if len(snapA) != len(snapB) {
		t.Fatalf("snapshot lengths differ: %d vs %d", len(snapA), len(snapB))
	}
	for i := range snapA {
		if snapA[i] != snapB[i] {
			t.Fatalf("unit %s diverged between identical runs:\n%+v\n%+v",
				snapA[i].ID, snapA[i], snapB[i])
		}
	}
	if len(logA) != len(logB) {
		t.Fatalf("radio logs differ in length: %d vs %d", len(logA), len(logB))
	}
	for i := range logA {
		if logA[i] != logB[i] {
			t.Fatalf("radio log diverged at %d:\n%+v\n%+v", i, logA[i], logB[i])
		}
	}
}

func TestContactReportsOnDetection(t *testing.T) {
	sc := NewScenario(
		WithSeed(1),
		WithUniformTerrain(TerrainPlain),
		WithGridSize(100, 100),
		WithLatency(3),
		WithUnit("a1", "blue", 2, 10, 10),
		WithUnit("r1", "red", 2, 14, 10),
	)
	// Hold fire on both sides so only contact traffic is generated.
	for _, u := range sc.Game.Units() {
		u.ROE = ROEHold
	}

	sc.RunTicks(10)

	var contacts int
	for _, evt := range sc.Game.RadioLog() {
		if strings.HasPrefix(evt.Message, "Contact, enemy spotted near") {
			contacts++
		}
	}
	if contacts == 0 {
		t.Fatal("units in clear mutual sight should produce contact reports")
	}
	// Both directions report, then the suppression window mutes repeats.
	if contacts > 4 {
		t.Fatalf("suppression window should mute repeated contacts, got %d", contacts)
	}
}

func TestContactDelayedByLatency(t *testing.T) {
	sc := NewScenario(
		WithSeed(1),
		WithUniformTerrain(TerrainPlain),
		WithGridSize(100, 100),
		WithLatency(3),
		WithUnit("a1", "blue", 2, 10, 10),
		WithUnit("r1", "red", 2, 14, 10),
	)
	for _, u := range sc.Game.Units() {
		u.ROE = ROEHold
	}

	sc.RunTicks(2)
	if n := len(sc.Game.RadioLog()); n != 0 {
		t.Fatalf("nothing should deliver inside the latency window, got %d", n)
	}
	sc.RunTicks(4)
	if n := len(sc.Game.RadioLog()); n == 0 {
		t.Fatal("contact traffic should deliver once the latency elapses")
	}
}

func TestCasualtyReports(t *testing.T) {
	sc := NewScenario(
		WithSeed(1),
		WithUniformTerrain(TerrainPlain),
		WithGridSize(100, 100),
		WithLatency(0),
		WithUnit("a1", "blue", 2, 10, 10),
	)
	sc.Game.Unit("a1").Health = HealthWounded

	sc.RunTicks(1)

	var found bool
	for _, evt := range sc.Game.RadioLog() {
		if evt.Channel == "a1" && evt.Message == "WOUNDED." {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a WOUNDED. report, log: %v", sc.Game.RadioLog())
	}
}

func TestHoldFireNeverShoots(t *testing.T) {
	sc := NewScenario(
		WithSeed(3),
		WithUniformTerrain(TerrainPlain),
		WithGridSize(100, 100),
		WithUnit("a1", "blue", 2, 10, 10),
		WithUnit("r1", "red", 2, 12, 10),
	)
	for _, u := range sc.Game.Units() {
		u.ROE = ROEHold
	}

	sc.RunTicks(100)

	for _, u := range sc.Game.Units() {
		if u.Health != HealthHealthy {
			t.Fatalf("%s took fire under weapons hold", u.ID)
		}
	}
	for _, evt := range sc.Game.RadioLog() {
		if strings.HasPrefix(evt.Message, "Engaging enemy") {
			t.Fatalf("engagement traffic under weapons hold: %+v", evt)
		}
	}
}

func TestEngagementEventuallyProducesCasualty(t *testing.T) {
	sc := NewScenario(
		WithSeed(5),
		WithUniformTerrain(TerrainPlain),
		WithGridSize(100, 100),
		WithWeapon(WeaponProfile{Near: 1, Medium: 1, Far: 1}),
		WithUnit("a1", "blue", 2, 10, 10),
		WithUnit("r1", "red", 2, 12, 10),
	)

	tick := sc.RunUntil(func(g *Game) bool {
		for _, u := range g.Units() {
			if u.Health != HealthHealthy {
				return true
			}
		}
		return false
	}, 50)
	if tick < 0 {
		t.Fatal("certain-hit profile at near range must produce a casualty")
	}
}

func TestIdleUnitsReportAtWaypoint(t *testing.T) {
	sc := NewScenario(
		WithSeed(1),
		WithUniformTerrain(TerrainPlain),
		WithGridSize(100, 100),
		WithLatency(0),
		WithUnit("a1", "blue", 2, 10, 10),
	)

	sc.RunTicks(1)

	log := sc.Game.RadioLog()
	if len(log) != 1 || log[0].Message != "At waypoint." {
		t.Fatalf("idle unit should report At waypoint., log: %v", log)
	}
}

func TestFireteamRegistration(t *testing.T) {
	sc := NewScenario(
		WithSeed(1),
		WithUniformTerrain(TerrainPlain),
		WithGridSize(100, 100),
		WithUnit("a1", "blue", 2, 10, 10),
		WithUnit("a2", "blue", 2, 10, 14),
		WithFireteam("alpha", "a1", "a2"),
	)

	lead := sc.Game.Unit("a1")
	follower := sc.Game.Unit("a2")
	if !lead.IsLeader || lead.FireteamName != "alpha" {
		t.Fatalf("leader not marked: %+v", lead)
	}
	if follower.IsLeader || follower.FireteamName != "alpha" {
		t.Fatalf("member not marked: %+v", follower)
	}

	sc.Game.EnforceFireteamCohesion()
	if follower.Y != 13.5 {
		t.Fatalf("follower should snap one cell toward the leader, got %v", follower.Y)
	}
}

func TestMoveOrderDrivesUnitAcrossMap(t *testing.T) {
	sc := NewScenario(
		WithSeed(1),
		WithUniformTerrain(TerrainRoad),
		WithGridSize(100, 100),
		WithUnit("a1", "blue", 10, 10, 10),
	)
	order := &Order{
		Units:     []string{"a1"},
		Intent:    IntentMove,
		Waypoints: []Waypoint{{CommandCell: "D3", Subcell: &SubcellCoord{X: 0, Y: 0}}},
	}
	if !sc.Game.EnqueueOrder(order) {
		t.Fatal("order should be accepted")
	}

	tick := sc.RunUntil(func(g *Game) bool {
		u := g.Unit("a1")
		return u.State == UnitIdle && u.Cell() == (Coord{30, 30})
	}, 600)
	if tick < 0 {
		u := sc.Game.Unit("a1")
		t.Fatalf("unit never arrived, stuck at (%.1f,%.1f) state=%s", u.X, u.Y, u.State)
	}
}
