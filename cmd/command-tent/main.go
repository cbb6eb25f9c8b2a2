package main

import (
	"crypto/sha256"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Garsondee/Command-Tent/internal/config"
	"github.com/Garsondee/Command-Tent/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64

	firstContactTick  int
	firstEngageTick   int
	firstCasualtyTick int

	contactReports int
	engageReports  int
	woundedReports int
	kiaReports     int
	acks           int

	blueAlive int
	redAlive  int

	digest string
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var configDir string
	var scenario string

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 600, "ticks per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&configDir, "config", ".", "directory containing command_tent.cfg.json")
	flag.StringVar(&scenario, "scenario", "meeting-engagement", "scenario name")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if scenario != "meeting-engagement" {
		fmt.Printf("error: unsupported scenario %q (supported: meeting-engagement)\n", scenario)
		return
	}
	if err := config.Load(configDir); err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(config.LogLevel()).
		With().Timestamp().Logger()

	fmt.Printf("=== Command Tent Engagement Report ===\n")
	fmt.Printf("scenario=%s runs=%d ticks=%d seed_base=%d seed_step=%d\n\n", scenario, runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runMeetingEngagement(i+1, seed, ticks, logger)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

// runMeetingEngagement marches a blue fireteam into a red patrol occupying
// the same command cell, with weapons free on both sides.
func runMeetingEngagement(runIndex int, seed int64, ticks int, logger zerolog.Logger) runStats {
	cfg := config.GameConfig()
	cfg.Seed = seed

	sc := game.NewScenario(
		game.WithGridSize(cfg.Width, cfg.Height),
		game.WithSeed(cfg.Seed),
		game.WithLatency(cfg.RadioLatencyTicks),
		game.WithSuppressWindow(cfg.SuppressWindowTicks),
		game.WithWeapon(cfg.Weapon),
		game.WithUnit("b1", "blue", 2, 12, 50),
		game.WithUnit("b2", "blue", 2, 12, 52),
		game.WithUnit("b3", "blue", 2, 12, 54),
		game.WithUnit("r1", "red", 2, 50, 50),
		game.WithUnit("r2", "red", 2, 50, 52),
		game.WithUnit("r3", "red", 2, 50, 54),
		game.WithFireteam("blue-alpha", "b1", "b2", "b3"),
		game.WithFireteam("red-alpha", "r1", "r2", "r3"),
	)
	sc.Game.SetLogger(logger.With().Int64("seed", seed).Logger())

	advance := &game.Order{
		Units:     []string{"b1", "b2", "b3"},
		Intent:    game.IntentMove,
		Waypoints: []game.Waypoint{{Label: "E5"}},
		ROE:       "free",
	}
	if !sc.Game.EnqueueOrder(advance) {
		logger.Error().Msg("advance order rejected")
		return runStats{runIndex: runIndex, seed: seed}
	}
	defend := &game.Order{
		Units:  []string{"r1", "r2", "r3"},
		Intent: game.IntentHold,
		ROE:    "free",
	}
	sc.Game.EnqueueOrder(defend)

	sc.RunTicks(ticks)

	stats := runStats{
		runIndex:          runIndex,
		seed:              seed,
		firstContactTick:  -1,
		firstEngageTick:   -1,
		firstCasualtyTick: -1,
	}

	h := sha256.New()
	for _, evt := range sc.Game.RadioLog() {
		fmt.Fprintf(h, "%d|%s|%s\n", evt.EmitTick, evt.Channel, evt.Message)
		switch {
		case strings.HasPrefix(evt.Message, "Contact, enemy spotted near"):
			stats.contactReports++
			if stats.firstContactTick < 0 {
				stats.firstContactTick = evt.EmitTick
			}
		case strings.HasPrefix(evt.Message, "Engaging enemy at"):
			stats.engageReports++
			if stats.firstEngageTick < 0 {
				stats.firstEngageTick = evt.EmitTick
			}
		case evt.Message == "WOUNDED.":
			stats.woundedReports++
			if stats.firstCasualtyTick < 0 {
				stats.firstCasualtyTick = evt.EmitTick
			}
		case evt.Message == "KIA.":
			stats.kiaReports++
			if stats.firstCasualtyTick < 0 {
				stats.firstCasualtyTick = evt.EmitTick
			}
		case strings.HasPrefix(evt.Message, "Acknowledged."):
			stats.acks++
		}
	}
	for _, u := range sc.Game.Units() {
		if u.Health == game.HealthKIA {
			continue
		}
		if u.Side == "blue" {
			stats.blueAlive++
		} else {
			stats.redAlive++
		}
	}
	stats.digest = fmt.Sprintf("%x", h.Sum(nil))[:16]
	return stats
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("phase_markers: first_contact=%d first_engage=%d first_casualty=%d\n",
		rs.firstContactTick, rs.firstEngageTick, rs.firstCasualtyTick)
	fmt.Printf("radio_totals: contact=%d engage=%d wounded=%d kia=%d ack=%d\n",
		rs.contactReports, rs.engageReports, rs.woundedReports, rs.kiaReports, rs.acks)
	fmt.Printf("survivors: blue=%d red=%d\n", rs.blueAlive, rs.redAlive)
	fmt.Printf("radio_digest=%s\n\n", rs.digest)
}

func printAggregate(all []runStats) {
	totalContact := 0
	totalEngage := 0
	totalWounded := 0
	totalKIA := 0
	blueWins := 0
	redWins := 0

	contactTicks := make([]int, 0, len(all))
	casualtyTicks := make([]int, 0, len(all))

	for _, rs := range all {
		totalContact += rs.contactReports
		totalEngage += rs.engageReports
		totalWounded += rs.woundedReports
		totalKIA += rs.kiaReports
		if rs.blueAlive > rs.redAlive {
			blueWins++
		} else if rs.redAlive > rs.blueAlive {
			redWins++
		}
		if rs.firstContactTick >= 0 {
			contactTicks = append(contactTicks, rs.firstContactTick)
		}
		if rs.firstCasualtyTick >= 0 {
			casualtyTicks = append(casualtyTicks, rs.firstCasualtyTick)
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d\n", len(all))
	fmt.Printf("avg_radio_per_run: contact=%.1f engage=%.1f wounded=%.1f kia=%.1f\n",
		avg(totalContact, len(all)), avg(totalEngage, len(all)), avg(totalWounded, len(all)), avg(totalKIA, len(all)))
	fmt.Printf("phase_marker_avg_ticks: first_contact=%s first_casualty=%s\n",
		avgTickString(contactTicks), avgTickString(casualtyTicks))
	fmt.Printf("outcomes: blue_wins=%d red_wins=%d draws=%d\n", blueWins, redWins, len(all)-blueWins-redWins)
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
