package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/Garsondee/Salvo-Sense/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64
	ticks    int

	outcome game.Outcome

	firstLaunchTick  int
	firstStrikeTick  int
	firstBaseHitTick int
	firstDestroyTick int
	firstEscalation  int

	levelAdvances int
	escalations   int
	interceptors  int
	strikes       int

	stats    game.SessionStats
	threat   float64
	baseLeft float64

	windowSummary *game.WindowReport
	report        game.Report
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var fireEvery int
	var configPath string
	var showReport bool

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 14400, "tick cap per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&fireEvery, "fire-every", 40, "autopilot shot cadence in ticks")
	flag.StringVar(&configPath, "config", "", "optional tuning YAML")
	flag.BoolVar(&showReport, "report", false, "print the after-action report for each run")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}

	tuning := game.DefaultTuning()
	if configPath != "" {
		t, err := game.LoadTuning(configPath)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		tuning = t
	}

	fmt.Printf("=== Headless Engagement Report ===\n")
	fmt.Printf("runs=%d ticks=%d seed_base=%d seed_step=%d fire_every=%d\n\n", runs, ticks, seedBase, seedStep, fireEvery)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runAutopilot(i+1, seed, ticks, fireEvery, tuning)
		all = append(all, stats)
		printRun(stats)
		if showReport {
			fmt.Println(stats.report.Format())
		}
	}

	printAggregate(all)
}

func runAutopilot(runIndex int, seed int64, ticks, fireEvery int, tuning game.Tuning) runStats {
	log := game.NewSimLog(false)
	eng := game.New(game.WithSeed(seed), game.WithTuning(tuning), game.WithSimLog(log))
	pilot := game.NewAutopilot(fireEvery)

	n := 0
	for ; n < ticks && !eng.Phase().Terminal(); n++ {
		if _, err := pilot.Step(eng); err != nil {
			fmt.Printf("warn: run %d tick %d: %v\n", runIndex, eng.CurrentTick(), err)
		}
		if _, err := eng.Tick(); err != nil {
			break
		}
	}

	rep := eng.Report()
	return runStats{
		runIndex:         runIndex,
		seed:             seed,
		ticks:            eng.CurrentTick(),
		outcome:          rep.Outcome,
		firstLaunchTick:  log.FirstTick("launch", "offensive", ""),
		firstStrikeTick:  log.FirstTick("launch", "strike", ""),
		firstBaseHitTick: log.FirstTick("hit", "base", ""),
		firstDestroyTick: log.FirstTick("damage", "facility_destroyed", ""),
		firstEscalation:  log.FirstTick("level", "escalate", ""),
		levelAdvances:    log.CountCategory("level", "advance"),
		escalations:      log.CountCategory("level", "escalate"),
		interceptors:     log.CountCategory("launch", "interceptor"),
		strikes:          log.CountCategory("launch", "strike"),
		stats:            rep.Stats,
		threat:           rep.ThreatLevel,
		baseLeft:         rep.BaseHealth,
		windowSummary:    rep.Recent,
		report:           rep,
	}
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("result: outcome=%s level=%d score=%d ticks=%d base_left=%.0f\n",
		rs.outcome.Description, rs.outcome.Level, rs.outcome.Score, rs.ticks, rs.baseLeft)
	fmt.Printf("phase_markers: first_destroy=%d first_launch=%d first_strike=%d first_base_hit=%d first_escalation=%d\n",
		rs.firstDestroyTick, rs.firstLaunchTick, rs.firstStrikeTick, rs.firstBaseHitTick, rs.firstEscalation)
	fmt.Printf("player: shots=%d hits=%d accuracy=%.2f destroyed=%d intercepted=%d aircraft_lost=%d\n",
		rs.stats.ShotsFired, rs.stats.Hits, rs.stats.Accuracy(), rs.stats.TargetsDestroyed,
		rs.stats.Intercepted, rs.stats.AircraftLost)
	fmt.Printf("opfor: launches=%d interceptors=%d strikes=%d base_hits=%d threat=%.1f escalations=%d level_advances=%d\n",
		rs.stats.MissilesLaunched, rs.interceptors, rs.strikes, rs.stats.BaseHits, rs.threat, rs.escalations, rs.levelAdvances)
	fmt.Printf("pacing=%s\n", classifyPacing(rs))
	if rs.windowSummary != nil {
		fmt.Printf("window_samples=%d window_tick_range=%d..%d window_launches=%d window_peak_in_flight=%d\n",
			rs.windowSummary.SampleCount, rs.windowSummary.FromTick, rs.windowSummary.ToTick,
			rs.windowSummary.Launches, rs.windowSummary.PeakInFlight)
	}
	fmt.Println()
}

// classifyPacing labels how a run played out, for eyeballing balance changes.
func classifyPacing(rs runStats) string {
	switch {
	case rs.stats.ShotsFired > 0 && rs.stats.Hits == 0:
		return "no_hits"
	case rs.outcome.Phase == game.PhaseVictory:
		return "cleared"
	case rs.outcome.Phase == game.PhaseDefeat && rs.baseLeft <= 0:
		if rs.outcome.Level <= 2 {
			return "overrun_early"
		}
		return "overrun"
	case rs.outcome.Phase == game.PhaseDefeat:
		return "timed_out"
	default:
		return "unfinished"
	}
}

func outcomeCounts(all []runStats) map[string]int {
	out := map[string]int{}
	for _, rs := range all {
		out[rs.outcome.Description]++
	}
	return out
}

func printAggregate(all []runStats) {
	totalScore := 0
	totalShots := 0
	totalHits := 0
	totalLaunches := 0
	totalBaseHits := 0
	totalIntercepted := 0
	totalLevels := 0

	destroyTicks := make([]int, 0, len(all))
	launchTicks := make([]int, 0, len(all))
	baseHitTicks := make([]int, 0, len(all))
	pacing := map[string]int{}

	for _, rs := range all {
		totalScore += rs.outcome.Score
		totalShots += rs.stats.ShotsFired
		totalHits += rs.stats.Hits
		totalLaunches += rs.stats.MissilesLaunched
		totalBaseHits += rs.stats.BaseHits
		totalIntercepted += rs.stats.Intercepted
		totalLevels += rs.outcome.Level
		if rs.firstDestroyTick >= 0 {
			destroyTicks = append(destroyTicks, rs.firstDestroyTick)
		}
		if rs.firstLaunchTick >= 0 {
			launchTicks = append(launchTicks, rs.firstLaunchTick)
		}
		if rs.firstBaseHitTick >= 0 {
			baseHitTicks = append(baseHitTicks, rs.firstBaseHitTick)
		}
		pacing[classifyPacing(rs)]++
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d\n", len(all))
	fmt.Printf("avg_per_run: score=%.1f level=%.1f shots=%.1f hits=%.1f launches=%.1f base_hits=%.1f intercepted=%.1f\n",
		avg(totalScore, len(all)), avg(totalLevels, len(all)), avg(totalShots, len(all)), avg(totalHits, len(all)),
		avg(totalLaunches, len(all)), avg(totalBaseHits, len(all)), avg(totalIntercepted, len(all)))
	fmt.Printf("phase_marker_avg_ticks: first_destroy=%s first_launch=%s first_base_hit=%s\n",
		avgTickString(destroyTicks), avgTickString(launchTicks), avgTickString(baseHitTicks))
	fmt.Printf("outcomes: %s\n", joinCounts(outcomeCounts(all)))
	fmt.Printf("pacing: %s\n", joinCounts(pacing))
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

func joinCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return strings.Join(parts, ",")
}
