package game

import (
	"fmt"
	"strings"
)

// reportWindowTicks is ten seconds at 60 ticks per second.
const reportWindowTicks = 600

// tickSample is what the reporter keeps from one TickReport.
type tickSample struct {
	Tick       int
	Score      int
	Hits       int
	BaseHits   int
	Intercepts int
	Launches   int
	Ground     int
	InFlight   int // hostile missiles alive after the tick
}

// SimReporter accumulates tick samples over a sliding window.
type SimReporter struct {
	windowTicks int
	history     []tickSample
}

// NewSimReporter keeps windowTicks of history; zero means reportWindowTicks.
func NewSimReporter(windowTicks int) *SimReporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &SimReporter{windowTicks: windowTicks}
}

// Collect records one tick. Samples older than the window are dropped.
func (r *SimReporter) Collect(tr TickReport, score, inFlight int) {
	r.history = append(r.history, tickSample{
		Tick:       tr.Tick,
		Score:      score,
		Hits:       tr.Hits,
		BaseHits:   tr.BaseHits,
		Intercepts: tr.Intercepts,
		Launches:   tr.Launches,
		Ground:     tr.Ground,
		InFlight:   inFlight,
	})
	cutoff := tr.Tick - r.windowTicks
	drop := 0
	for drop < len(r.history) && r.history[drop].Tick <= cutoff {
		drop++
	}
	if drop > 0 {
		r.history = append(r.history[:0], r.history[drop:]...)
	}
}

// Reset forgets every sample.
func (r *SimReporter) Reset() { r.history = r.history[:0] }

// WindowSummary aggregates the samples currently in the window. Nil when empty.
func (r *SimReporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}
	first, last := r.history[0], r.history[len(r.history)-1]
	wr := &WindowReport{
		FromTick:    first.Tick,
		ToTick:      last.Tick,
		SampleCount: len(r.history),
		ScoreGained: last.Score - first.Score,
	}
	var inFlight int
	for _, s := range r.history {
		wr.Hits += s.Hits
		wr.BaseHits += s.BaseHits
		wr.Intercepts += s.Intercepts
		wr.Launches += s.Launches
		wr.Ground += s.Ground
		inFlight += s.InFlight
		wr.PeakInFlight = max(wr.PeakInFlight, s.InFlight)
	}
	wr.AvgInFlight = float64(inFlight) / float64(len(r.history))
	return wr
}

// WindowReport totals the samples in the reporter's window.
type WindowReport struct {
	FromTick, ToTick int
	SampleCount      int

	Hits, BaseHits, Intercepts, Launches, Ground int

	ScoreGained  int
	AvgInFlight  float64
	PeakInFlight int
}

// Format renders the window for logs. A nil report prints a placeholder.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "no activity recorded\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Recent Activity (T=%d..%d, %d samples) ===\n",
		wr.FromTick, wr.ToTick, wr.SampleCount)
	fmt.Fprintf(&sb, "  player: hits=%d ground=%d lost=%d score%+d\n",
		wr.Hits, wr.Ground, wr.Intercepts, wr.ScoreGained)
	fmt.Fprintf(&sb, "  opfor:  launches=%d base_hits=%d in_flight avg=%.1f peak=%d\n",
		wr.Launches, wr.BaseHits, wr.AvgInFlight, wr.PeakInFlight)
	return sb.String()
}

// --- After-action report ---

// FacilityReport is one facility's end state.
type FacilityReport struct {
	ID        FacilityID
	Name      string
	Threat    ThreatLevel
	Health    float64
	MaxHealth float64
	Destroyed bool
	Active    bool
}

// Report is the after-action summary of a playthrough.
type Report struct {
	Seed        int64
	Tick        int
	Outcome     Outcome
	TimeLeftSec int
	Stats       SessionStats
	BaseHealth  float64
	BaseMax     float64
	ThreatLevel float64
	Facilities  []FacilityReport
	Remaining   map[WeaponType]int
	Recent      *WindowReport
}

// Report builds the after-action report for the current state.
func (e *Engine) Report() Report {
	r := Report{
		Seed:        e.seed,
		Tick:        e.tick,
		Outcome:     DetermineOutcome(e.session, e.base),
		TimeLeftSec: e.session.TimeLeftSeconds(),
		Stats:       e.session.Stats,
		BaseHealth:  e.base.Health,
		BaseMax:     e.base.MaxHealth,
		ThreatLevel: e.opfor.threatLevel,
		Remaining:   make(map[WeaponType]int, len(PlayerWeapons)),
		Recent:      e.reporter.WindowSummary(),
	}
	for _, f := range e.facilities {
		r.Facilities = append(r.Facilities, FacilityReport{
			ID: f.ID, Name: f.Name, Threat: f.Threat,
			Health: f.Health, MaxHealth: f.MaxHealth,
			Destroyed: f.Destroyed, Active: f.Active,
		})
	}
	for _, w := range PlayerWeapons {
		r.Remaining[w] = e.inventory.Count(w)
	}
	return r
}

// Format renders the report as plain text.
func (r Report) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== After-Action Report (seed=%d, T=%d) ===\n", r.Seed, r.Tick)
	fmt.Fprintf(&sb, "result: %s  level=%d  score=%d  time_left=%ds\n",
		r.Outcome.Description, r.Outcome.Level, r.Outcome.Score, r.TimeLeftSec)
	fmt.Fprintf(&sb, "base:   %.0f/%.0f  hits_taken=%d\n", r.BaseHealth, r.BaseMax, r.Stats.BaseHits)
	fmt.Fprintf(&sb, "fire:   shots=%d hits=%d accuracy=%.1f%% destroyed=%d intercepted=%d aircraft_lost=%d\n",
		r.Stats.ShotsFired, r.Stats.Hits, r.Stats.Accuracy()*100,
		r.Stats.TargetsDestroyed, r.Stats.Intercepted, r.Stats.AircraftLost)
	fmt.Fprintf(&sb, "opfor:  launches=%d threat=%.1f\n", r.Stats.MissilesLaunched, r.ThreatLevel)

	sb.WriteString("\n--- Facilities ---\n")
	for _, f := range r.Facilities {
		if !f.Active && !f.Destroyed {
			continue
		}
		state := fmt.Sprintf("%3.0f/%.0f", f.Health, f.MaxHealth)
		if f.Destroyed {
			state = "destroyed"
		}
		fmt.Fprintf(&sb, "  %-22s %-8s %s\n", f.Name, f.Threat, state)
	}

	sb.WriteString("\n--- Remaining Ordnance ---\n")
	for _, w := range PlayerWeapons {
		n := r.Remaining[w]
		if n == Unlimited {
			fmt.Fprintf(&sb, "  %-9s unlimited\n", w)
			continue
		}
		fmt.Fprintf(&sb, "  %-9s %d\n", w, n)
	}
	if r.Recent != nil {
		sb.WriteByte('\n')
		sb.WriteString(r.Recent.Format())
	}
	return sb.String()
}
