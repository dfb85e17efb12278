package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded simulation event.
type SimLogEntry struct {
	Tick     int
	Actor    string  // entity label e.g. "P12", "M4", "kestrel", "base", or "--"
	Side     string  // "player", "opfor", or "--"
	Category string  // fire, launch, hit, damage, level, phase, guidance, motion
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=0042] P3      hit       facility         kestrel -25 (75 left)
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%04d] %-7s %-9s %-16s %s",
		e.Tick, e.Actor, e.Category, e.Key, e.Value)
}

// SimLog collects structured events for a session. It is unbounded and
// machine-readable; the UI keeps its own bounded feed for display.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick position and
// guidance entries are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add appends an event.
func (sl *SimLog) Add(tick int, actor, side, category, key, value string, num float64) {
	sl.entries = append(sl.entries, SimLogEntry{tick, actor, side, category, key, value, num})
}

// AddVerbose is Add for per-tick detail; it is dropped unless verbose.
func (sl *SimLog) AddVerbose(tick int, actor, side, category, key, value string, num float64) {
	if sl.verbose {
		sl.Add(tick, actor, side, category, key, value, num)
	}
}

// Verbose reports whether verbose entries are recorded.
func (sl *SimLog) Verbose() bool { return sl.verbose }

// Len returns the number of recorded entries.
func (sl *SimLog) Len() int { return len(sl.entries) }

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Since returns entries recorded at or after index from, for incremental readers.
func (sl *SimLog) Since(from int) []SimLogEntry {
	if from < 0 {
		from = 0
	}
	if from >= len(sl.entries) {
		return nil
	}
	return sl.entries[from:]
}

// Reset drops every entry and keeps the verbosity setting.
func (sl *SimLog) Reset() {
	sl.entries = nil
}

// Query selects log entries. Empty fields match anything; Contains is a
// substring of Value.
type Query struct {
	Category string
	Key      string
	Contains string
}

func (q Query) match(e SimLogEntry) bool {
	return (q.Category == "" || e.Category == q.Category) &&
		(q.Key == "" || e.Key == q.Key) &&
		(q.Contains == "" || strings.Contains(e.Value, q.Contains))
}

// Select returns every entry matching q, oldest first.
func (sl *SimLog) Select(q Query) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if q.match(e) {
			out = append(out, e)
		}
	}
	return out
}

// Filter is Select by category and key.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	return sl.Select(Query{Category: category, Key: key})
}

// CountCategory counts entries by category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	n := 0
	q := Query{Category: category, Key: key}
	for _, e := range sl.entries {
		if q.match(e) {
			n++
		}
	}
	return n
}

func (sl *SimLog) first(q Query) (SimLogEntry, bool) {
	for _, e := range sl.entries {
		if q.match(e) {
			return e, true
		}
	}
	return SimLogEntry{}, false
}

// FirstTick is the tick of the earliest match, or -1.
func (sl *SimLog) FirstTick(category, key, contains string) int {
	if e, ok := sl.first(Query{category, key, contains}); ok {
		return e.Tick
	}
	return -1
}

// HasEntry reports whether anything matches.
func (sl *SimLog) HasEntry(category, key, contains string) bool {
	_, ok := sl.first(Query{category, key, contains})
	return ok
}

// Format renders the log one entry per line, for t.Log and report dumps.
func (sl *SimLog) Format() string {
	lines := make([]string, 0, len(sl.entries)+1)
	for _, e := range sl.entries {
		lines = append(lines, e.String())
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// Summary returns a short human-readable summary of a snapshot.
func (sl *SimLog) Summary(snap Snapshot) string {
	var sb strings.Builder
	s := snap.Session
	fmt.Fprintf(&sb, "--- Summary at T=%04d ---\n", snap.Tick)
	fmt.Fprintf(&sb, "phase=%s level=%d score=%d time_left=%ds\n", s.Phase, s.Level, s.Score, s.TimeLeftSeconds())
	fmt.Fprintf(&sb, "base: %.0f/%.0f destroyed=%v\n", snap.Base.Health, snap.Base.MaxHealth, snap.Base.Destroyed)

	sb.WriteString("facilities: ")
	for _, f := range snap.Facilities {
		if !f.Active {
			continue
		}
		state := fmt.Sprintf("%.0f", f.Health)
		if f.Destroyed {
			state = "X"
		}
		fmt.Fprintf(&sb, "%s=%s  ", f.Label(), state)
	}
	sb.WriteByte('\n')

	kinds := map[MissileKind]int{}
	for _, m := range snap.Missiles {
		kinds[m.Kind]++
	}
	fmt.Fprintf(&sb, "in flight: projectiles=%d aircraft=%d offensive=%d strike=%d interceptor=%d\n",
		len(snap.Projectiles), len(snap.Aircraft),
		kinds[MissileOffensive], kinds[MissileStrike], kinds[MissileInterceptor])
	fmt.Fprintf(&sb, "stats: shots=%d hits=%d destroyed=%d intercepted=%d base_hits=%d launches=%d\n",
		s.Stats.ShotsFired, s.Stats.Hits, s.Stats.TargetsDestroyed,
		s.Stats.Intercepted, s.Stats.BaseHits, s.Stats.MissilesLaunched)
	return sb.String()
}
