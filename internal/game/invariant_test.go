package game

import (
	"errors"
	"testing"
)

// --- Invariant helpers ---

// checkEntities verifies lifetimes and trails of everything in flight.
func checkEntities(t *testing.T, snap *Snapshot, trailCap int) {
	t.Helper()
	for _, p := range snap.Projectiles {
		if p.Life < 0 {
			t.Errorf("T=%d %s has negative life %d", snap.Tick, p.Label(), p.Life)
		}
		if len(p.Trail) > trailCap {
			t.Errorf("T=%d %s trail %d exceeds cap %d", snap.Tick, p.Label(), len(p.Trail), trailCap)
		}
	}
	for _, m := range snap.Missiles {
		if m.Life < 0 {
			t.Errorf("T=%d %s has negative life %d", snap.Tick, m.Label(), m.Life)
		}
	}
	for _, a := range snap.Aircraft {
		if a.Life < 0 || a.Bombs < 0 {
			t.Errorf("T=%d %s life=%d bombs=%d", snap.Tick, a.Label(), a.Life, a.Bombs)
		}
	}
}

// checkHealthBounded verifies every health value stays in [0, max] and that a
// facility is destroyed exactly when its health reaches zero.
func checkHealthBounded(t *testing.T, snap *Snapshot) {
	t.Helper()
	for _, f := range snap.Facilities {
		if f.Health < 0 || f.Health > f.MaxHealth {
			t.Errorf("T=%d %s health %.1f outside [0, %.0f]", snap.Tick, f.Label(), f.Health, f.MaxHealth)
		}
		if f.Destroyed != (f.Health == 0) {
			t.Errorf("T=%d %s destroyed=%v with health %.1f", snap.Tick, f.Label(), f.Destroyed, f.Health)
		}
	}
	b := snap.Base
	if b.Health < 0 || b.Health > b.MaxHealth {
		t.Errorf("T=%d base health %.1f outside [0, %.0f]", snap.Tick, b.Health, b.MaxHealth)
	}
}

// checkSession verifies score, clock, inventory and stock never go negative.
func checkSession(t *testing.T, snap *Snapshot) {
	t.Helper()
	s := snap.Session
	if s.Score < 0 {
		t.Errorf("T=%d negative score %d", snap.Tick, s.Score)
	}
	if s.TimeLeftTicks < 0 {
		t.Errorf("T=%d negative time left %d", snap.Tick, s.TimeLeftTicks)
	}
	for _, w := range PlayerWeapons {
		if n := snap.Inventory.Count(w); n < 0 && n != Unlimited {
			t.Errorf("T=%d %s count %d", snap.Tick, w, n)
		}
	}
	for _, d := range snap.Defenses {
		if d.Missiles < 0 {
			t.Errorf("T=%d %s stock %d", snap.Tick, d.Name, d.Missiles)
		}
	}
}

// checkLevelGating verifies that exactly the first Level facilities are
// active and that nothing inactive was ever destroyed.
func checkLevelGating(t *testing.T, snap *Snapshot, maxLevel int) {
	t.Helper()
	lvl := snap.Session.Level
	if lvl < 1 || lvl > maxLevel {
		t.Errorf("T=%d level %d outside [1, %d]", snap.Tick, lvl, maxLevel)
	}
	for i, f := range snap.Facilities {
		if f.Active != (i < lvl) {
			t.Errorf("T=%d %s active=%v at level %d", snap.Tick, f.Label(), f.Active, lvl)
		}
		if f.Destroyed && !f.Active {
			t.Errorf("T=%d %s destroyed while locked", snap.Tick, f.Label())
		}
	}
}

// runAutopilotChecked plays a session with the autopilot, checking every
// invariant after each tick. It returns the finished harness.
func runAutopilotChecked(t *testing.T, seed int64, maxTicks int) *TestSim {
	t.Helper()
	ts := NewTestSim(WithSimSeed(seed))
	e := ts.Engine
	ap := NewAutopilot(0)
	trailCap := e.tuning.Field.TrailCap
	maxLevel := e.maxLevel()

	destroyed := map[FacilityID]bool{}
	prevLevel := 1
	for i := 0; i < maxTicks; i++ {
		if _, err := ap.Step(e); err != nil {
			t.Fatalf("seed %d T=%d autopilot: %v", seed, e.CurrentTick(), err)
		}
		more := ts.step()
		snap := e.Snapshot()
		checkEntities(t, &snap, trailCap)
		checkHealthBounded(t, &snap)
		checkSession(t, &snap)
		checkLevelGating(t, &snap, maxLevel)

		for _, f := range snap.Facilities {
			if destroyed[f.ID] && !f.Destroyed {
				t.Errorf("seed %d T=%d %s came back", seed, snap.Tick, f.Label())
			}
			destroyed[f.ID] = f.Destroyed
		}
		if snap.Session.Level < prevLevel {
			t.Errorf("seed %d T=%d level went down %d → %d", seed, snap.Tick, prevLevel, snap.Session.Level)
		}
		prevLevel = snap.Session.Level

		if t.Failed() || !more {
			break
		}
	}
	return ts
}

// --- Invariant test scenarios ---

func TestInvariant_AutopilotSweep(t *testing.T) {
	if testing.Short() {
		t.Skip("long sweep")
	}
	for seed := int64(1); seed <= 6; seed++ {
		ts := runAutopilotChecked(t, seed, 8000)
		if ts.Session().Stats.ShotsFired == 0 {
			t.Errorf("seed %d: autopilot never fired", seed)
		}
	}
}

func TestInvariant_Deterministic(t *testing.T) {
	run := func() (*TestSim, string) {
		ts := NewTestSim(WithSimSeed(77))
		ap := NewAutopilot(25)
		for i := 0; i < 3000; i++ {
			if _, err := ap.Step(ts.Engine); err != nil {
				t.Fatal(err)
			}
			if !ts.step() {
				break
			}
		}
		return ts, ts.Engine.Report().Format()
	}
	a, reportA := run()
	b, reportB := run()
	if a.Session() != b.Session() {
		t.Fatalf("sessions diverged:\n%+v\n%+v", a.Session(), b.Session())
	}
	if a.SimLog.Len() != b.SimLog.Len() {
		t.Fatalf("log lengths diverged: %d vs %d", a.SimLog.Len(), b.SimLog.Len())
	}
	if reportA != reportB {
		t.Fatalf("reports diverged:\n%s\n%s", reportA, reportB)
	}
}

func TestInvariant_CosmeticsDoNotPerturbGameplay(t *testing.T) {
	run := func(sparks int) SessionState {
		ts := NewTestSim(WithSimSeed(5), WithStartLevel(2), WithTuningChange(func(tn *Tuning) {
			tn.Effects.ExplosionSparks = sparks
		}))
		ap := NewAutopilot(30)
		for i := 0; i < 2000; i++ {
			_, _ = ap.Step(ts.Engine)
			if !ts.step() {
				break
			}
		}
		return ts.Session()
	}
	if a, b := run(15), run(60); a != b {
		t.Fatalf("particle count changed the outcome:\n%+v\n%+v", a, b)
	}
}

func TestInvariant_TerminalIsFinal(t *testing.T) {
	ts := quietSim(WithTimeLeft(3))
	ts.RunTicks(10)
	e := ts.Engine
	if !e.Phase().Terminal() {
		t.Fatalf("expected a terminal phase, got %s", e.Phase())
	}
	before := e.Session()
	tick := e.CurrentTick()

	if _, err := e.Tick(); !errors.Is(err, ErrAlreadyTerminal) {
		t.Fatalf("Tick after the end: err=%v", err)
	}
	if _, err := e.FireAtFacility(WeaponMissile, FacilityKestrel); !errors.Is(err, ErrAlreadyTerminal) {
		t.Fatalf("Fire after the end: err=%v", err)
	}
	if e.Session() != before || e.CurrentTick() != tick {
		t.Fatal("state changed after the session ended")
	}
}
