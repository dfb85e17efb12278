package game

import (
	"errors"
	"fmt"
)

// TestSim drives an Engine for tests the way the UI does: a fixed seed,
// scripted fire orders and a SimLog to assert against.
type TestSim struct {
	Engine  *Engine
	SimLog  *SimLog
	Reports []TickReport // one per simulated tick
	Errors  []error      // non-nil Fire errors from scripted orders

	seed   int64
	tuning Tuning
	orders []fireOrder
}

type fireOrder struct {
	tick     int // fired before this tick is simulated
	weapon   WeaponType
	facility FacilityID
	aim      *Vec2
}

// simOptionKind orders option application around engine construction.
type simOptionKind int

const (
	simOptInfra  simOptionKind = iota // seed, verbose, tuning: before the engine exists
	simOptWorld                       // level, base health, ammo: on the built engine
	simOptScript                      // fire orders, last
)

// SimOption configures a TestSim.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithSimSeed sets the RNG seed for deterministic runs.
func WithSimSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.seed = seed }}
}

// WithVerbose records guidance and motion detail in the SimLog.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.SimLog = NewSimLog(v) }}
}

// WithTuningChange mutates the tuning before the engine is built.
func WithTuningChange(fn func(*Tuning)) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { fn(&ts.tuning) }}
}

// WithoutDefenses removes every defense system, so nothing intercepts and the
// attack scheduler has no launch sites.
func WithoutDefenses() SimOption {
	return WithTuningChange(func(t *Tuning) { t.Defenses = nil })
}

// WithoutOpFor disables every difficulty row, so neither the scheduler nor
// the facilities ever launch.
func WithoutOpFor() SimOption {
	return WithTuningChange(func(t *Tuning) {
		for i := range t.Difficulty {
			t.Difficulty[i].Enabled = false
		}
	})
}

// WithStartLevel begins the session at level n as if the earlier levels had
// been cleared, without their bonuses.
func WithStartLevel(n int) SimOption {
	return SimOption{simOptWorld, func(ts *TestSim) { ts.Engine.startAtLevel(n) }}
}

// WithBaseHealth sets the platform's current health.
func WithBaseHealth(h float64) SimOption {
	return SimOption{simOptWorld, func(ts *TestSim) { ts.Engine.base.Health = h }}
}

// WithWeaponCount overrides one inventory count.
func WithWeaponCount(w WeaponType, n int) SimOption {
	return SimOption{simOptWorld, func(ts *TestSim) { ts.Engine.inventory.Set(w, n) }}
}

// WithTimeLeft sets the remaining session time in ticks.
func WithTimeLeft(ticks int) SimOption {
	return SimOption{simOptWorld, func(ts *TestSim) { ts.Engine.session.TimeLeftTicks = ticks }}
}

// WithFireAt schedules a shot at a facility's centre before the given tick.
func WithFireAt(tick int, w WeaponType, id FacilityID) SimOption {
	return SimOption{simOptScript, func(ts *TestSim) {
		ts.orders = append(ts.orders, fireOrder{tick: tick, weapon: w, facility: id})
	}}
}

// WithFireAtPoint schedules a shot at an arbitrary aim point.
func WithFireAtPoint(tick int, w WeaponType, aim Vec2) SimOption {
	return SimOption{simOptScript, func(ts *TestSim) {
		ts.orders = append(ts.orders, fireOrder{tick: tick, weapon: w, aim: &aim})
	}}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Infrastructure (seed, verbose, tuning)
//  2. Build the Engine
//  3. World overrides
//  4. Scripted fire orders
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		SimLog: NewSimLog(false),
		seed:   1,
		tuning: DefaultTuning(),
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	ts.Engine = New(WithSeed(ts.seed), WithTuning(ts.tuning), WithSimLog(ts.SimLog))
	for _, o := range opts {
		if o.kind == simOptWorld {
			o.fn(ts)
		}
	}
	for _, o := range opts {
		if o.kind == simOptScript {
			o.fn(ts)
		}
	}
	return ts
}

// startAtLevel jumps the session to level n with the matching facilities and
// difficulty rows applied.
func (e *Engine) startAtLevel(n int) {
	n = max(1, min(n, e.maxLevel()))
	for lvl := 2; lvl <= n; lvl++ {
		if lvl-1 < len(e.tuning.Difficulty) {
			e.opfor.applyRow(e.tuning.Difficulty[lvl-1])
		}
	}
	e.session.Level = n
	e.session.SpeedMultiplier = speedMultiplierFor(n)
	if n > 1 {
		e.session.Phase = PhaseLevel
	}
	e.activateLevel(n)
	if e.opfor.enabled {
		e.opfor.cooldown = e.tuning.msToTicks(float64(e.opfor.frequencyMs))
	}
	e.log.Add(e.tick, "--", "--", "level", "start", fmt.Sprintf("start at level %d", n), float64(n))
}

// RunTicks advances the simulation n ticks, or until the session ends.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		if !ts.step() {
			return
		}
	}
}

// RunUntil steps until done(ts) holds and returns that tick. It gives up with
// -1 after maxTicks or when the session ends.
func (ts *TestSim) RunUntil(done func(*TestSim) bool, maxTicks int) int {
	for n := maxTicks; n > 0; n-- {
		if !ts.step() {
			break
		}
		if done(ts) {
			return ts.CurrentTick()
		}
	}
	return -1
}

// step fires due orders and simulates one tick. False once the session is over.
func (ts *TestSim) step() bool {
	next := ts.Engine.CurrentTick() + 1
	for _, o := range ts.orders {
		if o.tick != next {
			continue
		}
		var err error
		if o.aim != nil {
			_, err = ts.Engine.Fire(o.weapon, ts.Engine.Origin(), *o.aim)
		} else {
			_, err = ts.Engine.FireAtFacility(o.weapon, o.facility)
		}
		if err != nil {
			ts.Errors = append(ts.Errors, err)
		}
	}
	rep, err := ts.Engine.Tick()
	if errors.Is(err, ErrAlreadyTerminal) {
		return false
	}
	ts.Reports = append(ts.Reports, rep)
	return !ts.Engine.Phase().Terminal()
}

// InjectMissile places a hostile missile directly, bypassing every scheduler.
func (ts *TestSim) InjectMissile(kind MissileKind, pos, vel Vec2, damage float64) *EnemyMissile {
	e := ts.Engine
	m := &EnemyMissile{
		Entity:  Entity{ID: e.store.newID(), Pos: pos, Vel: vel, Life: 200, trailLife: 10},
		Kind:    kind,
		Damage:  damage,
		Target:  pos.Add(vel.Scale(1000)),
		Speed:   vel.Len(),
		MaxLife: 200,
		Source:  "test",
	}
	e.store.Missiles = append(e.store.Missiles, m)
	return m
}

// CurrentTick is the engine's tick.
func (ts *TestSim) CurrentTick() int { return ts.Engine.CurrentTick() }

// Snapshot returns a deep copy of the engine state.
func (ts *TestSim) Snapshot() Snapshot { return ts.Engine.Snapshot() }

// Session returns the engine's session state.
func (ts *TestSim) Session() SessionState { return ts.Engine.Session() }

// TotalReports sums a counter across every recorded tick report.
func (ts *TestSim) TotalReports(field func(TickReport) int) int {
	n := 0
	for _, r := range ts.Reports {
		n += field(r)
	}
	return n
}
