package game

import (
	"fmt"
	"math/rand"
)

// fxSeedSalt separates the cosmetic RNG stream from the gameplay stream.
const fxSeedSalt = 0x5eed_f00d

// TickReport summarises what one tick changed.
type TickReport struct {
	Tick                int
	ScoreDelta          int
	DestroyedFacilities []FacilityID
	Transition          *PhaseTransition

	Hits       int // facility hits
	BaseHits   int
	Intercepts int // player ordnance destroyed in the air
	Launches   int // hostile missiles launched
	Ground     int // ordnance that hit the ground
}

// Engine owns one playthrough: the entity store, session state, and every
// per-tick system. It is not safe for concurrent use.
type Engine struct {
	tuning Tuning
	seed   int64
	rng    *rand.Rand // gameplay decisions
	fxRng  *rand.Rand // cosmetic particles only
	log    *SimLog

	store      EntityStore
	facilities []*Facility
	defenses   []*DefenseSystem
	base       LaunchPlatform
	inventory  WeaponInventory
	session    SessionState
	opfor      opforState
	deferred   deferredQueue

	tick     int
	report   TickReport
	reporter *SimReporter
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithSeed sets the RNG seed for the first playthrough.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithTuning replaces the default balance.
func WithTuning(t Tuning) Option {
	return func(e *Engine) { e.tuning = t }
}

// WithSimLog routes events to an existing log.
func WithSimLog(l *SimLog) Option {
	return func(e *Engine) { e.log = l }
}

// New builds an engine ready for its first tick.
func New(opts ...Option) *Engine {
	e := &Engine{
		tuning:   DefaultTuning(),
		seed:     1,
		reporter: NewSimReporter(reportWindowTicks),
	}
	for _, o := range opts {
		o(e)
	}
	if e.log == nil {
		e.log = NewSimLog(false)
	}
	e.Reset(e.seed)
	return e
}

// Reset reinitialises every collection and the session for a fresh playthrough
// under the given seed. Tuning is kept.
func (e *Engine) Reset(seed int64) {
	t := &e.tuning
	e.seed = seed
	e.rng = rand.New(rand.NewSource(seed))               // #nosec G404 -- game only
	e.fxRng = rand.New(rand.NewSource(seed ^ fxSeedSalt)) // #nosec G404 -- cosmetic only
	e.store.reset()
	e.facilities = newFacilities(t)
	e.defenses = newDefenses(t)
	e.base = LaunchPlatform{
		Rect:      Rect{X: t.Platform.X, Y: t.Platform.Y, W: t.Platform.W, H: t.Platform.H},
		Health:    t.Platform.Health,
		MaxHealth: t.Platform.Health,
	}
	e.inventory = newInventory(&t.Weapons)
	e.session = SessionState{
		TimeLeftTicks:   t.secToTicks(t.Session.TimeBudgetSec),
		Level:           1,
		Phase:           PhaseTutorial,
		SpeedMultiplier: speedMultiplierFor(1),
		ticksPerSecond:  t.Session.TicksPerSecond,
	}
	e.tick = 0
	e.report = TickReport{}
	e.reporter.Reset()
	e.deferred.clear()
	e.opfor = newOpForState(t.Difficulty[0])
	e.activateLevel(1)
	e.scheduleInterceptorWave(true)

	e.log.Reset()
	e.log.Add(0, "--", "--", "phase", "change",
		fmt.Sprintf("reset seed=%d → %s level=1", seed, PhaseTutorial), float64(seed))
}

// Tick advances the simulation by one frame: motion, guidance and AI,
// collision, damage, then difficulty.
func (e *Engine) Tick() (TickReport, error) {
	if e.session.Phase.Terminal() {
		return TickReport{Tick: e.tick}, ErrAlreadyTerminal
	}
	e.tick++
	e.report = TickReport{Tick: e.tick}
	scoreBefore := e.session.Score

	e.stepMotion()
	e.stepGuidance()
	hits := e.stepCollision()
	e.stepDamage(hits)
	e.stepDifficulty()

	e.report.ScoreDelta = e.session.Score - scoreBefore
	e.reporter.Collect(e.report, e.session.Score, len(e.store.Missiles))
	return e.report, nil
}

// Fire launches player ordnance from origin toward aim. The aim point is the
// intended impact point. Aircraft ignore origin and take off from the platform.
func (e *Engine) Fire(w WeaponType, origin, aim Vec2) (EntityID, error) {
	if e.session.Phase.Terminal() {
		return 0, ErrAlreadyTerminal
	}
	if !w.playerFireable() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownWeapon, int(w))
	}
	if aim.Sub(origin).Len() == 0 {
		return 0, fmt.Errorf("%w: aim point equals origin", ErrInvalidTarget)
	}
	if !e.inventory.take(w) {
		e.log.Add(e.tick, "base", "player", "fire", "rejected",
			fmt.Sprintf("%s: no ammo", w), 0)
		return 0, ErrInsufficientAmmo
	}
	e.session.Stats.ShotsFired++

	var id EntityID
	var label string
	if w == WeaponAircraft {
		a := e.launchAircraft(aim)
		id, label = a.ID, a.Label()
	} else {
		p := e.launchProjectile(w, origin, aim)
		id, label = p.ID, p.Label()
	}
	e.spawnParticles(ParticleSmoke, origin, e.tuning.Effects.LaunchSmoke, 1)
	e.log.Add(e.tick, label, "player", "fire", "launch",
		fmt.Sprintf("%s → (%.0f,%.0f) left=%d", w, aim.X, aim.Y, e.inventory.Count(w)), float64(w))
	return id, nil
}

// FireAtFacility aims at a facility's centre from the platform origin.
func (e *Engine) FireAtFacility(w WeaponType, id FacilityID) (EntityID, error) {
	f := e.Facility(id)
	if f == nil {
		return 0, fmt.Errorf("%w: facility %d", ErrInvalidTarget, int(id))
	}
	return e.Fire(w, e.base.Origin(), f.Rect.Center())
}

// Origin is the platform's launch point.
func (e *Engine) Origin() Vec2 { return e.base.Origin() }

// Seed returns the seed of the current playthrough.
func (e *Engine) Seed() int64 { return e.seed }

// CurrentTick returns the number of ticks simulated since Reset.
func (e *Engine) CurrentTick() int { return e.tick }

// Session returns a copy of the session state.
func (e *Engine) Session() SessionState { return e.session }

// Phase returns the current phase.
func (e *Engine) Phase() Phase { return e.session.Phase }

// Log returns the engine's event log.
func (e *Engine) Log() *SimLog { return e.log }

// Tuning returns the engine's balance values.
func (e *Engine) Tuning() Tuning { return e.tuning }

// Inventory returns a copy of the weapon counts.
func (e *Engine) Inventory() WeaponInventory { return e.inventory }

// Facility returns the facility with the given ID, or nil.
func (e *Engine) Facility(id FacilityID) *Facility {
	if id < 0 || int(id) >= len(e.facilities) {
		return nil
	}
	return e.facilities[id]
}

// Base returns a copy of the launch platform.
func (e *Engine) Base() LaunchPlatform { return e.base }

// ThreatLevel returns the adaptive AI's current threat estimate.
func (e *Engine) ThreatLevel() float64 { return e.opfor.threatLevel }

// activeFacilities returns the facilities unlocked at the current level, in
// unlock order.
func (e *Engine) activeFacilities() []*Facility {
	n := min(e.session.Level, len(e.facilities))
	return e.facilities[:n]
}

// activateLevel marks the first level facilities active.
func (e *Engine) activateLevel(level int) {
	for i, f := range e.facilities {
		f.Active = i < level
	}
}

// progress is elapsed session time as a fraction of the budget, in [0, 1].
func (e *Engine) progress() float64 {
	budget := e.tuning.secToTicks(e.tuning.Session.TimeBudgetSec)
	if budget <= 0 {
		return 1
	}
	return clamp(1-float64(e.session.TimeLeftTicks)/float64(budget), 0, 1)
}
