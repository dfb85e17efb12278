package game

import (
	"fmt"
	"math"
)

// solveArc returns the launch velocity that carries ordnance from `from` to
// `to` in T = ceil(dist/speed) ticks under per-tick gravity g, applied before
// each move, along with T. With g = 0 it is a straight line at the given speed.
func solveArc(from, to Vec2, speed, g float64) (Vec2, int, bool) {
	dist := to.Dist(from)
	if dist == 0 || speed <= 0 {
		return Vec2{}, 0, false
	}
	t := int(math.Max(1, math.Ceil(dist/speed)))
	return arcIn(from, to, t, g), t, true
}

// arcIn is the launch velocity that reaches `to` in exactly t ticks.
func arcIn(from, to Vec2, t int, g float64) Vec2 {
	d := to.Sub(from)
	n := float64(max(1, t))
	return Vec2{
		X: d.X / n,
		Y: (d.Y - g*n*(n+1)/2) / n,
	}
}

// bombFallTicks solves how many ticks a bomb released with vertical speed vy0
// needs to fall dy pixels under gravity g. Never less than one.
func bombFallTicks(dy, vy0, g float64) float64 {
	if g <= 0 {
		if vy0 <= 0 {
			return 1
		}
		return math.Max(1, dy/vy0)
	}
	// dy = vy0*T + g*T*(T+1)/2  →  (g/2)T² + (vy0+g/2)T − dy = 0
	a := g / 2
	b := vy0 + g/2
	disc := b*b + 4*a*dy
	if disc <= 0 {
		return 1
	}
	return math.Max(1, (-b+math.Sqrt(disc))/(2*a))
}

func (e *Engine) launchProjectile(w WeaponType, origin, aim Vec2) *Projectile {
	wt := &e.tuning.Weapons
	s, _ := wt.params(w)
	p := &Projectile{
		Entity: Entity{
			ID:        e.store.newID(),
			Pos:       origin,
			Life:      wt.ProjectileLife,
			trailLife: wt.TrailLife,
		},
		Weapon: w,
		Target: aim,
		Guided: w == WeaponGuided,
		Damage: wt.Damage(w),
		Speed:  s.Speed,
	}
	g := 0.0
	if w.ballistic() {
		g = e.tuning.Field.Gravity
	}
	p.Vel, p.eta, _ = solveArc(origin, aim, s.Speed, g)
	e.store.Projectiles = append(e.store.Projectiles, p)
	return p
}

func (e *Engine) launchAircraft(aim Vec2) *Aircraft {
	wt := &e.tuning.Weapons
	s, _ := wt.params(WeaponAircraft)
	a := &Aircraft{
		Entity: Entity{
			ID:        e.store.newID(),
			Pos:       Vec2{e.base.Rect.X, e.base.Rect.Y - wt.AircraftSpawnY},
			Life:      wt.AircraftLife,
			trailLife: wt.TrailLife,
		},
		Bombs:  wt.AircraftBombs,
		Target: aim,
	}
	a.Vel = Vec2{X: s.Speed * 0.75, Y: (e.rng.Float64() - 0.5) * wt.AircraftDrift}
	a.DropX = e.dropPoint(a)
	e.store.Aircraft = append(e.store.Aircraft, a)
	return a
}

// dropPoint is the x at which a bomb released now lands on the aircraft's target.
func (e *Engine) dropPoint(a *Aircraft) float64 {
	wt := &e.tuning.Weapons
	releaseY := a.Pos.Y + 10
	t := bombFallTicks(a.Target.Y-releaseY, wt.BombDropVY, e.tuning.Field.Gravity)
	return a.Target.X - a.Vel.X*wt.BombVXFactor*t
}

// stepMotion integrates every entity class, then sweeps the ones that died.
func (e *Engine) stepMotion() {
	for _, p := range e.store.Projectiles {
		e.integrateProjectile(p)
	}
	for _, m := range e.store.Missiles {
		e.integrateMissile(m)
	}
	// Bombs join the projectile slice after it has been integrated this tick.
	for _, a := range e.store.Aircraft {
		e.integrateAircraft(a)
	}
	e.updateEffects()
	e.store.sweep()
}

func (e *Engine) integrateProjectile(p *Projectile) {
	f := &e.tuning.Field
	wt := &e.tuning.Weapons

	if p.Weapon.ballistic() {
		p.Vel.Y += f.Gravity
	} else {
		top := f.GroundY - wt.CruiseBandTop
		bottom := f.GroundY - wt.CruiseBandBottom
		switch {
		case p.Pos.Y > bottom:
			p.Vel.Y = -wt.CruiseClimb
		case p.Pos.Y < top:
			p.Vel.Y = wt.CruiseClimb
		}
	}

	if p.Guided && p.Life > wt.GuidedLifeFloor {
		if err := e.correctCourse(p); err != nil {
			e.log.AddVerbose(e.tick, p.Label(), "player", "guidance", "invalid_target", err.Error(), 0)
		}
	}

	p.Pos = p.Pos.Add(p.Vel)
	p.age(f.TrailCap)
	if p.eta > 0 {
		p.eta--
	}
	e.log.AddVerbose(e.tick, p.Label(), "player", "motion", "position",
		fmt.Sprintf("(%.1f,%.1f)", p.Pos.X, p.Pos.Y), 0)
	if p.Life <= 0 || e.outOfBounds(p.Pos) {
		p.dead = true
	}
}

// correctCourse blends a guided projectile's velocity toward the arc that
// still reaches its target on the tick solved at launch.
func (e *Engine) correctCourse(p *Projectile) error {
	if p.Target.Sub(p.Pos).Len() == 0 {
		return ErrInvalidTarget
	}
	if p.eta <= 0 {
		return nil
	}
	g := e.tuning.Field.Gravity
	want := arcIn(p.Pos, p.Target, p.eta, g)
	// Gravity has already been applied this tick, so the move that follows is
	// the arc's first step, not its launch velocity.
	want.Y += g
	p.Vel = p.Vel.Add(want.Sub(p.Vel).Scale(e.tuning.Weapons.GuidedBlend))
	return nil
}

func (e *Engine) integrateMissile(m *EnemyMissile) {
	m.Pos = m.Pos.Add(m.Vel)
	m.age(e.tuning.Field.TrailCap)
	if m.Life <= 0 || e.outOfBounds(m.Pos) {
		m.dead = true
	}
}

func (e *Engine) integrateAircraft(a *Aircraft) {
	wt := &e.tuning.Weapons
	a.Pos = a.Pos.Add(a.Vel)
	a.age(e.tuning.Field.TrailCap)

	if a.dropWait > 0 {
		a.dropWait--
	}
	a.DropX = e.dropPoint(a)
	if a.Bombs > 0 && a.dropWait == 0 && a.Pos.X >= a.DropX {
		e.dropBomb(a)
		a.Bombs--
		a.dropWait = wt.BombSpacing
		a.Dropped = a.Bombs == 0
	}

	if a.Life <= 0 || a.Pos.X >= e.tuning.Field.Width+50 {
		a.dead = true
	}
}

func (e *Engine) dropBomb(a *Aircraft) {
	wt := &e.tuning.Weapons
	b := &Projectile{
		Entity: Entity{
			ID:        e.store.newID(),
			Pos:       Vec2{a.Pos.X, a.Pos.Y + 10},
			Vel:       Vec2{a.Vel.X * wt.BombVXFactor, wt.BombDropVY},
			Life:      wt.BombLife,
			trailLife: wt.TrailLife,
		},
		Weapon: WeaponBomb,
		Target: a.Target,
		Damage: wt.Damage(WeaponBomb),
	}
	e.store.Projectiles = append(e.store.Projectiles, b)
	e.log.Add(e.tick, a.Label(), "player", "fire", "bomb",
		fmt.Sprintf("%s released at (%.0f,%.0f)", b.Label(), b.Pos.X, b.Pos.Y), 0)
}

// outOfBounds reports whether p has left the playfield. The top edge is open
// so ballistic arcs may climb above the visible area.
func (e *Engine) outOfBounds(p Vec2) bool {
	f := &e.tuning.Field
	return p.X < 0 || p.X >= f.Width || p.Y >= f.Height
}
