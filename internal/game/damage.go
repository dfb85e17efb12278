package game

import "fmt"

// stepDamage applies the tick's collisions to facilities, the platform and
// the score, and requests the matching explosions.
func (e *Engine) stepDamage(hits []hitRecord) {
	fx := &e.tuning.Effects
	for _, h := range hits {
		switch h.kind {
		case hitFacility:
			e.log.Add(e.tick, h.actor, "player", "hit", "facility",
				fmt.Sprintf("%s dmg=%.0f", h.facility.Label(), h.damage), h.damage)
			e.applyDamage(h.facility, h.damage, h.pos)

		case hitGround:
			e.report.Ground++
			e.spawnExplosion(ExplosionRegular, h.pos, fx.GroundRadius)
			e.log.Add(e.tick, h.actor, "player", "hit", "ground",
				fmt.Sprintf("(%.0f,%.0f)", h.pos.X, h.pos.Y), 0)

		case hitBase:
			e.hitBase(h)

		case hitIntercept:
			e.session.Stats.Intercepted++
			e.report.Intercepts++
			e.spawnExplosion(ExplosionRegular, h.pos, fx.InterceptRadius)
			e.log.Add(e.tick, h.actor, "player", "hit", "intercept", "by "+h.other, 0)

		case hitAircraft:
			e.session.Stats.AircraftLost++
			e.report.Intercepts++
			e.spawnExplosion(ExplosionRegular, h.pos, fx.InterceptRadius)
			e.log.Add(e.tick, h.actor, "player", "hit", "intercept", "aircraft by "+h.other, 0)

		case hitMissileGround:
			e.spawnExplosion(ExplosionRegular, h.pos, fx.GroundRadius/2)
		}
	}
}

// applyDamage reduces a facility's health and scores the hit. A destroyed
// facility ignores further damage.
func (e *Engine) applyDamage(f *Facility, amount float64, at Vec2) {
	if f == nil || f.Destroyed || amount <= 0 {
		return
	}
	st := &e.tuning.Session
	fx := &e.tuning.Effects

	f.Health = max(0, f.Health-amount)
	e.session.addScore(int(amount) * st.HitScorePerDamage)
	e.session.Stats.Hits++
	e.report.Hits++

	if f.Health > 0 {
		e.spawnExplosion(ExplosionRegular, at, fx.HitRadius)
		return
	}
	f.Destroyed = true
	e.session.Stats.TargetsDestroyed++
	e.session.addScore(st.DestroyBonus)
	e.report.DestroyedFacilities = append(e.report.DestroyedFacilities, f.ID)
	e.spawnExplosion(ExplosionAtomic, f.Rect.Center(), fx.AtomicRadius)
	e.log.Add(e.tick, f.Label(), "opfor", "damage", "facility_destroyed",
		fmt.Sprintf("%s destroyed, +%d", f.Name, st.DestroyBonus), float64(f.ID))
}

// hitBase applies a hostile missile to the platform.
func (e *Engine) hitBase(h hitRecord) {
	if e.base.Destroyed {
		return
	}
	dmg := h.damage
	if dmg <= 0 {
		dmg = e.tuning.Weapons.DefaultDamage
	}
	e.base.Health = max(0, e.base.Health-dmg)
	e.session.addScore(-int(dmg) * e.tuning.Session.BasePenaltyPerDamage)
	e.session.Stats.BaseHits++
	e.report.BaseHits++
	e.spawnExplosion(ExplosionRegular, h.pos, e.tuning.Effects.HitRadius)
	e.log.Add(e.tick, h.actor, "opfor", "hit", "base",
		fmt.Sprintf("from %s dmg=%.0f health=%.0f", h.other, dmg, e.base.Health), dmg)

	if e.base.Health <= 0 {
		e.base.Destroyed = true
		e.log.Add(e.tick, "base", "player", "damage", "base_destroyed", "platform lost", 0)
	}
}
