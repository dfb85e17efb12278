package game

import "fmt"

// stepGuidance runs every decision-making system for one tick: due deferred
// events, the attack scheduler, facility strikes, defense cooldowns, missile
// steering and threat adaptation. The order is fixed so a seed replays exactly.
func (e *Engine) stepGuidance() {
	for _, ev := range e.deferred.advance() {
		e.dispatch(ev)
	}
	e.stepOffensive()
	e.stepFacilityStrikes()
	for _, d := range e.defenses {
		if d.Cooldown > 0 {
			d.Cooldown--
		}
	}
	for _, m := range e.store.Missiles {
		if m.Kind == MissileInterceptor {
			e.steerInterceptor(m)
		} else {
			e.steerMissile(m)
		}
	}
	e.stepAdaptation()
}

func (e *Engine) dispatch(ev deferredEvent) {
	switch ev.kind {
	case deferOffensiveMissile:
		e.launchOffensive(ev.site, ev.index)
	case deferInterceptorWave:
		if len(e.store.Projectiles) > 0 {
			e.spawnInterceptor()
		}
		e.scheduleInterceptorWave(false)
	case deferFollowUpInterceptor:
		e.spawnFollowUpInterceptor(ev.site, ev.speed)
	default:
		e.log.AddVerbose(e.tick, "--", "--", "guidance", "unknown_event", fmt.Sprint(int(ev.kind)), 0)
	}
}

// steerMissile points a base-bound missile at its target. Speed grows with age
// and again inside the terminal radius.
func (e *Engine) steerMissile(m *EnemyMissile) {
	op := &e.tuning.OpFor
	if m.DirectHoming {
		m.Target = e.base.Rect.Center()
		if e.rng.Float64() < op.RetargetJitterP {
			m.Target.X += (e.rng.Float64()*2 - 1) * op.RetargetJitter
			m.Target.Y += (e.rng.Float64()*2 - 1) * op.RetargetJitter
		}
	}

	d := m.Target.Sub(m.Pos)
	if dist := d.Len(); dist > op.ArrivalDist {
		speed := m.Speed
		if m.MaxLife > 0 {
			speed *= 1 + float64(m.MaxLife-m.Life)/float64(m.MaxLife)*op.AgeSpeedup
		}
		if dist < op.TerminalRadius {
			speed *= 1 + m.HomingStrength*(1-dist/op.TerminalRadius)
		}
		m.Vel = d.Scale(speed / dist)
	}

	if e.rng.Float64() < m.ErraticChance {
		m.Vel.X += (e.rng.Float64()*2 - 1) * op.Erratic
		m.Vel.Y += (e.rng.Float64()*2 - 1) * op.Erratic
	}
}

// steerInterceptor chases the tracked projectile. Once it is gone the
// interceptor keeps its last heading.
func (e *Engine) steerInterceptor(m *EnemyMissile) {
	p := e.store.projectile(m.TargetID)
	if p == nil {
		return
	}
	m.Target = p.Pos
	if u, ok := m.Target.Sub(m.Pos).Unit(); ok {
		m.Vel = u.Scale(m.Speed)
	}
}
