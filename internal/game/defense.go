package game

import "fmt"

// scheduleInterceptorWave queues the next interceptor spawn check. The gap
// shrinks as the session progresses.
func (e *Engine) scheduleInterceptorWave(first bool) {
	it := &e.tuning.Intercept
	var ms float64
	if first {
		ms = float64(it.FirstDelayMs) + e.rng.Float64()*float64(it.FirstSpreadMs)
	} else {
		ms = float64(it.BaseDelayMs) - e.progress()*float64(it.ProgressDelayMs) +
			e.rng.Float64()*float64(it.DelaySpreadMs)
	}
	e.deferred.schedule(e.tuning.msToTicks(ms), deferredEvent{kind: deferInterceptorWave, site: -1})
}

// eligibleDefenses returns the indices of systems that can launch and see at
// least one player projectile.
func (e *Engine) eligibleDefenses() []int {
	var out []int
	for i, d := range e.defenses {
		if !d.canLaunch() {
			continue
		}
		if len(e.projectilesInRange(d)) > 0 {
			out = append(out, i)
		}
	}
	return out
}

// projectilesInRange lists live player projectiles inside d's detection
// radius, oldest first.
func (e *Engine) projectilesInRange(d *DefenseSystem) []*Projectile {
	var out []*Projectile
	for _, p := range e.store.Projectiles {
		if !p.dead && p.Pos.Dist(d.Pos) <= d.Radius {
			out = append(out, p)
		}
	}
	return out
}

// pickInterceptTarget chooses the newest candidate with probability bias,
// otherwise the oldest.
func pickInterceptTarget(candidates []*Projectile, roll, bias float64) *Projectile {
	if len(candidates) == 0 {
		return nil
	}
	if roll < bias {
		return candidates[len(candidates)-1]
	}
	return candidates[0]
}

// spawnInterceptor launches one interceptor from a random eligible system.
func (e *Engine) spawnInterceptor() {
	eligible := e.eligibleDefenses()
	if len(eligible) == 0 {
		return
	}
	it := &e.tuning.Intercept
	progress := e.progress()

	site := eligible[e.rng.Intn(len(eligible))]
	d := e.defenses[site]
	target := pickInterceptTarget(e.projectilesInRange(d), e.rng.Float64(), it.NewestBias)

	speed := it.BaseSpeed + it.SpeedBoost*(1+progress)
	e.launchInterceptor(d, target, speed)
	d.Cooldown = max(it.CooldownMinTicks, it.CooldownTicks-int(progress*float64(it.CooldownProgress)))

	if e.rng.Float64() < it.FollowUpChance+progress*it.FollowUpProgress {
		e.deferred.schedule(e.tuning.msToTicks(float64(it.FollowUpDelayMs)), deferredEvent{
			kind:  deferFollowUpInterceptor,
			site:  site,
			speed: it.FollowUpSpeed + it.SpeedBoost*(1+progress),
		})
	}
}

// spawnFollowUpInterceptor sends a second interceptor from site at any live
// projectile. It ignores the system's cooldown.
func (e *Engine) spawnFollowUpInterceptor(site int, speed float64) {
	if site < 0 || site >= len(e.defenses) || len(e.store.Projectiles) == 0 {
		return
	}
	d := e.defenses[site]
	if !d.Active {
		return
	}
	target := e.store.Projectiles[e.rng.Intn(len(e.store.Projectiles))]
	e.launchInterceptor(d, target, speed)
}

func (e *Engine) launchInterceptor(d *DefenseSystem, target *Projectile, speed float64) {
	if target == nil {
		return
	}
	m := e.spawnMissile(MissileInterceptor, d.Pos, target.Pos, speed, 0, e.tuning.Intercept.Life, d.Name)
	m.TargetID = target.ID
	e.log.Add(e.tick, m.Label(), "opfor", "launch", "interceptor",
		fmt.Sprintf("from %s at %s speed=%.1f", d.Name, target.Label(), speed), speed)
}
