package game

import (
	"fmt"
	"math"
)

// opforState is the opposing force's live parameter set. Level changes,
// time escalation and adaptation only ever make it more aggressive.
type opforState struct {
	enabled      bool
	attackChance float64
	accuracy     float64
	missileSpeed float64
	frequencyMs  int
	cooldown     int // ticks until the next launch roll

	threatLevel float64
	salvoSize   int
	escalations int
}

func newOpForState(row DifficultyRow) opforState {
	return opforState{
		enabled:      row.Enabled,
		attackChance: row.AttackChance,
		accuracy:     row.Accuracy,
		missileSpeed: row.MissileSpeed,
		frequencyMs:  row.FrequencyMs,
		salvoSize:    1,
	}
}

// applyRow folds a difficulty row into the live parameters without lowering
// any of them.
func (o *opforState) applyRow(row DifficultyRow) {
	o.enabled = o.enabled || row.Enabled
	o.attackChance = math.Max(o.attackChance, row.AttackChance)
	o.accuracy = math.Max(o.accuracy, row.Accuracy)
	o.missileSpeed = math.Max(o.missileSpeed, row.MissileSpeed)
	if row.FrequencyMs > 0 {
		o.frequencyMs = min(o.frequencyMs, row.FrequencyMs)
	}
}

// stepOffensive runs the attack scheduler for one tick.
func (e *Engine) stepOffensive() {
	o := &e.opfor
	if !o.enabled {
		return
	}
	if o.cooldown > 0 {
		o.cooldown--
		return
	}
	op := &e.tuning.OpFor
	progress := e.progress()
	if e.rng.Float64() >= o.attackChance+progress*op.ProgressChance {
		retry := float64(op.RetryMinMs) + e.rng.Float64()*float64(op.RetryMaxMs-op.RetryMinMs)
		o.cooldown = e.tuning.msToTicks(retry)
		return
	}
	o.cooldown = e.tuning.msToTicks(float64(max(op.FrequencyFloorMs, o.frequencyMs)))

	site := e.chooseLaunchSite()
	if site < 0 {
		return
	}
	if e.launchOffensive(site, 0) == nil {
		return
	}
	e.scheduleSalvo(site, progress)
}

// scheduleSalvo queues the follow-up missiles of one attack.
func (e *Engine) scheduleSalvo(site int, progress float64) {
	op := &e.tuning.OpFor
	ms := func(lo, hi int) int {
		return e.tuning.msToTicks(float64(lo) + e.rng.Float64()*float64(hi-lo))
	}

	followUps := 0
	lastDelay := 0
	if e.rng.Float64() < op.SalvoChance+progress*op.SalvoProgress {
		followUps++
		lastDelay = ms(op.SalvoDelayMinMs, op.SalvoDelayMaxMs)
		e.deferred.schedule(lastDelay, deferredEvent{kind: deferOffensiveMissile, site: site, index: followUps})
	}
	if progress > op.ThirdAfter && e.rng.Float64() < op.ThirdChance {
		followUps++
		lastDelay = ms(op.ThirdDelayMinMs, op.ThirdDelayMaxMs)
		e.deferred.schedule(lastDelay, deferredEvent{kind: deferOffensiveMissile, site: site, index: followUps})
	}
	spacing := e.tuning.msToTicks(float64(op.ExtraSpacingMs))
	for followUps < e.opfor.salvoSize-1 && followUps < op.MaxFollowUps {
		followUps++
		lastDelay += spacing
		e.deferred.schedule(lastDelay, deferredEvent{kind: deferOffensiveMissile, site: site, index: followUps})
	}
}

// chooseLaunchSite picks the stocked, active defense system that scores
// highest on closeness to the platform plus remaining stock. -1 when none.
func (e *Engine) chooseLaunchSite() int {
	op := &e.tuning.OpFor
	centre := e.base.Rect.Center()
	best, bestScore := -1, math.Inf(-1)
	for i, d := range e.defenses {
		if !d.Active || d.Missiles <= 0 {
			continue
		}
		score := (op.SiteDistWeight - d.Pos.Dist(centre)) + float64(d.Missiles)*op.SiteStockWeight
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

// launchOffensive fires one scheduler missile from defense site at the
// platform. index widens the aim spread for later salvo members.
func (e *Engine) launchOffensive(site, index int) *EnemyMissile {
	if site < 0 || site >= len(e.defenses) {
		return nil
	}
	d := e.defenses[site]
	if !d.Active || d.Missiles <= 0 {
		return nil
	}
	op := &e.tuning.OpFor
	o := &e.opfor

	spread := e.rng.Float64() * (1 - o.accuracy) * op.TargetSpread * (1 + 0.5*float64(index))
	target := e.base.Rect.Center()
	if e.rng.Float64() < 0.5 {
		target.X += spread
	} else {
		target.X -= spread
	}
	if e.rng.Float64() < op.TargetHighBias {
		target.Y += spread
	} else {
		target.Y -= spread / 2
	}

	d.Missiles--
	damage := op.DamageMin + e.rng.Float64()*op.DamageSpread
	m := e.spawnMissile(MissileOffensive, d.Pos, target, o.missileSpeed, damage, op.MissileLife, d.Name)
	key := "offensive"
	if index > 0 {
		key = "salvo"
	}
	e.log.Add(e.tick, m.Label(), "opfor", "launch", key,
		fmt.Sprintf("from %s stock=%d dmg=%.0f", d.Name, d.Missiles, damage), damage)
	return m
}

// stepFacilityStrikes lets every standing active facility roll its tier chance.
func (e *Engine) stepFacilityStrikes() {
	if !e.opfor.enabled {
		return
	}
	op := &e.tuning.OpFor
	for _, f := range e.activeFacilities() {
		if !f.hittable() || f.Missiles <= 0 {
			continue
		}
		if f.Cooldown > 0 {
			f.Cooldown--
			continue
		}
		if e.rng.Float64() >= f.Threat.strikeChance(op) {
			continue
		}
		jitter := (1 - f.Accuracy) * op.StrikeJitter
		target := e.base.Rect.Center().Add(Vec2{
			X: (e.rng.Float64() - 0.5) * jitter,
			Y: (e.rng.Float64() - 0.5) * jitter,
		})
		from := Vec2{f.Rect.X + f.Rect.W/2, f.Rect.Y}
		f.Missiles--
		f.Cooldown = e.tuning.msToTicks(float64(f.FrequencyMs))
		m := e.spawnMissile(MissileStrike, from, target, f.MissileSpeed, f.Threat.MissileDamage(), op.StrikeLife, f.Label())
		e.log.Add(e.tick, m.Label(), "opfor", "launch", "strike",
			fmt.Sprintf("from %s threat=%s stock=%d", f.Label(), f.Threat, f.Missiles), f.Threat.MissileDamage())
	}
}

// spawnMissile creates a hostile missile heading straight for target.
func (e *Engine) spawnMissile(kind MissileKind, from, target Vec2, speed, damage float64, life int, source string) *EnemyMissile {
	op := &e.tuning.OpFor
	trail := op.MissileTrailLife
	if kind == MissileInterceptor {
		trail = e.tuning.Intercept.TrailLife
	}
	m := &EnemyMissile{
		Entity: Entity{
			ID:        e.store.newID(),
			Pos:       from,
			Life:      life,
			trailLife: trail,
		},
		Kind:    kind,
		Damage:  damage,
		Target:  target,
		Speed:   speed,
		MaxLife: life,
		Source:  source,
	}
	if kind.targetsBase() {
		m.HomingStrength = op.HomingMin + e.rng.Float64()*op.HomingSpread
		m.DirectHoming = e.rng.Float64() < op.DirectChance
		m.ErraticChance = op.ErraticChance
	}
	if u, ok := target.Sub(from).Unit(); ok {
		m.Vel = u.Scale(speed)
	}
	e.store.Missiles = append(e.store.Missiles, m)
	e.session.Stats.MissilesLaunched++
	e.report.Launches++
	return m
}

// stepAdaptation raises the threat level while the player shoots well and
// periodically retunes the scheduler from it.
func (e *Engine) stepAdaptation() {
	op := &e.tuning.OpFor
	o := &e.opfor
	st := e.session.Stats
	if st.ShotsFired >= op.ThreatMinShots && st.Accuracy() > op.ThreatHitRate {
		o.threatLevel = math.Min(op.ThreatMax, o.threatLevel+op.ThreatStep)
	}
	if op.AdaptEveryTicks <= 0 || e.tick%op.AdaptEveryTicks != 0 {
		return
	}
	tl := o.threatLevel
	o.attackChance = math.Max(o.attackChance, math.Min(op.AdaptChanceCap, 0.15+tl*0.05))
	o.salvoSize = int(math.Floor(1 + tl/2))
	o.accuracy = math.Max(o.accuracy, math.Min(op.AccuracyCap, 0.85+tl*0.025))
	o.missileSpeed = math.Max(o.missileSpeed, 4.5+tl*0.3)
	e.log.AddVerbose(e.tick, "--", "opfor", "level", "adapt",
		fmt.Sprintf("threat=%.1f chance=%.2f salvo=%d acc=%.2f speed=%.1f",
			tl, o.attackChance, o.salvoSize, o.accuracy, o.missileSpeed), tl)
}

// escalate tightens the opposing force as the clock runs down.
func (e *Engine) escalate() {
	op := &e.tuning.OpFor
	o := &e.opfor
	o.accuracy = math.Min(op.AccuracyCap, o.accuracy+op.EscalateAccuracy)
	o.missileSpeed += op.EscalateSpeed
	o.frequencyMs = max(op.EscalateFreqFloor, o.frequencyMs-op.EscalateFreqStepMs)
	o.escalations++
	e.log.Add(e.tick, "--", "opfor", "level", "escalate",
		fmt.Sprintf("#%d acc=%.2f speed=%.1f freq=%dms", o.escalations, o.accuracy, o.missileSpeed, o.frequencyMs),
		float64(o.escalations))
}
