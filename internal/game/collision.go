package game

import "slices"

// hitKind classifies one collision outcome.
type hitKind int

const (
	hitFacility hitKind = iota
	hitGround
	hitBase
	hitIntercept
	hitAircraft
	hitMissileGround
)

// hitRecord is a collision handed from the resolver to the damage stage.
type hitRecord struct {
	kind     hitKind
	facility *Facility
	pos      Vec2
	damage   float64
	actor    string // label of the consumed entity
	other    string // label of the entity it collided with, if any
}

// stepCollision resolves every contact for this tick. Consumed entities are
// removed in place so nothing is matched twice.
func (e *Engine) stepCollision() []hitRecord {
	var hits []hitRecord
	hits = e.collideProjectiles(hits)
	hits = e.collideMissiles(hits)
	e.store.sweep()
	return hits
}

// collideProjectiles matches player ordnance against facilities and the
// ground. The first standing facility in unlock order wins.
func (e *Engine) collideProjectiles(hits []hitRecord) []hitRecord {
	groundY := e.tuning.Field.GroundY
	ps := e.store.Projectiles
	for i := len(ps) - 1; i >= 0; i-- {
		p := ps[i]
		if p.dead {
			continue
		}
		var hit *Facility
		for _, f := range e.activeFacilities() {
			if f.hittable() && f.Rect.Contains(p.Pos) {
				hit = f
				break
			}
		}
		switch {
		case hit != nil:
			hits = append(hits, hitRecord{kind: hitFacility, facility: hit, pos: p.Pos, damage: p.Damage, actor: p.Label()})
		case p.Pos.Y >= groundY:
			hits = append(hits, hitRecord{kind: hitGround, pos: p.Pos, actor: p.Label()})
		default:
			continue
		}
		p.dead = true
		ps = slices.Delete(ps, i, i+1)
	}
	e.store.Projectiles = ps
	return hits
}

// collideMissiles matches hostile missiles against the platform, then against
// player projectiles and aircraft, then the ground.
func (e *Engine) collideMissiles(hits []hitRecord) []hitRecord {
	pt := &e.tuning.Platform
	it := &e.tuning.Intercept
	groundY := e.tuning.Field.GroundY
	hitBox := e.base.Rect.Expand(pt.HitTolerance)

	ms := e.store.Missiles
	for i := len(ms) - 1; i >= 0; i-- {
		m := ms[i]
		if m.dead {
			continue
		}
		consumed := false

		if m.Kind.targetsBase() && !e.base.Destroyed {
			grounded := m.Pos.Y >= groundY &&
				m.Pos.X >= e.base.Rect.X-pt.GroundReach &&
				m.Pos.X <= e.base.Rect.X+e.base.Rect.W+pt.GroundReach
			if hitBox.Contains(m.Pos) || grounded {
				hits = append(hits, hitRecord{kind: hitBase, pos: m.Pos, damage: m.Damage, actor: m.Label(), other: m.Source})
				consumed = true
			}
		}

		if !consumed {
			for _, p := range e.store.Projectiles {
				if p.dead || p.Pos.Dist(m.Pos) > it.KillRadius {
					continue
				}
				p.dead = true
				consumed = true
				hits = append(hits, hitRecord{kind: hitIntercept, pos: p.Pos, actor: p.Label(), other: m.Label()})
				break
			}
		}
		// A missile is spent on its first kill.
		if !consumed {
			for _, a := range e.store.Aircraft {
				if a.dead || a.Pos.Dist(m.Pos) > it.AircraftKillRange {
					continue
				}
				a.dead = true
				consumed = true
				hits = append(hits, hitRecord{kind: hitAircraft, pos: a.Pos, actor: a.Label(), other: m.Label()})
				break
			}
		}

		if !consumed && m.Pos.Y >= groundY {
			hits = append(hits, hitRecord{kind: hitMissileGround, pos: m.Pos, actor: m.Label()})
			consumed = true
		}
		if consumed {
			m.dead = true
			ms = slices.Delete(ms, i, i+1)
		}
	}
	e.store.Missiles = ms
	return hits
}
