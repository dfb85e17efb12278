package game

import "slices"

// EntityStore owns every live moving entity. Slices keep launch order, so the
// first element of each is the oldest.
type EntityStore struct {
	Projectiles []*Projectile
	Missiles    []*EnemyMissile
	Aircraft    []*Aircraft
	Explosions  []*Explosion
	Particles   []*Particle

	nextID EntityID
}

func (s *EntityStore) newID() EntityID {
	s.nextID++
	return s.nextID
}

// projectile finds a live projectile by ID.
func (s *EntityStore) projectile(id EntityID) *Projectile {
	for _, p := range s.Projectiles {
		if p.ID == id && !p.dead {
			return p
		}
	}
	return nil
}

// sweep removes every entity marked dead during a pass.
func (s *EntityStore) sweep() {
	s.Projectiles = compact(s.Projectiles, func(p *Projectile) bool { return p.dead })
	s.Missiles = compact(s.Missiles, func(m *EnemyMissile) bool { return m.dead })
	s.Aircraft = compact(s.Aircraft, func(a *Aircraft) bool { return a.dead })
}

// reset drops every entity and restarts ID allocation.
func (s *EntityStore) reset() {
	*s = EntityStore{}
}

// compact removes matching elements in place, preserving order.
func compact[T any](in []T, drop func(T) bool) []T {
	return slices.DeleteFunc(in, drop)
}
