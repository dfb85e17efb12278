package game

// Snapshot is a deep copy of the simulation for renderers and observers.
// Mutating it never affects the engine.
type Snapshot struct {
	Tick        int
	Projectiles []Projectile
	Missiles    []EnemyMissile
	Aircraft    []Aircraft
	Explosions  []Explosion
	Particles   []Particle
	Facilities  []Facility
	Defenses    []DefenseSystem
	Base        LaunchPlatform
	Session     SessionState
	Inventory   WeaponInventory
	Field       FieldTuning
	ThreatLevel float64
}

// Snapshot copies every collection and the session state.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Tick:        e.tick,
		Projectiles: make([]Projectile, 0, len(e.store.Projectiles)),
		Missiles:    make([]EnemyMissile, 0, len(e.store.Missiles)),
		Aircraft:    make([]Aircraft, 0, len(e.store.Aircraft)),
		Explosions:  make([]Explosion, 0, len(e.store.Explosions)),
		Particles:   make([]Particle, 0, len(e.store.Particles)),
		Facilities:  make([]Facility, 0, len(e.facilities)),
		Defenses:    make([]DefenseSystem, 0, len(e.defenses)),
		Base:        e.base,
		Session:     e.session,
		Inventory:   e.inventory,
		Field:       e.tuning.Field,
		ThreatLevel: e.opfor.threatLevel,
	}
	for _, p := range e.store.Projectiles {
		c := *p
		c.Trail = p.copyTrail()
		s.Projectiles = append(s.Projectiles, c)
	}
	for _, m := range e.store.Missiles {
		c := *m
		c.Trail = m.copyTrail()
		s.Missiles = append(s.Missiles, c)
	}
	for _, a := range e.store.Aircraft {
		c := *a
		c.Trail = a.copyTrail()
		s.Aircraft = append(s.Aircraft, c)
	}
	for _, x := range e.store.Explosions {
		s.Explosions = append(s.Explosions, *x)
	}
	for _, p := range e.store.Particles {
		s.Particles = append(s.Particles, *p)
	}
	for _, f := range e.facilities {
		s.Facilities = append(s.Facilities, *f)
	}
	for _, d := range e.defenses {
		s.Defenses = append(s.Defenses, *d)
	}
	return s
}

// Facility returns the snapshot's copy of facility id, or nil.
func (s *Snapshot) Facility(id FacilityID) *Facility {
	if id < 0 || int(id) >= len(s.Facilities) {
		return nil
	}
	return &s.Facilities[id]
}
