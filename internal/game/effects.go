package game

import "math"

// ExplosionKind selects how an explosion grows and fades.
type ExplosionKind int

const (
	ExplosionRegular ExplosionKind = iota
	ExplosionAtomic
	ExplosionFlash
	ExplosionShockwave
)

func (k ExplosionKind) String() string {
	switch k {
	case ExplosionRegular:
		return "regular"
	case ExplosionAtomic:
		return "atomic"
	case ExplosionFlash:
		return "flash"
	case ExplosionShockwave:
		return "shockwave"
	default:
		return "unknown"
	}
}

// Explosion is a decorative expanding blast. It never collides.
type Explosion struct {
	Kind      ExplosionKind
	Pos       Vec2
	Radius    float64
	MaxRadius float64
	Life      int
	MaxLife   int
	Alpha     float64
}

// ParticleKind selects a particle's motion rule.
type ParticleKind int

const (
	ParticleSpark ParticleKind = iota
	ParticleDebris
	ParticleSmoke
)

func (k ParticleKind) String() string {
	switch k {
	case ParticleSpark:
		return "spark"
	case ParticleDebris:
		return "debris"
	case ParticleSmoke:
		return "smoke"
	default:
		return "unknown"
	}
}

// Particle is a decorative fragment. It never collides.
type Particle struct {
	Kind  ParticleKind
	Pos   Vec2
	Vel   Vec2
	Life  int
	Alpha float64
	Size  float64
}

// spawnExplosion queues an explosion plus its spark shower. Atomic blasts add
// a flash, a shockwave and falling debris.
func (e *Engine) spawnExplosion(kind ExplosionKind, at Vec2, radius float64) {
	fx := &e.tuning.Effects
	life := fx.ExplosionLife
	switch kind {
	case ExplosionAtomic:
		life = fx.AtomicLife
	case ExplosionFlash:
		life = fx.FlashLife
	case ExplosionShockwave:
		life = fx.ShockwaveLife
	}
	e.store.Explosions = append(e.store.Explosions, &Explosion{
		Kind:      kind,
		Pos:       at,
		Radius:    5,
		MaxRadius: radius,
		Life:      life,
		MaxLife:   life,
		Alpha:     1,
	})

	switch kind {
	case ExplosionRegular:
		e.spawnParticles(ParticleSpark, at, fx.ExplosionSparks, 4)
	case ExplosionAtomic:
		e.spawnExplosion(ExplosionFlash, at, radius*1.5)
		e.spawnExplosion(ExplosionShockwave, at, radius*fx.ShockwaveMaxScale)
		e.spawnParticles(ParticleDebris, at, fx.AtomicDebris, 7)
		e.spawnParticles(ParticleSmoke, at, fx.ExplosionSparks, 1.5)
	}
}

// spawnParticles emits n particles in random directions up to maxSpeed.
// Cosmetic randomness comes from fxRng so it never perturbs the simulation.
func (e *Engine) spawnParticles(kind ParticleKind, at Vec2, n int, maxSpeed float64) {
	fx := &e.tuning.Effects
	for i := 0; i < n; i++ {
		angle := e.fxRng.Float64() * 2 * math.Pi
		speed := e.fxRng.Float64() * maxSpeed
		size := 1 + e.fxRng.Float64()*2
		if kind == ParticleSmoke {
			size = 3 + e.fxRng.Float64()*3
		}
		e.store.Particles = append(e.store.Particles, &Particle{
			Kind:  kind,
			Pos:   at,
			Vel:   Vec2{math.Cos(angle) * speed, math.Sin(angle) * speed},
			Life:  fx.ParticleLife/2 + e.fxRng.Intn(fx.ParticleLife/2+1),
			Alpha: 1,
			Size:  size,
		})
	}
	if over := len(e.store.Particles) - fx.ParticleCap; over > 0 {
		e.store.Particles = append(e.store.Particles[:0], e.store.Particles[over:]...)
	}
}

// updateEffects advances explosions and particles by one tick.
func (e *Engine) updateEffects() {
	fx := &e.tuning.Effects
	for _, x := range e.store.Explosions {
		switch x.Kind {
		case ExplosionShockwave:
			x.Radius = math.Min(x.MaxRadius, x.Radius+fx.ShockwaveGrowth)
			x.Alpha = float64(x.Life) / float64(x.MaxLife)
		case ExplosionFlash:
			x.Radius = x.MaxRadius
			x.Alpha = float64(x.Life) / float64(x.MaxLife)
		default:
			x.Radius = math.Min(x.MaxRadius, x.Radius+fx.ExplosionGrowth)
			x.Alpha = math.Max(0, x.Alpha-fx.ExplosionFade)
		}
		if x.Life > 0 {
			x.Life--
		}
	}
	e.store.Explosions = compact(e.store.Explosions, func(x *Explosion) bool { return x.Life <= 0 })

	for _, p := range e.store.Particles {
		switch p.Kind {
		case ParticleDebris:
			p.Vel.Y += fx.DebrisGravity
			p.Vel.X *= fx.DebrisDrag
		case ParticleSmoke:
			p.Vel.Y -= fx.SmokeLift
			p.Vel.X *= fx.SmokeDrag
			p.Size += fx.SmokeGrowth
		default:
			p.Vel.Y += fx.SparkGravity
		}
		p.Pos = p.Pos.Add(p.Vel)
		p.Alpha = math.Max(0, p.Alpha-fx.ParticleFade)
		if p.Life > 0 {
			p.Life--
		}
	}
	e.store.Particles = compact(e.store.Particles, func(p *Particle) bool { return p.Life <= 0 || p.Alpha <= 0 })
}
