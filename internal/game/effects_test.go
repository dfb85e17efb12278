package game

import "testing"

func TestEffects_ParticleCapAndExpiry(t *testing.T) {
	ts := quietSim(WithTuningChange(func(tn *Tuning) { tn.Effects.ParticleCap = 50 }))
	e := ts.Engine
	for i := 0; i < 10; i++ {
		e.spawnExplosion(ExplosionAtomic, Vec2{600, 400}, 100)
	}
	if n := len(e.store.Particles); n > 50 {
		t.Fatalf("%d particles exceed the cap", n)
	}
	ts.RunTicks(e.tuning.Effects.AtomicLife + 1)
	if n := len(e.store.Explosions); n != 0 {
		t.Fatalf("%d explosions outlived their life", n)
	}
	if n := len(e.store.Particles); n != 0 {
		t.Fatalf("%d particles outlived their life", n)
	}
}
