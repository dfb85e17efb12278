package game

import "testing"

func TestApplyDamage_ScoresAndClamps(t *testing.T) {
	ts := quietSim()
	e := ts.Engine
	f := e.facilities[FacilityKestrel]

	e.applyDamage(f, 30, f.Rect.Center())
	if f.Health != 70 {
		t.Fatalf("health = %v, want 70", f.Health)
	}
	if e.session.Score != 300 || e.session.Stats.Hits != 1 {
		t.Fatalf("score=%d hits=%d, want 300 and 1", e.session.Score, e.session.Stats.Hits)
	}

	e.applyDamage(f, 500, f.Rect.Center())
	if f.Health != 0 || !f.Destroyed {
		t.Fatalf("overkill should clamp to 0 and destroy: health=%v destroyed=%v", f.Health, f.Destroyed)
	}
	if e.session.Stats.TargetsDestroyed != 1 {
		t.Fatalf("TargetsDestroyed = %d", e.session.Stats.TargetsDestroyed)
	}
	if want := 300 + 5000 + 500; e.session.Score != want {
		t.Fatalf("score = %d, want %d", e.session.Score, want)
	}
}

func TestApplyDamage_DestructionIdempotent(t *testing.T) {
	ts := quietSim()
	e := ts.Engine
	f := e.facilities[FacilityKestrel]
	e.applyDamage(f, f.MaxHealth, f.Rect.Center())
	score := e.session.Score
	stats := e.session.Stats
	explosions := len(e.store.Explosions)

	for i := 0; i < 3; i++ {
		e.applyDamage(f, 25, f.Rect.Center())
	}
	if e.session.Score != score || e.session.Stats != stats {
		t.Fatalf("damage to a destroyed facility changed the session: %+v", e.session)
	}
	if len(e.store.Explosions) != explosions {
		t.Fatal("damage to a destroyed facility spawned effects")
	}
}

func TestApplyDamage_AtomicOnDestroy(t *testing.T) {
	ts := quietSim()
	e := ts.Engine
	f := e.facilities[FacilityKestrel]
	e.applyDamage(f, f.MaxHealth, f.Rect.Center())

	kinds := map[ExplosionKind]int{}
	for _, x := range e.store.Explosions {
		kinds[x.Kind]++
	}
	if kinds[ExplosionAtomic] != 1 || kinds[ExplosionFlash] != 1 || kinds[ExplosionShockwave] != 1 {
		t.Fatalf("destruction should spawn atomic, flash and shockwave: %v", kinds)
	}
	debris := 0
	for _, p := range e.store.Particles {
		if p.Kind == ParticleDebris {
			debris++
		}
	}
	if debris == 0 {
		t.Fatal("no debris particles spawned")
	}
}

func TestHitBase_PenaltyClampedAtZero(t *testing.T) {
	ts := quietSim()
	e := ts.Engine
	e.session.Score = 40
	e.hitBase(hitRecord{kind: hitBase, pos: e.base.Rect.Center(), damage: 20, actor: "M1"})
	if e.base.Health != 80 {
		t.Fatalf("base health = %v, want 80", e.base.Health)
	}
	if e.session.Score != 0 {
		t.Fatalf("score = %d, want clamp at 0", e.session.Score)
	}
	if e.session.Stats.BaseHits != 1 {
		t.Fatalf("BaseHits = %d", e.session.Stats.BaseHits)
	}
}

func TestHitBase_DefaultDamage(t *testing.T) {
	ts := quietSim()
	e := ts.Engine
	e.hitBase(hitRecord{kind: hitBase, actor: "M1"})
	if want := e.base.MaxHealth - e.tuning.Weapons.DefaultDamage; e.base.Health != want {
		t.Fatalf("base health = %v, want %v", e.base.Health, want)
	}
}
