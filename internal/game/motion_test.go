package game

import (
	"math"
	"testing"
)

func TestSolveArc_LandsOnAimPoint(t *testing.T) {
	cases := []struct {
		name     string
		from, to Vec2
		speed, g float64
	}{
		{"kestrel centre", Vec2{150, 580}, Vec2{740, 540}, 8, 0.2},
		{"far and low", Vec2{150, 580}, Vec2{1045, 535}, 8, 0.2},
		{"behind and up", Vec2{600, 500}, Vec2{200, 300}, 6, 0.2},
		{"no gravity", Vec2{0, 0}, Vec2{300, 400}, 10, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, steps, ok := solveArc(tc.from, tc.to, tc.speed, tc.g)
			if !ok {
				t.Fatal("solveArc rejected a valid shot")
			}
			if want := int(math.Ceil(tc.to.Dist(tc.from) / tc.speed)); steps != want {
				t.Fatalf("solved %d ticks, want %d", steps, want)
			}
			pos := tc.from
			for i := 0; i < steps; i++ {
				v.Y += tc.g
				pos = pos.Add(v)
			}
			if d := pos.Dist(tc.to); d > 1e-6 {
				t.Fatalf("arc ended %.4fpx from the aim point after %d ticks", d, steps)
			}
		})
	}
	if _, _, ok := solveArc(Vec2{1, 1}, Vec2{1, 1}, 8, 0.2); ok {
		t.Fatal("zero distance should not solve")
	}
}

func TestBombFallTicks(t *testing.T) {
	dy, vy0, g := 130.0, 2.0, 0.2
	ticks := bombFallTicks(dy, vy0, g)
	fallen := vy0*ticks + g*ticks*(ticks+1)/2
	if math.Abs(fallen-dy) > 1e-6 {
		t.Fatalf("fall after %.2f ticks = %.3f, want %.1f", ticks, fallen, dy)
	}
	if got := bombFallTicks(-50, 2, 0.2); got != 1 {
		t.Fatalf("target above release should clamp to 1 tick, got %.2f", got)
	}
}

func TestMotion_CruiseHoldsBand(t *testing.T) {
	ts := quietSim()
	e := ts.Engine
	e.facilities[FacilityKestrel].Active = false
	ground := e.tuning.Field.GroundY
	if _, err := e.Fire(WeaponCruise, e.Origin(), Vec2{1150, ground - 65}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 90; i++ {
		ts.RunTicks(1)
		snap := ts.Snapshot()
		if len(snap.Projectiles) == 0 {
			break
		}
		p := snap.Projectiles[0]
		if i > 62 && (p.Pos.Y < ground-80-1 || p.Pos.Y > ground-50+1) {
			t.Fatalf("T=%d cruise left its band at y=%.1f", snap.Tick, p.Pos.Y)
		}
	}
}

func TestMotion_BallisticFallsUnderGravity(t *testing.T) {
	ts := quietSim()
	e := ts.Engine
	if _, err := e.Fire(WeaponMissile, e.Origin(), Vec2{740, 540}); err != nil {
		t.Fatal(err)
	}
	prev := e.Snapshot().Projectiles[0].Vel.Y
	for i := 0; i < 10; i++ {
		ts.RunTicks(1)
		vy := ts.Snapshot().Projectiles[0].Vel.Y
		if math.Abs(vy-prev-e.tuning.Field.Gravity) > 1e-9 {
			t.Fatalf("vy went %.3f → %.3f, want +%.1f per tick", prev, vy, e.tuning.Field.Gravity)
		}
		prev = vy
	}
}

func TestMotion_TrailCappedAndLifeNonNegative(t *testing.T) {
	ts := quietSim()
	e := ts.Engine
	if _, err := e.Fire(WeaponMissile, e.Origin(), Vec2{1150, 300}); err != nil {
		t.Fatal(err)
	}
	trailCap := e.tuning.Field.TrailCap
	for i := 0; i < 60; i++ {
		ts.RunTicks(1)
		for _, p := range ts.Snapshot().Projectiles {
			if len(p.Trail) > trailCap {
				t.Fatalf("trail length %d exceeds cap %d", len(p.Trail), trailCap)
			}
			if p.Life < 0 {
				t.Fatalf("negative life %d", p.Life)
			}
		}
	}
}

func TestMotion_OutOfBoundsRemoved(t *testing.T) {
	ts := quietSim()
	e := ts.Engine
	e.store.Projectiles = append(e.store.Projectiles, &Projectile{
		Entity: Entity{ID: e.store.newID(), Pos: Vec2{5, 100}, Vel: Vec2{-10, 0}, Life: 100},
		Weapon: WeaponCruise,
	})
	ts.RunTicks(1)
	if n := len(ts.Snapshot().Projectiles); n != 0 {
		t.Fatalf("projectile past the left edge should be removed, %d left", n)
	}
}

func TestMotion_AircraftDropsBothBombs(t *testing.T) {
	ts := quietSim()
	e := ts.Engine
	if _, err := e.FireAtFacility(WeaponAircraft, FacilityKestrel); err != nil {
		t.Fatal(err)
	}
	ts.RunUntil(func(ts *TestSim) bool {
		return len(ts.Snapshot().Aircraft) == 0 && len(ts.Snapshot().Projectiles) == 0
	}, 400)
	dumpLog(t, ts)

	if got := ts.SimLog.CountCategory("fire", "bomb"); got != 2 {
		t.Fatalf("expected 2 bomb releases, got %d", got)
	}
	if ts.Session().Stats.Hits == 0 {
		t.Fatal("no bomb hit the facility it was aimed at")
	}
}

func TestMotion_GuidedReachesTarget(t *testing.T) {
	ts := quietSim(
		WithFireAt(1, WeaponGuided, FacilityKestrel),
		WithFireAt(20, WeaponGuided, FacilityKestrel),
	)
	ts.RunTicks(250)
	if got := ts.Session().Stats.Hits; got != 2 {
		dumpLog(t, ts)
		t.Fatalf("guided hits = %d, want 2", got)
	}
}

func TestMotion_AircraftAimAtOrigin(t *testing.T) {
	ts := quietSim()
	e := ts.Engine
	if _, err := e.Fire(WeaponAircraft, e.Origin(), Vec2{}); err != nil {
		t.Fatal(err)
	}
	a := e.store.Aircraft[0]
	if a.Target != (Vec2{}) {
		t.Fatalf("target = %v", a.Target)
	}
	// The point is above the release height, so the solve bottoms out at one tick.
	if want := -a.Vel.X * e.tuning.Weapons.BombVXFactor; math.Abs(a.DropX-want) > 1e-9 {
		t.Fatalf("DropX = %.2f, want %.2f", a.DropX, want)
	}
}
